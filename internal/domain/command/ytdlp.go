// Package command holds argument strings for external commands.
package command

// General
const (
	YTDLP          = "yt-dlp"
	CookiePath     = "--cookies"
	FilenameSyntax = "%(title)s.%(ext)s"
	Format         = "-f"
	BestAudio      = "bestaudio/best"
	NoPlaylist     = "--no-playlist"
	Newline        = "--newline"
	Output         = "-o"
)

// Audio extraction
const (
	ExtractAudio      = "-x"
	AudioFormat       = "--audio-format"
	AudioQuality      = "--audio-quality"
	PostprocessorArgs = "--postprocessor-args"
	FFmpegSampleRate  = "ffmpeg:-ar "
)

// JSON only
const (
	SkipVideo  = "--skip-download"
	OutputJSON = "-J"
)

// Output line markers scanned during downloads.
const (
	DownloadPrefix       = "[download]"
	ExtractAudioPrefix   = "[ExtractAudio]"
	DestinationMarker    = "Destination: "
	AlreadyDownloadedTag = "has already been downloaded"
	ErrorPrefix          = "ERROR:"
)
