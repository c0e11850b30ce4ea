// Package consts holds various global, unchanging values.
package consts

// Program identity
const (
	AppName    = "audiodownloader"
	AppVersion = "0.31"
)

// Link file markers
const (
	CommentPrefix = "#"
	SchemeHTTP    = "http://"
	SchemeHTTPS   = "https://"
)

// UnknownTitle is the fallback title for downloads which finish
// without reporting one.
const UnknownTitle = "Unknown Title"

// File and directory permissions
const (
	PermsDir  = 0o755
	PermsFile = 0o644
)

// Audio codecs accepted for the extracted output format.
const (
	ACodecAAC    = "aac"
	ACodecALAC   = "alac"
	ACodecFLAC   = "flac"
	ACodecM4A    = "m4a"
	ACodecMP3    = "mp3"
	ACodecOpus   = "opus"
	ACodecVorbis = "vorbis"
	ACodecWAV    = "wav"
)

// ValidAudioCodecs maps every accepted output codec.
var ValidAudioCodecs = map[string]bool{
	ACodecAAC:    true,
	ACodecALAC:   true,
	ACodecFLAC:   true,
	ACodecM4A:    true,
	ACodecMP3:    true,
	ACodecOpus:   true,
	ACodecVorbis: true,
	ACodecWAV:    true,
}

// Log levels accepted in config (file and console sinks).
const (
	LogLevelDebug   = "DEBUG"
	LogLevelInfo    = "INFO"
	LogLevelWarning = "WARNING"
	LogLevelError   = "ERROR"
)

// Cookie sources accepted for the '--cookie-source' flag.
const (
	CookieSourceNone    = ""
	CookieSourceBrowser = "browser"
)
