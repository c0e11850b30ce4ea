// Package errconsts holds constant error messages
package errconsts

// Programs
const (
	YTDLPFailure      = "yt-dlp command failed: %w"
	YTDLPProbeFailure = "yt-dlp probe failed: %w"
)

// File
const (
	LinksFileReadFail  = "failed to read links file %q: %w"
	LinksFileWriteFail = "failed to update links file %q: %w"
	OutputDirFail      = "failed to create output directory %q: %w"
	DownloadVerifyFail = "downloaded file %q failed verification: %w"
)

// Database
const (
	HistoryOpenFail   = "failed to open history database at %q: %w"
	HistoryInsertFail = "failed to record download outcome for %q: %w"
)
