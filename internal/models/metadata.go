package models

// TrackMetadata is what the extractor reports about one URL, from a
// probe or a completed fetch. Zero values mean the field was absent.
type TrackMetadata struct {
	Title      string  `json:"title"`
	Duration   float64 `json:"duration"`
	Filesize   int64   `json:"filesize"`
	UploadDate string  `json:"upload_date"`
	Filepath   string  `json:"-"`
}

// ProgressState marks the phase a progress event belongs to.
type ProgressState string

const (
	ProgressDownloading ProgressState = "downloading"
	ProgressFinished    ProgressState = "finished"
	ProgressError       ProgressState = "error"
)

// ProgressEvent is one status report streamed out of an in-flight
// fetch. Percent carries the raw percentage string from the extractor
// and may be malformed.
type ProgressEvent struct {
	State   ProgressState
	Percent string
}

// ProgressFunc receives progress events during a fetch.
type ProgressFunc func(ProgressEvent)
