package models

import "time"

// DownloadRecord is one history row: the durable record of a processed
// URL and its outcome.
type DownloadRecord struct {
	ID           int64
	RunID        string
	URL          string
	Title        string
	Status       ProcessStatus
	Detail       string
	FilePath     string
	DurationSecs float64
	FileSize     int64
	UploadDate   string
	CreatedAt    time.Time
}
