package models

import (
	"fmt"
	"path/filepath"
)

// ProcessStatus tracks a URL through the download state machine.
type ProcessStatus string

const (
	StatusPending     ProcessStatus = "pending"
	StatusProbing     ProcessStatus = "probing"
	StatusDownloading ProcessStatus = "downloading"
	StatusSkipped     ProcessStatus = "skipped"
	StatusSucceeded   ProcessStatus = "succeeded"
	StatusFailed      ProcessStatus = "failed"
)

// FetchErrorKind is the human-readable classification tag for a failed
// fetch, written into link annotations and history rows.
type FetchErrorKind string

const (
	FetchNotFound    FetchErrorKind = "NOT FOUND"
	FetchForbidden   FetchErrorKind = "FORBIDDEN"
	FetchUnsupported FetchErrorKind = "UNSUPPORTED URL"
	FetchExtractor   FetchErrorKind = "EXTRACTOR ERROR"
	FetchGeneric     FetchErrorKind = "DOWNLOAD ERROR"
)

// FetchError is a classified download failure from the extractor.
type FetchError struct {
	Kind FetchErrorKind
	Err  error
}

func (e *FetchError) Error() string {
	if e.Err == nil {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Outcome is the terminal result of processing one URL. Exactly one is
// produced per eligible entry.
type Outcome struct {
	Status       ProcessStatus
	Title        string
	ExistingFile string
	ErrKind      FetchErrorKind
	Detail       string
	Duration     float64
	Filesize     int64
	Filepath     string
	UploadDate   string
}

// Summary renders the annotation suffix written back into the links
// file after the URL.
func (o Outcome) Summary() string {
	switch o.Status {
	case StatusSkipped:
		return fmt.Sprintf("SKIPPED (exists: %s)", filepath.Base(o.ExistingFile))
	case StatusFailed:
		if o.Detail != "" {
			return fmt.Sprintf("ERROR: %s", o.Detail)
		}
		return fmt.Sprintf("ERROR: %s", o.ErrKind)
	default:
		return o.Title
	}
}
