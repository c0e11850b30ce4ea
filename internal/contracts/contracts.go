// Package contracts defines the interfaces decoupling the download
// orchestrator from the extractor binary and storage implementations.
package contracts

import (
	"context"

	"audiodownloader/internal/models"
)

// Extractor is the boundary to the external media extractor. Probe
// fetches metadata without downloading; its failures are treated by
// callers as "no metadata". Fetch performs the download and format
// conversion, streaming progress events into onProgress.
type Extractor interface {
	Probe(ctx context.Context, url string) (*models.TrackMetadata, error)
	Fetch(ctx context.Context, url string, onProgress models.ProgressFunc) (*models.TrackMetadata, error)
}

// HistoryStore records processed URLs durably.
type HistoryStore interface {

	// Record operations.
	RecordDownload(ctx context.Context, rec *models.DownloadRecord) error

	// 'Get' operations.
	RecentDownloads(ctx context.Context, limit int, failedOnly bool) ([]*models.DownloadRecord, error)
	DownloadedURLs(ctx context.Context) ([]string, error)
}
