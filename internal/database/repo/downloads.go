// Package repo implements the storage interfaces over the history
// database.
package repo

import (
	"context"
	"database/sql"
	"fmt"

	"audiodownloader/internal/domain/consts"
	"audiodownloader/internal/domain/errconsts"
	"audiodownloader/internal/models"
	"audiodownloader/internal/utils/logging"

	"github.com/Masterminds/squirrel"
)

// HistoryStore holds a pointer to the sql.DB.
type HistoryStore struct {
	DB  *sql.DB
	log *logging.Logger
}

// GetHistoryStore returns a history store instance with injected
// database.
func GetHistoryStore(db *sql.DB, log *logging.Logger) *HistoryStore {
	return &HistoryStore{
		DB:  db,
		log: log,
	}
}

// RecordDownload inserts one row for a processed URL.
func (hs *HistoryStore) RecordDownload(ctx context.Context, rec *models.DownloadRecord) error {
	query := squirrel.
		Insert(consts.DBDownloads).
		Columns(
			consts.QDLRunID,
			consts.QDLURL,
			consts.QDLTitle,
			consts.QDLStatus,
			consts.QDLDetail,
			consts.QDLFilePath,
			consts.QDLDuration,
			consts.QDLFileSize,
			consts.QDLUpload,
		).
		Values(
			rec.RunID,
			rec.URL,
			rec.Title,
			string(rec.Status),
			rec.Detail,
			rec.FilePath,
			rec.DurationSecs,
			rec.FileSize,
			rec.UploadDate,
		).
		RunWith(hs.DB)

	if _, err := query.ExecContext(ctx); err != nil {
		return fmt.Errorf(errconsts.HistoryInsertFail, rec.URL, err)
	}

	return nil
}

// RecentDownloads returns up to limit rows, newest first. failedOnly
// narrows the result to failed outcomes.
func (hs *HistoryStore) RecentDownloads(ctx context.Context, limit int, failedOnly bool) ([]*models.DownloadRecord, error) {
	if limit <= 0 {
		limit = 25
	}

	query := squirrel.
		Select(
			consts.QDLID,
			consts.QDLRunID,
			consts.QDLURL,
			consts.QDLTitle,
			consts.QDLStatus,
			consts.QDLDetail,
			consts.QDLFilePath,
			consts.QDLDuration,
			consts.QDLFileSize,
			consts.QDLUpload,
			consts.QDLCreatedAt,
		).
		From(consts.DBDownloads).
		OrderBy(consts.QDLCreatedAt + " DESC").
		Limit(uint64(limit)).
		RunWith(hs.DB)

	if failedOnly {
		query = query.Where(squirrel.Eq{consts.QDLStatus: string(models.StatusFailed)})
	}

	rows, err := query.QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to query download history: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			hs.log.E("failed to close history rows: %v", err)
		}
	}()

	var records []*models.DownloadRecord
	for rows.Next() {
		var (
			rec    models.DownloadRecord
			status string
		)
		if err := rows.Scan(
			&rec.ID,
			&rec.RunID,
			&rec.URL,
			&rec.Title,
			&status,
			&rec.Detail,
			&rec.FilePath,
			&rec.DurationSecs,
			&rec.FileSize,
			&rec.UploadDate,
			&rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		rec.Status = models.ProcessStatus(status)
		records = append(records, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading history rows: %w", err)
	}

	return records, nil
}

// DownloadedURLs returns every URL with a succeeded or skipped row.
// The scraper filters its candidates against this set.
func (hs *HistoryStore) DownloadedURLs(ctx context.Context) ([]string, error) {
	query := squirrel.
		Select("DISTINCT " + consts.QDLURL).
		From(consts.DBDownloads).
		Where(squirrel.Eq{consts.QDLStatus: []string{
			string(models.StatusSucceeded),
			string(models.StatusSkipped),
		}}).
		RunWith(hs.DB)

	rows, err := query.QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to query downloaded URLs: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			hs.log.E("failed to close history rows: %v", err)
		}
	}()

	var urls []string
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, fmt.Errorf("failed to scan URL row: %w", err)
		}
		urls = append(urls, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading URL rows: %w", err)
	}

	return urls, nil
}
