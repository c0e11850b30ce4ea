package database

import "fmt"

const downloadsTableSQL = `
CREATE TABLE IF NOT EXISTS downloads (
    id            INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id        TEXT NOT NULL,
    url           TEXT NOT NULL,
    title         TEXT,
    status        TEXT NOT NULL CHECK(status IN ('succeeded', 'skipped', 'failed')),
    detail        TEXT,
    file_path     TEXT,
    duration_secs REAL DEFAULT 0,
    file_size     INTEGER DEFAULT 0,
    upload_date   TEXT,
    created_at    TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_downloads_url ON downloads(url);
CREATE INDEX IF NOT EXISTS idx_downloads_run_id ON downloads(run_id);
`

// initTables initializes the SQL tables.
func (d *Database) initTables() error {
	tx, err := d.DB.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if _, err := tx.Exec(downloadsTableSQL); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to create downloads table: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
