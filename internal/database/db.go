// Package database sets up/opens the download history database.
package database

import (
	"database/sql"
	"fmt"

	"audiodownloader/internal/domain/errconsts"

	_ "github.com/mattn/go-sqlite3"
)

const dbDriver = "sqlite3"

// Database wraps the open history database handle.
type Database struct {
	DB *sql.DB
}

// InitDB opens (or creates) the history database at path and ensures
// its tables exist.
func InitDB(path string) (*Database, error) {
	db, err := sql.Open(dbDriver, path)
	if err != nil {
		return nil, fmt.Errorf(errconsts.HistoryOpenFail, path, err)
	}

	d := &Database{DB: db}
	if err := d.initTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf(errconsts.HistoryOpenFail, path, err)
	}
	return d, nil
}

// Close releases the database handle.
func (d *Database) Close() error {
	return d.DB.Close()
}
