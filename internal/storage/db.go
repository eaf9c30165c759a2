// ABOUTME: SQLite database connection and lifecycle management.
// ABOUTME: Uses modernc.org/sqlite (pure Go, no CGO required).
package storage

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// initTimeout bounds pragma and schema setup so a wedged database file
// surfaces an InitError instead of hanging startup.
const initTimeout = 10 * time.Second

// DB wraps the SQLite database connection.
type DB struct {
	db     *sql.DB
	dbPath string
}

// Open opens or creates a SQLite database at the given path, enables
// foreign key enforcement and ensures the schema exists. Idempotent:
// safe to call against an already-initialized file.
func Open(dbPath string) (*DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, &InitError{Path: dbPath, Err: err}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, &InitError{Path: dbPath, Err: err}
	}

	if err := os.Chmod(dbPath, 0600); err != nil && !os.IsNotExist(err) {
		_ = db.Close()
		return nil, &InitError{Path: dbPath, Err: err}
	}

	d := &DB{db: db, dbPath: dbPath}

	ctx, cancel := context.WithTimeout(context.Background(), initTimeout)
	defer cancel()

	if err := d.configurePragmas(ctx); err != nil {
		_ = db.Close()
		return nil, &InitError{Path: dbPath, Err: err}
	}

	if err := d.initSchema(ctx); err != nil {
		_ = db.Close()
		return nil, &InitError{Path: dbPath, Err: err}
	}

	return d, nil
}

// OpenDefault opens the database at the default XDG data path.
func OpenDefault() (*DB, error) {
	return Open(DefaultDBPath())
}

// DataDir returns the default data directory following the XDG spec.
func DataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "fitex")
}

// DefaultDBPath returns the default database path following the XDG spec.
func DefaultDBPath() string {
	return filepath.Join(DataDir(), "fitex.db")
}

// Close closes the database connection.
func (d *DB) Close() error {
	if d.db != nil {
		return d.db.Close()
	}
	return nil
}

// configurePragmas sets up SQLite for single-writer app use. Foreign key
// enforcement is what makes cascade deletes work; it is off by default.
func (d *DB) configurePragmas(ctx context.Context) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, pragma := range pragmas {
		if _, err := d.db.ExecContext(ctx, pragma); err != nil {
			return &QueryError{Statement: pragma, Err: err}
		}
	}
	return nil
}
