package storage

import (
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schema string

// ErrNotFound is returned by Get when no record exists under the key
var ErrNotFound = errors.New("record not found")

// DB is a keyed byte-record store backed by sqlite. Each key holds one
// serialized collection; writes replace the whole record (last write
// wins, no merge).
type DB struct {
	*sql.DB
}

// Open opens the record store at path and initializes the schema
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &DB{db}, nil
}

// DefaultPath returns the default database file path, creating the
// application data directory if needed
func DefaultPath() (string, error) {
	// Use XDG data directory or fallback to home directory
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataDir = filepath.Join(home, ".local", "share")
	}

	appDir := filepath.Join(dataDir, "taskflow")
	if err := os.MkdirAll(appDir, 0755); err != nil {
		return "", err
	}

	return filepath.Join(appDir, "taskflow.db"), nil
}

// Get retrieves the record stored under key
func (db *DB) Get(key string) ([]byte, error) {
	var value []byte
	err := db.QueryRow("SELECT value FROM records WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read record %q: %w", key, err)
	}
	return value, nil
}

// Put stores value under key, replacing any existing record
func (db *DB) Put(key string, value []byte) error {
	_, err := db.Exec(`
		INSERT INTO records (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value)
	if err != nil {
		return fmt.Errorf("write record %q: %w", key, err)
	}
	return nil
}
