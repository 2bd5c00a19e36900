// Package kv persists JSON documents under string keys in SQLite,
// mirroring the key/value cache layout the portal's collections use.
package kv

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// StorageError is returned by every failing persistence operation so
// callers can decide whether to surface, retry, or ignore it. The store
// treats these as best-effort failures and keeps serving from memory.
type StorageError struct {
	Op  string
	Key string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s %s: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// DB wraps sql.DB for the key/value cache.
type DB struct {
	*sql.DB
}

// Open opens (or creates) the cache database at path and ensures the
// schema exists. Use ":memory:" for an ephemeral database.
func Open(path string) (*DB, error) {
	if path != ":memory:" {
		path = filepath.Clean(path)
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS kv_cache (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create kv_cache: %w", err)
	}
	return &DB{db}, nil
}

// Get reads the document stored under key into out. The first return
// value is false when the key is absent.
func (db *DB) Get(key string, out any) (bool, error) {
	var raw string
	err := db.QueryRow("SELECT value FROM kv_cache WHERE key = ?", key).Scan(&raw)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, &StorageError{Op: "get", Key: key, Err: err}
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return false, &StorageError{Op: "decode", Key: key, Err: err}
	}
	return true, nil
}

// Put stores val under key, replacing any previous document.
func (db *DB) Put(key string, val any) error {
	data, err := json.Marshal(val)
	if err != nil {
		return &StorageError{Op: "encode", Key: key, Err: err}
	}
	_, err = db.Exec(
		`INSERT INTO kv_cache (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, string(data),
	)
	if err != nil {
		return &StorageError{Op: "put", Key: key, Err: err}
	}
	return nil
}

// Delete removes key; deleting an absent key is a no-op.
func (db *DB) Delete(key string) error {
	if _, err := db.Exec("DELETE FROM kv_cache WHERE key = ?", key); err != nil {
		return &StorageError{Op: "delete", Key: key, Err: err}
	}
	return nil
}
