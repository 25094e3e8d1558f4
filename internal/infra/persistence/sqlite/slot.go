// Package sqlite keeps snapshot payloads in a local SQLite file using the
// pure-Go modernc driver.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"opsdesk/pkg/domain"
)

// DefaultPath is used when no database path is configured.
const DefaultPath = "opsdesk.db"

// Slot stores one snapshot row keyed by Key in the snapshots table.
type Slot struct {
	db  *sql.DB
	key string
}

var _ domain.SnapshotSlot = (*Slot)(nil)

// Open creates the database file (and parent directories) if needed.
func Open(ctx context.Context, path, key string) (*Slot, error) {
	if path == "" {
		path = DefaultPath
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// sqlite allows one writer at a time
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS snapshots (
		snapshot_key TEXT PRIMARY KEY,
		payload BLOB NOT NULL,
		updated_at TEXT NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create snapshots table: %w", err)
	}
	return &Slot{db: db, key: key}, nil
}

// Key is the snapshot key.
func (s *Slot) Key() string { return s.key }

// Load reads the payload stored under Key.
func (s *Slot) Load(ctx context.Context) ([]byte, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM snapshots WHERE snapshot_key = ?`, s.key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrSlotEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("select snapshot: %w", err)
	}
	return payload, nil
}

// Save upserts payload under Key.
func (s *Slot) Save(ctx context.Context, payload []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO snapshots(snapshot_key,payload,updated_at) VALUES(?,?,?) ON CONFLICT(snapshot_key) DO UPDATE SET payload=excluded.payload, updated_at=excluded.updated_at`,
		s.key, payload, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("upsert %s: %w", s.key, err)
	}
	return nil
}

// Close closes the database.
func (s *Slot) Close() error { return s.db.Close() }
