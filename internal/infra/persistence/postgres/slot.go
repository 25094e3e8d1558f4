// Package postgres stores snapshot payloads in a Postgres JSONB table through
// the pgx database/sql driver.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver

	"opsdesk/pkg/domain"
)

const (
	defaultDriver = "pgx"
	// DefaultDSN is used when no DSN is configured.
	DefaultDSN = "postgres://localhost/opsdesk?sslmode=disable"
)

var (
	sqlOpen = sql.Open
	openMu  sync.Mutex
)

// Slot is a single row of the snapshots table.
type Slot struct {
	db  *sql.DB
	key string
}

var _ domain.SnapshotSlot = (*Slot)(nil)

// Open connects to dsn (DefaultDSN when empty), ensures the table exists and
// returns a slot for key.
func Open(ctx context.Context, dsn, key string) (*Slot, error) {
	if dsn == "" {
		dsn = DefaultDSN
	}
	openMu.Lock()
	db, err := sqlOpen(defaultDriver, dsn)
	openMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if err := ensureTable(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Slot{db: db, key: key}, nil
}

func ensureTable(ctx context.Context, db *sql.DB) error {
	ddl := `CREATE TABLE IF NOT EXISTS snapshots (
		snapshot_key TEXT PRIMARY KEY,
		payload JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("ensure snapshots table: %w", err)
	}
	return nil
}

// Key is the snapshot key this slot reads and writes.
func (s *Slot) Key() string { return s.key }

// Load returns the stored payload or domain.ErrSlotEmpty.
func (s *Slot) Load(ctx context.Context) ([]byte, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM snapshots WHERE snapshot_key = $1`, s.key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrSlotEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("select snapshot: %w", err)
	}
	if len(payload) == 0 {
		return nil, domain.ErrSlotEmpty
	}
	return payload, nil
}

// Save upserts payload inside a transaction.
func (s *Slot) Save(ctx context.Context, payload []byte) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO snapshots(snapshot_key,payload,updated_at) VALUES($1,$2,$3) ON CONFLICT(snapshot_key) DO UPDATE SET payload=EXCLUDED.payload, updated_at=EXCLUDED.updated_at`,
		s.key, payload, time.Now().UTC()); err != nil {
		return fmt.Errorf("upsert %s: %w", s.key, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	committed = true
	return nil
}

// Close releases the connection pool.
func (s *Slot) Close() error { return s.db.Close() }

// OverrideSQLOpen swaps the sqlOpen function for tests and returns a restore function.
func OverrideSQLOpen(fn func(driverName, dataSourceName string) (*sql.DB, error)) func() {
	openMu.Lock()
	defer openMu.Unlock()
	prev := sqlOpen
	sqlOpen = fn
	return func() {
		openMu.Lock()
		defer openMu.Unlock()
		sqlOpen = prev
	}
}
