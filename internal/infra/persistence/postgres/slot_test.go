package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"

	"opsdesk/internal/infra/persistence/postgres/testutil"
	"opsdesk/pkg/domain"
)

func openStub(t *testing.T, key string) (*Slot, *testutil.StubConn) {
	t.Helper()
	db, conn := testutil.NewStubDB()
	var gotDriver, gotDSN string
	restore := OverrideSQLOpen(func(driverName, dsn string) (*sql.DB, error) {
		gotDriver, gotDSN = driverName, dsn
		return db, nil
	})
	t.Cleanup(restore)
	slot, err := Open(context.Background(), "", key)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if gotDriver != "pgx" || gotDSN != DefaultDSN {
		t.Fatalf("unexpected open args %s %s", gotDriver, gotDSN)
	}
	return slot, conn
}

func TestOpenCreatesTableAndRoundTrips(t *testing.T) {
	ctx := context.Background()
	slot, conn := openStub(t, "hotel-admin-data")

	var sawDDL bool
	for _, stmt := range conn.Execs {
		if strings.Contains(stmt, "CREATE TABLE IF NOT EXISTS snapshots") {
			sawDDL = true
		}
	}
	if !sawDDL {
		t.Fatalf("expected snapshots DDL, got %v", conn.Execs)
	}

	if _, err := slot.Load(ctx); !errors.Is(err, domain.ErrSlotEmpty) {
		t.Fatalf("expected empty slot, got %v", err)
	}
	if err := slot.Save(ctx, []byte(`{"version":1}`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := slot.Save(ctx, []byte(`{"version":1,"tasks":[]}`)); err != nil {
		t.Fatalf("save again: %v", err)
	}
	got, err := slot.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(got) != `{"version":1,"tasks":[]}` {
		t.Fatalf("unexpected payload %s", got)
	}
	if rows := conn.Rows("snapshots"); len(rows) != 1 {
		t.Fatalf("expected one row per key, got %d", len(rows))
	}
	if slot.Key() != "hotel-admin-data" {
		t.Fatalf("unexpected key %s", slot.Key())
	}
}

func TestOpenFailures(t *testing.T) {
	db, conn := testutil.NewStubDB()
	conn.FailPing = true
	restore := OverrideSQLOpen(func(string, string) (*sql.DB, error) { return db, nil })
	defer restore()
	if _, err := Open(context.Background(), "postgres://x", "k"); err == nil || !strings.Contains(err.Error(), "ping") {
		t.Fatalf("expected ping error, got %v", err)
	}

	restoreErr := OverrideSQLOpen(func(string, string) (*sql.DB, error) { return nil, errors.New("boom") })
	defer restoreErr()
	if _, err := Open(context.Background(), "postgres://x", "k"); err == nil || !strings.Contains(err.Error(), "open postgres") {
		t.Fatalf("expected open error, got %v", err)
	}
}

func TestSaveCommitFailure(t *testing.T) {
	slot, conn := openStub(t, "hospital-admin-data")
	conn.FailCommit = true
	if err := slot.Save(context.Background(), []byte("{}")); err == nil {
		t.Fatalf("expected commit failure")
	}
}
