package testutil

import (
	"context"
	"database/sql/driver"
	"testing"
)

func TestStubUpsertsAndFilters(t *testing.T) {
	ctx := context.Background()
	_, conn := NewStubDB()

	insert := "INSERT INTO snapshots(snapshot_key,payload) VALUES($1,$2) ON CONFLICT(snapshot_key) DO UPDATE SET payload=EXCLUDED.payload"
	for _, args := range [][]driver.NamedValue{
		{{Value: "hotel-admin-data"}, {Value: []byte("v1")}},
		{{Value: "hospital-admin-data"}, {Value: []byte("h1")}},
		{{Value: "hotel-admin-data"}, {Value: []byte("v2")}},
	} {
		if _, err := conn.ExecContext(ctx, insert, args); err != nil {
			t.Fatalf("exec: %v", err)
		}
	}
	if got := len(conn.Rows("snapshots")); got != 2 {
		t.Fatalf("expected upsert to keep 2 rows, got %d", got)
	}

	rows, err := conn.QueryContext(ctx, "SELECT payload FROM snapshots WHERE snapshot_key = $1", []driver.NamedValue{{Value: "hotel-admin-data"}})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	dest := make([]driver.Value, 1)
	if err := rows.Next(dest); err != nil {
		t.Fatalf("next: %v", err)
	}
	if string(dest[0].([]byte)) != "v2" {
		t.Fatalf("expected latest payload, got %v", dest[0])
	}
	if err := rows.Next(dest); err == nil {
		t.Fatalf("expected a single filtered row")
	}
}
