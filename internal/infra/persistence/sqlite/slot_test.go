package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"opsdesk/pkg/domain"
)

func TestSlotRoundTripAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "opsdesk.db")

	slot, err := Open(ctx, path, "hotel-admin-data")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := slot.Load(ctx); !errors.Is(err, domain.ErrSlotEmpty) {
		t.Fatalf("expected empty slot, got %v", err)
	}
	if err := slot.Save(ctx, []byte(`{"version":1}`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := slot.Save(ctx, []byte(`{"version":1,"staff":[]}`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if err := slot.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := Open(ctx, path, "hotel-admin-data")
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() { _ = reopened.Close() }()
	got, err := reopened.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(got) != `{"version":1,"staff":[]}` {
		t.Fatalf("unexpected payload %s", got)
	}
}

func TestSlotKeysAreIndependent(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "shared.db")
	hotel, err := Open(ctx, path, "hotel-admin-data")
	if err != nil {
		t.Fatalf("open hotel: %v", err)
	}
	if err := hotel.Save(ctx, []byte("hotel")); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := hotel.Close(); err != nil {
		t.Fatalf("close hotel: %v", err)
	}

	hospital, err := Open(ctx, path, "hospital-admin-data")
	if err != nil {
		t.Fatalf("open hospital: %v", err)
	}
	defer func() { _ = hospital.Close() }()
	if hospital.Key() != "hospital-admin-data" {
		t.Fatalf("unexpected key %s", hospital.Key())
	}
	if _, err := hospital.Load(ctx); !errors.Is(err, domain.ErrSlotEmpty) {
		t.Fatalf("expected empty hospital slot, got %v", err)
	}
}
