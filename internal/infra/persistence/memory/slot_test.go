package memory

import (
	"context"
	"errors"
	"testing"

	"opsdesk/pkg/domain"
)

func TestSlotStoresCopies(t *testing.T) {
	ctx := context.Background()
	slot := NewSlot("hotel-admin-data")
	if _, err := slot.Load(ctx); !errors.Is(err, domain.ErrSlotEmpty) {
		t.Fatalf("expected empty slot, got %v", err)
	}
	payload := []byte(`{"version":1}`)
	if err := slot.Save(ctx, payload); err != nil {
		t.Fatalf("save: %v", err)
	}
	payload[0] = 'X'
	got, err := slot.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(got) != `{"version":1}` {
		t.Fatalf("slot aliased caller buffer: %s", got)
	}
	got[0] = 'Y'
	again, _ := slot.Load(ctx)
	if again[0] != '{' {
		t.Fatalf("load returned shared buffer")
	}
	if slot.Saves() != 1 || slot.Key() != "hotel-admin-data" {
		t.Fatalf("unexpected slot state %d %s", slot.Saves(), slot.Key())
	}
}

func TestSlotEmptyPayloadIsStored(t *testing.T) {
	ctx := context.Background()
	slot := NewSlot("k")
	if err := slot.Save(ctx, nil); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := slot.Load(ctx)
	if err != nil || len(got) != 0 {
		t.Fatalf("expected empty payload, got %q %v", got, err)
	}
}
