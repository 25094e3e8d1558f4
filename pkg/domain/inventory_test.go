package domain

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestRestockPrependsLedgerEntry(t *testing.T) {
	first := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	second := first.Add(48 * time.Hour)
	item := InventoryItem{ID: "inv-1", CurrentStock: 4, MinStock: 5, MaxStock: 20}

	if err := item.Restock(6, "B", first); err != nil {
		t.Fatalf("first restock: %v", err)
	}
	if err := item.Restock(10, "A", second); err != nil {
		t.Fatalf("second restock: %v", err)
	}
	if item.CurrentStock != 20 {
		t.Fatalf("expected stock 20, got %d", item.CurrentStock)
	}
	if len(item.RestockHistory) != 2 {
		t.Fatalf("expected 2 ledger entries, got %d", len(item.RestockHistory))
	}
	head := item.RestockHistory[0]
	if head.Quantity != 10 || head.Actor != "A" || !head.At.Equal(second) {
		t.Fatalf("expected newest entry first, got %+v", head)
	}
	if item.LastRestocked == nil || !item.LastRestocked.Equal(second) {
		t.Fatalf("expected last restocked %s, got %v", second, item.LastRestocked)
	}
}

func TestRestockAllowsExceedingMaxStock(t *testing.T) {
	item := InventoryItem{ID: "inv-2", CurrentStock: 18, MaxStock: 20}
	if err := item.Restock(50, "ops", time.Now()); err != nil {
		t.Fatalf("restock: %v", err)
	}
	if item.CurrentStock != 68 {
		t.Fatalf("expected over-restock to be kept, got %d", item.CurrentStock)
	}
}

func TestRestockRejectsInvalidQuantity(t *testing.T) {
	cases := []struct {
		name  string
		stock int
		qty   int
	}{
		{name: "zero", stock: 3, qty: 0},
		{name: "negative", stock: 3, qty: -4},
		{name: "overflow", stock: math.MaxInt - 1, qty: 5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			item := InventoryItem{ID: "inv-3", CurrentStock: tc.stock}
			err := item.Restock(tc.qty, "A", time.Now())
			var qerr ErrInvalidQuantity
			if !errors.As(err, &qerr) {
				t.Fatalf("expected ErrInvalidQuantity, got %v", err)
			}
			if qerr.ItemID != "inv-3" || qerr.Quantity != tc.qty {
				t.Fatalf("unexpected error payload %+v", qerr)
			}
			if item.CurrentStock != tc.stock || len(item.RestockHistory) != 0 || item.LastRestocked != nil {
				t.Fatalf("item mutated on failure: %+v", item)
			}
		})
	}
}

func TestInventoryStockHelpers(t *testing.T) {
	item := InventoryItem{CurrentStock: 5, MinStock: 5, UnitCost: decimal.RequireFromString("2.50")}
	if !item.LowStock() {
		t.Fatalf("stock equal to min should count as low")
	}
	if item.OutOfStock() {
		t.Fatalf("item with stock should not be out")
	}
	if got := item.Value(); !got.Equal(decimal.RequireFromString("12.5")) {
		t.Fatalf("expected value 12.5, got %s", got)
	}
}

func TestPriorityRank(t *testing.T) {
	cases := map[Priority]int{
		PriorityUrgent: 0,
		PriorityHigh:   1,
		PriorityNormal: 2,
		PriorityLow:    3,
		"medium":       2,
		"":             2,
	}
	for p, want := range cases {
		if got := p.Rank(); got != want {
			t.Fatalf("priority %q: expected rank %d, got %d", p, want, got)
		}
	}
}

func TestErrorMessages(t *testing.T) {
	if got := (ErrNotFound{Entity: EntityTask, ID: "t1"}).Error(); got != "housekeeping_task t1 not found" {
		t.Fatalf("unexpected not found message %q", got)
	}
	tr := ErrInvalidTransition{Entity: EntityTask, ID: "t1", From: "completed", To: "assigned"}
	if got := tr.Error(); got != "housekeeping_task t1 cannot move from completed to assigned" {
		t.Fatalf("unexpected transition message %q", got)
	}
	cause := errors.New("disk full")
	perr := ErrPersistence{Op: "save", Key: "hotel-admin-data", Err: cause}
	if !errors.Is(perr, cause) {
		t.Fatalf("expected persistence error to unwrap to cause")
	}
}

func TestStaffStatusValid(t *testing.T) {
	if !StaffBreak.Valid() {
		t.Fatalf("break should be valid")
	}
	if StaffStatus("asleep").Valid() {
		t.Fatalf("unknown status should be invalid")
	}
}
