package domain

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// RestockEntry is an immutable ledger line recorded by a restock.
type RestockEntry struct {
	At       time.Time `json:"at"`
	Quantity int       `json:"quantity"`
	Actor    string    `json:"actor"`
}

// InventoryItem is a stocked supply. RestockHistory is append-only and ordered newest first.
type InventoryItem struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	SKU            string          `json:"sku,omitempty"`
	Category       string          `json:"category"`
	CurrentStock   int             `json:"current_stock"`
	MinStock       int             `json:"min_stock"`
	MaxStock       int             `json:"max_stock"`
	Unit           string          `json:"unit,omitempty"`
	UnitCost       decimal.Decimal `json:"unit_cost"`
	Location       string          `json:"location,omitempty"`
	Supplier       string          `json:"supplier,omitempty"`
	ExpiresAt      *time.Time      `json:"expires_at,omitempty"`
	LastRestocked  *time.Time      `json:"last_restocked,omitempty"`
	RestockHistory []RestockEntry  `json:"restock_history"`
}

// Restock adds quantity to the item and prepends a ledger entry. Stock above
// MaxStock is allowed. On error the item is not modified.
func (i *InventoryItem) Restock(quantity int, actor string, at time.Time) error {
	if quantity <= 0 || i.CurrentStock > math.MaxInt-quantity {
		return ErrInvalidQuantity{ItemID: i.ID, Quantity: quantity}
	}
	i.CurrentStock += quantity
	stamp := at
	i.LastRestocked = &stamp
	history := make([]RestockEntry, 0, len(i.RestockHistory)+1)
	history = append(history, RestockEntry{At: at, Quantity: quantity, Actor: actor})
	i.RestockHistory = append(history, i.RestockHistory...)
	return nil
}

// LowStock reports whether the item is at or below its reorder threshold.
func (i InventoryItem) LowStock() bool {
	return i.CurrentStock <= i.MinStock
}

// OutOfStock reports whether nothing is left on hand.
func (i InventoryItem) OutOfStock() bool {
	return i.CurrentStock <= 0
}

// Value is the on-hand stock valued at unit cost.
func (i InventoryItem) Value() decimal.Decimal {
	return i.UnitCost.Mul(decimal.NewFromInt(int64(i.CurrentStock)))
}
