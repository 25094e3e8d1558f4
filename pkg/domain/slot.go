package domain

import (
	"context"
	"errors"
)

// ErrSlotEmpty is returned by SnapshotSlot.Load when nothing has been saved yet.
var ErrSlotEmpty = errors.New("snapshot slot is empty")

// SnapshotSlot holds one opaque serialized snapshot under a fixed key. Save
// replaces the previous payload; Load returns the latest one.
type SnapshotSlot interface {
	Key() string
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, payload []byte) error
	Close() error
}
