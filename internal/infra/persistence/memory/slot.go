package memory

import (
	"context"
	"sync"

	"opsdesk/pkg/domain"
)

// Slot is a non-durable snapshot slot. It keeps the last saved payload so a
// second service in the same process can reload it.
type Slot struct {
	mu      sync.Mutex
	key     string
	payload []byte
	saves   int
}

var _ domain.SnapshotSlot = (*Slot)(nil)

// NewSlot returns an empty slot for key.
func NewSlot(key string) *Slot { return &Slot{key: key} }

// Key is the snapshot key.
func (s *Slot) Key() string { return s.key }

// Load returns a copy of the last saved payload.
func (s *Slot) Load(context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.payload == nil {
		return nil, domain.ErrSlotEmpty
	}
	return append([]byte(nil), s.payload...), nil
}

// Save replaces the stored payload.
func (s *Slot) Save(_ context.Context, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payload = append(make([]byte, 0, len(payload)), payload...)
	s.saves++
	return nil
}

// Saves reports how many times Save succeeded.
func (s *Slot) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

// Close is a no-op.
func (s *Slot) Close() error { return nil }
