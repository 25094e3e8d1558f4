package blob

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"opsdesk/pkg/domain"
)

// DefaultKeep is the number of archived snapshots retained per key.
const DefaultKeep = 5

// Slot archives every save as a new object "<key>/<unix nanos>.json" and loads
// the newest one. Objects beyond the retention count are pruned oldest first.
type Slot struct {
	store Store
	key   string
	keep  int
	now   func() time.Time
}

// NewSlot wraps store as a snapshot slot for key. keep <= 0 means DefaultKeep.
func NewSlot(store Store, key string, keep int) *Slot {
	if keep <= 0 {
		keep = DefaultKeep
	}
	return &Slot{store: store, key: key, keep: keep, now: time.Now}
}

var _ domain.SnapshotSlot = (*Slot)(nil)

// Key is the logical snapshot key.
func (s *Slot) Key() string { return s.key }

func (s *Slot) prefix() string { return s.key + "/" }

func (s *Slot) objectKey(stamp int64) string {
	return fmt.Sprintf("%s%020d.json", s.prefix(), stamp)
}

// Load reads the most recent archived snapshot.
func (s *Slot) Load(ctx context.Context) ([]byte, error) {
	objs, err := s.archive(ctx)
	if err != nil {
		return nil, err
	}
	if len(objs) == 0 {
		return nil, domain.ErrSlotEmpty
	}
	_, rc, err := s.store.Read(ctx, objs[len(objs)-1].Key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, domain.ErrSlotEmpty
		}
		return nil, err
	}
	defer func() { _ = rc.Close() }()
	return io.ReadAll(rc)
}

// Save writes payload as a new archive entry, then prunes old entries.
func (s *Slot) Save(ctx context.Context, payload []byte) error {
	stamp := s.now().UnixNano()
	opts := WriteOptions{ContentType: "application/json", Metadata: map[string]string{"snapshot-key": s.key}}
	for {
		_, err := s.store.Write(ctx, s.objectKey(stamp), bytes.NewReader(payload), opts)
		if err == nil {
			break
		}
		if !errors.Is(err, ErrExists) {
			return err
		}
		stamp++
	}
	return s.prune(ctx)
}

// History lists archived snapshots oldest first.
func (s *Slot) History(ctx context.Context) ([]Object, error) {
	return s.archive(ctx)
}

// Close is a no-op; the underlying store has no connection to release.
func (s *Slot) Close() error { return nil }

func (s *Slot) archive(ctx context.Context) ([]Object, error) {
	objs, err := s.store.List(ctx, s.prefix())
	if err != nil {
		return nil, err
	}
	out := objs[:0]
	for _, o := range objs {
		if strings.HasSuffix(o.Key, ".json") && !strings.Contains(strings.TrimPrefix(o.Key, s.prefix()), "/") {
			out = append(out, o)
		}
	}
	return out, nil
}

func (s *Slot) prune(ctx context.Context) error {
	objs, err := s.archive(ctx)
	if err != nil {
		return err
	}
	for len(objs) > s.keep {
		if _, err := s.store.Remove(ctx, objs[0].Key); err != nil {
			return err
		}
		objs = objs[1:]
	}
	return nil
}
