package core

import (
	"context"
	"errors"
	"sync"

	"opsdesk/internal/infra/persistence/memory"
	"opsdesk/pkg/domain"
)

// Service is the admin store consumed by the dashboards. All methods are safe
// for concurrent use; mutations are applied one at a time.
type Service struct {
	store     *memory.Store
	opts      serviceOptions
	latency   *latencyWindow
	persister *persister

	// writeMu orders commit and snapshot hand-off so the persister never
	// receives an older state after a newer one.
	writeMu   sync.Mutex
	closeOnce sync.Once
	closeErr  error
}

// NewService builds an in-memory service seeded with ds. A configured slot is
// written to after every mutation but never read; use Open to restore.
func NewService(ds domain.Dataset, opts ...ServiceOption) *Service {
	o := defaultServiceOptions()
	for _, opt := range opts {
		opt(&o)
	}
	s := &Service{
		store: memory.NewStore(ds,
			memory.WithNow(o.clock.Now),
			memory.WithLocation(o.location),
		),
		opts:    o,
		latency: newLatencyWindow(o.latencyMin, o.latencyMax, o.delay),
	}
	if o.slot != nil {
		s.persister = newPersister(o.slot, o.logger)
	}
	return s
}

// Open builds a service from seed and, when a slot is configured, replaces
// the persisted collections with the slot's snapshot. Rooms and doctors always
// come from seed. A missing, unreadable or corrupt snapshot is logged and the
// seed data is used instead.
func Open(ctx context.Context, seed domain.Dataset, opts ...ServiceOption) *Service {
	s := NewService(seed, opts...)
	if s.opts.slot == nil {
		return s
	}
	_ = s.run(ctx, OpLoadSnapshot, func(ctx context.Context) (string, error) {
		key := s.opts.slot.Key()
		payload, err := s.opts.slot.Load(ctx)
		if errors.Is(err, domain.ErrSlotEmpty) {
			s.opts.logger.Info("no snapshot found, using seed data", "key", key)
			return key, nil
		}
		if err == nil {
			var snapshot memory.Snapshot
			snapshot, err = DecodeSnapshot(payload)
			if err == nil {
				s.store.ImportState(snapshot)
				s.opts.logger.Info("snapshot restored", "key", key, "bytes", len(payload))
				return key, nil
			}
		}
		perr := domain.ErrPersistence{Op: "load", Key: key, Err: err}
		s.opts.logger.Warn("snapshot load failed, using seed data", "key", key, "error", perr)
		return key, nil
	})
	return s
}

// Flush waits until every committed mutation has reached the slot. It is a
// no-op without a slot.
func (s *Service) Flush() {
	if s.persister != nil {
		s.persister.flush()
	}
}

// Close drains pending snapshot writes and closes the slot.
func (s *Service) Close() error {
	s.closeOnce.Do(func() {
		if s.persister == nil {
			return
		}
		s.persister.close()
		s.closeErr = s.opts.slot.Close()
	})
	return s.closeErr
}

// Snapshot returns the current persisted collections.
func (s *Service) Snapshot() memory.Snapshot { return s.store.ExportState() }

// mutate waits out the latency window, then applies fn in one transaction and
// queues the resulting state for persistence. Cancelling ctx after the call
// starts has no effect on the outcome.
func (s *Service) mutate(ctx context.Context, op string, id *string, fn func(tx *memory.Transaction) error) error {
	return s.run(ctx, op, func(ctx context.Context) (string, error) {
		s.latency.wait()
		s.writeMu.Lock()
		defer s.writeMu.Unlock()
		if _, err := s.store.RunInTransaction(context.WithoutCancel(ctx), fn); err != nil {
			return *id, err
		}
		if s.persister != nil {
			s.persister.submit(s.store.ExportState())
		}
		return *id, nil
	})
}
