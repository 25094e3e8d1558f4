package core

import (
	"context"
	"sync"

	"opsdesk/internal/infra/persistence/memory"
	"opsdesk/pkg/domain"
)

// persister writes snapshots to a slot on a single background goroutine.
// Submissions that arrive while a write is in flight collapse into the most
// recent one.
type persister struct {
	slot   domain.SnapshotSlot
	logger Logger

	mu        sync.Mutex
	cond      *sync.Cond
	pending   *memory.Snapshot
	submitted uint64
	written   uint64
	closed    bool
	wake      chan struct{}
	done      chan struct{}
}

func newPersister(slot domain.SnapshotSlot, logger Logger) *persister {
	p := &persister{
		slot:   slot,
		logger: logger,
		wake:   make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
	p.cond = sync.NewCond(&p.mu)
	go p.loop()
	return p
}

func (p *persister) submit(snapshot memory.Snapshot) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.pending = &snapshot
	p.submitted++
	p.mu.Unlock()
	select {
	case p.wake <- struct{}{}:
	default:
	}
}

func (p *persister) loop() {
	defer close(p.done)
	for range p.wake {
		for {
			p.mu.Lock()
			next, seq := p.pending, p.submitted
			p.pending = nil
			closed := p.closed
			p.mu.Unlock()
			if next == nil {
				if closed {
					return
				}
				break
			}
			p.write(*next)
			p.mu.Lock()
			p.written = seq
			p.cond.Broadcast()
			p.mu.Unlock()
		}
	}
}

func (p *persister) write(snapshot memory.Snapshot) {
	payload, err := EncodeSnapshot(snapshot)
	if err == nil {
		err = p.slot.Save(context.Background(), payload)
	}
	if err != nil {
		perr := domain.ErrPersistence{Op: "save", Key: p.slot.Key(), Err: err}
		p.logger.Warn("snapshot write failed", "key", p.slot.Key(), "error", perr)
		return
	}
	p.logger.Debug("snapshot written", "key", p.slot.Key(), "bytes", len(payload))
}

// flush blocks until everything submitted so far has been written (or failed).
func (p *persister) flush() {
	p.mu.Lock()
	defer p.mu.Unlock()
	target := p.submitted
	for p.written < target {
		p.cond.Wait()
	}
}

// close drains outstanding writes and stops the goroutine.
func (p *persister) close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		<-p.done
		return
	}
	p.closed = true
	p.mu.Unlock()
	select {
	case p.wake <- struct{}{}:
	default:
	}
	<-p.done
}
