package core

import (
	"math/rand"
	"sync"
	"time"
)

// latencyWindow simulates a remote round trip before each mutation. It never
// observes context cancellation: once issued, a mutation always runs.
type latencyWindow struct {
	min, max time.Duration
	delay    func(time.Duration)

	mu  sync.Mutex
	rnd *rand.Rand
}

func newLatencyWindow(min, max time.Duration, delay func(time.Duration)) *latencyWindow {
	return &latencyWindow{
		min:   min,
		max:   max,
		delay: delay,
		rnd:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (l *latencyWindow) pick() time.Duration {
	if l.max <= 0 {
		return 0
	}
	span := int64(l.max - l.min)
	if span <= 0 {
		return l.min
	}
	l.mu.Lock()
	n := l.rnd.Int63n(span + 1)
	l.mu.Unlock()
	return l.min + time.Duration(n)
}

func (l *latencyWindow) wait() {
	if d := l.pick(); d > 0 {
		l.delay(d)
	}
}
