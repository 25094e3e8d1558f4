// Package core is the admin store façade consumed by the dashboards and the
// operator CLI. It serialises mutations through the in-memory store, applies
// the status workflows, simulates request latency, and hands each committed
// state to a background persister.
package core

import (
	"context"
	"time"

	"opsdesk/pkg/domain"
)

// Clock provides the current time for transaction stamps and audit entries.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

// Now implements Clock.
func (f ClockFunc) Now() time.Time { return f() }

// Logger is the structured logging surface used by the service. *slog.Logger
// satisfies it.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// AuditStatus is the outcome recorded for an audited operation.
type AuditStatus string

// Audit outcomes.
const (
	AuditStatusSuccess AuditStatus = "success"
	AuditStatusError   AuditStatus = "error"
)

// AuditEntry describes one mutating operation.
type AuditEntry struct {
	Operation string
	Entity    domain.EntityType
	Action    domain.Action
	EntityID  string
	Status    AuditStatus
	Error     string
	Duration  time.Duration
	Timestamp time.Time
}

// AuditRecorder receives an entry for every audited operation.
type AuditRecorder interface {
	Record(ctx context.Context, entry AuditEntry)
}

// MetricsRecorder observes the outcome and duration of every operation.
type MetricsRecorder interface {
	Observe(ctx context.Context, operation string, success bool, duration time.Duration)
}

// TraceSpan is ended once per operation with its error, if any.
type TraceSpan interface {
	End(err error)
}

// Tracer starts a span per operation.
type Tracer interface {
	Start(ctx context.Context, operation string) (context.Context, TraceSpan)
}

type noopAuditRecorder struct{}

func (noopAuditRecorder) Record(context.Context, AuditEntry) {}

type noopMetricsRecorder struct{}

func (noopMetricsRecorder) Observe(context.Context, string, bool, time.Duration) {}

type noopTracer struct{}

func (noopTracer) Start(ctx context.Context, _ string) (context.Context, TraceSpan) {
	return ctx, noopSpan{}
}

type noopSpan struct{}

func (noopSpan) End(error) {}

// ServiceOption configures a Service.
type ServiceOption func(*serviceOptions)

type serviceOptions struct {
	clock      Clock
	logger     Logger
	audit      AuditRecorder
	metrics    MetricsRecorder
	tracer     Tracer
	location   *time.Location
	latencyMin time.Duration
	latencyMax time.Duration
	delay      func(time.Duration)
	slot       domain.SnapshotSlot
}

func defaultServiceOptions() serviceOptions {
	return serviceOptions{
		clock:    ClockFunc(func() time.Time { return time.Now().UTC() }),
		logger:   noopLogger{},
		audit:    noopAuditRecorder{},
		metrics:  noopMetricsRecorder{},
		tracer:   noopTracer{},
		location: time.UTC,
		delay:    time.Sleep,
	}
}

// WithClock overrides the service clock.
func WithClock(clock Clock) ServiceOption {
	return func(o *serviceOptions) {
		if clock != nil {
			o.clock = clock
		}
	}
}

// WithLogger sets the logger. A nil logger keeps the no-op default.
func WithLogger(logger Logger) ServiceOption {
	return func(o *serviceOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithAuditRecorder sets the audit sink.
func WithAuditRecorder(recorder AuditRecorder) ServiceOption {
	return func(o *serviceOptions) {
		if recorder != nil {
			o.audit = recorder
		}
	}
}

// WithMetricsRecorder sets the metrics sink.
func WithMetricsRecorder(recorder MetricsRecorder) ServiceOption {
	return func(o *serviceOptions) {
		if recorder != nil {
			o.metrics = recorder
		}
	}
}

// WithTracer sets the tracer.
func WithTracer(tracer Tracer) ServiceOption {
	return func(o *serviceOptions) {
		if tracer != nil {
			o.tracer = tracer
		}
	}
}

// WithLocation sets the time zone that defines calendar days for KPIs and
// upcoming reservations.
func WithLocation(loc *time.Location) ServiceOption {
	return func(o *serviceOptions) {
		if loc != nil {
			o.location = loc
		}
	}
}

// WithLatency makes every mutation wait a uniformly random duration in
// [min, max] before it is applied. Zero (the default) disables the wait.
func WithLatency(min, max time.Duration) ServiceOption {
	return func(o *serviceOptions) {
		if min < 0 {
			min = 0
		}
		if max < min {
			max = min
		}
		o.latencyMin, o.latencyMax = min, max
	}
}

// WithDelay replaces time.Sleep for the latency wait.
func WithDelay(delay func(time.Duration)) ServiceOption {
	return func(o *serviceOptions) {
		if delay != nil {
			o.delay = delay
		}
	}
}

// WithSlot enables snapshot persistence to slot. Without a slot the service
// runs purely in memory.
func WithSlot(slot domain.SnapshotSlot) ServiceOption {
	return func(o *serviceOptions) {
		o.slot = slot
	}
}
