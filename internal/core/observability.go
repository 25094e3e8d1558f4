package core

import (
	"context"
	"encoding/json"
	"expvar"
	"fmt"
	"io"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

var expvarSeq atomic.Uint64

// OperationStats aggregates the outcomes of one operation.
type OperationStats struct {
	Calls      int64   `json:"calls"`
	Errors     int64   `json:"errors"`
	TotalMS    float64 `json:"total_ms"`
	MaxMS      float64 `json:"max_ms"`
	LastStatus string  `json:"last_status"`
}

// ExpvarMetricsRecorder keeps per-operation counters and publishes them on
// the expvar page of the process.
type ExpvarMetricsRecorder struct {
	name string
	mu   sync.Mutex
	ops  map[string]OperationStats
}

// NewExpvarMetricsRecorder publishes a recorder under name, or under a
// generated opsdesk_service_metrics_N name when empty. expvar panics on a
// duplicate name.
func NewExpvarMetricsRecorder(name string) *ExpvarMetricsRecorder {
	if name == "" {
		name = fmt.Sprintf("opsdesk_service_metrics_%d", expvarSeq.Add(1))
	}
	rec := &ExpvarMetricsRecorder{name: name, ops: make(map[string]OperationStats)}
	expvar.Publish(name, expvar.Func(func() any { return rec.Stats() }))
	return rec
}

// Name is the expvar key.
func (r *ExpvarMetricsRecorder) Name() string { return r.name }

// Stats copies the current counters.
func (r *ExpvarMetricsRecorder) Stats() map[string]OperationStats {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]OperationStats, len(r.ops))
	for op, st := range r.ops {
		out[op] = st
	}
	return out
}

// Observe implements MetricsRecorder.
func (r *ExpvarMetricsRecorder) Observe(_ context.Context, operation string, success bool, duration time.Duration) {
	if operation == "" {
		return
	}
	ms := float64(duration) / float64(time.Millisecond)
	r.mu.Lock()
	defer r.mu.Unlock()
	st := r.ops[operation]
	st.Calls++
	st.TotalMS += ms
	if ms > st.MaxMS {
		st.MaxMS = ms
	}
	st.LastStatus = "success"
	if !success {
		st.Errors++
		st.LastStatus = "error"
	}
	r.ops[operation] = st
}

// JSONTraceEntry is one finished span.
type JSONTraceEntry struct {
	Operation  string    `json:"operation"`
	Status     string    `json:"status"`
	DurationMS float64   `json:"duration_ms"`
	Error      string    `json:"error,omitempty"`
	StartedAt  time.Time `json:"started_at"`
	EndedAt    time.Time `json:"ended_at"`
}

// JSONTracer writes each finished span as a JSON line and keeps a copy.
type JSONTracer struct {
	mu      sync.Mutex
	entries []JSONTraceEntry
	enc     *json.Encoder
}

// NewJSONTracer returns a tracer writing to w. A nil w only retains spans.
func NewJSONTracer(w io.Writer) *JSONTracer {
	t := &JSONTracer{}
	if w != nil {
		t.enc = json.NewEncoder(w)
	}
	return t
}

// Entries returns the spans finished so far.
func (t *JSONTracer) Entries() []JSONTraceEntry {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]JSONTraceEntry(nil), t.entries...)
}

// Start implements Tracer.
func (t *JSONTracer) Start(ctx context.Context, operation string) (context.Context, TraceSpan) {
	return ctx, &jsonSpan{tracer: t, operation: operation, started: time.Now().UTC()}
}

type jsonSpan struct {
	tracer    *JSONTracer
	operation string
	started   time.Time
}

func (s *jsonSpan) End(err error) {
	ended := time.Now().UTC()
	entry := JSONTraceEntry{
		Operation:  s.operation,
		Status:     "success",
		DurationMS: float64(ended.Sub(s.started)) / float64(time.Millisecond),
		StartedAt:  s.started,
		EndedAt:    ended,
	}
	if err != nil {
		entry.Status = "error"
		entry.Error = err.Error()
	}
	s.tracer.mu.Lock()
	defer s.tracer.mu.Unlock()
	s.tracer.entries = append(s.tracer.entries, entry)
	if s.tracer.enc != nil {
		_ = s.tracer.enc.Encode(entry)
	}
}

// AuditLog is an in-process AuditRecorder that keeps the most recent entries
// and mirrors each one to a logger.
type AuditLog struct {
	mu      sync.Mutex
	limit   int
	entries []AuditEntry
	logger  Logger
}

// NewAuditLog keeps up to limit entries; limit <= 0 keeps everything. A nil
// logger disables mirroring.
func NewAuditLog(limit int, logger Logger) *AuditLog {
	if logger == nil {
		logger = noopLogger{}
	}
	return &AuditLog{limit: limit, logger: logger}
}

// Record implements AuditRecorder.
func (a *AuditLog) Record(_ context.Context, entry AuditEntry) {
	a.logger.Debug("audit",
		"operation", entry.Operation,
		"entity", entry.Entity,
		"action", entry.Action,
		"id", entry.EntityID,
		"status", entry.Status,
	)
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries = append(a.entries, entry)
	if a.limit > 0 && len(a.entries) > a.limit {
		a.entries = append([]AuditEntry(nil), a.entries[len(a.entries)-a.limit:]...)
	}
}

// Entries returns recorded entries oldest first.
func (a *AuditLog) Entries() []AuditEntry {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]AuditEntry(nil), a.entries...)
}

// Failures returns entries with an error status, ordered by operation name
// then time.
func (a *AuditLog) Failures() []AuditEntry {
	var out []AuditEntry
	for _, e := range a.Entries() {
		if e.Status == AuditStatusError {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Operation < out[j].Operation })
	return out
}
