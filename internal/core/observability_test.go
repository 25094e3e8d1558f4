package core

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"opsdesk/pkg/domain"
)

func TestOperationsAreAuditedTracedAndMeasured(t *testing.T) {
	ctx := context.Background()
	audit := NewAuditLog(0, nil)
	var traceOut bytes.Buffer
	tracer := NewJSONTracer(&traceOut)
	metrics := NewExpvarMetricsRecorder("")
	svc := newHotel(t, WithAuditRecorder(audit), WithTracer(tracer), WithMetricsRecorder(metrics))

	if _, err := svc.Restock(ctx, "inv-1", 10, "ops"); err != nil {
		t.Fatalf("restock: %v", err)
	}
	if _, err := svc.Restock(ctx, "inv-1", 0, "ops"); err == nil {
		t.Fatalf("zero restock should fail")
	}
	_ = svc.Rooms(ctx)

	entries := audit.Entries()
	if len(entries) != 2 {
		t.Fatalf("audit entries = %d, want 2 (reads are not audited)", len(entries))
	}
	first := entries[0]
	if first.Operation != OpRestock || first.Entity != domain.EntityInventoryItem || first.Action != domain.ActionUpdate ||
		first.EntityID != "inv-1" || first.Status != AuditStatusSuccess || !first.Timestamp.Equal(testNow) {
		t.Fatalf("first entry = %+v", first)
	}
	if entries[1].Status != AuditStatusError || !strings.Contains(entries[1].Error, "invalid restock quantity") {
		t.Fatalf("second entry = %+v", entries[1])
	}
	if failures := audit.Failures(); len(failures) != 1 {
		t.Fatalf("failures = %+v", failures)
	}

	spans := tracer.Entries()
	if len(spans) != 3 || spans[2].Operation != OpListRooms || spans[1].Status != "error" {
		t.Fatalf("spans = %+v", spans)
	}
	lines := strings.Split(strings.TrimSpace(traceOut.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("trace output has %d lines", len(lines))
	}
	var decoded JSONTraceEntry
	if err := json.Unmarshal([]byte(lines[0]), &decoded); err != nil || decoded.Operation != OpRestock {
		t.Fatalf("decoded span = %+v %v", decoded, err)
	}

	stats := metrics.Stats()
	if st := stats[OpRestock]; st.Calls != 2 || st.Errors != 1 || st.LastStatus != "error" {
		t.Fatalf("restock stats = %+v", st)
	}
	if st := stats[OpListRooms]; st.Calls != 1 || st.Errors != 0 {
		t.Fatalf("list stats = %+v", st)
	}
	if !strings.HasPrefix(metrics.Name(), "opsdesk_service_metrics_") {
		t.Fatalf("name = %s", metrics.Name())
	}
}

func TestAuditLogLimit(t *testing.T) {
	log := NewAuditLog(2, nil)
	for _, op := range []string{"a", "b", "c"} {
		log.Record(context.Background(), AuditEntry{Operation: op})
	}
	entries := log.Entries()
	if len(entries) != 2 || entries[0].Operation != "b" || entries[1].Operation != "c" {
		t.Fatalf("entries = %+v", entries)
	}
}

func TestPrometheusMetricsRecorder(t *testing.T) {
	ctx := context.Background()
	reg := prometheus.NewRegistry()
	rec, err := NewPrometheusMetricsRecorder(reg)
	if err != nil {
		t.Fatalf("new recorder: %v", err)
	}
	svc := newHotel(t, WithMetricsRecorder(rec))

	if _, err := svc.StartTask(ctx, "task-1"); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := svc.StartTask(ctx, "task-1"); err == nil {
		t.Fatalf("second start should fail")
	}

	if got := testutil.ToFloat64(rec.calls.WithLabelValues(OpStartTask, "success")); got != 1 {
		t.Fatalf("success count = %v", got)
	}
	if got := testutil.ToFloat64(rec.calls.WithLabelValues(OpStartTask, "error")); got != 1 {
		t.Fatalf("error count = %v", got)
	}
	if got := testutil.CollectAndCount(rec.duration, "opsdesk_operation_duration_seconds"); got != 1 {
		t.Fatalf("histogram series = %d", got)
	}

	if _, err := NewPrometheusMetricsRecorder(reg); err == nil {
		t.Fatalf("registering twice should fail")
	}
}

func TestJSONTracerWithoutWriter(t *testing.T) {
	tracer := NewJSONTracer(nil)
	_, span := tracer.Start(context.Background(), "noop")
	time.Sleep(time.Millisecond)
	span.End(nil)
	entries := tracer.Entries()
	if len(entries) != 1 || entries[0].Status != "success" || entries[0].DurationMS <= 0 {
		t.Fatalf("entries = %+v", entries)
	}
}
