package memory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"opsdesk/internal/blob/core"
)

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := New()
	if s.Driver() != core.DriverMemory {
		t.Fatalf("unexpected driver %s", s.Driver())
	}
	meta := map[string]string{"app": "hospital"}
	if _, err := s.Write(ctx, "b", strings.NewReader("two"), core.WriteOptions{}); err != nil {
		t.Fatalf("write b: %v", err)
	}
	obj, err := s.Write(ctx, "a", strings.NewReader("one"), core.WriteOptions{ContentType: "text/plain", Metadata: meta})
	if err != nil {
		t.Fatalf("write a: %v", err)
	}
	meta["app"] = "mutated"
	if obj.Size != 3 || obj.Checksum == "" {
		t.Fatalf("unexpected object %+v", obj)
	}

	got, rc, err := s.Read(ctx, "a")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	body, _ := io.ReadAll(rc)
	if string(body) != "one" || got.Metadata["app"] != "hospital" {
		t.Fatalf("unexpected read %q %+v", body, got)
	}

	list, _ := s.List(ctx, "")
	if len(list) != 2 || list[0].Key != "a" {
		t.Fatalf("expected sorted list, got %+v", list)
	}
	if ok, _ := s.Remove(ctx, "a"); !ok {
		t.Fatalf("expected remove to report existing key")
	}
	if ok, _ := s.Remove(ctx, "a"); ok {
		t.Fatalf("expected second remove to report false")
	}
	if _, err := s.Stat(ctx, "a"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, _, err := s.Read(ctx, "a"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestStoreWriteErrors(t *testing.T) {
	ctx := context.Background()
	s := New()
	if _, err := s.Write(ctx, "", strings.NewReader("x"), core.WriteOptions{}); err == nil {
		t.Fatalf("expected empty key error")
	}
	if _, err := s.Write(ctx, "k", strings.NewReader("x"), core.WriteOptions{}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := s.Write(ctx, "k", strings.NewReader("y"), core.WriteOptions{}); !errors.Is(err, core.ErrExists) {
		t.Fatalf("expected ErrExists, got %v", err)
	}
	if _, err := s.Write(ctx, "r", failingReader{}, core.WriteOptions{}); err == nil {
		t.Fatalf("expected reader error")
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, fmt.Errorf("fail") }
