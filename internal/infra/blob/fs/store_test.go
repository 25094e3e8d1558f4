package fs

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"opsdesk/internal/blob/core"
)

func newTempStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return s
}

func TestStoreWriteReadStatListRemove(t *testing.T) {
	ctx := context.Background()
	s := newTempStore(t)
	if s.Driver() != core.DriverFilesystem {
		t.Fatalf("unexpected driver %s", s.Driver())
	}

	obj, err := s.Write(ctx, "hotel-admin-data/0001.json", strings.NewReader(`{"version":1}`), core.WriteOptions{
		ContentType: "application/json",
		Metadata:    map[string]string{"app": "hotel"},
	})
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if obj.Size != int64(len(`{"version":1}`)) || obj.Checksum == "" {
		t.Fatalf("unexpected object %+v", obj)
	}

	got, rc, err := s.Read(ctx, "hotel-admin-data/0001.json")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	body, _ := io.ReadAll(rc)
	_ = rc.Close()
	if string(body) != `{"version":1}` {
		t.Fatalf("unexpected body %q", body)
	}
	if got.Metadata["app"] != "hotel" || got.ContentType != "application/json" {
		t.Fatalf("metadata not persisted: %+v", got)
	}

	if _, err := s.Stat(ctx, "hotel-admin-data/0001.json"); err != nil {
		t.Fatalf("stat: %v", err)
	}
	if _, err := s.Write(ctx, "hotel-admin-data/0002.json", bytes.NewReader([]byte("{}")), core.WriteOptions{}); err != nil {
		t.Fatalf("second write: %v", err)
	}
	if _, err := s.Write(ctx, "other/0001.json", bytes.NewReader([]byte("{}")), core.WriteOptions{}); err != nil {
		t.Fatalf("other write: %v", err)
	}

	list, err := s.List(ctx, "hotel-admin-data/")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].Key != "hotel-admin-data/0001.json" || list[1].Key != "hotel-admin-data/0002.json" {
		t.Fatalf("unexpected list %+v", list)
	}

	removed, err := s.Remove(ctx, "hotel-admin-data/0001.json")
	if err != nil || !removed {
		t.Fatalf("remove: %v %v", removed, err)
	}
	removed, err = s.Remove(ctx, "hotel-admin-data/0001.json")
	if err != nil || removed {
		t.Fatalf("second remove should report false, got %v %v", removed, err)
	}
	if _, err := s.Stat(ctx, "hotel-admin-data/0001.json"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected not found after remove, got %v", err)
	}
}

func TestStoreWriteIsCreateOnly(t *testing.T) {
	ctx := context.Background()
	s := newTempStore(t)
	if _, err := s.Write(ctx, "k", strings.NewReader("a"), core.WriteOptions{}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := s.Write(ctx, "k", strings.NewReader("b"), core.WriteOptions{}); !errors.Is(err, core.ErrExists) {
		t.Fatalf("expected ErrExists, got %v", err)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("boom") }

func TestStoreWriteReaderErrorLeavesNothing(t *testing.T) {
	ctx := context.Background()
	s := newTempStore(t)
	if _, err := s.Write(ctx, "broken", failingReader{}, core.WriteOptions{}); err == nil {
		t.Fatalf("expected reader error")
	}
	if list, _ := s.List(ctx, ""); len(list) != 0 {
		t.Fatalf("expected no objects after failed write, got %+v", list)
	}
	entries, _ := os.ReadDir(s.Root())
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".tmp-") {
			t.Fatalf("temp file left behind: %s", e.Name())
		}
	}
}

func TestStoreRejectsUnsafeKeys(t *testing.T) {
	ctx := context.Background()
	s := newTempStore(t)
	for _, key := range []string{"", "../escape", "/abs", "a/../b", "x.meta"} {
		if _, err := s.Write(ctx, key, strings.NewReader("x"), core.WriteOptions{}); err == nil {
			t.Fatalf("expected error for key %q", key)
		}
	}
}

func TestStoreReadMissing(t *testing.T) {
	s := newTempStore(t)
	if _, _, err := s.Read(context.Background(), "missing"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestStoreListCorruptSidecar(t *testing.T) {
	s := newTempStore(t)
	if err := os.WriteFile(filepath.Join(s.Root(), "bad.meta"), []byte("{"), 0o600); err != nil {
		t.Fatalf("write corrupt meta: %v", err)
	}
	if _, err := s.List(context.Background(), ""); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestNewRejectsFileRoot(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(file, []byte("x"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := New(filepath.Join(file, "nested")); err == nil {
		t.Fatalf("expected error when root is under a file")
	}
}
