// Package memory implements the blob store in process memory.
package memory

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"opsdesk/internal/blob/core"
)

type entry struct {
	obj  core.Object
	data []byte
}

// Store implements core.Store in memory. Contents are lost with the process.
type Store struct {
	mu   sync.RWMutex
	objs map[string]entry
}

// New returns an empty store.
func New() *Store { return &Store{objs: make(map[string]entry)} }

// Driver reports core.DriverMemory.
func (s *Store) Driver() core.Driver { return core.DriverMemory }

// Write stores a copy of r's content under key.
func (s *Store) Write(_ context.Context, key string, r io.Reader, opts core.WriteOptions) (core.Object, error) {
	if strings.TrimSpace(key) == "" {
		return core.Object{}, fmt.Errorf("empty key")
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return core.Object{}, err
	}
	sum := sha256.Sum256(data)
	obj := core.Object{
		Key:          key,
		Size:         int64(len(data)),
		ContentType:  opts.ContentType,
		Checksum:     hex.EncodeToString(sum[:]),
		Metadata:     core.CloneMetadata(opts.Metadata),
		LastModified: time.Now().UTC(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.objs[key]; exists {
		return core.Object{}, fmt.Errorf("%w: %s", core.ErrExists, key)
	}
	s.objs[key] = entry{obj: obj, data: data}
	return copyObject(obj), nil
}

// Read returns a reader over a private copy of the object content.
func (s *Store) Read(_ context.Context, key string) (core.Object, io.ReadCloser, error) {
	s.mu.RLock()
	e, ok := s.objs[key]
	s.mu.RUnlock()
	if !ok {
		return core.Object{}, nil, fmt.Errorf("%w: %s", core.ErrNotFound, key)
	}
	data := append([]byte(nil), e.data...)
	return copyObject(e.obj), io.NopCloser(bytes.NewReader(data)), nil
}

// Stat returns object attributes.
func (s *Store) Stat(_ context.Context, key string) (core.Object, error) {
	s.mu.RLock()
	e, ok := s.objs[key]
	s.mu.RUnlock()
	if !ok {
		return core.Object{}, fmt.Errorf("%w: %s", core.ErrNotFound, key)
	}
	return copyObject(e.obj), nil
}

// Remove deletes key and reports whether it existed.
func (s *Store) Remove(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.objs[key]
	delete(s.objs, key)
	return ok, nil
}

// List returns objects whose key starts with prefix, ordered by key.
func (s *Store) List(_ context.Context, prefix string) ([]core.Object, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]core.Object, 0, len(s.objs))
	for k, e := range s.objs {
		if strings.HasPrefix(k, prefix) {
			out = append(out, copyObject(e.obj))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func copyObject(o core.Object) core.Object {
	o.Metadata = core.CloneMetadata(o.Metadata)
	return o
}
