// Package core defines the blob storage abstraction used to archive snapshots.
package core

import (
	"context"
	"errors"
	"io"
	"time"
)

// Driver identifies a concrete blob storage backend implementation.
type Driver string

const (
	// DriverFilesystem stores blobs under a local directory.
	DriverFilesystem Driver = "fs"
	// DriverS3 stores blobs in an S3 / MinIO compatible bucket.
	DriverS3 Driver = "s3"
	// DriverMemory keeps blobs in process memory.
	DriverMemory Driver = "memory"
)

// WriteOptions carries optional attributes for Write.
type WriteOptions struct {
	ContentType string
	Metadata    map[string]string
}

// Object describes a stored blob.
type Object struct {
	Key          string            `json:"key"`
	Size         int64             `json:"size_bytes"`
	ContentType  string            `json:"content_type,omitempty"`
	Checksum     string            `json:"checksum,omitempty"`
	Metadata     map[string]string `json:"metadata,omitempty"`
	LastModified time.Time         `json:"last_modified"`
}

// Store is a small S3-like object store. Write is create-only; List is
// ordered by key ascending.
type Store interface {
	Write(ctx context.Context, key string, r io.Reader, opts WriteOptions) (Object, error)
	Read(ctx context.Context, key string) (Object, io.ReadCloser, error)
	Stat(ctx context.Context, key string) (Object, error)
	Remove(ctx context.Context, key string) (bool, error)
	List(ctx context.Context, prefix string) ([]Object, error)
	Driver() Driver
}

var (
	// ErrExists is returned by Write when key is already taken.
	ErrExists = errors.New("blob already exists")
	// ErrNotFound is returned by Read and Stat for unknown keys.
	ErrNotFound = errors.New("blob not found")
)

// CloneMetadata copies a metadata map, preserving nil.
func CloneMetadata(in map[string]string) map[string]string {
	if in == nil {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
