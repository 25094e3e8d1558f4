package blob

import (
	"context"
	"fmt"

	infraFS "opsdesk/internal/infra/blob/fs"
	infraMemory "opsdesk/internal/infra/blob/memory"
	infraS3 "opsdesk/internal/infra/blob/s3"
)

// S3Config re-exports the infra S3 configuration.
type S3Config = infraS3.Config

// Config selects and configures a blob backend.
type Config struct {
	Driver Driver
	FSRoot string
	S3     S3Config
}

// Open builds the Store selected by cfg.Driver. An empty driver means fs.
func Open(ctx context.Context, cfg Config) (Store, error) {
	driver := cfg.Driver
	if driver == "" {
		driver = DriverFilesystem
	}
	switch driver {
	case DriverFilesystem:
		return NewFilesystem(cfg.FSRoot)
	case DriverS3:
		return NewS3(ctx, cfg.S3)
	case DriverMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown blob driver %s", driver)
	}
}

// NewFilesystem stores blobs below root (default ./snapshots).
func NewFilesystem(root string) (Store, error) {
	return infraFS.New(root)
}

// NewMemory returns a process-local store.
func NewMemory() Store { return infraMemory.New() }

// NewS3 constructs an S3-backed store.
func NewS3(ctx context.Context, cfg S3Config) (Store, error) {
	return infraS3.New(ctx, cfg)
}

// NewMockS3ForTests exposes the in-process S3 fake for cross-package tests.
func NewMockS3ForTests() Store { return infraS3.NewMock() }
