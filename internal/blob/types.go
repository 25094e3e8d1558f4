// Package blob is the entry point to blob storage. Callers depend on the Store
// interface here; only this package reaches into the infra implementations.
package blob

import (
	"opsdesk/internal/blob/core"
)

type (
	// Driver identifies a blob backend driver.
	Driver = core.Driver
	// WriteOptions configures a blob write.
	WriteOptions = core.WriteOptions
	// Object describes stored blob metadata.
	Object = core.Object
	// Store is the interface for blob storage backends.
	Store = core.Store
)

const (
	// DriverFilesystem is the local filesystem driver.
	DriverFilesystem = core.DriverFilesystem
	// DriverS3 is the S3-compatible driver.
	DriverS3 = core.DriverS3
	// DriverMemory is the in-memory driver.
	DriverMemory = core.DriverMemory
)

var (
	// ErrExists reports a write to an existing key.
	ErrExists = core.ErrExists
	// ErrNotFound reports a missing key.
	ErrNotFound = core.ErrNotFound
)
