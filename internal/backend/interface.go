package backend

import (
	"context"

	"github.com/deepmavani/XpenseTracer/internal/storage"
	"github.com/deepmavani/XpenseTracer/internal/store"
)

// CleanupFunc releases backend resources.
type CleanupFunc func() error

// BackendResult contains the snapshot store and optional extras. Archive
// is only set for the sqlite backend, where the same database also holds
// the transaction archive the worker writes.
type BackendResult struct {
	Store   store.SnapshotStore
	Archive *storage.SQLiteRepository
	Cleanup CleanupFunc
}

// Factory creates snapshot backends based on configuration.
type Factory interface {
	CreateBackend(ctx context.Context, config Config) (*BackendResult, error)
}

// Config holds configuration for backend creation.
type Config struct {
	Type BackendType

	// File specific
	SnapshotPath string

	// SQLite specific
	SQLiteDBPath string
}

// BackendType represents the kind of snapshot store.
type BackendType string

const (
	MemoryBackend BackendType = "memory"
	FileBackend   BackendType = "file"
	SQLiteBackend BackendType = "sqlite"
)

// String implements fmt.Stringer.
func (bt BackendType) String() string {
	return string(bt)
}

// IsValid returns true if the backend type is valid.
func (bt BackendType) IsValid() bool {
	switch bt {
	case MemoryBackend, FileBackend, SQLiteBackend:
		return true
	default:
		return false
	}
}
