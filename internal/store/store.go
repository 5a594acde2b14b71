// Package store defines the document store contract and its implementations.
//
// Every backend exposes the same whole-document semantics: ReadAll loads the
// full collection, WriteAll replaces it. Handlers read, modify in memory, and
// write back; there is no partial update at the storage layer.
package store

import (
	"context"
	"fmt"

	"github.com/filmoteca/filmoteca/internal/model"
)

// Supported backend names for New.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Store is the persistence contract for the movie collection document.
type Store interface {
	// ReadAll returns the whole document. A missing, unreadable, or corrupt
	// document is a storage error, not an implicit empty collection.
	ReadAll(ctx context.Context) (*model.Collection, error)

	// WriteAll replaces the whole document.
	WriteAll(ctx context.Context, c *model.Collection) error

	// HealthCheck verifies the backing medium is reachable.
	HealthCheck(ctx context.Context) error

	// Close releases any resources held by the backend.
	Close() error
}

// New creates a Store for the given backend name.
//
// Supported backends:
//
//	"json"   - single JSON document at path (default)
//	"sqlite" - SQLite database at path
//	"memory" - in-memory (ephemeral, for testing)
func New(backend, path string) (Store, error) {
	switch backend {
	case BackendJSON, "":
		return NewJSONFileStore(path), nil
	case BackendSQLite:
		return NewSQLiteStore(path)
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store backend: %q (supported: json, sqlite, memory)", backend)
	}
}
