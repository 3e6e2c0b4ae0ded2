// Package storage persists the record list as a single serialized value under
// a fixed key in a key-value store.
package storage

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned by Get when the key is absent.
	ErrNotFound = errors.New("storage: key not found")
	// ErrCorrupt is returned by LoadRecords when the stored value cannot be decoded.
	ErrCorrupt = errors.New("storage: stored data is malformed")
)

// DefaultKey is the key the record list is stored under.
const DefaultKey = "items"

// Backend names accepted by Open.
const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
	BackendMemory = "memory"
)

// Store is a synchronous key-value store.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
	Close() error
}

// Open returns the Store for the given backend name. path is the database
// file for sqlite and the directory for file; memory ignores it.
func Open(backend, path string) (Store, error) {
	switch backend {
	case BackendSQLite, "":
		if path == "" {
			return nil, fmt.Errorf("sqlite backend requires a path")
		}
		return NewSQLite(path)
	case BackendFile:
		if path == "" {
			return nil, fmt.Errorf("file backend requires a path")
		}
		return NewFile(path)
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q: valid backends are sqlite, file, memory", backend)
	}
}
