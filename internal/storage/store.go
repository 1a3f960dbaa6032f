//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks

package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrClosed is returned by every operation on a store after Close.
var ErrClosed = errors.New("storage: store is closed")

// Store is a string key/value store.
//
// Get reports whether the key exists; a missing key is not an error.
// Implementations must be safe for concurrent use.
type Store interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Delete(key string) error
	Close() error
}

// Backend names accepted by Open.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Options selects and configures a backend for Open.
type Options struct {
	// Backend is one of BackendMemory, BackendFile or BackendSQLite.
	Backend string
	// Path is the file or database location. Empty means DefaultPath(Backend).
	Path string
}

// Open creates the store described by opts.
func Open(opts Options) (Store, error) {
	backend := strings.ToLower(opts.Backend)
	if backend == "" {
		backend = BackendFile
	}

	path := opts.Path
	if path == "" && backend != BackendMemory {
		p, err := DefaultPath(backend)
		if err != nil {
			return nil, err
		}
		path = p
	}

	switch backend {
	case BackendMemory:
		return NewMemoryStore(), nil
	case BackendFile:
		return OpenFileStore(path)
	case BackendSQLite:
		return OpenSQLiteStore(path)
	default:
		return nil, fmt.Errorf("storage: unknown backend %q", opts.Backend)
	}
}

// DefaultPath returns the per-user location for the given backend,
// e.g. ~/.config/traceway/preferences.json.
func DefaultPath(backend string) (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("storage: locate config dir: %w", err)
	}
	name := "preferences.json"
	if backend == BackendSQLite {
		name = "preferences.db"
	}
	return filepath.Join(dir, "traceway", name), nil
}
