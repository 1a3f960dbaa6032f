package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// FileStore persists preferences as a single JSON object on disk.
// The whole file is loaded on open and rewritten on every mutation, which is
// fine for the handful of keys a console keeps.
type FileStore struct {
	mu     sync.RWMutex
	path   string
	data   map[string]string
	closed bool
}

// OpenFileStore loads the JSON file at path, creating parent directories.
// A missing file yields an empty store; a file that is not a JSON object of
// strings is an error.
func OpenFileStore(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("storage: create dir for %q: %w", path, err)
	}

	fsStore := &FileStore{path: path, data: make(map[string]string)}

	raw, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fsStore, nil
	case err != nil:
		return nil, fmt.Errorf("storage: read %q: %w", path, err)
	case len(raw) == 0:
		return fsStore, nil
	}

	if err := json.Unmarshal(raw, &fsStore.data); err != nil {
		return nil, fmt.Errorf("storage: decode %q: %w", path, err)
	}
	if fsStore.data == nil {
		fsStore.data = make(map[string]string)
	}
	return fsStore, nil
}

// Path returns the backing file location.
func (f *FileStore) Path() string { return f.path }

// Get returns the value stored under key.
func (f *FileStore) Get(key string) (string, bool, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.closed {
		return "", false, ErrClosed
	}
	v, ok := f.data[key]
	return v, ok, nil
}

// Set stores value under key and flushes the file.
func (f *FileStore) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return ErrClosed
	}

	prev, existed := f.data[key]
	f.data[key] = value
	if err := f.flushLocked(); err != nil {
		if existed {
			f.data[key] = prev
		} else {
			delete(f.data, key)
		}
		return err
	}
	return nil
}

// Delete removes key and flushes the file.
func (f *FileStore) Delete(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return ErrClosed
	}

	prev, existed := f.data[key]
	if !existed {
		return nil
	}
	delete(f.data, key)
	if err := f.flushLocked(); err != nil {
		f.data[key] = prev
		return err
	}
	return nil
}

// Close marks the store closed. Every mutation is already on disk.
func (f *FileStore) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

// flushLocked writes the map to a temp file and renames it over the target so
// readers never observe a half-written file. Callers hold f.mu.
func (f *FileStore) flushLocked() error {
	raw, err := json.MarshalIndent(f.data, "", "  ")
	if err != nil {
		return fmt.Errorf("storage: encode: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".preferences-*.tmp")
	if err != nil {
		return fmt.Errorf("storage: create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("storage: write %q: %w", tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("storage: sync %q: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("storage: close %q: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("storage: replace %q: %w", f.path, err)
	}
	return nil
}
