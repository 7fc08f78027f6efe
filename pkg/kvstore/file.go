package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// File is a Store persisted as a single JSON document on local disk
type File struct {
	mu      sync.Mutex
	path    string
	entries map[string]string
}

// NewFile opens (or creates) a file-backed store at path
func NewFile(path string) (*File, error) {
	f := &File{
		path:    path,
		entries: make(map[string]string),
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return f, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read store file: %w", err)
	}

	if err := json.Unmarshal(data, &f.entries); err != nil {
		return nil, fmt.Errorf("failed to parse store file: %w", err)
	}

	return f, nil
}

// Get returns the value under key
func (f *File) Get(ctx context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	value, ok := f.entries[key]
	return value, ok, nil
}

// Set writes value under key and flushes the whole document to disk
func (f *File) Set(ctx context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.entries[key] = value
	return f.flush()
}

// flush writes atomically via a temp file rename
func (f *File) flush() error {
	data, err := json.MarshalIndent(f.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode store file: %w", err)
	}

	tmp := f.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write store file: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("failed to replace store file: %w", err)
	}

	return nil
}

var _ Store = (*File)(nil)
