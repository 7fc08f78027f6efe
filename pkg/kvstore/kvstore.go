// Package kvstore abstracts the durable string-keyed medium that store
// snapshots are written to. Backends range from an in-process map used in
// tests to Redis and PostgreSQL for real durability.
package kvstore

import (
	"context"
	"sync"
)

// Store is a durable string-keyed value store
type Store interface {
	// Get returns the value under key; the bool reports whether the key exists
	Get(ctx context.Context, key string) (string, bool, error)

	// Set writes value under key, replacing any previous value
	Set(ctx context.Context, key, value string) error
}

// Memory is an in-process Store used for tests and ephemeral sessions
type Memory struct {
	mu      sync.RWMutex
	entries map[string]string
}

// NewMemory creates an empty in-memory store
func NewMemory() *Memory {
	return &Memory{
		entries: make(map[string]string),
	}
}

// Get returns the value under key
func (m *Memory) Get(ctx context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.entries[key]
	return value, ok, nil
}

// Set writes value under key
func (m *Memory) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[key] = value
	return nil
}

var _ Store = (*Memory)(nil)
