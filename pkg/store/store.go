// Package store implements the generic reactive entity store underlying
// both the cart and the order list: an ordered, identifier-keyed,
// in-memory collection that persists a full snapshot after every mutation
// and then fans out a change notification to its subscribers.
package store

import (
	"context"
	"sync"

	"go-storefront/pkg/logger"
)

// Options configures a Store instance
type Options[K comparable, E any] struct {
	// KeyOf extracts the identifier an entity is keyed by
	KeyOf func(E) K

	// Merge reconciles an incoming entity with the existing one under the
	// same key. When nil the incoming entity replaces the existing one.
	Merge func(existing *E, incoming E)

	// Clone deep-copies an entity for reads. When nil a value copy is used,
	// which is sufficient for entities without reference fields.
	Clone func(E) E

	// Snapshot persists the collection; required
	Snapshot *Snapshot[E]

	Log *logger.Logger
}

// Store owns an ordered collection of entities keyed by K. Every mutation
// is applied in memory, persisted, and then announced to subscribers,
// synchronously and in that order, before the call returns. Reads hand out
// defensive copies only.
type Store[K comparable, E any] struct {
	mu    sync.Mutex
	items []E
	opts  Options[K, E]
	subs  *notifier
}

// New creates a store whose initial state is the persisted snapshot
// (empty when the key is absent or the stored value is corrupt)
func New[K comparable, E any](ctx context.Context, opts Options[K, E]) *Store[K, E] {
	s := &Store[K, E]{
		opts: opts,
		subs: newNotifier(opts.Log),
	}
	s.items = opts.Snapshot.Load(ctx)
	return s
}

// Upsert inserts entity preserving insertion order, or merges it into the
// existing entity under the same key
func (s *Store[K, E]) Upsert(ctx context.Context, entity E) {
	s.mu.Lock()
	if i := s.indexOf(s.opts.KeyOf(entity)); i >= 0 {
		if s.opts.Merge != nil {
			s.opts.Merge(&s.items[i], entity)
		} else {
			s.items[i] = entity
		}
	} else {
		s.items = append(s.items, entity)
	}
	snapshot := s.copyLocked()
	s.mu.Unlock()

	s.commit(ctx, snapshot)
}

// Remove deletes the entity under key. Removing an absent key is not an error.
func (s *Store[K, E]) Remove(ctx context.Context, key K) {
	s.mu.Lock()
	if i := s.indexOf(key); i >= 0 {
		s.items = append(s.items[:i], s.items[i+1:]...)
	}
	snapshot := s.copyLocked()
	s.mu.Unlock()

	s.commit(ctx, snapshot)
}

// Update applies a partial mutation to the entity under key.
// Updating an absent key is a no-op.
func (s *Store[K, E]) Update(ctx context.Context, key K, fn func(*E)) {
	s.mu.Lock()
	i := s.indexOf(key)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	fn(&s.items[i])
	snapshot := s.copyLocked()
	s.mu.Unlock()

	s.commit(ctx, snapshot)
}

// Clear empties the collection
func (s *Store[K, E]) Clear(ctx context.Context) {
	s.mu.Lock()
	s.items = nil
	s.mu.Unlock()

	s.commit(ctx, nil)
}

// All returns an independent copy of the current ordered collection
func (s *Store[K, E]) All() []E {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyLocked()
}

// Find returns the entity under key, if present
func (s *Store[K, E]) Find(key K) (E, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(key)
	if i < 0 {
		var zero E
		return zero, false
	}
	if s.opts.Clone != nil {
		return s.opts.Clone(s.items[i]), true
	}
	return s.items[i], true
}

// Len returns the number of entities currently held
func (s *Store[K, E]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Subscribe registers a change callback and returns an idempotent
// unsubscribe func. Callbacks run synchronously after each mutation has
// been persisted, so a callback reading the store observes the new state.
func (s *Store[K, E]) Subscribe(fn func()) func() {
	return s.subs.subscribe(fn)
}

// commit persists the snapshot, then notifies subscribers
func (s *Store[K, E]) commit(ctx context.Context, snapshot []E) {
	s.opts.Snapshot.Save(ctx, snapshot)
	s.subs.notifyAll()
}

// indexOf must be called with the mutex held
func (s *Store[K, E]) indexOf(key K) int {
	for i := range s.items {
		if s.opts.KeyOf(s.items[i]) == key {
			return i
		}
	}
	return -1
}

// copyLocked must be called with the mutex held
func (s *Store[K, E]) copyLocked() []E {
	out := make([]E, len(s.items))
	if s.opts.Clone != nil {
		for i := range s.items {
			out[i] = s.opts.Clone(s.items[i])
		}
	} else {
		copy(out, s.items)
	}
	return out
}
