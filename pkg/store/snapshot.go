package store

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"go-storefront/pkg/kvstore"
	"go-storefront/pkg/logger"
)

// Snapshot serializes a full entity collection to a fixed key in the
// durable key-value medium. Failures are logged and contained: a corrupt
// or unreadable snapshot falls back to an empty collection, and a failed
// write never reaches the caller of a mutation.
type Snapshot[E any] struct {
	kv  kvstore.Store
	key string
	log *logger.Logger
}

// NewSnapshot creates a snapshot adapter writing under key
func NewSnapshot[E any](kv kvstore.Store, key string, log *logger.Logger) *Snapshot[E] {
	return &Snapshot[E]{
		kv:  kv,
		key: key,
		log: log,
	}
}

// Load reads and decodes the persisted collection. An absent key or a
// corrupt value yields an empty collection, never an error.
func (s *Snapshot[E]) Load(ctx context.Context) []E {
	raw, ok, err := s.kv.Get(ctx, s.key)
	if err != nil {
		s.log.WithContext(ctx).Error("failed to read snapshot",
			zap.String("key", s.key),
			zap.Error(err),
		)
		return nil
	}
	if !ok || raw == "" {
		return nil
	}

	var items []E
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		s.log.WithContext(ctx).Error("corrupt snapshot, starting empty",
			zap.String("key", s.key),
			zap.Error(err),
		)
		return nil
	}

	return items
}

// Save encodes and writes the whole collection, replacing the prior snapshot
func (s *Snapshot[E]) Save(ctx context.Context, items []E) {
	if items == nil {
		// Persist an empty array rather than JSON null
		items = []E{}
	}

	data, err := json.Marshal(items)
	if err != nil {
		s.log.WithContext(ctx).Error("failed to encode snapshot",
			zap.String("key", s.key),
			zap.Error(err),
		)
		return
	}

	if err := s.kv.Set(ctx, s.key, string(data)); err != nil {
		s.log.WithContext(ctx).Error("failed to write snapshot",
			zap.String("key", s.key),
			zap.Error(err),
		)
	}
}
