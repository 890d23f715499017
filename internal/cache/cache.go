// Package cache holds cached reads of record store collections. Every entry
// carries a tag naming the collection it was read from, and a write to a
// collection invalidates all entries with that tag.
package cache

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"
)

// Cache is a tagged key/value backend. Version reports the current
// generation of a tag; Set stores a value only while the tag is still at the
// given version, so a read that raced a write is never cached.
type Cache interface {
	Version(ctx context.Context, tag string) (int64, error)
	Get(ctx context.Context, tag, key string) ([]byte, bool, error)
	Set(ctx context.Context, tag string, version int64, key string, value []byte) error
	Invalidate(ctx context.Context, tag string) error
}

// Store wraps a Cache backend. Backend failures are logged and treated as
// misses so a cache outage never fails a request.
type Store struct {
	backend Cache
	logger  *zap.Logger
}

func NewStore(backend Cache, logger *zap.Logger) *Store {
	return &Store{backend: backend, logger: logger}
}

// Invalidate drops every cached read tagged with tag.
func (s *Store) Invalidate(ctx context.Context, tag string) {
	if err := s.backend.Invalidate(ctx, tag); err != nil {
		s.logger.Warn("cache invalidation failed", zap.String("tag", tag), zap.Error(err))
	}
}

// Fetch returns the cached value for (tag, key) or calls load and caches its
// result. Errors from load are returned and never cached.
func Fetch[T any](ctx context.Context, s *Store, tag, key string, load func(ctx context.Context) (T, error)) (T, error) {
	version, err := s.backend.Version(ctx, tag)
	cacheable := err == nil
	if err != nil {
		s.logger.Warn("cache version read failed", zap.String("tag", tag), zap.Error(err))
	} else if raw, ok, err := s.backend.Get(ctx, tag, key); err != nil {
		s.logger.Warn("cache read failed", zap.String("tag", tag), zap.String("key", key), zap.Error(err))
	} else if ok {
		var cached T
		if err := json.Unmarshal(raw, &cached); err == nil {
			return cached, nil
		}
		s.logger.Warn("discarding undecodable cache entry", zap.String("tag", tag), zap.String("key", key))
	}

	value, err := load(ctx)
	if err != nil || !cacheable {
		return value, err
	}

	raw, err := json.Marshal(value)
	if err != nil {
		s.logger.Warn("cache encode failed", zap.String("tag", tag), zap.Error(err))
		return value, nil
	}
	if err := s.backend.Set(ctx, tag, version, key, raw); err != nil {
		s.logger.Warn("cache write failed", zap.String("tag", tag), zap.String("key", key), zap.Error(err))
	}

	return value, nil
}
