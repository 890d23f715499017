package main

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"techassist/internal/cache"
	"techassist/internal/config"
)

func TestNewCacheBackend_RedisCloserReleasesClient(t *testing.T) {
	cfg := &config.Config{
		Cache:   config.CacheConfig{Backend: config.CacheBackendRedis, RedisAddr: "localhost:0", TTL: time.Minute},
		Tracing: config.TracingConfig{ServiceName: "techassist"},
	}

	backend, closeCache := newCacheBackend(cfg, zap.NewNop())
	require.IsType(t, &cache.Redis{}, backend)
	require.NoError(t, closeCache())

	_, err := backend.Version(context.Background(), "customers")
	assert.ErrorIs(t, err, redis.ErrClosed)
}

func TestNewCacheBackend_Memory(t *testing.T) {
	cfg := &config.Config{Cache: config.CacheConfig{Backend: config.CacheBackendMemory, TTL: time.Minute}}

	backend, closeCache := newCacheBackend(cfg, zap.NewNop())

	assert.IsType(t, &cache.Memory{}, backend)
	assert.NoError(t, closeCache())
}
