package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis is a Cache shared by every instance pointed at the same server.
// Each tag has a generation counter that is part of every data key, so
// invalidating a tag is a single INCR and stale entries age out by TTL.
// Values written for an old generation land under keys no reader looks up.
type Redis struct {
	client      *redis.Client
	serviceName string
	ttl         time.Duration
}

func NewRedis(client *redis.Client, serviceName string, ttl time.Duration) *Redis {
	return &Redis{
		client:      client,
		serviceName: serviceName,
		ttl:         ttl,
	}
}

func (r *Redis) Version(ctx context.Context, tag string) (int64, error) {
	return r.generation(ctx, tag)
}

func (r *Redis) Get(ctx context.Context, tag, key string) ([]byte, bool, error) {
	gen, err := r.generation(ctx, tag)
	if err != nil {
		return nil, false, err
	}

	value, err := r.client.Get(ctx, r.dataKey(tag, gen, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

func (r *Redis) Set(ctx context.Context, tag string, version int64, key string, value []byte) error {
	return r.client.Set(ctx, r.dataKey(tag, version, key), value, r.ttl).Err()
}

func (r *Redis) Invalidate(ctx context.Context, tag string) error {
	return r.client.Incr(ctx, r.generationKey(tag)).Err()
}

func (r *Redis) generation(ctx context.Context, tag string) (int64, error) {
	gen, err := r.client.Get(ctx, r.generationKey(tag)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func (r *Redis) generationKey(tag string) string {
	return fmt.Sprintf("%s:%s:gen", r.serviceName, tag)
}

func (r *Redis) dataKey(tag string, gen int64, key string) string {
	return fmt.Sprintf("%s:%s:%d:%s", r.serviceName, tag, gen, key)
}
