package ratelimit

import (
	"context"
	"fmt"
	"time"

	"interview-booking-api/pkg/cache"

	"github.com/go-redis/redis/v8"
)

// RedisStore keeps counters in Redis so that several API instances share
// one budget per identity.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore returns a store that namespaces keys with prefix.
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) Increment(ctx context.Context, key string, window time.Duration) (Window, error) {
	start := time.Now()
	res, err := cache.IncrementWindowScript.Run(ctx, s.client,
		[]string{cache.RateLimitKey(s.prefix, key)}, window.Milliseconds()).Result()
	if err := cache.Observe("ratelimit_incr", start, err); err != nil {
		return Window{}, fmt.Errorf("rate limit increment: %w", err)
	}

	values, ok := res.([]interface{})
	if !ok || len(values) != 2 {
		return Window{}, fmt.Errorf("rate limit increment: unexpected reply %v", res)
	}
	count, ok1 := values[0].(int64)
	ttl, ok2 := values[1].(int64)
	if !ok1 || !ok2 {
		return Window{}, fmt.Errorf("rate limit increment: unexpected reply %v", res)
	}

	return Window{
		Count:   count,
		ResetAt: time.Now().Add(time.Duration(ttl) * time.Millisecond),
	}, nil
}

func (s *RedisStore) Reset(ctx context.Context, key string) error {
	start := time.Now()
	if err := cache.Observe("ratelimit_reset", start, s.client.Del(ctx, cache.RateLimitKey(s.prefix, key)).Err()); err != nil {
		return fmt.Errorf("rate limit reset: %w", err)
	}
	return nil
}
