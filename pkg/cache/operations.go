package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

// ErrMiss is returned by Get when the key does not exist.
var ErrMiss = errors.New("cache miss")

// Cache wraps a Redis client with JSON (de)serialization and metrics.
type Cache struct {
	client *redis.Client
}

// New returns a Cache on top of client.
func New(client *redis.Client) *Cache {
	return &Cache{client: client}
}

// Set stores a value in the cache with the given key and expiration time.
func (c *Cache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	start := time.Now()
	data, err := json.Marshal(value)
	if err != nil {
		return decodeFailure("marshal", err)
	}
	return Observe("set", start, c.client.Set(ctx, key, data, expiration).Err())
}

// Get retrieves a value from the cache and unmarshals it into dest.
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) error {
	start := time.Now()
	val, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		_ = Observe("get", start, nil)
		return ErrMiss
	}
	if err := Observe("get", start, err); err != nil {
		return err
	}
	if err := json.Unmarshal(val, dest); err != nil {
		return decodeFailure("unmarshal", err)
	}
	return nil
}

// Delete removes keys from the cache.
func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	start := time.Now()
	return Observe("delete", start, c.client.Del(ctx, keys...).Err())
}

// Exists checks if a key exists in the cache.
func (c *Cache) Exists(ctx context.Context, key string) (bool, error) {
	start := time.Now()
	count, err := c.client.Exists(ctx, key).Result()
	if err := Observe("exists", start, err); err != nil {
		return false, err
	}
	return count > 0, nil
}

// Track records key as a member of setKey so it can be invalidated as a group.
func (c *Cache) Track(ctx context.Context, setKey, key string, expiration time.Duration) error {
	start := time.Now()
	pipe := c.client.TxPipeline()
	pipe.SAdd(ctx, setKey, key)
	pipe.Expire(ctx, setKey, expiration)
	_, err := pipe.Exec(ctx)
	return Observe("track", start, err)
}

// InvalidateSet deletes every key tracked in setKey along with the set itself.
// Members are read first and deleted by name so each key can live on its own
// cluster slot.
func (c *Cache) InvalidateSet(ctx context.Context, setKey string) error {
	start := time.Now()
	keys, err := c.client.SMembers(ctx, setKey).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return Observe("invalidate_set", start, err)
	}

	pipe := c.client.Pipeline()
	for _, key := range keys {
		pipe.Del(ctx, key)
	}
	pipe.Del(ctx, setKey)
	_, err = pipe.Exec(ctx)
	return Observe("invalidate_set", start, err)
}
