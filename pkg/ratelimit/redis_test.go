package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client, "ratelimit:"), mr
}

func TestRedisStoreIncrement(t *testing.T) {
	ctx := context.Background()
	s, mr := newRedisStore(t)

	for i := int64(1); i <= 3; i++ {
		w, err := s.Increment(ctx, "1.2.3.4", 10*time.Minute)
		require.NoError(t, err)
		assert.Equal(t, i, w.Count)
		assert.WithinDuration(t, time.Now().Add(10*time.Minute), w.ResetAt, 2*time.Second)
	}

	assert.True(t, mr.Exists("ratelimit:1.2.3.4"))
	assert.InDelta(t, float64(10*time.Minute), float64(mr.TTL("ratelimit:1.2.3.4")), float64(time.Second))
}

func TestRedisStoreWindowExpires(t *testing.T) {
	ctx := context.Background()
	s, mr := newRedisStore(t)

	_, err := s.Increment(ctx, "k", time.Minute)
	require.NoError(t, err)
	_, err = s.Increment(ctx, "k", time.Minute)
	require.NoError(t, err)

	mr.FastForward(time.Minute + time.Second)

	w, err := s.Increment(ctx, "k", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), w.Count)
}

func TestRedisStoreLimiter(t *testing.T) {
	ctx := context.Background()
	s, _ := newRedisStore(t)
	l := NewLimiter(s, time.Minute, 2)

	for i := 0; i < 2; i++ {
		d, err := l.Take(ctx, "a")
		require.NoError(t, err)
		assert.True(t, d.Allowed)
	}
	d, err := l.Take(ctx, "a")
	require.NoError(t, err)
	assert.False(t, d.Allowed)

	require.NoError(t, l.Reset(ctx, "a"))
	d, err = l.Take(ctx, "a")
	require.NoError(t, err)
	assert.True(t, d.Allowed)
}

func TestRedisStoreUnavailable(t *testing.T) {
	s, mr := newRedisStore(t)
	mr.Close()

	_, err := s.Increment(context.Background(), "k", time.Minute)
	assert.Error(t, err)
}
