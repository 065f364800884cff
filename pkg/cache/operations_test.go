package cache

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return New(client), mr
}

type company struct {
	Name string `json:"name"`
}

func TestCacheSetGet(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, CompanyKey("1"), company{Name: "Acme"}, time.Minute))

	var got company
	require.NoError(t, c.Get(ctx, CompanyKey("1"), &got))
	assert.Equal(t, "Acme", got.Name)
	assert.True(t, mr.Exists("company:1"))

	exists, err := c.Exists(ctx, CompanyKey("1"))
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, c.Delete(ctx, CompanyKey("1")))
	assert.ErrorIs(t, c.Get(ctx, CompanyKey("1"), &got), ErrMiss)
}

func TestCacheInvalidateSet(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	keys := []string{
		CompanyListKey(url.Values{"page": {"1"}}),
		CompanyListKey(url.Values{"page": {"2"}}),
	}
	for _, key := range keys {
		require.NoError(t, c.Set(ctx, key, []company{{Name: "Acme"}}, time.Minute))
		require.NoError(t, c.Track(ctx, CompanyListSetKey(), key, time.Minute))
	}

	require.NoError(t, c.InvalidateSet(ctx, CompanyListSetKey()))
	for _, key := range keys {
		assert.False(t, mr.Exists(key), key)
	}
	assert.False(t, mr.Exists(CompanyListSetKey()))
}

func TestCacheInvalidateEmptySet(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, CompanyKey("1"), company{Name: "Acme"}, time.Minute))
	require.NoError(t, c.InvalidateSet(ctx, CompanyListSetKey()))
	assert.True(t, mr.Exists("company:1"))
}

func TestCacheGetUnmarshalError(t *testing.T) {
	c, mr := newTestCache(t)
	require.NoError(t, mr.Set("company:bad", "not-json"))

	var got company
	err := c.Get(context.Background(), "company:bad", &got)
	require.Error(t, err)
	assert.False(t, IsRetryable(err))
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(Observe("get", time.Now(), errors.New("dial tcp"))))
	assert.False(t, IsRetryable(errors.New("plain")))
}
