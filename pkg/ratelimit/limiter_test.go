package ratelimit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimiterRejectsAfterMax(t *testing.T) {
	ctx := context.Background()
	l := NewLimiter(NewMemoryStore(), 10*time.Minute, 1000)

	for i := 1; i <= 1000; i++ {
		d, err := l.Take(ctx, "1.2.3.4")
		require.NoError(t, err)
		require.True(t, d.Allowed, "request %d should be allowed", i)
		require.Equal(t, 1000-i, d.Remaining)
	}

	d, err := l.Take(ctx, "1.2.3.4")
	require.NoError(t, err)
	assert.False(t, d.Allowed)
	assert.Equal(t, 0, d.Remaining)
	assert.Equal(t, 1000, d.Limit)

	other, err := l.Take(ctx, "5.6.7.8")
	require.NoError(t, err)
	assert.True(t, other.Allowed)
	assert.Equal(t, 999, other.Remaining)
}

func TestLimiterReset(t *testing.T) {
	ctx := context.Background()
	l := NewLimiter(NewMemoryStore(), time.Minute, 1)

	d, _ := l.Take(ctx, "a")
	assert.True(t, d.Allowed)
	d, _ = l.Take(ctx, "a")
	assert.False(t, d.Allowed)

	require.NoError(t, l.Reset(ctx, "a"))
	d, _ = l.Take(ctx, "a")
	assert.True(t, d.Allowed)
}

func TestDecisionRetryAfter(t *testing.T) {
	now := time.Now()
	d := Decision{ResetAt: now.Add(1500 * time.Millisecond)}
	assert.Equal(t, 2*time.Second, d.RetryAfter(now))
	assert.Equal(t, time.Duration(0), Decision{ResetAt: now.Add(-time.Second)}.RetryAfter(now))
}

func TestClientIdentity(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		forwarded  string
		want       string
	}{
		{name: "first forwarded entry", remoteAddr: "10.0.0.1:5000", forwarded: "1.2.3.4, 5.6.7.8", want: "1.2.3.4"},
		{name: "single forwarded entry", remoteAddr: "10.0.0.1:5000", forwarded: "9.9.9.9", want: "9.9.9.9"},
		{name: "socket address", remoteAddr: "192.0.2.10:1234", want: "192.0.2.10"},
		{name: "ipv6 socket address", remoteAddr: "[2001:db8::1]:443", want: "2001:db8::1"},
		{name: "socket address without port", remoteAddr: "192.0.2.10", want: "192.0.2.10"},
		{name: "empty forwarded entry falls back", remoteAddr: "192.0.2.10:1", forwarded: " ,1.1.1.1", want: "192.0.2.10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tt.remoteAddr
			if tt.forwarded != "" {
				r.Header.Set("X-Forwarded-For", tt.forwarded)
			}
			assert.Equal(t, tt.want, ClientIdentity(r))
		})
	}
}
