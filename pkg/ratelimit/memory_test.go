package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newClockedStore() (*MemoryStore, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	s := NewMemoryStore()
	s.now = clock.Now
	return s, clock
}

func TestMemoryStoreWindowResets(t *testing.T) {
	ctx := context.Background()
	s, clock := newClockedStore()

	w, err := s.Increment(ctx, "k", 10*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), w.Count)
	assert.Equal(t, clock.t.Add(10*time.Minute), w.ResetAt)

	clock.Advance(9 * time.Minute)
	w, _ = s.Increment(ctx, "k", 10*time.Minute)
	assert.Equal(t, int64(2), w.Count)

	clock.Advance(time.Minute)
	w, _ = s.Increment(ctx, "k", 10*time.Minute)
	assert.Equal(t, int64(1), w.Count, "window should restart once resetAt is reached")
}

func TestMemoryStoreSweep(t *testing.T) {
	ctx := context.Background()
	s, clock := newClockedStore()

	_, _ = s.Increment(ctx, "old", time.Minute)
	clock.Advance(30 * time.Second)
	_, _ = s.Increment(ctx, "new", time.Minute)
	clock.Advance(40 * time.Second)

	assert.Equal(t, 1, s.Sweep())
	assert.Equal(t, 1, s.Len())
}

func TestMemoryStoreRunStopsOnCancel(t *testing.T) {
	s := NewMemoryStore()
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx, time.Millisecond) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
