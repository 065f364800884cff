// Package ratelimit implements fixed-window request counting per client
// identity behind a swappable Store.
package ratelimit

import (
	"context"
	"time"
)

// Window is the state of one identity's counter after an increment.
type Window struct {
	Count   int64
	ResetAt time.Time
}

// Store counts hits per key within fixed windows. Implementations must be
// safe for concurrent use.
type Store interface {
	// Increment adds one hit to key, opening a new window of the given
	// length if none is active, and returns the updated window.
	Increment(ctx context.Context, key string, window time.Duration) (Window, error)
	// Reset discards the counter for key.
	Reset(ctx context.Context, key string) error
}
