package ratelimit

import (
	"context"
	"net"
	"net/http"
	"strings"
	"time"
)

// Decision is the outcome of Limiter.Take for one request.
type Decision struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// RetryAfter is the time left until the current window closes, rounded up
// to whole seconds.
func (d Decision) RetryAfter(now time.Time) time.Duration {
	left := d.ResetAt.Sub(now)
	if left <= 0 {
		return 0
	}
	return (left + time.Second - 1).Truncate(time.Second)
}

// Limiter allows at most Max hits per identity in each Window.
type Limiter struct {
	store  Store
	window time.Duration
	max    int
}

// NewLimiter builds a Limiter over store.
func NewLimiter(store Store, window time.Duration, max int) *Limiter {
	return &Limiter{store: store, window: window, max: max}
}

// Window returns the configured window length.
func (l *Limiter) Window() time.Duration { return l.window }

// Max returns the per-window ceiling.
func (l *Limiter) Max() int { return l.max }

// Take records one hit for identity and reports whether it is within budget.
func (l *Limiter) Take(ctx context.Context, identity string) (Decision, error) {
	w, err := l.store.Increment(ctx, identity, l.window)
	if err != nil {
		return Decision{}, err
	}

	remaining := l.max - int(w.Count)
	if remaining < 0 {
		remaining = 0
	}
	return Decision{
		Allowed:   w.Count <= int64(l.max),
		Limit:     l.max,
		Remaining: remaining,
		ResetAt:   w.ResetAt,
	}, nil
}

// Reset clears the budget of identity.
func (l *Limiter) Reset(ctx context.Context, identity string) error {
	return l.store.Reset(ctx, identity)
}

// ClientIdentity is the first X-Forwarded-For entry when the header is set,
// otherwise the host part of the socket address.
func ClientIdentity(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
