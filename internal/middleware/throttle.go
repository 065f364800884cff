package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	apperrors "interview-booking-api/internal/errors"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Throttle holds a token bucket per client IP.
type Throttle struct {
	visitors map[string]*visitor
	mu       sync.Mutex
	rate     rate.Limit
	burst    int
}

// NewThrottle creates a throttle with the given rate and burst
func NewThrottle(r rate.Limit, b int) *Throttle {
	return &Throttle{
		visitors: make(map[string]*visitor),
		rate:     r,
		burst:    b,
	}
}

// getLimiter returns or creates a limiter for the given IP
func (t *Throttle) getLimiter(ip string) *rate.Limiter {
	t.mu.Lock()
	defer t.mu.Unlock()

	v, exists := t.visitors[ip]
	if !exists {
		v = &visitor{limiter: rate.NewLimiter(t.rate, t.burst)}
		t.visitors[ip] = v
	}
	v.lastSeen = time.Now()
	return v.limiter
}

// ThrottleMiddleware rejects bursts from one client IP
func ThrottleMiddleware(t *Throttle) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !t.getLimiter(ip).Allow() {
			c.Header("Retry-After", "1")
			abortWithError(c, apperrors.NewAppError("throttled "+ip, apperrors.MsgRateLimited,
				apperrors.ErrCodeRateLimited, http.StatusTooManyRequests, nil))
			return
		}
		c.Next()
	}
}

// Len reports how many clients are tracked.
func (t *Throttle) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.visitors)
}

func (t *Throttle) sweep(idle time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for ip, v := range t.visitors {
		if time.Since(v.lastSeen) > idle {
			delete(t.visitors, ip)
		}
	}
}

// Cleanup drops clients idle for longer than idle, every interval, until
// ctx is done.
func (t *Throttle) Cleanup(ctx context.Context, interval, idle time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			t.sweep(idle)
		}
	}
}
