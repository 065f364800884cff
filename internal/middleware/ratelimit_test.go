package middleware

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"interview-booking-api/pkg/logger"
	"interview-booking-api/pkg/ratelimit"
)

func limitedRouter(l *ratelimit.Limiter) *gin.Engine {
	r := gin.New()
	r.Use(ErrorHandler(), RateLimit(l))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func hit(r http.Handler, forwardedFor, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if forwardedFor != "" {
		req.Header.Set("X-Forwarded-For", forwardedFor)
	}
	if remoteAddr != "" {
		req.RemoteAddr = remoteAddr
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimitRejectsRequestOverBudget(t *testing.T) {
	r := limitedRouter(ratelimit.NewLimiter(ratelimit.NewMemoryStore(), 10*time.Minute, 1000))

	for i := 1; i <= 1000; i++ {
		w := hit(r, "1.2.3.4", "")
		require.Equal(t, http.StatusOK, w.Code, "request %d", i)
	}

	w := hit(r, "1.2.3.4", "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "RATE_LIMITED")
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	assert.Equal(t, http.StatusOK, hit(r, "5.6.7.8", "").Code)
}

func TestRateLimitLogsClientIdentity(t *testing.T) {
	var buf bytes.Buffer
	prev := logger.GlobalLogger
	logger.GlobalLogger = logger.New(&buf, "INFO")
	t.Cleanup(func() { logger.GlobalLogger = prev })

	r := limitedRouter(ratelimit.NewLimiter(ratelimit.NewMemoryStore(), time.Minute, 10))
	hit(r, "1.2.3.4, 5.6.7.8", "10.0.0.1:1234")
	hit(r, "", "10.0.0.9:4321")

	assert.Contains(t, buf.String(), "Client IP: 1.2.3.4\n")
	assert.Contains(t, buf.String(), "Client IP: 10.0.0.9:4321")
}

func TestRateLimitIdentityUsesFirstForwardedEntry(t *testing.T) {
	r := limitedRouter(ratelimit.NewLimiter(ratelimit.NewMemoryStore(), time.Minute, 1))

	assert.Equal(t, http.StatusOK, hit(r, "1.2.3.4, 5.6.7.8", "10.0.0.1:1234").Code)
	assert.Equal(t, http.StatusTooManyRequests, hit(r, "1.2.3.4", "10.0.0.2:1234").Code)

	assert.Equal(t, http.StatusOK, hit(r, "", "9.9.9.9:4000").Code)
	assert.Equal(t, http.StatusTooManyRequests, hit(r, "", "9.9.9.9:5000").Code)
}

func TestRateLimitHeaders(t *testing.T) {
	r := limitedRouter(ratelimit.NewLimiter(ratelimit.NewMemoryStore(), time.Minute, 5))
	w := hit(r, "1.2.3.4", "")
	assert.Equal(t, "5", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "4", w.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, w.Header().Get("X-RateLimit-Reset"))
}

type brokenStore struct{}

func (brokenStore) Increment(context.Context, string, time.Duration) (ratelimit.Window, error) {
	return ratelimit.Window{}, errors.New("store down")
}

func (brokenStore) Reset(context.Context, string) error { return nil }

func TestRateLimitFailsOpen(t *testing.T) {
	r := limitedRouter(ratelimit.NewLimiter(brokenStore{}, time.Minute, 1))
	assert.Equal(t, http.StatusOK, hit(r, "1.2.3.4", "").Code)
	assert.Equal(t, http.StatusOK, hit(r, "1.2.3.4", "").Code)
}

func TestThrottle(t *testing.T) {
	th := NewThrottle(rate.Every(time.Hour), 2)
	r := gin.New()
	r.Use(ErrorHandler(), ThrottleMiddleware(th))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, hit(r, "", "1.1.1.1:1").Code)
	assert.Equal(t, http.StatusOK, hit(r, "", "1.1.1.1:1").Code)
	assert.Equal(t, http.StatusTooManyRequests, hit(r, "", "1.1.1.1:1").Code)
	assert.Equal(t, http.StatusOK, hit(r, "", "2.2.2.2:1").Code)
	assert.Equal(t, 2, th.Len())

	th.sweep(0)
	assert.Equal(t, 0, th.Len())
}

func TestThrottleCleanupStopsWithContext(t *testing.T) {
	th := NewThrottle(rate.Limit(1), 1)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- th.Cleanup(ctx, time.Millisecond, time.Hour) }()
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("cleanup did not stop")
	}
}
