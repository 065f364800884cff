package middleware

import (
	"strconv"
	"time"

	apperrors "interview-booking-api/internal/errors"
	"interview-booking-api/pkg/logger"
	"interview-booking-api/pkg/metrics"
	"interview-booking-api/pkg/ratelimit"

	"github.com/gin-gonic/gin"
)

// RateLimit enforces the fixed-window budget of l per client identity. A
// failing store lets the request through.
func RateLimit(l *ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := ratelimit.ClientIdentity(c.Request)
		logger.GlobalLogger.Printf("Client IP: %s", identity)

		decision, err := l.Take(c.Request.Context(), identity)
		if err != nil {
			metrics.RateLimitStoreErrorsTotal.Inc()
			logger.GlobalLogger.Errorf("rate limit store failed for %s: %v", identity, err)
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(decision.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(decision.ResetAt.Unix(), 10))

		if !decision.Allowed {
			retry := decision.RetryAfter(time.Now())
			c.Header("Retry-After", strconv.Itoa(int(retry/time.Second)))
			metrics.RateLimitRejectionsTotal.Inc()
			abortWithError(c, apperrors.RateLimited(identity))
			return
		}
		c.Next()
	}
}
