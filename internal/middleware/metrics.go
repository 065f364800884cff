package middleware

import (
	"strconv"
	"time"

	"interview-booking-api/pkg/metrics"

	"github.com/gin-gonic/gin"
)

// unmatchedRoute is the endpoint label for requests no route claimed.
const unmatchedRoute = "unmatched"

// MetricsMiddleware counts and times every request by method, route template
// and final status.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}
		labels := []string{c.Request.Method, route, strconv.Itoa(c.Writer.Status())}
		metrics.HTTPRequestsTotal.WithLabelValues(labels...).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(labels...).Observe(time.Since(start).Seconds())
	}
}
