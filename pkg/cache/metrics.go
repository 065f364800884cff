package cache

import (
	"time"

	"interview-booking-api/pkg/metrics"
)

// Observe records how long op took since start and counts err against op.
// A non-nil err comes back as a retryable *CacheError.
func Observe(op string, start time.Time, err error) error {
	metrics.RedisOperationDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	if err == nil {
		return nil
	}
	metrics.RedisErrorsTotal.WithLabelValues(op).Inc()
	return &CacheError{Operation: op, Err: err, Retryable: true}
}

// decodeFailure counts a (de)serialization failure, which retrying will not fix.
func decodeFailure(op string, err error) error {
	metrics.RedisErrorsTotal.WithLabelValues(op).Inc()
	return &CacheError{Operation: op, Err: err}
}
