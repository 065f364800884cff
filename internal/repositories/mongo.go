package repositories

import (
	"context"
	"errors"
	"time"

	apperrors "interview-booking-api/internal/errors"
	"interview-booking-api/pkg/metrics"
)

// observe records the duration of a MongoDB call and counts it as failed
// when err is non-nil; a not-found result is not a failure. Use as: defer observe("find", coll, time.Now(), &err).
func observe(operation, collection string, start time.Time, err *error) {
	metrics.MongoOperationDuration.WithLabelValues(operation, collection).Observe(time.Since(start).Seconds())
	if err != nil && *err != nil && !errors.Is(*err, apperrors.ErrNotFound) {
		metrics.MongoErrorsTotal.WithLabelValues(operation, collection).Inc()
	}
}

func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, 10*time.Second)
}
