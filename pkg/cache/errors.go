package cache

import (
	"errors"
	"fmt"
)

// CacheError is a failed Redis round trip or a payload that would not
// (de)serialize. Only the former is Retryable.
type CacheError struct {
	Operation string
	Err       error
	Retryable bool
}

func (e *CacheError) Error() string {
	return fmt.Sprintf("cache operation %s failed: %v", e.Operation, e.Err)
}

func (e *CacheError) Unwrap() error { return e.Err }

// IsRetryable reports whether err wraps a transport-level CacheError.
func IsRetryable(err error) bool {
	var cacheErr *CacheError
	return errors.As(err, &cacheErr) && cacheErr.Retryable
}
