package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// AppError represents a structured application error with user-friendly and technical details.
type AppError struct {
	TechnicalMessage string
	UserMessage      string
	Code             string
	HTTPStatus       int
	OriginalError    error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.OriginalError == nil {
		return e.UserMessage
	}
	return fmt.Sprintf("%s: %v", e.UserMessage, e.OriginalError)
}

// Unwrap returns the original error for error chaining.
func (e *AppError) Unwrap() error {
	return e.OriginalError
}

// NewAppError creates a new AppError instance.
func NewAppError(technicalMessage, userMessage, code string, status int, originalErr error) *AppError {
	return &AppError{
		TechnicalMessage: technicalMessage,
		UserMessage:      userMessage,
		Code:             code,
		HTTPStatus:       status,
		OriginalError:    originalErr,
	}
}

// Common error codes
const (
	ErrCodeNotFound          = "NOT_FOUND"
	ErrCodeDuplicate         = "DUPLICATE_FIELD"
	ErrCodeInvalidID         = "INVALID_ID"
	ErrCodeValidation        = "VALIDATION_FAILED"
	ErrCodeUnauthorized      = "UNAUTHORIZED"
	ErrCodeForbidden         = "FORBIDDEN"
	ErrCodeBookingLimit      = "BOOKING_LIMIT_REACHED"
	ErrCodeRateLimited       = "RATE_LIMITED"
	ErrCodeInvalidParameters = "INVALID_PARAMETERS"
	ErrCodeMalformedBody     = "MALFORMED_BODY"
	ErrCodePayloadTooLarge   = "PAYLOAD_TOO_LARGE"
	ErrCodeInternal          = "INTERNAL_ERROR"
)

// Sentinel errors returned by services and repositories; MapError turns
// them into AppErrors.
var (
	ErrNotFound         = stderrors.New("resource not found")
	ErrDuplicate        = stderrors.New("duplicate field value")
	ErrInvalidID        = stderrors.New("invalid object id")
	ErrInvalidInput     = stderrors.New("invalid input")
	ErrUnauthorized     = stderrors.New("not authorized")
	ErrForbidden        = stderrors.New("forbidden")
	ErrBookingLimit     = stderrors.New("booking limit reached")
	ErrBadCredentials   = stderrors.New("invalid credentials")
	ErrMalformedBody    = stderrors.New("malformed request body")
	ErrPayloadTooLarge  = stderrors.New("request body too large")
	ErrInvalidParameter = stderrors.New("invalid query parameter")
)

// NotFound reports a missing resource.
func NotFound(resource, id string) *AppError {
	return NewAppError(
		fmt.Sprintf("%s not found with id %s", resource, id),
		fmt.Sprintf("No %s with the id of %s", resource, id),
		ErrCodeNotFound, http.StatusNotFound, ErrNotFound)
}

// Validation reports rejected input; msg is shown to the client.
func Validation(msg string) *AppError {
	return NewAppError(msg, msg, ErrCodeValidation, http.StatusBadRequest, ErrInvalidInput)
}

// Forbidden reports an authenticated caller acting outside their rights.
func Forbidden(msg string) *AppError {
	return NewAppError(msg, msg, ErrCodeForbidden, http.StatusForbidden, ErrForbidden)
}

// Unauthorized reports a missing or rejected credential.
func Unauthorized(technical string) *AppError {
	return NewAppError(technical, MsgUnauthorized, ErrCodeUnauthorized, http.StatusUnauthorized, ErrUnauthorized)
}

// RateLimited reports a client over its request budget.
func RateLimited(identity string) *AppError {
	return NewAppError("rate limit exceeded for "+identity, MsgRateLimited,
		ErrCodeRateLimited, http.StatusTooManyRequests, nil)
}
