// Package errors provides standardized error handling for the route
// optimization service.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Validation errors. Never retried, always surfaced to the caller.
	ErrCodeInvalidCoordinate ErrorCode = "INVALID_COORDINATE"
	ErrCodeInvalidRequest    ErrorCode = "INVALID_REQUEST"

	// Provider errors. Absorbed locally by the fallback path.
	ErrCodeProviderUnavailable ErrorCode = "PROVIDER_UNAVAILABLE"
	ErrCodeProviderTimeout     ErrorCode = "PROVIDER_TIMEOUT"
	ErrCodeProviderRateLimited ErrorCode = "PROVIDER_RATE_LIMITED"
	ErrCodeProviderBadResponse ErrorCode = "PROVIDER_BAD_RESPONSE"

	// Fallback / cache errors.
	ErrCodeFallbackFailed    ErrorCode = "FALLBACK_FAILED"
	ErrCodeCacheWriteFailed  ErrorCode = "CACHE_WRITE_FAILED"
	ErrCodeCorridorsNotFound ErrorCode = "CORRIDORS_NOT_FOUND"

	// Anything unexpected during candidate construction.
	ErrCodeOptimizationFailed ErrorCode = "OPTIMIZATION_FAILED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. Error Constructors
// ==========================

// NewInvalidCoordinateError creates a non-retryable validation error naming
// the failing side ("pickup"/"delivery") and axis ("latitude"/"longitude").
func NewInvalidCoordinateError(side, axis string, value float64) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidCoordinate,
		Message:   fmt.Sprintf("Invalid %s %s", side, axis),
		Details:   fmt.Sprintf("%s.%s: %v is out of range", side, axis, value),
		Retryable: false,
		Metadata: map[string]interface{}{
			"side": side,
			"axis": axis,
		},
		Timestamp: time.Now().UTC(),
	}
}

// NewMissingCoordinateError creates a non-retryable validation error for an
// absent pickup or delivery coordinate.
func NewMissingCoordinateError(side string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidCoordinate,
		Message:   fmt.Sprintf("Missing %s coordinate", side),
		Details:   fmt.Sprintf("%s coordinate is required", side),
		Retryable: false,
		Metadata:  map[string]interface{}{"side": side},
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidRequestError creates a non-retryable request validation error.
func NewInvalidRequestError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidRequest,
		Message:   "Invalid optimization request",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewProviderUnavailableError creates a retryable provider error.
func NewProviderUnavailableError(provider string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeProviderUnavailable,
		Message:   "Distance provider unavailable",
		Details:   fmt.Sprintf("provider: %s, error: %s", provider, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewProviderTimeoutError creates a retryable provider timeout error.
func NewProviderTimeoutError(provider string) *StandardError {
	return &StandardError{
		Code:      ErrCodeProviderTimeout,
		Message:   "Distance provider request timed out",
		Details:   fmt.Sprintf("provider: %s", provider),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewProviderRateLimitedError creates a retryable rate-limit error.
func NewProviderRateLimitedError(provider string, status int) *StandardError {
	return &StandardError{
		Code:      ErrCodeProviderRateLimited,
		Message:   "Distance provider rate limit exceeded",
		Details:   fmt.Sprintf("provider: %s, status: %d", provider, status),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewProviderBadResponseError creates a retryable malformed-response error.
func NewProviderBadResponseError(provider, details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeProviderBadResponse,
		Message:   "Distance provider returned a malformed response",
		Details:   fmt.Sprintf("provider: %s, %s", provider, details),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewFallbackFailedError reports that the degraded path itself errored. This
// is the only condition that flips the service health off "operational".
func NewFallbackFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeFallbackFailed,
		Message:   "Fallback route computation failed",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewCacheWriteFailedError creates a retryable cache write error.
func NewCacheWriteFailedError(key string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCacheWriteFailed,
		Message:   "Route cache write failed",
		Details:   fmt.Sprintf("key: %s, error: %s", key, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewOptimizationFailedError wraps an unexpected failure during candidate
// construction.
func NewOptimizationFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeOptimizationFailed,
		Message:   "Route optimization failed",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Classification Helpers
// ==========================

// IsProviderError reports whether err belongs to the provider error class,
// i.e. whether it should trigger the fallback path instead of failing the
// optimization request.
func IsProviderError(err error) bool {
	var se *StandardError
	if !errors.As(err, &se) {
		return false
	}
	switch se.Code {
	case ErrCodeProviderUnavailable, ErrCodeProviderTimeout,
		ErrCodeProviderRateLimited, ErrCodeProviderBadResponse:
		return true
	}
	return false
}

// IsValidationError reports whether err is caller input validation failure.
func IsValidationError(err error) bool {
	var se *StandardError
	if !errors.As(err, &se) {
		return false
	}
	return se.Code == ErrCodeInvalidCoordinate || se.Code == ErrCodeInvalidRequest
}

// CodeOf extracts the ErrorCode from err, or OPTIMIZATION_FAILED when err is
// not a StandardError.
func CodeOf(err error) ErrorCode {
	var se *StandardError
	if errors.As(err, &se) {
		return se.Code
	}
	return ErrCodeOptimizationFailed
}
