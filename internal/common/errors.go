// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
	"net"
)

// Common application errors.
var (
	// ErrServiceUnavailable indicates the circuit breaker is open and the
	// remote call was not attempted.
	ErrServiceUnavailable = errors.New("remote service unavailable")
	// ErrGateTimeout indicates admission control was saturated and no
	// permit became free within the acquire timeout.
	ErrGateTimeout = errors.New("request gate timeout")
	// ErrValidationFailure indicates the remote response failed safety
	// validation; treated as a degraded success, never retried.
	ErrValidationFailure = errors.New("response validation failed")
	// ErrPermanentRemote indicates a non-transient remote failure
	// (4xx-class); never retried.
	ErrPermanentRemote = errors.New("permanent remote error")
	// ErrMaxRetries indicates that all retry attempts have been exhausted.
	ErrMaxRetries = errors.New("max retries exceeded")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// RetryableError wraps an error with retry-specific metadata.
type RetryableError struct {
	Err       error
	Retryable bool
}

func (e *RetryableError) Error() string {
	return e.Err.Error()
}

func (e *RetryableError) Unwrap() error {
	return e.Err
}

// Transient marks err as a retryable transient failure.
func Transient(err error) error {
	return &RetryableError{Err: err, Retryable: true}
}

// Permanent marks err as a failure that must not be retried.
func Permanent(err error) error {
	return &RetryableError{Err: fmt.Errorf("%w: %v", ErrPermanentRemote, err), Retryable: false}
}

// IsRetryable determines if an error should trigger a retry.
func IsRetryable(err error) bool {
	var retryableErr *RetryableError
	if errors.As(err, &retryableErr) {
		return retryableErr.Retryable
	}

	// Network-level timeouts and connection failures are transient.
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	var opErr *net.OpError
	return errors.As(err, &opErr)
}
