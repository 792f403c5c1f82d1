package common

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/copperwire/penny/internal/service"
)

// WithRetry executes an operation with configurable retry behavior. Only
// transient failures are retried; a RetryableError with Retryable=false, or
// any error IsRetryable rejects, short-circuits immediately.
//
// When opts.AttemptTimeout is set, each attempt runs under its own deadline,
// escalating by opts.AttemptTimeoutStep per attempt so slow starts are
// tolerated without abandoning too early. Attempt deadlines never extend past
// the caller's own deadline.
func WithRetry(ctx context.Context, operation func(context.Context) error, opts service.RetryOptions) error {
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = 3
	}
	if opts.InitialDelay <= 0 {
		opts.InitialDelay = 100 * time.Millisecond
	}
	if opts.MaxDelay <= 0 {
		opts.MaxDelay = 30 * time.Second
	}
	if opts.Multiplier <= 0 {
		opts.Multiplier = 2.0
	}

	delay := opts.InitialDelay

	var lastErr error
	for attempt := 1; attempt <= opts.MaxAttempts; attempt++ {
		attemptCtx := ctx
		var cancel context.CancelFunc
		if opts.AttemptTimeout > 0 {
			timeout := opts.AttemptTimeout + time.Duration(attempt-1)*opts.AttemptTimeoutStep
			attemptCtx, cancel = context.WithTimeout(ctx, timeout)
		}

		err := operation(attemptCtx)
		if cancel != nil {
			cancel()
		}
		if err == nil {
			return nil
		}
		lastErr = err

		// The caller's deadline wins over any per-attempt deadline.
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if !IsRetryable(err) && !errors.Is(err, context.DeadlineExceeded) {
			return err
		}

		if attempt == opts.MaxAttempts {
			return fmt.Errorf("%w after %d attempts: %v", ErrMaxRetries, opts.MaxAttempts, err)
		}

		sleep := jitter(delay)
		slog.Warn("Operation failed, retrying",
			"attempt", attempt,
			"max_attempts", opts.MaxAttempts,
			"delay", sleep,
			"error", err)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(sleep):
			delay = time.Duration(float64(delay) * opts.Multiplier)
			if delay > opts.MaxDelay {
				delay = opts.MaxDelay
			}
		}
	}

	if lastErr != nil {
		return lastErr
	}
	return ErrMaxRetries
}

// jitter spreads a backoff delay across [delay/2, delay) so concurrent
// retriers do not thunder in lockstep.
func jitter(delay time.Duration) time.Duration {
	half := delay / 2
	return half + time.Duration(rand.Int63n(int64(half)+1))
}
