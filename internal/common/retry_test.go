package common

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/copperwire/penny/internal/service"
)

func TestWithRetryEscalatesAttemptTimeouts(t *testing.T) {
	var remaining []time.Duration
	op := func(ctx context.Context) error {
		deadline, ok := ctx.Deadline()
		require.True(t, ok, "every attempt must carry a deadline")
		remaining = append(remaining, time.Until(deadline))
		return Transient(errors.New("flaky"))
	}

	err := WithRetry(context.Background(), op, service.RetryOptions{
		MaxAttempts:        3,
		InitialDelay:       time.Millisecond,
		MaxDelay:           2 * time.Millisecond,
		Multiplier:         2.0,
		AttemptTimeout:     80 * time.Millisecond,
		AttemptTimeoutStep: 80 * time.Millisecond,
	})
	require.ErrorIs(t, err, ErrMaxRetries)
	require.Len(t, remaining, 3)

	// Each attempt's budget grows by the step: 80ms, 160ms, 240ms.
	assert.InDelta(t, 80, remaining[0].Seconds()*1000, 40)
	assert.InDelta(t, 160, remaining[1].Seconds()*1000, 40)
	assert.InDelta(t, 240, remaining[2].Seconds()*1000, 40)
	assert.Greater(t, remaining[1], remaining[0])
	assert.Greater(t, remaining[2], remaining[1])
}

func TestWithRetryAttemptDeadlineBoundedByCaller(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
	defer cancel()
	parentDeadline, ok := ctx.Deadline()
	require.True(t, ok)

	var deadlines []time.Time
	op := func(attemptCtx context.Context) error {
		deadline, ok := attemptCtx.Deadline()
		require.True(t, ok)
		deadlines = append(deadlines, deadline)
		return Transient(errors.New("flaky"))
	}

	// Escalated attempt budgets dwarf the caller's deadline; the caller
	// must still win.
	err := WithRetry(ctx, op, service.RetryOptions{
		MaxAttempts:        5,
		InitialDelay:       time.Millisecond,
		MaxDelay:           2 * time.Millisecond,
		Multiplier:         2.0,
		AttemptTimeout:     10 * time.Second,
		AttemptTimeoutStep: 10 * time.Second,
	})
	require.Error(t, err)
	require.NotEmpty(t, deadlines)
	for i, deadline := range deadlines {
		assert.False(t, deadline.After(parentDeadline),
			"attempt %d deadline extends past the caller's", i+1)
	}
}

func TestWithRetryShortCircuitsPermanentErrors(t *testing.T) {
	calls := 0
	op := func(_ context.Context) error {
		calls++
		return Permanent(errors.New("bad request"))
	}

	err := WithRetry(context.Background(), op, service.RetryOptions{
		MaxAttempts:  3,
		InitialDelay: time.Millisecond,
	})
	require.ErrorIs(t, err, ErrPermanentRemote)
	assert.Equal(t, 1, calls)
}

func TestWithRetryStopsOnCallerCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	op := func(_ context.Context) error {
		calls++
		cancel()
		return Transient(errors.New("flaky"))
	}

	err := WithRetry(ctx, op, service.RetryOptions{
		MaxAttempts:  5,
		InitialDelay: time.Millisecond,
	})
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}
