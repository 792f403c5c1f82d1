// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"
)

// FastClassifier is the local statistical classifier consulted before any
// remote call. It is synchronous, performs no network I/O, and is expected to
// complete in low single-digit milliseconds.
type FastClassifier interface {
	Classify(text string) (category string, probability float64)
}

// CacheStore is the shared external store backing the cache layer. It may be
// accessed by multiple process instances; semantics are last-write-wins with
// TTL, with no further cross-instance coordination.
type CacheStore interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// FeedbackRecorder receives user corrections for a retraining collaborator.
// Implementations are fire-and-forget; callers never block on them.
type FeedbackRecorder interface {
	RecordCorrection(ctx context.Context, originalCategory, correctedCategory, description string)
}

// HistoryProvider reports how often an exact description previously yielded
// a stable category; used as a confidence signal.
type HistoryProvider interface {
	AgreementRate(ctx context.Context, description string) (rate float64, known bool)
}

// RetryOptions configures retry behavior for transient failures.
type RetryOptions struct {
	MaxAttempts        int
	InitialDelay       time.Duration
	MaxDelay           time.Duration
	Multiplier         float64
	AttemptTimeout     time.Duration
	AttemptTimeoutStep time.Duration
}
