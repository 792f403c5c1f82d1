// Package brain performs resilient calls to the remote inference service,
// composing the circuit breaker, request gate, cache layer, and retry loop.
package brain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/copperwire/penny/internal/breaker"
	"github.com/copperwire/penny/internal/cache"
	"github.com/copperwire/penny/internal/common"
	"github.com/copperwire/penny/internal/confidence"
	"github.com/copperwire/penny/internal/gate"
	"github.com/copperwire/penny/internal/model"
	"github.com/copperwire/penny/internal/service"
	"github.com/copperwire/penny/internal/validate"
)

// DegradedReason names why a classify call fell back.
type DegradedReason string

// Degradation reasons.
const (
	ReasonGateTimeout      DegradedReason = "gate_timeout"
	ReasonBreakerOpen      DegradedReason = "breaker_open"
	ReasonRemoteFailed     DegradedReason = "remote_failed"
	ReasonValidationFailed DegradedReason = "validation_failed"
)

// Result is the outcome of a resilient remote classification.
type Result struct {
	Reason     DegradedReason
	Content    string
	Labels     []model.LabeledEntry
	Issues     []model.Issue
	Confidence model.ConfidenceResult
	FromCache  bool
	Degraded   bool
}

// Config holds the client tunables.
type Config struct {
	// GateTimeout bounds how long a call waits for a gate permit.
	GateTimeout time.Duration
	// Retry configures the transient-failure retry loop, including the
	// escalating per-attempt timeouts.
	Retry service.RetryOptions
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() Config {
	return Config{
		GateTimeout: 2 * time.Second,
		Retry: service.RetryOptions{
			MaxAttempts:        3,
			InitialDelay:       500 * time.Millisecond,
			MaxDelay:           10 * time.Second,
			Multiplier:         2.0,
			AttemptTimeout:     2 * time.Second,
			AttemptTimeoutStep: 2 * time.Second,
		},
	}
}

// Client performs resilient remote classifications. All shared state (the
// breaker and gate) is injected, never package-global, so tests can run
// isolated instances.
type Client struct {
	remote    RemoteClient
	breaker   *breaker.Breaker
	gate      *gate.Gate
	cache     *cache.Layer
	validator *validate.Validator
	scorer    *confidence.Scorer
	history   service.HistoryProvider
	logger    *slog.Logger
	cfg       Config
}

// cachedResponse is the payload stored in the cache layer: only validated,
// safe responses ever take this shape.
type cachedResponse struct {
	Content    string                 `json:"content"`
	Labels     []model.LabeledEntry   `json:"labels,omitempty"`
	Confidence model.ConfidenceResult `json:"confidence"`
}

// New creates a brain client. history may be nil when no agreement data is
// available.
func New(remote RemoteClient, brk *breaker.Breaker, g *gate.Gate, cacheLayer *cache.Layer, validator *validate.Validator, scorer *confidence.Scorer, history service.HistoryProvider, cfg Config, logger *slog.Logger) *Client {
	def := DefaultConfig()
	if cfg.GateTimeout <= 0 {
		cfg.GateTimeout = def.GateTimeout
	}
	if cfg.Retry.MaxAttempts <= 0 {
		cfg.Retry = def.Retry
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		remote:    remote,
		breaker:   brk,
		gate:      g,
		cache:     cacheLayer,
		validator: validator,
		scorer:    scorer,
		history:   history,
		cfg:       cfg,
		logger:    logger,
	}
}

// Classify performs one resilient remote classification. It never returns an
// error for resilience conditions: gate saturation, an open breaker,
// exhausted retries, and unsafe responses all yield a degraded result the
// caller can fall back from.
func (c *Client) Classify(ctx context.Context, req model.ClassificationRequest) Result {
	if hit, ok := c.fromCache(ctx, req); ok {
		return hit
	}

	permit, err := c.gate.Acquire(ctx, c.cfg.GateTimeout)
	if err != nil {
		c.logger.Warn("request gate saturated, degrading",
			"request_id", req.ID,
			"mode", req.Mode,
			"error", err)
		return Result{Degraded: true, Reason: ReasonGateTimeout}
	}
	defer permit.Release()

	var raw string
	var validation model.ValidationResult

	err = c.breaker.Guard(ctx, func(ctx context.Context) error {
		retryErr := common.WithRetry(ctx, func(attemptCtx context.Context) error {
			response, inferErr := c.remote.Infer(attemptCtx, req)
			if inferErr != nil {
				return inferErr
			}
			raw = response
			return nil
		}, c.cfg.Retry)
		if retryErr != nil {
			return retryErr
		}

		validation = c.validator.Validate(raw, req.Mode, req.Context)
		if !validation.IsSafe {
			// Counts against the breaker like any other failure, but
			// is never retried.
			return fmt.Errorf("%w: %d issue(s)", common.ErrValidationFailure, len(validation.Issues))
		}
		return nil
	})

	switch {
	case err == nil:
		return c.accept(ctx, req, validation)
	case errors.Is(err, common.ErrServiceUnavailable):
		c.logger.Warn("circuit breaker open, degrading", "request_id", req.ID)
		return Result{Degraded: true, Reason: ReasonBreakerOpen}
	case errors.Is(err, common.ErrValidationFailure):
		c.logger.Warn("remote response failed validation, degrading",
			"request_id", req.ID,
			"issues", len(validation.Issues))
		return Result{
			Degraded: true,
			Reason:   ReasonValidationFailed,
			Issues:   validation.Issues,
			Content:  validation.SanitizedContent,
		}
	default:
		c.logger.Warn("remote call failed, degrading",
			"request_id", req.ID,
			"error", err)
		return Result{Degraded: true, Reason: ReasonRemoteFailed}
	}
}

// fromCache returns a previously validated response for the request if one
// is cached.
func (c *Client) fromCache(ctx context.Context, req model.ClassificationRequest) (Result, bool) {
	payload, found := c.cache.Get(ctx, req.Mode, req.Query)
	if !found {
		return Result{}, false
	}

	var cached cachedResponse
	if err := json.Unmarshal(payload, &cached); err != nil {
		c.logger.Warn("cached payload is unreadable, invalidating",
			"request_id", req.ID,
			"error", err)
		c.cache.Invalidate(ctx, req.Mode, req.Query)
		return Result{}, false
	}

	return Result{
		Content:    cached.Content,
		Labels:     cached.Labels,
		Confidence: cached.Confidence,
		FromCache:  true,
	}, true
}

// accept scores a validated response, caches it, and returns it.
func (c *Client) accept(ctx context.Context, req model.ClassificationRequest, validation model.ValidationResult) Result {
	signals := confidence.Signals{
		CategoryInTaxonomy: req.Mode != model.ModeParse || len(validation.Labels) > 0,
		OutputWellFormed:   true,
	}
	if c.history != nil {
		if rate, known := c.history.AgreementRate(ctx, req.Query); known {
			signals.HistoricalAgreementRate = rate
			signals.HasAgreementRate = true
		}
	}
	conf := c.scorer.Score(signals)

	result := Result{
		Content:    validation.SanitizedContent,
		Labels:     validation.Labels,
		Confidence: conf,
	}

	payload, err := json.Marshal(cachedResponse{
		Content:    result.Content,
		Labels:     result.Labels,
		Confidence: conf,
	})
	if err != nil {
		c.logger.Warn("failed to encode cache payload", "request_id", req.ID, "error", err)
		return result
	}
	c.cache.Put(ctx, req.Mode, req.Query, payload)

	c.logger.Info("remote classification accepted",
		"request_id", req.ID,
		"mode", req.Mode,
		"labels", len(result.Labels),
		"confidence", conf.Score)

	return result
}
