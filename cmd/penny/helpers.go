package main

import (
	"fmt"
	"log/slog"

	"github.com/copperwire/penny/internal/brain"
	"github.com/copperwire/penny/internal/breaker"
	"github.com/copperwire/penny/internal/cache"
	"github.com/copperwire/penny/internal/common"
	"github.com/copperwire/penny/internal/config"
	"github.com/copperwire/penny/internal/confidence"
	"github.com/copperwire/penny/internal/engine"
	"github.com/copperwire/penny/internal/gate"
	"github.com/copperwire/penny/internal/model"
	"github.com/copperwire/penny/internal/service"
	"github.com/copperwire/penny/internal/validate"
)

// runtime bundles the composition root: every shared component, built once
// per invocation and torn down together.
type runtime struct {
	engine *engine.Engine
	brain  *brain.Client
	cache  *cache.Layer
}

// initRuntime wires the full orchestration stack from configuration. The
// breaker and gate are constructed here and shared by reference; nothing is
// package-global.
func initRuntime() (*runtime, error) {
	cfg := config.Load()
	logger := slog.Default()

	remote, err := brain.NewHTTPClient(cfg.Remote)
	if err != nil {
		return nil, fmt.Errorf("failed to create remote client: %w", err)
	}

	var store service.CacheStore
	if cfg.CachePath != "" {
		store, err = cache.NewSQLiteStore(cfg.CachePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open cache store: %w", err)
		}
	} else {
		store = cache.NewMemoryStore()
	}
	cacheLayer := cache.New(store, cfg.CacheTTL, logger)

	taxonomy := model.DefaultTaxonomy()
	scorer := confidence.NewScorer(cfg.Confidence)
	history := engine.NewHistory()

	brainClient := brain.New(
		remote,
		breaker.New(cfg.Breaker, logger),
		gate.New(cfg.GateCapacity),
		cacheLayer,
		validate.New(taxonomy, validate.DefaultConfig()),
		scorer,
		history,
		cfg.Brain,
		logger,
	)

	eng := engine.New(
		engine.NewHeuristicClassifier(),
		scorer,
		brainClient,
		taxonomy,
		history,
		engine.NewLoggingFeedback(logger),
		logger,
	)

	return &runtime{engine: eng, brain: brainClient, cache: cacheLayer}, nil
}

// close releases the runtime's resources.
func (r *runtime) close() {
	if err := r.cache.Close(); err != nil {
		common.LogError(err, "failed to close cache", common.Fields{"component": "cache"})
	}
}
