// Package cache memoizes validated remote responses keyed by a deterministic
// digest of (mode, normalized query).
package cache

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/copperwire/penny/internal/model"
	"github.com/copperwire/penny/internal/service"
)

// DefaultTTL is the entry lifetime used when none is configured.
const DefaultTTL = 15 * time.Minute

// Stats reports cache effectiveness counters.
type Stats struct {
	Hits   int64
	Misses int64
}

// Layer is the cache facade over a shared store. It only ever holds
// validated responses; callers must never put an unsafe or degraded value.
type Layer struct {
	store  service.CacheStore
	logger *slog.Logger
	ttl    time.Duration
	hits   atomic.Int64
	misses atomic.Int64
}

// New creates a cache layer over the given store.
func New(store service.CacheStore, ttl time.Duration, logger *slog.Logger) *Layer {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Layer{store: store, ttl: ttl, logger: logger}
}

// Get looks up the validated response for a mode and query. Store errors are
// treated as misses; the cache is an optimization, never a failure source.
func (l *Layer) Get(ctx context.Context, mode model.RequestMode, query string) ([]byte, bool) {
	key := Key(mode, query)
	value, found, err := l.store.Get(ctx, key)
	if err != nil {
		l.logger.Warn("cache store get failed, treating as miss", "key", key, "error", err)
		l.misses.Add(1)
		return nil, false
	}
	if !found {
		l.misses.Add(1)
		return nil, false
	}
	l.hits.Add(1)
	return value, true
}

// Put stores a validated response under the derived key with the layer TTL.
func (l *Layer) Put(ctx context.Context, mode model.RequestMode, query string, value []byte) {
	key := Key(mode, query)
	if err := l.store.Set(ctx, key, value, l.ttl); err != nil {
		l.logger.Warn("cache store set failed", "key", key, "error", err)
	}
}

// Invalidate removes the entry for a mode and query.
func (l *Layer) Invalidate(ctx context.Context, mode model.RequestMode, query string) {
	key := Key(mode, query)
	if err := l.store.Delete(ctx, key); err != nil {
		l.logger.Warn("cache store delete failed", "key", key, "error", err)
	}
}

// Stats returns hit and miss counters since construction.
func (l *Layer) Stats() Stats {
	return Stats{Hits: l.hits.Load(), Misses: l.misses.Load()}
}

// Close releases the underlying store.
func (l *Layer) Close() error {
	return l.store.Close()
}
