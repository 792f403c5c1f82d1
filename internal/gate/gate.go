// Package gate bounds the number of concurrently in-flight remote calls.
package gate

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/copperwire/penny/internal/common"
)

// DefaultCapacity is the default number of concurrent permits.
const DefaultCapacity = 3

// Gate is counting admission control with fixed capacity. It protects the
// remote service from overload and local outbound connections from
// exhaustion. Acquire never blocks indefinitely.
type Gate struct {
	sem      *semaphore.Weighted
	capacity int
}

// Permit represents one admitted slot. Release is safe to call more than
// once; only the first call returns the slot.
type Permit struct {
	gate *Gate
	once sync.Once
}

// Release returns the permit's slot to the gate.
func (p *Permit) Release() {
	p.once.Do(func() {
		p.gate.sem.Release(1)
	})
}

// New creates a gate with the given capacity.
func New(capacity int) *Gate {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Gate{
		sem:      semaphore.NewWeighted(int64(capacity)),
		capacity: capacity,
	}
}

// Capacity returns the gate's permit capacity.
func (g *Gate) Capacity() int {
	return g.capacity
}

// Acquire obtains a permit, waiting at most timeout. The caller's context
// deadline still applies when it is shorter. Returns ErrGateTimeout when no
// slot frees up in time; the caller applies its own fallback.
func (g *Gate) Acquire(ctx context.Context, timeout time.Duration) (*Permit, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	if err := g.sem.Acquire(ctx, 1); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, common.ErrGateTimeout
		}
		return nil, err
	}
	return &Permit{gate: g}, nil
}

// TryAcquire obtains a permit without waiting.
func (g *Gate) TryAcquire() (*Permit, bool) {
	if !g.sem.TryAcquire(1) {
		return nil, false
	}
	return &Permit{gate: g}, true
}
