// Package breaker implements a circuit breaker guarding remote service calls.
package breaker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/copperwire/penny/internal/common"
)

// Phase is the circuit breaker state.
type Phase string

// Circuit phases.
const (
	// PhaseClosed passes calls through and counts consecutive failures.
	PhaseClosed Phase = "closed"
	// PhaseOpen fails fast without invoking the operation until the
	// cooldown elapses.
	PhaseOpen Phase = "open"
	// PhaseHalfOpen lets exactly one probe call through; its outcome
	// alone decides the next phase.
	PhaseHalfOpen Phase = "half_open"
)

// Config holds the breaker tunables.
type Config struct {
	// FailureThreshold is the consecutive-failure count that opens the
	// circuit.
	FailureThreshold int
	// Cooldown is how long the circuit stays open before admitting a
	// probe call.
	Cooldown time.Duration
}

// DefaultConfig returns the default breaker configuration.
func DefaultConfig() Config {
	return Config{
		FailureThreshold: 5,
		Cooldown:         30 * time.Second,
	}
}

// Snapshot is a point-in-time copy of the breaker state for logging and
// introspection.
type Snapshot struct {
	OpenedAt            time.Time
	Phase               Phase
	ConsecutiveFailures int
}

// Breaker is a process-wide failure-tracking state machine shared by every
// remote call site. It is constructed explicitly and injected so tests can
// run isolated instances; there is no package-level singleton.
type Breaker struct {
	now        func() time.Time
	logger     *slog.Logger
	openedAt   time.Time
	cfg        Config
	failures   int
	generation uint64
	phase      Phase
	probing    bool
	mu         sync.Mutex
}

// New creates a breaker in the closed phase.
func New(cfg Config, logger *slog.Logger) *Breaker {
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = DefaultConfig().FailureThreshold
	}
	if cfg.Cooldown <= 0 {
		cfg.Cooldown = DefaultConfig().Cooldown
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Breaker{
		cfg:    cfg,
		logger: logger,
		phase:  PhaseClosed,
		now:    time.Now,
	}
}

// Guard runs operation under the breaker. While the circuit is open and the
// cooldown has not elapsed it returns ErrServiceUnavailable immediately,
// without invoking the operation. The first call after the cooldown is the
// half-open probe. The breaker lock is never held across the operation
// itself.
func (b *Breaker) Guard(ctx context.Context, operation func(context.Context) error) error {
	gen, err := b.admit()
	if err != nil {
		return err
	}

	err = operation(ctx)
	b.report(gen, err == nil)
	return err
}

// admit returns the generation the call was admitted under. The generation
// advances every time the circuit opens, so outcomes of calls admitted
// before an open can be recognized as stale.
func (b *Breaker) admit() (uint64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.phase {
	case PhaseClosed:
		return b.generation, nil
	case PhaseOpen:
		if b.now().Sub(b.openedAt) < b.cfg.Cooldown {
			return 0, common.ErrServiceUnavailable
		}
		b.phase = PhaseHalfOpen
		b.probing = true
		b.logger.Info("circuit breaker half-open, admitting probe")
		return b.generation, nil
	case PhaseHalfOpen:
		// One probe at a time; concurrent callers fail fast until its
		// outcome is known.
		if b.probing {
			return 0, common.ErrServiceUnavailable
		}
		b.probing = true
		return b.generation, nil
	default:
		return 0, common.ErrServiceUnavailable
	}
}

// report records the outcome of a remote call admitted under gen. Outcomes
// from a generation before the circuit last opened are ignored: a slow
// success that started before the open must not close the circuit without a
// half-open probe.
func (b *Breaker) report(gen uint64, success bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if gen != b.generation {
		b.logger.Debug("ignoring stale call outcome",
			"generation", gen,
			"current_generation", b.generation,
			"success", success)
		return
	}

	if success {
		if b.phase == PhaseHalfOpen {
			b.logger.Info("circuit breaker probe succeeded, closing circuit")
		}
		b.phase = PhaseClosed
		b.failures = 0
		b.probing = false
		b.openedAt = time.Time{}
		return
	}

	switch b.phase {
	case PhaseHalfOpen:
		// Failed probe restarts the cooldown.
		b.open()
	case PhaseClosed:
		b.failures++
		if b.failures >= b.cfg.FailureThreshold {
			b.open()
		}
	}
	b.probing = false
}

// open transitions to the open phase and advances the generation. Caller
// holds the lock.
func (b *Breaker) open() {
	b.phase = PhaseOpen
	b.openedAt = b.now()
	b.generation++
	b.logger.Warn("circuit breaker opened",
		"consecutive_failures", b.failures,
		"cooldown", b.cfg.Cooldown)
}

// Reset returns the breaker to a fresh closed state. In-flight calls from
// before the reset report into a dead generation.
func (b *Breaker) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.phase = PhaseClosed
	b.failures = 0
	b.probing = false
	b.openedAt = time.Time{}
	b.generation++
}

// Snapshot returns a copy of the current state.
func (b *Breaker) Snapshot() Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	return Snapshot{
		Phase:               b.phase,
		ConsecutiveFailures: b.failures,
		OpenedAt:            b.openedAt,
	}
}
