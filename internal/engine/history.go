package engine

import (
	"context"
	"sync"
)

// History tracks how often each exact description resolved to the same
// category, feeding the historical-agreement confidence signal.
type History struct {
	observations map[string]map[string]int
	mu           sync.RWMutex
}

// NewHistory creates an empty history tracker.
func NewHistory() *History {
	return &History{observations: make(map[string]map[string]int)}
}

// Observe records that description resolved to category.
func (h *History) Observe(description, category string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	counts, ok := h.observations[description]
	if !ok {
		counts = make(map[string]int)
		h.observations[description] = counts
	}
	counts[category]++
}

// AgreementRate returns the share of past observations that agree on the
// dominant category for description. known is false until the description
// has been seen at least once.
func (h *History) AgreementRate(_ context.Context, description string) (float64, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	counts, ok := h.observations[description]
	if !ok || len(counts) == 0 {
		return 0, false
	}

	total, dominant := 0, 0
	for _, n := range counts {
		total += n
		if n > dominant {
			dominant = n
		}
	}
	return float64(dominant) / float64(total), true
}
