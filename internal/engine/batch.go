package engine

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/copperwire/penny/internal/model"
)

// batchWorkers bounds local concurrency for batch runs; the request gate
// still bounds actual remote calls below this.
const batchWorkers = 5

// CategorizeBatch classifies descriptions concurrently, preserving input
// order. Like Categorize it never fails a single entry hard; degraded
// entries are marked in their results.
func (e *Engine) CategorizeBatch(ctx context.Context, descriptions []string, sourceFacts map[string]string) []model.CategorizationResult {
	results := make([]model.CategorizationResult, len(descriptions))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(batchWorkers)

	for i, description := range descriptions {
		g.Go(func() error {
			results[i] = e.Categorize(ctx, description, sourceFacts)
			return nil
		})
	}

	// Workers never return errors; Wait is for completion only.
	_ = g.Wait()
	return results
}
