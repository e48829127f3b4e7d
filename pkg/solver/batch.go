package solver

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// SolveAll searches every problem concurrently and returns the solutions
// in problem order. All searches share the same preferred snapshot. The
// first error cancels the remaining searches.
func (g *Graph) SolveAll(ctx context.Context, problems []Problem, pref Preferred, opts SearchOptions) ([]Solution, error) {
	solutions := make([]Solution, len(problems))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for i, p := range problems {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			s, err := g.Search(ctx, p, pref, opts)
			if err != nil {
				return fmt.Errorf("problem %d (%s): %w", i+1, p, err)
			}
			solutions[i] = s
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return solutions, nil
}
