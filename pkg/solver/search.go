package solver

import (
	"context"
	"math"
	"slices"

	apperrors "github.com/matzehuels/aspectpath/pkg/errors"
)

// Strategy selects the search algorithm.
type Strategy string

const (
	// StrategyDFS is the exhaustive depth-first branch-and-bound search.
	StrategyDFS Strategy = "dfs"
	// StrategyLayered is dynamic programming over (vertex, edges used).
	StrategyLayered Strategy = "layered"
)

// ParseStrategy converts a user-supplied name into a Strategy.
// The empty string selects [StrategyDFS].
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case "", StrategyDFS:
		return StrategyDFS, nil
	case StrategyLayered:
		return StrategyLayered, nil
	}
	return "", apperrors.New(apperrors.ErrCodeInvalidStrategy, "unknown strategy %q (want dfs or layered)", s)
}

// SearchOptions configures [Graph.Search].
type SearchOptions struct {
	Strategy Strategy
}

// ctxCheckInterval is how many expansions pass between context checks.
const ctxCheckInterval = 1024

// IsInvalidInput reports whether err was caused by an invalid problem,
// such as an undeclared endpoint or a distance below 1.
func IsInvalidInput(err error) bool {
	return apperrors.IsInvalidInput(err)
}

// FindSolution returns the minimum-weight walk of exactly p.Distance edges
// from p.Start to p.End, where aspects in pref weigh 0.
//
// It fails with an INVALID_ASPECT error when either endpoint was not
// declared, and with INVALID_DISTANCE when p.Distance < 1. When no walk
// exists it returns [NoSolution] and a nil error.
func (g *Graph) FindSolution(p Problem, pref Preferred) (Solution, error) {
	return g.Search(context.Background(), p, pref, SearchOptions{})
}

// FindSolutionContext is [Graph.FindSolution] with cooperative cancellation.
// The search polls ctx periodically and returns ctx.Err() once it is done.
func (g *Graph) FindSolutionContext(ctx context.Context, p Problem, pref Preferred) (Solution, error) {
	return g.Search(ctx, p, pref, SearchOptions{})
}

// Search solves p with the strategy selected in opts.
func (g *Graph) Search(ctx context.Context, p Problem, pref Preferred, opts SearchOptions) (Solution, error) {
	if err := g.validate(p); err != nil {
		return NoSolution(), err
	}
	switch opts.Strategy {
	case "", StrategyDFS:
		return g.searchDFS(ctx, p, pref)
	case StrategyLayered:
		return g.searchLayered(ctx, p, pref)
	default:
		_, err := ParseStrategy(string(opts.Strategy))
		return NoSolution(), err
	}
}

func (g *Graph) validate(p Problem) error {
	if !g.IsValid(p.Start) {
		return apperrors.New(apperrors.ErrCodeInvalidAspect, "invalid aspect provided: %q", p.Start)
	}
	if !g.IsValid(p.End) {
		return apperrors.New(apperrors.ErrCodeInvalidAspect, "invalid aspect provided: %q", p.End)
	}
	if p.Distance < 1 {
		return apperrors.New(apperrors.ErrCodeInvalidDistance, "distance must be at least 1, got %d", p.Distance)
	}
	return nil
}

// dfsEngine holds the state of one depth-first search. The current path is
// a single slice grown and shrunk in place; the incumbent is cloned from it
// when a better walk is accepted.
type dfsEngine struct {
	g        *Graph
	pref     Preferred
	end      Aspect
	distance int

	ctx   context.Context
	steps int
	err   error

	path       []Aspect
	best       []Aspect
	bestWeight float64
}

func (g *Graph) searchDFS(ctx context.Context, p Problem, pref Preferred) (Solution, error) {
	e := &dfsEngine{
		g:          g,
		pref:       pref,
		end:        p.End,
		distance:   p.Distance,
		ctx:        ctx,
		path:       make([]Aspect, 1, min(p.Distance, len(g.nodes))+1),
		bestWeight: math.Inf(1),
	}
	e.path[0] = p.Start
	e.walk(p.Start, g.EffectiveWeight(p.Start, pref))

	if e.err != nil {
		return NoSolution(), e.err
	}
	if e.best == nil {
		return NoSolution(), nil
	}
	return Solution{Path: e.best, Weight: e.bestWeight}, nil
}

func (e *dfsEngine) walk(current Aspect, weight float64) {
	if e.err != nil {
		return
	}
	if e.steps++; e.steps%ctxCheckInterval == 0 {
		if err := e.ctx.Err(); err != nil {
			e.err = err
			return
		}
	}

	if len(e.path)-1 == e.distance {
		if current == e.end && weight < e.bestWeight {
			e.bestWeight = weight
			e.best = slices.Clone(e.path)
		}
		return
	}

	for _, next := range e.g.connections[current] {
		w := weight + e.g.EffectiveWeight(next, e.pref)
		// Weights are non-negative, so a partial walk never gets cheaper.
		if w >= e.bestWeight {
			continue
		}
		e.path = append(e.path, next)
		e.walk(next, w)
		e.path = e.path[:len(e.path)-1]
	}
}
