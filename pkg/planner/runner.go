package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/aspectpath/pkg/aspects"
	"github.com/matzehuels/aspectpath/pkg/cache"
	apperrors "github.com/matzehuels/aspectpath/pkg/errors"
	"github.com/matzehuels/aspectpath/pkg/observability"
	"github.com/matzehuels/aspectpath/pkg/solver"
)

// MaxDistance is the longest walk, in edges, the runner searches for. A line
// with more than MaxDistance-2 consecutive spacers exceeds it.
const MaxDistance = 64

// Runner plans research lines against one dataset, with caching.
type Runner struct {
	Data   *aspects.Data
	Graph  *solver.Graph
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	TTL    time.Duration

	dataset string
}

// NewRunner builds the graph for data and returns a runner.
// A nil cache disables caching, a nil keyer selects the default keyer and a
// nil logger selects log.Default().
func NewRunner(data *aspects.Data, c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Data:    data,
		Graph:   data.Graph(),
		Cache:   c,
		Keyer:   keyer,
		Logger:  logger,
		TTL:     cache.TTLSolution,
		dataset: data.Hash(),
	}
}

// Request describes one research line to plan.
type Request struct {
	// Path is the research line: aspects separated by zero or more spacers.
	Path []string
	// Preferred aspects count as weight 0.
	Preferred solver.Preferred
	// Refresh ignores cached solutions and overwrites them.
	Refresh bool
	// Strategy selects the search algorithm. Empty means DFS.
	Strategy solver.Strategy
	// Spacer is the empty-slot token. Empty means [solver.DefaultSpacer].
	Spacer string
}

// Step is the solution of one problem of the line.
type Step struct {
	Problem  solver.Problem  `json:"problem"`
	Solution solver.Solution `json:"solution"`
	Cached   bool            `json:"cached"`
}

// Stats summarises one plan.
type Stats struct {
	Problems  int           `json:"problems"`
	CacheHits int           `json:"cache_hits"`
	Duration  time.Duration `json:"duration"`
}

// Result is the outcome of [Runner.Plan]. Steps follow the order of the line.
type Result struct {
	Steps []Step `json:"steps"`
	Stats Stats  `json:"stats"`
}

// Found reports whether every step has a solution.
func (r *Result) Found() bool {
	for _, s := range r.Steps {
		if !s.Solution.Found() {
			return false
		}
	}
	return true
}

// Validate checks that every non-spacer entry of the line is a declared
// aspect. The error names the first offending position (1-based).
func (r *Runner) Validate(path []string, spacer string) error {
	if spacer == "" {
		spacer = solver.DefaultSpacer
	}
	for i, a := range path {
		if a == spacer || r.Graph.IsValid(a) {
			continue
		}
		return apperrors.New(apperrors.ErrCodeInvalidAspect, "unknown aspect %q at position %d", a, i+1)
	}
	return nil
}

// checkDistance rejects problems longer than [MaxDistance].
func checkDistance(p solver.Problem) error {
	if p.Distance > MaxDistance {
		return apperrors.New(apperrors.ErrCodeInvalidDistance,
			"distance %d of %s exceeds the maximum of %d", p.Distance, p, MaxDistance)
	}
	return nil
}

// cacheKey keys a solution by everything that can change it, including
// the strategy, which may break weight ties differently.
func (r *Runner) cacheKey(p solver.Problem, strategy solver.Strategy, preferred []string) string {
	if strategy == "" {
		strategy = solver.StrategyDFS
	}
	return r.Keyer.SolutionKey(r.dataset, string(strategy), p.Start, p.End, p.Distance, preferred)
}

// Plan solves every problem of the research line in req.
func (r *Runner) Plan(ctx context.Context, req Request) (_ *Result, err error) {
	start := time.Now()
	spacer := req.Spacer
	if spacer == "" {
		spacer = solver.DefaultSpacer
	}
	if err := r.Validate(req.Path, spacer); err != nil {
		return nil, err
	}

	problems := solver.Decompose(req.Path, spacer)
	for _, p := range problems {
		if err := checkDistance(p); err != nil {
			return nil, err
		}
	}
	hooks := observability.Plan()
	hooks.OnPlanStart(ctx, len(problems))

	result := &Result{Steps: make([]Step, len(problems))}
	defer func() {
		result.Stats.Problems = len(problems)
		result.Stats.Duration = time.Since(start)
		hooks.OnPlanComplete(ctx, len(problems), result.Stats.CacheHits, result.Stats.Duration, err)
	}()

	preferred := req.Preferred.Sorted()
	keys := make([]string, len(problems))
	var missing []int
	for i, p := range problems {
		result.Steps[i].Problem = p
		keys[i] = r.cacheKey(p, req.Strategy, preferred)
		if !req.Refresh {
			if sol, ok := r.lookup(ctx, keys[i]); ok {
				result.Steps[i].Solution = sol
				result.Steps[i].Cached = true
				result.Stats.CacheHits++
				continue
			}
		}
		missing = append(missing, i)
	}

	if len(missing) > 0 {
		batch := make([]solver.Problem, len(missing))
		for j, i := range missing {
			batch[j] = problems[i]
		}
		searchStart := time.Now()
		solutions, err := r.Graph.SolveAll(ctx, batch, req.Preferred, solver.SearchOptions{Strategy: req.Strategy})
		if err != nil {
			return nil, err
		}
		elapsed := time.Since(searchStart)
		for j, i := range missing {
			result.Steps[i].Solution = solutions[j]
			hooks.OnSearch(ctx, problems[i].String(), solutions[j].Found(), elapsed)
			r.store(ctx, keys[i], solutions[j])
		}
	}

	for _, s := range result.Steps {
		r.Logger.Debug("step", "problem", s.Problem, "solution", s.Solution, "cached", s.Cached)
	}
	r.Logger.Info("planned research",
		"problems", len(problems),
		"cache_hits", result.Stats.CacheHits,
		"duration", time.Since(start))
	return result, nil
}

// Solve solves a single problem through the cache.
func (r *Runner) Solve(ctx context.Context, p solver.Problem, pref solver.Preferred, opts solver.SearchOptions) (solver.Solution, bool, error) {
	if err := checkDistance(p); err != nil {
		return solver.Solution{}, false, err
	}
	key := r.cacheKey(p, opts.Strategy, pref.Sorted())
	if sol, ok := r.lookup(ctx, key); ok {
		return sol, true, nil
	}
	sol, err := r.Graph.Search(ctx, p, pref, opts)
	if err != nil {
		return solver.Solution{}, false, fmt.Errorf("solve %s: %w", p, err)
	}
	r.store(ctx, key, sol)
	return sol, false, nil
}

func (r *Runner) lookup(ctx context.Context, key string) (solver.Solution, bool) {
	hooks := observability.Cache()
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "err", err)
	}
	if err != nil || !hit {
		hooks.OnCacheMiss(ctx, "solution")
		return solver.Solution{}, false
	}
	var sol solver.Solution
	if err := json.Unmarshal(data, &sol); err != nil {
		hooks.OnCacheMiss(ctx, "solution")
		return solver.Solution{}, false
	}
	hooks.OnCacheHit(ctx, "solution")
	return sol, true
}

func (r *Runner) store(ctx context.Context, key string, sol solver.Solution) {
	data, err := json.Marshal(sol)
	if err != nil {
		return
	}
	if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
		r.Logger.Warn("cache write failed", "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, "solution", len(data))
}
