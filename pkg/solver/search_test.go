package solver

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"slices"
	"testing"

	apperrors "github.com/matzehuels/aspectpath/pkg/errors"
)

func TestFindSolutionEnergyExample(t *testing.T) {
	g := Build(Recipes{"energy": {"fire", "air"}}, []Aspect{"fire", "air"}, []Aspect{"energy"})

	s, err := g.FindSolution(Problem{Start: "fire", End: "air", Distance: 2}, Preferred{})
	if err != nil {
		t.Fatalf("FindSolution() error: %v", err)
	}
	if want := []Aspect{"fire", "energy", "air"}; !slices.Equal(s.Path, want) {
		t.Errorf("Path = %v, want %v", s.Path, want)
	}
	if s.Weight != 4 {
		t.Errorf("Weight = %v, want 4", s.Weight)
	}
}

func TestFindSolutionInvalidInput(t *testing.T) {
	g := Build(Recipes{"c": {"p", "ghost"}}, []Aspect{"p"}, []Aspect{"c"})

	tests := []struct {
		name string
		p    Problem
		code apperrors.Code
	}{
		{"unknown start", Problem{Start: "nope", End: "c", Distance: 2}, apperrors.ErrCodeInvalidAspect},
		{"unknown end", Problem{Start: "p", End: "nope", Distance: 2}, apperrors.ErrCodeInvalidAspect},
		{"implicit start", Problem{Start: "ghost", End: "c", Distance: 1}, apperrors.ErrCodeInvalidAspect},
		{"implicit end", Problem{Start: "c", End: "ghost", Distance: 1}, apperrors.ErrCodeInvalidAspect},
		{"zero distance", Problem{Start: "p", End: "p", Distance: 0}, apperrors.ErrCodeInvalidDistance},
		{"negative distance", Problem{Start: "p", End: "c", Distance: -3}, apperrors.ErrCodeInvalidDistance},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := g.FindSolution(tt.p, Preferred{})
			if err == nil {
				t.Fatalf("FindSolution(%s) error = nil, want %s", tt.p, tt.code)
			}
			if !apperrors.Is(err, tt.code) {
				t.Errorf("error code = %s, want %s", apperrors.GetCode(err), tt.code)
			}
			if !IsInvalidInput(err) {
				t.Error("IsInvalidInput() = false")
			}
			if s.Found() {
				t.Error("invalid input should not carry a path")
			}
		})
	}
}

func TestFindSolutionNoSolution(t *testing.T) {
	g := Build(Recipes{
		"energy": {"fire", "air"},
		"mud":    {"earth", "water"},
	}, []Aspect{"fire", "air", "earth", "water"}, []Aspect{"energy", "mud"})

	tests := []struct {
		name string
		p    Problem
	}{
		{"shorter than graph distance", Problem{Start: "fire", End: "air", Distance: 1}},
		{"odd length in bipartite graph", Problem{Start: "fire", End: "air", Distance: 3}},
		{"disconnected components", Problem{Start: "fire", End: "mud", Distance: 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := g.FindSolution(tt.p, Preferred{})
			if err != nil {
				t.Fatalf("FindSolution() error: %v", err)
			}
			if s.Found() {
				t.Errorf("Path = %v, want none", s.Path)
			}
			if !math.IsInf(s.Weight, 1) {
				t.Errorf("Weight = %v, want +Inf", s.Weight)
			}
		})
	}
}

func TestFindSolutionAllowsRevisits(t *testing.T) {
	g := Build(Recipes{"energy": {"fire", "air"}}, []Aspect{"fire", "air"}, []Aspect{"energy"})

	s, err := g.FindSolution(Problem{Start: "fire", End: "air", Distance: 4}, Preferred{})
	if err != nil {
		t.Fatalf("FindSolution() error: %v", err)
	}
	// Bouncing back through fire or through air costs the same; fire is tried first.
	if want := []Aspect{"fire", "energy", "fire", "energy", "air"}; !slices.Equal(s.Path, want) {
		t.Errorf("Path = %v, want %v", s.Path, want)
	}
	if s.Weight != 7 {
		t.Errorf("Weight = %v, want 7", s.Weight)
	}
}

func TestFindSolutionTieKeepsFirst(t *testing.T) {
	g := Build(Recipes{"x": {"a", "b"}, "y": {"a", "b"}}, []Aspect{"a", "b"}, []Aspect{"x", "y"})

	s, err := g.FindSolution(Problem{Start: "a", End: "b", Distance: 2}, Preferred{})
	if err != nil {
		t.Fatalf("FindSolution() error: %v", err)
	}
	if want := []Aspect{"a", "x", "b"}; !slices.Equal(s.Path, want) {
		t.Errorf("Path = %v, want %v", s.Path, want)
	}
}

func TestFindSolutionThroughImplicitAspect(t *testing.T) {
	g := Build(Recipes{"c": {"p", "ghost"}}, []Aspect{"p"}, []Aspect{"c"})

	s, err := g.FindSolution(Problem{Start: "p", End: "c", Distance: 3}, Preferred{})
	if err != nil {
		t.Fatalf("FindSolution() error: %v", err)
	}
	if want := []Aspect{"p", "c", "ghost", "c"}; !slices.Equal(s.Path, want) {
		t.Errorf("Path = %v, want %v", s.Path, want)
	}
	if s.Weight != 3 {
		t.Errorf("Weight = %v, want 3", s.Weight)
	}
}

func TestFindSolutionWalkProperties(t *testing.T) {
	g := testGraph()
	aspects := g.Aspects()

	for _, start := range aspects {
		for _, end := range aspects {
			for d := 1; d <= 4; d++ {
				p := Problem{Start: start, End: end, Distance: d}
				s, err := g.FindSolution(p, Preferred{})
				if err != nil {
					t.Fatalf("FindSolution(%s) error: %v", p, err)
				}
				want := bruteForce(g, p, Preferred{})
				if s.Weight != want {
					t.Fatalf("FindSolution(%s) weight = %v, brute force = %v", p, s.Weight, want)
				}
				if s.Found() {
					checkWalk(t, g, p, Preferred{}, s)
				}
			}
		}
	}
}

func TestFindSolutionMinimalOnRandomGraphs(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < 25; trial++ {
		primal := []Aspect{"p0", "p1", "p2", "p3"}
		var compound []Aspect
		recipes := Recipes{}
		pool := slices.Clone(primal)
		for i := 0; i < 6; i++ {
			c := Aspect(string(rune('a' + i)))
			recipes[c] = []Aspect{pool[rng.Intn(len(pool))], pool[rng.Intn(len(pool))]}
			compound = append(compound, c)
			pool = append(pool, c)
		}
		g := Build(recipes, primal, compound)

		var prefList []Aspect
		for _, a := range g.Aspects() {
			if rng.Intn(4) == 0 {
				prefList = append(prefList, a)
			}
		}
		pref := NewPreferred(prefList...)

		for i := 0; i < 10; i++ {
			p := Problem{
				Start:    pool[rng.Intn(len(pool))],
				End:      pool[rng.Intn(len(pool))],
				Distance: 1 + rng.Intn(5),
			}
			s, err := g.FindSolution(p, pref)
			if err != nil {
				t.Fatalf("trial %d: FindSolution(%s) error: %v", trial, p, err)
			}
			if want := bruteForce(g, p, pref); s.Weight != want {
				t.Fatalf("trial %d: FindSolution(%s) weight = %v, brute force = %v", trial, p, s.Weight, want)
			}
			if s.Found() {
				checkWalk(t, g, p, pref, s)
			}
		}
	}
}

func TestFindSolutionPreferredEffect(t *testing.T) {
	g := testGraph()
	p := Problem{Start: "ignis", End: "perditio", Distance: 4}

	before, err := g.FindSolution(p, Preferred{})
	if err != nil {
		t.Fatalf("FindSolution() error: %v", err)
	}
	if !before.Found() {
		t.Fatal("expected a solution")
	}

	pref := NewPreferred(before.Path...)
	var pathWeight float64
	for _, a := range before.Path {
		pathWeight += g.EffectiveWeight(a, pref)
	}
	if pathWeight != 0 {
		t.Errorf("preferred path weight = %v, want 0", pathWeight)
	}

	after, err := g.FindSolution(p, pref)
	if err != nil {
		t.Fatalf("FindSolution() error: %v", err)
	}
	if after.Weight > before.Weight {
		t.Errorf("weight with preference %v > without %v", after.Weight, before.Weight)
	}
	if after.Weight != 0 {
		t.Errorf("weight with whole path preferred = %v, want 0", after.Weight)
	}
}

func TestFindSolutionContextCancelled(t *testing.T) {
	// A dense component with no route to the target forces a full search.
	g := Build(Recipes{
		"ab": {"a", "b"}, "bc": {"b", "c"}, "ca": {"c", "a"},
		"ad": {"a", "d"}, "bd": {"b", "d"}, "cd": {"c", "d"},
		"far": {"x", "y"},
	}, []Aspect{"a", "b", "c", "d", "x", "y"}, []Aspect{"ab", "bc", "ca", "ad", "bd", "cd", "far"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := g.FindSolutionContext(ctx, Problem{Start: "a", End: "x", Distance: 14}, Preferred{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestSearchHugeDistanceDoesNotPanic(t *testing.T) {
	g := Build(Recipes{"energy": {"fire", "air"}}, []Aspect{"fire", "air"}, []Aspect{"energy"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, st := range []Strategy{StrategyDFS, StrategyLayered} {
		t.Run(string(st), func(t *testing.T) {
			p := Problem{Start: "fire", End: "air", Distance: math.MaxInt}
			_, err := g.Search(ctx, p, Preferred{}, SearchOptions{Strategy: st})
			if !errors.Is(err, context.Canceled) {
				t.Errorf("Search() error = %v, want context.Canceled", err)
			}
		})
	}
}

func TestParseStrategy(t *testing.T) {
	tests := []struct {
		in      string
		want    Strategy
		wantErr bool
	}{
		{"", StrategyDFS, false},
		{"dfs", StrategyDFS, false},
		{"layered", StrategyLayered, false},
		{"bfs", "", true},
	}
	for _, tt := range tests {
		got, err := ParseStrategy(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseStrategy(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseStrategy(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
