package solver

import (
	"math"
	"testing"
)

// testGraph builds a small aspect graph:
//
//	lux = aer + ignis         motus = aer + ordo
//	vacuos = aer + perditio   potentia = ordo + ignis
//	tenebrae = vacuos + lux   victus = aqua + terra
//	herba = victus + terra
func testGraph() *Graph {
	return Build(Recipes{
		"lux":      {"aer", "ignis"},
		"motus":    {"aer", "ordo"},
		"vacuos":   {"aer", "perditio"},
		"potentia": {"ordo", "ignis"},
		"tenebrae": {"vacuos", "lux"},
		"victus":   {"aqua", "terra"},
		"herba":    {"victus", "terra"},
	},
		[]Aspect{"aer", "terra", "ignis", "aqua", "ordo", "perditio"},
		[]Aspect{"lux", "motus", "vacuos", "potentia", "tenebrae", "victus", "herba"},
	)
}

// bruteForce enumerates every walk of exactly distance edges without
// pruning and returns the lowest weight, or +Inf.
func bruteForce(g *Graph, p Problem, pref Preferred) float64 {
	best := math.Inf(1)
	var walk func(cur Aspect, edges int, w float64)
	walk = func(cur Aspect, edges int, w float64) {
		if edges == p.Distance {
			if cur == p.End && w < best {
				best = w
			}
			return
		}
		for _, next := range g.Neighbors(cur) {
			walk(next, edges+1, w+g.EffectiveWeight(next, pref))
		}
	}
	walk(p.Start, 0, g.EffectiveWeight(p.Start, pref))
	return best
}

// checkWalk verifies the structural guarantees of a found solution.
func checkWalk(t *testing.T, g *Graph, p Problem, pref Preferred, s Solution) {
	t.Helper()
	if len(s.Path) != p.Distance+1 {
		t.Fatalf("%s: path %v has %d vertices, want %d", p, s.Path, len(s.Path), p.Distance+1)
	}
	if s.Path[0] != p.Start || s.Path[len(s.Path)-1] != p.End {
		t.Fatalf("%s: path %v does not connect endpoints", p, s.Path)
	}
	var sum float64
	for i, a := range s.Path {
		sum += g.EffectiveWeight(a, pref)
		if i > 0 && !g.Connected(s.Path[i-1], a) {
			t.Fatalf("%s: %s and %s are not connected", p, s.Path[i-1], a)
		}
	}
	if sum != s.Weight {
		t.Fatalf("%s: weight %v, sum along path %v", p, s.Weight, sum)
	}
}
