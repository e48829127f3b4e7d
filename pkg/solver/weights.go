package solver

import (
	"maps"
	"slices"
)

// primalWeight is the fixed weight of every primal aspect.
const primalWeight = 1

// weigher evaluates recipe weights. done is the memo table; inProgress
// holds the aspects on the current evaluation chain so that a cycle
// resolves to a 0 contribution instead of recursing forever.
type weigher struct {
	recipes    Recipes
	done       map[Aspect]float64
	inProgress map[Aspect]bool
}

// computeWeights fills g.weights for every declared aspect and every
// identifier referenced by the recipe table.
func (g *Graph) computeWeights() {
	w := &weigher{
		recipes:    g.recipes,
		done:       g.weights,
		inProgress: make(map[Aspect]bool),
	}
	for _, a := range g.primal {
		w.done[a] = primalWeight
	}
	for _, a := range g.compound {
		w.eval(a)
	}
	// Undeclared recipe keys and components are weighed the same way.
	for _, key := range slices.Sorted(maps.Keys(g.recipes)) {
		w.eval(key)
		for _, c := range g.recipes[key] {
			w.eval(c)
		}
	}
}

func (w *weigher) eval(a Aspect) float64 {
	if v, ok := w.done[a]; ok {
		return v
	}
	if w.inProgress[a] {
		return 0
	}

	w.inProgress[a] = true
	var sum float64
	for _, c := range w.recipes[a] {
		sum += w.eval(c)
	}
	delete(w.inProgress, a)

	w.done[a] = sum
	return sum
}
