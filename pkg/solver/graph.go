package solver

import (
	"cmp"
	"maps"
	"slices"
)

// Aspect identifies a node in the combination graph.
type Aspect = string

// Recipes maps a compound aspect to the ordered list of components it is
// made from.
type Recipes map[Aspect][]Aspect

// Kind classifies an aspect within a [Graph].
type Kind int

const (
	// KindImplicit marks an aspect that is only referenced by a recipe and
	// was never declared. It has adjacency and weight entries but is not
	// a valid search endpoint.
	KindImplicit Kind = iota
	// KindPrimal marks a declared base aspect.
	KindPrimal
	// KindCompound marks a declared aspect built from a recipe.
	KindCompound
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindPrimal:
		return "primal"
	case KindCompound:
		return "compound"
	default:
		return "implicit"
	}
}

// Graph is the undirected combination graph with precomputed weights.
//
// The zero value is not usable; create graphs with [Build]. A Graph is never
// modified after Build returns, so concurrent searches need no locking.
type Graph struct {
	connections map[Aspect][]Aspect
	weights     map[Aspect]float64
	kinds       map[Aspect]Kind
	recipes     Recipes
	primal      []Aspect
	compound    []Aspect
	nodes       []Aspect // every aspect with an adjacency list, sorted
}

// Build derives the connection graph and weights from a recipe table and
// the declared primal and compound aspects. It never fails: identifiers
// that only appear inside recipes become implicit nodes.
//
// Duplicate edges are preserved. Recipe keys are processed in sorted order
// so that adjacency lists, and therefore search tie-breaks, are stable.
func Build(recipes Recipes, primal, compound []Aspect) *Graph {
	g := &Graph{
		connections: make(map[Aspect][]Aspect),
		weights:     make(map[Aspect]float64),
		kinds:       make(map[Aspect]Kind),
		recipes:     make(Recipes, len(recipes)),
		primal:      slices.Clone(primal),
		compound:    slices.Clone(compound),
	}
	for k, v := range recipes {
		g.recipes[k] = slices.Clone(v)
	}

	for _, a := range primal {
		g.connections[a] = []Aspect{}
		g.kinds[a] = KindPrimal
	}
	for _, a := range compound {
		g.connections[a] = []Aspect{}
		if _, ok := g.kinds[a]; !ok {
			g.kinds[a] = KindCompound
		}
	}

	g.computeWeights()
	g.connect()

	g.nodes = slices.Sorted(maps.Keys(g.connections))
	return g
}

// connect adds an edge in both directions for every (key, component) pair.
func (g *Graph) connect() {
	for _, key := range slices.Sorted(maps.Keys(g.recipes)) {
		for _, component := range g.recipes[key] {
			g.connections[key] = append(g.connections[key], component)
			g.connections[component] = append(g.connections[component], key)
		}
	}
}

// IsValid reports whether a was declared as a primal or compound aspect.
// Aspects that only appear inside recipes are not valid search endpoints.
func (g *Graph) IsValid(a Aspect) bool {
	k, ok := g.kinds[a]
	return ok && k != KindImplicit
}

// Kind returns the classification of a. Unknown aspects and aspects that
// only appear inside recipes report [KindImplicit].
func (g *Graph) Kind(a Aspect) Kind { return g.kinds[a] }

// Weight returns the precomputed weight of a, ignoring any preferred set.
func (g *Graph) Weight(a Aspect) (float64, bool) {
	w, ok := g.weights[a]
	return w, ok
}

// EffectiveWeight returns the weight a contributes to a walk: 0 when a is
// preferred, otherwise its precomputed weight, or 0 if it has none.
func (g *Graph) EffectiveWeight(a Aspect, pref Preferred) float64 {
	if pref.Contains(a) {
		return 0
	}
	return g.weights[a]
}

// Neighbors returns the adjacency list of a in insertion order, including
// duplicates. The returned slice must not be modified.
func (g *Graph) Neighbors(a Aspect) []Aspect { return g.connections[a] }

// Recipe returns the components a is made from, or nil for primal aspects.
func (g *Graph) Recipe(a Aspect) []Aspect { return g.recipes[a] }

// Primal returns the declared primal aspects in declaration order.
func (g *Graph) Primal() []Aspect { return slices.Clone(g.primal) }

// Compound returns the declared compound aspects in declaration order.
func (g *Graph) Compound() []Aspect { return slices.Clone(g.compound) }

// Aspects returns the declared aspects, primal first, in declaration order.
func (g *Graph) Aspects() []Aspect {
	out := make([]Aspect, 0, len(g.primal)+len(g.compound))
	out = append(out, g.primal...)
	return append(out, g.compound...)
}

// Nodes returns every aspect with an adjacency list, implicit ones included,
// in sorted order.
func (g *Graph) Nodes() []Aspect { return slices.Clone(g.nodes) }

// NodeCount returns the number of aspects with an adjacency list.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// Edge is an undirected connection between two aspects.
type Edge struct {
	A, B Aspect
}

// Edges returns each distinct undirected connection once, with A <= B,
// sorted. Duplicate recipe edges collapse into one entry.
func (g *Graph) Edges() []Edge {
	seen := make(map[Edge]struct{})
	var edges []Edge
	for _, a := range g.nodes {
		for _, b := range g.connections[a] {
			e := Edge{A: a, B: b}
			if b < a {
				e = Edge{A: b, B: a}
			}
			if _, ok := seen[e]; ok {
				continue
			}
			seen[e] = struct{}{}
			edges = append(edges, e)
		}
	}
	slices.SortFunc(edges, func(x, y Edge) int {
		return cmp.Or(cmp.Compare(x.A, y.A), cmp.Compare(x.B, y.B))
	})
	return edges
}

// EdgeCount returns the number of distinct undirected connections.
func (g *Graph) EdgeCount() int { return len(g.Edges()) }

// Connected reports whether a and b share at least one edge.
func (g *Graph) Connected(a, b Aspect) bool {
	return slices.Contains(g.connections[a], b)
}
