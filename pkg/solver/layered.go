package solver

import (
	"context"
	"math"
	"slices"
)

// searchLayered computes best[k][v], the lowest weight of a k-edge walk
// from the start to v, one layer at a time. Each layer relaxes vertices in
// sorted order and neighbors in adjacency order, keeping the first
// predecessor on ties.
func (g *Graph) searchLayered(ctx context.Context, p Problem, pref Preferred) (Solution, error) {
	n := len(g.nodes)
	index := make(map[Aspect]int, n)
	for i, a := range g.nodes {
		index[a] = i
	}

	inf := math.Inf(1)
	layer := make([]float64, n)
	for i := range layer {
		layer[i] = inf
	}
	layer[index[p.Start]] = g.EffectiveWeight(p.Start, pref)

	// pred[k][v] is the vertex preceding v at step k+1 of the best walk.
	// It grows by one layer per step.
	pred := make([][]int, 0, min(p.Distance, n))

	for k := 0; k < p.Distance; k++ {
		if err := ctx.Err(); err != nil {
			return NoSolution(), err
		}
		next := make([]float64, n)
		for i := range next {
			next[i] = inf
		}
		from := make([]int, n)
		for u, wu := range layer {
			if math.IsInf(wu, 1) {
				continue
			}
			for _, v := range g.connections[g.nodes[u]] {
				vi := index[v]
				if w := wu + g.EffectiveWeight(v, pref); w < next[vi] {
					next[vi] = w
					from[vi] = u
				}
			}
		}
		pred = append(pred, from)
		layer = next
	}

	end := index[p.End]
	if math.IsInf(layer[end], 1) {
		return NoSolution(), nil
	}

	path := make([]Aspect, len(pred)+1)
	v := end
	for k := len(pred); k > 0; k-- {
		path[k] = g.nodes[v]
		v = pred[k-1][v]
	}
	path[0] = g.nodes[v]
	return Solution{Path: slices.Clip(path), Weight: layer[end]}, nil
}
