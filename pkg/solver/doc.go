// Package solver finds minimum-weight research paths through the aspect
// combination graph.
//
// # Overview
//
// Aspects are the nodes of a small, fixed graph. Primal aspects are the base
// elements; compound aspects are produced from a recipe listing two or more
// component aspects. Two aspects are connected when one is a direct component
// of the other's recipe. Research asks for a walk of an exact number of edges
// between two aspects, and the solver returns the walk whose visited aspects
// have the lowest total weight.
//
// # Building the Graph
//
// [Build] derives the adjacency lists and the per-aspect weights from a
// recipe table:
//
//	g := solver.Build(solver.Recipes{
//	    "energy": {"fire", "air"},
//	}, []solver.Aspect{"fire", "air"}, []solver.Aspect{"energy"})
//
// Primal aspects weigh 1. A compound aspect weighs the sum of its components,
// evaluated transitively and memoized. A recipe chain that leads back to an
// aspect still being evaluated contributes 0 for that leg, so malformed cyclic
// data never recurses forever. The graph is immutable after Build returns and
// may be searched from many goroutines at once.
//
// # Searching
//
// [Graph.FindSolution] runs a depth-first branch-and-bound search for the
// walk of exactly [Problem.Distance] edges from [Problem.Start] to
// [Problem.End]. Vertices may be revisited. The weight of a walk is the sum of
// the effective weights of all visited vertices, endpoints included. A branch
// is abandoned as soon as its partial weight can no longer beat the best walk
// found so far; ties keep the walk found first.
//
// When no walk of the requested length exists, the returned [Solution] has a
// nil Path and an infinite Weight. This is a normal result, not an error.
// Unknown endpoints are a caller error reported with the INVALID_ASPECT code.
//
// # Preferred Aspects
//
// A [Preferred] set zeroes the weight of its members for one search. The set
// is an explicit argument rather than solver state; [Preferences] is the
// mutable, goroutine-safe set a UI toggles, and [Preferences.Snapshot] hands
// an immutable copy to each search.
//
// # Strategies
//
// [StrategyDFS] is the exhaustive pruned search described above.
// [StrategyLayered] computes the same minimum by dynamic programming over
// (vertex, edges used) layers, which scales to longer distances. Both return
// the same weight; on ties they may return different walks.
//
// # Problem Decomposition
//
// [Decompose] turns a user's research line, where a spacer token marks an
// empty slot, into one [Problem] per consecutive pair of real aspects.
package solver
