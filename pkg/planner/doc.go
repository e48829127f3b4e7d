// Package planner solves a whole research line.
//
// A research line is a sequence of aspects and spacers, for example
//
//	ignis hex hex aer hex aqua
//
// [Runner.Plan] validates the line, splits it into problems with
// [solver.Decompose], serves what it can from the cache and solves the rest
// concurrently with [solver.Graph.SolveAll]. Solutions are cached here, never
// by the solver, under keys that include the dataset hash and the preferred
// set, so a change to either produces fresh results.
//
// A Runner is immutable once built and may be shared between goroutines,
// which is how the HTTP server uses it.
package planner
