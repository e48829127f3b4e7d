// Package pkg provides the libraries behind aspectpath, a research path
// planner for aspect combination graphs.
//
// # Overview
//
// Every compound aspect is made from two components. Linking an aspect to
// its components yields an undirected connection graph; a research line asks
// for a walk of an exact number of steps between two aspects, and aspectpath
// finds the walk with the lowest total weight. The pkg directory is
// organized into these areas:
//
//  1. [solver] - Graph builder, weights and exact-length search
//  2. [aspects] - Recipe datasets (embedded default, JSON, TOML, HTTP)
//  3. [planner] - Research lines: decomposition, caching, batch solving
//  4. [cache], [session] - Persistence (file, Redis, MongoDB)
//  5. [server], [render] - HTTP API and Graphviz rendering
//
// # Architecture
//
// The typical data flow:
//
//	Recipe table (JSON/TOML)
//	         ↓
//	    [aspects] package (load + validate)
//	         ↓
//	    [solver] package (connections + weights)
//	         ↓
//	    [planner] package (line → problems → cached solutions)
//	         ↓
//	    CLI / TUI / HTTP / SVG output
//
// # Quick Start
//
//	import (
//	    "context"
//	    "github.com/matzehuels/aspectpath/pkg/aspects"
//	    "github.com/matzehuels/aspectpath/pkg/solver"
//	)
//
//	g := aspects.Default().Graph()
//	sol, _ := g.FindSolution(solver.Problem{Start: "ignis", End: "aer", Distance: 2}, solver.Preferred{})
//	fmt.Println(sol) // ignis → lux → aer (4)
//
// # Main Packages
//
// [solver] - Builds the connection graph from a recipe table, computes
// aspect weights (primal 1, compound the sum of its components) and finds
// the cheapest walk of exactly N edges with a depth-first search or a
// layered dynamic program. Preferred aspects weigh nothing.
//
// [aspects] - The recipe dataset: primal and compound lists, combinations
// and display names. Loads the embedded default, local JSON or TOML files
// and remote URLs.
//
// [planner] - Splits a research line such as "ignis hex hex aer" into
// problems, serves repeats from a cache and solves the rest concurrently.
//
// [cache] - Solution cache backends (file, Redis, null) and key builders.
//
// [session] - Persisted research lines and preferred sets with memory,
// file, Redis and MongoDB stores.
//
// [server] - chi-based JSON API for solving, planning, sessions and graphs.
//
// [render/nodelink] - Graphviz rendering of the connection graph with
// highlighted solutions. [render] converts SVG to PDF and PNG.
//
// [httputil] - HTTP client with retry for remote datasets.
//
// [errors] - Coded errors shared by every layer, with HTTP status mapping.
//
// [observability] - Hooks for plan, cache and HTTP events.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/solver/...             # Specific package
//	go test -run Example                 # Examples only
//	go test -tags integration ./pkg/...  # Include Redis and MongoDB tests
//
// [solver]: https://pkg.go.dev/github.com/matzehuels/aspectpath/pkg/solver
// [aspects]: https://pkg.go.dev/github.com/matzehuels/aspectpath/pkg/aspects
// [planner]: https://pkg.go.dev/github.com/matzehuels/aspectpath/pkg/planner
// [cache]: https://pkg.go.dev/github.com/matzehuels/aspectpath/pkg/cache
// [session]: https://pkg.go.dev/github.com/matzehuels/aspectpath/pkg/session
// [server]: https://pkg.go.dev/github.com/matzehuels/aspectpath/pkg/server
// [render]: https://pkg.go.dev/github.com/matzehuels/aspectpath/pkg/render
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/aspectpath/pkg/render/nodelink
// [httputil]: https://pkg.go.dev/github.com/matzehuels/aspectpath/pkg/httputil
// [errors]: https://pkg.go.dev/github.com/matzehuels/aspectpath/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/aspectpath/pkg/observability
package pkg
