// Package nodelink renders the aspect connection graph as a node-link diagram.
//
// # Overview
//
// Every aspect becomes a node and every recipe relation an undirected edge.
// Primal aspects are drawn bold, preferred aspects green, and aspects that
// are only referenced by recipes (never declared) dashed. Solution walks
// passed in [Options.Highlight] are drawn on top in orange.
//
// # Usage
//
//	dot := nodelink.ToDOT(g, nodelink.Options{
//	    Highlight: [][]solver.Aspect{sol.Path},
//	    Weights:   true,
//	})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # DOT Format
//
// [ToDOT] produces plain Graphviz DOT source, so the output can also be
// saved and processed with external Graphviz tools.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion goes through [render.ToPDF] and
// [render.ToPNG], which require librsvg.
package nodelink
