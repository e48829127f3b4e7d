// Package render converts rendered SVG graphs to other formats.
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg):
//
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// # Node-Link Diagrams
//
// The [nodelink] subpackage renders the aspect connection graph with
// Graphviz, optionally highlighting solution walks.
//
// [nodelink]: github.com/matzehuels/aspectpath/pkg/render/nodelink
package render
