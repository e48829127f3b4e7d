package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/aspectpath/pkg/render"
	"github.com/matzehuels/aspectpath/pkg/solver"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Highlight lists solution walks to emphasise.
	Highlight [][]solver.Aspect
	// Preferred aspects are filled green.
	Preferred solver.Preferred
	// Weights appends the aspect weight to each label.
	Weights bool
	// Title maps an aspect to a display name shown under its identifier.
	Title func(solver.Aspect) string
	// HighlightOnly drops every node and edge that is not on a walk.
	HighlightOnly bool
}

const (
	highlightColor = "darkorange"
	preferredColor = "palegreen"
)

// ToDOT converts the connection graph to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG], [RenderPDF], or [RenderPNG].
func ToDOT(g *solver.Graph, opts Options) string {
	onPath, pathEdges := highlights(opts.Highlight)

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  overlap=false;\n")
	buf.WriteString("  splines=true;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.15,0.05\"];\n")
	buf.WriteString("  edge [color=grey60];\n")
	buf.WriteString("\n")

	for _, a := range g.Nodes() {
		if opts.HighlightOnly && !onPath[a] {
			continue
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", a, strings.Join(nodeAttrs(g, a, opts, onPath[a]), ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		hot := pathEdges[e]
		if opts.HighlightOnly && !hot {
			continue
		}
		if hot {
			fmt.Fprintf(&buf, "  %q -- %q [color=%s, penwidth=3];\n", e.A, e.B, highlightColor)
		} else {
			fmt.Fprintf(&buf, "  %q -- %q;\n", e.A, e.B)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func highlights(walks [][]solver.Aspect) (map[solver.Aspect]bool, map[solver.Edge]bool) {
	nodes := make(map[solver.Aspect]bool)
	edges := make(map[solver.Edge]bool)
	for _, walk := range walks {
		for i, a := range walk {
			nodes[a] = true
			if i > 0 {
				edges[edgeOf(walk[i-1], a)] = true
			}
		}
	}
	return nodes, edges
}

func edgeOf(a, b solver.Aspect) solver.Edge {
	if b < a {
		a, b = b, a
	}
	return solver.Edge{A: a, B: b}
}

func nodeAttrs(g *solver.Graph, a solver.Aspect, opts Options, hot bool) []string {
	label := a
	if opts.Title != nil {
		if t := opts.Title(a); t != "" && t != a {
			label += "\n" + t
		}
	}
	if opts.Weights {
		if w, ok := g.Weight(a); ok {
			label += " (" + solver.FormatWeight(w) + ")"
		}
	}
	attrs := []string{fmt.Sprintf("label=%q", label)}

	switch g.Kind(a) {
	case solver.KindPrimal:
		attrs = append(attrs, "penwidth=2", "fontname=\"Helvetica-Bold\"")
	case solver.KindImplicit:
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fontcolor=grey40")
	}

	switch {
	case hot:
		attrs = append(attrs, "fillcolor=gold", "color="+highlightColor)
	case opts.Preferred.Contains(a):
		attrs = append(attrs, "fillcolor="+preferredColor)
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root tag so the SVG scales with its container.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}

// Render produces the requested format. DOT output is the source itself.
func Render(ctx context.Context, dot string, format render.Format) ([]byte, error) {
	switch format {
	case render.FormatDOT:
		return []byte(dot), nil
	case render.FormatPDF:
		return RenderPDF(ctx, dot)
	case render.FormatPNG:
		return RenderPNG(ctx, dot, 2.0)
	default:
		return RenderSVG(ctx, dot)
	}
}
