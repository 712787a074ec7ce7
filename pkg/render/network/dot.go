package network

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/dutyflow/pkg/flow"
	"github.com/matzehuels/dutyflow/pkg/solver"
)

// Options configures network diagram rendering.
type Options struct {
	// Costs labels person-to-role edges with their cost.
	Costs bool

	// FlowOnly omits edges without flow. Nodes are always drawn.
	FlowOnly bool
}

// Network is the view of a built solver that ToDOT needs.
type Network interface {
	Graph() *flow.Graph
	Describe(node int) (solver.NodeKind, string)
}

var (
	_ Network = (*solver.Solver)(nil)

	layers = []solver.NodeKind{
		solver.KindSource, solver.KindPerson, solver.KindRole, solver.KindTeam, solver.KindSink,
	}
	fills = map[solver.NodeKind]string{
		solver.KindSource: "lightgrey",
		solver.KindPerson: "lightblue",
		solver.KindRole:   "lightyellow",
		solver.KindTeam:   "palegreen",
		solver.KindSink:   "lightgrey",
	}
)

// ToDOT converts the network to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG].
func ToDOT(n Network, opts Options) string {
	g := n.Graph()

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fontsize=12, margin=\"0.15,0.05\"];\n")
	buf.WriteString("  edge [color=grey60, arrowsize=0.6];\n")
	buf.WriteString("  ranksep=1.2;\n")
	buf.WriteString("  nodesep=0.15;\n")

	byKind := make(map[solver.NodeKind][]int)
	for v := range g.NodeCount() {
		kind, _ := n.Describe(v)
		byKind[kind] = append(byKind[kind], v)
	}
	for _, kind := range layers {
		nodes := byKind[kind]
		if len(nodes) == 0 {
			continue
		}
		fmt.Fprintf(&buf, "\n  subgraph %s_layer {\n    rank=same;\n", kind)
		for _, v := range nodes {
			_, label := n.Describe(v)
			fmt.Fprintf(&buf, "    n%d [label=%q, fillcolor=%s];\n", v, label, fills[kind])
		}
		buf.WriteString("  }\n")
	}

	buf.WriteString("\n")
	for v := range g.NodeCount() {
		for _, i := range g.Edges(v) {
			e := g.Edge(i)
			if !e.Forward {
				continue
			}
			if opts.FlowOnly && e.Flow == 0 {
				continue
			}
			attrs := edgeAttrs(n, e, opts)
			if len(attrs) == 0 {
				fmt.Fprintf(&buf, "  n%d -> n%d;\n", e.From, e.To)
			} else {
				fmt.Fprintf(&buf, "  n%d -> n%d [%s];\n", e.From, e.To, strings.Join(attrs, ", "))
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func edgeAttrs(n Network, e *flow.Edge, opts Options) []string {
	var attrs []string
	if kind, _ := n.Describe(e.From); opts.Costs && kind == solver.KindPerson {
		attrs = append(attrs, fmt.Sprintf("label=%q", strconv.Itoa(e.Cost)))
	}
	if kind, _ := n.Describe(e.To); kind == solver.KindSink && e.Capacity > 1 {
		attrs = append(attrs, fmt.Sprintf("taillabel=%q", fmt.Sprintf("%d/%d", e.Flow, e.Capacity)))
	}
	if e.Flow > 0 {
		attrs = append(attrs, "color=black", "penwidth=2.5")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
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

// normalizeViewBox replaces Graphviz's point-unit root element with a
// pixel-sized one whose viewBox starts at the origin.
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

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
