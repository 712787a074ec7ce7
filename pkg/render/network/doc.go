// Package network renders the assignment flow network as a Graphviz diagram.
//
// # Overview
//
// The diagram shows the layered network the solver builds: the source on
// the left, then people, roles and teams, then the sink. Each layer is one
// Graphviz rank. After a solve, edges that carry flow are drawn bold so the
// chosen pairings stand out.
//
// # Usage
//
// Convert a solver to DOT format, then render to SVG:
//
//	s := solver.New(people, teams, at)
//	s.Solve()
//	dot := network.ToDOT(s, network.Options{Costs: true})
//	svg, err := network.RenderSVG(dot)
//
// # Options
//
// The [Options] struct controls diagram generation:
//
//   - Costs: label person-to-role edges with their cost
//   - FlowOnly: draw only edges that carry flow
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
package network
