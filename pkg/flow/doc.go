// Package flow provides a capacitated, cost-weighted flow network and a
// successive-shortest-path solver for minimum-cost maximum flow.
//
// # Overview
//
// A [Graph] holds integer-indexed nodes and a flat slice of edges. Every call
// to [Graph.AddEdge] appends two edges: the forward edge with the requested
// capacity and cost, and a residual partner with zero capacity and negated
// cost. Each edge stores the index of its partner in [Edge.Reverse], so
// pushing flow along one edge always updates the other.
//
//	g := flow.New(4)
//	g.AddEdge(0, 1, 1, 0)
//	g.AddEdge(1, 2, 1, 5)
//	g.AddEdge(2, 3, 1, 0)
//	res, err := g.MinCostMaxFlow(0, 3)
//
// # Algorithm
//
// [Graph.MinCostMaxFlow] repeatedly asks a [PathFinder] for the cheapest
// source-to-sink path with spare residual capacity, pushes the bottleneck
// amount along it, and stops when the sink is no longer reachable. The
// resulting flow is maximum, and among maximum flows it has minimum cost.
//
// # Negative Costs
//
// Edges may carry negative costs. The path finder seeds vertex potentials
// with one Bellman-Ford pass from the source and then runs Dijkstra on
// reduced costs c(u,v) + h(u) - h(v), which stay non-negative across
// augmentations. A negative cycle reachable from the source makes the
// problem unbounded and is reported as [ErrNegativeCycle].
//
// # Determinism
//
// Adjacency lists keep insertion order, relaxation uses strict less-than, and
// the priority queue breaks distance ties by node index. Identical graphs
// therefore always yield identical flows.
//
// # Concurrency
//
// A Graph is not safe for concurrent use. Solving mutates edge flows, so
// concurrent solves need separate graphs.
package flow
