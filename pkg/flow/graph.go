package flow

import "fmt"

// Edge is a directed arc of the flow network.
//
// Forward edges are created by [Graph.AddEdge]; each has a residual partner
// at index Reverse whose capacity is zero and whose cost is negated. Flow on a
// residual partner is always the negation of flow on its forward edge.
type Edge struct {
	From     int
	To       int
	Capacity int
	Flow     int
	Cost     int
	Reverse  int  // index of the partner edge
	Forward  bool // false for residual partners
}

// Residual returns the capacity left on the edge.
func (e *Edge) Residual() int { return e.Capacity - e.Flow }

// Graph is a flow network over nodes 0..NodeCount()-1.
//
// The zero value is not usable; create graphs with [New].
type Graph struct {
	adj   [][]int
	edges []Edge
}

// New returns a graph with n nodes and no edges.
func New(n int) *Graph {
	if n < 0 {
		panic(fmt.Sprintf("flow: negative node count %d", n))
	}
	return &Graph{adj: make([][]int, n)}
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.adj) }

// EdgeCount returns the number of forward edges. Residual partners are not counted.
func (g *Graph) EdgeCount() int { return len(g.edges) / 2 }

// AddEdge adds a forward edge from -> to with the given capacity and cost,
// together with its residual partner, and returns the forward edge index.
//
// AddEdge panics if either endpoint is out of range or capacity is negative.
func (g *Graph) AddEdge(from, to, capacity, cost int) int {
	g.checkNode(from)
	g.checkNode(to)
	if capacity < 0 {
		panic(fmt.Sprintf("flow: negative capacity %d on edge %d->%d", capacity, from, to))
	}

	fwd := len(g.edges)
	rev := fwd + 1
	g.edges = append(g.edges,
		Edge{From: from, To: to, Capacity: capacity, Cost: cost, Reverse: rev, Forward: true},
		Edge{From: to, To: from, Capacity: 0, Cost: -cost, Reverse: fwd},
	)
	g.adj[from] = append(g.adj[from], fwd)
	g.adj[to] = append(g.adj[to], rev)
	return fwd
}

// Edge returns the edge at index i. The pointer stays valid until the next AddEdge.
func (g *Graph) Edge(i int) *Edge { return &g.edges[i] }

// Edges returns the indices of edges leaving node, forward and residual, in
// insertion order. The slice must not be modified.
func (g *Graph) Edges(node int) []int {
	g.checkNode(node)
	return g.adj[node]
}

// ResidualCapacity returns capacity minus flow for edge i.
func (g *Graph) ResidualCapacity(i int) int { return g.edges[i].Residual() }

// Outflow returns the total flow on forward edges leaving node.
func (g *Graph) Outflow(node int) int {
	total := 0
	for _, i := range g.Edges(node) {
		if e := &g.edges[i]; e.Forward {
			total += e.Flow
		}
	}
	return total
}

// Inflow returns the total flow on forward edges entering node.
func (g *Graph) Inflow(node int) int {
	total := 0
	for _, i := range g.Edges(node) {
		// Residual partners stored at node point back along forward edges into it.
		if e := &g.edges[i]; !e.Forward {
			total += g.edges[e.Reverse].Flow
		}
	}
	return total
}

// Reset clears the flow on every edge.
func (g *Graph) Reset() {
	for i := range g.edges {
		g.edges[i].Flow = 0
	}
}

// augment pushes amount units along edge i and pulls them back on its partner.
func (g *Graph) augment(i, amount int) {
	e := &g.edges[i]
	e.Flow += amount
	g.edges[e.Reverse].Flow -= amount
}

func (g *Graph) checkNode(n int) {
	if n < 0 || n >= len(g.adj) {
		panic(fmt.Sprintf("flow: node %d out of range [0,%d)", n, len(g.adj)))
	}
}
