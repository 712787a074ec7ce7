package flow

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/matzehuels/dutyflow/pkg/flow/heap"
)

// ErrNegativeCycle is returned when a negative-cost cycle with spare capacity
// is reachable from the source. Minimum cost is unbounded in that case.
var ErrNegativeCycle = errors.New("flow: negative cycle reachable from source")

// Unreachable is the distance reported for nodes the search never reached.
const Unreachable = math.MaxInt

type queued struct {
	dist int
	node int
}

func queuedLess(a, b queued) bool {
	if a.dist != b.dist {
		return a.dist < b.dist
	}
	return a.node < b.node
}

// PathFinder finds minimum-cost source-to-sink paths in the residual graph.
//
// It keeps vertex potentials between searches, so a single PathFinder must
// be used for every search of one solve and the graph may only change through
// augmentations along paths it returned.
type PathFinder struct {
	g         *Graph
	source    int
	potential []int
	dist      []int
	parent    []int // edge index that last relaxed each node, -1 if none
	settled   []bool
	queue     *heap.MinHeap[queued]
}

// NewPathFinder prepares shortest-path searches from source. It runs
// Bellman-Ford over edges with positive residual capacity to seed the
// potentials, which makes negative edge costs safe for Dijkstra.
func NewPathFinder(g *Graph, source int) (*PathFinder, error) {
	g.checkNode(source)
	n := g.NodeCount()
	pf := &PathFinder{
		g:         g,
		source:    source,
		potential: make([]int, n),
		dist:      make([]int, n),
		parent:    make([]int, n),
		settled:   make([]bool, n),
		queue:     heap.New(queuedLess),
	}
	if err := pf.seedPotentials(); err != nil {
		return nil, err
	}
	return pf, nil
}

func (pf *PathFinder) seedPotentials() error {
	n := pf.g.NodeCount()
	dist := pf.dist
	for i := range dist {
		dist[i] = Unreachable
	}
	dist[pf.source] = 0

	relax := func() bool {
		changed := false
		for i := range pf.g.edges {
			e := &pf.g.edges[i]
			if e.Residual() <= 0 || dist[e.From] == Unreachable {
				continue
			}
			if d := dist[e.From] + e.Cost; d < dist[e.To] {
				dist[e.To] = d
				changed = true
			}
		}
		return changed
	}

	for range n - 1 {
		if !relax() {
			break
		}
	}
	if relax() {
		return ErrNegativeCycle
	}

	for v := range pf.potential {
		if dist[v] != Unreachable {
			pf.potential[v] = dist[v]
		}
	}
	return nil
}

// Find returns the edge indices of a minimum-cost path from the source to
// sink with positive residual capacity on every edge, ordered from source to
// sink. It reports false when the sink is unreachable.
//
// Among equally cheap candidates the first edge in adjacency order wins, and
// the returned edges are exactly the ones that relaxed each node, so callers
// may use them for the bottleneck, the cost and the augmentation alike.
func (pf *PathFinder) Find(sink int) ([]int, bool) {
	pf.g.checkNode(sink)
	if sink == pf.source {
		return nil, false
	}

	for i := range pf.dist {
		pf.dist[i] = Unreachable
		pf.parent[i] = -1
		pf.settled[i] = false
	}
	pf.dist[pf.source] = 0
	pf.queue.Reset()
	pf.push(queued{0, pf.source})

	for pf.queue.Len() > 0 {
		cur, err := pf.queue.ExtractMin()
		if err != nil {
			panic(fmt.Sprintf("flow: priority queue underflow with %d items: %v", pf.queue.Len(), err))
		}
		u := cur.node
		if pf.settled[u] || cur.dist > pf.dist[u] {
			continue
		}
		pf.settled[u] = true
		if u == sink {
			break
		}

		for _, i := range pf.g.adj[u] {
			e := &pf.g.edges[i]
			if e.Residual() <= 0 {
				continue
			}
			d := pf.dist[u] + e.Cost + pf.potential[u] - pf.potential[e.To]
			if d < pf.dist[e.To] {
				pf.dist[e.To] = d
				pf.parent[e.To] = i
				pf.push(queued{d, e.To})
			}
		}
	}

	if pf.dist[sink] == Unreachable {
		return nil, false
	}

	// Nodes settled before the sink move by their own distance, all others by
	// the sink's. Both keep every reduced cost non-negative.
	limit := pf.dist[sink]
	for v := range pf.potential {
		pf.potential[v] += min(pf.dist[v], limit)
	}

	var path []int
	for v := sink; v != pf.source; {
		i := pf.parent[v]
		path = append(path, i)
		v = pf.g.edges[i].From
	}
	slices.Reverse(path)
	return path, true
}

func (pf *PathFinder) push(q queued) {
	if err := pf.queue.Insert(q); err != nil {
		panic(fmt.Sprintf("flow: priority queue insert: %v", err))
	}
}
