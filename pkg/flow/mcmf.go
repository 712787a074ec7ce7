package flow

import (
	"errors"
	"fmt"
	"math"
)

// ErrIterationLimit is returned when the solver performs more augmentations
// than its limit allows. With the default limit this signals a broken
// invariant, since every augmentation moves at least one unit of flow.
var ErrIterationLimit = errors.New("flow: augmentation limit exceeded")

// Phase identifies a step of the solve loop reported to an [Observer].
type Phase int

const (
	// PhaseSearching is reported before each shortest-path search.
	PhaseSearching Phase = iota
	// PhaseAugmenting is reported after a path was found, before flow is pushed.
	PhaseAugmenting
	// PhaseDone is reported once no augmenting path remains.
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhaseSearching:
		return "searching"
	case PhaseAugmenting:
		return "augmenting"
	case PhaseDone:
		return "done"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// Step describes the solver state at a phase transition.
type Step struct {
	Phase      Phase
	Iteration  int // augmentations completed so far
	Flow       int
	Cost       int
	PathLength int // number of edges on the path, PhaseAugmenting only
	Bottleneck int // units about to be pushed, PhaseAugmenting only
}

// Observer receives solver phase transitions.
type Observer func(Step)

// Result summarizes a completed solve.
type Result struct {
	Flow       int // total units sent from source to sink
	Cost       int // sum of cost times flow over forward edges
	Iterations int // number of augmenting paths used
}

type solveConfig struct {
	maxIterations int
	observer      Observer
}

// Option configures [Graph.MinCostMaxFlow].
type Option func(*solveConfig)

// WithMaxIterations overrides the augmentation limit. Values of zero or less
// restore the default of total source capacity plus one.
func WithMaxIterations(n int) Option {
	return func(c *solveConfig) { c.maxIterations = n }
}

// WithObserver registers fn to receive phase transitions.
func WithObserver(fn Observer) Option {
	return func(c *solveConfig) { c.observer = fn }
}

// MinCostMaxFlow sends as much flow as possible from source to sink and,
// among all maximum flows, returns one of minimum total cost.
//
// Existing flow is discarded first, so repeated calls give identical results.
// An unreachable sink is not an error: the result simply carries zero flow.
func (g *Graph) MinCostMaxFlow(source, sink int, opts ...Option) (Result, error) {
	g.checkNode(source)
	g.checkNode(sink)
	if source == sink {
		panic(fmt.Sprintf("flow: source and sink must differ (both %d)", source))
	}

	var cfg solveConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	limit := cfg.maxIterations
	if limit <= 0 {
		limit = g.sourceCapacity(source)
		if limit < math.MaxInt {
			limit++
		}
	}
	notify := func(s Step) {
		if cfg.observer != nil {
			cfg.observer(s)
		}
	}

	g.Reset()
	finder, err := NewPathFinder(g, source)
	if err != nil {
		return Result{}, err
	}

	var res Result
	for {
		notify(Step{Phase: PhaseSearching, Iteration: res.Iterations, Flow: res.Flow, Cost: res.Cost})
		path, ok := finder.Find(sink)
		if !ok {
			break
		}
		if res.Iterations >= limit {
			return res, fmt.Errorf("%w: %d augmentations", ErrIterationLimit, res.Iterations)
		}

		bottleneck := math.MaxInt
		pathCost := 0
		for _, i := range path {
			e := &g.edges[i]
			bottleneck = min(bottleneck, e.Residual())
			pathCost += e.Cost
		}
		notify(Step{
			Phase:      PhaseAugmenting,
			Iteration:  res.Iterations,
			Flow:       res.Flow,
			Cost:       res.Cost,
			PathLength: len(path),
			Bottleneck: bottleneck,
		})

		for _, i := range path {
			g.augment(i, bottleneck)
		}
		res.Flow += bottleneck
		res.Cost += bottleneck * pathCost
		res.Iterations++
	}

	notify(Step{Phase: PhaseDone, Iteration: res.Iterations, Flow: res.Flow, Cost: res.Cost})
	return res, nil
}

// TotalCost recomputes the cost of the current flow from the forward edges.
func (g *Graph) TotalCost() int {
	total := 0
	for i := range g.edges {
		if e := &g.edges[i]; e.Forward {
			total += e.Flow * e.Cost
		}
	}
	return total
}

func (g *Graph) sourceCapacity(source int) int {
	total := 0
	for _, i := range g.adj[source] {
		if e := &g.edges[i]; e.Forward {
			total += e.Capacity
		}
	}
	return total
}
