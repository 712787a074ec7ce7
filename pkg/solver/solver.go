package solver

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/dutyflow/pkg/cost"
	"github.com/matzehuels/dutyflow/pkg/errors"
	"github.com/matzehuels/dutyflow/pkg/flow"
	"github.com/matzehuels/dutyflow/pkg/roster"
)

// NodeKind is the layer a network node belongs to.
type NodeKind int

// Node kinds in layer order.
const (
	KindSource NodeKind = iota
	KindPerson
	KindRole
	KindTeam
	KindSink
)

func (k NodeKind) String() string {
	switch k {
	case KindSource:
		return "source"
	case KindPerson:
		return "person"
	case KindRole:
		return "role"
	case KindTeam:
		return "team"
	case KindSink:
		return "sink"
	}
	return fmt.Sprintf("NodeKind(%d)", int(k))
}

// FlowAssignment is a person to role pairing read off the solved network.
type FlowAssignment struct {
	PersonName string
	Team       string
	Position   roster.Position
	Cost       int
}

// Role returns the role the pairing fills.
func (a FlowAssignment) Role() roster.RoleID { return roster.NewRoleID(a.Team, a.Position) }

type options struct {
	model         *cost.Model
	logger        *log.Logger
	maxIterations int
	observer      flow.Observer
}

// Option configures a Solver.
type Option func(*options)

// WithModel sets the cost model. The default is [cost.Default].
func WithModel(m *cost.Model) Option {
	return func(o *options) { o.model = m }
}

// WithLogger sets the logger for build and solve diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithMaxIterations caps the number of augmenting paths. Zero keeps the
// default of one more than the number of people.
func WithMaxIterations(n int) Option {
	return func(o *options) { o.maxIterations = n }
}

// WithObserver receives every step of the flow solve.
func WithObserver(fn flow.Observer) Option {
	return func(o *options) { o.observer = fn }
}

func buildOptions(opts []Option) options {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.model == nil {
		o.model = cost.Default()
	}
	if o.logger == nil {
		o.logger = log.New(io.Discard)
	}
	return o
}

// Solver owns the flow network for one set of unlocked people and roles.
// A Solver is not safe for concurrent use.
type Solver struct {
	opts   options
	at     roster.Date
	people []roster.Person
	roles  []roster.RoleID
	teams  []roster.Team
	graph  *flow.Graph
	sink   int
}

// source is always node zero.
const source = 0

// New builds the network for people and the positions of teams.
// Locks must already be applied; see [Prefilter].
func New(people []roster.Person, teams []roster.Team, at roster.Date, opts ...Option) *Solver {
	return newSolver(people, teams, at, buildOptions(opts))
}

func newSolver(people []roster.Person, teams []roster.Team, at roster.Date, o options) *Solver {
	s := &Solver{
		opts:   o,
		at:     at,
		people: people,
		roles:  roster.Roles(teams),
		teams:  teams,
	}
	s.build()
	return s
}

func (s *Solver) build() {
	nP, nR, nT := len(s.people), len(s.roles), len(s.teams)
	s.sink = 1 + nP + nR + nT
	g := flow.New(s.sink + 1)

	for i := range s.people {
		g.AddEdge(source, s.personNode(i), 1, 0)
	}
	for i, p := range s.people {
		for j, r := range s.roles {
			if p.HasQualification(r.Qualification) {
				g.AddEdge(s.personNode(i), s.roleNode(j), 1, s.opts.model.Score(p, r, s.at))
			}
		}
	}

	teamIdx := make(map[string]int, nT)
	for k, t := range s.teams {
		teamIdx[t.Name] = k
	}
	for j, r := range s.roles {
		g.AddEdge(s.roleNode(j), s.teamNode(teamIdx[r.Team]), 1, 0)
	}
	for k, t := range s.teams {
		g.AddEdge(s.teamNode(k), s.sink, len(t.Positions), 0)
	}

	s.graph = g
	s.opts.logger.Debug("network built",
		"people", nP, "roles", nR, "teams", nT,
		"nodes", g.NodeCount(), "edges", g.EdgeCount())
}

func (s *Solver) personNode(i int) int { return 1 + i }
func (s *Solver) roleNode(j int) int   { return 1 + len(s.people) + j }
func (s *Solver) teamNode(k int) int   { return 1 + len(s.people) + len(s.roles) + k }

// Graph returns the underlying network.
func (s *Solver) Graph() *flow.Graph { return s.graph }

// Source returns the source node.
func (s *Solver) Source() int { return source }

// Sink returns the sink node.
func (s *Solver) Sink() int { return s.sink }

// Describe returns the layer and label of node.
func (s *Solver) Describe(node int) (NodeKind, string) {
	nP, nR := len(s.people), len(s.roles)
	switch {
	case node == source:
		return KindSource, "source"
	case node == s.sink:
		return KindSink, "sink"
	case node <= nP:
		return KindPerson, s.people[node-1].DisplayName()
	case node <= nP+nR:
		return KindRole, s.roles[node-1-nP].String()
	default:
		return KindTeam, s.teams[node-1-nP-nR].Name
	}
}

// Solve runs min-cost max-flow on the network. Solving again recomputes
// from zero flow and returns the same result.
func (s *Solver) Solve() (flow.Result, error) {
	var fopts []flow.Option
	if s.opts.maxIterations > 0 {
		fopts = append(fopts, flow.WithMaxIterations(s.opts.maxIterations))
	}
	if s.opts.observer != nil {
		fopts = append(fopts, flow.WithObserver(s.opts.observer))
	}

	start := time.Now()
	res, err := s.graph.MinCostMaxFlow(source, s.sink, fopts...)
	if err != nil {
		return res, errors.Wrap(errors.ErrCodeInternal, err, "solve assignment network")
	}
	s.opts.logger.Debug("network solved",
		"flow", res.Flow, "cost", res.Cost,
		"iterations", res.Iterations, "duration", time.Since(start))
	return res, nil
}

// Extract reads the pairings off a solved network, in person order.
func (s *Solver) Extract() []FlowAssignment {
	var out []FlowAssignment
	for i, p := range s.people {
		for _, ei := range s.graph.Edges(s.personNode(i)) {
			e := s.graph.Edge(ei)
			if !e.Forward || e.Flow != 1 {
				continue
			}
			kind, _ := s.Describe(e.To)
			if kind != KindRole {
				continue
			}
			r := s.roles[e.To-1-len(s.people)]
			out = append(out, FlowAssignment{
				PersonName: p.Name,
				Team:       r.Team,
				Position:   r.Position(),
				Cost:       e.Cost,
			})
		}
	}
	return out
}
