// Package cost scores how suitable a person is for a role.
//
// Scores are additive penalties: lower is preferred. Each factor in
// [Weights] contributes independently, so [Model.Explain] can report the
// breakdown that [Model.Score] sums.
package cost

import (
	"fmt"
	"maps"
	"slices"

	"github.com/matzehuels/dutyflow/pkg/roster"
)

// Factor is one contribution to a score.
type Factor struct {
	Name   string `json:"name" yaml:"name"`
	Detail string `json:"detail,omitempty" yaml:"detail,omitempty"`
	Points int    `json:"points" yaml:"points"`
}

// Model evaluates person and role pairings against a set of weights.
// A Model is immutable and safe for concurrent use.
type Model struct {
	w Weights
}

// NewModel validates w and returns a model using it.
func NewModel(w Weights) (*Model, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	w.Status = maps.Clone(w.Status)
	w.Rotation = slices.Clone(w.Rotation)
	w.Rates = slices.Clone(w.Rates)
	w.PriorityRoles = slices.Clone(w.PriorityRoles)
	return &Model{w: w}, nil
}

// Default returns a model with [DefaultWeights].
func Default() *Model {
	return &Model{w: DefaultWeights()}
}

// Weights returns the model's weights.
func (m *Model) Weights() Weights { return m.w }

// Score returns the cost of placing p in role as of at.
func (m *Model) Score(p roster.Person, role roster.RoleID, at roster.Date) int {
	total := m.status(p)
	total += m.rotation(p, at)
	for _, r := range m.w.Rates {
		if r.Matches(p.RateRank) {
			total += r.Penalty
		}
	}
	if m.priority(role) {
		total += m.w.PriorityBonus
	}
	return total
}

// Explain lists the non-zero factors that make up Score, in a stable order.
func (m *Model) Explain(p roster.Person, role roster.RoleID, at roster.Date) []Factor {
	var out []Factor
	if pts := m.status(p); pts != 0 {
		out = append(out, Factor{Name: "duty status", Detail: string(p.DutyStatus), Points: pts})
	}
	if pts := m.rotation(p, at); pts != 0 {
		days, _ := p.DaysToRotation(at)
		out = append(out, Factor{Name: "rotation", Detail: fmt.Sprintf("PRD %s, %d days", p.PRD, days), Points: pts})
	}
	for _, r := range m.w.Rates {
		if r.Matches(p.RateRank) && r.Penalty != 0 {
			out = append(out, Factor{Name: r.Name, Detail: p.RateRank, Points: r.Penalty})
		}
	}
	if m.priority(role) && m.w.PriorityBonus != 0 {
		out = append(out, Factor{Name: "priority role", Detail: role.Qualification, Points: m.w.PriorityBonus})
	}
	return out
}

func (m *Model) status(p roster.Person) int {
	return m.w.Status[string(p.DutyStatus)]
}

func (m *Model) rotation(p roster.Person, at roster.Date) int {
	days, ok := p.DaysToRotation(at)
	if !ok {
		return 0
	}
	for _, b := range m.w.Rotation {
		if days < b.Below {
			return b.Penalty
		}
	}
	return 0
}

func (m *Model) priority(role roster.RoleID) bool {
	return slices.Contains(m.w.PriorityRoles, role.Qualification)
}
