package solver

import (
	"github.com/matzehuels/dutyflow/pkg/errors"
	"github.com/matzehuels/dutyflow/pkg/flow"
	"github.com/matzehuels/dutyflow/pkg/roster"
)

// BuildPlan combines pinned and solved assignments into a plan over the
// full input.
//
// Assignments are ordered by team and then position. Unfilled positions
// are reported once per missing instance, grouped by team and then by
// qualification in first-appearance order. A flow assignment that names a
// person or role outside eff is a consistency error and no plan is returned.
func BuildPlan(in Input, eff *Effective, flows []FlowAssignment, res flow.Result) (*roster.Plan, error) {
	open := make(map[string]roster.Person, len(eff.People))
	for _, p := range eff.People {
		open[p.Name] = p
	}
	openRoles := make(map[roster.RoleID]bool)
	for _, r := range roster.Roles(eff.Teams) {
		openRoles[r] = true
	}

	byRole := make(map[roster.RoleID]roster.Assignment, len(eff.Pinned)+len(flows))
	for _, a := range eff.Pinned {
		byRole[a.Role()] = a
	}

	placed := make(map[string]bool, len(flows))
	for _, f := range flows {
		p, ok := open[f.PersonName]
		if !ok || placed[f.PersonName] {
			return nil, errors.New(errors.ErrCodeDataConsistency,
				"failed to generate assignments: flow names unknown or repeated person %q", f.PersonName)
		}
		role := f.Role()
		if _, taken := byRole[role]; taken || !openRoles[role] {
			return nil, errors.New(errors.ErrCodeDataConsistency,
				"failed to generate assignments: flow names unavailable role %s", role)
		}
		placed[f.PersonName] = true
		byRole[role] = roster.Assignment{
			Person:   p,
			Team:     f.Team,
			Position: f.Position,
			Score:    f.Cost,
		}
	}

	plan := &roster.Plan{
		AnalysisDate: in.AnalysisDate,
		Flow:         res.Flow,
		Excluded:     eff.Excluded,
	}
	for _, t := range in.Teams {
		filled := make(map[string]int)
		for _, pos := range t.Positions {
			a, ok := byRole[roster.NewRoleID(t.Name, pos)]
			if !ok {
				continue
			}
			plan.Assignments = append(plan.Assignments, a)
			plan.TotalCost += a.Score
			filled[pos.Qualification]++
		}
		for _, q := range t.Qualifications() {
			for range t.Required(q) - filled[q] {
				plan.Unfilled = append(plan.Unfilled, roster.UnfilledPosition{Team: t.Name, Qualification: q})
			}
		}
	}
	for _, p := range eff.People {
		if !placed[p.Name] {
			plan.Unassigned = append(plan.Unassigned, p)
		}
	}
	plan.Stats = roster.ComputeStats(plan)
	return plan, nil
}

// Run applies locks, solves the remaining network and builds the plan.
func Run(in Input, opts ...Option) (*roster.Plan, error) {
	o := buildOptions(opts)
	eff, err := Prefilter(in, o.model)
	if err != nil {
		return nil, err
	}
	o.logger.Debug("locks applied",
		"pinned", len(eff.Pinned), "excluded", len(eff.Excluded), "open_people", len(eff.People))

	s := newSolver(eff.People, eff.Teams, in.AnalysisDate, o)
	res, err := s.Solve()
	if err != nil {
		return nil, err
	}
	return BuildPlan(in, eff, s.Extract(), res)
}
