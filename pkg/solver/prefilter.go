package solver

import (
	"github.com/matzehuels/dutyflow/pkg/cost"
	"github.com/matzehuels/dutyflow/pkg/errors"
	"github.com/matzehuels/dutyflow/pkg/roster"
)

// Input is everything a solve depends on.
type Input struct {
	People       []roster.Person         `json:"people"`
	Teams        []roster.Team           `json:"teams"`
	Locks        []roster.AssignmentLock `json:"locks,omitempty"`
	AnalysisDate roster.Date             `json:"analysis_date"`
}

// Effective is the part of an Input left for the network once locks apply.
type Effective struct {
	// People are the unlocked people, in input order.
	People []roster.Person
	// Teams hold only their unlocked positions, in input order.
	Teams []roster.Team
	// Pinned are the locked assignments, in lock order.
	Pinned []roster.Assignment
	// Excluded are the people held out of the solve, in lock order.
	Excluded []roster.Person
}

// Prefilter validates in and separates its locks from the solvable remainder.
// Pinned assignments are scored with model.
func Prefilter(in Input, model *cost.Model) (*Effective, error) {
	people, err := indexPeople(in.People)
	if err != nil {
		return nil, err
	}
	teams, err := indexTeams(in.Teams)
	if err != nil {
		return nil, err
	}

	lockedPeople := make(map[string]bool, len(in.Locks))
	lockedRoles := make(map[roster.RoleID]bool, len(in.Locks))
	eff := &Effective{}

	for _, l := range in.Locks {
		idx, ok := people[l.PersonName]
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidLock, "lock names unknown person %q", l.PersonName)
		}
		if lockedPeople[l.PersonName] {
			return nil, errors.New(errors.ErrCodeInvalidLock, "person %q is locked more than once", l.PersonName)
		}
		lockedPeople[l.PersonName] = true
		p := in.People[idx]

		if !l.Pinned() {
			if l.TeamName != "" || l.Position != nil {
				return nil, errors.New(errors.ErrCodeInvalidLock, "lock on %q needs both a team and a position", l.PersonName)
			}
			eff.Excluded = append(eff.Excluded, p)
			continue
		}

		ti, ok := teams[l.TeamName]
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidLock, "lock on %q names unknown team %q", l.PersonName, l.TeamName)
		}
		if !in.Teams[ti].Has(*l.Position) {
			return nil, errors.New(errors.ErrCodeInvalidLock, "team %q has no position %s", l.TeamName, l.Position)
		}
		role := l.Role()
		if lockedRoles[role] {
			return nil, errors.New(errors.ErrCodeInvalidLock, "role %s is locked more than once", role)
		}
		lockedRoles[role] = true

		eff.Pinned = append(eff.Pinned, roster.Assignment{
			Person:   p,
			Team:     role.Team,
			Position: role.Position(),
			Score:    model.Score(p, role, in.AnalysisDate),
			Manual:   true,
		})
	}

	for _, p := range in.People {
		if !lockedPeople[p.Name] {
			eff.People = append(eff.People, p)
		}
	}
	for _, t := range in.Teams {
		open := roster.Team{Name: t.Name}
		for _, pos := range t.Positions {
			if !lockedRoles[roster.NewRoleID(t.Name, pos)] {
				open.Positions = append(open.Positions, pos)
			}
		}
		eff.Teams = append(eff.Teams, open)
	}
	return eff, nil
}

func indexPeople(people []roster.Person) (map[string]int, error) {
	idx := make(map[string]int, len(people))
	for i, p := range people {
		if err := errors.ValidateName("person", p.Name); err != nil {
			return nil, err
		}
		if _, dup := idx[p.Name]; dup {
			return nil, errors.New(errors.ErrCodeInvalidInput, "duplicate person %q", p.Name)
		}
		idx[p.Name] = i
	}
	return idx, nil
}

func indexTeams(teams []roster.Team) (map[string]int, error) {
	idx := make(map[string]int, len(teams))
	for i, t := range teams {
		if err := errors.ValidateName("team", t.Name); err != nil {
			return nil, err
		}
		if _, dup := idx[t.Name]; dup {
			return nil, errors.New(errors.ErrCodeInvalidInput, "duplicate team %q", t.Name)
		}
		idx[t.Name] = i

		seen := make(map[roster.Position]bool, len(t.Positions))
		for _, pos := range t.Positions {
			if seen[pos] {
				return nil, errors.New(errors.ErrCodeInvalidInput, "team %q lists position %s twice", t.Name, pos)
			}
			if pos.Instance < 0 {
				return nil, errors.New(errors.ErrCodeInvalidInput, "team %q has negative instance for %q", t.Name, pos.Qualification)
			}
			seen[pos] = true
		}
	}
	return idx, nil
}
