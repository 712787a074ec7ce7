package roster

import "strings"

// Assignment places one person in one role.
type Assignment struct {
	Person   Person   `json:"person" yaml:"person"`
	Team     string   `json:"team" yaml:"team"`
	Position Position `json:"position" yaml:"position"`
	Score    int      `json:"score" yaml:"score"`
	Manual   bool     `json:"manual_override" yaml:"manual_override"`
}

// Role returns the role the assignment fills.
func (a Assignment) Role() RoleID { return NewRoleID(a.Team, a.Position) }

// UnfilledPosition is one missing instance of a qualification in a team.
type UnfilledPosition struct {
	Team          string `json:"team" yaml:"team"`
	Qualification string `json:"qualification" yaml:"qualification"`
}

// Plan is the outcome of one solve.
//
// Every input person appears in exactly one of Assignments, Unassigned and
// Excluded. For each team and qualification, assigned plus unfilled instances
// equal the team's requirement.
type Plan struct {
	AnalysisDate Date               `json:"analysis_date" yaml:"analysis_date"`
	Assignments  []Assignment       `json:"assignments" yaml:"assignments"`
	Unfilled     []UnfilledPosition `json:"unfilled_positions" yaml:"unfilled_positions"`
	Unassigned   []Person           `json:"unassigned_people" yaml:"unassigned_people"`
	Excluded     []Person           `json:"excluded_people,omitempty" yaml:"excluded_people,omitempty"`
	TotalCost    int                `json:"total_cost" yaml:"total_cost"`
	Flow         int                `json:"flow" yaml:"flow"`
	Stats        Stats              `json:"stats" yaml:"stats"`
}

// AssignmentFor returns the assignment held by person.
func (p *Plan) AssignmentFor(person string) (Assignment, bool) {
	for _, a := range p.Assignments {
		if a.Person.Name == person {
			return a, true
		}
	}
	return Assignment{}, false
}

// AssignmentAt returns the assignment filling role.
func (p *Plan) AssignmentAt(role RoleID) (Assignment, bool) {
	for _, a := range p.Assignments {
		if a.Role() == role {
			return a, true
		}
	}
	return Assignment{}, false
}

// TeamAssignments returns the assignments of team in plan order.
func (p *Plan) TeamAssignments(team string) []Assignment {
	var out []Assignment
	for _, a := range p.Assignments {
		if a.Team == team {
			out = append(out, a)
		}
	}
	return out
}

// Coverage returns the filled and required position counts of team.
func (p *Plan) Coverage(team Team) (filled, required int) {
	return len(p.TeamAssignments(team.Name)), len(team.Positions)
}

// Stats summarizes a plan.
type Stats struct {
	Assigned   int `json:"assigned" yaml:"assigned"`
	Unassigned int `json:"unassigned" yaml:"unassigned"`
	Unfilled   int `json:"unfilled" yaml:"unfilled"`
	Excluded   int `json:"excluded" yaml:"excluded"`
	Manual     int `json:"manual" yaml:"manual"`
	SelresUsed int `json:"selres_used" yaml:"selres_used"`
	AWUsed     int `json:"aw_used" yaml:"aw_used"`

	// Rotation urgency of assigned people, indexed by Urgency.
	Urgency [urgencyCount]int `json:"urgency" yaml:"urgency"`
}

// ComputeStats derives the summary counts of p.
func ComputeStats(p *Plan) Stats {
	s := Stats{
		Assigned:   len(p.Assignments),
		Unassigned: len(p.Unassigned),
		Unfilled:   len(p.Unfilled),
		Excluded:   len(p.Excluded),
	}
	for _, a := range p.Assignments {
		if a.Manual {
			s.Manual++
		}
		if a.Person.DutyStatus == StatusSELRES {
			s.SelresUsed++
		}
		if strings.HasPrefix(a.Person.RateRank, "AW") {
			s.AWUsed++
		}
		s.Urgency[UrgencyOf(a.Person, p.AnalysisDate)]++
	}
	return s
}

// Urgency buckets a person's time to rotation.
type Urgency int

const (
	// UrgencyNone means the person has no rotation date.
	UrgencyNone Urgency = iota
	// UrgencyLow means twelve months or more remain.
	UrgencyLow
	// UrgencyMedium means six to twelve months remain.
	UrgencyMedium
	// UrgencyHigh means under six months remain, or the date has passed.
	UrgencyHigh

	urgencyCount
)

func (u Urgency) String() string {
	switch u {
	case UrgencyLow:
		return "12+ months"
	case UrgencyMedium:
		return "6-12 months"
	case UrgencyHigh:
		return "<6 months"
	}
	return "no PRD"
}

// UrgencyOf buckets p's rotation date relative to at.
func UrgencyOf(p Person, at Date) Urgency {
	days, ok := p.DaysToRotation(at)
	switch {
	case !ok:
		return UrgencyNone
	case days >= 365:
		return UrgencyLow
	case days >= 180:
		return UrgencyMedium
	}
	return UrgencyHigh
}
