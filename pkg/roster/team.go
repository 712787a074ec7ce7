package roster

import "fmt"

// Position is one required instance of a qualification within a team.
// Instance numbers start at zero for each qualification.
type Position struct {
	Qualification string `json:"qualification" yaml:"qualification"`
	Instance      int    `json:"instance" yaml:"instance"`
}

func (p Position) String() string {
	return fmt.Sprintf("%s #%d", p.Qualification, p.Instance+1)
}

// Team is a named group with an ordered list of required positions.
type Team struct {
	Name      string     `json:"name" yaml:"name"`
	Positions []Position `json:"required_positions" yaml:"required_positions"`
}

// Required returns how many instances of qual the team needs.
func (t Team) Required(qual string) int {
	n := 0
	for _, p := range t.Positions {
		if p.Qualification == qual {
			n++
		}
	}
	return n
}

// Qualifications returns the distinct qualifications in first-appearance order.
func (t Team) Qualifications() []string {
	var out []string
	seen := make(map[string]bool)
	for _, p := range t.Positions {
		if !seen[p.Qualification] {
			seen[p.Qualification] = true
			out = append(out, p.Qualification)
		}
	}
	return out
}

// Has reports whether the team requires pos.
func (t Team) Has(pos Position) bool {
	for _, p := range t.Positions {
		if p == pos {
			return true
		}
	}
	return false
}

// AddRequirement appends count instances of qual, numbered after any
// instances the team already has.
func (t *Team) AddRequirement(qual string, count int) {
	next := t.Required(qual)
	for i := range count {
		t.Positions = append(t.Positions, Position{Qualification: qual, Instance: next + i})
	}
}

// RoleID identifies one position instance of one team.
type RoleID struct {
	Team          string `json:"team" yaml:"team"`
	Qualification string `json:"qualification" yaml:"qualification"`
	Instance      int    `json:"instance" yaml:"instance"`
}

// NewRoleID returns the role of pos within team.
func NewRoleID(team string, pos Position) RoleID {
	return RoleID{Team: team, Qualification: pos.Qualification, Instance: pos.Instance}
}

// Position returns the role's position within its team.
func (r RoleID) Position() Position {
	return Position{Qualification: r.Qualification, Instance: r.Instance}
}

func (r RoleID) String() string {
	return fmt.Sprintf("%s/%s#%d", r.Team, r.Qualification, r.Instance)
}

// Roles lists every role of teams in team order, then position order.
func Roles(teams []Team) []RoleID {
	var out []RoleID
	for _, t := range teams {
		for _, p := range t.Positions {
			out = append(out, NewRoleID(t.Name, p))
		}
	}
	return out
}
