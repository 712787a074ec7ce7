package roster

import (
	"fmt"
	"slices"
)

// AssignmentLock fixes part of a plan before solving.
//
// With TeamName and Position set the lock pins the person to that role. With
// only PersonName set the person is held out of the solve entirely.
type AssignmentLock struct {
	PersonName string    `json:"person_name" yaml:"person_name"`
	TeamName   string    `json:"team_name,omitempty" yaml:"team_name,omitempty"`
	Position   *Position `json:"position,omitempty" yaml:"position,omitempty"`
}

// Pin returns a lock placing person in role.
func Pin(person string, role RoleID) AssignmentLock {
	pos := role.Position()
	return AssignmentLock{PersonName: person, TeamName: role.Team, Position: &pos}
}

// Exclude returns a lock that keeps person out of the solve.
func Exclude(person string) AssignmentLock {
	return AssignmentLock{PersonName: person}
}

// Pinned reports whether the lock names a role.
func (l AssignmentLock) Pinned() bool { return l.TeamName != "" && l.Position != nil }

// Role returns the pinned role. It is only meaningful when Pinned is true.
func (l AssignmentLock) Role() RoleID {
	if !l.Pinned() {
		return RoleID{}
	}
	return NewRoleID(l.TeamName, *l.Position)
}

func (l AssignmentLock) String() string {
	if !l.Pinned() {
		return fmt.Sprintf("%s (excluded)", l.PersonName)
	}
	return fmt.Sprintf("%s -> %s", l.PersonName, l.Role())
}

// conflicts reports whether l and other cannot both hold: same person, or
// the same pinned role.
func (l AssignmentLock) conflicts(other AssignmentLock) bool {
	if l.PersonName == other.PersonName {
		return true
	}
	return l.Pinned() && other.Pinned() && l.Role() == other.Role()
}

// SetLock returns locks with lock added, replacing any lock on the same
// person or the same role. The input slice is not modified.
func SetLock(locks []AssignmentLock, lock AssignmentLock) []AssignmentLock {
	out := make([]AssignmentLock, 0, len(locks)+1)
	for _, l := range locks {
		if !l.conflicts(lock) {
			out = append(out, l)
		}
	}
	return append(out, lock)
}

// Unlock returns locks without the lock held by person.
func Unlock(locks []AssignmentLock, person string) []AssignmentLock {
	return slices.DeleteFunc(slices.Clone(locks), func(l AssignmentLock) bool {
		return l.PersonName == person
	})
}

// UnpinRole returns locks without any pin on role.
func UnpinRole(locks []AssignmentLock, role RoleID) []AssignmentLock {
	return slices.DeleteFunc(slices.Clone(locks), func(l AssignmentLock) bool {
		return l.Pinned() && l.Role() == role
	})
}

// ClearLocks drops every pin on team, or every lock when team is empty.
// Exclusions survive a team-scoped clear.
func ClearLocks(locks []AssignmentLock, team string) []AssignmentLock {
	if team == "" {
		return nil
	}
	return slices.DeleteFunc(slices.Clone(locks), func(l AssignmentLock) bool {
		return l.Pinned() && l.TeamName == team
	})
}

// LockAssignments pins every assignment of plan accepted by keep. A nil keep
// pins them all.
func LockAssignments(locks []AssignmentLock, plan *Plan, keep func(Assignment) bool) []AssignmentLock {
	for _, a := range plan.Assignments {
		if keep == nil || keep(a) {
			locks = SetLock(locks, Pin(a.Person.Name, a.Role()))
		}
	}
	return locks
}

// Slot is one side of a swap: a person and the role they hold, if any.
type Slot struct {
	Person string
	Role   *RoleID
}

// SlotOf returns the slot person occupies in plan.
func SlotOf(plan *Plan, person string) Slot {
	if a, ok := plan.AssignmentFor(person); ok {
		role := a.Role()
		return Slot{Person: person, Role: &role}
	}
	return Slot{Person: person}
}

// Swap pins a's person into b's role and b's person into a's role. A side
// without a role contributes nothing, so swapping an assigned person with an
// unassigned one moves the unassigned person into the role and frees the
// other. Swapping a slot with itself is an error.
func Swap(locks []AssignmentLock, a, b Slot) ([]AssignmentLock, error) {
	if a.Person == b.Person {
		return nil, fmt.Errorf("swap: %q cannot be swapped with itself", a.Person)
	}
	if a.Role == nil && b.Role == nil {
		return nil, fmt.Errorf("swap: neither %q nor %q holds a role", a.Person, b.Person)
	}

	out := Unlock(Unlock(locks, a.Person), b.Person)
	if b.Role != nil {
		out = SetLock(out, Pin(a.Person, *b.Role))
	}
	if a.Role != nil {
		out = SetLock(out, Pin(b.Person, *a.Role))
	}
	return out, nil
}
