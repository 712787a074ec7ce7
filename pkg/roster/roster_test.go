package roster

import (
	"encoding/json"
	"slices"
	"testing"
)

func TestDateDaysUntil(t *testing.T) {
	tests := []struct {
		from, to string
		want     int
	}{
		{"2025-01-01", "2025-01-01", 0},
		{"2025-01-01", "2025-01-31", 30},
		{"2025-01-31", "2025-01-01", -30},
		{"2024-02-28", "2024-03-01", 2},
		{"2025-01-01", "2026-01-01", 365},
	}
	for _, tt := range tests {
		got := MustParseDate(tt.from).DaysUntil(MustParseDate(tt.to))
		if got != tt.want {
			t.Errorf("%s.DaysUntil(%s) = %d, want %d", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestDateJSON(t *testing.T) {
	type wrapper struct {
		D   Date  `json:"d"`
		PRD *Date `json:"prd"`
	}
	d := MustParseDate("2025-06-15")
	data, err := json.Marshal(wrapper{D: d})
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	if string(data) != `{"d":"2025-06-15","prd":null}` {
		t.Errorf("Marshal = %s", data)
	}

	var back wrapper
	if err := json.Unmarshal([]byte(`{"d":"2025-06-15","prd":"2026-01-01"}`), &back); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if back.D != d {
		t.Errorf("D = %v, want %v", back.D, d)
	}
	if back.PRD == nil || back.PRD.String() != "2026-01-01" {
		t.Errorf("PRD = %v, want 2026-01-01", back.PRD)
	}

	if err := json.Unmarshal([]byte(`{"d":"15/06/2025"}`), &back); err == nil {
		t.Error("Unmarshal of malformed date should fail")
	}
}

func TestParseDutyStatus(t *testing.T) {
	tests := map[string]DutyStatus{
		"TAR":    StatusTAR,
		"tar":    StatusTAR,
		" FTS ":  StatusTAR,
		"SELRES": StatusSELRES,
		"":       StatusSELRES,
		"AT":     StatusSELRES,
	}
	for in, want := range tests {
		if got := ParseDutyStatus(in); got != want {
			t.Errorf("ParseDutyStatus(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestTeamAddRequirement(t *testing.T) {
	team := Team{Name: "Alpha"}
	team.AddRequirement("QAR", 2)
	team.AddRequirement("CDI", 1)
	team.AddRequirement("QAR", 1)

	want := []Position{
		{"QAR", 0}, {"QAR", 1}, {"CDI", 0}, {"QAR", 2},
	}
	if !slices.Equal(team.Positions, want) {
		t.Errorf("Positions = %v, want %v", team.Positions, want)
	}
	if team.Required("QAR") != 3 {
		t.Errorf("Required(QAR) = %d, want 3", team.Required("QAR"))
	}
	if q := team.Qualifications(); !slices.Equal(q, []string{"QAR", "CDI"}) {
		t.Errorf("Qualifications() = %v", q)
	}
}

func TestSetLockReplacesConflicts(t *testing.T) {
	roleA := RoleID{Team: "Alpha", Qualification: "QAR", Instance: 0}
	roleB := RoleID{Team: "Bravo", Qualification: "CDI", Instance: 0}

	locks := []AssignmentLock{Pin("Ann", roleA), Exclude("Bob")}
	locks = SetLock(locks, Pin("Cat", roleA))
	if len(locks) != 2 || locks[1].PersonName != "Cat" {
		t.Fatalf("pin on taken role: locks = %v", locks)
	}

	locks = SetLock(locks, Pin("Bob", roleB))
	want := []AssignmentLock{Pin("Cat", roleA), Pin("Bob", roleB)}
	if !equalLocks(locks, want) {
		t.Errorf("locks = %v, want %v", locks, want)
	}
}

func TestClearLocks(t *testing.T) {
	locks := []AssignmentLock{
		Pin("Ann", RoleID{Team: "Alpha", Qualification: "QAR"}),
		Pin("Bob", RoleID{Team: "Bravo", Qualification: "QAR"}),
		Exclude("Cat"),
	}
	got := ClearLocks(locks, "Alpha")
	want := []AssignmentLock{locks[1], locks[2]}
	if !equalLocks(got, want) {
		t.Errorf("ClearLocks(Alpha) = %v, want %v", got, want)
	}
	if len(locks) != 3 {
		t.Error("ClearLocks modified its input")
	}
	if got := ClearLocks(locks, ""); len(got) != 0 {
		t.Errorf("ClearLocks(\"\") = %v, want empty", got)
	}
}

func TestSwap(t *testing.T) {
	roleA := RoleID{Team: "Alpha", Qualification: "QAR"}
	roleB := RoleID{Team: "Bravo", Qualification: "CDI"}

	t.Run("two assigned", func(t *testing.T) {
		got, err := Swap(nil, Slot{"Ann", &roleA}, Slot{"Bob", &roleB})
		if err != nil {
			t.Fatalf("Swap error: %v", err)
		}
		want := []AssignmentLock{Pin("Ann", roleB), Pin("Bob", roleA)}
		if !equalLocks(got, want) {
			t.Errorf("Swap = %v, want %v", got, want)
		}
	})

	t.Run("assigned with unassigned", func(t *testing.T) {
		locks := []AssignmentLock{Pin("Ann", roleA)}
		got, err := Swap(locks, Slot{"Ann", &roleA}, Slot{Person: "Cat"})
		if err != nil {
			t.Fatalf("Swap error: %v", err)
		}
		want := []AssignmentLock{Pin("Cat", roleA)}
		if !equalLocks(got, want) {
			t.Errorf("Swap = %v, want %v", got, want)
		}
	})

	t.Run("invalid", func(t *testing.T) {
		if _, err := Swap(nil, Slot{"Ann", &roleA}, Slot{"Ann", &roleB}); err == nil {
			t.Error("self swap should fail")
		}
		if _, err := Swap(nil, Slot{Person: "Ann"}, Slot{Person: "Bob"}); err == nil {
			t.Error("swap without roles should fail")
		}
	})
}

func TestLockAssignments(t *testing.T) {
	plan := &Plan{Assignments: []Assignment{
		{Person: Person{Name: "Ann"}, Team: "Alpha", Position: Position{"QAR", 0}},
		{Person: Person{Name: "Bob"}, Team: "Alpha", Position: Position{"CDI", 0}},
	}}
	got := LockAssignments(nil, plan, func(a Assignment) bool { return a.Person.Name == "Bob" })
	want := []AssignmentLock{Pin("Bob", RoleID{Team: "Alpha", Qualification: "CDI"})}
	if !equalLocks(got, want) {
		t.Errorf("LockAssignments = %v, want %v", got, want)
	}
	if all := LockAssignments(nil, plan, nil); len(all) != 2 {
		t.Errorf("LockAssignments(nil keep) locked %d, want 2", len(all))
	}
}

func TestComputeStats(t *testing.T) {
	at := MustParseDate("2025-01-01")
	soon := at.AddDays(30)
	later := at.AddDays(400)
	plan := &Plan{
		AnalysisDate: at,
		Assignments: []Assignment{
			{Person: Person{Name: "A", RateRank: "AWF2", DutyStatus: StatusSELRES}},
			{Person: Person{Name: "B", RateRank: "AM1", DutyStatus: StatusTAR, PRD: &soon}, Manual: true},
			{Person: Person{Name: "C", RateRank: "AD2", DutyStatus: StatusTAR, PRD: &later}},
		},
		Unfilled:   []UnfilledPosition{{"Alpha", "QAR"}},
		Unassigned: []Person{{Name: "D"}},
	}
	s := ComputeStats(plan)
	if s.Assigned != 3 || s.Unassigned != 1 || s.Unfilled != 1 {
		t.Errorf("counts = %+v", s)
	}
	if s.SelresUsed != 1 || s.AWUsed != 1 || s.Manual != 1 {
		t.Errorf("selres=%d aw=%d manual=%d, want 1 1 1", s.SelresUsed, s.AWUsed, s.Manual)
	}
	if s.Urgency[UrgencyNone] != 1 || s.Urgency[UrgencyHigh] != 1 || s.Urgency[UrgencyLow] != 1 {
		t.Errorf("Urgency = %v", s.Urgency)
	}
}

func equalLocks(a, b []AssignmentLock) bool {
	return slices.EqualFunc(a, b, func(x, y AssignmentLock) bool {
		if x.PersonName != y.PersonName || x.TeamName != y.TeamName {
			return false
		}
		if (x.Position == nil) != (y.Position == nil) {
			return false
		}
		return x.Position == nil || *x.Position == *y.Position
	})
}

func TestPlanCoverage(t *testing.T) {
	alpha := Team{Name: "Alpha"}
	alpha.AddRequirement("220 QAR", 2)
	bravo := Team{Name: "Bravo"}
	bravo.AddRequirement("Chief", 1)

	plan := &Plan{Assignments: []Assignment{
		{Person: Person{Name: "ADAMS, ROY"}, Team: "Alpha", Position: alpha.Positions[0]},
		{Person: Person{Name: "CRUZ, ANA"}, Team: "Bravo", Position: bravo.Positions[0]},
	}}
	tests := []struct {
		team             Team
		filled, required int
	}{
		{alpha, 1, 2},
		{bravo, 1, 1},
		{Team{Name: "Charlie"}, 0, 0},
	}
	for _, tt := range tests {
		filled, required := plan.Coverage(tt.team)
		if filled != tt.filled || required != tt.required {
			t.Errorf("Coverage(%s) = %d/%d, want %d/%d", tt.team.Name, filled, required, tt.filled, tt.required)
		}
	}
}
