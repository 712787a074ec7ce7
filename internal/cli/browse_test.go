package cli

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	pkgio "github.com/matzehuels/dutyflow/pkg/io"
	"github.com/matzehuels/dutyflow/pkg/roster"
	"github.com/matzehuels/dutyflow/pkg/solver"
)

func testBrowseModel(t *testing.T) browseModel {
	t.Helper()
	prd := roster.MustParseDate("2025-07-01")
	alpha := roster.Team{Name: "Alpha"}
	alpha.AddRequirement("220 QAR", 1)
	st := pkgio.NewSaveState(solver.Input{
		People: []roster.Person{
			{Name: "ADAMS, ROY", RateRank: "AM1", DutyStatus: roster.StatusTAR, PRD: &prd, Qualifications: []string{"220 QAR"}},
			{Name: "CRUZ, ANA", RateRank: "AM2", DutyStatus: roster.StatusSELRES, Qualifications: []string{"220 QAR"}},
		},
		Teams:        []roster.Team{alpha},
		AnalysisDate: roster.MustParseDate("2025-01-01"),
	}, nil)

	solve := func(locks []roster.AssignmentLock) (*roster.Plan, error) {
		in := st.Input()
		in.Locks = locks
		return solver.Run(in)
	}
	plan, err := solve(nil)
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	return newBrowseModel(st, plan, solve)
}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// press sends msg and, when it yields a command, feeds the command's
// message back into the model.
func press(t *testing.T, m browseModel, msg tea.Msg) browseModel {
	t.Helper()
	next, cmd := m.Update(msg)
	m = next.(browseModel)
	if cmd != nil {
		next, _ = m.Update(cmd())
		m = next.(browseModel)
	}
	return m
}

func TestBrowseRows(t *testing.T) {
	m := testBrowseModel(t)
	if len(m.rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(m.rows))
	}
	if m.rows[0].person != "ADAMS, ROY" || m.rows[0].role == nil {
		t.Errorf("row 0 = %+v, want ADAMS assigned", m.rows[0])
	}
	if m.rows[1].person != "CRUZ, ANA" || m.rows[1].role != nil {
		t.Errorf("row 1 = %+v, want CRUZ unassigned", m.rows[1])
	}
}

func TestBrowseLockToggle(t *testing.T) {
	m := press(t, testBrowseModel(t), runeKey("l"))
	if len(m.locks) != 1 || !m.locks[0].Pinned() || m.locks[0].PersonName != "ADAMS, ROY" {
		t.Fatalf("locks = %v, want ADAMS pinned", m.locks)
	}
	if !m.rows[0].manual || !m.dirty || m.busy {
		t.Errorf("row 0 manual=%v dirty=%v busy=%v", m.rows[0].manual, m.dirty, m.busy)
	}

	m = press(t, m, runeKey("l"))
	if len(m.locks) != 0 {
		t.Errorf("second toggle should unlock, locks = %v", m.locks)
	}
}

func TestBrowseSwap(t *testing.T) {
	m := testBrowseModel(t)
	m = press(t, m, runeKey("s"))
	if m.marked == nil || m.marked.person != "ADAMS, ROY" {
		t.Fatalf("marked = %v, want ADAMS", m.marked)
	}
	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = press(t, m, runeKey("s"))

	if m.marked != nil {
		t.Error("swap should clear the mark")
	}
	if m.rows[0].person != "CRUZ, ANA" || !m.rows[0].manual {
		t.Errorf("row 0 = %+v, want CRUZ pinned", m.rows[0])
	}
	if m.rows[1].person != "ADAMS, ROY" || m.rows[1].role != nil {
		t.Errorf("row 1 = %+v, want ADAMS unassigned", m.rows[1])
	}
}

func TestBrowseIgnoresEditsWhileBusy(t *testing.T) {
	m := testBrowseModel(t)
	next, cmd := m.Update(runeKey("l"))
	if cmd == nil {
		t.Fatal("lock should start a solve")
	}
	m = next.(browseModel)
	if _, cmd := m.Update(runeKey("x")); cmd != nil {
		t.Error("edits should be ignored while a solve runs")
	}
}

func TestBrowseWrite(t *testing.T) {
	m := testBrowseModel(t)
	var saved []roster.AssignmentLock
	m.save = func(locks []roster.AssignmentLock) error {
		saved = locks
		return nil
	}
	m = press(t, m, runeKey("x"))
	m = press(t, m, runeKey("w"))
	if len(saved) != 1 || saved[0].Pinned() {
		t.Errorf("saved = %v, want one exclusion", saved)
	}
	if m.dirty {
		t.Error("write should clear the dirty flag")
	}
}
