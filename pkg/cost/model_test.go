package cost

import (
	"testing"

	"github.com/matzehuels/dutyflow/pkg/errors"
	"github.com/matzehuels/dutyflow/pkg/roster"
)

var analysis = roster.MustParseDate("2025-01-01")

func person(rate string, status roster.DutyStatus, prdDays *int) roster.Person {
	p := roster.Person{Name: "DOE, JOHN", RateRank: rate, DutyStatus: status}
	if prdDays != nil {
		d := analysis.AddDays(*prdDays)
		p.PRD = &d
	}
	return p
}

func days(n int) *int { return &n }

func role(qual string) roster.RoleID {
	return roster.RoleID{Team: "Alpha", Qualification: qual}
}

func TestScore(t *testing.T) {
	m := Default()
	tests := []struct {
		name string
		p    roster.Person
		qual string
		want int
	}{
		{"TAR baseline", person("AM1", roster.StatusTAR, nil), "QAR", 0},
		{"SELRES", person("AM1", roster.StatusSELRES, nil), "QAR", 15000},
		{"overdue PRD", person("AM1", roster.StatusTAR, days(-1)), "QAR", 20000},
		{"PRD today", person("AM1", roster.StatusTAR, days(0)), "QAR", 11000},
		{"PRD 89 days", person("AM1", roster.StatusTAR, days(89)), "QAR", 11000},
		{"PRD 90 days", person("AM1", roster.StatusTAR, days(90)), "QAR", 5000},
		{"PRD 179 days", person("AM1", roster.StatusTAR, days(179)), "QAR", 5000},
		{"PRD 180 days", person("AM1", roster.StatusTAR, days(180)), "QAR", 1000},
		{"PRD 364 days", person("AM1", roster.StatusTAR, days(364)), "QAR", 1000},
		{"PRD 365 days", person("AM1", roster.StatusTAR, days(365)), "QAR", 0},
		{"AW rate", person("AWF2", roster.StatusTAR, nil), "QAR", 10000},
		{"non-aviation rate", person("LS1", roster.StatusTAR, nil), "QAR", 10000},
		{"empty rate", person("", roster.StatusTAR, nil), "QAR", 10000},
		{"chief", person("AMC", roster.StatusTAR, nil), "QAR", 5000},
		{"senior chief", person("ADCS", roster.StatusTAR, nil), "QAR", 5000},
		{"master chief", person("AMCM", roster.StatusTAR, nil), "QAR", 10000},
		{"command master chief", person("AMCMD", roster.StatusTAR, nil), "QAR", 10000},
		{"priority role", person("AM1", roster.StatusTAR, nil), "F/S QAR", -1000},
		{"stacked", person("AWFC", roster.StatusSELRES, days(30)), "SFF", 15000 + 11000 + 10000 + 5000 - 1000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.Score(tt.p, role(tt.qual), analysis); got != tt.want {
				t.Errorf("Score() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestScoreDependsOnAnalysisDate(t *testing.T) {
	m := Default()
	p := person("AM1", roster.StatusTAR, days(100))
	if got := m.Score(p, role("QAR"), analysis); got != 5000 {
		t.Errorf("Score at analysis date = %d, want 5000", got)
	}
	if got := m.Score(p, role("QAR"), analysis.AddDays(20)); got != 11000 {
		t.Errorf("Score 20 days later = %d, want 11000", got)
	}
	if got := m.Score(p, role("QAR"), analysis.AddDays(101)); got != 20000 {
		t.Errorf("Score after PRD = %d, want 20000", got)
	}
}

func TestExplainSumsToScore(t *testing.T) {
	m := Default()
	p := person("AWFCM", roster.StatusSELRES, days(200))
	r := role("Chief")

	factors := m.Explain(p, r, analysis)
	sum := 0
	for _, f := range factors {
		if f.Points == 0 {
			t.Errorf("factor %q has zero points", f.Name)
		}
		sum += f.Points
	}
	if want := m.Score(p, r, analysis); sum != want {
		t.Errorf("sum of factors = %d, Score = %d", sum, want)
	}

	names := make([]string, len(factors))
	for i, f := range factors {
		names[i] = f.Name
	}
	want := []string{"duty status", "rotation", "AW rate", "chief", "master chief", "priority role"}
	if len(names) != len(want) {
		t.Fatalf("factors = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("factor[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestExplainEmptyForIdealCandidate(t *testing.T) {
	if f := Default().Explain(person("AM1", roster.StatusTAR, days(500)), role("QAR"), analysis); len(f) != 0 {
		t.Errorf("Explain() = %v, want none", f)
	}
}

func TestNewModelValidates(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Weights)
	}{
		{"unordered bands", func(w *Weights) { w.Rotation = []Band{{Below: 90}, {Below: 0}} }},
		{"duplicate band", func(w *Weights) { w.Rotation = []Band{{Below: 90}, {Below: 90}} }},
		{"rule without pattern", func(w *Weights) { w.Rates = []RateRule{{Name: "x", Penalty: 1}} }},
		{"rule with both", func(w *Weights) {
			w.Rates = []RateRule{{Prefix: "A", Suffixes: []string{"C"}}}
		}},
		{"empty suffix", func(w *Weights) { w.Rates = []RateRule{{Suffixes: []string{""}}} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := DefaultWeights()
			tt.mutate(&w)
			_, err := NewModel(w)
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("NewModel() error = %v, want %s", err, errors.ErrCodeInvalidConfig)
			}
		})
	}

	if _, err := NewModel(DefaultWeights()); err != nil {
		t.Errorf("NewModel(DefaultWeights()) error = %v", err)
	}
}

func TestNewModelCopiesWeights(t *testing.T) {
	w := DefaultWeights()
	m, err := NewModel(w)
	if err != nil {
		t.Fatal(err)
	}
	w.Status[string(roster.StatusSELRES)] = 0
	w.PriorityRoles[0] = "QAR"

	p := person("AM1", roster.StatusSELRES, nil)
	if got := m.Score(p, role("QAR"), analysis); got != 15000 {
		t.Errorf("Score after caller mutation = %d, want 15000", got)
	}
}
