package network

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matzehuels/dutyflow/pkg/roster"
	"github.com/matzehuels/dutyflow/pkg/solver"
)

func solved(t *testing.T) *solver.Solver {
	t.Helper()
	team := roster.Team{Name: "Alpha"}
	team.AddRequirement("220 QAR", 1)
	people := []roster.Person{
		{Name: "ADAMS, ROY", RateRank: "AM1", DutyStatus: roster.StatusTAR, Qualifications: []string{"220 QAR"}},
		{Name: "BAKER, SUE", RateRank: "AM2", DutyStatus: roster.StatusSELRES, Qualifications: []string{"220 QAR"}},
	}
	s := solver.New(people, []roster.Team{team}, roster.MustParseDate("2025-01-01"))
	if _, err := s.Solve(); err != nil {
		t.Fatalf("Solve error: %v", err)
	}
	return s
}

func TestToDOT(t *testing.T) {
	s := solved(t)
	dot := ToDOT(s, Options{Costs: true})

	for _, want := range []string{
		"digraph G {",
		"rankdir=LR;",
		"subgraph person_layer {",
		`label="ADAMS, ROY  AM1"`,
		`label="Alpha/220 QAR#0"`,
		`label="15000"`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}

	// source -> ADAMS carries flow, source -> BAKER does not
	if !strings.Contains(dot, "n0 -> n1 [color=black, penwidth=2.5];") {
		t.Errorf("flow edge not highlighted:\n%s", dot)
	}
	if !strings.Contains(dot, "n0 -> n2;") {
		t.Errorf("idle edge missing:\n%s", dot)
	}
}

func TestToDOTFlowOnly(t *testing.T) {
	dot := ToDOT(solved(t), Options{FlowOnly: true})
	if strings.Contains(dot, "n0 -> n2") {
		t.Errorf("FlowOnly kept an idle edge:\n%s", dot)
	}
	if got := strings.Count(dot, "->"); got != 4 {
		t.Errorf("FlowOnly edges = %d, want 4 (source, person, role, team)", got)
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(ToDOT(solved(t), Options{}))
	if err != nil {
		t.Fatalf("RenderSVG error: %v", err)
	}
	if !bytes.Contains(svg, []byte("<svg")) || !bytes.Contains(svg, []byte(`viewBox="0 0 `)) {
		t.Errorf("unexpected SVG header: %.200s", svg)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="10pt" height="20pt" viewBox="0.00 0.00 10.00 20.00"><g/></svg>`)
	out := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10.00 20.00" width="10" height="20"><g/></svg>`
	if out != want {
		t.Errorf("normalizeViewBox = %s, want %s", out, want)
	}
	if got := normalizeViewBox([]byte("<svg>")); string(got) != "<svg>" {
		t.Errorf("no viewBox should pass through, got %s", got)
	}
}
