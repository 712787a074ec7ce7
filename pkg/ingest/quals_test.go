package ingest

import (
	"reflect"
	"testing"

	"github.com/matzehuels/dutyflow/pkg/roster"
)

func TestQualTableLookup(t *testing.T) {
	table := QualTable{
		"QAR":   {"ASM QAR", "SHARED"},
		"CDI":   {"ASM CDI", "SHARED"},
		"Other": {"ASM OTHER"},
	}
	got := table.Lookup()
	want := map[string]string{
		"ASM QAR":   "QAR",
		"ASM CDI":   "CDI",
		"ASM OTHER": "Other",
		"SHARED":    "CDI",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Lookup() = %v, want %v", got, want)
	}
}

func TestQualTableTranslate(t *testing.T) {
	table := QualTable{"220 QAR": {"QAR 220", "QAR 220 OLD"}, "SFF": {"SAFE FOR FLIGHT"}}
	got := table.Translate([]string{"QAR 220", "UNTRACKED", "SAFE FOR FLIGHT", "QAR 220 OLD"})
	if want := []string{"220 QAR", "SFF"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Translate() = %v, want %v", got, want)
	}
}

func TestDerivedQualifications(t *testing.T) {
	allQAR := []string{"220 QAR", "210 QAR", "120 QAR", "110 QAR"}
	tests := []struct {
		name  string
		label string
		quals []string
		want  []string
	}{
		{"none", "DOE, JOHN  AM1", []string{"220 QAR"}, nil},
		{"chief", "DOE, JOHN  AMC", nil, []string{"Chief", "QAS"}},
		{"senior chief", "DOE, JOHN  AMCS", nil, []string{"Chief", "QAS"}},
		{"master chief", "DOE, JOHN  AMCM", nil, []string{"Chief", "QAS", "MMCPO"}},
		{"az", "DOE, JOHN  AZ1", nil, []string{"AZ"}},
		{"supply", "DOE, JOHN  LS2", nil, []string{"Supply", "020 SUP"}},
		{"f/s qar with 13A", "DOE, JOHN  AM1", append(allQAR, "13A QAR"), []string{"F/S QAR"}},
		{"f/s qar lowercase held", "DOE, JOHN  AM1", []string{"220 qar", "210 qar", "120 qar", "110 qar", "13b qar"}, []string{"F/S QAR"}},
		{"f/s qar needs 130", "DOE, JOHN  AM1", allQAR, nil},
		{"crossrate never counts", "DOE, JOHN  AM1", append(allQAR, "130 Crossrate"), nil},
		{"200 cdi", "DOE, JOHN  AM1", []string{"210 CDI", "220 CDI"}, []string{"200 CDI"}},
		{"200 cdi partial", "DOE, JOHN  AM1", []string{"210 CDI"}, nil},
		{"100 cdi", "DOE, JOHN  AM1", []string{"120 CDI", "110 CDI"}, []string{"100 CDI"}},
		{"130 cdi", "DOE, JOHN  AM1", []string{"13B CDI"}, []string{"130 CDI"}},
		{"already held", "DOE, JOHN  AMC", []string{"QAS"}, []string{"Chief"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DerivedQualifications(tt.label, tt.quals)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("DerivedQualifications(%q, %v) = %v, want %v", tt.label, tt.quals, got, tt.want)
			}
		})
	}
}

func TestBuildPeople(t *testing.T) {
	table := QualTable{
		"210 CDI": {"CDI 210"},
		"220 CDI": {"CDI 220"},
	}
	in := []roster.Person{{
		Name:           "DOE, JOHN",
		RateRank:       "AMC",
		Qualifications: []string{"CDI 210", "UNKNOWN", "CDI 220"},
	}}
	out := BuildPeople(in, table)

	want := []string{"210 CDI", "220 CDI", "Chief", "QAS", "200 CDI"}
	if !reflect.DeepEqual(out[0].Qualifications, want) {
		t.Errorf("Qualifications = %v, want %v", out[0].Qualifications, want)
	}
	if len(in[0].Qualifications) != 3 {
		t.Error("BuildPeople modified its input")
	}
}
