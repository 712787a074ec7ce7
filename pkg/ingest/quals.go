package ingest

import (
	"slices"
	"strings"

	"github.com/matzehuels/dutyflow/pkg/roster"
)

// QualTable maps a local qualification name to the ASM names that count
// as it.
type QualTable map[string][]string

// Lookup inverts the table to map ASM names to local names. When an ASM
// name is listed under several local names, the alphabetically first local
// name wins.
func (t QualTable) Lookup() map[string]string {
	locals := make([]string, 0, len(t))
	for local := range t {
		locals = append(locals, local)
	}
	slices.Sort(locals)

	out := make(map[string]string)
	for _, local := range locals {
		for _, asm := range t[local] {
			if _, ok := out[asm]; !ok {
				out[asm] = local
			}
		}
	}
	return out
}

// Translate maps ASM qualification names to local names, dropping names the
// table does not know and repeats.
func (t QualTable) Translate(asm []string) []string {
	return translate(t.Lookup(), asm)
}

func translate(lookup map[string]string, asm []string) []string {
	var out []string
	for _, q := range asm {
		local, ok := lookup[q]
		if ok && !slices.Contains(out, local) {
			out = append(out, local)
		}
	}
	return out
}

// BuildPeople translates each person's ASM qualifications and adds derived
// qualifications. The input is not modified.
func BuildPeople(people []roster.Person, table QualTable) []roster.Person {
	lookup := table.Lookup()
	out := make([]roster.Person, len(people))
	for i, p := range people {
		quals := translate(lookup, p.Qualifications)
		p.Qualifications = append(quals, DerivedQualifications(p.DisplayName(), quals)...)
		out[i] = p
	}
	return out
}

type derivation struct {
	adds []string
	// exactly one of rate, all or any is set
	rate func(string) bool
	all  []string
	any  []string
}

func (d derivation) applies(label string, upper []string) bool {
	switch {
	case d.rate != nil:
		return d.rate(label)
	case len(d.all) > 0:
		for _, q := range d.all {
			if !slices.Contains(upper, q) {
				return false
			}
		}
		return len(d.any) == 0 || containsAny(upper, d.any)
	default:
		return containsAny(upper, d.any)
	}
}

func containsAny(have, want []string) bool {
	for _, q := range want {
		if slices.Contains(have, q) {
			return true
		}
	}
	return false
}

// Qualification lists are compared after upper-casing, so mixed-case names
// such as "130 Crossrate" here never match.
var derivations = []derivation{
	{adds: []string{"Chief", "QAS"}, rate: roster.IsChief},
	{adds: []string{"MMCPO"}, rate: roster.IsMMCPO},
	{adds: []string{"AZ"}, rate: roster.IsAZ},
	{adds: []string{"Supply", "020 SUP"}, rate: roster.IsSupply},
	{
		adds: []string{"F/S QAR"},
		all:  []string{"220 QAR", "210 QAR", "120 QAR", "110 QAR"},
		any:  []string{"13A QAR", "13B QAR", "130 Crossrate"},
	},
	{adds: []string{"200 CDI"}, all: []string{"210 CDI", "220 CDI"}},
	{adds: []string{"100 CDI"}, all: []string{"110 CDI", "120 CDI"}},
	{adds: []string{"130 CDI"}, any: []string{"13A CDI", "13B CDI"}},
}

// DerivedQualifications returns the qualifications implied by label, the
// "NAME  RATE" form of a person, and the local qualifications they hold.
// Qualifications already in quals are not repeated.
func DerivedQualifications(label string, quals []string) []string {
	upper := make([]string, len(quals))
	for i, q := range quals {
		upper[i] = strings.ToUpper(q)
	}

	var out []string
	for _, d := range derivations {
		if !d.applies(label, upper) {
			continue
		}
		for _, q := range d.adds {
			if !slices.Contains(quals, q) && !slices.Contains(out, q) {
				out = append(out, q)
			}
		}
	}
	return out
}
