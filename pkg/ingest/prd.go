package ingest

import (
	"strings"

	"github.com/matzehuels/dutyflow/pkg/roster"
)

// PRDList maps FLTMPS names to projected rotation dates. A nil date marks
// a listed name whose PRD could not be read; it still takes part in
// matching so that it cannot hand a namesake's date to the wrong person.
type PRDList map[string]*roster.Date

// Lookup finds the PRD of a roster name of the form "LAST, FIRST ...".
//
// A FLTMPS name matches when it starts with the last name. When several
// do, the match narrows to names starting with "LAST FIRST". Anything but
// exactly one match is no match, and so is a unique match without a date.
func (l PRDList) Lookup(name string) (roster.Date, bool) {
	last, rest, ok := strings.Cut(name, ", ")
	if !ok {
		return roster.Date{}, false
	}
	if key, n := l.prefixMatch(last); n == 1 {
		return l.date(key)
	} else if n == 0 {
		return roster.Date{}, false
	}

	first, _, _ := strings.Cut(rest, " ")
	if key, n := l.prefixMatch(last + " " + first); n == 1 {
		return l.date(key)
	}
	return roster.Date{}, false
}

func (l PRDList) date(key string) (roster.Date, bool) {
	if d := l[key]; d != nil {
		return *d, true
	}
	return roster.Date{}, false
}

func (l PRDList) prefixMatch(prefix string) (string, int) {
	var key string
	n := 0
	for k := range l {
		if strings.HasPrefix(k, prefix) {
			key = k
			n++
		}
	}
	return key, n
}

// ApplyPRDs sets each person's PRD from prds. People with a match become
// TAR; everyone else becomes SELRES without a PRD. The input is not
// modified.
func ApplyPRDs(people []roster.Person, prds PRDList) []roster.Person {
	out := make([]roster.Person, len(people))
	for i, p := range people {
		if d, ok := prds.Lookup(p.Name); ok {
			p.PRD = &d
			p.DutyStatus = roster.StatusTAR
		} else {
			p.PRD = nil
			p.DutyStatus = roster.StatusSELRES
		}
		out[i] = p
	}
	return out
}
