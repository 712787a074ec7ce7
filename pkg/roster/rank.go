package roster

import (
	"strings"
	"unicode"
)

// The rate checks below take the full report label, "NAME, FIRST  RATE",
// trimmed of surrounding space. Each reproduces a fixed character-class rule
// of the legacy rate parser, including its quirks:
//
//   - chief and MMCPO accept any byte from 'A' to 'z' before the rate, so
//     '[', '\\', ']', '^', '_' and '`' are allowed there;
//   - the trailing rate suffix is a run of single characters, so "S", "M",
//     "D" and "|" may repeat in any order;
//   - MMCPO does not accept "S", so senior chiefs (CS) are not MMCPO.

// IsChief reports whether label ends in a chief rate: c or C followed by any
// run of S, M, D or '|'.
func IsChief(label string) bool {
	return chiefRate(strings.TrimSpace(label), "SMD|", false)
}

// IsMMCPO reports whether label ends in c or C followed by a non-empty run of
// M, D or '|'.
func IsMMCPO(label string) bool {
	return chiefRate(strings.TrimSpace(label), "MD|", true)
}

// IsSupply reports whether label ends in a logistics specialist rate:
// whitespace, L, one or more S, then a single letter or digit.
func IsSupply(label string) bool {
	return ratingCode(strings.TrimSpace(label), 'L', 'S')
}

// IsAZ reports whether label ends in an aviation maintenance administration
// rate: whitespace, A, one or more Z, then a single letter or digit.
func IsAZ(label string) bool {
	return ratingCode(strings.TrimSpace(label), 'A', 'Z')
}

func chiefRate(s, suffix string, needSuffix bool) bool {
	k := len(s)
	for k > 0 && strings.IndexByte(suffix, s[k-1]) >= 0 {
		k--
	}
	if needSuffix && k == len(s) {
		return false
	}
	if k == 0 || (s[k-1] != 'c' && s[k-1] != 'C') {
		return false
	}
	return allRunes(s[:k-1], wideNameRune)
}

// ratingCode matches <name chars>*<space><lead><repeat>+<alnum> at the end of s.
func ratingCode(s string, lead, repeat byte) bool {
	n := len(s)
	if n < 4 || !isASCIIAlnum(s[n-1]) {
		return false
	}
	k := n - 1
	for k > 0 && s[k-1] == repeat {
		k--
	}
	if k == n-1 {
		return false
	}
	if k < 2 || s[k-1] != lead {
		return false
	}
	head := s[:k-1]
	last := rune(head[len(head)-1])
	if !unicode.IsSpace(last) {
		return false
	}
	return allRunes(head, nameRune)
}

func allRunes(s string, ok func(rune) bool) bool {
	for _, r := range s {
		if !ok(r) {
			return false
		}
	}
	return true
}

func nameRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == ',' || unicode.IsSpace(r)
}

func wideNameRune(r rune) bool {
	return (r >= 'A' && r <= 'z') || r == ',' || unicode.IsSpace(r)
}

func isASCIIAlnum(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}
