package roster

import (
	"slices"
	"strings"
)

// DutyStatus distinguishes full-time members from drilling reservists.
type DutyStatus string

const (
	// StatusTAR marks full-time support members.
	StatusTAR DutyStatus = "TAR"
	// StatusSELRES marks selected reservists.
	StatusSELRES DutyStatus = "SELRES"
)

// ParseDutyStatus maps roster status codes to a DutyStatus. TAR and FTS are
// full time; anything else, including an empty string, is SELRES.
func ParseDutyStatus(s string) DutyStatus {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "TAR", "FTS":
		return StatusTAR
	}
	return StatusSELRES
}

// Person is a member that can fill positions.
// Name is the unique key across a roster.
type Person struct {
	Name           string     `json:"name" yaml:"name"`
	RateRank       string     `json:"raterank" yaml:"raterank"`
	DutyStatus     DutyStatus `json:"duty_status" yaml:"duty_status"`
	Qualifications []string   `json:"qualifications" yaml:"qualifications"`
	PRD            *Date      `json:"prd,omitempty" yaml:"prd,omitempty"`
}

// HasQualification reports whether p holds qual. Matching is exact.
func (p Person) HasQualification(qual string) bool {
	return slices.Contains(p.Qualifications, qual)
}

// DisplayName is the name and rate joined the way assignment reports print them.
func (p Person) DisplayName() string {
	if p.RateRank == "" {
		return p.Name
	}
	return p.Name + "  " + p.RateRank
}

// DaysToRotation returns the days from at until p's PRD and whether p has one.
func (p Person) DaysToRotation(at Date) (int, bool) {
	if p.PRD == nil || p.PRD.IsZero() {
		return 0, false
	}
	return at.DaysUntil(*p.PRD), true
}
