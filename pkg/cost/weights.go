package cost

import (
	"fmt"
	"strings"

	"github.com/matzehuels/dutyflow/pkg/errors"
	"github.com/matzehuels/dutyflow/pkg/roster"
)

// Weights are the tunable inputs of a [Model]. The zero value scores every
// pairing zero; start from [DefaultWeights] to get the standard table.
type Weights struct {
	// Status maps a duty status to its penalty.
	Status map[string]int `toml:"status" json:"status" yaml:"status"`

	// Rotation bands are checked in order; the first band whose Below exceeds
	// the days remaining until the person's PRD applies.
	Rotation []Band `toml:"rotation" json:"rotation" yaml:"rotation"`

	// Rates are applied independently; every matching rule adds its penalty.
	Rates []RateRule `toml:"rate" json:"rates" yaml:"rates"`

	// PriorityRoles earn PriorityBonus (normally negative) for any person
	// placed in them.
	PriorityRoles []string `toml:"priority_roles" json:"priority_roles" yaml:"priority_roles"`
	PriorityBonus int      `toml:"priority_bonus" json:"priority_bonus" yaml:"priority_bonus"`
}

// Band is a rotation penalty for people with fewer than Below days left.
type Band struct {
	Below   int `toml:"below" json:"below" yaml:"below"`
	Penalty int `toml:"penalty" json:"penalty" yaml:"penalty"`
}

// RateRule penalizes a rate by prefix or by suffix.
type RateRule struct {
	Name     string   `toml:"name" json:"name" yaml:"name"`
	Prefix   string   `toml:"prefix,omitempty" json:"prefix,omitempty" yaml:"prefix,omitempty"`
	Suffixes []string `toml:"suffixes,omitempty" json:"suffixes,omitempty" yaml:"suffixes,omitempty"`
	// Negate applies the penalty when the rate does not match.
	Negate  bool `toml:"negate,omitempty" json:"negate,omitempty" yaml:"negate,omitempty"`
	Penalty int  `toml:"penalty" json:"penalty" yaml:"penalty"`
}

// Matches reports whether the rule applies to rate.
func (r RateRule) Matches(rate string) bool {
	var hit bool
	if r.Prefix != "" {
		hit = strings.HasPrefix(rate, r.Prefix)
	} else {
		for _, s := range r.Suffixes {
			if strings.HasSuffix(rate, s) {
				hit = true
				break
			}
		}
	}
	return hit != r.Negate
}

// DefaultWeights returns the standard scoring table.
func DefaultWeights() Weights {
	return Weights{
		Status: map[string]int{
			string(roster.StatusTAR):    0,
			string(roster.StatusSELRES): 15000,
		},
		Rotation: []Band{
			{Below: 0, Penalty: 20000},
			{Below: 90, Penalty: 11000},
			{Below: 180, Penalty: 5000},
			{Below: 365, Penalty: 1000},
		},
		Rates: []RateRule{
			{Name: "AW rate", Prefix: "AW", Penalty: 10000},
			{Name: "non-aviation rate", Prefix: "A", Negate: true, Penalty: 10000},
			{Name: "chief", Suffixes: []string{"C", "CS", "CM"}, Penalty: 5000},
			{Name: "master chief", Suffixes: []string{"CM"}, Penalty: 5000},
			{Name: "command master chief", Suffixes: []string{"CMD"}, Penalty: 10000},
		},
		PriorityRoles: []string{"SFF", "Chief", "F/S QAR"},
		PriorityBonus: -1000,
	}
}

// Validate checks that bands ascend and that every rate rule can match.
func (w Weights) Validate() error {
	for i := 1; i < len(w.Rotation); i++ {
		if w.Rotation[i].Below <= w.Rotation[i-1].Below {
			return errors.New(errors.ErrCodeInvalidConfig,
				"rotation bands must ascend: %d follows %d", w.Rotation[i].Below, w.Rotation[i-1].Below)
		}
	}
	for i, r := range w.Rates {
		name := r.Name
		if name == "" {
			name = fmt.Sprintf("#%d", i+1)
		}
		switch {
		case r.Prefix == "" && len(r.Suffixes) == 0:
			return errors.New(errors.ErrCodeInvalidConfig, "rate rule %s needs a prefix or suffixes", name)
		case r.Prefix != "" && len(r.Suffixes) > 0:
			return errors.New(errors.ErrCodeInvalidConfig, "rate rule %s cannot set both prefix and suffixes", name)
		}
		for _, s := range r.Suffixes {
			if s == "" {
				return errors.New(errors.ErrCodeInvalidConfig, "rate rule %s has an empty suffix", name)
			}
		}
	}
	return nil
}
