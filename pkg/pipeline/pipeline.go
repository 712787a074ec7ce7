// Package pipeline runs the ingest → solve flow shared by the CLI and the
// HTTP API.
//
// A [Runner] wraps [solver.Run] with plan caching, logging and
// observability hooks, so both entry points behave identically. Plans are
// cached under a hash of the full solver input and the cost weights; a
// repeated request for the same roster returns the stored plan.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Solve(ctx, pipeline.Options{
//	    Input: solver.Input{People: people, Teams: teams, AnalysisDate: at},
//	})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(result.Plan.TotalCost, result.CacheInfo.PlanHit)
//
// Compare several analysis dates concurrently:
//
//	scenarios, err := runner.WhatIf(ctx, opts, []roster.Date{d1, d2, d3})
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/dutyflow/pkg/cache"
	"github.com/matzehuels/dutyflow/pkg/cost"
	"github.com/matzehuels/dutyflow/pkg/errors"
	"github.com/matzehuels/dutyflow/pkg/roster"
	"github.com/matzehuels/dutyflow/pkg/solver"
)

// DefaultParallelism bounds concurrent what-if solves when the runner sets
// no limit.
const DefaultParallelism = 4

// Options configures one solve. The embedded input is serialized inline, so
// an API request body is the solver input plus the option fields.
type Options struct {
	solver.Input

	// Weights overrides the default cost weights.
	Weights *cost.Weights `json:"weights,omitempty"`

	// MaxIterations overrides the augmentation limit; zero keeps the default.
	MaxIterations int `json:"max_iterations,omitempty"`

	// Refresh skips the cache lookup. The new plan is still stored.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	model     *cost.Model
	validated bool
}

// Result contains the outputs of a solve.
type Result struct {
	Plan *roster.Plan

	// InputHash is the content hash of the solver input.
	InputHash string

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains solve timing.
type Stats struct {
	SolveTime time.Duration
}

// CacheInfo tracks whether the plan came from the cache.
type CacheInfo struct {
	PlanHit bool
}

// ValidateAndSetDefaults checks the options and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.MaxIterations < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "max_iterations must not be negative")
	}
	if o.AnalysisDate.IsZero() {
		o.AnalysisDate = roster.Today()
	}

	w := cost.DefaultWeights()
	if o.Weights != nil {
		w = *o.Weights
	}
	m, err := cost.NewModel(w)
	if err != nil {
		return err
	}
	o.model = m
	o.Weights = &w

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// PlanKeyOpts returns cache key options for the solve.
func (o *Options) PlanKeyOpts() cache.PlanKeyOpts {
	opts := cache.PlanKeyOpts{MaxIterations: o.MaxIterations}
	if o.Weights != nil {
		opts.Weights = *o.Weights
	}
	return opts
}

func (o *Options) solverOptions() []solver.Option {
	return []solver.Option{
		solver.WithModel(o.model),
		solver.WithLogger(o.Logger),
		solver.WithMaxIterations(o.MaxIterations),
	}
}

func roleCount(teams []roster.Team) int {
	n := 0
	for _, t := range teams {
		n += len(t.Positions)
	}
	return n
}
