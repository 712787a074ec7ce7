package pipeline

import (
	"context"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/matzehuels/dutyflow/pkg/errors"
	"github.com/matzehuels/dutyflow/pkg/roster"
)

// Scenario is the outcome of solving one analysis date.
type Scenario struct {
	AnalysisDate roster.Date  `json:"analysis_date"`
	Plan         *roster.Plan `json:"plan"`
	CacheHit     bool         `json:"cache_hit"`
}

// WhatIf solves opts once per date, running up to Parallelism solves at a
// time, and returns the scenarios in the order of dates. The first failing
// date, in date order, determines the returned error.
func (r *Runner) WhatIf(ctx context.Context, opts Options, dates []roster.Date) ([]Scenario, error) {
	if len(dates) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "what-if needs at least one analysis date")
	}
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	size := r.Parallelism
	if size <= 0 {
		size = DefaultParallelism
	}
	pool, err := ants.NewPool(min(size, len(dates)))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "create solve pool")
	}
	defer pool.Release()

	out := make([]Scenario, len(dates))
	errs := make([]error, len(dates))
	var wg sync.WaitGroup
	for i, d := range dates {
		o := opts
		o.AnalysisDate = d
		wg.Add(1)
		task := func() {
			defer wg.Done()
			res, err := r.Solve(ctx, o)
			if err != nil {
				errs[i] = err
				return
			}
			out[i] = Scenario{AnalysisDate: d, Plan: res.Plan, CacheHit: res.CacheInfo.PlanHit}
		}
		if err := pool.Submit(task); err != nil {
			wg.Done()
			errs[i] = errors.Wrap(errors.ErrCodeInternal, err, "submit solve for %s", d)
		}
	}
	wg.Wait()

	for i, err := range errs {
		if err == nil {
			continue
		}
		code := errors.GetCode(err)
		if code == "" {
			code = errors.ErrCodeInternal
		}
		return nil, errors.Wrap(code, err, "what-if %s", dates[i])
	}
	r.Logger.Info("what-if complete", "scenarios", len(out), "workers", pool.Cap())
	return out, nil
}
