package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/dutyflow/pkg/cache"
	"github.com/matzehuels/dutyflow/pkg/ingest"
	"github.com/matzehuels/dutyflow/pkg/observability"
	"github.com/matzehuels/dutyflow/pkg/roster"
	"github.com/matzehuels/dutyflow/pkg/solver"
)

// Runner encapsulates solving with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store results. Multiple goroutines can safely use the same Runner with
// different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL is how long solved plans are cached; cache.TTLPlan when zero.
	TTL time.Duration

	// Parallelism bounds concurrent what-if solves; DefaultParallelism
	// when zero.
	Parallelism int
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Ingest loads people and teams from the input files.
func (r *Runner) Ingest(ctx context.Context, src ingest.Sources) (*ingest.Dataset, error) {
	start := time.Now()
	ds, err := ingest.Load(ctx, src, r.Logger)
	elapsed := time.Since(start)
	if err != nil {
		observability.Solver().OnIngestComplete(ctx, 0, 0, elapsed, err)
		return nil, err
	}
	observability.Solver().OnIngestComplete(ctx, len(ds.People), len(ds.Teams), elapsed, nil)
	r.Logger.Info("loaded inputs",
		"people", len(ds.People),
		"teams", len(ds.Teams),
		"roles", roleCount(ds.Teams),
		"duration", elapsed)
	return ds, nil
}

// Solve computes the plan for opts, serving it from the cache when an
// identical input was solved before.
func (r *Runner) Solve(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{InputHash: cache.InputHash(opts.Input)}
	cacheKey := r.Keyer.PlanKey(result.InputHash, opts.PlanKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if plan, ok := r.cachedPlan(ctx, cacheKey); ok {
			observability.Cache().OnCacheHit(ctx, "plan")
			result.Plan = plan
			result.CacheInfo.PlanHit = true
			r.Logger.Debug("plan served from cache", "key", cacheKey)
			return result, nil
		}
		observability.Cache().OnCacheMiss(ctx, "plan")
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	observability.Solver().OnSolveStart(ctx, len(opts.People), roleCount(opts.Teams))
	start := time.Now()
	plan, err := solver.Run(opts.Input, opts.solverOptions()...)
	result.Stats.SolveTime = time.Since(start)
	if err != nil {
		observability.Solver().OnSolveComplete(ctx, 0, 0, result.Stats.SolveTime, err)
		return nil, err
	}
	observability.Solver().OnSolveComplete(ctx, plan.Flow, plan.TotalCost, result.Stats.SolveTime, nil)
	result.Plan = plan

	r.Logger.Info("solved assignments",
		"date", opts.AnalysisDate,
		"assigned", plan.Stats.Assigned,
		"unfilled", plan.Stats.Unfilled,
		"unassigned", plan.Stats.Unassigned,
		"cost", plan.TotalCost,
		"duration", result.Stats.SolveTime)

	if data, err := json.Marshal(plan); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, r.ttl()); err != nil {
			r.Logger.Warn("cache write failed", "error", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "plan", len(data))
		}
	}
	return result, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) cachedPlan(ctx context.Context, key string) (*roster.Plan, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "error", err)
		return nil, false
	}
	if !hit {
		return nil, false
	}
	var plan roster.Plan
	if err := json.Unmarshal(data, &plan); err != nil {
		return nil, false
	}
	return &plan, true
}

func (r *Runner) ttl() time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return cache.TTLPlan
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
