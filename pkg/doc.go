// Package pkg provides the core libraries for Dutyflow duty-roster assignment.
//
// # Overview
//
// Dutyflow assigns qualified people to the positions a set of teams require.
// Each candidate pairing is scored by a cost model, and a min-cost max-flow
// solve fills as many positions as possible at the lowest total cost.
//
// # Architecture
//
// The typical data flow:
//
//	Requirements + roster (CSV, XLSX) or a save state (JSON)
//	         ↓
//	    [ingest] package (parse and normalize sources)
//	         ↓
//	    [solver] package (prefilter locks, build the flow network)
//	         ↓
//	    [flow] package (successive shortest paths)
//	         ↓
//	    [roster] Plan (assignments, vacancies, statistics)
//	         ↓
//	    [io] package (CSV, JSON, YAML export)
//
// # Quick Start
//
// Solve an input directly:
//
//	plan, err := solver.Run(solver.Input{
//	    People:       people,
//	    Teams:        teams,
//	    AnalysisDate: roster.Today(),
//	})
//
// Or through the cached pipeline used by the CLI and API:
//
//	runner := pipeline.NewRunner(cache.NewMemoryCache(), nil, logger)
//	result, err := runner.Solve(ctx, pipeline.Options{Input: in})
//
// # Main Packages
//
// [roster] - Domain types: people, teams, positions, locks and plans.
//
// [cost] - Weighted cost model and per-factor explanations.
//
// [flow] - Flow graph and min-cost max-flow, with [flow/heap] as the
// priority queue behind Dijkstra.
//
// [solver] - Builds the person → role → team network and turns flow into a
// plan.
//
// [pipeline] - Cached solve and what-if orchestration.
//
// [ingest], [io] - Input parsing, save states and plan export.
//
// [cache], [session] - Plan cache and workspace storage backends.
//
// [config], [errors], [observability], [httputil], [render/network] -
// Supporting infrastructure.
package pkg
