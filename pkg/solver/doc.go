// Package solver assigns people to team positions by solving a min-cost
// max-flow problem.
//
// # Network
//
// Each solve builds a fresh four-layer network:
//
//	source -> person -> role -> team -> sink
//
// Source edges give each person one unit of capacity. A person connects to
// every role whose qualification they hold, at the cost the [cost.Model]
// assigns to that pairing. Each role passes one unit to its team, and each
// team passes at most its open position count to the sink. The maximum flow
// therefore fills as many positions as possible, and among those fillings
// the total cost is minimal.
//
// Nodes are added in input order: people, then roles in team and position
// order, then teams. Together with the deterministic path search in
// [flow.Graph.MinCostMaxFlow] this makes identical inputs produce identical
// pairings.
//
// # Locks
//
// [Prefilter] applies [roster.AssignmentLock] values before the network is
// built. Pinned people and their roles are removed and reported as manual
// assignments; excluded people are removed entirely. The network itself
// never sees a lock.
//
// # Usage
//
//	plan, err := solver.Run(solver.Input{
//	    People:       people,
//	    Teams:        teams,
//	    Locks:        locks,
//	    AnalysisDate: roster.Today(),
//	})
package solver
