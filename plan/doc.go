// Package plan implements the routing plan of a CVRP solve and every operator
// the search applies to it.
//
// A Plan is an ordered list of routes; each route is an ordered list of
// customer ids. The depot is never stored: it is the implicit first and last
// stop of every route. Empty routes are legal and cost nothing.
//
// Operators:
//   - Value / Feasible: cost and structural validation.
//   - Insert: cost-based or proximity-based (re)insertion.
//   - Remove: sequential or concentric removal.
//   - InterRelocate, InterExchange, IntraRelocate, IntraExchange: the four
//     neighborhood moves of the local search.
//   - TwoOpt: per-route first-improvement 2-opt polish.
//
// Error policy: operators never panic on unknown clients; they return
// ErrInvalidTour (client not on any route), ErrInvalidArguments (misuse such
// as a same-route inter exchange), ErrCapacityExceeded (move refused) or
// ErrNoImprovement. A move that returns an error leaves the plan unchanged.
//
// Concurrency: a Plan is not safe for concurrent mutation. Use Clone to hand
// snapshots to other goroutines.
package plan
