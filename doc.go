// Package cvrp is an approximate solver for the Capacitated Vehicle Routing
// Problem: a depot, customers with demands, and a fleet of identical
// vehicles. Customers are split into at most one route per vehicle, every
// route starts and ends at the depot, and no route carries more than the
// vehicle capacity. Total travel distance is minimised.
//
// Pipeline:
//
//	Instance ─► distance.Graph ─► christofides.Tour ─► partition.Partition
//	         ─► search.Run (iterated local search) ─► plan.Polish ─► vrp.Solution
//
// Packages:
//
//	vrp/            clients, instances, instance loader, solution writers
//	distance/       dense Euclidean matrix, neighbour ranking, proximity
//	pair/           unordered pair used as an undirected edge key
//	matching/       minimum-weight perfect matching (Edmonds blossom, exact DP)
//	christofides/   MST, odd vertices, Eulerian circuit, shortcut
//	partition/      first-fit route split over every tour rotation
//	plan/           routing plan: cost, feasibility, insertion, removal, moves
//	search/         iterated local search with pluggable acceptance
//	rng/            seeded, injectable randomness
//	solver/         end-to-end Solve with logging and metrics
//	metrics/        Prometheus collectors and textfile export
//	config/         flags, CVRP_* environment and YAML configuration
//	cmd/cvrp/       command-line entry point
//
// Quick start:
//
//	inst, err := vrp.LoadFile("A-n32-k5.vrp")
//	if err != nil { … }
//	sol, err := solver.Solve(ctx, inst, solver.Options{Seed: 1})
//	if err != nil { … }
//	fmt.Println(sol.Summary())
//
// Or from the shell:
//
//	go run ./cmd/cvrp --timeout 30 --output-dir out/ instances/*.vrp
package cvrp
