// Package solver wires the full CVRP pipeline: Christofides tour, route
// partition, iterated local search and an optional 2-opt polish.
//
// Solve is safe to call concurrently for different instances as long as each
// call gets its own random source (the default derives one from Seed).
package solver

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/katalvlaran/cvrp/christofides"
	"github.com/katalvlaran/cvrp/matching"
	"github.com/katalvlaran/cvrp/metrics"
	"github.com/katalvlaran/cvrp/partition"
	"github.com/katalvlaran/cvrp/rng"
	"github.com/katalvlaran/cvrp/search"
	"github.com/katalvlaran/cvrp/vrp"
)

// ProgressInterval bounds how often improvements are logged at info level.
const ProgressInterval = time.Second

// Options configures Solve. The zero value solves with the blossom matcher,
// a ten second random walk and the default seed.
type Options struct {
	Matcher christofides.Matcher // nil means matching.Blossom{}
	Search  search.Options       // no budget at all means search.DefaultTimeLimit
	Polish  bool                 // 2-opt every route of the best plan
	Seed    int64                // used when Rand is nil
	Rand    rng.Source           // overrides Seed
	Logger  logrus.FieldLogger   // nil means logrus.StandardLogger()
	Metrics *metrics.Metrics     // optional
}

// Solve runs the pipeline on inst and returns its best solution.
//
// Errors wrap christofides.ErrImperfectMatching,
// partition.ErrNoFeasiblePartition or the search input errors. Running out
// of time is not an error.
func Solve(ctx context.Context, inst *vrp.Instance, opts Options) (*vrp.Solution, error) {
	start := time.Now()
	runID := uuid.NewString()

	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	log := logger.WithFields(logrus.Fields{"run_id": runID, "instance": inst.Name})

	matcher := opts.Matcher
	if matcher == nil {
		matcher = matching.Blossom{}
	}
	rnd := opts.Rand
	if rnd == nil {
		rnd = rng.New(opts.Seed)
	}
	searchOpts := opts.Search
	if searchOpts.TimeLimit == 0 && searchOpts.MaxIterations == 0 {
		if _, ok := ctx.Deadline(); !ok {
			searchOpts.TimeLimit = search.DefaultTimeLimit
		}
	}

	log.WithFields(logrus.Fields{
		"customers": inst.NumCustomers,
		"vehicles":  inst.NumVehicles,
		"capacity":  inst.Capacity,
	}).Info("solve started")

	stage := time.Now()
	built, err := christofides.Construct(inst.Graph, matcher)
	if err != nil {
		opts.observeSolve(err)
		return nil, fmt.Errorf("solver: construct tour: %w", err)
	}
	opts.observeStage("tour", time.Since(stage))
	log.WithFields(logrus.Fields{
		"mst_weight": christofides.Weight(inst.Graph, built.MST),
		"odd":        len(built.Odd),
		"circuit":    len(built.Circuit),
	}).Debug("christofides tour built")

	stage = time.Now()
	initial, err := partition.Partition(inst, built.Tour)
	if err != nil {
		opts.observeSolve(err)
		return nil, fmt.Errorf("solver: partition tour: %w", err)
	}
	opts.observeStage("partition", time.Since(stage))
	log.WithField("cost", initial.Value(inst)).Info("initial plan")

	searchOpts.Observer = observers(searchOpts.Observer, opts.metricsObserver(inst.Name), newProgress(log))

	stage = time.Now()
	res, err := search.Run(ctx, inst, initial, rnd, searchOpts)
	if err != nil {
		opts.observeSolve(err)
		return nil, fmt.Errorf("solver: search: %w", err)
	}
	opts.observeStage("search", time.Since(stage))
	log.WithFields(logrus.Fields{
		"iterations":   res.Iterations,
		"improvements": res.Improvements,
		"restarts":     res.Restarts,
		"cost":         res.Cost,
	}).Info("search finished")

	best, cost := res.Best, res.Cost
	if opts.Polish {
		if gain := best.Polish(inst); gain > 0 {
			cost = best.Value(inst)
			log.WithFields(logrus.Fields{"gain": gain, "cost": cost}).Info("2-opt polish")
		}
	}

	sol := &vrp.Solution{
		RunID:    runID,
		Instance: inst.Name,
		Elapsed:  time.Since(start),
		Cost:     cost,
		Routes:   best.Routes(),
	}
	opts.observeSolve(nil)

	return sol, nil
}

func (o Options) observeStage(name string, d time.Duration) {
	if o.Metrics != nil {
		o.Metrics.ObserveStage(name, d)
	}
}

func (o Options) observeSolve(err error) {
	if o.Metrics != nil {
		o.Metrics.ObserveSolve(err)
	}
}

func (o Options) metricsObserver(instance string) search.Observer {
	if o.Metrics == nil {
		return nil
	}

	return o.Metrics.Observer(instance)
}

// progress logs improvements, at most one per ProgressInterval at info level.
type progress struct {
	log       logrus.FieldLogger
	sometimes *rate.Sometimes
}

func newProgress(log logrus.FieldLogger) *progress {
	return &progress{log: log, sometimes: &rate.Sometimes{First: 1, Interval: ProgressInterval}}
}

func (p *progress) Iteration(search.MoveKind, error) {}

func (p *progress) Improvement(cost float64) {
	p.sometimes.Do(func() { p.log.WithField("cost", cost).Info("new best plan") })
}

// fanout forwards events to several observers.
type fanout []search.Observer

func observers(all ...search.Observer) search.Observer {
	var f fanout
	for _, o := range all {
		if o != nil {
			f = append(f, o)
		}
	}

	return f
}

func (f fanout) Iteration(kind search.MoveKind, err error) {
	for _, o := range f {
		o.Iteration(kind, err)
	}
}

func (f fanout) Improvement(cost float64) {
	for _, o := range f {
		o.Improvement(cost)
	}
}
