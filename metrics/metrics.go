// Package metrics exports solver progress as Prometheus metrics.
//
// All collectors live on a dedicated registry, never the global default, so
// several solvers (and tests) can coexist in one process. The registry can be
// dumped in the text exposition format with WriteTextfile, which suits batch
// runs collected by node_exporter's textfile collector.
package metrics

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/katalvlaran/cvrp/plan"
	"github.com/katalvlaran/cvrp/search"
)

// Namespace prefixes every metric name.
const Namespace = "cvrp"

// Move outcome label values.
const (
	OutcomeApplied       = "applied"
	OutcomeNoImprovement = "no_improvement"
	OutcomeCapacity      = "capacity"
	OutcomeInvalid       = "invalid"
	OutcomeOther         = "other"
)

// Metrics owns the registry and the solver collectors.
type Metrics struct {
	registry *prometheus.Registry

	Moves        *prometheus.CounterVec   // moves by kind and outcome
	Improvements *prometheus.CounterVec   // new best plans by instance
	BestCost     *prometheus.GaugeVec     // best cost by instance
	Solves       *prometheus.CounterVec   // finished solves by status
	SolveSeconds *prometheus.HistogramVec // wall time per solve by stage
}

// New creates a registry with Go runtime and process collectors plus the
// solver collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &Metrics{registry: reg}
	m.Moves = m.newCounterVec(prometheus.CounterOpts{
		Name: "search_moves_total",
		Help: "Local search moves attempted, by move kind and outcome.",
	}, []string{"move", "outcome"})
	m.Improvements = m.newCounterVec(prometheus.CounterOpts{
		Name: "search_improvements_total",
		Help: "Times the best plan was replaced, by instance.",
	}, []string{"instance"})
	m.BestCost = m.newGaugeVec(prometheus.GaugeOpts{
		Name: "search_best_cost",
		Help: "Cost of the best plan found so far, by instance.",
	}, []string{"instance"})
	m.Solves = m.newCounterVec(prometheus.CounterOpts{
		Name: "solves_total",
		Help: "Finished solves by status (ok, error).",
	}, []string{"status"})
	m.SolveSeconds = m.newHistogramVec(prometheus.HistogramOpts{
		Name:    "solve_stage_duration_seconds",
		Help:    "Wall time spent per pipeline stage.",
		Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
	}, []string{"stage"})

	return m
}

func (m *Metrics) newCounterVec(opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	opts.Namespace = Namespace
	cv := prometheus.NewCounterVec(opts, labels)
	m.registry.MustRegister(cv)

	return cv
}

func (m *Metrics) newGaugeVec(opts prometheus.GaugeOpts, labels []string) *prometheus.GaugeVec {
	opts.Namespace = Namespace
	gv := prometheus.NewGaugeVec(opts, labels)
	m.registry.MustRegister(gv)

	return gv
}

func (m *Metrics) newHistogramVec(opts prometheus.HistogramOpts, labels []string) *prometheus.HistogramVec {
	opts.Namespace = Namespace
	hv := prometheus.NewHistogramVec(opts, labels)
	m.registry.MustRegister(hv)

	return hv
}

// Registry exposes the underlying registry, e.g. for promhttp.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Observer returns a search.Observer recording into m under instance.
// It is safe to use from concurrent solves.
func (m *Metrics) Observer(instance string) search.Observer {
	return &observer{m: m, instance: instance}
}

// ObserveStage records how long a pipeline stage took.
func (m *Metrics) ObserveStage(stage string, d time.Duration) {
	m.SolveSeconds.WithLabelValues(stage).Observe(d.Seconds())
}

// ObserveSolve counts a finished solve.
func (m *Metrics) ObserveSolve(err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.Solves.WithLabelValues(status).Inc()
}

// WriteTextfile writes every registered metric to path in the text
// exposition format.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("metrics: write textfile: %w", err)
	}

	return nil
}

type observer struct {
	m        *Metrics
	instance string
}

func (o *observer) Iteration(kind search.MoveKind, err error) {
	o.m.Moves.WithLabelValues(kind.String(), Outcome(err)).Inc()
}

func (o *observer) Improvement(cost float64) {
	o.m.Improvements.WithLabelValues(o.instance).Inc()
	o.m.BestCost.WithLabelValues(o.instance).Set(cost)
}

// Outcome maps a move error to its label value.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeApplied
	case errors.Is(err, plan.ErrNoImprovement):
		return OutcomeNoImprovement
	case errors.Is(err, plan.ErrCapacityExceeded):
		return OutcomeCapacity
	case errors.Is(err, plan.ErrInvalidArguments), errors.Is(err, plan.ErrInvalidTour):
		return OutcomeInvalid
	default:
		return OutcomeOther
	}
}
