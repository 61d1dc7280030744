package search

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/katalvlaran/cvrp/plan"
	"github.com/katalvlaran/cvrp/rng"
	"github.com/katalvlaran/cvrp/vrp"
)

var (
	// ErrNoBudget is returned when neither a time limit, a context deadline
	// nor an iteration cap bounds the search.
	ErrNoBudget = errors.New("search: no time limit or iteration cap")

	// ErrInfeasibleStart is returned when the initial plan is infeasible.
	ErrInfeasibleStart = errors.New("search: initial plan is infeasible")
)

// DefaultTimeLimit is the wall-clock budget used by DefaultOptions.
const DefaultTimeLimit = 10 * time.Second

// MoveKind names a neighborhood move.
type MoveKind int

const (
	// InterRelocate moves a customer onto another route.
	InterRelocate MoveKind = iota
	// InterExchange swaps two customers on different routes.
	InterExchange
	// IntraRelocate moves a customer to its cheapest slot on its own route.
	IntraRelocate
	// IntraExchange swaps two customers on the same route.
	IntraExchange

	numMoveKinds
)

// MoveKinds lists every move kind in draw order.
var MoveKinds = []MoveKind{InterRelocate, InterExchange, IntraRelocate, IntraExchange}

// String implements fmt.Stringer.
func (k MoveKind) String() string {
	switch k {
	case InterRelocate:
		return "inter_relocate"
	case InterExchange:
		return "inter_exchange"
	case IntraRelocate:
		return "intra_relocate"
	case IntraExchange:
		return "intra_exchange"
	default:
		return fmt.Sprintf("MoveKind(%d)", int(k))
	}
}

// Observer receives search events. Implementations must be cheap; they are
// called synchronously from the search loop.
type Observer interface {
	// Iteration reports one applied move and its outcome (nil on success).
	Iteration(kind MoveKind, err error)
	// Improvement reports a new best cost.
	Improvement(cost float64)
}

type nopObserver struct{}

func (nopObserver) Iteration(MoveKind, error) {}
func (nopObserver) Improvement(float64)       {}

// Options configures Run.
type Options struct {
	// TimeLimit bounds wall-clock time; zero means no limit of its own.
	TimeLimit time.Duration
	// MaxIterations caps the number of moves; zero means unlimited.
	MaxIterations int
	// Acceptance decides when to restart from the best plan; nil means RandomWalk.
	Acceptance Acceptance
	// Observer receives progress events; nil disables them.
	Observer Observer
}

// DefaultOptions returns a ten second random walk.
func DefaultOptions() Options {
	return Options{TimeLimit: DefaultTimeLimit, Acceptance: RandomWalk{}}
}

// Result is the outcome of Run.
type Result struct {
	Best         *plan.Plan
	Cost         float64
	Iterations   int
	Improvements int
	Restarts     int
	Elapsed      time.Duration
}

// Run searches from initial until the budget is spent and returns the best
// feasible plan found. initial is never mutated. Exhausting the budget or
// cancelling ctx ends the search normally; errors are reserved for inputs
// that make searching meaningless.
//
// Complexity: O(N) per iteration plus the applied move.
func Run(ctx context.Context, inst *vrp.Instance, initial *plan.Plan, rnd rng.Source, opts Options) (Result, error) {
	start := time.Now()
	if initial == nil {
		return Result{}, ErrInfeasibleStart
	}
	if err := initial.Feasible(inst); err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrInfeasibleStart, err)
	}

	deadline, hasDeadline := ctx.Deadline()
	if opts.TimeLimit > 0 {
		if limit := start.Add(opts.TimeLimit); !hasDeadline || limit.Before(deadline) {
			deadline = limit
		}
		hasDeadline = true
	}
	if !hasDeadline && opts.MaxIterations <= 0 {
		return Result{}, ErrNoBudget
	}

	accept := opts.Acceptance
	if accept == nil {
		accept = RandomWalk{}
	}
	observer := opts.Observer
	if observer == nil {
		observer = nopObserver{}
	}

	reference := initial.Clone()
	res := Result{Best: initial.Clone()}
	res.Cost = res.Best.Value(inst)
	stale := 0

	for {
		if opts.MaxIterations > 0 && res.Iterations >= opts.MaxIterations {
			break
		}
		if ctx.Err() != nil {
			break
		}
		if hasDeadline && !time.Now().Before(deadline) {
			break
		}

		customers := reference.Customers()
		if len(customers) == 0 {
			break
		}
		kind := MoveKind(rnd.Intn(int(numMoveKinds)))
		a := customers[rnd.Intn(len(customers))]
		b := customers[rnd.Intn(len(customers))]

		err := apply(inst, reference, kind, a, b, rnd)
		observer.Iteration(kind, err)
		res.Iterations++

		stale++
		if err == nil {
			if cost := reference.Value(inst); cost < res.Cost && reference.Feasible(inst) == nil {
				res.Best = reference.Clone()
				res.Cost = cost
				res.Improvements++
				stale = 0
				observer.Improvement(cost)
			}
		}
		if accept.Restart(stale) {
			reference = res.Best.Clone()
			res.Restarts++
			stale = 0
		}
	}

	res.Elapsed = time.Since(start)

	return res, nil
}

// apply runs one move of the given kind on p.
func apply(inst *vrp.Instance, p *plan.Plan, kind MoveKind, a, b int, rnd rng.Source) error {
	switch kind {
	case InterRelocate:
		return p.InterRelocate(inst, a, rnd)
	case InterExchange:
		return p.InterExchange(inst, a, b)
	case IntraRelocate:
		return p.IntraRelocate(inst, a)
	case IntraExchange:
		return p.IntraExchange(a, b)
	default:
		return fmt.Errorf("%w: move %v", plan.ErrInvalidArguments, kind)
	}
}
