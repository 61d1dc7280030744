package plan

import (
	"errors"
	"fmt"

	"github.com/samber/lo"

	"github.com/katalvlaran/cvrp/vrp"
)

var (
	// ErrTooManyRoutes means the plan has more routes than vehicles.
	ErrTooManyRoutes = errors.New("plan: more routes than vehicles")

	// ErrInvalidTour means a customer is duplicated, missing, out of range,
	// the depot appears inside a route, or a named client is on no route.
	ErrInvalidTour = errors.New("plan: invalid tour")

	// ErrCapacityExceeded means a route's demand exceeds vehicle capacity.
	ErrCapacityExceeded = errors.New("plan: vehicle capacity exceeded")

	// ErrInvalidArguments reports move misuse.
	ErrInvalidArguments = errors.New("plan: invalid arguments")

	// ErrNoImprovement reports a move that found nothing better to do.
	ErrNoImprovement = errors.New("plan: no improvement")
)

// Plan is an ordered list of routes of customer ids, depot implicit.
type Plan struct {
	routes [][]int
}

// New returns a plan owning a deep copy of routes.
func New(routes [][]int) *Plan {
	p := &Plan{routes: make([][]int, len(routes))}
	for i, r := range routes {
		p.routes[i] = append([]int(nil), r...)
	}

	return p
}

// Clone returns an independent deep copy.
func (p *Plan) Clone() *Plan { return New(p.routes) }

// Routes returns a deep copy of the routes.
func (p *Plan) Routes() [][]int { return p.Clone().routes }

// Route returns a copy of route r.
func (p *Plan) Route(r int) []int { return append([]int(nil), p.routes[r]...) }

// NumRoutes returns the number of route slots, empty ones included.
func (p *Plan) NumRoutes() int { return len(p.routes) }

// Customers returns every assigned customer in route order.
func (p *Plan) Customers() []int { return lo.Flatten(p.routes) }

// Locate returns the route and position holding client c.
func (p *Plan) Locate(c int) (route, pos int, ok bool) {
	for r, rt := range p.routes {
		if i := lo.IndexOf(rt, c); i >= 0 {
			return r, i, true
		}
	}

	return -1, -1, false
}

// Load returns the summed demand of route r.
func (p *Plan) Load(inst *vrp.Instance, r int) int {
	return lo.SumBy(p.routes[r], inst.Demand)
}

// RouteValue returns the length of route r including both depot legs.
// An empty route costs zero.
func (p *Plan) RouteValue(inst *vrp.Instance, r int) float64 {
	return routeLength(inst, p.routes[r])
}

// Value returns the total travel distance of the plan.
//
// Complexity: O(N).
func (p *Plan) Value(inst *vrp.Instance) float64 {
	var total float64
	for _, rt := range p.routes {
		total += routeLength(inst, rt)
	}

	return total
}

func routeLength(inst *vrp.Instance, rt []int) float64 {
	if len(rt) == 0 {
		return 0
	}
	sum := inst.Distance(vrp.Depot, rt[0])
	for i := 1; i < len(rt); i++ {
		sum += inst.Distance(rt[i-1], rt[i])
	}

	return sum + inst.Distance(rt[len(rt)-1], vrp.Depot)
}

// Feasible validates the plan against inst. It returns nil or the first
// violated invariant, checked in order:
//   - ErrTooManyRoutes: more route slots than vehicles;
//   - ErrInvalidTour: depot, out-of-range, duplicate or missing customer;
//   - ErrCapacityExceeded: some route's demand exceeds capacity.
//
// Complexity: O(N).
func (p *Plan) Feasible(inst *vrp.Instance) error {
	if len(p.routes) > inst.NumVehicles {
		return fmt.Errorf("%w: %d routes, %d vehicles", ErrTooManyRoutes, len(p.routes), inst.NumVehicles)
	}

	seen := make([]bool, inst.NumCustomers+1)
	visited := 0
	for r, rt := range p.routes {
		for _, c := range rt {
			if !inst.IsCustomer(c) {
				return fmt.Errorf("%w: route %d holds non-customer %d", ErrInvalidTour, r, c)
			}
			if seen[c] {
				return fmt.Errorf("%w: customer %d visited twice", ErrInvalidTour, c)
			}
			seen[c] = true
			visited++
		}
	}
	if visited != inst.NumCustomers {
		return fmt.Errorf("%w: %d of %d customers visited", ErrInvalidTour, visited, inst.NumCustomers)
	}

	for r := range p.routes {
		if load := p.Load(inst, r); load > inst.Capacity {
			return fmt.Errorf("%w: route %d carries %d of %d", ErrCapacityExceeded, r, load, inst.Capacity)
		}
	}

	return nil
}

// insertAt places c at position pos of route r.
func (p *Plan) insertAt(r, pos, c int) {
	rt := append(p.routes[r], 0)
	copy(rt[pos+1:], rt[pos:])
	rt[pos] = c
	p.routes[r] = rt
}

// removeAt deletes the client at position pos of route r and returns it.
func (p *Plan) removeAt(r, pos int) int {
	c := p.routes[r][pos]
	p.routes[r] = append(p.routes[r][:pos], p.routes[r][pos+1:]...)

	return c
}
