package plan

import (
	"fmt"

	"github.com/katalvlaran/cvrp/rng"
	"github.com/katalvlaran/cvrp/vrp"
)

// InterRelocate moves customer c to a uniformly chosen different route, at
// that route's lowest-cost position.
//
// Errors (plan unchanged):
//   - ErrInvalidTour if c is on no route;
//   - ErrInvalidArguments if the plan has fewer than two routes;
//   - ErrCapacityExceeded if the target route cannot carry c.
func (p *Plan) InterRelocate(inst *vrp.Instance, c int, rnd rng.Source) error {
	src, pos, ok := p.Locate(c)
	if !ok {
		return fmt.Errorf("%w: customer %d not on any route", ErrInvalidTour, c)
	}
	if len(p.routes) < 2 {
		return fmt.Errorf("%w: relocation needs two routes", ErrInvalidArguments)
	}

	dst := rnd.Intn(len(p.routes) - 1)
	if dst >= src {
		dst++
	}
	if p.Load(inst, dst)+inst.Demand(c) > inst.Capacity {
		return ErrCapacityExceeded
	}

	p.removeAt(src, pos)
	at, _ := p.LowestCostPosition(inst, c, dst)
	p.insertAt(dst, at, c)

	return nil
}

// InterExchange swaps customers a and b between their routes: each is
// removed and reinserted at the lowest-cost position of the other's route.
//
// Errors (plan unchanged):
//   - ErrInvalidTour if either client is on no route;
//   - ErrInvalidArguments if both are on the same route;
//   - ErrCapacityExceeded if either route would be overloaded after the swap.
func (p *Plan) InterExchange(inst *vrp.Instance, a, b int) error {
	ra, pa, okA := p.Locate(a)
	rb, pb, okB := p.Locate(b)
	if !okA || !okB {
		return fmt.Errorf("%w: customers %d, %d", ErrInvalidTour, a, b)
	}
	if ra == rb {
		return fmt.Errorf("%w: customers %d and %d share route %d", ErrInvalidArguments, a, b, ra)
	}
	da, db := inst.Demand(a), inst.Demand(b)
	if p.Load(inst, ra)-da+db > inst.Capacity || p.Load(inst, rb)-db+da > inst.Capacity {
		return ErrCapacityExceeded
	}

	p.removeAt(ra, pa)
	p.removeAt(rb, pb)
	at, _ := p.LowestCostPosition(inst, a, rb)
	p.insertAt(rb, at, a)
	at, _ = p.LowestCostPosition(inst, b, ra)
	p.insertAt(ra, at, b)

	return nil
}

// IntraRelocate removes c and reinserts it at the cheapest position of its
// own route. It returns ErrNoImprovement when that position is the one c
// already held, and ErrInvalidTour if c is on no route.
func (p *Plan) IntraRelocate(inst *vrp.Instance, c int) error {
	r, pos, ok := p.Locate(c)
	if !ok {
		return fmt.Errorf("%w: customer %d not on any route", ErrInvalidTour, c)
	}

	p.removeAt(r, pos)
	at, _ := p.LowestCostPosition(inst, c, r)
	p.insertAt(r, at, c)
	if at == pos {
		return ErrNoImprovement
	}

	return nil
}

// IntraExchange swaps the positions of a and b within their shared route.
// Applying it twice restores the plan.
//
// Errors (plan unchanged): ErrInvalidTour if either is on no route,
// ErrInvalidArguments if they are on different routes or are the same client.
func (p *Plan) IntraExchange(a, b int) error {
	ra, pa, okA := p.Locate(a)
	rb, pb, okB := p.Locate(b)
	if !okA || !okB {
		return fmt.Errorf("%w: customers %d, %d", ErrInvalidTour, a, b)
	}
	if ra != rb {
		return fmt.Errorf("%w: customers %d and %d on routes %d and %d", ErrInvalidArguments, a, b, ra, rb)
	}
	if pa == pb {
		return fmt.Errorf("%w: customer %d exchanged with itself", ErrInvalidArguments, a)
	}

	p.routes[ra][pa], p.routes[ra][pb] = p.routes[ra][pb], p.routes[ra][pa]

	return nil
}
