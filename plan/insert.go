package plan

import (
	"fmt"
	"math"

	"github.com/katalvlaran/cvrp/rng"
	"github.com/katalvlaran/cvrp/vrp"
)

// Insertion selects how Insert chooses the target route.
type Insertion int

const (
	// CostInsertion scans every route and position for the cheapest detour.
	CostInsertion Insertion = iota
	// DistanceInsertion picks the route with the best proximity score, then
	// the cheapest position within it.
	DistanceInsertion
)

// String implements fmt.Stringer.
func (h Insertion) String() string {
	switch h {
	case CostInsertion:
		return "cost"
	case DistanceInsertion:
		return "distance"
	default:
		return fmt.Sprintf("Insertion(%d)", int(h))
	}
}

// LowestCostPosition returns the position in route r where inserting c adds
// the least distance, and that added distance:
//
//	Δ = d(prev, c) + d(c, next) − d(prev, next)
//
// with the depot standing in for prev before the first stop and for next
// after the last. Ties keep the earliest position.
//
// Complexity: O(len(route)).
func (p *Plan) LowestCostPosition(inst *vrp.Instance, c, r int) (int, float64) {
	rt := p.routes[r]
	best, bestDelta := 0, math.Inf(1)
	for i := 0; i <= len(rt); i++ {
		prev, next := vrp.Depot, vrp.Depot
		if i > 0 {
			prev = rt[i-1]
		}
		if i < len(rt) {
			next = rt[i]
		}
		delta := inst.Distance(prev, c) + inst.Distance(c, next) - inst.Distance(prev, next)
		if delta < bestDelta {
			best, bestDelta = i, delta
		}
	}

	return best, bestDelta
}

// Insert places customer c into the plan using strategy how. Capacity is not
// checked; callers validate with Feasible. rnd is only consumed by
// DistanceInsertion.
//
// Errors: ErrInvalidArguments if c is not a customer, is already placed, or
// the plan has no routes.
func (p *Plan) Insert(inst *vrp.Instance, c int, how Insertion, rnd rng.Source) error {
	if !inst.IsCustomer(c) || len(p.routes) == 0 {
		return ErrInvalidArguments
	}
	if _, _, ok := p.Locate(c); ok {
		return fmt.Errorf("%w: customer %d already placed", ErrInvalidArguments, c)
	}

	switch how {
	case CostInsertion:
		bestRoute, bestPos, bestDelta := 0, 0, math.Inf(1)
		for r := range p.routes {
			pos, delta := p.LowestCostPosition(inst, c, r)
			if delta < bestDelta {
				bestRoute, bestPos, bestDelta = r, pos, delta
			}
		}
		p.insertAt(bestRoute, bestPos, c)
	case DistanceInsertion:
		if rnd == nil {
			return fmt.Errorf("%w: distance insertion needs a random source", ErrInvalidArguments)
		}
		bestRoute, bestScore := 0, math.Inf(1)
		total := len(p.Customers())
		for r, rt := range p.routes {
			score := inst.Graph.Proximity(c, rt, len(p.routes), total, rnd)
			if score < bestScore {
				bestRoute, bestScore = r, score
			}
		}
		pos, _ := p.LowestCostPosition(inst, c, bestRoute)
		p.insertAt(bestRoute, pos, c)
	default:
		return fmt.Errorf("%w: %v", ErrInvalidArguments, how)
	}

	return nil
}
