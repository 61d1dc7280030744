// Package partition cuts a closed client tour into capacity-feasible routes.
//
// Every rotation of the depot-free tour is split greedily (first fit, in
// vehicle order) and the cheapest feasible split becomes the initial plan of
// the search. Rotations that leave a customer unplaced are skipped.
package partition

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/cvrp/plan"
	"github.com/katalvlaran/cvrp/vrp"
)

// ErrNoFeasiblePartition is returned when no rotation of the tour fits the fleet.
var ErrNoFeasiblePartition = errors.New("partition: no feasible partition")

// ErrInvalidTour is returned for a tour that is not a closed depot cycle.
var ErrInvalidTour = errors.New("partition: tour must start and end at the depot")

// Split assigns customers of order, in sequence, to the first of
// inst.NumVehicles route slots whose remaining capacity fits them.
// It returns false if some customer fits no slot.
//
// Complexity: O(N·K) for K vehicles.
func Split(inst *vrp.Instance, order []int) ([][]int, bool) {
	routes := make([][]int, inst.NumVehicles)
	loads := make([]int, inst.NumVehicles)
	for _, c := range order {
		d := inst.Demand(c)
		placed := false
		for v := range routes {
			if loads[v]+d <= inst.Capacity {
				routes[v] = append(routes[v], c)
				loads[v] += d
				placed = true
				break
			}
		}
		if !placed {
			return routes, false
		}
	}

	return routes, true
}

// Partition strips the depot from both ends of tour and tries one split per
// rotation of the remaining customers, rotating left after every attempt.
// The strictly cheapest feasible plan wins; ties keep the earlier rotation.
//
// Errors: ErrInvalidTour for a tour that is not depot-closed,
// ErrNoFeasiblePartition when every rotation fails.
//
// Complexity: O(N²·K).
func Partition(inst *vrp.Instance, tour []int) (*plan.Plan, error) {
	if len(tour) < 2 || tour[0] != vrp.Depot || tour[len(tour)-1] != vrp.Depot {
		return nil, ErrInvalidTour
	}
	order := append([]int(nil), tour[1:len(tour)-1]...)

	var (
		best     *plan.Plan
		bestCost float64
		lastErr  error
	)
	attempts := len(order)
	if attempts == 0 {
		attempts = 1
	}
	for i := 0; i < attempts; i++ {
		if routes, ok := Split(inst, order); ok {
			candidate := plan.New(routes)
			if err := candidate.Feasible(inst); err != nil {
				lastErr = err
			} else if cost := candidate.Value(inst); best == nil || cost < bestCost {
				best, bestCost = candidate, cost
			}
		}
		rotateLeft(order)
	}

	if best == nil {
		if lastErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrNoFeasiblePartition, lastErr)
		}

		return nil, ErrNoFeasiblePartition
	}

	return best, nil
}

func rotateLeft(s []int) {
	if len(s) < 2 {
		return
	}
	first := s[0]
	copy(s, s[1:])
	s[len(s)-1] = first
}
