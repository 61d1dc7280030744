package plan

import (
	"fmt"

	"github.com/katalvlaran/cvrp/vrp"
)

// Removal selects how Remove chooses the clients to take out.
type Removal int

const (
	// SequentialRemoval removes consecutive customers starting at the client.
	SequentialRemoval Removal = iota
	// ConcentricRemoval removes the client and its nearest customers.
	ConcentricRemoval
)

// String implements fmt.Stringer.
func (h Removal) String() string {
	switch h {
	case SequentialRemoval:
		return "sequential"
	case ConcentricRemoval:
		return "concentric"
	default:
		return fmt.Sprintf("Removal(%d)", int(h))
	}
}

// Remove takes up to size customers out of the plan, anchored at c, and
// returns them in removal order.
//
//   - SequentialRemoval: c and the customers after it on its route, at most
//     size, bounded by the end of the route.
//   - ConcentricRemoval: c plus its size−1 nearest customers by the graph
//     ranking; neighbours already off the plan are skipped.
//
// Errors: ErrInvalidArguments for size < 1 or an unknown strategy,
// ErrInvalidTour if c is not on any route.
func (p *Plan) Remove(inst *vrp.Instance, c, size int, how Removal) ([]int, error) {
	if size < 1 {
		return nil, fmt.Errorf("%w: removal size %d", ErrInvalidArguments, size)
	}
	r, pos, ok := p.Locate(c)
	if !ok {
		return nil, fmt.Errorf("%w: customer %d not on any route", ErrInvalidTour, c)
	}

	switch how {
	case SequentialRemoval:
		end := pos + size
		if end > len(p.routes[r]) {
			end = len(p.routes[r])
		}
		removed := append([]int(nil), p.routes[r][pos:end]...)
		p.routes[r] = append(p.routes[r][:pos], p.routes[r][end:]...)

		return removed, nil
	case ConcentricRemoval:
		removed := []int{p.removeAt(r, pos)}
		// Read the neighbour list in growing windows; skipped entries
		// (depot, customers already off the plan) widen the next window.
		seen, limit := 0, inst.Graph.Len()-1
		for k := size; len(removed) < size && seen < limit; k *= 2 {
			window := inst.Graph.Nearest(c, k)
			for _, nb := range window[seen:] {
				if len(removed) == size {
					break
				}
				if nb == vrp.Depot {
					continue
				}
				if nr, npos, found := p.Locate(nb); found {
					removed = append(removed, p.removeAt(nr, npos))
				}
			}
			seen = len(window)
		}

		return removed, nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrInvalidArguments, how)
	}
}
