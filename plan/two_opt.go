package plan

import "github.com/katalvlaran/cvrp/vrp"

// twoOptEps is the minimum gain for a 2-opt move to be accepted.
const twoOptEps = 1e-9

// TwoOpt runs first-improvement 2-opt on route r, with the depot fixed at
// both ends, until no reversal shortens the route. It returns the total gain
// (old length − new length, never negative).
//
// For a reversal of positions [i..k] of the depot-wrapped route
// 0, c₁ … cₘ, 0 the change is
//
//	Δ = d(a,c) + d(b,e) − d(a,b) − d(c,e),   a=T[i−1], b=T[i], c=T[k], e=T[k+1].
//
// Complexity: O(m²) per pass, passes bounded by the number of improvements.
func (p *Plan) TwoOpt(inst *vrp.Instance, r int) float64 {
	rt := p.routes[r]
	m := len(rt)
	if m < 3 {
		return 0
	}

	// at reads the depot-wrapped route without materialising it.
	at := func(i int) int {
		if i == 0 || i == m+1 {
			return vrp.Depot
		}

		return rt[i-1]
	}

	var gain float64
	for improved := true; improved; {
		improved = false
		for i := 1; i < m; i++ {
			for k := i + 1; k <= m; k++ {
				a, b, c, e := at(i-1), at(i), at(k), at(k+1)
				delta := inst.Distance(a, c) + inst.Distance(b, e) - inst.Distance(a, b) - inst.Distance(c, e)
				if delta < -twoOptEps {
					for x, y := i-1, k-1; x < y; x, y = x+1, y-1 {
						rt[x], rt[y] = rt[y], rt[x]
					}
					gain -= delta
					improved = true
				}
			}
		}
	}

	return gain
}

// Polish runs TwoOpt on every route and returns the summed gain.
func (p *Plan) Polish(inst *vrp.Instance) float64 {
	var gain float64
	for r := range p.routes {
		gain += p.TwoOpt(inst, r)
	}

	return gain
}
