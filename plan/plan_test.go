package plan_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/cvrp/plan"
	"github.com/katalvlaran/cvrp/rng"
	"github.com/katalvlaran/cvrp/vrp"
)

// scenario returns the six-client instance used across tests with the given
// fleet, capacity and customer demands (depot demand is zero).
func scenario(t *testing.T, vehicles, capacity int, demands ...int) *vrp.Instance {
	t.Helper()
	xy := [][2]float64{{0, 0}, {0, 7}, {3, 4}, {7, -10}, {-4, -6}, {-4, 3}}
	clients := make([]vrp.Client, len(xy))
	for i, p := range xy {
		clients[i] = vrp.Client{ID: i, X: p[0], Y: p[1]}
		if i > 0 && i-1 < len(demands) {
			clients[i].Demand = demands[i-1]
		}
	}
	in, err := vrp.NewInstance("scenario", vehicles, capacity, clients)
	require.NoError(t, err)

	return in
}

func TestValue(t *testing.T) {
	in := scenario(t, 2, 10)
	p := plan.New([][]int{{2, 1}, {}, {5, 4, 3}})

	want := in.Distance(0, 2) + in.Distance(2, 1) + in.Distance(1, 0) +
		in.Distance(0, 5) + in.Distance(5, 4) + in.Distance(4, 3) + in.Distance(3, 0)
	assert.InDelta(t, want, p.Value(in), 1e-9)
	assert.Zero(t, p.RouteValue(in, 1))
	assert.Equal(t, []int{2, 1, 5, 4, 3}, p.Customers())
}

func TestFeasible(t *testing.T) {
	in := scenario(t, 2, 10, 3, 4, 2, 5, 1)

	assert.NoError(t, plan.New([][]int{{1, 2, 3}, {4, 5}}).Feasible(in))

	cases := map[string]struct {
		routes [][]int
		want   error
	}{
		"too many routes": {[][]int{{1, 2}, {3}, {4, 5}}, plan.ErrTooManyRoutes},
		"duplicate":       {[][]int{{1, 2, 3}, {3, 4, 5}}, plan.ErrInvalidTour},
		"missing":         {[][]int{{1, 2, 3}, {4}}, plan.ErrInvalidTour},
		"depot inside":    {[][]int{{1, 0, 2, 3}, {4, 5}}, plan.ErrInvalidTour},
		"out of range":    {[][]int{{1, 2, 3}, {4, 5, 9}}, plan.ErrInvalidTour},
		"over capacity":   {[][]int{{1, 2, 3, 4}, {5}}, plan.ErrCapacityExceeded},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, plan.New(tc.routes).Feasible(in), tc.want)
		})
	}
}

func TestCloneIsIndependent(t *testing.T) {
	p := plan.New([][]int{{1, 2}, {3}})
	q := p.Clone()
	require.NoError(t, q.IntraExchange(1, 2))

	assert.Equal(t, [][]int{{1, 2}, {3}}, p.Routes())
	assert.Equal(t, [][]int{{2, 1}, {3}}, q.Routes())

	routes := p.Routes()
	routes[0][0] = 99
	assert.Equal(t, []int{1, 2}, p.Route(0))
}

func TestLocateAndLoad(t *testing.T) {
	in := scenario(t, 2, 10, 3, 4, 2, 5, 1)
	p := plan.New([][]int{{1, 2, 3}, {4, 5}})

	r, pos, ok := p.Locate(5)
	assert.True(t, ok)
	assert.Equal(t, 1, r)
	assert.Equal(t, 1, pos)
	_, _, ok = p.Locate(0)
	assert.False(t, ok)

	assert.Equal(t, 9, p.Load(in, 0))
	assert.Equal(t, 6, p.Load(in, 1))
}

func TestIntraExchange_SelfInverse(t *testing.T) {
	in := scenario(t, 2, 10)
	p := plan.New([][]int{{1, 2, 3}, {4, 5}})
	before := p.Value(in)

	require.NoError(t, p.IntraExchange(1, 3))
	assert.Equal(t, []int{3, 2, 1}, p.Route(0))
	require.NoError(t, p.IntraExchange(1, 3))

	assert.Equal(t, [][]int{{1, 2, 3}, {4, 5}}, p.Routes())
	assert.Equal(t, before, p.Value(in))
}

func TestIntraExchange_Errors(t *testing.T) {
	p := plan.New([][]int{{1, 2, 3}, {4, 5}})

	assert.ErrorIs(t, p.IntraExchange(1, 4), plan.ErrInvalidArguments)
	assert.ErrorIs(t, p.IntraExchange(2, 2), plan.ErrInvalidArguments)
	assert.ErrorIs(t, p.IntraExchange(1, 42), plan.ErrInvalidTour)
	assert.Equal(t, [][]int{{1, 2, 3}, {4, 5}}, p.Routes())
}

func TestLowestCostPosition(t *testing.T) {
	in := scenario(t, 2, 10)

	empty := plan.New([][]int{{}})
	pos, delta := empty.LowestCostPosition(in, 1, 0)
	assert.Equal(t, 0, pos)
	assert.InDelta(t, 2*in.Distance(0, 1), delta, 1e-9)

	// 2 sits between the depot and 1, so the detour through it is cheapest there.
	p := plan.New([][]int{{1}})
	pos, delta = p.LowestCostPosition(in, 2, 0)
	assert.Equal(t, 0, pos)
	assert.InDelta(t, in.Distance(0, 2)+in.Distance(2, 1)-in.Distance(0, 1), delta, 1e-9)
}

func TestInsert(t *testing.T) {
	in := scenario(t, 2, 10, 3, 4, 2, 5, 1)

	for _, how := range []plan.Insertion{plan.CostInsertion, plan.DistanceInsertion} {
		t.Run(how.String(), func(t *testing.T) {
			p := plan.New([][]int{{1, 2}, {4, 3}})
			require.NoError(t, p.Insert(in, 5, how, rng.New(7)))
			assert.NoError(t, p.Feasible(in))

			assert.ErrorIs(t, p.Insert(in, 5, how, rng.New(7)), plan.ErrInvalidArguments)
			assert.ErrorIs(t, p.Insert(in, 0, how, rng.New(7)), plan.ErrInvalidArguments)
		})
	}

	// Cost insertion takes the globally cheapest detour.
	p := plan.New([][]int{{1}, {3}})
	require.NoError(t, p.Insert(in, 2, plan.CostInsertion, nil))
	assert.Equal(t, [][]int{{2, 1}, {3}}, p.Routes())

	assert.ErrorIs(t, plan.New(nil).Insert(in, 1, plan.CostInsertion, nil), plan.ErrInvalidArguments)
	assert.ErrorIs(t, plan.New([][]int{{}}).Insert(in, 1, plan.DistanceInsertion, nil), plan.ErrInvalidArguments)
}

func TestRemove_Sequential(t *testing.T) {
	in := scenario(t, 2, 10)
	p := plan.New([][]int{{1, 2, 3}, {4, 5}})

	removed, err := p.Remove(in, 2, 5, plan.SequentialRemoval)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3}, removed)
	assert.Equal(t, [][]int{{1}, {4, 5}}, p.Routes())

	removed, err = p.Remove(in, 4, 1, plan.SequentialRemoval)
	require.NoError(t, err)
	assert.Equal(t, []int{4}, removed)

	_, err = p.Remove(in, 4, 1, plan.SequentialRemoval)
	assert.ErrorIs(t, err, plan.ErrInvalidTour)
	_, err = p.Remove(in, 1, 0, plan.SequentialRemoval)
	assert.ErrorIs(t, err, plan.ErrInvalidArguments)
}

func TestRemove_Concentric(t *testing.T) {
	in := scenario(t, 2, 10)
	p := plan.New([][]int{{1, 2, 3}, {4, 5}})

	// Nearest customers to 1 are 2 then 5; the depot is skipped.
	removed, err := p.Remove(in, 1, 3, plan.ConcentricRemoval)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 5}, removed)
	assert.Equal(t, [][]int{{3}, {4}}, p.Routes())

	// Reinsertion restores coverage.
	for _, c := range removed {
		require.NoError(t, p.Insert(in, c, plan.CostInsertion, nil))
	}
	assert.NoError(t, p.Feasible(in))
}

func TestRemove_ConcentricSkipsOffPlanNeighbours(t *testing.T) {
	in := scenario(t, 2, 10)
	// Neighbours of 1 nearest first: 2, 5, depot, 4, 3. Customer 2 is off the plan.
	p := plan.New([][]int{{1, 3}, {4, 5}})

	removed, err := p.Remove(in, 1, 3, plan.ConcentricRemoval)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 5, 4}, removed)
	assert.Equal(t, [][]int{{3}, nil}, p.Routes())

	// Asking for more than exists stops at the end of the neighbour list.
	p = plan.New([][]int{{1, 3}, {4, 5}})
	removed, err = p.Remove(in, 1, 10, plan.ConcentricRemoval)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 5, 4, 3}, removed)
}

func TestInterRelocate(t *testing.T) {
	in := scenario(t, 2, 10, 3, 4, 2, 5, 1)
	p := plan.New([][]int{{1, 2}, {3, 4, 5}})
	require.NoError(t, p.Feasible(in))

	// Route 0 is the only other route; it carries 7 and 5 adds 1.
	require.NoError(t, p.InterRelocate(in, 5, rng.New(1)))
	assert.Equal(t, 3, len(p.Route(0)))
	assert.Contains(t, p.Route(0), 5)
	assert.Equal(t, []int{3, 4}, p.Route(1))
	assert.NoError(t, p.Feasible(in))

	// Route 1 carries 7, so 2 (demand 4) cannot join it.
	tight := plan.New([][]int{{1, 2, 5}, {4, 3}})
	assert.ErrorIs(t, tight.InterRelocate(in, 2, rng.New(1)), plan.ErrCapacityExceeded)
	assert.Equal(t, [][]int{{1, 2, 5}, {4, 3}}, tight.Routes())

	assert.ErrorIs(t, p.InterRelocate(in, 42, rng.New(1)), plan.ErrInvalidTour)
	single := plan.New([][]int{{1, 2, 3, 4, 5}})
	assert.ErrorIs(t, single.InterRelocate(in, 1, rng.New(1)), plan.ErrInvalidArguments)
}

func TestInterExchange(t *testing.T) {
	in := scenario(t, 2, 10, 3, 4, 2, 5, 1)
	p := plan.New([][]int{{1, 2, 3}, {4, 5}})

	require.NoError(t, p.InterExchange(in, 3, 5))
	assert.ElementsMatch(t, []int{1, 2, 5}, p.Route(0))
	assert.ElementsMatch(t, []int{4, 3}, p.Route(1))
	assert.NoError(t, p.Feasible(in))

	assert.ErrorIs(t, p.InterExchange(in, 1, 2), plan.ErrInvalidArguments)
	assert.ErrorIs(t, p.InterExchange(in, 1, 42), plan.ErrInvalidTour)

	// 5 (1) ↔ 4 (5): route 0 would carry 3+4+5 = 12.
	before := p.Routes()
	assert.ErrorIs(t, p.InterExchange(in, 5, 4), plan.ErrCapacityExceeded)
	assert.Equal(t, before, p.Routes())
}

func TestIntraRelocate_NeverWorsens(t *testing.T) {
	in := scenario(t, 2, 100)
	src := rng.New(3)
	p := plan.New([][]int{{3, 1, 5, 2, 4}})

	for i := 0; i < 20; i++ {
		c := 1 + src.Intn(5)
		before := p.Value(in)
		err := p.IntraRelocate(in, c)
		if err != nil {
			assert.ErrorIs(t, err, plan.ErrNoImprovement)
		}
		assert.LessOrEqual(t, p.Value(in), before+1e-9)
		assert.ElementsMatch(t, []int{1, 2, 3, 4, 5}, p.Route(0))
	}

	assert.ErrorIs(t, plan.New([][]int{{1}}).IntraRelocate(in, 1), plan.ErrNoImprovement)
	assert.ErrorIs(t, p.IntraRelocate(in, 0), plan.ErrInvalidTour)
}

func TestTwoOpt_UncrossesRoute(t *testing.T) {
	clients := []vrp.Client{{ID: 0}, {ID: 1, X: 1}, {ID: 2, X: 1, Y: 1}, {ID: 3, Y: 1}}
	in, err := vrp.NewInstance("square", 1, 10, clients)
	require.NoError(t, err)

	p := plan.New([][]int{{1, 3, 2}})
	before := p.Value(in)
	gain := p.Polish(in)

	assert.Greater(t, gain, 0.0)
	assert.InDelta(t, 4.0, p.Value(in), 1e-9)
	assert.InDelta(t, before-gain, p.Value(in), 1e-9)
	assert.ElementsMatch(t, []int{1, 2, 3}, p.Route(0))

	assert.Zero(t, p.TwoOpt(in, 0))
}
