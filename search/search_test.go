package search_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/cvrp/christofides"
	"github.com/katalvlaran/cvrp/matching"
	"github.com/katalvlaran/cvrp/partition"
	"github.com/katalvlaran/cvrp/plan"
	"github.com/katalvlaran/cvrp/rng"
	"github.com/katalvlaran/cvrp/search"
	"github.com/katalvlaran/cvrp/vrp"
)

// randomStart builds a random instance and its Christofides partition.
func randomStart(t *testing.T, seed int64, customers, vehicles, capacity int) (*vrp.Instance, *plan.Plan) {
	t.Helper()
	r := rng.New(seed)
	clients := []vrp.Client{{ID: 0, X: 50, Y: 50}}
	for i := 1; i <= customers; i++ {
		clients = append(clients, vrp.Client{ID: i, X: r.Float64() * 100, Y: r.Float64() * 100, Demand: 1 + r.Intn(9)})
	}
	in, err := vrp.NewInstance("random", vehicles, capacity, clients)
	require.NoError(t, err)

	tour, err := christofides.Tour(in.Graph, matching.Blossom{})
	require.NoError(t, err)
	p, err := partition.Partition(in, tour)
	require.NoError(t, err)

	return in, p
}

type countingObserver struct {
	iterations   int
	failures     int
	improvements []float64
	kinds        map[search.MoveKind]int
}

func (c *countingObserver) Iteration(kind search.MoveKind, err error) {
	if c.kinds == nil {
		c.kinds = map[search.MoveKind]int{}
	}
	c.iterations++
	c.kinds[kind]++
	if err != nil {
		c.failures++
	}
}

func (c *countingObserver) Improvement(cost float64) { c.improvements = append(c.improvements, cost) }

func TestRun_NeverWorseAndFeasible(t *testing.T) {
	in, initial := randomStart(t, 1, 40, 5, 60)
	snapshot := initial.Routes()
	start := initial.Value(in)

	res, err := search.Run(context.Background(), in, initial, rng.New(9), search.Options{MaxIterations: 5000})
	require.NoError(t, err)

	assert.Equal(t, 5000, res.Iterations)
	assert.NoError(t, res.Best.Feasible(in))
	assert.LessOrEqual(t, res.Cost, start)
	assert.InDelta(t, res.Best.Value(in), res.Cost, 1e-9)
	assert.Equal(t, snapshot, initial.Routes(), "initial plan must not be mutated")
}

func TestRun_Deterministic(t *testing.T) {
	in, initial := randomStart(t, 2, 30, 4, 60)
	opts := search.Options{MaxIterations: 3000}

	a, err := search.Run(context.Background(), in, initial, rng.New(5), opts)
	require.NoError(t, err)
	b, err := search.Run(context.Background(), in, initial, rng.New(5), opts)
	require.NoError(t, err)

	assert.Equal(t, a.Best.Routes(), b.Best.Routes())
	assert.Equal(t, a.Cost, b.Cost)
	assert.Equal(t, a.Improvements, b.Improvements)
}

func TestRun_ObserverSeesEveryIteration(t *testing.T) {
	in, initial := randomStart(t, 3, 25, 4, 60)
	obs := &countingObserver{}

	res, err := search.Run(context.Background(), in, initial, rng.New(1), search.Options{MaxIterations: 2000, Observer: obs})
	require.NoError(t, err)

	assert.Equal(t, res.Iterations, obs.iterations)
	assert.Len(t, obs.improvements, res.Improvements)
	for i := 1; i < len(obs.improvements); i++ {
		assert.Less(t, obs.improvements[i], obs.improvements[i-1])
	}
	for _, k := range search.MoveKinds {
		assert.Positive(t, obs.kinds[k], "move %v never drawn", k)
	}
	// Same-route inter exchanges and similar misuse are expected and harmless.
	assert.Positive(t, obs.failures)
}

func TestRun_TimeLimit(t *testing.T) {
	in, initial := randomStart(t, 4, 20, 3, 60)

	res, err := search.Run(context.Background(), in, initial, rng.New(1), search.Options{TimeLimit: 50 * time.Millisecond})
	require.NoError(t, err)
	assert.Positive(t, res.Iterations)
	assert.GreaterOrEqual(t, res.Elapsed, 50*time.Millisecond)
	assert.Less(t, res.Elapsed, 5*time.Second)
}

func TestRun_ContextDeadlineIsABudget(t *testing.T) {
	in, initial := randomStart(t, 5, 20, 3, 60)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	res, err := search.Run(ctx, in, initial, rng.New(1), search.Options{})
	require.NoError(t, err)
	assert.Positive(t, res.Iterations)
}

func TestRun_CancelledBeforeStart(t *testing.T) {
	in, initial := randomStart(t, 6, 10, 2, 60)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := search.Run(ctx, in, initial, rng.New(1), search.Options{MaxIterations: 100})
	require.NoError(t, err)
	assert.Zero(t, res.Iterations)
	assert.Equal(t, initial.Routes(), res.Best.Routes())
}

func TestRun_Errors(t *testing.T) {
	in, initial := randomStart(t, 7, 10, 2, 60)

	_, err := search.Run(context.Background(), in, initial, rng.New(1), search.Options{})
	assert.ErrorIs(t, err, search.ErrNoBudget)

	broken := plan.New([][]int{{1, 2}})
	_, err = search.Run(context.Background(), in, broken, rng.New(1), search.DefaultOptions())
	assert.ErrorIs(t, err, search.ErrInfeasibleStart)
	assert.ErrorIs(t, err, plan.ErrInvalidTour)

	_, err = search.Run(context.Background(), in, nil, rng.New(1), search.DefaultOptions())
	assert.ErrorIs(t, err, search.ErrInfeasibleStart)
}

func TestRun_RestartOnStagnation(t *testing.T) {
	in, initial := randomStart(t, 8, 30, 4, 60)

	res, err := search.Run(context.Background(), in, initial, rng.New(2), search.Options{
		MaxIterations: 3000,
		Acceptance:    search.RestartOnStagnation{Window: 50},
	})
	require.NoError(t, err)
	assert.Positive(t, res.Restarts)
	assert.NoError(t, res.Best.Feasible(in))
	assert.LessOrEqual(t, res.Cost, initial.Value(in))
}

func TestAcceptance(t *testing.T) {
	assert.False(t, search.RandomWalk{}.Restart(1_000_000))

	r := search.RestartOnStagnation{Window: 3}
	assert.False(t, r.Restart(2))
	assert.True(t, r.Restart(3))
	assert.False(t, search.RestartOnStagnation{}.Restart(10))
}

func TestMoveKind_String(t *testing.T) {
	assert.Equal(t, "inter_relocate", search.InterRelocate.String())
	assert.Equal(t, "intra_exchange", search.IntraExchange.String())
	assert.Equal(t, "MoveKind(9)", search.MoveKind(9).String())
}
