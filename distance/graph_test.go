package distance_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/cvrp/distance"
	"github.com/katalvlaran/cvrp/rng"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scenarioPoints are the six clients used throughout the module's tests.
var scenarioPoints = []distance.Point{
	{X: 0, Y: 0}, {X: 0, Y: 7}, {X: 3, Y: 4}, {X: 7, Y: -10}, {X: -4, Y: -6}, {X: -4, Y: 3},
}

func TestGraph_DistanceSymmetricZeroDiagonal(t *testing.T) {
	g := distance.New(scenarioPoints)
	require.Equal(t, 6, g.Len())

	for u := 0; u < g.Len(); u++ {
		assert.Zero(t, g.Distance(u, u))
		for v := 0; v < g.Len(); v++ {
			assert.Equal(t, g.Distance(u, v), g.Distance(v, u))
			assert.GreaterOrEqual(t, g.Distance(u, v), 0.0)
		}
	}
	assert.InDelta(t, 5.0, g.Distance(0, 2), 1e-12)
	assert.InDelta(t, math.Sqrt(18), g.Distance(1, 2), 1e-12)
}

func TestGraph_TriangleInequality(t *testing.T) {
	g := distance.New(scenarioPoints)
	n := g.Len()
	for a := 0; a < n; a++ {
		for b := 0; b < n; b++ {
			for c := 0; c < n; c++ {
				assert.LessOrEqual(t, g.Distance(a, c), g.Distance(a, b)+g.Distance(b, c)+1e-9)
			}
		}
	}
}

func TestGraph_NearestOrdering(t *testing.T) {
	g := distance.New(scenarioPoints)

	nb := g.Nearest(0, g.Len())
	require.Len(t, nb, 5)
	assert.NotContains(t, nb, 0)
	// 0–2 and 0–5 tie at 5; index breaks the tie.
	assert.Equal(t, []int{2, 5, 1, 4, 3}, nb)

	for i := 1; i < len(nb); i++ {
		assert.LessOrEqual(t, g.Distance(0, nb[i-1]), g.Distance(0, nb[i]))
	}
	for i, x := range nb {
		assert.Equal(t, i, g.Rank(0, x))
	}
	assert.Equal(t, -1, g.Rank(0, 0))

	nb[0] = 99
	assert.Equal(t, 2, g.Nearest(0, 1)[0], "Nearest must return a copy")
	assert.Equal(t, []int{2, 5}, g.Nearest(0, 2))
	assert.Len(t, g.Nearest(0, 100), 5)
	assert.Nil(t, g.Nearest(0, 0))
}

func TestGraph_Proximity(t *testing.T) {
	g := distance.New(scenarioPoints)
	src := rng.New(5)

	assert.True(t, math.IsInf(g.Proximity(0, nil, 2, 5, src), 1))

	// Single-client routes: sample is that client, score is its rank.
	assert.Equal(t, 0.0, g.Proximity(0, []int{2}, 2, 5, src))
	assert.Equal(t, 4.0, g.Proximity(0, []int{3}, 2, 5, src))

	// Any sample from {2,5} scores 0 or 1 on average, never more.
	for i := 0; i < 50; i++ {
		p := g.Proximity(0, []int{2, 5}, 2, 5, src)
		assert.GreaterOrEqual(t, p, 0.0)
		assert.LessOrEqual(t, p, 1.0)
	}
}
