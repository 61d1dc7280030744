package matching

import (
	"errors"
	"math"
	"math/bits"

	"github.com/katalvlaran/cvrp/pair"
)

var (
	// ErrOddVertexCount indicates a vertex set that admits no perfect matching.
	ErrOddVertexCount = errors.New("matching: odd number of vertices")

	// ErrInvalidWeight indicates a NaN, infinite or negative pair weight.
	ErrInvalidWeight = errors.New("matching: invalid weight")

	// ErrTooLarge indicates a vertex set beyond Exact.MaxVertices.
	ErrTooLarge = errors.New("matching: vertex set too large for exact matching")

	// ErrImperfectMatching indicates the engine left a vertex unmatched.
	ErrImperfectMatching = errors.New("matching: matching is not perfect")
)

// DefaultResolution is the weight quantum used by Blossom when Resolution is zero.
const DefaultResolution = 1e-6

// DefaultExactLimit bounds Exact when MaxVertices is zero (2²⁰ DP states).
const DefaultExactLimit = 20

// Blossom computes a minimum-weight perfect matching with Edmonds' algorithm.
// The zero value is ready to use.
type Blossom struct {
	// Resolution is the weight quantum; zero means DefaultResolution.
	Resolution float64
}

// Match implements the matching contract (see package doc).
//
// Reduction: on a complete graph with an even vertex count every
// maximum-cardinality matching is perfect, so a maximum-weight,
// maximum-cardinality matching under w'(u,v) = (maxQ+1) − q(u,v) is a
// minimum-weight perfect matching under the quantized weights q.
func (b Blossom) Match(vertices []int, weight func(u, v int) float64) ([]pair.Unordered[int], error) {
	k := len(vertices)
	if k%2 != 0 {
		return nil, ErrOddVertexCount
	}
	if k == 0 {
		return nil, nil
	}
	res := b.Resolution
	if res <= 0 {
		res = DefaultResolution
	}

	edges := make([]weightedEdge, 0, k*(k-1)/2)
	var maxQ int64
	for i := 0; i < k; i++ {
		for j := i + 1; j < k; j++ {
			w := weight(vertices[i], vertices[j])
			if math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
				return nil, ErrInvalidWeight
			}
			q := int64(math.Round(w / res))
			if q > maxQ {
				maxQ = q
			}
			edges = append(edges, weightedEdge{i: i, j: j, w: q})
		}
	}
	for idx := range edges {
		edges[idx].w = maxQ + 1 - edges[idx].w
	}

	mate := maxWeightMatching(k, edges, true)

	out := make([]pair.Unordered[int], 0, k/2)
	for i, m := range mate {
		if m < 0 || mate[m] != i {
			return nil, ErrImperfectMatching
		}
		if i < m {
			out = append(out, pair.New(vertices[i], vertices[m]))
		}
	}

	return out, nil
}

// Exact computes a minimum-weight perfect matching by subset DP.
// The zero value is ready to use.
type Exact struct {
	// MaxVertices caps the accepted set size; zero means DefaultExactLimit.
	MaxVertices int
}

// Match implements the matching contract (see package doc).
//
// dp[mask] is the cheapest perfect matching of the vertices in mask; the
// lowest set bit is always paired first, so each matching is counted once.
func (x Exact) Match(vertices []int, weight func(u, v int) float64) ([]pair.Unordered[int], error) {
	k := len(vertices)
	if k%2 != 0 {
		return nil, ErrOddVertexCount
	}
	if k == 0 {
		return nil, nil
	}
	limit := x.MaxVertices
	if limit <= 0 {
		limit = DefaultExactLimit
	}
	if k > limit {
		return nil, ErrTooLarge
	}

	w := make([]float64, k*k)
	for i := 0; i < k; i++ {
		for j := i + 1; j < k; j++ {
			d := weight(vertices[i], vertices[j])
			if math.IsNaN(d) || math.IsInf(d, 0) || d < 0 {
				return nil, ErrInvalidWeight
			}
			w[i*k+j], w[j*k+i] = d, d
		}
	}

	full := 1<<k - 1
	dp := make([]float64, full+1)
	choice := make([]int, full+1)
	for mask := 1; mask <= full; mask++ {
		dp[mask] = math.Inf(1)
		choice[mask] = -1
	}

	var mask, i, j int
	for mask = 1; mask <= full; mask++ {
		if bits.OnesCount(uint(mask))%2 != 0 {
			continue
		}
		i = bits.TrailingZeros(uint(mask))
		rest := mask &^ (1 << i)
		for j = i + 1; j < k; j++ {
			if rest&(1<<j) == 0 {
				continue
			}
			c := dp[rest&^(1<<j)] + w[i*k+j]
			if c < dp[mask] {
				dp[mask] = c
				choice[mask] = j
			}
		}
	}

	out := make([]pair.Unordered[int], 0, k/2)
	for mask = full; mask != 0; {
		i = bits.TrailingZeros(uint(mask))
		j = choice[mask]
		if j < 0 {
			return nil, ErrImperfectMatching
		}
		out = append(out, pair.New(vertices[i], vertices[j]))
		mask &^= 1<<i | 1<<j
	}

	return out, nil
}

// Weight sums the weights of a matching.
func Weight(m []pair.Unordered[int], weight func(u, v int) float64) float64 {
	var sum float64
	for _, e := range m {
		sum += weight(e.First, e.Second)
	}

	return sum
}
