package distance

import (
	"math"
	"sort"

	"github.com/katalvlaran/cvrp/rng"
)

// Point is a location in the plane.
type Point struct {
	X, Y float64
}

// Euclidean returns the straight-line distance between p and q.
func Euclidean(p, q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Graph is the precomputed distance and neighbour-ranking surface.
type Graph struct {
	n     int
	w     []float64 // w[u*n+v]
	order [][]int   // order[c]: all v != c nearest-first
	rank  []int     // rank[c*n+v]: position of v in order[c]; -1 for v == c
}

// New builds a Graph over points; point i becomes client i.
func New(points []Point) *Graph {
	n := len(points)
	g := &Graph{
		n:     n,
		w:     make([]float64, n*n),
		order: make([][]int, n),
		rank:  make([]int, n*n),
	}

	var u, v int
	for u = 0; u < n; u++ {
		for v = u + 1; v < n; v++ {
			d := Euclidean(points[u], points[v])
			g.w[u*n+v] = d
			g.w[v*n+u] = d
		}
	}

	for u = 0; u < n; u++ {
		row := make([]int, 0, n-1)
		for v = 0; v < n; v++ {
			if v != u {
				row = append(row, v)
			}
		}
		base := u * n
		sort.SliceStable(row, func(i, j int) bool {
			wi, wj := g.w[base+row[i]], g.w[base+row[j]]
			if wi == wj {
				return row[i] < row[j]
			}

			return wi < wj
		})
		g.order[u] = row
		g.rank[base+u] = -1
		for i, x := range row {
			g.rank[base+x] = i
		}
	}

	return g
}

// Len returns the number of clients, depot included.
func (g *Graph) Len() int { return g.n }

// Distance returns the distance between clients a and b.
func (g *Graph) Distance(a, b int) float64 { return g.w[a*g.n+b] }

// Nearest returns up to k other clients ordered by increasing distance from c,
// ties broken by index. The returned slice is a copy and may be modified by the
// caller.
func (g *Graph) Nearest(c, k int) []int {
	if k > len(g.order[c]) {
		k = len(g.order[c])
	}
	if k <= 0 {
		return nil
	}
	out := make([]int, k)
	copy(out, g.order[c][:k])

	return out
}

// Rank returns the position of x in c's nearest-first ordering, or -1 if x == c.
func (g *Graph) Rank(c, x int) int { return g.rank[c*g.n+x] }

// Proximity estimates how close client c is to route without evaluating
// insertion costs. It samples, without replacement,
//
//	min(len(route), uniform[1, max(1, totalClients/numRoutes)])
//
// clients of route and returns the average of their ranks in c's
// nearest-first ordering. Lower is closer. An empty route scores +Inf.
func (g *Graph) Proximity(c int, route []int, numRoutes, totalClients int, src rng.Source) float64 {
	if len(route) == 0 {
		return math.Inf(1)
	}
	limit := 1
	if numRoutes > 0 && totalClients/numRoutes > 1 {
		limit = totalClients / numRoutes
	}
	size := rng.Between(src, 1, limit)
	if size > len(route) {
		size = len(route)
	}

	var sum int
	for _, x := range rng.Sample(src, route, size) {
		sum += g.Rank(c, x)
	}

	return float64(sum) / float64(size)
}
