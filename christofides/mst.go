package christofides

import (
	"container/heap"
	"fmt"

	"github.com/katalvlaran/cvrp/distance"
	"github.com/katalvlaran/cvrp/pair"
)

// MinimumSpanningTree grows a minimum spanning tree of the complete graph
// from root with Prim's algorithm.
//
// Steps:
//  1. Mark root as in-tree and push every edge root→v onto a min-heap.
//  2. Pop the lightest edge; skip it if its far endpoint is already in-tree.
//  3. Otherwise add it, mark the endpoint, push its edges to non-tree vertices.
//  4. Stop after n−1 edges.
//
// Ties between equal weights are broken arbitrarily by the heap.
// It panics if fewer than n−1 edges were collected (disconnected input),
// which cannot happen for the complete graphs built by package distance.
//
// Complexity: O(n² log n) time, O(n²) heap memory on complete graphs.
func MinimumSpanningTree(g *distance.Graph, root int) []Edge {
	n := g.Len()
	if n == 0 {
		return nil
	}

	visited := make([]bool, n)
	mst := make([]Edge, 0, n-1)
	pq := &frontier{}
	heap.Init(pq)

	grow := func(u int) {
		visited[u] = true
		for v := 0; v < n; v++ {
			if !visited[v] {
				heap.Push(pq, candidate{from: u, to: v, weight: g.Distance(u, v)})
			}
		}
	}
	grow(root)

	for pq.Len() > 0 && len(mst) < n-1 {
		c := heap.Pop(pq).(candidate)
		if visited[c.to] {
			continue
		}
		mst = append(mst, pair.New(c.from, c.to))
		grow(c.to)
	}

	if len(mst) != n-1 {
		panic(fmt.Sprintf("christofides: spanning tree has %d edges, want %d", len(mst), n-1))
	}

	return mst
}

// Weight sums the distances of edges.
func Weight(g *distance.Graph, edges []Edge) float64 {
	var sum float64
	for _, e := range edges {
		sum += g.Distance(e.First, e.Second)
	}

	return sum
}

// candidate is a frontier edge from a tree vertex to a non-tree vertex.
type candidate struct {
	from, to int
	weight   float64
}

// frontier implements heap.Interface as a min-heap of candidates by weight.
type frontier []candidate

func (pq frontier) Len() int            { return len(pq) }
func (pq frontier) Less(i, j int) bool  { return pq[i].weight < pq[j].weight }
func (pq frontier) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *frontier) Push(x interface{}) { *pq = append(*pq, x.(candidate)) }
func (pq *frontier) Pop() interface{} {
	old := *pq
	n := len(old)
	c := old[n-1]
	*pq = old[:n-1]

	return c
}
