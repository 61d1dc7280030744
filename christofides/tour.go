package christofides

import (
	"fmt"

	"github.com/katalvlaran/cvrp/distance"
)

// Depot is the client id every tour starts and ends at.
const Depot = 0

// Construction records every intermediate artifact of one pipeline run.
// It is useful for diagnostics and for checking approximation bounds.
type Construction struct {
	MST      []Edge // spanning tree rooted at Depot, n−1 edges
	Odd      []int  // odd-degree vertices of MST, ascending
	Matching []Edge // perfect matching on Odd
	Circuit  []int  // Eulerian circuit over MST ∪ Matching
	Tour     []int  // Hamiltonian cycle, Tour[0] == Tour[n] == Depot
}

// Construct runs the full Christofides pipeline on g using m for step 3.
//
// Errors:
//   - ErrEmptyGraph if g has no clients.
//   - ErrImperfectMatching (wrapping the matcher error, if any) when m does
//     not return a perfect matching over the odd-degree vertices.
//   - ErrIncompleteCircuit if the shortcut tour misses a client; this only
//     happens with a matcher that returns edges outside the odd set.
//
// Complexity: dominated by MST O(n² log n) and the matcher.
func Construct(g *distance.Graph, m Matcher) (Construction, error) {
	var c Construction
	n := g.Len()
	if n == 0 {
		return c, ErrEmptyGraph
	}

	c.MST = MinimumSpanningTree(g, Depot)
	c.Odd = OddDegree(n, c.MST)

	matched, err := m.Match(c.Odd, g.Distance)
	if err != nil {
		return c, fmt.Errorf("%w: %w", ErrImperfectMatching, err)
	}
	if !perfect(c.Odd, matched) {
		return c, fmt.Errorf("%w: %d edges over %d vertices", ErrImperfectMatching, len(matched), len(c.Odd))
	}
	c.Matching = matched

	multigraph := make([]Edge, 0, len(c.MST)+len(c.Matching))
	multigraph = append(multigraph, c.MST...)
	multigraph = append(multigraph, c.Matching...)
	c.Circuit = EulerianCircuit(n, multigraph, Depot)

	c.Tour = Shortcut(c.Circuit, Depot)
	if !Covers(c.Tour, n) {
		return c, ErrIncompleteCircuit
	}

	return c, nil
}

// Tour returns the closed Christofides tour over all clients of g, starting
// and ending at the depot. See Construct for errors.
func Tour(g *distance.Graph, m Matcher) ([]int, error) {
	c, err := Construct(g, m)
	if err != nil {
		return nil, err
	}

	return c.Tour, nil
}

// perfect reports whether edges cover every vertex of vertices exactly once
// and touch nothing else.
func perfect(vertices []int, edges []Edge) bool {
	if 2*len(edges) != len(vertices) {
		return false
	}
	want := make(map[int]bool, len(vertices))
	for _, v := range vertices {
		want[v] = false
	}
	for _, e := range edges {
		for _, v := range [2]int{e.First, e.Second} {
			covered, ok := want[v]
			if !ok || covered {
				return false
			}
			want[v] = true
		}
	}

	return true
}
