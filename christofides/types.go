package christofides

import (
	"errors"

	"github.com/katalvlaran/cvrp/pair"
)

// Edge is an undirected edge between two client ids.
type Edge = pair.Unordered[int]

// Matcher computes a minimum-weight perfect matching over vertices using the
// supplied pair weight. See package matching for implementations.
type Matcher interface {
	Match(vertices []int, weight func(u, v int) float64) ([]Edge, error)
}

var (
	// ErrEmptyGraph is returned when the graph has no vertices.
	ErrEmptyGraph = errors.New("christofides: empty graph")

	// ErrImperfectMatching is returned when the matcher fails or returns a
	// matching that does not cover every odd-degree vertex exactly once.
	ErrImperfectMatching = errors.New("christofides: imperfect matching")

	// ErrIncompleteCircuit is returned when a circuit does not visit every vertex.
	ErrIncompleteCircuit = errors.New("christofides: circuit misses vertices")
)
