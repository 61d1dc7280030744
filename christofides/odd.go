package christofides

import "fmt"

// Degrees returns the degree of every vertex 0..n-1 in the (multi)graph edges.
func Degrees(n int, edges []Edge) []int {
	deg := make([]int, n)
	for _, e := range edges {
		deg[e.First]++
		deg[e.Second]++
	}

	return deg
}

// OddDegree returns, in ascending order, the vertices with odd degree.
// By the handshake lemma their number is even; an odd count panics.
func OddDegree(n int, edges []Edge) []int {
	var odd []int
	for v, d := range Degrees(n, edges) {
		if d&1 == 1 {
			odd = append(odd, v)
		}
	}
	if len(odd)%2 != 0 {
		panic(fmt.Sprintf("christofides: %d odd-degree vertices violates the handshake lemma", len(odd)))
	}

	return odd
}
