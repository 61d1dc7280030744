package christofides

// EulerianCircuit walks every edge of the undirected multigraph edges exactly
// once with Hierholzer's algorithm, beginning and ending at start.
//
// Edges are tracked by index rather than by endpoint pair, so parallel edges
// (an MST edge duplicated by the matching) are each traversed once.
//
// Contracts:
//   - Every endpoint lies in [0, n).
//   - When every vertex touched by edges has even degree and those vertices
//     are connected to start, the result is a closed Eulerian circuit.
//   - The result always has len(edges)+1 entries and begins with start.
//
// Complexity: O(n + E) time, O(n + E) space.
func EulerianCircuit(n int, edges []Edge, start int) []int {
	incident := make([][]int, n)
	for i, e := range edges {
		incident[e.First] = append(incident[e.First], i)
		if e.Second != e.First {
			incident[e.Second] = append(incident[e.Second], i)
		}
	}
	used := make([]bool, len(edges))

	circuit := make([]int, 0, len(edges)+1)
	stack := []int{start}

	for len(stack) > 0 {
		u := stack[len(stack)-1]
		// drop edges already consumed from the other side
		for len(incident[u]) > 0 && used[incident[u][len(incident[u])-1]] {
			incident[u] = incident[u][:len(incident[u])-1]
		}
		if len(incident[u]) == 0 {
			circuit = append(circuit, u)
			stack = stack[:len(stack)-1]
			continue
		}
		id := incident[u][len(incident[u])-1]
		incident[u] = incident[u][:len(incident[u])-1]
		used[id] = true
		v, _ := edges[id].Other(u)
		stack = append(stack, v)
	}

	// Hierholzer emits the circuit back to front.
	for i, j := 0, len(circuit)-1; i < j; i, j = i+1, j-1 {
		circuit[i], circuit[j] = circuit[j], circuit[i]
	}

	return circuit
}
