package christofides

// Shortcut turns a closed walk into a Hamiltonian cycle by keeping only the
// first occurrence of every vertex, rotating the result so it begins at
// start, and appending start to close it.
//
// The walk is not required to begin at start, but start must occur in it;
// otherwise nil is returned. Callers that need coverage of a fixed vertex set
// should check it with Covers.
//
// Complexity: O(len(circuit)) time, O(max vertex) space.
func Shortcut(circuit []int, start int) []int {
	seen := make(map[int]struct{}, len(circuit))
	cycle := make([]int, 0, len(circuit))
	pivot := -1
	for _, v := range circuit {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		if v == start {
			pivot = len(cycle)
		}
		cycle = append(cycle, v)
	}
	if pivot < 0 {
		return nil
	}

	k := len(cycle)
	tour := make([]int, k+1)
	for i := 0; i < k; i++ {
		tour[i] = cycle[(pivot+i)%k]
	}
	tour[k] = start

	return tour
}

// Covers reports whether tour is a closed Hamiltonian cycle over 0..n-1:
// n+1 entries, first and last equal, every vertex exactly once in between.
func Covers(tour []int, n int) bool {
	if n <= 0 || len(tour) != n+1 || tour[0] != tour[n] {
		return false
	}
	seen := make([]bool, n)
	for _, v := range tour[:n] {
		if v < 0 || v >= n || seen[v] {
			return false
		}
		seen[v] = true
	}

	return true
}
