// Package distance provides the read-only geometry service shared by every
// stage of the solver.
//
// A Graph is built once from client coordinates and precomputes:
//
//   - a dense, symmetric Euclidean distance matrix (row-major, w[u*n+v]);
//   - for each client, every other client ordered nearest-first
//     (ties broken by lower index, self excluded);
//   - the inverse of that ordering, so the rank of x in c's list is O(1).
//
// After New returns, a Graph is never mutated and may be shared freely,
// including across goroutines.
//
// Complexity: O(n² log n) construction, O(n²) memory, O(1) queries.
package distance
