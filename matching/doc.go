// Package matching provides minimum-weight perfect matching on small,
// complete vertex subsets, the capability the Christofides pipeline needs to
// pair up odd-degree vertices of a spanning tree.
//
// Two implementations satisfy the same contract
//
//	Match(vertices []int, weight func(u, v int) float64) ([]pair.Unordered[int], error)
//
// and differ only in cost:
//
//   - Blossom: Edmonds' weighted blossom algorithm with dual variables,
//     O(k³). Weights are quantized to Blossom.Resolution so that every dual
//     update is exact integer arithmetic; the result is weight-minimal up to
//     that resolution.
//   - Exact: dynamic programming over vertex subsets, O(k²·2ᵏ) time and
//     O(2ᵏ) memory. Exact on float weights, intended for small k and as a
//     reference in tests.
//
// Contract (both):
//   - len(vertices) must be even; an empty set yields an empty matching.
//   - weight must be finite and non-negative for every pair.
//   - The returned edges are disjoint and cover every vertex exactly once.
//
// Errors: ErrOddVertexCount, ErrInvalidWeight, ErrTooLarge (Exact only),
// ErrImperfectMatching (should be unreachable on complete graphs).
package matching
