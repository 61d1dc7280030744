// Package christofides builds a Hamiltonian tour over all clients of a
// distance.Graph with the Christofides pipeline:
//
//  1. Minimum spanning tree (Prim, heap frontier, rooted at the depot).
//  2. Odd-degree vertices of the tree (always an even count).
//  3. Minimum-weight perfect matching on those vertices (injected Matcher).
//  4. Eulerian circuit over MST ∪ matching (Hierholzer, explicit stack).
//  5. Shortcut: keep first occurrences, close the cycle at the depot.
//
// Guarantee: on metric instances (Euclidean distances satisfy the triangle
// inequality) the shortcut never lengthens the Eulerian circuit, and with a
// true minimum-weight matching the tour length is ≤ 1.5·OPT(TSP).
//
// Every step is a pure function of its inputs. Violations of internal
// invariants (spanning tree size, handshake parity) panic: they indicate a
// programming defect, not a runtime condition. A Matcher that fails to return
// a perfect matching surfaces as ErrImperfectMatching.
package christofides
