// Package search improves a feasible routing plan by iterated local search.
//
// Two plans are kept: the reference, mutated by one random neighborhood move
// per iteration, and the best feasible plan seen so far, replaced by a clone
// of the reference whenever the reference is strictly cheaper and feasible.
//
// Each iteration:
//  1. Stop if the time limit, the context or the iteration cap says so.
//  2. Draw a move kind uniformly from the four plan moves.
//  3. Draw the client(s) uniformly from the customers on the reference.
//  4. Apply the move; a failing move is a no-op.
//  5. Checkpoint the reference if it beats the best.
//  6. Ask the Acceptance policy whether to restart from the best plan.
//
// With RandomWalk (the default) the reference is never reset: it performs an
// unconditional random walk and only the best snapshot survives.
//
// Determinism: given the same instance, initial plan, seeded source and
// MaxIterations with no time limit, Run produces identical results.
package search
