// Package pair provides Unordered, a two-element value whose identity ignores
// the order in which its endpoints were supplied.
//
// Typical use is as an undirected edge key:
//
//	seen := map[pair.Unordered[int]]bool{}
//	seen[pair.New(3, 1)] = true
//	seen[pair.New(1, 3)] // true
package pair

import (
	"cmp"
	"fmt"
)

// Unordered holds two endpoints with First ≤ Second.
// Because the fields are canonicalised on construction, the built-in ==
// operator and map hashing are direction-agnostic.
type Unordered[T cmp.Ordered] struct {
	First  T
	Second T
}

// New returns the canonical pair for {a, b}.
func New[T cmp.Ordered](a, b T) Unordered[T] {
	if b < a {
		a, b = b, a
	}

	return Unordered[T]{First: a, Second: b}
}

// Other returns the endpoint opposite to v, and false if v is not an endpoint.
func (p Unordered[T]) Other(v T) (T, bool) {
	switch v {
	case p.First:
		return p.Second, true
	case p.Second:
		return p.First, true
	}
	var zero T

	return zero, false
}

// Contains reports whether v is one of the endpoints.
func (p Unordered[T]) Contains(v T) bool { return v == p.First || v == p.Second }

// String renders the pair as "{a–b}".
func (p Unordered[T]) String() string { return fmt.Sprintf("{%v–%v}", p.First, p.Second) }
