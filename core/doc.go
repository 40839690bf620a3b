// Package core provides the complete weighted similarity graph every
// partitioning algorithm runs on.
//
// The Graph G = (V, E):
//
//   - V is an ordered sequence of Nodes. Node IDs are assigned 1, 2, 3, ... in
//     input order at construction time and are unique within one Graph.
//   - E maps an unordered pair {a, b}, a ≠ b, to a weight w ≥ 0. Edges are
//     stored mirrored, so Weight(a, b) == Weight(b, a) always.
//   - A missing entry means weight 0 (no relationship). Self-edges never exist.
//   - Weights are similarities: higher means more alike.
//
// Construction:
//
//	Build(items, sim, opts...) evaluates sim once per unordered pair
//	(n·(n−1)/2 calls) through oracle.Check, so a NaN or negative score aborts
//	the whole build with oracle.ErrInvalidMetricResult and no graph.
//	Progress is reported in ordered-pair units: every evaluation advances the
//	counter by 2 toward a total of n·(n−1).
//
// Lifecycle:
//
//	A Graph is immutable once built. Subgraph returns a fresh Graph holding a
//	subset of nodes plus every edge among them; the parent is never mutated.
//	Node IDs are preserved in subgraphs.
//
// Concurrency:
//
//	Read-only methods are safe for concurrent use. Build itself runs on the
//	caller's goroutine with no internal parallelism.
//
// Errors:
//
//	ErrNilSimilarity     - Build was given a nil similarity function.
//	ErrNodeNotFound      - a referenced NodeID is not in the Graph.
//	ErrDuplicateNode     - a NodeID appears twice in a Subgraph request.
//	ErrDimensionMismatch - FromMatrix got a non-square matrix.
//	ErrAsymmetric        - FromMatrix got w[i][j] ≠ w[j][i].
//	ErrOptionViolation   - an invalid Option was supplied.
package core
