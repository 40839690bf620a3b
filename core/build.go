// SPDX-License-Identifier: MIT
//
// File: build.go
// Role: Graph constructors. Build evaluates a similarity oracle over every
// unordered pair; FromMatrix adopts precomputed weights.

package core

import (
	"fmt"

	"github.com/katalvlaran/simcluster/oracle"
)

// Build creates the complete similarity graph over items.
//
// Implementation:
//   - Stage 1: Validate sim and options; assign Node IDs 1..n in input order.
//   - Stage 2: For every unordered pair (i < j) call sim(items[i], items[j])
//     exactly once through oracle.Check and mirror the score on both directions.
//   - Stage 3: After each evaluation advance run by 2 and call OnProgress(run, n·(n−1)).
//
// Errors:
//   - ErrNilSimilarity, ErrOptionViolation for bad input.
//   - oracle.ErrInvalidMetricResult (wrapped) when sim returns NaN or a negative value.
//   - ctx.Err() when the context is cancelled between evaluations.
//
// On any error no Graph is returned.
//
// Complexity:
//   - Time O(n²) similarity calls, Space O(n²) edge entries.
func Build(items []any, sim oracle.Func, opts ...Option) (*Graph, error) {
	if sim == nil {
		return nil, ErrNilSimilarity
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	checked := oracle.Check(sim)
	g := newGraph(items)
	n := len(g.nodes)
	total := n * (n - 1)
	run := 0

	var i, j int
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			select {
			case <-o.Ctx.Done():
				return nil, o.Ctx.Err()
			default:
			}

			a, b := g.nodes[i], g.nodes[j]
			w, err := checked(a.Data, b.Data)
			if err != nil {
				return nil, fmt.Errorf("core: build pair (%d,%d): %w", a.ID, b.ID, err)
			}
			g.setWeight(a.ID, b.ID, w)

			run += 2 // both directions of the pair are settled
			o.OnProgress(run, total)
		}
	}

	return g, nil
}

// FromEdges creates a sparse Graph over items holding only the listed edges.
// Edge endpoints are 1-based NodeIDs; a later duplicate overwrites an earlier one.
//
// Errors: ErrNodeNotFound for unknown endpoints, ErrOptionViolation for a
// self-edge, oracle.ErrInvalidMetricResult (wrapped) for an invalid weight.
func FromEdges(items []any, edges []Edge) (*Graph, error) {
	g := newGraph(items)
	for _, e := range edges {
		if !g.Has(e.From) || !g.Has(e.To) {
			return nil, fmt.Errorf("%w: edge %d-%d", ErrNodeNotFound, e.From, e.To)
		}
		if e.From == e.To {
			return nil, fmt.Errorf("%w: self-edge on %d", ErrOptionViolation, e.From)
		}
		if err := oracle.Validate(e.Weight); err != nil {
			return nil, fmt.Errorf("core: edge %d-%d: %w", e.From, e.To, err)
		}
		g.setWeight(e.From, e.To, e.Weight)
	}

	return g, nil
}

// FromMatrix creates a Graph whose weight between items i and j is w[i][j].
// The diagonal is ignored; every off-diagonal entry must be symmetric and a
// valid similarity.
//
// Complexity: O(n²).
func FromMatrix(items []any, w [][]float64) (*Graph, error) {
	n := len(items)
	if len(w) != n {
		return nil, fmt.Errorf("%w: %d items, %d rows", ErrDimensionMismatch, n, len(w))
	}
	for i := range w {
		if len(w[i]) != n {
			return nil, fmt.Errorf("%w: row %d has %d columns", ErrDimensionMismatch, i, len(w[i]))
		}
	}

	g := newGraph(items)
	var i, j int
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			if w[i][j] != w[j][i] {
				return nil, fmt.Errorf("%w: w[%d][%d]=%g, w[%d][%d]=%g", ErrAsymmetric, i, j, w[i][j], j, i, w[j][i])
			}
			if err := oracle.Validate(w[i][j]); err != nil {
				return nil, fmt.Errorf("core: w[%d][%d]: %w", i, j, err)
			}
			g.setWeight(g.nodes[i].ID, g.nodes[j].ID, w[i][j])
		}
	}

	return g, nil
}
