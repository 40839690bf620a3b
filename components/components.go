// Package components partitions a similarity graph into connected components
// after discarding every edge whose weight is below a threshold.
//
// An edge {a, b} qualifies when Weight(a, b) ≥ t (equality included). A
// missing entry reads as weight 0, so with t ≤ 0 every pair qualifies.
//
// Traversal is an iterative frontier expansion with LIFO order: the newest
// discovered node is expanded first, and unvisited nodes are scanned from the
// back of the pool. The order affects component discovery order only; the
// membership of each component depends solely on t and the graph.
//
// Complexity: Time O(V²) weight lookups, Space O(V).
package components

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/simcluster/core"
)

// Sentinel errors for threshold partitioning.
var (
	// ErrGraphNil indicates a nil graph was passed.
	ErrGraphNil = errors.New("components: graph is nil")

	// ErrBadThreshold indicates a NaN threshold.
	ErrBadThreshold = errors.New("components: threshold is NaN")
)

// Members returns the node IDs of each component in discovery order.
func Members(g *core.Graph, t float64) ([][]core.NodeID, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	if math.IsNaN(t) {
		return nil, ErrBadThreshold
	}

	untouched := g.IDs()
	var (
		comps    [][]core.NodeID
		frontier []core.NodeID
		cur      []core.NodeID
	)
	for len(untouched) > 0 {
		// Frontier exhausted: close the current component and seed the next one.
		if len(frontier) == 0 {
			if cur != nil {
				comps = append(comps, cur)
			}
			seed := untouched[len(untouched)-1]
			untouched = untouched[:len(untouched)-1]
			frontier = []core.NodeID{seed}
			cur = []core.NodeID{seed}
		}

		for len(frontier) > 0 {
			n := frontier[len(frontier)-1]
			frontier = frontier[:len(frontier)-1]

			for x := len(untouched) - 1; x >= 0; x-- {
				m := untouched[x]
				if g.Weight(n, m) >= t {
					frontier = append(frontier, m)
					cur = append(cur, m)
					untouched = append(untouched[:x], untouched[x+1:]...)
				}
			}
		}
	}
	if cur != nil {
		comps = append(comps, cur)
	}

	return comps, nil
}

// Connected returns each component as a subgraph carrying every edge among its nodes.
func Connected(g *core.Graph, t float64) ([]*core.Graph, error) {
	comps, err := Members(g, t)
	if err != nil {
		return nil, err
	}

	out := make([]*core.Graph, len(comps))
	for i, ids := range comps {
		sub, err := g.Subgraph(ids)
		if err != nil {
			return nil, fmt.Errorf("components: %w", err)
		}
		out[i] = sub
	}

	return out, nil
}

// Count returns the number of components at threshold t.
func Count(g *core.Graph, t float64) (int, error) {
	comps, err := Members(g, t)
	return len(comps), err
}
