// SPDX-License-Identifier: MIT

package divide

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/simcluster/components"
	"github.com/katalvlaran/simcluster/core"
	"github.com/katalvlaran/simcluster/paths"
)

// Divide finds a threshold whose components number as close to k as possible
// without falling below it.
//
// Implementation:
//   - Stage 1: Probe t = 0 and t = HighestWeight+1 to fix the bounds [lo, hi].
//   - Stage 2: Probe the midpoint (lo+hi)/2 up to SearchDepth times.
//   - After every probe: keep it as best if count−k ≥ 0 and smaller than the
//     best so far; count > k moves hi to t, count < k moves lo to t; stop when
//     count == k or lo == hi.
//
// When no probe reaches k (k exceeds the node count) the probe with the most
// components is returned. Missing k is not an error.
//
// Complexity: O((SearchDepth+2)·V²).
func Divide(g *core.Graph, k int, opts ...Option) (*Result, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	if k < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrBadTarget, k)
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if g.Len() == 0 {
		return &Result{}, nil
	}

	var (
		lo, hi   = 0.0, g.HighestWeight() + 1
		best     [][]core.NodeID
		bestT    float64
		bestDiff = -1 // -1: nothing at or above k yet
		most     [][]core.NodeID
		mostT    float64
		probes   int
	)
	for attempt := -2; attempt < o.SearchDepth; attempt++ {
		var t float64
		switch attempt {
		case -2:
			t = lo
		case -1:
			t = hi
		default:
			t = (lo + hi) / 2
		}

		comps, err := components.Members(g, t)
		if err != nil {
			return nil, fmt.Errorf("divide: probe %v: %w", t, err)
		}
		probes++

		c := len(comps)
		if diff := c - k; diff >= 0 && (bestDiff < 0 || diff < bestDiff) {
			best, bestT, bestDiff = comps, t, diff
		}
		if c > len(most) {
			most, mostT = comps, t
		}

		if c > k {
			hi = t
		}
		if c < k {
			lo = t
		}
		if c == k || lo == hi {
			break
		}
	}
	if bestDiff < 0 {
		best, bestT = most, mostT
	}

	subs := make([]*core.Graph, len(best))
	for i, ids := range best {
		subs[i] = g.MustSubgraph(ids)
	}

	return &Result{Subgraphs: subs, Threshold: bestT, Probes: probes, Exact: len(subs) == k}, nil
}

// Representatives returns min(k, components found) nodes, one per component
// of the largest components Divide produces, each being its component's center.
//
// Implementation:
//   - Stage 1: Divide(g, k).
//   - Stage 2: Stable-sort components by size, largest first; keep the first k.
//   - Stage 3: paths.Center on each survivor.
func Representatives(g *core.Graph, k int, opts ...Option) ([]core.Node, error) {
	res, err := Divide(g, k, opts...)
	if err != nil {
		return nil, err
	}

	subs := Largest(res.Subgraphs, k)
	out := make([]core.Node, len(subs))
	for i, sub := range subs {
		c, err := paths.Center(sub)
		if err != nil {
			return nil, fmt.Errorf("divide: center of component %d: %w", i, err)
		}
		out[i] = c
	}

	return out, nil
}

// Largest returns at most k subgraphs, biggest first, ties in input order.
// The input slice is not modified.
func Largest(subs []*core.Graph, k int) []*core.Graph {
	sorted := make([]*core.Graph, len(subs))
	copy(sorted, subs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Len() > sorted[j].Len()
	})
	if k >= 0 && len(sorted) > k {
		sorted = sorted[:k]
	}

	return sorted
}
