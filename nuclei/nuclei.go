// Package nuclei grows a fixed number of partitions outward from seed nodes.
//
// Growth:
//
//	Partitions take turns in round-robin order. On its turn a partition looks
//	at every (member, unclaimed) pair and claims the unclaimed node of the
//	single heaviest edge, provided that weight is > 0. Ties keep the first pair
//	found (members in attach order, unclaimed nodes in graph order). When k
//	consecutive turns claim nothing, growth stops; whatever is left is returned
//	as orphans.
//
// Balancing:
//
//	Balance hands orphans out one at a time, each to the currently smallest
//	group. Ties go to the group ranked first by the latest stable size sort,
//	so equal-sized groups keep the order the previous orphan left them in.
//	Similarity plays no part in it.
package nuclei

import (
	"errors"
	"fmt"
	"sort"

	"github.com/katalvlaran/simcluster/core"
)

// Sentinel errors for nucleus growth.
var (
	// ErrGraphNil indicates a nil graph was passed.
	ErrGraphNil = errors.New("nuclei: graph is nil")

	// ErrNoNuclei indicates an empty seed list.
	ErrNoNuclei = errors.New("nuclei: at least one nucleus is required")

	// ErrDuplicateNucleus indicates the same node was seeded twice.
	ErrDuplicateNucleus = errors.New("nuclei: duplicate nucleus")
)

// Growth is the outcome of Grow.
type Growth struct {
	// Partitions holds one subgraph per nucleus, nodes in attach order.
	Partitions []*core.Graph

	// Orphans are the nodes no partition could claim, in graph order.
	Orphans []core.Node

	// Turns counts partition turns taken, including the final idle cycle.
	Turns int
}

// Grow expands one partition per nucleus over g.
//
// Every node of g ends in exactly one partition or in Orphans.
//
// Errors: ErrGraphNil, ErrNoNuclei, ErrDuplicateNucleus, core.ErrNodeNotFound (wrapped).
//
// Complexity: O(V) turns, each O(|partition|·|unclaimed|), so O(V³) worst case.
func Grow(g *core.Graph, nuclei []core.NodeID) (*Growth, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	if len(nuclei) == 0 {
		return nil, ErrNoNuclei
	}

	seeded := make(map[core.NodeID]bool, len(nuclei))
	parts := make([][]core.NodeID, len(nuclei))
	for i, id := range nuclei {
		if !g.Has(id) {
			return nil, fmt.Errorf("nuclei: %w: %d", core.ErrNodeNotFound, id)
		}
		if seeded[id] {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateNucleus, id)
		}
		seeded[id] = true
		parts[i] = []core.NodeID{id}
	}

	unclaimed := make([]core.NodeID, 0, g.Len()-len(nuclei))
	for _, id := range g.IDs() {
		if !seeded[id] {
			unclaimed = append(unclaimed, id)
		}
	}

	k := len(parts)
	next, stall, turns := 0, k, 0
	for len(unclaimed) > 0 && stall > 0 {
		stall--
		turns++
		p := next
		next = (next + 1) % k

		pick, bestW := -1, 0.0
		for _, member := range parts[p] {
			for x, cand := range unclaimed {
				if w := g.Weight(member, cand); w > bestW {
					pick, bestW = x, w
				}
			}
		}
		if pick < 0 {
			continue
		}

		parts[p] = append(parts[p], unclaimed[pick])
		unclaimed = append(unclaimed[:pick], unclaimed[pick+1:]...)
		stall = k
	}

	out := &Growth{
		Partitions: make([]*core.Graph, k),
		Orphans:    make([]core.Node, len(unclaimed)),
		Turns:      turns,
	}
	for i, ids := range parts {
		out.Partitions[i] = g.MustSubgraph(ids)
	}
	for i, id := range unclaimed {
		out.Orphans[i], _ = g.Node(id)
	}

	return out, nil
}

// Balance appends orphans, last one first, each to the smallest group.
// Before every orphan the groups are stably ranked by size and the first one
// receives it. groups is modified in place and returned in its original
// order. With no groups at all the orphans form a single group.
func Balance[T any](groups [][]T, orphans []T) [][]T {
	if len(groups) == 0 {
		if len(orphans) == 0 {
			return groups
		}
		return [][]T{append([]T(nil), orphans...)}
	}
	rank := make([]int, len(groups))
	for i := range rank {
		rank[i] = i
	}
	for i := len(orphans) - 1; i >= 0; i-- {
		sort.SliceStable(rank, func(a, b int) bool {
			return len(groups[rank[a]]) < len(groups[rank[b]])
		})
		groups[rank[0]] = append(groups[rank[0]], orphans[i])
	}

	return groups
}
