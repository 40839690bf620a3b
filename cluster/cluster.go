// Package cluster groups arbitrary items by a caller-supplied similarity.
//
// A Set evaluates the similarity once per unordered pair at construction and
// then answers any number of queries against the resulting graph:
//
//	SimilarGroups(t)     items connected through pairs scoring ≥ t
//	Groups(k)            about k groups found by threshold search (never fewer)
//	Representatives(k)   up to k items, the center of each of the largest groups
//	EvenGroups(k)        exactly k groups grown from the representatives
//
// Results hold the original items. Within a group items keep their input
// order, and groups are ordered by their earliest item.
//
// Sets with fewer than two items never reach the graph algorithms: queries
// return no groups for an empty Set and one group holding the item otherwise.
package cluster

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/simcluster/components"
	"github.com/katalvlaran/simcluster/core"
	"github.com/katalvlaran/simcluster/divide"
	"github.com/katalvlaran/simcluster/nuclei"
	"github.com/katalvlaran/simcluster/oracle"
)

// Set is an immutable similarity graph over a list of items.
type Set struct {
	g *core.Graph
}

// New evaluates sim over every pair of items. Build options (progress hook,
// context) are passed through to core.Build.
//
// Errors: core.ErrNilSimilarity, oracle.ErrInvalidMetricResult (wrapped),
// context errors from core.WithContext.
func New(items []any, sim oracle.Func, opts ...core.Option) (*Set, error) {
	g, err := core.Build(items, sim, opts...)
	if err != nil {
		return nil, err
	}

	return &Set{g: g}, nil
}

// FromGraph wraps an already built graph.
func FromGraph(g *core.Graph) *Set { return &Set{g: g} }

// Graph exposes the underlying graph.
func (s *Set) Graph() *core.Graph { return s.g }

// Len returns the number of items.
func (s *Set) Len() int { return s.g.Len() }

// SimilarGroups returns the connected components of pairs scoring ≥ t.
// Every item appears in exactly one group; unmatched items form singletons.
func (s *Set) SimilarGroups(t float64) ([][]any, error) {
	if s.g.Len() < 2 {
		return s.trivial(), nil
	}
	ids, err := components.Members(s.g, t)
	if err != nil {
		return nil, fmt.Errorf("cluster: similar groups: %w", err)
	}

	return s.groups(ids), nil
}

// Groups searches for a threshold splitting the items into k groups.
// The result may hold more than k groups when no threshold gives exactly k.
func (s *Set) Groups(k int, opts ...divide.Option) ([][]any, error) {
	if k < 1 {
		return nil, fmt.Errorf("cluster: %w: got %d", divide.ErrBadTarget, k)
	}
	if s.g.Len() < 2 {
		return s.trivial(), nil
	}
	res, err := divide.Divide(s.g, k, opts...)
	if err != nil {
		return nil, fmt.Errorf("cluster: groups: %w", err)
	}

	ids := make([][]core.NodeID, len(res.Subgraphs))
	for i, sub := range res.Subgraphs {
		ids[i] = sub.IDs()
	}

	return s.groups(ids), nil
}

// Representatives returns min(k, groups found) items in input order.
func (s *Set) Representatives(k int, opts ...divide.Option) ([]any, error) {
	if k < 1 {
		return nil, fmt.Errorf("cluster: %w: got %d", divide.ErrBadTarget, k)
	}
	if s.g.Len() < 2 {
		return s.g.Data(), nil
	}
	reps, err := divide.Representatives(s.g, k, opts...)
	if err != nil {
		return nil, fmt.Errorf("cluster: representatives: %w", err)
	}

	sort.Slice(reps, func(i, j int) bool { return reps[i].ID < reps[j].ID })
	out := make([]any, len(reps))
	for i, n := range reps {
		out[i] = n.Data
	}

	return out, nil
}

// EvenGroups grows one group per representative, then hands the items
// growth could not place to the smallest groups.
//
// Implementation:
//   - Stage 1: Representatives via divide (before reordering).
//   - Stage 2: nuclei.Grow from those nodes.
//   - Stage 3: nuclei.Balance over the orphans.
func (s *Set) EvenGroups(k int, opts ...divide.Option) ([][]any, error) {
	if k < 1 {
		return nil, fmt.Errorf("cluster: %w: got %d", divide.ErrBadTarget, k)
	}
	if s.g.Len() < 2 {
		return s.trivial(), nil
	}
	reps, err := divide.Representatives(s.g, k, opts...)
	if err != nil {
		return nil, fmt.Errorf("cluster: even groups: %w", err)
	}

	seeds := make([]core.NodeID, len(reps))
	for i, n := range reps {
		seeds[i] = n.ID
	}
	growth, err := nuclei.Grow(s.g, seeds)
	if err != nil {
		return nil, fmt.Errorf("cluster: even groups: %w", err)
	}

	parts := make([][]core.NodeID, len(growth.Partitions))
	for i, p := range growth.Partitions {
		parts[i] = p.IDs()
	}
	orphans := make([]core.NodeID, len(growth.Orphans))
	for i, n := range growth.Orphans {
		orphans[i] = n.ID
	}

	return s.groups(nuclei.Balance(parts, orphans)), nil
}

// trivial answers any grouping query on a Set with fewer than two items.
func (s *Set) trivial() [][]any {
	if s.g.Len() == 0 {
		return [][]any{}
	}

	return [][]any{s.g.Data()}
}

// groups maps ID lists to item lists in canonical order. ids is reordered.
func (s *Set) groups(ids [][]core.NodeID) [][]any {
	for _, members := range ids {
		sort.Slice(members, func(i, j int) bool { return members[i] < members[j] })
	}
	sort.SliceStable(ids, func(i, j int) bool {
		if len(ids[i]) == 0 || len(ids[j]) == 0 {
			return len(ids[j]) == 0 && len(ids[i]) > 0
		}
		return ids[i][0] < ids[j][0]
	})

	out := make([][]any, 0, len(ids))
	for _, members := range ids {
		items := make([]any, len(members))
		for i, id := range members {
			n, _ := s.g.Node(id)
			items[i] = n.Data
		}
		out = append(out, items)
	}

	return out
}
