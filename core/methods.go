// SPDX-License-Identifier: MIT
//
// File: methods.go
// Role: Read-only queries and subgraph extraction. Nothing here mutates a Graph.

package core

import (
	"fmt"
	"sort"
)

// Len returns the number of nodes. O(1).
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Nodes returns a copy of the node sequence in construction order. O(V).
func (g *Graph) Nodes() []Node {
	out := make([]Node, len(g.nodes))
	copy(out, g.nodes)
	return out
}

// IDs returns the node IDs in construction order. O(V).
func (g *Graph) IDs() []NodeID {
	out := make([]NodeID, len(g.nodes))
	for i, n := range g.nodes {
		out[i] = n.ID
	}
	return out
}

// Data returns the items in node order. O(V).
func (g *Graph) Data() []any {
	out := make([]any, len(g.nodes))
	for i, n := range g.nodes {
		out[i] = n.Data
	}
	return out
}

// Node returns the node with the given ID.
func (g *Graph) Node(id NodeID) (Node, bool) {
	i, ok := g.index[id]
	if !ok {
		return Node{}, false
	}
	return g.nodes[i], true
}

// Has reports whether id belongs to g.
func (g *Graph) Has(id NodeID) bool {
	_, ok := g.index[id]
	return ok
}

// Edge returns the stored weight between a and b and whether an entry exists.
func (g *Graph) Edge(a, b NodeID) (float64, bool) {
	w, ok := g.edges[a][b]
	return w, ok
}

// Weight returns the weight between a and b, 0 when there is no entry. O(1).
func (g *Graph) Weight(a, b NodeID) float64 {
	return g.edges[a][b]
}

// HighestWeight returns the largest edge weight, 0 for an edgeless graph. O(E).
func (g *Graph) HighestWeight() float64 {
	hi := 0.0
	for _, row := range g.edges {
		for _, w := range row {
			if w > hi {
				hi = w
			}
		}
	}
	return hi
}

// EdgeCount returns the number of undirected edge entries. O(V).
func (g *Graph) EdgeCount() int {
	total := 0
	for _, row := range g.edges {
		total += len(row)
	}
	return total / 2
}

// Edges returns every edge once with From < To, sorted by (From, To). O(E log E).
func (g *Graph) Edges() []Edge {
	out := make([]Edge, 0, g.EdgeCount())
	for a, row := range g.edges {
		for b, w := range row {
			if a < b {
				out = append(out, Edge{From: a, To: b, Weight: w})
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].From != out[j].From {
			return out[i].From < out[j].From
		}
		return out[i].To < out[j].To
	})

	return out
}

// Subgraph returns a new Graph with the listed nodes, in the given order, and
// every edge among them. IDs are preserved.
//
// Errors: ErrNodeNotFound, ErrDuplicateNode.
//
// Complexity: O(k²) for k listed nodes.
func (g *Graph) Subgraph(ids []NodeID) (*Graph, error) {
	sub := &Graph{
		nodes: make([]Node, 0, len(ids)),
		index: make(map[NodeID]int, len(ids)),
		edges: make(map[NodeID]map[NodeID]float64, len(ids)),
	}
	for _, id := range ids {
		i, ok := g.index[id]
		if !ok {
			return nil, fmt.Errorf("%w: %d", ErrNodeNotFound, id)
		}
		if _, dup := sub.index[id]; dup {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateNode, id)
		}
		sub.index[id] = len(sub.nodes)
		sub.nodes = append(sub.nodes, g.nodes[i])
	}

	var i, j int
	for i = 0; i < len(sub.nodes); i++ {
		a := sub.nodes[i].ID
		for j = i + 1; j < len(sub.nodes); j++ {
			b := sub.nodes[j].ID
			if w, ok := g.edges[a][b]; ok {
				sub.setWeight(a, b, w)
			}
		}
	}

	return sub, nil
}

// MustSubgraph is Subgraph for ID lists already known to be valid; it panics otherwise.
func (g *Graph) MustSubgraph(ids []NodeID) *Graph {
	sub, err := g.Subgraph(ids)
	if err != nil {
		panic(err)
	}
	return sub
}
