// SPDX-License-Identifier: MIT
// This file declares Node, Graph, the sentinel errors and the build options.

package core

import (
	"context"
	"errors"
	"fmt"
)

// Sentinel errors for core graph operations.
var (
	// ErrNilSimilarity indicates Build was called without a similarity function.
	ErrNilSimilarity = errors.New("core: similarity function is nil")

	// ErrNodeNotFound indicates an operation referenced a non-existent node.
	ErrNodeNotFound = errors.New("core: node not found")

	// ErrDuplicateNode indicates the same node was listed twice.
	ErrDuplicateNode = errors.New("core: duplicate node")

	// ErrDimensionMismatch indicates a weight matrix does not match the item count.
	ErrDimensionMismatch = errors.New("core: weight matrix dimension mismatch")

	// ErrAsymmetric indicates a weight matrix is not symmetric.
	ErrAsymmetric = errors.New("core: weight matrix is not symmetric")

	// ErrOptionViolation indicates an invalid Option was supplied.
	ErrOptionViolation = errors.New("core: invalid option supplied")
)

// NodeID identifies a Node within one Graph. IDs start at 1.
type NodeID int

// Node pairs a generated ID with the caller's opaque item.
type Node struct {
	// ID is unique within the Graph that created the node.
	ID NodeID

	// Data is the caller's item; core never inspects it.
	Data any
}

// Edge is a read-only view of one undirected weighted edge with From < To.
type Edge struct {
	From, To NodeID
	Weight   float64
}

// Graph is an immutable, complete-by-construction weighted undirected graph.
type Graph struct {
	nodes []Node
	index map[NodeID]int // NodeID → position in nodes

	// edges[a][b] = edges[b][a] = weight; absent means 0.
	edges map[NodeID]map[NodeID]float64
}

// ProgressFunc receives the running ordered-pair count and its total n·(n−1).
type ProgressFunc func(run, total int)

// Option configures Build.
type Option func(*BuildOptions)

// BuildOptions holds parameters for Build.
type BuildOptions struct {
	// Ctx is checked between pair evaluations; cancellation aborts the build.
	Ctx context.Context

	// OnProgress is called after every pair evaluation.
	OnProgress ProgressFunc

	// internal error recorded during option parsing
	err error
}

// DefaultOptions returns BuildOptions with a background context and a no-op hook.
func DefaultOptions() BuildOptions {
	return BuildOptions{
		Ctx:        context.Background(),
		OnProgress: func(int, int) {},
	}
}

// WithContext sets the context observed during Build.
func WithContext(ctx context.Context) Option {
	return func(o *BuildOptions) {
		if ctx == nil {
			o.err = fmt.Errorf("%w: nil context", ErrOptionViolation)
			return
		}
		o.Ctx = ctx
	}
}

// WithProgress registers a progress hook. A nil fn keeps the no-op hook.
func WithProgress(fn ProgressFunc) Option {
	return func(o *BuildOptions) {
		if fn != nil {
			o.OnProgress = fn
		}
	}
}

// newGraph allocates a Graph over items with sequential IDs starting at 1.
func newGraph(items []any) *Graph {
	g := &Graph{
		nodes: make([]Node, len(items)),
		index: make(map[NodeID]int, len(items)),
		edges: make(map[NodeID]map[NodeID]float64, len(items)),
	}
	for i, it := range items {
		id := NodeID(i + 1)
		g.nodes[i] = Node{ID: id, Data: it}
		g.index[id] = i
	}

	return g
}

// setWeight stores w on both directions of {a, b}. Only used during construction.
func (g *Graph) setWeight(a, b NodeID, w float64) {
	if g.edges[a] == nil {
		g.edges[a] = make(map[NodeID]float64)
	}
	if g.edges[b] == nil {
		g.edges[b] = make(map[NodeID]float64)
	}
	g.edges[a][b] = w
	g.edges[b][a] = w
}
