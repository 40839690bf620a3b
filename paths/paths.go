// SPDX-License-Identifier: MIT
// Package paths computes all-pairs shortest path distances over a graph's
// edge weights and selects the graph's 1-center from them.
//
// Contract:
//   - Edge weights are used directly as path lengths. No inversion takes place,
//     so the "center" minimizes the largest accumulated similarity.
//   - d(v, v) = 0; a pair with no edge entry starts at +Inf; an explicit 0 edge
//     is a zero-length hop.
//   - Relaxation order is fixed (k → i → j) and only strict improvements are
//     written, so results are deterministic.
//
// Complexity: Time O(n³), Space O(n²).
package paths

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/simcluster/core"
)

// Sentinel errors for path metrics.
var (
	// ErrGraphNil indicates a nil graph was passed.
	ErrGraphNil = errors.New("paths: graph is nil")

	// ErrEmptyGraph indicates a center was requested for a graph without nodes.
	ErrEmptyGraph = errors.New("paths: graph has no nodes")
)

// Matrix holds shortest distances between the nodes of one graph.
type Matrix struct {
	ids   []core.NodeID
	index map[core.NodeID]int
	data  []float64 // row-major n×n
}

// Compute runs Floyd–Warshall over g.
//
// Implementation:
//   - Stage 1: Seed the dense n×n buffer: 0 on the diagonal, the stored weight
//     where an edge entry exists, +Inf elsewhere.
//   - Stage 2: Relax d[i][j] = min(d[i][j], d[i][k] + d[k][j]) for every k, i, j.
func Compute(g *core.Graph) (*Matrix, error) {
	if g == nil {
		return nil, ErrGraphNil
	}

	ids := g.IDs()
	n := len(ids)
	m := &Matrix{
		ids:   ids,
		index: make(map[core.NodeID]int, n),
		data:  make([]float64, n*n),
	}
	for i, id := range ids {
		m.index[id] = i
	}

	inf := math.Inf(1)
	var i, j int
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			if i == j {
				continue // diagonal stays 0
			}
			if w, ok := g.Edge(ids[i], ids[j]); ok {
				m.data[i*n+j] = w
			} else {
				m.data[i*n+j] = inf
			}
		}
	}
	floydWarshallInPlace(m.data, n)

	return m, nil
}

// floydWarshallInPlace relaxes a row-major n×n distance buffer.
func floydWarshallInPlace(data []float64, n int) {
	var (
		k, i, j      int
		baseK, baseI int
		ik, kj, cand float64
	)
	for k = 0; k < n; k++ {
		baseK = k * n
		for i = 0; i < n; i++ {
			ik = data[i*n+k]
			if math.IsInf(ik, 1) {
				continue // i cannot reach k
			}
			baseI = i * n
			for j = 0; j < n; j++ {
				kj = data[baseK+j]
				if math.IsInf(kj, 1) {
					continue
				}
				cand = ik + kj
				if cand < data[baseI+j] {
					data[baseI+j] = cand
				}
			}
		}
	}
}

// Len returns the matrix order.
func (m *Matrix) Len() int { return len(m.ids) }

// Distance returns the shortest distance from a to b.
func (m *Matrix) Distance(a, b core.NodeID) (float64, error) {
	i, ok := m.index[a]
	if !ok {
		return 0, fmt.Errorf("paths: %w: %d", core.ErrNodeNotFound, a)
	}
	j, ok := m.index[b]
	if !ok {
		return 0, fmt.Errorf("paths: %w: %d", core.ErrNodeNotFound, b)
	}
	return m.data[i*len(m.ids)+j], nil
}

// Eccentricity returns the largest distance from a to any node (0 for a lone node).
func (m *Matrix) Eccentricity(a core.NodeID) (float64, error) {
	i, ok := m.index[a]
	if !ok {
		return 0, fmt.Errorf("paths: %w: %d", core.ErrNodeNotFound, a)
	}
	return m.eccentricity(i), nil
}

func (m *Matrix) eccentricity(i int) float64 {
	n := len(m.ids)
	worst := 0.0
	for _, d := range m.data[i*n : (i+1)*n] {
		if d > worst {
			worst = d
		}
	}
	return worst
}

// Center returns the node of minimum eccentricity, the first in node order on
// ties. When every eccentricity is +Inf the first node is returned.
func (m *Matrix) Center() (core.NodeID, error) {
	if len(m.ids) == 0 {
		return 0, ErrEmptyGraph
	}
	best, bestEcc := 0, m.eccentricity(0)
	for i := 1; i < len(m.ids); i++ {
		if e := m.eccentricity(i); e < bestEcc {
			best, bestEcc = i, e
		}
	}
	return m.ids[best], nil
}

// Center computes the path matrix of g and returns its 1-center node.
func Center(g *core.Graph) (core.Node, error) {
	m, err := Compute(g)
	if err != nil {
		return core.Node{}, err
	}
	id, err := m.Center()
	if err != nil {
		return core.Node{}, err
	}
	n, _ := g.Node(id)

	return n, nil
}
