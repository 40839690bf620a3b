package components_test

import (
	"math"
	"math/rand"
	"sort"
	"testing"

	"github.com/katalvlaran/simcluster/components"
	"github.com/katalvlaran/simcluster/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// randomGraph returns a complete graph on n nodes with weights in [0,1) rounded to 0.1.
func randomGraph(t *testing.T, rng *rand.Rand, n int) *core.Graph {
	t.Helper()
	items := make([]any, n)
	w := make([][]float64, n)
	for i := range w {
		items[i] = i
		w[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			v := math.Round(rng.Float64()*10) / 10
			w[i][j], w[j][i] = v, v
		}
	}
	g, err := core.FromMatrix(items, w)
	require.NoError(t, err)
	return g
}

// labels maps each node to the smallest ID of its component.
func labels(comps [][]core.NodeID) map[core.NodeID]core.NodeID {
	out := map[core.NodeID]core.NodeID{}
	for _, c := range comps {
		lo := c[0]
		for _, id := range c {
			if id < lo {
				lo = id
			}
		}
		for _, id := range c {
			out[id] = lo
		}
	}
	return out
}

// TestMembers_DiscoveryOrder anchors the LIFO traversal on a small graph.
func TestMembers_DiscoveryOrder(t *testing.T) {
	g, err := core.FromEdges([]any{"a", "b", "c", "d"}, []core.Edge{{From: 1, To: 2, Weight: 0.9}})
	require.NoError(t, err)

	comps, err := components.Members(g, 0.5)
	require.NoError(t, err)
	assert.Equal(t, [][]core.NodeID{{4}, {3}, {2, 1}}, comps)
}

// TestMembers_EqualityQualifies: weight == t keeps the edge.
func TestMembers_EqualityQualifies(t *testing.T) {
	g, err := core.FromMatrix([]any{"a", "b"}, [][]float64{{0, 0.7}, {0.7, 0}})
	require.NoError(t, err)

	n, err := components.Count(g, 0.7)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = components.Count(g, math.Nextafter(0.7, 1))
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

// TestMembers_Transitive: components follow chains, not just direct edges.
func TestMembers_Transitive(t *testing.T) {
	g, err := core.FromEdges([]any{1, 2, 3, 4, 5}, []core.Edge{
		{From: 1, To: 3, Weight: 1},
		{From: 3, To: 5, Weight: 1},
		{From: 2, To: 4, Weight: 1},
	})
	require.NoError(t, err)

	comps, err := components.Members(g, 1)
	require.NoError(t, err)
	lab := labels(comps)
	assert.Len(t, comps, 2)
	assert.Equal(t, lab[1], lab[5])
	assert.Equal(t, lab[2], lab[4])
	assert.NotEqual(t, lab[1], lab[2])
}

// TestMembers_Partition: components are disjoint and cover every node.
func TestMembers_Partition(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	for round := 0; round < 20; round++ {
		g := randomGraph(t, rng, 2+rng.Intn(15))
		for _, th := range []float64{-1, 0, 0.3, 0.55, 0.9, 2} {
			comps, err := components.Members(g, th)
			require.NoError(t, err)

			var all []int
			for _, c := range comps {
				require.NotEmpty(t, c)
				for _, id := range c {
					all = append(all, int(id))
				}
			}
			sort.Ints(all)
			want := make([]int, g.Len())
			for i := range want {
				want[i] = i + 1
			}
			assert.Equal(t, want, all)
		}
	}
}

// TestMembers_Monotonic: raising t never merges components separated at a lower t.
func TestMembers_Monotonic(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	thresholds := []float64{0, 0.2, 0.4, 0.6, 0.8, 1}
	for round := 0; round < 20; round++ {
		g := randomGraph(t, rng, 3+rng.Intn(12))
		var prev map[core.NodeID]core.NodeID
		for _, th := range thresholds {
			comps, err := components.Members(g, th)
			require.NoError(t, err)
			cur := labels(comps)
			if prev != nil {
				for _, a := range g.IDs() {
					for _, b := range g.IDs() {
						if prev[a] != prev[b] {
							assert.NotEqual(t, cur[a], cur[b], "t=%v merged %d and %d", th, a, b)
						}
					}
				}
			}
			prev = cur
		}
	}
}

// TestConnected_Subgraphs: each component carries the induced edges.
func TestConnected_Subgraphs(t *testing.T) {
	g, err := core.FromMatrix([]any{"a", "b", "c"}, [][]float64{
		{0, 0.9, 0.1},
		{0.9, 0, 0.2},
		{0.1, 0.2, 0},
	})
	require.NoError(t, err)

	subs, err := components.Connected(g, 0.5)
	require.NoError(t, err)
	require.Len(t, subs, 2)
	assert.Equal(t, []any{"c"}, subs[0].Data())
	assert.Equal(t, []any{"b", "a"}, subs[1].Data())
	assert.Equal(t, 0.9, subs[1].Weight(1, 2))
}

func TestMembers_Errors(t *testing.T) {
	_, err := components.Members(nil, 0)
	assert.ErrorIs(t, err, components.ErrGraphNil)

	g, err := core.FromEdges([]any{1}, nil)
	require.NoError(t, err)
	_, err = components.Connected(g, math.NaN())
	assert.ErrorIs(t, err, components.ErrBadThreshold)

	empty, err := core.FromEdges(nil, nil)
	require.NoError(t, err)
	comps, err := components.Members(empty, 0.5)
	require.NoError(t, err)
	assert.Empty(t, comps)
}
