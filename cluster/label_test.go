package cluster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func graphFromEdges(t *testing.T, n int, edges [][2]int) *Graph {
	t.Helper()
	g, err := NewGraph(n, n+1)
	require.NoError(t, err)
	for _, e := range edges {
		require.NoError(t, g.Link(e[0], e[1]))
	}
	return g
}

func members(cs []Cluster) [][]int {
	out := make([][]int, len(cs))
	for i := range cs {
		out[i] = cs[i].Members
	}
	return out
}

func TestResolveNoEdges(t *testing.T) {
	g := graphFromEdges(t, 5, nil)
	l := Resolve(g, 0)

	assert.True(t, l.Converged)
	assert.Equal(t, 1, l.Iterations)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, l.Labels)

	cs := l.Clusters()
	require.Len(t, cs, 5)
	for i, c := range cs {
		assert.Equal(t, i+1, c.ID)
		assert.Equal(t, []int{i}, c.Members)
	}
}

func TestResolveTransitive(t *testing.T) {
	// A-B and B-C, but no A-C.
	g := graphFromEdges(t, 3, [][2]int{{0, 1}, {1, 2}})
	l := Resolve(g, 0)

	assert.True(t, l.Converged)
	assert.Equal(t, [][]int{{0, 1, 2}}, members(l.Clusters()))
}

func TestResolveTwoComponents(t *testing.T) {
	g := graphFromEdges(t, 6, [][2]int{
		{0, 2}, {2, 4}, {0, 4},
		{1, 3}, {3, 5}, {1, 5},
	})
	l := Resolve(g, 0)

	assert.Equal(t, 2, l.Count())
	assert.Equal(t, [][]int{{0, 2, 4}, {1, 3, 5}}, members(l.Clusters()))
}

func TestResolveLateMerge(t *testing.T) {
	// The initial sweep leaves node 1 with a stale label, so one
	// propagation pass is needed.
	g := graphFromEdges(t, 4, [][2]int{{0, 3}, {1, 2}, {2, 3}})

	capped := Resolve(g, 1)
	assert.False(t, capped.Converged)
	assert.Equal(t, 1, capped.Iterations)
	assert.Equal(t, 2, capped.Count())

	l := Resolve(g, 0)
	assert.True(t, l.Converged)
	assert.Equal(t, 1, l.Iterations)
	assert.Equal(t, [][]int{{0, 1, 2, 3}}, members(l.Clusters()))
}

func TestResolveChainReversed(t *testing.T) {
	// A path whose edges point from high to low indices.
	n := 50
	edges := [][2]int{}
	for i := n - 1; i > 0; i-- {
		edges = append(edges, [2]int{i, i - 1})
	}
	g := graphFromEdges(t, n, edges)
	l := Resolve(g, 0)

	require.True(t, l.Converged)
	cs := l.Clusters()
	require.Len(t, cs, 1)
	assert.Len(t, cs[0].Members, n)
}

func TestResolveDeterministic(t *testing.T) {
	g := graphFromEdges(t, 8, [][2]int{
		{7, 1}, {1, 4}, {2, 6}, {5, 0}, {3, 5},
	})

	first := members(Resolve(g, 0).Clusters())
	second := members(Resolve(g, 0).Clusters())

	assert.Equal(t, first, second)
	assert.Equal(t, [][]int{{0, 3, 5}, {1, 4, 7}, {2, 6}}, first)
}

func TestClustersOrder(t *testing.T) {
	l := &Labeling{Labels: []int{7, 3, 7, 9, 3}}
	cs := l.Clusters()

	require.Len(t, cs, 3)
	assert.Equal(t, Cluster{ID: 1, Members: []int{0, 2}}, cs[0])
	assert.Equal(t, Cluster{ID: 2, Members: []int{1, 4}}, cs[1])
	assert.Equal(t, Cluster{ID: 3, Members: []int{3}}, cs[2])
}
