package graph

import (
	"encoding/json"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeStatsPathDensity(t *testing.T) {
	g := pathGraph()

	s := ComputeStats(g.Nodes, g.Edges, 0)

	assert.Equal(t, 4, s.NodeCount)
	assert.Equal(t, 3, s.EdgeCount)
	require.NotNil(t, s.Density)
	assert.Equal(t, 0.5, *s.Density)
	assert.Equal(t, 1.5, s.AvgDegree)
	assert.Equal(t, 2, s.TopicCount)
}

func TestComputeStatsHandshake(t *testing.T) {
	nodes := []Node{{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"}, {ID: "e"}}
	edges := []Edge{
		{Source: "a", Target: "b", Weight: 0.5},
		{Source: "a", Target: "b", Weight: 0.6},
		{Source: "c", Target: "c", Weight: 0.7},
		{Source: "d", Target: "a", Weight: 0.8},
		{Source: "e", Target: "c", Weight: 0.9},
	}

	for _, threshold := range []float64{0, 0.55, 0.65, 0.75, 0.95} {
		visible := FilterEdges(edges, threshold)
		s := ComputeStats(nodes, visible, 0)

		sum := 0
		for _, d := range s.Degrees {
			sum += d.Degree
		}
		assert.Equal(t, 2*len(visible), sum, "threshold %v", threshold)
		assert.Equal(t, len(visible), s.EdgeCount)
	}
}

func TestComputeStatsWeightedDegree(t *testing.T) {
	g := scenarioGraph()

	s := g.Stats(0)

	assert.InDelta(t, 0.5, s.Degrees[0].WeightedDegree, 1e-12)
	assert.InDelta(t, 1.4, s.Degrees[1].WeightedDegree, 1e-12)
	assert.InDelta(t, 0.9, s.Degrees[2].WeightedDegree, 1e-12)
	assert.InDelta(t, 2.8/3, s.AvgWeightedDegree, 1e-12)
}

func TestComputeStatsMedian(t *testing.T) {
	nodes := []Node{{ID: "a"}, {ID: "b"}}

	t.Run("even count averages the middle pair", func(t *testing.T) {
		edges := []Edge{
			{Source: "a", Target: "b", Weight: 0.8},
			{Source: "a", Target: "b", Weight: 0.5},
			{Source: "a", Target: "b", Weight: 0.7},
			{Source: "a", Target: "b", Weight: 0.6},
		}
		s := ComputeStats(nodes, edges, 0)
		require.NotNil(t, s.Weights)
		assert.InDelta(t, 0.65, s.Weights.Median, 1e-12)
		assert.Equal(t, 0.5, s.Weights.Min)
		assert.Equal(t, 0.8, s.Weights.Max)
		assert.InDelta(t, 0.65, s.Weights.Mean, 1e-12)
	})

	t.Run("odd count takes the middle value", func(t *testing.T) {
		edges := []Edge{
			{Source: "a", Target: "b", Weight: 0.7},
			{Source: "a", Target: "b", Weight: 0.5},
			{Source: "a", Target: "b", Weight: 0.6},
		}
		s := ComputeStats(nodes, edges, 0)
		require.NotNil(t, s.Weights)
		assert.Equal(t, 0.6, s.Weights.Median)
	})

	t.Run("input order is preserved", func(t *testing.T) {
		edges := []Edge{
			{Source: "a", Target: "b", Weight: 0.9},
			{Source: "a", Target: "b", Weight: 0.1},
		}
		_ = ComputeStats(nodes, edges, 0)
		assert.Equal(t, 0.9, edges[0].Weight)
		assert.Equal(t, 0.1, edges[1].Weight)
	})
}

func TestComputeStatsStarHub(t *testing.T) {
	nodes := []Node{
		{ID: "l1", Label: "Leaf 1"},
		{ID: "l2", Label: "Leaf 2"},
		{ID: "hub", Label: "Hub"},
		{ID: "l3", Label: "Leaf 3"},
		{ID: "l4", Label: "Leaf 4"},
	}
	edges := []Edge{
		{Source: "hub", Target: "l1", Weight: 0.6},
		{Source: "hub", Target: "l2", Weight: 0.6},
		{Source: "l3", Target: "hub", Weight: 0.6},
		{Source: "l4", Target: "hub", Weight: 0.6},
	}

	s := ComputeStats(nodes, edges, 5)

	require.Len(t, s.CentralNodes, 5)
	assert.Equal(t, CentralNode{ID: "hub", Name: "Hub", Degree: 4}, s.CentralNodes[0])
	// Leaves tie at degree 1 and keep node order.
	assert.Equal(t, []string{"l1", "l2", "l3", "l4"}, []string{
		s.CentralNodes[1].ID, s.CentralNodes[2].ID, s.CentralNodes[3].ID, s.CentralNodes[4].ID,
	})
}

func TestComputeStatsTopKSelection(t *testing.T) {
	var nodes []Node
	var edges []Edge
	for i := 0; i < 8; i++ {
		nodes = append(nodes, Node{ID: fmt.Sprintf("n%d", i), Label: fmt.Sprintf("N%d", i)})
	}
	for i := 0; i < 8; i++ {
		for j := 0; j < i; j++ {
			edges = append(edges, Edge{Source: nodes[i].ID, Target: nodes[i].ID, Weight: 0.5})
		}
	}
	// Self-loops add 2 per edge, so degree(n_i) = 2i.

	s := ComputeStats(nodes, edges, 3)

	require.Len(t, s.CentralNodes, 3)
	assert.Equal(t, "n7", s.CentralNodes[0].ID)
	assert.Equal(t, 14, s.CentralNodes[0].Degree)
	assert.Equal(t, "n6", s.CentralNodes[1].ID)
	assert.Equal(t, "n5", s.CentralNodes[2].ID)

	for i := 1; i < len(s.CentralNodes); i++ {
		assert.GreaterOrEqual(t, s.CentralNodes[i-1].Degree, s.CentralNodes[i].Degree)
	}
}

func TestComputeStatsFewerNodesThanTopK(t *testing.T) {
	s := ComputeStats([]Node{{ID: "a"}, {ID: "b"}}, nil, 5)

	assert.Len(t, s.CentralNodes, 2)
	assert.Equal(t, "a", s.CentralNodes[0].ID)
}

func TestComputeStatsEmptyEdges(t *testing.T) {
	g := pathGraph()
	visible := g.Visible(0.99)

	s := visible.Stats(0)

	assert.Equal(t, 0, s.EdgeCount)
	assert.Nil(t, s.Weights, "weight summary must be absent")
	require.NotNil(t, s.Density)
	assert.Equal(t, 0.0, *s.Density)
	assert.Equal(t, 0.0, s.AvgDegree)
	assert.Equal(t, 0.0, s.AvgWeightedDegree)

	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"weights":null`)
}

func TestComputeStatsDegenerateNodes(t *testing.T) {
	t.Run("no nodes", func(t *testing.T) {
		s := ComputeStats(nil, nil, 0)
		assert.Equal(t, 0, s.NodeCount)
		assert.Nil(t, s.Density)
		assert.Nil(t, s.Weights)
		assert.Empty(t, s.CentralNodes)
		assert.False(t, math.IsNaN(s.AvgDegree))
	})

	t.Run("single node with self loop", func(t *testing.T) {
		s := ComputeStats([]Node{{ID: "a"}}, []Edge{{Source: "a", Target: "a", Weight: 0.7}}, 0)
		assert.Nil(t, s.Density)
		assert.Equal(t, 2, s.Degrees[0].Degree)
		assert.Equal(t, 2.0, s.AvgDegree)
	})

	t.Run("density is null in JSON", func(t *testing.T) {
		data, err := json.Marshal(ComputeStats([]Node{{ID: "a"}}, nil, 0))
		require.NoError(t, err)
		assert.Contains(t, string(data), `"density":null`)
	})
}

func TestComputeStatsSkipsDanglingEdges(t *testing.T) {
	nodes := []Node{{ID: "a"}, {ID: "b"}}
	edges := []Edge{
		{Source: "a", Target: "b", Weight: 0.6},
		{Source: "a", Target: "ghost", Weight: 0.9},
	}

	s := ComputeStats(nodes, edges, 0)

	assert.Equal(t, 1, s.EdgeCount)
	assert.Equal(t, 0.6, s.Weights.Max)
	assert.Equal(t, 1, s.Degrees[0].Degree)
}

func TestComputeStatsDeterministic(t *testing.T) {
	g := pathGraph()

	first := g.Stats(2)
	second := g.Stats(2)

	assert.Equal(t, first, second)
}

func TestComputeStatsStaysFinite(t *testing.T) {
	nodes := []Node{{ID: "a"}, {ID: "b"}}

	t.Run("large weights", func(t *testing.T) {
		edges := []Edge{
			{Source: "a", Target: "b", Weight: MaxWeight},
			{Source: "a", Target: "b", Weight: MaxWeight},
		}
		s := ComputeStats(nodes, edges, 0)

		require.NotNil(t, s.Weights)
		assert.Equal(t, MaxWeight, s.Weights.Mean)
		assert.False(t, math.IsInf(s.AvgWeightedDegree, 0))
		_, err := json.Marshal(s)
		assert.NoError(t, err)
	})

	t.Run("invalid weights are ignored", func(t *testing.T) {
		edges := []Edge{
			{Source: "a", Target: "b", Weight: 1e308},
			{Source: "a", Target: "b", Weight: 1e308},
			{Source: "a", Target: "b", Weight: math.Inf(1)},
			{Source: "a", Target: "b", Weight: -1},
			{Source: "a", Target: "b", Weight: 0.6},
		}
		s := ComputeStats(nodes, edges, 0)

		assert.Equal(t, 1, s.EdgeCount)
		assert.Equal(t, 0.6, s.Weights.Mean)
		_, err := json.Marshal(s)
		assert.NoError(t, err)
	})
}
