package graph

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pathGraph() *Graph {
	return New(
		[]Node{
			{ID: "1", Label: "One", Topic: 0},
			{ID: "2", Label: "Two", Topic: 0},
			{ID: "3", Label: "Three", Topic: 1},
			{ID: "4", Label: "Four", Topic: 1},
		},
		[]Edge{
			{Source: "1", Target: "2", Weight: 0.5},
			{Source: "2", Target: "3", Weight: 0.6},
			{Source: "3", Target: "4", Weight: 0.7},
		},
	)
}

func scenarioGraph() *Graph {
	return New(
		[]Node{
			{ID: "A", Label: "Alpha"},
			{ID: "B", Label: "Beta"},
			{ID: "C", Label: "Gamma"},
		},
		[]Edge{
			{Source: "A", Target: "B", Weight: 0.5},
			{Source: "B", Target: "C", Weight: 0.9},
		},
	)
}

func TestNewCopiesInput(t *testing.T) {
	nodes := []Node{{ID: "a"}}
	edges := []Edge{{Source: "a", Target: "a", Weight: 1}}

	g := New(nodes, edges)
	nodes[0].ID = "changed"
	edges[0].Weight = 0

	assert.Equal(t, "a", g.Nodes[0].ID)
	assert.Equal(t, 1.0, g.Edges[0].Weight)
}

func TestVisibleSharesNodes(t *testing.T) {
	g := scenarioGraph()

	v := g.Visible(0.6)

	assert.Equal(t, g.Nodes, v.Nodes)
	assert.Equal(t, []Edge{{Source: "B", Target: "C", Weight: 0.9}}, v.Edges)
	assert.Len(t, g.Edges, 2, "full edge set must be untouched")
}

func TestTopics(t *testing.T) {
	g := New([]Node{{ID: "a", Topic: 3}, {ID: "b", Topic: 1}, {ID: "c", Topic: 3}}, nil)

	assert.Equal(t, []int{3, 1}, g.Topics())
}

func TestNodeIndex(t *testing.T) {
	idx := pathGraph().NodeIndex()

	assert.Equal(t, map[string]int{"1": 0, "2": 1, "3": 2, "4": 3}, idx)
}

func TestScenarioThresholdAndDegrees(t *testing.T) {
	g := scenarioGraph()
	visible := g.Visible(0.6)

	require.Len(t, visible.Edges, 1)
	assert.Equal(t, "B", visible.Edges[0].Source)
	assert.Equal(t, "C", visible.Edges[0].Target)

	s := visible.Stats(0)
	degrees := map[string]int{}
	for _, d := range s.Degrees {
		degrees[d.ID] = d.Degree
	}
	assert.Equal(t, map[string]int{"A": 0, "B": 1, "C": 1}, degrees)
	assert.InDelta(t, 2.0/3.0, s.AvgDegree, 1e-12)
}

func ExampleComputeStats() {
	g := pathGraph()
	s := g.Stats(0)
	fmt.Printf("density=%.2f avg=%.2f median=%.2f top=%s\n",
		*s.Density, s.AvgDegree, s.Weights.Median, s.CentralNodes[0].Name)
	// Output: density=0.50 avg=1.50 median=0.60 top=Two
}
