package graph

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestBuildView(t *testing.T) {
	g := scenarioGraph()

	t.Run("clamps and filters", func(t *testing.T) {
		v := BuildView(g, ThresholdRange{Min: 0.6, Max: 0.8, Step: 0.05}, 0.1, "", 0)

		assert.Equal(t, 0.6, v.Threshold)
		assert.Len(t, v.Edges, 1)
		assert.Equal(t, 1, v.Stats.EdgeCount)
		assert.Equal(t, DefaultTopK, v.TopK)
		assert.Len(t, v.AllEdges, 2)
	})

	t.Run("carries highlight", func(t *testing.T) {
		v := BuildView(g, DefaultRange(), 0.5, "gam", 2)

		assert.Equal(t, "C", v.Highlight.Highlighted)
		assert.Len(t, v.Stats.CentralNodes, 2)
	})
}

func TestExportJSON(t *testing.T) {
	v := BuildView(scenarioGraph(), DefaultRange(), 0.5, "beta", 0)

	data, err := ExportJSON(v)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Contains(t, decoded, "stats")
	assert.Contains(t, decoded, "range")
	assert.NotContains(t, decoded, "AllEdges")
	assert.Equal(t, "B", decoded["highlight"].(map[string]any)["highlighted"])

	nodes := decoded["nodes"].([]any)
	assert.Equal(t, "Alpha", nodes[0].(map[string]any)["space_name"])
}

func TestExportYAML(t *testing.T) {
	v := BuildView(scenarioGraph(), DefaultRange(), 0.6, "", 0)

	data, err := ExportYAML(v)
	require.NoError(t, err)

	var decoded struct {
		Threshold float64 `yaml:"threshold"`
		Edges     []Edge  `yaml:"edges"`
		Stats     struct {
			EdgeCount int `yaml:"edge_count"`
		} `yaml:"stats"`
	}
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	assert.Equal(t, 0.6, decoded.Threshold)
	assert.Len(t, decoded.Edges, 1)
	assert.Equal(t, 1, decoded.Stats.EdgeCount)
}

func TestExportDOT(t *testing.T) {
	v := BuildView(scenarioGraph(), DefaultRange(), 0.5, "alpha", 0)

	dot := ExportDOT(v)

	assert.True(t, strings.HasPrefix(dot, "graph semnet {"))
	assert.Contains(t, dot, `"A" -- "B"`)
	assert.Contains(t, dot, `"B" -- "C"`)
	assert.Contains(t, dot, `label="Alpha"`)
	assert.Contains(t, dot, "penwidth=3")
	assert.NotContains(t, dot, "->")
}

func TestExportHTML(t *testing.T) {
	v := BuildView(scenarioGraph(), DefaultRange(), 0.6, "gamma", 3)

	html, err := ExportHTML(v)
	require.NoError(t, err)

	assert.Contains(t, html, "<title>semnet relations</title>")
	assert.Contains(t, html, "Alpha")
	assert.Contains(t, html, "canvas")
	assert.Contains(t, html, `let highlighted="C";`)
	assert.Contains(t, html, "const TOPK=3;")
	assert.Contains(t, html, "let threshold=0.6;")
	// Every edge ships so the slider can re-filter client-side.
	assert.Contains(t, html, `"weight":0.5`)
	assert.NotContains(t, html, "%!")
	// The first paint uses the stats computed here, not the page's own.
	assert.Contains(t, html, "layoutEdges();renderStats();")
	assert.Contains(t, html, `"avg_weighted_degree":`)
}

func TestExportHTMLEscapesScriptContent(t *testing.T) {
	hostile := "x</script><script>alert(1)</script>"
	g := New(
		[]Node{{ID: hostile, Label: "Solo </script>"}, {ID: "b", Label: "Other"}},
		[]Edge{{Source: hostile, Target: "b", Weight: 0.6}},
	)
	v := BuildView(g, DefaultRange(), 0.5, "solo", 0)
	require.Equal(t, hostile, v.Highlight.Highlighted)

	html, err := ExportHTML(v)
	require.NoError(t, err)

	assert.Equal(t, 1, strings.Count(html, "</script>"), "only the page's own closing tag")
	assert.NotContains(t, html, "<script>alert")
	assert.Contains(t, html, `let highlighted="x\u003c/script\u003e`)
}

func TestExportDOTNegativeTopic(t *testing.T) {
	g := New([]Node{{ID: "n", Label: "Neg", Topic: -3}, {ID: "p", Label: "Pos", Topic: 13}}, nil)

	dot := ExportDOT(BuildView(g, DefaultRange(), 0.5, "", 0))

	assert.Contains(t, dot, `label="Neg", colorscheme=set310, fillcolor=8`)
	assert.Contains(t, dot, `label="Pos", colorscheme=set310, fillcolor=4`)
}
