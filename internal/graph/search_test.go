package graph

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func tenNodes() []Node {
	labels := []string{
		"Glasgow Sculpture Studios", "Transmission Gallery", "Cell Project Space",
		"Kunsthalle Wien", "Flat Time House", "Studio Voltaire",
		"Artspace Sydney", "Printed Matter", "La Box", "Le Bon Accueil",
	}
	nodes := make([]Node, len(labels))
	for i, l := range labels {
		nodes[i] = Node{ID: fmt.Sprintf("s%02d", i), Label: l, Topic: i % 3}
	}
	return nodes
}

func TestResolveHighlight(t *testing.T) {
	nodes := tenNodes()

	t.Run("unique substring highlights one node", func(t *testing.T) {
		h := ResolveHighlight("voltaire", nodes)
		assert.Equal(t, []string{"s05"}, h.Matches)
		assert.Equal(t, "s05", h.Highlighted)
		assert.True(t, h.HasHighlight())
	})

	t.Run("case insensitive and trimmed", func(t *testing.T) {
		h := ResolveHighlight("  KUNSTHALLE ", nodes)
		assert.Equal(t, "kunsthalle", h.Query)
		assert.Equal(t, "s03", h.Highlighted)
	})

	t.Run("two matches yield no highlight", func(t *testing.T) {
		h := ResolveHighlight("gallery", append(nodes, Node{ID: "x", Label: "Other Gallery"}))
		assert.Equal(t, []string{"s01", "x"}, h.Matches)
		assert.Empty(t, h.Highlighted)
		assert.False(t, h.HasHighlight())
	})

	t.Run("several matches keep node order", func(t *testing.T) {
		h := ResolveHighlight("studio", nodes)
		assert.Equal(t, []string{"s00", "s05"}, h.Matches)
		assert.False(t, h.HasHighlight())
	})

	t.Run("no matches", func(t *testing.T) {
		h := ResolveHighlight("nowhere", nodes)
		assert.Empty(t, h.Matches)
		assert.False(t, h.HasHighlight())
	})

	t.Run("empty query", func(t *testing.T) {
		h := ResolveHighlight("", nodes)
		assert.Empty(t, h.Matches)
		assert.False(t, h.HasHighlight())
	})

	t.Run("whitespace query", func(t *testing.T) {
		h := ResolveHighlight(" \t\n", nodes)
		assert.Empty(t, h.Matches)
		assert.False(t, h.HasHighlight())
	})

	t.Run("matches labels not ids", func(t *testing.T) {
		h := ResolveHighlight("s05", nodes)
		assert.Empty(t, h.Matches)
	})
}

func TestGraphSearch(t *testing.T) {
	g := scenarioGraph()

	assert.Equal(t, "B", g.Search("bet").Highlighted)
	assert.False(t, g.Search("a").HasHighlight())
}
