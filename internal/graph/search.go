package graph

import "strings"

// Highlight is the outcome of a label search. Highlighted is empty unless
// exactly one node matched.
type Highlight struct {
	Query       string   `json:"query" yaml:"query"`
	Matches     []string `json:"matches" yaml:"matches"`
	Highlighted string   `json:"highlighted,omitempty" yaml:"highlighted,omitempty"`
}

// HasHighlight reports whether a single node was selected.
func (h Highlight) HasHighlight() bool {
	return h.Highlighted != ""
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ResolveHighlight matches query case-insensitively as a substring of node
// labels. Matches are returned in node order.
func ResolveHighlight(query string, nodes []Node) Highlight {
	q := normalize(query)
	h := Highlight{Query: q, Matches: []string{}}
	if q == "" {
		return h
	}

	for _, n := range nodes {
		if strings.Contains(strings.ToLower(n.Label), q) {
			h.Matches = append(h.Matches, n.ID)
		}
	}
	if len(h.Matches) == 1 {
		h.Highlighted = h.Matches[0]
	}
	return h
}

// Search resolves query against this graph's nodes.
func (g *Graph) Search(query string) Highlight {
	return ResolveHighlight(query, g.Nodes)
}
