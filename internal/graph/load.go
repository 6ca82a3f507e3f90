package graph

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strings"
)

// LoadReport counts what the loader accepted and what it skipped.
type LoadReport struct {
	Nodes          int `json:"nodes"`
	Edges          int `json:"edges"`
	MalformedNodes int `json:"malformed_nodes"`
	DuplicateNodes int `json:"duplicate_nodes"`
	MalformedEdges int `json:"malformed_edges"`
	DanglingEdges  int `json:"dangling_edges"`
}

// Skipped returns the total number of records dropped.
func (r LoadReport) Skipped() int {
	return r.MalformedNodes + r.DuplicateNodes + r.MalformedEdges + r.DanglingEdges
}

// Log writes the report to logger, at WARN when anything was skipped.
func (r LoadReport) Log(logger *slog.Logger, source string) {
	if logger == nil {
		return
	}
	attrs := []any{
		"source", source,
		"nodes", r.Nodes,
		"edges", r.Edges,
	}
	if r.Skipped() == 0 {
		logger.Info("graph loaded", attrs...)
		return
	}
	attrs = append(attrs,
		"malformed_nodes", r.MalformedNodes,
		"duplicate_nodes", r.DuplicateNodes,
		"malformed_edges", r.MalformedEdges,
		"dangling_edges", r.DanglingEdges,
	)
	logger.Warn("graph loaded with skipped records", attrs...)
}

// MaxWeight bounds accepted edge weights so that degree and weight sums stay
// finite for any realistic edge count.
const MaxWeight = 1e12

// ValidWeight reports whether w is a usable edge weight: finite and within
// [0, MaxWeight].
func ValidWeight(w float64) bool {
	return !math.IsNaN(w) && w >= 0 && w <= MaxWeight
}

type payload struct {
	Nodes []json.RawMessage `json:"nodes"`
	Edges []json.RawMessage `json:"edges"`
	Links []json.RawMessage `json:"links"`
}

type rawNode struct {
	ID        *string  `json:"id"`
	SpaceName *string  `json:"space_name"`
	Name      *string  `json:"name"`
	Topic     *float64 `json:"topic"`
}

type rawEdge struct {
	Source *string  `json:"source"`
	Target *string  `json:"target"`
	Weight *float64 `json:"weight"`
}

// Decode reads a graph payload of the form
// {nodes: [{id, space_name, topic}], edges: [{source, target, weight}]}.
// "name" is accepted for "space_name" and "links" for "edges".
// Records that are missing a required field are skipped and counted; only a
// document that is not valid JSON is an error.
func Decode(r io.Reader) (*Graph, LoadReport, error) {
	var report LoadReport
	var p payload
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return nil, report, fmt.Errorf("graph parse: %w", err)
	}

	g := &Graph{
		Nodes: make([]Node, 0, len(p.Nodes)),
		Edges: make([]Edge, 0, len(p.Edges)+len(p.Links)),
	}

	seen := make(map[string]bool, len(p.Nodes))
	for _, raw := range p.Nodes {
		n, ok := decodeNode(raw)
		if !ok {
			report.MalformedNodes++
			continue
		}
		if seen[n.ID] {
			report.DuplicateNodes++
			continue
		}
		seen[n.ID] = true
		g.Nodes = append(g.Nodes, n)
	}

	for _, raw := range append(p.Edges, p.Links...) {
		e, ok := decodeEdge(raw)
		if !ok {
			report.MalformedEdges++
			continue
		}
		if !seen[e.Source] || !seen[e.Target] {
			report.DanglingEdges++
			continue
		}
		g.Edges = append(g.Edges, e)
	}

	report.Nodes = len(g.Nodes)
	report.Edges = len(g.Edges)
	return g, report, nil
}

func decodeNode(raw json.RawMessage) (Node, bool) {
	var rn rawNode
	if err := json.Unmarshal(raw, &rn); err != nil {
		return Node{}, false
	}
	if rn.ID == nil || strings.TrimSpace(*rn.ID) == "" {
		return Node{}, false
	}

	n := Node{ID: *rn.ID}
	switch {
	case rn.SpaceName != nil:
		n.Label = *rn.SpaceName
	case rn.Name != nil:
		n.Label = *rn.Name
	default:
		n.Label = n.ID
	}
	if rn.Topic != nil {
		t := *rn.Topic
		if t != math.Trunc(t) || t < math.MinInt || t >= math.MaxInt {
			return Node{}, false
		}
		n.Topic = int(t)
	}
	return n, true
}

func decodeEdge(raw json.RawMessage) (Edge, bool) {
	var re rawEdge
	if err := json.Unmarshal(raw, &re); err != nil {
		return Edge{}, false
	}
	if re.Source == nil || *re.Source == "" || re.Target == nil || *re.Target == "" {
		return Edge{}, false
	}
	if re.Weight == nil || !ValidWeight(*re.Weight) {
		return Edge{}, false
	}
	return Edge{Source: *re.Source, Target: *re.Target, Weight: *re.Weight}, true
}

// LoadFile reads and decodes a graph payload from disk.
func LoadFile(path string) (*Graph, LoadReport, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, LoadReport{}, fmt.Errorf("graph open: %w", err)
	}
	defer f.Close()

	g, report, err := Decode(f)
	if err != nil {
		return nil, report, fmt.Errorf("%s: %w", path, err)
	}
	return g, report, nil
}
