package graph

// Node is an artist-run space in the semantic network.
type Node struct {
	ID    string `json:"id" yaml:"id"`
	Label string `json:"space_name" yaml:"space_name"`
	Topic int    `json:"topic" yaml:"topic"`
}

// Edge is an undirected similarity link between two nodes.
type Edge struct {
	Source string  `json:"source" yaml:"source"`
	Target string  `json:"target" yaml:"target"`
	Weight float64 `json:"weight" yaml:"weight"`
}

// Graph is the full semantic network. It is treated as immutable once loaded:
// every derived structure is a fresh value.
type Graph struct {
	Nodes []Node `json:"nodes" yaml:"nodes"`
	Edges []Edge `json:"edges" yaml:"edges"`
}

// New creates a graph over copies of the given nodes and edges.
func New(nodes []Node, edges []Edge) *Graph {
	g := &Graph{
		Nodes: make([]Node, len(nodes)),
		Edges: make([]Edge, len(edges)),
	}
	copy(g.Nodes, nodes)
	copy(g.Edges, edges)
	return g
}

// Visible returns a graph sharing this graph's nodes with only the edges at or
// above threshold t.
func (g *Graph) Visible(t float64) *Graph {
	return &Graph{Nodes: g.Nodes, Edges: FilterEdges(g.Edges, t)}
}

// NodeIndex maps node ids to their position in Nodes.
func (g *Graph) NodeIndex() map[string]int {
	idx := make(map[string]int, len(g.Nodes))
	for i, n := range g.Nodes {
		idx[n.ID] = i
	}
	return idx
}

// Topics returns the distinct topic values in first-seen order.
func (g *Graph) Topics() []int {
	seen := make(map[int]bool)
	var topics []int
	for _, n := range g.Nodes {
		if !seen[n.Topic] {
			seen[n.Topic] = true
			topics = append(topics, n.Topic)
		}
	}
	return topics
}
