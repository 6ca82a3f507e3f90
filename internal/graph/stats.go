package graph

import "sort"

// DefaultTopK is the number of central nodes reported when none is requested.
const DefaultTopK = 5

// WeightSummary describes the weights of the visible edges.
type WeightSummary struct {
	Min    float64 `json:"min" yaml:"min"`
	Max    float64 `json:"max" yaml:"max"`
	Mean   float64 `json:"mean" yaml:"mean"`
	Median float64 `json:"median" yaml:"median"`
}

// NodeDegree is the degree of one node over the visible edges.
type NodeDegree struct {
	ID             string  `json:"id" yaml:"id"`
	Degree         int     `json:"degree" yaml:"degree"`
	WeightedDegree float64 `json:"weighted_degree" yaml:"weighted_degree"`
}

// CentralNode is an entry in the degree-centrality ranking.
type CentralNode struct {
	ID     string `json:"id" yaml:"id"`
	Name   string `json:"name" yaml:"name"`
	Degree int    `json:"degree" yaml:"degree"`
}

// Stats holds descriptive network statistics. Density is nil for fewer than
// two nodes and Weights is nil when there are no edges.
type Stats struct {
	NodeCount         int            `json:"node_count" yaml:"node_count"`
	EdgeCount         int            `json:"edge_count" yaml:"edge_count"`
	Density           *float64       `json:"density" yaml:"density"`
	AvgDegree         float64        `json:"avg_degree" yaml:"avg_degree"`
	AvgWeightedDegree float64        `json:"avg_weighted_degree" yaml:"avg_weighted_degree"`
	Weights           *WeightSummary `json:"weights" yaml:"weights"`
	TopicCount        int            `json:"topic_count" yaml:"topic_count"`
	CentralNodes      []CentralNode  `json:"central_nodes" yaml:"central_nodes"`
	Degrees           []NodeDegree   `json:"degrees" yaml:"degrees"`
}

// ComputeStats derives network statistics for nodes over edges. Edges with an
// endpoint outside the node set are ignored and do not count towards
// EdgeCount, and so are edges whose weight fails ValidWeight. Neither slice
// is modified.
func ComputeStats(nodes []Node, edges []Edge, topK int) Stats {
	if topK <= 0 {
		topK = DefaultTopK
	}

	n := len(nodes)
	idx := make(map[string]int, n)
	for i, node := range nodes {
		if _, dup := idx[node.ID]; !dup {
			idx[node.ID] = i
		}
	}

	degree := make([]int, n)
	weighted := make([]float64, n)
	weights := make([]float64, 0, len(edges))
	for _, e := range edges {
		si, ok := idx[e.Source]
		if !ok {
			continue
		}
		ti, ok := idx[e.Target]
		if !ok || !ValidWeight(e.Weight) {
			continue
		}
		degree[si]++
		degree[ti]++
		weighted[si] += e.Weight
		weighted[ti] += e.Weight
		weights = append(weights, e.Weight)
	}

	s := Stats{
		NodeCount:    n,
		EdgeCount:    len(weights),
		Density:      density(n, len(weights)),
		Weights:      summarizeWeights(weights),
		TopicCount:   countTopics(nodes),
		CentralNodes: topByDegree(nodes, degree, topK),
		Degrees:      make([]NodeDegree, n),
	}

	var degreeSum int
	var weightedSum float64
	for i, node := range nodes {
		s.Degrees[i] = NodeDegree{ID: node.ID, Degree: degree[i], WeightedDegree: weighted[i]}
		degreeSum += degree[i]
		weightedSum += weighted[i]
	}
	if n > 0 {
		s.AvgDegree = float64(degreeSum) / float64(n)
		s.AvgWeightedDegree = weightedSum / float64(n)
	}
	return s
}

// Stats computes statistics for this graph's nodes over its edges.
func (g *Graph) Stats(topK int) Stats {
	return ComputeStats(g.Nodes, g.Edges, topK)
}

func density(n, m int) *float64 {
	if n < 2 {
		return nil
	}
	d := 2 * float64(m) / (float64(n) * float64(n-1))
	return &d
}

// summarizeWeights sorts weights in place; callers pass a private copy.
func summarizeWeights(weights []float64) *WeightSummary {
	if len(weights) == 0 {
		return nil
	}
	sort.Float64s(weights)

	// Running mean; a plain sum can overflow before the division.
	var mean float64
	for i, w := range weights {
		mean += (w - mean) / float64(i+1)
	}

	m := len(weights)
	median := weights[m/2]
	if m%2 == 0 {
		median = (weights[m/2-1] + weights[m/2]) / 2
	}

	return &WeightSummary{
		Min:    weights[0],
		Max:    weights[m-1],
		Mean:   mean,
		Median: median,
	}
}

func countTopics(nodes []Node) int {
	topics := make(map[int]bool)
	for _, n := range nodes {
		topics[n.Topic] = true
	}
	return len(topics)
}

// topByDegree selects the k highest-degree nodes. A node only moves ahead of
// an earlier one with a strictly higher degree, so ties keep node order.
func topByDegree(nodes []Node, degree []int, k int) []CentralNode {
	top := make([]CentralNode, 0, min(k, len(nodes)))
	for i, n := range nodes {
		d := degree[i]
		if len(top) == k && d <= top[k-1].Degree {
			continue
		}
		pos := len(top)
		for pos > 0 && top[pos-1].Degree < d {
			pos--
		}
		entry := CentralNode{ID: n.ID, Name: n.Label, Degree: d}
		if len(top) < k {
			top = append(top, CentralNode{})
		}
		copy(top[pos+1:], top[pos:len(top)-1])
		top[pos] = entry
	}
	return top
}
