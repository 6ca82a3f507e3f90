// Package survey turns survey answer counts into pie-chart shares.
package survey

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
)

// Counts maps an answer label to how many respondents gave it.
type Counts map[string]int

// Share is one slice of the pie.
type Share struct {
	Label   string  `json:"label" yaml:"label"`
	Count   int     `json:"count" yaml:"count"`
	Percent float64 `json:"percent" yaml:"percent"`
}

// Decode reads a {label: count} JSON object.
func Decode(r io.Reader) (Counts, error) {
	var c Counts
	if err := json.NewDecoder(r).Decode(&c); err != nil {
		return nil, fmt.Errorf("survey parse: %w", err)
	}
	if c == nil {
		c = Counts{}
	}
	return c, nil
}

// LoadFile reads counts from path.
func LoadFile(path string) (Counts, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("survey open: %w", err)
	}
	defer f.Close()

	c, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Total sums the non-negative counts.
func (c Counts) Total() int {
	total := 0
	for _, n := range c {
		if n > 0 {
			total += n
		}
	}
	return total
}

// Shares returns one entry per label, largest first, ties by label.
// Negative counts are dropped. A zero total yields 0% for every share.
func (c Counts) Shares() []Share {
	total := c.Total()

	out := make([]Share, 0, len(c))
	for label, n := range c {
		if n < 0 {
			continue
		}
		s := Share{Label: label, Count: n}
		if total > 0 {
			s.Percent = float64(n) * 100 / float64(total)
		}
		out = append(out, s)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Label < out[j].Label
	})
	return out
}
