package graph

import "math"

// Default threshold bounds for the edge-weight slider.
const (
	DefaultThresholdMin  = 0.49
	DefaultThresholdMax  = 0.65
	DefaultThresholdStep = 0.01
)

// ThresholdRange bounds the edge-weight threshold.
type ThresholdRange struct {
	Min  float64 `json:"min" yaml:"min"`
	Max  float64 `json:"max" yaml:"max"`
	Step float64 `json:"step" yaml:"step"`
}

// DefaultRange returns the default slider bounds.
func DefaultRange() ThresholdRange {
	return ThresholdRange{Min: DefaultThresholdMin, Max: DefaultThresholdMax, Step: DefaultThresholdStep}
}

// Normalize swaps inverted bounds and replaces a non-positive step.
func (r ThresholdRange) Normalize() ThresholdRange {
	if r.Min > r.Max {
		r.Min, r.Max = r.Max, r.Min
	}
	if r.Step <= 0 || math.IsNaN(r.Step) {
		r.Step = DefaultThresholdStep
	}
	return r
}

// Clamp pulls t into [Min, Max]. NaN clamps to Min.
func (r ThresholdRange) Clamp(t float64) float64 {
	r = r.Normalize()
	switch {
	case math.IsNaN(t), t < r.Min:
		return r.Min
	case t > r.Max:
		return r.Max
	default:
		return t
	}
}

// FilterEdges returns, in their original order, the edges whose weight is at
// least t. The input slice is not modified.
func FilterEdges(edges []Edge, t float64) []Edge {
	visible := make([]Edge, 0, len(edges))
	for _, e := range edges {
		if e.Weight >= t {
			visible = append(visible, e)
		}
	}
	return visible
}
