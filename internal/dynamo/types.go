package dynamo

import "math"

// State is a flat snapshot of per-particle values.
type State []float64

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// MaxAbsDiff returns the largest element-wise difference between s and other.
// Lengths must match; a mismatch reports +Inf.
func (s State) MaxAbsDiff(other State) float64 {
	if len(s) != len(other) {
		return math.Inf(1)
	}
	m := 0.0
	for i := range s {
		if d := math.Abs(s[i] - other[i]); d > m {
			m = d
		}
	}
	return m
}
