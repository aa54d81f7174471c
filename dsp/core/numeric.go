package core

import "math"

// Clamp limits value to the inclusive range [min, max].
func Clamp(value, min, max float64) float64 {
	if min > max {
		min, max = max, min
	}

	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// IsFinite reports whether x is neither NaN nor infinite.
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// Arange returns start, start+step, ... for all values strictly below stop.
// It mirrors the half-open grids used to describe depth axes.
// Returns nil for a non-positive step or an empty range.
func Arange(start, stop, step float64) []float64 {
	if step <= 0 || stop <= start {
		return nil
	}

	n := int(math.Ceil((stop - start) / step))
	out := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		v := start + float64(i)*step
		if v >= stop {
			break
		}
		out = append(out, v)
	}

	return out
}

// StrictlyIncreasing reports whether xs has at least one element and every
// element is finite and greater than its predecessor.
func StrictlyIncreasing(xs []float64) bool {
	if len(xs) == 0 {
		return false
	}
	for i, x := range xs {
		if !IsFinite(x) {
			return false
		}
		if i > 0 && x <= xs[i-1] {
			return false
		}
	}

	return true
}

// MeanStep returns the average spacing of xs, or 0 for fewer than two values.
func MeanStep(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}

	return (xs[len(xs)-1] - xs[0]) / float64(len(xs)-1)
}
