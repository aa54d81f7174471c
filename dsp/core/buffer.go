package core

import "math"

// Fill sets all values in buf to v.
func Fill(buf []float64, v float64) {
	for i := range buf {
		buf[i] = v
	}
}

// NaNs returns a slice of length n filled with NaN, the marker for samples
// that have no defined value.
func NaNs(n int) []float64 {
	out := make([]float64, n)
	Fill(out, math.NaN())
	return out
}

// CloneRows deep-copies a row-major matrix.
func CloneRows(rows [][]float64) [][]float64 {
	if rows == nil {
		return nil
	}
	out := make([][]float64, len(rows))
	for i, r := range rows {
		out[i] = append([]float64(nil), r...)
	}
	return out
}

// FitLen copies src into a new slice of length n, truncating or zero-padding
// at the end.
func FitLen(src []float64, n int) []float64 {
	out := make([]float64, n)
	copy(out, src)
	return out
}
