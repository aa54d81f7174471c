package rfdepth

import (
	"math"

	"github.com/cwbudde/algo-seis/dsp/interp"
)

// peakSteps is the number of sub-sample positions probed on each side of
// the peak sample.
const peakSteps = 16

// PeakTime returns the axis position of the largest sample of trace,
// refined between samples with 4-point Hermite interpolation. axis must be
// uniformly spaced. NaN samples are ignored; ok is false when no sample is
// finite.
func PeakTime(trace, axis []float64) (pos float64, ok bool) {
	n := min(len(trace), len(axis))
	best := -1
	for i := 0; i < n; i++ {
		if math.IsNaN(trace[i]) {
			continue
		}
		if best < 0 || trace[i] > trace[best] {
			best = i
		}
	}
	if best < 0 {
		return math.NaN(), false
	}

	pos, peak := axis[best], trace[best]
	// Segment [k, k+1] needs samples k-1..k+2.
	for k := best - 1; k <= best; k++ {
		if k < 1 || k+2 >= n {
			continue
		}
		xm1, x0, x1, x2 := trace[k-1], trace[k], trace[k+1], trace[k+2]
		if math.IsNaN(xm1 + x0 + x1 + x2) {
			continue
		}
		step := axis[k+1] - axis[k]
		for s := 1; s < peakSteps; s++ {
			t := float64(s) / peakSteps
			if v := interp.Hermite4(t, xm1, x0, x1, x2); v > peak {
				pos, peak = axis[k]+t*step, v
			}
		}
	}
	return pos, true
}
