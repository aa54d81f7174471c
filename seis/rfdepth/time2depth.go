package rfdepth

import (
	"fmt"

	"github.com/cwbudde/algo-seis/dsp/core"
	"github.com/cwbudde/algo-seis/dsp/interp"
	"github.com/cwbudde/algo-seis/seis/curve"
	"github.com/cwbudde/algo-seis/seis/station"
	"go.uber.org/zap"
)

// DepthImage is a station's receiver functions on a depth grid.
type DepthImage struct {
	Depths []float64
	// Amplitudes has one row per event. Depths outside an event's converted
	// range are NaN; events without a usable conversion are all zero.
	Amplitudes [][]float64
	// EndIndex is the last valid depth index per event, -1 when the ray is
	// evanescent at the first sample.
	EndIndex []int
}

// TimeToDepth resamples the prime component of rec from time to depth
// using one delay curve per event on depths. With normalization enabled the
// amplitudes are normalized first; rec itself is never modified.
func TimeToDepth(rec *station.Record, depths []float64, tps []curve.Curve, opts ...Option) (*DepthImage, error) {
	cfg := ApplyOptions(opts...)
	if err := checkDepths(depths); err != nil {
		return nil, err
	}
	if len(tps) != rec.NumEvents() {
		return nil, fmt.Errorf("%w: %d curves for %d events", ErrShapeMismatch, len(tps), rec.NumEvents())
	}
	for i, c := range tps {
		if c.Len() != len(depths) {
			return nil, fmt.Errorf("%w: curve %d has %d samples for %d depths", ErrShapeMismatch, i, c.Len(), len(depths))
		}
	}

	if cfg.Normalize {
		rec = rec.Normalize(cfg.NormMethod)
	}
	data, err := rec.Data(rec.Prime())
	if err != nil {
		return nil, err
	}
	timeAxis := rec.TimeAxis()

	img := &DepthImage{
		Depths:     append([]float64(nil), depths...),
		Amplitudes: make([][]float64, rec.NumEvents()),
		EndIndex:   make([]int, rec.NumEvents()),
	}
	forEach(cfg, rec.NumEvents(), eventName(rec),
		func(i int) {
			img.EndIndex[i] = tps[i].EndIndex()
			row, ok := depthRow(data[i], timeAxis, depths, tps[i])
			if !ok {
				cfg.Logger.Debug("no usable conversion", zap.Int("event", i), zap.String("name", rec.Events[i].Name))
			}
			img.Amplitudes[i] = row
		},
		func(i int) { img.Amplitudes[i] = make([]float64, len(depths)) })
	return img, nil
}

// depthRow converts one trace. It returns an all-zero row and false when
// the delay curve defines no depth for any sample of the trace.
func depthRow(amp, timeAxis, depths []float64, tps curve.Curve) ([]float64, bool) {
	zero := make([]float64, len(depths))

	toDepth, ok := timeToDepth(tps, depths)
	if !ok {
		return zero, false
	}
	depthAxis := toDepth.Eval(timeAxis)

	var dv, av []float64
	last := -1
	for j, d := range depthAxis {
		if !core.IsFinite(d) {
			continue
		}
		dv = append(dv, d)
		last = j
	}
	if last < 0 || last >= len(amp) {
		return zero, false
	}
	for j, d := range depthAxis {
		if core.IsFinite(d) {
			av = append(av, amp[j])
		}
	}

	lin, err := interp.NewLinear(interp.Monotone(dv, av))
	if err != nil {
		return zero, false
	}
	return lin.Eval(depths), true
}

// timeToDepth builds the delay-to-depth interpolant from the strictly
// increasing part of the valid prefix of tps.
func timeToDepth(tps curve.Curve, depths []float64) (*interp.Linear, bool) {
	vals := tps.Valid()
	tx, dy := interp.Monotone(vals, depths[:len(vals)])
	if len(tx) < 2 {
		return nil, false
	}
	lin, err := interp.NewLinear(tx, dy)
	if err != nil {
		return nil, false
	}
	return lin, true
}

// DepthToTime maps a depth profile back onto timeAxis through delay curve
// tps. Times outside the curve's range, and depths where the profile is
// undefined, yield NaN.
func DepthToTime(profile, depths []float64, tps curve.Curve, timeAxis []float64) []float64 {
	out := core.NaNs(len(timeAxis))

	toDepth, ok := timeToDepth(tps, depths)
	if !ok {
		return out
	}
	amp, err := interp.NewLinear(interp.Monotone(depths, profile))
	if err != nil {
		return out
	}
	for j, t := range timeAxis {
		if d, ok := toDepth.At(t); ok {
			out[j], _ = amp.At(d)
		}
	}
	return out
}
