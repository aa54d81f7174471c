package rfdepth

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-seis/dsp/core"
	"github.com/cwbudde/algo-seis/dsp/interp"
	"github.com/cwbudde/algo-seis/seis/curve"
	"github.com/cwbudde/algo-seis/seis/geo"
	"github.com/cwbudde/algo-seis/seis/station"
	"github.com/cwbudde/algo-seis/seis/velmod"
	"go.uber.org/zap"
)

// MoveoutResult holds moveout-corrected traces.
type MoveoutResult struct {
	// Corrected holds the corrected prime component.
	Corrected [][]float64
	// Transverse is nil for single-component records.
	Transverse [][]float64
	// EndIndex is the last valid depth index of each event's delay curve.
	EndIndex []int
}

// MoveoutCorrect maps channel comp of every event onto the time axis it
// would have for reference ray parameter refRayP (s/rad), using delay
// curves from m. comp must be the record's prime component or Transverse.
// It returns the corrected rows and the last valid depth index per event.
func MoveoutCorrect(rec *station.Record, refRayP float64, comp station.Component, m Model1D, opts ...Option) ([][]float64, []int, error) {
	cfg := ApplyOptions(opts...)
	if comp != rec.Prime() && comp != station.Transverse {
		return nil, nil, fmt.Errorf("%w: cannot correct %s", station.ErrMissingComponent, comp)
	}
	data, err := rec.Data(comp)
	if err != nil {
		return nil, nil, err
	}
	if err := checkDepths(m.Depths()); err != nil {
		return nil, nil, err
	}

	ref := mapTimes(m, velmod.Constant(refRayP), velmod.Constant(refRayP), cfg.Sphere).Tps
	timeAxis := rec.TimeAxis()

	n := rec.NumEvents()
	out := make([][]float64, n)
	end := make([]int, n)
	forEach(cfg, n, eventName(rec),
		func(i int) {
			p := velmod.Constant(geo.SkmToSrad(rec.Events[i].RayP))
			tps := mapTimes(m, p, p, cfg.Sphere).Tps
			end[i] = tps.EndIndex()
			if tps.Truncated() {
				cfg.Logger.Debug("ray turns above the depth grid bottom",
					zap.Int("event", i), zap.Int("end_index", end[i]))
			}
			out[i] = moveoutRow(data[i], tps, ref, timeAxis, rec.Sampling, rec.Shift)
		},
		func(i int) {
			out[i] = make([]float64, rec.Length)
			end[i] = -1
		})
	return out, end, nil
}

// moveoutRow maps one trace from its observed delay curve tps onto the
// reference curve ref.
func moveoutRow(data []float64, tps, ref curve.Curve, timeAxis []float64, sampling, shift float64) []float64 {
	n := len(data)
	obs := tps.Valid()

	// Pre-event samples keep their times; the last one sits at exactly 0.
	axis := make([]float64, 0, n+1)
	for k := 0; -shift+float64(k)*sampling < 0; k++ {
		axis = append(axis, -shift+float64(k)*sampling)
	}
	axis = append(axis, 0)

	for j := max(int(shift/sampling+1), 0); j < n; j++ {
		t := float64(j)*sampling - shift
		k := firstAtOrAbove(obs, t)
		if k < 0 {
			break
		}
		rk, ok := ref.At(k)
		if !ok {
			break
		}
		t0, r0 := 0.0, 0.0
		if k > 0 {
			t0 = obs[k-1]
			if r0, ok = ref.At(k - 1); !ok {
				break
			}
		}
		if den := obs[k] - t0; den != 0 {
			axis = append(axis, r0+(t-t0)*(rk-r0)/den)
		} else {
			axis = append(axis, rk)
		}
	}

	endIdx := min(len(axis), n)
	temp := core.NaNs(n)
	if lin, err := interp.NewLinear(interp.Monotone(axis[:endIdx], data[:endIdx])); err == nil {
		temp = lin.Eval(timeAxis)
	}

	firstNaN := -1
	for i, v := range temp {
		if math.IsNaN(v) {
			firstNaN = i
			break
		}
	}
	if firstNaN < 0 {
		return temp
	}

	spliced := make([]float64, 0, n)
	if firstNaN > 1 {
		spliced = append(spliced, temp[1:firstNaN]...)
	}
	if endIdx+1 < n {
		spliced = append(spliced, data[endIdx+1:]...)
	}
	return core.FitLen(spliced, n)
}

// firstAtOrAbove returns the first index k with t <= xs[k], or -1.
func firstAtOrAbove(xs []float64, t float64) int {
	for k, x := range xs {
		if t <= x {
			return k
		}
	}
	return -1
}

func eventName(rec *station.Record) func(int) string {
	return func(i int) string { return rec.Events[i].Name }
}
