package rfdepth

import (
	"strconv"

	"github.com/cwbudde/algo-seis/dsp/core"
	"github.com/cwbudde/algo-seis/seis/curve"
	"github.com/cwbudde/algo-seis/seis/velmod"
	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/floats"
)

// MigrationCorrect adds the 3-D travel-time correction to the delay curve
// of every path. For each depth step the correction is
//
//	Ls/(vs(1+dvs)) - Ls/vs - (Lp/(vp(1+dvp)) - Lp/vp)
//
// with segment lengths L, 1-D reference velocities v and perturbations dv
// sampled at the leg's conversion point. Non-finite steps contribute zero.
// Samples invalid in the input curve stay invalid.
func MigrationCorrect(paths []RayPath, depths []float64, m3d Model3D, opts ...Option) []curve.Curve {
	cfg := ApplyOptions(opts...)
	cvs := m3d.RefVelocity(velmod.S)
	cvp := m3d.RefVelocity(velmod.P)

	out := make([]curve.Curve, len(paths))
	forEach(cfg, len(paths), strconv.Itoa,
		func(i int) {
			p := paths[i]
			dvs := m3d.PerturbationAt(depths, p.LatS, p.LonS, velmod.S)
			dvp := m3d.PerturbationAt(depths, p.LatP, p.LonP, velmod.P)
			corr := Correction(p.LenS.Floats(), p.LenP.Floats(), cvs, cvp, dvs, dvp)
			out[i] = p.Tps.Add(corr)
		},
		func(i int) { out[i] = curve.New(paths[i].Tps.Len()) })
	return out
}

// Correction returns the cumulative 3-D delay correction for segment
// lengths ls, lp, reference velocities cvs, cvp and perturbations dvs, dvp.
// The result has the length of the shortest input.
func Correction(ls, lp, cvs, cvp, dvs, dvp []float64) []float64 {
	n := min(len(ls), len(lp), len(cvs), len(cvp), len(dvs), len(dvp))
	ts := make([]float64, n)
	tp := make([]float64, n)
	for j := 0; j < n; j++ {
		ts[j] = ls[j]/(cvs[j]*(1+dvs[j])) - ls[j]/cvs[j]
		tp[j] = -(lp[j]/(cvp[j]*(1+dvp[j])) - lp[j]/cvp[j])
	}
	vecmath.AddBlockInPlace(ts, tp)
	for j, v := range ts {
		if !core.IsFinite(v) {
			ts[j] = 0
		}
	}
	floats.CumSum(ts, ts)
	return ts
}
