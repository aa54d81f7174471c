package rfdepth

import (
	"github.com/cwbudde/algo-seis/dsp/core"
	"github.com/cwbudde/algo-seis/dsp/interp"
	"github.com/cwbudde/algo-seis/seis/curve"
	"github.com/cwbudde/algo-seis/seis/velmod"
)

// Mapping holds the per-depth ray geometry of one event on the model's
// depth grid. Offsets are radians of arc with the spherical treatment and
// km otherwise; LenS and LenP are segment lengths in km.
type Mapping struct {
	Tps        curve.Curve
	XS, XP     curve.Curve
	LenS, LenP curve.Curve
}

// MapTimes computes the Ps-P delay, leg offsets and leg segment lengths for
// S-leg slowness ps and P-leg slowness pp. With a non-zero station
// elevation the curves are evaluated on the elevation-adjusted grid and
// re-interpolated onto m.Depths().
func MapTimes(m Model1D, ps, pp velmod.Slowness, opts ...Option) Mapping {
	cfg := ApplyOptions(opts...)
	return mapTimes(m, ps, pp, cfg.Sphere)
}

func mapTimes(m Model1D, ps, pp velmod.Slowness, sphere bool) Mapping {
	mp := Mapping{
		Tps:  m.TravelTimeDiff(ps, pp, sphere),
		XS:   m.Offset(ps, velmod.S, sphere),
		XP:   m.Offset(pp, velmod.P, sphere),
		LenS: m.PathLength(ps, velmod.S, sphere),
		LenP: m.PathLength(pp, velmod.P, sphere),
	}
	if m.Elevation() == 0 {
		return mp
	}

	from, to := m.ElevationDepths(), m.Depths()
	mp.Tps = regrid(mp.Tps, from, to)
	mp.XS = regrid(mp.XS, from, to)
	mp.XP = regrid(mp.XP, from, to)
	mp.LenS = regrid(mp.LenS, from, to)
	mp.LenP = regrid(mp.LenP, from, to)
	return mp
}

// regrid linearly re-interpolates c from depths from onto depths to.
// Depths past the last valid sample are invalid when c turned evanescent
// and take the last valid value otherwise.
func regrid(c curve.Curve, from, to []float64) curve.Curve {
	vals := c.Valid()
	if len(vals) == 0 {
		return curve.New(len(to))
	}
	lin, err := interp.NewLinear(from[:len(vals)], vals)
	if err != nil {
		return curve.New(len(to))
	}

	_, hi := lin.Bounds()
	last := vals[len(vals)-1]
	truncated := c.Truncated()

	out := core.NaNs(len(to))
	for i, d := range to {
		if v, ok := lin.At(d); ok {
			out[i] = v
			continue
		}
		if d > hi && !truncated {
			out[i] = last
		}
	}
	return curve.FromFloats(out)
}
