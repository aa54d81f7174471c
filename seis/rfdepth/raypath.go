package rfdepth

import (
	"math"

	"github.com/cwbudde/algo-seis/dsp/core"
	"github.com/cwbudde/algo-seis/seis/curve"
	"github.com/cwbudde/algo-seis/seis/geo"
	"github.com/cwbudde/algo-seis/seis/station"
	"github.com/cwbudde/algo-seis/seis/velmod"
	"gonum.org/v1/gonum/floats"
)

// RayPath is the traced geometry of one event on the caller's depth grid.
// XS and XP are radians of arc for spherical 1-D tracing and km otherwise.
// LenS and LenP are segment lengths (km) of the step ending at each depth.
// Conversion-point coordinates are NaN where the leg is evanescent.
type RayPath struct {
	Tps        curve.Curve
	XS, XP     curve.Curve
	LenS, LenP curve.Curve
	LatS, LonS []float64
	LatP, LonP []float64
}

// CumulativeLength returns the path length of the leg from the surface to
// each depth.
func (p RayPath) CumulativeLength(phase velmod.Phase) curve.Curve {
	seg := p.LenP
	if phase == velmod.S {
		seg = p.LenS
	}
	vals := seg.Valid()
	floats.CumSum(vals, vals)

	out := curve.New(seg.Len())
	for i, v := range vals {
		out[i] = curve.Valid(v)
	}
	return out
}

// invalidPath is the result of an event whose tracing failed.
func invalidPath(n int) RayPath {
	return RayPath{
		Tps: curve.New(n), XS: curve.New(n), XP: curve.New(n),
		LenS: curve.New(n), LenP: curve.New(n),
		LatS: core.NaNs(n), LonS: core.NaNs(n), LatP: core.NaNs(n), LonP: core.NaNs(n),
	}
}

// project converts leg offsets to conversion points along the event's
// back-azimuth. angular selects radians (true) or km (false) for x.
func project(rec *station.Record, ev station.Event, x curve.Curve, angular bool) (lat, lon []float64) {
	lat = make([]float64, x.Len())
	lon = make([]float64, x.Len())
	for i := range lat {
		v, ok := x.At(i)
		if !ok {
			lat[i], lon[i] = math.NaN(), math.NaN()
			continue
		}
		deg := geo.KmToDeg(v)
		if angular {
			deg = geo.RadToDeg(v)
		}
		lat[i], lon[i] = geo.Destination(rec.Lat, rec.Lon, ev.Baz, deg)
	}
	return lat, lon
}
