package rfdepth

import (
	"math"

	"github.com/cwbudde/algo-seis/dsp/core"
	"github.com/cwbudde/algo-seis/seis/curve"
	"github.com/cwbudde/algo-seis/seis/geo"
	"github.com/cwbudde/algo-seis/seis/station"
	"github.com/cwbudde/algo-seis/seis/velmod"
	"go.uber.org/zap"
)

// Trace3D integrates both legs of every event step by step through m3d.
//
// The traced grid is depths shifted up by the station elevation. At each
// step the leg velocity is sampled at the leg's current conversion point
// and the offset advances by dz*tan(asin(v*p)) km. The Ps-P delay
// accumulates dz/R*(sqrt((R/vs)^2-ps^2) - sqrt((R/vp)^2-pp^2)) with
// R = 6371 - traced depth (spherical) or 6371 + elevation (flat). With a
// non-zero elevation the curves are re-interpolated onto depths.
func Trace3D(rec *station.Record, depths []float64, m3d Model3D, opts ...Option) ([]RayPath, error) {
	cfg := ApplyOptions(opts...)
	if err := checkDepths(depths); err != nil {
		return nil, err
	}

	elev := rec.Elevation
	traced := make([]float64, len(depths))
	for i, d := range depths {
		traced[i] = d - elev
	}

	n := rec.NumEvents()
	paths := make([]RayPath, n)
	forEach(cfg, n, eventName(rec),
		func(i int) {
			ev := rec.Events[i]
			ps, pp, err := slowness(cfg, ev, traced)
			if err != nil {
				cfg.Logger.Warn("ray parameter lookup failed",
					zap.Int("event", i), zap.String("name", ev.Name), zap.Error(err))
				paths[i] = invalidPath(len(depths))
				return
			}

			path := trace3DEvent(rec, ev, traced, m3d, ps, pp, cfg.Sphere)
			if elev != 0 {
				path = RayPath{
					Tps:  regrid(path.Tps, traced, depths),
					XS:   regrid(path.XS, traced, depths),
					XP:   regrid(path.XP, traced, depths),
					LenS: regrid(path.LenS, traced, depths),
					LenP: regrid(path.LenP, traced, depths),
				}
			}
			path.LatS, path.LonS = project(rec, ev, path.XS, false)
			path.LatP, path.LonP = project(rec, ev, path.XP, false)
			paths[i] = path
		},
		func(i int) { paths[i] = invalidPath(len(depths)) })
	return paths, nil
}

// leg is the state of one ray leg during 3-D integration.
type leg struct {
	phase    velmod.Phase
	p        velmod.Slowness
	x, l     []float64
	lat, lon float64
}

func newLeg(n int, phase velmod.Phase, p velmod.Slowness, rec *station.Record) *leg {
	lg := &leg{phase: phase, p: p, x: core.NaNs(n), l: core.NaNs(n), lat: rec.Lat, lon: rec.Lon}
	lg.x[0], lg.l[0] = 0, 0
	return lg
}

// step advances the leg from traced index j to j+1 and returns the
// velocity sampled at the start of the step.
func (lg *leg) step(j int, traced []float64, m3d Model3D, rec *station.Record, ev station.Event) float64 {
	v := m3d.VelocityAt(traced[j], lg.lat, lg.lon, lg.phase)
	dz := traced[j+1] - traced[j]
	sin := v * geo.SradToSkm(lg.p.At(j))
	cos := math.Sqrt(1 - sin*sin)

	lg.x[j+1] = lg.x[j] + dz*sin/cos
	lg.l[j+1] = dz / cos
	if core.IsFinite(lg.x[j+1]) {
		lg.lat, lg.lon = geo.Destination(rec.Lat, rec.Lon, ev.Baz, geo.KmToDeg(lg.x[j+1]))
	}
	return v
}

func trace3DEvent(rec *station.Record, ev station.Event, traced []float64, m3d Model3D, ps, pp velmod.Slowness, sphere bool) RayPath {
	n := len(traced)
	s := newLeg(n, velmod.S, ps, rec)
	p := newLeg(n, velmod.P, pp, rec)

	tps := core.NaNs(n)
	tps[0] = 0
	for j := 0; j+1 < n; j++ {
		vs := s.step(j, traced, m3d, rec, ev)
		vp := p.step(j, traced, m3d, rec, ev)

		r := geo.EarthRadius + rec.Elevation
		if sphere {
			r = geo.EarthRadius - traced[j]
		}
		qs := math.Sqrt((r/vs)*(r/vs) - ps.At(j)*ps.At(j))
		qp := math.Sqrt((r/vp)*(r/vp) - pp.At(j)*pp.At(j))
		tps[j+1] = tps[j] + (qs-qp)*(traced[j+1]-traced[j])/r
	}

	return RayPath{
		Tps:  curve.FromFloats(tps),
		XS:   curve.FromFloats(s.x),
		XP:   curve.FromFloats(p.x),
		LenS: curve.FromFloats(s.l),
		LenP: curve.FromFloats(p.l),
	}
}
