package rfdepth

import (
	"fmt"

	"github.com/cwbudde/algo-seis/seis/geo"
	"github.com/cwbudde/algo-seis/seis/station"
	"github.com/cwbudde/algo-seis/seis/velmod"
	"go.uber.org/zap"
)

// Trace1D back-traces every event through m, returning delay curves, leg
// offsets, segment lengths and conversion points on m.Depths().
func Trace1D(rec *station.Record, m Model1D, opts ...Option) ([]RayPath, error) {
	cfg := ApplyOptions(opts...)
	if err := checkDepths(m.Depths()); err != nil {
		return nil, err
	}

	n := rec.NumEvents()
	nd := len(m.Depths())
	paths := make([]RayPath, n)
	forEach(cfg, n, eventName(rec),
		func(i int) {
			ev := rec.Events[i]
			ps, pp, err := slowness(cfg, ev, m.ElevationDepths())
			if err != nil {
				cfg.Logger.Warn("ray parameter lookup failed",
					zap.Int("event", i), zap.String("name", ev.Name), zap.Error(err))
				paths[i] = invalidPath(nd)
				return
			}

			mp := mapTimes(m, ps, pp, cfg.Sphere)
			path := RayPath{Tps: mp.Tps, XS: mp.XS, XP: mp.XP, LenS: mp.LenS, LenP: mp.LenP}
			path.LatS, path.LonS = project(rec, ev, mp.XS, cfg.Sphere)
			path.LatP, path.LonP = project(rec, ev, mp.XP, cfg.Sphere)
			paths[i] = path
		},
		func(i int) { paths[i] = invalidPath(nd) })
	return paths, nil
}

// slowness returns the S-leg and P-leg ray parameters (s/rad) of ev. With a
// lookup configured the S leg varies with depth.
func slowness(cfg Config, ev station.Event, depths []float64) (ps, pp velmod.Slowness, err error) {
	pp = velmod.Constant(geo.SkmToSrad(ev.RayP))
	if cfg.Lookup == nil {
		return pp, pp, nil
	}

	sdeg, err := cfg.Lookup.RayParam(ev.Dis, ev.Depth, depths)
	if err != nil {
		return nil, nil, fmt.Errorf("event %s: %w", ev.Name, err)
	}
	prof := make(velmod.Profile, len(sdeg))
	for i, v := range sdeg {
		prof[i] = geo.SkmToSrad(geo.SdegToSkm(v))
	}
	return prof, pp, nil
}
