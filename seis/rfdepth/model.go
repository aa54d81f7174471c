package rfdepth

import (
	"github.com/cwbudde/algo-seis/dsp/core"
	"github.com/cwbudde/algo-seis/seis/curve"
	"github.com/cwbudde/algo-seis/seis/velmod"
)

// Model1D is a laterally homogeneous velocity model sampled on a depth grid.
// *velmod.Model implements it.
type Model1D interface {
	Depths() []float64
	ElevationDepths() []float64
	Elevation() float64
	Offset(p velmod.Slowness, phase velmod.Phase, sphere bool) curve.Curve
	PathLength(p velmod.Slowness, phase velmod.Phase, sphere bool) curve.Curve
	TravelTimeDiff(ps, pp velmod.Slowness, sphere bool) curve.Curve
}

// Model3D is a 3-D velocity model. *mod3d.Model implements it.
type Model3D interface {
	VelocityAt(depth, lat, lon float64, phase velmod.Phase) float64
	PerturbationAt(depths, lats, lons []float64, phase velmod.Phase) []float64
	RefVelocity(phase velmod.Phase) []float64
}

func checkDepths(depths []float64) error {
	if !core.StrictlyIncreasing(depths) {
		return ErrInvalidDepthGrid
	}
	return nil
}
