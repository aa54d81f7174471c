package rfdepth

import (
	"github.com/cwbudde/algo-seis/seis/curve"
	"github.com/cwbudde/algo-seis/seis/geo"
	"github.com/cwbudde/algo-seis/seis/station"
	"github.com/cwbudde/algo-seis/seis/velmod"
	"go.uber.org/zap"
)

// Processor runs the station-level pipelines with a fixed configuration.
// It is safe for concurrent use.
type Processor struct {
	cfg  Config
	opts []Option
}

// NewProcessor creates a processor from options.
func NewProcessor(opts ...Option) *Processor {
	return &Processor{cfg: ApplyOptions(opts...), opts: opts}
}

// Config returns the effective configuration.
func (p *Processor) Config() Config { return p.cfg }

// model samples table on depths for the station's elevation.
func (p *Processor) model(rec *station.Record, depths []float64, table *velmod.Table) (*velmod.Model, error) {
	if err := checkDepths(depths); err != nil {
		return nil, err
	}
	return velmod.New(table, depths, rec.Elevation)
}

// Moveout corrects the prime and transverse components to reference ray
// parameter refRayP (s/km).
func (p *Processor) Moveout(rec *station.Record, refRayP float64, depths []float64, table *velmod.Table) (*MoveoutResult, error) {
	m, err := p.model(rec, depths, table)
	if err != nil {
		return nil, err
	}
	p.cfg.Logger.Debug("moveout correction",
		zap.String("station", rec.Name), zap.Int("events", rec.NumEvents()), zap.Float64("ref_rayp", refRayP))

	ref := geo.SkmToSrad(refRayP)
	res := &MoveoutResult{}
	res.Corrected, res.EndIndex, err = MoveoutCorrect(rec, ref, rec.Prime(), m, p.opts...)
	if err != nil {
		return nil, err
	}
	if !rec.OnlyPrime() {
		if res.Transverse, _, err = MoveoutCorrect(rec, ref, station.Transverse, m, p.opts...); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// DepthResult is the output of the Depth pipeline.
type DepthResult struct {
	*DepthImage
	// XS and XP are the leg offsets per event.
	XS, XP []curve.Curve
}

// Depth converts the station's receiver functions to depth with 1-D ray
// geometry.
func (p *Processor) Depth(rec *station.Record, depths []float64, table *velmod.Table) (*DepthResult, error) {
	m, err := p.model(rec, depths, table)
	if err != nil {
		return nil, err
	}
	paths, err := Trace1D(rec, m, p.opts...)
	if err != nil {
		return nil, err
	}

	res := &DepthResult{XS: make([]curve.Curve, len(paths)), XP: make([]curve.Curve, len(paths))}
	tps := make([]curve.Curve, len(paths))
	for i, path := range paths {
		tps[i], res.XS[i], res.XP[i] = path.Tps, path.XS, path.XP
	}
	if res.DepthImage, err = TimeToDepth(rec, depths, tps, p.opts...); err != nil {
		return nil, err
	}
	return res, nil
}

// RayTrace1D back-traces conversion points through the 1-D model.
func (p *Processor) RayTrace1D(rec *station.Record, depths []float64, table *velmod.Table) ([]RayPath, error) {
	m, err := p.model(rec, depths, table)
	if err != nil {
		return nil, err
	}
	return Trace1D(rec, m, p.opts...)
}

// RayTrace3D traces conversion points through the 3-D model.
func (p *Processor) RayTrace3D(rec *station.Record, depths []float64, m3d Model3D) ([]RayPath, error) {
	return Trace3D(rec, depths, m3d, p.opts...)
}

// TimeCorrect3D traces rays in the 1-D model, corrects their delays for
// the 3-D model and converts the station to depth.
func (p *Processor) TimeCorrect3D(rec *station.Record, depths []float64, table *velmod.Table, m3d Model3D) (*DepthImage, error) {
	m, err := p.model(rec, depths, table)
	if err != nil {
		return nil, err
	}
	paths, err := Trace1D(rec, m, p.opts...)
	if err != nil {
		return nil, err
	}
	tps := MigrationCorrect(paths, depths, m3d, p.opts...)
	return TimeToDepth(rec, depths, tps, p.opts...)
}
