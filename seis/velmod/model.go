// Package velmod evaluates Ps ray geometry in a laterally homogeneous
// (1-D) layered earth: horizontal offsets, segment path lengths and Ps-P
// delay times on a depth grid, with an optional earth-flattening treatment.
//
// Ray parameters are angular slownesses in s/rad. Every query returns a
// curve.Curve whose samples turn evanescent at the first depth where the
// vertical slowness of the leg would be imaginary.
package velmod

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-seis/dsp/core"
	"github.com/cwbudde/algo-seis/seis/curve"
	"github.com/cwbudde/algo-seis/seis/geo"
)

// ErrInvalidGrid indicates a depth grid that is empty or not strictly increasing.
var ErrInvalidGrid = errors.New("velmod: depth grid must be strictly increasing")

// Phase selects the P or S leg of a converted ray.
type Phase int

const (
	// P is the direct compressional leg.
	P Phase = iota
	// S is the converted shear leg.
	S
)

func (p Phase) String() string {
	if p == S {
		return "S"
	}
	return "P"
}

// Slowness yields the ray parameter (s/rad) used at depth index i.
type Slowness interface {
	At(i int) float64
}

// Constant is a ray parameter that does not vary with depth.
type Constant float64

// At returns the constant ray parameter.
func (c Constant) At(int) float64 { return float64(c) }

// Profile is a per-depth ray parameter; indices past the end reuse the last value.
type Profile []float64

// At returns the ray parameter at depth index i.
func (p Profile) At(i int) float64 {
	if len(p) == 0 {
		return math.NaN()
	}
	if i >= len(p) {
		return p[len(p)-1]
	}
	return p[i]
}

// Model is a velocity table sampled on a depth grid, shifted for station
// elevation.
type Model struct {
	depths     []float64
	elevDepths []float64
	dz         []float64
	vp, vs     []float64
	refVp      []float64
	refVs      []float64
	elevation  float64
}

// New samples table on depths for a station at elevationKm above sea level.
//
// With zero elevation the computation grid is depths itself. Otherwise the
// grid is extended below its last sample by floor(elevation/step)+1 samples
// and shifted up by the elevation, so that the station surface sits at the
// first sample and the caller's grid lies inside the computed range.
func New(table *Table, depths []float64, elevationKm float64) (*Model, error) {
	if table == nil {
		return nil, fmt.Errorf("%w: nil table", ErrMalformedModel)
	}
	if err := table.Validate(); err != nil {
		return nil, err
	}
	if !core.StrictlyIncreasing(depths) {
		return nil, ErrInvalidGrid
	}
	if !core.IsFinite(elevationKm) || elevationKm < 0 {
		elevationKm = 0
	}

	extended := append([]float64(nil), depths...)
	if elevationKm != 0 {
		step := core.MeanStep(depths)
		if step <= 0 {
			step = elevationKm
		}
		extra := int(math.Floor(elevationKm/step)) + 1
		last := depths[len(depths)-1]
		for k := 1; k <= extra; k++ {
			extended = append(extended, last+float64(k)*step)
		}
	}

	elev := make([]float64, len(extended))
	dz := make([]float64, len(extended))
	for i, d := range extended {
		elev[i] = d - elevationKm
		if i > 0 {
			dz[i] = d - extended[i-1]
		}
	}

	vp, vs := table.Sample(elev)
	refVp, refVs := table.Sample(depths)

	return &Model{
		depths:     append([]float64(nil), depths...),
		elevDepths: elev,
		dz:         dz,
		vp:         vp,
		vs:         vs,
		refVp:      refVp,
		refVs:      refVs,
		elevation:  elevationKm,
	}, nil
}

// Load resolves a model name or path and samples it on depths.
func Load(name string, depths []float64, elevationKm float64) (*Model, error) {
	t, err := LoadTable(name)
	if err != nil {
		return nil, err
	}
	return New(t, depths, elevationKm)
}

// Depths returns the caller's depth grid.
func (m *Model) Depths() []float64 { return m.depths }

// ElevationDepths returns the computation grid (depth relative to the station surface).
func (m *Model) ElevationDepths() []float64 { return m.elevDepths }

// Elevation returns the station elevation in km.
func (m *Model) Elevation() float64 { return m.elevation }

// Velocity returns the velocities of phase on the computation grid.
func (m *Model) Velocity(phase Phase) []float64 {
	if phase == S {
		return m.vs
	}
	return m.vp
}

// RefVelocity returns the velocities of phase on the caller's depth grid,
// without elevation shift.
func (m *Model) RefVelocity(phase Phase) []float64 {
	if phase == S {
		return m.refVs
	}
	return m.refVp
}

func (m *Model) radius(i int, sphere bool) float64 {
	if sphere {
		return geo.EarthRadius - m.elevDepths[i]
	}
	return geo.EarthRadius
}

// verticalSlowness returns sqrt((R/v)^2 - p^2) and false when the ray is
// evanescent at index i.
func (m *Model) verticalSlowness(i int, v, p float64, sphere bool) (float64, bool) {
	r := m.radius(i, sphere)
	rad := (r/v)*(r/v) - p*p
	if !(rad > 0) || !core.IsFinite(rad) {
		return 0, false
	}
	return math.Sqrt(rad), true
}

// cumulate sums per-sample increments into a curve, stopping at the first
// evanescent increment.
func (m *Model) cumulate(step func(i int) (float64, bool)) curve.Curve {
	n := len(m.elevDepths)
	c := curve.New(n)
	sum := 0.0
	for i := 0; i < n; i++ {
		inc, ok := step(i)
		if !ok || !core.IsFinite(inc) {
			break
		}
		sum += inc
		c[i] = curve.Valid(sum)
	}
	return c
}

// Offset returns the horizontal distance between the station and the
// phase leg at each computation depth: radians of arc when sphere is set,
// km otherwise.
func (m *Model) Offset(p Slowness, phase Phase, sphere bool) curve.Curve {
	vel := m.Velocity(phase)
	return m.cumulate(func(i int) (float64, bool) {
		q, ok := m.verticalSlowness(i, vel[i], p.At(i), sphere)
		if !ok {
			return 0, false
		}
		inc := m.dz[i] * p.At(i) / q
		if sphere {
			inc /= m.radius(i, sphere)
		}
		return inc, true
	})
}

// PathLength returns the ray path length (km) of the phase leg inside each
// depth step ending at the sample.
func (m *Model) PathLength(p Slowness, phase Phase, sphere bool) curve.Curve {
	vel := m.Velocity(phase)
	n := len(m.elevDepths)
	c := curve.New(n)
	for i := 0; i < n; i++ {
		q, ok := m.verticalSlowness(i, vel[i], p.At(i), sphere)
		if !ok {
			break
		}
		l := m.dz[i] * m.radius(i, sphere) / (vel[i] * q)
		if !core.IsFinite(l) {
			break
		}
		c[i] = curve.Valid(l)
	}
	return c
}

// TravelTimeDiff returns the Ps-P delay time (s) accumulated from the surface
// to each computation depth for S-leg slowness ps and P-leg slowness pp.
func (m *Model) TravelTimeDiff(ps, pp Slowness, sphere bool) curve.Curve {
	return m.cumulate(func(i int) (float64, bool) {
		qs, ok := m.verticalSlowness(i, m.vs[i], ps.At(i), sphere)
		if !ok {
			return 0, false
		}
		qp, ok := m.verticalSlowness(i, m.vp[i], pp.At(i), sphere)
		if !ok {
			return 0, false
		}
		return (qs - qp) * m.dz[i] / m.radius(i, sphere), true
	})
}
