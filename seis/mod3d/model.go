package mod3d

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/cwbudde/algo-seis/dsp/interp"
	"github.com/cwbudde/algo-seis/seis/velmod"
	"github.com/cwbudde/algo-vecmath"
	"github.com/vmihailenco/msgpack/v5"
)

var (
	// ErrMalformedModel indicates a model file with inconsistent axes or values.
	ErrMalformedModel = errors.New("mod3d: malformed 3-D model")
	// ErrUnreadable indicates a model file that cannot be opened.
	ErrUnreadable = errors.New("mod3d: cannot read 3-D model")
)

// File is the serialised form of a 3-D model. Vp and Vs are row-major with
// depth varying slowest: index (i*len(Lat)+j)*len(Lon)+k.
type File struct {
	Dep []float64 `msgpack:"dep"`
	Lat []float64 `msgpack:"lat"`
	Lon []float64 `msgpack:"lon"`
	Vp  []float64 `msgpack:"vp"`
	Vs  []float64 `msgpack:"vs"`
}

// Model is a 3-D velocity model bound to a processing depth grid.
type Model struct {
	vp, vs       *interp.Grid3
	dvp, dvs     *interp.Grid3
	refVp, refVs []float64
	depths       []float64
}

// New builds a model from f. Perturbations are computed against ref at the
// grid depths; reference velocities for the processing grid depths are
// sampled from ref as well.
func New(f *File, ref *velmod.Table, depths []float64) (*Model, error) {
	if f == nil || ref == nil {
		return nil, fmt.Errorf("%w: nil model or reference", ErrMalformedModel)
	}
	vp, err := interp.NewGrid3(f.Dep, f.Lat, f.Lon, f.Vp)
	if err != nil {
		return nil, fmt.Errorf("%w: vp: %v", ErrMalformedModel, err)
	}
	vs, err := interp.NewGrid3(f.Dep, f.Lat, f.Lon, f.Vs)
	if err != nil {
		return nil, fmt.Errorf("%w: vs: %v", ErrMalformedModel, err)
	}
	for i := range f.Vp {
		if !(f.Vp[i] > 0) || !(f.Vs[i] >= 0) {
			return nil, fmt.Errorf("%w: non-physical velocity at index %d", ErrMalformedModel, i)
		}
	}

	refVpGrid, refVsGrid := ref.Sample(f.Dep)
	dvp := perturbation(f.Vp, refVpGrid, len(f.Lat)*len(f.Lon))
	dvs := perturbation(f.Vs, refVsGrid, len(f.Lat)*len(f.Lon))

	m := &Model{
		vp:     vp,
		vs:     vs,
		dvp:    &interp.Grid3{X: f.Dep, Y: f.Lat, Z: f.Lon, V: dvp},
		dvs:    &interp.Grid3{X: f.Dep, Y: f.Lat, Z: f.Lon, V: dvs},
		depths: append([]float64(nil), depths...),
	}
	m.refVp, m.refVs = ref.Sample(depths)
	return m, nil
}

// perturbation returns (v - ref)/ref slab by slab. A zero reference yields
// zero perturbation.
func perturbation(v, ref []float64, slab int) []float64 {
	out := make([]float64, len(v))
	for i, r := range ref {
		lo, hi := i*slab, (i+1)*slab
		if r == 0 {
			continue
		}
		vecmath.ScaleBlock(out[lo:hi], v[lo:hi], 1/r)
		for j := lo; j < hi; j++ {
			out[j]--
		}
	}
	return out
}

// Decode reads a MessagePack model file.
func Decode(r io.Reader) (*File, error) {
	var f File
	if err := msgpack.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedModel, err)
	}
	return &f, nil
}

// Encode writes f as MessagePack.
func Encode(w io.Writer, f *File) error {
	return msgpack.NewEncoder(w).Encode(f)
}

// Load reads the model file at path and binds it to ref and depths.
func Load(path string, ref *velmod.Table, depths []float64) (*Model, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreadable, err)
	}
	defer fh.Close()

	f, err := Decode(fh)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return New(f, ref, depths)
}

// Save writes f to path.
func Save(path string, f *File) error {
	fh, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Encode(fh, f); err != nil {
		fh.Close()
		return err
	}
	return fh.Close()
}

func (m *Model) grid(phase velmod.Phase) *interp.Grid3 {
	if phase == velmod.S {
		return m.vs
	}
	return m.vp
}

// VelocityAt returns the absolute velocity of phase at a point.
func (m *Model) VelocityAt(depth, lat, lon float64, phase velmod.Phase) float64 {
	return m.grid(phase).At(depth, lat, lon)
}

// PerturbationAt returns the relative perturbation of phase along a path.
// Points with a non-finite coordinate yield NaN.
func (m *Model) PerturbationAt(depths, lats, lons []float64, phase velmod.Phase) []float64 {
	g := m.dvp
	if phase == velmod.S {
		g = m.dvs
	}

	n := min(len(depths), len(lats), len(lons))
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		d, la, lo := depths[i], lats[i], lons[i]
		if math.IsNaN(d+la+lo) || math.IsInf(d+la+lo, 0) {
			out[i] = math.NaN()
			continue
		}
		out[i] = g.At(d, la, lo)
	}
	return out
}

// RefVelocity returns the 1-D reference velocity of phase on the
// processing depth grid.
func (m *Model) RefVelocity(phase velmod.Phase) []float64 {
	if phase == velmod.S {
		return m.refVs
	}
	return m.refVp
}

// Depths returns the processing depth grid.
func (m *Model) Depths() []float64 { return m.depths }

// Profile extracts the velocity column beneath (lat, lon) at the model's
// grid depths as a 1-D table.
func (m *Model) Profile(lat, lon float64) (*velmod.Table, error) {
	dep := m.vp.X
	vp := make([]float64, len(dep))
	vs := make([]float64, len(dep))
	for i, d := range dep {
		vp[i] = m.vp.At(d, lat, lon)
		vs[i] = m.vs.At(d, lat, lon)
	}
	return velmod.FromProfile(dep, vp, vs)
}
