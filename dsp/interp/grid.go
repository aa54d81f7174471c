package interp

import (
	"errors"
	"fmt"
	"sort"

	"github.com/cwbudde/algo-seis/dsp/core"
)

// ErrGridShape indicates grid values that do not match the axis lengths.
var ErrGridShape = errors.New("interp: grid shape mismatch")

// Grid3 is a regular 3-D grid with values stored in row-major order:
// V[(i*len(Y)+j)*len(Z)+k] is the value at (X[i], Y[j], Z[k]).
type Grid3 struct {
	X, Y, Z []float64
	V       []float64
}

// NewGrid3 validates the axes and value shape.
func NewGrid3(x, y, z, v []float64) (*Grid3, error) {
	for name, axis := range map[string][]float64{"x": x, "y": y, "z": z} {
		if !core.StrictlyIncreasing(axis) {
			return nil, fmt.Errorf("%w: axis %s", ErrNotIncreasing, name)
		}
	}
	if want := len(x) * len(y) * len(z); len(v) != want {
		return nil, fmt.Errorf("%w: %d values, want %d", ErrGridShape, len(v), want)
	}

	return &Grid3{X: x, Y: y, Z: z, V: v}, nil
}

func (g *Grid3) value(i, j, k int) float64 {
	return g.V[(i*len(g.Y)+j)*len(g.Z)+k]
}

// At returns the trilinear interpolation at (x, y, z). Coordinates outside
// the grid are clamped to the nearest edge, so the result is always the value
// of the closest grid cell face.
func (g *Grid3) At(x, y, z float64) float64 {
	i0, i1, fx := locate(g.X, x)
	j0, j1, fy := locate(g.Y, y)
	k0, k1, fz := locate(g.Z, z)

	c00 := g.value(i0, j0, k0)*(1-fz) + g.value(i0, j0, k1)*fz
	c01 := g.value(i0, j1, k0)*(1-fz) + g.value(i0, j1, k1)*fz
	c10 := g.value(i1, j0, k0)*(1-fz) + g.value(i1, j0, k1)*fz
	c11 := g.value(i1, j1, k0)*(1-fz) + g.value(i1, j1, k1)*fz

	c0 := c00*(1-fy) + c01*fy
	c1 := c10*(1-fy) + c11*fy

	return c0*(1-fx) + c1*fx
}

// locate returns the bracketing indices and fractional position of v on axis.
// NaN and out-of-range coordinates are clamped.
func locate(axis []float64, v float64) (lo, hi int, frac float64) {
	n := len(axis)
	if n == 1 || !(v > axis[0]) {
		return 0, 0, 0
	}
	if v >= axis[n-1] {
		return n - 1, n - 1, 0
	}

	hi = sort.SearchFloat64s(axis, v)
	if axis[hi] == v {
		return hi, hi, 0
	}
	lo = hi - 1
	frac = (v - axis[lo]) / (axis[hi] - axis[lo])
	return lo, hi, frac
}
