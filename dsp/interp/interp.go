package interp

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/interp"

	"github.com/cwbudde/algo-seis/dsp/core"
)

var (
	// ErrNotIncreasing indicates nodes that are not strictly increasing.
	ErrNotIncreasing = errors.New("interp: nodes must be strictly increasing")
	// ErrLengthMismatch indicates x and y slices of different length.
	ErrLengthMismatch = errors.New("interp: length mismatch")
	// ErrEmpty indicates an interpolant without nodes.
	ErrEmpty = errors.New("interp: no nodes")
)

// Linear interpolates piecewise-linearly between strictly increasing nodes.
// Queries outside [lo, hi] are reported as undefined rather than extrapolated.
type Linear struct {
	pl     interp.PiecewiseLinear
	lo, hi float64
	y0     float64
	single bool
}

// NewLinear builds an interpolant over xs/ys. xs must be strictly increasing
// and finite; a single node yields an interpolant defined only at that node.
func NewLinear(xs, ys []float64) (*Linear, error) {
	if len(xs) != len(ys) {
		return nil, fmt.Errorf("%w: %d x, %d y", ErrLengthMismatch, len(xs), len(ys))
	}
	if len(xs) == 0 {
		return nil, ErrEmpty
	}
	if !core.StrictlyIncreasing(xs) {
		return nil, ErrNotIncreasing
	}

	l := &Linear{lo: xs[0], hi: xs[len(xs)-1]}
	if len(xs) == 1 {
		l.single = true
		l.y0 = ys[0]
		return l, nil
	}

	if err := l.pl.Fit(xs, ys); err != nil {
		return nil, err
	}

	return l, nil
}

// Bounds returns the node range.
func (l *Linear) Bounds() (lo, hi float64) {
	return l.lo, l.hi
}

// At returns the interpolated value at x and whether x lies inside the node range.
func (l *Linear) At(x float64) (float64, bool) {
	if math.IsNaN(x) || x < l.lo || x > l.hi {
		return math.NaN(), false
	}
	if l.single {
		return l.y0, true
	}

	return l.pl.Predict(x), true
}

// Eval evaluates the interpolant at every query, writing NaN where undefined.
func (l *Linear) Eval(xs []float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i], _ = l.At(x)
	}
	return out
}

// Monotone returns the subsequence of (xs, ys) whose x values strictly
// increase, dropping pairs with a non-finite coordinate and any x that does
// not exceed the running maximum.
func Monotone(xs, ys []float64) (mx, my []float64) {
	n := len(xs)
	if len(ys) < n {
		n = len(ys)
	}

	mx = make([]float64, 0, n)
	my = make([]float64, 0, n)
	for i := 0; i < n; i++ {
		if !core.IsFinite(xs[i]) || !core.IsFinite(ys[i]) {
			continue
		}
		if len(mx) > 0 && xs[i] <= mx[len(mx)-1] {
			continue
		}
		mx = append(mx, xs[i])
		my = append(my, ys[i])
	}

	return mx, my
}

// Hermite4 computes cubic 4-point interpolation.
// It interpolates from x0 to x1 using neighbor points xm1 and x2.
func Hermite4(t, xm1, x0, x1, x2 float64) float64 {
	c0 := x0
	c1 := 0.5 * (x1 - xm1)
	c2 := xm1 - 2.5*x0 + 2*x1 - 0.5*x2
	c3 := 0.5*(x2-xm1) + 1.5*(x0-x1)
	return ((c3*t+c2)*t+c1)*t + c0
}
