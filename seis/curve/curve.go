// Package curve holds per-depth results whose samples are either a real
// value or evanescent: the ray has turned above that depth and the value has
// no physical meaning.
//
// A Curve keeps the invariant that once a sample is evanescent every deeper
// sample is evanescent as well, so validity is always a prefix.
package curve

import (
	"math"

	"github.com/cwbudde/algo-seis/dsp/core"
)

// Sample is one per-depth value.
type Sample struct {
	Value      float64
	Evanescent bool
}

// Valid wraps a real value.
func Valid(v float64) Sample {
	return Sample{Value: v}
}

// Evanescent marks a sample below the turning point.
func Evanescent() Sample {
	return Sample{Evanescent: true}
}

// Curve is a per-depth sequence aligned to a depth grid.
type Curve []Sample

// New returns a curve of n evanescent samples.
func New(n int) Curve {
	c := make(Curve, n)
	for i := range c {
		c[i] = Evanescent()
	}
	return c
}

// FromFloats builds a curve from plain values. The first non-finite value
// and everything after it become evanescent.
func FromFloats(vs []float64) Curve {
	c := make(Curve, len(vs))
	cut := len(vs)
	for i, v := range vs {
		if !core.IsFinite(v) {
			cut = i
			break
		}
		c[i] = Valid(v)
	}
	for i := cut; i < len(c); i++ {
		c[i] = Evanescent()
	}
	return c
}

// Len returns the number of samples.
func (c Curve) Len() int { return len(c) }

// Cutoff returns the index of the first evanescent sample, or Len when the
// whole curve is valid.
func (c Curve) Cutoff() int {
	for i, s := range c {
		if s.Evanescent {
			return i
		}
	}
	return len(c)
}

// EndIndex returns the index of the last valid sample, -1 when none is valid.
func (c Curve) EndIndex() int {
	return c.Cutoff() - 1
}

// Truncated reports whether the curve turns evanescent anywhere.
func (c Curve) Truncated() bool {
	return c.Cutoff() < len(c)
}

// At returns the value at i and whether it is valid.
func (c Curve) At(i int) (float64, bool) {
	if i < 0 || i >= len(c) || c[i].Evanescent {
		return math.NaN(), false
	}
	return c[i].Value, true
}

// Valid returns the values of the valid prefix.
func (c Curve) Valid() []float64 {
	cut := c.Cutoff()
	out := make([]float64, cut)
	for i := 0; i < cut; i++ {
		out[i] = c[i].Value
	}
	return out
}

// Floats returns all values with NaN in place of evanescent samples.
func (c Curve) Floats() []float64 {
	out := make([]float64, len(c))
	for i, s := range c {
		if s.Evanescent {
			out[i] = math.NaN()
			continue
		}
		out[i] = s.Value
	}
	return out
}

// TruncateAt marks index k and every deeper sample evanescent, returning a copy.
func (c Curve) TruncateAt(k int) Curve {
	out := append(Curve(nil), c...)
	if k < 0 {
		k = 0
	}
	for i := k; i < len(out); i++ {
		out[i] = Evanescent()
	}
	return out
}

// Add returns c + other sample by sample. A sample is valid only when both
// inputs are valid there; the prefix invariant is preserved.
func (c Curve) Add(other []float64) Curve {
	out := make(Curve, len(c))
	dead := false
	for i, s := range c {
		if dead || s.Evanescent || i >= len(other) || !core.IsFinite(s.Value+other[i]) {
			dead = true
			out[i] = Evanescent()
			continue
		}
		out[i] = Valid(s.Value + other[i])
	}
	return out
}
