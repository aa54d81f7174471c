package interp

import (
	"errors"
	"math"
	"testing"
)

func TestHermite4IdentityOnLinearRamp(t *testing.T) {
	xm1, x0, x1, x2 := -1.0, 0.0, 1.0, 2.0
	for _, tc := range []struct {
		t float64
		w float64
	}{
		{t: 0.0, w: 0.0},
		{t: 0.25, w: 0.25},
		{t: 0.5, w: 0.5},
		{t: 1.0, w: 1.0},
	} {
		got := Hermite4(tc.t, xm1, x0, x1, x2)
		if diff := got - tc.w; diff < -1e-12 || diff > 1e-12 {
			t.Fatalf("t=%v: got %v want %v", tc.t, got, tc.w)
		}
	}
}

func TestLinearInsideRange(t *testing.T) {
	l, err := NewLinear([]float64{0, 1, 3}, []float64{0, 10, 30})
	if err != nil {
		t.Fatalf("NewLinear() error = %v", err)
	}
	for _, tc := range []struct {
		x, want float64
	}{
		{0, 0}, {0.5, 5}, {1, 10}, {2, 20}, {3, 30},
	} {
		got, ok := l.At(tc.x)
		if !ok {
			t.Fatalf("At(%v) reported out of range", tc.x)
		}
		if math.Abs(got-tc.want) > 1e-12 {
			t.Fatalf("At(%v) = %v, want %v", tc.x, got, tc.want)
		}
	}
}

func TestLinearOutsideRangeIsUndefined(t *testing.T) {
	l, err := NewLinear([]float64{0, 1}, []float64{1, 2})
	if err != nil {
		t.Fatalf("NewLinear() error = %v", err)
	}
	for _, x := range []float64{-0.1, 1.1, math.NaN()} {
		if v, ok := l.At(x); ok || !math.IsNaN(v) {
			t.Fatalf("At(%v) = (%v, %v), want (NaN, false)", x, v, ok)
		}
	}
	out := l.Eval([]float64{-1, 0.5, 2})
	if !math.IsNaN(out[0]) || out[1] != 1.5 || !math.IsNaN(out[2]) {
		t.Fatalf("Eval = %v", out)
	}
}

func TestLinearSingleNode(t *testing.T) {
	l, err := NewLinear([]float64{2}, []float64{7})
	if err != nil {
		t.Fatalf("NewLinear() error = %v", err)
	}
	if v, ok := l.At(2); !ok || v != 7 {
		t.Fatalf("At(2) = (%v, %v), want (7, true)", v, ok)
	}
	if _, ok := l.At(2.5); ok {
		t.Fatal("At(2.5) should be undefined")
	}
}

func TestNewLinearValidation(t *testing.T) {
	if _, err := NewLinear([]float64{0, 0}, []float64{1, 2}); !errors.Is(err, ErrNotIncreasing) {
		t.Fatalf("err = %v, want ErrNotIncreasing", err)
	}
	if _, err := NewLinear([]float64{0, 1}, []float64{1}); !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("err = %v, want ErrLengthMismatch", err)
	}
	if _, err := NewLinear(nil, nil); !errors.Is(err, ErrEmpty) {
		t.Fatalf("err = %v, want ErrEmpty", err)
	}
}

func TestMonotoneDropsBacktracksAndNaN(t *testing.T) {
	xs := []float64{0, 1, 0.5, math.NaN(), 2, 2, 3}
	ys := []float64{0, 1, 9, 9, 2, 9, math.NaN()}
	mx, my := Monotone(xs, ys)
	wantX := []float64{0, 1, 2}
	wantY := []float64{0, 1, 2}
	if len(mx) != len(wantX) {
		t.Fatalf("Monotone x = %v, want %v", mx, wantX)
	}
	for i := range wantX {
		if mx[i] != wantX[i] || my[i] != wantY[i] {
			t.Fatalf("Monotone[%d] = (%v, %v), want (%v, %v)", i, mx[i], my[i], wantX[i], wantY[i])
		}
	}
}
