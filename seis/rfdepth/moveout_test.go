package rfdepth

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-seis/dsp/core"
	"github.com/cwbudde/algo-seis/internal/testutil"
	"github.com/cwbudde/algo-seis/seis/curve"
	"github.com/cwbudde/algo-seis/seis/geo"
	"github.com/cwbudde/algo-seis/seis/station"
)

var grid1 = core.Arange(0, 150, 1)

func TestMoveoutIdentityAtOwnRayParameter(t *testing.T) {
	m := iasp91(t, grid1, 0)
	rec := mohoStation(t, m, 35, false, 0.06)

	out, end, err := MoveoutCorrect(rec, geo.SkmToSrad(0.06), station.Radial, m)
	if err != nil {
		t.Fatalf("MoveoutCorrect() error = %v", err)
	}
	if end[0] != len(grid1)-1 {
		t.Fatalf("end index = %d, want %d", end[0], len(grid1)-1)
	}

	data, _ := rec.Data(station.Radial)
	axis := rec.TimeAxis()
	for _, lo := range []float64{-1, 2} {
		before := peakAfter(t, data[0], axis, lo)
		after := peakAfter(t, out[0], axis, lo)
		if math.Abs(before-after) > rec.Sampling+1e-9 {
			t.Fatalf("peak beyond %v s moved from %v to %v", lo, before, after)
		}
	}
	if len(out[0]) != rec.Length {
		t.Fatalf("len = %d, want %d", len(out[0]), rec.Length)
	}
}

func TestMoveoutReducesPeakSpread(t *testing.T) {
	m := iasp91(t, grid1, 0)
	rec := mohoStation(t, m, 35, true, 0.04, 0.08)
	axis := rec.TimeAxis()

	data, _ := rec.Data(station.Radial)
	rawSpread := math.Abs(peakAfter(t, data[0], axis, 2) - peakAfter(t, data[1], axis, 2))

	res, err := NewProcessor().Moveout(rec, 0.06, grid1, iasp91Table(t))
	if err != nil {
		t.Fatalf("Moveout() error = %v", err)
	}
	if res.Transverse == nil {
		t.Fatal("transverse component must be corrected as well")
	}
	corrSpread := math.Abs(peakAfter(t, res.Corrected[0], axis, 2) - peakAfter(t, res.Corrected[1], axis, 2))
	if !(corrSpread < rawSpread/3) {
		t.Fatalf("peak spread %v s after correction, %v s before", corrSpread, rawSpread)
	}

	ref := psDelay(t, m, 0.06, 35)
	if got := peakAfter(t, res.Corrected[0], axis, 2); math.Abs(got-ref) > 2*rec.Sampling {
		t.Fatalf("corrected Ps at %v s, reference delay %v s", got, ref)
	}
}

func TestMoveoutSupercriticalEvent(t *testing.T) {
	m := iasp91(t, grid1, 0)
	rec := mohoStation(t, m, 35, false, 0.06)
	rec.Events[0].RayP = 0.5

	out, end, err := MoveoutCorrect(rec, geo.SkmToSrad(0.06), station.Radial, m)
	if err != nil {
		t.Fatalf("MoveoutCorrect() error = %v", err)
	}
	if end[0] != -1 {
		t.Fatalf("end index = %d, want -1", end[0])
	}
	if len(out[0]) != rec.Length {
		t.Fatalf("len = %d", len(out[0]))
	}
}

func TestMoveoutReferenceTurnsFirst(t *testing.T) {
	// At 0.16 s/km the reference ray turns in the lower crust while the
	// event's own ray reaches the bottom of the grid.
	m := iasp91(t, grid10, 0)
	rec := mohoStation(t, m, 10, false, 0.04)

	out, end, err := MoveoutCorrect(rec, geo.SkmToSrad(0.16), station.Radial, m)
	if err != nil {
		t.Fatalf("MoveoutCorrect() error = %v", err)
	}
	if end[0] != len(grid10)-1 {
		t.Fatalf("end index = %d, want %d", end[0], len(grid10)-1)
	}
	if len(out[0]) != rec.Length {
		t.Fatalf("len = %d, want %d", len(out[0]), rec.Length)
	}
	testutil.RequireFinite(t, out[0])

	// The Ps pulse lies past the reference cutoff and is carried over
	// unchanged from the tail of the trace.
	data, _ := rec.Data(station.Radial)
	axis := rec.TimeAxis()
	argmax := func(xs []float64) int {
		best := -1
		for j, x := range xs {
			if axis[j] > 5 && (best < 0 || x > xs[best]) {
				best = j
			}
		}
		return best
	}
	jd, jo := argmax(data[0]), argmax(out[0])
	for k := -5; k <= 5; k++ {
		if out[0][jo+k] != data[0][jd+k] {
			t.Fatalf("sample %d of spliced pulse = %v, want %v", k, out[0][jo+k], data[0][jd+k])
		}
	}
}

func TestMoveoutRejectsComponent(t *testing.T) {
	m := iasp91(t, grid10, 0)
	rec := mohoStation(t, m, 4, false, 0.06)
	for _, c := range []station.Component{station.Vertical, station.Transverse} {
		if _, _, err := MoveoutCorrect(rec, 0, c, m); !errors.Is(err, station.ErrMissingComponent) {
			t.Fatalf("%s: err = %v, want ErrMissingComponent", c, err)
		}
	}
}

func TestMoveoutRowSplicesTail(t *testing.T) {
	// Observed delays twice the reference: content is compressed in time
	// and the unmapped tail is spliced back after the mapped part.
	obs := curve.FromFloats([]float64{0, 1, 2})
	ref := curve.FromFloats([]float64{0, 0.5, 1})
	data := []float64{10, 11, 12, 13, 14, 15}
	axis := []float64{-1, 0, 1, 2, 3, 4}

	got := moveoutRow(data, obs, ref, axis, 1, 1)
	// New axis: -1, 0, 0.5, 1 for data 10..13; x=2 is undefined.
	want := []float64{11, 13, 15, 0, 0, 0}
	if d, err := testutil.MaxAbsDiff(got, want); err != nil || d > 1e-12 {
		t.Fatalf("got %v, want %v", got, want)
	}
}
