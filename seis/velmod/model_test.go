package velmod

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-seis/dsp/core"
	"github.com/cwbudde/algo-seis/seis/geo"
)

func iasp91(t *testing.T, depths []float64, elev float64) *Model {
	t.Helper()
	m, err := Load("iasp91", depths, elev)
	if err != nil {
		t.Fatalf("Load(iasp91) error = %v", err)
	}
	return m
}

func TestTravelTimeScenarioIASP91(t *testing.T) {
	depths := core.Arange(0, 150, 10)
	m := iasp91(t, depths, 0)
	p := Constant(geo.SkmToSrad(0.06))

	tps := m.TravelTimeDiff(p, p, true)
	if tps.Len() != len(depths) {
		t.Fatalf("len = %d, want %d", tps.Len(), len(depths))
	}
	if v, ok := tps.At(0); !ok || v != 0 {
		t.Fatalf("depth-0 time = (%v, %v), want (0, true)", v, ok)
	}
	if tps.Truncated() {
		t.Fatalf("p=0.06 s/km must stay real down to 140 km, cutoff at %d", tps.Cutoff())
	}
	vals := tps.Valid()
	for i := 1; i < len(vals); i++ {
		if vals[i] <= vals[i-1] {
			t.Fatalf("travel time not increasing at %v km: %v <= %v", depths[i], vals[i], vals[i-1])
		}
	}
	// Moho conversion at 35 km arrives roughly 4 s after P in IASP91.
	if got, _ := tps.At(4); got < 4.0 || got > 5.5 {
		t.Fatalf("Ps delay at 40 km = %v s, want 4..5.5", got)
	}
}

func TestTravelTimeNonDecreasingAcrossRayParameters(t *testing.T) {
	depths := core.Arange(0, 300, 5)
	m := iasp91(t, depths, 0)
	for _, skm := range []float64{0.04, 0.06, 0.08, 0.1, 0.12, 0.16} {
		p := Constant(geo.SkmToSrad(skm))
		vals := m.TravelTimeDiff(p, p, true).Valid()
		for i := 1; i < len(vals); i++ {
			if vals[i] < vals[i-1] {
				t.Fatalf("p=%v: decreasing at index %d", skm, i)
			}
		}
	}
}

func TestTurningDepthTruncates(t *testing.T) {
	depths := core.Arange(0, 150, 10)
	m := iasp91(t, depths, 0)
	// 0.16 s/km exceeds 1/vp of the lower crust (6.5 km/s) but not of the upper crust.
	p := Constant(geo.SkmToSrad(0.16))
	tps := m.TravelTimeDiff(p, p, true)
	if got := tps.Cutoff(); got != 3 {
		t.Fatalf("cutoff = %d, want 3 (30 km)", got)
	}
	for i := 3; i < tps.Len(); i++ {
		if _, ok := tps.At(i); ok {
			t.Fatalf("sample %d below the turning point is valid", i)
		}
	}
	xp := m.Offset(p, P, true)
	if xp.Cutoff() != 3 {
		t.Fatalf("P offset cutoff = %d, want 3", xp.Cutoff())
	}
}

func TestSupercriticalAtSurfaceIsAllInvalid(t *testing.T) {
	m := iasp91(t, core.Arange(0, 100, 10), 0)
	p := Constant(geo.SkmToSrad(0.5))
	tps := m.TravelTimeDiff(p, p, true)
	if tps.Cutoff() != 0 {
		t.Fatalf("cutoff = %d, want 0", tps.Cutoff())
	}
}

func TestOffsetUnits(t *testing.T) {
	depths := core.Arange(0, 110, 10)
	m := iasp91(t, depths, 0)
	p := Constant(geo.SkmToSrad(0.06))

	sph := m.Offset(p, S, true)
	flat := m.Offset(p, S, false)
	as, _ := sph.At(10)
	af, _ := flat.At(10)
	// radians of arc times the radius should be close to the flat km offset.
	if km := as * geo.EarthRadius; math.Abs(km-af)/af > 0.03 {
		t.Fatalf("spherical offset %v km vs flat %v km", km, af)
	}
	if af < 15 || af > 40 {
		t.Fatalf("S offset at 100 km = %v km, want 15..40", af)
	}
	if v, _ := sph.At(0); v != 0 {
		t.Fatalf("offset at the surface = %v, want 0", v)
	}
}

func TestPathLengthIsSegmentLength(t *testing.T) {
	depths := core.Arange(0, 50, 10)
	m := iasp91(t, depths, 0)
	l := m.PathLength(Constant(0), P, false)
	for i := 1; i < l.Len(); i++ {
		v, ok := l.At(i)
		if !ok || math.Abs(v-10) > 1e-9 {
			t.Fatalf("vertical segment %d = (%v, %v), want 10 km", i, v, ok)
		}
	}
	if v, _ := l.At(0); v != 0 {
		t.Fatalf("first segment = %v, want 0", v)
	}
}

func TestElevationGrid(t *testing.T) {
	depths := core.Arange(0, 100, 10)
	m := iasp91(t, depths, 1.5)
	elev := m.ElevationDepths()
	if len(elev) != len(depths)+1 {
		t.Fatalf("len = %d, want %d", len(elev), len(depths)+1)
	}
	if elev[0] != -1.5 {
		t.Fatalf("first adjusted depth = %v, want -1.5", elev[0])
	}
	if last := elev[len(elev)-1]; last < depths[len(depths)-1] {
		t.Fatalf("adjusted grid ends at %v, above the caller grid", last)
	}
	if m.Elevation() != 1.5 {
		t.Fatalf("Elevation = %v", m.Elevation())
	}
	if len(m.RefVelocity(S)) != len(depths) {
		t.Fatal("reference velocities must follow the caller grid")
	}
}

func TestNewRejectsBadGrid(t *testing.T) {
	tab, _ := LoadTable("iasp91")
	if _, err := New(tab, []float64{0, 10, 10}, 0); !errors.Is(err, ErrInvalidGrid) {
		t.Fatalf("err = %v, want ErrInvalidGrid", err)
	}
}

func TestProfileSlowness(t *testing.T) {
	p := Profile{1, 2}
	if p.At(0) != 1 || p.At(5) != 2 {
		t.Fatalf("Profile.At = %v, %v", p.At(0), p.At(5))
	}
	if !math.IsNaN(Profile(nil).At(0)) {
		t.Fatal("empty profile should yield NaN")
	}
}

func TestVerticalSlownessZeroRadicandIsEvanescent(t *testing.T) {
	m := iasp91(t, []float64{0, 10}, 0)
	v := m.Velocity(P)[0]

	// flat-earth radius is R, so p = R/v zeroes the radicand exactly
	if _, ok := m.verticalSlowness(0, v, geo.EarthRadius/v, false); ok {
		t.Fatalf("radicand 0 must be evanescent")
	}
	q, ok := m.verticalSlowness(0, v, 0.5*geo.EarthRadius/v, false)
	if !ok || !(q > 0) {
		t.Fatalf("half-critical p = (%v, %v), want positive real slowness", q, ok)
	}
}
