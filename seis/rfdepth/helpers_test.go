package rfdepth

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-seis/dsp/core"
	"github.com/cwbudde/algo-seis/internal/testutil"
	"github.com/cwbudde/algo-seis/seis/geo"
	"github.com/cwbudde/algo-seis/seis/mod3d"
	"github.com/cwbudde/algo-seis/seis/station"
	"github.com/cwbudde/algo-seis/seis/velmod"
)

const (
	testSampling = 0.1
	testShift    = 5.0
	testLength   = 300
)

func iasp91(t *testing.T, depths []float64, elev float64) *velmod.Model {
	t.Helper()
	m, err := velmod.Load("iasp91", depths, elev)
	if err != nil {
		t.Fatalf("velmod.Load: %v", err)
	}
	return m
}

func iasp91Table(t *testing.T) *velmod.Table {
	t.Helper()
	tab, err := velmod.LoadTable("iasp91")
	if err != nil {
		t.Fatal(err)
	}
	return tab
}

func header(elev float64) station.Header {
	return station.Header{
		Name: "SYN", Lat: 0, Lon: 0, Elevation: elev,
		Sampling: testSampling, Shift: testShift, Length: testLength,
	}
}

// psDelay returns the Ps-P delay (s) of a conversion at depths[idx] for a
// ray parameter in s/km.
func psDelay(t *testing.T, m Model1D, rayp float64, idx int) float64 {
	t.Helper()
	p := velmod.Constant(geo.SkmToSrad(rayp))
	v, ok := MapTimes(m, p, p).Tps.At(idx)
	if !ok {
		t.Fatalf("no delay at index %d for p=%v", idx, rayp)
	}
	return v
}

// mohoStation builds one event per ray parameter with a direct pulse and a
// Ps conversion from the depth at index moho of m.
func mohoStation(t *testing.T, m Model1D, moho int, transverse bool, rayp ...float64) *station.Record {
	t.Helper()
	events := testutil.Events(len(rayp), rayp...)
	return testutil.Station(t, header(m.Elevation()), events, transverse, func(i int) []testutil.Arrival {
		return []testutil.Arrival{
			{Delay: 0, Amp: 1},
			{Delay: psDelay(t, m, rayp[i], moho), Amp: 0.4},
		}
	})
}

// peakAfter returns the peak position of trace on axis beyond lo.
func peakAfter(t *testing.T, trace, axis []float64, lo float64) float64 {
	t.Helper()
	masked := append([]float64(nil), trace...)
	for i, x := range axis {
		if x < lo {
			masked[i] = math.NaN()
		}
	}
	pos, ok := PeakTime(masked, axis)
	if !ok {
		t.Fatal("no finite sample")
	}
	return pos
}

// uniform3D is a laterally homogeneous 3-D model with constant velocities
// equal to its own reference.
func uniform3D(t *testing.T, depths []float64, vp, vs, dv float64) *mod3d.Model {
	t.Helper()
	ref, err := velmod.FromProfile([]float64{-10, 1000}, []float64{vp, vp}, []float64{vs, vs})
	if err != nil {
		t.Fatal(err)
	}
	f := &mod3d.File{Dep: []float64{-10, 1000}, Lat: []float64{-10, 10}, Lon: []float64{-10, 10}}
	for range 8 {
		f.Vp = append(f.Vp, vp*(1+dv))
		f.Vs = append(f.Vs, vs*(1+dv))
	}
	m, err := mod3d.New(f, ref, depths)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

// constantTable is a homogeneous half-space.
func constantTable(t *testing.T, vp, vs float64) *velmod.Table {
	t.Helper()
	tab, err := velmod.FromProfile([]float64{0, 1000}, []float64{vp, vp}, []float64{vs, vs})
	if err != nil {
		t.Fatal(err)
	}
	return tab
}

var grid10 = core.Arange(0, 150, 10)
