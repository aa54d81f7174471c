package testutil

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-seis/seis/station"
)

// Arrival is a Gaussian pulse at Delay seconds after the direct phase.
type Arrival struct {
	Delay float64
	Amp   float64
}

// PulseTrain sums Gaussian pulses of half-width width (s) on the time axis.
func PulseTrain(timeAxis []float64, width float64, arrivals ...Arrival) []float64 {
	out := make([]float64, len(timeAxis))
	for _, a := range arrivals {
		for i, t := range timeAxis {
			x := (t - a.Delay) / width
			out[i] += a.Amp * math.Exp(-x*x)
		}
	}
	return out
}

// TimeAxis returns j*sampling - shift for n samples.
func TimeAxis(n int, sampling, shift float64) []float64 {
	out := make([]float64, n)
	for j := range out {
		out[j] = float64(j)*sampling - shift
	}
	return out
}

// Station builds a radial (and optionally transverse) record in which
// event i carries the pulses returned by arrivals(i).
func Station(tb testing.TB, h station.Header, events []station.Event, transverse bool, arrivals func(i int) []Arrival) *station.Record {
	tb.Helper()

	axis := TimeAxis(h.Length, h.Sampling, h.Shift)
	r := make([][]float64, len(events))
	tr := make([][]float64, len(events))
	for i := range events {
		r[i] = PulseTrain(axis, 0.5, arrivals(i)...)
		tr[i] = make([]float64, h.Length)
		for j, v := range r[i] {
			tr[i][j] = -0.5 * v
		}
	}

	traces := map[station.Component][][]float64{station.Radial: r}
	if transverse {
		traces[station.Transverse] = tr
	}
	rec, err := station.New(h, events, traces)
	if err != nil {
		tb.Fatalf("station.New: %v", err)
	}
	return rec
}

// Events returns n events at distance 60 deg with the given ray parameters (s/km),
// cycling through them when n exceeds their count.
func Events(n int, rayp ...float64) []station.Event {
	out := make([]station.Event, n)
	for i := range out {
		out[i] = station.Event{
			Name:  string(rune('a' + i%26)),
			Dis:   60,
			Depth: 10,
			Baz:   math.Mod(float64(i*37), 360),
			RayP:  rayp[i%len(rayp)],
		}
	}
	return out
}
