package station

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/cwbudde/algo-seis/dsp/resample"
	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/floats"
)

// ErrUnknownSortKey indicates a SortBy key that names no event field.
var ErrUnknownSortKey = errors.New("station: unknown sort key")

// NormMethod selects how amplitudes are scaled by Normalize.
type NormMethod int

const (
	// NormSingle divides every event by the peak absolute amplitude of its
	// own prime trace.
	NormSingle NormMethod = iota
	// NormAverage divides every event by the peak absolute amplitude of the
	// station's mean prime trace.
	NormAverage
)

// ParseNormMethod accepts "single" or "average".
func ParseNormMethod(s string) (NormMethod, error) {
	switch s {
	case "single":
		return NormSingle, nil
	case "average":
		return NormAverage, nil
	}
	return 0, fmt.Errorf("station: unknown normalization %q", s)
}

// Normalize returns a record with amplitudes scaled per method. The
// transverse channel uses the prime channel's scale. Rows whose scale is
// zero or undefined are copied unchanged.
func (r *Record) Normalize(method NormMethod) *Record {
	prime := r.traces[r.prime]
	scales := make([]float64, len(prime))
	switch method {
	case NormAverage:
		mean := make([]float64, r.Length)
		for _, row := range prime {
			floats.Add(mean, row)
		}
		floats.Scale(1/float64(len(prime)), mean)
		amp := nanMaxAbs(mean)
		for i := range scales {
			scales[i] = amp
		}
	default:
		for i, row := range prime {
			scales[i] = nanMaxAbs(row)
		}
	}

	traces := make(map[Component][][]float64, len(r.traces))
	for c, rows := range r.traces {
		out := make([][]float64, len(rows))
		for i, row := range rows {
			out[i] = make([]float64, len(row))
			s := scales[i]
			if s == 0 || math.IsNaN(s) || math.IsInf(s, 0) {
				copy(out[i], row)
				continue
			}
			vecmath.ScaleBlock(out[i], row, 1/s)
		}
		traces[c] = out
	}
	return r.withTraces(r.Header, append([]Event(nil), r.Events...), traces)
}

// Resample returns a record resampled to interval dt (s) with
// int(Length*Sampling/dt)+1 samples per trace, using FFT resampling.
func (r *Record) Resample(dt float64) (*Record, error) {
	if !(dt > 0) || math.IsInf(dt, 0) {
		return nil, fmt.Errorf("%w: resampling interval %v", ErrInvalidRecord, dt)
	}
	n := int(float64(r.Length)*(r.Sampling/dt)) + 1

	traces := make(map[Component][][]float64, len(r.traces))
	for c, rows := range r.traces {
		out := make([][]float64, len(rows))
		for i, row := range rows {
			y, err := resample.FFT(row, n)
			if err != nil {
				return nil, fmt.Errorf("station: resample %s row %d: %w", c, i, err)
			}
			out[i] = y
		}
		traces[c] = out
	}

	h := r.Header
	h.Sampling = dt
	h.Length = n
	return r.withTraces(h, append([]Event(nil), r.Events...), traces), nil
}

var sortKeys = map[string]func(Event) float64{
	"evla":  func(e Event) float64 { return e.Lat },
	"evlo":  func(e Event) float64 { return e.Lon },
	"evdp":  func(e Event) float64 { return e.Depth },
	"dis":   func(e Event) float64 { return e.Dis },
	"bazi":  func(e Event) float64 { return e.Baz },
	"rayp":  func(e Event) float64 { return e.RayP },
	"mag":   func(e Event) float64 { return e.Mag },
	"f0":    func(e Event) float64 { return e.F0 },
	"event": nil,
}

// SortBy returns a record whose events and trace rows are stably ordered
// by key: event, evla, evlo, evdp, dis, bazi, rayp, mag or f0.
func (r *Record) SortBy(key string) (*Record, error) {
	get, ok := sortKeys[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSortKey, key)
	}

	idx := make([]int, len(r.Events))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		ea, eb := r.Events[idx[a]], r.Events[idx[b]]
		if get == nil {
			return ea.Name < eb.Name
		}
		return get(ea) < get(eb)
	})

	events := make([]Event, len(idx))
	for i, j := range idx {
		events[i] = r.Events[j]
	}
	traces := make(map[Component][][]float64, len(r.traces))
	for c, rows := range r.traces {
		out := make([][]float64, len(rows))
		for i, j := range idx {
			out[i] = append([]float64(nil), rows[j]...)
		}
		traces[c] = out
	}
	return r.withTraces(r.Header, events, traces), nil
}
