package station

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-seis/dsp/core"
	"github.com/cwbudde/algo-seis/seis/velmod"
)

var (
	// ErrInvalidRecord indicates a record that violates its shape invariants.
	ErrInvalidRecord = errors.New("station: invalid record")
	// ErrMissingComponent indicates a component the record does not carry.
	ErrMissingComponent = errors.New("station: missing component")
)

// Event is the metadata of one teleseismic event. RayP is in s/km.
type Event struct {
	Name  string  `json:"name"`
	Phase string  `json:"phase,omitempty"`
	Lat   float64 `json:"evla"`
	Lon   float64 `json:"evlo"`
	Depth float64 `json:"evdp"`
	Dis   float64 `json:"dis"`
	Baz   float64 `json:"bazi"`
	RayP  float64 `json:"rayp"`
	Mag   float64 `json:"mag"`
	F0    float64 `json:"f0"`
}

// Header is the station metadata shared by all events. Elevation is in km
// above sea level; Sampling and Shift are in seconds.
type Header struct {
	Name      string
	Lat, Lon  float64
	Elevation float64
	Sampling  float64
	Shift     float64
	Length    int
}

// Record is a validated set of receiver functions at one station.
type Record struct {
	Header
	Events []Event

	prime  Component
	traces map[Component][][]float64
}

// New validates and builds a record. The trace matrices are deep-copied.
// A negative or non-finite elevation is treated as sea level.
func New(h Header, events []Event, traces map[Component][][]float64) (*Record, error) {
	if !(h.Sampling > 0) || h.Length <= 0 {
		return nil, fmt.Errorf("%w: sampling %v, length %d", ErrInvalidRecord, h.Sampling, h.Length)
	}
	if len(events) == 0 {
		return nil, fmt.Errorf("%w: no events", ErrInvalidRecord)
	}
	if !core.IsFinite(h.Elevation) || h.Elevation < 0 {
		h.Elevation = 0
	}
	if !core.IsFinite(h.Shift) {
		return nil, fmt.Errorf("%w: shift %v", ErrInvalidRecord, h.Shift)
	}

	prime := Component(-1)
	for c := range traces {
		switch {
		case c == Transverse:
		case c.IsPrime():
			if prime >= 0 {
				return nil, fmt.Errorf("%w: both %s and %s present", ErrInvalidRecord, prime, c)
			}
			prime = c
		default:
			return nil, fmt.Errorf("%w: %s", ErrInvalidRecord, c)
		}
	}
	if prime < 0 {
		return nil, fmt.Errorf("%w: no R, Q, L or Z component", ErrMissingComponent)
	}

	out := &Record{
		Header: h,
		Events: append([]Event(nil), events...),
		prime:  prime,
		traces: make(map[Component][][]float64, len(traces)),
	}
	for c, rows := range traces {
		if len(rows) != len(events) {
			return nil, fmt.Errorf("%w: %s has %d rows for %d events", ErrInvalidRecord, c, len(rows), len(events))
		}
		for i, r := range rows {
			if len(r) != h.Length {
				return nil, fmt.Errorf("%w: %s row %d has %d samples, want %d", ErrInvalidRecord, c, i, len(r), h.Length)
			}
		}
		out.traces[c] = core.CloneRows(rows)
	}
	return out, nil
}

// NumEvents returns the number of events.
func (r *Record) NumEvents() int { return len(r.Events) }

// Has reports whether component c was loaded.
func (r *Record) Has(c Component) bool {
	_, ok := r.traces[c]
	return ok
}

// Prime returns the component carrying the converted phase.
func (r *Record) Prime() Component { return r.prime }

// PrimePhase returns P for P receiver functions and S for S receiver functions.
func (r *Record) PrimePhase() velmod.Phase { return r.prime.Phase() }

// OnlyPrime reports whether the transverse component is absent.
func (r *Record) OnlyPrime() bool { return !r.Has(Transverse) }

// Data returns the amplitude matrix of c. The rows must not be modified.
func (r *Record) Data(c Component) ([][]float64, error) {
	rows, ok := r.traces[c]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingComponent, c)
	}
	return rows, nil
}

// Components returns the loaded components, prime first.
func (r *Record) Components() []Component {
	out := []Component{r.prime}
	if r.Has(Transverse) {
		out = append(out, Transverse)
	}
	return out
}

// TimeAxis returns t_j = j*Sampling - Shift for every sample.
func (r *Record) TimeAxis() []float64 {
	t := make([]float64, r.Length)
	for j := range t {
		t[j] = float64(j)*r.Sampling - r.Shift
	}
	return t
}

// withTraces builds a record with the prime component of r.
func (r *Record) withTraces(h Header, events []Event, traces map[Component][][]float64) *Record {
	return &Record{
		Header: h,
		Events: events,
		prime:  r.prime,
		traces: traces,
	}
}

func nanMaxAbs(xs []float64) float64 {
	m := math.NaN()
	for _, v := range xs {
		if math.IsNaN(v) {
			continue
		}
		if a := math.Abs(v); math.IsNaN(m) || a > m {
			m = a
		}
	}
	return m
}
