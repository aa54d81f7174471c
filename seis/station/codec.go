package station

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

// wireRecord is the exchange form of a Record. Elevation is in metres and
// traces are keyed by component code.
type wireRecord struct {
	Name      string                 `json:"station"`
	Lat       float64                `json:"stla"`
	Lon       float64                `json:"stlo"`
	Elevation float64                `json:"stel"`
	Sampling  float64                `json:"sampling"`
	Shift     float64                `json:"shift"`
	Length    int                    `json:"length,omitempty"`
	Events    []Event                `json:"events"`
	Traces    map[string][][]float64 `json:"traces"`
}

func (r *Record) wire() wireRecord {
	w := wireRecord{
		Name:      r.Name,
		Lat:       r.Lat,
		Lon:       r.Lon,
		Elevation: r.Elevation * 1000,
		Sampling:  r.Sampling,
		Shift:     r.Shift,
		Length:    r.Length,
		Events:    r.Events,
		Traces:    make(map[string][][]float64, len(r.traces)),
	}
	for c, rows := range r.traces {
		w.Traces[c.String()] = rows
	}
	return w
}

func fromWire(w wireRecord) (*Record, error) {
	traces := make(map[Component][][]float64, len(w.Traces))
	for name, rows := range w.Traces {
		c, err := ParseComponent(name)
		if err != nil {
			return nil, err
		}
		traces[c] = rows
	}

	n := w.Length
	if n == 0 {
		for _, rows := range traces {
			if len(rows) > 0 {
				n = len(rows[0])
				break
			}
		}
	}

	return New(Header{
		Name:      w.Name,
		Lat:       w.Lat,
		Lon:       w.Lon,
		Elevation: w.Elevation / 1000,
		Sampling:  w.Sampling,
		Shift:     w.Shift,
		Length:    n,
	}, w.Events, traces)
}

// Decode reads a JSON record.
func Decode(r io.Reader) (*Record, error) {
	var w wireRecord
	if err := json.NewDecoder(r).Decode(&w); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	return fromWire(w)
}

// Encode writes rec as JSON.
func Encode(w io.Writer, rec *Record) error {
	return json.NewEncoder(w).Encode(rec.wire())
}

// DecodeMsgpack reads a MessagePack record using the JSON field names.
func DecodeMsgpack(r io.Reader) (*Record, error) {
	dec := msgpack.NewDecoder(r)
	dec.SetCustomStructTag("json")

	var w wireRecord
	if err := dec.Decode(&w); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	return fromWire(w)
}

// EncodeMsgpack writes rec as MessagePack using the JSON field names.
func EncodeMsgpack(w io.Writer, rec *Record) error {
	enc := msgpack.NewEncoder(w)
	enc.SetCustomStructTag("json")
	return enc.Encode(rec.wire())
}
