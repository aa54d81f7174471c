// Package psrayp looks up the ray parameter of the converted S leg as a
// function of epicentral distance, source depth and conversion depth.
//
// Tables are precomputed with a travel-time tool and stored as MessagePack.
// Values are in s/deg.
package psrayp

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/cwbudde/algo-seis/dsp/core"
	"github.com/cwbudde/algo-seis/dsp/interp"
	"github.com/vmihailenco/msgpack/v5"
)

var (
	// ErrMalformedTable indicates a table with inconsistent axes or values.
	ErrMalformedTable = errors.New("psrayp: malformed ray parameter table")
	// ErrUnreadable indicates a table file that cannot be opened.
	ErrUnreadable = errors.New("psrayp: cannot read ray parameter table")
	// ErrInvalidQuery indicates a non-finite distance or source depth.
	ErrInvalidQuery = errors.New("psrayp: invalid query")
)

// Lookup returns S-leg ray parameters (s/deg) at each conversion depth.
type Lookup interface {
	RayParam(dis, evdp float64, depths []float64) ([]float64, error)
}

// File is the serialised table. RayP is row-major over (Dis, Evdp, Dep).
type File struct {
	Dis  []float64 `msgpack:"dis"`
	Evdp []float64 `msgpack:"evdp"`
	Dep  []float64 `msgpack:"dep"`
	RayP []float64 `msgpack:"rayp"`
}

// Table is a trilinear ray parameter lookup clamped at the table edges.
type Table struct {
	g *interp.Grid3
}

// New validates f and wraps it as a lookup.
func New(f *File) (*Table, error) {
	if f == nil {
		return nil, fmt.Errorf("%w: nil table", ErrMalformedTable)
	}
	g, err := interp.NewGrid3(f.Dis, f.Evdp, f.Dep, f.RayP)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedTable, err)
	}
	for i, v := range f.RayP {
		if !core.IsFinite(v) || v < 0 {
			return nil, fmt.Errorf("%w: ray parameter %v at index %d", ErrMalformedTable, v, i)
		}
	}
	return &Table{g: g}, nil
}

// RayParam implements Lookup.
func (t *Table) RayParam(dis, evdp float64, depths []float64) ([]float64, error) {
	if !core.IsFinite(dis) || !core.IsFinite(evdp) {
		return nil, fmt.Errorf("%w: dis=%v evdp=%v", ErrInvalidQuery, dis, evdp)
	}
	out := make([]float64, len(depths))
	for i, d := range depths {
		out[i] = t.g.At(dis, evdp, d)
	}
	return out, nil
}

// Decode reads a MessagePack table.
func Decode(r io.Reader) (*Table, error) {
	var f File
	if err := msgpack.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedTable, err)
	}
	return New(&f)
}

// Encode writes f as MessagePack.
func Encode(w io.Writer, f *File) error {
	return msgpack.NewEncoder(w).Encode(f)
}

// Load reads the table at path.
func Load(path string) (*Table, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreadable, err)
	}
	defer fh.Close()

	t, err := Decode(fh)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}
