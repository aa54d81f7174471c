package export

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"

	"github.com/cwbudde/algo-seis/seis/curve"
)

// Floats is a sample vector whose non-finite values encode as JSON null.
type Floats []float64

// MarshalJSON implements json.Marshaler.
func (f Floats) MarshalJSON() ([]byte, error) {
	if f == nil {
		return []byte("null"), nil
	}
	b := make([]byte, 0, 2+len(f)*8)
	b = append(b, '[')
	for i, v := range f {
		if i > 0 {
			b = append(b, ',')
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			b = append(b, "null"...)
			continue
		}
		b = strconv.AppendFloat(b, v, 'g', -1, 64)
	}
	return append(b, ']'), nil
}

// UnmarshalJSON implements json.Unmarshaler; null becomes NaN.
func (f *Floats) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*f = nil
		return nil
	}
	var raw []*float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(Floats, len(raw))
	for i, v := range raw {
		if v == nil {
			out[i] = math.NaN()
			continue
		}
		out[i] = *v
	}
	*f = out
	return nil
}

func rows(m [][]float64) []Floats {
	if m == nil {
		return nil
	}
	out := make([]Floats, len(m))
	for i, r := range m {
		out[i] = Floats(r)
	}
	return out
}

func curves(cs []curve.Curve) []Floats {
	if cs == nil {
		return nil
	}
	out := make([]Floats, len(cs))
	for i, c := range cs {
		out[i] = Floats(c.Floats())
	}
	return out
}
