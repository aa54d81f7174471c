package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

// ErrUnknownFormat indicates an output format other than json or msgpack.
var ErrUnknownFormat = errors.New("export: unknown output format")

// Format selects the encoding of a result document.
type Format string

const (
	JSON    Format = "json"
	Msgpack Format = "msgpack"
)

// ParseFormat accepts "json" and "msgpack" (case-insensitive). An empty
// string selects JSON.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(JSON):
		return JSON, nil
	case string(Msgpack):
		return Msgpack, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Encode writes v to w in format f. Struct fields are keyed by their json
// tags in both encodings. Values with their own JSON encoding, such as
// GeoJSON collections, are converted through JSON before MessagePack
// encoding so both outputs carry the same keys.
func Encode(w io.Writer, v any, f Format) error {
	switch f {
	case JSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case Msgpack:
		if m, ok := v.(json.Marshaler); ok {
			raw, err := m.MarshalJSON()
			if err != nil {
				return err
			}
			var generic any
			if err := json.Unmarshal(raw, &generic); err != nil {
				return err
			}
			v = generic
		}
		enc := msgpack.NewEncoder(w)
		enc.SetCustomStructTag("json")
		return enc.Encode(v)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, string(f))
}
