package velmod

import (
	"bufio"
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
)

var (
	// ErrUnknownModel indicates a model name that is neither built in nor a readable file.
	ErrUnknownModel = errors.New("velmod: unknown velocity model")
	// ErrMalformedModel indicates a velocity table that cannot be used.
	ErrMalformedModel = errors.New("velmod: malformed velocity model")
)

//go:embed data/*.vel
var builtinFS embed.FS

// Table is a layered velocity model: depth in km (non-decreasing, repeated
// at first-order discontinuities) with P and S velocities in km/s.
type Table struct {
	Depth []float64
	Vp    []float64
	Vs    []float64
}

// Builtins lists the embedded model names.
func Builtins() []string {
	return []string{"ak135", "iasp91", "prem"}
}

// LoadTable resolves name to a built-in model or a file path.
func LoadTable(name string) (*Table, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, b := range Builtins() {
		if key == b {
			raw, err := builtinFS.ReadFile("data/" + b + ".vel")
			if err != nil {
				return nil, fmt.Errorf("%w: %s: %v", ErrUnknownModel, name, err)
			}
			return ParseTable(bytes.NewReader(raw))
		}
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownModel, name)
	}
	defer f.Close()

	t, err := ParseTable(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return t, nil
}

// ParseTable reads whitespace separated rows "depth vp vs [rho ...]".
// Blank lines and lines starting with '#' are ignored.
func ParseTable(r io.Reader) (*Table, error) {
	t := &Table{}
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		fields := strings.Fields(text)
		if len(fields) < 3 {
			return nil, fmt.Errorf("%w: line %d: want at least 3 columns, got %d", ErrMalformedModel, line, len(fields))
		}

		var row [3]float64
		for i := range row {
			v, err := strconv.ParseFloat(fields[i], 64)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedModel, line, err)
			}
			row[i] = v
		}

		t.Depth = append(t.Depth, row[0])
		t.Vp = append(t.Vp, row[1])
		t.Vs = append(t.Vs, row[2])
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedModel, err)
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Validate checks the table shape and physical plausibility.
func (t *Table) Validate() error {
	n := len(t.Depth)
	if n < 2 || len(t.Vp) != n || len(t.Vs) != n {
		return fmt.Errorf("%w: need at least 2 rows of depth/vp/vs", ErrMalformedModel)
	}
	for i := 0; i < n; i++ {
		if i > 0 && t.Depth[i] < t.Depth[i-1] {
			return fmt.Errorf("%w: depth decreases at row %d", ErrMalformedModel, i)
		}
		if !(t.Vp[i] > 0) || t.Vs[i] < 0 {
			return fmt.Errorf("%w: non-physical velocity at row %d", ErrMalformedModel, i)
		}
	}
	return nil
}

// At returns P and S velocity at depth d. Depths above the table take the
// surface value, depths below take the deepest value. At a discontinuity the
// value of the shallower layer is returned.
func (t *Table) At(d float64) (vp, vs float64) {
	n := len(t.Depth)
	if !(d > t.Depth[0]) {
		return t.Vp[0], t.Vs[0]
	}
	if d >= t.Depth[n-1] {
		return t.Vp[n-1], t.Vs[n-1]
	}

	j := sort.SearchFloat64s(t.Depth, d)
	if t.Depth[j] == d {
		return t.Vp[j], t.Vs[j]
	}

	i := j - 1
	f := (d - t.Depth[i]) / (t.Depth[j] - t.Depth[i])
	return t.Vp[i] + f*(t.Vp[j]-t.Vp[i]), t.Vs[i] + f*(t.Vs[j]-t.Vs[i])
}

// Sample evaluates the table at every depth.
func (t *Table) Sample(depths []float64) (vp, vs []float64) {
	vp = make([]float64, len(depths))
	vs = make([]float64, len(depths))
	for i, d := range depths {
		vp[i], vs[i] = t.At(d)
	}
	return vp, vs
}

// FromProfile builds a table from a velocity profile sampled at depths,
// such as the column of a 3-D model beneath a station.
func FromProfile(depths, vp, vs []float64) (*Table, error) {
	t := &Table{
		Depth: append([]float64(nil), depths...),
		Vp:    append([]float64(nil), vp...),
		Vs:    append([]float64(nil), vs...),
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}
