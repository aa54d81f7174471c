package mod3d

import (
	"bytes"
	"errors"
	"io/fs"
	"math"
	"path/filepath"
	"testing"

	"github.com/cwbudde/algo-seis/seis/velmod"
)

func refTable(t *testing.T) *velmod.Table {
	t.Helper()
	tab, err := velmod.FromProfile([]float64{0, 100, 200}, []float64{6, 7, 8}, []float64{3.5, 4, 4.5})
	if err != nil {
		t.Fatal(err)
	}
	return tab
}

// uniformFile builds a model equal to the reference scaled by (1+dv).
func uniformFile(ref *velmod.Table, dv float64) *File {
	f := &File{
		Dep: []float64{0, 100, 200},
		Lat: []float64{-1, 0, 1},
		Lon: []float64{-1, 0, 1},
	}
	for _, d := range f.Dep {
		vp, vs := ref.At(d)
		for j := 0; j < len(f.Lat)*len(f.Lon); j++ {
			f.Vp = append(f.Vp, vp*(1+dv))
			f.Vs = append(f.Vs, vs*(1+dv))
		}
	}
	return f
}

func TestZeroPerturbation(t *testing.T) {
	ref := refTable(t)
	m, err := New(uniformFile(ref, 0), ref, []float64{0, 50, 150})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	dv := m.PerturbationAt([]float64{0, 50, 150}, []float64{0, 0.5, 2}, []float64{0, -0.5, 3}, velmod.S)
	for i, v := range dv {
		if math.Abs(v) > 1e-12 {
			t.Fatalf("dv[%d] = %v, want 0", i, v)
		}
	}
}

func TestUniformPerturbation(t *testing.T) {
	ref := refTable(t)
	m, err := New(uniformFile(ref, 0.02), ref, []float64{0, 50})
	if err != nil {
		t.Fatal(err)
	}
	dv := m.PerturbationAt([]float64{25, 300}, []float64{0.3, 0}, []float64{0.1, 0}, velmod.P)
	for i, v := range dv {
		if math.Abs(v-0.02) > 1e-12 {
			t.Fatalf("dv[%d] = %v, want 0.02", i, v)
		}
	}
	if got := m.VelocityAt(50, 0, 0, velmod.P); math.Abs(got-6.5*1.02) > 1e-12 {
		t.Fatalf("VelocityAt = %v, want %v", got, 6.5*1.02)
	}
}

func TestPerturbationNaNPoint(t *testing.T) {
	ref := refTable(t)
	m, _ := New(uniformFile(ref, 0.01), ref, []float64{0})
	dv := m.PerturbationAt([]float64{10}, []float64{math.NaN()}, []float64{0}, velmod.S)
	if !math.IsNaN(dv[0]) {
		t.Fatalf("dv = %v, want NaN", dv[0])
	}
}

func TestRefVelocityOnProcessingGrid(t *testing.T) {
	ref := refTable(t)
	m, _ := New(uniformFile(ref, 0), ref, []float64{0, 50, 100})
	if got := m.RefVelocity(velmod.S); got[1] != 3.75 {
		t.Fatalf("ref vs at 50 km = %v, want 3.75", got[1])
	}
}

func TestProfile(t *testing.T) {
	ref := refTable(t)
	m, _ := New(uniformFile(ref, 0.1), ref, nil)
	prof, err := m.Profile(0.2, -0.4)
	if err != nil {
		t.Fatalf("Profile() error = %v", err)
	}
	if vp, _ := prof.At(100); math.Abs(vp-7.7) > 1e-12 {
		t.Fatalf("profile vp at 100 km = %v, want 7.7", vp)
	}
}

func TestNewMalformed(t *testing.T) {
	ref := refTable(t)
	f := uniformFile(ref, 0)
	f.Vs = f.Vs[1:]
	if _, err := New(f, ref, nil); !errors.Is(err, ErrMalformedModel) {
		t.Fatalf("err = %v, want ErrMalformedModel", err)
	}

	f = uniformFile(ref, 0)
	f.Lat = []float64{1, 0, -1}
	if _, err := New(f, ref, nil); !errors.Is(err, ErrMalformedModel) {
		t.Fatalf("err = %v, want ErrMalformedModel", err)
	}
}

func TestSaveLoad(t *testing.T) {
	ref := refTable(t)
	path := filepath.Join(t.TempDir(), "model.msgpack")
	if err := Save(path, uniformFile(ref, 0.05)); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	m, err := Load(path, ref, []float64{0, 10})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := m.PerturbationAt([]float64{10}, []float64{0}, []float64{0}, velmod.S)[0]; math.Abs(got-0.05) > 1e-12 {
		t.Fatalf("dvs = %v, want 0.05", got)
	}
}

func TestDecodeGarbage(t *testing.T) {
	if _, err := Decode(bytes.NewReader([]byte{0xc1})); !errors.Is(err, ErrMalformedModel) {
		t.Fatalf("err = %v, want ErrMalformedModel", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.mp"), refTable(t), []float64{0, 10})
	if !errors.Is(err, ErrUnreadable) || !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("err = %v, want ErrUnreadable wrapping fs.ErrNotExist", err)
	}
}
