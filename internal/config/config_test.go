package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/cwbudde/algo-seis/seis/station"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "run.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	d := cfg.Depths()
	if len(d) != 301 || d[0] != 0 || d[300] != 300 {
		t.Fatalf("depths: len %d, last %v", len(d), d[len(d)-1])
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeFile(t, "mode: moveout\nmodel: ak135\ndep_max: 100\nref_rayp: 0.065\nflat: true\nnormalize: average\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Mode != "moveout" || cfg.Model != "ak135" || cfg.DepMax != 100 || cfg.RefRayP != 0.065 || !cfg.Flat {
		t.Fatalf("cfg = %+v", cfg)
	}
	if cfg.DepStep != 1 || cfg.Format != "json" {
		t.Fatalf("defaults lost: %+v", cfg)
	}
	m, ok, err := cfg.NormMethod()
	if err != nil || !ok || m != station.NormAverage {
		t.Fatalf("NormMethod() = %v, %v, %v", m, ok, err)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
	path := writeFile(t, "dep_max: [1, 2\n")
	if _, err := Load(path); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("err = %v, want ErrInvalidConfig", err)
	}
}

func TestSet(t *testing.T) {
	cfg := Default()
	flags := map[string]string{
		"mode": "trace3d", "dep-max": "50", "dep-step": "2", "flat": "true",
		"mod3d": "m.mp", "workers": "4", "geojson": "paths", "unknown": "x",
	}
	for k, v := range flags {
		if err := cfg.Set(k, v); err != nil {
			t.Fatalf("Set(%s) error = %v", k, err)
		}
	}
	if cfg.Mode != "trace3d" || cfg.DepMax != 50 || cfg.DepStep != 2 || !cfg.Flat || cfg.Workers != 4 {
		t.Fatalf("cfg = %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if err := cfg.Set("dep-max", "deep"); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("err = %v, want ErrInvalidConfig", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Run)
	}{
		{"mode", func(r *Run) { r.Mode = "stack" }},
		{"step", func(r *Run) { r.DepStep = 0 }},
		{"ref rayp", func(r *Run) { r.Mode = "moveout"; r.RefRayP = 0 }},
		{"mod3d", func(r *Run) { r.Mode = "timecorrect3d" }},
		{"normalize", func(r *Run) { r.Normalize = "peak" }},
		{"format", func(r *Run) { r.Format = "xml" }},
		{"geojson", func(r *Run) { r.Mode = "trace1d"; r.GeoJSON = "deep" }},
		{"geojson mode", func(r *Run) { r.GeoJSON = GeoJSONPaths }},
		{"workers", func(r *Run) { r.Workers = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("err = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestPierceDepth(t *testing.T) {
	cfg := Default()
	if _, ok, err := cfg.PierceDepth(); ok || err != nil {
		t.Fatalf("empty: ok %v err %v", ok, err)
	}
	cfg.GeoJSON = "35"
	if d, ok, err := cfg.PierceDepth(); !ok || err != nil || d != 35 {
		t.Fatalf("35: %v %v %v", d, ok, err)
	}
	cfg.Normalize = "none"
	if _, ok, err := cfg.NormMethod(); ok || err != nil {
		t.Fatalf("none: ok %v err %v", ok, err)
	}
}
