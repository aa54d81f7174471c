// Package config loads the run configuration of the rfdepth command. A YAML
// file supplies the base values; command-line flags that were set
// explicitly override them through Set.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v2"

	"github.com/cwbudde/algo-seis/dsp/core"
	"github.com/cwbudde/algo-seis/seis/export"
	"github.com/cwbudde/algo-seis/seis/station"
)

// ErrInvalidConfig indicates a run configuration that cannot be used.
var ErrInvalidConfig = errors.New("config: invalid run configuration")

// Modes lists the processing modes of the command.
var Modes = []string{"depth", "moveout", "trace1d", "trace3d", "timecorrect3d"}

// GeoJSONPaths selects ray-path line output instead of pierce points.
const GeoJSONPaths = "paths"

// Run is the run configuration. Depths are in km, ray parameters in s/km.
type Run struct {
	Mode      string  `yaml:"mode"`
	Model     string  `yaml:"model"`
	DepMax    float64 `yaml:"dep_max"`
	DepStep   float64 `yaml:"dep_step"`
	RefRayP   float64 `yaml:"ref_rayp"`
	Normalize string  `yaml:"normalize"`
	Flat      bool    `yaml:"flat"`
	Mod3D     string  `yaml:"mod3d,omitempty"`
	SRayP     string  `yaml:"srayp,omitempty"`
	Sort      string  `yaml:"sort,omitempty"`
	Resample  float64 `yaml:"resample,omitempty"`
	Format    string  `yaml:"format"`
	GeoJSON   string  `yaml:"geojson,omitempty"`
	Workers   int     `yaml:"workers,omitempty"`
	Debug     bool    `yaml:"debug,omitempty"`
}

// Default returns the configuration used when no file is given.
func Default() *Run {
	return &Run{
		Mode:      "depth",
		Model:     "iasp91",
		DepMax:    300,
		DepStep:   1,
		RefRayP:   0.06,
		Normalize: "single",
		Format:    string(export.JSON),
	}
}

// Load reads a YAML file over the defaults.
func Load(path string) (*Run, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
	}
	return cfg, nil
}

// Set assigns the value of the command-line flag name. Flag names use
// dashes where the YAML keys use underscores.
func (r *Run) Set(name, value string) error {
	var err error
	switch name {
	case "mode":
		r.Mode = value
	case "model":
		r.Model = value
	case "dep-max":
		r.DepMax, err = strconv.ParseFloat(value, 64)
	case "dep-step":
		r.DepStep, err = strconv.ParseFloat(value, 64)
	case "ref-rayp":
		r.RefRayP, err = strconv.ParseFloat(value, 64)
	case "normalize":
		r.Normalize = value
	case "flat":
		r.Flat, err = strconv.ParseBool(value)
	case "mod3d":
		r.Mod3D = value
	case "srayp":
		r.SRayP = value
	case "sort":
		r.Sort = value
	case "resample":
		r.Resample, err = strconv.ParseFloat(value, 64)
	case "format":
		r.Format = value
	case "geojson":
		r.GeoJSON = value
	case "workers":
		r.Workers, err = strconv.Atoi(value)
	case "debug":
		r.Debug, err = strconv.ParseBool(value)
	default:
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: -%s: %v", ErrInvalidConfig, name, err)
	}
	return nil
}

// Validate checks the configuration for the selected mode.
func (r *Run) Validate() error {
	if !contains(Modes, r.Mode) {
		return fmt.Errorf("%w: mode %q, want one of %s", ErrInvalidConfig, r.Mode, strings.Join(Modes, ", "))
	}
	if !(r.DepStep > 0) || !(r.DepMax > 0) {
		return fmt.Errorf("%w: dep_max %v, dep_step %v", ErrInvalidConfig, r.DepMax, r.DepStep)
	}
	if r.Mode == "moveout" && !(r.RefRayP > 0) {
		return fmt.Errorf("%w: ref_rayp %v", ErrInvalidConfig, r.RefRayP)
	}
	if (r.Mode == "trace3d" || r.Mode == "timecorrect3d") && r.Mod3D == "" {
		return fmt.Errorf("%w: mode %s needs mod3d", ErrInvalidConfig, r.Mode)
	}
	if r.Resample < 0 || r.Workers < 0 {
		return fmt.Errorf("%w: resample %v, workers %d", ErrInvalidConfig, r.Resample, r.Workers)
	}
	if _, _, err := r.NormMethod(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if _, err := export.ParseFormat(r.Format); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if _, _, err := r.PierceDepth(); err != nil {
		return err
	}
	if r.GeoJSON != "" && r.Mode != "trace1d" && r.Mode != "trace3d" {
		return fmt.Errorf("%w: geojson output needs mode trace1d or trace3d", ErrInvalidConfig)
	}
	return nil
}

// Depths returns the processing grid 0, DepStep, ... up to and including
// DepMax.
func (r *Run) Depths() []float64 {
	return core.Arange(0, r.DepMax+r.DepStep/2, r.DepStep)
}

// NormMethod parses Normalize. ok is false for "none" or an empty value.
func (r *Run) NormMethod() (method station.NormMethod, ok bool, err error) {
	switch strings.ToLower(r.Normalize) {
	case "", "none":
		return 0, false, nil
	}
	method, err = station.ParseNormMethod(r.Normalize)
	return method, err == nil, err
}

// PierceDepth parses GeoJSON as a pierce-point depth. ok is false when
// GeoJSON is empty or selects ray paths.
func (r *Run) PierceDepth() (depth float64, ok bool, err error) {
	if r.GeoJSON == "" || r.GeoJSON == GeoJSONPaths {
		return 0, false, nil
	}
	depth, err = strconv.ParseFloat(r.GeoJSON, 64)
	if err != nil || depth < 0 {
		return 0, false, fmt.Errorf("%w: geojson %q, want %q or a depth in km", ErrInvalidConfig, r.GeoJSON, GeoJSONPaths)
	}
	return depth, true, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
