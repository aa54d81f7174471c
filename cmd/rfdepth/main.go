// Command rfdepth converts the receiver functions of one station from time
// to depth and writes the result to stdout.
//
// Usage:
//
//	rfdepth [flags] station.json
//
// The station file is JSON, or MessagePack when its name ends in .mp or
// .msgpack. A YAML run configuration given with -config supplies defaults;
// flags set on the command line take precedence.
//
// Examples:
//
//	rfdepth -dep-max 200 ST01.json
//	rfdepth -mode moveout -ref-rayp 0.065 ST01.json
//	rfdepth -mode trace1d -geojson 410 ST01.json
//	rfdepth -mode timecorrect3d -mod3d model.mp -format msgpack ST01.mp
//	rfdepth -list
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cwbudde/algo-seis/internal/config"
	"github.com/cwbudde/algo-seis/internal/log"
	"github.com/cwbudde/algo-seis/seis/export"
	"github.com/cwbudde/algo-seis/seis/mod3d"
	"github.com/cwbudde/algo-seis/seis/psrayp"
	"github.com/cwbudde/algo-seis/seis/rfdepth"
	"github.com/cwbudde/algo-seis/seis/station"
	"github.com/cwbudde/algo-seis/seis/velmod"
)

var errUsage = errors.New("usage")

func main() {
	err := run(os.Args[1:], os.Stdout, os.Stderr)
	log.Sync()
	if errors.Is(err, errUsage) {
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	def := config.Default()
	fs := flag.NewFlagSet("rfdepth", flag.ContinueOnError)
	fs.SetOutput(stderr)
	cfgPath := fs.String("config", "", "YAML run configuration")
	list := fs.Bool("list", false, "list built-in velocity models")
	fs.String("mode", def.Mode, "processing mode: "+strings.Join(config.Modes, ", "))
	fs.String("model", def.Model, "1-D velocity model: built-in name or file")
	fs.Float64("dep-max", def.DepMax, "deepest conversion depth in km")
	fs.Float64("dep-step", def.DepStep, "depth step in km")
	fs.Float64("ref-rayp", def.RefRayP, "reference ray parameter for moveout in s/km")
	fs.String("normalize", def.Normalize, "amplitude normalization: single, average or none")
	fs.Bool("flat", def.Flat, "flat-earth geometry instead of earth flattening")
	fs.String("mod3d", "", "3-D velocity model file (msgpack)")
	fs.String("srayp", "", "Ps ray parameter lookup table (msgpack)")
	fs.String("sort", "", "sort events by key before processing (event, evdp, dis, bazi, rayp, ...)")
	fs.Float64("resample", 0, "resample traces to this sampling interval in s before processing")
	fs.String("format", def.Format, "output format: json or msgpack")
	fs.String("geojson", "", "ray-trace output as GeoJSON: \"paths\" or a pierce-point depth in km")
	fs.Int("workers", 0, "concurrent events (0 uses all CPUs)")
	fs.Bool("debug", false, "debug logging")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: rfdepth [flags] station.json\n\n")
		fmt.Fprintf(stderr, "Converts a station's receiver functions from time to depth.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	if *list {
		for _, name := range velmod.Builtins() {
			fmt.Fprintln(stdout, name)
		}
		return nil
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return errUsage
	}

	cfg := def
	if *cfgPath != "" {
		var err error
		if cfg, err = config.Load(*cfgPath); err != nil {
			return err
		}
	}
	var setErr error
	fs.Visit(func(f *flag.Flag) {
		if err := cfg.Set(f.Name, f.Value.String()); err != nil && setErr == nil {
			setErr = err
		}
	})
	if setErr != nil {
		return setErr
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := log.Init(cfg.Debug); err != nil {
		return err
	}

	rec, err := readStation(fs.Arg(0))
	if err != nil {
		return err
	}
	if rec, err = prepare(rec, cfg); err != nil {
		return err
	}

	doc, err := process(rec, cfg)
	if err != nil {
		return err
	}
	format, _ := export.ParseFormat(cfg.Format)
	return export.Encode(stdout, doc, format)
}

func readStation(path string) (*station.Record, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp", ".msgpack":
		return station.DecodeMsgpack(fh)
	}
	return station.Decode(fh)
}

func prepare(rec *station.Record, cfg *config.Run) (*station.Record, error) {
	var err error
	if cfg.Resample > 0 {
		if rec, err = rec.Resample(cfg.Resample); err != nil {
			return nil, err
		}
	}
	if cfg.Sort != "" {
		if rec, err = rec.SortBy(cfg.Sort); err != nil {
			return nil, err
		}
	}
	return rec, nil
}

func options(cfg *config.Run) ([]rfdepth.Option, error) {
	opts := []rfdepth.Option{
		rfdepth.WithSphere(!cfg.Flat),
		rfdepth.WithWorkers(cfg.Workers),
		rfdepth.WithLogger(log.Logger()),
	}

	method, ok, err := cfg.NormMethod()
	if err != nil {
		return nil, err
	}
	if ok {
		opts = append(opts, rfdepth.WithNormalize(method))
	} else {
		opts = append(opts, rfdepth.WithoutNormalize())
	}

	if cfg.SRayP != "" {
		lookup, err := psrayp.Load(cfg.SRayP)
		if err != nil {
			return nil, err
		}
		opts = append(opts, rfdepth.WithRayParamLookup(lookup))
	}
	return opts, nil
}

func process(rec *station.Record, cfg *config.Run) (any, error) {
	opts, err := options(cfg)
	if err != nil {
		return nil, err
	}
	p := rfdepth.NewProcessor(opts...)
	depths := cfg.Depths()

	table, err := velmod.LoadTable(cfg.Model)
	if err != nil {
		return nil, err
	}
	var m3d *mod3d.Model
	if cfg.Mod3D != "" {
		if m3d, err = mod3d.Load(cfg.Mod3D, table, depths); err != nil {
			return nil, err
		}
	}

	log.Infow("processing station",
		"station", rec.Name, "mode", cfg.Mode, "events", rec.NumEvents(), "model", cfg.Model)

	switch cfg.Mode {
	case "moveout":
		res, err := p.Moveout(rec, cfg.RefRayP, depths, table)
		if err != nil {
			return nil, err
		}
		return export.NewMoveoutDocument(rec, cfg.RefRayP, res), nil

	case "trace1d", "trace3d":
		var paths []rfdepth.RayPath
		if cfg.Mode == "trace1d" {
			paths, err = p.RayTrace1D(rec, depths, table)
		} else {
			paths, err = p.RayTrace3D(rec, depths, m3d)
		}
		if err != nil {
			return nil, err
		}
		return pathsOutput(rec, depths, paths, cfg)

	case "timecorrect3d":
		img, err := p.TimeCorrect3D(rec, depths, table, m3d)
		if err != nil {
			return nil, err
		}
		return export.NewDepthDocument(rec, img, nil), nil
	}

	// depth: with a 3-D model, convert with the column beneath the station.
	if m3d != nil {
		if table, err = m3d.Profile(rec.Lat, rec.Lon); err != nil {
			return nil, err
		}
		log.Debugw("using 3-D model column", "lat", rec.Lat, "lon", rec.Lon)
	}
	res, err := p.Depth(rec, depths, table)
	if err != nil {
		return nil, err
	}
	return export.NewDepthDocument(rec, res.DepthImage, res), nil
}

func pathsOutput(rec *station.Record, depths []float64, paths []rfdepth.RayPath, cfg *config.Run) (any, error) {
	if cfg.GeoJSON == config.GeoJSONPaths {
		return export.RayPaths(rec, paths, depths), nil
	}
	depth, ok, err := cfg.PierceDepth()
	if err != nil {
		return nil, err
	}
	if ok {
		return export.PiercePoints(rec, paths, depths, depth)
	}
	return export.NewPathsDocument(rec, depths, paths), nil
}
