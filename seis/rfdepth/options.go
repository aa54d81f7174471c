package rfdepth

import (
	"runtime"

	"github.com/cwbudde/algo-seis/seis/psrayp"
	"github.com/cwbudde/algo-seis/seis/station"
	"go.uber.org/zap"
)

// Config holds the processing settings shared by all operations.
type Config struct {
	// Sphere enables the earth-flattening treatment of ray geometry.
	Sphere bool
	// Lookup supplies the converted-phase ray parameter. When nil the S leg
	// uses the direct-phase ray parameter.
	Lookup psrayp.Lookup
	// Normalize scales amplitudes with NormMethod before depth conversion.
	Normalize  bool
	NormMethod station.NormMethod
	// Workers bounds the number of events processed concurrently.
	Workers int
	Logger  *zap.Logger
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns spherical geometry, single-trace normalization,
// one worker per CPU and a no-op logger.
func DefaultConfig() Config {
	return Config{
		Sphere:     true,
		Normalize:  true,
		NormMethod: station.NormSingle,
		Workers:    runtime.GOMAXPROCS(0),
		Logger:     zap.NewNop(),
	}
}

// WithSphere toggles the earth-flattening treatment.
func WithSphere(sphere bool) Option {
	return func(cfg *Config) {
		cfg.Sphere = sphere
	}
}

// WithRayParamLookup sets the converted-phase ray parameter source.
func WithRayParamLookup(l psrayp.Lookup) Option {
	return func(cfg *Config) {
		cfg.Lookup = l
	}
}

// WithNormalize enables amplitude normalization before depth conversion.
func WithNormalize(method station.NormMethod) Option {
	return func(cfg *Config) {
		cfg.Normalize = true
		cfg.NormMethod = method
	}
}

// WithoutNormalize disables amplitude normalization.
func WithoutNormalize() Option {
	return func(cfg *Config) {
		cfg.Normalize = false
	}
}

// WithWorkers sets the number of concurrent event workers.
func WithWorkers(n int) Option {
	return func(cfg *Config) {
		if n > 0 {
			cfg.Workers = n
		}
	}
}

// WithLogger sets the logger used for per-event diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(cfg *Config) {
		if l != nil {
			cfg.Logger = l
		}
	}
}

// ApplyOptions applies zero or more options to the default config.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
