package rfdepth

import (
	"errors"

	"github.com/cwbudde/algo-seis/seis/mod3d"
	"github.com/cwbudde/algo-seis/seis/psrayp"
	"github.com/cwbudde/algo-seis/seis/station"
	"github.com/cwbudde/algo-seis/seis/velmod"
)

var (
	// ErrInvalidDepthGrid indicates a depth grid that is empty or not strictly increasing.
	ErrInvalidDepthGrid = errors.New("rfdepth: depth grid must be strictly increasing")
	// ErrShapeMismatch indicates per-event inputs whose count does not match the record.
	ErrShapeMismatch = errors.New("rfdepth: per-event input count mismatch")
)

var configErrors = []error{
	ErrInvalidDepthGrid,
	ErrShapeMismatch,
	velmod.ErrUnknownModel,
	velmod.ErrMalformedModel,
	velmod.ErrInvalidGrid,
	psrayp.ErrMalformedTable,
	psrayp.ErrUnreadable,
	mod3d.ErrMalformedModel,
	mod3d.ErrUnreadable,
	station.ErrInvalidRecord,
	station.ErrMissingComponent,
}

// IsConfigError reports whether err is a setup error raised before any
// per-event work, as opposed to a failure of the computation itself.
func IsConfigError(err error) bool {
	for _, target := range configErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
