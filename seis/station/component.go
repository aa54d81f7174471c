package station

import (
	"fmt"
	"strings"

	"github.com/cwbudde/algo-seis/seis/velmod"
)

// Component identifies a receiver-function channel.
type Component int

const (
	Radial Component = iota
	Q
	Transverse
	Longitudinal
	Vertical
)

var componentNames = [...]string{"R", "Q", "T", "L", "Z"}

func (c Component) String() string {
	if c < 0 || int(c) >= len(componentNames) {
		return fmt.Sprintf("Component(%d)", int(c))
	}
	return componentNames[c]
}

// ParseComponent maps a one-letter channel code (case-insensitive) to a Component.
func ParseComponent(s string) (Component, error) {
	key := strings.ToUpper(strings.TrimSpace(s))
	for i, name := range componentNames {
		if key == name {
			return Component(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown component %q", ErrInvalidRecord, s)
}

// IsPrime reports whether c can carry the converted phase: R or Q for P
// receiver functions, L or Z for S receiver functions.
func (c Component) IsPrime() bool {
	return c != Transverse && c >= Radial && c <= Vertical
}

// Phase returns the incident phase whose conversions a prime component records.
func (c Component) Phase() velmod.Phase {
	if c == Longitudinal || c == Vertical {
		return velmod.S
	}
	return velmod.P
}
