// Package units provides angular units and conversions for the lensing engine.
//
// The engine performs all internal calculations in arcseconds. A [Unit] is a
// named scale factor relating a caller-facing angle to arcsec; positions,
// grid spacings, and wavenumbers cross the API boundary tagged with a Unit
// and are converted once on entry.
package units

import (
	"fmt"
	"strings"
)

// Unit is an angular unit, expressed as its size in arcseconds.
type Unit struct {
	name     string
	inArcsec float64
}

// Predefined angular units.
var (
	Radians = Unit{"radians", 180 * 3600 / pi}
	Degrees = Unit{"degrees", 3600}
	Arcmin  = Unit{"arcmin", 60}
	Arcsec  = Unit{"arcsec", 1}
)

const pi = 3.14159265358979323846

// Name returns the canonical unit name.
func (u Unit) Name() string { return u.name }

// InArcsec returns the size of one unit in arcseconds.
//
// The zero Unit reports 1 (arcsec), so an unset unit field behaves as the
// engine default.
func (u Unit) InArcsec() float64 {
	if u.name == "" {
		return 1
	}
	return u.inArcsec
}

// IsArcsec reports whether the unit is the internal engine unit.
func (u Unit) IsArcsec() bool { return u.InArcsec() == 1 }

// ToArcsec converts a value in this unit to arcseconds.
func (u Unit) ToArcsec(v float64) float64 { return v * u.InArcsec() }

// FromArcsec converts a value in arcseconds to this unit.
func (u Unit) FromArcsec(v float64) float64 { return v / u.InArcsec() }

// Parse resolves a unit name. Accepted spellings include "rad", "radians",
// "deg", "degrees", "arcmin", "amin", "arcsec", and "asec"; matching is
// case-insensitive.
func Parse(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "rad", "radian", "radians":
		return Radians, nil
	case "deg", "degree", "degrees":
		return Degrees, nil
	case "arcmin", "amin", "arcminutes":
		return Arcmin, nil
	case "arcsec", "asec", "arcseconds":
		return Arcsec, nil
	default:
		return Unit{}, fmt.Errorf("units: unknown angular unit %q", s)
	}
}
