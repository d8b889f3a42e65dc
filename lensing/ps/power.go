package ps

import (
	"log"
	"math"

	"github.com/cwbudde/algo-lensing/lensing/grid"
	"github.com/cwbudde/algo-lensing/lensing/interp"
	"github.com/cwbudde/algo-lensing/lensing/table"
	"github.com/cwbudde/algo-lensing/lensing/units"
)

// PowerFunc evaluates an isotropic power spectrum P(k). The wavenumber k is
// in inverse units of the spectrum's angular unit, and the returned power in
// squared units of it (or dimensionless for Delta^2 spectra).
type PowerFunc func(k float64) float64

// Pos is a 2-D position in the caller's angular unit.
type Pos struct {
	X, Y float64
}

// powerMode is one of the two (E or B) spectra: either a callable or a
// tabulated function with a bounded domain.
type powerMode struct {
	fn  PowerFunc
	tab *table.Table
}

// PowerSpectrum holds an E- and/or B-mode shear power spectrum and, after
// BuildGrid, the most recently realized shear and convergence grids.
//
// A PowerSpectrum is not safe for concurrent use.
type PowerSpectrum struct {
	e, b   *powerMode
	delta2 bool
	unit   units.Unit
	warnf  func(format string, args ...any)

	// Realized grid state, populated by BuildGrid.
	built        bool
	g1, g2, kap  *grid.Image
	bounds       grid.Bounds
	spacing      float64 // arcsec, between stored samples as seen by queries
	center       Pos     // arcsec, includes the even-size nudge
	adjustCenter bool
	interpolant  interp.Kernel
	ngridTot     int
}

// Option configures a PowerSpectrum.
type Option func(*PowerSpectrum)

// WithEPowerFunc sets the E-mode power spectrum as a callable.
func WithEPowerFunc(fn PowerFunc) Option {
	return func(ps *PowerSpectrum) {
		if fn != nil {
			ps.e = &powerMode{fn: fn}
		}
	}
}

// WithBPowerFunc sets the B-mode power spectrum as a callable.
func WithBPowerFunc(fn PowerFunc) Option {
	return func(ps *PowerSpectrum) {
		if fn != nil {
			ps.b = &powerMode{fn: fn}
		}
	}
}

// WithEPowerTable sets the E-mode power spectrum as a tabulated function.
// Calculations fail with ErrPowerDomain if the table does not span the
// wavenumbers they need.
func WithEPowerTable(t *table.Table) Option {
	return func(ps *PowerSpectrum) {
		if t != nil {
			ps.e = &powerMode{tab: t}
		}
	}
}

// WithBPowerTable sets the B-mode power spectrum as a tabulated function.
func WithBPowerTable(t *table.Table) Option {
	return func(ps *PowerSpectrum) {
		if t != nil {
			ps.b = &powerMode{tab: t}
		}
	}
}

// WithDelta2 declares the supplied spectra to be dimensionless
// Delta^2(k) = k^2 P(k) / 2 pi; they are converted to P(k) internally.
func WithDelta2() Option {
	return func(ps *PowerSpectrum) { ps.delta2 = true }
}

// WithUnits sets the angular unit the power spectra are defined in: their
// argument k is in inverse units of it and their return value in squared
// units of it. The default is arcsec.
func WithUnits(u units.Unit) Option {
	return func(ps *PowerSpectrum) { ps.unit = u }
}

// WithWarningHandler sets the sink for non-fatal warnings, such as
// out-of-bounds query positions. The default is log.Printf.
func WithWarningHandler(fn func(format string, args ...any)) Option {
	return func(ps *PowerSpectrum) {
		if fn != nil {
			ps.warnf = fn
		}
	}
}

// New builds a PowerSpectrum from the supplied options. At least one of the
// E- or B-mode spectra must be set.
func New(opts ...Option) (*PowerSpectrum, error) {
	ps := &PowerSpectrum{warnf: log.Printf}
	for _, opt := range opts {
		if opt != nil {
			opt(ps)
		}
	}
	if ps.e == nil && ps.b == nil {
		return nil, ErrNoPower
	}
	return ps, nil
}

// powerEval is a mode's spectrum with unit conversion, the Delta^2
// transform, and band limiting folded in. eval takes k in 1/arcsec and
// returns power in arcsec^2. For tabulated spectra the defined k domain, in
// 1/arcsec, is carried along so callers can fail fast instead of sampling
// outside it.
type powerEval struct {
	eval      func(k float64) float64
	hasDomain bool
	kMin      float64
	kMax      float64
}

// effectivePower wraps mode m for internal evaluation. kMax is the grid
// cutoff in 1/arcsec that the band limit is anchored to. Returns nil for an
// absent mode.
func (ps *PowerSpectrum) effectivePower(m *powerMode, kMax float64, bl BandLimit) *powerEval {
	if m == nil {
		return nil
	}
	scale := ps.unit.InArcsec()
	pe := &powerEval{}
	raw := m.fn
	if m.tab != nil {
		tab := m.tab
		raw = func(k float64) float64 {
			v, err := tab.Eval(k)
			if err != nil {
				// Domains are validated up front, so this is only
				// reachable through a stale caller; poison the result.
				return math.NaN()
			}
			return v
		}
		pe.hasDomain = true
		pe.kMin = tab.XMin() / scale
		pe.kMax = tab.XMax() / scale
	}

	switch {
	case ps.delta2:
		// P(k) = 2 pi Delta^2 / k^2, with 1/k^2 kept in arcsec^2 so the
		// result lands in internal units directly.
		pe.eval = func(k float64) float64 {
			return 2 * math.Pi * raw(scale*k) / (k * k) * bl.filter(scale*k, scale*kMax)
		}
	case scale != 1:
		// k converts from 1/arcsec to the spectrum's unit, power from the
		// spectrum's squared unit back to arcsec^2.
		pe.eval = func(k float64) float64 {
			return raw(scale*k) * scale * scale * bl.filter(scale*k, scale*kMax)
		}
	default:
		pe.eval = func(k float64) float64 {
			return raw(k) * bl.filter(k, kMax)
		}
	}
	return pe
}
