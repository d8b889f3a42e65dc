package ps

import (
	"fmt"
	"math"
	"time"

	"github.com/cwbudde/algo-lensing/lensing/deviate"
	"github.com/cwbudde/algo-lensing/lensing/grid"
	"github.com/cwbudde/algo-lensing/lensing/interp"
	"github.com/cwbudde/algo-lensing/lensing/units"
)

// boundsSlack expands the stored grid bounds so rounding errors cannot push
// a position on the edge outside during membership tests.
const boundsSlack = 1 + 1e-15

// BuildGridParams collects the inputs to BuildGrid. GridSpacing and NGrid
// are required; everything else has a usable zero value.
type BuildGridParams struct {
	// GridSpacing is the distance between grid points, in Units.
	GridSpacing float64
	// NGrid is the number of grid points per side.
	NGrid int

	// Rng supplies the Gaussian draws. When nil a time-seeded generator
	// is used, which makes the realization irreproducible.
	Rng *deviate.Gaussian
	// Interpolant is the spatial kernel later queries use by default.
	// When nil, Lanczos(5).
	Interpolant interp.Kernel
	// Center of the grid, in Units.
	Center Pos
	// Units for GridSpacing and Center. The zero value is arcsec.
	Units units.Unit
	// GetConvergence also returns the kappa grid.
	GetConvergence bool

	// KMinFactor extends the realized field below the box wavenumber:
	// the realization grid covers kmin = 2 pi/(NGrid GridSpacing)/KMinFactor.
	// Zero means 1.
	KMinFactor int
	// KMaxFactor extends the realized field above the Nyquist wavenumber:
	// kmax = pi/GridSpacing * KMaxFactor. Zero means 1.
	KMaxFactor int
	// BandLimit selects the aliasing suppression. The zero value is
	// BandLimitHard.
	BandLimit BandLimit
}

// BuildGrid draws a realization of the power spectrum on a square grid and
// stores it for later interpolation queries. It returns the two shear
// component grids and, when requested, the convergence grid (nil
// otherwise). The returned images are the stored ones, not copies.
//
// With oversampling factors above 1 the realization is drawn on a grid of
// side NGrid*KMinFactor*KMaxFactor and stride-subsampled back to
// NGrid x NGrid, so that the returned field carries power from a wider
// wavenumber range than the output grid alone would support.
func (ps *PowerSpectrum) BuildGrid(p BuildGridParams) (g1, g2, kappa *grid.Image, err error) {
	if !(p.GridSpacing > 0) {
		return nil, nil, nil, fmt.Errorf("%w: grid spacing %v", ErrBadGridParams, p.GridSpacing)
	}
	if p.NGrid < 1 {
		return nil, nil, nil, fmt.Errorf("%w: ngrid %d", ErrBadGridParams, p.NGrid)
	}
	kminFactor := p.KMinFactor
	if kminFactor == 0 {
		kminFactor = 1
	}
	kmaxFactor := p.KMaxFactor
	if kmaxFactor == 0 {
		kmaxFactor = 1
	}
	if kminFactor < 1 || kmaxFactor < 1 {
		return nil, nil, nil, fmt.Errorf("%w: kmin_factor %d, kmax_factor %d",
			ErrBadGridParams, p.KMinFactor, p.KMaxFactor)
	}
	if !p.BandLimit.valid() {
		return nil, nil, nil, fmt.Errorf("%w: %d", ErrBadBandLimit, int(p.BandLimit))
	}

	scaleFac := p.Units.InArcsec()
	spacing := p.GridSpacing * scaleFac
	center := Pos{X: p.Center.X * scaleFac, Y: p.Center.Y * scaleFac}

	// The spacing the stored images are interpreted with is the fine
	// internal one, GridSpacing/KMaxFactor.
	ps.spacing = spacing / float64(kmaxFactor)
	ps.center = center

	// Interpolation indexes from the nominal center sample, which for an
	// even-sized grid sits half a cell away from the true grid center;
	// nudge the stored center so query coordinates line up.
	ps.adjustCenter = p.NGrid%2 == 0
	if ps.adjustCenter {
		ps.center.X += 0.5 * ps.spacing
		ps.center.Y += 0.5 * ps.spacing
	}

	half := float64(p.NGrid) * spacing / 2
	ps.bounds = grid.NewBounds(center.X-half, center.X+half, center.Y-half, center.Y+half).
		Expand(boundsSlack)

	rng := p.Rng
	if rng == nil {
		rng = deviate.New(time.Now().UnixNano())
	}
	ps.interpolant = p.Interpolant
	if ps.interpolant == nil {
		ps.interpolant = interp.Lanczos(5)
	}

	kMax := math.Pi / ps.spacing
	pE := ps.effectivePower(ps.e, kMax, p.BandLimit)
	pB := ps.effectivePower(ps.b, kMax, p.BandLimit)

	ngridTot := p.NGrid * kminFactor * kmaxFactor
	r, err := newRealizer(ngridTot, ps.spacing, pE, pB)
	if err != nil {
		return nil, nil, nil, err
	}
	g1, g2, kappa, err = r.realize(rng)
	if err != nil {
		return nil, nil, nil, err
	}

	if kminFactor != 1 || kmaxFactor != 1 {
		if g1, err = g1.Subsample(kmaxFactor, p.NGrid); err != nil {
			return nil, nil, nil, err
		}
		if g2, err = g2.Subsample(kmaxFactor, p.NGrid); err != nil {
			return nil, nil, nil, err
		}
		if kappa, err = kappa.Subsample(kmaxFactor, p.NGrid); err != nil {
			return nil, nil, nil, err
		}
	}

	ps.g1, ps.g2, ps.kap = g1, g2, kappa
	ps.ngridTot = ngridTot
	ps.built = true

	if !p.GetConvergence {
		kappa = nil
	}
	return g1, g2, kappa, nil
}

// NRandCallsForBuildGrid returns the number of deviates the last BuildGrid
// consumed from its generator. This keeps external generators in sync when
// the one passed to BuildGrid cannot be shared directly.
func (ps *PowerSpectrum) NRandCallsForBuildGrid() (int, error) {
	if !ps.built {
		return 0, ErrNoGrid
	}
	per := 2 * ps.ngridTot * (ps.ngridTot/2 + 1)
	total := 0
	if ps.e != nil {
		total += per
	}
	if ps.b != nil {
		total += per
	}
	return total, nil
}

// Built reports whether a grid realization is available for queries.
func (ps *PowerSpectrum) Built() bool { return ps.built }

// GridSpacing returns the spacing the stored grids are interpreted with,
// in arcsec. Zero before the first build.
func (ps *PowerSpectrum) GridSpacing() float64 { return ps.spacing }

// GridBounds returns the region within which non-periodic queries are
// answered from the grid, in arcsec.
func (ps *PowerSpectrum) GridBounds() grid.Bounds { return ps.bounds }

// SubsampleGrid coarsens the stored grids by keeping every factor-th sample
// per axis. The factor must exceed 1 and divide the current grid size
// evenly. Grid spacing, center and bounds bookkeeping are updated so
// queries keep working on the coarser grid. Returns the new grids, with
// kappa nil unless requested.
func (ps *PowerSpectrum) SubsampleGrid(factor int, getConvergence bool) (g1, g2, kappa *grid.Image, err error) {
	if !ps.built {
		return nil, nil, nil, ErrNoGrid
	}
	n := ps.g1.NX()
	if factor <= 1 || n%factor != 0 {
		return nil, nil, nil, fmt.Errorf("%w: factor %d for a %d-point grid",
			ErrBadSubsample, factor, n)
	}
	newN := n / factor

	if g1, err = ps.g1.Subsample(factor, newN); err != nil {
		return nil, nil, nil, err
	}
	if g2, err = ps.g2.Subsample(factor, newN); err != nil {
		return nil, nil, nil, err
	}
	if kappa, err = ps.kap.Subsample(factor, newN); err != nil {
		return nil, nil, nil, err
	}
	ps.g1, ps.g2, ps.kap = g1, g2, kappa

	// The nominal center sample moves when an even grid is coarsened.
	if ps.adjustCenter {
		ps.center.X += 0.5 * ps.spacing * float64(factor-1)
		ps.center.Y += 0.5 * ps.spacing * float64(factor-1)
	}
	ps.spacing *= float64(factor)

	if !getConvergence {
		kappa = nil
	}
	return g1, g2, kappa, nil
}
