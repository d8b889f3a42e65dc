package ps

import (
	"math"

	"github.com/cwbudde/algo-lensing/lensing/grid"
	"github.com/cwbudde/algo-lensing/lensing/interp"
	"github.com/cwbudde/algo-lensing/lensing/units"
)

// wrapBorder is the padding width, in grid cells, applied for periodic
// interpolation. It covers the support of the widest default kernel so
// positions near an edge see properly wrapped neighbors.
const wrapBorder = 7

type queryConfig struct {
	unit     units.Unit
	periodic bool
	reduced  bool
	kernel   interp.Kernel
}

// QueryOption adjusts how gridded fields are interpolated.
type QueryOption func(*queryConfig)

// WithQueryUnits sets the angular unit of the query positions. The zero
// value is arcsec.
func WithQueryUnits(u units.Unit) QueryOption {
	return func(c *queryConfig) { c.unit = u }
}

// WithPeriodic treats the gridded field as periodic: positions outside the
// grid wrap around toroidally instead of falling back to default values.
func WithPeriodic(periodic bool) QueryOption {
	return func(c *queryConfig) { c.periodic = periodic }
}

// WithReduced selects between reduced shear g = gamma/(1-kappa), the
// observable quantity, and the bare shear gamma. The default is reduced.
// Only GetShear consults this.
func WithReduced(reduced bool) QueryOption {
	return func(c *queryConfig) { c.reduced = reduced }
}

// WithQueryInterpolant overrides the spatial kernel chosen at BuildGrid
// time for this query only.
func WithQueryInterpolant(k interp.Kernel) QueryOption {
	return func(c *queryConfig) {
		if k != nil {
			c.kernel = k
		}
	}
}

func applyQueryOptions(opts []QueryOption) queryConfig {
	cfg := queryConfig{reduced: true}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// surfaceFor wraps a stored grid for interpolation, padding it toroidally
// first when the query is periodic.
func (ps *PowerSpectrum) surfaceFor(im *grid.Image, cfg queryConfig) (*interp.Surface, error) {
	src := im
	if cfg.periodic {
		var err error
		if src, err = im.WrapPadded(wrapBorder); err != nil {
			return nil, err
		}
	}
	k := cfg.kernel
	if k == nil {
		k = ps.interpolant
	}
	return interp.NewSurface(src, interp.WithXKernel(k)), nil
}

// resolve converts one query position to kernel coordinates. When the
// position is off the grid and the query is not periodic, ok is false and
// the caller keeps its fallback value; fallback names that value in the
// emitted warning.
func (ps *PowerSpectrum) resolve(p Pos, scale float64, periodic bool, fallback string) (u, v float64, ok bool) {
	x := p.X * scale
	y := p.Y * scale
	if periodic {
		x = wrapCoord(x, ps.bounds.XMin, ps.bounds.Width())
		y = wrapCoord(y, ps.bounds.YMin, ps.bounds.Height())
	} else if !ps.bounds.Includes(x, y) {
		ps.warnf("ps: position (%g, %g) is outside the gridded region; returning %s",
			p.X, p.Y, fallback)
		return 0, 0, false
	}
	return (x - ps.center.X) / ps.spacing, (y - ps.center.Y) / ps.spacing, true
}

func wrapCoord(v, min, extent float64) float64 {
	m := math.Mod(v-min, extent)
	if m < 0 {
		m += extent
	}
	return m + min
}

// GetShear interpolates the shear at the given positions. By default the
// reduced shear is returned; see WithReduced. Positions off the grid yield
// (0, 0) with a warning unless the query is periodic.
func (ps *PowerSpectrum) GetShear(pos []Pos, opts ...QueryOption) (g1, g2 []float64, err error) {
	if !ps.built {
		return nil, nil, ErrNoGrid
	}
	cfg := applyQueryOptions(opts)

	im1, im2 := ps.g1, ps.g2
	if cfg.reduced {
		im1, im2, _ = ps.observedGrids()
	}
	s1, err := ps.surfaceFor(im1, cfg)
	if err != nil {
		return nil, nil, err
	}
	s2, err := ps.surfaceFor(im2, cfg)
	if err != nil {
		return nil, nil, err
	}

	scale := cfg.unit.InArcsec()
	g1 = make([]float64, len(pos))
	g2 = make([]float64, len(pos))
	for i, p := range pos {
		u, v, ok := ps.resolve(p, scale, cfg.periodic, "a shear of (0, 0)")
		if !ok {
			continue
		}
		g1[i] = s1.Eval(u, v)
		g2[i] = s2.Eval(u, v)
	}
	return g1, g2, nil
}

// GetShearAt is GetShear for a single position.
func (ps *PowerSpectrum) GetShearAt(p Pos, opts ...QueryOption) (g1, g2 float64, err error) {
	a1, a2, err := ps.GetShear([]Pos{p}, opts...)
	if err != nil {
		return 0, 0, err
	}
	return a1[0], a2[0], nil
}

// GetConvergence interpolates the convergence kappa at the given positions.
// Positions off the grid yield 0 with a warning unless the query is
// periodic.
func (ps *PowerSpectrum) GetConvergence(pos []Pos, opts ...QueryOption) ([]float64, error) {
	if !ps.built {
		return nil, ErrNoGrid
	}
	cfg := applyQueryOptions(opts)

	s, err := ps.surfaceFor(ps.kap, cfg)
	if err != nil {
		return nil, err
	}
	scale := cfg.unit.InArcsec()
	out := make([]float64, len(pos))
	for i, p := range pos {
		u, v, ok := ps.resolve(p, scale, cfg.periodic, "a convergence of 0")
		if !ok {
			continue
		}
		out[i] = s.Eval(u, v)
	}
	return out, nil
}

// GetConvergenceAt is GetConvergence for a single position.
func (ps *PowerSpectrum) GetConvergenceAt(p Pos, opts ...QueryOption) (float64, error) {
	a, err := ps.GetConvergence([]Pos{p}, opts...)
	if err != nil {
		return 0, err
	}
	return a[0], nil
}

// GetMagnification interpolates the magnification mu at the given
// positions. The interpolation runs on mu-1 and adds the baseline back, so
// positions off a non-periodic grid yield exactly 1 with a warning.
func (ps *PowerSpectrum) GetMagnification(pos []Pos, opts ...QueryOption) ([]float64, error) {
	if !ps.built {
		return nil, ErrNoGrid
	}
	cfg := applyQueryOptions(opts)

	_, _, muM1 := ps.observedGrids()
	s, err := ps.surfaceFor(muM1, cfg)
	if err != nil {
		return nil, err
	}
	scale := cfg.unit.InArcsec()
	out := make([]float64, len(pos))
	for i, p := range pos {
		u, v, ok := ps.resolve(p, scale, cfg.periodic, "a magnification of 1")
		if !ok {
			out[i] = 1
			continue
		}
		out[i] = s.Eval(u, v) + 1
	}
	return out, nil
}

// GetMagnificationAt is GetMagnification for a single position.
func (ps *PowerSpectrum) GetMagnificationAt(p Pos, opts ...QueryOption) (float64, error) {
	a, err := ps.GetMagnification([]Pos{p}, opts...)
	if err != nil {
		return 0, err
	}
	return a[0], nil
}

// GetLensing interpolates the full observable lensing signal, reduced shear
// and magnification, at the given positions. Positions off a non-periodic
// grid yield (0, 0, 1) with a warning.
func (ps *PowerSpectrum) GetLensing(pos []Pos, opts ...QueryOption) (g1, g2, mu []float64, err error) {
	if !ps.built {
		return nil, nil, nil, ErrNoGrid
	}
	cfg := applyQueryOptions(opts)

	im1, im2, muM1 := ps.observedGrids()
	s1, err := ps.surfaceFor(im1, cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	s2, err := ps.surfaceFor(im2, cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	sm, err := ps.surfaceFor(muM1, cfg)
	if err != nil {
		return nil, nil, nil, err
	}

	scale := cfg.unit.InArcsec()
	g1 = make([]float64, len(pos))
	g2 = make([]float64, len(pos))
	mu = make([]float64, len(pos))
	for i, p := range pos {
		u, v, ok := ps.resolve(p, scale, cfg.periodic, "a lensing signal of (0, 0, 1)")
		if !ok {
			mu[i] = 1
			continue
		}
		g1[i] = s1.Eval(u, v)
		g2[i] = s2.Eval(u, v)
		mu[i] = sm.Eval(u, v) + 1
	}
	return g1, g2, mu, nil
}

// GetLensingAt is GetLensing for a single position.
func (ps *PowerSpectrum) GetLensingAt(p Pos, opts ...QueryOption) (g1, g2, mu float64, err error) {
	a1, a2, am, err := ps.GetLensing([]Pos{p}, opts...)
	if err != nil {
		return 0, 0, 0, err
	}
	return a1[0], a2[0], am[0], nil
}
