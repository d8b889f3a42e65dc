package ps

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-lensing/lensing/integ"
	"github.com/cwbudde/algo-lensing/lensing/units"
)

// XiParams collects the inputs to CalculateXi. GridSpacing and NGrid
// describe the hypothetical grid whose wavenumber range the integration
// covers; they do not need to match a previously built grid.
type XiParams struct {
	// GridSpacing is the grid point separation, in Units.
	GridSpacing float64
	// NGrid is the number of grid points per side.
	NGrid int
	// KMinFactor and KMaxFactor widen the integrated wavenumber range the
	// same way they widen a realization. Zero means 1.
	KMinFactor int
	KMaxFactor int
	// NTheta is the number of separation values. Zero means 100.
	NTheta int
	// Units for GridSpacing and the returned separations. The zero value
	// is arcsec.
	Units units.Unit
	// BandLimit applied to the spectra before integrating. The zero value
	// is BandLimitHard.
	BandLimit BandLimit
}

// CalculateXi computes the shear correlation functions implied by the
// power spectrum,
//
//	xi+(theta) = (1/2 pi) int (P_E + P_B) J0(k theta) k dk
//	xi-(theta) = (1/2 pi) int (P_E - P_B) J4(k theta) k dk
//
// over k in [2 pi/(NGrid GridSpacing KMinFactor), KMaxFactor pi/GridSpacing],
// at NTheta logarithmically spaced separations between GridSpacing and
// NGrid*GridSpacing. A missing mode contributes zero. The returned
// separations are in the caller's unit.
func (ps *PowerSpectrum) CalculateXi(p XiParams) (theta, xiPlus, xiMinus []float64, err error) {
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
	nTheta := p.NTheta
	if nTheta == 0 {
		nTheta = 100
	}
	if nTheta < 1 {
		return nil, nil, nil, fmt.Errorf("%w: n_theta %d", ErrBadGridParams, p.NTheta)
	}
	if !p.BandLimit.valid() {
		return nil, nil, nil, fmt.Errorf("%w: %d", ErrBadBandLimit, int(p.BandLimit))
	}

	scaleFac := p.Units.InArcsec()
	spacing := p.GridSpacing * scaleFac

	minSep := spacing
	maxSep := float64(p.NGrid) * spacing
	theta = make([]float64, nTheta)
	if nTheta == 1 {
		theta[0] = minSep
	} else {
		floats.LogSpan(theta, minSep, maxSep)
	}

	kMax := float64(kmaxFactor) * math.Pi / spacing
	kMin := 2 * math.Pi / (float64(p.NGrid) * spacing * float64(kminFactor))

	pE := ps.effectivePower(ps.e, kMax, p.BandLimit)
	pB := ps.effectivePower(ps.b, kMax, p.BandLimit)
	for _, pe := range []*powerEval{pE, pB} {
		if pe != nil && pe.hasDomain && (kMin < pe.kMin || kMax > pe.kMax) {
			return nil, nil, nil, fmt.Errorf("%w: integration needs %g < k < %g, table covers %g < k < %g",
				ErrPowerDomain, kMin, kMax, pe.kMin, pe.kMax)
		}
	}

	// The sum enters xi+ and the difference xi-; an absent mode
	// contributes zero, so B alone flips sign in xi-.
	var pSum, pDiff func(k float64) float64
	switch {
	case pE != nil && pB != nil:
		pSum = func(k float64) float64 { return pE.eval(k) + pB.eval(k) }
		pDiff = func(k float64) float64 { return pE.eval(k) - pB.eval(k) }
	case pE != nil:
		pSum = pE.eval
		pDiff = pE.eval
	default:
		pSum = pB.eval
		pDiff = func(k float64) float64 { return -pB.eval(k) }
	}

	xiPlus = make([]float64, nTheta)
	xiMinus = make([]float64, nTheta)
	tol := []integ.Option{integ.WithRelErr(1e-6), integ.WithAbsErr(1e-12)}
	for i, th := range theta {
		xiPlus[i], err = integ.Int1D(func(k float64) float64 {
			return pSum(k) * math.J0(k*th) * k
		}, kMin, kMax, tol...)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("ps: xi+ at theta=%g: %w", th, err)
		}
		xiMinus[i], err = integ.Int1D(func(k float64) float64 {
			return pDiff(k) * math.Jn(4, k*th) * k
		}, kMin, kMax, tol...)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("ps: xi- at theta=%g: %w", th, err)
		}
	}

	inv2pi := 1 / (2 * math.Pi)
	for i := range xiPlus {
		xiPlus[i] *= inv2pi
		xiMinus[i] *= inv2pi
	}
	// Report separations in the caller's unit.
	for i := range theta {
		theta[i] /= scaleFac
	}
	return theta, xiPlus, xiMinus, nil
}
