package ps

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-lensing/lensing/deviate"
	"github.com/cwbudde/algo-lensing/lensing/grid"
)

// realizer draws Gaussian realizations of an isotropic power spectrum on an
// n by n grid. The physical fields are real, so only the kx >= 0 half plane
// is drawn independently; the remaining modes follow from Hermitian
// symmetry.
type realizer struct {
	n         int
	pixelSize float64

	// Wavenumbers along each axis in FFT frequency order, 1/arcsec.
	kx, ky []float64

	// exp(2i psi) on the full plane, psi the polar angle of the wave
	// vector. Zero at the origin.
	exp2ipsi []complex128

	// sqrt(P(|k|))/pixelSize on the stored half plane, n rows of n/2+1
	// samples. Nil when the mode is absent.
	ampE, ampB []float64

	fft *fft2
}

// freqIndex maps an array index to its FFT frequency index: 0, 1, ...,
// then negative frequencies, with the Nyquist index (even n) mapping to
// -n/2.
func freqIndex(i, n int) int {
	if i < (n+1)/2 {
		return i
	}
	return i - n
}

// spinPhase returns exp(2i psi) on the full n by n frequency plane. The
// phase depends only on the direction of the wave vector, so unscaled
// frequency indices suffice. The origin entry is zero so that multiplying
// by it annihilates the (undefined) zero mode.
func spinPhase(n int) []complex128 {
	out := make([]complex128, n*n)
	for y := 0; y < n; y++ {
		fy := float64(freqIndex(y, n))
		for x := 0; x < n; x++ {
			fx := float64(freqIndex(x, n))
			ksq := fx*fx + fy*fy
			if ksq == 0 {
				ksq = 1
			}
			kz := complex(fx, fy)
			out[y*n+x] = kz * kz / complex(ksq, 0)
		}
	}
	return out
}

func newRealizer(n int, pixelSize float64, pE, pB *powerEval) (*realizer, error) {
	if n < 2 {
		return nil, fmt.Errorf("%w: realization grid size %d", ErrBadGridParams, n)
	}
	if !(pixelSize > 0) {
		return nil, fmt.Errorf("%w: pixel size %v", ErrBadGridParams, pixelSize)
	}
	fft, err := newFFT2(n)
	if err != nil {
		return nil, err
	}

	r := &realizer{
		n:         n,
		pixelSize: pixelSize,
		kx:        make([]float64, n),
		ky:        make([]float64, n),
		exp2ipsi:  spinPhase(n),
		fft:       fft,
	}
	dk := 2 * math.Pi / (float64(n) * pixelSize)
	for i := 0; i < n; i++ {
		r.kx[i] = dk * float64(freqIndex(i, n))
		r.ky[i] = dk * float64(freqIndex(i, n))
	}

	if pE != nil {
		if r.ampE, err = r.amplitude(pE); err != nil {
			return nil, err
		}
	}
	if pB != nil {
		if r.ampB, err = r.amplitude(pB); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// amplitude evaluates sqrt(P(|k|))/pixelSize on the half plane. Rows
// n/2+1 .. n-1 mirror their positive-frequency counterparts, since |k| is
// unchanged under ky -> -ky.
func (r *realizer) amplitude(p *powerEval) ([]float64, error) {
	n := r.n
	nk := n/2 + 1

	ks := make([]float64, nk*nk)
	for y := 0; y < nk; y++ {
		for x := 0; x < nk; x++ {
			ks[y*nk+x] = math.Hypot(r.kx[x], r.ky[y])
		}
	}
	// The origin gets the neighboring |k| so the spectrum is never
	// evaluated at k=0; its power is forced to zero below anyway.
	ks[0] = ks[nk]

	if p.hasDomain {
		kmin, kmax := floats.Min(ks), floats.Max(ks)
		if kmin < p.kMin || kmax > p.kMax {
			return nil, fmt.Errorf("%w: grid needs %g < k < %g, table covers %g < k < %g",
				ErrPowerDomain, kmin, kmax, p.kMin, p.kMax)
		}
	}

	amp := make([]float64, n*nk)
	for y := 0; y < nk; y++ {
		for x := 0; x < nk; x++ {
			amp[y*nk+x] = p.eval(ks[y*nk+x])
		}
	}
	amp[0] = 0
	for i := 0; i < nk*nk; i++ {
		if amp[i] < 0 {
			return nil, fmt.Errorf("%w: P(%g) = %g", ErrNegativePower, ks[i], amp[i])
		}
	}
	for a := 1; a < (n+1)/2; a++ {
		copy(amp[(n-a)*nk:(n-a+1)*nk], amp[a*nk:(a+1)*nk])
	}
	for i := range amp {
		amp[i] = math.Sqrt(amp[i])
	}
	vecmath.ScaleBlockInPlace(amp, 1/r.pixelSize)
	return amp, nil
}

// realize draws one realization, consuming deviates from gd in a fixed
// order: the full real half plane, then the full imaginary half plane, for
// the E mode first and then the B mode.
func (r *realizer) realize(gd *deviate.Gaussian) (g1, g2, kappa *grid.Image, err error) {
	n := r.n

	var eK, bK []complex128
	if r.ampE != nil {
		eK = r.drawMode(r.ampE, gd)
	}
	if r.ampB != nil {
		bK = r.drawMode(r.ampB, gd)
	}

	// kappa_k = E_k + i B_k, and gamma_k = exp(2i psi) kappa_k. The
	// Kaiser & Squires (1993) eq. 2.1.12 carries a spurious minus sign
	// here; their eq. 2.1.15 (without it) is the consistent form.
	gammaK := make([]complex128, n*n)
	for i := range gammaK {
		var kap complex128
		if eK != nil {
			kap = eK[i]
		}
		if bK != nil {
			kap += complex(-imag(bK[i]), real(bK[i]))
		}
		gammaK[i] = r.exp2ipsi[i] * kap
	}

	if err := r.fft.inverse(gammaK); err != nil {
		return nil, nil, nil, err
	}

	g1, _ = grid.New(n, n)
	g2, _ = grid.New(n, n)
	kappa, _ = grid.New(n, n)

	d1, d2 := g1.Data(), g2.Data()
	for i, v := range gammaK {
		d1[i] = real(v)
		d2[i] = imag(v)
	}
	// The inverse transform carries 1/N^2; proper field normalization
	// needs 1/N, so scale back up by N.
	vecmath.ScaleBlockInPlace(d1, float64(n))
	vecmath.ScaleBlockInPlace(d2, float64(n))

	if eK != nil {
		if err := r.fft.inverse(eK); err != nil {
			return nil, nil, nil, err
		}
		dk := kappa.Data()
		for i, v := range eK {
			dk[i] = real(v)
		}
		vecmath.ScaleBlockInPlace(dk, float64(n))
	}
	return g1, g2, kappa, nil
}

// drawMode fills the kx >= 0 half plane with amplitude-weighted complex
// Gaussian draws and completes the rest by Hermitian symmetry.
func (r *realizer) drawMode(amp []float64, gd *deviate.Gaussian) []complex128 {
	n := r.n
	nk := n/2 + 1
	isqrt2 := math.Sqrt(0.5)

	r1 := make([]float64, n*nk)
	r2 := make([]float64, n*nk)
	gd.Fill(r1)
	gd.Fill(r2)

	p := make([]complex128, n*n)
	for y := 0; y < n; y++ {
		for x := 0; x < nk; x++ {
			a := amp[y*nk+x] * isqrt2
			p[y*n+x] = complex(a*r1[y*nk+x], a*r2[y*nk+x])
		}
	}
	makeHermitian(p, n)
	return p
}

// makeHermitian overwrites the kx < 0 half of the full plane p so that
// p[-k] = conj(p[k]), first reconciling the kx = 0 column with itself. For
// even n the Nyquist row and column get the same treatment, and the modes
// that are their own reflection are forced real.
func makeHermitian(p []complex128, n int) {
	c := (n + 1) / 2

	for a := 1; a < c; a++ {
		p[(n-a)*n] = cmplx.Conj(p[a*n])
	}
	p[0] = complex(real(p[0]), 0)

	for a := 1; a < c; a++ {
		for j := 1; j < c; j++ {
			p[a*n+(n-j)] = cmplx.Conj(p[(n-a)*n+j])
			p[(n-a)*n+(n-j)] = cmplx.Conj(p[a*n+j])
		}
	}
	for j := 1; j < c; j++ {
		p[n-j] = cmplx.Conj(p[j])
	}

	if n%2 == 0 {
		m := n / 2
		for a := 1; a < c; a++ {
			p[(n-a)*n+m] = cmplx.Conj(p[a*n+m])
		}
		for j := 1; j < c; j++ {
			p[m*n+(n-j)] = cmplx.Conj(p[m*n+j])
		}
		p[m*n] = complex(real(p[m*n]), 0)
		p[m] = complex(real(p[m]), 0)
		p[m*n+m] = complex(real(p[m*n+m]), 0)
	}
}

// nRandCalls returns the number of deviates one realization consumes.
func (r *realizer) nRandCalls() int {
	per := 2 * r.n * (r.n/2 + 1)
	total := 0
	if r.ampE != nil {
		total += per
	}
	if r.ampB != nil {
		total += per
	}
	return total
}
