package ps

import (
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-lensing/lensing/grid"
)

// TheoryToObserved converts theoretical lensing quantities at one point to
// the observable ones: reduced shear g = gamma/(1-kappa) and magnification
// mu = 1/((1-kappa)^2 - |gamma|^2).
func TheoryToObserved(gamma1, gamma2, kappa float64) (g1, g2, mu float64) {
	om := 1 - kappa
	g1 = gamma1 / om
	g2 = gamma2 / om
	mu = 1 / (om*om - (gamma1*gamma1 + gamma2*gamma2))
	return g1, g2, mu
}

// TheoryToObservedGrids applies TheoryToObserved elementwise to equally
// shaped grids.
func TheoryToObservedGrids(gamma1, gamma2, kappa *grid.Image) (g1, g2, mu *grid.Image, err error) {
	if gamma1.NX() != gamma2.NX() || gamma1.NY() != gamma2.NY() ||
		gamma1.NX() != kappa.NX() || gamma1.NY() != kappa.NY() {
		return nil, nil, nil, ErrShapeMismatch
	}
	nx, ny := gamma1.NX(), gamma1.NY()
	g1, _ = grid.New(nx, ny)
	g2, _ = grid.New(nx, ny)
	mu, _ = grid.New(nx, ny)

	gsq := make([]float64, nx)
	for y := 0; y < ny; y++ {
		r1, r2, rk := gamma1.Row(y), gamma2.Row(y), kappa.Row(y)
		o1, o2, om := g1.Row(y), g2.Row(y), mu.Row(y)
		vecmath.Power(gsq, r1, r2)
		for x := 0; x < nx; x++ {
			inv := 1 - rk[x]
			o1[x] = r1[x] / inv
			o2[x] = r2[x] / inv
			om[x] = 1 / (inv*inv - gsq[x])
		}
	}
	return g1, g2, mu, nil
}

// observedGrids derives reduced shear and magnification-minus-one grids
// from the stored realization. Interpolating mu-1 rather than mu keeps the
// interpolation error relative to the lensing signal instead of the
// baseline of 1.
func (ps *PowerSpectrum) observedGrids() (g1, g2, muM1 *grid.Image) {
	nx, ny := ps.g1.NX(), ps.g1.NY()
	g1, _ = grid.New(nx, ny)
	g2, _ = grid.New(nx, ny)
	muM1, _ = grid.New(nx, ny)

	gsq := make([]float64, nx)
	for y := 0; y < ny; y++ {
		r1, r2, rk := ps.g1.Row(y), ps.g2.Row(y), ps.kap.Row(y)
		o1, o2, om := g1.Row(y), g2.Row(y), muM1.Row(y)
		vecmath.Power(gsq, r1, r2)
		for x := 0; x < nx; x++ {
			inv := 1 - rk[x]
			o1[x] = r1[x] / inv
			o2[x] = r2[x] / inv
			om[x] = 1/(inv*inv-gsq[x]) - 1
		}
	}
	return g1, g2, muM1
}

// KappaKaiserSquires reconstructs convergence maps from gridded shears by
// the Kaiser & Squires (1993) Fourier inversion. The grids must be square
// and equally sized. kE is the physical convergence signal; kB is its
// rotated counterpart, which should be consistent with noise for lensing by
// real matter.
//
// The inversion assumes the field is periodic across the grid edges, so
// maps reconstructed from non-periodic data carry edge artifacts, and
// structure beyond the grid Nyquist frequency is aliased.
func KappaKaiserSquires(g1, g2 *grid.Image) (kE, kB *grid.Image, err error) {
	if g1.NX() != g2.NX() || g1.NY() != g2.NY() || g1.NX() != g1.NY() {
		return nil, nil, ErrShapeMismatch
	}
	n := g1.NX()
	fft, err := newFFT2(n)
	if err != nil {
		return nil, nil, err
	}

	gz := make([]complex128, n*n)
	d1, d2 := g1.Data(), g2.Data()
	for i := range gz {
		gz[i] = complex(d1[i], d2[i])
	}
	if err := fft.forward(gz); err != nil {
		return nil, nil, err
	}

	// kappa_k = conj(exp(2i psi)) gamma_k; the zero entry of the phase
	// plane discards the undetermined mean of the reconstruction.
	phase := spinPhase(n)
	for i := range gz {
		p := phase[i]
		gz[i] *= complex(real(p), -imag(p))
	}
	if err := fft.inverse(gz); err != nil {
		return nil, nil, err
	}

	kE, _ = grid.New(n, n)
	kB, _ = grid.New(n, n)
	de, db := kE.Data(), kB.Data()
	for i, v := range gz {
		de[i] = real(v)
		db[i] = imag(v)
	}
	return kE, kB, nil
}
