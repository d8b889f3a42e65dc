// Package ps generates Gaussian random weak-lensing shear and convergence
// fields from an isotropic power spectrum, and provides the derived
// quantities observers actually work with.
//
// The central type is [PowerSpectrum], configured with an E-mode and/or
// B-mode power spectrum as a callable or a tabulated function:
//
//   - [PowerSpectrum.BuildGrid] draws a realization of the spectrum on a
//     square grid, returning shear components g1, g2 and optionally the
//     convergence kappa.
//   - [PowerSpectrum.GetShear], [PowerSpectrum.GetConvergence],
//     [PowerSpectrum.GetMagnification] and [PowerSpectrum.GetLensing]
//     interpolate the gridded fields at arbitrary positions, with optional
//     periodic wrapping.
//   - [PowerSpectrum.CalculateXi] computes the shear correlation functions
//     xi+ and xi- implied by the spectrum over the same wavenumber range a
//     grid realization would sample.
//   - [KappaKaiserSquires] inverts gridded shears back to E- and B-mode
//     convergence maps.
//
// All internal calculations use arcsec; inputs in other angular units are
// converted on entry and results converted back on return.
//
// Realizations are reproducible: the same seed always yields the same
// grids, and the number of deviates consumed by a build is available from
// [PowerSpectrum.NRandCallsForBuildGrid] for keeping external generators in
// sync.
package ps
