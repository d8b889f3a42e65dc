package ps

import "errors"

var (
	// ErrNoPower is returned by New when neither an E-mode nor a B-mode
	// power spectrum is supplied.
	ErrNoPower = errors.New("ps: at least one of the E or B power spectra must be set")

	// ErrNoGrid is returned by operations that need a realized grid before
	// BuildGrid has been called.
	ErrNoGrid = errors.New("ps: no grid has been built yet")

	// ErrNegativePower is returned when a power spectrum evaluates to a
	// negative value at some grid wavenumber.
	ErrNegativePower = errors.New("ps: negative power")

	// ErrPowerDomain is returned when a tabulated power spectrum does not
	// cover the full range of wavenumbers a calculation needs.
	ErrPowerDomain = errors.New("ps: tabulated power does not cover the required k range")

	// ErrBadBandLimit is returned for band-limit values outside the
	// defined set.
	ErrBadBandLimit = errors.New("ps: unrecognized band limit")

	// ErrBadGridParams is returned for invalid grid-construction
	// parameters.
	ErrBadGridParams = errors.New("ps: invalid grid parameters")

	// ErrBadSubsample is returned for subsampling factors that do not
	// evenly reduce the current grid.
	ErrBadSubsample = errors.New("ps: invalid subsampling factor")

	// ErrShapeMismatch is returned when gridded inputs do not have the
	// required matching square shapes.
	ErrShapeMismatch = errors.New("ps: grids must be square and equally sized")
)
