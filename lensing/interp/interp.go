// Package interp provides separable interpolation kernels and a surface
// type that evaluates a gridded field at arbitrary real coordinates.
//
// Available kernels, from cheapest to highest quality:
//
//   - [Nearest]:  nearest-neighbor lookup
//   - [Linear]:   2-point linear interpolation
//   - [Cubic]:    4-point Catmull-Rom cubic
//   - [Quintic]:  6-point piecewise quintic
//   - [Lanczos]:  windowed sinc of configurable half-width
//
// A [Surface] combines a kernel with a 2-D grid. Evaluation follows the
// convention that kernel coordinate (0, 0) is the grid's nominal center
// (index n/2 on each axis); samples beyond the grid edges contribute zero.
package interp

import (
	"math"
	"strconv"
)

// Kernel is a separable 1-D interpolation weight function.
type Kernel interface {
	// Name identifies the kernel for display.
	Name() string
	// XRange returns the support half-width in grid cells; Eval is zero
	// for |x| >= XRange.
	XRange() float64
	// Eval returns the kernel weight at offset x from a sample.
	Eval(x float64) float64
}

func sinc(x float64) float64 {
	if x == 0 {
		return 1
	}
	px := math.Pi * x
	return math.Sin(px) / px
}

// lanczos is a windowed sinc with half-width n.
type lanczos struct {
	n int
}

// Lanczos returns the Lanczos kernel of half-width n (n >= 1). Values of n
// below 1 are clamped to 1. Lanczos(5) is the engine's default spatial
// kernel.
func Lanczos(n int) Kernel {
	if n < 1 {
		n = 1
	}
	return lanczos{n: n}
}

func (l lanczos) Name() string    { return "lanczos" + strconv.Itoa(l.n) }
func (l lanczos) XRange() float64 { return float64(l.n) }

func (l lanczos) Eval(x float64) float64 {
	x = math.Abs(x)
	if x >= float64(l.n) {
		return 0
	}
	return sinc(x) * sinc(x/float64(l.n))
}

// quintic is the 6-point piecewise-quintic interpolant. The polynomial
// pieces satisfy partition of unity and vanish at integer offsets.
type quintic struct{}

// Quintic returns the piecewise-quintic kernel (half-width 3). It is also
// the fixed frequency-domain kernel used by [Surface].
func Quintic() Kernel { return quintic{} }

func (quintic) Name() string    { return "quintic" }
func (quintic) XRange() float64 { return 3 }

func (quintic) Eval(x float64) float64 {
	x = math.Abs(x)
	switch {
	case x <= 1:
		return 1 + x*x*x*(-95+x*(138-x*55))/12
	case x <= 2:
		return (x - 1) * (2 - x) * (138 + x*(-348+x*(249-x*55))) / 24
	case x <= 3:
		d := 3 - x
		return (x - 2) * d * d * (-54 + x*(50-x*11)) / 24
	default:
		return 0
	}
}

// cubic is the 4-point Catmull-Rom interpolant.
type cubic struct{}

// Cubic returns the Catmull-Rom cubic kernel (half-width 2).
func Cubic() Kernel { return cubic{} }

func (cubic) Name() string    { return "cubic" }
func (cubic) XRange() float64 { return 2 }

func (cubic) Eval(x float64) float64 {
	x = math.Abs(x)
	switch {
	case x < 1:
		return 1 + x*x*(1.5*x-2.5)
	case x < 2:
		d := x - 2
		return -0.5 * (x - 1) * d * d
	default:
		return 0
	}
}

// linear is the 2-point tent interpolant.
type linear struct{}

// Linear returns the linear kernel (half-width 1).
func Linear() Kernel { return linear{} }

func (linear) Name() string    { return "linear" }
func (linear) XRange() float64 { return 1 }

func (linear) Eval(x float64) float64 {
	x = math.Abs(x)
	if x >= 1 {
		return 0
	}
	return 1 - x
}

// nearest is the boxcar interpolant.
type nearest struct{}

// Nearest returns the nearest-neighbor kernel (half-width 1/2).
func Nearest() Kernel { return nearest{} }

func (nearest) Name() string    { return "nearest" }
func (nearest) XRange() float64 { return 0.5 }

func (nearest) Eval(x float64) float64 {
	x = math.Abs(x)
	switch {
	case x < 0.5:
		return 1
	case x == 0.5:
		return 0.5
	default:
		return 0
	}
}
