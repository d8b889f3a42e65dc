package interp

import (
	"math"

	"github.com/cwbudde/algo-lensing/lensing/grid"
)

// Surface evaluates a gridded field at arbitrary real coordinates by
// separable kernel convolution.
//
// The spatial kernel does the interpolation work. The frequency-domain
// kernel is the correction term a transform-side consumer of the surface
// would apply; it is carried for that purpose and does not enter direct
// evaluation.
type Surface struct {
	im *grid.Image
	xk Kernel
	kk Kernel

	// Nominal center indices: Eval(0, 0) returns the sample at (cx, cy).
	cx int
	cy int
}

// SurfaceOption configures a Surface.
type SurfaceOption func(*Surface)

// WithXKernel sets the spatial kernel. The default is Lanczos(5).
func WithXKernel(k Kernel) SurfaceOption {
	return func(s *Surface) {
		if k != nil {
			s.xk = k
		}
	}
}

// WithKKernel sets the frequency-domain kernel. The default is Quintic.
func WithKKernel(k Kernel) SurfaceOption {
	return func(s *Surface) {
		if k != nil {
			s.kk = k
		}
	}
}

// NewSurface wraps an image for interpolation. The image is referenced,
// not copied; it must not be mutated while the surface is in use.
func NewSurface(im *grid.Image, opts ...SurfaceOption) *Surface {
	s := &Surface{
		im: im,
		xk: Lanczos(5),
		kk: Quintic(),
		cx: im.NX() / 2,
		cy: im.NY() / 2,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// XKernel returns the spatial kernel in use.
func (s *Surface) XKernel() Kernel { return s.xk }

// KKernel returns the frequency-domain kernel in use.
func (s *Surface) KKernel() Kernel { return s.kk }

// Eval returns the interpolated field value at kernel coordinates (x, y),
// where one unit is one grid cell and (0, 0) is the nominal grid center.
// Kernel support hanging off the grid edge is treated as zero.
func (s *Surface) Eval(x, y float64) float64 {
	px := x + float64(s.cx)
	py := y + float64(s.cy)
	r := s.xk.XRange()

	ix0 := clampIndex(int(math.Ceil(px-r)), s.im.NX())
	ix1 := clampIndex(int(math.Floor(px+r)), s.im.NX())
	iy0 := clampIndex(int(math.Ceil(py-r)), s.im.NY())
	iy1 := clampIndex(int(math.Floor(py+r)), s.im.NY())
	if ix0 > ix1 || iy0 > iy1 {
		return 0
	}

	wx := make([]float64, ix1-ix0+1)
	for i := range wx {
		wx[i] = s.xk.Eval(px - float64(ix0+i))
	}

	var sum float64
	for iy := iy0; iy <= iy1; iy++ {
		wy := s.xk.Eval(py - float64(iy))
		if wy == 0 {
			continue
		}
		row := s.im.Row(iy)
		var rowSum float64
		for i, w := range wx {
			rowSum += w * row[ix0+i]
		}
		sum += wy * rowSum
	}
	return sum
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n-1 {
		return n - 1
	}
	return i
}
