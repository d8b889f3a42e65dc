package interp

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-lensing/lensing/grid"
)

func rampImage(n int) *grid.Image {
	im, _ := grid.New(n, n)
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			im.Set(x, y, float64(x)+10*float64(y))
		}
	}
	return im
}

func TestEvalAtNodes(t *testing.T) {
	for _, n := range []int{4, 5, 8} {
		im := rampImage(n)
		for _, k := range []Kernel{Linear(), Cubic(), Quintic(), Lanczos(5)} {
			s := NewSurface(im, WithXKernel(k))
			cx, cy := n/2, n/2
			// Interior nodes away from the edge, where the kernel has full
			// support and must reproduce grid values exactly.
			r := int(k.XRange())
			for y := r; y < n-r; y++ {
				for x := r; x < n-r; x++ {
					got := s.Eval(float64(x-cx), float64(y-cy))
					want := im.At(x, y)
					if math.Abs(got-want) > 1e-10 {
						t.Fatalf("n=%d kernel=%s node (%d,%d): got %v, want %v",
							n, k.Name(), x, y, got, want)
					}
				}
			}
		}
	}
}

func TestNominalCenterConvention(t *testing.T) {
	// Eval(0,0) must return the sample at index (n/2, n/2) on each axis.
	for _, n := range []int{4, 5} {
		im := rampImage(n)
		s := NewSurface(im, WithXKernel(Nearest()))
		want := im.At(n/2, n/2)
		if got := s.Eval(0, 0); got != want {
			t.Fatalf("n=%d: Eval(0,0) = %v, want %v", n, got, want)
		}
	}
}

func TestLinearMidpoint(t *testing.T) {
	im := rampImage(8)
	s := NewSurface(im, WithXKernel(Linear()))
	// Midway between two interior nodes along x.
	got := s.Eval(0.5, 0)
	want := 0.5 * (im.At(4, 4) + im.At(5, 4))
	if math.Abs(got-want) > 1e-12 {
		t.Fatalf("midpoint = %v, want %v", got, want)
	}
}

func TestOffGridSupportIsZero(t *testing.T) {
	im := rampImage(4)
	s := NewSurface(im, WithXKernel(Linear()))
	if got := s.Eval(100, 100); got != 0 {
		t.Fatalf("far outside = %v, want 0", got)
	}
}

func TestDefaultKernels(t *testing.T) {
	im := rampImage(4)
	s := NewSurface(im)
	if s.XKernel().Name() != "lanczos5" {
		t.Fatalf("default x kernel %q", s.XKernel().Name())
	}
	if s.KKernel().Name() != "quintic" {
		t.Fatalf("default k kernel %q", s.KKernel().Name())
	}
}
