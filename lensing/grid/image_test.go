package grid

import (
	"math"
	"testing"
)

func sequential(nx, ny int) *Image {
	im, _ := New(nx, ny)
	for y := 0; y < ny; y++ {
		for x := 0; x < nx; x++ {
			im.Set(x, y, float64(y*nx+x))
		}
	}
	return im
}

func TestNewValidation(t *testing.T) {
	if _, err := New(0, 4); err == nil {
		t.Fatal("expected error for zero width")
	}
	if _, err := New(4, -1); err == nil {
		t.Fatal("expected error for negative height")
	}
}

func TestFromRows(t *testing.T) {
	im, err := FromRows([][]float64{{1, 2}, {3, 4}})
	if err != nil {
		t.Fatal(err)
	}
	if im.At(1, 0) != 2 || im.At(0, 1) != 3 {
		t.Fatalf("unexpected layout: %v", im.Data())
	}

	if _, err := FromRows([][]float64{{1, 2}, {3}}); err == nil {
		t.Fatal("expected ragged-rows error")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	im := sequential(3, 3)
	cl := im.Clone()
	cl.Set(0, 0, -1)
	if im.At(0, 0) == -1 {
		t.Fatal("Clone shares backing storage")
	}
}

func TestSubsample(t *testing.T) {
	im := sequential(6, 6)
	sub, err := im.Subsample(2, 3)
	if err != nil {
		t.Fatal(err)
	}
	if sub.NX() != 3 || sub.NY() != 3 {
		t.Fatalf("subsample shape %dx%d, want 3x3", sub.NX(), sub.NY())
	}
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			if got, want := sub.At(x, y), im.At(2*x, 2*y); got != want {
				t.Fatalf("sub(%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}

	if _, err := im.Subsample(4, 3); err == nil {
		t.Fatal("expected extent error")
	}
	if _, err := im.Subsample(0, 3); err == nil {
		t.Fatal("expected stride error")
	}
}

func TestWrapPadded(t *testing.T) {
	const n, border = 5, 2
	im := sequential(n, n)
	padded, err := im.WrapPadded(border)
	if err != nil {
		t.Fatal(err)
	}
	if padded.NX() != n+2*border || padded.NY() != n+2*border {
		t.Fatalf("padded shape %dx%d", padded.NX(), padded.NY())
	}

	// Every padded cell must equal the toroidally wrapped source cell.
	for y := 0; y < padded.NY(); y++ {
		for x := 0; x < padded.NX(); x++ {
			sx := ((x-border)%n + n) % n
			sy := ((y-border)%n + n) % n
			if got, want := padded.At(x, y), im.At(sx, sy); got != want {
				t.Fatalf("padded(%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestWrapPaddedBorderTooLarge(t *testing.T) {
	im := sequential(4, 4)
	if _, err := im.WrapPadded(4); err == nil {
		t.Fatal("expected border-size error")
	}
	if _, err := im.WrapPadded(0); err == nil {
		t.Fatal("expected border-size error for zero border")
	}
}

func TestBounds(t *testing.T) {
	b := NewBounds(-2, 2, -1, 1)
	if b.Width() != 4 || b.Height() != 2 {
		t.Fatalf("width=%v height=%v", b.Width(), b.Height())
	}
	if !b.Includes(2, 1) || !b.Includes(-2, -1) {
		t.Fatal("edges should be inclusive")
	}
	if b.Includes(2.1, 0) {
		t.Fatal("point outside x range included")
	}

	e := b.Expand(1 + 1e-15)
	if !(e.XMax > b.XMax) || !(e.XMin < b.XMin) {
		t.Fatal("Expand should grow the rectangle outward")
	}
	if math.Abs(e.Width()-b.Width()*(1+1e-15)) > 1e-12 {
		t.Fatalf("expanded width %v", e.Width())
	}
}
