package ps

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// fft2 applies 2-D transforms to a square complex grid by running the 1-D
// plan along every row and then every column. The plan's inverse includes a
// 1/N factor per axis, so a 2-D inverse carries the usual 1/N^2.
type fft2 struct {
	n    int
	plan *algofft.Plan[complex128]
	col  []complex128
}

func newFFT2(n int) (*fft2, error) {
	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("ps: fft plan for size %d: %w", n, err)
	}
	return &fft2{n: n, plan: plan, col: make([]complex128, n)}, nil
}

func (f *fft2) forward(a []complex128) error { return f.apply(a, f.plan.Forward) }
func (f *fft2) inverse(a []complex128) error { return f.apply(a, f.plan.Inverse) }

func (f *fft2) apply(a []complex128, transform func(dst, src []complex128) error) error {
	n := f.n
	if len(a) != n*n {
		return fmt.Errorf("ps: fft input has %d samples, want %d", len(a), n*n)
	}
	for y := 0; y < n; y++ {
		row := a[y*n : (y+1)*n]
		if err := transform(row, row); err != nil {
			return fmt.Errorf("ps: fft row %d: %w", y, err)
		}
	}
	for x := 0; x < n; x++ {
		for y := 0; y < n; y++ {
			f.col[y] = a[y*n+x]
		}
		if err := transform(f.col, f.col); err != nil {
			return fmt.Errorf("ps: fft column %d: %w", x, err)
		}
		for y := 0; y < n; y++ {
			a[y*n+x] = f.col[y]
		}
	}
	return nil
}
