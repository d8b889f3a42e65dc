// Package grid provides the 2-D containers used by the lensing engine: a
// contiguous float64 image with sub-region access, stride subsampling, and
// toroidal border padding, plus a float rectangle for position bookkeeping.
package grid

import (
	"errors"
	"fmt"
)

var (
	errBadSize     = errors.New("grid: image dimensions must be positive")
	errRaggedRows  = errors.New("grid: rows must all have the same length")
	errBadStride   = errors.New("grid: subsample stride and count must be positive")
	errStrideRange = errors.New("grid: subsample extent exceeds image size")
	errBadBorder   = errors.New("grid: wrap border must be positive and smaller than the image")
)

// Image is a dense row-major 2-D array of float64 samples.
type Image struct {
	data []float64
	nx   int
	ny   int
}

// New allocates a zero-filled nx by ny image.
func New(nx, ny int) (*Image, error) {
	if nx <= 0 || ny <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", errBadSize, nx, ny)
	}
	return &Image{data: make([]float64, nx*ny), nx: nx, ny: ny}, nil
}

// FromRows builds an image from row slices. The rows are copied.
func FromRows(rows [][]float64) (*Image, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("%w: empty input", errBadSize)
	}
	nx := len(rows[0])
	im, err := New(nx, len(rows))
	if err != nil {
		return nil, err
	}
	for y, row := range rows {
		if len(row) != nx {
			return nil, fmt.Errorf("%w: row %d has %d samples, want %d", errRaggedRows, y, len(row), nx)
		}
		copy(im.Row(y), row)
	}
	return im, nil
}

// NX returns the number of columns.
func (im *Image) NX() int { return im.nx }

// NY returns the number of rows.
func (im *Image) NY() int { return im.ny }

// At returns the sample at column x, row y.
func (im *Image) At(x, y int) float64 { return im.data[y*im.nx+x] }

// Set stores v at column x, row y.
func (im *Image) Set(x, y int, v float64) { im.data[y*im.nx+x] = v }

// Row returns the mutable row y as a slice view into the image.
func (im *Image) Row(y int) []float64 { return im.data[y*im.nx : (y+1)*im.nx] }

// Data returns the backing slice in row-major order.
func (im *Image) Data() []float64 { return im.data }

// Clone returns a deep copy.
func (im *Image) Clone() *Image {
	out := &Image{data: make([]float64, len(im.data)), nx: im.nx, ny: im.ny}
	copy(out.data, im.data)
	return out
}

// Rows returns the image as freshly allocated row slices.
func (im *Image) Rows() [][]float64 {
	out := make([][]float64, im.ny)
	for y := range out {
		out[y] = append([]float64(nil), im.Row(y)...)
	}
	return out
}

// Subsample returns a contiguous copy holding n samples per axis taken at
// offsets 0, stride, 2*stride, ... from the origin.
func (im *Image) Subsample(stride, n int) (*Image, error) {
	if stride <= 0 || n <= 0 {
		return nil, fmt.Errorf("%w: stride=%d n=%d", errBadStride, stride, n)
	}
	if (n-1)*stride >= im.nx || (n-1)*stride >= im.ny {
		return nil, fmt.Errorf("%w: stride=%d n=%d image=%dx%d", errStrideRange, stride, n, im.nx, im.ny)
	}
	out, _ := New(n, n)
	for y := 0; y < n; y++ {
		src := im.Row(y * stride)
		dst := out.Row(y)
		for x := 0; x < n; x++ {
			dst[x] = src[x*stride]
		}
	}
	return out, nil
}

// WrapPadded returns a copy of the image expanded by border cells on every
// side, with the padding filled from the toroidally wrapped image. Each
// output row is assembled from three segments of one wrapped source row, so
// the nine tile copies (center plus eight neighbors) collapse into a single
// uniform loop.
func (im *Image) WrapPadded(border int) (*Image, error) {
	if border <= 0 || border >= im.nx || border >= im.ny {
		return nil, fmt.Errorf("%w: border=%d image=%dx%d", errBadBorder, border, im.nx, im.ny)
	}
	out, _ := New(im.nx+2*border, im.ny+2*border)
	for y := 0; y < out.ny; y++ {
		src := im.Row(((y-border)%im.ny + im.ny) % im.ny)
		dst := out.Row(y)
		copy(dst[:border], src[im.nx-border:])
		copy(dst[border:border+im.nx], src)
		copy(dst[border+im.nx:], src[:border])
	}
	return out, nil
}
