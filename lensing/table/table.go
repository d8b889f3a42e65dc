// Package table provides a one-dimensional tabulated function with a bounded
// domain.
//
// A [Table] is built from ordered (x, y) pairs and evaluated by
// interpolation. Evaluation outside [XMin, XMax] is an error rather than an
// extrapolation; callers that need the full domain covered (for example a
// power spectrum sampled on a k grid) must supply a table that spans it.
package table

import (
	"errors"
	"fmt"
	"sort"
)

// Interp selects the interpolation rule applied between table nodes.
type Interp int

const (
	// InterpLinear joins adjacent nodes with straight segments.
	InterpLinear Interp = iota
	// InterpSpline uses a natural cubic spline through all nodes.
	InterpSpline
	// InterpFloor returns the value at the node at or below x.
	InterpFloor
	// InterpCeil returns the value at the node at or above x.
	InterpCeil
	// InterpNearest returns the value at the closest node.
	InterpNearest
)

var (
	// ErrOutOfRange is returned when a table is evaluated outside its domain.
	ErrOutOfRange = errors.New("table: argument outside table domain")

	errTooFewNodes = errors.New("table: need at least 2 nodes")
	errNotSorted   = errors.New("table: x values must be strictly increasing")
	errLengths     = errors.New("table: x and y must have the same length")
)

// Table is an immutable tabulated function over a bounded domain.
type Table struct {
	xs, ys []float64
	interp Interp

	// Second derivatives at the nodes, spline mode only.
	y2 []float64
}

// Option configures a Table.
type Option func(*Table)

// WithInterp selects the interpolation rule. The default is InterpLinear.
func WithInterp(i Interp) Option {
	return func(t *Table) { t.interp = i }
}

// New builds a table from parallel x and y slices. The x values must be
// strictly increasing; both slices are copied.
func New(xs, ys []float64, opts ...Option) (*Table, error) {
	if len(xs) != len(ys) {
		return nil, fmt.Errorf("%w: %d != %d", errLengths, len(xs), len(ys))
	}
	if len(xs) < 2 {
		return nil, fmt.Errorf("%w: got %d", errTooFewNodes, len(xs))
	}
	for i := 1; i < len(xs); i++ {
		if !(xs[i] > xs[i-1]) {
			return nil, fmt.Errorf("%w: index %d", errNotSorted, i)
		}
	}

	t := &Table{
		xs: append([]float64(nil), xs...),
		ys: append([]float64(nil), ys...),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(t)
		}
	}

	if t.interp == InterpSpline {
		if len(xs) < 3 {
			return nil, fmt.Errorf("table: spline interpolation needs at least 3 nodes: got %d", len(xs))
		}
		t.y2 = naturalSpline(t.xs, t.ys)
	}
	return t, nil
}

// XMin returns the lower edge of the table domain.
func (t *Table) XMin() float64 { return t.xs[0] }

// XMax returns the upper edge of the table domain.
func (t *Table) XMax() float64 { return t.xs[len(t.xs)-1] }

// Len returns the number of nodes.
func (t *Table) Len() int { return len(t.xs) }

// Eval interpolates the table at x. Arguments outside [XMin, XMax] return
// [ErrOutOfRange].
func (t *Table) Eval(x float64) (float64, error) {
	if x < t.XMin() || x > t.XMax() {
		return 0, fmt.Errorf("%w: x=%v not in [%v, %v]", ErrOutOfRange, x, t.XMin(), t.XMax())
	}

	// Bracketing interval [j-1, j] with j in [1, len-1].
	j := sort.SearchFloat64s(t.xs, x)
	if j < len(t.xs) && t.xs[j] == x {
		return t.ys[j], nil
	}
	if j == 0 {
		j = 1
	} else if j == len(t.xs) {
		j = len(t.xs) - 1
	}
	x0, x1 := t.xs[j-1], t.xs[j]
	y0, y1 := t.ys[j-1], t.ys[j]

	switch t.interp {
	case InterpFloor:
		return y0, nil
	case InterpCeil:
		return y1, nil
	case InterpNearest:
		if x-x0 <= x1-x {
			return y0, nil
		}
		return y1, nil
	case InterpSpline:
		h := x1 - x0
		a := (x1 - x) / h
		b := (x - x0) / h
		return a*y0 + b*y1 +
			((a*a*a-a)*t.y2[j-1]+(b*b*b-b)*t.y2[j])*h*h/6, nil
	default:
		frac := (x - x0) / (x1 - x0)
		return y0 + frac*(y1-y0), nil
	}
}

// EvalMany interpolates the table at each argument, writing into dst.
// dst and xs must have the same length.
func (t *Table) EvalMany(dst, xs []float64) error {
	if len(dst) != len(xs) {
		return fmt.Errorf("%w: dst %d, xs %d", errLengths, len(dst), len(xs))
	}
	for i, x := range xs {
		y, err := t.Eval(x)
		if err != nil {
			return err
		}
		dst[i] = y
	}
	return nil
}

// naturalSpline computes second derivatives for a natural cubic spline
// (zero curvature at both ends) by the standard tridiagonal sweep.
func naturalSpline(xs, ys []float64) []float64 {
	n := len(xs)
	y2 := make([]float64, n)
	u := make([]float64, n-1)

	for i := 1; i < n-1; i++ {
		sig := (xs[i] - xs[i-1]) / (xs[i+1] - xs[i-1])
		p := sig*y2[i-1] + 2
		y2[i] = (sig - 1) / p
		u[i] = (ys[i+1]-ys[i])/(xs[i+1]-xs[i]) - (ys[i]-ys[i-1])/(xs[i]-xs[i-1])
		u[i] = (6*u[i]/(xs[i+1]-xs[i-1]) - sig*u[i-1]) / p
	}
	for i := n - 2; i >= 0; i-- {
		y2[i] = y2[i]*y2[i+1] + u[i]
	}
	return y2
}
