package integ

import (
	"errors"
	"math"
	"testing"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestPolynomial(t *testing.T) {
	// GK15 is exact for polynomials well beyond cubic; this exercises the
	// plumbing rather than the rule.
	got, err := Int1D(func(x float64) float64 { return 3*x*x + 2*x + 1 }, 0, 2)
	if err != nil {
		t.Fatal(err)
	}
	if !almostEqual(got, 14, 1e-12) {
		t.Fatalf("integral = %v, want 14", got)
	}
}

func TestOscillatory(t *testing.T) {
	got, err := Int1D(math.Sin, 0, math.Pi)
	if err != nil {
		t.Fatal(err)
	}
	if !almostEqual(got, 2, 1e-10) {
		t.Fatalf("int sin over [0,pi] = %v, want 2", got)
	}

	// Many oscillations force subdivision.
	f := func(x float64) float64 { return math.Sin(50 * x) }
	got, err = Int1D(f, 0, math.Pi)
	if err != nil {
		t.Fatal(err)
	}
	want := (1 - math.Cos(50*math.Pi)) / 50
	if !almostEqual(got, want, 1e-9) {
		t.Fatalf("int sin(50x) = %v, want %v", got, want)
	}
}

func TestReversedInterval(t *testing.T) {
	fwd, err := Int1D(math.Exp, 0, 1)
	if err != nil {
		t.Fatal(err)
	}
	rev, err := Int1D(math.Exp, 1, 0)
	if err != nil {
		t.Fatal(err)
	}
	if !almostEqual(fwd, -rev, 1e-12) {
		t.Fatalf("reversed interval: %v != -%v", fwd, rev)
	}
}

func TestEmptyInterval(t *testing.T) {
	got, err := Int1D(math.Exp, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	if got != 0 {
		t.Fatalf("empty interval = %v, want 0", got)
	}
}

func TestNonFiniteIntegrand(t *testing.T) {
	_, err := Int1D(func(x float64) float64 { return 1 / x }, -1, 1)
	if !errors.Is(err, ErrNonFinite) && !errors.Is(err, ErrNotConverged) {
		t.Fatalf("expected non-finite or non-converged error, got %v", err)
	}

	_, err = Int1D(func(x float64) float64 { return math.NaN() }, 0, 1)
	if !errors.Is(err, ErrNonFinite) {
		t.Fatalf("expected ErrNonFinite, got %v", err)
	}
}

func TestTolerancesRespected(t *testing.T) {
	// Integral of x^-1/2 over [eps, 1]; steep near the lower edge.
	f := func(x float64) float64 { return 1 / math.Sqrt(x) }
	got, err := Int1D(f, 1e-6, 1, WithRelErr(1e-9), WithAbsErr(1e-14))
	if err != nil {
		t.Fatal(err)
	}
	want := 2 * (1 - math.Sqrt(1e-6))
	if math.Abs(got-want)/want > 1e-8 {
		t.Fatalf("integral = %v, want %v", got, want)
	}
}

func TestBudgetExhaustion(t *testing.T) {
	// A pathological integrand with a tiny interval budget.
	f := func(x float64) float64 { return math.Sin(1e4 * x) }
	_, err := Int1D(f, 0, 10, WithMaxIntervals(4), WithRelErr(1e-12))
	if !errors.Is(err, ErrNotConverged) {
		t.Fatalf("expected ErrNotConverged, got %v", err)
	}
}
