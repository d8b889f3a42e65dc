package ps

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/cwbudde/algo-lensing/lensing/deviate"
	"github.com/cwbudde/algo-lensing/lensing/interp"
	"github.com/cwbudde/algo-lensing/lensing/units"
)

func builtSpectrum(t *testing.T, opts ...Option) *PowerSpectrum {
	t.Helper()
	opts = append([]Option{WithEPowerFunc(flatSpectrum)}, opts...)
	spectrum, err := New(opts...)
	if err != nil {
		t.Fatal(err)
	}
	mustBuild(t, spectrum, BuildGridParams{
		GridSpacing: 1, NGrid: 16, Rng: deviate.New(42),
	})
	return spectrum
}

func TestQueriesBeforeBuild(t *testing.T) {
	spectrum, err := New(WithEPowerFunc(flatSpectrum))
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := spectrum.GetShear(nil); !errors.Is(err, ErrNoGrid) {
		t.Fatalf("GetShear err = %v, want ErrNoGrid", err)
	}
	if _, err := spectrum.GetConvergence(nil); !errors.Is(err, ErrNoGrid) {
		t.Fatalf("GetConvergence err = %v, want ErrNoGrid", err)
	}
	if _, err := spectrum.GetMagnification(nil); !errors.Is(err, ErrNoGrid) {
		t.Fatalf("GetMagnification err = %v, want ErrNoGrid", err)
	}
	if _, _, _, err := spectrum.GetLensing(nil); !errors.Is(err, ErrNoGrid) {
		t.Fatalf("GetLensing err = %v, want ErrNoGrid", err)
	}
}

func TestGetShearAtGridNodes(t *testing.T) {
	// At a grid node, the bare shear must reproduce the stored sample.
	spectrum, err := New(WithEPowerFunc(flatSpectrum))
	if err != nil {
		t.Fatal(err)
	}
	g1, _, _ := mustBuild(t, spectrum, BuildGridParams{
		GridSpacing: 1, NGrid: 17, Rng: deviate.New(8),
		Interpolant: interp.Quintic(),
	})

	// Odd grid: node (ix, iy) sits at (ix-8, iy-8) arcsec from center.
	for _, node := range [][2]int{{8, 8}, {9, 8}, {5, 11}} {
		x := float64(node[0] - 8)
		y := float64(node[1] - 8)
		v1, _, err := spectrum.GetShearAt(Pos{X: x, Y: y}, WithReduced(false))
		if err != nil {
			t.Fatal(err)
		}
		if want := g1.At(node[0], node[1]); !almostEqual(v1, want, 1e-10) {
			t.Fatalf("shear at node %v = %v, want %v", node, v1, want)
		}
	}
}

func TestOutOfBoundsFallbacks(t *testing.T) {
	var warnings []string
	spectrum, err := New(
		WithEPowerFunc(flatSpectrum),
		WithWarningHandler(func(format string, args ...any) {
			warnings = append(warnings, fmt.Sprintf(format, args...))
		}),
	)
	if err != nil {
		t.Fatal(err)
	}
	mustBuild(t, spectrum, BuildGridParams{
		GridSpacing: 1, NGrid: 8, Rng: deviate.New(4),
	})

	far := Pos{X: 1e6, Y: 1e6}
	g1, g2, err := spectrum.GetShearAt(far)
	if err != nil {
		t.Fatal(err)
	}
	if g1 != 0 || g2 != 0 {
		t.Fatalf("off-grid shear = (%v, %v), want (0, 0)", g1, g2)
	}
	kappa, err := spectrum.GetConvergenceAt(far)
	if err != nil {
		t.Fatal(err)
	}
	if kappa != 0 {
		t.Fatalf("off-grid convergence = %v, want 0", kappa)
	}
	mu, err := spectrum.GetMagnificationAt(far)
	if err != nil {
		t.Fatal(err)
	}
	if mu != 1 {
		t.Fatalf("off-grid magnification = %v, want exactly 1", mu)
	}

	if len(warnings) != 3 {
		t.Fatalf("got %d warnings, want 3", len(warnings))
	}
	for _, w := range warnings {
		if !strings.Contains(w, "outside the gridded region") {
			t.Fatalf("unexpected warning text %q", w)
		}
	}
}

func TestPeriodicWrap(t *testing.T) {
	spectrum := builtSpectrum(t)
	b := spectrum.GridBounds()

	probe := Pos{X: 1.3, Y: -2.6}
	g1, g2, err := spectrum.GetShearAt(probe, WithPeriodic(true))
	if err != nil {
		t.Fatal(err)
	}
	shifted := Pos{X: probe.X + b.Width(), Y: probe.Y - 2*b.Height()}
	w1, w2, err := spectrum.GetShearAt(shifted, WithPeriodic(true))
	if err != nil {
		t.Fatal(err)
	}
	if !almostEqual(g1, w1, 1e-9) || !almostEqual(g2, w2, 1e-9) {
		t.Fatalf("wrapped query (%v, %v) != original (%v, %v)", w1, w2, g1, g2)
	}
}

func TestPeriodicMatchesDirectInInterior(t *testing.T) {
	// Away from the edges the padding cannot influence the kernel, so
	// periodic and direct interpolation agree.
	spectrum := builtSpectrum(t)
	probe := Pos{X: 0.4, Y: 0.3}

	d1, d2, err := spectrum.GetShearAt(probe)
	if err != nil {
		t.Fatal(err)
	}
	p1, p2, err := spectrum.GetShearAt(probe, WithPeriodic(true))
	if err != nil {
		t.Fatal(err)
	}
	if !almostEqual(d1, p1, 1e-12) || !almostEqual(d2, p2, 1e-12) {
		t.Fatalf("periodic (%v, %v) != direct (%v, %v)", p1, p2, d1, d2)
	}
}

func TestReducedVersusBareShear(t *testing.T) {
	spectrum := builtSpectrum(t)
	probe := Pos{X: 0.4, Y: 0.3}

	r1, r2, err := spectrum.GetShearAt(probe)
	if err != nil {
		t.Fatal(err)
	}
	b1, b2, err := spectrum.GetShearAt(probe, WithReduced(false))
	if err != nil {
		t.Fatal(err)
	}
	if r1 == b1 && r2 == b2 {
		t.Fatal("reduced and bare shear agree exactly; kappa correction missing")
	}
}

func TestGetLensingConsistency(t *testing.T) {
	spectrum := builtSpectrum(t)
	probe := Pos{X: -1.2, Y: 2.7}

	g1, g2, mu, err := spectrum.GetLensingAt(probe)
	if err != nil {
		t.Fatal(err)
	}
	s1, s2, err := spectrum.GetShearAt(probe)
	if err != nil {
		t.Fatal(err)
	}
	m, err := spectrum.GetMagnificationAt(probe)
	if err != nil {
		t.Fatal(err)
	}
	if !almostEqual(g1, s1, 1e-14) || !almostEqual(g2, s2, 1e-14) || !almostEqual(mu, m, 1e-14) {
		t.Fatalf("GetLensing (%v, %v, %v) disagrees with (%v, %v, %v)",
			g1, g2, mu, s1, s2, m)
	}
}

func TestQueryUnits(t *testing.T) {
	spectrum := builtSpectrum(t)

	// The same physical position expressed in arcmin.
	a1, a2, err := spectrum.GetShearAt(Pos{X: 1.5, Y: -0.75})
	if err != nil {
		t.Fatal(err)
	}
	m1, m2, err := spectrum.GetShearAt(Pos{X: 1.5 / 60, Y: -0.75 / 60},
		WithQueryUnits(units.Arcmin))
	if err != nil {
		t.Fatal(err)
	}
	if !almostEqual(a1, m1, 1e-12) || !almostEqual(a2, m2, 1e-12) {
		t.Fatalf("arcmin query (%v, %v) != arcsec query (%v, %v)", m1, m2, a1, a2)
	}
}

func TestQueryInterpolantOverride(t *testing.T) {
	spectrum := builtSpectrum(t)
	probe := Pos{X: 0.4, Y: 0.3}

	l1, _, err := spectrum.GetShearAt(probe)
	if err != nil {
		t.Fatal(err)
	}
	n1, _, err := spectrum.GetShearAt(probe, WithQueryInterpolant(interp.Nearest()))
	if err != nil {
		t.Fatal(err)
	}
	if l1 == n1 {
		t.Fatal("kernel override had no effect at an off-node position")
	}
	if math.IsNaN(l1) || math.IsNaN(n1) {
		t.Fatal("interpolation produced NaN")
	}
}
