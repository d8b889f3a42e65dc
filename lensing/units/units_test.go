package units

import (
	"math"
	"testing"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestParse(t *testing.T) {
	cases := []struct {
		in   string
		want Unit
	}{
		{"arcsec", Arcsec},
		{"ARCSEC", Arcsec},
		{" asec ", Arcsec},
		{"arcmin", Arcmin},
		{"amin", Arcmin},
		{"deg", Degrees},
		{"degrees", Degrees},
		{"rad", Radians},
		{"radians", Radians},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			got, err := Parse(c.in)
			if err != nil {
				t.Fatalf("Parse(%q): %v", c.in, err)
			}
			if got != c.want {
				t.Fatalf("Parse(%q) = %v, want %v", c.in, got.Name(), c.want.Name())
			}
		})
	}
}

func TestParseUnknown(t *testing.T) {
	if _, err := Parse("furlongs"); err == nil {
		t.Fatal("expected error for unknown unit")
	}
}

func TestConversions(t *testing.T) {
	if Arcsec.InArcsec() != 1 {
		t.Fatalf("arcsec scale = %v, want 1", Arcsec.InArcsec())
	}
	if Arcmin.InArcsec() != 60 {
		t.Fatalf("arcmin scale = %v, want 60", Arcmin.InArcsec())
	}
	if Degrees.InArcsec() != 3600 {
		t.Fatalf("degree scale = %v, want 3600", Degrees.InArcsec())
	}
	if !almostEqual(Radians.InArcsec(), 206264.806247096, 1e-6) {
		t.Fatalf("radian scale = %v", Radians.InArcsec())
	}

	if got := Arcmin.ToArcsec(2); got != 120 {
		t.Fatalf("2 arcmin = %v arcsec, want 120", got)
	}
	if got := Degrees.FromArcsec(7200); got != 2 {
		t.Fatalf("7200 arcsec = %v deg, want 2", got)
	}
}

func TestZeroUnitDefaultsToArcsec(t *testing.T) {
	var u Unit
	if !u.IsArcsec() {
		t.Fatal("zero Unit should behave as arcsec")
	}
	if u.ToArcsec(3.5) != 3.5 {
		t.Fatal("zero Unit conversion should be identity")
	}
}
