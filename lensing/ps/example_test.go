package ps_test

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-lensing/lensing/deviate"
	"github.com/cwbudde/algo-lensing/lensing/ps"
)

func ExamplePowerSpectrum_BuildGrid() {
	spectrum, err := ps.New(ps.WithEPowerFunc(func(k float64) float64 {
		return 1e-6 / k
	}))
	if err != nil {
		panic(err)
	}

	g1, g2, _, err := spectrum.BuildGrid(ps.BuildGridParams{
		GridSpacing: 1,
		NGrid:       32,
		Rng:         deviate.New(42),
	})
	if err != nil {
		panic(err)
	}

	// The same seed reproduces the realization exactly.
	r1, _, _, err := spectrum.BuildGrid(ps.BuildGridParams{
		GridSpacing: 1,
		NGrid:       32,
		Rng:         deviate.New(42),
	})
	if err != nil {
		panic(err)
	}
	identical := true
	for i, v := range g1.Data() {
		if r1.Data()[i] != v {
			identical = false
			break
		}
	}

	fmt.Println("grid:", g1.NX(), "x", g2.NY())
	fmt.Println("reproducible:", identical)
	// Output:
	// grid: 32 x 32
	// reproducible: true
}

func ExamplePowerSpectrum_GetShearAt() {
	spectrum, err := ps.New(ps.WithEPowerFunc(func(k float64) float64 {
		return 1e-6 / k
	}))
	if err != nil {
		panic(err)
	}
	if _, _, _, err := spectrum.BuildGrid(ps.BuildGridParams{
		GridSpacing: 1,
		NGrid:       32,
		Rng:         deviate.New(42),
	}); err != nil {
		panic(err)
	}

	g1, g2, err := spectrum.GetShearAt(ps.Pos{X: 2.5, Y: -3.25})
	if err != nil {
		panic(err)
	}
	fmt.Println("finite:", !math.IsNaN(g1) && !math.IsNaN(g2))
	// Output:
	// finite: true
}

func ExampleTheoryToObserved() {
	g1, g2, mu := ps.TheoryToObserved(0.1, 0, 0.05)
	fmt.Printf("g = (%.4f, %.4f), mu = %.4f\n", g1, g2, mu)
	// Output:
	// g = (0.1053, 0.0000), mu = 1.1204
}
