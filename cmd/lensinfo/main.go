// Command lensinfo prints statistics of simulated weak-lensing shear
// fields.
//
// Usage:
//
//	lensinfo [flags] [spectrum-name ...]
//
// Without arguments it realizes all built-in spectra on a grid and prints
// per-field statistics.
//
// Examples:
//
//	lensinfo flat
//	lensinfo -ngrid 128 -spacing 2 powerlaw
//	lensinfo -index -0.5 -amp 1e-5 powerlaw
//	lensinfo -xi -ntheta 10 flat
//	lensinfo -list
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-lensing/lensing/deviate"
	"github.com/cwbudde/algo-lensing/lensing/ps"
	"github.com/cwbudde/algo-lensing/lensing/units"
)

type spectrumEntry struct {
	name     string
	describe string
	build    func(amp, index float64) ps.PowerFunc
}

var registry = []spectrumEntry{
	{
		"flat", "P(k) = A",
		func(amp, index float64) ps.PowerFunc {
			return func(k float64) float64 { return amp }
		},
	},
	{
		"powerlaw", "P(k) = A k^index",
		func(amp, index float64) ps.PowerFunc {
			return func(k float64) float64 { return amp * math.Pow(k, index) }
		},
	},
	{
		"gaussian", "P(k) = A exp(-k^2)",
		func(amp, index float64) ps.PowerFunc {
			return func(k float64) float64 { return amp * math.Exp(-k*k) }
		},
	},
}

func main() {
	ngrid := flag.Int("ngrid", 64, "grid points per side")
	spacing := flag.Float64("spacing", 1, "grid spacing in the chosen units")
	unitName := flag.String("units", "arcsec", "angular unit for spacing and separations")
	seed := flag.Int64("seed", 42, "random seed for the realization")
	amp := flag.Float64("amp", 1e-6, "spectrum amplitude A")
	index := flag.Float64("index", -1, "power-law index (powerlaw spectrum only)")
	bandlimit := flag.String("bandlimit", "hard", "band limit: hard, soft or none")
	xi := flag.Bool("xi", false, "also print the correlation functions xi+ and xi-")
	ntheta := flag.Int("ntheta", 8, "number of separations for -xi")
	list := flag.Bool("list", false, "list available spectrum names")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: lensinfo [flags] [spectrum-name ...]\n\n")
		fmt.Fprintf(os.Stderr, "Realizes shear fields from built-in power spectra and prints statistics.\n")
		fmt.Fprintf(os.Stderr, "Without arguments, prints info for all spectra.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  lensinfo flat powerlaw\n")
		fmt.Fprintf(os.Stderr, "  lensinfo -ngrid 128 -index -0.5 powerlaw\n")
		fmt.Fprintf(os.Stderr, "  lensinfo -xi -ntheta 10 flat\n")
		fmt.Fprintf(os.Stderr, "  lensinfo -list\n")
	}
	flag.Parse()

	if *list {
		printList()
		return
	}

	unit, err := units.Parse(*unitName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	bl, err := parseBandLimit(*bandlimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	names := flag.Args()
	if len(names) == 0 {
		for _, e := range registry {
			names = append(names, e.name)
		}
	}
	entries := resolveEntries(names)
	if len(entries) == 0 {
		fmt.Fprintf(os.Stderr, "error: no matching spectra\n")
		os.Exit(1)
	}

	printFields(entries, *ngrid, *spacing, unit, *seed, *amp, *index, bl)
	if *xi {
		fmt.Println()
		printXi(entries, *ngrid, *spacing, unit, *ntheta, *amp, *index, bl)
	}
}

func printList() {
	names := make([]string, len(registry))
	for i, e := range registry {
		names[i] = e.name
	}
	sort.Strings(names)
	for _, n := range names {
		fmt.Println(n)
	}
}

func resolveEntries(names []string) []spectrumEntry {
	byName := make(map[string]spectrumEntry, len(registry))
	for _, e := range registry {
		byName[e.name] = e
	}
	var result []spectrumEntry
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		e, ok := byName[name]
		if !ok {
			fmt.Fprintf(os.Stderr, "warning: unknown spectrum %q (use -list to see available)\n", name)
			continue
		}
		result = append(result, e)
	}
	return result
}

func parseBandLimit(s string) (ps.BandLimit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "hard":
		return ps.BandLimitHard, nil
	case "soft":
		return ps.BandLimitSoft, nil
	case "none":
		return ps.BandLimitNone, nil
	default:
		return 0, fmt.Errorf("unknown band limit %q", s)
	}
}

func printFields(entries []spectrumEntry, ngrid int, spacing float64,
	unit units.Unit, seed int64, amp, index float64, bl ps.BandLimit) {
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Spectrum\tForm\tGrid\tRMS g1\tRMS g2\tRMS kappa\tMax |g|\n")
	fmt.Fprintf(tw, "--------\t----\t----\t------\t------\t---------\t-------\n")

	for _, e := range entries {
		spectrum, err := ps.New(
			ps.WithEPowerFunc(e.build(amp, index)),
			ps.WithUnits(unit),
		)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %s: %v\n", e.name, err)
			continue
		}
		g1, g2, kappa, err := spectrum.BuildGrid(ps.BuildGridParams{
			GridSpacing:    spacing,
			NGrid:          ngrid,
			Rng:            deviate.New(seed),
			Units:          unit,
			GetConvergence: true,
			BandLimit:      bl,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %s: %v\n", e.name, err)
			continue
		}

		var maxG float64
		for i, v1 := range g1.Data() {
			g := math.Hypot(v1, g2.Data()[i])
			if g > maxG {
				maxG = g
			}
		}
		fmt.Fprintf(tw, "%s\t%s\t%dx%d\t%.3e\t%.3e\t%.3e\t%.3e\n",
			e.name, e.describe, ngrid, ngrid,
			rms(g1.Data()), rms(g2.Data()), rms(kappa.Data()), maxG)
	}
	if err := tw.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to flush output: %v\n", err)
	}
}

func printXi(entries []spectrumEntry, ngrid int, spacing float64,
	unit units.Unit, ntheta int, amp, index float64, bl ps.BandLimit) {
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Spectrum\ttheta [%s]\txi+\txi-\n", unit.Name())
	fmt.Fprintf(tw, "--------\t---------\t---\t---\n")

	for _, e := range entries {
		spectrum, err := ps.New(
			ps.WithEPowerFunc(e.build(amp, index)),
			ps.WithUnits(unit),
		)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %s: %v\n", e.name, err)
			continue
		}
		theta, xiP, xiM, err := spectrum.CalculateXi(ps.XiParams{
			GridSpacing: spacing,
			NGrid:       ngrid,
			NTheta:      ntheta,
			Units:       unit,
			BandLimit:   bl,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %s: %v\n", e.name, err)
			continue
		}
		for i := range theta {
			fmt.Fprintf(tw, "%s\t%.4f\t%.6e\t%.6e\n", e.name, theta[i], xiP[i], xiM[i])
		}
	}
	if err := tw.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to flush output: %v\n", err)
	}
}

func rms(xs []float64) float64 {
	var sum float64
	for _, v := range xs {
		sum += v * v
	}
	return math.Sqrt(sum / float64(len(xs)))
}
