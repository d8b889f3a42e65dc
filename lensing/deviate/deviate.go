// Package deviate provides the seeded pseudo-random deviates used by the
// lensing engine.
//
// A [Gaussian] is a stateful, single-threaded sequence generator: the same
// seed always reproduces the same sequence of draws, and the engine consumes
// draws in a documented, fixed order. Reproducibility here is a correctness
// requirement, not an optimization; callers that split work across contexts
// can use [Gaussian.Calls] to keep an external copy of the state in sync.
package deviate

import (
	"math/rand"
)

// Gaussian draws standard-normal deviates from a seeded source.
type Gaussian struct {
	rng   *rand.Rand
	seed  int64
	calls int
}

// New returns a generator seeded with the given value.
func New(seed int64) *Gaussian {
	return &Gaussian{rng: rand.New(rand.NewSource(seed)), seed: seed}
}

// Next returns the next standard-normal deviate (mean 0, variance 1).
func (g *Gaussian) Next() float64 {
	g.calls++
	return g.rng.NormFloat64()
}

// Fill populates dst with successive deviates in index order.
func (g *Gaussian) Fill(dst []float64) {
	for i := range dst {
		dst[i] = g.Next()
	}
}

// Calls returns the cumulative number of deviates drawn since the last
// seeding.
func (g *Gaussian) Calls() int { return g.calls }

// Seed returns the seed the current sequence started from.
func (g *Gaussian) Seed() int64 { return g.seed }

// Reset restarts the sequence from the given seed and zeroes the call count.
func (g *Gaussian) Reset(seed int64) {
	g.rng = rand.New(rand.NewSource(seed))
	g.seed = seed
	g.calls = 0
}
