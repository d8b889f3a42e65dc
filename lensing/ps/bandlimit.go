package ps

import "math"

// BandLimit selects how power beyond the grid's maximum wavenumber is
// suppressed before a realization is drawn. Without band limiting, power
// above the Nyquist frequency of the grid is aliased into the map.
type BandLimit int

const (
	// BandLimitHard zeroes the power at and above k_max.
	BandLimitHard BandLimit = iota
	// BandLimitSoft rolls the power off smoothly with an arctan filter
	// that reaches 0.95 at k = 0.95 k_max and 0.05 at k = k_max.
	BandLimitSoft
	// BandLimitNone applies no suppression.
	BandLimitNone
)

// String returns the band-limit name.
func (b BandLimit) String() string {
	switch b {
	case BandLimitHard:
		return "hard"
	case BandLimitSoft:
		return "soft"
	case BandLimitNone:
		return "none"
	default:
		return "invalid"
	}
}

func (b BandLimit) valid() bool {
	return b >= BandLimitHard && b <= BandLimitNone
}

// Soft roll-off coefficients, from solving
//
//	0.95 = (arctan[a log(0.95) + c] + pi/2)/pi
//	0.05 = (arctan[c] + pi/2)/pi
var (
	softC = math.Tan(-0.45 * math.Pi)
	softA = (math.Tan(0.45*math.Pi) - softC) / math.Log(0.95)
)

// filter returns the suppression factor for wavenumber k given the cutoff
// kMax. k and kMax must share units.
func (b BandLimit) filter(k, kMax float64) float64 {
	switch b {
	case BandLimitHard:
		if k < kMax {
			return 1
		}
		return 0
	case BandLimitSoft:
		return (math.Atan(softA*math.Log(k/kMax)+softC) + math.Pi/2) / math.Pi
	default:
		return 1
	}
}
