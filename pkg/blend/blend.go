// Package blend implements the scalar/window blending kernels of spec.md
// §4.3 shared by the color, vec3, and fixture-input blend paths.
package blend

import "math"

// Mode is a track's blend mode.
type Mode int

const (
	Mix Mode = iota
	Add
	Subtract
	Multiply
)

// Scalar blends two scalars with the same formulas spec.md defines for
// color channels, reused for Vec3Effect components and plain numeric
// parameters.
func Scalar(mode Mode, a, b, factor float64) float64 {
	switch mode {
	case Add:
		return a + b*factor
	case Subtract:
		return a - b*factor
	case Multiply:
		return a + (a*b-a)*factor
	default: // Mix
		return a + (b-a)*factor
	}
}

// SampleWindowed maps factor in [0,1] to a continuous index over series and
// returns either a plain linear interpolation (window <= 0.5) or a
// Gaussian-weighted mean over a neighborhood of the computed index
// (window > 0.5), per spec.md §4.3. window is interpreted as a fraction of
// len(series) when <= 1, and as an absolute sample count otherwise.
func SampleWindowed(series []float64, factor float64, window float64) float64 {
	n := len(series)
	if n == 0 {
		return 0
	}
	if n == 1 {
		return series[0]
	}

	if factor < 0 {
		factor = 0
	}
	if factor > 1 {
		factor = 1
	}
	pos := factor * float64(n-1)

	if window <= 0.5 {
		return linearSample(series, pos)
	}

	absWindow := window
	if window <= 1 {
		absWindow = window * float64(n)
	}

	stddev := math.Max(absWindow/2, 1) / 3
	radius := int(math.Ceil(absWindow / 2))

	lo := int(math.Floor(pos)) - radius
	hi := int(math.Ceil(pos)) + radius
	if lo < 0 {
		lo = 0
	}
	if hi > n-1 {
		hi = n - 1
	}

	var weightedSum, totalWeight float64
	for i := lo; i <= hi; i++ {
		d := float64(i) - pos
		w := math.Exp(-(d * d) / (2 * stddev * stddev))
		weightedSum += w * series[i]
		totalWeight += w
	}
	if totalWeight == 0 {
		return 0
	}
	return weightedSum / totalWeight
}

func linearSample(series []float64, pos float64) float64 {
	n := len(series)
	lo := int(math.Floor(pos))
	if lo < 0 {
		lo = 0
	}
	if lo >= n-1 {
		return series[n-1]
	}
	hi := lo + 1
	u := pos - float64(lo)
	return series[lo] + (series[hi]-series[lo])*u
}

// SkipsDisjointGroups reports whether an effect on a track using mode and
// factor may be safely skipped when the effect's groups and the fixture's
// groups are disjoint, without changing the blend result (spec.md §9 Open
// Questions). Add and Subtract always leave the accumulator unchanged for a
// skipped (factor-0-equivalent) contribution. Mix only shares that identity
// at factor 0; at any other factor it pulls the accumulator toward the
// contribution, so skipping would diverge from evaluating it. Multiply's
// identity is 1, so skipping would incorrectly zero it out.
func SkipsDisjointGroups(mode Mode, factor float64) bool {
	switch mode {
	case Add, Subtract:
		return true
	case Mix:
		return factor == 0
	default: // Multiply
		return false
	}
}
