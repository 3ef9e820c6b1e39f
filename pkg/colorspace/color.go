// Package colorspace defines the linear-RGBA Color type effects and
// fixtures exchange, and the color-specific blend kernels of spec.md §4.3.
package colorspace

import "github.com/lucasb-eyer/go-colorful"

// Color is a linear-RGB color with separate alpha. go-colorful's Color
// already stores R/G/B as linear floats in [0,1], so no gamma conversion is
// needed anywhere in the evaluation pipeline; conversion only happens at
// the edges (e.g. when a transport wants sRGB255 bytes).
type Color struct {
	colorful.Color
	A float64
}

// New constructs a linear-RGBA color.
func New(r, g, b, a float64) Color {
	return Color{Color: colorful.Color{R: r, G: g, B: b}, A: a}
}

// Black, White and None (fully transparent black) are the constants used
// throughout the effect catalog and evaluator defaults.
var (
	Black = New(0, 0, 0, 1)
	White = New(1, 1, 1, 1)
	None  = New(0, 0, 0, 0)
)

// Clamp clamps every channel to [0,1]. Clamping is deferred to the final
// output stage per spec.md §4.3, so intermediate blends never call this.
func (c Color) Clamp() Color {
	return Color{
		Color: colorful.Color{R: clamp01(c.R), G: clamp01(c.G), B: clamp01(c.B)},
		A:     clamp01(c.A),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func lerp(a, b, u float64) float64 {
	return a + (b-a)*u
}

// Mix implements spec.md's Mix operator: a + (b-a)*factor, per channel.
func Mix(a, b Color, factor float64) Color {
	return Color{
		Color: colorful.Color{
			R: lerp(a.R, b.R, factor),
			G: lerp(a.G, b.G, factor),
			B: lerp(a.B, b.B, factor),
		},
		A: lerp(a.A, b.A, factor),
	}
}

// Add implements spec.md's Add operator: a + b*factor, per channel.
func Add(a, b Color, factor float64) Color {
	return Color{
		Color: colorful.Color{
			R: a.R + b.R*factor,
			G: a.G + b.G*factor,
			B: a.B + b.B*factor,
		},
		A: a.A + b.A*factor,
	}
}

// Subtract implements spec.md's Subtract operator: a - b*factor, per channel.
func Subtract(a, b Color, factor float64) Color {
	return Color{
		Color: colorful.Color{
			R: a.R - b.R*factor,
			G: a.G - b.G*factor,
			B: a.B - b.B*factor,
		},
		A: a.A - b.A*factor,
	}
}

// Multiply implements spec.md's Multiply operator: lerp(a, a*b, factor), per
// channel.
func Multiply(a, b Color, factor float64) Color {
	return Color{
		Color: colorful.Color{
			R: lerp(a.R, a.R*b.R, factor),
			G: lerp(a.G, a.G*b.G, factor),
			B: lerp(a.B, a.B*b.B, factor),
		},
		A: lerp(a.A, a.A*b.A, factor),
	}
}

// Stop is one entry in an ordered (time, color) band table, used by
// InterpolateBands (spec.md §4.3) for frequency-cascade-style color ramps.
type Stop struct {
	T     float64
	Color Color
}

// InterpolateBands finds the band stops surrounding value and linearly
// mixes between them; values outside the range clamp to the nearest
// endpoint color. bands must be ordered by T ascending and non-empty.
func InterpolateBands(bands []Stop, value float64) Color {
	if len(bands) == 0 {
		return None
	}
	if value <= bands[0].T {
		return bands[0].Color
	}
	last := bands[len(bands)-1]
	if value >= last.T {
		return last.Color
	}

	for i := 1; i < len(bands); i++ {
		if value <= bands[i].T {
			prev := bands[i-1]
			span := bands[i].T - prev.T
			u := 0.0
			if span > 0 {
				u = (value - prev.T) / span
			}
			return Mix(prev.Color, bands[i].Color, u)
		}
	}
	return last.Color
}
