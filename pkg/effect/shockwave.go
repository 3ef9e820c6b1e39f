package effect

import (
	"github.com/dougsko/lumenshow/pkg/colorspace"
	"github.com/dougsko/lumenshow/pkg/keyframe"
	"github.com/dougsko/lumenshow/pkg/spatial"
)

// Shockwave is a ColorEffect radiating an expanding ring from center
// (spec.md §4.7).
type Shockwave struct {
	Color  colorspace.Color
	Center spatial.Vec3
	Radius float64
	Flat   float64
	Head   float64
	Tail   float64
}

// NewShockwave constructs a Shockwave with its initial field values.
func NewShockwave(color colorspace.Color, center spatial.Vec3, radius, flat, head, tail float64) *Shockwave {
	return &Shockwave{Color: color, Center: center, Radius: radius, Flat: flat, Head: head, Tail: tail}
}

func (s *Shockwave) Update(keyframes *keyframe.Keyframes, t float64, _ AudioContext) error {
	var err error
	if s.Color, err = keyframes.Color("color", t, s.Color); err != nil {
		return err
	}
	if s.Center, err = keyframes.Vec3("center", t, s.Center); err != nil {
		return err
	}
	if s.Radius, err = keyframes.Scalar("radius", t, s.Radius); err != nil {
		return err
	}
	if s.Flat, err = keyframes.Scalar("flat", t, s.Flat); err != nil {
		return err
	}
	if s.Head, err = keyframes.Scalar("head", t, s.Head); err != nil {
		return err
	}
	if s.Tail, err = keyframes.Scalar("tail", t, s.Tail); err != nil {
		return err
	}
	return nil
}

func (s *Shockwave) Sample(pos spatial.Vec3) Output {
	d := spatial.Distance(pos, s.Center)
	return Output{Kind: OutputColor, Color: shockwaveColor(s.Color, d, s.Radius, s.Flat, s.Head, s.Tail)}
}

func (s *Shockwave) Clone() Variant {
	clone := *s
	return &clone
}

// shockwaveColor implements spec.md §4.7's envelope formula exactly.
func shockwaveColor(color colorspace.Color, d, radius, flat, head, tail float64) colorspace.Color {
	half := flat / 2
	influence := influenceEnvelope(d, radius, half, head, tail)
	return colorspace.Mix(color, colorspace.Black, 1-influence)
}

func influenceEnvelope(d, radius, half, head, tail float64) float64 {
	switch {
	case absf(d-radius) < half:
		return 1
	case d >= radius+half && d < radius+half+head:
		return (radius + half + head - d) / head
	case d > radius-half-tail && d < radius-half:
		return (d - (radius - half - tail)) / tail
	default:
		return 0
	}
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
