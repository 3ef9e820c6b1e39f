package effect

import (
	"github.com/dougsko/lumenshow/pkg/colorspace"
	"github.com/dougsko/lumenshow/pkg/keyframe"
	"github.com/dougsko/lumenshow/pkg/spatial"
)

// Fill is the simplest ColorEffect: a single flat, keyframed color,
// identical at every fixture position (spec.md §4.7).
type Fill struct {
	Color colorspace.Color
}

// NewFill constructs a Fill with an initial color, used before the first
// Update call (e.g. before any keyframes exist on the "color" channel).
func NewFill(color colorspace.Color) *Fill {
	return &Fill{Color: color}
}

func (f *Fill) Update(keyframes *keyframe.Keyframes, localTime float64, _ AudioContext) error {
	c, err := keyframes.Color("color", localTime, f.Color)
	if err != nil {
		return err
	}
	f.Color = c
	return nil
}

func (f *Fill) Sample(_ spatial.Vec3) Output {
	return Output{Kind: OutputColor, Color: f.Color}
}

func (f *Fill) Clone() Variant {
	clone := *f
	return &clone
}
