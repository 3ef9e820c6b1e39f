// Package fixture defines fixture inputs/outputs and the evaluator's merge
// rule and output-application step (spec.md §3, §4.3, §4.11).
package fixture

import (
	"fmt"

	"github.com/dougsko/lumenshow/pkg/blend"
	"github.com/dougsko/lumenshow/pkg/colorspace"
	"github.com/dougsko/lumenshow/pkg/spatial"
)

// InputType selects the shape of value a fixture expects.
type InputType int

const (
	Color InputType = iota
	Vec3
	Combined
)

// Info is the external, evaluator-input description of one fixture
// (spec.md §3 "Fixture (external, input to evaluator)").
type Info struct {
	Name      string
	Groups    map[uint32]struct{}
	InputType InputType
	Position  spatial.Vec3
}

// InGroups reports whether any of groups is present in info.Groups.
func (info Info) InGroups(groups map[uint32]struct{}) bool {
	for g := range groups {
		if _, ok := info.Groups[g]; ok {
			return true
		}
	}
	return false
}

// Input is the evaluator's typed per-fixture output value.
type Input struct {
	Type  InputType
	Color colorspace.Color
	Vec3  spatial.Vec3
	// HasColor/HasVec3 track which sub-fields of a Combined input have been
	// populated, so merging a Color-only or Vec3-only peer only ever
	// touches its matching sub-field.
	HasColor bool
	HasVec3  bool
}

// DefaultInput returns the zero-value FixtureInput matching info's shape:
// Color::NONE, Vec3::ZERO, or both for Combined.
func DefaultInput(info Info) Input {
	switch info.InputType {
	case Vec3:
		return Input{Type: Vec3, Vec3: spatial.Zero, HasVec3: true}
	case Combined:
		return Input{Type: Combined, Color: colorspace.None, Vec3: spatial.Zero, HasColor: true, HasVec3: true}
	default:
		return Input{Type: Color, Color: colorspace.None, HasColor: true}
	}
}

// ErrTypeMismatch is the fatal authoring error of spec.md §7: a Color-vs-Vec3
// merge was attempted across incompatible inner variants.
type ErrTypeMismatch struct {
	Target InputType
	Peer   InputType
}

func (e *ErrTypeMismatch) Error() string {
	return fmt.Sprintf("fixture: cannot merge %v input into %v target", e.Peer, e.Target)
}

// Merge blends peer into in using mode and factor, per spec.md §4.3's
// FixtureInput merge rule: a Combined target absorbs a Color or Vec3 peer
// into its matching sub-field only; a same-kind merge blends directly;
// mismatched Color-vs-Vec3 is fatal.
func (in Input) Merge(peer Input, factor float64, mode blend.Mode) (Input, error) {
	switch in.Type {
	case Color:
		if peer.Type != Color {
			return in, &ErrTypeMismatch{Target: in.Type, Peer: peer.Type}
		}
		return Input{Type: Color, Color: blendColor(in.Color, peer.Color, factor, mode), HasColor: true}, nil

	case Vec3:
		if peer.Type != Vec3 {
			return in, &ErrTypeMismatch{Target: in.Type, Peer: peer.Type}
		}
		return Input{Type: Vec3, Vec3: blendVec3(in.Vec3, peer.Vec3, factor, mode), HasVec3: true}, nil

	case Combined:
		out := in
		switch peer.Type {
		case Color:
			out.Color = blendColor(in.Color, peer.Color, factor, mode)
			out.HasColor = true
		case Vec3:
			out.Vec3 = blendVec3(in.Vec3, peer.Vec3, factor, mode)
			out.HasVec3 = true
		case Combined:
			if peer.HasColor {
				out.Color = blendColor(in.Color, peer.Color, factor, mode)
				out.HasColor = true
			}
			if peer.HasVec3 {
				out.Vec3 = blendVec3(in.Vec3, peer.Vec3, factor, mode)
				out.HasVec3 = true
			}
		}
		return out, nil
	}
	return in, &ErrTypeMismatch{Target: in.Type, Peer: peer.Type}
}

func blendColor(a, b colorspace.Color, factor float64, mode blend.Mode) colorspace.Color {
	switch mode {
	case blend.Add:
		return colorspace.Add(a, b, factor)
	case blend.Subtract:
		return colorspace.Subtract(a, b, factor)
	case blend.Multiply:
		return colorspace.Multiply(a, b, factor)
	default:
		return colorspace.Mix(a, b, factor)
	}
}

func blendVec3(a, b spatial.Vec3, factor float64, mode blend.Mode) spatial.Vec3 {
	return spatial.New(
		blend.Scalar(mode, a.X, b.X, factor),
		blend.Scalar(mode, a.Y, b.Y, factor),
		blend.Scalar(mode, a.Z, b.Z, factor),
	)
}

// State is the mutable, downstream-facing state a real fixture carries.
// Output Application (spec.md §4.11) writes onto it; transports (renderer,
// DMX) read it.
type State struct {
	Color    colorspace.Color
	Position spatial.Vec3
}

// Apply writes the evaluator's Input onto state, per spec.md §4.11: a Color
// input is premultiplied by alpha toward black using Mix before being
// stored; a Vec3 input sets the positional channel; Combined applies both.
func Apply(state *State, in Input) {
	if in.HasColor {
		state.Color = colorspace.Mix(colorspace.Black, in.Color, in.Color.A).Clamp()
	}
	if in.HasVec3 {
		state.Position = in.Vec3
	}
}
