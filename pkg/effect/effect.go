// Package effect implements the effect catalog (spec.md §4.7): color- and
// vec3-valued animated functions of fixture position, optionally reacting
// to the live audio spectrum.
package effect

import (
	"github.com/dougsko/lumenshow/pkg/colorspace"
	"github.com/dougsko/lumenshow/pkg/keyframe"
	"github.com/dougsko/lumenshow/pkg/spatial"
	"github.com/dougsko/lumenshow/pkg/spectrum"
)

// AudioContext is what update() consumes from the audio pipeline: the FFT
// frames completed since the last tick (spec.md §4.7/§4.9).
type AudioContext struct {
	NewFrames []*spectrum.Frame
}

// OutputKind tags whether a Variant's Sample produced a color or a vec3.
type OutputKind int

const (
	OutputColor OutputKind = iota
	OutputVec3
)

// Output is a variant's per-fixture sample result.
type Output struct {
	Kind  OutputKind
	Color colorspace.Color
	Vec3  spatial.Vec3
}

// Variant is the capability set every effect implements (spec.md §4.7):
// update its animated fields from keyframes, then sample a pure function of
// position. Dispatch is by interface (vtable) rather than by tag, one of
// the two forms spec.md §9 allows.
type Variant interface {
	// Update refreshes the variant's animated fields from keyframes at
	// localTime; audio-reactive variants also consume audio.NewFrames. An
	// error here is always a fatal authoring bug (spec.md §7
	// TypeMismatch) — callers are expected to fail loudly rather than
	// recover from it.
	Update(keyframes *keyframe.Keyframes, localTime float64, audio AudioContext) error

	// Sample is a pure function of position given the variant's current
	// (already-updated) fields.
	Sample(position spatial.Vec3) Output

	// Clone returns an independent copy, used when the active tree mirrors
	// an authored effect's current EffectInfo (spec.md §4.8 step 2).
	Clone() Variant
}

// Effect is an authored timeline entry: a variant plus the keyframes that
// drive it and the groups it belongs to.
type Effect struct {
	Groups    map[uint32]struct{}
	Info      Variant
	Keyframes *keyframe.Keyframes
}
