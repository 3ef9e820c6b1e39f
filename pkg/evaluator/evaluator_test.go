package evaluator

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dougsko/lumenshow/pkg/active"
	"github.com/dougsko/lumenshow/pkg/blend"
	"github.com/dougsko/lumenshow/pkg/colorspace"
	"github.com/dougsko/lumenshow/pkg/effect"
	"github.com/dougsko/lumenshow/pkg/fixture"
	"github.com/dougsko/lumenshow/pkg/spatial"
)

func TestEvalNilSequenceReturnsDefaults(t *testing.T) {
	fixtures := []fixture.Info{{InputType: fixture.Color}}
	out, err := Eval(nil, fixtures)
	require.NoError(t, err)
	require.Equal(t, colorspace.None, out[0].Color)
}

func TestEvalSingleEffectTrackFillsColor(t *testing.T) {
	fixtures := []fixture.Info{{InputType: fixture.Color, Position: spatial.Zero}}

	seq := &active.Sequence{
		Children: []active.Track{
			{
				Kind:     active.KindEffectTrack,
				Blend:    blend.Mix,
				Factor:   1,
				LiveInfo: effect.NewFill(colorspace.White),
			},
		},
	}

	out, err := Eval(seq, fixtures)
	require.NoError(t, err)
	require.InDelta(t, 1, out[0].Color.R, 1e-9)
	require.InDelta(t, 1, out[0].Color.G, 1e-9)
	require.InDelta(t, 1, out[0].Color.B, 1e-9)
}

func TestEvalMixAppliesToDisjointGroupsAtNonzeroFactor(t *testing.T) {
	// Mix's identity only holds at factor 0 (spec.md §4.9): the disjoint-group
	// skip is an optimization that must never change the result, so at factor
	// 1 every fixture is mixed toward the effect regardless of groups.
	fixtures := []fixture.Info{
		{InputType: fixture.Color, Groups: map[uint32]struct{}{1: {}}},
		{InputType: fixture.Color, Groups: map[uint32]struct{}{2: {}}},
	}

	seq := &active.Sequence{
		Children: []active.Track{
			{
				Kind:     active.KindEffectTrack,
				Blend:    blend.Mix,
				Factor:   1,
				LiveInfo: effect.NewFill(colorspace.White),
				Groups:   map[uint32]struct{}{1: {}},
			},
		},
	}

	out, err := Eval(seq, fixtures)
	require.NoError(t, err)
	require.InDelta(t, 1, out[0].Color.R, 1e-9) // group 1: matched, mixed to white
	require.InDelta(t, 1, out[1].Color.R, 1e-9) // group 2: disjoint, but Mix at factor 1 still applies
}

func TestEvalSkipsDisjointGroupsForMixAtZeroFactor(t *testing.T) {
	// At factor 0, Mix's identity holds, so the disjoint-group skip is safe
	// and the fixture is left at its default.
	fixtures := []fixture.Info{
		{InputType: fixture.Color, Groups: map[uint32]struct{}{1: {}}},
		{InputType: fixture.Color, Groups: map[uint32]struct{}{2: {}}},
	}

	seq := &active.Sequence{
		Children: []active.Track{
			{
				Kind:     active.KindEffectTrack,
				Blend:    blend.Mix,
				Factor:   0,
				LiveInfo: effect.NewFill(colorspace.White),
				Groups:   map[uint32]struct{}{1: {}},
			},
		},
	}

	out, err := Eval(seq, fixtures)
	require.NoError(t, err)
	require.InDelta(t, 0, out[0].Color.R, 1e-9) // group 1: matched, but factor 0 leaves it unchanged
	require.InDelta(t, 0, out[1].Color.R, 1e-9) // group 2: disjoint, skipped, stays default
}

func TestEvalNestedSequenceTrack(t *testing.T) {
	fixtures := []fixture.Info{{InputType: fixture.Color, Position: spatial.Zero}}

	inner := &active.Sequence{
		Children: []active.Track{
			{Kind: active.KindEffectTrack, Blend: blend.Mix, Factor: 1, LiveInfo: effect.NewFill(colorspace.White)},
		},
	}
	outer := &active.Sequence{
		Children: []active.Track{
			{Kind: active.KindSequenceTrack, Blend: blend.Mix, Factor: 1, Child: inner},
		},
	}

	out, err := Eval(outer, fixtures)
	require.NoError(t, err)
	require.InDelta(t, 1, out[0].Color.R, 1e-9)
}

func TestEvalSequenceTrackWithNoChildSkips(t *testing.T) {
	fixtures := []fixture.Info{{InputType: fixture.Color, Position: spatial.Zero}}
	seq := &active.Sequence{
		Children: []active.Track{
			{Kind: active.KindSequenceTrack, Blend: blend.Mix, Factor: 1, Child: nil},
		},
	}

	out, err := Eval(seq, fixtures)
	require.NoError(t, err)
	require.Equal(t, colorspace.None, out[0].Color)
}
