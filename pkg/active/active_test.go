package active

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dougsko/lumenshow/pkg/blend"
	"github.com/dougsko/lumenshow/pkg/colorspace"
	"github.com/dougsko/lumenshow/pkg/effect"
	"github.com/dougsko/lumenshow/pkg/handle"
	"github.com/dougsko/lumenshow/pkg/keyframe"
	"github.com/dougsko/lumenshow/pkg/timeline"
)

func newStores() (Stores, *handle.Store[timeline.Sequence], *handle.Store[effect.Effect]) {
	seqStore := handle.NewStore[timeline.Sequence]()
	effStore := handle.NewStore[effect.Effect]()
	return Stores{Sequences: seqStore, Effects: effStore}, seqStore, effStore
}

func TestUpdateClearsTreeWhenPrimaryAbsent(t *testing.T) {
	stores, _, _ := newStores()
	tr := &Tree{}

	err := tr.Update(stores, timeline.SequenceHandle{}, 0, effect.AudioContext{})
	require.NoError(t, err)
	require.Nil(t, tr.Root)
}

func TestUpdateLazilyCreatesEffectTrack(t *testing.T) {
	stores, seqStore, effStore := newStores()

	fillHandle := effStore.Add(effect.Effect{
		Info:      effect.NewFill(colorspace.Black),
		Keyframes: keyframe.NewKeyframes(),
	})
	seqHandle := seqStore.Add(timeline.Sequence{
		Name:   "main",
		Length: 10,
		Tracks: []timeline.Track{
			{
				Info:     timeline.TrackInfo{BlendMode: blend.Mix, Opacity: 1},
				Contents: timeline.TrackContents{Kind: timeline.KindEffectTrack, Effect: fillHandle},
			},
		},
	})

	tr := &Tree{}
	require.NoError(t, tr.Update(stores, seqHandle, 0, effect.AudioContext{}))
	require.NotNil(t, tr.Root)
	require.Len(t, tr.Root.Children, 1)
	require.NotNil(t, tr.Root.Children[0].LiveInfo)
}

func TestUpdateSwapsChildOnClipBoundary(t *testing.T) {
	stores, seqStore, effStore := newStores()

	fillA := effStore.Add(effect.Effect{Info: effect.NewFill(colorspace.Black), Keyframes: keyframe.NewKeyframes()})
	fillB := effStore.Add(effect.Effect{Info: effect.NewFill(colorspace.White), Keyframes: keyframe.NewKeyframes()})

	childA := seqStore.Add(timeline.Sequence{
		Name: "childA", Length: 5,
		Tracks: []timeline.Track{{
			Info:     timeline.TrackInfo{BlendMode: blend.Mix, Opacity: 1},
			Contents: timeline.TrackContents{Kind: timeline.KindEffectTrack, Effect: fillA},
		}},
	})
	childB := seqStore.Add(timeline.Sequence{
		Name: "childB", Length: 5,
		Tracks: []timeline.Track{{
			Info:     timeline.TrackInfo{BlendMode: blend.Mix, Opacity: 1},
			Contents: timeline.TrackContents{Kind: timeline.KindEffectTrack, Effect: fillB},
		}},
	})

	rootHandle := seqStore.Add(timeline.Sequence{
		Name: "root", Length: 10,
		Tracks: []timeline.Track{{
			Info: timeline.TrackInfo{BlendMode: blend.Mix, Opacity: 1},
			Contents: timeline.TrackContents{
				Kind: timeline.KindSequenceTrack,
				Clips: []timeline.Clip{
					{Sequence: childA, TimeSegment: timeline.TimeSegment{StartTime: 0, Duration: 5}},
					{Sequence: childB, TimeSegment: timeline.TimeSegment{StartTime: 5, Duration: 5}},
				},
			},
		}},
	})

	tr := &Tree{}
	require.NoError(t, tr.Update(stores, rootHandle, 1, effect.AudioContext{}))
	firstChild := tr.Root.Children[0].Child
	require.NotNil(t, firstChild)
	require.Equal(t, childA, firstChild.Original)

	require.NoError(t, tr.Update(stores, rootHandle, 6, effect.AudioContext{}))
	secondChild := tr.Root.Children[0].Child
	require.NotNil(t, secondChild)
	require.Equal(t, childB, secondChild.Original)
	require.NotSame(t, firstChild, secondChild)
}

func TestUpdateNoCurrentClipClearsChild(t *testing.T) {
	stores, seqStore, effStore := newStores()

	fillA := effStore.Add(effect.Effect{Info: effect.NewFill(colorspace.Black), Keyframes: keyframe.NewKeyframes()})
	childA := seqStore.Add(timeline.Sequence{
		Name: "childA", Length: 2,
		Tracks: []timeline.Track{{
			Info:     timeline.TrackInfo{BlendMode: blend.Mix, Opacity: 1},
			Contents: timeline.TrackContents{Kind: timeline.KindEffectTrack, Effect: fillA},
		}},
	})
	rootHandle := seqStore.Add(timeline.Sequence{
		Name: "root", Length: 10,
		Tracks: []timeline.Track{{
			Info: timeline.TrackInfo{BlendMode: blend.Mix, Opacity: 1},
			Contents: timeline.TrackContents{
				Kind:  timeline.KindSequenceTrack,
				Clips: []timeline.Clip{{Sequence: childA, TimeSegment: timeline.TimeSegment{StartTime: 0, Duration: 2}}},
			},
		}},
	})

	tr := &Tree{}
	require.NoError(t, tr.Update(stores, rootHandle, 1, effect.AudioContext{}))
	require.NotNil(t, tr.Root.Children[0].Child)

	require.NoError(t, tr.Update(stores, rootHandle, 5, effect.AudioContext{}))
	require.Nil(t, tr.Root.Children[0].Child)
}
