// Package active maintains the lazily-built, incrementally-updated mirror
// of the currently-active path through the authored timeline (spec.md
// §4.8). Rebuilding from scratch every tick would walk the whole
// authored tree; this package only touches nodes the current tick's
// primary time actually reaches.
package active

import (
	"github.com/dougsko/lumenshow/pkg/blend"
	"github.com/dougsko/lumenshow/pkg/effect"
	"github.com/dougsko/lumenshow/pkg/handle"
	"github.com/dougsko/lumenshow/pkg/timeline"
)

// Kind tags a Track's role, mirroring timeline.TrackKind.
type Kind int

const (
	KindEffectTrack Kind = iota
	KindSequenceTrack
	KindTriggerTrack
)

// Track is the active mirror of one authored timeline.Track.
type Track struct {
	Kind      Kind
	Blend     blend.Mode
	Factor    float64
	LocalTime float64

	// Effect track state.
	Original timeline.EffectHandle
	Groups   map[uint32]struct{}
	LiveInfo effect.Variant

	// Sequence track state.
	hasChild     bool
	Child        *Sequence
	childSegment timeline.TimeSegment

	// Trigger track state (reserved).
	Trigger timeline.SequenceHandle
}

// Sequence is the active mirror of one authored timeline.Sequence.
type Sequence struct {
	LocalTime float64
	Original  timeline.SequenceHandle
	Children  []Track
}

// Tree owns the root of the active mirror, rooted at the engine's primary
// sequence.
type Tree struct {
	Root *Sequence
}

// Stores bundles the two handle stores the active tree reads from each
// tick.
type Stores struct {
	Sequences *handle.Store[timeline.Sequence]
	Effects   *handle.Store[effect.Effect]
}

// Update advances the tree to localTime against primary. If primary is
// absent from stores, the tree is cleared.
func (tr *Tree) Update(stores Stores, primary timeline.SequenceHandle, localTime float64, audio effect.AudioContext) error {
	seq, ok := stores.Sequences.Get(primary)
	if !ok {
		tr.Root = nil
		return nil
	}

	if tr.Root == nil || tr.Root.Original != primary {
		tr.Root = &Sequence{Original: primary}
	}
	return updateSequence(tr.Root, seq, stores, localTime, audio)
}

func updateSequence(active *Sequence, authored *timeline.Sequence, stores Stores, localTime float64, audio effect.AudioContext) error {
	active.LocalTime = localTime

	if active.Children == nil {
		active.Children = make([]Track, len(authored.Tracks))
		for i, t := range authored.Tracks {
			active.Children[i] = newTrack(t)
		}
	}

	for i := range active.Children {
		if err := updateTrack(&active.Children[i], &authored.Tracks[i], stores, localTime, audio); err != nil {
			return err
		}
	}
	return nil
}

func newTrack(t timeline.Track) Track {
	tr := Track{
		Blend:  t.Info.BlendMode,
		Factor: float64(t.Info.Opacity),
	}
	switch t.Contents.Kind {
	case timeline.KindEffectTrack:
		tr.Kind = KindEffectTrack
		tr.Original = t.Contents.Effect
	case timeline.KindSequenceTrack:
		tr.Kind = KindSequenceTrack
	case timeline.KindTriggerTrack:
		tr.Kind = KindTriggerTrack
		tr.Trigger = t.Contents.Trigger
	}
	return tr
}

func updateTrack(active *Track, authored *timeline.Track, stores Stores, localTime float64, audio effect.AudioContext) error {
	active.LocalTime = localTime

	switch active.Kind {
	case KindEffectTrack:
		return updateEffectTrack(active, stores, localTime, audio)
	case KindSequenceTrack:
		return updateSequenceTrack(active, authored, stores, localTime, audio)
	default: // KindTriggerTrack: reserved, no state yet.
		return nil
	}
}

func updateEffectTrack(active *Track, stores Stores, localTime float64, audio effect.AudioContext) error {
	eff, ok := stores.Effects.Get(active.Original)
	if !ok {
		active.LiveInfo = nil
		return nil
	}
	if active.LiveInfo == nil {
		active.LiveInfo = eff.Info.Clone()
		active.Groups = eff.Groups
	}
	return active.LiveInfo.Update(eff.Keyframes, localTime, audio)
}

func updateSequenceTrack(active *Track, authored *timeline.Track, stores Stores, localTime float64, audio effect.AudioContext) error {
	clip, ok := timeline.FindCurrent(authored.Contents.Clips, localTime)
	if !ok {
		active.hasChild = false
		active.Child = nil
		return nil
	}

	if !active.hasChild || active.childSegment != clip.TimeSegment {
		active.Child = &Sequence{Original: clip.Sequence}
		active.childSegment = clip.TimeSegment
		active.hasChild = true
	}

	childAuthored, ok := stores.Sequences.Get(clip.Sequence)
	if !ok {
		active.hasChild = false
		active.Child = nil
		return nil
	}

	childLocalTime := localTime - clip.TimeSegment.StartTime + clip.TimeSegment.StartOffset
	return updateSequence(active.Child, childAuthored, stores, childLocalTime, audio)
}
