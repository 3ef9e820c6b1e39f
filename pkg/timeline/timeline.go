// Package timeline is the pure-data authored show: sequences, tracks,
// clips and effects (spec.md §3, §4.6). It owns no runtime behavior beyond
// the clip-lookup helper; authoring tooling keeps clips sorted and
// non-overlapping per track.
package timeline

import (
	"github.com/dougsko/lumenshow/pkg/blend"
	"github.com/dougsko/lumenshow/pkg/handle"
)

// EffectHandle and SequenceHandle are handle.Handle aliases scoped by the
// payload type they reference, to keep call sites self-documenting.
type EffectHandle = handle.Handle
type SequenceHandle = handle.Handle

// TimeSegment places a clip on its parent track.
type TimeSegment struct {
	StartTime   float64
	Duration    float64
	StartOffset float64
}

// Contains reports whether t falls in [StartTime, StartTime+Duration).
func (s TimeSegment) Contains(t float64) bool {
	return t >= s.StartTime && t < s.StartTime+s.Duration
}

// Clip schedules a sub-sequence's occurrence on a SequenceTrack.
type Clip struct {
	Sequence    SequenceHandle
	TimeSegment TimeSegment
}

// FindCurrent linear-scans clips for the one whose TimeSegment contains t,
// per spec.md §4.6. Authoring tooling is responsible for keeping clips
// sorted and non-overlapping; this never returns more than one match under
// that invariant.
func FindCurrent(clips []Clip, t float64) (Clip, bool) {
	for _, c := range clips {
		if c.TimeSegment.Contains(t) {
			return c, true
		}
	}
	return Clip{}, false
}

// TrackKind tags a Track's TrackContents union.
type TrackKind int

const (
	KindEffectTrack TrackKind = iota
	KindSequenceTrack
	KindTriggerTrack
)

// TrackContents is the tagged union of what a Track carries.
type TrackContents struct {
	Kind    TrackKind
	Effect  EffectHandle   // KindEffectTrack
	Clips   []Clip         // KindSequenceTrack
	Trigger SequenceHandle // KindTriggerTrack (reserved)
}

// TrackInfo carries a track's blend configuration.
type TrackInfo struct {
	BlendMode blend.Mode
	Opacity   float32
}

// Track is one layer within a Sequence.
type Track struct {
	Info     TrackInfo
	Contents TrackContents
}

// Sequence is a named, fixed-length collection of tracks.
type Sequence struct {
	Name    string
	Length  float64
	Tracks  []Track
}
