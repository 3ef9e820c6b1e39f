// Package evaluator walks the active tree and produces one fixture.Input
// per fixture, recursively blending each track's contribution into the
// running accumulator (spec.md §4.9).
package evaluator

import (
	"github.com/dougsko/lumenshow/pkg/active"
	"github.com/dougsko/lumenshow/pkg/blend"
	"github.com/dougsko/lumenshow/pkg/effect"
	"github.com/dougsko/lumenshow/pkg/fixture"
)

// Eval evaluates seq against fixtures, returning one fixture.Input per
// fixture in the same order.
func Eval(seq *active.Sequence, fixtures []fixture.Info) ([]fixture.Input, error) {
	out := make([]fixture.Input, len(fixtures))
	for i, f := range fixtures {
		out[i] = fixture.DefaultInput(f)
	}
	if seq == nil {
		return out, nil
	}
	return out, evalInto(out, seq, fixtures)
}

func evalInto(out []fixture.Input, seq *active.Sequence, fixtures []fixture.Info) error {
	for i := range seq.Children {
		track := &seq.Children[i]
		switch track.Kind {
		case active.KindEffectTrack:
			if err := mergeEffectTrack(out, track, fixtures); err != nil {
				return err
			}
		case active.KindSequenceTrack:
			if track.Child == nil {
				continue
			}
			contrib, err := Eval(track.Child, fixtures)
			if err != nil {
				return err
			}
			if err := mergeAll(out, contrib, track.Factor, track.Blend, nil, fixtures); err != nil {
				return err
			}
		default: // trigger track: reserved, nothing to contribute.
		}
	}
	return nil
}

func mergeEffectTrack(out []fixture.Input, track *active.Track, fixtures []fixture.Info) error {
	if track.LiveInfo == nil {
		return nil
	}

	contrib := make([]fixture.Input, len(fixtures))
	for i, f := range fixtures {
		contrib[i] = toFixtureInput(track.LiveInfo.Sample(f.Position))
	}
	return mergeAll(out, contrib, track.Factor, track.Blend, track.Groups, fixtures)
}

// mergeAll pairwise-merges contrib into out, skipping fixtures whose groups
// are disjoint from effectGroups when doing so preserves the blend mode's
// identity (spec.md §9's resolved group-filtering Open Question: safe for
// Add/Subtract and for Mix at factor 0, never safe for Multiply or for Mix
// at any other factor).
func mergeAll(out, contrib []fixture.Input, factor float64, mode blend.Mode, effectGroups map[uint32]struct{}, fixtures []fixture.Info) error {
	canSkip := blend.SkipsDisjointGroups(mode, factor) && len(effectGroups) > 0
	for i := range out {
		if canSkip && len(fixtures[i].Groups) > 0 && !fixtures[i].InGroups(effectGroups) {
			continue
		}
		merged, err := out[i].Merge(contrib[i], factor, mode)
		if err != nil {
			return err
		}
		out[i] = merged
	}
	return nil
}

func toFixtureInput(o effect.Output) fixture.Input {
	if o.Kind == effect.OutputVec3 {
		return fixture.Input{Type: fixture.Vec3, Vec3: o.Vec3, HasVec3: true}
	}
	return fixture.Input{Type: fixture.Color, Color: o.Color, HasColor: true}
}
