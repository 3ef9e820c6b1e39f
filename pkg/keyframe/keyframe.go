// Package keyframe implements piecewise interpolation of scalar, color and
// vec3 values over time (spec.md §4.2).
package keyframe

import (
	"fmt"
	"sort"

	"github.com/dougsko/lumenshow/pkg/colorspace"
	"github.com/dougsko/lumenshow/pkg/spatial"
)

// Interpolation selects how two keyframes on either side of a sample time
// are blended.
type Interpolation int

const (
	Linear Interpolation = iota
	Constant
)

// Kind tags which of the three value families a Value carries.
type Kind int

const (
	KindScalar Kind = iota
	KindColor
	KindVec3
)

// Value is a tagged union of the three keyframeable value types. Exactly
// one of the Kind-matching fields is meaningful.
type Value struct {
	Kind   Kind
	Scalar float64
	Color  colorspace.Color
	Vec3   spatial.Vec3
}

func ScalarValue(v float64) Value            { return Value{Kind: KindScalar, Scalar: v} }
func ColorValue(v colorspace.Color) Value     { return Value{Kind: KindColor, Color: v} }
func Vec3Value(v spatial.Vec3) Value          { return Value{Kind: KindVec3, Vec3: v} }

// Keyframe is one authored sample on a channel.
type Keyframe struct {
	Time          float64
	Channel       string
	Value         Value
	Interpolation Interpolation
}

// Keyframes is an ordered-by-time collection of Keyframe, grouped
// conceptually by channel key.
type Keyframes struct {
	entries []Keyframe
}

// NewKeyframes builds a Keyframes collection, sorting entries by time.
func NewKeyframes(entries ...Keyframe) *Keyframes {
	k := &Keyframes{entries: append([]Keyframe(nil), entries...)}
	sort.SliceStable(k.entries, func(i, j int) bool {
		return k.entries[i].Time < k.entries[j].Time
	})
	return k
}

// Add appends a keyframe, keeping entries time-sorted.
func (k *Keyframes) Add(kf Keyframe) {
	idx := sort.Search(len(k.entries), func(i int) bool { return k.entries[i].Time > kf.Time })
	k.entries = append(k.entries, Keyframe{})
	copy(k.entries[idx+1:], k.entries[idx:])
	k.entries[idx] = kf
}

// ErrTypeMismatch is the fatal authoring error spec.md §7 describes: a
// channel is evaluated against keyframes of an incompatible Value Kind.
type ErrTypeMismatch struct {
	Channel string
	Want    Kind
	Got     Kind
}

func (e *ErrTypeMismatch) Error() string {
	return fmt.Sprintf("keyframe: channel %q mixes value kinds (want %d, got %d)", e.Channel, e.Want, e.Got)
}

// Scalar evaluates channel at time t, given a default for when no keyframe
// on channel exists on either side of t.
func (k *Keyframes) Scalar(channel string, t float64, def float64) (float64, error) {
	v, err := k.eval(channel, t, Value{Kind: KindScalar, Scalar: def})
	if err != nil {
		return 0, err
	}
	if v.Kind != KindScalar {
		return 0, &ErrTypeMismatch{Channel: channel, Want: KindScalar, Got: v.Kind}
	}
	return v.Scalar, nil
}

// Color evaluates channel at time t, given a default.
func (k *Keyframes) Color(channel string, t float64, def colorspace.Color) (colorspace.Color, error) {
	v, err := k.eval(channel, t, Value{Kind: KindColor, Color: def})
	if err != nil {
		return colorspace.Color{}, err
	}
	if v.Kind != KindColor {
		return colorspace.Color{}, &ErrTypeMismatch{Channel: channel, Want: KindColor, Got: v.Kind}
	}
	return v.Color, nil
}

// Vec3 evaluates channel at time t, given a default.
func (k *Keyframes) Vec3(channel string, t float64, def spatial.Vec3) (spatial.Vec3, error) {
	v, err := k.eval(channel, t, Value{Kind: KindVec3, Vec3: def})
	if err != nil {
		return spatial.Vec3{}, err
	}
	if v.Kind != KindVec3 {
		return spatial.Vec3{}, &ErrTypeMismatch{Channel: channel, Want: KindVec3, Got: v.Kind}
	}
	return v.Vec3, nil
}

// eval implements the last-before/first-after scan and interpolation rule
// common to Scalar/Color/Vec3: neither -> default; start only -> start;
// end only -> end; both -> interpolate by end's Interpolation.
func (k *Keyframes) eval(channel string, t float64, def Value) (Value, error) {
	var start, end *Keyframe

	for i := range k.entries {
		kf := &k.entries[i]
		if kf.Channel != channel {
			continue
		}
		if kf.Value.Kind != def.Kind {
			return Value{}, &ErrTypeMismatch{Channel: channel, Want: def.Kind, Got: kf.Value.Kind}
		}
		if kf.Time <= t {
			if start == nil || kf.Time > start.Time {
				start = kf
			}
		}
		if kf.Time > t {
			if end == nil || kf.Time < end.Time {
				end = kf
			}
		}
	}

	switch {
	case start == nil && end == nil:
		return def, nil
	case start != nil && end == nil:
		return start.Value, nil
	case start == nil && end != nil:
		return end.Value, nil
	default:
		return interpolate(start.Value, end.Value, start.Time, end.Time, t, end.Interpolation), nil
	}
}

func interpolate(start, end Value, startT, endT, t float64, interp Interpolation) Value {
	if interp == Constant {
		return start
	}

	span := endT - startT
	u := 0.0
	if span > 0 {
		u = (t - startT) / span
	}

	switch start.Kind {
	case KindScalar:
		return Value{Kind: KindScalar, Scalar: start.Scalar + (end.Scalar-start.Scalar)*u}
	case KindColor:
		return Value{Kind: KindColor, Color: colorspace.Mix(start.Color, end.Color, u)}
	case KindVec3:
		return Value{Kind: KindVec3, Vec3: spatial.Lerp(start.Vec3, end.Vec3, u)}
	default:
		return start
	}
}
