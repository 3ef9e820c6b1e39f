package keyframe

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dougsko/lumenshow/pkg/colorspace"
	"github.com/dougsko/lumenshow/pkg/spatial"
)

func TestScalarEndpoints(t *testing.T) {
	k := NewKeyframes(
		Keyframe{Time: 0, Channel: "intensity", Value: ScalarValue(0), Interpolation: Linear},
		Keyframe{Time: 2, Channel: "intensity", Value: ScalarValue(10), Interpolation: Linear},
	)

	t.Run("exactly at a keyframe time returns its value", func(t *testing.T) {
		v, err := k.Scalar("intensity", 0, -1)
		require.NoError(t, err)
		require.Equal(t, 0.0, v)

		v, err = k.Scalar("intensity", 2, -1)
		require.NoError(t, err)
		require.Equal(t, 10.0, v)
	})

	t.Run("before first keyframe yields first value", func(t *testing.T) {
		v, err := k.Scalar("intensity", -5, -1)
		require.NoError(t, err)
		require.Equal(t, 0.0, v)
	})

	t.Run("after last keyframe yields last value", func(t *testing.T) {
		v, err := k.Scalar("intensity", 50, -1)
		require.NoError(t, err)
		require.Equal(t, 10.0, v)
	})

	t.Run("midpoint interpolates linearly", func(t *testing.T) {
		v, err := k.Scalar("intensity", 1, -1)
		require.NoError(t, err)
		require.InDelta(t, 5.0, v, 1e-9)
	})

	t.Run("no keyframes on channel returns default", func(t *testing.T) {
		v, err := k.Scalar("missing", 1, -42)
		require.NoError(t, err)
		require.Equal(t, -42.0, v)
	})
}

func TestConstantInterpolation(t *testing.T) {
	k := NewKeyframes(
		Keyframe{Time: 0, Channel: "step", Value: ScalarValue(1), Interpolation: Linear},
		Keyframe{Time: 2, Channel: "step", Value: ScalarValue(9), Interpolation: Constant},
	)

	v, err := k.Scalar("step", 1.9, 0)
	require.NoError(t, err)
	require.Equal(t, 1.0, v, "CONSTANT returns the start value until the end keyframe time")
}

func TestColorKeyframes(t *testing.T) {
	k := NewKeyframes(
		Keyframe{Time: 0, Channel: "color", Value: ColorValue(colorspace.Black), Interpolation: Linear},
		Keyframe{Time: 2, Channel: "color", Value: ColorValue(colorspace.White), Interpolation: Linear},
	)

	v, err := k.Color("color", 1.0, colorspace.None)
	require.NoError(t, err)
	require.InDelta(t, 0.5, v.R, 1e-9)
	require.InDelta(t, 0.5, v.G, 1e-9)
	require.InDelta(t, 0.5, v.B, 1e-9)
}

func TestVec3Keyframes(t *testing.T) {
	k := NewKeyframes(
		Keyframe{Time: 0, Channel: "pos", Value: Vec3Value(spatial.New(0, 0, 0)), Interpolation: Linear},
		Keyframe{Time: 4, Channel: "pos", Value: Vec3Value(spatial.New(4, 8, 0)), Interpolation: Linear},
	)

	v, err := k.Vec3("pos", 2, spatial.Zero)
	require.NoError(t, err)
	require.InDelta(t, 2, v.X, 1e-9)
	require.InDelta(t, 4, v.Y, 1e-9)
}

func TestTypeMismatchIsFatal(t *testing.T) {
	k := NewKeyframes(
		Keyframe{Time: 0, Channel: "color", Value: ScalarValue(1)},
	)

	_, err := k.Color("color", 0, colorspace.None)
	require.Error(t, err)
	var mismatch *ErrTypeMismatch
	require.ErrorAs(t, err, &mismatch)
}

func TestAddKeepsOrder(t *testing.T) {
	k := NewKeyframes(Keyframe{Time: 2, Channel: "x", Value: ScalarValue(2)})
	k.Add(Keyframe{Time: 0, Channel: "x", Value: ScalarValue(0)})
	k.Add(Keyframe{Time: 1, Channel: "x", Value: ScalarValue(1)})

	v, err := k.Scalar("x", 1, -1)
	require.NoError(t, err)
	require.Equal(t, 1.0, v)
}
