package effect

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dougsko/lumenshow/pkg/colorspace"
	"github.com/dougsko/lumenshow/pkg/spatial"
)

func TestTriangleWave(t *testing.T) {
	cases := map[float64]float64{
		0:   0,
		0.5: 0.5,
		1:   1,
		1.5: 0.5,
		2:   0,
		-1:  1,
	}
	for u, want := range cases {
		got := triangleWave(u)
		require.InDelta(t, want, got, 1e-9, "u=%v", u)
	}
}

func TestNewFrequencyCascadeStartsWithZeroedRing(t *testing.T) {
	c := NewFrequencyCascade(4, nil, spatial.New(1, 0, 0), 1)
	require.Len(t, c.PastValues, 4)

	for _, v := range c.PastValues {
		require.Equal(t, 0.0, v.Freq)
		require.Equal(t, 0.0, v.Strength)
	}
}

func TestFrequencyCascadeSampleScalesAlpha(t *testing.T) {
	bands := []colorspace.Stop{
		{T: 0, Color: colorspace.Black},
		{T: 1, Color: colorspace.White},
	}
	c := NewFrequencyCascade(4, bands, spatial.New(1, 0, 0), 1)
	c.PastValues[3] = cascadeSample{Freq: 1, Strength: 0.5}

	out := c.Sample(spatial.New(0, 0, 0))
	require.LessOrEqual(t, out.Color.A, 0.5+1e-9)
}

func TestFrequencyCascadeSampleZeroDirection(t *testing.T) {
	c := NewFrequencyCascade(2, nil, spatial.Zero, 1)
	out := c.Sample(spatial.New(5, 5, 5))
	require.False(t, math.IsNaN(out.Color.R))
}

func TestFrequencyCascadeClone(t *testing.T) {
	c := NewFrequencyCascade(2, nil, spatial.Zero, 1)
	clone := c.Clone().(*FrequencyCascade)
	clone.PastValues[0].Freq = 42

	require.NotEqual(t, clone.PastValues[0].Freq, c.PastValues[0].Freq)
}
