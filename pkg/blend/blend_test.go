package blend

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScalarIdentities(t *testing.T) {
	t.Run("mix factor 0 returns a", func(t *testing.T) {
		require.Equal(t, 5.0, Scalar(Mix, 5, 99, 0))
	})

	t.Run("add black (0) at any factor returns a", func(t *testing.T) {
		require.Equal(t, 5.0, Scalar(Add, 5, 0, 0.7))
	})

	t.Run("multiply factor 0 returns a", func(t *testing.T) {
		require.Equal(t, 5.0, Scalar(Multiply, 5, 3, 0))
	})

	t.Run("multiply factor 1 returns a*b", func(t *testing.T) {
		require.Equal(t, 15.0, Scalar(Multiply, 5, 3, 1))
	})
}

func TestSampleWindowedLinear(t *testing.T) {
	series := []float64{0, 10, 20, 30}

	t.Run("factor 0 returns first element", func(t *testing.T) {
		require.InDelta(t, 0, SampleWindowed(series, 0, 0.1), 1e-9)
	})

	t.Run("factor 1 returns last element", func(t *testing.T) {
		require.InDelta(t, 30, SampleWindowed(series, 1, 0.1), 1e-9)
	})

	t.Run("midpoint interpolates", func(t *testing.T) {
		require.InDelta(t, 15, SampleWindowed(series, 0.5, 0.1), 1e-9)
	})
}

func TestSampleWindowedGaussian(t *testing.T) {
	series := make([]float64, 100)
	for i := range series {
		series[i] = 1
	}

	got := SampleWindowed(series, 0.5, 0.8)
	require.InDelta(t, 1.0, got, 1e-9, "a flat series returns the flat value regardless of window")
}

func TestSampleWindowedEmpty(t *testing.T) {
	require.Equal(t, 0.0, SampleWindowed(nil, 0.5, 0.5))
}

func TestSkipsDisjointGroups(t *testing.T) {
	require.True(t, SkipsDisjointGroups(Mix, 0))
	require.False(t, SkipsDisjointGroups(Mix, 0.5))
	require.False(t, SkipsDisjointGroups(Mix, 1))
	require.True(t, SkipsDisjointGroups(Add, 1))
	require.True(t, SkipsDisjointGroups(Subtract, 1))
	require.False(t, SkipsDisjointGroups(Multiply, 0))
	require.False(t, SkipsDisjointGroups(Multiply, 1))
}
