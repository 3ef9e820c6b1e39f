package effect

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dougsko/lumenshow/pkg/spatial"
)

func TestOrbitSampleStaysOnCircle(t *testing.T) {
	o := NewOrbit(spatial.New(1, 2, 3), spatial.New(0, 0, 1), 5, 1)
	o.localTime = 0.75

	out := o.Sample(spatial.Zero)
	require.Equal(t, OutputVec3, out.Kind)

	dist := spatial.Distance(out.Vec3, spatial.New(1, 2, 3))
	require.InDelta(t, 5, dist, 1e-9)
}

func TestOrbitSampleZeroAxisFallsBackToZAxis(t *testing.T) {
	o := NewOrbit(spatial.Zero, spatial.Zero, 1, 0)
	out := o.Sample(spatial.Zero)
	require.InDelta(t, 1, spatial.Distance(out.Vec3, spatial.Zero), 1e-9)
}

func TestOrbitClone(t *testing.T) {
	o := NewOrbit(spatial.Zero, spatial.New(0, 0, 1), 1, 1)
	clone := o.Clone().(*Orbit)
	clone.Radius = 99

	require.Equal(t, float64(1), o.Radius)
	require.Equal(t, float64(99), clone.Radius)
}
