package effect

import (
	"math"

	"github.com/dougsko/lumenshow/pkg/keyframe"
	"github.com/dougsko/lumenshow/pkg/spatial"
)

// Orbit is a Vec3Effect: it rotates a point around center on an axis at a
// keyframed angular rate, producing an absolute position independent of
// the fixture's authored position (mirroring Fill's treatment of color).
type Orbit struct {
	Center      spatial.Vec3
	Axis        spatial.Vec3
	Radius      float64
	AngularRate float64 // radians per second
	localTime   float64
}

// NewOrbit constructs an Orbit with its initial field values. Axis need
// not be normalized; Sample normalizes it.
func NewOrbit(center, axis spatial.Vec3, radius, angularRate float64) *Orbit {
	return &Orbit{Center: center, Axis: axis, Radius: radius, AngularRate: angularRate}
}

func (o *Orbit) Update(keyframes *keyframe.Keyframes, t float64, _ AudioContext) error {
	var err error
	if o.Center, err = keyframes.Vec3("center", t, o.Center); err != nil {
		return err
	}
	if o.Axis, err = keyframes.Vec3("axis", t, o.Axis); err != nil {
		return err
	}
	if o.Radius, err = keyframes.Scalar("radius", t, o.Radius); err != nil {
		return err
	}
	if o.AngularRate, err = keyframes.Scalar("angular_rate", t, o.AngularRate); err != nil {
		return err
	}
	o.localTime = t
	return nil
}

func (o *Orbit) Sample(_ spatial.Vec3) Output {
	axis := spatial.Normalize(o.Axis)
	u, v := orthonormalBasis(axis)
	angle := o.AngularRate * o.localTime

	offset := addVec3(scaleVec3(u, o.Radius*math.Cos(angle)), scaleVec3(v, o.Radius*math.Sin(angle)))

	return Output{Kind: OutputVec3, Vec3: addVec3(o.Center, offset)}
}

func (o *Orbit) Clone() Variant {
	clone := *o
	return &clone
}

// orthonormalBasis picks two unit vectors perpendicular to axis and to
// each other, seeding the cross product with the world X axis, or with the
// world Y axis when |axis.X| > 0.9, to avoid a degenerate cross product.
func orthonormalBasis(axis spatial.Vec3) (spatial.Vec3, spatial.Vec3) {
	seed := spatial.New(1, 0, 0)
	if math.Abs(axis.X) > 0.9 {
		seed = spatial.New(0, 1, 0)
	}
	u := spatial.Normalize(spatial.Cross(axis, seed))
	v := spatial.Normalize(spatial.Cross(axis, u))
	return u, v
}

func addVec3(a, b spatial.Vec3) spatial.Vec3 {
	return spatial.New(a.X+b.X, a.Y+b.Y, a.Z+b.Z)
}

func scaleVec3(v spatial.Vec3, s float64) spatial.Vec3 {
	return spatial.New(v.X*s, v.Y*s, v.Z*s)
}
