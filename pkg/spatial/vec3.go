// Package spatial provides the Vec3 type used for fixture positions and
// vec3-valued effect parameters, built on gonum's r3.Vec.
package spatial

import "gonum.org/v1/gonum/spatial/r3"

// Vec3 is a point or direction in world space.
type Vec3 = r3.Vec

// New constructs a Vec3 from components.
func New(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Zero is the additive identity.
var Zero = Vec3{}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Vec3) float64 {
	return r3.Norm(r3.Sub(a, b))
}

// Lerp linearly interpolates between a and b by u.
func Lerp(a, b Vec3, u float64) Vec3 {
	return r3.Add(a, r3.Scale(u, r3.Sub(b, a)))
}

// Dot returns the dot product of a and b.
func Dot(a, b Vec3) float64 {
	return r3.Dot(a, b)
}

// Cross returns the cross product of a and b.
func Cross(a, b Vec3) Vec3 {
	return r3.Cross(a, b)
}

// Normalize returns a unit vector in the direction of v, or the +Z axis if
// v is the zero vector.
func Normalize(v Vec3) Vec3 {
	if v == Zero {
		return Vec3{Z: 1}
	}
	return r3.Unit(v)
}
