package slides3d

import "math"

// Quaternion represents a rotation. It's used to orient instances along the tangent of their paths.
type Quaternion struct {
	X, Y, Z, W float64
}

func NewQuaternion(x, y, z, w float64) Quaternion {
	return Quaternion{x, y, z, w}
}

// NewQuaternionFromAxisAngle returns a Quaternion rotating by angle radians around the provided axis.
// The axis is expected to be normalized; a zero axis gives the identity rotation.
func NewQuaternionFromAxisAngle(axis Vector, angle float64) Quaternion {
	if axis.IsZero() {
		return NewQuaternion(0, 0, 0, 1)
	}
	s := math.Sin(angle / 2)
	return NewQuaternion(axis.X*s, axis.Y*s, axis.Z*s, math.Cos(angle/2))
}

// Dot returns the dot product of the two Quaternions.
func (quat Quaternion) Dot(other Quaternion) float64 {
	return quat.X*other.X + quat.Y*other.Y + quat.Z*other.Z + quat.W*other.W
}

// Normalized returns a copy of the Quaternion scaled to unit length.
func (quat Quaternion) Normalized() Quaternion {
	m := math.Sqrt(quat.Dot(quat))
	if m == 0 {
		return NewQuaternion(0, 0, 0, 1)
	}
	return NewQuaternion(quat.X/m, quat.Y/m, quat.Z/m, quat.W/m)
}

// ToMatrix4 generates a rotation Matrix4 from the Quaternion, for use with row vectors.
func (quat Quaternion) ToMatrix4() Matrix4 {

	q := quat.Normalized()
	x, y, z, w := q.X, q.Y, q.Z, q.W

	m := NewMatrix4()

	m[0][0] = 1 - 2*(y*y+z*z)
	m[0][1] = 2 * (x*y + z*w)
	m[0][2] = 2 * (x*z - y*w)

	m[1][0] = 2 * (x*y - z*w)
	m[1][1] = 1 - 2*(x*x+z*z)
	m[1][2] = 2 * (y*z + x*w)

	m[2][0] = 2 * (x*z + y*w)
	m[2][1] = 2 * (y*z - x*w)
	m[2][2] = 1 - 2*(x*x+y*y)

	return m

}
