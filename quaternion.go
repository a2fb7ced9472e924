package globe

import "math"

// Quaternion represents a rotation; it's used to hand rotations to formats that store them that way, like glTF.
type Quaternion struct {
	X, Y, Z, W float64
}

func NewQuaternion(x, y, z, w float64) Quaternion {
	return Quaternion{x, y, z, w}
}

// NewQuaternionFromEuler returns a Quaternion representing the same rotation as the Euler angles (in radians) given,
// composed in the same order as NewMatrix4RotateFromEuler.
func NewQuaternionFromEuler(euler Vector) Quaternion {

	c1, s1 := math.Cos(euler.X/2), math.Sin(euler.X/2)
	c2, s2 := math.Cos(euler.Y/2), math.Sin(euler.Y/2)
	c3, s3 := math.Cos(euler.Z/2), math.Sin(euler.Z/2)

	return Quaternion{
		X: s1*c2*c3 + c1*s2*s3,
		Y: c1*s2*c3 - s1*c2*s3,
		Z: c1*c2*s3 + s1*s2*c3,
		W: c1*c2*c3 - s1*s2*s3,
	}

}

func (quat Quaternion) Dot(other Quaternion) float64 {
	return quat.X*other.X + quat.Y*other.Y + quat.Z*other.Z + quat.W*other.W
}

// Matrix4 returns the rotation Matrix4 the Quaternion represents.
func (quat Quaternion) Matrix4() Matrix4 {

	x2, y2, z2 := quat.X*2, quat.Y*2, quat.Z*2
	xx, xy, xz := quat.X*x2, quat.X*y2, quat.X*z2
	yy, yz, zz := quat.Y*y2, quat.Y*z2, quat.Z*z2
	wx, wy, wz := quat.W*x2, quat.W*y2, quat.W*z2

	return Matrix4{
		{1 - (yy + zz), xy + wz, xz - wy, 0},
		{xy - wz, 1 - (xx + zz), yz + wx, 0},
		{xz + wy, yz - wx, 1 - (xx + yy), 0},
		{0, 0, 0, 1},
	}

}
