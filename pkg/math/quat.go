package math

import "github.com/chewxy/math32"

// Quat represents a unit quaternion rotation. W is the scalar part.
type Quat struct {
	X, Y, Z, W float32
}

// QuatIdentity returns the identity rotation.
func QuatIdentity() Quat {
	return Quat{W: 1}
}

// QuatFromAxisAngle creates a quaternion from axis-angle rotation.
// axis should be normalized, angle is in radians.
func QuatFromAxisAngle(axis Vec3, angle float32) Quat {
	s, c := math32.Sincos(angle / 2)
	return Quat{X: axis.X * s, Y: axis.Y * s, Z: axis.Z * s, W: c}
}

// QuatFromEuler builds a rotation from pitch (X), yaw (Y) and roll (Z)
// angles in radians.
func QuatFromEuler(pitch, yaw, roll float32) Quat {
	sp, cp := math32.Sincos(pitch / 2)
	sy, cy := math32.Sincos(yaw / 2)
	sr, cr := math32.Sincos(roll / 2)

	return Quat{
		X: sp*cy*cr - cp*sy*sr,
		Y: cp*sy*cr + sp*cy*sr,
		Z: cp*cy*sr - sp*sy*cr,
		W: cp*cy*cr + sp*sy*sr,
	}
}

// QuatFromMat4 extracts the rotation of the upper-left 3x3 block of m.
func QuatFromMat4(m Mat4) Quat {
	m00, m11, m22 := m[0], m[5], m[10]
	trace := m00 + m11 + m22

	var q Quat
	switch {
	case trace > 0:
		s := math32.Sqrt(trace+1) * 2
		q = Quat{W: s / 4, X: (m[6] - m[9]) / s, Y: (m[8] - m[2]) / s, Z: (m[1] - m[4]) / s}
	case m00 > m11 && m00 > m22:
		s := math32.Sqrt(1+m00-m11-m22) * 2
		q = Quat{W: (m[6] - m[9]) / s, X: s / 4, Y: (m[4] + m[1]) / s, Z: (m[8] + m[2]) / s}
	case m11 > m22:
		s := math32.Sqrt(1+m11-m00-m22) * 2
		q = Quat{W: (m[8] - m[2]) / s, X: (m[4] + m[1]) / s, Y: s / 4, Z: (m[9] + m[6]) / s}
	default:
		s := math32.Sqrt(1+m22-m00-m11) * 2
		q = Quat{W: (m[1] - m[4]) / s, X: (m[8] + m[2]) / s, Y: (m[9] + m[6]) / s, Z: s / 4}
	}
	return q.Normalize()
}

// Normalize returns q scaled to unit length.
func (q Quat) Normalize() Quat {
	l := math32.Sqrt(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)
	if l < 1e-6 {
		return QuatIdentity()
	}
	return Quat{q.X / l, q.Y / l, q.Z / l, q.W / l}
}

// Conjugate returns the inverse rotation of a unit quaternion.
func (q Quat) Conjugate() Quat {
	return Quat{-q.X, -q.Y, -q.Z, q.W}
}

// Mul composes two rotations: q applied after other.
func (q Quat) Mul(other Quat) Quat {
	return Quat{
		X: q.W*other.X + q.X*other.W + q.Y*other.Z - q.Z*other.Y,
		Y: q.W*other.Y - q.X*other.Z + q.Y*other.W + q.Z*other.X,
		Z: q.W*other.Z + q.X*other.Y - q.Y*other.X + q.Z*other.W,
		W: q.W*other.W - q.X*other.X - q.Y*other.Y - q.Z*other.Z,
	}
}

// Rotate applies the rotation to v.
func (q Quat) Rotate(v Vec3) Vec3 {
	u := Vec3{q.X, q.Y, q.Z}
	t := u.Cross(v).Scale(2)
	return v.Add(t.Scale(q.W)).Add(u.Cross(t))
}

// Mat4 converts the quaternion to a rotation matrix.
func (q Quat) Mat4() Mat4 {
	q = q.Normalize()

	xx, yy, zz := q.X*q.X, q.Y*q.Y, q.Z*q.Z
	xy, xz, yz := q.X*q.Y, q.X*q.Z, q.Y*q.Z
	xw, yw, zw := q.X*q.W, q.Y*q.W, q.Z*q.W

	return Mat4{
		1 - 2*(yy+zz), 2 * (xy + zw), 2 * (xz - yw), 0,
		2 * (xy - zw), 1 - 2*(xx+zz), 2 * (yz + xw), 0,
		2 * (xz + yw), 2 * (yz - xw), 1 - 2*(xx+yy), 0,
		0, 0, 0, 1,
	}
}
