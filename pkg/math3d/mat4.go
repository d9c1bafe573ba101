package math3d

import "math"

// Mat4 is a 4x4 matrix in column-major order: element (row, col) is at
// index row+col*4 and the translation sits in indices 12, 13 and 14.
// Matrices act on column vectors, so a.Mul(b) applies b first.
type Mat4 [16]float64

// Identity returns the identity matrix.
func Identity() Mat4 {
	var m Mat4
	m[0], m[5], m[10], m[15] = 1, 1, 1, 1
	return m
}

// Translate returns a matrix that moves points by v.
func Translate(v Vec3) Mat4 {
	m := Identity()
	m[12], m[13], m[14] = v.X, v.Y, v.Z
	return m
}

// Scale returns a matrix that scales each axis by the matching component of v.
func Scale(v Vec3) Mat4 {
	var m Mat4
	m[0], m[5], m[10], m[15] = v.X, v.Y, v.Z, 1
	return m
}

// planeRotation turns axis i toward axis j by angle radians.
func planeRotation(i, j int, angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	m := Identity()
	m[i+i*4], m[j+i*4] = c, s
	m[i+j*4], m[j+j*4] = -s, c
	return m
}

// RotateX rotates about +X, turning +Y toward +Z.
func RotateX(angle float64) Mat4 { return planeRotation(1, 2, angle) }

// RotateY rotates about +Y, turning +Z toward +X.
func RotateY(angle float64) Mat4 { return planeRotation(2, 0, angle) }

// RotateZ rotates about +Z, turning +X toward +Y.
func RotateZ(angle float64) Mat4 { return planeRotation(0, 1, angle) }

// RotateEuler applies the X, then Y, then Z rotation of r (radians).
func RotateEuler(r Vec3) Mat4 {
	return RotateZ(r.Z).Mul(RotateY(r.Y)).Mul(RotateX(r.X))
}

// ModelMatrix places an object: scale, then rotate, then translate.
func ModelMatrix(pos, rot, scale Vec3) Mat4 {
	return Translate(pos).Mul(RotateEuler(rot)).Mul(Scale(scale))
}

// ViewFromBasis builds a view matrix from a camera position and an
// orthonormal basis. The basis vectors form the rows of the rotation, so
// forward maps to view-space +Z.
func ViewFromBasis(pos, right, up, forward Vec3) Mat4 {
	return Mat4{
		right.X, up.X, forward.X, 0,
		right.Y, up.Y, forward.Y, 0,
		right.Z, up.Z, forward.Z, 0,
		-right.Dot(pos), -up.Dot(pos), -forward.Dot(pos), 1,
	}
}

// PerspectiveLH returns a left-handed perspective projection.
// fovy is the vertical field of view in radians and aspect is width/height.
// View-space z in [near, far] maps to clip z in [0, far] and clip w = z,
// so a point is in front of the near plane exactly when clip z >= 0.
func PerspectiveLH(fovy, aspect, near, far float64) Mat4 {
	f := 1 / math.Tan(fovy/2)
	zr := far / (far - near)

	var m Mat4
	m[0] = f / aspect
	m[5] = f
	m[10], m[11] = zr, 1
	m[14] = -near * zr
	return m
}

// Col returns column i.
func (m Mat4) Col(i int) Vec4 {
	return Vec4{m[i*4], m[i*4+1], m[i*4+2], m[i*4+3]}
}

// Mul returns a * b.
func (a Mat4) Mul(b Mat4) Mat4 {
	var m Mat4
	for i := range 4 {
		c := a.MulVec4(b.Col(i))
		m[i*4], m[i*4+1], m[i*4+2], m[i*4+3] = c.X, c.Y, c.Z, c.W
	}
	return m
}

// MulVec4 returns m * v.
func (m Mat4) MulVec4(v Vec4) Vec4 {
	return Vec4{
		m[0]*v.X + m[4]*v.Y + m[8]*v.Z + m[12]*v.W,
		m[1]*v.X + m[5]*v.Y + m[9]*v.Z + m[13]*v.W,
		m[2]*v.X + m[6]*v.Y + m[10]*v.Z + m[14]*v.W,
		m[3]*v.X + m[7]*v.Y + m[11]*v.Z + m[15]*v.W,
	}
}

// MulVec3 transforms the point v (w = 1). A projective result is divided
// by its w unless w is zero.
func (m Mat4) MulVec3(v Vec3) Vec3 {
	p := m.MulVec4(V4FromV3(v, 1))
	if p.W == 1 || p.W == 0 {
		return p.Vec3()
	}
	return Vec3{p.X / p.W, p.Y / p.W, p.Z / p.W}
}
