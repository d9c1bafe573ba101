package math3d

// Vec4 is a homogeneous point, usually in clip space.
type Vec4 struct {
	X, Y, Z, W float64
}

// V4 returns Vec4{x, y, z, w}.
func V4(x, y, z, w float64) Vec4 {
	return Vec4{x, y, z, w}
}

// V4FromV3 extends v with the given w.
func V4FromV3(v Vec3, w float64) Vec4 {
	return Vec4{v.X, v.Y, v.Z, w}
}

// Vec3 drops W without dividing.
func (v Vec4) Vec3() Vec3 {
	return Vec3{v.X, v.Y, v.Z}
}

// Lerp interpolates all four components from a (t = 0) to b (t = 1).
// Interpolating w along with xyz keeps clipped vertices projectively correct.
func (a Vec4) Lerp(b Vec4, t float64) Vec4 {
	return Vec4{
		a.X + (b.X-a.X)*t,
		a.Y + (b.Y-a.Y)*t,
		a.Z + (b.Z-a.Z)*t,
		a.W + (b.W-a.W)*t,
	}
}
