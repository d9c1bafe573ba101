package math3d

// Vec2 is a texture coordinate. U is X and V is Y, with V = 0 at the top
// row of the image.
type Vec2 struct {
	X, Y float64
}

// V2 returns Vec2{x, y}.
func V2(x, y float64) Vec2 {
	return Vec2{x, y}
}

// Lerp interpolates from a (t = 0) to b (t = 1).
func (a Vec2) Lerp(b Vec2, t float64) Vec2 {
	return Vec2{a.X + (b.X-a.X)*t, a.Y + (b.Y-a.Y)*t}
}
