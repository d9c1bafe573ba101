package render

import "math"

// DrawLine draws a line from (x0, y0) to (x1, y1) with Bresenham's
// algorithm. Pixels outside the framebuffer are skipped.
func (fb *Framebuffer) DrawLine(x0, y0, x1, y1 int, c Color) {
	// Walk along the major axis; the minor axis steps by the sign of its delta.
	if abs(x1-x0) >= abs(y1-y0) {
		if x0 > x1 {
			x0, y0, x1, y1 = x1, y1, x0, y0
		}
		fb.drawXMajor(x0, y0, x1, y1, sign(y1-y0), c)
		return
	}
	if y0 > y1 {
		x0, y0, x1, y1 = x1, y1, x0, y0
	}
	fb.drawYMajor(x0, y0, x1, y1, sign(x1-x0), c)
}

// drawXMajor draws a line with x0 <= x1 and |dy| <= dx.
func (fb *Framebuffer) drawXMajor(x0, y0, x1, y1, stepY int, c Color) {
	dx := x1 - x0
	dy := abs(y1 - y0)
	err := 2*dy - dx
	y := y0
	for x := x0; x <= x1; x++ {
		fb.SetPixel(x, y, c)
		if err > 0 {
			y += stepY
			err -= 2 * dx
		}
		err += 2 * dy
	}
}

// drawYMajor draws a line with y0 <= y1 and |dx| < dy.
func (fb *Framebuffer) drawYMajor(x0, y0, x1, y1, stepX int, c Color) {
	dy := y1 - y0
	dx := abs(x1 - x0)
	err := 2*dx - dy
	x := x0
	for y := y0; y <= y1; y++ {
		fb.SetPixel(x, y, c)
		if err > 0 {
			x += stepX
			err -= 2 * dy
		}
		err += 2 * dx
	}
}

// drawLineClipped draws a line given in float pixel coordinates after
// clipping it to the framebuffer (Liang-Barsky), so endpoints far off
// screen never drive the integer walk.
func (fb *Framebuffer) drawLineClipped(x0, y0, x1, y1 float64, c Color) {
	t0, t1 := 0.0, 1.0
	dx, dy := x1-x0, y1-y0
	maxX, maxY := float64(fb.Width-1), float64(fb.Height-1)

	clipTo := func(p, q float64) bool {
		if p == 0 {
			return q >= 0
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return false
			}
			t0 = math.Max(t0, r)
		} else {
			if r < t0 {
				return false
			}
			t1 = math.Min(t1, r)
		}
		return true
	}
	if !clipTo(-dx, x0) || !clipTo(dx, maxX-x0) || !clipTo(-dy, y0) || !clipTo(dy, maxY-y0) {
		return
	}

	fb.DrawLine(
		int(math.Round(x0+t0*dx)), int(math.Round(y0+t0*dy)),
		int(math.Round(x0+t1*dx)), int(math.Round(y0+t1*dy)),
		c,
	)
}

// drawTriangleOutline draws the three edges of a screen triangle.
func (fb *Framebuffer) drawTriangleOutline(t *ScreenTriangle, c Color) {
	for i := range 3 {
		a, b := t.V[i], t.V[(i+1)%3]
		fb.drawLineClipped(a.X, a.Y, b.X, b.Y, c)
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x < 0:
		return -1
	case x > 0:
		return 1
	}
	return 0
}
