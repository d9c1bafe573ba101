package render

import (
	"math"

	"github.com/taigrr/softrast/pkg/math3d"
)

// RasterMode selects the per-pixel rasterization loop.
type RasterMode int

const (
	RasterScalar RasterMode = iota // one pixel per step
	RasterWide                     // four pixels per step with lane masks
)

// String returns the name ParseRasterMode accepts.
func (m RasterMode) String() string {
	if m == RasterWide {
		return "wide"
	}
	return "scalar"
}

// ParseRasterMode parses "scalar" or "wide". "simd" is accepted as an alias
// for "wide".
func ParseRasterMode(s string) (RasterMode, bool) {
	switch s {
	case "scalar":
		return RasterScalar, true
	case "wide", "simd":
		return RasterWide, true
	}
	return RasterScalar, false
}

// orient2d returns twice the signed area of (a, b, p). With screen y
// pointing down it is positive when p lies clockwise of a->b on screen.
func orient2d(ax, ay, bx, by, px, py float64) float64 {
	return (bx-ax)*(py-ay) - (by-ay)*(px-ax)
}

// madd returns a*b + c with the product rounded first. Both raster loops
// use it so they round identically on every architecture.
func madd(a, b, c float64) float64 {
	return float64(a*b) + c
}

// edge is one affine edge function evaluated over a pixel box.
// Its value at pixel (minX+dx, minY+dy) is origin + dy*rowInc + dx*colInc.
type edge struct {
	origin  float64
	colInc  float64
	rowInc  float64
	topLeft bool
}

func newEdge(a, b math3d.Vec3, px, py float64) edge {
	return edge{
		origin:  orient2d(a.X, a.Y, b.X, b.Y, px, py),
		colInc:  a.Y - b.Y,
		rowInc:  b.X - a.X,
		topLeft: isTopLeft(a, b),
	}
}

// isTopLeft reports whether a->b is a top or left edge of a positive-area
// triangle in y-down screen space. Pixels centered exactly on such an edge
// belong to this triangle and not to its neighbor.
func isTopLeft(a, b math3d.Vec3) bool {
	dy := b.Y - a.Y
	return dy < 0 || (dy == 0 && b.X > a.X)
}

func (e *edge) row(dy float64) float64 {
	return madd(dy, e.rowInc, e.origin)
}

func (e *edge) at(row, dx float64) float64 {
	return madd(dx, e.colInc, row)
}

func (e *edge) covers(w float64) bool {
	return w > 0 || (w == 0 && e.topLeft)
}

// triangleSetup holds everything the raster loops need for one triangle.
type triangleSetup struct {
	minX, minY, maxX, maxY int

	// e[0] is edge v1->v2 (weights v0), e[1] v2->v0, e[2] v0->v1.
	e       [3]edge
	invArea float64

	// 1/w and uv/w at v0, with deltas to v1 and v2.
	z0, dz1, dz2 float64
	u0, du1, du2 float64
	v0, dv1, dv2 float64

	color Color
}

// setupTriangle computes the clamped pixel box, edge functions and
// attribute deltas. It returns false when the triangle has no area or
// misses the target. Triangles with negative area are reordered so
// back faces still fill when culling is off.
func setupTriangle(t *ScreenTriangle, width, height int) (triangleSetup, bool) {
	var s triangleSetup
	p0, p1, p2 := t.V[0], t.V[1], t.V[2]
	t0, t1, t2 := t.UV[0], t.UV[1], t.UV[2]

	area := orient2d(p0.X, p0.Y, p1.X, p1.Y, p2.X, p2.Y)
	if !(area > 0 || area < 0) || math.IsInf(area, 0) {
		return s, false
	}
	if area < 0 {
		p1, p2 = p2, p1
		t1, t2 = t2, t1
		area = -area
	}

	// Clamp while still in float so far off-screen vertices cannot overflow.
	minX := math.Max(0, math.Floor(min(p0.X, p1.X, p2.X)))
	minY := math.Max(0, math.Floor(min(p0.Y, p1.Y, p2.Y)))
	maxX := math.Min(float64(width-1), math.Ceil(max(p0.X, p1.X, p2.X)))
	maxY := math.Min(float64(height-1), math.Ceil(max(p0.Y, p1.Y, p2.Y)))
	if !(minX <= maxX && minY <= maxY) {
		return s, false
	}
	s.minX, s.minY, s.maxX, s.maxY = int(minX), int(minY), int(maxX), int(maxY)

	px, py := minX+0.5, minY+0.5
	s.e[0] = newEdge(p1, p2, px, py)
	s.e[1] = newEdge(p2, p0, px, py)
	s.e[2] = newEdge(p0, p1, px, py)
	s.invArea = 1 / area

	s.z0, s.dz1, s.dz2 = p0.Z, p1.Z-p0.Z, p2.Z-p0.Z

	// Weight texture coordinates by 1/w so they interpolate linearly on screen.
	u0, u1, u2 := t0.X*p0.Z, t1.X*p1.Z, t2.X*p2.Z
	v0, v1, v2 := t0.Y*p0.Z, t1.Y*p1.Z, t2.Y*p2.Z
	s.u0, s.du1, s.du2 = u0, u1-u0, u2-u0
	s.v0, s.dv1, s.dv2 = v0, v1-v0, v2-v0

	s.color = t.Color
	return s, true
}

// depth interpolates 1/w at barycentric weights (beta, gamma).
func (s *triangleSetup) depth(beta, gamma float64) float64 {
	return madd(gamma, s.dz2, madd(beta, s.dz1, s.z0))
}

// texCoord recovers the perspective-correct (u, v) at a pixel.
func (s *triangleSetup) texCoord(beta, gamma, invW float64) (u, v float64) {
	uw := madd(gamma, s.du2, madd(beta, s.du1, s.u0))
	vw := madd(gamma, s.dv2, madd(beta, s.dv1, s.v0))
	rz := 1 / invW
	return uw * rz, vw * rz
}

// drawTriangleScalar rasterizes t into fb one pixel at a time and returns
// the number of pixels written. A nil tex draws the triangle's flat color.
func drawTriangleScalar(fb *Framebuffer, t *ScreenTriangle, tex *Texture) int {
	s, ok := setupTriangle(t, fb.Width, fb.Height)
	if !ok {
		return 0
	}

	written := 0
	for y := s.minY; y <= s.maxY; y++ {
		dy := float64(y - s.minY)
		r0, r1, r2 := s.e[0].row(dy), s.e[1].row(dy), s.e[2].row(dy)
		base := y * fb.Width

		for x := s.minX; x <= s.maxX; x++ {
			dx := float64(x - s.minX)
			w0 := s.e[0].at(r0, dx)
			w1 := s.e[1].at(r1, dx)
			w2 := s.e[2].at(r2, dx)
			if !s.e[0].covers(w0) || !s.e[1].covers(w1) || !s.e[2].covers(w2) {
				continue
			}

			beta := w1 * s.invArea
			gamma := w2 * s.invArea
			invW := s.depth(beta, gamma)

			idx := base + x
			if !(invW >= fb.Depth[idx]) {
				continue
			}
			fb.Depth[idx] = invW

			if tex == nil {
				fb.Pixels[idx] = s.color
			} else {
				u, v := s.texCoord(beta, gamma, invW)
				fb.Pixels[idx] = tex.Sample(u, v)
			}
			written++
		}
	}
	return written
}
