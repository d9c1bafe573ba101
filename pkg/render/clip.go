package render

import "github.com/taigrr/softrast/pkg/math3d"

// ClipFlags records which frustum planes a clip-space vertex is outside of.
type ClipFlags uint8

const (
	OutRight  ClipFlags = 1 << iota // x > w
	OutLeft                         // x < -w
	OutTop                          // y > w
	OutBottom                       // y < -w
	OutNear                         // z < 0
	OutFar                          // z > w
)

// ClassifyVertex returns the planes v lies outside of. A vertex exactly on
// a plane is inside.
func ClassifyVertex(v math3d.Vec4) ClipFlags {
	var f ClipFlags
	if v.X > v.W {
		f |= OutRight
	}
	if v.X < -v.W {
		f |= OutLeft
	}
	if v.Y > v.W {
		f |= OutTop
	}
	if v.Y < -v.W {
		f |= OutBottom
	}
	if v.Z < 0 {
		f |= OutNear
	}
	if v.Z > v.W {
		f |= OutFar
	}
	return f
}

// Outside reports whether all three vertices are outside the same plane,
// in which case no part of the triangle can be visible.
func Outside(a, b, c math3d.Vec4) bool {
	return ClassifyVertex(a)&ClassifyVertex(b)&ClassifyVertex(c) != 0
}

// ClipOutcome describes what ClipNear did with a triangle.
type ClipOutcome int

const (
	ClipAccepted ClipOutcome = iota // passed through unchanged
	ClipCulled                      // dropped entirely
	ClipSplit                       // one vertex behind: emitted two triangles
	ClipTrimmed                     // two vertices behind: emitted one triangle
)

// String returns the outcome name.
func (o ClipOutcome) String() string {
	switch o {
	case ClipAccepted:
		return "accepted"
	case ClipCulled:
		return "culled"
	case ClipSplit:
		return "split"
	case ClipTrimmed:
		return "trimmed"
	}
	return "unknown"
}

// ClipNear culls t if every vertex is outside one frustum plane, otherwise
// clips it against the near plane z = 0 and appends the surviving triangles
// to out. Output triangles keep the input winding.
func ClipNear(t ClipTriangle, out []ClipTriangle) ([]ClipTriangle, ClipOutcome) {
	if Outside(t.V[0], t.V[1], t.V[2]) {
		return out, ClipCulled
	}

	a, b, c := t.V[0].Z < 0, t.V[1].Z < 0, t.V[2].Z < 0
	switch {
	case a && b:
		return clip2(t, 0, 1, 2, out), ClipTrimmed
	case a && c:
		return clip2(t, 2, 0, 1, out), ClipTrimmed
	case a:
		return clip1(t, 0, 1, 2, out), ClipSplit
	case b && c:
		return clip2(t, 1, 2, 0, out), ClipTrimmed
	case b:
		return clip1(t, 1, 2, 0, out), ClipSplit
	case c:
		return clip1(t, 2, 0, 1, out), ClipSplit
	}
	return append(out, t), ClipAccepted
}

// clipVertex is a clip-space position with its texture coordinate.
type clipVertex struct {
	pos math3d.Vec4
	uv  math3d.Vec2
}

func (t *ClipTriangle) vertex(i int) clipVertex {
	return clipVertex{t.V[i], t.UV[i]}
}

// intersectNear returns the point where the edge from (behind) to (front)
// crosses z = 0.
func intersectNear(behind, front clipVertex) clipVertex {
	alpha := -behind.pos.Z / (front.pos.Z - behind.pos.Z)
	p := behind.pos.Lerp(front.pos, alpha)
	p.Z = 0
	return clipVertex{p, behind.uv.Lerp(front.uv, alpha)}
}

func makeTriangle(a, b, c clipVertex, col Color) ClipTriangle {
	return ClipTriangle{
		V:     [3]math3d.Vec4{a.pos, b.pos, c.pos},
		UV:    [3]math3d.Vec2{a.uv, b.uv, c.uv},
		Color: col,
	}
}

// clip1 handles vertex ia behind the plane; ib and ic follow it in winding
// order. The remaining quad (A', B, C, C') is emitted as two triangles.
func clip1(t ClipTriangle, ia, ib, ic int, out []ClipTriangle) []ClipTriangle {
	a, b, c := t.vertex(ia), t.vertex(ib), t.vertex(ic)
	ab := intersectNear(a, b)
	ac := intersectNear(a, c)
	return append(out,
		makeTriangle(ab, b, c, t.Color),
		makeTriangle(ab, c, ac, t.Color),
	)
}

// clip2 handles vertices ia and ib behind the plane with ic in front.
func clip2(t ClipTriangle, ia, ib, ic int, out []ClipTriangle) []ClipTriangle {
	a, b, c := t.vertex(ia), t.vertex(ib), t.vertex(ic)
	return append(out, makeTriangle(intersectNear(a, c), intersectNear(b, c), c, t.Color))
}
