package render

import (
	"math/bits"

	"github.com/taigrr/softrast/pkg/math3d"
)

// Plane is the set of points p with Normal·p + D = 0. Points with a
// positive distance are on the Normal side.
type Plane struct {
	Normal math3d.Vec3
	D      float64
}

// Normalize scales the plane so Normal has unit length. A plane with a
// zero normal is left unchanged.
func (p *Plane) Normalize() {
	l := p.Normal.Len()
	if l == 0 {
		return
	}
	p.Normal = p.Normal.Scale(1 / l)
	p.D /= l
}

// Distance returns the signed distance from the plane to pt, in units of
// the normal's length.
func (p Plane) Distance(pt math3d.Vec3) float64 {
	return p.Normal.Dot(pt) + p.D
}

// Frustum holds six inward-facing planes. Plane i is the one that vertex
// flag 1<<i of ClassifyVertex tests, so PlaneIndex(OutNear) selects the
// near plane.
type Frustum [6]Plane

// PlaneIndex returns the frustum plane tested by a single clip flag.
func PlaneIndex(f ClipFlags) int {
	return bits.TrailingZeros8(uint8(f))
}

// NewFrustumFromMatrix extracts the frustum planes of a combined
// projection * view (* model) matrix, in the space the matrix maps from.
// A point p is inside plane i exactly when the clip-space inequality for
// flag 1<<i holds for m*p. The projection must map the visible depth range
// to 0 <= z <= w, as PerspectiveLH does.
func NewFrustumFromMatrix(m math3d.Mat4) Frustum {
	// Row i of m as the plane (row.xyz, row.w).
	row := func(i int) Plane {
		return Plane{math3d.V3(m[i], m[i+4], m[i+8]), m[i+12]}
	}
	sum := func(a, b Plane, s float64) Plane {
		return Plane{a.Normal.Add(b.Normal.Scale(s)), a.D + b.D*s}
	}
	x, y, z, w := row(0), row(1), row(2), row(3)

	var f Frustum
	f[PlaneIndex(OutRight)] = sum(w, x, -1) // x <= w
	f[PlaneIndex(OutLeft)] = sum(w, x, 1)   // x >= -w
	f[PlaneIndex(OutTop)] = sum(w, y, -1)   // y <= w
	f[PlaneIndex(OutBottom)] = sum(w, y, 1) // y >= -w
	f[PlaneIndex(OutNear)] = z              // z >= 0
	f[PlaneIndex(OutFar)] = sum(w, z, -1)   // z <= w
	for i := range f {
		f[i].Normalize()
	}
	return f
}

// ContainsPoint reports whether p is inside or on every plane.
func (f *Frustum) ContainsPoint(p math3d.Vec3) bool {
	for i := range f {
		if f[i].Distance(p) < 0 {
			return false
		}
	}
	return true
}

// AABB is an axis-aligned box, usually a mesh's object-space bounds.
type AABB struct {
	Min, Max math3d.Vec3
}

// extremes returns the corners of b furthest along n and furthest
// against it.
func (b AABB) extremes(n math3d.Vec3) (far, near math3d.Vec3) {
	far, near = b.Min, b.Max
	if n.X >= 0 {
		far.X, near.X = b.Max.X, b.Min.X
	}
	if n.Y >= 0 {
		far.Y, near.Y = b.Max.Y, b.Min.Y
	}
	if n.Z >= 0 {
		far.Z, near.Z = b.Max.Z, b.Min.Z
	}
	return far, near
}

// Containment is the result of testing a box against a frustum.
type Containment int

const (
	BoxOutside Containment = iota
	BoxIntersecting
	BoxInside
)

// String returns the containment name.
func (c Containment) String() string {
	switch c {
	case BoxOutside:
		return "outside"
	case BoxIntersecting:
		return "intersecting"
	}
	return "inside"
}

// Classify tests box against every plane. It returns BoxOutside only when
// some plane has the whole box behind it, so boxes near a frustum corner
// may report BoxIntersecting while lying outside.
func (f *Frustum) Classify(box AABB) Containment {
	result := BoxInside
	for i := range f {
		far, near := box.extremes(f[i].Normal)
		if f[i].Distance(far) < 0 {
			return BoxOutside
		}
		if f[i].Distance(near) < 0 {
			result = BoxIntersecting
		}
	}
	return result
}
