package render

import "github.com/taigrr/softrast/pkg/math3d"

// TransformVertices writes the view-space and clip-space position of every
// mesh vertex into view and clip, which must hold at least VertexCount
// elements. modelView is view * model.
func TransformVertices(mesh MeshRenderer, modelView, proj math3d.Mat4, view []math3d.Vec3, clip []math3d.Vec4) {
	n := mesh.VertexCount()
	view, clip = view[:n], clip[:n]
	for i := range n {
		vs := modelView.MulVec3(mesh.GetVertex(i))
		view[i] = vs
		clip[i] = proj.MulVec4(math3d.V4FromV3(vs, 1))
	}
}

// IsFrontFacing reports whether the view-space triangle (a, b, c) faces the
// camera at the origin: the normal (b-a) x (c-b) must point back toward the
// eye, so its dot product with a is negative.
func IsFrontFacing(a, b, c math3d.Vec3) bool {
	n := b.Sub(a).Cross(c.Sub(b))
	return n.Dot(a) < 0
}
