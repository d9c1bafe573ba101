package models

import (
	"image/color"

	"github.com/taigrr/softrast/pkg/math3d"
)

// CubeColors are the cube side colors, in the order +X, -X, +Y, -Y, +Z, -Z.
var CubeColors = [6]color.RGBA{
	{R: 255, A: 255},
	{G: 255, B: 255, A: 255},
	{G: 255, A: 255},
	{R: 255, B: 255, A: 255},
	{B: 255, A: 255},
	{R: 255, G: 255, A: 255},
}

// NewCube creates an axis-aligned cube of edge length size centered on the
// origin. Each side has its own four vertices, a distinct flat color from
// CubeColors and UVs covering the whole texture. Faces wind so that
// (b-a) x (c-a) points outward.
func NewCube(size float64) *Mesh {
	h := size / 2
	// Corners run bottom-left, bottom-right, top-right, top-left as seen
	// from outside the cube.
	sides := [6][4]math3d.Vec3{
		{{X: h, Y: -h, Z: h}, {X: h, Y: -h, Z: -h}, {X: h, Y: h, Z: -h}, {X: h, Y: h, Z: h}},
		{{X: -h, Y: -h, Z: -h}, {X: -h, Y: -h, Z: h}, {X: -h, Y: h, Z: h}, {X: -h, Y: h, Z: -h}},
		{{X: -h, Y: h, Z: h}, {X: h, Y: h, Z: h}, {X: h, Y: h, Z: -h}, {X: -h, Y: h, Z: -h}},
		{{X: -h, Y: -h, Z: -h}, {X: h, Y: -h, Z: -h}, {X: h, Y: -h, Z: h}, {X: -h, Y: -h, Z: h}},
		{{X: -h, Y: -h, Z: h}, {X: h, Y: -h, Z: h}, {X: h, Y: h, Z: h}, {X: -h, Y: h, Z: h}},
		{{X: h, Y: -h, Z: -h}, {X: -h, Y: -h, Z: -h}, {X: -h, Y: h, Z: -h}, {X: h, Y: h, Z: -h}},
	}
	uvs := [4]math3d.Vec2{{X: 0, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 0}, {X: 0, Y: 0}}

	mesh := NewMesh("cube")
	for s, corners := range sides {
		addQuad(mesh, corners, uvs, CubeColors[s])
	}
	mesh.CalculateBounds()
	return mesh
}

// NewQuad creates a white width x height rectangle in the XY plane,
// centered on the origin and facing -Z, toward a default camera.
func NewQuad(width, height float64) *Mesh {
	w, h := width/2, height/2
	corners := [4]math3d.Vec3{{X: -w, Y: -h}, {X: -w, Y: h}, {X: w, Y: h}, {X: w, Y: -h}}
	uvs := [4]math3d.Vec2{{X: 0, Y: 1}, {X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}}

	mesh := NewMesh("quad")
	addQuad(mesh, corners, uvs, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	mesh.CalculateBounds()
	return mesh
}

// addQuad appends four vertices and the two triangles (0, 1, 2) and
// (0, 2, 3) covering them.
func addQuad(mesh *Mesh, corners [4]math3d.Vec3, uvs [4]math3d.Vec2, c color.RGBA) {
	base := len(mesh.Vertices)
	for i, p := range corners {
		mesh.Vertices = append(mesh.Vertices, Vertex{Position: p, UV: uvs[i]})
	}
	for _, tri := range [2][3]int{{0, 1, 2}, {0, 2, 3}} {
		f := Face{Color: c}
		for j, k := range tri {
			f.V[j] = base + k
			f.UV[j] = uvs[k]
		}
		mesh.Faces = append(mesh.Faces, f)
	}
}
