package render

import (
	"image/color"

	"github.com/taigrr/softrast/pkg/math3d"
)

// MeshRenderer is the read-only view of a model the pipeline consumes.
// Defined here rather than importing models to keep the packages independent.
type MeshRenderer interface {
	VertexCount() int
	TriangleCount() int
	// GetVertex returns the object-space position of vertex i.
	GetVertex(i int) math3d.Vec3
	// GetFace returns the 0-based vertex indices, per-corner texture
	// coordinates and flat color of face i.
	GetFace(i int) (v [3]int, uv [3]math3d.Vec2, c color.RGBA)
}

// BoundedMeshRenderer is a mesh with a precomputed object-space bounding box.
// The renderer uses it to skip meshes outside the view frustum.
type BoundedMeshRenderer interface {
	MeshRenderer
	GetBounds() (min, max math3d.Vec3)
}

// ClipTriangle is a triangle in homogeneous clip space. Triangles produced
// by ClipNear have z >= 0 and w > 0 at every vertex.
type ClipTriangle struct {
	V     [3]math3d.Vec4
	UV    [3]math3d.Vec2
	Color Color
}

// ScreenTriangle is a triangle in pixel coordinates. V[i].Z holds 1/w of
// the clip-space vertex, used for depth testing and perspective correction.
type ScreenTriangle struct {
	V     [3]math3d.Vec3
	UV    [3]math3d.Vec2
	Color Color
}

// Model places a mesh in the world and binds its texture.
// A nil Texture draws each face in its flat color.
type Model struct {
	Mesh     MeshRenderer
	Texture  *Texture
	Position math3d.Vec3
	Rotation math3d.Vec3 // Euler angles in radians, applied X then Y then Z
	Scale    math3d.Vec3
}

// NewModel creates a model at the origin with unit scale.
func NewModel(mesh MeshRenderer, tex *Texture) *Model {
	return &Model{
		Mesh:    mesh,
		Texture: tex,
		Scale:   math3d.V3(1, 1, 1),
	}
}

// Matrix returns the model matrix: translation * rotation * scale.
func (m *Model) Matrix() math3d.Mat4 {
	return math3d.ModelMatrix(m.Position, m.Rotation, m.Scale)
}
