// Package models provides mesh loading and representation for softrast.
package models

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"path/filepath"
	"slices"
	"strings"

	"github.com/taigrr/softrast/pkg/math3d"
)

// DefaultColor is the flat color of faces whose source gives none.
var DefaultColor = color.RGBA{R: 200, G: 200, B: 200, A: 255}

// Mesh is an indexed triangle mesh in a left-handed, +Y up object space.
type Mesh struct {
	Name     string
	Vertices []Vertex
	Faces    []Face

	// Texture is the first image the source file references, if any.
	Texture image.Image

	// BoundsMin and BoundsMax enclose every vertex. Loaders and Transform
	// keep them current.
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// Vertex holds the attributes shared by every face corner that uses it.
type Vertex struct {
	Position math3d.Vec3
	UV       math3d.Vec2
}

// Face is a triangle with per-corner texture coordinates and a flat color
// used when the mesh is drawn without a texture.
type Face struct {
	V     [3]int // Indices into Mesh.Vertices
	UV    [3]math3d.Vec2
	Color color.RGBA
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{Name: name}
}

// Load reads a model file, choosing the loader by extension.
func Load(path string) (*Mesh, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".obj":
		return LoadOBJ(path)
	case ".gltf", ".glb":
		return LoadGLTF(path)
	default:
		return nil, fmt.Errorf("%s: %w %q", path, ErrUnsupportedFormat, ext)
	}
}

// CalculateBounds recomputes BoundsMin and BoundsMax from the vertices.
// An empty mesh gets zero bounds.
func (m *Mesh) CalculateBounds() {
	inf := math.Inf(1)
	lo, hi := math3d.V3(inf, inf, inf), math3d.V3(-inf, -inf, -inf)
	for i := range m.Vertices {
		p := m.Vertices[i].Position
		lo, hi = lo.Min(p), hi.Max(p)
	}
	if len(m.Vertices) == 0 {
		lo, hi = math3d.Vec3{}, math3d.Vec3{}
	}
	m.BoundsMin, m.BoundsMax = lo, hi
}

// Center is the midpoint of the bounds.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size is the extent of the bounds along each axis.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// TriangleCount returns the number of faces.
func (m *Mesh) TriangleCount() int { return len(m.Faces) }

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int { return len(m.Vertices) }

// Validate checks that every face index refers to a vertex.
func (m *Mesh) Validate() error {
	for i, f := range m.Faces {
		for _, idx := range f.V {
			if idx < 0 || idx >= len(m.Vertices) {
				return fmt.Errorf("face %d vertex %d of %d: %w", i, idx, len(m.Vertices), ErrIndexOutOfRange)
			}
		}
	}
	return nil
}

// Transform moves every vertex by mat and refreshes the bounds.
func (m *Mesh) Transform(mat math3d.Mat4) {
	for i, v := range m.Vertices {
		m.Vertices[i].Position = mat.MulVec3(v.Position)
	}
	m.CalculateBounds()
}

// Fit centers the mesh on the origin and scales it uniformly so its largest
// dimension equals size.
func (m *Mesh) Fit(size float64) {
	extent := m.Size().MaxComponent()
	if extent == 0 {
		return
	}
	s := size / extent
	m.Transform(math3d.Scale(math3d.V3(s, s, s)).Mul(math3d.Translate(m.Center().Negate())))
}

// Clone copies the vertex and face slices. The texture image is shared.
func (m *Mesh) Clone() *Mesh {
	c := *m
	c.Vertices = slices.Clone(m.Vertices)
	c.Faces = slices.Clone(m.Faces)
	return &c
}

// toLeftHanded converts a right-handed (+Z toward the viewer) mesh in place:
// z is negated and each face's second and third corners are swapped so the
// winding still faces outward.
func (m *Mesh) toLeftHanded() {
	for i := range m.Vertices {
		m.Vertices[i].Position.Z = -m.Vertices[i].Position.Z
	}
	for i := range m.Faces {
		f := &m.Faces[i]
		f.V[1], f.V[2] = f.V[2], f.V[1]
		f.UV[1], f.UV[2] = f.UV[2], f.UV[1]
	}
}

// GetVertex returns the position of vertex i.
func (m *Mesh) GetVertex(i int) math3d.Vec3 {
	return m.Vertices[i].Position
}

// GetFace returns the vertex indices, texture coordinates and color of face i.
func (m *Mesh) GetFace(i int) (v [3]int, uv [3]math3d.Vec2, c color.RGBA) {
	f := &m.Faces[i]
	return f.V, f.UV, f.Color
}

// GetBounds returns the axis-aligned bounds from the last CalculateBounds.
func (m *Mesh) GetBounds() (min, max math3d.Vec3) {
	return m.BoundsMin, m.BoundsMax
}
