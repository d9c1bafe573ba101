package render

import (
	"github.com/taigrr/softrast/pkg/logging"
	"github.com/taigrr/softrast/pkg/math3d"
)

// FrameStats counts pipeline work since the last ClearBuffers.
type FrameStats struct {
	Models       int // models submitted
	ModelsCulled int // models rejected by their bounding box
	Faces        int // faces considered
	Backfaces    int // faces dropped by the backface test
	Culled       int // faces entirely outside one frustum plane
	Clipped      int // faces split or trimmed at the near plane
	Triangles    int // triangles handed to the rasterizer
	Pixels       int // pixels that passed the depth test
}

// Renderer runs the geometry-to-pixel pipeline into a framebuffer.
// It is not safe for concurrent use.
type Renderer struct {
	fb *Framebuffer

	// Raster selects the scalar or the four-wide pixel loop.
	Raster RasterMode
	// DisableBackfaceCulling draws faces from both sides.
	DisableBackfaceCulling bool
	// Wireframe draws triangle edges in WireColor instead of filling.
	Wireframe bool
	WireColor Color

	Stats FrameStats

	// Per-frame scratch, reused across Render calls.
	viewVerts []math3d.Vec3
	clipVerts []math3d.Vec4
	tris      []ClipTriangle
}

// NewRenderer creates a renderer drawing into fb.
func NewRenderer(fb *Framebuffer) *Renderer {
	return &Renderer{
		fb:        fb,
		WireColor: RGB(0, 255, 128),
	}
}

// Framebuffer returns the render target.
func (r *Renderer) Framebuffer() *Framebuffer {
	return r.fb
}

// Resize resizes the render target.
func (r *Renderer) Resize(width, height int) {
	r.fb.Resize(width, height)
}

// ClearBuffers resets color to c, depth to FarDepth and the frame stats.
func (r *Renderer) ClearBuffers(c Color) {
	r.fb.Clear(c)
	r.Stats = FrameStats{}
}

// Bytes returns the raw color buffer for blitting.
func (r *Renderer) Bytes() []byte {
	return r.fb.Bytes()
}

// Pitch returns the color buffer row stride in bytes.
func (r *Renderer) Pitch() int {
	return r.fb.Pitch()
}

// Render draws one model with the given view and projection matrices.
func (r *Renderer) Render(m *Model, view, proj math3d.Mat4) {
	if m == nil || m.Mesh == nil {
		return
	}
	r.Stats.Models++
	mesh := m.Mesh
	modelView := view.Mul(m.Matrix())

	// Whole-mesh rejection; a mesh fully inside needs no per-face clipping.
	contained := false
	if bm, ok := mesh.(BoundedMeshRenderer); ok {
		var box AABB
		box.Min, box.Max = bm.GetBounds()
		f := NewFrustumFromMatrix(proj.Mul(modelView))
		switch f.Classify(box) {
		case BoxOutside:
			r.Stats.ModelsCulled++
			return
		case BoxInside:
			contained = true
		}
	}

	n := mesh.VertexCount()
	if cap(r.viewVerts) < n {
		r.viewVerts = make([]math3d.Vec3, n)
		r.clipVerts = make([]math3d.Vec4, n)
	}
	TransformVertices(mesh, modelView, proj, r.viewVerts, r.clipVerts)
	r.tris = r.tris[:0]

	for i := range mesh.TriangleCount() {
		idx, uv, c := mesh.GetFace(i)
		r.Stats.Faces++

		a, b, cc := r.viewVerts[idx[0]], r.viewVerts[idx[1]], r.viewVerts[idx[2]]
		if !r.DisableBackfaceCulling && !IsFrontFacing(a, b, cc) {
			r.Stats.Backfaces++
			continue
		}

		tri := ClipTriangle{
			V:     [3]math3d.Vec4{r.clipVerts[idx[0]], r.clipVerts[idx[1]], r.clipVerts[idx[2]]},
			UV:    uv,
			Color: ColorFromRGBA(c),
		}
		if contained {
			r.tris = append(r.tris, tri)
			continue
		}

		var outcome ClipOutcome
		r.tris, outcome = ClipNear(tri, r.tris)
		switch outcome {
		case ClipCulled:
			r.Stats.Culled++
		case ClipSplit, ClipTrimmed:
			r.Stats.Clipped++
		}
	}

	tex := m.Texture
	if tex.Empty() {
		tex = nil
	}
	halfW, halfH := float64(r.fb.Width)/2, float64(r.fb.Height)/2
	for i := range r.tris {
		st := ToScreen(&r.tris[i], halfW, halfH)
		r.Stats.Triangles++
		if r.Wireframe {
			r.fb.drawTriangleOutline(&st, r.WireColor)
			continue
		}
		r.Stats.Pixels += r.rasterize(&st, tex)
	}
}

func (r *Renderer) rasterize(t *ScreenTriangle, tex *Texture) int {
	if r.Raster == RasterWide {
		return drawTriangleWide(r.fb, t, tex)
	}
	return drawTriangleScalar(r.fb, t, tex)
}

// Scene is a camera and the models it sees.
type Scene struct {
	Camera *Camera
	Models []*Model
}

// RenderScene draws every model in s from its camera. It does not clear
// the buffers.
func (r *Renderer) RenderScene(s *Scene) {
	view := s.Camera.ViewMatrix()
	proj := s.Camera.ProjectionMatrix(r.fb.Width, r.fb.Height)
	for _, m := range s.Models {
		r.Render(m, view, proj)
	}

	st := r.Stats
	logging.Logger().Debug("frame rendered",
		"models", st.Models,
		"models_culled", st.ModelsCulled,
		"faces", st.Faces,
		"backfaces", st.Backfaces,
		"culled", st.Culled,
		"clipped", st.Clipped,
		"triangles", st.Triangles,
		"pixels", st.Pixels,
		"raster", r.Raster,
	)
}
