package render

import (
	"math"

	"github.com/taigrr/softrast/pkg/math3d"
)

// Field of view limits for Zoom, in radians.
const (
	MinFOV = 2 * math.Pi / 180
	MaxFOV = 90 * math.Pi / 180
)

const maxPitch = 89 * math.Pi / 180

// Camera is a yaw/pitch camera in a left-handed world (+Y up). With zero
// yaw and pitch it looks down +Z.
type Camera struct {
	// Position in world space
	Position math3d.Vec3

	// Orientation in radians
	Yaw   float64 // rotation about +Y, from +Z toward +X
	Pitch float64 // elevation, clamped to +-89 degrees

	// Projection parameters
	FOV  float64 // Vertical field of view in radians
	Near float64 // Near clipping plane
	Far  float64 // Far clipping plane

	viewMatrix math3d.Mat4
	viewDirty  bool
}

// NewCamera creates a camera at the origin looking down +Z with a 60 degree
// field of view.
func NewCamera() *Camera {
	return &Camera{
		FOV:       math.Pi / 3,
		Near:      0.1,
		Far:       100,
		viewDirty: true,
	}
}

// SetPosition sets the camera position.
func (c *Camera) SetPosition(pos math3d.Vec3) {
	c.Position = pos
	c.viewDirty = true
}

// SetRotation sets yaw and pitch in radians. Pitch is clamped.
func (c *Camera) SetRotation(yaw, pitch float64) {
	c.Yaw = yaw
	c.Pitch = clampPitch(pitch)
	c.viewDirty = true
}

// Forward returns the unit view direction.
func (c *Camera) Forward() math3d.Vec3 {
	return math3d.V3(
		math.Sin(c.Yaw)*math.Cos(c.Pitch),
		math.Sin(c.Pitch),
		math.Cos(c.Yaw)*math.Cos(c.Pitch),
	)
}

// Right returns the unit right vector, perpendicular to world up.
func (c *Camera) Right() math3d.Vec3 {
	return math3d.Up().Cross(c.Forward()).Normalize()
}

// Up returns the camera's unit up vector.
func (c *Camera) Up() math3d.Vec3 {
	return c.Forward().Cross(c.Right()).Normalize()
}

// ViewMatrix returns the view matrix for the current position and basis.
func (c *Camera) ViewMatrix() math3d.Mat4 {
	if c.viewDirty {
		c.viewMatrix = math3d.ViewFromBasis(c.Position, c.Right(), c.Up(), c.Forward())
		c.viewDirty = false
	}
	return c.viewMatrix
}

// ProjectionMatrix returns the perspective projection for a target of the
// given pixel size.
func (c *Camera) ProjectionMatrix(width, height int) math3d.Mat4 {
	aspect := 1.0
	if width > 0 && height > 0 {
		aspect = float64(width) / float64(height)
	}
	return math3d.PerspectiveLH(c.FOV, aspect, c.Near, c.Far)
}

// MoveForward moves the camera along its view direction.
func (c *Camera) MoveForward(distance float64) {
	c.SetPosition(c.Position.Add(c.Forward().Scale(distance)))
}

// MoveRight moves the camera along its right vector.
func (c *Camera) MoveRight(distance float64) {
	c.SetPosition(c.Position.Add(c.Right().Scale(distance)))
}

// MoveUp moves the camera along world up.
func (c *Camera) MoveUp(distance float64) {
	c.SetPosition(c.Position.Add(math3d.Up().Scale(distance)))
}

// Rotate adds to yaw and pitch (radians). Pitch is clamped.
func (c *Camera) Rotate(deltaYaw, deltaPitch float64) {
	c.SetRotation(c.Yaw+deltaYaw, c.Pitch+deltaPitch)
}

// Zoom narrows (positive delta) or widens the field of view, in radians.
func (c *Camera) Zoom(delta float64) {
	c.FOV = math.Max(MinFOV, math.Min(MaxFOV, c.FOV-delta))
}

// LookAt turns the camera toward target.
func (c *Camera) LookAt(target math3d.Vec3) {
	dir := target.Sub(c.Position).Normalize()
	if dir.Len() == 0 {
		return
	}
	c.SetRotation(math.Atan2(dir.X, dir.Z), math.Asin(dir.Y))
}

// Orbit places the camera distance away from target at the given yaw and
// pitch around it, looking at target.
func (c *Camera) Orbit(target math3d.Vec3, distance, yaw, pitch float64) {
	pitch = clampPitch(pitch)
	offset := math3d.V3(
		math.Sin(yaw)*math.Cos(pitch),
		math.Sin(pitch),
		math.Cos(yaw)*math.Cos(pitch),
	)
	c.Position = target.Sub(offset.Scale(distance))
	c.SetRotation(yaw, pitch)
}

func clampPitch(p float64) float64 {
	return math.Max(-maxPitch, math.Min(maxPitch, p))
}
