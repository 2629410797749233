// Package camera provides the globe camera and the per-frame camera state.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Viewport is the client area of the view in pixels.
type Viewport struct {
	Width, Height float64
}

// Aspect returns width/height, or 1 for a degenerate viewport.
func (v Viewport) Aspect() float64 {
	if v.Width <= 0 || v.Height <= 0 {
		return 1
	}
	return v.Width / v.Height
}

// State is a read-only snapshot of the camera for one frame.
type State struct {
	Position   mgl64.Vec3
	View       mgl64.Mat4
	Projection mgl64.Mat4
}

// ViewProjection returns Projection * View.
func (s State) ViewProjection() mgl64.Mat4 {
	return s.Projection.Mul4(s.View)
}

// DistanceToOrigin returns the camera's distance from the world origin.
func (s State) DistanceToOrigin() float64 {
	return s.Position.Len()
}

// Lens holds perspective projection settings.
type Lens struct {
	FovYDeg float64
	Near    float64
	Far     float64
}

// OrbitCamera orbits the world origin, where the globe sits.
type OrbitCamera struct {
	// Spherical coordinates around the origin
	Distance float64
	Pitch    float64 // elevation above the XZ plane (radians)
	Yaw      float64 // rotation about +Y (radians)

	// Constraints
	MinDistance float64
	MaxDistance float64
	MaxPitch    float64

	Lens Lens

	// ZoomSpeed is fed by the zoom rate controller.
	ZoomSpeed       float64
	DragSensitivity float64

	// Enabled gates user input; disabled until the scene has loaded.
	Enabled bool
}

// NewOrbitCamera creates an orbit camera at the given world position.
func NewOrbitCamera(pos mgl64.Vec3, lens Lens) *OrbitCamera {
	c := &OrbitCamera{
		MinDistance:     20.3,
		MaxDistance:     70,
		MaxPitch:        math.Pi/2 - 1e-6,
		Lens:            lens,
		ZoomSpeed:       1,
		DragSensitivity: 0.005,
	}
	c.SetPosition(pos)
	return c
}

// SetPosition places the camera at pos, keeping it aimed at the origin.
func (c *OrbitCamera) SetPosition(pos mgl64.Vec3) {
	c.Distance = pos.Len()
	if c.Distance == 0 {
		c.Pitch, c.Yaw = 0, 0
		return
	}
	c.Pitch = math.Asin(mgl64.Clamp(pos.Y()/c.Distance, -1, 1))
	c.Yaw = math.Atan2(pos.X(), pos.Z())
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() mgl64.Vec3 {
	cosPitch := math.Cos(c.Pitch)
	return mgl64.Vec3{
		c.Distance * cosPitch * math.Sin(c.Yaw),
		c.Distance * math.Sin(c.Pitch),
		c.Distance * cosPitch * math.Cos(c.Yaw),
	}
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() mgl64.Mat4 {
	return mgl64.LookAtV(c.Position(), mgl64.Vec3{}, mgl64.Vec3{0, 1, 0})
}

// ProjectionMatrix returns the perspective projection for the viewport.
func (c *OrbitCamera) ProjectionMatrix(vp Viewport) mgl64.Mat4 {
	return mgl64.Perspective(mgl64.DegToRad(c.Lens.FovYDeg), vp.Aspect(), c.Lens.Near, c.Lens.Far)
}

// State snapshots the camera for the current frame.
func (c *OrbitCamera) State(vp Viewport) State {
	return State{
		Position:   c.Position(),
		View:       c.ViewMatrix(),
		Projection: c.ProjectionMatrix(vp),
	}
}

// HandleDrag rotates the camera around the globe from a mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float64) {
	if !c.Enabled {
		return
	}
	c.Yaw -= deltaX * c.DragSensitivity
	c.Pitch += deltaY * c.DragSensitivity

	if c.Pitch > c.MaxPitch {
		c.Pitch = c.MaxPitch
	}
	if c.Pitch < -c.MaxPitch {
		c.Pitch = -c.MaxPitch
	}
}

// HandleZoom dollies the camera for a wheel delta. Negative deltas move in.
// Each event scales the distance by 0.95^ZoomSpeed.
func (c *OrbitCamera) HandleZoom(deltaY float64) {
	if !c.Enabled || deltaY == 0 {
		return
	}
	scale := math.Pow(0.95, c.ZoomSpeed)
	if deltaY < 0 {
		c.Distance *= scale
	} else {
		c.Distance /= scale
	}
	c.Distance = mgl64.Clamp(c.Distance, c.MinDistance, c.MaxDistance)
}
