// Package anchor keeps 2D labels pinned next to moving 3D points.
package anchor

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/planetview/internal/engine/camera"
)

// Tracked is a 3D object whose world position a label follows.
type Tracked interface {
	WorldPosition() mgl64.Vec3
}

// Fixed is a Tracked point that never moves.
type Fixed mgl64.Vec3

// WorldPosition implements Tracked.
func (f Fixed) WorldPosition() mgl64.Vec3 {
	return mgl64.Vec3(f)
}

// Element is the UI element a label is drawn with.
type Element interface {
	SetPosition(x, y float64)
}

// Anchor binds a tracked object to a UI element.
// A nil Target means there is nothing to follow yet.
type Anchor struct {
	Name    string
	Target  Tracked
	Element Element
}

// Pixel is a position in viewport pixels, origin top-left.
type Pixel struct {
	X, Y float64
}

// Placement is the pixel an anchor was projected to in a frame.
type Placement struct {
	Name string
	Pixel
}

// Offset pushes a label off its anchor so it floats beside the object
// instead of covering it.
type Offset struct {
	Scale  float64    // length of the sideways nudge
	Height float64    // fixed lift along Up
	Angle  float64    // rotation of the view direction about Up (radians)
	Up     mgl64.Vec3 // world up axis, must be +X, +Y or +Z
}

// DefaultOffset nudges labels half a unit to the side and 2.5 units up.
func DefaultOffset() Offset {
	return Offset{
		Scale:  0.5,
		Height: 2.5,
		Angle:  -math.Pi / 2,
		Up:     mgl64.Vec3{0, 1, 0},
	}
}

// Vector returns the world-space offset for an anchor seen from eye.
func (o Offset) Vector(anchorPos, eye mgl64.Vec3) mgl64.Vec3 {
	dir := anchorPos.Sub(eye)
	if l := dir.Len(); l > 0 {
		dir = dir.Mul(1 / l)
	}

	v := mgl64.QuatRotate(o.Angle, o.Up).Rotate(dir).Mul(o.Scale)
	v[upIndex(o.Up)] = o.Height
	return v
}

func upIndex(up mgl64.Vec3) int {
	switch {
	case up.X() != 0:
		return 0
	case up.Z() != 0:
		return 2
	default:
		return 1
	}
}

// Projector updates every registered anchor's screen position each frame.
type Projector struct {
	offset  Offset
	anchors []*Anchor
}

// NewProjector creates a projector applying offset to every label.
func NewProjector(offset Offset) *Projector {
	return &Projector{offset: offset}
}

// SetOffset replaces the label offset.
func (p *Projector) SetOffset(offset Offset) {
	p.offset = offset
}

// Register adds an anchor to be updated by UpdateAll.
func (p *Projector) Register(a *Anchor) {
	p.anchors = append(p.anchors, a)
}

// Anchors returns the registered anchors in registration order.
func (p *Projector) Anchors() []*Anchor {
	return p.anchors
}

// Update projects one anchor to pixels using this frame's camera and
// writes the result to its element. Returns false, touching nothing,
// when the anchor has no target.
//
// Results outside the viewport mean the anchor is off screen; hiding the
// label is left to the element.
func (p *Projector) Update(a *Anchor, cam camera.State, vp camera.Viewport) (Pixel, bool) {
	if a == nil || a.Target == nil {
		return Pixel{}, false
	}

	pos := a.Target.WorldPosition()
	target := pos.Add(p.offset.Vector(pos, cam.Position))

	clip := cam.ViewProjection().Mul4x1(target.Vec4(1))
	ndc := clip.Vec3()
	if w := clip.W(); w != 0 {
		ndc = ndc.Mul(1 / w)
	}

	halfW, halfH := vp.Width/2, vp.Height/2
	px := Pixel{
		X: ndc.X()*halfW + halfW,
		Y: -ndc.Y()*halfH + halfH,
	}

	if a.Element != nil {
		a.Element.SetPosition(px.X, px.Y)
	}
	return px, true
}

// UpdateAll updates every registered anchor. Anchors without a target are
// skipped; the rest are still placed.
func (p *Projector) UpdateAll(cam camera.State, vp camera.Viewport) []Placement {
	placements := make([]Placement, 0, len(p.anchors))
	for _, a := range p.anchors {
		px, ok := p.Update(a, cam, vp)
		if !ok {
			continue
		}
		placements = append(placements, Placement{Name: a.Name, Pixel: px})
	}
	return placements
}
