// Package picking turns pointer positions into points on the globe.
package picking

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/planetview/internal/engine/camera"
)

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    mgl64.Vec3
	Direction mgl64.Vec3 // Normalized direction
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float64) mgl64.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// ToNDC converts pixel coordinates to normalized device coordinates (-1 to 1).
// Pixel Y grows downward, NDC Y grows upward.
func ToNDC(px, py float64, vp camera.Viewport) mgl64.Vec2 {
	return mgl64.Vec2{
		(px/vp.Width)*2 - 1,
		-(py/vp.Height)*2 + 1,
	}
}

// ScreenToRay converts normalized device coordinates to a world-space ray.
// invViewProj is the inverse of the view-projection matrix.
func ScreenToRay(ndc mgl64.Vec2, invViewProj mgl64.Mat4) Ray {
	// Unproject near and far points
	nearWorld := unproject(invViewProj, mgl64.Vec4{ndc[0], ndc[1], -1, 1})
	farWorld := unproject(invViewProj, mgl64.Vec4{ndc[0], ndc[1], 1, 1})

	dir := farWorld.Sub(nearWorld)
	if l := dir.Len(); l > 0 {
		dir = dir.Mul(1 / l)
	}
	return Ray{Origin: nearWorld, Direction: dir}
}

func unproject(invViewProj mgl64.Mat4, clip mgl64.Vec4) mgl64.Vec3 {
	world := invViewProj.Mul4x1(clip)
	// Perspective divide
	if w := world.W(); w != 0 {
		return world.Vec3().Mul(1 / w)
	}
	return world.Vec3()
}

// IntersectSphere intersects the ray with a sphere.
// Returns the distance to the nearest intersection in front of the origin.
// If the ray starts inside the sphere, returns the exit distance.
func (r Ray) IntersectSphere(center mgl64.Vec3, radius float64) (t float64, hit bool) {
	// |O + tD - C|² = r², with |D| = 1
	oc := r.Origin.Sub(center)
	b := oc.Dot(r.Direction)
	c := oc.Dot(oc) - radius*radius

	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	sq := math.Sqrt(disc)

	t0 := -b - sq
	t1 := -b + sq
	if t1 < 0 {
		return 0, false // Sphere behind ray origin
	}
	if t0 < 0 {
		return t1, true
	}
	return t0, true
}
