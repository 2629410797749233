package picking

import (
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/Faultbox/planetview/internal/engine/camera"
	"github.com/Faultbox/planetview/internal/logger"
	"github.com/Faultbox/planetview/pkg/sphere"
)

// Scene is the state a pick runs against: the loading gate plus the
// camera and viewport current at the moment of the pointer event.
type Scene struct {
	Ready    bool
	Camera   camera.State
	Viewport camera.Viewport
}

// IntersectionProvider finds the closest world-space point hit by the ray
// through ndc, or reports a miss.
type IntersectionProvider interface {
	Intersect(ndc mgl64.Vec2, cam camera.State) (mgl64.Vec3, bool)
}

// IntersectionFunc adapts a function to IntersectionProvider.
type IntersectionFunc func(ndc mgl64.Vec2, cam camera.State) (mgl64.Vec3, bool)

// Intersect calls f.
func (f IntersectionFunc) Intersect(ndc mgl64.Vec2, cam camera.State) (mgl64.Vec3, bool) {
	return f(ndc, cam)
}

// SphereSurface intersects pick rays with an unrotated sphere.
type SphereSurface struct {
	Center mgl64.Vec3
	Radius float64
}

// Intersect implements IntersectionProvider.
func (s SphereSurface) Intersect(ndc mgl64.Vec2, cam camera.State) (mgl64.Vec3, bool) {
	ray := ScreenToRay(ndc, cam.ViewProjection().Inv())
	t, ok := ray.IntersectSphere(s.Center, s.Radius)
	if !ok {
		return mgl64.Vec3{}, false
	}
	return ray.At(t), true
}

// Pick resolves the pointer pixel (px, py) to an angular coordinate on the globe.
//
// Nothing happens until the scene is ready. A miss is not an error; it
// just yields false. The hit point is read as if the globe sat unrotated
// at the origin, whatever its current orientation.
func Pick(scene Scene, px, py float64, provider IntersectionProvider) (sphere.AngularCoordinate, bool) {
	if !scene.Ready {
		logger.Debug("pick ignored, scene not ready")
		return sphere.AngularCoordinate{}, false
	}
	if scene.Viewport.Width <= 0 || scene.Viewport.Height <= 0 {
		return sphere.AngularCoordinate{}, false
	}

	ndc := ToNDC(px, py, scene.Viewport)
	point, ok := provider.Intersect(ndc, scene.Camera)
	if !ok {
		logger.Debug("pick missed", zap.Float64("ndc_x", ndc[0]), zap.Float64("ndc_y", ndc[1]))
		return sphere.AngularCoordinate{}, false
	}
	if point.Len() == 0 {
		return sphere.AngularCoordinate{}, false
	}

	coord := sphere.Inverse(sphere.PointFromVec3(point))
	logger.Debug("picked",
		zap.Float64("polar_deg", coord.PolarDeg),
		zap.Float64("azimuth_deg", coord.AzimuthDeg),
	)
	return coord, true
}
