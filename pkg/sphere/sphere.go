// Package sphere maps angular coordinates to points on a sphere and back.
//
// Angles follow a simple spherical convention: the polar angle is measured
// from the +Z pole axis (0° at the pole, 180° at the opposite pole) and the
// azimuth is measured in the XY plane from +X towards +Y. The polar angle is
// used as-is; it is never complemented into a geographic latitude.
package sphere

import (
	"math"
	"strconv"

	"github.com/go-gl/mathgl/mgl64"
)

// AngularCoordinate is a (polar, azimuth) pair in degrees.
type AngularCoordinate struct {
	PolarDeg   float64
	AzimuthDeg float64
}

// String renders the coordinate the way the viewer's labels show it.
func (c AngularCoordinate) String() string {
	return "Latitude:" + strconv.FormatFloat(c.PolarDeg, 'f', -1, 64) +
		" Longitude:" + strconv.FormatFloat(c.AzimuthDeg, 'f', -1, 64)
}

// SpherePoint is a Cartesian point on a sphere centred at the origin.
type SpherePoint struct {
	X, Y, Z float64
}

// Vec3 returns the point as an mgl64 vector.
func (p SpherePoint) Vec3() mgl64.Vec3 {
	return mgl64.Vec3{p.X, p.Y, p.Z}
}

// Length returns the distance from the origin.
func (p SpherePoint) Length() float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y + p.Z*p.Z)
}

// PointFromVec3 converts an mgl64 vector into a SpherePoint.
func PointFromVec3(v mgl64.Vec3) SpherePoint {
	return SpherePoint{X: v[0], Y: v[1], Z: v[2]}
}

// Forward maps a polar angle and azimuth (degrees) onto a sphere of the given radius.
func Forward(polarDeg, azimuthDeg, radius float64) SpherePoint {
	theta := mgl64.DegToRad(polarDeg)
	phi := mgl64.DegToRad(azimuthDeg)

	sinTheta := math.Sin(theta)
	return SpherePoint{
		X: radius * sinTheta * math.Cos(phi),
		Y: radius * sinTheta * math.Sin(phi),
		Z: radius * math.Cos(theta),
	}
}

// Inverse recovers the angular coordinate of p.
// p must not be the origin.
func Inverse(p SpherePoint) AngularCoordinate {
	cosTheta := mgl64.Clamp(p.Z/p.Length(), -1, 1)
	theta := math.Acos(cosTheta)
	phi := Azimuth(p.X, p.Y)

	return AngularCoordinate{
		PolarDeg:   mgl64.RadToDeg(theta),
		AzimuthDeg: mgl64.RadToDeg(phi),
	}
}

// Azimuth returns the angle of (x, y) in radians, in [-π, π].
//
// It matches a quadrant-branching arctangent: a zero y counts as
// non-negative (so Azimuth(-1, -0) is π, not -π) and the undefined
// case x == y == 0 returns 0.
func Azimuth(x, y float64) float64 {
	if x == 0 && y == 0 {
		return 0
	}
	if y == 0 {
		// Drop the sign of a negative zero.
		y = 0
	}
	return math.Atan2(y, x)
}
