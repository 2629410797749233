// Package lighting describes the lights that shade the globe.
package lighting

import "github.com/go-gl/mathgl/mgl64"

// PointLight is an omnidirectional light at a world position.
type PointLight struct {
	Position  mgl64.Vec3
	Color     [3]float32 // RGB (0-1 range)
	Intensity float32
}

// Radiance returns Color scaled by Intensity, clamped to the 0-1 range.
func (l PointLight) Radiance() [3]float32 {
	var out [3]float32
	for i, c := range l.Color {
		out[i] = clamp01(c * l.Intensity)
	}
	return out
}

// DirectionFrom returns the unit vector from p towards the light, or the
// zero vector when p coincides with it.
func (l PointLight) DirectionFrom(p mgl64.Vec3) mgl64.Vec3 {
	d := l.Position.Sub(p)
	if n := d.Len(); n > 0 {
		return d.Mul(1 / n)
	}
	return mgl64.Vec3{}
}

// Rig is the full light setup: a faint ambient term plus one key light.
type Rig struct {
	Ambient float32
	Key     PointLight
}

// Default is a dim ambient term and a white key light far off to the -X side.
func Default() Rig {
	return Rig{
		Ambient: 0.01,
		Key: PointLight{
			Position:  mgl64.Vec3{-200, 50, 50},
			Color:     [3]float32{1, 1, 1},
			Intensity: 0.6,
		},
	}
}

// Illuminance is the brightness (0-1) a surface point with normal n
// receives, using the same Lambert term as the globe shader.
func (r Rig) Illuminance(p, n mgl64.Vec3) float32 {
	lambert := 0.0
	if l := n.Len(); l > 0 {
		lambert = n.Mul(1 / l).Dot(r.Key.DirectionFrom(p))
	}
	if lambert < 0 {
		lambert = 0
	}
	rad := r.Key.Radiance()
	key := (rad[0] + rad[1] + rad[2]) / 3
	return clamp01(r.Ambient + key*float32(lambert))
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
