package lighting

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestRadiance(t *testing.T) {
	tests := []struct {
		name  string
		light PointLight
		want  [3]float32
	}{
		{"scaled", PointLight{Color: [3]float32{1, 0.5, 0}, Intensity: 0.6}, [3]float32{0.6, 0.3, 0}},
		{"clamped", PointLight{Color: [3]float32{1, 1, 1}, Intensity: 3}, [3]float32{1, 1, 1}},
		{"negative", PointLight{Color: [3]float32{1, 1, 1}, Intensity: -1}, [3]float32{0, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.light.Radiance()
			for i := range got {
				if math.Abs(float64(got[i]-tt.want[i])) > 1e-6 {
					t.Errorf("Radiance() = %v, want %v", got, tt.want)
					break
				}
			}
		})
	}
}

func TestDirectionFrom(t *testing.T) {
	l := PointLight{Position: mgl64.Vec3{-200, 0, 0}}

	got := l.DirectionFrom(mgl64.Vec3{20, 0, 0})
	if got.Sub(mgl64.Vec3{-1, 0, 0}).Len() > 1e-12 {
		t.Errorf("DirectionFrom() = %v, want (-1, 0, 0)", got)
	}
	if got := l.DirectionFrom(l.Position); got != (mgl64.Vec3{}) {
		t.Errorf("DirectionFrom(light position) = %v, want zero", got)
	}
}

func TestIlluminance(t *testing.T) {
	r := Rig{
		Ambient: 0.1,
		Key:     PointLight{Position: mgl64.Vec3{-200, 0, 0}, Color: [3]float32{1, 1, 1}, Intensity: 0.5},
	}

	tests := []struct {
		name string
		p, n mgl64.Vec3
		want float32
	}{
		{"facing the light", mgl64.Vec3{-20, 0, 0}, mgl64.Vec3{-1, 0, 0}, 0.6},
		{"night side", mgl64.Vec3{20, 0, 0}, mgl64.Vec3{1, 0, 0}, 0.1},
		{"unnormalised normal", mgl64.Vec3{-20, 0, 0}, mgl64.Vec3{-5, 0, 0}, 0.6},
		{"zero normal", mgl64.Vec3{-20, 0, 0}, mgl64.Vec3{}, 0.1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Illuminance(tt.p, tt.n); math.Abs(float64(got-tt.want)) > 1e-6 {
				t.Errorf("Illuminance() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDefault(t *testing.T) {
	r := Default()
	if r.Ambient != 0.01 || r.Key.Intensity != 0.6 {
		t.Errorf("Default() = %+v", r)
	}
	if r.Key.Position != (mgl64.Vec3{-200, 50, 50}) {
		t.Errorf("key light at %v, want (-200, 50, 50)", r.Key.Position)
	}
}
