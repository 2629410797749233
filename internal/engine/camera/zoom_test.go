package camera

import (
	"math"
	"testing"
)

func TestZoomRateOnWheel(t *testing.T) {
	tests := []struct {
		name     string
		deltaY   float64
		distance float64
		want     float64
		changed  bool
	}{
		{"zoom in", -100, 40, 1.0, true},
		{"zoom out", 100, 40, 1.6, true},
		{"zoom in at max distance", -100, 70, 2.5, true},
		{"zoom out near surface", 100, 20.3, 0.024, true},
		{"unrecognised delta", 50, 40, 0.7, false},
		{"trackpad delta", -3.5, 40, 0.7, false},
		{"double notch", 200, 40, 0.7, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			z := NewZoomRate(DefaultZoomRateConfig(), 0.7)
			got, changed := z.OnWheel(tt.deltaY, tt.distance)
			if changed != tt.changed {
				t.Errorf("OnWheel() changed = %v, want %v", changed, tt.changed)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("OnWheel() = %v, want %v", got, tt.want)
			}
			if z.Speed() != got {
				t.Errorf("Speed() = %v, want %v", z.Speed(), got)
			}
		})
	}
}

func TestZoomRateKeepsPriorSpeed(t *testing.T) {
	z := NewZoomRate(DefaultZoomRateConfig(), 1)
	z.OnWheel(100, 40)
	z.OnWheel(50, 60)
	if math.Abs(z.Speed()-1.6) > 1e-9 {
		t.Errorf("Speed() = %v, want 1.6 from the last recognised event", z.Speed())
	}
}
