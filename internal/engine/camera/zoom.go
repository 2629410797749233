package camera

// ZoomRateConfig holds the constants of the wheel-driven zoom speed curve.
type ZoomRateConfig struct {
	BaseDistance float64 // distance at which zoom speed reaches zero (globe radius)
	Span         float64 // distance range the speed is normalised over
	InFactor     float64 // multiplier for a zoom-in notch
	OutFactor    float64 // multiplier for a zoom-out notch
	Step         float64 // the only wheel delta magnitude recognised
}

// DefaultZoomRateConfig returns the curve tuned for a radius-20 globe.
func DefaultZoomRateConfig() ZoomRateConfig {
	return ZoomRateConfig{
		BaseDistance: 20,
		Span:         50,
		InFactor:     2.5,
		OutFactor:    4,
		Step:         100,
	}
}

// ZoomRate derives the camera zoom speed from wheel events, so zooming
// slows down as the camera nears the surface.
type ZoomRate struct {
	cfg   ZoomRateConfig
	speed float64
}

// NewZoomRate creates a controller starting at the given speed.
func NewZoomRate(cfg ZoomRateConfig, initial float64) *ZoomRate {
	return &ZoomRate{cfg: cfg, speed: initial}
}

// Speed returns the current zoom speed.
func (z *ZoomRate) Speed() float64 {
	return z.speed
}

// SetConfig replaces the curve constants, keeping the current speed.
func (z *ZoomRate) SetConfig(cfg ZoomRateConfig) {
	z.cfg = cfg
}

// OnWheel updates the speed for a wheel delta at the given camera distance.
// Only deltas of exactly -Step and +Step are recognised; anything else
// (trackpads, multi-notch events) leaves the speed unchanged and returns false.
func (z *ZoomRate) OnWheel(deltaY, distance float64) (float64, bool) {
	var factor float64
	switch deltaY {
	case -z.cfg.Step:
		factor = z.cfg.InFactor
	case z.cfg.Step:
		factor = z.cfg.OutFactor
	default:
		return z.speed, false
	}

	z.speed = (distance - z.cfg.BaseDistance) / z.cfg.Span * factor
	return z.speed, true
}
