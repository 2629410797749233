// Package config handles viewer configuration loading and management.
package config

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/planetview/internal/engine/anchor"
	"github.com/Faultbox/planetview/internal/engine/camera"
	"github.com/Faultbox/planetview/internal/engine/lighting"
)

// Config holds all viewer settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Globe    GlobeConfig    `yaml:"globe"`
	Camera   CameraConfig   `yaml:"camera"`
	Lighting LightingConfig `yaml:"lighting"`
	Labels   LabelConfig    `yaml:"labels"`
	Zoom     ZoomConfig     `yaml:"zoom"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display settings.
type GraphicsConfig struct {
	Width      int        `yaml:"width"`
	Height     int        `yaml:"height"`
	Fullscreen bool       `yaml:"fullscreen"`
	VSync      bool       `yaml:"vsync"`
	Background [3]float32 `yaml:"background"`

	// ScreenshotDir is where F12 captures are written.
	ScreenshotDir string `yaml:"screenshot_dir"`
}

// GlobeConfig describes the planet and the player's base on it.
type GlobeConfig struct {
	Radius        float64 `yaml:"radius"`
	BasePolarDeg  float64 `yaml:"base_polar_deg"`
	BaseAzimuth   float64 `yaml:"base_azimuth_deg"`
	PlanetSpin    float64 `yaml:"planet_spin"` // radians per second about +Y
	CloudSpin     float64 `yaml:"cloud_spin"`
	CloudAltitude float64 `yaml:"cloud_altitude"`
}

// CameraConfig holds the orbit camera settings.
type CameraConfig struct {
	Position    [3]float64 `yaml:"position"`
	FovYDeg     float64    `yaml:"fov_deg"`
	Near        float64    `yaml:"near"`
	Far         float64    `yaml:"far"`
	MinDistance float64    `yaml:"min_distance"`
	MaxDistance float64    `yaml:"max_distance"`
	ZoomSpeed   float64    `yaml:"zoom_speed"`
}

// LightingConfig holds the ambient term and the key point light.
type LightingConfig struct {
	Ambient        float32    `yaml:"ambient"`
	LightPosition  [3]float64 `yaml:"light_position"`
	LightColor     [3]float32 `yaml:"light_color"`
	LightIntensity float32    `yaml:"light_intensity"`
}

// LabelConfig controls where coordinate labels float relative to their marker.
type LabelConfig struct {
	OffsetScale  float64 `yaml:"offset_scale"`
	OffsetHeight float64 `yaml:"offset_height"`
}

// ZoomConfig holds the wheel zoom-speed curve.
type ZoomConfig struct {
	BaseDistance float64 `yaml:"base_distance"`
	Span         float64 `yaml:"span"`
	InFactor     float64 `yaml:"in_factor"`
	OutFactor    float64 `yaml:"out_factor"`
	Step         float64 `yaml:"step"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			Background: [3]float32{0, 0, 0},

			ScreenshotDir: "screenshots",
		},
		Globe: GlobeConfig{
			Radius:        20,
			BasePolarDeg:  44.4379186,
			BaseAzimuth:   26.0120663,
			PlanetSpin:    0.02,
			CloudSpin:     0.03,
			CloudAltitude: 0.4,
		},
		Camera: CameraConfig{
			Position:    [3]float64{-50, 0, 2},
			FovYDeg:     75,
			Near:        0.1,
			Far:         1000,
			MinDistance: 20.3,
			MaxDistance: 70,
			ZoomSpeed:   1,
		},
		Lighting: lightingDefaults(),
		Labels: LabelConfig{
			OffsetScale:  0.5,
			OffsetHeight: 2.5,
		},
		Zoom: ZoomConfig{
			BaseDistance: 20,
			Span:         50,
			InFactor:     2.5,
			OutFactor:    4,
			Step:         100,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Lens returns the camera projection settings.
func (c CameraConfig) Lens() camera.Lens {
	return camera.Lens{FovYDeg: c.FovYDeg, Near: c.Near, Far: c.Far}
}

// NewOrbitCamera builds the orbit camera described by c.
func (c CameraConfig) NewOrbitCamera() *camera.OrbitCamera {
	cam := camera.NewOrbitCamera(mgl64.Vec3(c.Position), c.Lens())
	cam.MinDistance = c.MinDistance
	cam.MaxDistance = c.MaxDistance
	cam.ZoomSpeed = c.ZoomSpeed
	return cam
}

func lightingDefaults() LightingConfig {
	r := lighting.Default()
	return LightingConfig{
		Ambient:        r.Ambient,
		LightPosition:  [3]float64(r.Key.Position),
		LightColor:     r.Key.Color,
		LightIntensity: r.Key.Intensity,
	}
}

// Rig returns the light setup.
func (l LightingConfig) Rig() lighting.Rig {
	return lighting.Rig{
		Ambient: l.Ambient,
		Key: lighting.PointLight{
			Position:  mgl64.Vec3(l.LightPosition),
			Color:     l.LightColor,
			Intensity: l.LightIntensity,
		},
	}
}

// Offset returns the label offset.
func (l LabelConfig) Offset() anchor.Offset {
	o := anchor.DefaultOffset()
	o.Scale = l.OffsetScale
	o.Height = l.OffsetHeight
	return o
}

// RateConfig returns the zoom-speed curve.
func (z ZoomConfig) RateConfig() camera.ZoomRateConfig {
	return camera.ZoomRateConfig{
		BaseDistance: z.BaseDistance,
		Span:         z.Span,
		InFactor:     z.InFactor,
		OutFactor:    z.OutFactor,
		Step:         z.Step,
	}
}
