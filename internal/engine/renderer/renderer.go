// Package renderer owns the OpenGL frame and draws the globe into it.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/planetview/internal/engine/camera"
	"github.com/Faultbox/planetview/internal/logger"
)

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	Background [3]float32
}

// Renderer handles per-frame OpenGL state.
type Renderer struct {
	width, height int
	globe         *GlobePass
}

// New initializes OpenGL.
// Must be called after the OpenGL context is created.
func New(cfg Config) (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.PROGRAM_POINT_SIZE)
	gl.ClearColor(cfg.Background[0], cfg.Background[1], cfg.Background[2], 1.0)

	globe, err := NewGlobePass()
	if err != nil {
		return nil, err
	}

	r := &Renderer{globe: globe}
	r.Resize(cfg.Width, cfg.Height)
	return r, nil
}

// Resize updates the GL viewport after a window resize.
func (r *Renderer) Resize(width, height int) {
	r.width, r.height = width, height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("viewport resized", zap.Int("width", width), zap.Int("height", height))
}

// Viewport returns the current viewport in pixels.
func (r *Renderer) Viewport() camera.Viewport {
	return camera.Viewport{Width: float64(r.width), Height: float64(r.height)}
}

// Begin clears the frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// ReadPixels reads the current framebuffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	pixels := make([]byte, r.width*r.height*4)
	if len(pixels) == 0 {
		return pixels, r.width, r.height
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(r.width), int32(r.height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, r.width, r.height
}

// DrawGlobe draws the planet, clouds and markers.
func (r *Renderer) DrawGlobe(f GlobeFrame) {
	r.globe.Draw(f)
}

// Close releases renderer resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	if r.globe != nil {
		r.globe.Destroy()
		r.globe = nil
	}
}
