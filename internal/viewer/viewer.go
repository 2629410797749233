// Package viewer runs the windowed globe viewer main loop.
package viewer

import (
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/planetview/internal/config"
	"github.com/Faultbox/planetview/internal/engine/camera"
	"github.com/Faultbox/planetview/internal/engine/input"
	"github.com/Faultbox/planetview/internal/engine/picking"
	"github.com/Faultbox/planetview/internal/engine/renderer"
	"github.com/Faultbox/planetview/internal/engine/screenshot"
	"github.com/Faultbox/planetview/internal/engine/ui2d"
	"github.com/Faultbox/planetview/internal/engine/window"
	"github.com/Faultbox/planetview/internal/globe"
	"github.com/Faultbox/planetview/internal/logger"
	"github.com/Faultbox/planetview/pkg/sphere"
)

const title = "PlanetView"

// Viewer is the windowed host around the globe.
type Viewer struct {
	cfg      *config.Config
	running  bool
	window   *window.Window
	renderer *renderer.Renderer
	ui       *ui2d.Renderer
	batch    *ui2d.Batch
	input    *input.Input
	camera   *camera.OrbitCamera
	globe    *globe.Globe
	watcher  *config.Watcher
	clip     *coordClipboard
	shots    *screenshot.Capture

	baseLabel    *ui2d.Label
	clickedLabel *ui2d.Label
}

// New creates the window and globe. configPath is watched for changes
// when watch is set and the path is non-empty.
func New(cfg *config.Config, configPath string, watch bool) (*Viewer, error) {
	v := &Viewer{
		cfg:          cfg,
		batch:        ui2d.NewBatch(),
		baseLabel:    ui2d.NewLabel(""),
		clickedLabel: ui2d.NewLabel(""),
	}
	v.clickedLabel.Style.Border = ui2d.ColorHighlight

	var err error
	v.window, err = window.New(window.Config{
		Title:      title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	width, height := v.window.Size()
	v.renderer, err = renderer.New(renderer.Config{
		Width:      width,
		Height:     height,
		Background: cfg.Graphics.Background,
	})
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	v.ui, err = ui2d.New(width, height)
	if err != nil {
		v.renderer.Close()
		v.window.Close()
		return nil, fmt.Errorf("failed to create UI renderer: %w", err)
	}

	if watch && configPath != "" {
		v.watcher, err = config.Watch(configPath)
		if err != nil {
			logger.Warn("config hot reload disabled", zap.String("path", configPath), zap.Error(err))
		}
	}

	v.input = input.New()
	v.clip = newCoordClipboard()
	v.shots = screenshot.New(cfg.Graphics.ScreenshotDir, "planetview")
	v.camera = cfg.Camera.NewOrbitCamera()
	v.globe = globe.New(cfg, &picking.SphereSurface{Radius: cfg.Globe.Radius}, v.baseLabel, v.clickedLabel)

	v.baseLabel.Text = v.globe.Base().String()
	clicked, _ := v.globe.Clicked()
	v.clickedLabel.Text = clicked.String()
	v.setTitle(clicked)
	return v, nil
}

// Run starts the main loop.
func (v *Viewer) Run() error {
	v.running = true
	start := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	// There are no assets to stream in; the scene is ready once the
	// first frame has been presented.
	ready := false

	logger.Info("starting main loop")
	for v.running {
		v.drainReloads()

		if v.input.Update() {
			v.running = false
			break
		}

		var in globe.Input
		capture := false
		for _, event := range v.input.Events() {
			switch event.Type {
			case input.EventWindowResize:
				v.renderer.Resize(event.Width, event.Height)
				v.ui.Resize(event.Width, event.Height)
			case input.EventKeyDown:
				switch event.Key {
				case sdl.SCANCODE_ESCAPE:
					v.running = false
				case sdl.SCANCODE_C:
					clicked, _ := v.globe.Clicked()
					v.clip.Copy(clicked)
				case sdl.SCANCODE_F12:
					capture = true
				}
			case input.EventDrag:
				v.camera.HandleDrag(event.DeltaX, event.DeltaY)
			case input.EventPointerUp:
				in.Pointers = append(in.Pointers, globe.Pointer{X: event.X, Y: event.Y})
			case input.EventWheel:
				v.camera.HandleZoom(event.DeltaY)
				in.Wheel = append(in.Wheel, event.DeltaY)
			}
		}

		vp := v.renderer.Viewport()
		in.Ready = ready
		in.Camera = v.camera.State(vp)
		in.Viewport = vp
		in.Elapsed = time.Since(start)

		out := v.globe.Tick(in)
		v.apply(out)

		v.renderer.Begin()
		v.renderer.DrawGlobe(renderer.GlobeFrame{
			ViewProjection: in.Camera.ViewProjection(),
			Radius:         v.cfg.Globe.Radius,
			CloudAltitude:  v.cfg.Globe.CloudAltitude,
			PlanetSpin:     out.PlanetSpin,
			CloudSpin:      out.CloudSpin,
			Markers:        v.globe.Markers(),
			Lights:         v.cfg.Lighting.Rig(),
		})
		v.drawLabels()
		if capture {
			v.saveScreenshot()
		}
		v.window.SwapBuffers()

		if !ready {
			ready = true
			v.camera.Enabled = true
			logger.Info("scene ready", zap.Stringer("base", out.Base))
		}

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			logger.Debug("frame stats",
				zap.Int("fps", frameCount),
				zap.Float64("camera_distance", in.Camera.DistanceToOrigin()),
				zap.Float64("zoom_speed", out.ZoomSpeed),
				zap.Float64("base_label_x", v.baseLabel.X),
				zap.Float64("base_label_y", v.baseLabel.Y),
				zap.Float64("planet_spin", out.PlanetSpin),
			)
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

// apply hands the tick's outputs to their consumers.
func (v *Viewer) apply(out globe.Output) {
	v.baseLabel.Text = out.Base.String()
	v.baseLabel.Visible = out.BaseLabelVisible
	if out.Clicked != nil {
		logger.Info("clicked location",
			zap.Float64("polar_deg", out.Clicked.PolarDeg),
			zap.Float64("azimuth_deg", out.Clicked.AzimuthDeg),
			zap.Float64("label_x", v.clickedLabel.X),
			zap.Float64("label_y", v.clickedLabel.Y),
		)
		v.clickedLabel.Text = out.Clicked.String()
		v.clickedLabel.Visible = true
		v.setTitle(*out.Clicked)
	}
	if out.ZoomChanged {
		v.camera.ZoomSpeed = out.ZoomSpeed
	}
}

// drawLabels draws the coordinate labels where the projector placed them.
func (v *Viewer) drawLabels() {
	v.batch.Reset()
	atlas := v.ui.Atlas()
	v.baseLabel.Queue(v.batch, atlas)
	v.clickedLabel.Queue(v.batch, atlas)
	v.ui.Draw(v.batch)
}

// saveScreenshot writes the frame drawn so far to disk.
func (v *Viewer) saveScreenshot() {
	pixels, w, h := v.renderer.ReadPixels()
	path, err := v.shots.SavePixels(pixels, w, h)
	if err != nil {
		logger.Warn("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", path))
}

// setTitle shows the clicked location in the title bar.
func (v *Viewer) setTitle(coord sphere.AngularCoordinate) {
	v.window.SetTitle(title + " | " + coord.String())
}

// drainReloads applies config changes picked up by the watcher.
func (v *Viewer) drainReloads() {
	if v.watcher == nil {
		return
	}
	for {
		select {
		case r, ok := <-v.watcher.Reloads:
			if !ok {
				v.watcher = nil
				return
			}
			if r.Err != nil {
				logger.Warn("config reload failed", zap.Error(r.Err))
				continue
			}
			v.cfg = r.Config
			v.globe.ApplySettings(r.Config)
			v.camera.MinDistance = r.Config.Camera.MinDistance
			v.camera.MaxDistance = r.Config.Camera.MaxDistance
			v.camera.Lens = r.Config.Camera.Lens()
			logger.Info("config reloaded")
		default:
			return
		}
	}
}

// Close cleans up viewer resources.
func (v *Viewer) Close() {
	logger.Info("closing viewer")

	if v.watcher != nil {
		_ = v.watcher.Close()
	}
	if v.ui != nil {
		v.ui.Close()
	}
	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}
