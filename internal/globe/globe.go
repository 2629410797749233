// Package globe runs the per-frame logic of the planet viewer: turning
// clicks into coordinates, keeping coordinate labels beside their markers
// and adapting the zoom speed to the camera distance.
//
// Everything happens inside Tick, synchronously, against the camera state
// handed in for that frame. Rendering and UI layout stay with the caller.
package globe

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/Faultbox/planetview/internal/config"
	"github.com/Faultbox/planetview/internal/engine/anchor"
	"github.com/Faultbox/planetview/internal/engine/camera"
	"github.com/Faultbox/planetview/internal/engine/picking"
	"github.com/Faultbox/planetview/internal/logger"
	"github.com/Faultbox/planetview/pkg/sphere"
)

// Anchor names used in placements.
const (
	BaseLabel    = "base"
	ClickedLabel = "clicked"
)

// Pointer is a pointer-up event in viewport pixels.
type Pointer struct {
	X, Y float64
}

// Input is everything a tick reads.
type Input struct {
	Ready    bool // scene assets finished loading
	Camera   camera.State
	Viewport camera.Viewport
	Pointers []Pointer
	Wheel    []float64 // wheel deltaY values, browser convention
	Elapsed  time.Duration
}

// Output is everything a tick produces for the host.
type Output struct {
	Base sphere.AngularCoordinate

	// Clicked is set when a pick succeeded this tick.
	Clicked       *sphere.AngularCoordinate
	ClickedMarker *sphere.SpherePoint

	BaseLabelVisible bool
	Labels           []anchor.Placement

	ZoomSpeed   float64
	ZoomChanged bool

	// Rotation about +Y for the planet and cloud meshes.
	PlanetSpin float64
	CloudSpin  float64
}

// marker is a point on the globe surface that a label follows.
type marker struct {
	pos mgl64.Vec3
}

func (m *marker) WorldPosition() mgl64.Vec3 {
	return m.pos
}

// Globe holds the viewer state that outlives a single frame.
type Globe struct {
	log      *zap.Logger
	provider picking.IntersectionProvider

	radius     float64
	planetSpin float64
	cloudSpin  float64

	base          sphere.AngularCoordinate
	clicked       sphere.AngularCoordinate
	baseMarker    *marker
	clickedMarker *marker

	baseAnchor    *anchor.Anchor
	clickedAnchor *anchor.Anchor
	projector     *anchor.Projector
	zoom          *camera.ZoomRate
}

// New creates the globe state. provider stands in for the renderer's
// raycaster; baseLabel and clickedLabel may be nil.
func New(cfg *config.Config, provider picking.IntersectionProvider, baseLabel, clickedLabel anchor.Element) *Globe {
	g := &Globe{
		log:           logger.Named("globe"),
		provider:      provider,
		baseMarker:    &marker{},
		clickedMarker: &marker{},
		projector:     anchor.NewProjector(cfg.Labels.Offset()),
		zoom:          camera.NewZoomRate(cfg.Zoom.RateConfig(), cfg.Camera.ZoomSpeed),
	}

	g.clickedAnchor = &anchor.Anchor{Name: ClickedLabel, Element: clickedLabel}
	g.baseAnchor = &anchor.Anchor{Name: BaseLabel, Target: g.baseMarker, Element: baseLabel}
	g.projector.Register(g.clickedAnchor)
	g.projector.Register(g.baseAnchor)

	g.ApplySettings(cfg)
	// Until something is clicked the clicked readout shows the base.
	g.clicked = g.base

	g.log.Info("globe ready",
		zap.Float64("radius", g.radius),
		zap.Stringer("base", g.base),
	)
	return g
}

// ApplySettings re-derives everything that comes from configuration.
// The clicked location survives and its marker is moved onto the new radius.
func (g *Globe) ApplySettings(cfg *config.Config) {
	g.radius = cfg.Globe.Radius
	g.planetSpin = cfg.Globe.PlanetSpin
	g.cloudSpin = cfg.Globe.CloudSpin

	g.base = sphere.AngularCoordinate{
		PolarDeg:   cfg.Globe.BasePolarDeg,
		AzimuthDeg: cfg.Globe.BaseAzimuth,
	}
	g.baseMarker.pos = sphere.Forward(g.base.PolarDeg, g.base.AzimuthDeg, g.radius).Vec3()
	if g.clickedAnchor.Target != nil {
		g.clickedMarker.pos = sphere.Forward(g.clicked.PolarDeg, g.clicked.AzimuthDeg, g.radius).Vec3()
	}

	g.projector.SetOffset(cfg.Labels.Offset())
	g.zoom.SetConfig(cfg.Zoom.RateConfig())

	if p, ok := g.provider.(*picking.SphereSurface); ok {
		p.Radius = g.radius
	}
}

// Base returns the player's base location.
func (g *Globe) Base() sphere.AngularCoordinate {
	return g.base
}

// Clicked returns the last clicked location and whether anything has been
// clicked yet. Before the first click it returns the base location.
func (g *Globe) Clicked() (sphere.AngularCoordinate, bool) {
	return g.clicked, g.clickedAnchor.Target != nil
}

// Markers returns the world positions of the visible surface markers:
// the base, then the clicked location once there is one.
func (g *Globe) Markers() []mgl64.Vec3 {
	out := []mgl64.Vec3{g.baseMarker.pos}
	if g.clickedAnchor.Target != nil {
		out = append(out, g.clickedMarker.pos)
	}
	return out
}

// ZoomSpeed returns the current zoom speed.
func (g *Globe) ZoomSpeed() float64 {
	return g.zoom.Speed()
}

// Tick advances one frame: picks, then zoom, then label projection, all
// against in.Camera, so labels never lag their markers.
func (g *Globe) Tick(in Input) Output {
	out := Output{
		Base:             g.base,
		BaseLabelVisible: in.Ready,
		ZoomSpeed:        g.zoom.Speed(),
	}

	scene := picking.Scene{Ready: in.Ready, Camera: in.Camera, Viewport: in.Viewport}
	for _, p := range in.Pointers {
		coord, ok := picking.Pick(scene, p.X, p.Y, g.provider)
		if !ok {
			continue
		}
		g.setClicked(coord)
		c := g.clicked
		m := sphere.PointFromVec3(g.clickedMarker.pos)
		out.Clicked, out.ClickedMarker = &c, &m
	}

	for _, dy := range in.Wheel {
		if speed, ok := g.zoom.OnWheel(dy, in.Camera.DistanceToOrigin()); ok {
			out.ZoomSpeed, out.ZoomChanged = speed, true
		}
	}

	out.Labels = g.projector.UpdateAll(in.Camera, in.Viewport)

	secs := in.Elapsed.Seconds()
	out.PlanetSpin = g.planetSpin * secs
	out.CloudSpin = g.cloudSpin * secs
	return out
}

func (g *Globe) setClicked(coord sphere.AngularCoordinate) {
	g.clicked = coord
	g.clickedMarker.pos = sphere.Forward(coord.PolarDeg, coord.AzimuthDeg, g.radius).Vec3()
	g.clickedAnchor.Target = g.clickedMarker

	g.log.Debug("clicked location", zap.Stringer("coord", coord))
}
