package globe

import (
	"math"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/planetview/internal/config"
	"github.com/Faultbox/planetview/internal/engine/camera"
	"github.com/Faultbox/planetview/internal/engine/picking"
	"github.com/Faultbox/planetview/pkg/sphere"
)

type label struct {
	x, y  float64
	calls int
}

func (l *label) SetPosition(x, y float64) {
	l.x, l.y = x, y
	l.calls++
}

func frame(cfg *config.Config, ready bool) Input {
	vp := camera.Viewport{Width: 800, Height: 600}
	cam := cfg.Camera.NewOrbitCamera()
	cam.SetPosition(mgl64.Vec3{40, 0, 0})
	return Input{Ready: ready, Camera: cam.State(vp), Viewport: vp}
}

func newGlobe(t *testing.T) (*Globe, *config.Config, *label, *label) {
	t.Helper()
	cfg := config.Default()
	base, clicked := &label{}, &label{}
	return New(cfg, &picking.SphereSurface{Radius: cfg.Globe.Radius}, base, clicked), cfg, base, clicked
}

func TestInitialState(t *testing.T) {
	g, _, _, _ := newGlobe(t)

	want := sphere.AngularCoordinate{PolarDeg: 44.4379186, AzimuthDeg: 26.0120663}
	if g.Base() != want {
		t.Errorf("Base() = %+v, want %+v", g.Base(), want)
	}
	clicked, ok := g.Clicked()
	if ok {
		t.Error("Clicked() reports a click before any pointer event")
	}
	if clicked != want {
		t.Errorf("Clicked() = %+v, want the base location", clicked)
	}
	if g.ZoomSpeed() != 1 {
		t.Errorf("ZoomSpeed() = %v, want 1", g.ZoomSpeed())
	}
}

func TestTickNotReady(t *testing.T) {
	g, cfg, base, clicked := newGlobe(t)

	in := frame(cfg, false)
	in.Pointers = []Pointer{{X: 400, Y: 300}}
	out := g.Tick(in)

	if out.Clicked != nil {
		t.Errorf("pick went through before the scene was ready: %+v", *out.Clicked)
	}
	if out.BaseLabelVisible {
		t.Error("base label visible before the scene was ready")
	}
	if clicked.calls != 0 {
		t.Errorf("clicked label moved %d times, want 0", clicked.calls)
	}
	// The base marker is still tracked every frame.
	if base.calls != 1 {
		t.Errorf("base label moved %d times, want 1", base.calls)
	}
}

func TestTickPick(t *testing.T) {
	g, cfg, _, clicked := newGlobe(t)

	in := frame(cfg, true)
	in.Pointers = []Pointer{{X: 400, Y: 300}}
	out := g.Tick(in)

	if out.Clicked == nil {
		t.Fatal("expected a pick through the screen centre")
	}
	if math.Abs(out.Clicked.PolarDeg-90) > 1e-6 || math.Abs(out.Clicked.AzimuthDeg) > 1e-6 {
		t.Errorf("Clicked = %+v, want {90 0}", *out.Clicked)
	}
	if out.ClickedMarker == nil || math.Abs(out.ClickedMarker.X-20) > 1e-6 {
		t.Errorf("ClickedMarker = %+v, want on the surface at (20, 0, 0)", out.ClickedMarker)
	}

	// The clicked label is placed in the same tick as the pick.
	if len(out.Labels) != 2 || out.Labels[0].Name != ClickedLabel || out.Labels[1].Name != BaseLabel {
		t.Fatalf("Labels = %+v, want clicked then base", out.Labels)
	}
	if clicked.calls != 1 || clicked.x != out.Labels[0].X || clicked.y != out.Labels[0].Y {
		t.Errorf("clicked label at (%v, %v), placement %+v", clicked.x, clicked.y, out.Labels[0])
	}

	got, ok := g.Clicked()
	if !ok || got != *out.Clicked {
		t.Errorf("Clicked() = %+v, %v", got, ok)
	}
}

func TestTickMissKeepsPreviousClick(t *testing.T) {
	g, cfg, _, _ := newGlobe(t)

	in := frame(cfg, true)
	in.Pointers = []Pointer{{X: 400, Y: 300}}
	first := g.Tick(in)
	if first.Clicked == nil {
		t.Fatal("expected first pick to hit")
	}

	in.Pointers = []Pointer{{X: 0, Y: 0}}
	out := g.Tick(in)
	if out.Clicked != nil {
		t.Errorf("miss produced a coordinate: %+v", *out.Clicked)
	}
	got, ok := g.Clicked()
	if !ok || got != *first.Clicked {
		t.Errorf("Clicked() = %+v, want unchanged %+v", got, *first.Clicked)
	}
}

func TestTickZoom(t *testing.T) {
	g, cfg, _, _ := newGlobe(t)

	in := frame(cfg, true)
	in.Wheel = []float64{-100}
	out := g.Tick(in)
	if !out.ZoomChanged || math.Abs(out.ZoomSpeed-1.0) > 1e-9 {
		t.Errorf("zoom in at 40: speed %v changed %v, want 1.0", out.ZoomSpeed, out.ZoomChanged)
	}

	in.Wheel = []float64{100}
	out = g.Tick(in)
	if !out.ZoomChanged || math.Abs(out.ZoomSpeed-1.6) > 1e-9 {
		t.Errorf("zoom out at 40: speed %v, want 1.6", out.ZoomSpeed)
	}

	in.Wheel = []float64{50}
	out = g.Tick(in)
	if out.ZoomChanged || math.Abs(out.ZoomSpeed-1.6) > 1e-9 {
		t.Errorf("unrecognised delta: speed %v changed %v, want 1.6 unchanged", out.ZoomSpeed, out.ZoomChanged)
	}
}

func TestTickSpin(t *testing.T) {
	g, cfg, _, _ := newGlobe(t)

	in := frame(cfg, true)
	in.Elapsed = 10 * time.Second
	out := g.Tick(in)
	if math.Abs(out.PlanetSpin-0.2) > 1e-12 || math.Abs(out.CloudSpin-0.3) > 1e-12 {
		t.Errorf("spin = %v/%v, want 0.2/0.3", out.PlanetSpin, out.CloudSpin)
	}
}

func TestApplySettingsKeepsClick(t *testing.T) {
	g, cfg, _, _ := newGlobe(t)

	in := frame(cfg, true)
	in.Pointers = []Pointer{{X: 400, Y: 300}}
	picked := g.Tick(in).Clicked

	next := config.Default()
	next.Globe.Radius = 25
	next.Globe.BasePolarDeg = 10
	g.ApplySettings(next)

	if g.Base().PolarDeg != 10 {
		t.Errorf("Base() = %+v, want polar 10", g.Base())
	}
	got, ok := g.Clicked()
	if !ok || got != *picked {
		t.Errorf("Clicked() = %+v after reload, want %+v", got, *picked)
	}
	if l := g.clickedMarker.pos.Len(); math.Abs(l-25) > 1e-9 {
		t.Errorf("clicked marker at radius %v, want 25", l)
	}
	if l := g.baseMarker.pos.Len(); math.Abs(l-25) > 1e-9 {
		t.Errorf("base marker at radius %v, want 25", l)
	}
}

func TestMarkers(t *testing.T) {
	g, cfg, _, _ := newGlobe(t)

	markers := g.Markers()
	if len(markers) != 1 {
		t.Fatalf("Markers() before a click = %d points, want 1", len(markers))
	}
	if math.Abs(markers[0].Len()-cfg.Globe.Radius) > 1e-9 {
		t.Errorf("base marker |p| = %v, want %v", markers[0].Len(), cfg.Globe.Radius)
	}

	in := frame(cfg, true)
	in.Pointers = []Pointer{{X: 400, Y: 300}}
	g.Tick(in)

	markers = g.Markers()
	if len(markers) != 2 {
		t.Fatalf("Markers() after a click = %d points, want 2", len(markers))
	}
	if markers[1].Sub(mgl64.Vec3{20, 0, 0}).Len() > 1e-6 {
		t.Errorf("clicked marker = %v, want (20, 0, 0)", markers[1])
	}
}
