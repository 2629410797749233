// globetool is a CLI utility for checking globe coordinate math.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/planetview/internal/config"
	"github.com/Faultbox/planetview/internal/engine/anchor"
	"github.com/Faultbox/planetview/internal/engine/camera"
	"github.com/Faultbox/planetview/internal/engine/picking"
	"github.com/Faultbox/planetview/pkg/sphere"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	keyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Width(12)
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("229"))
	missStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "forward", "fwd":
		cmdForward(args)
	case "inverse", "inv":
		cmdInverse(args)
	case "pick":
		cmdPick(args)
	case "project":
		cmdProject(args)
	case "zoom":
		cmdZoom(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`globetool - globe coordinate utility

Usage:
  globetool <command> [options] <args>

Commands:
  forward [-r radius] <polar> <azimuth>              Angles (degrees) to a surface point
  inverse <x> <y> <z>                                Point to angles (degrees)
  pick [view options] <px> <py>                      Pixel to the clicked angles
  project [view options] <polar> <azimuth>           Where a marker's label lands on screen
  zoom [-speed s] <deltaY> <distance>                Zoom speed after a wheel event

View options:
  -width, -height    viewport size in pixels (default from config)
  -camera x,y,z      camera position (default from config)
  -config path       config file to take defaults from

Put -- before arguments that start with a minus sign.

Examples:
  globetool forward 44.4379186 26.0120663
  globetool inverse -- -12.5 6.1 14.3
  globetool pick -camera 40,0,0 640 360
  globetool zoom -speed 1 -- -100 40`)
}

func fail(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}

func parseFloats(args []string, n int, usage string) []float64 {
	if len(args) != n {
		fail("Usage: globetool %s", usage)
	}
	out := make([]float64, n)
	for i, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			fail("Error: %q is not a number", a)
		}
		out[i] = v
	}
	return out
}

func printBlock(title string, rows ...[2]string) {
	fmt.Println(titleStyle.Render(title))
	for _, r := range rows {
		fmt.Println(keyStyle.Render(r[0]) + valueStyle.Render(r[1]))
	}
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func cmdForward(args []string) {
	fs := flag.NewFlagSet("forward", flag.ExitOnError)
	radius := fs.Float64("r", config.Default().Globe.Radius, "Sphere radius")
	fs.Parse(args)

	v := parseFloats(fs.Args(), 2, "forward [-r radius] <polar> <azimuth>")
	p := sphere.Forward(v[0], v[1], *radius)

	printBlock("Surface point",
		[2]string{"x", num(p.X)},
		[2]string{"y", num(p.Y)},
		[2]string{"z", num(p.Z)},
		[2]string{"|p|", num(p.Length())},
	)
}

func cmdInverse(args []string) {
	fs := flag.NewFlagSet("inverse", flag.ExitOnError)
	fs.Parse(args)

	v := parseFloats(fs.Args(), 3, "inverse <x> <y> <z>")
	p := sphere.SpherePoint{X: v[0], Y: v[1], Z: v[2]}
	if p.Length() == 0 {
		fail("Error: the origin has no angular coordinate")
	}

	c := sphere.Inverse(p)
	printBlock("Angular coordinate",
		[2]string{"polar", num(c.PolarDeg)},
		[2]string{"azimuth", num(c.AzimuthDeg)},
		[2]string{"label", c.String()},
	)
}

// viewFlags registers the options shared by pick and project.
type viewFlags struct {
	configPath *string
	width      *int
	height     *int
	camera     *string
}

func addViewFlags(fs *flag.FlagSet) viewFlags {
	return viewFlags{
		configPath: fs.String("config", "", "Config file"),
		width:      fs.Int("width", 0, "Viewport width"),
		height:     fs.Int("height", 0, "Viewport height"),
		camera:     fs.String("camera", "", "Camera position x,y,z"),
	}
}

func (f viewFlags) resolve() (*config.Config, camera.State, camera.Viewport) {
	cfg := config.Default()
	if *f.configPath != "" {
		loaded, err := config.LoadFile(*f.configPath)
		if err != nil {
			fail("Error: %v", err)
		}
		cfg = loaded
	}

	vp := camera.Viewport{Width: float64(cfg.Graphics.Width), Height: float64(cfg.Graphics.Height)}
	if *f.width > 0 {
		vp.Width = float64(*f.width)
	}
	if *f.height > 0 {
		vp.Height = float64(*f.height)
	}

	cam := cfg.Camera.NewOrbitCamera()
	if *f.camera != "" {
		parts := strings.Split(*f.camera, ",")
		pos := parseFloats(parts, 3, "-camera x,y,z")
		cam.SetPosition(mgl64.Vec3{pos[0], pos[1], pos[2]})
	}
	return cfg, cam.State(vp), vp
}

func cmdPick(args []string) {
	fs := flag.NewFlagSet("pick", flag.ExitOnError)
	view := addViewFlags(fs)
	fs.Parse(args)

	v := parseFloats(fs.Args(), 2, "pick [view options] <px> <py>")
	cfg, cam, vp := view.resolve()

	scene := picking.Scene{Ready: true, Camera: cam, Viewport: vp}
	c, ok := picking.Pick(scene, v[0], v[1], picking.SphereSurface{Radius: cfg.Globe.Radius})
	if !ok {
		fmt.Println(missStyle.Render("No hit: the pointer ray misses the globe"))
		os.Exit(2)
	}

	p := sphere.Forward(c.PolarDeg, c.AzimuthDeg, cfg.Globe.Radius)
	lit := cfg.Lighting.Rig().Illuminance(p.Vec3(), p.Vec3())
	printBlock("Picked",
		[2]string{"polar", num(c.PolarDeg)},
		[2]string{"azimuth", num(c.AzimuthDeg)},
		[2]string{"marker", fmt.Sprintf("(%s, %s, %s)", num(p.X), num(p.Y), num(p.Z))},
		[2]string{"daylight", strconv.FormatFloat(float64(lit), 'f', 3, 32)},
	)
}

func cmdProject(args []string) {
	fs := flag.NewFlagSet("project", flag.ExitOnError)
	view := addViewFlags(fs)
	fs.Parse(args)

	v := parseFloats(fs.Args(), 2, "project [view options] <polar> <azimuth>")
	cfg, cam, vp := view.resolve()

	marker := sphere.Forward(v[0], v[1], cfg.Globe.Radius)
	proj := anchor.NewProjector(cfg.Labels.Offset())
	px, _ := proj.Update(&anchor.Anchor{Target: anchor.Fixed(marker.Vec3())}, cam, vp)

	onScreen := px.X >= 0 && px.X <= vp.Width && px.Y >= 0 && px.Y <= vp.Height
	printBlock("Label position",
		[2]string{"x", num(px.X)},
		[2]string{"y", num(px.Y)},
		[2]string{"on screen", strconv.FormatBool(onScreen)},
	)
}

func cmdZoom(args []string) {
	fs := flag.NewFlagSet("zoom", flag.ExitOnError)
	speed := fs.Float64("speed", config.Default().Camera.ZoomSpeed, "Zoom speed before the event")
	fs.Parse(args)

	v := parseFloats(fs.Args(), 2, "zoom [-speed s] <deltaY> <distance>")
	rate := camera.NewZoomRate(config.Default().Zoom.RateConfig(), *speed)
	got, changed := rate.OnWheel(v[0], v[1])

	printBlock("Zoom speed",
		[2]string{"speed", num(got)},
		[2]string{"changed", strconv.FormatBool(changed)},
	)
}
