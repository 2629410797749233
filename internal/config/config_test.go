package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Faultbox/planetview/internal/engine/lighting"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Graphics.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Graphics.Height)
	}
	if !cfg.Graphics.VSync {
		t.Error("expected vsync to be true by default")
	}

	if cfg.Globe.Radius != 20 {
		t.Errorf("expected radius 20, got %v", cfg.Globe.Radius)
	}
	if cfg.Globe.BasePolarDeg != 44.4379186 || cfg.Globe.BaseAzimuth != 26.0120663 {
		t.Errorf("unexpected base location %v, %v", cfg.Globe.BasePolarDeg, cfg.Globe.BaseAzimuth)
	}

	if cfg.Camera.Position != [3]float64{-50, 0, 2} {
		t.Errorf("expected camera at (-50, 0, 2), got %v", cfg.Camera.Position)
	}
	if cfg.Camera.MinDistance != 20.3 || cfg.Camera.MaxDistance != 70 {
		t.Errorf("unexpected camera distance range %v..%v", cfg.Camera.MinDistance, cfg.Camera.MaxDistance)
	}

	if cfg.Lighting.Rig() != lighting.Default() {
		t.Errorf("default lighting %+v does not match lighting.Default()", cfg.Lighting)
	}
	if cfg.Graphics.ScreenshotDir != "screenshots" {
		t.Errorf("expected screenshot dir 'screenshots', got %q", cfg.Graphics.ScreenshotDir)
	}

	if cfg.Labels.OffsetScale != 0.5 || cfg.Labels.OffsetHeight != 2.5 {
		t.Errorf("unexpected label offset %+v", cfg.Labels)
	}
	if cfg.Zoom.Step != 100 {
		t.Errorf("expected zoom step 100, got %v", cfg.Zoom.Step)
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestDerivedSettings(t *testing.T) {
	cfg := Default()

	cam := cfg.Camera.NewOrbitCamera()
	pos := cam.Position()
	if math.Abs(pos.X()+50) > 1e-9 || math.Abs(pos.Z()-2) > 1e-9 {
		t.Errorf("orbit camera at %v, want (-50, 0, 2)", pos)
	}
	if cam.MaxDistance != 70 {
		t.Errorf("orbit camera max distance %v, want 70", cam.MaxDistance)
	}

	off := cfg.Labels.Offset()
	if off.Scale != 0.5 || off.Height != 2.5 {
		t.Errorf("Offset() = %+v", off)
	}

	rate := cfg.Zoom.RateConfig()
	if rate.InFactor != 2.5 || rate.OutFactor != 4 || rate.Span != 50 {
		t.Errorf("RateConfig() = %+v", rate)
	}
}

func TestLoadFromFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	yamlContent := `
graphics:
  width: 1920
  height: 1080
  fullscreen: true

globe:
  radius: 35
  base_polar_deg: 12.5
  base_azimuth_deg: -40

camera:
  position: [0, 10, 60]
  max_distance: 90

labels:
  offset_height: 4

logging:
  level: "debug"
  log_file: "planetview.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Graphics.Width != 1920 || cfg.Graphics.Height != 1080 || !cfg.Graphics.Fullscreen {
		t.Errorf("unexpected graphics %+v", cfg.Graphics)
	}
	if cfg.Globe.Radius != 35 || cfg.Globe.BasePolarDeg != 12.5 || cfg.Globe.BaseAzimuth != -40 {
		t.Errorf("unexpected globe %+v", cfg.Globe)
	}
	if cfg.Camera.Position != [3]float64{0, 10, 60} || cfg.Camera.MaxDistance != 90 {
		t.Errorf("unexpected camera %+v", cfg.Camera)
	}
	// Untouched keys keep their defaults.
	if cfg.Camera.FovYDeg != 75 {
		t.Errorf("expected default fov 75, got %v", cfg.Camera.FovYDeg)
	}
	if cfg.Labels.OffsetHeight != 4 || cfg.Labels.OffsetScale != 0.5 {
		t.Errorf("unexpected labels %+v", cfg.Labels)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.LogFile != "planetview.log" {
		t.Errorf("unexpected logging %+v", cfg.Logging)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tests := map[string]string{
		"bad yaml": `
graphics:
  width: not a number
  invalid syntax here
`,
		"zero radius": `
globe:
  radius: 0
`,
		"inverted clip planes": `
camera:
  near: 10
  far: 1
`,
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), "invalid.yaml")
			if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
				t.Fatalf("failed to write test config: %v", err)
			}
			if err := loadFromFile(Default(), configPath); err == nil {
				t.Error("expected error loading invalid config, got nil")
			}
		})
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	err := loadFromFile(cfg, "/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	if err := os.WriteFile(filepath.Join(tmpDir, "config.yaml"), []byte("globe:\n  radius: 10\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "windowed flag",
			setup: func() { *flagWindowed = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be false with windowed flag")
				}
			},
			teardown: func() { *flagWindowed = false },
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFullscreen = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() { *flagFullscreen = false },
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Graphics.Width != 2560 || cfg.Graphics.Height != 1440 {
					t.Errorf("expected 2560x1440, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	yamlContent := `
graphics:
  width: 1600
  height: 900
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, path, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if path != configPath {
		t.Errorf("Load() path = %s, want %s", path, configPath)
	}

	// Width from flag, height from file
	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Graphics.Height)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Globe.BasePolarDeg = 100
	cfg.Labels.OffsetScale = 0.75
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() error: %v", err)
	}

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	if loaded.Globe.BasePolarDeg != 100 || loaded.Labels.OffsetScale != 0.75 {
		t.Errorf("loaded config lost values: %+v %+v", loaded.Globe, loaded.Labels)
	}
}

func TestWatchReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("globe:\n  radius: 20\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	w, err := Watch(path)
	if err != nil {
		t.Fatalf("Watch() error: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("globe:\n  radius: 42\n"), 0644); err != nil {
		t.Fatalf("failed to rewrite test config: %v", err)
	}

	select {
	case r := <-w.Reloads:
		if r.Err != nil {
			t.Fatalf("reload error: %v", r.Err)
		}
		if r.Config.Globe.Radius != 42 {
			t.Errorf("reloaded radius = %v, want 42", r.Config.Globe.Radius)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no reload after writing the config file")
	}
}

func TestWatchIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("globe:\n  radius: 20\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	w, err := Watch(path)
	if err != nil {
		t.Fatalf("Watch() error: %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x: 1\n"), 0644); err != nil {
		t.Fatalf("failed to write other file: %v", err)
	}

	select {
	case r := <-w.Reloads:
		t.Errorf("unexpected reload %+v", r)
	case <-time.After(300 * time.Millisecond):
	}

	if err := w.Close(); err != nil {
		t.Errorf("Close() error: %v", err)
	}
	if _, ok := <-w.Reloads; ok {
		t.Error("Reloads still open after Close")
	}
}
