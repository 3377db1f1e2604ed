package config

import (
	"bytes"
	"errors"
	gomath "math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/silicaviz/silica/pkg/grid"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Test graphics defaults
	if cfg.Graphics.Width != 800 {
		t.Errorf("expected width 800, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 600 {
		t.Errorf("expected height 600, got %d", cfg.Graphics.Height)
	}
	if cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}
	if cfg.Graphics.MaxFPS != 32 {
		t.Errorf("expected max fps 32, got %d", cfg.Graphics.MaxFPS)
	}

	// Test camera defaults
	if cfg.Camera.EyeDistance != 50 {
		t.Errorf("expected eye distance 50, got %f", cfg.Camera.EyeDistance)
	}
	if cfg.Camera.InitialScale != 1000 {
		t.Errorf("expected initial scale 1000, got %f", cfg.Camera.InitialScale)
	}

	// Test glass and fog defaults
	if cfg.Glass.Repeat != [3]int{1, 1, 1} {
		t.Errorf("expected repeat 1,1,1, got %v", cfg.Glass.Repeat)
	}
	if !cfg.Fog.Enabled {
		t.Error("expected fog to be enabled by default")
	}
	if cfg.Potential.Min != nil || cfg.Potential.Max != nil {
		t.Error("expected open potential bounds by default")
	}

	// Test logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config does not validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1920
  height: 1080
  max_fps: 60

camera:
  eye_distance: 80
  initial_basis: [[0, 1, 0], [1, 0, 0], [0, 0, 1]]

data:
  glass: data8x8x8t0_1.dat
  slice: "0,3,,,2,"

glass:
  repeat: [2, 1, 3]

fog:
  enabled: false

potential:
  min: -1.5

logging:
  level: debug
  log_file: viz.log
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.MaxFPS != 60 {
		t.Errorf("expected max fps 60, got %d", cfg.Graphics.MaxFPS)
	}
	// Unset keys keep their defaults
	if cfg.Camera.SightRange != 14000 {
		t.Errorf("expected default sight range, got %f", cfg.Camera.SightRange)
	}
	if cfg.Camera.EyeDistance != 80 {
		t.Errorf("expected eye distance 80, got %f", cfg.Camera.EyeDistance)
	}
	if cfg.Camera.InitialBasis[0] != [3]float64{0, 1, 0} {
		t.Errorf("expected swapped basis, got %v", cfg.Camera.InitialBasis)
	}
	if cfg.Glass.Repeat != [3]int{2, 1, 3} {
		t.Errorf("expected repeat 2,1,3, got %v", cfg.Glass.Repeat)
	}
	if cfg.Fog.Enabled {
		t.Error("expected fog to be disabled")
	}
	if cfg.Potential.Min == nil || *cfg.Potential.Min != -1.5 {
		t.Errorf("expected potential min -1.5, got %v", cfg.Potential.Min)
	}
	if cfg.Potential.Max != nil {
		t.Error("expected open potential max")
	}
	if cfg.Logging.LogFile != "viz.log" {
		t.Errorf("expected log file 'viz.log', got %s", cfg.Logging.LogFile)
	}

	l, err := cfg.Limits()
	if err != nil {
		t.Fatalf("Limits: %v", err)
	}
	if l.XMax == nil || *l.XMax != 3 || l.YMin != nil || l.ZMin == nil || *l.ZMin != 2 {
		t.Errorf("unexpected limits %v", l)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	// Create temporary config file with invalid YAML
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
graphics:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/config.yaml"); err == nil {
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
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("failed to change directory: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	if path := findConfigFile(); path == "./config.yaml" {
		t.Errorf("expected no local config, got %s", path)
	}

	if err := os.WriteFile("config.yaml", []byte("graphics:\n  width: 640\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}
	if path := findConfigFile(); path != "./config.yaml" {
		t.Errorf("expected ./config.yaml, got %q", path)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"zero eye distance", func(c *Config) { c.Camera.EyeDistance = 0 }},
		{"negative zoom speed", func(c *Config) { c.Camera.ZoomSpeed = -1 }},
		{"infinite sight range", func(c *Config) { c.Camera.SightRange = gomath.Inf(1) }},
		{"nan rotation speed", func(c *Config) { c.Camera.RotationSpeed = gomath.NaN() }},
		{"zero width", func(c *Config) { c.Graphics.Width = 0 }},
		{"zero max fps", func(c *Config) { c.Graphics.MaxFPS = 0 }},
		{"zero repeat", func(c *Config) { c.Glass.Repeat[1] = 0 }},
		{"negative glass size", func(c *Config) { c.Data.GlassSize[2] = -4 }},
		{"fog alpha above one", func(c *Config) { c.Fog.Color[3] = 1.5 }},
		{"glass colour below zero", func(c *Config) { c.Glass.Color[0] = -0.1 }},
		{"potential min above max", func(c *Config) {
			lo, hi := 2.0, 1.0
			c.Potential.Min, c.Potential.Max = &lo, &hi
		}},
		{"bad slice", func(c *Config) { c.Data.Slice = "1,2,3" }},
		{"inverted slice", func(c *Config) { c.Data.Slice = "5,1,,,," }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
		wantErr  bool
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected debug level, got %s", cfg.Logging.Level)
				}
				if !cfg.Graphics.ShowSliceBox {
					t.Error("expected slice box with debug flag")
				}
			},
			teardown: func() { *flagDebug = false },
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
		{
			name: "data flags",
			setup: func() {
				*flagGlass = "data4x4x4t0_1.dat"
				*flagSlice = ",,1,2,,"
				*flagWatch = true
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Data.Glass != "data4x4x4t0_1.dat" {
					t.Errorf("unexpected glass %q", cfg.Data.Glass)
				}
				if cfg.Data.Slice != ",,1,2,," {
					t.Errorf("unexpected slice %q", cfg.Data.Slice)
				}
				if !cfg.Data.Watch {
					t.Error("expected watch to be enabled")
				}
			},
			teardown: func() {
				*flagGlass = ""
				*flagSlice = ""
				*flagWatch = false
			},
		},
		{
			name:  "repeat flag",
			setup: func() { *flagRepeat = "2, 3,4" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Glass.Repeat != [3]int{2, 3, 4} {
					t.Errorf("expected repeat 2,3,4, got %v", cfg.Glass.Repeat)
				}
			},
			teardown: func() { *flagRepeat = "" },
		},
		{
			name: "colour flags",
			setup: func() {
				*flagFogColor = "1,0,0,0.5"
				*flagGlassColor = "0.1,0.2,0.3"
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Fog.Color != [4]float64{1, 0, 0, 0.5} {
					t.Errorf("unexpected fog colour %v", cfg.Fog.Color)
				}
				if cfg.Glass.Color != [3]float64{0.1, 0.2, 0.3} {
					t.Errorf("unexpected glass colour %v", cfg.Glass.Color)
				}
			},
			teardown: func() {
				*flagFogColor = ""
				*flagGlassColor = ""
			},
		},
		{
			name: "potential bounds",
			setup: func() {
				*flagMin = "-0.5"
				*flagMax = "2"
				*flagNoFog = true
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Potential.Min == nil || *cfg.Potential.Min != -0.5 {
					t.Errorf("unexpected min %v", cfg.Potential.Min)
				}
				if cfg.Potential.Max == nil || *cfg.Potential.Max != 2 {
					t.Errorf("unexpected max %v", cfg.Potential.Max)
				}
				if cfg.Fog.Enabled {
					t.Error("expected fog to be disabled")
				}
			},
			teardown: func() {
				*flagMin = ""
				*flagMax = ""
				*flagNoFog = false
			},
		},
		{
			name:     "malformed repeat",
			setup:    func() { *flagRepeat = "2,2" },
			teardown: func() { *flagRepeat = "" },
			wantErr:  true,
		},
		{
			name:     "fractional repeat",
			setup:    func() { *flagRepeat = "1.9,1,1" },
			teardown: func() { *flagRepeat = "" },
			wantErr:  true,
		},
		{
			name:     "malformed min",
			setup:    func() { *flagMin = "low" },
			teardown: func() { *flagMin = "" },
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			err := applyFlags(cfg)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("applyFlags: %v", err)
			}
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1600
  height: 900
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Set flag to override config file
	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Width should be from flag (1920), not file (1600)
	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Graphics.Width)
	}
	// Height should be from file (900) since no flag override
	if cfg.Graphics.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Graphics.Height)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("camera:\n  sight_range: -3\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	if _, err := Load(); !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid, got %v", err)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Glass.Repeat = [3]int{3, 1, 2}
	lo := 0.25
	cfg.Potential.Min = &lo

	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	back := Default()
	if err := loadFromFile(back, path); err != nil {
		t.Fatalf("reloading saved config: %v", err)
	}
	if back.Glass.Repeat != cfg.Glass.Repeat {
		t.Errorf("repeat: got %v, want %v", back.Glass.Repeat, cfg.Glass.Repeat)
	}
	if back.Potential.Min == nil || *back.Potential.Min != lo {
		t.Errorf("potential min lost: %v", back.Potential.Min)
	}

	var buf bytes.Buffer
	if err := cfg.Encode(&buf); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "# silica-viz") {
		t.Error("expected header comment")
	}
}

func TestCenterPoint(t *testing.T) {
	c := CenterPoint(grid.Size{W: 4, H: 3, D: 2}, [3]int{2, 1, 3})
	if c.X != -4 || c.Y != -1.5 || c.Z != -3 {
		t.Errorf("unexpected centre %v", c)
	}
}

func TestCameraRig(t *testing.T) {
	cfg := Default()
	cfg.Camera.InitialBasis = [3][3]float64{{0, 0, 1}, {1, 0, 0}, {0, 1, 0}}
	rc := cfg.Camera.Rig(CenterPoint(grid.Size{W: 2, H: 2, D: 2}, [3]int{1, 1, 1}))

	if rc.Geometry.EyeDistance != cfg.Camera.EyeDistance || rc.Geometry.SightRange != cfg.Camera.SightRange {
		t.Errorf("geometry not carried over: %+v", rc.Geometry)
	}
	if rc.InitialBasis[0].Z != 1 || rc.InitialBasis[1].X != 1 || rc.InitialBasis[2].Y != 1 {
		t.Errorf("basis rows not carried over: %v", rc.InitialBasis)
	}
	if rc.InitialShift.X != -1 {
		t.Errorf("unexpected shift %v", rc.InitialShift)
	}
}
