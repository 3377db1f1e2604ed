// Package config handles viewer configuration loading and management.
package config

import (
	"errors"
	"fmt"
	gomath "math"

	"github.com/silicaviz/silica/internal/engine/camera"
	"github.com/silicaviz/silica/internal/transform"
	"github.com/silicaviz/silica/pkg/grid"
	"github.com/silicaviz/silica/pkg/math"
)

// ErrInvalid is wrapped by every semantic validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Config holds all viewer settings.
type Config struct {
	Graphics  GraphicsConfig  `yaml:"graphics"`
	Camera    CameraConfig    `yaml:"camera"`
	Data      DataConfig      `yaml:"data"`
	Glass     GlassConfig     `yaml:"glass"`
	Fog       FogConfig       `yaml:"fog"`
	Potential PotentialConfig `yaml:"potential"`
	Lighting  LightingConfig  `yaml:"lighting"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width        int  `yaml:"width"`
	Height       int  `yaml:"height"`
	Fullscreen   bool `yaml:"fullscreen"`
	VSync        bool `yaml:"vsync"`
	MaxFPS       int  `yaml:"max_fps"` // also the camera tick rate
	ShowSliceBox bool `yaml:"show_slice_box"`
}

// CameraConfig holds the camera geometry and input speeds.
type CameraConfig struct {
	EyeDistance      float64       `yaml:"eye_distance"` // d0, eye to screen
	SightRange       float64       `yaml:"sight_range"`  // d, visible depth behind the screen
	InitialScale     float64       `yaml:"initial_scale"`
	InitialBasis     [3][3]float64 `yaml:"initial_basis"`
	ZoomSpeed        float64       `yaml:"zoom_speed"`
	RotationSpeed    float64       `yaml:"rotation_speed"`
	TranslationSpeed float64       `yaml:"translation_speed"`
	SightLineSpeed   float64       `yaml:"sight_line_speed"`
}

// DataConfig holds input file settings.
type DataConfig struct {
	Glass     string `yaml:"glass"`
	GlassSize [3]int `yaml:"glass_size"` // zero: guessed from the file name
	Particles string `yaml:"particles"`
	Potential string `yaml:"potential"`
	// Slice is "xmin,xmax,ymin,ymax,zmin,zmax"; empty fields are open.
	Slice string `yaml:"slice"`
	Watch bool   `yaml:"watch"`
}

// GlassConfig holds glass rendering settings.
type GlassConfig struct {
	Repeat [3]int     `yaml:"repeat"`
	Color  [3]float64 `yaml:"color"`
}

// FogConfig holds fog rendering settings.
type FogConfig struct {
	Enabled bool       `yaml:"enabled"`
	Color   [4]float64 `yaml:"color"`
}

// PotentialConfig holds potential rendering settings. Nil bounds are open.
type PotentialConfig struct {
	Min   *float64   `yaml:"min"`
	Max   *float64   `yaml:"max"`
	Color [3]float64 `yaml:"color"`
}

// LightingConfig holds lighting settings.
type LightingConfig struct {
	Sun [3]float64 `yaml:"sun"` // direction towards the sun
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
			Width:        800,
			Height:       600,
			Fullscreen:   false,
			VSync:        true,
			MaxFPS:       32,
			ShowSliceBox: false,
		},
		Camera: CameraConfig{
			EyeDistance:      50,
			SightRange:       14000,
			InitialScale:     1000,
			InitialBasis:     [3][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
			ZoomSpeed:        0.05,
			RotationSpeed:    0.005,
			TranslationSpeed: 120,
			SightLineSpeed:   3,
		},
		Glass: GlassConfig{
			Repeat: [3]int{1, 1, 1},
			Color:  [3]float64{.7, .7, .7},
		},
		Fog: FogConfig{
			Enabled: true,
			Color:   [4]float64{0, 1, 1, 0.125},
		},
		Potential: PotentialConfig{
			Color: [3]float64{1, 1, 0},
		},
		Lighting: LightingConfig{
			Sun: [3]float64{0.5, 1, 1.5},
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate checks values that would make the viewer misbehave.
func (c *Config) Validate() error {
	cam := c.Camera
	for _, p := range []struct {
		name string
		v    float64
	}{
		{"camera.eye_distance", cam.EyeDistance},
		{"camera.sight_range", cam.SightRange},
		{"camera.initial_scale", cam.InitialScale},
		{"camera.zoom_speed", cam.ZoomSpeed},
		{"camera.rotation_speed", cam.RotationSpeed},
		{"camera.translation_speed", cam.TranslationSpeed},
		{"camera.sight_line_speed", cam.SightLineSpeed},
	} {
		if !(p.v > 0) || gomath.IsInf(p.v, 0) {
			return fmt.Errorf("%s must be positive and finite, got %v: %w", p.name, p.v, ErrInvalid)
		}
	}
	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		return fmt.Errorf("window size %dx%d: %w", c.Graphics.Width, c.Graphics.Height, ErrInvalid)
	}
	if c.Graphics.MaxFPS <= 0 {
		return fmt.Errorf("graphics.max_fps must be positive, got %d: %w", c.Graphics.MaxFPS, ErrInvalid)
	}
	for i, r := range c.Glass.Repeat {
		if r < 1 {
			return fmt.Errorf("glass.repeat[%d] must be at least 1, got %d: %w", i, r, ErrInvalid)
		}
	}
	for i, s := range c.Data.GlassSize {
		if s < 0 {
			return fmt.Errorf("data.glass_size[%d] is negative: %w", i, ErrInvalid)
		}
	}
	if err := checkColor("glass.color", c.Glass.Color[:]); err != nil {
		return err
	}
	if err := checkColor("fog.color", c.Fog.Color[:]); err != nil {
		return err
	}
	if err := checkColor("potential.color", c.Potential.Color[:]); err != nil {
		return err
	}
	if p := c.Potential; p.Min != nil && p.Max != nil && *p.Min > *p.Max {
		return fmt.Errorf("potential min %v above max %v: %w", *p.Min, *p.Max, ErrInvalid)
	}
	if _, err := c.Limits(); err != nil {
		return fmt.Errorf("%v: %w", err, ErrInvalid)
	}
	return nil
}

func checkColor(name string, rgba []float64) error {
	for _, v := range rgba {
		if v < 0 || v > 1 {
			return fmt.Errorf("%s component %v outside [0, 1]: %w", name, v, ErrInvalid)
		}
	}
	return nil
}

// Limits parses the slice setting.
func (c *Config) Limits() (grid.Limits, error) {
	l, err := grid.ParseLimits(c.Data.Slice)
	if err != nil {
		return l, err
	}
	for _, pair := range [][2]*int{{l.XMin, l.XMax}, {l.YMin, l.YMax}, {l.ZMin, l.ZMax}} {
		if pair[0] != nil && pair[1] != nil && *pair[0] > *pair[1] {
			return l, fmt.Errorf("slice %q: min %d above max %d: %w", c.Data.Slice, *pair[0], *pair[1], grid.ErrBadSlice)
		}
	}
	return l, nil
}

// CenterPoint returns the translation that centres repeat copies of a grid
// of the given size on the origin.
func CenterPoint(size grid.Size, repeat [3]int) math.Vec3 {
	dims := [3]int{size.W, size.H, size.D}
	var c [3]float64
	for i := range c {
		c[i] = -float64(dims[i]*repeat[i]) / 2
	}
	return math.Vec3{X: c[0], Y: c[1], Z: c[2]}
}

// Rig returns the camera parameters centred on center.
func (c CameraConfig) Rig(center math.Vec3) camera.Config {
	var basis math.Basis
	for i, row := range c.InitialBasis {
		basis[i] = math.Vec3{X: row[0], Y: row[1], Z: row[2]}
	}
	return camera.Config{
		Geometry:         transform.Geometry{EyeDistance: c.EyeDistance, SightRange: c.SightRange},
		InitialScale:     c.InitialScale,
		InitialBasis:     basis,
		InitialShift:     center,
		ZoomSpeed:        c.ZoomSpeed,
		RotationSpeed:    c.RotationSpeed,
		TranslationSpeed: c.TranslationSpeed,
		SightLineSpeed:   c.SightLineSpeed,
	}
}
