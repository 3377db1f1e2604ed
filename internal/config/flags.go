package config

import (
	"flag"
	"fmt"
	"strconv"
	"strings"
)

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
	flagGlass      = flag.String("glass", "", "Glass grid file")
	flagParticles  = flag.String("particles", "", "Particle file (not supported)")
	flagPotential  = flag.String("potential", "", "Potential grid file")
	flagSlice      = flag.String("slice", "", "Visible sub-box: xmin,xmax,ymin,ymax,zmin,zmax (empty = open)")
	flagRepeat     = flag.String("repeat", "", "Glass repetitions along x,y,z")
	flagMin        = flag.String("min", "", "Minimal visible potential value")
	flagMax        = flag.String("max", "", "Maximal visible potential value")
	flagFogColor   = flag.String("fog-color", "", "Fog colour r,g,b,a")
	flagGlassColor = flag.String("glass-color", "", "Glass colour r,g,b")
	flagNoFog      = flag.Bool("no-fog", false, "Disable fog layers")
	flagWatch      = flag.Bool("watch", false, "Reload the grid file when it changes")
	flagShowBox    = flag.Bool("show-box", false, "Draw the slice box outline")
	flagWriteCfg   = flag.String("write-config", "", "Write the effective config to this path and exit")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// WriteConfigPath returns the --write-config destination, if any.
func WriteConfigPath() string {
	return *flagWriteCfg
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) error {
	if *flagDebug {
		cfg.Logging.Level = "debug"
		cfg.Graphics.ShowSliceBox = true
	}
	if *flagFullscreen {
		cfg.Graphics.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
	if *flagGlass != "" {
		cfg.Data.Glass = *flagGlass
	}
	if *flagParticles != "" {
		cfg.Data.Particles = *flagParticles
	}
	if *flagPotential != "" {
		cfg.Data.Potential = *flagPotential
	}
	if *flagSlice != "" {
		cfg.Data.Slice = *flagSlice
	}
	if *flagWatch {
		cfg.Data.Watch = true
	}
	if *flagShowBox {
		cfg.Graphics.ShowSliceBox = true
	}
	if *flagNoFog {
		cfg.Fog.Enabled = false
	}
	if *flagRepeat != "" {
		vs, err := parseInts(*flagRepeat, 3)
		if err != nil {
			return fmt.Errorf("--repeat: %w", err)
		}
		copy(cfg.Glass.Repeat[:], vs)
	}
	if *flagGlassColor != "" {
		vs, err := parseFloats(*flagGlassColor, 3)
		if err != nil {
			return fmt.Errorf("--glass-color: %w", err)
		}
		copy(cfg.Glass.Color[:], vs)
	}
	if *flagFogColor != "" {
		vs, err := parseFloats(*flagFogColor, 4)
		if err != nil {
			return fmt.Errorf("--fog-color: %w", err)
		}
		copy(cfg.Fog.Color[:], vs)
	}
	if *flagMin != "" {
		v, err := strconv.ParseFloat(*flagMin, 64)
		if err != nil {
			return fmt.Errorf("--min: %w", err)
		}
		cfg.Potential.Min = &v
	}
	if *flagMax != "" {
		v, err := strconv.ParseFloat(*flagMax, 64)
		if err != nil {
			return fmt.Errorf("--max: %w", err)
		}
		cfg.Potential.Max = &v
	}
	return nil
}

// parseFloats reads exactly n comma separated numbers.
func parseInts(s string, n int) ([]int, error) {
	parts := strings.Split(s, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("%q: want %d comma separated integers: %w", s, n, ErrInvalid)
	}
	out := make([]int, n)
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("%q: %v: %w", s, err, ErrInvalid)
		}
		out[i] = v
	}
	return out, nil
}

func parseFloats(s string, n int) ([]float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("%q: want %d comma separated values: %w", s, n, ErrInvalid)
	}
	out := make([]float64, n)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("%q: %v: %w", s, err, ErrInvalid)
		}
		out[i] = v
	}
	return out, nil
}
