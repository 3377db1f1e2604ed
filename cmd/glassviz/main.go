// glassviz displays a glass grid: the solid cells as a lit surface, tiled
// along each axis, wrapped in translucent fog layers.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"github.com/silicaviz/silica/internal/config"
	"github.com/silicaviz/silica/internal/logger"
	"github.com/silicaviz/silica/internal/scene"
	"github.com/silicaviz/silica/internal/viewer"
	"github.com/silicaviz/silica/pkg/grid"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	if path := config.WriteConfigPath(); path != "" {
		if err := cfg.SaveTo(path); err != nil {
			fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== silica glass viewer ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if cfg.Data.Particles != "" {
		logger.Warn("particle overlays are not supported, ignoring file", zap.String("path", cfg.Data.Particles))
	}

	path := cfg.Data.Glass
	if path == "" {
		path = flag.Arg(0)
	}
	if path == "" {
		fmt.Fprintln(os.Stderr, "Usage: glassviz [flags] <dataWxHxDtN_M.dat>")
		os.Exit(1)
	}

	limits, err := cfg.Limits()
	if err != nil {
		viewer.Exit(err)
	}
	loader, err := grid.GlassLoader(path, grid.Size{W: cfg.Data.GlassSize[0], H: cfg.Data.GlassSize[1], D: cfg.Data.GlassSize[2]}, limits)
	if err != nil {
		viewer.Exit(err)
	}

	v, err := viewer.New(viewer.Options{
		Title:  "glass: " + path,
		Kind:   scene.KindGlass,
		Config: cfg,
		Path:   path,
		Load:   func() (*grid.Grid, error) { return loader.LoadFile(path) },
	})
	if err != nil {
		viewer.Exit(err)
	}
	defer v.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := v.Run(ctx); err != nil {
		logger.Error("viewer error", zap.Error(err))
		return
	}
	logger.Info("viewer closed normally")
}
