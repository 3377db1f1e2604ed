// potentialviz displays the cells of a potential grid whose values fall in
// a chosen range.
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

	logger.Info("=== silica potential viewer ===")

	path := cfg.Data.Potential
	if path == "" {
		path = flag.Arg(0)
	}
	if path == "" {
		fmt.Fprintln(os.Stderr, "Usage: potentialviz [flags] [--min v] [--max v] <potential file>")
		os.Exit(1)
	}

	limits, err := cfg.Limits()
	if err != nil {
		viewer.Exit(err)
	}
	values := grid.ValueInRange{Min: cfg.Potential.Min, Max: cfg.Potential.Max}
	loader := grid.PotentialLoader(values, limits)

	v, err := viewer.New(viewer.Options{
		Title:  "potential: " + path,
		Kind:   scene.KindPotential,
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
