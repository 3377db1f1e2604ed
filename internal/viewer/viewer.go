// Package viewer runs the interactive grid viewer: it owns the window, the
// renderer and the camera, and drives them from a single thread.
package viewer

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/silicaviz/silica/internal/config"
	"github.com/silicaviz/silica/internal/engine/camera"
	"github.com/silicaviz/silica/internal/engine/debug"
	"github.com/silicaviz/silica/internal/engine/input"
	"github.com/silicaviz/silica/internal/engine/renderer"
	"github.com/silicaviz/silica/internal/engine/timing"
	"github.com/silicaviz/silica/internal/engine/window"
	"github.com/silicaviz/silica/internal/logger"
	"github.com/silicaviz/silica/internal/scene"
	"github.com/silicaviz/silica/internal/transform"
	"github.com/silicaviz/silica/internal/watch"
	"github.com/silicaviz/silica/pkg/grid"
)

var (
	background = [4]float32{0.05, 0.05, 0.08, 1}
	boxColor   = [4]float32{1, 0.4, 0.1, 1}
)

// Options configures a viewer.
type Options struct {
	Title  string
	Kind   scene.Kind
	Config *config.Config
	// Path is the data file, watched for changes when Config.Data.Watch is set.
	Path string
	// Load reads the grid; it is called again on every reload.
	Load func() (*grid.Grid, error)
}

// gpuScene holds the uploaded geometry of the current scene.
type gpuScene struct {
	surface *renderer.Mesh
	fog     *renderer.Mesh
	outline *renderer.Mesh
}

func (g *gpuScene) delete() {
	g.surface.Delete()
	g.fog.Delete()
	g.outline.Delete()
}

// Viewer is the main viewer instance.
type Viewer struct {
	opts    Options
	cfg     *config.Config
	log     *zap.Logger
	running bool

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input

	graph *transform.Graph
	rig   *camera.Rig
	ctrl  *camera.Controller

	scene   *scene.Scene
	gpu     gpuScene
	showBox bool
	capture bool // read the back buffer after the next render

	ticker  *timing.Ticker
	shots   *debug.ScreenshotCapture
	watcher *watch.Watcher
}

// New loads the data and creates the window, renderer and camera.
func New(opts Options) (*Viewer, error) {
	cfg := opts.Config
	v := &Viewer{
		opts:    opts,
		cfg:     cfg,
		log:     logger.Named("viewer"),
		showBox: cfg.Graphics.ShowSliceBox,
		ticker:  timing.NewTicker(cfg.Graphics.MaxFPS),
		shots:   debug.NewScreenshotCapture("screenshots", opts.Kind.String()),
	}

	g, err := opts.Load()
	if err != nil {
		return nil, err
	}
	sc, err := scene.New(opts.Kind, g, cfg)
	if err != nil {
		return nil, err
	}
	v.scene = sc
	v.log.Info("scene built", zap.Stringer("scene", sc))

	v.window, err = window.New(window.Config{
		Title:      opts.Title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
		Samples:    4,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	fbw, fbh := v.window.DrawableSize()
	v.renderer, err = renderer.New(renderer.Config{
		Width:      fbw,
		Height:     fbh,
		Background: background,
	})
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	v.upload()

	v.input = input.New()

	w, h := v.window.GetSize()
	rc := cfg.Camera.Rig(sc.Center)
	v.graph = transform.NewGraph()
	v.rig = camera.NewRig(v.graph, rc, float64(w), float64(h))
	v.ctrl = camera.NewController(v.rig, rc, v.input)

	if cfg.Data.Watch && opts.Path != "" {
		v.watcher, err = watch.Watch(opts.Path)
		if err != nil {
			v.log.Warn("live reload disabled", zap.String("path", opts.Path), zap.Error(err))
		} else {
			v.log.Info("watching for changes", zap.String("path", opts.Path))
		}
	}

	return v, nil
}

// Run runs the loop until the window closes, Esc is pressed or ctx ends.
func (v *Viewer) Run(ctx context.Context) error {
	v.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := lastTime

	v.log.Info("starting viewer loop", zap.Duration("tick", v.ticker.Interval()))

	for v.running {
		frameStart := time.Now()
		elapsed := frameStart.Sub(lastTime)
		lastTime = frameStart

		select {
		case <-ctx.Done():
			v.running = false
			continue
		case <-v.changes():
			v.reload()
		default:
		}

		if v.input.Update() {
			v.running = false
			break
		}
		v.dispatch()

		for n := v.ticker.Advance(elapsed); n > 0; n-- {
			v.ctrl.Tick(v.ticker.Step())
		}

		v.render()
		if v.capture {
			v.capture = false
			v.screenshot()
		}
		v.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			v.log.Debug("fps",
				zap.Int("count", frameCount),
				zap.Int("matrix_recalculations", v.graph.Calculations(v.rig.Camera.ID())),
			)
			frameCount = 0
			fpsTimer = time.Now()
		}

		if d := v.ticker.FrameDelay(time.Since(frameStart)); d > 0 {
			time.Sleep(d)
		}
	}

	return nil
}

// Close cleans up viewer resources.
func (v *Viewer) Close() {
	v.log.Info("closing viewer")

	if v.watcher != nil {
		v.watcher.Close()
	}
	v.gpu.delete()
	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}

func (v *Viewer) changes() <-chan struct{} {
	if v.watcher == nil {
		return nil
	}
	return v.watcher.Changes()
}

func (v *Viewer) dispatch() {
	for _, e := range v.input.Events() {
		switch e.Type {
		case input.EventWindowResize:
			v.ctrl.OnResize(e.Width, e.Height)
			v.renderer.Resize(v.window.DrawableSize())
		case input.EventScroll:
			v.ctrl.OnScroll(e.DY)
		case input.EventDrag:
			v.ctrl.OnDrag(e.DX, e.DY, e.Buttons)
		case input.EventKeyDown:
			v.onKey(e.Key)
		}
	}
}

func (v *Viewer) onKey(key sdl.Scancode) {
	switch key {
	case sdl.SCANCODE_ESCAPE:
		v.running = false
	case sdl.SCANCODE_B:
		v.showBox = !v.showBox
	case sdl.SCANCODE_F12:
		v.capture = true
	}
}

func (v *Viewer) render() {
	cam := v.rig.GLMatrix()
	sun := toFloat32x3(v.cfg.Lighting.Sun)

	v.renderer.Begin()
	v.renderer.DrawSurface(cam, renderer.SurfacePass{
		Mesh:   v.gpu.surface,
		Color:  v.scene.Color,
		Sun:    sun,
		Shifts: v.scene.Shifts,
	})
	if v.showBox {
		v.renderer.DrawLines(cam, v.gpu.outline, boxColor)
	}
	v.renderer.DrawFog(cam, v.gpu.fog, toFloat32x4(v.cfg.Fog.Color), v.scene.Shifts)
}

func (v *Viewer) upload() {
	v.gpu.delete()
	v.gpu = gpuScene{
		surface: renderer.UploadSurface(v.scene.Surface),
		outline: renderer.UploadLines(v.scene.Outline),
	}
	if v.scene.Fog != nil {
		v.gpu.fog = renderer.UploadSurface(v.scene.Fog)
	}
}

// reload re-reads the data file. The camera is left where it is; a failed
// reload keeps the previous scene on screen.
func (v *Viewer) reload() {
	g, err := v.opts.Load()
	if err != nil {
		v.log.Error("reload failed", zap.String("path", v.opts.Path), zap.Error(err))
		return
	}
	sc, err := scene.New(v.opts.Kind, g, v.cfg)
	if err != nil {
		v.log.Error("reload failed", zap.String("path", v.opts.Path), zap.Error(err))
		return
	}
	v.scene = sc
	v.upload()
	v.log.Info("scene reloaded", zap.Stringer("scene", sc))
}

func (v *Viewer) screenshot() {
	pixels, w, h := v.renderer.ReadPixels()
	name, err := v.shots.CaptureFromPixels(pixels, w, h)
	if err != nil {
		v.log.Error("screenshot failed", zap.Error(err))
		return
	}
	v.log.Info("screenshot saved", zap.String("file", name))
}

// Exit logs err and terminates the process with status 1.
func Exit(err error) {
	logger.Error("viewer failed", zap.Error(err))
	logger.Sync()
	os.Exit(1)
}

func toFloat32x3(v [3]float64) [3]float32 {
	return [3]float32{float32(v[0]), float32(v[1]), float32(v[2])}
}

func toFloat32x4(v [4]float64) [4]float32 {
	return [4]float32{float32(v[0]), float32(v[1]), float32(v[2]), float32(v[3])}
}
