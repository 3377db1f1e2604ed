// Package scene derives drawable geometry from a loaded grid.
package scene

import (
	"fmt"

	"github.com/silicaviz/silica/internal/config"
	"github.com/silicaviz/silica/internal/engine/debug"
	"github.com/silicaviz/silica/internal/fog"
	"github.com/silicaviz/silica/internal/surface"
	"github.com/silicaviz/silica/pkg/grid"
	"github.com/silicaviz/silica/pkg/math"
)

// Kind selects the data set a viewer shows.
type Kind int

const (
	// KindGlass is a solid/void grid, tiled and fogged.
	KindGlass Kind = iota
	// KindPotential is a value grid filtered by a value range.
	KindPotential
)

func (k Kind) String() string {
	if k == KindPotential {
		return "potential"
	}
	return "glass"
}

// Scene is the CPU side geometry derived from one loaded grid.
type Scene struct {
	Grid    *grid.Grid
	Box     grid.Box
	Surface *surface.Mesh
	Fog     *surface.Mesh // nil when fog is off
	Layers  int
	Shifts  [][3]float32
	Outline []float32
	Center  math.Vec3
	Color   [3]float32
}

// New extracts everything the renderer needs from g.
func New(kind Kind, g *grid.Grid, cfg *config.Config) (*Scene, error) {
	limits, err := cfg.Limits()
	if err != nil {
		return nil, err
	}
	box, err := limits.Resolve(g.Size)
	if err != nil {
		return nil, err
	}

	s := &Scene{
		Grid:    g,
		Box:     box,
		Surface: surface.Extract(g, box),
		Outline: debug.SliceBoxVertices(box, debug.DefaultBBoxPadding),
	}

	repeat := [3]int{1, 1, 1}
	color := cfg.Potential.Color
	if kind == KindGlass {
		repeat = cfg.Glass.Repeat
		color = cfg.Glass.Color
		if cfg.Fog.Enabled {
			layers := fog.Layers(box)
			s.Layers = len(layers)
			s.Fog = fog.Mesh(layers)
		}
	}
	for _, r := range grid.Repetitions(g.Size, repeat) {
		s.Shifts = append(s.Shifts, [3]float32{float32(r[0]), float32(r[1]), float32(r[2])})
	}
	s.Center = config.CenterPoint(g.Size, repeat)
	s.Color = toFloat32x3(color)
	return s, nil
}

func (s *Scene) String() string {
	return fmt.Sprintf("%v grid, %d cells, box %v, %d faces, %d fog layers, %d copies",
		s.Grid.Size, s.Grid.Len(), s.Box, s.Surface.Faces(), s.Layers, len(s.Shifts))
}

func toFloat32x3(v [3]float64) [3]float32 {
	return [3]float32{float32(v[0]), float32(v[1]), float32(v[2])}
}
