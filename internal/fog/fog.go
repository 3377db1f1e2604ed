// Package fog builds the nested translucent shells drawn around a sliced grid.
package fog

import (
	"github.com/silicaviz/silica/internal/surface"
	"github.com/silicaviz/silica/pkg/grid"
)

// Layer is one box shell. Origin and Extent are in cell units; the shell
// covers [Origin, Origin+Extent] on each axis.
type Layer struct {
	Inset  int
	Origin [3]int
	Extent [3]int
}

// Layers returns the shells of box inset by 0, 1, 2, ... cells on every
// side, as long as every extent stays positive. The result is ordered
// outermost first, the order they are drawn in with blending.
func Layers(box grid.Box) []Layer {
	size := box.Size()
	full := [3]int{size.W, size.H, size.D}

	// Layer i exists while the smallest extent minus 2i is positive.
	smallest := full[0]
	for _, e := range full[1:] {
		if e < smallest {
			smallest = e
		}
	}
	if smallest <= 0 {
		return nil
	}
	count := (smallest + 1) / 2

	layers := make([]Layer, 0, count)
	for i := count - 1; i >= 0; i-- {
		l := Layer{Inset: i}
		for k := 0; k < 3; k++ {
			l.Origin[k] = box.Min.Component(k) + i
			l.Extent[k] = full[k] - 2*i
		}
		layers = append(layers, l)
	}
	reverse(layers)
	return layers
}

// reverse flips layers in place.
func reverse(layers []Layer) {
	for i, j := 0, len(layers)-1; i < j; i, j = i+1, j-1 {
		layers[i], layers[j] = layers[j], layers[i]
	}
}

// Mesh returns the triangles of every layer, 12 per layer, in layer order.
func Mesh(layers []Layer) *surface.Mesh {
	m := &surface.Mesh{}
	for _, l := range layers {
		m.AddBox(
			[3]float32{float32(l.Origin[0]), float32(l.Origin[1]), float32(l.Origin[2])},
			[3]float32{float32(l.Extent[0]), float32(l.Extent[1]), float32(l.Extent[2])},
		)
	}
	return m
}
