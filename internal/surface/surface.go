// Package surface extracts the externally visible faces of a voxel grid.
//
// A face of an occupied cell is visible unless the neighbouring cell in that
// direction is occupied and inside the slice box. Neighbours past the grid
// edge never hide a face; there is no wraparound.
package surface

import (
	"github.com/silicaviz/silica/pkg/grid"
)

// FaceMask holds one bit per Direction; a set bit marks a visible face.
type FaceMask uint8

// Has reports whether face d is visible.
func (m FaceMask) Has(d Direction) bool {
	return m&(1<<uint(d)) != 0
}

// Count returns the number of visible faces.
func (m FaceMask) Count() int {
	n := 0
	for ; m != 0; m &= m - 1 {
		n++
	}
	return n
}

// Visibility is the face mask of each displayed cell, in the order of
// Grid.Cells.
type Visibility struct {
	Cells []grid.Cell
	Masks []FaceMask
}

// Faces returns the total number of visible faces.
func (v *Visibility) Faces() int {
	n := 0
	for _, m := range v.Masks {
		n += m.Count()
	}
	return n
}

// FacesByDirection counts visible faces per direction.
func (v *Visibility) FacesByDirection() [6]int {
	var out [6]int
	for _, m := range v.Masks {
		for _, d := range Directions {
			if m.Has(d) {
				out[d]++
			}
		}
	}
	return out
}

// Visible computes face masks for the cells of g inside box.
func Visible(g *grid.Grid, box grid.Box) *Visibility {
	// Occupancy restricted to the box.
	shown := make([]bool, g.Size.Volume())
	index := func(c grid.Cell) int {
		return (c.X*g.Size.H+c.Y)*g.Size.D + c.Z
	}
	for _, c := range g.Cells {
		if box.Contains(c) && g.At(c) {
			shown[index(c)] = true
		}
	}
	occupied := func(c grid.Cell) bool {
		return g.Size.Contains(c) && shown[index(c)]
	}

	v := &Visibility{}
	for _, c := range g.Cells {
		if !occupied(c) {
			continue
		}
		var mask FaceMask
		for _, d := range Directions {
			if !occupied(c.Add(d.Offset())) {
				mask |= 1 << uint(d)
			}
		}
		v.Cells = append(v.Cells, c)
		v.Masks = append(v.Masks, mask)
	}
	return v
}

// Extract returns the triangles of every visible face of g inside box, cell
// by cell in the order of g.Cells and face by face in Direction order.
// An empty grid yields an empty mesh.
func Extract(g *grid.Grid, box grid.Box) *Mesh {
	return Build(Visible(g, box))
}

// Build turns face masks into a mesh of unit cubes at the cell positions.
func Build(v *Visibility) *Mesh {
	n := v.Faces()
	m := &Mesh{
		Positions: make([][3]float32, 0, 6*n),
		Normals:   make([][3]float32, 0, 6*n),
	}
	unit := [3]float32{1, 1, 1}
	for i, c := range v.Cells {
		origin := [3]float32{float32(c.X), float32(c.Y), float32(c.Z)}
		for _, d := range Directions {
			if v.Masks[i].Has(d) {
				m.AddFace(d, origin, unit)
			}
		}
	}
	return m
}
