// Package grid holds voxel occupancy grids and reads them from text files.
package grid

import (
	"fmt"
	"sort"
)

// Cell is an integer lattice coordinate.
type Cell struct {
	X, Y, Z int
}

// Add returns c + o.
func (c Cell) Add(o Cell) Cell {
	return Cell{c.X + o.X, c.Y + o.Y, c.Z + o.Z}
}

// Less orders cells lexicographically by (X, Y, Z).
func (c Cell) Less(o Cell) bool {
	if c.X != o.X {
		return c.X < o.X
	}
	if c.Y != o.Y {
		return c.Y < o.Y
	}
	return c.Z < o.Z
}

// Component returns the i-th coordinate (0=X, 1=Y, 2=Z).
func (c Cell) Component(i int) int {
	switch i {
	case 0:
		return c.X
	case 1:
		return c.Y
	default:
		return c.Z
	}
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d, %d, %d)", c.X, c.Y, c.Z)
}

// Size is the extent of a grid in cells.
type Size struct {
	W, H, D int
}

// MaxVolume caps the number of cells in a grid.
const MaxVolume = 1 << 28

// Valid reports whether every dimension is positive and the volume is at
// most MaxVolume.
func (s Size) Valid() bool {
	if !s.positive() {
		return false
	}
	return s.H <= MaxVolume/s.D && s.W <= MaxVolume/(s.H*s.D)
}

func (s Size) positive() bool {
	return s.W > 0 && s.H > 0 && s.D > 0
}

// Contains reports whether c lies inside [0, W) × [0, H) × [0, D).
func (s Size) Contains(c Cell) bool {
	return c.X >= 0 && c.Y >= 0 && c.Z >= 0 && c.X < s.W && c.Y < s.H && c.Z < s.D
}

// Volume returns W·H·D.
func (s Size) Volume() int {
	return s.W * s.H * s.D
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%dx%d", s.W, s.H, s.D)
}

// Grid is a W×H×D occupancy grid together with its occupied cells in
// lexicographic order.
type Grid struct {
	Size  Size
	Cells []Cell

	occupied []bool
}

// New returns an empty grid of the given size, which must be valid.
func New(size Size) *Grid {
	return &Grid{Size: size, occupied: make([]bool, size.Volume())}
}

// FromCells builds a grid holding exactly the given cells.
// Cells outside size are rejected.
func FromCells(size Size, cells ...Cell) (*Grid, error) {
	if !size.Valid() {
		return nil, fmt.Errorf("size %v: %w", size, ErrBadHeader)
	}
	g := New(size)
	for _, c := range cells {
		if err := g.Set(c); err != nil {
			return nil, err
		}
	}
	g.sortCells()
	return g, nil
}

func (g *Grid) index(c Cell) int {
	return (c.X*g.Size.H+c.Y)*g.Size.D + c.Z
}

// At reports whether c is occupied. Cells outside the grid are empty.
func (g *Grid) At(c Cell) bool {
	if !g.Size.Contains(c) {
		return false
	}
	return g.occupied[g.index(c)]
}

// Set marks c occupied and records it in Cells. Setting a cell twice is a
// no-op. Cells keeps insertion order until the grid is sorted.
func (g *Grid) Set(c Cell) error {
	if !g.Size.Contains(c) {
		return fmt.Errorf("cell %v outside %v grid: %w", c, g.Size, ErrOutOfBounds)
	}
	i := g.index(c)
	if g.occupied[i] {
		return nil
	}
	g.occupied[i] = true
	g.Cells = append(g.Cells, c)
	return nil
}

// Len returns the number of occupied cells.
func (g *Grid) Len() int {
	return len(g.Cells)
}

// Bounds returns the whole grid as an inclusive box.
func (g *Grid) Bounds() Box {
	return Box{Max: Cell{g.Size.W - 1, g.Size.H - 1, g.Size.D - 1}}
}

func (g *Grid) sortCells() {
	sort.Slice(g.Cells, func(i, j int) bool { return g.Cells[i].Less(g.Cells[j]) })
}

// Repetitions returns the offset of every copy when a grid of the given size
// is tiled repeat times along each axis: copy (i, j, k) moves by
// (W·i, H·j, D·k). Entries below 1 count as 1.
func Repetitions(size Size, repeat [3]int) [][3]float64 {
	for i := range repeat {
		if repeat[i] < 1 {
			repeat[i] = 1
		}
	}
	out := make([][3]float64, 0, repeat[0]*repeat[1]*repeat[2])
	for i := 0; i < repeat[0]; i++ {
		for j := 0; j < repeat[1]; j++ {
			for k := 0; k < repeat[2]; k++ {
				out = append(out, [3]float64{
					float64(size.W * i),
					float64(size.H * j),
					float64(size.D * k),
				})
			}
		}
	}
	return out
}
