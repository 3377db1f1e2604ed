package surface

import (
	"github.com/silicaviz/silica/pkg/grid"
)

// Direction is one of the six face directions of a unit cube.
// Directions d and d+3 are opposite.
type Direction int

// Face directions.
const (
	NegX Direction = iota
	NegY
	NegZ
	PosX
	PosY
	PosZ
)

// Directions lists every face direction in mask bit order.
var Directions = [6]Direction{NegX, NegY, NegZ, PosX, PosY, PosZ}

// Opposite returns the direction facing the other way.
func (d Direction) Opposite() Direction {
	return (d + 3) % 6
}

func (d Direction) String() string {
	return [...]string{"-X", "-Y", "-Z", "+X", "+Y", "+Z"}[d]
}

// Offset returns the neighbouring cell step in direction d.
func (d Direction) Offset() grid.Cell {
	return faces[d].offset
}

// Normal returns the outward unit normal of face d.
func (d Direction) Normal() [3]float32 {
	return faces[d].normal
}

// Quad returns the corners of face d on the unit cube [0,1]³, ordered
// counter-clockwise when seen from outside, so the right-hand rule yields
// the outward normal.
func (d Direction) Quad() [4][3]float32 {
	return faces[d].quad
}

type face struct {
	offset grid.Cell
	normal [3]float32
	quad   [4][3]float32
}

var faces = [6]face{
	NegX: {grid.Cell{X: -1}, [3]float32{-1, 0, 0}, [4][3]float32{{0, 0, 0}, {0, 0, 1}, {0, 1, 1}, {0, 1, 0}}},
	NegY: {grid.Cell{Y: -1}, [3]float32{0, -1, 0}, [4][3]float32{{0, 0, 0}, {1, 0, 0}, {1, 0, 1}, {0, 0, 1}}},
	NegZ: {grid.Cell{Z: -1}, [3]float32{0, 0, -1}, [4][3]float32{{0, 0, 0}, {0, 1, 0}, {1, 1, 0}, {1, 0, 0}}},
	PosX: {grid.Cell{X: 1}, [3]float32{1, 0, 0}, [4][3]float32{{1, 0, 0}, {1, 1, 0}, {1, 1, 1}, {1, 0, 1}}},
	PosY: {grid.Cell{Y: 1}, [3]float32{0, 1, 0}, [4][3]float32{{0, 1, 0}, {0, 1, 1}, {1, 1, 1}, {1, 1, 0}}},
	PosZ: {grid.Cell{Z: 1}, [3]float32{0, 0, 1}, [4][3]float32{{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1}}},
}

// Mesh is a triangle list with one normal per vertex.
type Mesh struct {
	Positions [][3]float32
	Normals   [][3]float32
}

// Triangles returns the number of triangles.
func (m *Mesh) Triangles() int {
	return len(m.Positions) / 3
}

// Faces returns the number of square faces (two triangles each).
func (m *Mesh) Faces() int {
	return m.Triangles() / 2
}

// AddFace appends face d of the box at origin with the given extent as two
// triangles (q0, q1, q2) and (q0, q2, q3).
func (m *Mesh) AddFace(d Direction, origin, extent [3]float32) {
	q := faces[d].quad
	var v [4][3]float32
	for i := range q {
		for k := 0; k < 3; k++ {
			v[i][k] = origin[k] + q[i][k]*extent[k]
		}
	}
	n := faces[d].normal
	m.Positions = append(m.Positions, v[0], v[1], v[2], v[0], v[2], v[3])
	m.Normals = append(m.Normals, n, n, n, n, n, n)
}

// AddBox appends all six faces of an axis-aligned box.
func (m *Mesh) AddBox(origin, extent [3]float32) {
	for _, d := range Directions {
		m.AddFace(d, origin, extent)
	}
}
