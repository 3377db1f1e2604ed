package surface

import (
	"testing"

	"github.com/hschendel/stl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/silicaviz/silica/pkg/grid"
)

func mustGrid(t *testing.T, size grid.Size, cells ...grid.Cell) *grid.Grid {
	t.Helper()
	g, err := grid.FromCells(size, cells...)
	require.NoError(t, err)
	return g
}

// assertClosed checks the mesh is a closed surface whose winding agrees
// with its normals.
func assertClosed(t *testing.T, m *Mesh) {
	t.Helper()
	solid := stl.Solid{Name: "test"}
	for i := 0; i < m.Triangles(); i++ {
		solid.AppendTriangle(stl.Triangle{
			Normal: stl.Vec3(m.Normals[3*i]),
			Vertices: [3]stl.Vec3{
				stl.Vec3(m.Positions[3*i]),
				stl.Vec3(m.Positions[3*i+1]),
				stl.Vec3(m.Positions[3*i+2]),
			},
		})
	}
	assert.Empty(t, solid.Validate())
}

func TestSingleCube(t *testing.T) {
	g := mustGrid(t, grid.Size{W: 3, H: 3, D: 3}, grid.Cell{X: 1, Y: 1, Z: 1})
	m := Extract(g, g.Bounds())

	assert.Equal(t, 12, m.Triangles())
	assert.Len(t, m.Normals, len(m.Positions))
	assertClosed(t, m)

	for _, p := range m.Positions {
		for k := 0; k < 3; k++ {
			assert.True(t, p[k] == 1 || p[k] == 2, "vertex %v outside cell", p)
		}
	}
}

func TestWindingMatchesNormals(t *testing.T) {
	var m Mesh
	m.AddBox([3]float32{0, 0, 0}, [3]float32{1, 1, 1})
	for i := 0; i < m.Triangles(); i++ {
		a, b, c := m.Positions[3*i], m.Positions[3*i+1], m.Positions[3*i+2]
		u := [3]float32{b[0] - a[0], b[1] - a[1], b[2] - a[2]}
		v := [3]float32{c[0] - a[0], c[1] - a[1], c[2] - a[2]}
		cross := [3]float32{u[1]*v[2] - u[2]*v[1], u[2]*v[0] - u[0]*v[2], u[0]*v[1] - u[1]*v[0]}
		n := m.Normals[3*i]
		dot := cross[0]*n[0] + cross[1]*n[1] + cross[2]*n[2]
		assert.Greater(t, dot, float32(0), "triangle %d winds against its normal", i)
	}
}

func TestDirectionTable(t *testing.T) {
	for _, d := range Directions {
		o := d.Offset()
		n := d.Normal()
		assert.Equal(t, [3]float32{float32(o.X), float32(o.Y), float32(o.Z)}, n, "direction %v", d)
		assert.Equal(t, d, d.Opposite().Opposite())
		opp := d.Opposite().Offset()
		assert.Equal(t, grid.Cell{}, o.Add(opp))
	}
}

func TestTwoAdjacentCubes(t *testing.T) {
	g := mustGrid(t, grid.Size{W: 2, H: 1, D: 1}, grid.Cell{}, grid.Cell{X: 1})
	v := Visible(g, g.Bounds())

	require.Len(t, v.Masks, 2)
	assert.False(t, v.Masks[0].Has(PosX))
	assert.False(t, v.Masks[1].Has(NegX))
	assert.Equal(t, 5, v.Masks[0].Count())
	assert.Equal(t, 5, v.Masks[1].Count())

	m := Build(v)
	assert.Equal(t, 20, m.Triangles())
	assert.Equal(t, 10, m.Faces())
	assertClosed(t, m)
}

func TestBoundaryFacesNoWraparound(t *testing.T) {
	const w = 5
	cells := make([]grid.Cell, w)
	for i := range cells {
		cells[i] = grid.Cell{X: i}
	}
	g := mustGrid(t, grid.Size{W: w, H: 1, D: 1}, cells...)
	v := Visible(g, g.Bounds())

	assert.True(t, v.Masks[0].Has(NegX))
	assert.True(t, v.Masks[w-1].Has(PosX))
	for i := 1; i < w-1; i++ {
		assert.False(t, v.Masks[i].Has(NegX))
		assert.False(t, v.Masks[i].Has(PosX))
	}
	assert.Equal(t, 4*w+2, v.Faces())
	assertClosed(t, Build(v))
}

func TestOppositeEdgesDoNotHideEachOther(t *testing.T) {
	g := mustGrid(t, grid.Size{W: 3, H: 1, D: 1}, grid.Cell{}, grid.Cell{X: 2})
	v := Visible(g, g.Bounds())
	assert.Equal(t, FaceMask(0x3f), v.Masks[0])
	assert.Equal(t, FaceMask(0x3f), v.Masks[1])
}

func TestSliceBoxExposesFaces(t *testing.T) {
	g := mustGrid(t, grid.Size{W: 3, H: 1, D: 1}, grid.Cell{}, grid.Cell{X: 1}, grid.Cell{X: 2})
	box := grid.Box{Max: grid.Cell{X: 1}}
	v := Visible(g, box)

	require.Equal(t, []grid.Cell{{}, {X: 1}}, v.Cells)
	assert.True(t, v.Masks[1].Has(PosX), "cell beyond the box must not hide the face")
	assert.Equal(t, 10, v.Faces())
}

func TestEmptyGrid(t *testing.T) {
	g := grid.New(grid.Size{W: 4, H: 4, D: 4})
	m := Extract(g, g.Bounds())
	assert.Len(t, m.Positions, 0)
	assert.Len(t, m.Normals, 0)
	assert.Equal(t, 0, m.Triangles())
}

func TestSolidBlock(t *testing.T) {
	var cells []grid.Cell
	for x := 0; x < 2; x++ {
		for y := 0; y < 2; y++ {
			for z := 0; z < 2; z++ {
				cells = append(cells, grid.Cell{X: x, Y: y, Z: z})
			}
		}
	}
	g := mustGrid(t, grid.Size{W: 2, H: 2, D: 2}, cells...)
	v := Visible(g, g.Bounds())

	assert.Equal(t, 24, v.Faces())
	assert.Equal(t, [6]int{4, 4, 4, 4, 4, 4}, v.FacesByDirection())
	assertClosed(t, Build(v))
}

func TestOutputFollowsCellOrder(t *testing.T) {
	g := mustGrid(t, grid.Size{W: 4, H: 4, D: 4}, grid.Cell{X: 3, Y: 3, Z: 3}, grid.Cell{})
	m := Extract(g, g.Bounds())

	// First face belongs to the origin cell, last to (3,3,3).
	assert.Equal(t, [3]float32{0, 0, 0}, m.Positions[0])
	assert.Equal(t, [3]float32{3, 4, 4}, m.Positions[len(m.Positions)-1])
	assert.Equal(t, NegX.Normal(), m.Normals[0])
	assert.Equal(t, PosZ.Normal(), m.Normals[len(m.Normals)-1])
}
