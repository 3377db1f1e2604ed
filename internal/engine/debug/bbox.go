// Package debug provides debug visualization utilities.
package debug

import "github.com/silicaviz/silica/pkg/grid"

// GenerateBBoxWireframeVertices creates line vertices for a wireframe bounding box.
// Returns 24 vertices (12 edges × 2 endpoints), format: [x, y, z] per vertex.
// minX, minY, minZ, maxX, maxY, maxZ define the box corners in world space.
func GenerateBBoxWireframeVertices(minX, minY, minZ, maxX, maxY, maxZ float32) []float32 {
	return []float32{
		// Bottom face (4 edges)
		minX, minY, minZ, maxX, minY, minZ,
		maxX, minY, minZ, maxX, minY, maxZ,
		maxX, minY, maxZ, minX, minY, maxZ,
		minX, minY, maxZ, minX, minY, minZ,
		// Top face (4 edges)
		minX, maxY, minZ, maxX, maxY, minZ,
		maxX, maxY, minZ, maxX, maxY, maxZ,
		maxX, maxY, maxZ, minX, maxY, maxZ,
		minX, maxY, maxZ, minX, maxY, minZ,
		// Vertical edges (4 edges)
		minX, minY, minZ, minX, maxY, minZ,
		maxX, minY, minZ, maxX, maxY, minZ,
		maxX, minY, maxZ, maxX, maxY, maxZ,
		minX, minY, maxZ, minX, maxY, maxZ,
	}
}

// SliceBoxVertices outlines the cells of box. Cell (x, y, z) covers the unit
// cube at (x, y, z), so the outline runs from Min to Max+1, grown by padding
// on every side so it does not z-fight with the glass surface.
func SliceBoxVertices(box grid.Box, padding float32) []float32 {
	lo := [3]float32{float32(box.Min.X), float32(box.Min.Y), float32(box.Min.Z)}
	hi := [3]float32{float32(box.Max.X + 1), float32(box.Max.Y + 1), float32(box.Max.Z + 1)}
	for i := range lo {
		lo[i] -= padding
		hi[i] += padding
	}
	return GenerateBBoxWireframeVertices(lo[0], lo[1], lo[2], hi[0], hi[1], hi[2])
}

// BBoxWireframeVertexCount is the number of vertices for a bbox wireframe (12 edges × 2).
const BBoxWireframeVertexCount = 24

// DefaultBBoxPadding keeps the outline just outside the cell faces.
const DefaultBBoxPadding = 0.02
