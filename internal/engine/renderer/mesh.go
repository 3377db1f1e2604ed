package renderer

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/silicaviz/silica/internal/surface"
)

const floatSize = 4

// Mesh is a triangle or line list resident on the GPU.
type Mesh struct {
	vao, vbo uint32
	count    int32
	mode     uint32
}

// Vertices returns the number of uploaded vertices.
func (m *Mesh) Vertices() int {
	if m == nil {
		return 0
	}
	return int(m.count)
}

// Delete frees the GPU buffers. It is safe on a nil mesh.
func (m *Mesh) Delete() {
	if m == nil {
		return
	}
	if m.vao != 0 {
		gl.DeleteVertexArrays(1, &m.vao)
	}
	if m.vbo != 0 {
		gl.DeleteBuffers(1, &m.vbo)
	}
	m.vao, m.vbo, m.count = 0, 0, 0
}

// UploadSurface stores an extracted surface as interleaved position and
// normal attributes (locations 0 and 1).
func UploadSurface(s *surface.Mesh) *Mesh {
	return upload(Interleave(s), 6, gl.TRIANGLES, true)
}

// UploadLines stores a flat x, y, z line list (location 0).
func UploadLines(vertices []float32) *Mesh {
	return upload(vertices, 3, gl.LINES, false)
}

// Interleave packs a surface mesh as px py pz nx ny nz per vertex.
func Interleave(s *surface.Mesh) []float32 {
	out := make([]float32, 0, len(s.Positions)*6)
	for i, p := range s.Positions {
		n := s.Normals[i]
		out = append(out, p[0], p[1], p[2], n[0], n[1], n[2])
	}
	return out
}

func upload(data []float32, stride int, mode uint32, normals bool) *Mesh {
	m := &Mesh{count: int32(len(data) / stride), mode: mode}
	if m.count == 0 {
		return m
	}

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*floatSize, gl.Ptr(data), gl.STATIC_DRAW)

	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, int32(stride*floatSize), nil)
	gl.EnableVertexAttribArray(0)
	if normals {
		gl.VertexAttribPointer(1, 3, gl.FLOAT, false, int32(stride*floatSize), gl.PtrOffset(3*floatSize))
		gl.EnableVertexAttribArray(1)
	}

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	return m
}

func (m *Mesh) draw() {
	if m == nil || m.count == 0 {
		return
	}
	gl.BindVertexArray(m.vao)
	gl.DrawArrays(m.mode, 0, m.count)
	gl.BindVertexArray(0)
}
