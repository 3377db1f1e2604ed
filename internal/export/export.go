// Package export writes extracted surfaces to mesh files.
package export

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hschendel/stl"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/silicaviz/silica/internal/surface"
	"github.com/silicaviz/silica/pkg/grid"
)

// ErrUnknownFormat is returned for an output path with an unsupported extension.
var ErrUnknownFormat = errors.New("unknown mesh format")

// Options controls how a surface is written.
type Options struct {
	Name string
	// Color is the RGBA base colour of the material.
	Color [4]float64
	// Repeat tiles the surface along each axis; copy (i, j, k) is shifted
	// by (W·i, H·j, D·k) cells. Zero entries count as 1.
	Repeat [3]int
	// Size is the grid size used for tiling.
	Size grid.Size
}

// Document builds a glTF document holding m once, instanced by one node per
// repetition.
func Document(m *surface.Mesh, opts Options) *gltf.Document {
	doc := gltf.NewDocument()
	name := opts.Name
	if name == "" {
		name = "surface"
	}

	color := opts.Color
	mat := &gltf.Material{
		Name: name,
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
			BaseColorFactor: &color,
			MetallicFactor:  gltf.Float(0),
		},
	}
	if color[3] < 1 {
		mat.AlphaMode = gltf.AlphaBlend
	}
	doc.Materials = append(doc.Materials, mat)

	prim := &gltf.Primitive{
		Mode:     gltf.PrimitiveTriangles,
		Material: gltf.Index(len(doc.Materials) - 1),
		Attributes: gltf.PrimitiveAttributes{
			gltf.POSITION: modeler.WritePosition(doc, m.Positions),
			gltf.NORMAL:   modeler.WriteNormal(doc, m.Normals),
		},
	}
	doc.Meshes = append(doc.Meshes, &gltf.Mesh{Name: name, Primitives: []*gltf.Primitive{prim}})
	mesh := len(doc.Meshes) - 1

	for i, shift := range grid.Repetitions(opts.Size, opts.Repeat) {
		doc.Nodes = append(doc.Nodes, &gltf.Node{
			Name:        fmt.Sprintf("%s-%d", name, i),
			Mesh:        gltf.Index(mesh),
			Translation: shift,
		})
		doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, len(doc.Nodes)-1)
	}
	return doc
}

// WriteGLTF encodes m as glTF; binary selects the .glb container.
func WriteGLTF(w io.Writer, m *surface.Mesh, opts Options, binary bool) error {
	if len(m.Positions) == 0 {
		return fmt.Errorf("write gltf: empty surface")
	}
	doc := Document(m, opts)
	enc := gltf.NewEncoder(w)
	enc.AsBinary = binary
	if !binary {
		// Plain glTF carries its buffer inline as a data URI.
		for _, b := range doc.Buffers {
			b.EmbeddedResource()
		}
		enc.SetJSONIndent("", "  ")
	}
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("write gltf: %w", err)
	}
	return nil
}

// Solid returns m as an STL solid with every repetition baked in.
func Solid(m *surface.Mesh, opts Options) *stl.Solid {
	name := opts.Name
	if name == "" {
		name = "surface"
	}
	s := &stl.Solid{Name: name}
	for _, shift := range grid.Repetitions(opts.Size, opts.Repeat) {
		off := stl.Vec3{float32(shift[0]), float32(shift[1]), float32(shift[2])}
		for i := 0; i+2 < len(m.Positions); i += 3 {
			var tri stl.Triangle
			tri.Normal = stl.Vec3(m.Normals[i])
			for v := 0; v < 3; v++ {
				p := m.Positions[i+v]
				tri.Vertices[v] = stl.Vec3{p[0] + off[0], p[1] + off[1], p[2] + off[2]}
			}
			s.AppendTriangle(tri)
		}
	}
	return s
}

// WriteSTL encodes m as binary STL.
func WriteSTL(w io.Writer, m *surface.Mesh, opts Options) error {
	if err := Solid(m, opts).WriteAll(w); err != nil {
		return fmt.Errorf("write stl: %w", err)
	}
	return nil
}

// WriteFile picks the format from the extension of path: .glb, .gltf or .stl.
func WriteFile(path string, m *surface.Mesh, opts Options) error {
	ext := strings.ToLower(filepath.Ext(path))
	var write func(io.Writer) error
	switch ext {
	case ".glb":
		write = func(w io.Writer) error { return WriteGLTF(w, m, opts, true) }
	case ".gltf":
		write = func(w io.Writer) error { return WriteGLTF(w, m, opts, false) }
	case ".stl":
		write = func(w io.Writer) error { return WriteSTL(w, m, opts) }
	default:
		return fmt.Errorf("%s: %w", path, ErrUnknownFormat)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
