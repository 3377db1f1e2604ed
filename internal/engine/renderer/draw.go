package renderer

import "github.com/go-gl/gl/v4.1-core/gl"

// SurfacePass describes one lit surface drawn once per copy shift.
type SurfacePass struct {
	Mesh   *Mesh
	Color  [3]float32
	Sun    [3]float32
	Shifts [][3]float32
}

// DrawSurface draws every copy of a lit surface.
func (r *Renderer) DrawSurface(camera [16]float32, p SurfacePass) {
	if p.Mesh.Vertices() == 0 {
		return
	}
	r.lit.Use()
	r.lit.SetMat4("uCamera", camera)
	r.lit.SetVec3("uColor", p.Color)
	r.lit.SetVec3("uSun", p.Sun)
	for _, shift := range p.Shifts {
		r.lit.SetVec3("uCopyShift", shift)
		p.Mesh.draw()
	}
}

// DrawFog draws translucent fog layers on top of the opaque scene. Layers
// must already be ordered outermost first; depth testing stays on so solid
// glass hides the fog behind it, but depth writes are off so the layers
// blend with each other. Every copy shift gets its own fog.
func (r *Renderer) DrawFog(camera [16]float32, fog *Mesh, color [4]float32, shifts [][3]float32) {
	if fog.Vertices() == 0 {
		return
	}
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.DepthMask(false)

	r.flat.Use()
	r.flat.SetMat4("uCamera", camera)
	r.flat.SetVec4("uColor", color)
	for _, shift := range shifts {
		r.flat.SetVec3("uCopyShift", shift)
		fog.draw()
	}

	gl.DepthMask(true)
	gl.Disable(gl.BLEND)
}

// DrawLines draws a line list in a single colour.
func (r *Renderer) DrawLines(camera [16]float32, lines *Mesh, color [4]float32) {
	if lines.Vertices() == 0 {
		return
	}
	r.flat.Use()
	r.flat.SetMat4("uCamera", camera)
	r.flat.SetVec3("uCopyShift", [3]float32{})
	r.flat.SetVec4("uColor", color)
	lines.draw()
}
