// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// GlassVertexShader transforms lit surface meshes, one copy per draw.
//
//go:embed glass.vert
var GlassVertexShader string

// GlassFragmentShader shades surfaces with a single directional light.
//
//go:embed glass.frag
var GlassFragmentShader string

// FlatVertexShader transforms unlit geometry (fog layers, slice box).
//
//go:embed flat.vert
var FlatVertexShader string

// FlatFragmentShader fills with a uniform RGBA colour.
//
//go:embed flat.frag
var FlatFragmentShader string
