// Package camera assembles the camera transform chain and drives it from
// user input.
package camera

import (
	"github.com/silicaviz/silica/internal/transform"
	"github.com/silicaviz/silica/pkg/math"
)

// Config holds the camera parameters. It is read-only once a Rig is built.
type Config struct {
	Geometry transform.Geometry

	InitialScale float64
	InitialBasis math.Basis
	// InitialShift is the translation the camera starts from and returns
	// to on recenter, usually the negated centre of the scene.
	InitialShift math.Vec3

	ZoomSpeed        float64
	RotationSpeed    float64
	TranslationSpeed float64
	SightLineSpeed   float64
}

// DefaultConfig returns the stock viewer parameters.
func DefaultConfig() Config {
	return Config{
		Geometry:         transform.Geometry{EyeDistance: 50, SightRange: 14000},
		InitialScale:     1000,
		InitialBasis:     math.StandardBasis(),
		ZoomSpeed:        0.05,
		RotationSpeed:    0.005,
		TranslationSpeed: 120,
		SightLineSpeed:   3,
	}
}

// Rig is the set of transform nodes making up the camera:
//
//	camera = project · lookAt · sr · shift
//	project = foreshortening · aspect · flip(Z)
//	sr = scale · rot
type Rig struct {
	Graph *transform.Graph

	Aspect transform.AspectRatio
	Scale  transform.Scale
	Rot    transform.ChangeBasis
	Shift  transform.Translate

	LookAt  transform.NodeID
	Project transform.Product
	SR      transform.Product
	Camera  transform.Product
}

// NewRig adds the camera nodes for a width×height viewport to g.
func NewRig(g *transform.Graph, cfg Config, width, height float64) *Rig {
	r := &Rig{Graph: g}

	r.Aspect = g.NewAspectRatio(width, height)
	ah := g.NewProduct(r.Aspect.ID(), g.NewFlipHandedness(transform.AxisZ))
	r.Project = g.NewProduct(g.NewForeshortening(cfg.Geometry), ah.ID())

	r.Rot = g.NewChangeBasis(cfg.InitialBasis, true)
	r.Scale = g.NewScale(cfg.InitialScale)
	r.LookAt = g.NewLookAt(cfg.Geometry, r.Scale)
	r.SR = g.NewProduct(r.Scale.ID(), r.Rot.ID())
	r.Shift = g.NewTranslate(cfg.InitialShift)

	r.Camera = g.NewProduct(r.Project.ID(), r.LookAt, r.SR.ID(), r.Shift.ID())
	return r
}

// Matrix returns the full camera matrix.
func (r *Rig) Matrix() math.Mat4 {
	return r.Graph.Matrix(r.Camera.ID())
}

// GLMatrix returns the camera matrix ready for upload.
func (r *Rig) GLMatrix() [16]float32 {
	return r.Graph.GLMatrix(r.Camera.ID())
}

// toWorld maps a view-space direction through the inverse of scale·rotation.
func (r *Rig) toWorld(v math.Vec4) math.Vec3 {
	inv, ok := r.Graph.Matrix(r.SR.ID()).Inverse()
	if !ok {
		return math.Vec3{}
	}
	return inv.MulVec4(v).XYZ()
}
