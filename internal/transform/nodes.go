package transform

import (
	"fmt"
	gomath "math"

	"github.com/silicaviz/silica/pkg/math"
)

// Axis names a coordinate axis.
type Axis int

// Coordinate axes.
const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) valid() bool { return a >= AxisX && a <= AxisZ }

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "X"
	case AxisY:
		return "Y"
	case AxisZ:
		return "Z"
	}
	return fmt.Sprintf("Axis(%d)", int(a))
}

func mustAxis(a Axis) {
	if !a.valid() {
		panic(fmt.Sprintf("transform: invalid axis %d", int(a)))
	}
}

func mustFinite(name string, vs ...float64) {
	for _, v := range vs {
		if gomath.IsNaN(v) || gomath.IsInf(v, 0) {
			panic(fmt.Sprintf("transform: %s must be finite, got %v", name, v))
		}
	}
}

// Scale

type scaleCalc struct{ factor float64 }

func (c *scaleCalc) calculate(*Graph) math.Mat4 { return math.Scale(c.factor) }

// Scale is a uniform scale diag(f, f, f, 1).
type Scale struct {
	g  *Graph
	id NodeID
}

// NewScale adds a Scale node.
func (g *Graph) NewScale(factor float64) Scale {
	mustFinite("scale", factor)
	return Scale{g, g.add(&scaleCalc{factor})}
}

// ID returns the node handle.
func (s Scale) ID() NodeID { return s.id }

// Factor returns the current scale factor.
func (s Scale) Factor() float64 { return s.calc().factor }

// SetFactor changes the factor and dirties the node.
func (s Scale) SetFactor(f float64) {
	mustFinite("scale", f)
	s.calc().factor = f
	s.g.Dirty(s.id)
}

func (s Scale) calc() *scaleCalc { return s.g.node(s.id).calc.(*scaleCalc) }

// Translate

type translateCalc struct{ r math.Vec3 }

func (c *translateCalc) calculate(*Graph) math.Mat4 { return math.Translate(c.r) }

// Translate moves points by r.
type Translate struct {
	g  *Graph
	id NodeID
}

// NewTranslate adds a Translate node.
func (g *Graph) NewTranslate(r math.Vec3) Translate {
	return Translate{g, g.add(&translateCalc{r})}
}

// ID returns the node handle.
func (t Translate) ID() NodeID { return t.id }

// R returns the current displacement.
func (t Translate) R() math.Vec3 { return t.calc().r }

// SetR changes the displacement and dirties the node.
func (t Translate) SetR(r math.Vec3) {
	t.calc().r = r
	t.g.Dirty(t.id)
}

func (t Translate) calc() *translateCalc { return t.g.node(t.id).calc.(*translateCalc) }

// BasicAxisRotation

type rotationCalc struct {
	angle float64
	axis  Axis
}

func (c *rotationCalc) calculate(*Graph) math.Mat4 {
	// The two axes spanning the plane of rotation, in ascending order.
	var ix [2]int
	k := 0
	for a := 0; a < 3; a++ {
		if Axis(a) != c.axis {
			ix[k] = a
			k++
		}
	}
	sin, cos := gomath.Sincos(c.angle)
	mat := math.Identity()
	mat.Set(ix[0], ix[0], cos)
	mat.Set(ix[0], ix[1], -sin)
	mat.Set(ix[1], ix[0], sin)
	mat.Set(ix[1], ix[1], cos)
	return mat
}

// BasicAxisRotation rotates about one coordinate axis.
type BasicAxisRotation struct {
	g  *Graph
	id NodeID
}

// NewBasicAxisRotation adds a rotation by angle radians about axis.
func (g *Graph) NewBasicAxisRotation(angle float64, axis Axis) BasicAxisRotation {
	mustAxis(axis)
	return BasicAxisRotation{g, g.add(&rotationCalc{angle, axis})}
}

// ID returns the node handle.
func (r BasicAxisRotation) ID() NodeID { return r.id }

// Angle returns the rotation angle in radians.
func (r BasicAxisRotation) Angle() float64 { return r.calc().angle }

// Axis returns the rotation axis.
func (r BasicAxisRotation) Axis() Axis { return r.calc().axis }

// SetAngle changes the angle and dirties the node.
func (r BasicAxisRotation) SetAngle(angle float64) {
	r.calc().angle = angle
	r.g.Dirty(r.id)
}

func (r BasicAxisRotation) calc() *rotationCalc { return r.g.node(r.id).calc.(*rotationCalc) }

// ChangeBasis

type basisCalc struct {
	basis          math.Basis
	orthonormalize bool
}

func (c *basisCalc) calculate(*Graph) math.Mat4 {
	if c.orthonormalize {
		if o, ok := c.basis.Orthonormalize(); ok {
			// Persisted without dirtying: the matrix being built is already
			// the one for the new basis.
			c.basis = o
		}
	}
	b := c.basis
	return math.FromRows([4][4]float64{
		{b[0].X, b[0].Y, b[0].Z, 0},
		{b[1].X, b[1].Y, b[1].Z, 0},
		{b[2].X, b[2].Y, b[2].Z, 0},
		{0, 0, 0, 1},
	})
}

// ChangeBasis maps coordinates into the frame (e0, e1, e2), whose vectors
// are given in the input frame. The matrix rows are the basis vectors.
type ChangeBasis struct {
	g  *Graph
	id NodeID
}

// NewChangeBasis adds a ChangeBasis node. With orthonormalize set, the basis
// is replaced by its nearest orthonormal frame on each recalculation.
func (g *Graph) NewChangeBasis(b math.Basis, orthonormalize bool) ChangeBasis {
	return ChangeBasis{g, g.add(&basisCalc{b, orthonormalize})}
}

// ID returns the node handle.
func (c ChangeBasis) ID() NodeID { return c.id }

// Basis returns the stored basis. After a recalculation of an
// orthonormalizing node this is the orthonormalized frame.
func (c ChangeBasis) Basis() math.Basis { return c.calc().basis }

// SetBasis replaces the basis and dirties the node.
func (c ChangeBasis) SetBasis(b math.Basis) {
	c.calc().basis = b
	c.g.Dirty(c.id)
}

func (c ChangeBasis) calc() *basisCalc { return c.g.node(c.id).calc.(*basisCalc) }

// FlipHandedness

type flipCalc struct{ axis Axis }

func (c *flipCalc) calculate(*Graph) math.Mat4 {
	mat := math.Identity()
	mat.Set(int(c.axis), int(c.axis), -1)
	return mat
}

// NewFlipHandedness adds a node negating one axis. It has no mutators.
func (g *Graph) NewFlipHandedness(axis Axis) NodeID {
	mustAxis(axis)
	return g.add(&flipCalc{axis})
}

// Geometry describes the viewer's eye relative to the screen.
type Geometry struct {
	// EyeDistance is the distance from the eye to the screen (d0).
	EyeDistance float64
	// SightRange is the depth visible behind the screen (d).
	SightRange float64
}

// Foreshortening

type foreshorteningCalc struct{ geom Geometry }

func (c *foreshorteningCalc) calculate(*Graph) math.Mat4 {
	d0, d := c.geom.EyeDistance, c.geom.SightRange
	mat := math.Identity()
	mat.Set(2, 2, 1/d0+2/d)
	mat.Set(2, 3, -1)
	mat.Set(3, 2, 1/d0)
	return mat
}

// NewForeshortening adds the perspective term for geom.
func (g *Graph) NewForeshortening(geom Geometry) NodeID {
	mustPositive("eye distance", geom.EyeDistance)
	mustPositive("sight range", geom.SightRange)
	return g.add(&foreshorteningCalc{geom})
}

// AspectRatio

type aspectCalc struct{ w, h float64 }

func (c *aspectCalc) calculate(*Graph) math.Mat4 {
	mat := math.Identity()
	mat.Set(0, 0, 2/c.w)
	mat.Set(1, 1, 2/c.h)
	return mat
}

// AspectRatio maps a w×h pixel viewport onto clip space.
type AspectRatio struct {
	g  *Graph
	id NodeID
}

// NewAspectRatio adds an AspectRatio node.
func (g *Graph) NewAspectRatio(w, h float64) AspectRatio {
	mustPositive("width", w)
	mustPositive("height", h)
	return AspectRatio{g, g.add(&aspectCalc{w, h})}
}

// ID returns the node handle.
func (a AspectRatio) ID() NodeID { return a.id }

// Size returns the viewport size.
func (a AspectRatio) Size() (w, h float64) {
	c := a.calc()
	return c.w, c.h
}

// SetSize changes the viewport size and dirties the node.
func (a AspectRatio) SetSize(w, h float64) {
	mustPositive("width", w)
	mustPositive("height", h)
	c := a.calc()
	c.w, c.h = w, h
	a.g.Dirty(a.id)
}

func (a AspectRatio) calc() *aspectCalc { return a.g.node(a.id).calc.(*aspectCalc) }

// LookAt

type lookAtCalc struct {
	geom  Geometry
	scale NodeID
}

func (c *lookAtCalc) calculate(g *Graph) math.Mat4 {
	s := g.nodes[c.scale].calc.(*scaleCalc).factor
	mat := math.Identity()
	mat.Set(2, 2, 1/s)
	mat.Set(2, 3, -c.geom.SightRange/2)
	return mat
}

// NewLookAt adds a node that compresses depth by the live factor of scale
// and moves the scene to the middle of the sight range. It registers itself
// as a user of scale.
func (g *Graph) NewLookAt(geom Geometry, scale Scale) NodeID {
	mustPositive("sight range", geom.SightRange)
	id := g.add(&lookAtCalc{geom, scale.id})
	g.AddUser(scale.id, id)
	return id
}

func mustPositive(name string, v float64) {
	mustFinite(name, v)
	if v <= 0 {
		panic(fmt.Sprintf("transform: %s must be positive, got %v", name, v))
	}
}
