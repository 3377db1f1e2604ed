package camera

import (
	gomath "math"

	"github.com/silicaviz/silica/pkg/math"
)

// Buttons is a mouse button mask.
type Buttons uint32

// Mouse buttons.
const (
	ButtonLeft Buttons = 1 << iota
	ButtonMiddle
	ButtonRight
)

// Key names a key the controller polls on every tick.
type Key int

// Polled keys.
const (
	KeyRecenter Key = iota
	KeyForward
	KeyBackward
)

// KeyState reports which keys are held down.
type KeyState interface {
	Pressed(k Key) bool
}

// Controller turns input events into changes of the rig's leaf nodes.
// It keeps no state of its own besides the rig and its configuration.
type Controller struct {
	rig  *Rig
	cfg  Config
	keys KeyState
}

// NewController returns a controller driving rig.
func NewController(rig *Rig, cfg Config, keys KeyState) *Controller {
	return &Controller{rig: rig, cfg: cfg, keys: keys}
}

// Rig returns the driven rig.
func (c *Controller) Rig() *Rig {
	return c.rig
}

// OnResize updates the viewport size. Non-positive sizes (a minimized
// window) are ignored.
func (c *Controller) OnResize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.rig.Aspect.SetSize(float64(width), float64(height))
}

// Zoom limits. Steps that would leave this range are ignored, which keeps
// the scale and its reciprocal finite.
const (
	minScale = 1e-300
	maxScale = 1e300
)

// OnScroll zooms by a factor of 1 ± zoomSpeed·|dy|.
func (c *Controller) OnScroll(dy float64) {
	if dy == 0 || gomath.IsNaN(dy) || gomath.IsInf(dy, 0) {
		return
	}
	step := c.cfg.ZoomSpeed * gomath.Abs(dy)
	if dy < 0 {
		step = -step
	}
	scale := c.rig.Scale.Factor() * (1 + step)
	if !(scale >= minScale && scale <= maxScale) {
		return
	}
	c.rig.Scale.SetFactor(scale)
}

// OnDrag handles a pointer drag of (dx, dy) pixels, with dy growing upwards.
// The left button turns the view basis, the right button pans.
// Any other button combination is ignored.
func (c *Controller) OnDrag(dx, dy float64, buttons Buttons) {
	switch buttons {
	case ButtonLeft:
		c.rotate(dx, dy)
	case ButtonRight:
		c.pan(dx, dy)
	}
}

func (c *Controller) rotate(dx, dy float64) {
	yaw := dx * c.cfg.RotationSpeed
	pitch := -dy * c.cfg.RotationSpeed

	b := c.rig.Rot.Basis()
	horiz, up, forward := b[0], b[1], b[2]

	c.rig.Rot.SetBasis(math.Basis{
		horiz.Rotate(up, yaw),
		up.Rotate(horiz, pitch),
		forward.Rotate(horiz, pitch).Rotate(up, yaw),
	})
}

func (c *Controller) pan(dx, dy float64) {
	u := math.Vec4{dx * c.cfg.TranslationSpeed, dy * c.cfg.TranslationSpeed, 0, 0}
	c.rig.Shift.SetR(c.rig.Shift.R().Add(c.rig.toWorld(u)))
}

// Tick advances held-key motion by dt seconds. Travel along the sight line
// is applied first, so a held recenter key always wins.
func (c *Controller) Tick(dt float64) {
	if c.keys == nil {
		return
	}
	c.moveAlongSightLine(dt)
	if c.keys.Pressed(KeyRecenter) {
		c.Recenter()
	}
}

func (c *Controller) moveAlongSightLine(dt float64) {
	fwd, bwd := c.keys.Pressed(KeyForward), c.keys.Pressed(KeyBackward)
	if !fwd && !bwd {
		return
	}
	dir := 0.0
	if fwd {
		dir++
	}
	if bwd {
		dir--
	}
	if dir == 0 {
		return
	}

	displacement := c.rig.Scale.Factor() * c.cfg.SightLineSpeed * dir * dt
	k := c.rig.toWorld(math.Vec4{0, 0, 1, 1})
	c.rig.Shift.SetR(c.rig.Shift.R().Add(k.Scale(displacement)))
}

// Recenter restores the initial shift, scale and basis.
func (c *Controller) Recenter() {
	c.rig.Shift.SetR(c.cfg.InitialShift)
	c.rig.Scale.SetFactor(c.cfg.InitialScale)
	c.rig.Rot.SetBasis(c.cfg.InitialBasis)
}
