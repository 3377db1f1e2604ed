package grid

import (
	"fmt"
	"strconv"
	"strings"
)

// Limits restricts the displayed part of a grid. Nil bounds are open and
// resolve to the grid's own extent.
type Limits struct {
	XMin, XMax *int
	YMin, YMax *int
	ZMin, ZMax *int
}

// ParseLimits reads "xmin,xmax,ymin,ymax,zmin,zmax". Empty fields are open
// bounds; an empty string leaves every bound open.
func ParseLimits(s string) (Limits, error) {
	var l Limits
	if strings.TrimSpace(s) == "" {
		return l, nil
	}
	parts := strings.Split(s, ",")
	if len(parts) != 6 {
		return l, fmt.Errorf("slice %q: want 6 comma separated bounds, got %d: %w", s, len(parts), ErrBadSlice)
	}
	dst := []**int{&l.XMin, &l.XMax, &l.YMin, &l.YMax, &l.ZMin, &l.ZMax}
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, err := strconv.Atoi(p)
		if err != nil {
			return l, fmt.Errorf("slice %q: bound %d: %v: %w", s, i, err, ErrBadSlice)
		}
		*dst[i] = &v
	}
	return l, nil
}

// String formats the limits the way ParseLimits reads them.
func (l Limits) String() string {
	parts := make([]string, 6)
	for i, b := range []*int{l.XMin, l.XMax, l.YMin, l.YMax, l.ZMin, l.ZMax} {
		if b != nil {
			parts[i] = strconv.Itoa(*b)
		}
	}
	return strings.Join(parts, ",")
}

// Contains reports whether c satisfies every set bound.
func (l Limits) Contains(c Cell) bool {
	return within(c.X, l.XMin, l.XMax) && within(c.Y, l.YMin, l.YMax) && within(c.Z, l.ZMin, l.ZMax)
}

func within(v int, lo, hi *int) bool {
	if lo != nil && v < *lo {
		return false
	}
	if hi != nil && *hi < v {
		return false
	}
	return true
}

// Resolve closes the open bounds against a grid of the given size.
func (l Limits) Resolve(size Size) (Box, error) {
	pick := func(b *int, def int) int {
		if b == nil {
			return def
		}
		return *b
	}
	box := Box{
		Min: Cell{pick(l.XMin, 0), pick(l.YMin, 0), pick(l.ZMin, 0)},
		Max: Cell{pick(l.XMax, size.W-1), pick(l.YMax, size.H-1), pick(l.ZMax, size.D-1)},
	}
	if box.Empty() {
		return box, fmt.Errorf("slice %s of %v grid is empty: %w", l, size, ErrBadSlice)
	}
	return box, nil
}

// Box is an inclusive axis-aligned range of cells.
type Box struct {
	Min, Max Cell
}

// Contains reports whether c lies in the box.
func (b Box) Contains(c Cell) bool {
	return b.Min.X <= c.X && c.X <= b.Max.X &&
		b.Min.Y <= c.Y && c.Y <= b.Max.Y &&
		b.Min.Z <= c.Z && c.Z <= b.Max.Z
}

// Size returns the number of cells along each axis.
func (b Box) Size() Size {
	return Size{b.Max.X - b.Min.X + 1, b.Max.Y - b.Min.Y + 1, b.Max.Z - b.Min.Z + 1}
}

// Empty reports whether the box holds no cells.
func (b Box) Empty() bool {
	return !b.Size().positive()
}

func (b Box) String() string {
	return fmt.Sprintf("%v..%v", b.Min, b.Max)
}
