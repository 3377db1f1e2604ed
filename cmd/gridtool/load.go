package main

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/silicaviz/silica/pkg/grid"
)

// gridFlags are the options every command shares.
type gridFlags struct {
	kind  string
	size  string
	slice string
	min   string
	max   string
	value string
}

func (f *gridFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.kind, "kind", "", "glass or potential")
	fs.StringVar(&f.size, "size", "", "glass grid size w,h,d")
	fs.StringVar(&f.slice, "slice", "", "visible sub-box xmin,xmax,ymin,ymax,zmin,zmax")
	fs.StringVar(&f.min, "min", "", "minimal potential value")
	fs.StringVar(&f.max, "max", "", "maximal potential value")
	fs.StringVar(&f.value, "value", "", "keep only cells with this value")
}

// loaded is a grid together with the slice box it is viewed through.
type loaded struct {
	path string
	kind string
	grid *grid.Grid
	box  grid.Box
}

func (f *gridFlags) load(path string) (*loaded, error) {
	limits, err := grid.ParseLimits(f.slice)
	if err != nil {
		return nil, err
	}

	kind := f.kind
	if kind == "" {
		kind = "potential"
		if _, err := grid.GuessSize(path); err == nil || f.size != "" {
			kind = "glass"
		}
	}

	var loader grid.Loader
	switch kind {
	case "glass":
		var size grid.Size
		if f.size != "" {
			if size, err = parseSize(f.size); err != nil {
				return nil, err
			}
		}
		if loader, err = grid.GlassLoader(path, size, limits); err != nil {
			return nil, err
		}
	case "potential":
		var r grid.ValueInRange
		if r.Min, err = optionalFloat("min", f.min); err != nil {
			return nil, err
		}
		if r.Max, err = optionalFloat("max", f.max); err != nil {
			return nil, err
		}
		loader = grid.PotentialLoader(r, limits)
	default:
		return nil, fmt.Errorf("unknown kind %q: %w", kind, errUsage)
	}

	if f.value != "" {
		v, err := strconv.ParseFloat(f.value, 64)
		if err != nil {
			return nil, fmt.Errorf("-value: %w", err)
		}
		loader.Condition = grid.All{loader.Condition, grid.ValueEqual(v)}
	}

	g, err := loader.LoadFile(path)
	if err != nil {
		return nil, err
	}
	box, err := limits.Resolve(g.Size)
	if err != nil {
		return nil, err
	}
	return &loaded{path: path, kind: kind, grid: g, box: box}, nil
}

func parseSize(s string) (grid.Size, error) {
	v, err := parseInts(s, 3)
	if err != nil {
		return grid.Size{}, fmt.Errorf("-size: %w", err)
	}
	size := grid.Size{W: v[0], H: v[1], D: v[2]}
	if !size.Valid() {
		return grid.Size{}, fmt.Errorf("-size %q: dimensions must be positive with at most %d cells", s, grid.MaxVolume)
	}
	return size, nil
}

func parseInts(s string, n int) ([]int, error) {
	parts := strings.Split(s, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("%q: want %d comma separated values", s, n)
	}
	out := make([]int, n)
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("%q: %w", s, err)
		}
		out[i] = v
	}
	return out, nil
}

func optionalFloat(name, s string) (*float64, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("-%s: %w", name, err)
	}
	return &v, nil
}
