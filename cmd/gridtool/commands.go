package main

import (
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/silicaviz/silica/internal/export"
	"github.com/silicaviz/silica/internal/fog"
	"github.com/silicaviz/silica/internal/surface"
)

// parse registers the shared flags on a new flag set and parses args.
// It returns the flags and the positional arguments, requiring at least n.
func parse(name string, args []string, n int, extra func(*flag.FlagSet)) (*gridFlags, []string, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var gf gridFlags
	gf.register(fs)
	if extra != nil {
		extra(fs)
	}
	if err := fs.Parse(args); err != nil {
		return nil, nil, fmt.Errorf("%s: %v: %w", name, err, errUsage)
	}
	if fs.NArg() < n {
		return nil, nil, fmt.Errorf("%s needs %d argument(s): %w", name, n, errUsage)
	}
	return &gf, fs.Args(), nil
}

func cmdInfo(args []string, out io.Writer) error {
	gf, rest, err := parse("info", args, 1, nil)
	if err != nil {
		return err
	}
	l, err := gf.load(rest[0])
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "File:     %s\n", l.path)
	fmt.Fprintf(out, "Kind:     %s\n", l.kind)
	fmt.Fprintf(out, "Size:     %v (%d cells)\n", l.grid.Size, l.grid.Size.Volume())
	fmt.Fprintf(out, "Occupied: %d\n", l.grid.Len())
	fmt.Fprintf(out, "Slice:    %v\n", l.box)
	if l.grid.Len() > 0 {
		fmt.Fprintf(out, "First:    %v\n", l.grid.Cells[0])
		fmt.Fprintf(out, "Last:     %v\n", l.grid.Cells[l.grid.Len()-1])
	}
	return nil
}

func cmdSurface(args []string, out io.Writer) error {
	gf, rest, err := parse("surface", args, 1, nil)
	if err != nil {
		return err
	}
	l, err := gf.load(rest[0])
	if err != nil {
		return err
	}

	v := surface.Visible(l.grid, l.box)
	fmt.Fprintf(out, "Visible cells: %d\n", len(v.Cells))
	fmt.Fprintf(out, "Faces:         %d\n", v.Faces())
	fmt.Fprintf(out, "Triangles:     %d\n", 2*v.Faces())
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Faces by direction:")
	byDir := v.FacesByDirection()
	for _, d := range surface.Directions {
		fmt.Fprintf(out, "  %-3s %d\n", d, byDir[d])
	}
	return nil
}

func cmdFog(args []string, out io.Writer) error {
	gf, rest, err := parse("fog", args, 1, nil)
	if err != nil {
		return err
	}
	l, err := gf.load(rest[0])
	if err != nil {
		return err
	}

	layers := fog.Layers(l.box)
	fmt.Fprintf(out, "Fog layers for %v: %d\n", l.box, len(layers))
	for _, layer := range layers {
		fmt.Fprintf(out, "  inset %-3d origin %v extent %v\n", layer.Inset, layer.Origin, layer.Extent)
	}
	return nil
}

func cmdExport(args []string, out io.Writer) error {
	var (
		name   string
		repeat string
		color  string
	)
	gf, rest, err := parse("export", args, 2, func(fs *flag.FlagSet) {
		fs.StringVar(&name, "name", "", "mesh name (default: kind)")
		fs.StringVar(&repeat, "repeat", "1,1,1", "repetitions along x,y,z")
		fs.StringVar(&color, "color", "0.7,0.7,0.7,1", "RGBA material colour")
	})
	if err != nil {
		return err
	}
	l, err := gf.load(rest[0])
	if err != nil {
		return err
	}

	opts := export.Options{Name: name, Size: l.grid.Size}
	if opts.Name == "" {
		opts.Name = l.kind
	}
	rep, err := parseInts(repeat, 3)
	if err != nil {
		return fmt.Errorf("-repeat: %w", err)
	}
	copy(opts.Repeat[:], rep)
	if opts.Color, err = parseColor(color); err != nil {
		return err
	}

	m := surface.Extract(l.grid, l.box)
	if err := export.WriteFile(rest[1], m, opts); err != nil {
		return err
	}
	fmt.Fprintf(out, "Exported: %s (%d triangles x %d copies)\n", rest[1], m.Triangles(), rep[0]*rep[1]*rep[2])
	return nil
}

func parseColor(s string) ([4]float64, error) {
	var c [4]float64
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return c, fmt.Errorf("-color %q: want r,g,b,a", s)
	}
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil || v < 0 || v > 1 {
			return c, fmt.Errorf("-color %q: components must be numbers in [0, 1]", s)
		}
		c[i] = v
	}
	return c, nil
}
