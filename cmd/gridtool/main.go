// gridtool is a CLI utility for inspecting and exporting glass and
// potential grids.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
)

var errUsage = errors.New("usage")

func main() {
	if len(os.Args) < 2 {
		printUsage(os.Stderr)
		os.Exit(1)
	}

	if err := run(os.Args[1], os.Args[2:], os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, err)
			printUsage(os.Stderr)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(command string, args []string, out io.Writer) error {
	switch command {
	case "info":
		return cmdInfo(args, out)
	case "surface":
		return cmdSurface(args, out)
	case "fog":
		return cmdFog(args, out)
	case "export":
		return cmdExport(args, out)
	case "help", "-h", "--help":
		printUsage(out)
		return nil
	default:
		return fmt.Errorf("unknown command %q: %w", command, errUsage)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `gridtool - glass and potential grid utility

Usage:
  gridtool <command> [options] <file>

Commands:
  info <file>                  Show grid size, occupied cells and slice box
  surface <file>               Count visible faces per direction
  fog <file>                   List fog layer boxes, outermost first
  export <file> <out>          Write the surface as .glb, .gltf or .stl

Common options:
  -kind glass|potential        File format (default: glass if the name has a size)
  -size w,h,d                  Glass grid size when the name does not carry it
  -slice xmin,xmax,ymin,ymax,zmin,zmax
  -min v, -max v               Potential value range
  -value v                     Keep only cells with exactly this value

Examples:
  gridtool info data32x32x32t0_1.dat
  gridtool surface -slice 0,15,,,, data32x32x32t0_1.dat
  gridtool export -repeat 2,2,1 data32x32x32t0_1.dat glass.glb
  gridtool export -kind potential -min 0.5 potential.txt pot.stl`)
}
