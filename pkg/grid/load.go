package grid

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// Grid file errors.
var (
	ErrBadHeader   = errors.New("malformed grid size header")
	ErrBadRecord   = errors.New("malformed grid record")
	ErrOutOfBounds = errors.New("cell outside grid")
	ErrBadSlice    = errors.New("invalid slice limits")
	ErrSizeUnknown = errors.New("grid size cannot be guessed")
)

// Sizer determines the size of the grid stored in a file.
type Sizer interface {
	// GridSize may consume lines from sc.
	GridSize(sc *bufio.Scanner) (Size, error)
}

// HeaderSizer reads the size from the first line, "w h d". The numbers may
// be written as floats; they are truncated.
type HeaderSizer struct{}

// GridSize implements Sizer.
func (HeaderSizer) GridSize(sc *bufio.Scanner) (Size, error) {
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return Size{}, err
		}
		return Size{}, fmt.Errorf("empty input: %w", ErrBadHeader)
	}
	fields := strings.Fields(sc.Text())
	if len(fields) != 3 {
		return Size{}, fmt.Errorf("header %q: want 3 fields: %w", sc.Text(), ErrBadHeader)
	}
	var dims [3]int
	for i, f := range fields {
		v, err := parseTruncated(f)
		if err != nil {
			return Size{}, fmt.Errorf("header %q: %v: %w", sc.Text(), err, ErrBadHeader)
		}
		dims[i] = v
	}
	size := Size{dims[0], dims[1], dims[2]}
	if !size.Valid() {
		return Size{}, fmt.Errorf("header %q: size must be positive with at most %d cells: %w", sc.Text(), MaxVolume, ErrBadHeader)
	}
	return size, nil
}

// FixedSizer is a size known up front. It consumes nothing.
type FixedSizer Size

// GridSize implements Sizer.
func (s FixedSizer) GridSize(*bufio.Scanner) (Size, error) {
	if !Size(s).Valid() {
		return Size{}, fmt.Errorf("size %v: %w", Size(s), ErrBadHeader)
	}
	return Size(s), nil
}

var sizePattern = regexp.MustCompile(`^data(\d+)x(\d+)x(\d+)t\d+_\d+\.dat$`)

// GuessSize derives the grid size from a glass file name of the form
// data<W>x<H>x<D>t<N>_<M>.dat.
func GuessSize(path string) (Size, error) {
	m := sizePattern.FindStringSubmatch(filepath.Base(path))
	if m == nil {
		return Size{}, fmt.Errorf("%q: %w", path, ErrSizeUnknown)
	}
	var dims [3]int
	for i := range dims {
		v, err := strconv.Atoi(m[i+1])
		if err != nil {
			return Size{}, fmt.Errorf("%q: %v: %w", path, err, ErrSizeUnknown)
		}
		dims[i] = v
	}
	size := Size{dims[0], dims[1], dims[2]}
	if !size.Valid() {
		return Size{}, fmt.Errorf("%q: unsupported size %v: %w", path, size, ErrSizeUnknown)
	}
	return size, nil
}

// Loader reads grids of "x y z value" records.
type Loader struct {
	Sizer Sizer
	// Condition selects the records that become occupied cells.
	// A nil Condition includes everything.
	Condition Condition
}

// Load reads a grid from r. Occupied cells are returned sorted.
func (l Loader) Load(r io.Reader) (*Grid, error) {
	sc := bufio.NewScanner(r)
	sizer := l.Sizer
	if sizer == nil {
		sizer = HeaderSizer{}
	}
	size, err := sizer.GridSize(sc)
	if err != nil {
		return nil, err
	}
	if !size.Valid() {
		return nil, fmt.Errorf("size %v: %w", size, ErrBadHeader)
	}

	g := New(size)
	line := 0
	if _, ok := sizer.(HeaderSizer); ok {
		line = 1
	}
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		c, v, err := parseRecord(text)
		if err != nil {
			return nil, fmt.Errorf("line %d: %v: %w", line, err, ErrBadRecord)
		}
		if !size.Contains(c) {
			return nil, fmt.Errorf("line %d: cell %v outside %v grid: %w", line, c, size, ErrOutOfBounds)
		}
		if l.Condition != nil && !l.Condition.Include(c, v) {
			continue
		}
		if err := g.Set(c); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read grid: %w", err)
	}

	g.sortCells()
	return g, nil
}

// LoadFile opens path and loads it.
func (l Loader) LoadFile(path string) (*Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	g, err := l.Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// GlassLoader returns a loader for glass files: solid cells have value 1 and
// the size comes from the file name unless every dimension of size is
// positive.
func GlassLoader(path string, size Size, limits Limits) (Loader, error) {
	if !size.positive() {
		guessed, err := GuessSize(path)
		if err != nil {
			return Loader{}, err
		}
		size = guessed
	}
	return Loader{
		Sizer:     FixedSizer(size),
		Condition: All{ValueEqual(1), limits},
	}, nil
}

// PotentialLoader returns a loader for potential files: the size is in the
// header and cells with values in r are shown.
func PotentialLoader(r ValueInRange, limits Limits) Loader {
	return Loader{
		Sizer:     HeaderSizer{},
		Condition: All{r, limits},
	}
}

func parseRecord(text string) (Cell, float64, error) {
	fields := strings.Fields(text)
	if len(fields) != 4 {
		return Cell{}, 0, fmt.Errorf("want 4 fields, got %d", len(fields))
	}
	var xyz [3]int
	for i := 0; i < 3; i++ {
		v, err := parseTruncated(fields[i])
		if err != nil {
			return Cell{}, 0, err
		}
		xyz[i] = v
	}
	v, err := strconv.ParseFloat(fields[3], 64)
	if err != nil {
		return Cell{}, 0, err
	}
	return Cell{xyz[0], xyz[1], xyz[2]}, v, nil
}

func parseTruncated(s string) (int, error) {
	if v, err := strconv.Atoi(s); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%q is not a finite number", s)
	}
	return int(f), nil
}
