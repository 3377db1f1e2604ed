package grid

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intp(v int) *int { return &v }

func floatp(v float64) *float64 { return &v }

func TestGridSetAndAt(t *testing.T) {
	g := New(Size{2, 2, 2})
	require.NoError(t, g.Set(Cell{1, 0, 1}))
	require.NoError(t, g.Set(Cell{1, 0, 1}))

	assert.True(t, g.At(Cell{1, 0, 1}))
	assert.False(t, g.At(Cell{0, 0, 0}))
	assert.False(t, g.At(Cell{-1, 0, 0}))
	assert.False(t, g.At(Cell{2, 0, 0}))
	assert.Equal(t, 1, g.Len())

	err := g.Set(Cell{0, 2, 0})
	assert.True(t, errors.Is(err, ErrOutOfBounds))
}

func TestFromCellsSorts(t *testing.T) {
	g, err := FromCells(Size{3, 3, 3}, Cell{2, 0, 0}, Cell{0, 1, 2}, Cell{0, 1, 0}, Cell{1, 2, 2})
	require.NoError(t, err)
	assert.Equal(t, []Cell{{0, 1, 0}, {0, 1, 2}, {1, 2, 2}, {2, 0, 0}}, g.Cells)
}

func TestSizeValid(t *testing.T) {
	assert.True(t, Size{4, 3, 2}.Valid())
	assert.True(t, Size{MaxVolume, 1, 1}.Valid())
	assert.False(t, Size{MaxVolume + 1, 1, 1}.Valid())
	assert.False(t, Size{0, 3, 3}.Valid())
	assert.False(t, Size{1 << 40, 1 << 40, 1 << 40}.Valid())

	_, err := FromCells(Size{3000000, 3000000, 3000000})
	assert.True(t, errors.Is(err, ErrBadHeader), "err = %v", err)
}

func TestParseLimits(t *testing.T) {
	tests := []struct {
		in      string
		want    Limits
		wantErr bool
	}{
		{"", Limits{}, false},
		{",,,,,", Limits{}, false},
		{"0,10,,,3,4", Limits{XMin: intp(0), XMax: intp(10), ZMin: intp(3), ZMax: intp(4)}, false},
		{" 1 , 2 ,3,4,5,6", Limits{intp(1), intp(2), intp(3), intp(4), intp(5), intp(6)}, false},
		{"1,2,3", Limits{}, true},
		{"a,,,,,", Limits{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLimits(tt.in)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrBadSlice), "err = %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLimitsResolve(t *testing.T) {
	l := Limits{XMin: intp(1), YMax: intp(2)}
	box, err := l.Resolve(Size{5, 6, 7})
	require.NoError(t, err)
	assert.Equal(t, Box{Min: Cell{1, 0, 0}, Max: Cell{4, 2, 6}}, box)
	assert.Equal(t, Size{4, 3, 7}, box.Size())
	assert.Equal(t, "1,,,2,,", l.String())

	_, err = Limits{XMin: intp(4), XMax: intp(3)}.Resolve(Size{5, 5, 5})
	assert.True(t, errors.Is(err, ErrBadSlice))
}

func TestConditions(t *testing.T) {
	c := Cell{1, 2, 3}
	assert.True(t, ValueEqual(1).Include(c, 1))
	assert.False(t, ValueEqual(1).Include(c, 0))

	r := ValueInRange{Min: floatp(0), Max: floatp(1)}
	assert.True(t, r.Include(c, 0))
	assert.True(t, r.Include(c, 1))
	assert.False(t, r.Include(c, 1.5))
	assert.True(t, ValueInRange{}.Include(c, -1e9))

	l := Limits{ZMax: intp(2)}
	assert.False(t, l.Include(c, 0))
	assert.False(t, All{ValueEqual(1), l}.Include(c, 1))
	assert.True(t, All{ValueEqual(1), Limits{}}.Include(c, 1))
	assert.True(t, All{}.Include(c, 0))
}

func TestLoadPotential(t *testing.T) {
	g, err := PotentialLoader(ValueInRange{Min: floatp(0)}, Limits{}).LoadFile("testdata/potential.txt")
	require.NoError(t, err)

	assert.Equal(t, Size{3, 3, 3}, g.Size)
	assert.Equal(t, []Cell{{0, 2, 1}, {1, 1, 1}, {2, 0, 1}, {2, 2, 2}}, g.Cells)
	assert.False(t, g.At(Cell{0, 0, 0}))
	assert.True(t, g.At(Cell{2, 0, 1}))
}

func TestLoadPotentialSliced(t *testing.T) {
	g, err := PotentialLoader(ValueInRange{}, Limits{XMax: intp(1)}).LoadFile("testdata/potential.txt")
	require.NoError(t, err)
	assert.Equal(t, []Cell{{0, 0, 0}, {0, 2, 1}, {1, 1, 1}}, g.Cells)
}

func TestLoadGlass(t *testing.T) {
	path := "testdata/data4x3x2t0_1.dat"
	loader, err := GlassLoader(path, Size{}, Limits{})
	require.NoError(t, err)

	g, err := loader.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, Size{4, 3, 2}, g.Size)
	assert.Equal(t, []Cell{{0, 0, 0}, {1, 0, 0}, {1, 1, 1}, {3, 2, 1}}, g.Cells)
}

func TestGuessSize(t *testing.T) {
	size, err := GuessSize("/some/dir/data40x30x20t5_17.dat")
	require.NoError(t, err)
	assert.Equal(t, Size{40, 30, 20}, size)

	for _, bad := range []string{"glass.dat", "data4x3t0_1.dat", "data0x3x2t0_1.dat"} {
		_, err := GuessSize(bad)
		assert.True(t, errors.Is(err, ErrSizeUnknown), bad)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"empty", "", ErrBadHeader},
		{"short header", "3 3\n", ErrBadHeader},
		{"text header", "a b c\n", ErrBadHeader},
		{"zero size", "0 3 3\n", ErrBadHeader},
		{"huge size", "3000000 3000000 3000000\n0 0 0 1\n", ErrBadHeader},
		{"overflowing size", "4294967296 4294967296 4294967296\n", ErrBadHeader},
		{"short record", "2 2 2\n0 0 0\n", ErrBadRecord},
		{"bad value", "2 2 2\n0 0 0 x\n", ErrBadRecord},
		{"outside", "2 2 2\n0 2 0 1\n", ErrOutOfBounds},
		{"negative", "2 2 2\n-1 0 0 1\n", ErrOutOfBounds},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Loader{}.Load(strings.NewReader(tt.input))
			assert.True(t, errors.Is(err, tt.want), "err = %v", err)
		})
	}
}

func TestLoadSkipsBlankLines(t *testing.T) {
	g, err := Loader{}.Load(strings.NewReader("2 2 2\n\n1 1 1 7\n# note\n0 0 0 1\n"))
	require.NoError(t, err)
	assert.Equal(t, []Cell{{0, 0, 0}, {1, 1, 1}}, g.Cells)
}

func TestRepetitions(t *testing.T) {
	got := Repetitions(Size{4, 3, 2}, [3]int{2, 1, 0})
	assert.Equal(t, [][3]float64{{0, 0, 0}, {4, 0, 0}}, got)
	assert.Len(t, Repetitions(Size{1, 1, 1}, [3]int{2, 3, 4}), 24)
}
