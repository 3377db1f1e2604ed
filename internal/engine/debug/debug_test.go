package debug

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/silicaviz/silica/pkg/grid"
)

func TestSliceBoxVertices(t *testing.T) {
	v := SliceBoxVertices(grid.Box{Min: grid.Cell{X: 1, Y: 2, Z: 3}, Max: grid.Cell{X: 1, Y: 4, Z: 5}}, 0)
	require.Len(t, v, BBoxWireframeVertexCount*3)

	lo := [3]float32{v[0], v[1], v[2]}
	hi := lo
	for i := 0; i < len(v); i += 3 {
		for k := 0; k < 3; k++ {
			lo[k] = min(lo[k], v[i+k])
			hi[k] = max(hi[k], v[i+k])
		}
	}
	assert.Equal(t, [3]float32{1, 2, 3}, lo)
	assert.Equal(t, [3]float32{2, 5, 6}, hi)
}

func TestSliceBoxPadding(t *testing.T) {
	v := SliceBoxVertices(grid.Box{}, 0.5)
	assert.Equal(t, []float32{-0.5, -0.5, -0.5}, v[:3])
	assert.Contains(t, v, float32(1.5))
}

func TestCaptureFromPixels(t *testing.T) {
	dir := t.TempDir()
	sc := NewScreenshotCapture(filepath.Join(dir, "shots"), "glass")
	sc.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }

	// 1x2 image: bottom row red, top row blue in GL order.
	pixels := []byte{255, 0, 0, 255, 0, 0, 255, 255}
	name, err := sc.CaptureFromPixels(pixels, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, "glass_2024-05-01_12-00-00_000.png", filepath.Base(name))

	f, err := os.Open(name)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)

	r, _, b, _ := img.At(0, 0).RGBA()
	assert.Equal(t, uint32(0), r)
	assert.Equal(t, uint32(0xffff), b)

	second := sc.GenerateFilename()
	assert.NotEqual(t, name, second)
}

func TestCaptureSizeMismatch(t *testing.T) {
	sc := NewScreenshotCapture(t.TempDir(), "x")
	_, err := sc.CaptureFromPixels(make([]byte, 7), 1, 2)
	assert.Error(t, err)
}
