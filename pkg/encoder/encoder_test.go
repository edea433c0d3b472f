package encoder

import (
	"bytes"
	"errors"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/renderer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

func testFramebuffer() *renderer.Framebuffer {
	fb := renderer.NewFramebuffer(2, 2)
	fb.Set(0, 0, core.NewVec3(1, 0, 0))
	fb.Set(1, 0, core.NewVec3(0.25, 0.25, 0.25))
	fb.Set(0, 1, core.NewVec3(4, -1, math.NaN()))
	fb.Set(1, 1, core.Vec3{})
	return fb
}

func TestToImage_ToneMapping(t *testing.T) {
	img := ToImage(testFramebuffer(), 2.0)

	assert.Equal(t, uint8(255), img.RGBAAt(0, 0).R)
	assert.Equal(t, uint8(0), img.RGBAAt(0, 0).G)

	// sqrt(0.25) = 0.5
	assert.Equal(t, uint8(128), img.RGBAAt(1, 0).R)

	// A pixel with any non-finite channel turns black
	bad := img.RGBAAt(0, 1)
	assert.Equal(t, uint8(0), bad.R)
	assert.Equal(t, uint8(0), bad.B)

	assert.Equal(t, uint8(0), img.RGBAAt(1, 1).R)
	assert.Equal(t, uint8(255), img.RGBAAt(1, 1).A)
}

func TestToImage_Gamma(t *testing.T) {
	fb := renderer.NewFramebuffer(1, 1)
	fb.Set(0, 0, core.NewVec3(0.25, 0.25, 0.25))

	assert.Equal(t, uint8(64), ToImage(fb, 1.0).RGBAAt(0, 0).R, "gamma 1 is linear")
	assert.Equal(t, ToImage(fb, DefaultGamma).RGBAAt(0, 0), ToImage(fb, 0).RGBAAt(0, 0))
}

func TestToImage_ClampsBrightPixels(t *testing.T) {
	fb := renderer.NewFramebuffer(1, 1)
	fb.Set(0, 0, core.NewVec3(10, 2, 1))
	c := ToImage(fb, 2.0).RGBAAt(0, 0)
	assert.Equal(t, uint8(255), c.R)
	assert.Equal(t, uint8(255), c.G)
	assert.Equal(t, uint8(255), c.B)
}

func TestEncode_RoundTrip(t *testing.T) {
	img := ToImage(testFramebuffer(), 2.0)

	tests := []struct {
		format Format
		decode func(*bytes.Buffer) error
	}{
		{FormatPNG, func(b *bytes.Buffer) error { _, err := png.Decode(b); return err }},
		{FormatBMP, func(b *bytes.Buffer) error { _, err := bmp.Decode(b); return err }},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Encode(&buf, img, tt.format))
			assert.NoError(t, tt.decode(&buf))
		})
	}

	err := Encode(&bytes.Buffer{}, img, "gif")
	assert.True(t, errors.Is(err, ErrUnknownFormat))
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("PNG")
	require.NoError(t, err)
	assert.Equal(t, FormatPNG, f)

	f, err = ParseFormat("bmp")
	require.NoError(t, err)
	assert.Equal(t, FormatBMP, f)

	_, err = ParseFormat("jpeg")
	assert.True(t, errors.Is(err, ErrUnknownFormat))
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "output", "scene", FrameName(3, FormatBMP))

	require.NoError(t, WriteFile(path, testFramebuffer(), Options{Format: FormatBMP}))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	img, err := bmp.Decode(file)
	require.NoError(t, err)
	assert.Equal(t, 2, img.Bounds().Dx())
	assert.Equal(t, 2, img.Bounds().Dy())

	assert.Error(t, WriteFile(filepath.Join(dir, "x.tiff"), testFramebuffer(), Options{Format: "tiff"}))
}

func TestFrameName(t *testing.T) {
	assert.Equal(t, "frame_0000.png", FrameName(0, FormatPNG))
	assert.Equal(t, "frame_0012.bmp", FrameName(12, FormatBMP))
}
