// Package encoder turns rendered framebuffers into 8-bit image files.
package encoder

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/renderer"
	"golang.org/x/image/bmp"
)

// ErrUnknownFormat is returned for image formats other than png and bmp
var ErrUnknownFormat = errors.New("unknown image format")

// Format names an output file type
type Format string

const (
	FormatPNG Format = "png"
	FormatBMP Format = "bmp"
)

// DefaultGamma is the display gamma applied when none is configured
const DefaultGamma = 2.0

// ParseFormat accepts a format name in any case
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(name)); f {
	case FormatPNG, FormatBMP:
		return f, nil
	default:
		return "", fmt.Errorf("%q: %w", name, ErrUnknownFormat)
	}
}

// Options control tone mapping and file type
type Options struct {
	Format Format
	Gamma  float64 // Values <= 0 fall back to DefaultGamma
}

// ToImage tone maps linear radiance to 8-bit sRGB-ish pixels: gamma
// correct, clamp to [0,1], scale to [0,255].
func ToImage(fb *renderer.Framebuffer, gamma float64) *image.RGBA {
	if gamma <= 0 {
		gamma = DefaultGamma
	}

	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for y := 0; y < fb.Height; y++ {
		for x, c := range fb.Row(y) {
			img.SetRGBA(x, y, vec3ToColor(c, gamma))
		}
	}
	return img
}

// vec3ToColor converts a Vec3 color to RGBA with clamping and gamma correction
func vec3ToColor(c core.Vec3, gamma float64) color.RGBA {
	if !c.IsFinite() {
		c = core.Vec3{}
	}
	c = c.Clamp(0.0, 1.0).GammaCorrect(gamma).Clamp(0.0, 1.0)

	return color.RGBA{
		R: uint8(255*c.X + 0.5),
		G: uint8(255*c.Y + 0.5),
		B: uint8(255*c.Z + 0.5),
		A: 255,
	}
}

// Encode writes img in the given format
func Encode(w io.Writer, img image.Image, format Format) error {
	switch format {
	case FormatPNG:
		return png.Encode(w, img)
	case FormatBMP:
		return bmp.Encode(w, img)
	default:
		return fmt.Errorf("%q: %w", format, ErrUnknownFormat)
	}
}

// WriteFile tone maps fb and writes it to path, creating parent
// directories as needed
func WriteFile(path string, fb *renderer.Framebuffer, opts Options) (err error) {
	if opts.Format == "" {
		opts.Format = FormatPNG
	}
	if _, err := ParseFormat(string(opts.Format)); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("error creating output directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if err := Encode(file, ToImage(fb, opts.Gamma), opts.Format); err != nil {
		return fmt.Errorf("error encoding %s: %w", opts.Format, err)
	}
	return nil
}

// FrameName returns the file name of frame k
func FrameName(k int, format Format) string {
	return fmt.Sprintf("frame_%04d.%s", k, format)
}
