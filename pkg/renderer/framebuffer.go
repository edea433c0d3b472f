package renderer

import (
	"math"

	"github.com/df07/go-sphere-raytracer/pkg/core"
)

// Framebuffer is a row-major grid of linear radiance values. Pixel (0,0)
// is the top-left corner; x grows right and y grows down.
type Framebuffer struct {
	Width  int
	Height int
	Pixels []core.Vec3
}

// NewFramebuffer allocates a black framebuffer
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pixels: make([]core.Vec3, width*height),
	}
}

// At returns the color of pixel (x, y)
func (fb *Framebuffer) At(x, y int) core.Vec3 {
	return fb.Pixels[y*fb.Width+x]
}

// Set stores the color of pixel (x, y)
func (fb *Framebuffer) Set(x, y int, c core.Vec3) {
	fb.Pixels[y*fb.Width+x] = c
}

// Row returns the pixels of row y, sharing storage with the framebuffer
func (fb *Framebuffer) Row(y int) []core.Vec3 {
	return fb.Pixels[y*fb.Width : (y+1)*fb.Width]
}

// Equal reports whether two framebuffers hold bit-identical pixels
func (fb *Framebuffer) Equal(other *Framebuffer) bool {
	if fb.Width != other.Width || fb.Height != other.Height || len(fb.Pixels) != len(other.Pixels) {
		return false
	}
	for i, p := range fb.Pixels {
		q := other.Pixels[i]
		if math.Float64bits(p.X) != math.Float64bits(q.X) ||
			math.Float64bits(p.Y) != math.Float64bits(q.Y) ||
			math.Float64bits(p.Z) != math.Float64bits(q.Z) {
			return false
		}
	}
	return true
}
