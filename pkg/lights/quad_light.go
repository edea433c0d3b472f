package lights

import (
	"fmt"
	"math"

	"github.com/df07/go-sphere-raytracer/pkg/core"
)

// QuadLight is a rectangular area light spanned by Corner, Corner+U and Corner+V
type QuadLight struct {
	Corner   core.Vec3
	U        core.Vec3
	V        core.Vec3
	Emission core.Vec3
	Samples  int
}

// NewQuadLight creates a new rectangular light
func NewQuadLight(corner, u, v, intensity core.Vec3, samples int) *QuadLight {
	return &QuadLight{
		Corner:   corner,
		U:        u,
		V:        v,
		Emission: intensity,
		Samples:  samples,
	}
}

func (ql *QuadLight) Type() LightType {
	return LightTypeArea
}

// Intensity returns the emitted color
func (ql *QuadLight) Intensity() core.Vec3 {
	return ql.Emission
}

// SampleCount returns the number of shadow rays per shading point
func (ql *QuadLight) SampleCount() int {
	return ql.Samples
}

// SamplePoint samples the rectangle uniformly. When the sample count is a
// perfect square the samples are stratified on a jittered grid.
func (ql *QuadLight) SamplePoint(point core.Vec3, index int, sample core.Vec2) core.Vec3 {
	s, t := sample.X, sample.Y

	if n := strata(ql.Samples); n > 1 {
		cell := index % (n * n)
		s = (float64(cell%n) + s) / float64(n)
		t = (float64(cell/n) + t) / float64(n)
	}

	return ql.Corner.Add(ql.U.Multiply(s)).Add(ql.V.Multiply(t))
}

// Center returns the middle of the rectangle
func (ql *QuadLight) Center() core.Vec3 {
	return ql.Corner.Add(ql.U.Multiply(0.5)).Add(ql.V.Multiply(0.5))
}

// Validate checks the rectangle is not degenerate
func (ql *QuadLight) Validate() error {
	if !ql.Corner.IsFinite() || !ql.U.IsFinite() || !ql.V.IsFinite() {
		return fmt.Errorf("quad light vectors must be finite: %w", ErrInvalidLight)
	}
	if ql.U.Cross(ql.V).LengthSquared() < 1e-18 {
		return fmt.Errorf("quad light edges %v and %v span no area: %w", ql.U, ql.V, ErrInvalidLight)
	}
	if err := validateSamples(ql.Samples); err != nil {
		return err
	}
	return validateIntensity(ql.Emission)
}

// strata returns the grid side length when samples is a perfect square, else 0
func strata(samples int) int {
	n := int(math.Round(math.Sqrt(float64(samples))))
	if n*n != samples {
		return 0
	}
	return n
}
