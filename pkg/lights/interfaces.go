package lights

import (
	"errors"
	"fmt"

	"github.com/df07/go-sphere-raytracer/pkg/core"
)

// ErrInvalidLight is returned for lights with unusable parameters
var ErrInvalidLight = errors.New("invalid light")

type LightType string

const (
	LightTypeArea  LightType = "area"
	LightTypePoint LightType = "point"
)

// Light is a source of direct illumination. Lights are not geometry: they
// are never hit by camera or bounce rays, only sampled by shadow rays.
type Light interface {
	Type() LightType

	// Intensity is the emitted color; a sample at distance d delivers Intensity/d²
	Intensity() core.Vec3

	// SampleCount is how many shadow rays one shading point casts at this light
	SampleCount() int

	// SamplePoint returns the index-th point on the light as seen from the
	// shading point. sample is a uniform random pair in [0,1)².
	SamplePoint(point core.Vec3, index int, sample core.Vec2) core.Vec3

	// Validate rejects parameters that would produce NaN or negative light
	Validate() error
}

func validateIntensity(intensity core.Vec3) error {
	if !intensity.IsFinite() || intensity.MinComponent() < 0 {
		return fmt.Errorf("intensity %v must be finite and non-negative: %w", intensity, ErrInvalidLight)
	}
	return nil
}

func validateSamples(samples int) error {
	if samples < 1 {
		return fmt.Errorf("sample count %d must be at least 1: %w", samples, ErrInvalidLight)
	}
	return nil
}
