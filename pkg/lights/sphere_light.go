package lights

import (
	"fmt"
	"math"

	"github.com/df07/go-sphere-raytracer/pkg/core"
)

// SphereLight is a spherical area light. Sampling several points on its
// surface produces soft shadow penumbrae.
type SphereLight struct {
	Center   core.Vec3
	Radius   float64
	Emission core.Vec3
	Samples  int
}

// NewSphereLight creates a new spherical light
func NewSphereLight(center core.Vec3, radius float64, intensity core.Vec3, samples int) *SphereLight {
	return &SphereLight{
		Center:   center,
		Radius:   radius,
		Emission: intensity,
		Samples:  samples,
	}
}

func (sl *SphereLight) Type() LightType {
	return LightTypeArea
}

// Intensity returns the emitted color
func (sl *SphereLight) Intensity() core.Vec3 {
	return sl.Emission
}

// SampleCount returns the number of shadow rays per shading point
func (sl *SphereLight) SampleCount() int {
	return sl.Samples
}

// SamplePoint samples uniformly over the hemisphere of the light that faces
// the shading point. A point inside the light samples the whole sphere.
func (sl *SphereLight) SamplePoint(point core.Vec3, index int, sample core.Vec2) core.Vec3 {
	direction := core.SampleOnUnitSphere(sample)

	toPoint := point.Subtract(sl.Center)
	if toPoint.LengthSquared() > sl.Radius*sl.Radius && direction.Dot(toPoint) < 0 {
		direction = direction.Negate()
	}

	return sl.Center.Add(direction.Multiply(sl.Radius))
}

// Validate checks the light has a positive radius and at least one sample
func (sl *SphereLight) Validate() error {
	if !sl.Center.IsFinite() {
		return fmt.Errorf("sphere light center %v is not finite: %w", sl.Center, ErrInvalidLight)
	}
	if math.IsNaN(sl.Radius) || math.IsInf(sl.Radius, 0) || sl.Radius <= 0 {
		return fmt.Errorf("sphere light radius %g must be positive: %w", sl.Radius, ErrInvalidLight)
	}
	if err := validateSamples(sl.Samples); err != nil {
		return err
	}
	return validateIntensity(sl.Emission)
}
