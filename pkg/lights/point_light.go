package lights

import (
	"fmt"

	"github.com/df07/go-sphere-raytracer/pkg/core"
)

// PointLight emits from a single position and casts hard shadows
type PointLight struct {
	Position core.Vec3
	Emission core.Vec3
}

// NewPointLight creates a new point light
func NewPointLight(position, intensity core.Vec3) *PointLight {
	return &PointLight{Position: position, Emission: intensity}
}

func (pl *PointLight) Type() LightType {
	return LightTypePoint
}

// Intensity returns the emitted color
func (pl *PointLight) Intensity() core.Vec3 {
	return pl.Emission
}

// SampleCount is always one: every sample would land on the same point
func (pl *PointLight) SampleCount() int {
	return 1
}

// SamplePoint returns the light position
func (pl *PointLight) SamplePoint(point core.Vec3, index int, sample core.Vec2) core.Vec3 {
	return pl.Position
}

// Validate checks the position and intensity are finite
func (pl *PointLight) Validate() error {
	if !pl.Position.IsFinite() {
		return fmt.Errorf("point light position %v is not finite: %w", pl.Position, ErrInvalidLight)
	}
	return validateIntensity(pl.Emission)
}
