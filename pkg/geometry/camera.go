package geometry

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/go-gl/mathgl/mgl64"
)

// ErrInvalidCamera is returned when a camera configuration cannot produce rays
var ErrInvalidCamera = errors.New("invalid camera")

// CameraConfig contains all camera configuration parameters
type CameraConfig struct {
	Center        core.Vec3 // Camera position
	LookAt        core.Vec3 // Point the camera is looking at
	Up            core.Vec3 // Up direction (usually 0,1,0)
	Width         int       // Image width in pixels
	Height        int       // Image height in pixels
	VFov          float64   // Vertical field of view in degrees
	Aperture      float64   // Lens diameter; 0 disables depth of field
	FocusDistance float64   // Distance to the plane in focus; 0 means the LookAt distance
}

// Camera generates primary rays. Pixel coordinates grow right in x and down
// in y with the origin at the top-left corner of the image.
type Camera struct {
	config        CameraConfig
	right         core.Vec3
	up            core.Vec3
	forward       core.Vec3
	halfWidth     float64
	halfHeight    float64
	focusDistance float64
	lensRadius    float64
}

// Validate checks the configuration describes a usable camera
func (c CameraConfig) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("image size %dx%d must be positive: %w", c.Width, c.Height, ErrInvalidCamera)
	}
	if math.IsNaN(c.VFov) || c.VFov <= 0 || c.VFov >= 180 {
		return fmt.Errorf("vertical fov %g outside (0,180): %w", c.VFov, ErrInvalidCamera)
	}
	if !c.Center.IsFinite() || !c.LookAt.IsFinite() || !c.Up.IsFinite() {
		return fmt.Errorf("camera vectors must be finite: %w", ErrInvalidCamera)
	}

	forward := c.LookAt.Subtract(c.Center)
	if forward.LengthSquared() < 1e-18 {
		return fmt.Errorf("look-at point coincides with camera center: %w", ErrInvalidCamera)
	}
	if forward.Normalize().Cross(c.Up.Normalize()).LengthSquared() < 1e-12 {
		return fmt.Errorf("up vector %v is parallel to view direction: %w", c.Up, ErrInvalidCamera)
	}
	if c.Aperture < 0 || c.FocusDistance < 0 {
		return fmt.Errorf("aperture %g and focus distance %g must be non-negative: %w", c.Aperture, c.FocusDistance, ErrInvalidCamera)
	}
	return nil
}

// NewCamera validates the configuration and builds the camera basis
func NewCamera(config CameraConfig) (*Camera, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// The rotation part of the view matrix holds the camera basis as rows
	view := mgl64.LookAtV(toMgl(config.Center), toMgl(config.LookAt), toMgl(config.Up))
	right := fromMgl(view.Row(0).Vec3()).Normalize()
	up := fromMgl(view.Row(1).Vec3()).Normalize()
	forward := fromMgl(view.Row(2).Vec3()).Negate().Normalize()

	aspectRatio := float64(config.Width) / float64(config.Height)
	halfHeight := math.Tan(mgl64.DegToRad(config.VFov) / 2)

	focusDistance := config.FocusDistance
	if focusDistance == 0 {
		focusDistance = config.LookAt.Subtract(config.Center).Length()
	}

	return &Camera{
		config:        config,
		right:         right,
		up:            up,
		forward:       forward,
		halfWidth:     aspectRatio * halfHeight,
		halfHeight:    halfHeight,
		focusDistance: focusDistance,
		lensRadius:    config.Aperture / 2,
	}, nil
}

// Config returns the configuration the camera was built from
func (c *Camera) Config() CameraConfig {
	return c.config
}

// Width returns the image width in pixels
func (c *Camera) Width() int { return c.config.Width }

// Height returns the image height in pixels
func (c *Camera) Height() int { return c.config.Height }

// Forward returns the unit viewing direction
func (c *Camera) Forward() core.Vec3 { return c.forward }

// GetRay generates a world ray through the continuous pixel position
// (px, py). The sampler is only consumed when depth of field is enabled.
func (c *Camera) GetRay(px, py float64, sampler core.Sampler) core.Ray {
	// Map to [-1,1] with +v pointing up in the world
	u := 2*px/float64(c.config.Width) - 1
	v := 1 - 2*py/float64(c.config.Height)

	direction := c.forward.
		Add(c.right.Multiply(u * c.halfWidth)).
		Add(c.up.Multiply(v * c.halfHeight))

	if c.lensRadius <= 0 {
		return core.NewRay(c.config.Center, direction)
	}

	// Thin lens: rays from the whole aperture converge on the focus plane
	focusPoint := c.config.Center.Add(direction.Multiply(c.focusDistance))
	lens := core.SamplePointInUnitDisk(sampler.Get2D()).Multiply(c.lensRadius)
	origin := c.config.Center.Add(c.right.Multiply(lens.X)).Add(c.up.Multiply(lens.Y))

	return core.NewRay(origin, focusPoint.Subtract(origin))
}

func toMgl(v core.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

func fromMgl(v mgl64.Vec3) core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}
