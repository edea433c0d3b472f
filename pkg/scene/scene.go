package scene

import (
	"errors"
	"fmt"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
	"github.com/df07/go-sphere-raytracer/pkg/lights"
	"github.com/df07/go-sphere-raytracer/pkg/material"
)

// ErrNoCamera is returned when a scene is built without a camera
var ErrNoCamera = errors.New("scene has no camera")

// Scene contains all the elements needed for rendering. A scene is shared
// read-only by every render worker and must not be mutated once built;
// animation produces a fresh Scene per frame instead.
type Scene struct {
	Camera  *geometry.Camera
	Lights  []lights.Light     // Lights in the scene, in declaration order
	Objects []*geometry.Sphere // Objects in the scene, in declaration order
	Ambient core.Vec3          // Ambient light for Phong surfaces and the depth cutoff

	bvh *BVH // Acceleration structure, nil for small scenes
}

// New validates the parts and assembles an immutable scene
func New(camera *geometry.Camera, sceneLights []lights.Light, objects []*geometry.Sphere, ambient core.Vec3) (*Scene, error) {
	s := &Scene{
		Camera:  camera,
		Lights:  append([]lights.Light(nil), sceneLights...),
		Objects: append([]*geometry.Sphere(nil), objects...),
		Ambient: ambient,
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}

	if len(s.Objects) > leafThreshold {
		s.bvh = NewBVH(s.Objects)
	}

	return s, nil
}

// Validate checks every invariant the renderer relies on
func (s *Scene) Validate() error {
	if s.Camera == nil {
		return ErrNoCamera
	}
	if err := s.Camera.Config().Validate(); err != nil {
		return err
	}
	if !s.Ambient.IsFinite() || s.Ambient.MinComponent() < 0 {
		return fmt.Errorf("ambient %v must be finite and non-negative: %w", s.Ambient, material.ErrInvalidMaterial)
	}
	for i, light := range s.Lights {
		if light == nil {
			return fmt.Errorf("light %d is nil: %w", i, lights.ErrInvalidLight)
		}
		if err := light.Validate(); err != nil {
			return fmt.Errorf("light %d: %w", i, err)
		}
	}
	for i, object := range s.Objects {
		if object == nil {
			return fmt.Errorf("object %d is nil: %w", i, geometry.ErrInvalidRadius)
		}
		if err := object.Validate(); err != nil {
			return fmt.Errorf("object %d: %w", i, err)
		}
	}
	return nil
}

// Width returns the image width set by the camera
func (s *Scene) Width() int { return s.Camera.Width() }

// Height returns the image height set by the camera
func (s *Scene) Height() int { return s.Camera.Height() }

// BVHStats describes the acceleration structure; ok is false when the scene
// is small enough to be searched linearly
func (s *Scene) BVHStats() (stats BVHStats, ok bool) {
	if s.bvh == nil {
		return BVHStats{}, false
	}
	return s.bvh.Stats(), true
}

// Intersect finds the nearest object hit within the ray's [TMin, TMax] range
func (s *Scene) Intersect(ray core.Ray) (*material.HitRecord, bool) {
	if s.bvh != nil {
		return s.bvh.Hit(ray, ray.TMin, ray.TMax)
	}
	return hitList(s.Objects, ray, ray.TMin, ray.TMax)
}

// Occluded reports whether anything blocks the ray before maxT. It stops at
// the first hit found rather than searching for the nearest one.
func (s *Scene) Occluded(ray core.Ray, maxT float64) bool {
	if s.bvh != nil {
		return s.bvh.AnyHit(ray, ray.TMin, maxT)
	}
	return anyHitList(s.Objects, ray, ray.TMin, maxT)
}

// hitList is the linear nearest-hit search
func hitList(objects []*geometry.Sphere, ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	var closestHit *material.HitRecord
	closestSoFar := tMax

	for _, object := range objects {
		if hit, isHit := object.Hit(ray, tMin, closestSoFar); isHit {
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, closestHit != nil
}

func anyHitList(objects []*geometry.Sphere, ray core.Ray, tMin, tMax float64) bool {
	for _, object := range objects {
		if _, isHit := object.Hit(ray, tMin, tMax); isHit {
			return true
		}
	}
	return false
}
