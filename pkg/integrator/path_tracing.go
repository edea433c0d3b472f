package integrator

import (
	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/material"
	"github.com/df07/go-sphere-raytracer/pkg/scene"
)

// PathTracer is a recursive Monte Carlo ray tracer: direct lighting with
// shadow rays at every hit plus one sampled indirect bounce per hit.
type PathTracer struct {
	config Config
}

// NewPathTracer creates a new path tracer
func NewPathTracer(config Config) *PathTracer {
	return &PathTracer{config: config}
}

// Config returns the transport settings
func (pt *PathTracer) Config() Config {
	return pt.config
}

// Trace computes the radiance along a ray
func (pt *PathTracer) Trace(ray core.Ray, sc *scene.Scene, depth int, sampler core.Sampler) core.Vec3 {
	return pt.radiance(ray, sc, depth, core.NewVec3(1, 1, 1), sampler)
}

// radiance carries the path throughput so Russian roulette can judge how
// much the rest of the path can still contribute
func (pt *PathTracer) radiance(ray core.Ray, sc *scene.Scene, depth int, throughput core.Vec3, sampler core.Sampler) core.Vec3 {
	// Base case: past the bounce limit only ambient light remains
	if depth > pt.config.MaxDepth {
		return sc.Ambient
	}

	hit, isHit := sc.Intersect(ray)
	if !isHit {
		return pt.config.Background
	}

	switch m := hit.Material.(type) {
	case *material.Diffuse:
		direct := pt.directLighting(sc, hit, sampler, func(toLight core.Vec3) core.Vec3 {
			return m.Evaluate(hit.Normal, toLight)
		})
		if depth >= pt.config.MaxDepth {
			return direct
		}
		scatter, ok := m.Scatter(ray, *hit, sampler)
		if !ok {
			return direct
		}
		return direct.Add(pt.bounce(scatter, sc, depth, throughput, sampler))

	case *material.Reflective:
		return pt.specular(m, ray, hit, sc, depth, throughput, sampler)

	case *material.Refractive:
		return pt.specular(m, ray, hit, sc, depth, throughput, sampler)

	case *material.Phong:
		toViewer := ray.Direction.Negate().Normalize()
		direct := pt.directLighting(sc, hit, sampler, func(toLight core.Vec3) core.Vec3 {
			return m.Evaluate(hit.Normal, toLight, toViewer)
		})
		return m.Ambient(sc.Ambient).Add(direct)

	default:
		return core.Vec3{}
	}
}

// scatterer is implemented by the materials that continue a path
type scatterer interface {
	Scatter(rayIn core.Ray, hit material.HitRecord, sampler core.Sampler) (material.ScatterResult, bool)
}

// specular handles mirrors and glass: no direct term, only the traced
// continuation, which is black once the bounce budget is spent
func (pt *PathTracer) specular(m scatterer, ray core.Ray, hit *material.HitRecord, sc *scene.Scene, depth int, throughput core.Vec3, sampler core.Sampler) core.Vec3 {
	if depth >= pt.config.MaxDepth {
		return core.Vec3{}
	}
	scatter, ok := m.Scatter(ray, *hit, sampler)
	if !ok {
		return core.Vec3{}
	}
	return pt.bounce(scatter, sc, depth, throughput, sampler)
}

// bounce traces the scattered ray one level deeper, subject to Russian roulette
func (pt *PathTracer) bounce(scatter material.ScatterResult, sc *scene.Scene, depth int, throughput core.Vec3, sampler core.Sampler) core.Vec3 {
	newThroughput := throughput.MultiplyVec(scatter.Attenuation)

	survive, compensation := pt.russianRoulette(depth+1, newThroughput, sampler)
	if !survive {
		return core.Vec3{}
	}

	incoming := pt.radiance(scatter.Scattered, sc, depth+1, newThroughput.Multiply(compensation), sampler)
	return scatter.Attenuation.MultiplyVec(incoming).Multiply(compensation)
}
