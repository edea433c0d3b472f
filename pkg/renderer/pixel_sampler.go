package renderer

import (
	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/integrator"
	"github.com/df07/go-sphere-raytracer/pkg/scene"
)

// PixelSampler turns many jittered camera samples into one pixel value
type PixelSampler struct {
	integrator  integrator.Integrator
	seed        uint64
	rayEpsilon  float64
	maxDistance float64
}

// NewPixelSampler creates a pixel sampler driven by the given integrator
func NewPixelSampler(integratorInst integrator.Integrator, config Config) *PixelSampler {
	return &PixelSampler{
		integrator:  integratorInst,
		seed:        config.Seed,
		rayEpsilon:  config.RayEpsilon,
		maxDistance: config.MaxDistance,
	}
}

// ShadePixel returns the Monte Carlo estimate of pixel (x, y) from spp samples
func (ps *PixelSampler) ShadePixel(x, y int, sc *scene.Scene, spp int) core.Vec3 {
	stats := ps.SamplePixel(x, y, sc, spp)
	return stats.GetColor()
}

// SamplePixel takes spp samples of pixel (x, y), each jittered uniformly
// over the pixel area and traced from depth 0. The random stream depends
// only on the seed and the pixel coordinates.
func (ps *PixelSampler) SamplePixel(x, y int, sc *scene.Scene, spp int) PixelStats {
	sampler := core.NewPixelSampler(ps.seed, x, y)
	stats := PixelStats{}

	for s := 0; s < spp; s++ {
		jitter := sampler.Get2D()
		ray := sc.Camera.GetRay(float64(x)+jitter.X, float64(y)+jitter.Y, sampler)
		ray.TMin = ps.rayEpsilon
		ray.TMax = ps.maxDistance

		stats.AddSample(ps.integrator.Trace(ray, sc, 0, sampler))
	}

	return stats
}
