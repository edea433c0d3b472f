package integrator

import (
	"math"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/material"
	"github.com/df07/go-sphere-raytracer/pkg/scene"
)

// directLighting sums the visible contribution of every light at the hit.
// evaluate returns the surface response to unit irradiance from a unit
// direction toward the light. Area lights are averaged over their samples,
// which is what produces soft shadow penumbrae.
func (pt *PathTracer) directLighting(sc *scene.Scene, hit *material.HitRecord, sampler core.Sampler, evaluate func(toLight core.Vec3) core.Vec3) core.Vec3 {
	epsilon := pt.config.ShadowEpsilon
	total := core.Vec3{}

	for _, light := range sc.Lights {
		samples := light.SampleCount()
		sum := core.Vec3{}

		for i := 0; i < samples; i++ {
			lightPoint := light.SamplePoint(hit.Point, i, sampler.Get2D())
			toLight := lightPoint.Subtract(hit.Point)

			// Degenerate sample on top of the shading point
			distanceSquared := toLight.LengthSquared()
			if distanceSquared < epsilon*epsilon {
				continue
			}

			distance := math.Sqrt(distanceSquared)
			direction := toLight.Multiply(1 / distance)

			response := evaluate(direction)
			if response.IsZero() {
				continue
			}

			shadowRay := hit.SpawnRay(direction, epsilon, distance)
			if sc.Occluded(shadowRay, distance-epsilon) {
				continue
			}

			sum = sum.Add(response.MultiplyVec(light.Intensity()).Multiply(1 / distanceSquared))
		}

		total = total.Add(sum.Multiply(1 / float64(samples)))
	}

	return total
}
