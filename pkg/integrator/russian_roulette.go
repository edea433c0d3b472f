package integrator

import (
	"math"

	"github.com/df07/go-sphere-raytracer/pkg/core"
)

// maxSurvival keeps even bright paths at some risk of termination
const maxSurvival = 0.95

// russianRoulette decides whether a path entering depth continues. It returns
// (survive, compensation); survivors are scaled by 1/p so the estimator keeps
// its expected value.
func (pt *PathTracer) russianRoulette(depth int, throughput core.Vec3, sampler core.Sampler) (bool, float64) {
	if !pt.config.RussianRoulette || depth <= 0 {
		return true, 1.0
	}

	luminance := throughput.Luminance()
	if depth < pt.config.RussianRouletteMinBounces && luminance >= pt.config.RussianRouletteThreshold {
		return true, 1.0
	}

	survivalProbability := math.Min(maxSurvival, math.Max(pt.config.RussianRouletteMinSurvival, luminance))

	if sampler.Get1D() > survivalProbability {
		return false, 0.0
	}

	return true, 1.0 / survivalProbability
}
