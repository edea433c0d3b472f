package integrator

import (
	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/scene"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// Trace returns the radiance arriving along ray. depth counts the bounces
	// already taken; camera rays start at 0.
	Trace(ray core.Ray, sc *scene.Scene, depth int, sampler core.Sampler) core.Vec3
}

// Config holds the light transport settings
type Config struct {
	MaxDepth      int       // Maximum number of indirect bounces
	Background    core.Vec3 // Radiance returned on a miss
	ShadowEpsilon float64   // Shadow ray offset and degenerate light sample cutoff

	RussianRoulette            bool    // Enable probabilistic path termination
	RussianRouletteMinBounces  int     // Depth from which every path plays roulette
	RussianRouletteThreshold   float64 // Throughput luminance below which a path plays roulette early
	RussianRouletteMinSurvival float64 // Lower bound on the survival probability
}
