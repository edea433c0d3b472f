package renderer

import (
	"errors"
	"fmt"
	"math"
	"runtime"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/integrator"
)

// ErrInvalidConfig is returned when render settings are out of range
var ErrInvalidConfig = errors.New("invalid render config")

// Partition selects how the image is split into units of work
type Partition string

const (
	PartitionRows  Partition = "rows"
	PartitionTiles Partition = "tiles"
)

// Config contains rendering configuration
type Config struct {
	SamplesPerPixel int       // Number of rays per pixel
	MaxDepth        int       // Maximum ray bounce depth; 0 is direct lighting only
	NumWorkers      int       // Number of parallel workers
	Background      core.Vec3 // Color returned when a ray escapes the scene
	Seed            uint64    // Global seed every pixel stream is derived from

	Partition Partition // Rows or tiles
	TileSize  int       // Tile edge length in pixels when Partition is tiles

	RayEpsilon    float64 // Minimum t for camera and bounce rays
	ShadowEpsilon float64 // Offset for shadow rays toward lights
	MaxDistance   float64 // Maximum t for camera and bounce rays

	RussianRoulette            bool    // Enable probabilistic path termination
	RussianRouletteMinBounces  int     // Minimum bounces before Russian Roulette always applies
	RussianRouletteThreshold   float64 // Throughput luminance that triggers Russian Roulette early
	RussianRouletteMinSurvival float64 // Minimum survival probability
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		SamplesPerPixel:            16,
		MaxDepth:                   8,
		NumWorkers:                 runtime.NumCPU(),
		Background:                 core.Vec3{},
		Seed:                       1,
		Partition:                  PartitionRows,
		TileSize:                   32,
		RayEpsilon:                 core.DefaultRayEpsilon,
		ShadowEpsilon:              core.DefaultRayEpsilon,
		MaxDistance:                core.DefaultMaxDistance,
		RussianRoulette:            true,
		RussianRouletteMinBounces:  5,
		RussianRouletteThreshold:   0.01,
		RussianRouletteMinSurvival: 0.5,
	}
}

// Validate rejects settings that cannot produce an image. It is called
// before any worker starts.
func (c Config) Validate() error {
	if c.SamplesPerPixel <= 0 {
		return fmt.Errorf("samples per pixel %d must be positive: %w", c.SamplesPerPixel, ErrInvalidConfig)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("max depth %d must be non-negative: %w", c.MaxDepth, ErrInvalidConfig)
	}
	if c.NumWorkers <= 0 {
		return fmt.Errorf("worker count %d must be positive: %w", c.NumWorkers, ErrInvalidConfig)
	}
	if !c.Background.IsFinite() || c.Background.MinComponent() < 0 {
		return fmt.Errorf("background %v must be finite and non-negative: %w", c.Background, ErrInvalidConfig)
	}

	switch c.Partition {
	case PartitionRows:
	case PartitionTiles:
		if c.TileSize <= 0 {
			return fmt.Errorf("tile size %d must be positive: %w", c.TileSize, ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("unknown partition %q: %w", c.Partition, ErrInvalidConfig)
	}

	if !positive(c.RayEpsilon) || !positive(c.ShadowEpsilon) {
		return fmt.Errorf("epsilons %g and %g must be positive: %w", c.RayEpsilon, c.ShadowEpsilon, ErrInvalidConfig)
	}
	if math.IsNaN(c.MaxDistance) || c.MaxDistance <= c.RayEpsilon {
		return fmt.Errorf("max distance %g must exceed ray epsilon %g: %w", c.MaxDistance, c.RayEpsilon, ErrInvalidConfig)
	}

	if c.RussianRoulette {
		if c.RussianRouletteMinBounces < 1 {
			return fmt.Errorf("russian roulette min bounces %d must be at least 1: %w", c.RussianRouletteMinBounces, ErrInvalidConfig)
		}
		if math.IsNaN(c.RussianRouletteThreshold) || c.RussianRouletteThreshold < 0 {
			return fmt.Errorf("russian roulette threshold %g must be non-negative: %w", c.RussianRouletteThreshold, ErrInvalidConfig)
		}
		if !positive(c.RussianRouletteMinSurvival) || c.RussianRouletteMinSurvival > 1 {
			return fmt.Errorf("russian roulette min survival %g outside (0,1]: %w", c.RussianRouletteMinSurvival, ErrInvalidConfig)
		}
	}

	return nil
}

// IntegratorConfig extracts the light transport settings
func (c Config) IntegratorConfig() integrator.Config {
	return integrator.Config{
		MaxDepth:                   c.MaxDepth,
		Background:                 c.Background,
		ShadowEpsilon:              c.ShadowEpsilon,
		RussianRoulette:            c.RussianRoulette,
		RussianRouletteMinBounces:  c.RussianRouletteMinBounces,
		RussianRouletteThreshold:   c.RussianRouletteThreshold,
		RussianRouletteMinSurvival: c.RussianRouletteMinSurvival,
	}
}

func positive(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0
}
