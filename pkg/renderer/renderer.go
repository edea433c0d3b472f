package renderer

import (
	"fmt"
	"time"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/integrator"
	"github.com/df07/go-sphere-raytracer/pkg/scene"
	"github.com/google/uuid"
)

// Renderer maps a scene to a framebuffer. It holds no per-frame state, so
// one Renderer can render every frame of an animation.
type Renderer struct {
	config     Config
	integrator integrator.Integrator
	logger     core.Logger
}

// NewRenderer validates the config and creates a renderer using the path tracer
func NewRenderer(config Config, logger core.Logger) (*Renderer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = core.NopLogger{}
	}

	return &Renderer{
		config:     config,
		integrator: integrator.NewPathTracer(config.IntegratorConfig()),
		logger:     logger,
	}, nil
}

// Config returns the render settings
func (r *Renderer) Config() Config {
	return r.config
}

// Render is a convenience wrapper building a Renderer for one scene
func Render(sc *scene.Scene, config Config, logger core.Logger) (*Framebuffer, RenderStats, error) {
	r, err := NewRenderer(config, logger)
	if err != nil {
		return nil, RenderStats{}, err
	}
	return r.Render(sc)
}

// Render traces every pixel of the scene and blocks until the framebuffer
// is complete. Pixel values depend only on the scene and the config, never
// on the number of workers or the order they pick up work.
func (r *Renderer) Render(sc *scene.Scene) (*Framebuffer, RenderStats, error) {
	if sc == nil {
		return nil, RenderStats{}, scene.ErrNoCamera
	}
	if err := sc.Validate(); err != nil {
		return nil, RenderStats{}, fmt.Errorf("scene: %w", err)
	}

	start := time.Now()
	width, height := sc.Width(), sc.Height()
	tiles := partition(width, height, r.config)
	numWorkers := min(r.config.NumWorkers, len(tiles))

	stats := RenderStats{
		RenderID: uuid.New(),
		Width:    width,
		Height:   height,
		Units:    len(tiles),
	}

	fb := NewFramebuffer(width, height)
	sampler := NewPixelSampler(r.integrator, r.config)
	pool := NewWorkerPool(sc, fb, sampler, r.config.SamplesPerPixel, numWorkers, len(tiles))
	stats.Workers = pool.GetNumWorkers()

	r.logger.Infof("Render %s: %dx%d, %d %s, %d workers, %d spp, max depth %d",
		stats.RenderID, width, height, len(tiles), r.config.Partition, stats.Workers,
		r.config.SamplesPerPixel, r.config.MaxDepth)
	r.logScene(stats.RenderID.String(), sc)

	pool.Start()
	for i, tile := range tiles {
		pool.SubmitTask(TileTask{Tile: tile, TaskID: i})
	}
	if err := pool.Stop(); err != nil {
		return nil, stats, fmt.Errorf("render %s: %w", stats.RenderID, err)
	}

	for result := range pool.Results() {
		stats.merge(result.Stats)
	}
	stats.Elapsed = time.Since(start)

	if stats.NonFiniteSamples > 0 {
		r.logger.Debugf("Render %s: replaced %d non-finite samples with black", stats.RenderID, stats.NonFiniteSamples)
	}
	r.logger.Debugf("Render %s: %d samples (%.1f per pixel) in %v",
		stats.RenderID, stats.TotalSamples, stats.AverageSamples(), stats.Elapsed)

	return fb, stats, nil
}

// logScene debug-logs the scene contents and acceleration structure
func (r *Renderer) logScene(id string, sc *scene.Scene) {
	if !r.logger.DebugEnabled() {
		return
	}

	r.logger.Debugf("Render %s: %d spheres, %d lights", id, len(sc.Objects), len(sc.Lights))
	for i, light := range sc.Lights {
		r.logger.Debugf("Render %s: light %d is %s with %d samples", id, i, light.Type(), light.SampleCount())
	}
	if bvh, ok := sc.BVHStats(); ok {
		r.logger.Debugf("Render %s: BVH with %d nodes, %d leaves, depth %d",
			id, bvh.TotalNodes, bvh.LeafNodes, bvh.MaxDepth)
	} else {
		r.logger.Debugf("Render %s: linear object search", id)
	}
}
