package renderer

import (
	"fmt"

	"github.com/df07/go-sphere-raytracer/pkg/scene"
	"golang.org/x/sync/errgroup"
)

// TileTask represents a unit rendering task for the worker pool
type TileTask struct {
	Tile   *Tile
	TaskID int // For deterministic ordering
}

// TileResult contains the result from rendering a unit
type TileResult struct {
	TaskID int
	Stats  UnitStats
}

// WorkerPool runs a fixed number of workers over a queue of units. Units
// never overlap, so workers write their pixels into the shared framebuffer
// without locking.
type WorkerPool struct {
	scene       *scene.Scene
	framebuffer *Framebuffer
	sampler     *PixelSampler
	spp         int
	numWorkers  int
	taskQueue   chan TileTask
	resultQueue chan TileResult
	group       errgroup.Group
}

// NewWorkerPool creates a worker pool. queueSize bounds the number of tasks
// that can be submitted before Stop without blocking.
func NewWorkerPool(sc *scene.Scene, fb *Framebuffer, sampler *PixelSampler, spp, numWorkers, queueSize int) *WorkerPool {
	return &WorkerPool{
		scene:       sc,
		framebuffer: fb,
		sampler:     sampler,
		spp:         spp,
		numWorkers:  numWorkers,
		taskQueue:   make(chan TileTask, queueSize),
		resultQueue: make(chan TileResult, queueSize),
	}
}

// Start begins all workers
func (wp *WorkerPool) Start() {
	for i := 0; i < wp.numWorkers; i++ {
		id := i
		wp.group.Go(func() error {
			return wp.run(id)
		})
	}
}

// SubmitTask submits a unit to the worker pool
func (wp *WorkerPool) SubmitTask(task TileTask) {
	wp.taskQueue <- task
}

// Stop closes the queue, waits for the workers to drain it and returns the
// first worker failure
func (wp *WorkerPool) Stop() error {
	close(wp.taskQueue)
	err := wp.group.Wait()
	close(wp.resultQueue)
	return err
}

// Results returns the completed unit results; the channel is closed by Stop
func (wp *WorkerPool) Results() <-chan TileResult {
	return wp.resultQueue
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop
func (wp *WorkerPool) run(id int) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("worker %d: %v", id, r)
		}
	}()

	for task := range wp.taskQueue {
		wp.resultQueue <- TileResult{
			TaskID: task.TaskID,
			Stats:  wp.renderTile(task.Tile),
		}
	}
	return nil
}

// renderTile shades every pixel inside the tile bounds
func (wp *WorkerPool) renderTile(tile *Tile) UnitStats {
	stats := UnitStats{}
	bounds := tile.Bounds

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			pixel := wp.sampler.SamplePixel(x, y, wp.scene, wp.spp)
			wp.framebuffer.Set(x, y, pixel.GetColor())

			stats.Pixels++
			stats.Samples += pixel.SampleCount
			stats.NonFiniteSamples += pixel.NonFiniteSamples
		}
	}

	return stats
}
