package renderer

import (
	"time"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/google/uuid"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	RenderID         uuid.UUID     // Identifies the render in logs
	Width            int           // Image width
	Height           int           // Image height
	Units            int           // Number of rows or tiles dispatched
	Workers          int           // Number of workers used
	TotalPixels      int           // Total number of pixels rendered
	TotalSamples     int           // Total number of samples taken
	NonFiniteSamples int           // Samples discarded as NaN or infinite
	Elapsed          time.Duration // Wall time of the render
}

// AverageSamples returns the mean samples per pixel
func (rs RenderStats) AverageSamples() float64 {
	if rs.TotalPixels == 0 {
		return 0
	}
	return float64(rs.TotalSamples) / float64(rs.TotalPixels)
}

// merge adds the counters of one unit of work
func (rs *RenderStats) merge(unit UnitStats) {
	rs.TotalPixels += unit.Pixels
	rs.TotalSamples += unit.Samples
	rs.NonFiniteSamples += unit.NonFiniteSamples
}

// UnitStats are the counters produced by one row or tile
type UnitStats struct {
	Pixels           int
	Samples          int
	NonFiniteSamples int
}

// PixelStats tracks sampling statistics for a single pixel
type PixelStats struct {
	ColorAccum       core.Vec3 // RGB accumulator for final result
	SampleCount      int       // Number of samples taken
	NonFiniteSamples int       // Samples replaced by black
}

// AddSample adds a new color sample to the pixel statistics. A NaN or
// infinite sample still counts toward the average but contributes black.
func (ps *PixelStats) AddSample(color core.Vec3) {
	if color.IsFinite() {
		ps.ColorAccum = ps.ColorAccum.Add(color)
	} else {
		ps.NonFiniteSamples++
	}
	ps.SampleCount++
}

// GetColor returns the current average color for this pixel
func (ps *PixelStats) GetColor() core.Vec3 {
	if ps.SampleCount == 0 {
		return core.Vec3{X: 0, Y: 0, Z: 0}
	}
	return ps.ColorAccum.Multiply(1.0 / float64(ps.SampleCount))
}
