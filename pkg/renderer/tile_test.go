package renderer

import (
	"errors"
	"image"
	"testing"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/integrator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTileGrid_CoversImageOnce(t *testing.T) {
	tests := []struct {
		width, height, tileSize int
		expectedTiles           int
	}{
		{64, 64, 32, 4},
		{100, 50, 32, 8},
		{7, 3, 4, 2},
		{5, 5, 64, 1},
		{1, 1, 1, 1},
	}

	for _, tt := range tests {
		tiles := NewTileGrid(tt.width, tt.height, tt.tileSize)
		assert.Len(t, tiles, tt.expectedTiles, "%dx%d/%d", tt.width, tt.height, tt.tileSize)
		assertCoversOnce(t, tiles, tt.width, tt.height)
	}
}

func TestNewRowGrid_CoversImageOnce(t *testing.T) {
	tiles := NewRowGrid(13, 5)
	require.Len(t, tiles, 5)
	for y, tile := range tiles {
		assert.Equal(t, y, tile.ID)
		assert.Equal(t, image.Rect(0, y, 13, y+1), tile.Bounds)
	}
	assertCoversOnce(t, tiles, 13, 5)
}

func TestPartition_FollowsConfig(t *testing.T) {
	config := DefaultConfig()
	config.Partition = PartitionRows
	assert.Len(t, partition(10, 6, config), 6)

	config.Partition = PartitionTiles
	config.TileSize = 4
	assert.Len(t, partition(10, 6, config), 6, "3 columns x 2 rows of tiles")
}

func assertCoversOnce(t *testing.T, tiles []*Tile, width, height int) {
	t.Helper()
	coverage := make([]int, width*height)
	for _, tile := range tiles {
		b := tile.Bounds
		assert.True(t, b.In(image.Rect(0, 0, width, height)), "tile %d outside image: %v", tile.ID, b)
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				coverage[y*width+x]++
			}
		}
	}
	for i, c := range coverage {
		if c != 1 {
			t.Fatalf("pixel (%d,%d) covered %d times", i%width, i/width, c)
		}
	}
}

func TestFramebuffer(t *testing.T) {
	fb := NewFramebuffer(3, 2)
	require.Len(t, fb.Pixels, 6)

	fb.Set(2, 1, core.NewVec3(1, 2, 3))
	assert.Equal(t, core.NewVec3(1, 2, 3), fb.At(2, 1))
	assert.Equal(t, core.NewVec3(1, 2, 3), fb.Row(1)[2])
	assert.Equal(t, core.Vec3{}, fb.Row(0)[2])

	other := NewFramebuffer(3, 2)
	assert.False(t, fb.Equal(other))
	other.Set(2, 1, core.NewVec3(1, 2, 3))
	assert.True(t, fb.Equal(other))
	assert.False(t, fb.Equal(NewFramebuffer(2, 3)))
}

func TestPixelStats_NonFiniteSamples(t *testing.T) {
	var stats PixelStats
	assert.Equal(t, core.Vec3{}, stats.GetColor())

	stats.AddSample(core.NewVec3(1, 1, 1))
	stats.AddSample(core.NewVec3(nan(), 0, 0))
	stats.AddSample(core.NewVec3(0.5, 0.5, 0.5))

	assert.Equal(t, 3, stats.SampleCount)
	assert.Equal(t, 1, stats.NonFiniteSamples)
	assert.InDelta(t, 0.5, stats.GetColor().X, 1e-12)
}

func nan() float64 {
	zero := 0.0
	return zero / zero
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		valid  bool
	}{
		{"defaults", func(*Config) {}, true},
		{"depth zero", func(c *Config) { c.MaxDepth = 0 }, true},
		{"tiles", func(c *Config) { c.Partition = PartitionTiles }, true},
		{"rr disabled ignores rr fields", func(c *Config) {
			c.RussianRoulette = false
			c.RussianRouletteMinSurvival = 0
		}, true},
		{"zero spp", func(c *Config) { c.SamplesPerPixel = 0 }, false},
		{"negative depth", func(c *Config) { c.MaxDepth = -1 }, false},
		{"zero workers", func(c *Config) { c.NumWorkers = 0 }, false},
		{"negative background", func(c *Config) { c.Background = core.NewVec3(-1, 0, 0) }, false},
		{"nan background", func(c *Config) { c.Background = core.NewVec3(nan(), 0, 0) }, false},
		{"unknown partition", func(c *Config) { c.Partition = "spiral" }, false},
		{"zero tile size", func(c *Config) {
			c.Partition = PartitionTiles
			c.TileSize = 0
		}, false},
		{"zero ray epsilon", func(c *Config) { c.RayEpsilon = 0 }, false},
		{"zero shadow epsilon", func(c *Config) { c.ShadowEpsilon = 0 }, false},
		{"max distance below epsilon", func(c *Config) { c.MaxDistance = c.RayEpsilon / 2 }, false},
		{"rr min bounces", func(c *Config) { c.RussianRouletteMinBounces = 0 }, false},
		{"rr threshold", func(c *Config) { c.RussianRouletteThreshold = -0.1 }, false},
		{"rr survival", func(c *Config) { c.RussianRouletteMinSurvival = 1.5 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			config.NumWorkers = 2
			tt.modify(&config)

			err := config.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.True(t, errors.Is(err, ErrInvalidConfig), "expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestWorkerPool_RecoversPanics(t *testing.T) {
	config := DefaultConfig()
	sampler := NewPixelSampler(integrator.NewPathTracer(config.IntegratorConfig()), config)

	// A nil scene makes every pixel panic
	pool := NewWorkerPool(nil, NewFramebuffer(2, 2), sampler, 1, 2, 2)
	pool.Start()
	pool.SubmitTask(TileTask{Tile: NewTile(0, image.Rect(0, 0, 2, 1)), TaskID: 0})
	pool.SubmitTask(TileTask{Tile: NewTile(1, image.Rect(0, 1, 2, 2)), TaskID: 1})

	err := pool.Stop()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "worker")
}
