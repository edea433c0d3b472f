package lights

import (
	"errors"
	"math"
	"testing"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPointLight_Sample(t *testing.T) {
	light := NewPointLight(core.NewVec3(0, 5, -5), core.NewVec3(1, 1, 1))

	assert.Equal(t, LightTypePoint, light.Type())
	assert.Equal(t, 1, light.SampleCount())
	assert.Equal(t, light.Position, light.SamplePoint(core.NewVec3(0, 0, 0), 0, core.NewVec2(0.3, 0.7)))
	assert.NoError(t, light.Validate())
}

func TestSphereLight_SamplesFacingHemisphere(t *testing.T) {
	light := NewSphereLight(core.NewVec3(0, 10, 0), 2, core.NewVec3(5, 5, 5), 16)
	point := core.NewVec3(0, 0, 0)
	sampler := core.NewSeededSampler(21)

	for i := 0; i < 1000; i++ {
		p := light.SamplePoint(point, i%light.SampleCount(), sampler.Get2D())
		require.InDelta(t, 2, p.Subtract(light.Center).Length(), 1e-9, "sample must lie on the surface")
		assert.LessOrEqual(t, p.Y, 10.0+1e-9, "sample must face the shading point")
	}
}

func TestSphereLight_InsideSamplesWholeSphere(t *testing.T) {
	light := NewSphereLight(core.NewVec3(0, 0, 0), 1, core.NewVec3(1, 1, 1), 4)
	sampler := core.NewSeededSampler(4)

	above, below := 0, 0
	for i := 0; i < 1000; i++ {
		p := light.SamplePoint(core.NewVec3(0, 0.1, 0), 0, sampler.Get2D())
		if p.Y > 0 {
			above++
		} else {
			below++
		}
	}
	assert.Greater(t, above, 0)
	assert.Greater(t, below, 0)
}

func TestQuadLight_Stratified(t *testing.T) {
	light := NewQuadLight(core.NewVec3(0, 5, 0), core.NewVec3(2, 0, 0), core.NewVec3(0, 0, 2), core.NewVec3(1, 1, 1), 4)

	// With a 2x2 grid and a centred jitter each index lands in its own cell centre
	expected := []core.Vec3{
		core.NewVec3(0.5, 5, 0.5),
		core.NewVec3(1.5, 5, 0.5),
		core.NewVec3(0.5, 5, 1.5),
		core.NewVec3(1.5, 5, 1.5),
	}
	for i, want := range expected {
		got := light.SamplePoint(core.NewVec3(0, 0, 0), i, core.NewVec2(0.5, 0.5))
		assert.InDelta(t, 0, got.Subtract(want).Length(), 1e-12, "index %d", i)
	}

	assert.InDelta(t, 0, light.Center().Subtract(core.NewVec3(1, 5, 1)).Length(), 1e-12)
}

func TestQuadLight_UnstratifiedStaysOnQuad(t *testing.T) {
	light := NewQuadLight(core.NewVec3(-1, 3, -1), core.NewVec3(2, 0, 0), core.NewVec3(0, 0, 2), core.NewVec3(1, 1, 1), 3)
	sampler := core.NewSeededSampler(6)

	for i := 0; i < 300; i++ {
		p := light.SamplePoint(core.NewVec3(0, 0, 0), i%3, sampler.Get2D())
		assert.InDelta(t, 3, p.Y, 1e-12)
		assert.True(t, p.X >= -1 && p.X <= 1 && p.Z >= -1 && p.Z <= 1, "sample %v off the quad", p)
	}
}

func TestLight_Validate(t *testing.T) {
	tests := []struct {
		name  string
		light Light
		valid bool
	}{
		{"point ok", NewPointLight(core.NewVec3(0, 1, 0), core.NewVec3(1, 1, 1)), true},
		{"point negative intensity", NewPointLight(core.NewVec3(0, 1, 0), core.NewVec3(-1, 1, 1)), false},
		{"point NaN position", NewPointLight(core.NewVec3(math.NaN(), 1, 0), core.NewVec3(1, 1, 1)), false},
		{"sphere ok", NewSphereLight(core.NewVec3(0, 1, 0), 0.5, core.NewVec3(1, 1, 1), 8), true},
		{"sphere zero radius", NewSphereLight(core.NewVec3(0, 1, 0), 0, core.NewVec3(1, 1, 1), 8), false},
		{"sphere zero samples", NewSphereLight(core.NewVec3(0, 1, 0), 1, core.NewVec3(1, 1, 1), 0), false},
		{"quad ok", NewQuadLight(core.NewVec3(0, 1, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 0, 1), core.NewVec3(1, 1, 1), 4), true},
		{"quad degenerate", NewQuadLight(core.NewVec3(0, 1, 0), core.NewVec3(1, 0, 0), core.NewVec3(2, 0, 0), core.NewVec3(1, 1, 1), 4), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.light.Validate()
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidLight))
		})
	}
}

func TestStrata(t *testing.T) {
	assert.Equal(t, 1, strata(1))
	assert.Equal(t, 3, strata(9))
	assert.Equal(t, 0, strata(8))
}
