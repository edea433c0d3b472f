package integrator

import (
	"math"
	"testing"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
	"github.com/df07/go-sphere-raytracer/pkg/lights"
	"github.com/df07/go-sphere-raytracer/pkg/material"
	"github.com/df07/go-sphere-raytracer/pkg/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(maxDepth int) Config {
	return Config{
		MaxDepth:                   maxDepth,
		Background:                 core.NewVec3(0.2, 0.3, 0.4),
		ShadowEpsilon:              1e-4,
		RussianRouletteMinBounces:  3,
		RussianRouletteThreshold:   0.05,
		RussianRouletteMinSurvival: 0.5,
	}
}

func buildScene(t *testing.T, sceneLights []lights.Light, objects []*geometry.Sphere, ambient core.Vec3) *scene.Scene {
	t.Helper()
	camera, err := geometry.NewCamera(geometry.CameraConfig{
		Center: core.NewVec3(0, 0, 0),
		LookAt: core.NewVec3(0, 0, -1),
		Up:     core.NewVec3(0, 1, 0),
		Width:  8,
		Height: 8,
		VFov:   60,
	})
	require.NoError(t, err)

	sc, err := scene.New(camera, sceneLights, objects, ambient)
	require.NoError(t, err)
	return sc
}

func rayTo(target core.Vec3) core.Ray {
	return core.NewRayWithRange(core.Vec3{}, target, 1e-4, 1e9)
}

func TestTrace_MissReturnsBackground(t *testing.T) {
	sc := buildScene(t, nil, []*geometry.Sphere{
		geometry.NewSphere(core.NewVec3(0, 0, -5), 1, material.NewDiffuse(core.NewVec3(1, 0, 0))),
	}, core.Vec3{})
	pt := NewPathTracer(testConfig(4))

	color := pt.Trace(rayTo(core.NewVec3(0, 0, 1)), sc, 0, core.NewSeededSampler(1))
	assert.Equal(t, pt.Config().Background, color, "miss must return the background exactly")
}

func TestTrace_PastMaxDepthReturnsAmbient(t *testing.T) {
	ambient := core.NewVec3(0.01, 0.02, 0.03)
	sc := buildScene(t, nil, []*geometry.Sphere{
		geometry.NewSphere(core.NewVec3(0, 0, -5), 1, material.NewDiffuse(core.NewVec3(1, 0, 0))),
	}, ambient)
	pt := NewPathTracer(testConfig(2))

	color := pt.Trace(rayTo(core.NewVec3(0, 0, -1)), sc, 3, core.NewSeededSampler(1))
	assert.Equal(t, ambient, color)
}

func TestTrace_DiffuseFollowsLambertCosine(t *testing.T) {
	albedo := core.NewVec3(0.9, 0.1, 0.1)
	center := core.NewVec3(0, 0, -5)
	lightPos := core.NewVec3(0, 5, -5)
	intensity := core.NewVec3(1, 1, 1)

	sc := buildScene(t,
		[]lights.Light{lights.NewPointLight(lightPos, intensity)},
		[]*geometry.Sphere{geometry.NewSphere(center, 1, material.NewDiffuse(albedo))},
		core.Vec3{})
	pt := NewPathTracer(testConfig(0))

	normals := []core.Vec3{
		core.NewVec3(0, 1, 1).Normalize(),
		core.NewVec3(0.3, 0.5, 1).Normalize(),
		core.NewVec3(-0.6, 0.2, 1).Normalize(),
		core.NewVec3(0, 0, 1),
		core.NewVec3(0, -1, 1).Normalize(),
		core.NewVec3(0.2, -0.4, 1).Normalize(),
	}

	for _, n := range normals {
		p := center.Add(n)
		toLight := lightPos.Subtract(p)
		cosine := n.Dot(toLight.Normalize())

		color := pt.Trace(rayTo(p), sc, 0, core.NewSeededSampler(9))

		if cosine <= 0 {
			assert.True(t, color.IsZero(), "normal %v faces away from the light, got %v", n, color)
			continue
		}

		// With depth 0 the result is exactly albedo/π · cos θ · I/d²
		expected := albedo.Multiply(cosine / math.Pi / toLight.LengthSquared())
		assert.InDelta(t, 0, color.Subtract(expected).Length(), 1e-9, "normal %v", n)
	}
}

func TestTrace_DepthZeroIsDirectOnly(t *testing.T) {
	mirror := material.NewReflective(core.NewVec3(1, 1, 1), 0)
	glass := material.NewRefractive(1.5)
	light := lights.NewPointLight(core.NewVec3(0, 10, 0), core.NewVec3(50, 50, 50))

	for _, m := range []material.Material{mirror, glass} {
		t.Run(m.Name(), func(t *testing.T) {
			sc := buildScene(t, []lights.Light{light},
				[]*geometry.Sphere{geometry.NewSphere(core.NewVec3(0, 0, -5), 1, m)}, core.Vec3{})

			flat := NewPathTracer(testConfig(0)).Trace(rayTo(core.NewVec3(0, 0, -1)), sc, 0, core.NewSeededSampler(2))
			assert.True(t, flat.IsZero(), "no bounce allowed at depth 0, got %v", flat)

			deep := NewPathTracer(testConfig(5)).Trace(rayTo(core.NewVec3(0, 0, -1)), sc, 0, core.NewSeededSampler(2))
			assert.False(t, deep.IsZero(), "with bounces the background shows through")
		})
	}
}

func TestTrace_PerfectMirrorIsDeterministic(t *testing.T) {
	albedo := core.NewVec3(0.9, 0.8, 0.7)
	sc := buildScene(t,
		[]lights.Light{lights.NewPointLight(core.NewVec3(0, 10, 0), core.NewVec3(10, 10, 10))},
		[]*geometry.Sphere{geometry.NewSphere(core.NewVec3(0, 0, -5), 1, material.NewReflective(albedo, 0))},
		core.Vec3{})
	pt := NewPathTracer(testConfig(5))

	targets := []core.Vec3{
		core.NewVec3(0, 0, -1),
		core.NewVec3(0.1, 0.05, -1),
		core.NewVec3(-0.12, -0.1, -1),
	}
	for _, target := range targets {
		first := pt.Trace(rayTo(target), sc, 0, core.NewSeededSampler(100))
		second := pt.Trace(rayTo(target), sc, 0, core.NewSeededSampler(200))

		assert.Equal(t, first, second, "fuzz=0 mirror must not depend on the random stream")
		// The only thing visible in the mirror is the background
		assert.InDelta(t, 0, first.Subtract(albedo.MultiplyVec(pt.Config().Background)).Length(), 1e-12)
	}
}

func TestTrace_SoftShadowPenumbra(t *testing.T) {
	ground := geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, material.NewDiffuse(core.NewVec3(0.8, 0.8, 0.8)))
	blocker := geometry.NewSphere(core.NewVec3(1, 5, 0), 0.6, material.NewDiffuse(core.NewVec3(0.8, 0.8, 0.8)))
	light := lights.NewQuadLight(core.NewVec3(-1, 10, -1), core.NewVec3(2, 0, 0), core.NewVec3(0, 0, 2), core.NewVec3(100, 100, 100), 64)

	lit := buildScene(t, []lights.Light{light}, []*geometry.Sphere{ground}, core.Vec3{})
	shadowed := buildScene(t, []lights.Light{light}, []*geometry.Sphere{ground, blocker}, core.Vec3{})
	pt := NewPathTracer(testConfig(0))

	// Camera ray landing on the ground at the origin
	ray := core.NewRayWithRange(core.NewVec3(0, 1, 1), core.NewVec3(0, -1, -1), 1e-4, 1e9)

	full := pt.Trace(ray, lit, 0, core.NewSeededSampler(4))
	partial := pt.Trace(ray, shadowed, 0, core.NewSeededSampler(4))

	require.Greater(t, full.X, 0.0)
	assert.Greater(t, partial.X, 0.0, "part of the light is still visible")
	assert.Less(t, partial.X, full.X, "part of the light is blocked")
}

func TestTrace_PhongIsLocalOnly(t *testing.T) {
	phong := material.NewPhong(core.NewVec3(0.2, 0.6, 0.9), 0.7, 0.3, 16, 0.5)
	ambient := core.NewVec3(0.1, 0.1, 0.1)
	sc := buildScene(t,
		[]lights.Light{lights.NewSphereLight(core.NewVec3(2, 5, -2), 0.5, core.NewVec3(30, 30, 30), 4)},
		[]*geometry.Sphere{
			geometry.NewSphere(core.NewVec3(0, 0, -5), 1, phong),
			geometry.NewSphere(core.NewVec3(0, -101, -5), 100, material.NewDiffuse(core.NewVec3(1, 1, 1))),
		},
		ambient)

	ray := rayTo(core.NewVec3(0, 0.2, -1))
	shallow := NewPathTracer(testConfig(0)).Trace(ray, sc, 0, core.NewSeededSampler(5))
	deep := NewPathTracer(testConfig(10)).Trace(ray, sc, 0, core.NewSeededSampler(5))

	assert.Equal(t, shallow, deep, "Phong surfaces never bounce")
	assert.GreaterOrEqual(t, shallow.Z, phong.Ambient(ambient).Z)
}

func TestTrace_NeverProducesNaN(t *testing.T) {
	sc := buildScene(t,
		[]lights.Light{
			lights.NewPointLight(core.NewVec3(0, 0, -4), core.NewVec3(5, 5, 5)),
			lights.NewSphereLight(core.NewVec3(0, 3, -5), 0.5, core.NewVec3(20, 20, 20), 4),
		},
		[]*geometry.Sphere{
			geometry.NewSphere(core.NewVec3(0, 0, -5), 1, material.NewRefractive(1.5)),
			geometry.NewSphere(core.NewVec3(2, 0, -5), 1, material.NewReflective(core.NewVec3(0.9, 0.9, 0.9), 0.5)),
			geometry.NewSphere(core.NewVec3(-2, 0, -5), 1, material.NewDiffuse(core.NewVec3(0.5, 0.5, 0.5))),
			geometry.NewSphere(core.NewVec3(0, -101, -5), 100, material.NewPhong(core.NewVec3(1, 1, 1), 0.5, 0.5, 8, 0.1)),
		},
		core.NewVec3(0.05, 0.05, 0.05))

	config := testConfig(8)
	config.RussianRoulette = true
	pt := NewPathTracer(config)
	sampler := core.NewSeededSampler(77)

	for i := 0; i < 2000; i++ {
		target := core.NewVec3(sampler.Get1D()-0.5, sampler.Get1D()-0.5, -1)
		color := pt.Trace(rayTo(target), sc, 0, sampler)
		require.True(t, color.IsFinite(), "sample %d produced %v", i, color)
		require.GreaterOrEqual(t, color.MinComponent(), 0.0)
	}
}
