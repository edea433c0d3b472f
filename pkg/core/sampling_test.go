package core

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleCosineHemisphere_StaysInHemisphere(t *testing.T) {
	normals := []Vec3{
		NewVec3(0, 1, 0),
		NewVec3(1, 0, 0),
		NewVec3(0, 0, -1),
		NewVec3(1, 1, 1).Normalize(),
	}
	sampler := NewSeededSampler(7)

	for _, normal := range normals {
		for i := 0; i < 500; i++ {
			dir := SampleCosineHemisphere(normal, sampler.Get2D())
			require.InDelta(t, 1.0, dir.Length(), 1e-9, "direction must be unit length")
			require.GreaterOrEqual(t, dir.Dot(normal), -1e-12, "direction %v below surface %v", dir, normal)
		}
	}
}

func TestSampleCosineHemisphere_MeanCosine(t *testing.T) {
	// For a cosine-weighted distribution E[cos θ] = 2/3
	normal := NewVec3(0, 0, 1)
	sampler := NewSeededSampler(11)

	const n = 20000
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += SampleCosineHemisphere(normal, sampler.Get2D()).Dot(normal)
	}

	assert.InDelta(t, 2.0/3.0, sum/n, 0.01)
}

func TestSampleOnUnitSphere(t *testing.T) {
	sampler := NewSeededSampler(3)
	mean := Vec3{}

	const n = 20000
	for i := 0; i < n; i++ {
		p := SampleOnUnitSphere(sampler.Get2D())
		require.InDelta(t, 1.0, p.Length(), 1e-9)
		mean = mean.Add(p)
	}

	// Uniform on the sphere means the centroid sits at the origin
	assert.Less(t, mean.Multiply(1.0/n).Length(), 0.02)
}

func TestSamplePointInUnitDisk(t *testing.T) {
	sampler := NewSeededSampler(5)
	for i := 0; i < 1000; i++ {
		p := SamplePointInUnitDisk(sampler.Get2D())
		assert.LessOrEqual(t, p.Length(), 1.0+1e-12)
		assert.Equal(t, 0.0, p.Z)
	}

	center := SamplePointInUnitDisk(NewVec2(0.5, 0.5))
	assert.True(t, center.IsZero(), "center sample should map to origin")
}

func TestSamplePointInUnitSphere(t *testing.T) {
	sampler := NewSeededSampler(9)
	for i := 0; i < 1000; i++ {
		p := SamplePointInUnitSphere(sampler.Get3D())
		if p.Length() > 1.0+1e-12 {
			t.Fatalf("Point %v outside unit sphere", p)
		}
	}
}

func TestOrthonormalBasis(t *testing.T) {
	for _, w := range []Vec3{NewVec3(0, 0, 1), NewVec3(1, 0, 0), NewVec3(-1, 2, 0.5).Normalize()} {
		u, v := OrthonormalBasis(w)
		if math.Abs(u.Dot(v)) > 1e-9 || math.Abs(u.Dot(w)) > 1e-9 || math.Abs(v.Dot(w)) > 1e-9 {
			t.Errorf("Basis for %v is not orthogonal: u=%v v=%v", w, u, v)
		}
		if math.Abs(u.Length()-1) > 1e-9 || math.Abs(v.Length()-1) > 1e-9 {
			t.Errorf("Basis for %v is not normalized: u=%v v=%v", w, u, v)
		}
	}
}
