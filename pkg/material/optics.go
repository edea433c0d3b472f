package material

import (
	"math"

	"github.com/df07/go-sphere-raytracer/pkg/core"
)

// refractEpsilon guards transmission at grazing angles
const refractEpsilon = 1e-9

// Reflect calculates the reflection of a vector v off a surface with normal n
func Reflect(v, n core.Vec3) core.Vec3 {
	// r = v - 2*dot(v,n)*n
	return v.Subtract(n.Multiply(2 * v.Dot(n)))
}

// Refract bends the unit vector uv through a surface with normal n using
// Snell's law. It returns false on total internal reflection, including
// the near-grazing case where the transmitted direction is degenerate.
func Refract(uv, n core.Vec3, etaiOverEtat float64) (core.Vec3, bool) {
	cosTheta := math.Min(-uv.Dot(n), 1.0)
	k := 1.0 - etaiOverEtat*etaiOverEtat*(1.0-cosTheta*cosTheta)
	if k < refractEpsilon {
		return core.Vec3{}, false
	}

	rOutPerp := uv.Add(n.Multiply(cosTheta)).Multiply(etaiOverEtat)
	rOutParallel := n.Multiply(-math.Sqrt(k))
	return rOutPerp.Add(rOutParallel).Normalize(), true
}

// Schlick approximates the Fresnel reflectance
func Schlick(cosine, refractionRatio float64) float64 {
	r0 := (1 - refractionRatio) / (1 + refractionRatio)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-math.Max(cosine, 0), 5)
}
