package material

import "github.com/df07/go-sphere-raytracer/pkg/core"

// HitRecord contains information about a ray-object intersection. It is
// scoped to one intersection query and never stored past shading.
type HitRecord struct {
	Point     core.Vec3 // Point of intersection
	Normal    core.Vec3 // Unit surface normal, facing against the incoming ray
	T         float64   // Parameter t along the ray
	FrontFace bool      // Whether ray hit the outside of the surface
	Material  Material  // Material of the hit object
}

// SetFaceNormal sets the normal vector and determines front/back face
func (h *HitRecord) SetFaceNormal(ray core.Ray, outwardNormal core.Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}

// SpawnRay starts a new ray at the hit point, nudged by epsilon along the
// normal onto the side the direction points to.
func (h *HitRecord) SpawnRay(direction core.Vec3, epsilon, maxDistance float64) core.Ray {
	offset := h.Normal.Multiply(epsilon)
	if direction.Dot(h.Normal) < 0 {
		offset = offset.Negate()
	}
	return core.NewRayWithRange(h.Point.Add(offset), direction, epsilon, maxDistance)
}
