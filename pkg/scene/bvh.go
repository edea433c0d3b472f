package scene

import (
	"sort"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
	"github.com/df07/go-sphere-raytracer/pkg/material"
)

// Leaf threshold: if we have this many or fewer spheres, store them in a leaf node
const leafThreshold = 8

// BVHNode represents a node in the Bounding Volume Hierarchy
type BVHNode struct {
	BoundingBox core.AABB
	Left        *BVHNode
	Right       *BVHNode
	Objects     []*geometry.Sphere // Leaf contents (nil for internal nodes)
}

// BVH is a Bounding Volume Hierarchy over spheres. It returns the same
// nearest hit as a linear search over the same objects.
type BVH struct {
	Root *BVHNode
}

// NewBVH constructs a BVH from a slice of spheres
func NewBVH(objects []*geometry.Sphere) *BVH {
	if len(objects) == 0 {
		return &BVH{}
	}

	// Sorting reorders the slice, so work on a copy
	objectsCopy := make([]*geometry.Sphere, len(objects))
	copy(objectsCopy, objects)

	return &BVH{Root: buildBVH(objectsCopy)}
}

// buildBVH recursively splits at the median along the longest axis
func buildBVH(objects []*geometry.Sphere) *BVHNode {
	boundingBox := objects[0].BoundingBox()
	for _, object := range objects[1:] {
		boundingBox = boundingBox.Union(object.BoundingBox())
	}

	if len(objects) <= leafThreshold {
		return &BVHNode{BoundingBox: boundingBox, Objects: objects}
	}

	axis := boundingBox.LongestAxis()
	sort.SliceStable(objects, func(i, j int) bool {
		return core.AxisValue(objects[i].BoundingBox().Center(), axis) < core.AxisValue(objects[j].BoundingBox().Center(), axis)
	})

	mid := len(objects) / 2
	return &BVHNode{
		BoundingBox: boundingBox,
		Left:        buildBVH(objects[:mid]),
		Right:       buildBVH(objects[mid:]),
	}
}

// Hit finds the nearest sphere hit in [tMin, tMax]
func (bvh *BVH) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	if bvh.Root == nil {
		return nil, false
	}
	return bvh.hitNode(bvh.Root, ray, tMin, tMax)
}

func (bvh *BVH) hitNode(node *BVHNode, ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	if !node.BoundingBox.Hit(ray, tMin, tMax) {
		return nil, false
	}

	if node.Objects != nil {
		return hitList(node.Objects, ray, tMin, tMax)
	}

	closestHit, _ := bvh.hitNode(node.Left, ray, tMin, tMax)
	closestSoFar := tMax
	if closestHit != nil {
		closestSoFar = closestHit.T
	}

	if hit, isHit := bvh.hitNode(node.Right, ray, tMin, closestSoFar); isHit {
		closestHit = hit
	}

	return closestHit, closestHit != nil
}

// AnyHit reports whether any sphere is hit in [tMin, tMax]
func (bvh *BVH) AnyHit(ray core.Ray, tMin, tMax float64) bool {
	if bvh.Root == nil {
		return false
	}
	return bvh.anyHitNode(bvh.Root, ray, tMin, tMax)
}

func (bvh *BVH) anyHitNode(node *BVHNode, ray core.Ray, tMin, tMax float64) bool {
	if !node.BoundingBox.Hit(ray, tMin, tMax) {
		return false
	}
	if node.Objects != nil {
		return anyHitList(node.Objects, ray, tMin, tMax)
	}
	return bvh.anyHitNode(node.Left, ray, tMin, tMax) || bvh.anyHitNode(node.Right, ray, tMin, tMax)
}

// BVHStats contains statistics about the BVH structure
type BVHStats struct {
	TotalNodes   int
	LeafNodes    int
	MaxDepth     int
	TotalObjects int
}

// Stats walks the tree and returns its shape
func (bvh *BVH) Stats() BVHStats {
	stats := BVHStats{}
	if bvh.Root != nil {
		collectStats(bvh.Root, 0, &stats)
	}
	return stats
}

func collectStats(node *BVHNode, depth int, stats *BVHStats) {
	stats.TotalNodes++
	if depth > stats.MaxDepth {
		stats.MaxDepth = depth
	}

	if node.Objects != nil {
		stats.LeafNodes++
		stats.TotalObjects += len(node.Objects)
		return
	}

	collectStats(node.Left, depth+1, stats)
	collectStats(node.Right, depth+1, stats)
}
