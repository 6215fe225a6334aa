package mesh

import (
	"math"

	"github.com/philipparndt/gosnap/pkg/geometry"
)

// Intersection is a ray hit on a mesh
type Intersection struct {
	Point  geometry.Vector3 // World space
	Normal geometry.Vector3 // Object-space face normal
	Mesh   *Mesh
	Face   int
}

// Raycast returns the closest hit of the world-space ray with the mesh
func (m *Mesh) Raycast(ray geometry.Ray) (Intersection, bool) {
	best := math.MaxFloat64
	hitFace := -1

	for face := 0; face < m.TriangleCount(); face++ {
		tri := m.WorldTriangle(face)
		t, ok := ray.IntersectTriangle(tri.V1, tri.V2, tri.V3)
		if ok && t < best {
			best = t
			hitFace = face
		}
	}

	if hitFace < 0 {
		return Intersection{}, false
	}

	return Intersection{
		Point:  ray.At(best),
		Normal: m.Triangle(hitFace).Normal,
		Mesh:   m,
		Face:   hitFace,
	}, true
}

// Scene is a set of meshes hit-tested together
type Scene []*Mesh

// Raycast returns the closest hit across all meshes
func (s Scene) Raycast(ray geometry.Ray) (Intersection, bool) {
	var best Intersection
	bestDist := math.MaxFloat64
	found := false

	for _, m := range s {
		hit, ok := m.Raycast(ray)
		if !ok {
			continue
		}
		if d := hit.Point.DistanceSquared(ray.Origin); d < bestDist {
			best, bestDist, found = hit, d, true
		}
	}
	return best, found
}

// BoundingBox returns the combined world-space bounds
func (s Scene) BoundingBox() geometry.BoundingBox {
	bbox := geometry.NewBoundingBox()
	for _, m := range s {
		b := m.BoundingBox()
		if b.IsEmpty() {
			continue
		}
		bbox.Extend(b.Min)
		bbox.Extend(b.Max)
	}
	return bbox
}

// TriangleCount returns the total number of triangles
func (s Scene) TriangleCount() int {
	total := 0
	for _, m := range s {
		total += m.TriangleCount()
	}
	return total
}
