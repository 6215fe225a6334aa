package analysis

import (
	"sort"

	"github.com/philipparndt/gosnap/pkg/geometry"
	"github.com/philipparndt/gosnap/pkg/mesh"
)

// TriangleOrder selects how ListTriangles sorts its result
type TriangleOrder int

const (
	// OrderFace keeps scene order
	OrderFace TriangleOrder = iota
	OrderLargest
	OrderSmallest
)

// TriangleInfo describes one world-space triangle of a scene
type TriangleInfo struct {
	Mesh      string
	Face      int
	Area      float64
	Perimeter float64
	Vertices  [3]geometry.Vector3
}

// TriangleStats summarizes triangle areas
type TriangleStats struct {
	Count     int
	TotalArea float64
	MinArea   float64
	MaxArea   float64
	AvgArea   float64
}

// ListTriangles returns every triangle of the scene in the requested order
func ListTriangles(scene mesh.Scene, order TriangleOrder) ([]TriangleInfo, TriangleStats) {
	triangles := make([]TriangleInfo, 0, scene.TriangleCount())
	var stats TriangleStats

	for _, m := range scene {
		for face := 0; face < m.TriangleCount(); face++ {
			tri := m.WorldTriangle(face)
			info := TriangleInfo{
				Mesh:      m.Name,
				Face:      face,
				Area:      tri.Area(),
				Perimeter: tri.Perimeter(),
				Vertices:  tri.Vertices(),
			}
			triangles = append(triangles, info)

			stats.TotalArea += info.Area
			if stats.Count == 0 || info.Area < stats.MinArea {
				stats.MinArea = info.Area
			}
			if info.Area > stats.MaxArea {
				stats.MaxArea = info.Area
			}
			stats.Count++
		}
	}
	if stats.Count > 0 {
		stats.AvgArea = stats.TotalArea / float64(stats.Count)
	}

	switch order {
	case OrderLargest:
		sort.SliceStable(triangles, func(i, j int) bool {
			return triangles[i].Area > triangles[j].Area
		})
	case OrderSmallest:
		sort.SliceStable(triangles, func(i, j int) bool {
			return triangles[i].Area < triangles[j].Area
		})
	}

	return triangles, stats
}
