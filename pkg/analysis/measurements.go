// Package analysis computes summary statistics of loaded scenes.
package analysis

import (
	"math"
	"sort"

	"github.com/philipparndt/gosnap/pkg/geometry"
	"github.com/philipparndt/gosnap/pkg/mesh"
	"gonum.org/v1/gonum/stat"
)

// EdgeInfo contains information about an edge in the scene
type EdgeInfo struct {
	Start  geometry.Vector3
	End    geometry.Vector3
	Length float64
	Mesh   string
	Face   int
}

// MeshInfo summarizes one mesh of a scene
type MeshInfo struct {
	Name          string
	VertexCount   int
	TriangleCount int
	Indexed       bool
	BoundingBox   geometry.BoundingBox
	SurfaceArea   float64
}

// Report contains various measurements of a scene
type Report struct {
	Meshes        []MeshInfo
	BoundingBox   geometry.BoundingBox
	Dimensions    geometry.Vector3
	Volume        float64 // Of the bounding box
	SurfaceArea   float64
	VertexCount   int
	TriangleCount int
	EdgeCount     int
	MinEdgeLength float64
	MaxEdgeLength float64
	AvgEdgeLength float64
	EdgeStdDev    float64
	AllEdges      []EdgeInfo
}

type edgeKey struct {
	m    *mesh.Mesh
	a, b int
}

// AnalyzeScene measures every mesh of a scene in world space. Edges shared by
// triangles of an indexed mesh are counted once.
func AnalyzeScene(scene mesh.Scene) *Report {
	report := &Report{
		BoundingBox: scene.BoundingBox(),
		AllEdges:    make([]EdgeInfo, 0),
	}
	report.Dimensions = report.BoundingBox.Size()
	report.Volume = report.BoundingBox.Volume()

	seen := make(map[edgeKey]bool)
	for _, m := range scene {
		info := MeshInfo{
			Name:          m.Name,
			VertexCount:   m.VertexCount(),
			TriangleCount: m.TriangleCount(),
			Indexed:       m.Indexed(),
			BoundingBox:   m.BoundingBox(),
			SurfaceArea:   m.SurfaceArea(),
		}
		report.Meshes = append(report.Meshes, info)
		report.VertexCount += info.VertexCount
		report.TriangleCount += info.TriangleCount
		report.SurfaceArea += info.SurfaceArea

		for face := 0; face < m.TriangleCount(); face++ {
			a, b, c := m.TriangleIndices(face)
			for _, e := range [3][2]int{{a, b}, {b, c}, {c, a}} {
				if m.Indexed() {
					key := edgeKey{m: m, a: min(e[0], e[1]), b: max(e[0], e[1])}
					if seen[key] {
						continue
					}
					seen[key] = true
				}

				start, end := m.WorldVertex(e[0]), m.WorldVertex(e[1])
				report.AllEdges = append(report.AllEdges, EdgeInfo{
					Start:  start,
					End:    end,
					Length: start.Distance(end),
					Mesh:   m.Name,
					Face:   face,
				})
			}
		}
	}

	report.EdgeCount = len(report.AllEdges)
	if report.EdgeCount == 0 {
		return report
	}

	lengths := make([]float64, report.EdgeCount)
	report.MinEdgeLength = math.MaxFloat64
	for i, edge := range report.AllEdges {
		lengths[i] = edge.Length
		report.MinEdgeLength = math.Min(report.MinEdgeLength, edge.Length)
		report.MaxEdgeLength = math.Max(report.MaxEdgeLength, edge.Length)
	}
	report.AvgEdgeLength, report.EdgeStdDev = stat.PopMeanStdDev(lengths, nil)

	return report
}

// FindEdgesByLength finds all edges within a length range
func FindEdgesByLength(report *Report, minLength, maxLength float64) []EdgeInfo {
	var edges []EdgeInfo
	for _, edge := range report.AllEdges {
		if edge.Length >= minLength && edge.Length <= maxLength {
			edges = append(edges, edge)
		}
	}
	return edges
}

// FindLongestEdges returns the N longest edges
func FindLongestEdges(report *Report, count int) []EdgeInfo {
	return sortedEdges(report, count, func(a, b EdgeInfo) bool { return a.Length > b.Length })
}

// FindShortestEdges returns the N shortest edges
func FindShortestEdges(report *Report, count int) []EdgeInfo {
	return sortedEdges(report, count, func(a, b EdgeInfo) bool { return a.Length < b.Length })
}

func sortedEdges(report *Report, count int, less func(a, b EdgeInfo) bool) []EdgeInfo {
	edges := make([]EdgeInfo, len(report.AllEdges))
	copy(edges, report.AllEdges)

	sort.SliceStable(edges, func(i, j int) bool {
		return less(edges[i], edges[j])
	})

	count = max(0, min(count, len(edges)))
	return edges[:count]
}

// FindNearestVertex finds the world-space vertex of the scene nearest to a point
func FindNearestVertex(scene mesh.Scene, point geometry.Vector3) (geometry.Vector3, float64, bool) {
	var nearest geometry.Vector3
	minDistSq := math.MaxFloat64
	found := false

	for _, m := range scene {
		for i := 0; i < m.VertexCount(); i++ {
			v := m.WorldVertex(i)
			if d := point.DistanceSquared(v); d < minDistSq {
				minDistSq = d
				nearest = v
				found = true
			}
		}
	}

	if !found {
		return geometry.Vector3{}, 0, false
	}
	return nearest, math.Sqrt(minDistSq), true
}
