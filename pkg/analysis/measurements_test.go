package analysis

import (
	"math"
	"testing"

	"github.com/philipparndt/gosnap/pkg/geometry"
	"github.com/philipparndt/gosnap/pkg/mesh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unitSquare is two triangles sharing the diagonal
func unitSquare() *mesh.Mesh {
	return mesh.New("square", []geometry.Vector3{
		geometry.NewVector3(0, 0, 0),
		geometry.NewVector3(1, 0, 0),
		geometry.NewVector3(1, 1, 0),
		geometry.NewVector3(0, 1, 0),
	}, []uint32{0, 1, 2, 0, 2, 3})
}

func TestAnalyzeSceneIndexed(t *testing.T) {
	report := AnalyzeScene(mesh.Scene{unitSquare()})

	assert.Equal(t, 4, report.VertexCount)
	assert.Equal(t, 2, report.TriangleCount)
	assert.Equal(t, 5, report.EdgeCount, "shared diagonal counted once")
	assert.InDelta(t, 1.0, report.SurfaceArea, 1e-9)
	assert.InDelta(t, 1.0, report.MinEdgeLength, 1e-9)
	assert.InDelta(t, math.Sqrt2, report.MaxEdgeLength, 1e-9)
	assert.InDelta(t, (4+math.Sqrt2)/5, report.AvgEdgeLength, 1e-9)
	assert.Greater(t, report.EdgeStdDev, 0.0)
	assert.Equal(t, geometry.NewVector3(1, 1, 0), report.Dimensions)
	require.Len(t, report.Meshes, 1)
	assert.True(t, report.Meshes[0].Indexed)
}

func TestAnalyzeSceneTriangleSoup(t *testing.T) {
	soup := mesh.FromTriangles("soup", []geometry.Triangle{
		unitSquare().Triangle(0),
		unitSquare().Triangle(1),
	})
	report := AnalyzeScene(mesh.Scene{soup})

	assert.Equal(t, 6, report.VertexCount)
	assert.Equal(t, 6, report.EdgeCount, "unindexed edges are not merged")
}

func TestAnalyzeSceneWorldSpace(t *testing.T) {
	m := unitSquare()
	m.Transform = geometry.Translation(geometry.NewVector3(10, 0, 0))
	report := AnalyzeScene(mesh.Scene{m})

	assert.InDelta(t, 10.0, report.BoundingBox.Min.X, 1e-9)
	assert.InDelta(t, 11.0, report.BoundingBox.Max.X, 1e-9)
	assert.InDelta(t, 10.0, report.AllEdges[0].Start.X, 1e-9)
}

func TestAnalyzeEmptyScene(t *testing.T) {
	report := AnalyzeScene(nil)

	assert.Zero(t, report.EdgeCount)
	assert.Zero(t, report.MinEdgeLength)
	assert.True(t, report.BoundingBox.IsEmpty())
}

func TestEdgeQueries(t *testing.T) {
	report := AnalyzeScene(mesh.Scene{unitSquare()})

	longest := FindLongestEdges(report, 1)
	require.Len(t, longest, 1)
	assert.InDelta(t, math.Sqrt2, longest[0].Length, 1e-9)

	shortest := FindShortestEdges(report, 10)
	assert.Len(t, shortest, 5)
	assert.InDelta(t, 1.0, shortest[0].Length, 1e-9)

	assert.Empty(t, FindLongestEdges(report, -1))
	assert.Len(t, FindEdgesByLength(report, 0.9, 1.1), 4)
	assert.Empty(t, FindEdgesByLength(report, 2, 3))
}

func TestFindNearestVertex(t *testing.T) {
	scene := mesh.Scene{unitSquare()}

	v, dist, ok := FindNearestVertex(scene, geometry.NewVector3(0.9, 1.2, 0))
	require.True(t, ok)
	assert.Equal(t, geometry.NewVector3(1, 1, 0), v)
	assert.InDelta(t, math.Hypot(0.1, 0.2), dist, 1e-9)

	_, _, ok = FindNearestVertex(nil, geometry.Vector3{})
	assert.False(t, ok)
}
