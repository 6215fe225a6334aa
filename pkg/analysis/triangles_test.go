package analysis

import (
	"testing"

	"github.com/philipparndt/gosnap/pkg/geometry"
	"github.com/philipparndt/gosnap/pkg/mesh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListTriangles(t *testing.T) {
	big := mesh.New("big", []geometry.Vector3{
		geometry.NewVector3(0, 0, 0),
		geometry.NewVector3(4, 0, 0),
		geometry.NewVector3(0, 2, 0),
	}, nil)
	scene := mesh.Scene{unitSquare(), big}

	triangles, stats := ListTriangles(scene, OrderFace)
	require.Len(t, triangles, 3)
	assert.Equal(t, "square", triangles[0].Mesh)
	assert.Equal(t, 1, triangles[1].Face)
	assert.Equal(t, 3, stats.Count)
	assert.InDelta(t, 5.0, stats.TotalArea, 1e-9)
	assert.InDelta(t, 0.5, stats.MinArea, 1e-9)
	assert.InDelta(t, 4.0, stats.MaxArea, 1e-9)
	assert.InDelta(t, 5.0/3, stats.AvgArea, 1e-9)

	largest, _ := ListTriangles(scene, OrderLargest)
	assert.Equal(t, "big", largest[0].Mesh)
	assert.InDelta(t, 6+2*2.23606797749979, largest[0].Perimeter, 1e-9)

	smallest, _ := ListTriangles(scene, OrderSmallest)
	assert.Equal(t, "square", smallest[0].Mesh)
	assert.Equal(t, 0, smallest[0].Face, "equal areas keep scene order")
}

func TestListTrianglesEmpty(t *testing.T) {
	triangles, stats := ListTriangles(nil, OrderLargest)
	assert.Empty(t, triangles)
	assert.Zero(t, stats.Count)
	assert.Zero(t, stats.AvgArea)
}
