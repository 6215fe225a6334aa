package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/gosnap/pkg/geometry"
)

func unitSquare() *Mesh {
	return New("square", []geometry.Vector3{
		geometry.NewVector3(0, 0, 0),
		geometry.NewVector3(1, 0, 0),
		geometry.NewVector3(1, 1, 0),
		geometry.NewVector3(0, 1, 0),
	}, []uint32{0, 1, 2, 0, 2, 3})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mesh    *Mesh
		wantErr error
	}{
		{"indexed", unitSquare(), nil},
		{"implicit", New("tri", make([]geometry.Vector3, 6), nil), nil},
		{"index out of range", New("bad", make([]geometry.Vector3, 3), []uint32{0, 1, 3}), ErrIndexOutOfRange},
		{"partial index list", New("bad", make([]geometry.Vector3, 3), []uint32{0, 1}), ErrIncompleteTriangle},
		{"partial implicit", New("bad", make([]geometry.Vector3, 4), nil), ErrIncompleteTriangle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.mesh.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestTriangleCount(t *testing.T) {
	assert.Equal(t, 2, unitSquare().TriangleCount())
	assert.Equal(t, 3, New("implicit", make([]geometry.Vector3, 9), nil).TriangleCount())
}

func TestFromTriangles(t *testing.T) {
	tri := geometry.NewTriangle(geometry.Vector3{},
		geometry.NewVector3(0, 0, 0),
		geometry.NewVector3(1, 0, 0),
		geometry.NewVector3(0, 1, 0))

	m := FromTriangles("t", []geometry.Triangle{tri, tri})

	assert.False(t, m.Indexed())
	assert.Equal(t, 2, m.TriangleCount())
	a, b, c := m.TriangleIndices(1)
	assert.Equal(t, []int{3, 4, 5}, []int{a, b, c})
}

func TestWorldTransform(t *testing.T) {
	m := unitSquare()
	m.Transform = geometry.Translation(geometry.NewVector3(0, 0, 2))

	assert.Equal(t, geometry.NewVector3(1, 1, 2), m.WorldVertex(2))

	bbox := m.BoundingBox()
	assert.Equal(t, geometry.NewVector3(0, 0, 2), bbox.Min)
	assert.Equal(t, geometry.NewVector3(1, 1, 2), bbox.Max)
	assert.InDelta(t, 1.0, m.SurfaceArea(), 1e-10)
}

func TestRaycast(t *testing.T) {
	m := unitSquare()
	m.Transform = geometry.Translation(geometry.NewVector3(0, 0, 2))

	hit, ok := m.Raycast(geometry.NewRay(geometry.NewVector3(0.8, 0.2, 10), geometry.NewVector3(0, 0, -1)))
	require.True(t, ok)
	assert.Same(t, m, hit.Mesh)
	assert.Equal(t, 0, hit.Face)
	assert.InDelta(t, 2.0, hit.Point.Z, 1e-10)
	assert.InDelta(t, 1.0, hit.Normal.Z, 1e-10)

	_, ok = m.Raycast(geometry.NewRay(geometry.NewVector3(5, 5, 10), geometry.NewVector3(0, 0, -1)))
	assert.False(t, ok)
}

func TestSceneRaycastPicksClosest(t *testing.T) {
	near := unitSquare()
	near.Transform = geometry.Translation(geometry.NewVector3(0, 0, 1))
	far := unitSquare()

	scene := Scene{far, near}
	hit, ok := scene.Raycast(geometry.NewRay(geometry.NewVector3(0.5, 0.5, 5), geometry.NewVector3(0, 0, -1)))

	require.True(t, ok)
	assert.Same(t, near, hit.Mesh)
	assert.Equal(t, 4, scene.TriangleCount())
}
