package snap

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/gosnap/pkg/geometry"
	"github.com/philipparndt/gosnap/pkg/mesh"
)

func squareMesh() *mesh.Mesh {
	return mesh.New("square", []geometry.Vector3{
		geometry.NewVector3(0, 0, 0),
		geometry.NewVector3(1, 0, 0),
		geometry.NewVector3(1, 1, 0),
		geometry.NewVector3(0, 1, 0),
	}, []uint32{0, 1, 2, 0, 2, 3})
}

// ringMesh is an octagon of radius 1 in the XY plane, fan triangulated from
// its first vertex so that no vertex sits at the center. Vertex 0 is at 22.5°.
func ringMesh() *mesh.Mesh {
	positions := make([]geometry.Vector3, 8)
	for k := range positions {
		angle := (22.5 + 45*float64(k)) * math.Pi / 180
		positions[k] = geometry.NewVector3(math.Cos(angle), math.Sin(angle), 0)
	}
	var indices []uint32
	for k := uint32(1); k < 7; k++ {
		indices = append(indices, 0, k, k+1)
	}
	return mesh.New("ring", positions, indices)
}

func hitAt(m *mesh.Mesh, face int, p geometry.Vector3) mesh.Intersection {
	return mesh.Intersection{
		Point:  p,
		Normal: geometry.NewVector3(0, 0, 1),
		Mesh:   m,
		Face:   face,
	}
}

func TestResolveVertexBeatsFace(t *testing.T) {
	m := squareMesh()
	r := NewResolver(DefaultOptions(), nil)

	result := r.Resolve(hitAt(m, 0, geometry.NewVector3(1, 0, 0)), 0.1)

	assert.Equal(t, KindVertex, result.Kind)
	assert.True(t, result.Snapped)
	assert.Equal(t, geometry.NewVector3(1, 0, 0), result.Point)
}

func TestResolveNearVertex(t *testing.T) {
	m := squareMesh()
	r := NewResolver(DefaultOptions(), nil)

	result := r.Resolve(hitAt(m, 1, geometry.NewVector3(0.05, 0.95, 0)), 0.1)

	assert.Equal(t, KindVertex, result.Kind)
	assert.Equal(t, geometry.NewVector3(0, 1, 0), result.Point)
}

func TestResolveEdge(t *testing.T) {
	m := squareMesh()
	r := NewResolver(DefaultOptions(), nil)

	result := r.Resolve(hitAt(m, 0, geometry.NewVector3(0.5, 0.02, 0)), 0.1)

	assert.Equal(t, KindEdge, result.Kind)
	assert.True(t, result.Snapped)
	assert.InDelta(t, 0.0, result.Point.Distance(geometry.NewVector3(0.5, 0, 0)), 1e-10)
}

func TestResolveFaceFallback(t *testing.T) {
	m := squareMesh()
	r := NewResolver(DefaultOptions(), nil)
	p := geometry.NewVector3(0.3, 0.6, 0)

	result := r.Resolve(hitAt(m, 1, p), 0.1)

	assert.Equal(t, KindFace, result.Kind)
	assert.False(t, result.Snapped)
	assert.Equal(t, p, result.Point)
	assert.InDelta(t, 1.0, result.Normal.Z, 1e-10)
}

func TestResolveUsesWorldTransform(t *testing.T) {
	m := squareMesh()
	m.Transform = geometry.Translation(geometry.NewVector3(10, 0, 0))
	r := NewResolver(DefaultOptions(), nil)

	result := r.Resolve(hitAt(m, 0, geometry.NewVector3(11.02, 0.01, 0)), 0.1)

	assert.Equal(t, KindVertex, result.Kind)
	assert.Equal(t, geometry.NewVector3(11, 0, 0), result.Point)
}

func TestResolveQuadrantBias(t *testing.T) {
	m := ringMesh()
	v0 := m.Positions[0]
	q0 := geometry.NewVector3(1, 0, 0)

	// Quadrant at 1.4x the vertex distance, inside the 1.5x margin
	hit := v0.Add(q0.Sub(v0).Mul(1 / 2.4))
	dv := hit.Distance(v0)
	dq := hit.Distance(q0)
	require.InDelta(t, 1.4, dq/dv, 1e-9)

	r := NewResolver(DefaultOptions(), nil)
	result := r.Resolve(hitAt(m, 0, hit), 0.5)

	assert.Equal(t, KindQuadrant, result.Kind)
	assert.True(t, result.Snapped)
	assert.InDelta(t, 0.0, result.Point.Distance(q0), 1e-9)
}

func TestResolveVertexOutsideBiasMargin(t *testing.T) {
	m := ringMesh()
	v0 := m.Positions[0]
	q0 := geometry.NewVector3(1, 0, 0)

	// Quadrant at 2x the vertex distance
	hit := v0.Add(q0.Sub(v0).Mul(1.0 / 3))

	r := NewResolver(DefaultOptions(), nil)
	result := r.Resolve(hitAt(m, 0, hit), 0.5)

	assert.Equal(t, KindVertex, result.Kind)
	assert.Equal(t, v0, result.Point)
}

func TestResolveCircleCenter(t *testing.T) {
	m := ringMesh()
	r := NewResolver(DefaultOptions(), nil)

	result := r.Resolve(hitAt(m, 2, geometry.NewVector3(0.05, -0.05, 0)), 0.5)

	assert.Equal(t, KindCenter, result.Kind)
	assert.InDelta(t, 0.0, result.Point.Length(), 1e-9)
	assert.InDelta(t, 1.0, result.Normal.Z, 1e-9)
}

func TestDetectCircularFeatureIsCached(t *testing.T) {
	m := ringMesh()
	r := NewResolver(DefaultOptions(), nil)
	hit := hitAt(m, 0, geometry.NewVector3(0.2, 0.1, 0))

	first, ok1 := r.DetectCircularFeature(hit, 0.5)
	second, ok2 := r.DetectCircularFeature(hit, 0.5)

	require.True(t, ok1)
	require.True(t, ok2)
	assert.Equal(t, first, second)
	assert.InDelta(t, 1.0, first.Radius, 1e-9)
	assert.Equal(t, 1, r.CircleScans())

	r.Cache().Clear()
	_, _ = r.DetectCircularFeature(hit, 0.5)
	assert.Equal(t, 2, r.CircleScans())
}

func TestDetectCircularFeatureCachesMisses(t *testing.T) {
	m := squareMesh()
	r := NewResolver(DefaultOptions(), nil)
	hit := hitAt(m, 0, geometry.NewVector3(0.5, 0.5, 0))

	_, ok1 := r.DetectCircularFeature(hit, 0.1)
	_, ok2 := r.DetectCircularFeature(hit, 0.1)

	assert.False(t, ok1)
	assert.False(t, ok2)
	assert.Equal(t, 1, r.CircleScans())
}

func TestDetectCircularFeatureIgnoresOffPlaneVertices(t *testing.T) {
	m := ringMesh()
	for i := range m.Positions {
		if i%2 == 1 {
			m.Positions[i].Z = 0.2
		}
	}
	r := NewResolver(DefaultOptions(), nil)

	_, ok := r.DetectCircularFeature(hitAt(m, 0, geometry.NewVector3(0, 0, 0)), 0.5)

	assert.False(t, ok, "only four vertices are coplanar with the hit")
}

func TestResolveHitTriangleBeyondScanBudget(t *testing.T) {
	var positions []geometry.Vector3
	for i := 0; i < 50; i++ {
		x := float64(i) * 2
		positions = append(positions,
			geometry.NewVector3(x, 0, 0),
			geometry.NewVector3(x+1, 0, 0),
			geometry.NewVector3(x, 1, 0))
	}
	m := mesh.New("strip", positions, nil)

	opts := DefaultOptions()
	opts.MaxVerticesForSnap = 3
	opts.MaxEdgeTriangles = 1
	r := NewResolver(opts, nil)

	vertex := r.Resolve(hitAt(m, 49, geometry.NewVector3(98.01, 0.01, 0)), 0.1)
	assert.Equal(t, KindVertex, vertex.Kind)
	assert.Equal(t, geometry.NewVector3(98, 0, 0), vertex.Point)

	edge := r.Resolve(hitAt(m, 49, geometry.NewVector3(98.5, 0.02, 0)), 0.1)
	assert.Equal(t, KindEdge, edge.Kind)
}

func TestResolveInvalidMeshPanics(t *testing.T) {
	m := mesh.New("bad", make([]geometry.Vector3, 3), []uint32{0, 1, 7})
	r := NewResolver(DefaultOptions(), nil)

	assert.PanicsWithError(t, "mesh index out of range: index 7 in face 0, 3 vertices", func() {
		r.Resolve(hitAt(m, 0, geometry.Vector3{}), 0.1)
	})
}

func TestResolveDefaultTolerance(t *testing.T) {
	m := squareMesh()
	opts := DefaultOptions()
	opts.Tolerance = 0.3
	r := NewResolver(opts, nil)

	result := r.Resolve(hitAt(m, 0, geometry.NewVector3(0.2, 0.1, 0)), 0)

	assert.Equal(t, KindVertex, result.Kind)
	assert.Equal(t, geometry.Vector3{}, result.Point)
}

func TestNewResolverSharesCache(t *testing.T) {
	cache := NewCache(4, DefaultOptions().CacheTTL())
	a := NewResolver(DefaultOptions(), cache)
	b := NewResolver(DefaultOptions(), cache)
	hit := hitAt(ringMesh(), 0, geometry.NewVector3(0.2, 0.1, 0))

	a.DetectCircularFeature(hit, 0.5)
	b.DetectCircularFeature(hit, 0.5)

	assert.Equal(t, 1, a.CircleScans())
	assert.Equal(t, 0, b.CircleScans())
	assert.Equal(t, 1, cache.Len())
}

func TestOptionsWithDefaults(t *testing.T) {
	opts := Options{Tolerance: 0.5}.WithDefaults()

	assert.Equal(t, 0.5, opts.Tolerance)
	assert.Equal(t, DefaultMaxVerticesForSnap, opts.MaxVerticesForSnap)
	assert.Equal(t, geometry.DefaultMinCirclePoints, opts.MinCirclePoints)
	assert.Equal(t, DefaultOptions().CacheTTL(), opts.CacheTTL())
}
