// Package mesh holds the read-only triangle meshes the snapping core consumes.
package mesh

import (
	"errors"
	"fmt"

	"github.com/philipparndt/gosnap/pkg/geometry"
)

// ErrIndexOutOfRange reports an index list entry that does not address a vertex
var ErrIndexOutOfRange = errors.New("mesh index out of range")

// ErrIncompleteTriangle reports an index or vertex count that is not a multiple of three
var ErrIncompleteTriangle = errors.New("mesh triangle list is incomplete")

// Mesh is a triangle mesh in object space with an object-to-world transform.
// A nil Indices slice means vertices form consecutive triples.
type Mesh struct {
	Name      string
	Positions []geometry.Vector3
	Indices   []uint32
	Transform geometry.Transform
}

// New creates a mesh from positions and an optional index list
func New(name string, positions []geometry.Vector3, indices []uint32) *Mesh {
	return &Mesh{
		Name:      name,
		Positions: positions,
		Indices:   indices,
	}
}

// FromTriangles builds an unindexed mesh from facets
func FromTriangles(name string, triangles []geometry.Triangle) *Mesh {
	positions := make([]geometry.Vector3, 0, len(triangles)*3)
	for _, tri := range triangles {
		positions = append(positions, tri.V1, tri.V2, tri.V3)
	}
	return New(name, positions, nil)
}

// Indexed reports whether the mesh carries an index list
func (m *Mesh) Indexed() bool {
	return m.Indices != nil
}

// VertexCount returns the number of vertex positions
func (m *Mesh) VertexCount() int {
	return len(m.Positions)
}

// TriangleCount returns the number of triangles
func (m *Mesh) TriangleCount() int {
	if m.Indexed() {
		return len(m.Indices) / 3
	}
	return len(m.Positions) / 3
}

// Validate checks that every index addresses a vertex
func (m *Mesh) Validate() error {
	if m.Indexed() {
		if len(m.Indices)%3 != 0 {
			return fmt.Errorf("%w: %d indices", ErrIncompleteTriangle, len(m.Indices))
		}
		for i, idx := range m.Indices {
			if int(idx) >= len(m.Positions) {
				return fmt.Errorf("%w: index %d at position %d, %d vertices", ErrIndexOutOfRange, idx, i, len(m.Positions))
			}
		}
		return nil
	}
	if len(m.Positions)%3 != 0 {
		return fmt.Errorf("%w: %d vertices", ErrIncompleteTriangle, len(m.Positions))
	}
	return nil
}

// TriangleIndices returns the vertex indices of a face
func (m *Mesh) TriangleIndices(face int) (int, int, int) {
	if m.Indexed() {
		base := face * 3
		return int(m.Indices[base]), int(m.Indices[base+1]), int(m.Indices[base+2])
	}
	base := face * 3
	return base, base + 1, base + 2
}

// CheckedTriangleIndices returns the vertex indices of a face, or an error
// wrapping ErrIndexOutOfRange when the face or one of its indices is invalid
func (m *Mesh) CheckedTriangleIndices(face int) (int, int, int, error) {
	if face < 0 || face >= m.TriangleCount() {
		return 0, 0, 0, fmt.Errorf("%w: face %d of %d", ErrIndexOutOfRange, face, m.TriangleCount())
	}
	a, b, c := m.TriangleIndices(face)
	for _, idx := range [3]int{a, b, c} {
		if idx >= len(m.Positions) {
			return 0, 0, 0, fmt.Errorf("%w: index %d in face %d, %d vertices", ErrIndexOutOfRange, idx, face, len(m.Positions))
		}
	}
	return a, b, c, nil
}

// Triangle returns a face in object space with its computed normal
func (m *Mesh) Triangle(face int) geometry.Triangle {
	a, b, c := m.TriangleIndices(face)
	tri := geometry.NewTriangle(geometry.Vector3{}, m.Positions[a], m.Positions[b], m.Positions[c])
	tri.Normal = tri.CalculateNormal()
	return tri
}

// WorldTriangle returns a face in world space with a world-space normal
func (m *Mesh) WorldTriangle(face int) geometry.Triangle {
	a, b, c := m.TriangleIndices(face)
	tri := geometry.NewTriangle(
		geometry.Vector3{},
		m.Transform.Apply(m.Positions[a]),
		m.Transform.Apply(m.Positions[b]),
		m.Transform.Apply(m.Positions[c]),
	)
	tri.Normal = tri.CalculateNormal()
	return tri
}

// WorldVertex returns a vertex position in world space
func (m *Mesh) WorldVertex(i int) geometry.Vector3 {
	return m.Transform.Apply(m.Positions[i])
}

// BoundingBox returns the world-space bounds
func (m *Mesh) BoundingBox() geometry.BoundingBox {
	bbox := geometry.NewBoundingBox()
	for i := range m.Positions {
		bbox.Extend(m.WorldVertex(i))
	}
	return bbox
}

// SurfaceArea returns the total world-space area
func (m *Mesh) SurfaceArea() float64 {
	total := 0.0
	for face := 0; face < m.TriangleCount(); face++ {
		total += m.WorldTriangle(face).Area()
	}
	return total
}
