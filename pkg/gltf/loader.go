// Package gltf loads glTF and GLB scenes into indexed meshes.
package gltf

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/qmuntal/gltf"

	"github.com/philipparndt/gosnap/pkg/geometry"
	"github.com/philipparndt/gosnap/pkg/mesh"
)

// ErrNoGeometry reports a document without triangle primitives
var ErrNoGeometry = errors.New("gltf document has no triangle geometry")

// Load opens a .gltf or .glb file and returns one mesh per triangle
// primitive instance, each carrying its node's world transform
func Load(path string) (mesh.Scene, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}

	scene, err := FromDocument(doc)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", filepath.Base(path), err)
	}
	return scene, nil
}

// FromDocument converts a decoded document. Meshes referenced by the default
// scene's node tree are instanced with their node transforms; a document
// without nodes yields every mesh untransformed.
func FromDocument(doc *gltf.Document) (mesh.Scene, error) {
	l := &loader{doc: doc, cache: make(map[int][]*mesh.Mesh)}

	roots := l.rootNodes()
	if len(roots) == 0 {
		for i := range doc.Meshes {
			meshes, err := l.mesh(i)
			if err != nil {
				return nil, err
			}
			l.scene = append(l.scene, meshes...)
		}
	}
	for _, root := range roots {
		if err := l.visit(root, geometry.Identity(), 0); err != nil {
			return nil, err
		}
	}

	if len(l.scene) == 0 {
		return nil, ErrNoGeometry
	}
	return l.scene, nil
}

type loader struct {
	doc   *gltf.Document
	cache map[int][]*mesh.Mesh
	scene mesh.Scene
}

// maxDepth guards against cyclic node graphs
const maxDepth = 64

func (l *loader) rootNodes() []int {
	if len(l.doc.Scenes) == 0 {
		return nil
	}
	sceneIdx := 0
	if l.doc.Scene != nil && *l.doc.Scene < len(l.doc.Scenes) {
		sceneIdx = *l.doc.Scene
	}
	return l.doc.Scenes[sceneIdx].Nodes
}

func (l *loader) visit(nodeIdx int, parent geometry.Transform, depth int) error {
	if depth > maxDepth {
		return fmt.Errorf("node hierarchy deeper than %d", maxDepth)
	}
	if nodeIdx < 0 || nodeIdx >= len(l.doc.Nodes) {
		return fmt.Errorf("node %d out of range", nodeIdx)
	}
	node := l.doc.Nodes[nodeIdx]
	world := nodeTransform(node).Then(parent)

	if node.Mesh != nil {
		meshes, err := l.mesh(*node.Mesh)
		if err != nil {
			return err
		}
		for _, src := range meshes {
			instance := *src
			instance.Transform = world
			if node.Name != "" {
				instance.Name = node.Name + "/" + src.Name
			}
			l.scene = append(l.scene, &instance)
		}
	}

	for _, child := range node.Children {
		if err := l.visit(child, world, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// nodeTransform returns the local transform. A set matrix wins over TRS.
func nodeTransform(node *gltf.Node) geometry.Transform {
	if m := mgl64.Mat4(node.Matrix); m != (mgl64.Mat4{}) && !m.ApproxEqual(mgl64.Ident4()) {
		return geometry.NewTransform(m)
	}

	t := node.Translation
	r := node.Rotation
	s := node.Scale

	rotation := mgl64.QuatIdent()
	if r != ([4]float64{}) {
		rotation = mgl64.Quat{W: r[3], V: mgl64.Vec3{r[0], r[1], r[2]}}
	}
	scale := geometry.NewVector3(1, 1, 1)
	if s != ([3]float64{}) {
		scale = geometry.NewVector3(s[0], s[1], s[2])
	}

	tr := geometry.FromTRS(geometry.NewVector3(t[0], t[1], t[2]), rotation, scale)
	if tr.IsIdentity() {
		return geometry.Identity()
	}
	return tr
}

// mesh converts the triangle primitives of a document mesh
func (l *loader) mesh(meshIdx int) ([]*mesh.Mesh, error) {
	if cached, ok := l.cache[meshIdx]; ok {
		return cached, nil
	}
	if meshIdx < 0 || meshIdx >= len(l.doc.Meshes) {
		return nil, fmt.Errorf("mesh %d out of range", meshIdx)
	}
	m := l.doc.Meshes[meshIdx]

	var out []*mesh.Mesh
	for p, prim := range m.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
			continue
		}
		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}

		positions, err := l.readVec3(posIdx)
		if err != nil {
			return nil, fmt.Errorf("mesh %q primitive %d: read positions: %w", m.Name, p, err)
		}

		var indices []uint32
		if prim.Indices != nil {
			indices, err = l.readIndices(*prim.Indices)
			if err != nil {
				return nil, fmt.Errorf("mesh %q primitive %d: read indices: %w", m.Name, p, err)
			}
		}

		name := m.Name
		if len(m.Primitives) > 1 {
			name = fmt.Sprintf("%s#%d", m.Name, p)
		}
		out = append(out, mesh.New(name, positions, indices))
	}

	for _, pm := range out {
		if err := pm.Validate(); err != nil {
			return nil, fmt.Errorf("mesh %q: %w", pm.Name, err)
		}
	}

	l.cache[meshIdx] = out
	return out, nil
}

// view returns the bytes of an accessor's buffer view starting at the accessor offset
func (l *loader) view(accessor *gltf.Accessor) ([]byte, int, error) {
	if accessor.BufferView == nil {
		return nil, 0, fmt.Errorf("accessor has no buffer view")
	}
	if *accessor.BufferView >= len(l.doc.BufferViews) {
		return nil, 0, fmt.Errorf("buffer view %d out of range", *accessor.BufferView)
	}
	bufferView := l.doc.BufferViews[*accessor.BufferView]
	if bufferView.Buffer >= len(l.doc.Buffers) {
		return nil, 0, fmt.Errorf("buffer %d out of range", bufferView.Buffer)
	}
	data := l.doc.Buffers[bufferView.Buffer].Data
	if data == nil {
		return nil, 0, fmt.Errorf("buffer has no data")
	}

	start := bufferView.ByteOffset + accessor.ByteOffset
	if start > len(data) {
		return nil, 0, fmt.Errorf("accessor offset %d beyond buffer of %d bytes", start, len(data))
	}
	return data[start:], bufferView.ByteStride, nil
}

func (l *loader) accessor(idx int) (*gltf.Accessor, error) {
	if idx < 0 || idx >= len(l.doc.Accessors) {
		return nil, fmt.Errorf("accessor %d out of range", idx)
	}
	return l.doc.Accessors[idx], nil
}

func (l *loader) readVec3(idx int) ([]geometry.Vector3, error) {
	accessor, err := l.accessor(idx)
	if err != nil {
		return nil, err
	}
	if accessor.Type != gltf.AccessorVec3 || accessor.ComponentType != gltf.ComponentFloat {
		return nil, fmt.Errorf("expected float VEC3, got %v / %v", accessor.Type, accessor.ComponentType)
	}

	data, stride, err := l.view(accessor)
	if err != nil {
		return nil, err
	}
	if stride == 0 {
		stride = 12
	}
	if accessor.Count > 0 && (accessor.Count-1)*stride+12 > len(data) {
		return nil, fmt.Errorf("accessor needs %d vec3 values, buffer too short", accessor.Count)
	}

	result := make([]geometry.Vector3, accessor.Count)
	for i := 0; i < accessor.Count; i++ {
		b := data[i*stride:]
		result[i] = geometry.NewVector3(readFloat(b), readFloat(b[4:]), readFloat(b[8:]))
	}
	return result, nil
}

func (l *loader) readIndices(idx int) ([]uint32, error) {
	accessor, err := l.accessor(idx)
	if err != nil {
		return nil, err
	}
	if accessor.Type != gltf.AccessorScalar {
		return nil, fmt.Errorf("expected SCALAR indices, got %v", accessor.Type)
	}

	data, stride, err := l.view(accessor)
	if err != nil {
		return nil, err
	}

	var size int
	switch accessor.ComponentType {
	case gltf.ComponentUbyte:
		size = 1
	case gltf.ComponentUshort:
		size = 2
	case gltf.ComponentUint:
		size = 4
	default:
		return nil, fmt.Errorf("unsupported index component type %v", accessor.ComponentType)
	}
	if stride == 0 {
		stride = size
	}
	if accessor.Count > 0 && (accessor.Count-1)*stride+size > len(data) {
		return nil, fmt.Errorf("accessor needs %d indices, buffer too short", accessor.Count)
	}

	result := make([]uint32, accessor.Count)
	for i := 0; i < accessor.Count; i++ {
		b := data[i*stride:]
		switch size {
		case 1:
			result[i] = uint32(b[0])
		case 2:
			result[i] = uint32(binary.LittleEndian.Uint16(b))
		case 4:
			result[i] = binary.LittleEndian.Uint32(b)
		}
	}
	return result, nil
}

func readFloat(b []byte) float64 {
	return float64(math.Float32frombits(binary.LittleEndian.Uint32(b)))
}
