package main

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/gosnap/pkg/geometry"
	"github.com/philipparndt/gosnap/pkg/mesh"
)

// lightDir is the fixed light baked into vertex colors
var lightDir = geometry.NewVector3(-0.5, -1.0, -0.5).Normalize()

// gpuMesh is an uploaded scene. The slices back the pointers handed to raylib.
type gpuMesh struct {
	mesh      rl.Mesh
	material  rl.Material
	vertices  []float32
	normals   []float32
	texcoords []float32
	colors    []uint8
	uploaded  bool
}

// uploadScene flattens every mesh of the scene into world space and uploads
// one unindexed raylib mesh with baked lighting
func uploadScene(scene mesh.Scene) *gpuMesh {
	g := &gpuMesh{}

	triangleCount := scene.TriangleCount()
	if triangleCount == 0 {
		return g
	}
	vertexCount := triangleCount * 3

	g.vertices = make([]float32, 0, vertexCount*3)
	g.normals = make([]float32, 0, vertexCount*3)
	g.texcoords = make([]float32, vertexCount*2)
	g.colors = make([]uint8, 0, vertexCount*4)

	for _, m := range scene {
		for face := 0; face < m.TriangleCount(); face++ {
			tri := m.WorldTriangle(face)
			normal := tri.CalculateNormal()

			// Min 30% ambient
			intensity := math.Max(0.3, -normal.Dot(lightDir))
			r := uint8(200 * intensity * 0.5)
			gr := uint8(200 * intensity * 0.6)
			b := uint8(200 * intensity)

			for _, v := range tri.Vertices() {
				g.vertices = append(g.vertices, float32(v.X), float32(v.Y), float32(v.Z))
				g.normals = append(g.normals, float32(normal.X), float32(normal.Y), float32(normal.Z))
				g.colors = append(g.colors, r, gr, b, 255)
			}
		}
	}

	g.mesh = rl.Mesh{
		VertexCount:   int32(vertexCount),
		TriangleCount: int32(triangleCount),
		Vertices:      &g.vertices[0],
		Normals:       &g.normals[0],
		Texcoords:     &g.texcoords[0],
		Colors:        &g.colors[0],
	}
	rl.UploadMesh(&g.mesh, false)
	g.material = rl.LoadMaterialDefault()
	g.uploaded = true
	return g
}

func (g *gpuMesh) draw() {
	if g.uploaded {
		rl.DrawMesh(g.mesh, g.material, rl.MatrixIdentity())
	}
}

func (g *gpuMesh) unload() {
	if g.uploaded {
		rl.UnloadMesh(&g.mesh)
		g.uploaded = false
	}
}

func toRaylib(v geometry.Vector3) rl.Vector3 {
	return rl.NewVector3(float32(v.X), float32(v.Y), float32(v.Z))
}
