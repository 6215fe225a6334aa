package stl

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/gosnap/pkg/geometry"
	"github.com/philipparndt/gosnap/pkg/mesh"
)

const asciiCube = `solid corner
  facet normal 0 0 1
    outer loop
      vertex 0 0 0
      vertex 1 0 0
      vertex 0 1 0
    endloop
  endfacet
  facet normal 0 0 1
    outer loop
      vertex 1 0 0
      vertex 1 1 0
      vertex 0 1 0
    endloop
  endfacet
endsolid corner
`

func TestParseASCII(t *testing.T) {
	m, err := ParseBytes([]byte(asciiCube))

	require.NoError(t, err)
	assert.Equal(t, "corner", m.Name)
	assert.Equal(t, 2, m.TriangleCount())
	assert.False(t, m.Indexed())
	assert.Equal(t, geometry.NewVector3(1, 1, 0), m.Positions[4])
	assert.NoError(t, m.Validate())
}

func TestParseASCIIInvalidVertex(t *testing.T) {
	_, err := ParseBytes([]byte("solid x\nfacet normal 0 0 1\nouter loop\nvertex 0 zero 0\n"))

	assert.ErrorContains(t, err, "line 4")
}

func TestParseBinary(t *testing.T) {
	src := mesh.New("binary part", []geometry.Vector3{
		geometry.NewVector3(0, 0, 0),
		geometry.NewVector3(2, 0, 0),
		geometry.NewVector3(0, 2, 0),
	}, nil)

	var buf bytes.Buffer
	require.NoError(t, WriteBinary(&buf, src))
	assert.Equal(t, 84+50, buf.Len())

	m, err := ParseBytes(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "binary part", m.Name)
	assert.Equal(t, src.Positions, m.Positions)
}

func TestParseBinaryWithSolidHeader(t *testing.T) {
	src := mesh.New("solid lies", make([]geometry.Vector3, 3), nil)

	var buf bytes.Buffer
	require.NoError(t, WriteBinary(&buf, src))

	m, err := ParseBytes(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, 1, m.TriangleCount())
}

func TestParseBinaryTruncated(t *testing.T) {
	data := make([]byte, 84+20)
	data[80] = 1

	_, err := ParseBytes(data)
	assert.ErrorContains(t, err, "failed to read triangle 0")
}

func TestParseFileNamesUnnamedModel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bracket.stl")
	var buf bytes.Buffer
	require.NoError(t, WriteBinary(&buf, mesh.New("", make([]geometry.Vector3, 3), nil)))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	m, err := Parse(path)
	require.NoError(t, err)
	assert.Equal(t, "bracket", m.Name)

	_, err = Parse(filepath.Join(t.TempDir(), "missing.stl"))
	assert.ErrorContains(t, err, "failed to open file")
}
