// Package stl reads ASCII and binary STL files into meshes.
package stl

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/philipparndt/gosnap/pkg/geometry"
	"github.com/philipparndt/gosnap/pkg/mesh"
)

const (
	headerSize   = 80
	facetSize    = 50
	maxTriangles = 1 << 26
)

// Parse reads an STL file and returns an unindexed mesh.
// It detects whether the file is ASCII or binary.
func Parse(filename string) (*mesh.Mesh, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	m, err := ParseBytes(data)
	if err != nil {
		return nil, err
	}
	if m.Name == "" {
		m.Name = strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	}
	return m, nil
}

// ParseBytes decodes STL data held in memory
func ParseBytes(data []byte) (*mesh.Mesh, error) {
	var (
		name      string
		triangles []geometry.Triangle
		err       error
	)

	if isASCII(data) {
		name, triangles, err = parseASCII(bytes.NewReader(data))
	} else {
		name, triangles, err = parseBinary(bytes.NewReader(data))
	}
	if err != nil {
		return nil, err
	}

	return mesh.FromTriangles(name, triangles), nil
}

// isASCII checks the "solid" keyword. Binary exporters sometimes write
// "solid" into the header too, so a size that matches the binary layout wins.
func isASCII(data []byte) bool {
	if !bytes.HasPrefix(data, []byte("solid")) {
		return false
	}
	if len(data) >= headerSize+4 {
		count := binary.LittleEndian.Uint32(data[headerSize : headerSize+4])
		if uint64(len(data)) == uint64(headerSize+4)+uint64(count)*facetSize {
			return false
		}
	}
	return true
}

func parseASCII(reader io.Reader) (string, []geometry.Triangle, error) {
	scanner := bufio.NewScanner(reader)
	var (
		name          string
		triangles     []geometry.Triangle
		currentNormal geometry.Vector3
		vertices      []geometry.Vector3
	)

	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "solid":
			if len(fields) > 1 {
				name = strings.Join(fields[1:], " ")
			}

		case "facet":
			if len(fields) >= 5 && fields[1] == "normal" {
				v, err := parseVector(fields[2:5])
				if err != nil {
					return "", nil, fmt.Errorf("invalid normal on line %d: %w", line, err)
				}
				currentNormal = v
			}

		case "vertex":
			if len(fields) < 4 {
				return "", nil, fmt.Errorf("incomplete vertex on line %d", line)
			}
			v, err := parseVector(fields[1:4])
			if err != nil {
				return "", nil, fmt.Errorf("invalid vertex on line %d: %w", line, err)
			}
			vertices = append(vertices, v)

		case "endfacet":
			if len(vertices) == 3 {
				triangles = append(triangles, geometry.NewTriangle(currentNormal, vertices[0], vertices[1], vertices[2]))
			}
			vertices = vertices[:0]
			currentNormal = geometry.Vector3{}
		}
	}

	if err := scanner.Err(); err != nil {
		return "", nil, fmt.Errorf("error reading ASCII STL: %w", err)
	}

	return name, triangles, nil
}

func parseVector(fields []string) (geometry.Vector3, error) {
	var c [3]float64
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return geometry.Vector3{}, err
		}
		c[i] = v
	}
	return geometry.NewVector3(c[0], c[1], c[2]), nil
}

type binaryFacet struct {
	Normal    [3]float32
	V1        [3]float32
	V2        [3]float32
	V3        [3]float32
	Attribute uint16
}

func parseBinary(reader io.Reader) (string, []geometry.Triangle, error) {
	header := make([]byte, headerSize)
	if _, err := io.ReadFull(reader, header); err != nil {
		return "", nil, fmt.Errorf("failed to read header: %w", err)
	}
	name := strings.TrimSpace(string(bytes.TrimRight(header, "\x00")))

	var triangleCount uint32
	if err := binary.Read(reader, binary.LittleEndian, &triangleCount); err != nil {
		return "", nil, fmt.Errorf("failed to read triangle count: %w", err)
	}
	if triangleCount > maxTriangles {
		return "", nil, fmt.Errorf("triangle count %d exceeds limit", triangleCount)
	}

	triangles := make([]geometry.Triangle, 0, triangleCount)
	for i := uint32(0); i < triangleCount; i++ {
		var f binaryFacet
		if err := binary.Read(reader, binary.LittleEndian, &f); err != nil {
			return "", nil, fmt.Errorf("failed to read triangle %d: %w", i, err)
		}
		triangles = append(triangles, geometry.NewTriangle(vec(f.Normal), vec(f.V1), vec(f.V2), vec(f.V3)))
	}

	return name, triangles, nil
}

func vec(v [3]float32) geometry.Vector3 {
	return geometry.NewVector3(float64(v[0]), float64(v[1]), float64(v[2]))
}

// WriteBinary encodes a mesh as binary STL in world space
func WriteBinary(w io.Writer, m *mesh.Mesh) error {
	header := make([]byte, headerSize)
	copy(header, m.Name)
	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(m.TriangleCount())); err != nil {
		return fmt.Errorf("failed to write triangle count: %w", err)
	}

	for face := 0; face < m.TriangleCount(); face++ {
		tri := m.WorldTriangle(face)
		f := binaryFacet{Normal: f32(tri.Normal), V1: f32(tri.V1), V2: f32(tri.V2), V3: f32(tri.V3)}
		if err := binary.Write(w, binary.LittleEndian, &f); err != nil {
			return fmt.Errorf("failed to write triangle %d: %w", face, err)
		}
	}
	return nil
}

func f32(v geometry.Vector3) [3]float32 {
	return [3]float32{float32(v.X), float32(v.Y), float32(v.Z)}
}
