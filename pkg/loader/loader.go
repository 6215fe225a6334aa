// Package loader opens model files by extension.
package loader

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/philipparndt/gosnap/pkg/gltf"
	"github.com/philipparndt/gosnap/pkg/mesh"
	"github.com/philipparndt/gosnap/pkg/openscad"
	"github.com/philipparndt/gosnap/pkg/stl"
)

// ErrUnsupportedFormat reports a file extension no loader handles
var ErrUnsupportedFormat = errors.New("unsupported file type")

// Format is a supported model file type
type Format string

// Supported formats
const (
	FormatSTL      Format = "stl"
	FormatGLTF     Format = "gltf"
	FormatOpenSCAD Format = "scad"
)

// Model is a loaded scene together with the files it was built from
type Model struct {
	Source string
	Format Format
	Scene  mesh.Scene
	Files  []string // Source plus its dependencies, for watching
}

// Extensions lists the model file extensions Load accepts, without the dot
func Extensions() []string {
	return []string{"stl", "gltf", "glb", "scad"}
}

// DetectFormat maps a file extension to a format
func DetectFormat(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".stl":
		return FormatSTL, nil
	case ".gltf", ".glb":
		return FormatGLTF, nil
	case ".scad":
		return FormatOpenSCAD, nil
	default:
		return "", fmt.Errorf("%w: %q (expected .stl, .gltf, .glb or .scad)", ErrUnsupportedFormat, ext)
	}
}

// Load reads a model file. OpenSCAD sources are rendered to a temporary STL first.
func Load(ctx context.Context, path string) (*Model, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	model := &Model{Source: abs, Format: format, Files: []string{abs}}

	switch format {
	case FormatSTL:
		m, err := stl.Parse(abs)
		if err != nil {
			return nil, fmt.Errorf("failed to parse STL file: %w", err)
		}
		model.Scene = mesh.Scene{m}

	case FormatGLTF:
		scene, err := gltf.Load(abs)
		if err != nil {
			return nil, fmt.Errorf("failed to load glTF file: %w", err)
		}
		model.Scene = scene

	case FormatOpenSCAD:
		renderer := openscad.NewRenderer(filepath.Dir(abs))
		if deps, err := renderer.ResolveDependencies(abs); err == nil {
			model.Files = deps
		}

		tmp, err := renderer.RenderTemp(ctx, abs)
		if err != nil {
			return nil, fmt.Errorf("failed to render OpenSCAD file: %w", err)
		}
		defer os.Remove(tmp)

		m, err := stl.Parse(tmp)
		if err != nil {
			return nil, fmt.Errorf("failed to parse rendered STL: %w", err)
		}
		m.Name = strings.TrimSuffix(filepath.Base(abs), filepath.Ext(abs))
		model.Scene = mesh.Scene{m}
	}

	for _, m := range model.Scene {
		if err := m.Validate(); err != nil {
			return nil, fmt.Errorf("invalid mesh %q: %w", m.Name, err)
		}
	}
	return model, nil
}
