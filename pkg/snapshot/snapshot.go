// Package snapshot renders flattened still images of a scene with snap
// markers and measurements drawn on top.
package snapshot

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/philipparndt/gosnap/pkg/camera"
	"github.com/philipparndt/gosnap/pkg/geometry"
	"github.com/philipparndt/gosnap/pkg/measurement"
	"github.com/philipparndt/gosnap/pkg/mesh"
	"github.com/philipparndt/gosnap/pkg/snap"
)

// ErrInvalidSize is returned for images without pixels
var ErrInvalidSize = errors.New("invalid image size")

const (
	markerRadius = 4
	ambient      = 0.25
)

// Marker is a snapped point to highlight
type Marker struct {
	Point geometry.Vector3
	Kind  snap.Kind
	Label string
}

// Options configures a render
type Options struct {
	Width        int
	Height       int
	Background   color.RGBA
	ModelColor   color.RGBA
	LineColor    color.RGBA
	Markers      []Marker
	Measurements []measurement.Measurement
}

// DefaultOptions returns a 1024x768 render on a dark background
func DefaultOptions() Options {
	return Options{
		Width:      1024,
		Height:     768,
		Background: color.RGBA{30, 30, 35, 255},
		ModelColor: color.RGBA{180, 190, 200, 255},
		LineColor:  color.RGBA{255, 220, 0, 255},
	}
}

// MarkerColor returns the highlight color for a snap kind
func MarkerColor(kind snap.Kind) color.RGBA {
	switch kind {
	case snap.KindVertex:
		return color.RGBA{255, 60, 60, 255}
	case snap.KindEdge:
		return color.RGBA{255, 160, 0, 255}
	case snap.KindCenter:
		return color.RGBA{0, 200, 255, 255}
	case snap.KindQuadrant:
		return color.RGBA{200, 100, 255, 255}
	default:
		return color.RGBA{60, 220, 60, 255}
	}
}

// Render draws the scene from a pose with flat shading. An aspect of 0 in the
// pose is replaced by the image aspect ratio.
func Render(scene mesh.Scene, pose camera.Pose, opts Options) (*image.RGBA, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, opts.Width, opts.Height)
	}
	if pose.Aspect == 0 {
		pose.Aspect = float64(opts.Width) / float64(opts.Height)
	}
	proj, err := camera.NewProjector(pose)
	if err != nil {
		return nil, fmt.Errorf("snapshot pose: %w", err)
	}

	r := newRaster(opts.Width, opts.Height, opts.Background)
	light := pose.Forward().Mul(-1)

	for _, m := range scene {
		for face := 0; face < m.TriangleCount(); face++ {
			tri := m.WorldTriangle(face)
			a, okA := r.toScreen(proj, tri.V1)
			b, okB := r.toScreen(proj, tri.V2)
			c, okC := r.toScreen(proj, tri.V3)
			if !okA || !okB || !okC {
				continue
			}
			r.fillTriangle(a, b, c, shade(opts.ModelColor, tri.FaceNormal(), light))
		}
	}

	for _, ms := range opts.Measurements {
		drawMeasurement(r, proj, ms, opts.LineColor)
	}
	for _, mk := range opts.Markers {
		drawMarker(r, proj, mk)
	}
	return r.img, nil
}

// shade scales a color by the Lambert term of a double-sided face
func shade(base color.RGBA, normal, light geometry.Vector3) color.RGBA {
	intensity := ambient + (1-ambient)*math.Abs(normal.Dot(light))
	scale := func(c uint8) uint8 {
		return uint8(math.Min(255, math.Round(float64(c)*intensity)))
	}
	return color.RGBA{scale(base.R), scale(base.G), scale(base.B), base.A}
}

func drawMarker(r *raster, proj *camera.Projector, mk Marker) {
	v, ok := r.toScreen(proj, mk.Point)
	if !ok {
		return
	}
	x, y := int(math.Round(v.x)), int(math.Round(v.y))
	r.disc(x, y, markerRadius, MarkerColor(mk.Kind), color.RGBA{255, 255, 255, 255})
	if mk.Label != "" {
		r.label(x+markerRadius+3, y-markerRadius-3, mk.Label, color.RGBA{255, 255, 255, 255})
	}
}

func drawMeasurement(r *raster, proj *camera.Projector, ms measurement.Measurement, col color.RGBA) {
	start, okStart := r.toScreen(proj, ms.Start)
	end, okEnd := r.toScreen(proj, ms.End)
	if !okStart || !okEnd {
		return
	}
	x1, y1 := int(math.Round(start.x)), int(math.Round(start.y))
	x2, y2 := int(math.Round(end.x)), int(math.Round(end.y))
	r.line(x1, y1, x2, y2, col)
	r.disc(x1, y1, markerRadius-1, col, col)
	r.disc(x2, y2, markerRadius-1, col, col)

	if mid, ok := r.toScreen(proj, ms.Midpoint()); ok {
		r.label(int(math.Round(mid.x))+4, int(math.Round(mid.y))-4, ms.DisplayText(), col)
	}
}
