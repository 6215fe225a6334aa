package snapshot

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/philipparndt/gosnap/pkg/camera"
	"github.com/philipparndt/gosnap/pkg/geometry"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// vertex is a point in pixel space with its view depth
type vertex struct {
	x, y, z float64
}

// raster is an RGBA image with a depth buffer
type raster struct {
	img     *image.RGBA
	zbuffer []float64
	width   int
	height  int
}

func newRaster(width, height int, background color.RGBA) *raster {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)

	zbuffer := make([]float64, width*height)
	for i := range zbuffer {
		zbuffer[i] = math.Inf(1)
	}
	return &raster{img: img, zbuffer: zbuffer, width: width, height: height}
}

// toScreen maps a world point to pixel space. Points closer than the near
// plane are rejected.
func (r *raster) toScreen(proj *camera.Projector, p geometry.Vector3) (vertex, bool) {
	depth := proj.Depth(p)
	if depth < camera.Near {
		return vertex{}, false
	}
	uv, err := proj.Project(p)
	if err != nil {
		return vertex{}, false
	}
	x, y := uv.Pixel(r.width, r.height)
	return vertex{x: x, y: y, z: depth}, true
}

// fillTriangle fills a triangle with depth testing using a scanline algorithm
func (r *raster) fillTriangle(a, b, c vertex, col color.RGBA) {
	// Sort vertices by y (top to bottom)
	if a.y > b.y {
		a, b = b, a
	}
	if b.y > c.y {
		b, c = c, b
	}
	if a.y > b.y {
		a, b = b, a
	}
	// a-c spans every scanline of the triangle
	edges := [3][2]vertex{{a, c}, {a, b}, {b, c}}

	yStart := int(math.Max(0, math.Ceil(a.y)))
	yEnd := int(math.Min(float64(r.height-1), c.y))
	for y := yStart; y <= yEnd; y++ {
		fy := float64(y)

		var xs, zs [2]float64
		found := 0
		for _, e := range edges {
			p, q := e[0], e[1]
			if p.y == q.y || fy < p.y || fy > q.y || found == 2 {
				continue
			}
			t := (fy - p.y) / (q.y - p.y)
			xs[found] = p.x + t*(q.x-p.x)
			zs[found] = p.z + t*(q.z-p.z)
			found++
		}
		if found < 2 {
			continue
		}
		if xs[0] > xs[1] {
			xs[0], xs[1] = xs[1], xs[0]
			zs[0], zs[1] = zs[1], zs[0]
		}

		xFrom := int(math.Max(0, math.Ceil(xs[0])))
		xTo := int(math.Min(float64(r.width-1), xs[1]))
		for x := xFrom; x <= xTo; x++ {
			t := 0.0
			if xs[1] != xs[0] {
				t = (float64(x) - xs[0]) / (xs[1] - xs[0])
			}
			z := zs[0] + t*(zs[1]-zs[0])

			// Closer (smaller z) wins
			idx := y*r.width + x
			if z < r.zbuffer[idx] {
				r.zbuffer[idx] = z
				r.img.SetRGBA(x, y, col)
			}
		}
	}
}

// line draws an overlay line using Bresenham's algorithm, ignoring depth
func (r *raster) line(x1, y1, x2, y2 int, col color.RGBA) {
	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx, sy := -1, -1
	if x1 < x2 {
		sx = 1
	}
	if y1 < y2 {
		sy = 1
	}

	err := dx - dy
	for {
		r.set(x1, y1, col)
		if x1 == x2 && y1 == y2 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// disc draws a filled circle with a one pixel outline
func (r *raster) disc(cx, cy, radius int, fill, outline color.RGBA) {
	outer := radius * radius
	inner := (radius - 1) * (radius - 1)
	for y := -radius; y <= radius; y++ {
		for x := -radius; x <= radius; x++ {
			d := x*x + y*y
			switch {
			case d <= inner:
				r.set(cx+x, cy+y, fill)
			case d <= outer:
				r.set(cx+x, cy+y, outline)
			}
		}
	}
}

// label draws text with its baseline at (x, y) on a dark backing box
func (r *raster) label(x, y int, text string, col color.RGBA) {
	face := basicfont.Face7x13
	width := font.MeasureString(face, text).Ceil()
	metrics := face.Metrics()
	box := image.Rect(x-2, y-metrics.Ascent.Ceil()-1, x+width+2, y+metrics.Descent.Ceil()+1)
	draw.Draw(r.img, box.Intersect(r.img.Bounds()), image.NewUniform(color.RGBA{0, 0, 0, 180}), image.Point{}, draw.Over)

	d := &font.Drawer{
		Dst:  r.img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

func (r *raster) set(x, y int, col color.RGBA) {
	if x >= 0 && x < r.width && y >= 0 && y < r.height {
		r.img.SetRGBA(x, y, col)
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
