// Package snap turns ray/mesh hits into semantic snap points.
package snap

import (
	"math"
	"sync/atomic"

	"github.com/philipparndt/gosnap/pkg/geometry"
	"github.com/philipparndt/gosnap/pkg/mesh"
)

const (
	// exactMatchSq ends the vertex scan early and merges duplicate circle candidates
	exactMatchSq = 1e-4
	// virtualBias lets a circle point win unless a vertex is this many times closer
	virtualBias = 1.5
)

// Resolver picks the snap point for a hit. Vertices beat edges, edges beat the
// raw face hit, and fitted circle centers and quadrants beat vertices unless a
// vertex is clearly closer.
type Resolver struct {
	opts  Options
	cache *Cache
	scans atomic.Int64
}

// NewResolver creates a resolver. A nil cache gets a private one sized from opts.
func NewResolver(opts Options, cache *Cache) *Resolver {
	opts = opts.WithDefaults()
	if cache == nil {
		cache = NewCache(opts.CircleCacheCapacity, opts.CacheTTL())
	}
	return &Resolver{opts: opts, cache: cache}
}

// Options returns the effective options
func (r *Resolver) Options() Options {
	return r.opts
}

// Cache returns the circle feature cache
func (r *Resolver) Cache() *Cache {
	return r.cache
}

// CircleScans returns how many uncached circle detections have run
func (r *Resolver) CircleScans() int {
	return int(r.scans.Load())
}

type candidate struct {
	point  geometry.Vector3
	distSq float64
	kind   Kind
	found  bool
}

func (c *candidate) offer(point geometry.Vector3, distSq float64, kind Kind) {
	if !c.found || distSq < c.distSq {
		c.point, c.distSq, c.kind, c.found = point, distSq, kind, true
	}
}

// Resolve returns the snap point for a hit. A tolerance <= 0 uses the
// configured one. It never fails: without a match the raw hit is returned with
// Snapped false. A mesh with invalid indices panics with mesh.ErrIndexOutOfRange.
func (r *Resolver) Resolve(hit mesh.Intersection, tolerance float64) Result {
	if tolerance <= 0 {
		tolerance = r.opts.Tolerance
	}

	m := hit.Mesh
	if m == nil {
		return Result{Point: hit.Point, Normal: hit.Normal.Normalize(), Kind: KindFace}
	}

	normal := worldNormal(hit)
	fallback := Result{Point: hit.Point, Normal: normal, Kind: KindFace}

	a, b, c, err := m.CheckedTriangleIndices(hit.Face)
	if err != nil {
		panic(err)
	}
	tolSq := tolerance * tolerance

	// Step 1: circle center and quadrants
	var virtual candidate
	if feature, ok := r.DetectCircularFeature(hit, tolerance); ok {
		virtual.offer(feature.Center, hit.Point.DistanceSquared(feature.Center), KindCenter)
		for _, q := range feature.QuadrantPoints() {
			virtual.offer(q, hit.Point.DistanceSquared(q), KindQuadrant)
		}
		if virtual.distSq > tolSq {
			virtual.found = false
		}
		if virtual.found {
			normal = feature.Normal
		}
	}

	// Step 2: nearest vertex, hit triangle first
	vertex := r.nearestVertex(m, hit.Point, [3]int{a, b, c})
	if vertex.distSq > tolSq {
		vertex.found = false
	}

	// Step 3: tie-break between circle points and vertices
	if virtual.found {
		if vertex.found && vertex.distSq*virtualBias*virtualBias < virtual.distSq {
			return Result{Point: vertex.point, Normal: fallback.Normal, Kind: KindVertex, Snapped: true}
		}
		return Result{Point: virtual.point, Normal: normal, Kind: virtual.kind, Snapped: true}
	}
	if vertex.found {
		return Result{Point: vertex.point, Normal: fallback.Normal, Kind: KindVertex, Snapped: true}
	}

	// Step 4: nearest edge point
	edge := r.nearestEdge(m, hit.Point, hit.Face)
	if edge.found && edge.distSq <= tolSq {
		return Result{Point: edge.point, Normal: fallback.Normal, Kind: KindEdge, Snapped: true}
	}

	return fallback
}

// nearestVertex scans the hit triangle and then up to MaxVerticesForSnap vertices
func (r *Resolver) nearestVertex(m *mesh.Mesh, p geometry.Vector3, hitTriangle [3]int) candidate {
	var best candidate
	for _, idx := range hitTriangle {
		v := m.WorldVertex(idx)
		best.offer(v, p.DistanceSquared(v), KindVertex)
	}
	if best.distSq < exactMatchSq {
		return best
	}

	limit := min(m.VertexCount(), r.opts.MaxVerticesForSnap)
	for i := 0; i < limit; i++ {
		v := m.WorldVertex(i)
		best.offer(v, p.DistanceSquared(v), KindVertex)
		if best.distSq < exactMatchSq {
			break
		}
	}
	return best
}

// nearestEdge scans the hit triangle and then up to MaxEdgeTriangles triangles
func (r *Resolver) nearestEdge(m *mesh.Mesh, p geometry.Vector3, hitFace int) candidate {
	var best candidate
	scanFace := func(face int) {
		a, b, c, err := m.CheckedTriangleIndices(face)
		if err != nil {
			panic(err)
		}
		va, vb, vc := m.WorldVertex(a), m.WorldVertex(b), m.WorldVertex(c)
		for _, e := range [3][2]geometry.Vector3{{va, vb}, {vb, vc}, {vc, va}} {
			q := geometry.ClosestPointOnSegment(p, e[0], e[1])
			best.offer(q, p.DistanceSquared(q), KindEdge)
		}
	}

	scanFace(hitFace)
	limit := min(m.TriangleCount(), r.opts.MaxEdgeTriangles)
	for face := 0; face < limit; face++ {
		scanFace(face)
	}
	return best
}

// DetectCircularFeature fits a circle to the vertices around the hit that lie
// in the hit face's plane. Results, including failures, are cached per face.
func (r *Resolver) DetectCircularFeature(hit mesh.Intersection, tolerance float64) (geometry.CircleFeature, bool) {
	if hit.Mesh == nil {
		return geometry.CircleFeature{}, false
	}
	if tolerance <= 0 {
		tolerance = r.opts.Tolerance
	}

	key := CacheKey{Mesh: hit.Mesh, Face: hit.Face}
	if cached, ok := r.cache.Get(key); ok {
		if cached == nil {
			return geometry.CircleFeature{}, false
		}
		return *cached, true
	}

	r.scans.Add(1)
	feature, ok := r.scanCircle(hit, tolerance)
	if ok {
		r.cache.Put(key, &feature)
	} else {
		r.cache.Put(key, nil)
	}
	return feature, ok
}

func (r *Resolver) scanCircle(hit mesh.Intersection, tolerance float64) (geometry.CircleFeature, bool) {
	m := hit.Mesh
	normal := worldNormal(hit)
	if normal.IsZero() {
		return geometry.CircleFeature{}, false
	}

	radius := tolerance * r.opts.MaxSearchRadiusMultiplier
	radiusSq := radius * radius

	candidates := make([]geometry.Vector3, 0, 64)
	limit := min(m.VertexCount(), r.opts.MaxCircleVertices)
	for i := 0; i < limit; i++ {
		v := m.WorldVertex(i)
		if hit.Point.DistanceSquared(v) > radiusSq {
			continue
		}
		if math.Abs(v.Sub(hit.Point).Dot(normal)) > r.opts.CoplanarTolerance {
			continue
		}
		if containsNear(candidates, v) {
			continue
		}
		candidates = append(candidates, v)
	}

	return geometry.FitCircle(candidates, normal, r.opts.FitOptions())
}

func containsNear(points []geometry.Vector3, p geometry.Vector3) bool {
	for _, q := range points {
		if p.DistanceSquared(q) < exactMatchSq {
			return true
		}
	}
	return false
}

// worldNormal maps the hit's object-space normal to world space, falling back
// to the geometric normal of the hit face
func worldNormal(hit mesh.Intersection) geometry.Vector3 {
	if hit.Mesh == nil {
		return hit.Normal.Normalize()
	}
	if !hit.Normal.IsZero() {
		return hit.Mesh.Transform.ApplyNormal(hit.Normal)
	}
	if _, _, _, err := hit.Mesh.CheckedTriangleIndices(hit.Face); err != nil {
		return geometry.Vector3{}
	}
	return hit.Mesh.WorldTriangle(hit.Face).Normal
}
