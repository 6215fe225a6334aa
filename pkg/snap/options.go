package snap

import (
	"time"

	"github.com/philipparndt/gosnap/pkg/geometry"
)

// Default snapping parameters
const (
	DefaultTolerance                 = 0.1
	DefaultMaxVerticesForSnap        = 5000
	DefaultMaxCircleVertices         = 10000
	DefaultMaxEdgeTriangles          = 2000
	DefaultMaxSearchRadiusMultiplier = 5.0
	DefaultCoplanarTolerance         = 0.01
	DefaultCircleCacheCapacity       = 100
	DefaultCircleCacheTTLMs          = 5000
)

// Options are the tuning knobs and work budgets of a Resolver.
// Zero fields fall back to the defaults.
type Options struct {
	Tolerance                 float64 `toml:"snap_tolerance"`
	MaxVerticesForSnap        int     `toml:"max_vertices_for_snap"`
	MaxCircleVertices         int     `toml:"max_circle_vertices"`
	MaxEdgeTriangles          int     `toml:"max_edge_triangles"`
	MaxSearchRadiusMultiplier float64 `toml:"max_search_radius_multiplier"`
	CoplanarTolerance         float64 `toml:"coplanar_tolerance"`
	CircleFitTolerance        float64 `toml:"circle_fit_tolerance"`
	CircleCacheCapacity       int     `toml:"circle_cache_capacity"`
	CircleCacheTTLMs          int     `toml:"circle_cache_ttl_ms"`
	MinCirclePoints           int     `toml:"min_circle_points"`
}

// DefaultOptions returns the standard parameters
func DefaultOptions() Options {
	return Options{
		Tolerance:                 DefaultTolerance,
		MaxVerticesForSnap:        DefaultMaxVerticesForSnap,
		MaxCircleVertices:         DefaultMaxCircleVertices,
		MaxEdgeTriangles:          DefaultMaxEdgeTriangles,
		MaxSearchRadiusMultiplier: DefaultMaxSearchRadiusMultiplier,
		CoplanarTolerance:         DefaultCoplanarTolerance,
		CircleFitTolerance:        geometry.DefaultCircleFitTolerance,
		CircleCacheCapacity:       DefaultCircleCacheCapacity,
		CircleCacheTTLMs:          DefaultCircleCacheTTLMs,
		MinCirclePoints:           geometry.DefaultMinCirclePoints,
	}
}

// WithDefaults fills zero or negative fields from DefaultOptions
func (o Options) WithDefaults() Options {
	d := DefaultOptions()
	if o.Tolerance <= 0 {
		o.Tolerance = d.Tolerance
	}
	if o.MaxVerticesForSnap <= 0 {
		o.MaxVerticesForSnap = d.MaxVerticesForSnap
	}
	if o.MaxCircleVertices <= 0 {
		o.MaxCircleVertices = d.MaxCircleVertices
	}
	if o.MaxEdgeTriangles <= 0 {
		o.MaxEdgeTriangles = d.MaxEdgeTriangles
	}
	if o.MaxSearchRadiusMultiplier <= 0 {
		o.MaxSearchRadiusMultiplier = d.MaxSearchRadiusMultiplier
	}
	if o.CoplanarTolerance <= 0 {
		o.CoplanarTolerance = d.CoplanarTolerance
	}
	if o.CircleFitTolerance <= 0 {
		o.CircleFitTolerance = d.CircleFitTolerance
	}
	if o.CircleCacheCapacity <= 0 {
		o.CircleCacheCapacity = d.CircleCacheCapacity
	}
	if o.CircleCacheTTLMs <= 0 {
		o.CircleCacheTTLMs = d.CircleCacheTTLMs
	}
	if o.MinCirclePoints <= 0 {
		o.MinCirclePoints = d.MinCirclePoints
	}
	return o
}

// CacheTTL returns the circle cache time-to-live
func (o Options) CacheTTL() time.Duration {
	return time.Duration(o.CircleCacheTTLMs) * time.Millisecond
}

// FitOptions returns the circle fit parameters
func (o Options) FitOptions() geometry.FitOptions {
	return geometry.FitOptions{
		MinPoints: o.MinCirclePoints,
		Tolerance: o.CircleFitTolerance,
	}
}
