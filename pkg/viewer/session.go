package viewer

import (
	"image"
	"sync"

	"github.com/philipparndt/gosnap/pkg/camera"
	"github.com/philipparndt/gosnap/pkg/measurement"
	"github.com/philipparndt/gosnap/pkg/mesh"
	"github.com/philipparndt/gosnap/pkg/snap"
	"github.com/philipparndt/gosnap/pkg/snapshot"
)

// Session is the interaction state of a view: the scene, the orbit camera,
// picked points and finished measurements. It has no toolkit dependency.
type Session struct {
	mu       sync.Mutex
	scene    mesh.Scene
	orbit    *camera.Orbit
	resolver *snap.Resolver
	builder  *measurement.Builder
	markers  []snapshot.Marker
	style    snapshot.Options
}

// NewSession creates a session framing the scene. A nil resolver gets one
// with default options.
func NewSession(scene mesh.Scene, resolver *snap.Resolver, style snapshot.Options) *Session {
	if resolver == nil {
		resolver = snap.NewResolver(snap.DefaultOptions(), nil)
	}
	return &Session{
		scene:    scene,
		orbit:    camera.NewOrbit(scene.BoundingBox()),
		resolver: resolver,
		builder:  measurement.NewBuilder(),
		style:    style,
	}
}

// Scene returns the displayed scene
func (s *Session) Scene() mesh.Scene {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scene
}

// SetScene replaces the scene after a reload. The camera is kept; picked
// points and measurements refer to the old geometry and are dropped.
func (s *Session) SetScene(scene mesh.Scene) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scene = scene
	s.markers = nil
	s.builder.Clear()
	s.resolver.Cache().Clear()
}

// Rotate orbits the camera
func (s *Session) Rotate(deltaPitch, deltaYaw float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orbit.Rotate(deltaPitch, deltaYaw)
}

// Pan shifts the camera target by a screen-space delta
func (s *Session) Pan(deltaX, deltaY float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orbit.Pan(deltaX, deltaY)
}

// SetView turns the camera to a preset direction
func (s *Session) SetView(v camera.View) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orbit.SetView(v)
}

// Zoom moves the camera toward or away from the target
func (s *Session) Zoom(delta float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orbit.Zoom(delta)
}

// Pose returns the camera pose for a view of the given size
func (s *Session) Pose(width, height int) camera.Pose {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pose(width, height)
}

func (s *Session) pose(width, height int) camera.Pose {
	aspect := 1.0
	if height > 0 {
		aspect = float64(width) / float64(height)
	}
	return s.orbit.Pose(aspect)
}

// Pick casts a ray through a pixel and resolves the closest hit
func (s *Session) Pick(x, y float64, width, height int) (snap.Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pick(x, y, width, height)
}

func (s *Session) pick(x, y float64, width, height int) (snap.Result, bool) {
	if width <= 0 || height <= 0 {
		return snap.Result{}, false
	}
	uv := camera.FromPixel(x, y, width, height)
	ray, err := camera.Unproject(s.pose(width, height), uv.U, uv.V)
	if err != nil {
		return snap.Result{}, false
	}
	hit, ok := s.scene.Raycast(ray)
	if !ok {
		return snap.Result{}, false
	}
	return s.resolver.Resolve(hit, 0), true
}

// Select picks a point and feeds it to the measurement builder. The second of
// each pair of points completes a measurement.
func (s *Session) Select(x, y float64, width, height int) (snap.Result, *measurement.Measurement, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, ok := s.pick(x, y, width, height)
	if !ok {
		return snap.Result{}, nil, false
	}

	s.markers = append(s.markers, snapshot.Marker{Point: result.Point, Kind: result.Kind, Label: string(result.Kind)})
	m, done := s.builder.Add(result)
	if !done {
		return result, nil, true
	}
	return result, &m, true
}

// Pending returns the first point of an unfinished measurement
func (s *Session) Pending() (snap.Result, bool) {
	return s.builder.Pending()
}

// CancelPending drops the first point of an unfinished measurement
func (s *Session) CancelPending() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if pending, ok := s.builder.Pending(); ok {
		s.builder.Cancel()
		for i := len(s.markers) - 1; i >= 0; i-- {
			if s.markers[i].Point == pending.Point {
				s.markers = append(s.markers[:i], s.markers[i+1:]...)
				break
			}
		}
	}
}

// Measurements returns the finished measurements
func (s *Session) Measurements() []measurement.Measurement {
	return s.builder.Measurements()
}

// Markers returns the picked points
func (s *Session) Markers() []snapshot.Marker {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]snapshot.Marker, len(s.markers))
	copy(out, s.markers)
	return out
}

// Clear drops picked points and measurements
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.markers = nil
	s.builder.Clear()
}

// Frame renders the current view with markers and measurements
func (s *Session) Frame(width, height int) (*image.RGBA, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	opts := s.style
	opts.Width = width
	opts.Height = height
	opts.Markers = s.markers
	opts.Measurements = s.builder.Measurements()
	return snapshot.Render(s.scene, s.pose(width, height), opts)
}
