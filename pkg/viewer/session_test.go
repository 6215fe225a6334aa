package viewer

import (
	"math"
	"testing"

	"github.com/philipparndt/gosnap/pkg/camera"
	"github.com/philipparndt/gosnap/pkg/geometry"
	"github.com/philipparndt/gosnap/pkg/measurement"
	"github.com/philipparndt/gosnap/pkg/mesh"
	"github.com/philipparndt/gosnap/pkg/snap"
	"github.com/philipparndt/gosnap/pkg/snapshot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const viewSize = 64

func squareScene() mesh.Scene {
	return mesh.Scene{mesh.New("square", []geometry.Vector3{
		geometry.NewVector3(-1, -1, 0),
		geometry.NewVector3(1, -1, 0),
		geometry.NewVector3(1, 1, 0),
		geometry.NewVector3(-1, 1, 0),
	}, []uint32{0, 1, 2, 0, 2, 3})}
}

func newSession() *Session {
	return NewSession(squareScene(), nil, snapshot.DefaultOptions())
}

// pixelOf returns where a world point appears in the session's view
func pixelOf(t *testing.T, s *Session, p geometry.Vector3) (float64, float64) {
	t.Helper()
	uv, err := camera.Project(s.Pose(viewSize, viewSize), p)
	require.NoError(t, err)
	return uv.Pixel(viewSize, viewSize)
}

func TestSessionFramesScene(t *testing.T) {
	s := newSession()
	pose := s.Pose(viewSize, viewSize)

	assert.Equal(t, geometry.NewVector3(0, 0, 4), pose.Position)
	assert.Equal(t, geometry.Vector3{}, pose.Target)
	assert.Equal(t, 1.0, pose.Aspect)
}

func TestSessionPick(t *testing.T) {
	s := newSession()

	result, ok := s.Pick(viewSize/2, viewSize/2, viewSize, viewSize)
	require.True(t, ok)
	assert.InDelta(t, 0, result.Point.Length(), 1e-9)

	_, ok = s.Pick(1, 1, viewSize, viewSize)
	assert.False(t, ok, "corner ray misses the square")

	_, ok = s.Pick(10, 10, 0, 0)
	assert.False(t, ok)
}

func TestSessionPickSnapsToVertex(t *testing.T) {
	s := newSession()
	x, y := pixelOf(t, s, geometry.NewVector3(0.96, 0.93, 0))

	result, ok := s.Pick(x, y, viewSize, viewSize)
	require.True(t, ok)
	assert.Equal(t, snap.KindVertex, result.Kind)
	assert.True(t, result.Snapped)
	assert.InDelta(t, 1.0, result.Point.X, 1e-9)
	assert.InDelta(t, 1.0, result.Point.Y, 1e-9)
}

func TestSessionSelectBuildsMeasurement(t *testing.T) {
	s := newSession()

	x, y := pixelOf(t, s, geometry.NewVector3(0.96, 0.93, 0))
	_, m, ok := s.Select(x, y, viewSize, viewSize)
	require.True(t, ok)
	assert.Nil(t, m)
	_, pending := s.Pending()
	assert.True(t, pending)

	x, y = pixelOf(t, s, geometry.NewVector3(-0.96, -0.93, 0))
	_, m, ok = s.Select(x, y, viewSize, viewSize)
	require.True(t, ok)
	require.NotNil(t, m)
	assert.InDelta(t, 2*math.Sqrt2, m.Distance, 1e-9)
	assert.Equal(t, measurement.KindDistance, m.Kind)

	assert.Len(t, s.Markers(), 2)
	assert.Len(t, s.Measurements(), 1)

	s.Clear()
	assert.Empty(t, s.Markers())
	assert.Empty(t, s.Measurements())
}

func TestSessionSelectMissKeepsState(t *testing.T) {
	s := newSession()

	_, _, ok := s.Select(1, 1, viewSize, viewSize)
	assert.False(t, ok)
	assert.Empty(t, s.Markers())
	_, pending := s.Pending()
	assert.False(t, pending)
}

func TestSessionFrame(t *testing.T) {
	s := newSession()

	img, err := s.Frame(viewSize, viewSize)
	require.NoError(t, err)
	assert.Equal(t, viewSize, img.Bounds().Dx())
	assert.NotEqual(t, snapshot.DefaultOptions().Background, img.RGBAAt(viewSize/2, viewSize/2))

	_, err = s.Frame(0, viewSize)
	assert.ErrorIs(t, err, snapshot.ErrInvalidSize)
}

func TestSessionSetSceneResets(t *testing.T) {
	s := newSession()
	x, y := pixelOf(t, s, geometry.NewVector3(0.96, 0.93, 0))
	_, _, ok := s.Select(x, y, viewSize, viewSize)
	require.True(t, ok)
	require.Positive(t, s.resolver.Cache().Len())

	s.SetScene(squareScene())
	assert.Empty(t, s.Markers())
	_, pending := s.Pending()
	assert.False(t, pending)
	assert.Zero(t, s.resolver.Cache().Len())
}

func TestSessionCameraControls(t *testing.T) {
	s := newSession()

	s.Zoom(1)
	assert.InDelta(t, 8, s.Pose(viewSize, viewSize).Position.Z, 1e-9)

	s.Rotate(0, math.Pi/2)
	pos := s.Pose(viewSize, viewSize).Position
	assert.InDelta(t, 8, pos.X, 1e-9)
	assert.InDelta(t, 0, pos.Z, 1e-9)
}

func TestSessionCancelPending(t *testing.T) {
	s := newSession()
	x, y := pixelOf(t, s, geometry.NewVector3(0.96, 0.93, 0))
	_, _, ok := s.Select(x, y, viewSize, viewSize)
	require.True(t, ok)

	s.CancelPending()
	_, pending := s.Pending()
	assert.False(t, pending)
	assert.Empty(t, s.Markers())

	s.CancelPending()
	assert.Empty(t, s.Measurements())
}

func TestSessionViewAndPan(t *testing.T) {
	s := newSession()

	s.SetView(camera.ViewTop)
	pos := s.Pose(viewSize, viewSize).Position
	assert.InDelta(t, 4, pos.Y, 1e-9)

	s.SetView(camera.ViewFront)
	s.Pan(100, 0)
	assert.InDelta(t, -0.4, s.Pose(viewSize, viewSize).Target.X, 1e-9)
}
