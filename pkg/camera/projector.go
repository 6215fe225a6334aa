// Package camera maps world points to normalized screen coordinates and back.
package camera

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/philipparndt/gosnap/pkg/geometry"
)

// Clip planes shared by all poses
const (
	Near = 0.1
	Far  = 1000.0
)

// wEpsilon is the smallest clip-space w that can be divided by
const wEpsilon = 1e-12

var (
	// ErrDegeneratePose reports a pose without a view direction or with an invalid field of view
	ErrDegeneratePose = errors.New("degenerate camera pose")
	// ErrUnprojectable reports a point that lies in the camera plane
	ErrUnprojectable = errors.New("point cannot be projected")
)

// worldUp is the up direction of every pose
var worldUp = geometry.NewVector3(0, 1, 0)

// WorldUp returns the fixed world up direction, +Y
func WorldUp() geometry.Vector3 {
	return worldUp
}

// Pose is a perspective camera looking from Position at Target
type Pose struct {
	Position geometry.Vector3
	Target   geometry.Vector3
	FOV      float64 // Vertical field of view in degrees
	Aspect   float64 // Width / height, 0 means square
}

// UV is a normalized screen coordinate. U grows right and V grows down;
// points inside the view map to [0,1].
type UV struct {
	U, V float64
}

// Pixel scales the coordinate to an image of the given size
func (uv UV) Pixel(width, height int) (float64, float64) {
	return uv.U * float64(width), uv.V * float64(height)
}

// FromPixel converts pixel coordinates to a normalized coordinate
func FromPixel(x, y float64, width, height int) UV {
	return UV{U: x / float64(width), V: y / float64(height)}
}

// Validate checks that the pose defines a view
func (p Pose) Validate() error {
	if p.Target.Sub(p.Position).IsZero() {
		return fmt.Errorf("%w: position equals target %v", ErrDegeneratePose, p.Position)
	}
	if !(p.FOV > 0 && p.FOV < 180) {
		return fmt.Errorf("%w: field of view %v", ErrDegeneratePose, p.FOV)
	}
	if p.Aspect < 0 || math.IsNaN(p.Aspect) || math.IsInf(p.Aspect, 0) {
		return fmt.Errorf("%w: aspect %v", ErrDegeneratePose, p.Aspect)
	}
	if !p.Position.IsFinite() || !p.Target.IsFinite() {
		return fmt.Errorf("%w: non-finite coordinates", ErrDegeneratePose)
	}
	return nil
}

// Forward returns the unit view direction
func (p Pose) Forward() geometry.Vector3 {
	return p.Target.Sub(p.Position).Normalize()
}

// ViewUp returns the up vector used for the view basis. Looking straight
// along Y falls back to -Z (looking down) or +Z (looking up).
func (p Pose) ViewUp() geometry.Vector3 {
	forward := p.Forward()
	if forward.Cross(worldUp).IsZero() || math.Abs(forward.Dot(worldUp)) > 1-1e-9 {
		if forward.Y < 0 {
			return geometry.NewVector3(0, 0, -1)
		}
		return geometry.NewVector3(0, 0, 1)
	}
	return worldUp
}

func (p Pose) aspect() float64 {
	if p.Aspect == 0 {
		return 1
	}
	return p.Aspect
}

// View returns the world-to-camera matrix
func (p Pose) View() mgl64.Mat4 {
	return mgl64.LookAtV(p.Position.Vec(), p.Target.Vec(), p.ViewUp().Vec())
}

// Projection returns the perspective matrix
func (p Pose) Projection() mgl64.Mat4 {
	return mgl64.Perspective(mgl64.DegToRad(p.FOV), p.aspect(), Near, Far)
}

// Projector holds the matrices of a validated pose
type Projector struct {
	pose     Pose
	viewProj mgl64.Mat4
	inverse  mgl64.Mat4
	forward  geometry.Vector3
}

// NewProjector validates the pose and precomputes its matrices
func NewProjector(pose Pose) (*Projector, error) {
	if err := pose.Validate(); err != nil {
		return nil, err
	}
	viewProj := pose.Projection().Mul4(pose.View())
	return &Projector{
		pose:     pose,
		viewProj: viewProj,
		inverse:  viewProj.Inv(),
		forward:  pose.Forward(),
	}, nil
}

// Pose returns the projector's pose
func (p *Projector) Pose() Pose {
	return p.pose
}

// Project maps a world point to normalized screen coordinates. Points outside
// the view or behind the camera are not clipped.
func (p *Projector) Project(point geometry.Vector3) (UV, error) {
	clip := p.viewProj.Mul4x1(point.Vec().Vec4(1))
	if math.Abs(clip.W()) < wEpsilon {
		return UV{}, fmt.Errorf("%w: %v lies in the camera plane", ErrUnprojectable, point)
	}
	ndcX := clip.X() / clip.W()
	ndcY := clip.Y() / clip.W()
	return UV{U: (ndcX + 1) / 2, V: (1 - ndcY) / 2}, nil
}

// Depth returns the distance of a point along the view direction.
// Points behind the camera are negative.
func (p *Projector) Depth(point geometry.Vector3) float64 {
	return point.Sub(p.pose.Position).Dot(p.forward)
}

// Unproject returns the world ray through a normalized screen coordinate.
// The ray starts at the camera position.
func (p *Projector) Unproject(u, v float64) (geometry.Ray, error) {
	ndc := mgl64.Vec4{2*u - 1, 1 - 2*v, -1, 1}
	world := p.inverse.Mul4x1(ndc)
	if math.Abs(world.W()) < wEpsilon {
		return geometry.Ray{}, fmt.Errorf("%w: screen point (%v, %v)", ErrUnprojectable, u, v)
	}
	onNear := geometry.FromVec(world.Vec3().Mul(1 / world.W()))
	direction := onNear.Sub(p.pose.Position)
	if direction.IsZero() || !direction.IsFinite() {
		return geometry.Ray{}, fmt.Errorf("%w: screen point (%v, %v)", ErrUnprojectable, u, v)
	}
	return geometry.NewRay(p.pose.Position, direction), nil
}

// Project maps a world point to normalized screen coordinates for a pose
func Project(pose Pose, point geometry.Vector3) (UV, error) {
	p, err := NewProjector(pose)
	if err != nil {
		return UV{}, err
	}
	return p.Project(point)
}

// Unproject returns the world ray through a normalized screen coordinate for a pose
func Unproject(pose Pose, u, v float64) (geometry.Ray, error) {
	p, err := NewProjector(pose)
	if err != nil {
		return geometry.Ray{}, err
	}
	return p.Unproject(u, v)
}
