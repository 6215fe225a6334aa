package camera

import (
	"errors"
	"fmt"
	"math"

	"github.com/philipparndt/gosnap/pkg/geometry"
)

// DefaultFOV is the vertical field of view of new orbit cameras, in degrees
const DefaultFOV = 45.0

// maxPitch keeps interactive rotation away from the poles
const maxPitch = math.Pi/2 - 0.1

// ErrUnknownView is returned for unrecognized view names
var ErrUnknownView = errors.New("unknown view")

// View is a named preset camera direction
type View string

// Preset views. Front looks along -Z, top looks down along -Y.
const (
	ViewFront  View = "front"
	ViewBack   View = "back"
	ViewLeft   View = "left"
	ViewRight  View = "right"
	ViewTop    View = "top"
	ViewBottom View = "bottom"
)

// viewAngles maps presets to pitch and yaw
var viewAngles = map[View][2]float64{
	ViewFront:  {0, 0},
	ViewBack:   {0, math.Pi},
	ViewLeft:   {0, -math.Pi / 2},
	ViewRight:  {0, math.Pi / 2},
	ViewTop:    {math.Pi / 2, 0},
	ViewBottom: {-math.Pi / 2, 0},
}

// Views lists the presets in menu order
var Views = []View{ViewFront, ViewBack, ViewLeft, ViewRight, ViewTop, ViewBottom}

// ViewNames returns the preset names in menu order
func ViewNames() []string {
	names := make([]string, len(Views))
	for i, v := range Views {
		names[i] = string(v)
	}
	return names
}

// ParseView validates a view name
func ParseView(name string) (View, error) {
	v := View(name)
	if _, ok := viewAngles[v]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownView, name)
	}
	return v, nil
}

// Orbit is an interactive camera circling a target
type Orbit struct {
	Target   geometry.Vector3
	Distance float64
	Pitch    float64 // Rotation around X (vertical), radians
	Yaw      float64 // Rotation around Y (horizontal), radians
	FOV      float64 // Degrees
}

// NewOrbit creates a camera framing a bounding box from +Z
func NewOrbit(bbox geometry.BoundingBox) *Orbit {
	size := bbox.Size()
	distance := math.Max(size.X, math.Max(size.Y, size.Z)) * 2.0
	if distance < Near*10 {
		distance = Near * 10
	}

	return &Orbit{
		Target:   bbox.Center(),
		Distance: distance,
		FOV:      DefaultFOV,
	}
}

// Position returns the eye position for the current angles
func (o *Orbit) Position() geometry.Vector3 {
	x := o.Distance * math.Cos(o.Pitch) * math.Sin(o.Yaw)
	y := o.Distance * math.Sin(o.Pitch)
	z := o.Distance * math.Cos(o.Pitch) * math.Cos(o.Yaw)
	return o.Target.Add(geometry.NewVector3(x, y, z))
}

// Rotate changes pitch and yaw, clamping pitch short of the poles
func (o *Orbit) Rotate(deltaPitch, deltaYaw float64) {
	o.Pitch = math.Max(-maxPitch, math.Min(maxPitch, o.Pitch+deltaPitch))
	o.Yaw += deltaYaw
}

// SetView moves the camera to a preset direction around the current target
func (o *Orbit) SetView(v View) {
	angles := viewAngles[v]
	o.Pitch, o.Yaw = angles[0], angles[1]
}

// Pan shifts the target in the view plane. Deltas are in screen pixels and
// scale with the distance.
func (o *Orbit) Pan(deltaX, deltaY float64) {
	forward := o.Target.Sub(o.Position()).Normalize()
	up := o.Pose(1).ViewUp()
	right := forward.Cross(up).Normalize()
	up = right.Cross(forward).Normalize()

	speed := o.Distance * 0.001
	o.Target = o.Target.Add(right.Mul(-deltaX * speed)).Add(up.Mul(deltaY * speed))
}

// Zoom scales the distance by (1 + delta)
func (o *Orbit) Zoom(delta float64) {
	o.Distance *= 1.0 + delta
	if o.Distance < Near {
		o.Distance = Near
	}
}

// Pose returns the camera pose for an image of the given aspect ratio
func (o *Orbit) Pose(aspect float64) Pose {
	return Pose{
		Position: o.Position(),
		Target:   o.Target,
		FOV:      o.FOV,
		Aspect:   aspect,
	}
}
