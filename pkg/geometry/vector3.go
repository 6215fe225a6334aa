package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Epsilon is the length below which vectors and segments are treated as degenerate
const Epsilon = 1e-9

// Vector3 represents a 3D point or vector
type Vector3 struct {
	X, Y, Z float64
}

// NewVector3 creates a new 3D vector
func NewVector3(x, y, z float64) Vector3 {
	return Vector3{X: x, Y: y, Z: z}
}

// FromVec converts an mgl64 vector
func FromVec(v mgl64.Vec3) Vector3 {
	return Vector3{X: v[0], Y: v[1], Z: v[2]}
}

// Vec converts the vector to mgl64
func (v Vector3) Vec() mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

// Add returns the sum of two vectors
func (v Vector3) Add(other Vector3) Vector3 {
	return Vector3{
		X: v.X + other.X,
		Y: v.Y + other.Y,
		Z: v.Z + other.Z,
	}
}

// Sub returns the difference between two vectors
func (v Vector3) Sub(other Vector3) Vector3 {
	return Vector3{
		X: v.X - other.X,
		Y: v.Y - other.Y,
		Z: v.Z - other.Z,
	}
}

// Mul multiplies the vector by a scalar
func (v Vector3) Mul(scalar float64) Vector3 {
	return Vector3{
		X: v.X * scalar,
		Y: v.Y * scalar,
		Z: v.Z * scalar,
	}
}

// Dot returns the dot product of two vectors
func (v Vector3) Dot(other Vector3) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns the cross product of two vectors
func (v Vector3) Cross(other Vector3) Vector3 {
	return Vector3{
		X: v.Y*other.Z - v.Z*other.Y,
		Y: v.Z*other.X - v.X*other.Z,
		Z: v.X*other.Y - v.Y*other.X,
	}
}

// Length returns the magnitude of the vector
func (v Vector3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// LengthSquared returns the squared magnitude (no sqrt)
func (v Vector3) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

// Distance returns the distance between two points
func (v Vector3) Distance(other Vector3) float64 {
	return v.Sub(other).Length()
}

// DistanceSquared returns the squared distance between two points.
// Compare against squared tolerances to keep sqrt out of hot loops.
func (v Vector3) DistanceSquared(other Vector3) float64 {
	dx := v.X - other.X
	dy := v.Y - other.Y
	dz := v.Z - other.Z
	return dx*dx + dy*dy + dz*dz
}

// Normalize returns a unit vector in the same direction
func (v Vector3) Normalize() Vector3 {
	length := v.Length()
	if length < Epsilon {
		return Vector3{}
	}
	return v.Mul(1.0 / length)
}

// IsZero reports whether the vector is shorter than Epsilon
func (v Vector3) IsZero() bool {
	return v.LengthSquared() < Epsilon*Epsilon
}

// IsFinite reports whether no component is NaN or infinite
func (v Vector3) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsNaN(v.Z) &&
		!math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0) && !math.IsInf(v.Z, 0)
}

// Min returns a vector with the minimum components of two vectors
func (v Vector3) Min(other Vector3) Vector3 {
	return Vector3{
		X: math.Min(v.X, other.X),
		Y: math.Min(v.Y, other.Y),
		Z: math.Min(v.Z, other.Z),
	}
}

// Max returns a vector with the maximum components of two vectors
func (v Vector3) Max(other Vector3) Vector3 {
	return Vector3{
		X: math.Max(v.X, other.X),
		Y: math.Max(v.Y, other.Y),
		Z: math.Max(v.Z, other.Z),
	}
}

// Distance returns the Euclidean distance between a and b
func Distance(a, b Vector3) float64 {
	return a.Distance(b)
}

// DistanceSquared returns the squared distance between a and b
func DistanceSquared(a, b Vector3) float64 {
	return a.DistanceSquared(b)
}

// Midpoint returns the point halfway between a and b
func Midpoint(a, b Vector3) Vector3 {
	return Vector3{
		X: (a.X + b.X) / 2.0,
		Y: (a.Y + b.Y) / 2.0,
		Z: (a.Z + b.Z) / 2.0,
	}
}

// ClosestPointOnSegment projects p onto the segment [a, b], clamped to the
// segment. A segment shorter than Epsilon returns a.
func ClosestPointOnSegment(p, a, b Vector3) Vector3 {
	ab := b.Sub(a)
	lengthSq := ab.LengthSquared()
	if lengthSq < Epsilon*Epsilon {
		return a
	}

	t := p.Sub(a).Dot(ab) / lengthSq
	switch {
	case t <= 0:
		return a
	case t >= 1:
		return b
	}
	return a.Add(ab.Mul(t))
}
