package geometry

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Transform is an object-to-world affine transform. The zero value is the identity.
type Transform struct {
	m   mgl64.Mat4
	set bool
}

// Identity returns the identity transform
func Identity() Transform {
	return Transform{}
}

// NewTransform wraps a column-major 4x4 matrix
func NewTransform(m mgl64.Mat4) Transform {
	return Transform{m: m, set: true}
}

// Translation returns a pure translation
func Translation(offset Vector3) Transform {
	return NewTransform(mgl64.Translate3D(offset.X, offset.Y, offset.Z))
}

// FromTRS composes translation, rotation (unit quaternion) and scale as T*R*S
func FromTRS(translation Vector3, rotation mgl64.Quat, scale Vector3) Transform {
	t := mgl64.Translate3D(translation.X, translation.Y, translation.Z)
	r := rotation.Normalize().Mat4()
	s := mgl64.Scale3D(scale.X, scale.Y, scale.Z)
	return NewTransform(t.Mul4(r).Mul4(s))
}

// Matrix returns the 4x4 matrix
func (t Transform) Matrix() mgl64.Mat4 {
	if !t.set {
		return mgl64.Ident4()
	}
	return t.m
}

// IsIdentity reports whether applying the transform is a no-op
func (t Transform) IsIdentity() bool {
	return !t.set || t.m.ApproxEqual(mgl64.Ident4())
}

// Then returns the transform applying t first and then parent
func (t Transform) Then(parent Transform) Transform {
	if !t.set {
		return parent
	}
	if !parent.set {
		return t
	}
	return NewTransform(parent.m.Mul4(t.m))
}

// Apply maps an object-space point to world space
func (t Transform) Apply(p Vector3) Vector3 {
	if !t.set {
		return p
	}
	return FromVec(mgl64.TransformCoordinate(p.Vec(), t.m))
}

// ApplyNormal maps an object-space normal to world space using the inverse
// transpose of the linear part. The result is unit length.
func (t Transform) ApplyNormal(n Vector3) Vector3 {
	if !t.set {
		return n.Normalize()
	}
	linear := t.m.Mat3()
	if det := linear.Det(); det > -Epsilon && det < Epsilon {
		return FromVec(mgl64.TransformNormal(n.Vec(), t.m)).Normalize()
	}
	return FromVec(linear.Inv().Transpose().Mul3x1(n.Vec())).Normalize()
}

// Inverse returns the inverse transform. A singular matrix yields the identity.
func (t Transform) Inverse() Transform {
	if !t.set {
		return t
	}
	if det := t.m.Det(); det > -Epsilon && det < Epsilon {
		return Transform{}
	}
	return NewTransform(t.m.Inv())
}
