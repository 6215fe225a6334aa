package geometry

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestTransformZeroValueIsIdentity(t *testing.T) {
	var tr Transform
	p := NewVector3(1, 2, 3)

	if tr.Apply(p) != p {
		t.Errorf("Zero transform moved point: %v", tr.Apply(p))
	}
	if !tr.IsIdentity() {
		t.Errorf("Zero transform should be identity")
	}
}

func TestTransformTRS(t *testing.T) {
	rot := mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 0, 1})
	tr := FromTRS(NewVector3(10, 0, 0), rot, NewVector3(2, 2, 2))

	result := tr.Apply(NewVector3(1, 0, 0))
	expected := NewVector3(10, 2, 0)
	if result.Distance(expected) > 1e-9 {
		t.Errorf("Apply failed: expected %v, got %v", expected, result)
	}

	back := tr.Inverse().Apply(result)
	if back.Distance(NewVector3(1, 0, 0)) > 1e-9 {
		t.Errorf("Inverse failed: got %v", back)
	}
}

func TestTransformApplyNormalNonUniformScale(t *testing.T) {
	tr := FromTRS(Vector3{}, mgl64.QuatIdent(), NewVector3(1, 4, 1))
	n := NewVector3(1, 1, 0).Normalize()

	result := tr.ApplyNormal(n)
	if math.Abs(result.Length()-1) > 1e-9 {
		t.Errorf("ApplyNormal not unit length: %v", result)
	}
	// Tangent (1,-1,0) scales to (1,-4,0); the normal must stay perpendicular
	tangent := tr.Apply(NewVector3(1, -1, 0))
	if math.Abs(result.Dot(tangent)) > 1e-9 {
		t.Errorf("ApplyNormal not perpendicular to transformed tangent: %v", result)
	}
}

func TestTransformThen(t *testing.T) {
	child := Translation(NewVector3(1, 0, 0))
	parent := Translation(NewVector3(0, 5, 0))

	result := child.Then(parent).Apply(Vector3{})
	if result.Distance(NewVector3(1, 5, 0)) > 1e-10 {
		t.Errorf("Then failed: got %v", result)
	}
}
