package geometry

import (
	"math"
	"testing"
)

func TestVector3Add(t *testing.T) {
	v1 := NewVector3(1, 2, 3)
	v2 := NewVector3(4, 5, 6)
	result := v1.Add(v2)

	expected := NewVector3(5, 7, 9)
	if result != expected {
		t.Errorf("Add failed: expected %v, got %v", expected, result)
	}
}

func TestVector3Sub(t *testing.T) {
	v1 := NewVector3(5, 7, 9)
	v2 := NewVector3(1, 2, 3)
	result := v1.Sub(v2)

	expected := NewVector3(4, 5, 6)
	if result != expected {
		t.Errorf("Sub failed: expected %v, got %v", expected, result)
	}
}

func TestVector3Length(t *testing.T) {
	v := NewVector3(3, 4, 0)
	length := v.Length()

	expected := 5.0
	if math.Abs(length-expected) > 1e-10 {
		t.Errorf("Length failed: expected %v, got %v", expected, length)
	}
}

func TestVector3Distance(t *testing.T) {
	v1 := NewVector3(0, 0, 0)
	v2 := NewVector3(3, 4, 0)
	distance := v1.Distance(v2)

	expected := 5.0
	if math.Abs(distance-expected) > 1e-10 {
		t.Errorf("Distance failed: expected %v, got %v", expected, distance)
	}
}

func TestVector3Normalize(t *testing.T) {
	v := NewVector3(3, 4, 0)
	normalized := v.Normalize()

	expectedLength := 1.0
	actualLength := normalized.Length()

	if math.Abs(actualLength-expectedLength) > 1e-10 {
		t.Errorf("Normalize failed: expected length %v, got %v", expectedLength, actualLength)
	}
}

func TestVector3Cross(t *testing.T) {
	v1 := NewVector3(1, 0, 0)
	v2 := NewVector3(0, 1, 0)
	result := v1.Cross(v2)

	expected := NewVector3(0, 0, 1)
	if result != expected {
		t.Errorf("Cross failed: expected %v, got %v", expected, result)
	}
}

func TestVector3Dot(t *testing.T) {
	v1 := NewVector3(1, 2, 3)
	v2 := NewVector3(4, 5, 6)
	result := v1.Dot(v2)

	expected := 32.0 // 1*4 + 2*5 + 3*6 = 32
	if math.Abs(result-expected) > 1e-10 {
		t.Errorf("Dot failed: expected %v, got %v", expected, result)
	}
}

func TestDistanceSquared(t *testing.T) {
	a := NewVector3(1, 2, 3)
	b := NewVector3(4, 6, 3)

	if got := DistanceSquared(a, b); math.Abs(got-25.0) > 1e-10 {
		t.Errorf("DistanceSquared failed: expected 25, got %v", got)
	}
	if got := Distance(a, b); math.Abs(got-5.0) > 1e-10 {
		t.Errorf("Distance failed: expected 5, got %v", got)
	}
}

func TestMidpoint(t *testing.T) {
	result := Midpoint(NewVector3(0, 0, 0), NewVector3(2, -4, 6))

	expected := NewVector3(1, -2, 3)
	if result != expected {
		t.Errorf("Midpoint failed: expected %v, got %v", expected, result)
	}
}

func TestClosestPointOnSegment(t *testing.T) {
	a := NewVector3(0, 0, 0)
	b := NewVector3(10, 0, 0)

	tests := []struct {
		name     string
		p        Vector3
		expected Vector3
	}{
		{"interior", NewVector3(3, 5, 0), NewVector3(3, 0, 0)},
		{"before start", NewVector3(-2, 1, 0), a},
		{"after end", NewVector3(12, -1, 4), b},
		{"on segment", NewVector3(7, 0, 0), NewVector3(7, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ClosestPointOnSegment(tt.p, a, b)
			if result.Distance(tt.expected) > 1e-10 {
				t.Errorf("ClosestPointOnSegment failed: expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestClosestPointOnDegenerateSegment(t *testing.T) {
	a := NewVector3(1, 1, 1)
	result := ClosestPointOnSegment(NewVector3(5, 5, 5), a, a)

	if result != a {
		t.Errorf("Degenerate segment failed: expected %v, got %v", a, result)
	}
	if !result.IsFinite() {
		t.Errorf("Degenerate segment produced non-finite point %v", result)
	}
}

func TestVector3NormalizeZero(t *testing.T) {
	result := NewVector3(0, 0, 0).Normalize()

	if result != (Vector3{}) {
		t.Errorf("Normalize of zero vector failed: expected zero, got %v", result)
	}
}
