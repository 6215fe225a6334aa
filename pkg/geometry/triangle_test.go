package geometry

import (
	"math"
	"testing"
)

// rightTriangle has legs along X and Y with the given lengths
func rightTriangle(a, b float64) Triangle {
	return NewTriangle(
		NewVector3(0, 0, 1),
		NewVector3(0, 0, 0),
		NewVector3(a, 0, 0),
		NewVector3(0, b, 0),
	)
}

func TestTriangleMeasures(t *testing.T) {
	tests := []struct {
		name      string
		tri       Triangle
		area      float64
		perimeter float64
		edges     [3]float64
	}{
		{"3-4-5", rightTriangle(3, 4), 6, 12, [3]float64{3, 5, 4}},
		{"unit", rightTriangle(1, 1), 0.5, 2 + math.Sqrt2, [3]float64{1, math.Sqrt2, 1}},
		{"degenerate", rightTriangle(2, 0), 0, 4, [3]float64{2, 2, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.tri.Area(); math.Abs(got-tt.area) > 1e-10 {
				t.Errorf("Area: expected %v, got %v", tt.area, got)
			}
			if got := tt.tri.Perimeter(); math.Abs(got-tt.perimeter) > 1e-10 {
				t.Errorf("Perimeter: expected %v, got %v", tt.perimeter, got)
			}
			lengths := tt.tri.EdgeLengths()
			for i, want := range tt.edges {
				if math.Abs(lengths[i]-want) > 1e-10 {
					t.Errorf("Edge %d: expected %v, got %v", i, want, lengths[i])
				}
			}
		})
	}
}

func TestTriangleCenter(t *testing.T) {
	center := rightTriangle(3, 3).Center()
	if center != NewVector3(1, 1, 0) {
		t.Errorf("Center failed: expected (1,1,0), got %v", center)
	}
}

func TestTriangleFaceNormal(t *testing.T) {
	tri := NewTriangle(
		Vector3{},
		NewVector3(0, 0, 0),
		NewVector3(1, 0, 0),
		NewVector3(0, 1, 0),
	)

	if tri.FaceNormal() != NewVector3(0, 0, 1) {
		t.Errorf("FaceNormal failed: expected (0,0,1), got %v", tri.FaceNormal())
	}
}

func TestTriangleAngles(t *testing.T) {
	angles := rightTriangle(1, 1).Angles()
	sum := angles[0] + angles[1] + angles[2]
	if math.Abs(sum-math.Pi) > 1e-10 {
		t.Errorf("Angles failed: expected sum pi, got %v", sum)
	}
	if math.Abs(angles[0]-math.Pi/2) > 1e-10 {
		t.Errorf("Right angle failed: got %v", angles[0])
	}
}
