package geometry

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Default circle fit parameters
const (
	DefaultMinCirclePoints    = 6
	DefaultCircleFitTolerance = 0.05
)

// parallelToYThreshold is the angle (radians) within which a normal counts as parallel to Y
const parallelToYThreshold = 0.01

// CircleFeature is a circle detected on a planar mesh region
type CircleFeature struct {
	Center Vector3 // World space
	Radius float64
	Normal Vector3
	AxisX  Vector3 // In-plane basis, orthogonal to AxisY and Normal
	AxisY  Vector3
}

// FitOptions controls the acceptance criteria of FitCircle
type FitOptions struct {
	MinPoints int     // Fewer candidate points never form a circle
	Tolerance float64 // Max radius std-dev relative to mean radius
}

// DefaultFitOptions returns the standard fit parameters
func DefaultFitOptions() FitOptions {
	return FitOptions{
		MinPoints: DefaultMinCirclePoints,
		Tolerance: DefaultCircleFitTolerance,
	}
}

// FitCircle checks whether points lying in the plane with the given normal
// are arranged on a circle around their centroid.
//
// This is not a least-squares fit: the centroid is taken as the center, which
// holds for the regular polygons meshes use to approximate circles. The fit is
// accepted when the population standard deviation of the radii is at most
// Tolerance times the mean radius.
func FitCircle(points []Vector3, normal Vector3, opts FitOptions) (CircleFeature, bool) {
	if len(points) < opts.MinPoints || len(points) == 0 {
		return CircleFeature{}, false
	}

	n := normal.Normalize()
	if n.IsZero() {
		return CircleFeature{}, false
	}

	// Step 1: Centroid
	var sum Vector3
	for _, p := range points {
		sum = sum.Add(p)
	}
	center := sum.Mul(1.0 / float64(len(points)))

	// Step 2: In-plane basis
	axisX, axisY := PlaneBasis(n)

	// Step 3: Radius statistics
	radii := make([]float64, len(points))
	for i, p := range points {
		radii[i] = p.Distance(center)
	}
	mean, std := stat.PopMeanStdDev(radii, nil)

	// Step 4: Acceptance
	if !(mean > Epsilon) || math.IsNaN(std) || std > opts.Tolerance*mean {
		return CircleFeature{}, false
	}

	return CircleFeature{
		Center: center,
		Radius: mean,
		Normal: n,
		AxisX:  axisX,
		AxisY:  axisY,
	}, true
}

// PlaneBasis returns two orthonormal vectors spanning the plane perpendicular to
// the unit normal n. The first axis is Y×n, or X×n when n is near-parallel to Y.
func PlaneBasis(n Vector3) (Vector3, Vector3) {
	ref := NewVector3(0, 1, 0)
	if math.Acos(math.Min(1, math.Abs(n.Y))) < parallelToYThreshold {
		ref = NewVector3(1, 0, 0)
	}
	axisX := ref.Cross(n).Normalize()
	axisY := n.Cross(axisX).Normalize()
	return axisX, axisY
}

// PointAt returns the point on the circle at the given angle (radians) from AxisX
func (c CircleFeature) PointAt(angle float64) Vector3 {
	offset := c.AxisX.Mul(math.Cos(angle) * c.Radius).Add(c.AxisY.Mul(math.Sin(angle) * c.Radius))
	return c.Center.Add(offset)
}

// QuadrantPoints returns the circle points at 0°, 90°, 180° and 270°
func (c CircleFeature) QuadrantPoints() [4]Vector3 {
	return [4]Vector3{
		c.Center.Add(c.AxisX.Mul(c.Radius)),
		c.Center.Add(c.AxisY.Mul(c.Radius)),
		c.Center.Sub(c.AxisX.Mul(c.Radius)),
		c.Center.Sub(c.AxisY.Mul(c.Radius)),
	}
}

// Diameter returns twice the radius
func (c CircleFeature) Diameter() float64 {
	return 2 * c.Radius
}
