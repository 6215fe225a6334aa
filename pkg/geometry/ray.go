package geometry

// Ray is a half-line with a unit direction
type Ray struct {
	Origin    Vector3
	Direction Vector3
}

// NewRay creates a ray, normalizing the direction
func NewRay(origin, direction Vector3) Ray {
	return Ray{Origin: origin, Direction: direction.Normalize()}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vector3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// IntersectTriangle returns the ray parameter of the hit with the triangle
// (a, b, c) using the Möller–Trumbore algorithm. Both faces count as hits.
func (r Ray) IntersectTriangle(a, b, c Vector3) (float64, bool) {
	const eps = 1e-12
	edge1 := b.Sub(a)
	edge2 := c.Sub(a)
	h := r.Direction.Cross(edge2)
	det := edge1.Dot(h)
	if det > -eps && det < eps {
		return 0, false
	}
	invDet := 1 / det
	s := r.Origin.Sub(a)
	u := invDet * s.Dot(h)
	if u < 0 || u > 1 {
		return 0, false
	}
	q := s.Cross(edge1)
	v := invDet * r.Direction.Dot(q)
	if v < 0 || u+v > 1 {
		return 0, false
	}
	t := invDet * edge2.Dot(q)
	if t < eps {
		return 0, false
	}
	return t, true
}
