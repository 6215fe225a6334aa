// Package measurement builds labeled distance measurements from snap points.
package measurement

import (
	"github.com/google/uuid"

	"github.com/philipparndt/gosnap/pkg/geometry"
	"github.com/philipparndt/gosnap/pkg/snap"
)

// Kind is the inferred dimension type of a measurement
type Kind string

// Measurement kinds
const (
	KindDistance Kind = "distance"
	KindRadius   Kind = "radius"
	KindDiameter Kind = "diameter"
)

// Label prefixes
const (
	RadiusPrefix   = "R "
	DiameterPrefix = "Ø "
)

// Measurement is an immutable distance between two snap points
type Measurement struct {
	ID       string           `json:"id"`
	Start    geometry.Vector3 `json:"start"`
	End      geometry.Vector3 `json:"end"`
	Distance float64          `json:"distance"`
	Label    string           `json:"label,omitempty"` // Empty for plain distances
	Kind     Kind             `json:"kind"`
}

// Build measures between two snap results and infers the label from their kinds.
// A center and a quadrant give a radius; two quadrants give a diameter without
// checking that they lie on the same circle.
func Build(first, second snap.Result) Measurement {
	distance := first.Point.Distance(second.Point)

	m := Measurement{
		ID:       uuid.NewString(),
		Start:    first.Point,
		End:      second.Point,
		Distance: distance,
		Kind:     InferKind(first.Kind, second.Kind),
	}

	switch m.Kind {
	case KindRadius:
		m.Label = RadiusPrefix + FormatDistance(distance)
	case KindDiameter:
		m.Label = DiameterPrefix + FormatDistance(distance)
	}

	return m
}

// InferKind returns the dimension type for a pair of snap kinds
func InferKind(a, b snap.Kind) Kind {
	switch {
	case a == snap.KindCenter && b == snap.KindQuadrant, a == snap.KindQuadrant && b == snap.KindCenter:
		return KindRadius
	case a == snap.KindQuadrant && b == snap.KindQuadrant:
		return KindDiameter
	default:
		return KindDistance
	}
}

// DisplayText returns the label, or the formatted distance for plain measurements
func (m Measurement) DisplayText() string {
	if m.Label != "" {
		return m.Label
	}
	return FormatDistance(m.Distance)
}

// Midpoint returns the point halfway between the endpoints
func (m Measurement) Midpoint() geometry.Vector3 {
	return geometry.Midpoint(m.Start, m.End)
}
