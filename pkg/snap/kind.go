package snap

import "github.com/philipparndt/gosnap/pkg/geometry"

// Kind identifies what a snap point was attached to
type Kind string

// Snap kinds
const (
	KindVertex   Kind = "vertex"
	KindEdge     Kind = "edge"
	KindFace     Kind = "face"
	KindCenter   Kind = "center"
	KindQuadrant Kind = "quadrant"
)

// IsVirtual reports whether the kind is derived from a fitted circle
func (k Kind) IsVirtual() bool {
	return k == KindCenter || k == KindQuadrant
}

// Result is the outcome of resolving a hit
type Result struct {
	Point   geometry.Vector3
	Normal  geometry.Vector3
	Kind    Kind
	Snapped bool // False only for the raw face fallback
}
