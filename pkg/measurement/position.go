package measurement

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/philipparndt/gosnap/pkg/geometry"
)

// ErrUnknownPosition reports a position payload with a missing or unknown type
var ErrUnknownPosition = errors.New("unknown position type")

// Position type discriminators
const (
	PositionType3D = "3d"
	PositionType2D = "2d"
)

// Position is where an annotation is anchored: a world point or a point on a
// flattened page. Implementations are Position3D and Position2D.
type Position interface {
	PositionType() string
	isPosition()
}

// Position3D is a world-space anchor
type Position3D struct {
	X, Y, Z float64
}

// Position2D is a normalized anchor on a page of a flattened view
type Position2D struct {
	Page int
	X, Y float64
}

func (Position3D) PositionType() string { return PositionType3D }
func (Position2D) PositionType() string { return PositionType2D }

func (Position3D) isPosition() {}
func (Position2D) isPosition() {}

// Vector returns the anchor as a vector
func (p Position3D) Vector() geometry.Vector3 {
	return geometry.NewVector3(p.X, p.Y, p.Z)
}

// NewPosition3D creates a world-space anchor
func NewPosition3D(v geometry.Vector3) Position3D {
	return Position3D{X: v.X, Y: v.Y, Z: v.Z}
}

type positionJSON struct {
	Type string   `json:"type"`
	Page *int     `json:"page,omitempty"`
	X    float64  `json:"x"`
	Y    float64  `json:"y"`
	Z    *float64 `json:"z,omitempty"`
}

// MarshalPosition encodes a position with its type discriminator
func MarshalPosition(p Position) ([]byte, error) {
	switch v := p.(type) {
	case Position3D:
		z := v.Z
		return json.Marshal(positionJSON{Type: PositionType3D, X: v.X, Y: v.Y, Z: &z})
	case Position2D:
		page := v.Page
		return json.Marshal(positionJSON{Type: PositionType2D, Page: &page, X: v.X, Y: v.Y})
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownPosition, p)
	}
}

// UnmarshalPosition decodes a position by its type discriminator
func UnmarshalPosition(data []byte) (Position, error) {
	var raw positionJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode position: %w", err)
	}

	switch raw.Type {
	case PositionType3D:
		if raw.Z == nil {
			return nil, fmt.Errorf("%w: 3d position without z", ErrUnknownPosition)
		}
		return Position3D{X: raw.X, Y: raw.Y, Z: *raw.Z}, nil
	case PositionType2D:
		if raw.Page == nil {
			return nil, fmt.Errorf("%w: 2d position without page", ErrUnknownPosition)
		}
		return Position2D{Page: *raw.Page, X: raw.X, Y: raw.Y}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPosition, raw.Type)
	}
}

// Annotation is a text note anchored at a position
type Annotation struct {
	ID       string
	Text     string
	Position Position
}

type annotationJSON struct {
	ID       string          `json:"id"`
	Text     string          `json:"text"`
	Position json.RawMessage `json:"position"`
}

// MarshalJSON implements json.Marshaler
func (a Annotation) MarshalJSON() ([]byte, error) {
	pos, err := MarshalPosition(a.Position)
	if err != nil {
		return nil, err
	}
	return json.Marshal(annotationJSON{ID: a.ID, Text: a.Text, Position: pos})
}

// UnmarshalJSON implements json.Unmarshaler
func (a *Annotation) UnmarshalJSON(data []byte) error {
	var raw annotationJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	pos, err := UnmarshalPosition(raw.Position)
	if err != nil {
		return err
	}
	a.ID, a.Text, a.Position = raw.ID, raw.Text, pos
	return nil
}
