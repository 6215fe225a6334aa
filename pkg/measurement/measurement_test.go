package measurement

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/gosnap/pkg/geometry"
	"github.com/philipparndt/gosnap/pkg/snap"
)

func result(kind snap.Kind, x, y, z float64) snap.Result {
	return snap.Result{Point: geometry.NewVector3(x, y, z), Kind: kind, Snapped: kind != snap.KindFace}
}

func TestBuildLabels(t *testing.T) {
	tests := []struct {
		name   string
		first  snap.Result
		second snap.Result
		kind   Kind
		label  string
	}{
		{"center then quadrant", result(snap.KindCenter, 0, 0, 0), result(snap.KindQuadrant, 0.025, 0, 0), KindRadius, "R 25.0 mm"},
		{"quadrant then center", result(snap.KindQuadrant, 0, 0.025, 0), result(snap.KindCenter, 0, 0, 0), KindRadius, "R 25.0 mm"},
		{"two quadrants", result(snap.KindQuadrant, 0, 0, 0), result(snap.KindQuadrant, 0.025, 0, 0), KindDiameter, "Ø 25.0 mm"},
		{"vertex and edge", result(snap.KindVertex, 0, 0, 0), result(snap.KindEdge, 3, 4, 0), KindDistance, ""},
		{"center and vertex", result(snap.KindCenter, 0, 0, 0), result(snap.KindVertex, 1, 0, 0), KindDistance, ""},
		{"two centers", result(snap.KindCenter, 0, 0, 0), result(snap.KindCenter, 1, 0, 0), KindDistance, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Build(tt.first, tt.second)

			assert.Equal(t, tt.kind, m.Kind)
			assert.Equal(t, tt.label, m.Label)
			assert.Equal(t, tt.first.Point, m.Start)
			assert.Equal(t, tt.second.Point, m.End)
			assert.InDelta(t, tt.first.Point.Distance(tt.second.Point), m.Distance, 1e-12)
		})
	}
}

func TestBuildAssignsUniqueIDs(t *testing.T) {
	a := Build(result(snap.KindVertex, 0, 0, 0), result(snap.KindVertex, 1, 0, 0))
	b := Build(result(snap.KindVertex, 0, 0, 0), result(snap.KindVertex, 1, 0, 0))

	_, err := uuid.Parse(a.ID)
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestDisplayText(t *testing.T) {
	plain := Build(result(snap.KindVertex, 0, 0, 0), result(snap.KindVertex, 0, 0.5, 0))
	radius := Build(result(snap.KindCenter, 0, 0, 0), result(snap.KindQuadrant, 2, 0, 0))

	assert.Equal(t, "50.00 cm", plain.DisplayText())
	assert.Equal(t, "R 2.000 m", radius.DisplayText())
	assert.Equal(t, geometry.NewVector3(0, 0.25, 0), plain.Midpoint())
}

func TestFormatDistance(t *testing.T) {
	tests := []struct {
		d        float64
		expected string
	}{
		{0, "0.0 mm"},
		{0.005, "5.0 mm"},
		{0.025, "25.0 mm"},
		{0.0999, "99.9 mm"},
		{0.1, "10.00 cm"},
		{0.5, "50.00 cm"},
		{1.0, "1.000 m"},
		{12.3456, "12.346 m"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, FormatDistance(tt.d), "FormatDistance(%v)", tt.d)
	}
}

func TestBuilderPairsPoints(t *testing.T) {
	b := NewBuilder()

	_, done := b.Add(result(snap.KindCenter, 0, 0, 0))
	assert.False(t, done)
	pending, ok := b.Pending()
	require.True(t, ok)
	assert.Equal(t, snap.KindCenter, pending.Kind)

	m, done := b.Add(result(snap.KindQuadrant, 0.01, 0, 0))
	require.True(t, done)
	assert.Equal(t, "R 10.0 mm", m.Label)
	_, ok = b.Pending()
	assert.False(t, ok)

	b.Add(result(snap.KindVertex, 0, 0, 0))
	b.Cancel()
	b.Add(result(snap.KindVertex, 1, 0, 0))
	b.Add(result(snap.KindVertex, 1, 1, 0))

	list := b.Measurements()
	require.Len(t, list, 2)
	assert.Equal(t, geometry.NewVector3(1, 0, 0), list[1].Start)

	b.Clear()
	assert.Empty(t, b.Measurements())
}
