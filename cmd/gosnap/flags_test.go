package main

import (
	"testing"

	"github.com/philipparndt/gosnap/pkg/camera"
	"github.com/philipparndt/gosnap/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVectorFlag(t *testing.T) {
	v, err := vectorFlag("point", []float64{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, geometry.NewVector3(1, 2, 3), v)

	_, err = vectorFlag("point", []float64{1, 2})
	assert.EqualError(t, err, "--point needs 3 values, got 2")
}

func TestRayFlags(t *testing.T) {
	rays, err := rayFlags("pick", []float64{0, 0, 5, 0, 0, -2, 1, 1, 5, 0, 0, -1})
	require.NoError(t, err)
	require.Len(t, rays, 2)
	assert.Equal(t, geometry.NewVector3(0, 0, -1), rays[0].Direction)
	assert.Equal(t, geometry.NewVector3(1, 1, 5), rays[1].Origin)

	rays, err = rayFlags("pick", nil)
	require.NoError(t, err)
	assert.Empty(t, rays)

	_, err = rayFlags("pick", []float64{0, 0, 5, 0, 0})
	assert.Error(t, err)

	_, err = rayFlags("pick", []float64{0, 0, 5, 0, 0, 0})
	assert.EqualError(t, err, "--pick ray 1 has no direction")
}

func TestPoseFlags(t *testing.T) {
	p := poseFlags{position: []float64{0, 0, 10}, target: []float64{0, 0, 0}, fov: 60, aspect: 2}
	pose, err := p.pose()
	require.NoError(t, err)
	assert.Equal(t, 60.0, pose.FOV)
	assert.Equal(t, 2.0, pose.Aspect)

	p.target = p.position
	_, err = p.pose()
	assert.ErrorIs(t, err, camera.ErrDegeneratePose)

	p.target = []float64{1}
	_, err = p.pose()
	assert.Error(t, err)
}
