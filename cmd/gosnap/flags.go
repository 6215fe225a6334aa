package main

import (
	"fmt"

	"github.com/philipparndt/gosnap/pkg/camera"
	"github.com/philipparndt/gosnap/pkg/geometry"
	"github.com/spf13/cobra"
)

// poseFlags are the camera flags shared by project, unproject and snapshot
type poseFlags struct {
	position []float64
	target   []float64
	fov      float64
	aspect   float64
}

func (p *poseFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64SliceVar(&p.position, "position", []float64{0, 0, 10}, "Camera position x,y,z")
	cmd.Flags().Float64SliceVar(&p.target, "target", []float64{0, 0, 0}, "Camera target x,y,z")
	cmd.Flags().Float64Var(&p.fov, "fov", camera.DefaultFOV, "Vertical field of view in degrees")
	cmd.Flags().Float64Var(&p.aspect, "aspect", 1, "Aspect ratio (width / height)")
}

func (p *poseFlags) pose() (camera.Pose, error) {
	position, err := vectorFlag("position", p.position)
	if err != nil {
		return camera.Pose{}, err
	}
	target, err := vectorFlag("target", p.target)
	if err != nil {
		return camera.Pose{}, err
	}
	pose := camera.Pose{Position: position, Target: target, FOV: p.fov, Aspect: p.aspect}
	return pose, pose.Validate()
}

// vectorFlag converts an x,y,z slice flag
func vectorFlag(name string, values []float64) (geometry.Vector3, error) {
	if len(values) != 3 {
		return geometry.Vector3{}, fmt.Errorf("--%s needs 3 values, got %d", name, len(values))
	}
	return geometry.NewVector3(values[0], values[1], values[2]), nil
}

// rayFlags splits repeated ox,oy,oz,dx,dy,dz flags into rays
func rayFlags(name string, values []float64) ([]geometry.Ray, error) {
	if len(values)%6 != 0 {
		return nil, fmt.Errorf("--%s needs 6 values per ray, got %d", name, len(values))
	}
	rays := make([]geometry.Ray, 0, len(values)/6)
	for i := 0; i < len(values); i += 6 {
		direction := geometry.NewVector3(values[i+3], values[i+4], values[i+5])
		if direction.IsZero() {
			return nil, fmt.Errorf("--%s ray %d has no direction", name, i/6+1)
		}
		origin := geometry.NewVector3(values[i], values[i+1], values[i+2])
		rays = append(rays, geometry.NewRay(origin, direction))
	}
	return rays, nil
}
