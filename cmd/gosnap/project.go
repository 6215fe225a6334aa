package main

import (
	"fmt"
	"os"

	"github.com/philipparndt/gosnap/pkg/camera"
	"github.com/spf13/cobra"
)

var (
	projectPose   poseFlags
	projectPoint  []float64
	projectWidth  int
	projectHeight int

	unprojectPose poseFlags
	unprojectU    float64
	unprojectV    float64
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Map a world point to screen coordinates",
	Long: `Project a world point through a perspective camera. U grows right and V grows
down; points inside the view map to [0,1]. Points behind the camera are not clipped.`,
	Args: cobra.NoArgs,
	Run:  runProject,
}

var unprojectCmd = &cobra.Command{
	Use:   "unproject",
	Short: "Map screen coordinates to a world ray",
	Long:  "Return the ray from the camera position through a normalized screen coordinate.",
	Args:  cobra.NoArgs,
	Run:   runUnproject,
}

func init() {
	rootCmd.AddCommand(projectCmd)
	rootCmd.AddCommand(unprojectCmd)

	projectPose.register(projectCmd)
	projectCmd.Flags().Float64SliceVar(&projectPoint, "point", nil, "World point x,y,z")
	projectCmd.Flags().IntVar(&projectWidth, "width", 0, "Image width for pixel output")
	projectCmd.Flags().IntVar(&projectHeight, "height", 0, "Image height for pixel output")
	projectCmd.MarkFlagRequired("point")

	unprojectPose.register(unprojectCmd)
	unprojectCmd.Flags().Float64Var(&unprojectU, "u", 0.5, "Horizontal screen coordinate in [0,1]")
	unprojectCmd.Flags().Float64Var(&unprojectV, "v", 0.5, "Vertical screen coordinate in [0,1]")
}

func runProject(cmd *cobra.Command, args []string) {
	pose, err := projectPose.pose()
	if err != nil {
		fatal("Error", err)
	}
	point, err := vectorFlag("point", projectPoint)
	if err != nil {
		fatal("Error", err)
	}

	uv, err := camera.Project(pose, point)
	if err != nil {
		fatal("Error projecting point", err)
	}

	fmt.Printf("UV: (%.6f, %.6f)\n", uv.U, uv.V)
	if projectWidth > 0 && projectHeight > 0 {
		x, y := uv.Pixel(projectWidth, projectHeight)
		fmt.Printf("Pixel: (%.2f, %.2f)\n", x, y)
	}
	if uv.U < 0 || uv.U > 1 || uv.V < 0 || uv.V > 1 {
		fmt.Fprintln(os.Stderr, "Note: point is outside the view")
	}
}

func runUnproject(cmd *cobra.Command, args []string) {
	pose, err := unprojectPose.pose()
	if err != nil {
		fatal("Error", err)
	}

	ray, err := camera.Unproject(pose, unprojectU, unprojectV)
	if err != nil {
		fatal("Error unprojecting point", err)
	}

	fmt.Printf("Origin: %s\n", formatVector(ray.Origin))
	fmt.Printf("Direction: %s\n", formatVector(ray.Direction))
}
