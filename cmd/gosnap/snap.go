package main

import (
	"context"
	"fmt"
	"os"

	"github.com/philipparndt/gosnap/pkg/geometry"
	"github.com/philipparndt/gosnap/pkg/mesh"
	"github.com/philipparndt/gosnap/pkg/snap"
	"github.com/spf13/cobra"
)

var (
	originX, originY, originZ float64
	dirX, dirY, dirZ          float64
	snapTolerance             float64
)

var snapCmd = &cobra.Command{
	Use:   "snap [file]",
	Short: "Cast a ray at a model and snap the hit",
	Long: `Cast a ray from an origin along a direction, intersect it with the model and
resolve the closest hit to a vertex, edge, face or fitted circle center or quadrant.`,
	Args: cobra.ExactArgs(1),
	Run:  runSnap,
}

func init() {
	rootCmd.AddCommand(snapCmd)

	snapCmd.Flags().Float64Var(&originX, "ox", 0.0, "X coordinate of the ray origin")
	snapCmd.Flags().Float64Var(&originY, "oy", 0.0, "Y coordinate of the ray origin")
	snapCmd.Flags().Float64Var(&originZ, "oz", 0.0, "Z coordinate of the ray origin")
	snapCmd.Flags().Float64Var(&dirX, "dx", 0.0, "X component of the ray direction")
	snapCmd.Flags().Float64Var(&dirY, "dy", 0.0, "Y component of the ray direction")
	snapCmd.Flags().Float64Var(&dirZ, "dz", -1.0, "Z component of the ray direction")
	snapCmd.Flags().Float64VarP(&snapTolerance, "tolerance", "t", 0.0, "Snap tolerance in world units (0 uses the configured value)")
}

func runSnap(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	model := loadModel(context.Background(), args[0])
	resolver := snap.NewResolver(cfg.Snap, nil)

	direction := geometry.NewVector3(dirX, dirY, dirZ)
	if direction.IsZero() {
		fmt.Fprintln(os.Stderr, "Error: ray direction must not be zero")
		os.Exit(1)
	}
	ray := geometry.NewRay(geometry.NewVector3(originX, originY, originZ), direction)

	result, ok := snapRay(model.Scene, resolver, ray, snapTolerance)
	if !ok {
		fmt.Println("No hit")
		os.Exit(2)
	}

	fmt.Println("Snap Result")
	fmt.Println("===========")
	printResult(result)
}

// snapRay intersects a ray with the scene and resolves the hit
func snapRay(scene mesh.Scene, resolver *snap.Resolver, ray geometry.Ray, tolerance float64) (snap.Result, bool) {
	hit, ok := scene.Raycast(ray)
	if !ok {
		return snap.Result{}, false
	}
	return resolver.Resolve(hit, tolerance), true
}

func printResult(result snap.Result) {
	fmt.Printf("  Kind: %s\n", result.Kind)
	fmt.Printf("  Point: %s\n", formatVector(result.Point))
	fmt.Printf("  Normal: %s\n", formatVector(result.Normal))
	fmt.Printf("  Snapped: %t\n", result.Snapped)
}
