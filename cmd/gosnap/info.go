package main

import (
	"context"
	"fmt"

	"github.com/philipparndt/gosnap/pkg/analysis"
	"github.com/philipparndt/gosnap/pkg/geometry"
	"github.com/philipparndt/gosnap/pkg/measurement"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info [file]",
	Short: "Display general information about a model",
	Long:  "Show meshes, dimensions, triangle and vertex counts, surface area and edge statistics.",
	Args:  cobra.ExactArgs(1),
	Run:   runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) {
	model := loadModel(context.Background(), args[0])
	result := analysis.AnalyzeScene(model.Scene)

	fmt.Println("Model Information")
	fmt.Println("=================")
	fmt.Printf("File: %s (%s)\n", model.Source, model.Format)
	if len(model.Files) > 1 {
		fmt.Printf("Dependencies: %d files\n", len(model.Files)-1)
	}
	fmt.Println()

	fmt.Println("Meshes:")
	for _, m := range result.Meshes {
		fmt.Printf("  %-24s %8d triangles %8d vertices\n", m.Name, m.TriangleCount, m.VertexCount)
	}
	fmt.Println()

	fmt.Println("Model Statistics:")
	fmt.Printf("  Triangles: %d\n", result.TriangleCount)
	fmt.Printf("  Vertices: %d\n", result.VertexCount)
	fmt.Printf("  Edges: %d\n", result.EdgeCount)
	fmt.Printf("  Surface Area: %.6f square units\n\n", result.SurfaceArea)

	fmt.Println("Bounding Box:")
	fmt.Printf("  Min: %s\n", formatVector(result.BoundingBox.Min))
	fmt.Printf("  Max: %s\n", formatVector(result.BoundingBox.Max))
	fmt.Printf("  Center: %s\n\n", formatVector(result.BoundingBox.Center()))

	fmt.Println("Dimensions:")
	fmt.Printf("  Width (X): %s\n", measurement.FormatDistance(result.Dimensions.X))
	fmt.Printf("  Height (Y): %s\n", measurement.FormatDistance(result.Dimensions.Y))
	fmt.Printf("  Depth (Z): %s\n", measurement.FormatDistance(result.Dimensions.Z))
	fmt.Printf("  Diagonal: %s\n", measurement.FormatDistance(result.BoundingBox.Diagonal()))
	fmt.Printf("  Volume: %.6f cubic units\n\n", result.Volume)

	fmt.Println("Edge Lengths:")
	fmt.Printf("  Minimum: %.6f units\n", result.MinEdgeLength)
	fmt.Printf("  Maximum: %.6f units\n", result.MaxEdgeLength)
	fmt.Printf("  Average: %.6f units\n", result.AvgEdgeLength)
	fmt.Printf("  Std Dev: %.6f units\n", result.EdgeStdDev)
}

func formatVector(v geometry.Vector3) string {
	return measurement.FormatVector(v.X, v.Y, v.Z)
}
