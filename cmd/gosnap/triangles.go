package main

import (
	"context"
	"fmt"

	"github.com/philipparndt/gosnap/pkg/analysis"
	"github.com/spf13/cobra"
)

var (
	triCount    int
	triLargest  bool
	triSmallest bool
)

var trianglesCmd = &cobra.Command{
	Use:   "triangles [file]",
	Short: "Analyze triangles of a model",
	Long:  "Display information about triangles including area, perimeter, and world-space vertex positions.",
	Args:  cobra.ExactArgs(1),
	Run:   runTriangles,
}

func init() {
	rootCmd.AddCommand(trianglesCmd)

	trianglesCmd.Flags().IntVarP(&triCount, "count", "n", 10, "Number of triangles to display")
	trianglesCmd.Flags().BoolVarP(&triLargest, "largest", "l", false, "Show largest triangles by area")
	trianglesCmd.Flags().BoolVarP(&triSmallest, "smallest", "s", false, "Show smallest triangles by area")

	trianglesCmd.MarkFlagsMutuallyExclusive("largest", "smallest")
}

func runTriangles(cmd *cobra.Command, args []string) {
	model := loadModel(context.Background(), args[0])

	order := analysis.OrderFace
	title := fmt.Sprintf("First %d Triangles", triCount)
	if triLargest {
		order = analysis.OrderLargest
		title = fmt.Sprintf("Top %d Largest Triangles", triCount)
	} else if triSmallest {
		order = analysis.OrderSmallest
		title = fmt.Sprintf("Top %d Smallest Triangles", triCount)
	}

	triangles, stats := analysis.ListTriangles(model.Scene, order)

	fmt.Println(title)
	fmt.Println("====================")
	fmt.Printf("Total triangles: %d\n", stats.Count)
	fmt.Printf("Total surface area: %.6f square units\n", stats.TotalArea)
	fmt.Printf("Min triangle area: %.6f square units\n", stats.MinArea)
	fmt.Printf("Max triangle area: %.6f square units\n", stats.MaxArea)
	fmt.Printf("Avg triangle area: %.6f square units\n\n", stats.AvgArea)

	for i := 0; i < triCount && i < len(triangles); i++ {
		tri := triangles[i]
		fmt.Printf("Triangle %s #%d:\n", tri.Mesh, tri.Face)
		fmt.Printf("  Area: %.6f square units\n", tri.Area)
		fmt.Printf("  Perimeter: %.6f units\n", tri.Perimeter)
		fmt.Printf("  Vertices: %s, %s, %s\n\n",
			formatVector(tri.Vertices[0]),
			formatVector(tri.Vertices[1]),
			formatVector(tri.Vertices[2]))
	}
}
