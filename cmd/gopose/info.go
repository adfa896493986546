package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gopose/pkg/analysis"
	"github.com/philipparndt/gopose/pkg/mesh"
	"github.com/philipparndt/gopose/pkg/section"
)

var infoCmd = &cobra.Command{
	Use:   "info [file]",
	Short: "Display information about a mesh file and its Z=0 cross-section",
	Long:  "Show mesh statistics (dimensions, triangle count, surface area) and the contours produced by slicing the mesh at the Z=0 plane.",
	Args:  cobra.ExactArgs(1),
	Run:   runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) {
	filename := args[0]

	model, err := mesh.Load(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading mesh file: %v\n", err)
		os.Exit(1)
	}

	result := analysis.AnalyzeModel(model)

	fmt.Println("Mesh File Information")
	fmt.Println("=====================")
	if model.Name != "" {
		fmt.Printf("Name: %s\n", model.Name)
	}
	fmt.Printf("File: %s\n\n", filename)

	fmt.Println("Model Statistics:")
	fmt.Printf("  Triangles: %d\n", result.TriangleCount)
	fmt.Printf("  Surface Area: %.6f square units\n\n", result.SurfaceArea)

	fmt.Println("Bounding Box:")
	fmt.Printf("  Min: %s\n", analysis.FormatVector(result.BoundingBox.Min))
	fmt.Printf("  Max: %s\n", analysis.FormatVector(result.BoundingBox.Max))
	fmt.Printf("  Center: %s\n\n", analysis.FormatVector(result.BoundingBox.Center()))

	fmt.Println("Dimensions:")
	fmt.Printf("  Width (X): %.6f units\n", result.Dimensions.X)
	fmt.Printf("  Depth (Y): %.6f units\n", result.Dimensions.Y)
	fmt.Printf("  Height (Z): %.6f units\n", result.Dimensions.Z)
	fmt.Printf("  Diagonal: %.6f units\n\n", result.BoundingBox.Diagonal())

	fmt.Println("Edge Lengths:")
	fmt.Printf("  Minimum: %.6f units\n", result.MinEdgeLength)
	fmt.Printf("  Maximum: %.6f units\n", result.MaxEdgeLength)
	fmt.Printf("  Average: %.6f units\n\n", result.AvgEdgeLength)

	cut, err := section.Slice(model, 0)
	if errors.Is(err, section.ErrEmptySection) {
		fmt.Println("Cross-Section at Z=0: none (mesh does not cross the plane)")
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error slicing mesh: %v\n", err)
		os.Exit(1)
	}

	cutResult := analysis.AnalyzeSection(cut)
	fmt.Println("Cross-Section at Z=0:")
	fmt.Printf("  Contours: %d\n", cutResult.ContourCount)
	fmt.Printf("  Points: %d\n", cutResult.PointCount)
	fmt.Printf("  Area: %.6f square units\n", cutResult.Area)
	fmt.Printf("  Min: %s\n", analysis.FormatVec2(cutResult.Min))
	fmt.Printf("  Max: %s\n", analysis.FormatVec2(cutResult.Max))
}
