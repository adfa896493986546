package analysis

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/philipparndt/gopose/pkg/geometry"
	"github.com/philipparndt/gopose/pkg/mesh"
	"github.com/philipparndt/gopose/pkg/section"
)

// ModelResult contains measurements of a loaded mesh
type ModelResult struct {
	BoundingBox   geometry.BoundingBox
	Dimensions    geometry.Vector3
	SurfaceArea   float64
	TriangleCount int

	// Edge length statistics over all facets, a quick tessellation
	// quality check before slicing
	MinEdgeLength float64
	MaxEdgeLength float64
	AvgEdgeLength float64
}

// AnalyzeModel measures a mesh model
func AnalyzeModel(model *mesh.Model) *ModelResult {
	result := &ModelResult{
		BoundingBox:   model.BoundingBox(),
		SurfaceArea:   model.SurfaceArea(),
		TriangleCount: model.TriangleCount(),
	}
	result.Dimensions = result.BoundingBox.Size()

	total := 0.0
	count := 0
	for _, triangle := range model.Triangles {
		for _, length := range triangle.EdgeLengths() {
			if count == 0 || length < result.MinEdgeLength {
				result.MinEdgeLength = length
			}
			if length > result.MaxEdgeLength {
				result.MaxEdgeLength = length
			}
			total += length
			count++
		}
	}
	if count > 0 {
		result.AvgEdgeLength = total / float64(count)
	}

	return result
}

// SectionResult contains measurements of a planar cross-section
type SectionResult struct {
	ContourCount int
	PointCount   int
	Area         float64
	Min, Max     r2.Vec
}

// AnalyzeSection measures the contours of a cross-section
func AnalyzeSection(s *section.Section) *SectionResult {
	result := &SectionResult{ContourCount: len(s.Polygons)}

	first := true
	for _, polygon := range s.Polygons {
		result.PointCount += len(polygon)
		result.Area += polygon.Area()

		min, max := polygon.Bounds()
		if first {
			result.Min, result.Max = min, max
			first = false
			continue
		}
		if min.X < result.Min.X {
			result.Min.X = min.X
		}
		if min.Y < result.Min.Y {
			result.Min.Y = min.Y
		}
		if max.X > result.Max.X {
			result.Max.X = max.X
		}
		if max.Y > result.Max.Y {
			result.Max.Y = max.Y
		}
	}

	return result
}

// FormatVector formats a 3D vector for CLI output
func FormatVector(v geometry.Vector3) string {
	return fmt.Sprintf("(%.3f, %.3f, %.3f)", v.X, v.Y, v.Z)
}

// FormatVec2 formats a 2D vector for CLI output
func FormatVec2(v r2.Vec) string {
	return fmt.Sprintf("(%.3f, %.3f)", v.X, v.Y)
}
