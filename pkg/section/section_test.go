package section

import (
	"errors"
	"math"
	"testing"

	"github.com/philipparndt/gopose/pkg/geometry"
	"github.com/philipparndt/gopose/pkg/mesh"
)

// makeBox builds an axis-aligned box mesh from 12 triangles
func makeBox(min, max geometry.Vector3) *mesh.Model {
	model := mesh.NewModel("box")

	corners := [8]geometry.Vector3{
		{X: min.X, Y: min.Y, Z: min.Z},
		{X: max.X, Y: min.Y, Z: min.Z},
		{X: max.X, Y: max.Y, Z: min.Z},
		{X: min.X, Y: max.Y, Z: min.Z},
		{X: min.X, Y: min.Y, Z: max.Z},
		{X: max.X, Y: min.Y, Z: max.Z},
		{X: max.X, Y: max.Y, Z: max.Z},
		{X: min.X, Y: max.Y, Z: max.Z},
	}

	quads := [6][4]int{
		{0, 3, 2, 1}, // bottom
		{4, 5, 6, 7}, // top
		{0, 1, 5, 4}, // front
		{2, 3, 7, 6}, // back
		{1, 2, 6, 5}, // right
		{0, 4, 7, 3}, // left
	}

	for _, q := range quads {
		t1 := geometry.NewTriangle(geometry.Vector3{}, corners[q[0]], corners[q[1]], corners[q[2]])
		t2 := geometry.NewTriangle(geometry.Vector3{}, corners[q[0]], corners[q[2]], corners[q[3]])
		t1.Normal = t1.CalculateNormal()
		t2.Normal = t2.CalculateNormal()
		model.AddTriangle(t1)
		model.AddTriangle(t2)
	}

	return model
}

func TestSliceBox(t *testing.T) {
	box := makeBox(geometry.NewVector3(0, 0, -1), geometry.NewVector3(10, 10, 1))

	result, err := Slice(box, 0)
	if err != nil {
		t.Fatalf("Slice failed: %v", err)
	}

	if len(result.Polygons) != 1 {
		t.Fatalf("expected 1 contour, got %d", len(result.Polygons))
	}

	polygon := result.Polygons[0]
	if len(polygon) < 4 {
		t.Errorf("expected at least 4 points, got %d", len(polygon))
	}

	if area := polygon.Area(); math.Abs(area-100.0) > 1e-6 {
		t.Errorf("expected area 100, got %v", area)
	}

	min, max := polygon.Bounds()
	if math.Abs(min.X) > 1e-9 || math.Abs(min.Y) > 1e-9 ||
		math.Abs(max.X-10) > 1e-9 || math.Abs(max.Y-10) > 1e-9 {
		t.Errorf("unexpected contour bounds: min=%v max=%v", min, max)
	}
}

func TestSliceMissesMesh(t *testing.T) {
	box := makeBox(geometry.NewVector3(0, 0, 5), geometry.NewVector3(10, 10, 15))

	_, err := Slice(box, 0)
	if !errors.Is(err, ErrEmptySection) {
		t.Errorf("expected ErrEmptySection, got %v", err)
	}
}

func TestSliceVertexTouch(t *testing.T) {
	// A single triangle touching the plane in exactly one vertex
	model := mesh.NewModel("touch")
	tri := geometry.NewTriangle(
		geometry.Vector3{},
		geometry.NewVector3(0, 0, 0),
		geometry.NewVector3(1, 0, 1),
		geometry.NewVector3(0, 1, 1),
	)
	model.AddTriangle(tri)

	_, err := Slice(model, 0)
	if !errors.Is(err, ErrEmptySection) {
		t.Errorf("expected ErrEmptySection, got %v", err)
	}
}

func TestSliceTwoBodies(t *testing.T) {
	model := mesh.NewModel("pair")
	for _, box := range []*mesh.Model{
		makeBox(geometry.NewVector3(0, 0, -1), geometry.NewVector3(2, 2, 1)),
		makeBox(geometry.NewVector3(5, 5, -1), geometry.NewVector3(8, 8, 1)),
	} {
		for _, tri := range box.Triangles {
			model.AddTriangle(tri)
		}
	}

	result, err := Slice(model, 0)
	if err != nil {
		t.Fatalf("Slice failed: %v", err)
	}

	if len(result.Polygons) != 2 {
		t.Fatalf("expected 2 contours, got %d", len(result.Polygons))
	}

	total := result.Polygons[0].Area() + result.Polygons[1].Area()
	if math.Abs(total-13.0) > 1e-6 {
		t.Errorf("expected total area 13, got %v", total)
	}
}

func TestSliceTo3DMatrix(t *testing.T) {
	box := makeBox(geometry.NewVector3(0, 0, 2), geometry.NewVector3(4, 4, 8))

	result, err := Slice(box, 5)
	if err != nil {
		t.Fatalf("Slice failed: %v", err)
	}

	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			expected := 0.0
			if r == c {
				expected = 1.0
			}
			if r == 2 && c == 3 {
				expected = 5.0
			}
			if got := result.To3D.At(r, c); math.Abs(got-expected) > 1e-12 {
				t.Errorf("To3D[%d][%d]: expected %v, got %v", r, c, expected, got)
			}
		}
	}
}
