package geometry

import (
	"math"
	"testing"
)

func TestTriangleArea(t *testing.T) {
	tests := []struct {
		name     string
		tri      Triangle
		expected float64
	}{
		{
			"right triangle",
			NewTriangle(Vector3{}, NewVector3(0, 0, 0), NewVector3(4, 0, 0), NewVector3(0, 3, 0)),
			6,
		},
		{
			"vertical",
			NewTriangle(Vector3{}, NewVector3(0, 0, 0), NewVector3(2, 0, 0), NewVector3(0, 0, 2)),
			2,
		},
		{
			"degenerate",
			NewTriangle(Vector3{}, NewVector3(0, 0, 0), NewVector3(1, 1, 1), NewVector3(2, 2, 2)),
			0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.tri.Area(); math.Abs(got-tt.expected) > 1e-10 {
				t.Errorf("expected area %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestTriangleCalculateNormal(t *testing.T) {
	tri := NewTriangle(Vector3{}, NewVector3(0, 0, 0), NewVector3(1, 0, 0), NewVector3(0, 1, 0))

	normal := tri.CalculateNormal()
	if math.Abs(normal.X) > 1e-10 || math.Abs(normal.Y) > 1e-10 || math.Abs(normal.Z-1) > 1e-10 {
		t.Errorf("expected +Z normal, got %+v", normal)
	}
}

func TestTriangleEdgeLengths(t *testing.T) {
	tri := NewTriangle(Vector3{}, NewVector3(0, 0, 0), NewVector3(3, 0, 0), NewVector3(3, 4, 0))

	expected := [3]float64{3, 4, 5}
	lengths := tri.EdgeLengths()
	for i := range expected {
		if math.Abs(lengths[i]-expected[i]) > 1e-10 {
			t.Errorf("edge %d: expected %v, got %v", i, expected[i], lengths[i])
		}
	}
}

func TestTriangleZRange(t *testing.T) {
	tests := []struct {
		name             string
		tri              Triangle
		expMinZ, expMaxZ float64
	}{
		{
			"straddling",
			NewTriangle(Vector3{}, NewVector3(0, 0, -2), NewVector3(1, 0, 5), NewVector3(0, 1, 1)),
			-2, 5,
		},
		{
			"flat",
			NewTriangle(Vector3{}, NewVector3(0, 0, 3), NewVector3(1, 0, 3), NewVector3(0, 1, 3)),
			3, 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.tri.MinZ(); got != tt.expMinZ {
				t.Errorf("expected MinZ %v, got %v", tt.expMinZ, got)
			}
			if got := tt.tri.MaxZ(); got != tt.expMaxZ {
				t.Errorf("expected MaxZ %v, got %v", tt.expMaxZ, got)
			}
		})
	}
}
