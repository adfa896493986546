package geometry

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func unitSquare() Polygon {
	return Polygon{
		{X: 0, Y: 0},
		{X: 1, Y: 0},
		{X: 1, Y: 1},
		{X: 0, Y: 1},
	}
}

func TestPolygonArea(t *testing.T) {
	area := unitSquare().Area()
	if math.Abs(area-1.0) > 1e-10 {
		t.Errorf("Area failed: expected 1.0, got %v", area)
	}
}

func TestPolygonAreaDegenerate(t *testing.T) {
	line := Polygon{{X: 0, Y: 0}, {X: 1, Y: 1}}
	if area := line.Area(); area != 0 {
		t.Errorf("Area of degenerate polygon: expected 0, got %v", area)
	}
}

func TestPolygonRotate(t *testing.T) {
	p := Polygon{{X: 1, Y: 0}}
	rotated := p.Rotate(90)

	if math.Abs(rotated[0].X) > 1e-10 || math.Abs(rotated[0].Y-1.0) > 1e-10 {
		t.Errorf("Rotate failed: expected (0, 1), got (%v, %v)", rotated[0].X, rotated[0].Y)
	}
}

func TestPolygonRotateAboutOrigin(t *testing.T) {
	// Rotation must be about (0,0), not the polygon centroid
	p := Polygon{{X: 2, Y: 0}, {X: 3, Y: 0}, {X: 3, Y: 1}}
	rotated := p.Rotate(180)

	if math.Abs(rotated[0].X+2.0) > 1e-10 || math.Abs(rotated[0].Y) > 1e-10 {
		t.Errorf("Rotate about origin failed: expected (-2, 0), got (%v, %v)", rotated[0].X, rotated[0].Y)
	}
}

func TestPolygonTranslate(t *testing.T) {
	p := unitSquare().Translate(r2.Vec{X: 10, Y: 20})

	if p[0].X != 10 || p[0].Y != 20 {
		t.Errorf("Translate failed: expected (10, 20), got (%v, %v)", p[0].X, p[0].Y)
	}
	if p[2].X != 11 || p[2].Y != 21 {
		t.Errorf("Translate failed: expected (11, 21), got (%v, %v)", p[2].X, p[2].Y)
	}
}

func TestPolygonBounds(t *testing.T) {
	p := Polygon{{X: -1, Y: 2}, {X: 3, Y: -4}, {X: 0, Y: 0}}
	min, max := p.Bounds()

	if min.X != -1 || min.Y != -4 {
		t.Errorf("Bounds min failed: got (%v, %v)", min.X, min.Y)
	}
	if max.X != 3 || max.Y != 2 {
		t.Errorf("Bounds max failed: got (%v, %v)", max.X, max.Y)
	}
}
