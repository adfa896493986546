package layout

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/philipparndt/gopose/pkg/geometry"
)

func squarePolygons() []geometry.Polygon {
	return []geometry.Polygon{{
		{X: 0, Y: 0},
		{X: 10, Y: 0},
		{X: 10, Y: 10},
		{X: 0, Y: 10},
	}}
}

func TestAddPlacesAtPageCenter(t *testing.T) {
	l := NewLayout(A3)
	object := l.Add("cube", squarePolygons(), nil)

	if object.Position.X != 210 || object.Position.Y != 148.5 {
		t.Errorf("expected center (210, 148.5), got (%v, %v)", object.Position.X, object.Position.Y)
	}
	if object.Rotation != 0 {
		t.Errorf("expected rotation 0, got %v", object.Rotation)
	}
	if len(l.Objects) != 1 {
		t.Errorf("expected 1 object, got %d", len(l.Objects))
	}
}

func TestClear(t *testing.T) {
	l := NewLayout(A4)
	l.Add("a", squarePolygons(), nil)
	l.Add("b", squarePolygons(), nil)

	l.Clear()
	if len(l.Objects) != 0 {
		t.Errorf("expected no objects after Clear, got %d", len(l.Objects))
	}
}

func TestSetPageKeepsPositions(t *testing.T) {
	l := NewLayout(A3)
	object := l.Add("cube", squarePolygons(), nil)
	object.Position = r2.Vec{X: 100, Y: 80}

	l.SetPage(A4)
	if object.Position.X != 100 || object.Position.Y != 80 {
		t.Errorf("SetPage must not rescale positions, got (%v, %v)", object.Position.X, object.Position.Y)
	}
}

func TestPageByName(t *testing.T) {
	page, err := PageByName("A2")
	if err != nil {
		t.Fatalf("PageByName failed: %v", err)
	}
	if page.W != 594 || page.H != 420 {
		t.Errorf("unexpected A2 size: %v x %v", page.W, page.H)
	}

	if _, err := PageByName("Letter"); err == nil {
		t.Error("expected error for unknown page size")
	}
}

func TestPositionBounds(t *testing.T) {
	l := NewLayout(A3)
	min, max := l.PositionBounds()

	if min.X != 15 || min.Y != 15 {
		t.Errorf("unexpected min bounds: %v", min)
	}
	if max.X != 405 || max.Y != 282 {
		t.Errorf("unexpected max bounds: %v", max)
	}
}

func TestPlacementMatrixRotationBlock(t *testing.T) {
	object := &PlacedObject{Position: r2.Vec{X: 40, Y: 60}, Rotation: 30}
	matrix := object.PlacementMatrix()

	theta := 30 * math.Pi / 180
	expected := [][2]float64{
		{math.Cos(theta), -math.Sin(theta)},
		{math.Sin(theta), math.Cos(theta)},
	}
	for r := 0; r < 2; r++ {
		for c := 0; c < 2; c++ {
			if got := matrix.At(r, c); math.Abs(got-expected[r][c]) > 1e-12 {
				t.Errorf("rotation block [%d][%d]: expected %v, got %v", r, c, expected[r][c], got)
			}
		}
	}

	// Translation column is position minus inset
	if got := matrix.At(0, 3); math.Abs(got-25) > 1e-12 {
		t.Errorf("tx: expected 25, got %v", got)
	}
	if got := matrix.At(1, 3); math.Abs(got-45) > 1e-12 {
		t.Errorf("ty: expected 45, got %v", got)
	}
	if got := matrix.At(2, 3); got != 0 {
		t.Errorf("tz: expected 0, got %v", got)
	}
}

func TestPlacementMatrixZeroRotation(t *testing.T) {
	object := &PlacedObject{Position: r2.Vec{X: 115, Y: 215}}
	matrix := object.PlacementMatrix()

	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			expected := 0.0
			if r == c {
				expected = 1.0
			}
			if r == 0 && c == 3 {
				expected = 100.0
			}
			if r == 1 && c == 3 {
				expected = 200.0
			}
			if got := matrix.At(r, c); math.Abs(got-expected) > 1e-12 {
				t.Errorf("[%d][%d]: expected %v, got %v", r, c, expected, got)
			}
		}
	}
}

func TestPlacementMatrixExample(t *testing.T) {
	// cube at (50, 30) rotated 90 degrees on A3
	object := &PlacedObject{Position: r2.Vec{X: 50, Y: 30}, Rotation: 90}
	rows := object.PlacementRows()

	expected := [4][4]float64{
		{0, -1, 0, 35},
		{1, 0, 0, 15},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			if math.Abs(rows[r][c]-expected[r][c]) > 1e-12 {
				t.Errorf("[%d][%d]: expected %v, got %v", r, c, expected[r][c], rows[r][c])
			}
		}
	}
}

func TestTransformedPolygonsRotateThenTranslate(t *testing.T) {
	object := &PlacedObject{
		Polygons: []geometry.Polygon{{{X: 1, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 1}}},
		Position: r2.Vec{X: 100, Y: 50},
		Rotation: 90,
	}

	transformed := object.TransformedPolygons()
	first := transformed[0][0]

	// (1,0) rotated 90deg -> (0,1), translated -> (100, 51)
	if math.Abs(first.X-100) > 1e-12 || math.Abs(first.Y-51) > 1e-12 {
		t.Errorf("expected (100, 51), got (%v, %v)", first.X, first.Y)
	}
}
