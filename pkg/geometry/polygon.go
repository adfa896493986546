package geometry

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Polygon is a closed 2D contour in the slice plane, in millimeters.
// The closing edge from the last point back to the first is implicit.
type Polygon []r2.Vec

// Rotate returns the polygon rotated by angleDeg degrees counter-clockwise
// about the local origin (0, 0).
func (p Polygon) Rotate(angleDeg float64) Polygon {
	theta := angleDeg * math.Pi / 180.0
	cos := math.Cos(theta)
	sin := math.Sin(theta)

	rotated := make(Polygon, len(p))
	for i, pt := range p {
		rotated[i] = r2.Vec{
			X: pt.X*cos - pt.Y*sin,
			Y: pt.X*sin + pt.Y*cos,
		}
	}
	return rotated
}

// Translate returns the polygon shifted by offset
func (p Polygon) Translate(offset r2.Vec) Polygon {
	shifted := make(Polygon, len(p))
	for i, pt := range p {
		shifted[i] = r2.Add(pt, offset)
	}
	return shifted
}

// Area returns the unsigned area enclosed by the polygon (shoelace formula)
func (p Polygon) Area() float64 {
	if len(p) < 3 {
		return 0
	}
	sum := 0.0
	for i, pt := range p {
		next := p[(i+1)%len(p)]
		sum += pt.X*next.Y - next.X*pt.Y
	}
	return math.Abs(sum) / 2.0
}

// Bounds returns the min and max corners of the polygon's bounding rectangle
func (p Polygon) Bounds() (min, max r2.Vec) {
	min = r2.Vec{X: math.MaxFloat64, Y: math.MaxFloat64}
	max = r2.Vec{X: -math.MaxFloat64, Y: -math.MaxFloat64}
	for _, pt := range p {
		min.X = math.Min(min.X, pt.X)
		min.Y = math.Min(min.Y, pt.Y)
		max.X = math.Max(max.X, pt.X)
		max.Y = math.Max(max.Y, pt.Y)
	}
	return min, max
}
