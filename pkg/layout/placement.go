package layout

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// PlacementMatrix composes the object's position and rotation into a 4x4
// homogeneous transform relative to the page's inset origin:
//
//	M = T(x-Inset, y-Inset, 0) * Rz(rotation)
//
// The rotation is applied first, about the object's local origin, then the
// result is translated to the page position. The matrix contains no scale or
// shear, and the object's slice-to-3D transform is not part of it: M answers
// "where is this object's local frame relative to the page", not "where is
// this vertex in the original 3D model".
func (o *PlacedObject) PlacementMatrix() *mat.Dense {
	theta := o.Rotation * math.Pi / 180.0
	cos := math.Cos(theta)
	sin := math.Sin(theta)

	rotation := mat.NewDense(4, 4, []float64{
		cos, -sin, 0, 0,
		sin, cos, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	})

	translation := mat.NewDense(4, 4, []float64{
		1, 0, 0, o.Position.X - Inset,
		0, 1, 0, o.Position.Y - Inset,
		0, 0, 1, 0,
		0, 0, 0, 1,
	})

	var placement mat.Dense
	placement.Mul(translation, rotation)
	return &placement
}

// PlacementRows returns the placement matrix as nested row-major slices,
// the shape serialized to JSON on export
func (o *PlacedObject) PlacementRows() [][]float64 {
	matrix := o.PlacementMatrix()
	rows := make([][]float64, 4)
	for r := 0; r < 4; r++ {
		rows[r] = make([]float64, 4)
		for c := 0; c < 4; c++ {
			rows[r][c] = matrix.At(r, c)
		}
	}
	return rows
}
