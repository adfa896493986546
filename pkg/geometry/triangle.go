package geometry

// Triangle is one facet of a triangle mesh. Normal is the facet normal as
// stored in the file; parsers recompute it when the format carries none.
type Triangle struct {
	Normal     Vector3
	V1, V2, V3 Vector3
}

func NewTriangle(normal, v1, v2, v3 Vector3) Triangle {
	return Triangle{Normal: normal, V1: v1, V2: v2, V3: v3}
}

// CalculateNormal derives the facet normal from the vertex winding
func (t Triangle) CalculateNormal() Vector3 {
	edge1 := t.V2.Sub(t.V1)
	edge2 := t.V3.Sub(t.V1)
	return edge1.Cross(edge2).Normalize()
}

// Area returns the facet area
func (t Triangle) Area() float64 {
	edge1 := t.V2.Sub(t.V1)
	edge2 := t.V3.Sub(t.V1)
	return edge1.Cross(edge2).Length() / 2
}

// EdgeLengths returns the three edge lengths in winding order
func (t Triangle) EdgeLengths() [3]float64 {
	return [3]float64{
		t.V1.Distance(t.V2),
		t.V2.Distance(t.V3),
		t.V3.Distance(t.V1),
	}
}

// MinZ returns the lowest vertex Z coordinate
func (t Triangle) MinZ() float64 {
	z := t.V1.Z
	if t.V2.Z < z {
		z = t.V2.Z
	}
	if t.V3.Z < z {
		z = t.V3.Z
	}
	return z
}

// MaxZ returns the highest vertex Z coordinate
func (t Triangle) MaxZ() float64 {
	z := t.V1.Z
	if t.V2.Z > z {
		z = t.V2.Z
	}
	if t.V3.Z > z {
		z = t.V3.Z
	}
	return z
}
