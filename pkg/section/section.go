package section

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/philipparndt/gopose/pkg/geometry"
	"github.com/philipparndt/gopose/pkg/mesh"
)

// ErrEmptySection is returned when the slice plane does not intersect the mesh,
// or every resulting contour is degenerate.
var ErrEmptySection = errors.New("no cross-section at slice plane")

const (
	// planeEpsilon classifies a vertex as lying on the slice plane
	planeEpsilon = 1e-9
	// weldTolerance joins segment endpoints into contours
	weldTolerance = 1e-6
)

// Section is the planar cross-section of a mesh
type Section struct {
	// Polygons are the closed contours of the cross-section, in the
	// slice-plane frame (plane point minus plane origin)
	Polygons []geometry.Polygon
	// To3D maps slice-plane coordinates back to the mesh's 3D frame.
	// It is carried through to the layout unmodified and is never folded
	// into the exported placement matrix.
	To3D *mat.Dense
}

// segment is one intersection segment of a triangle with the slice plane
type segment struct {
	a, b r2.Vec
}

// Slice computes the cross-section of the model at the horizontal plane z=planeZ.
// Contours with fewer than 3 points are discarded. If nothing remains,
// ErrEmptySection is returned.
func Slice(model *mesh.Model, planeZ float64) (*Section, error) {
	var segments []segment

	for _, triangle := range model.Triangles {
		// Cheap reject for triangles entirely on one side of the plane
		if triangle.MaxZ() < planeZ-planeEpsilon || triangle.MinZ() > planeZ+planeEpsilon {
			continue
		}
		if seg, ok := intersectTriangle(triangle, planeZ); ok {
			segments = append(segments, seg)
		}
	}

	contours := stitchContours(segments)
	polygons := make([]geometry.Polygon, 0, len(contours))
	for _, contour := range contours {
		if len(contour) >= 3 {
			polygons = append(polygons, contour)
		}
	}

	if len(polygons) == 0 {
		return nil, ErrEmptySection
	}

	return &Section{
		Polygons: polygons,
		To3D:     planeTo3D(planeZ),
	}, nil
}

// planeTo3D builds the matrix mapping slice-plane (x, y, 0, 1) coordinates
// back to the original 3D frame of the mesh
func planeTo3D(planeZ float64) *mat.Dense {
	to3D := mat.NewDense(4, 4, nil)
	to3D.Set(0, 0, 1)
	to3D.Set(1, 1, 1)
	to3D.Set(2, 2, 1)
	to3D.Set(3, 3, 1)
	to3D.Set(2, 3, planeZ)
	return to3D
}

// intersectTriangle returns the intersection segment of a triangle with the
// plane z=planeZ, if there is one.
func intersectTriangle(tri geometry.Triangle, planeZ float64) (segment, bool) {
	vertices := [3]geometry.Vector3{tri.V1, tri.V2, tri.V3}

	// Signed distance of each vertex to the plane
	var dist [3]float64
	onPlane := 0
	for i, v := range vertices {
		dist[i] = v.Z - planeZ
		if math.Abs(dist[i]) < planeEpsilon {
			dist[i] = 0
			onPlane++
		}
	}

	// Coplanar triangles contribute no segment themselves; their boundary
	// comes from the adjacent non-coplanar triangles
	if onPlane == 3 {
		return segment{}, false
	}

	// An edge lying exactly on the plane is taken from the triangle above it
	// only, so shared edges are not collected twice
	if onPlane == 2 {
		var above bool
		var a, b r2.Vec
		for i := 0; i < 3; i++ {
			if dist[i] != 0 {
				above = dist[i] > 0
				a = r2.Vec{X: vertices[(i+1)%3].X, Y: vertices[(i+1)%3].Y}
				b = r2.Vec{X: vertices[(i+2)%3].X, Y: vertices[(i+2)%3].Y}
			}
		}
		if !above {
			return segment{}, false
		}
		return segment{a: a, b: b}, true
	}

	// Collect crossing points: vertices on the plane and edges whose
	// endpoints lie on opposite sides
	var points []r2.Vec
	for i := 0; i < 3; i++ {
		if dist[i] == 0 {
			points = append(points, r2.Vec{X: vertices[i].X, Y: vertices[i].Y})
		}

		j := (i + 1) % 3
		if dist[i]*dist[j] < 0 {
			t := dist[i] / (dist[i] - dist[j])
			points = append(points, r2.Vec{
				X: vertices[i].X + t*(vertices[j].X-vertices[i].X),
				Y: vertices[i].Y + t*(vertices[j].Y-vertices[i].Y),
			})
		}
	}

	if len(points) < 2 {
		return segment{}, false
	}
	if vecEqual(points[0], points[1]) {
		return segment{}, false
	}
	return segment{a: points[0], b: points[1]}, true
}

// vecEqual reports whether two points coincide within the weld tolerance
func vecEqual(a, b r2.Vec) bool {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx*dx+dy*dy < weldTolerance*weldTolerance
}

// stitchContours orders unordered intersection segments into closed contours.
// Segments are connected end to end by matching endpoints within the weld
// tolerance; a contour closes when it reaches its starting point.
func stitchContours(segments []segment) []geometry.Polygon {
	if len(segments) == 0 {
		return nil
	}

	unused := make([]segment, len(segments))
	copy(unused, segments)
	var contours []geometry.Polygon

	for len(unused) > 0 {
		current := unused[0]
		unused = unused[1:]
		contour := geometry.Polygon{current.a, current.b}

		maxIterations := len(segments) * 2
		for i := 0; i < maxIterations && len(unused) > 0; i++ {
			last := contour[len(contour)-1]
			found := false

			for j, seg := range unused {
				if vecEqual(seg.a, last) {
					contour = append(contour, seg.b)
					unused = append(unused[:j], unused[j+1:]...)
					found = true
					break
				} else if vecEqual(seg.b, last) {
					contour = append(contour, seg.a)
					unused = append(unused[:j], unused[j+1:]...)
					found = true
					break
				}
			}

			if len(contour) >= 3 && vecEqual(contour[0], contour[len(contour)-1]) {
				contour = contour[:len(contour)-1] // Remove duplicate closing vertex
				break
			}

			if !found {
				break
			}
		}

		// An open run that happens to end where it started still closes
		if len(contour) >= 4 && vecEqual(contour[0], contour[len(contour)-1]) {
			contour = contour[:len(contour)-1]
		}

		if len(contour) >= 3 {
			contours = append(contours, contour)
		}
	}

	return contours
}
