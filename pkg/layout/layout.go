package layout

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/philipparndt/gopose/pkg/geometry"
)

// PlacedObject is one sliced mesh arranged on the page.
// Position is the object's local origin on the page in millimeters; rotation
// is applied about that local origin (not the polygon centroid), before the
// translation to Position.
type PlacedObject struct {
	Name     string
	Polygons []geometry.Polygon
	Position r2.Vec
	Rotation float64 // degrees, -180..180

	// SliceTransform maps the slice plane back to the mesh's original 3D
	// frame. It is stored for downstream consumers and is never folded into
	// the placement matrix.
	SliceTransform *mat.Dense
}

// TransformedPolygons returns the object's contours rotated about the local
// origin and translated to the page position
func (o *PlacedObject) TransformedPolygons() []geometry.Polygon {
	result := make([]geometry.Polygon, len(o.Polygons))
	for i, polygon := range o.Polygons {
		result[i] = polygon.Rotate(o.Rotation).Translate(o.Position)
	}
	return result
}

// Layout holds the session state: the selected page and the placed objects
type Layout struct {
	Page         Page
	TemplateName string
	Objects      []*PlacedObject
}

// NewLayout creates an empty layout on the given page
func NewLayout(page Page) *Layout {
	return &Layout{Page: page}
}

// Add places a sliced object at the page center and returns it.
// Names are not required to be unique; on export the later object wins.
func (l *Layout) Add(name string, polygons []geometry.Polygon, sliceTransform *mat.Dense) *PlacedObject {
	cx, cy := l.Page.Center()
	object := &PlacedObject{
		Name:           name,
		Polygons:       polygons,
		Position:       r2.Vec{X: cx, Y: cy},
		Rotation:       0,
		SliceTransform: sliceTransform,
	}
	l.Objects = append(l.Objects, object)
	return object
}

// Clear removes all placed objects
func (l *Layout) Clear() {
	l.Objects = nil
}

// SetPage switches the page size. Existing object positions are kept as-is;
// re-selection never rescales the arrangement.
func (l *Layout) SetPage(page Page) {
	l.Page = page
}

// PositionBounds returns the valid position range for objects on the page,
// mirroring the inset-aligned slider limits of the UI
func (l *Layout) PositionBounds() (min, max r2.Vec) {
	min = r2.Vec{X: Inset, Y: Inset}
	max = r2.Vec{X: l.Page.W - Inset, Y: l.Page.H - Inset}
	return min, max
}
