package render

import (
	"github.com/philipparndt/gopose/pkg/layout"
)

const (
	arrowSize    = 5.0  // mm
	tickLength   = 2.0  // mm
	tickSpacing  = 10.0 // mm
	originRadius = 2.0  // mm
	markerRadius = 0.5  // mm
	labelPadding = 10.0 // mm, template name inset from the page corner
)

// Draw renders the complete page onto the canvas: border, coordinate gizmo,
// template name and every placed object.
func Draw(c Canvas, l *layout.Layout) {
	drawObjects(c, l)
	drawGizmo(c, l.Page)
	drawBorder(c, l.Page)

	if l.TemplateName != "" {
		c.SetFill(black)
		c.TextRight(l.Page.W-labelPadding, l.Page.H-labelPadding, l.TemplateName)
	}
}

// drawObjects draws each object's transformed contours and its origin marker
func drawObjects(c Canvas, l *layout.Layout) {
	for _, object := range l.Objects {
		c.SetFill(objectFill)
		c.SetStroke(black, 0.25)
		for _, polygon := range object.TransformedPolygons() {
			c.Polygon(polygon, true, true)
		}

		// Origin dot at the placement position, matching the gizmo origin style
		c.SetFill(blue)
		c.Circle(object.Position.X, object.Position.Y, originRadius)
		c.SetFill(black)
		c.Circle(object.Position.X, object.Position.Y, markerRadius)
	}
}

// drawGizmo draws the page coordinate system anchored at the inset origin:
// red X axis, green Y axis, arrowheads, 10mm ticks and the origin marker.
func drawGizmo(c Canvas, page layout.Page) {
	inset := layout.Inset

	// X axis
	c.SetStroke(red, 0.35)
	c.Line(inset, inset, page.W-inset, inset)
	c.Line(page.W-inset, inset, page.W-inset-arrowSize, inset-arrowSize/2)
	c.Line(page.W-inset, inset, page.W-inset-arrowSize, inset+arrowSize/2)

	// Y axis
	c.SetStroke(green, 0.35)
	c.Line(inset, inset, inset, page.H-inset)
	c.Line(inset, page.H-inset, inset-arrowSize/2, page.H-inset-arrowSize)
	c.Line(inset, page.H-inset, inset+arrowSize/2, page.H-inset-arrowSize)

	// Ticks every 10mm, leaving room for the arrowheads
	c.SetStroke(red, 0.2)
	for x := inset + tickSpacing; x <= page.W-inset-tickSpacing; x += tickSpacing {
		c.Line(x, inset, x, inset+tickLength)
	}
	c.SetStroke(green, 0.2)
	for y := inset + tickSpacing; y <= page.H-inset-tickSpacing; y += tickSpacing {
		c.Line(inset, y, inset+tickLength, y)
	}

	// Axis labels
	c.SetFill(red)
	c.Text(page.W-inset-labelPadding, inset+arrowSize, "X")
	c.SetFill(green)
	c.Text(inset+arrowSize, page.H-inset-labelPadding, "Y")
	c.SetFill(blue)
	c.Text(inset+arrowSize, inset+arrowSize, "Z")

	// Origin marker
	c.SetFill(blue)
	c.Circle(inset, inset, originRadius)
	c.SetFill(black)
	c.Circle(inset, inset, markerRadius)
}

// drawBorder strokes a thin rectangle at the page edge
func drawBorder(c Canvas, page layout.Page) {
	c.SetStroke(black, 0.2)
	c.Line(0, 0, page.W, 0)
	c.Line(page.W, 0, page.W, page.H)
	c.Line(page.W, page.H, 0, page.H)
	c.Line(0, page.H, 0, 0)
}
