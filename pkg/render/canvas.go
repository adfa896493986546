package render

import (
	"image/color"

	"gonum.org/v1/gonum/spatial/r2"
)

// Canvas is a drawing surface in page coordinates: millimeters, origin at the
// bottom-left page corner, Y pointing up. The PDF exporter, the SVG preview
// and the raster preview all implement it, so the preview and the exported
// page cannot diverge.
type Canvas interface {
	// SetStroke sets the stroke color and line width in millimeters
	SetStroke(c color.RGBA, width float64)
	// SetFill sets the fill color; an alpha below 255 requests a
	// semi-transparent fill where the backend supports it
	SetFill(c color.RGBA)
	// Line draws a stroked line segment
	Line(x1, y1, x2, y2 float64)
	// Polygon draws a closed polygon, optionally filled and stroked
	Polygon(points []r2.Vec, fill, stroke bool)
	// Circle draws a filled circle
	Circle(x, y, radius float64)
	// Text draws a text label with its baseline starting at (x, y)
	Text(x, y float64, text string)
	// TextRight draws a text label right-aligned so it ends at (x, y)
	TextRight(x, y float64, text string)
}

// Fixed drawing style shared by all outputs
var (
	black      = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	red        = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	green      = color.RGBA{R: 0, G: 170, B: 0, A: 255}
	blue       = color.RGBA{R: 0, G: 0, B: 255, A: 255}
	objectFill = color.RGBA{R: 204, G: 204, B: 204, A: 128}
)
