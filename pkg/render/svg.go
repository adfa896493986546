package render

import (
	"fmt"
	"image/color"
	"io"

	svg "github.com/ajstarks/svgo"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/philipparndt/gopose/pkg/layout"
)

// svgUnitsPerMM maps millimeters to integer SVG user units, keeping 0.1mm
// precision with svgo's integer coordinate API
const svgUnitsPerMM = 10

// SVG is a Canvas writing an SVG document via svgo, used for the web preview
type SVG struct {
	canvas *svg.SVG
	height float64 // page height in mm, for the Y flip

	stroke      color.RGBA
	strokeWidth float64
	fill        color.RGBA
}

// WriteSVG renders the layout page as an SVG document. displayWidth is the
// rendered width in CSS pixels; the aspect ratio follows the page.
func WriteSVG(w io.Writer, l *layout.Layout, displayWidth int) {
	canvas := svg.New(w)
	displayHeight := int(float64(displayWidth) * l.Page.H / l.Page.W)
	canvas.Startview(
		displayWidth, displayHeight,
		0, 0,
		int(l.Page.W*svgUnitsPerMM), int(l.Page.H*svgUnitsPerMM),
	)

	s := &SVG{canvas: canvas, height: l.Page.H}
	// White paper background
	canvas.Rect(0, 0, int(l.Page.W*svgUnitsPerMM), int(l.Page.H*svgUnitsPerMM), "fill:white")
	Draw(s, l)

	canvas.End()
}

func (s *SVG) SetStroke(c color.RGBA, width float64) {
	s.stroke = c
	s.strokeWidth = width
}

func (s *SVG) SetFill(c color.RGBA) {
	s.fill = c
}

// toUnits converts page mm coordinates to SVG user units (Y flipped)
func (s *SVG) toUnits(x, y float64) (int, int) {
	return int(x * svgUnitsPerMM), int((s.height - y) * svgUnitsPerMM)
}

func (s *SVG) strokeStyle() string {
	return fmt.Sprintf("stroke:%s;stroke-width:%d;fill:none",
		rgbString(s.stroke), int(s.strokeWidth*svgUnitsPerMM))
}

func (s *SVG) fillStyle() string {
	style := "fill:" + rgbString(s.fill)
	if s.fill.A < 255 {
		style += fmt.Sprintf(";fill-opacity:%.2f", float64(s.fill.A)/255.0)
	}
	return style
}

func (s *SVG) Line(x1, y1, x2, y2 float64) {
	px1, py1 := s.toUnits(x1, y1)
	px2, py2 := s.toUnits(x2, y2)
	s.canvas.Line(px1, py1, px2, py2, s.strokeStyle())
}

func (s *SVG) Polygon(points []r2.Vec, fill, stroke bool) {
	if len(points) < 3 {
		return
	}

	xs := make([]int, len(points))
	ys := make([]int, len(points))
	for i, pt := range points {
		xs[i], ys[i] = s.toUnits(pt.X, pt.Y)
	}

	style := ""
	if fill {
		style = s.fillStyle()
	} else {
		style = "fill:none"
	}
	if stroke {
		style += fmt.Sprintf(";stroke:%s;stroke-width:%d",
			rgbString(s.stroke), int(s.strokeWidth*svgUnitsPerMM))
	}
	s.canvas.Polygon(xs, ys, style)
}

func (s *SVG) Circle(x, y, radius float64) {
	px, py := s.toUnits(x, y)
	s.canvas.Circle(px, py, int(radius*svgUnitsPerMM), s.fillStyle())
}

func (s *SVG) Text(x, y float64, text string) {
	px, py := s.toUnits(x, y)
	s.canvas.Text(px, py, text, s.textStyle("start"))
}

func (s *SVG) TextRight(x, y float64, text string) {
	px, py := s.toUnits(x, y)
	s.canvas.Text(px, py, text, s.textStyle("end"))
}

func (s *SVG) textStyle(anchor string) string {
	return fmt.Sprintf("fill:%s;font-size:%dpx;font-family:sans-serif;text-anchor:%s",
		rgbString(s.fill), 4*svgUnitsPerMM, anchor)
}

func rgbString(c color.RGBA) string {
	return fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B)
}
