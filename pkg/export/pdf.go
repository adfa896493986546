package export

import (
	"fmt"
	"image/color"
	"io"

	"github.com/jung-kurt/gofpdf"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/philipparndt/gopose/pkg/layout"
	"github.com/philipparndt/gopose/pkg/render"
)

// pdfCanvas adapts a gofpdf document to the render.Canvas interface.
// gofpdf's Y axis points down from the top-left corner, so all coordinates
// are flipped against the page height.
type pdfCanvas struct {
	pdf    *gofpdf.Fpdf
	height float64
	fill   color.RGBA
}

// newPDF creates a single-page landscape document sized to the layout's page
func newPDF(l *layout.Layout) (*gofpdf.Fpdf, *pdfCanvas) {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "L",
		UnitStr:        "mm",
		Size:           gofpdf.SizeType{Wd: l.Page.W, Ht: l.Page.H},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "", 12)

	return pdf, &pdfCanvas{pdf: pdf, height: l.Page.H}
}

// WritePDF renders the layout page as a PDF document
func WritePDF(w io.Writer, l *layout.Layout) error {
	pdf, canvas := newPDF(l)
	render.Draw(canvas, l)

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	return nil
}

func (c *pdfCanvas) SetStroke(col color.RGBA, width float64) {
	c.pdf.SetDrawColor(int(col.R), int(col.G), int(col.B))
	c.pdf.SetLineWidth(width)
}

func (c *pdfCanvas) SetFill(col color.RGBA) {
	c.fill = col
	c.pdf.SetFillColor(int(col.R), int(col.G), int(col.B))
	c.pdf.SetTextColor(int(col.R), int(col.G), int(col.B))
}

func (c *pdfCanvas) Line(x1, y1, x2, y2 float64) {
	c.pdf.Line(x1, c.height-y1, x2, c.height-y2)
}

func (c *pdfCanvas) Polygon(points []r2.Vec, fill, stroke bool) {
	if len(points) < 3 {
		return
	}

	pts := make([]gofpdf.PointType, len(points))
	for i, pt := range points {
		pts[i] = gofpdf.PointType{X: pt.X, Y: c.height - pt.Y}
	}

	style := ""
	if fill {
		style = "F"
		if c.fill.A < 255 {
			c.pdf.SetAlpha(float64(c.fill.A)/255.0, "Normal")
			defer c.pdf.SetAlpha(1.0, "Normal")
		}
	}
	if stroke {
		style += "D"
	}
	c.pdf.Polygon(pts, style)
}

func (c *pdfCanvas) Circle(x, y, radius float64) {
	c.pdf.Circle(x, c.height-y, radius, "F")
}

func (c *pdfCanvas) Text(x, y float64, text string) {
	c.pdf.Text(x, c.height-y, text)
}

func (c *pdfCanvas) TextRight(x, y float64, text string) {
	width := c.pdf.GetStringWidth(text)
	c.pdf.Text(x-width, c.height-y, text)
}
