package render

import (
	"image"
	"image/color"
	"math"
	"sort"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/philipparndt/gopose/pkg/layout"
)

// Raster is a Canvas backed by an in-memory image, used for the desktop
// preview. Scale is the number of pixels per millimeter.
type Raster struct {
	img    *image.RGBA
	scale  float64
	height float64 // page height in mm, for the Y flip

	stroke      color.RGBA
	strokeWidth float64
	fill        color.RGBA
}

// NewRaster creates a white canvas for the given page at scale pixels per mm
func NewRaster(page layout.Page, scale float64) *Raster {
	w := int(math.Ceil(page.W * scale))
	h := int(math.Ceil(page.H * scale))
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, white)
		}
	}

	return &Raster{
		img:    img,
		scale:  scale,
		height: page.H,
		stroke: color.RGBA{A: 255},
		fill:   color.RGBA{A: 255},
	}
}

// RenderPreview rasterizes the full layout page
func RenderPreview(l *layout.Layout, scale float64) *image.RGBA {
	raster := NewRaster(l.Page, scale)
	Draw(raster, l)
	return raster.Image()
}

// Image returns the rendered image
func (r *Raster) Image() *image.RGBA {
	return r.img
}

func (r *Raster) SetStroke(c color.RGBA, width float64) {
	r.stroke = c
	r.strokeWidth = width
}

func (r *Raster) SetFill(c color.RGBA) {
	r.fill = c
}

// toPixel converts page mm coordinates to image pixels (Y flipped)
func (r *Raster) toPixel(x, y float64) (float64, float64) {
	return x * r.scale, (r.height - y) * r.scale
}

func (r *Raster) Line(x1, y1, x2, y2 float64) {
	px1, py1 := r.toPixel(x1, y1)
	px2, py2 := r.toPixel(x2, y2)
	r.drawLine(px1, py1, px2, py2, r.stroke)
}

func (r *Raster) Polygon(points []r2.Vec, fill, stroke bool) {
	if len(points) < 3 {
		return
	}

	if fill {
		r.fillPolygon(points)
	}
	if stroke {
		for i := range points {
			next := points[(i+1)%len(points)]
			r.Line(points[i].X, points[i].Y, next.X, next.Y)
		}
	}
}

func (r *Raster) Circle(x, y, radius float64) {
	cx, cy := r.toPixel(x, y)
	pr := radius * r.scale

	for py := int(cy - pr); py <= int(cy+pr)+1; py++ {
		for px := int(cx - pr); px <= int(cx+pr)+1; px++ {
			dx := float64(px) - cx
			dy := float64(py) - cy
			if dx*dx+dy*dy <= pr*pr {
				r.blendPixel(px, py, r.fill)
			}
		}
	}
}

func (r *Raster) Text(x, y float64, text string) {
	px, py := r.toPixel(x, y)
	r.drawString(px, py, text)
}

func (r *Raster) TextRight(x, y float64, text string) {
	px, py := r.toPixel(x, y)
	width := font.MeasureString(basicfont.Face7x13, text)
	r.drawString(px-float64(width.Round()), py, text)
}

func (r *Raster) drawString(px, py float64, text string) {
	drawer := &font.Drawer{
		Dst:  r.img,
		Src:  image.NewUniform(r.fill),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(int(px), int(py)),
	}
	drawer.DrawString(text)
}

// drawLine draws a line in pixel coordinates by stepping along the longer
// axis, stamping a disk when the stroke is wider than one pixel
func (r *Raster) drawLine(x1, y1, x2, y2 float64, c color.RGBA) {
	dx := x2 - x1
	dy := y2 - y1
	steps := math.Max(math.Abs(dx), math.Abs(dy))
	if steps < 1 {
		steps = 1
	}

	radius := r.strokeWidth * r.scale / 2
	for i := 0.0; i <= steps; i++ {
		t := i / steps
		x := x1 + t*dx
		y := y1 + t*dy
		if radius <= 0.75 {
			r.blendPixel(int(x), int(y), c)
		} else {
			r.stampDisk(x, y, radius, c)
		}
	}
}

func (r *Raster) stampDisk(cx, cy, radius float64, c color.RGBA) {
	for py := int(cy - radius); py <= int(cy+radius)+1; py++ {
		for px := int(cx - radius); px <= int(cx+radius)+1; px++ {
			dx := float64(px) - cx
			dy := float64(py) - cy
			if dx*dx+dy*dy <= radius*radius {
				r.blendPixel(px, py, c)
			}
		}
	}
}

// fillPolygon fills with the even-odd scanline rule
func (r *Raster) fillPolygon(points []r2.Vec) {
	pixels := make([]r2.Vec, len(points))
	minY, maxY := math.MaxFloat64, -math.MaxFloat64
	for i, pt := range points {
		x, y := r.toPixel(pt.X, pt.Y)
		pixels[i] = r2.Vec{X: x, Y: y}
		minY = math.Min(minY, y)
		maxY = math.Max(maxY, y)
	}

	bounds := r.img.Bounds()
	yStart := int(math.Max(0, minY))
	yEnd := int(math.Min(float64(bounds.Max.Y-1), maxY))

	for y := yStart; y <= yEnd; y++ {
		fy := float64(y) + 0.5
		var crossings []float64

		for i := range pixels {
			a := pixels[i]
			b := pixels[(i+1)%len(pixels)]
			if (a.Y <= fy && b.Y > fy) || (b.Y <= fy && a.Y > fy) {
				t := (fy - a.Y) / (b.Y - a.Y)
				crossings = append(crossings, a.X+t*(b.X-a.X))
			}
		}

		sort.Float64s(crossings)
		for i := 0; i+1 < len(crossings); i += 2 {
			xStart := int(math.Max(0, crossings[i]))
			xEnd := int(math.Min(float64(bounds.Max.X-1), crossings[i+1]))
			for x := xStart; x <= xEnd; x++ {
				r.blendPixel(x, y, r.fill)
			}
		}
	}
}

// blendPixel writes a pixel with src-over blending for semi-transparent fills
func (r *Raster) blendPixel(x, y int, c color.RGBA) {
	if !(image.Point{X: x, Y: y}).In(r.img.Bounds()) {
		return
	}

	if c.A == 255 {
		r.img.SetRGBA(x, y, c)
		return
	}

	base := r.img.RGBAAt(x, y)
	alpha := float64(c.A) / 255.0
	blend := func(src, dst uint8) uint8 {
		return uint8(float64(src)*alpha + float64(dst)*(1-alpha))
	}
	r.img.SetRGBA(x, y, color.RGBA{
		R: blend(c.R, base.R),
		G: blend(c.G, base.G),
		B: blend(c.B, base.B),
		A: 255,
	})
}
