package render

import (
	"bytes"
	"image/color"
	"strings"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/philipparndt/gopose/pkg/geometry"
	"github.com/philipparndt/gopose/pkg/layout"
)

func testLayout() *layout.Layout {
	l := layout.NewLayout(layout.A4)
	l.TemplateName = "demo"
	object := l.Add("square", []geometry.Polygon{{
		{X: -10, Y: -10},
		{X: 10, Y: -10},
		{X: 10, Y: 10},
		{X: -10, Y: 10},
	}}, nil)
	object.Position = r2.Vec{X: 100, Y: 100}
	return l
}

func TestRenderPreviewSize(t *testing.T) {
	img := RenderPreview(testLayout(), 2)

	bounds := img.Bounds()
	if bounds.Dx() != 594 || bounds.Dy() != 420 {
		t.Errorf("expected 594x420 image, got %dx%d", bounds.Dx(), bounds.Dy())
	}
}

func TestRenderPreviewDrawsObject(t *testing.T) {
	img := RenderPreview(testLayout(), 2)

	// Object center at (100mm, 100mm) on A4: pixel (200, (210-100)*2)
	px := img.RGBAAt(190, 210)
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	if px == white {
		t.Errorf("expected object fill at (190, 210), got white")
	}
}

func TestRenderPreviewGizmoOrigin(t *testing.T) {
	img := RenderPreview(testLayout(), 2)

	// Origin marker at (15mm, 15mm): mostly blue
	px := img.RGBAAt(32, (210-16)*2)
	if px.B <= px.R {
		t.Errorf("expected blue origin marker, got %+v", px)
	}
}

func TestWriteSVG(t *testing.T) {
	var buf bytes.Buffer
	WriteSVG(&buf, testLayout(), 800)
	out := buf.String()

	for _, want := range []string{
		"<svg",
		"<polygon",
		"rgb(255,0,0)", // X axis
		"rgb(0,170,0)", // Y axis
		">demo</text>",
		"</svg>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("SVG output missing %q", want)
		}
	}
}

func TestWriteSVGEmptyLayout(t *testing.T) {
	var buf bytes.Buffer
	l := layout.NewLayout(layout.A3)
	WriteSVG(&buf, l, 400)

	out := buf.String()
	if !strings.Contains(out, "<svg") || strings.Contains(out, "<polygon") {
		t.Errorf("empty layout should render gizmo but no polygons")
	}
}
