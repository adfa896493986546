package export

import (
	"bytes"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/philipparndt/gopose/pkg/geometry"
	"github.com/philipparndt/gopose/pkg/layout"
)

func exportLayout() *layout.Layout {
	l := layout.NewLayout(layout.A3)
	l.TemplateName = "jig"
	object := l.Add("cube", []geometry.Polygon{{
		{X: -5, Y: -5},
		{X: 5, Y: -5},
		{X: 5, Y: 5},
		{X: -5, Y: 5},
	}}, nil)
	object.Position = r2.Vec{X: 50, Y: 30}
	object.Rotation = 90
	return l
}

func TestPlacementsExample(t *testing.T) {
	placements := Placements(exportLayout())

	rows, ok := placements["cube"]
	if !ok {
		t.Fatal("missing 'cube' entry")
	}

	expected := [4][4]float64{
		{0, -1, 0, 35},
		{1, 0, 0, 15},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			if math.Abs(rows[r][c]-expected[r][c]) > 1e-12 {
				t.Errorf("[%d][%d]: expected %v, got %v", r, c, expected[r][c], rows[r][c])
			}
		}
	}
}

func TestPlacementsDuplicateNameLastWins(t *testing.T) {
	l := layout.NewLayout(layout.A3)
	first := l.Add("part", nil, nil)
	first.Position = r2.Vec{X: 20, Y: 20}
	second := l.Add("part", nil, nil)
	second.Position = r2.Vec{X: 115, Y: 215}

	placements := Placements(l)
	if len(placements) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(placements))
	}
	if tx := placements["part"][0][3]; tx != 100 {
		t.Errorf("expected the later object to win (tx=100), got %v", tx)
	}
}

func TestMarshalPlacementsDeterministic(t *testing.T) {
	l := exportLayout()

	first, err := MarshalPlacements(l)
	if err != nil {
		t.Fatalf("MarshalPlacements failed: %v", err)
	}
	second, err := MarshalPlacements(l)
	if err != nil {
		t.Fatalf("MarshalPlacements failed: %v", err)
	}

	if !bytes.Equal(first, second) {
		t.Error("re-export without state changes must be byte-identical")
	}
}

func TestMarshalPlacementsShape(t *testing.T) {
	data, err := MarshalPlacements(exportLayout())
	if err != nil {
		t.Fatalf("MarshalPlacements failed: %v", err)
	}

	var decoded map[string][][]float64
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}

	rows := decoded["cube"]
	if len(rows) != 4 || len(rows[0]) != 4 {
		t.Fatalf("expected a 4x4 matrix, got %dx%d", len(rows), len(rows[0]))
	}
}

func TestWritePDF(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePDF(&buf, exportLayout()); err != nil {
		t.Fatalf("WritePDF failed: %v", err)
	}

	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Error("output does not start with a PDF header")
	}
	if buf.Len() < 500 {
		t.Errorf("suspiciously small PDF: %d bytes", buf.Len())
	}
}

func TestWriteFiles(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "template")

	if err := WriteFiles(exportLayout(), base); err != nil {
		t.Fatalf("WriteFiles failed: %v", err)
	}

	for _, name := range []string{"template.pdf", "template.json"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("expected %s to exist: %v", name, err)
		}
	}
}

func TestWriteFilesTrimsExtension(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "template.pdf")

	if err := WriteFiles(exportLayout(), base); err != nil {
		t.Fatalf("WriteFiles failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "template.json")); err != nil {
		t.Errorf("expected template.json to exist: %v", err)
	}
}

func TestWriteFilesNoObjects(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "empty")

	l := layout.NewLayout(layout.A4)
	if err := WriteFiles(l, base); err != nil {
		t.Fatalf("WriteFiles with no objects should be a silent no-op, got %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "empty.pdf")); !os.IsNotExist(err) {
		t.Error("no files should be written for an empty layout")
	}
}
