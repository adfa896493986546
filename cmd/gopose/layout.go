package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gopose/pkg/export"
	"github.com/philipparndt/gopose/pkg/layout"
	"github.com/philipparndt/gopose/pkg/mesh"
	"github.com/philipparndt/gopose/pkg/section"
)

var (
	layoutPage   string
	layoutName   string
	layoutOut    string
	layoutPlaces []string
)

var layoutCmd = &cobra.Command{
	Use:   "layout [files...]",
	Short: "Slice mesh files and export a printable template",
	Long: `Slice each mesh file at the Z=0 plane, arrange the outlines on a page and
write a PDF template plus a JSON file with per-object placement matrices.

Objects are placed at the page center unless positioned explicitly with
--place name=x,y,deg (millimeters and degrees), for example:

  gopose layout arm.stl base.stl --page A3 --place arm=120,80,90 --out template`,
	Args: cobra.MinimumNArgs(1),
	Run:  runLayout,
}

func init() {
	layoutCmd.Flags().StringVar(&layoutPage, "page", "A3", "page size (A4, A3, A2, A1, A0)")
	layoutCmd.Flags().StringVar(&layoutName, "name", "", "template name printed on the page")
	layoutCmd.Flags().StringVar(&layoutOut, "out", "template", "output base path (writes <out>.pdf and <out>.json)")
	layoutCmd.Flags().StringArrayVar(&layoutPlaces, "place", nil, "object placement as name=x,y,deg (repeatable)")
	rootCmd.AddCommand(layoutCmd)
}

func runLayout(cmd *cobra.Command, args []string) {
	page, err := layout.PageByName(layoutPage)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	l := layout.NewLayout(page)
	l.TemplateName = layoutName

	for _, filename := range args {
		model, err := mesh.Load(filename)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: skipping %s: %v\n", filename, err)
			continue
		}

		cut, err := section.Slice(model, 0)
		if errors.Is(err, section.ErrEmptySection) {
			fmt.Fprintf(os.Stderr, "Warning: %s has no cross-section at Z=0, skipping\n", filename)
			continue
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: skipping %s: %v\n", filename, err)
			continue
		}

		l.Add(model.Name, cut.Polygons, cut.To3D)
	}

	if err := applyPlacements(l, layoutPlaces); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if len(l.Objects) == 0 {
		fmt.Fprintln(os.Stderr, "Error: no objects to lay out")
		os.Exit(1)
	}

	if err := export.WriteFiles(l, layoutOut); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		os.Exit(1)
	}

	base := strings.TrimSuffix(strings.TrimSuffix(layoutOut, ".pdf"), ".json")
	fmt.Printf("Wrote %s.pdf and %s.json (%d objects, %s)\n", base, base, len(l.Objects), page.Name)
}

// applyPlacements positions objects according to --place name=x,y,deg flags.
// Positions are clamped to the page like the UI sliders.
func applyPlacements(l *layout.Layout, places []string) error {
	min, max := l.PositionBounds()

	for _, place := range places {
		name, spec, found := strings.Cut(place, "=")
		if !found {
			return fmt.Errorf("invalid --place %q, expected name=x,y,deg", place)
		}

		parts := strings.Split(spec, ",")
		if len(parts) != 3 {
			return fmt.Errorf("invalid --place %q, expected name=x,y,deg", place)
		}
		values := make([]float64, 3)
		for i, part := range parts {
			v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
			if err != nil {
				return fmt.Errorf("invalid --place %q: %w", place, err)
			}
			values[i] = v
		}

		object := findObject(l, name)
		if object == nil {
			return fmt.Errorf("--place names unknown object %q", name)
		}
		object.Position.X = clampValue(values[0], min.X, max.X)
		object.Position.Y = clampValue(values[1], min.Y, max.Y)
		object.Rotation = clampValue(values[2], -180, 180)
	}
	return nil
}

func findObject(l *layout.Layout, name string) *layout.PlacedObject {
	for _, object := range l.Objects {
		if object.Name == name {
			return object
		}
	}
	return nil
}

func clampValue(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
