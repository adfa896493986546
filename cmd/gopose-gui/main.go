package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	fynelayout "fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"github.com/philipparndt/gopose/pkg/export"
	"github.com/philipparndt/gopose/pkg/layout"
	"github.com/philipparndt/gopose/pkg/mesh"
	"github.com/philipparndt/gopose/pkg/render"
	"github.com/philipparndt/gopose/pkg/section"
	"github.com/philipparndt/gopose/pkg/watcher"
)

const previewScale = 2.0 // pixels per millimeter

type App struct {
	window  fyne.Window
	layout  *layout.Layout
	sources map[*layout.PlacedObject]string
	watcher *watcher.FileWatcher

	preview *canvas.Image
	sidebar *fyne.Container
	objects *fyne.Container
}

func main() {
	a := app.New()
	w := a.NewWindow("gopose - Pose Template Editor")

	fileWatcher, err := watcher.New(300 * time.Millisecond)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer fileWatcher.Close()
	fileWatcher.Start()

	appInstance := &App{
		window:  w,
		layout:  layout.NewLayout(layout.A3),
		sources: make(map[*layout.PlacedObject]string),
		watcher: fileWatcher,
	}
	appInstance.setupUI()

	for _, filename := range os.Args[1:] {
		appInstance.loadFile(filename)
	}

	w.Resize(fyne.NewSize(1200, 800))
	w.ShowAndRun()
}

func (a *App) setupUI() {
	a.preview = canvas.NewImageFromImage(render.RenderPreview(a.layout, previewScale))
	a.preview.FillMode = canvas.ImageFillContain

	a.objects = container.NewVBox()
	a.sidebar = container.NewVBox(
		a.buildFileSection(),
		widget.NewSeparator(),
		a.buildPageSection(),
		widget.NewSeparator(),
		a.objects,
		fynelayout.NewSpacer(),
		a.buildExportSection(),
	)

	split := container.NewHSplit(container.NewVScroll(a.sidebar), a.preview)
	split.SetOffset(0.28)
	a.window.SetContent(split)
}

func (a *App) buildFileSection() fyne.CanvasObject {
	openButton := widget.NewButton("Add Mesh File...", func() {
		dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
			if err != nil {
				dialog.ShowError(err, a.window)
				return
			}
			if reader == nil {
				return
			}
			defer reader.Close()
			a.loadFile(reader.URI().Path())
		}, a.window)
	})

	clearButton := widget.NewButton("Clear All", func() {
		a.layout.Clear()
		a.sources = make(map[*layout.PlacedObject]string)
		a.rebuildObjectControls()
		a.refreshPreview()
	})

	return container.NewVBox(openButton, clearButton)
}

func (a *App) buildPageSection() fyne.CanvasObject {
	names := make([]string, 0, len(layout.Pages()))
	for _, page := range layout.Pages() {
		names = append(names, page.Name)
	}

	pageSelect := widget.NewSelect(names, func(name string) {
		page, err := layout.PageByName(name)
		if err != nil {
			return
		}
		a.layout.SetPage(page)
		a.rebuildObjectControls()
		a.refreshPreview()
	})
	pageSelect.SetSelected(a.layout.Page.Name)

	nameEntry := widget.NewEntry()
	nameEntry.SetPlaceHolder("Template name")
	nameEntry.OnChanged = func(text string) {
		a.layout.TemplateName = text
		a.refreshPreview()
	}

	return container.NewVBox(
		widget.NewLabel("Page Size"),
		pageSelect,
		nameEntry,
	)
}

func (a *App) buildExportSection() fyne.CanvasObject {
	return widget.NewButton("Export PDF + JSON...", func() {
		if len(a.layout.Objects) == 0 {
			return
		}
		dialog.ShowFileSave(func(writer fyne.URIWriteCloser, err error) {
			if err != nil {
				dialog.ShowError(err, a.window)
				return
			}
			if writer == nil {
				return
			}
			path := writer.URI().Path()
			writer.Close()

			if err := exportTo(a.layout, path); err != nil {
				dialog.ShowError(err, a.window)
			}
		}, a.window)
	})
}

// exportTo writes the PDF/JSON pair for the path chosen in the save dialog.
// The dialog pre-creates the chosen file; when the choice carries neither
// output extension that stub would be left behind next to the real outputs,
// so it is removed first.
func exportTo(l *layout.Layout, path string) error {
	if ext := strings.ToLower(filepath.Ext(path)); ext != ".pdf" && ext != ".json" {
		os.Remove(path)
	}
	return export.WriteFiles(l, path)
}

func (a *App) loadFile(filename string) {
	object, err := a.sliceFile(filename)
	if err != nil {
		if errors.Is(err, section.ErrEmptySection) {
			dialog.ShowInformation("No Cross-Section",
				fmt.Sprintf("%s does not cross the Z=0 plane", filename), a.window)
			return
		}
		dialog.ShowError(fmt.Errorf("failed to load %s: %w", filename, err), a.window)
		return
	}

	a.sources[object] = filename
	if err := a.watcher.Add(filename, a.onFileChanged); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: cannot watch %s: %v\n", filename, err)
	}

	a.rebuildObjectControls()
	a.refreshPreview()
}

func (a *App) sliceFile(filename string) (*layout.PlacedObject, error) {
	model, err := mesh.Load(filename)
	if err != nil {
		return nil, err
	}
	cut, err := section.Slice(model, 0)
	if err != nil {
		return nil, err
	}
	return a.layout.Add(model.Name, cut.Polygons, cut.To3D), nil
}

// onFileChanged re-slices every object that came from the changed file,
// keeping its position and rotation on the page
func (a *App) onFileChanged(path string) {
	fyne.Do(func() {
		model, err := mesh.Load(path)
		if err != nil {
			return
		}
		cut, err := section.Slice(model, 0)
		if err != nil {
			return
		}

		for object, source := range a.sources {
			if source != path {
				continue
			}
			object.Polygons = cut.Polygons
			object.SliceTransform = cut.To3D
		}
		a.refreshPreview()
	})
}

func (a *App) rebuildObjectControls() {
	a.objects.RemoveAll()
	min, max := a.layout.PositionBounds()

	for _, object := range a.layout.Objects {
		object := object

		xSlider := widget.NewSlider(min.X, max.X)
		xSlider.Step = 0.5
		xSlider.SetValue(object.Position.X)
		xSlider.OnChanged = func(v float64) {
			object.Position.X = v
			a.refreshPreview()
		}

		ySlider := widget.NewSlider(min.Y, max.Y)
		ySlider.Step = 0.5
		ySlider.SetValue(object.Position.Y)
		ySlider.OnChanged = func(v float64) {
			object.Position.Y = v
			a.refreshPreview()
		}

		rotSlider := widget.NewSlider(-180, 180)
		rotSlider.Step = 1
		rotSlider.SetValue(object.Rotation)
		rotSlider.OnChanged = func(v float64) {
			object.Rotation = v
			a.refreshPreview()
		}

		title := widget.NewLabel(object.Name)
		title.TextStyle = fyne.TextStyle{Bold: true}

		a.objects.Add(container.NewVBox(
			title,
			widget.NewLabel("X Position"), xSlider,
			widget.NewLabel("Y Position"), ySlider,
			widget.NewLabel("Rotation"), rotSlider,
			widget.NewSeparator(),
		))
	}
	a.objects.Refresh()
}

func (a *App) refreshPreview() {
	a.preview.Image = render.RenderPreview(a.layout, previewScale)
	a.preview.Refresh()
}
