package web

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/philipparndt/gopose/pkg/export"
	"github.com/philipparndt/gopose/pkg/layout"
	"github.com/philipparndt/gopose/pkg/mesh"
	"github.com/philipparndt/gopose/pkg/render"
	"github.com/philipparndt/gopose/pkg/section"
)

const previewWidth = 900 // CSS pixels

// objectView is the per-object data handed to the template
type objectView struct {
	Index    int
	Name     string
	X, Y     float64
	Rotation float64
}

// pageData is the template context for the index page
type pageData struct {
	Page         layout.Page
	Pages        []layout.Page
	TemplateName string
	Objects      []objectView
	Notices      []string
	MinPos       r2.Vec
	MaxPos       r2.Vec
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	min, max := s.layout.PositionBounds()
	data := pageData{
		Page:         s.layout.Page,
		Pages:        layout.Pages(),
		TemplateName: s.layout.TemplateName,
		Notices:      s.drainNotices(),
		MinPos:       min,
		MaxPos:       max,
	}
	for i, object := range s.layout.Objects {
		data.Objects = append(data.Objects, objectView{
			Index:    i,
			Name:     object.Name,
			X:        object.Position.X,
			Y:        object.Position.Y,
			Rotation: object.Rotation,
		})
	}
	s.mu.Unlock()

	if err := s.tmpl.Execute(w, data); err != nil {
		s.logger.Error("failed to render page", "error", err)
	}
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(64 << 20); err != nil {
		http.Error(w, "invalid upload", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	for _, header := range r.MultipartForm.File["meshes"] {
		if err := s.loadUpload(header); err != nil {
			if errors.Is(err, section.ErrEmptySection) {
				s.notice("Warning: no cross-section found for %s at Z=0", header.Filename)
			} else {
				s.notice("Error loading %s: %v", header.Filename, err)
			}
			s.logger.Warn("upload skipped", "file", header.Filename, "error", err)
		}
	}
	s.mu.Unlock()

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// loadUpload slices one uploaded mesh file and places it on the page.
// The upload goes through a temporary file, which is removed unconditionally.
// Callers must hold the mutex.
func (s *Server) loadUpload(header *multipart.FileHeader) error {
	if !mesh.SupportedExtension(header.Filename) {
		return fmt.Errorf("unsupported file type")
	}

	file, err := header.Open()
	if err != nil {
		return fmt.Errorf("failed to open upload: %w", err)
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return fmt.Errorf("failed to read upload: %w", err)
	}
	content = scrubPLYTextures(header.Filename, content)

	tmp, err := os.CreateTemp("", "gopose-*"+strings.ToLower(filepath.Ext(header.Filename)))
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	model, err := mesh.Load(tmpPath)
	if err != nil {
		return err
	}

	result, err := section.Slice(model, 0)
	if err != nil {
		return err
	}

	name := strings.TrimSuffix(header.Filename, filepath.Ext(header.Filename))
	s.layout.Add(name, result.Polygons, result.To3D)
	return nil
}

// scrubPLYTextures removes texture references from ASCII PLY uploads, which
// otherwise refer to image files that were not uploaded alongside the mesh.
// Binary PLY content is passed through unchanged.
func scrubPLYTextures(filename string, content []byte) []byte {
	if !strings.EqualFold(filepath.Ext(filename), ".ply") {
		return content
	}

	head := strings.ToLower(string(content[:min(len(content), 200)]))
	if !strings.Contains(head, "format ascii") {
		return content
	}

	lines := strings.Split(string(content), "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.Contains(strings.ToLower(line), ".png") {
			continue
		}
		kept = append(kept, line)
	}
	return []byte(strings.Join(kept, "\n"))
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(r.FormValue("index"))

	s.mu.Lock()
	if err == nil && index >= 0 && index < len(s.layout.Objects) {
		object := s.layout.Objects[index]
		min, max := s.layout.PositionBounds()

		if x, err := strconv.ParseFloat(r.FormValue("x"), 64); err == nil {
			object.Position.X = clamp(x, min.X, max.X)
		}
		if y, err := strconv.ParseFloat(r.FormValue("y"), 64); err == nil {
			object.Position.Y = clamp(y, min.Y, max.Y)
		}
		if rotation, err := strconv.ParseFloat(r.FormValue("rotation"), 64); err == nil {
			object.Rotation = clamp(rotation, -180, 180)
		}
	}
	s.mu.Unlock()

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	if page, err := layout.PageByName(r.FormValue("page")); err == nil {
		s.layout.SetPage(page)
	}
	s.layout.TemplateName = strings.TrimSpace(r.FormValue("template_name"))
	s.mu.Unlock()

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.layout.Clear()
	s.mu.Unlock()

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-store")

	s.mu.Lock()
	defer s.mu.Unlock()
	render.WriteSVG(w, s.layout, previewWidth)
}

func (s *Server) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.layout.Objects) == 0 {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", s.exportName()+".pdf"))
	if err := export.WritePDF(w, s.layout); err != nil {
		s.logger.Error("PDF export failed", "error", err)
	}
}

func (s *Server) handleExportJSON(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.layout.Objects) == 0 {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", s.exportName()+".json"))
	if err := export.WriteJSON(w, s.layout); err != nil {
		s.logger.Error("JSON export failed", "error", err)
	}
}

// exportName returns the download base name. Callers must hold the mutex.
func (s *Server) exportName() string {
	if s.layout.TemplateName != "" {
		return s.layout.TemplateName
	}
	return "layout"
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
