package web

import (
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"sync"

	"github.com/philipparndt/gopose/pkg/layout"
)

//go:embed templates/index.html
var templateFS embed.FS

// Server is the web front-end. A single layout session is shared by all
// requests; the mutex keeps concurrent HTTP handlers from interleaving on it.
type Server struct {
	mu      sync.Mutex
	layout  *layout.Layout
	notices []string

	logger *slog.Logger
	tmpl   *template.Template
}

// NewServer creates the web front-end with an empty A3 session
func NewServer(logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		layout: layout.NewLayout(layout.A3),
		logger: logger,
		tmpl: template.Must(template.ParseFS(templateFS, "templates/index.html")),
	}
}

// Handler returns the HTTP handler with all routes registered
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /upload", s.handleUpload)
	mux.HandleFunc("POST /update", s.handleUpdate)
	mux.HandleFunc("POST /settings", s.handleSettings)
	mux.HandleFunc("POST /clear", s.handleClear)
	mux.HandleFunc("GET /preview.svg", s.handlePreview)
	mux.HandleFunc("GET /export/pdf", s.handleExportPDF)
	mux.HandleFunc("GET /export/json", s.handleExportJSON)
	return s.logRequests(mux)
}

// ListenAndServe runs the server until it fails or the process exits
func (s *Server) ListenAndServe(addr string) error {
	s.logger.Info("serving web UI", "addr", addr)
	return http.ListenAndServe(addr, s.Handler())
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r)
		s.logger.Debug("request", "method", r.Method, "path", r.URL.Path)
	})
}

// notice queues a user-visible message for the next page render
func (s *Server) notice(format string, args ...any) {
	s.notices = append(s.notices, fmt.Sprintf(format, args...))
}

// drainNotices returns the queued messages and clears the queue.
// Callers must hold the mutex.
func (s *Server) drainNotices() []string {
	notices := s.notices
	s.notices = nil
	return notices
}
