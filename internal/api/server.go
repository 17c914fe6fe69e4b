package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/sachithsamaraweera/chaptersplit/internal/config"
	"github.com/sachithsamaraweera/chaptersplit/internal/document"
	"github.com/sachithsamaraweera/chaptersplit/internal/export"
	"github.com/sachithsamaraweera/chaptersplit/internal/session"
)

// Server is the HTTP API server for chaptersplit.
type Server struct {
	router   chi.Router
	store    *session.Store
	loader   *document.Loader
	exporter *export.Exporter
	log      *slog.Logger
	cfg      config.Config

	helpHTML []byte
}

// NewServer creates and configures the HTTP server.
func NewServer(store *session.Store, loader *document.Loader, exporter *export.Exporter, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		store:    store,
		loader:   loader,
		exporter: exporter,
		log:      log,
		cfg:      cfg,
	}
	s.helpHTML = renderHelp(log)
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	r.Get("/health", s.handleHealth)
	r.Get("/", s.handleIndex)
	r.Get("/help", s.handleHelp)

	r.Post("/api/documents", s.handleUpload)
	r.Get("/api/documents/{sessionID}", s.handleGetSession)
	r.Delete("/api/documents/{sessionID}", s.handleDeleteSession)
	r.Put("/api/documents/{sessionID}/chapters", s.handlePutChapters)
	r.Get("/api/documents/{sessionID}/preview", s.handlePreview)
	r.Get("/api/documents/{sessionID}/export", s.handleExport)
	r.Get("/api/stats/exports", s.handleExportStats)

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
