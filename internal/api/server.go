// Package api provides the REST API for uploads, summaries, analysis,
// snapshots, and the assessment archive.
package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/milewire/RAN-copilot/internal/rules"
	"github.com/milewire/RAN-copilot/internal/storage"
	"github.com/milewire/RAN-copilot/internal/storage/memory"
	"github.com/milewire/RAN-copilot/internal/storage/snapshots"
)

// maxUploadBytes caps a single uploaded file.
const maxUploadBytes = 64 << 20 // 64MB

// Server is the REST API server.
type Server struct {
	catalog    *rules.Catalog
	workspaces *memory.Store
	snapshots  *snapshots.Store
	archive    storage.Archive
	logger     *slog.Logger

	router *chi.Mux
	server *http.Server
}

// NewServer wires the API routes around the given collaborators.
func NewServer(addr string, catalog *rules.Catalog, workspaces *memory.Store, snapshotStore *snapshots.Store, archive storage.Archive, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		catalog:    catalog,
		workspaces: workspaces,
		snapshots:  snapshotStore,
		archive:    archive,
		logger:     logger,
		router:     chi.NewRouter(),
	}

	// Middleware
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(60 * time.Second))

	// API routes
	s.router.Route("/api/v1", func(r chi.Router) {
		// Health endpoint
		r.Get("/health", s.handleHealth)

		// One-shot analysis
		r.Post("/analyze", s.analyzeOneShot)

		// Workspace endpoints
		r.Post("/workspaces", s.createWorkspace)
		r.Get("/workspaces", s.listWorkspaces)
		r.Get("/workspaces/{id}", s.getWorkspace)
		r.Delete("/workspaces/{id}", s.deleteWorkspace)
		r.Post("/workspaces/{id}/uploads/{signal}", s.uploadSignal)
		r.Get("/workspaces/{id}/summary/{signal}", s.summarizeSignal)
		r.Post("/workspaces/{id}/analyze", s.analyzeWorkspace)
		r.Post("/workspaces/{id}/snapshot", s.saveSnapshot)

		// Snapshot endpoints
		r.Get("/snapshots", s.listSnapshots)
		r.Post("/snapshots/{name}/restore", s.restoreSnapshot)
		r.Delete("/snapshots/{name}", s.deleteSnapshot)

		// Assessment archive endpoints
		r.Get("/assessments", s.listAssessments)
		r.Get("/assessments/{id}", s.getAssessment)
	})

	s.server = &http.Server{
		Addr:    addr,
		Handler: s.router,
	}

	return s
}

// Start starts the API server.
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the API server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// respondJSON writes a JSON response.
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes an error response.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}
