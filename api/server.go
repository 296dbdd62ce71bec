package api

import (
	"net/http"

	"phonegen/db"
	"phonegen/internal/config"
)

// Server is the API server
type Server struct {
	handler *Handler
	mux     *http.ServeMux
	version string
}

// NewServer creates a new API server over a segment store.
func NewServer(version string, cfg *config.Config, store db.SegmentStore) *Server {
	s := &Server{
		handler: NewHandler(cfg, store),
		mux:     http.NewServeMux(),
		version: version,
	}
	s.registerRoutes()
	return s
}

// registerRoutes registers all API routes
func (s *Server) registerRoutes() {
	h := s.handler

	// Auth
	s.mux.HandleFunc("POST /api/login", h.HandleLogin)
	s.mux.HandleFunc("GET /api/logout", h.HandleLogout)

	// Lookup
	s.mux.HandleFunc("GET /api/provinces", h.requireLogin(h.HandleProvinces))
	s.mux.HandleFunc("GET /api/cities/{province}", h.requireLogin(h.HandleCities))

	// Generation
	s.mux.HandleFunc("POST /api/generate", h.requireLogin(h.HandleGenerate))
	s.mux.HandleFunc("GET /download/{filename}", h.requireLogin(h.HandleDownload))
	s.mux.HandleFunc("POST /api/cleanup", h.requireLogin(h.HandleCleanup))

	// Supporting endpoints
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /version", s.handleVersion)
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.handler.writeJSON(w, http.StatusOK, Envelope{Code: http.StatusOK, Message: "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.handler.writeJSON(w, http.StatusOK, Envelope{
		Code: http.StatusOK,
		Data: map[string]string{"version": s.version},
	})
}
