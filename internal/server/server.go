package server

import (
	"log/slog"
	"net/http"

	"github.com/claude/vigor/internal/assess"
	"github.com/claude/vigor/internal/ingest/garmin"
	"github.com/claude/vigor/internal/storage"
	"github.com/go-chi/chi/v5"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	db       *storage.DB
	garmin   *garmin.Provider
	assessor *assess.Assessor
	log      *slog.Logger
	apiKey   string
	router   chi.Router
}

// New creates a new Server with all routes configured.
func New(db *storage.DB, garminProvider *garmin.Provider, assessor *assess.Assessor, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		db:       db,
		garmin:   garminProvider,
		assessor: assessor,
		log:      log,
		apiKey:   apiKey,
		router:   chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	// Ingest endpoint (API key required)
	s.router.Route("/api/v1/ingest", func(r chi.Router) {
		r.Use(APIKeyAuth(s.apiKey))
		r.Post("/", s.handleIngest)
	})

	// Query endpoints (no auth — tsnet handles access)
	s.router.Get("/api/v1/assessments", s.handleAssessments)
	s.router.Get("/api/v1/assessments/latest", s.handleLatestAssessment)
	s.router.Get("/api/v1/samples", s.handleQuerySamples)
	s.router.Get("/api/v1/stats", s.handleStats)
	s.router.Get("/api/v1/imports", s.handleImports)
}
