package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dgallion1/codementor/internal/analysis"
	"github.com/dgallion1/codementor/internal/config"
	"github.com/dgallion1/codementor/internal/llm"
)

// Analyzer runs one analysis request.
type Analyzer interface {
	Analyze(ctx context.Context, req analysis.Request) (analysis.Result, error)
}

// ModelInfo reports the selected model and its call latency.
type ModelInfo interface {
	Model() string
	Snapshot() llm.StatsSnapshot
}

// Server is the HTTP API server for codementor.
type Server struct {
	router   chi.Router
	analyzer Analyzer
	model    ModelInfo
	log      *slog.Logger
	cfg      config.Config
}

// NewServer creates and configures the HTTP server. model may be nil, in
// which case the stats endpoint reports 503.
func NewServer(analyzer Analyzer, model ModelInfo, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		analyzer: analyzer,
		model:    model,
		log:      log,
		cfg:      cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))
	r.Use(Recoverer(s.log))

	r.Get("/health", s.handleHealth)
	r.Post("/analyze", s.handleAnalyze)
	r.Get("/api/stats/llm", s.handleLLMStats)

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
