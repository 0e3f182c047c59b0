package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/mnemo-app/mnemo/internal/engine"
)

// Server is the mnemo HTTP API server.
type Server struct {
	engine  *engine.Engine
	log     *zap.SugaredLogger
	router  chi.Router
	version string
	started time.Time
}

// New creates a new Server around the given engine.
func New(eng *engine.Engine, log *zap.SugaredLogger, version string) *Server {
	s := &Server{
		engine:  eng,
		log:     log,
		version: version,
		started: time.Now(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		r.Get("/queue", s.handleQueue)
		r.Get("/plan", s.handlePlan)

		r.Post("/items", s.handleRegisterItem)
		r.Get("/items/{itemID}", s.handleGetItem)
		r.Post("/items/{itemID}/review", s.handleSubmitReview)
		r.Post("/items/{itemID}/suspend", s.handleSuspend)
		r.Post("/items/{itemID}/unsuspend", s.handleUnsuspend)
		r.Post("/items/{itemID}/leech/reset", s.handleResetLeech)

		r.Get("/decay/overview", s.handleDecayOverview)
		r.Get("/decay/critical", s.handleCriticalItems)
		r.Get("/heatmap", s.handleHeatmap)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	dbOK := true
	if err := s.engine.DB.Ping(); err != nil {
		dbOK = false
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status":  "ok",
		"version": s.version,
		"uptime":  time.Since(s.started).Seconds(),
		"db":      dbOK,
		"db_path": s.engine.DB.Path,
	})
}
