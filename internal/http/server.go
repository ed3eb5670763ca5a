package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	applog "orcamento/internal/log"
)

// ServerConfig holds the knobs the server needs from the process config.
type ServerConfig struct {
	Addr      string
	RateLimit string // limiter format, e.g. "60-M"
}

type Server struct {
	http.Server
	api    BudgetAPI
	logger *applog.Logger

	shutdownOnce sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run server.
func NewServer(cfg ServerConfig, api BudgetAPI, logger *applog.Logger) (*Server, error) {
	if logger == nil {
		logger = applog.Discard()
	}
	s := &Server{
		Server: http.Server{
			Addr:              cfg.Addr,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		api:    api,
		logger: logger,
	}

	limit, err := newRateLimitMiddleware(cfg.RateLimit, logger)
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(applog.Middleware(logger))
	r.Use(middleware.Recoverer)
	r.Use(securityHeaders)

	r.Get("/healthz", handleHealth)
	r.Get("/readyz", handleReady)

	r.Route("/api", func(r chi.Router) {
		r.Get("/categories", s.handleCategories)
		r.Get("/transactions", s.handleListTransactions)
		r.Get("/goals", s.handleListGoals)
		r.Get("/summary", s.handleSummary)
		r.Get("/progress", s.handleProgress)
		r.Get("/dashboard", s.handleDashboard)

		// mutations are rate limited per client
		r.With(limit).Group(func(r chi.Router) {
			r.Post("/transactions", s.handleCreateTransaction)
			r.Delete("/transactions/{id}", s.handleDeleteTransaction)
			r.Post("/goals", s.handleCreateGoal)
			r.Delete("/goals/{id}", s.handleDeleteGoal)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "route not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", nil)
	})

	s.Handler = r
	return s, nil
}

// Shutdown gracefully stops the server. Safe to call more than once.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.logger.InfoContext(ctx, "Shutting down HTTP server", applog.FieldOperation, applog.OpShutdown)
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}
