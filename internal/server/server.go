// Package server provides the HTTP server and routing for MarketScope.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/anagnostou/marketscope/internal/database"
	analysishandlers "github.com/anagnostou/marketscope/internal/modules/analysis/handlers"
	"github.com/anagnostou/marketscope/internal/modules/ranking"
)

// Config holds server configuration
type Config struct {
	Log              zerolog.Logger
	ScoresDB         *database.DB
	Port             int
	DevMode          bool
	AnalysisHandlers *analysishandlers.Handlers
	RankingHandlers  *ranking.Handlers
}

// Server represents the HTTP server
type Server struct {
	router *chi.Mux
	server *http.Server
	log    zerolog.Logger
}

// New creates a new HTTP server
func New(cfg Config) *Server {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(cfg.Log))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	systemHandlers := NewSystemHandlers(cfg.ScoresDB, cfg.Log)

	r.Route("/api", func(r chi.Router) {
		cfg.AnalysisHandlers.RegisterRoutes(r)
		cfg.RankingHandlers.RegisterRoutes(r)
		systemHandlers.RegisterRoutes(r)
	})

	return &Server{
		router: r,
		server: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Port),
			Handler:      r,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		log: cfg.Log.With().Str("component", "server").Logger(),
	}
}

// Start begins listening for HTTP requests. Blocks until shutdown.
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.server.Addr).Msg("HTTP server listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server failed: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

// Router returns the underlying router, used by tests
func (s *Server) Router() *chi.Mux {
	return s.router
}

// requestLogger logs each request with method, path, status and duration
func requestLogger(log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			log.Debug().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Dur("duration", time.Since(start)).
				Msg("Request handled")
		})
	}
}
