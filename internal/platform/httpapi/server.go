// Package httpapi serves the Lumines leaderboard as a small read-only JSON
// API.
//
// Endpoints:
//   - GET /health            liveness probe
//   - GET /api/scores        ranked high-score list (?limit=N)
//   - GET /api/stats         aggregate statistics of every recorded game
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/vovakirdan/tui-lumines/internal/storage"
)

// Config holds the API server settings.
type Config struct {
	// Address is the host:port to listen on (e.g., ":8080").
	Address string

	// RequestTimeout bounds the time spent in a single handler.
	RequestTimeout time.Duration
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Address:        ":8080",
		RequestTimeout: 10 * time.Second,
	}
}

// Server bundles the router and the ranked list it reads from.
type Server struct {
	config  Config
	r       *chi.Mux
	ranking *storage.Ranking
	logger  *log.Logger
	http    *http.Server
}

// New constructs a Server, installs middleware, and registers routes. A nil
// logger logs to stderr with the "lumines-api" prefix.
func New(ranking *storage.Ranking, logger *log.Logger, cfg Config) *Server {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "lumines-api",
		})
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = DefaultConfig().RequestTimeout
	}

	s := &Server{
		config:  cfg,
		r:       chi.NewRouter(),
		ranking: ranking,
		logger:  logger,
	}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(s.requestLogger)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(cfg.RequestTimeout))
	s.r.Use(jsonContentType)

	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})

	s.r.Route("/api", func(r chi.Router) {
		r.Get("/scores", s.handleScores)
		r.Get("/stats", s.handleStats)
	})

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})
	s.r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed")
	})

	return s
}

// Router exposes the router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ListenAndServe serves HTTP until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	s.http = &http.Server{
		Addr:              s.config.Address,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting API server", "address", s.config.Address)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.http.Shutdown(shutdownCtx)
}

// Addr returns the server's listen address string.
func (s *Server) Addr() string {
	return s.config.Address
}

// requestLogger logs one line per request at debug level.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", chimw.GetReqID(r.Context()),
		)
	})
}

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}
