// Package server provides the HTTP REST API for the match analysis service.
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/resume-match/internal/analysis"
	"github.com/jonathan/resume-match/internal/db"
	"github.com/jonathan/resume-match/internal/types"
)

// AnalysisService runs one analysis end to end.
type AnalysisService interface {
	Run(ctx context.Context, req analysis.Request) (*types.AnalysisResult, error)
}

// AnalysisStore persists and retrieves analysis results.
type AnalysisStore interface {
	SaveAnalysis(ctx context.Context, result *types.AnalysisResult) error
	GetAnalysis(ctx context.Context, id uuid.UUID) (*types.AnalysisResult, error)
	ListAnalyses(ctx context.Context, opts db.ListAnalysesOptions) ([]types.AnalysisResult, int, error)
}

// Config holds server configuration.
type Config struct {
	Port      int
	JWTSecret string
}

// Server represents the HTTP server. The store is optional; without one the
// service still analyzes but GET endpoints return 404.
type Server struct {
	httpServer *http.Server
	service    AnalysisService
	store      AnalysisStore
	jwtService *JWTService
	logger     *zap.Logger
}

// New creates a server over the given analysis service and store.
func New(cfg Config, service AnalysisService, store AnalysisStore, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		service: service,
		store:   store,
		logger:  logger,
	}
	if cfg.JWTSecret != "" {
		s.jwtService = NewJWTService(cfg.JWTSecret, 24)
	}

	mux := http.NewServeMux()
	mux.Handle("POST /analyses", s.withAuth(http.HandlerFunc(s.handleCreateAnalysis)))
	mux.HandleFunc("GET /analyses", s.handleListAnalyses)
	mux.HandleFunc("GET /analyses/{id}", s.handleGetAnalysis)
	mux.HandleFunc("GET /health", s.handleHealth)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withLogging(s.withCORS(mux)),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // Long timeout for multi-attempt extraction
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Start begins listening for requests and blocks until shutdown.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-stop:
	}

	s.logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("duration", time.Since(start)))
	})
}
