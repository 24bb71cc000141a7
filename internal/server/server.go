// Package server provides the HTTP REST API for the job scout service.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/job-scout/internal/analysis"
	"github.com/jonathan/job-scout/internal/db"
	"github.com/jonathan/job-scout/internal/server/middleware"
	"github.com/jonathan/job-scout/internal/status"
)

// Store is the persistence surface the handlers read from.
type Store interface {
	ListJobs(ctx context.Context, userID uuid.UUID, limit int) ([]db.Job, error)
	GetPersonalInfo(ctx context.Context, userID uuid.UUID) (*db.PersonalInfo, error)
	GetUserPreferences(ctx context.Context, userID uuid.UUID) (*analysis.Preferences, error)
}

// Runner triggers background pipeline work.
type Runner interface {
	RunScrape(ctx context.Context, userID uuid.UUID)
	RunAnalyze(ctx context.Context, userID uuid.UUID) (int, error)
	CanAnalyze() bool
}

// Config holds server configuration.
type Config struct {
	Port               int
	JWTSecret          string
	JWTExpirationHours int
}

// Server is the HTTP API front end.
type Server struct {
	httpServer *http.Server
	store      Store
	runner     Runner
	status     status.Store
	jwtService *JWTService
	logger     *zap.Logger
}

// New assembles the server and its routes. Routes under /data require a
// bearer token.
func New(cfg Config, store Store, runner Runner, statusStore status.Store, logger *zap.Logger) *Server {
	s := &Server{
		store:      store,
		runner:     runner,
		status:     statusStore,
		jwtService: NewJWTService(cfg.JWTSecret, cfg.JWTExpirationHours),
		logger:     logger,
	}

	authed := middleware.Auth(s.jwtService.AsTokenValidator())

	data := http.NewServeMux()
	data.HandleFunc("POST /data/scrape-my-jobs", s.handleScrapeMyJobs)
	data.HandleFunc("GET /data/scrape-status", s.handleScrapeStatus)
	data.HandleFunc("POST /data/analyze-my-jobs", s.handleAnalyzeMyJobs)
	data.HandleFunc("GET /data/relevant-jobs", s.handleRelevantJobs)
	data.HandleFunc("GET /data/profile", s.handleProfile)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("/data/", authed(data))

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withLogging(s.withCORS(mux)),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Start listens for requests until an interrupt or termination signal,
// then shuts down gracefully.
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

// Handler exposes the configured handler chain for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

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

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) jsonResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode response", zap.Error(err))
	}
}

func (s *Server) errorResponse(w http.ResponseWriter, statusCode int, message string) {
	s.jsonResponse(w, statusCode, map[string]string{"error": message})
}
