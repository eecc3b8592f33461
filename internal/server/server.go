// Package server provides the HTTP REST API for the career recommender.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonathan/career-recommender/internal/engine"
	"github.com/jonathan/career-recommender/internal/schemas"
	"github.com/jonathan/career-recommender/internal/server/ratelimit"
	rootschemas "github.com/jonathan/career-recommender/schemas"
	"go.uber.org/zap"
)

// SnapshotSource serves the current engine snapshot and rebuilds it on demand.
// *engine.Holder satisfies it.
type SnapshotSource interface {
	Current() *engine.Snapshot
	Reload(ctx context.Context) (*engine.Snapshot, error)
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	source      SnapshotSource
	logger      *zap.Logger
	rateLimiter *ratelimit.Limiter
	recommendV  *schemas.Validator
	feedbackV   *schemas.Validator
	now         func() time.Time
}

// Config holds server configuration
type Config struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	RateLimit    *ratelimit.Config
}

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// New creates a new server instance
func New(cfg Config, source SnapshotSource, logger *zap.Logger) (*Server, error) {
	if source == nil {
		return nil, errors.New("snapshot source is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		source:      source,
		logger:      logger,
		rateLimiter: ratelimit.NewLimiter(cfg.RateLimit),
		recommendV:  schemas.MustCompile("recommendation_request", rootschemas.RecommendationRequest),
		feedbackV:   schemas.MustCompile("feedback_request", rootschemas.FeedbackRequest),
		now:         time.Now,
	}

	readTimeout := cfg.ReadTimeout
	if readTimeout <= 0 {
		readTimeout = 15 * time.Second
	}
	writeTimeout := cfg.WriteTimeout
	if writeTimeout <= 0 {
		writeTimeout = 30 * time.Second
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.Handler(),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler returns the routed handler wrapped in the middleware chain.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /recommendations", s.handleRecommendations)
	mux.HandleFunc("GET /careers", s.handleListCareers)
	mux.HandleFunc("GET /careers/{id}", s.handleGetCareer)
	mux.HandleFunc("GET /skills", s.handleListSkills)
	mux.HandleFunc("GET /interests", s.handleListInterests)
	mux.HandleFunc("GET /clusters", s.handleListClusters)
	mux.HandleFunc("POST /feedback", s.handleFeedback)
	mux.HandleFunc("POST /admin/reload", s.handleReload)

	return s.withRateLimit(s.withLogging(s.withCORS(mux)))
}

// Start serves until SIGINT or SIGTERM, then shuts down gracefully.
func (s *Server) Start() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return s.Run(ctx)
}

// Run serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.httpServer.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("addr", ln.Addr().String()))
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		s.rateLimiter.Stop()
		if ok {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	defer s.rateLimiter.Stop()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// writeError maps err to a status code and writes it. Server errors are
// logged; their details are not returned to the client.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed",
			zap.String("request_id", RequestID(r.Context())),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		s.errorResponse(w, status, http.StatusText(status))
		return
	}

	var schemaErr *schemas.ValidationError
	if errors.As(err, &schemaErr) {
		s.jsonResponse(w, status, map[string]any{
			"error":   "request does not match schema",
			"details": schemaErr.Errors,
		})
		return
	}
	s.errorResponse(w, status, err.Error())
}

func (s *Server) timestamp() string {
	return s.now().UTC().Format(time.RFC3339)
}
