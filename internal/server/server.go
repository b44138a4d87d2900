// Package server exposes circular generation over HTTP.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/event-circulars/internal/circulars"
	"github.com/joseph-ayodele/event-circulars/internal/common"
	"github.com/joseph-ayodele/event-circulars/internal/entity"
	"github.com/joseph-ayodele/event-circulars/internal/metrics"
)

const headerRequestID = "X-Request-ID"

// Generator is the part of circulars.Service the handlers need.
type Generator interface {
	Generate(ctx context.Context, in entity.CircularInput) (*circulars.Result, error)
	Discard(res *circulars.Result)
}

type Config struct {
	Addr            string
	MaxInputBytes   int64
	ShutdownTimeout time.Duration
}

type Server struct {
	cfg     Config
	gen     Generator
	metrics *metrics.Metrics
	logger  *slog.Logger
	handler http.Handler
}

// New wires the routes. m may be nil, in which case /metrics answers 404.
func New(cfg Config, gen Generator, m *metrics.Metrics, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}
	s := &Server{cfg: cfg, gen: gen, metrics: m, logger: logger}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/generate-circular", s.handleGenerate)
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.Handle("GET /metrics", m.Handler())

	s.handler = s.withRequestID(mux)
	return s
}

func (s *Server) Handler() http.Handler { return s.handler }

// ListenAndServe blocks until ctx is canceled, then drains in-flight requests.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server.listening", "addr", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("server.shutdown", "timeout", s.cfg.ShutdownTimeout.String())
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rid := r.Header.Get(headerRequestID)
		if rid == "" || len(rid) > 128 {
			rid = uuid.New().String()
		}
		w.Header().Set(headerRequestID, rid)
		next.ServeHTTP(w, r.WithContext(common.WithRequestID(r.Context(), rid)))
	})
}
