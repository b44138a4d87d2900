// Package circulars runs the generate pipeline: free text in, rendered
// circular document out.
package circulars

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/event-circulars/constants"
	"github.com/joseph-ayodele/event-circulars/internal/common"
	"github.com/joseph-ayodele/event-circulars/internal/entity"
	"github.com/joseph-ayodele/event-circulars/internal/llm"
	"github.com/joseph-ayodele/event-circulars/internal/metrics"
)

// Renderer writes a circular document to path.
type Renderer interface {
	RenderCircular(ctx context.Context, circ entity.EventCircular, path string) (string, error)
}

type Config struct {
	OutputDir     string // empty: os.TempDir()
	MaxInputChars int    // 0: unlimited
}

// Service handles circular generation.
type Service struct {
	extractor llm.CircularExtractor
	renderer  Renderer
	cfg       Config
	metrics   *metrics.Metrics
	logger    *slog.Logger
}

// Result of one successful generation. Path is owned by the caller.
type Result struct {
	RequestID string
	Circular  entity.EventCircular
	Path      string
}

// NewService creates a new circular service. m may be nil.
func NewService(extractor llm.CircularExtractor, renderer Renderer, cfg Config, m *metrics.Metrics, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = os.TempDir()
	}
	return &Service{
		extractor: extractor,
		renderer:  renderer,
		cfg:       cfg,
		metrics:   m,
		logger:    logger,
	}
}

// Generate extracts a circular from in.Text and renders it to a file unique
// to this call.
func (s *Service) Generate(ctx context.Context, in entity.CircularInput) (*Result, error) {
	ctx, rid := common.EnsureRequestID(ctx)
	start := time.Now()

	if s.cfg.MaxInputChars > 0 {
		v := common.NewValidator()
		v.Field("text", in.Text, common.MaxLength(s.cfg.MaxInputChars))
		if err := common.ValidateAndReturnError(v); err != nil {
			s.logger.Warn("circulars.generate.invalid_input", "req_id", rid, "error", err)
			s.metrics.ObserveOutcome(constants.OutcomeBadRequest)
			return nil, err
		}
	}

	s.logger.Info("circulars.generate.start", "req_id", rid, "text_len", len(in.Text))

	t0 := time.Now()
	circ, err := s.extractor.Extract(ctx, in)
	s.metrics.ObserveStage(metrics.StageExtract, time.Since(t0))
	if err != nil {
		s.metrics.ObserveOutcome(OutcomeFor(err))
		return nil, err
	}
	s.metrics.ObserveEventType(circ.EventType)

	path := filepath.Join(s.cfg.OutputDir, constants.OutputFilePrefix+uuid.New().String()+"."+constants.DocxExt)

	t0 = time.Now()
	path, err = s.renderer.RenderCircular(ctx, circ, path)
	s.metrics.ObserveStage(metrics.StageRender, time.Since(t0))
	if err != nil {
		if !errors.Is(err, common.ErrRender) {
			err = common.RenderFailure(err)
		}
		s.logger.Error("circulars.generate.render_failed", "req_id", rid, "error", err)
		s.metrics.ObserveOutcome(constants.OutcomeRender)
		return nil, err
	}

	s.metrics.ObserveOutcome(constants.OutcomeOK)
	s.logger.Info("circulars.generate.ok",
		"req_id", rid,
		"path", path,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return &Result{RequestID: rid, Circular: circ, Path: path}, nil
}

// Discard removes the rendered file once it has been delivered.
func (s *Service) Discard(res *Result) {
	if res == nil || res.Path == "" {
		return
	}
	if err := os.Remove(res.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		s.logger.Warn("circulars.discard_failed", "req_id", res.RequestID, "path", res.Path, "error", err)
	}
}

// OutcomeFor classifies a pipeline error for metrics.
func OutcomeFor(err error) constants.Outcome {
	switch {
	case err == nil:
		return constants.OutcomeOK
	case errors.Is(err, common.ErrMalformedOutput):
		return constants.OutcomeMalformed
	case errors.Is(err, common.ErrGeneration):
		return constants.OutcomeGeneration
	case errors.Is(err, common.ErrRender):
		return constants.OutcomeRender
	case errors.Is(err, common.ErrInvalidInput), errors.Is(err, common.ErrValidation):
		return constants.OutcomeBadRequest
	default:
		return constants.OutcomeInternal
	}
}
