// Package export renders EventCirculars into Word documents.
package export

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gomutex/godocx/common/units"

	"github.com/joseph-ayodele/event-circulars/constants"
	"github.com/joseph-ayodele/event-circulars/internal/common"
	"github.com/joseph-ayodele/event-circulars/internal/entity"
)

// HeaderWidthInches is the rendered width of the header image.
const HeaderWidthInches = 6

// TableLabels are the summary table rows, top to bottom.
var TableLabels = []string{
	"Event Title",
	"Date & Time",
	"Venue",
	"Number of Participants",
	"Event Type",
	"Duration",
}

// Renderer turns an EventCircular into a .docx using the fixed circular template.
type Renderer struct {
	headerImagePath string
	logger          *slog.Logger
}

// NewRenderer returns a Renderer. headerImagePath may be empty or point at a
// missing file; the document is then rendered without a header image.
func NewRenderer(headerImagePath string, logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{headerImagePath: headerImagePath, logger: logger}
}

// RenderCircular writes the document to path, replacing any existing file,
// and returns path.
func (r *Renderer) RenderCircular(ctx context.Context, circ entity.EventCircular, path string) (string, error) {
	start := time.Now()

	data, err := r.RenderCircularDOCX(ctx, circ)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		r.logger.Error("export.docx.write_error", "path", path, "error", err)
		return "", common.RenderFailure(fmt.Errorf("write %s: %w", filepath.Base(path), err))
	}

	r.logger.Info("export.docx.ok",
		"path", path,
		"bytes", len(data),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return path, nil
}

// RenderCircularDOCX returns the document bytes without touching the filesystem
// (apart from reading the header image).
func (r *Renderer) RenderCircularDOCX(ctx context.Context, circ entity.EventCircular) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, common.RenderFailure(err)
	}

	header, err := r.loadHeaderImage()
	if err != nil {
		r.logger.Error("export.docx.header_error", "path", r.headerImagePath, "error", err)
		return nil, common.RenderFailure(err)
	}

	doc, err := buildCircular(circ, header)
	if err != nil {
		return nil, common.RenderFailure(err)
	}
	data, err := doc.bytes()
	if err != nil {
		return nil, common.RenderFailure(err)
	}
	return data, nil
}

func buildCircular(circ entity.EventCircular, header *picture) (*document, error) {
	doc, err := newDocument()
	if err != nil {
		return nil, err
	}

	if header != nil {
		if err := doc.centeredPicture(header); err != nil {
			return nil, err
		}
	}
	doc.spacer()

	values := []string{
		circ.EventTitle,
		circ.DateTime,
		circ.Venue,
		circ.NumberOfParticipants,
		circ.EventType,
		circ.Duration,
	}
	rows := make([][2]string, len(TableLabels))
	for i, label := range TableLabels {
		rows[i] = [2]string{label, values[i]}
	}
	doc.table(rows)
	doc.spacer()

	doc.heading("Event Description")
	doc.text(circ.EventDescription)
	doc.spacer()

	bulletSection(doc, "Rules", circ.Rules)
	bulletSection(doc, "Judging Criteria", circ.JudgingCriteria)

	if len(circ.Coordinators) > 0 {
		doc.heading("Coordinators")
		doc.text(strings.Join(circ.Coordinators, ", "))
		doc.spacer()
	}

	doc.heading("Convenor")
	doc.text(circ.Convenor)

	return doc, nil
}

// bulletSection is skipped entirely for an empty list.
func bulletSection(doc *document, title string, items []string) {
	if len(items) == 0 {
		return
	}
	doc.heading(title)
	for _, it := range items {
		doc.bullet(it)
	}
	doc.spacer()
}

// loadHeaderImage returns nil when no header image is configured or present.
func (r *Renderer) loadHeaderImage() (*picture, error) {
	if r.headerImagePath == "" {
		return nil, nil
	}
	f, err := os.Open(r.headerImagePath)
	if errors.Is(err, os.ErrNotExist) {
		r.logger.Debug("export.docx.header_missing", "path", r.headerImagePath)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header image: %w", err)
	}
	defer f.Close()

	ext := constants.NormalizeExt(filepath.Ext(r.headerImagePath))
	if _, ok := constants.HeaderImageExtensions[ext]; !ok {
		return nil, fmt.Errorf("unsupported header image type %q", ext)
	}

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return nil, fmt.Errorf("decode header image: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("header image has no size")
	}

	width := units.Inch(HeaderWidthInches)
	height := width * units.Inch(cfg.Height) / units.Inch(cfg.Width)
	return &picture{path: r.headerImagePath, width: width, height: height}, nil
}
