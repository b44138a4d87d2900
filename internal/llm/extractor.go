package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/joseph-ayodele/event-circulars/internal/common"
	"github.com/joseph-ayodele/event-circulars/internal/entity"
)

// MalformedKind tells a JSON syntax failure apart from a schema mismatch.
type MalformedKind string

const (
	MalformedSyntax MalformedKind = "syntax"
	MalformedSchema MalformedKind = "schema"
)

// MalformedOutputError reports a model response that could not become an
// EventCircular. Raw is kept for logs only and must not reach callers.
type MalformedOutputError struct {
	Kind  MalformedKind
	Raw   string
	Cause error
}

func (e *MalformedOutputError) Error() string {
	return fmt.Sprintf("malformed model output (%s): %v", e.Kind, e.Cause)
}

func (e *MalformedOutputError) Unwrap() []error {
	return []error{common.ErrMalformedOutput, e.Cause}
}

// Extractor turns free text into a validated EventCircular with one model call.
type Extractor struct {
	completer Completer
	schema    *jsonschema.Schema
	logger    *slog.Logger
}

func NewExtractor(completer Completer, logger *slog.Logger) (*Extractor, error) {
	if completer == nil {
		return nil, errors.New("llm: nil completer")
	}
	if logger == nil {
		logger = slog.Default()
	}
	schema, err := CompileSchema(BuildCircularJSONSchema())
	if err != nil {
		return nil, fmt.Errorf("llm: %w", err)
	}
	return &Extractor{completer: completer, schema: schema, logger: logger}, nil
}

// Extract implements CircularExtractor. Model-call errors come back as
// GENERATION_FAILED, unusable answers as MALFORMED_OUTPUT; neither is retried.
func (e *Extractor) Extract(ctx context.Context, in entity.CircularInput) (entity.EventCircular, error) {
	ctx, rid := common.EnsureRequestID(ctx)
	start := time.Now()

	prompt := BuildPrompt(in.Text)
	e.logger.Info("llm.extract.start",
		"req_id", rid,
		"text_len", len(in.Text),
		"prompt_len", len(prompt),
	)

	raw, err := e.completer.Complete(ctx, prompt)
	if err != nil {
		e.logger.Error("llm.extract.generation_error",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return entity.EventCircular{}, common.GenerationFailure(err)
	}

	circ, err := e.ParseResponse(raw)
	if err != nil {
		var mErr *MalformedOutputError
		if errors.As(err, &mErr) {
			e.logger.Error("llm.extract.malformed_output",
				"req_id", rid, "kind", string(mErr.Kind), "error", mErr.Cause,
				"response", mErr.Raw,
				"elapsed_ms", time.Since(start).Milliseconds(),
			)
		}
		return entity.EventCircular{}, common.MalformedOutput(err)
	}

	e.logger.Info("llm.extract.ok",
		"req_id", rid,
		"event_title", circ.EventTitle,
		"event_type", circ.EventType,
		"rules", len(circ.Rules),
		"judging_criteria", len(circ.JudgingCriteria),
		"coordinators", len(circ.Coordinators),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return circ, nil
}

// ParseResponse cleans, parses and validates one raw model response.
// Errors are always *MalformedOutputError.
func (e *Extractor) ParseResponse(raw string) (entity.EventCircular, error) {
	cleaned := CleanResponse(raw)

	var doc any
	if err := json.Unmarshal([]byte(cleaned), &doc); err != nil {
		return entity.EventCircular{}, &MalformedOutputError{Kind: MalformedSyntax, Raw: raw, Cause: err}
	}

	if m, ok := doc.(map[string]any); ok {
		dropUnknownFields(m, e.logger)
	}
	if err := validateDocument(e.schema, doc); err != nil {
		return entity.EventCircular{}, &MalformedOutputError{Kind: MalformedSchema, Raw: raw, Cause: err}
	}

	// Decode the pruned map; struct decoding matches keys case-insensitively.
	validated, err := json.Marshal(doc)
	if err != nil {
		return entity.EventCircular{}, &MalformedOutputError{Kind: MalformedSchema, Raw: raw, Cause: err}
	}
	var out entity.EventCircular
	if err := json.Unmarshal(validated, &out); err != nil {
		return entity.EventCircular{}, &MalformedOutputError{Kind: MalformedSchema, Raw: raw, Cause: err}
	}
	return out, nil
}
