package llm

import (
	"context"
	"errors"

	"github.com/joseph-ayodele/event-circulars/internal/entity"
)

// ErrEmptyCompletion is returned by providers that answered without any text.
var ErrEmptyCompletion = errors.New("empty completion")

// Completer is the model-call capability: one prompt in, the full text
// completion out. Implementations block until the whole answer is available.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// CompleterFunc adapts a plain function to Completer.
type CompleterFunc func(ctx context.Context, prompt string) (string, error)

func (f CompleterFunc) Complete(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// CircularExtractor is the interface the circulars service depends on.
type CircularExtractor interface {
	Extract(ctx context.Context, in entity.CircularInput) (entity.EventCircular, error)
}
