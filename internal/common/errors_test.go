package common

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"malformed", MalformedOutput(errors.New("unexpected token")), http.StatusBadRequest},
		{"wrapped malformed", fmt.Errorf("generate: %w", MalformedOutput(nil)), http.StatusBadRequest},
		{"invalid input", InvalidInput("text is required"), http.StatusBadRequest},
		{"generation", GenerationFailure(errors.New("quota exceeded")), http.StatusInternalServerError},
		{"render", RenderFailure(errors.New("disk full")), http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := HTTPStatus(tc.err); got != tc.want {
				t.Errorf("got %d, want %d", got, tc.want)
			}
		})
	}
}

func TestAppErrorUnwrapsKindAndCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := GenerationFailure(cause)
	if !errors.Is(err, ErrGeneration) {
		t.Error("expected ErrGeneration")
	}
	if !errors.Is(err, cause) {
		t.Error("expected cause to be reachable")
	}
	if errors.Is(err, ErrMalformedOutput) {
		t.Error("generation failure must not look like malformed output")
	}
}

func TestPublicMessageHidesCause(t *testing.T) {
	err := MalformedOutput(errors.New(`raw: {"secret":`))
	if got := PublicMessage(err); got != "failed to generate valid JSON circular" {
		t.Errorf("unexpected public message %q", got)
	}
	if got := PublicMessage(errors.New("db password leaked")); got != "internal error" {
		t.Errorf("unexpected public message %q", got)
	}
}
