package gemini

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"google.golang.org/genai"

	"github.com/joseph-ayodele/event-circulars/internal/llm"
)

func newTestClient(fn generateFunc) *Client {
	return &Client{
		cfg:      Config{Model: "gemini-test", Temperature: 0.2},
		generate: fn,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func textResponse(s string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Role: "model", Parts: []*genai.Part{{Text: s}}},
		}},
	}
}

func TestComplete_ReturnsCandidateText(t *testing.T) {
	var gotModel, gotPrompt string
	var gotTemp float32
	c := newTestClient(func(_ context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
		gotModel = model
		gotPrompt = contents[0].Parts[0].Text
		gotTemp = *cfg.Temperature
		return textResponse(`{"event_title":"x"}`), nil
	})

	out, err := c.Complete(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if out != `{"event_title":"x"}` {
		t.Errorf("out = %q", out)
	}
	if gotModel != "gemini-test" || gotPrompt != "hello" || gotTemp != 0.2 {
		t.Errorf("request = (%q, %q, %v)", gotModel, gotPrompt, gotTemp)
	}
}

func TestComplete_Empty(t *testing.T) {
	c := newTestClient(func(context.Context, string, []*genai.Content, *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
		return textResponse("   "), nil
	})
	if _, err := c.Complete(context.Background(), "p"); !errors.Is(err, llm.ErrEmptyCompletion) {
		t.Fatalf("err = %v, want ErrEmptyCompletion", err)
	}
}

func TestComplete_APIError(t *testing.T) {
	boom := errors.New("quota exceeded")
	c := newTestClient(func(context.Context, string, []*genai.Content, *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
		return nil, boom
	})
	if _, err := c.Complete(context.Background(), "p"); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped %v", err, boom)
	}
}
