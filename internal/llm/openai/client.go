package openai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/joseph-ayodele/event-circulars/internal/llm"
)

type chatRequest struct {
	Model          string          `json:"model"`
	Temperature    float32         `json:"temperature"`
	Messages       []chatMessage   `json:"messages"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message      chatMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
}

// Complete implements llm.Completer with a single user message on /chat/completions.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	start := time.Now()

	body := chatRequest{
		Model:       c.cfg.Model,
		Temperature: c.cfg.Temperature,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
	}
	if c.cfg.JSONMode {
		body.ResponseFormat = &responseFormat{Type: "json_object"}
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	headers := map[string]string{"Authorization": "Bearer " + c.cfg.APIKey}

	var cc chatResponse
	if err := llm.PostJSON(ctx, c.http, endpoint, body, headers, &cc, c.logger); err != nil {
		return "", fmt.Errorf("openai: %w", err)
	}
	if len(cc.Choices) == 0 {
		return "", fmt.Errorf("openai: no choices: %w", llm.ErrEmptyCompletion)
	}
	content := cc.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		return "", fmt.Errorf("openai: finish_reason=%s: %w", cc.Choices[0].FinishReason, llm.ErrEmptyCompletion)
	}

	c.logger.Debug("llm.openai.complete.ok",
		"model", c.cfg.Model,
		"content_len", len(content),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return content, nil
}
