// Package provider selects and builds the configured model backend.
package provider

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/joseph-ayodele/event-circulars/constants"
	"github.com/joseph-ayodele/event-circulars/internal/common"
	"github.com/joseph-ayodele/event-circulars/internal/llm"
	"github.com/joseph-ayodele/event-circulars/internal/llm/gemini"
	"github.com/joseph-ayodele/event-circulars/internal/llm/openai"
)

// New returns the Completer for cfg.Provider, rate limited when cfg.RateLimit > 0.
func New(ctx context.Context, cfg common.LLMConfig, logger *slog.Logger) (llm.Completer, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var c llm.Completer
	switch cfg.Provider {
	case constants.ProviderGemini:
		gc, err := gemini.NewClient(ctx, gemini.Config{
			APIKey:      cfg.APIKey,
			Model:       cfg.Model,
			BaseURL:     cfg.BaseURL,
			Temperature: cfg.Temperature,
			Timeout:     cfg.Timeout,
		}, logger)
		if err != nil {
			return nil, common.NewAppError(common.CodeConfig, "create gemini client", err)
		}
		c = gc
	case constants.ProviderOpenAI:
		c = openai.NewClient(openai.Config{
			APIKey:      cfg.APIKey,
			BaseURL:     cfg.BaseURL,
			Model:       cfg.Model,
			Temperature: cfg.Temperature,
			Timeout:     cfg.Timeout,
			JSONMode:    true,
		}, logger)
	default:
		return nil, common.NewAppError(common.CodeConfig, fmt.Sprintf("unknown llm provider %q", cfg.Provider), common.ErrInvalidInput)
	}

	logger.Info("llm.provider.ready",
		"provider", cfg.Provider,
		"model", cfg.Model,
		"rate_limit", cfg.RateLimit,
	)

	if cfg.RateLimit > 0 {
		c = llm.NewRateLimitedCompleter(c, cfg.RateLimit, cfg.RateBurst)
	}
	return c, nil
}
