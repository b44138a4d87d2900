package llm

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

// RateLimitedCompleter spaces out model calls with a token bucket. It only
// waits; a call that fails is never repeated.
type RateLimitedCompleter struct {
	next    Completer
	limiter *rate.Limiter
}

// NewRateLimitedCompleter allows rps calls per second with the given burst.
func NewRateLimitedCompleter(next Completer, rps float64, burst int) *RateLimitedCompleter {
	if burst < 1 {
		burst = 1
	}
	return &RateLimitedCompleter{
		next:    next,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

func (c *RateLimitedCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait: %w", err)
	}
	return c.next.Complete(ctx, prompt)
}
