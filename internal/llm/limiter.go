package llm

import (
	"context"

	"golang.org/x/time/rate"
)

// Limiter paces outbound API calls so batch narrative generation stays
// inside provider quotas.
type Limiter struct {
	limiter *rate.Limiter
}

// NewLimiter creates a limiter allowing requestsPerMinute calls.
func NewLimiter(requestsPerMinute float64) *Limiter {
	if requestsPerMinute <= 0 {
		requestsPerMinute = 20
	}
	return &Limiter{
		limiter: rate.NewLimiter(rate.Limit(requestsPerMinute/60), 1),
	}
}

// Wait blocks until the next call is allowed or the context is done.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}
