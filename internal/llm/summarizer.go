package llm

import (
	"context"
	"fmt"

	"github.com/healthforge/gbdkit/internal/model"
)

// Summarizer wraps a provider with rate limiting and converts results into
// the report-facing LLMSummary. It is optional throughout: a nil Summarizer
// (or one with no provider) simply leaves the template narrative as-is, and
// polishing never feeds back into computed figures.
type Summarizer struct {
	provider Provider
	limiter  *Limiter
	config   Config
}

// ConfigFromModel converts model.LLMConfig to llm.Config.
func ConfigFromModel(mc model.LLMConfig) Config {
	return Config{
		Provider:          mc.Provider,
		Model:             mc.Model,
		APIKey:            mc.APIKey,
		BaseURL:           mc.BaseURL,
		Timeout:           mc.Timeout,
		MaxTokens:         mc.MaxTokens,
		RequestsPerMinute: mc.RequestsPerMinute,
	}
}

// NewSummarizer creates a Summarizer from configuration. Returns an error
// only for a misconfigured provider; an empty provider yields a disabled
// Summarizer.
func NewSummarizer(config Config) (*Summarizer, error) {
	provider, err := NewProvider(config)
	if err != nil {
		return nil, err
	}
	return &Summarizer{
		provider: provider,
		limiter:  NewLimiter(config.RequestsPerMinute),
		config:   config,
	}, nil
}

// IsEnabled reports whether a provider is configured.
func (s *Summarizer) IsEnabled() bool {
	return s != nil && s.provider != nil
}

// Polish rewrites a narrative and packages the result. The original
// narrative is always preserved by the caller; on failure the error is
// returned so callers can warn and fall back.
func (s *Summarizer) Polish(ctx context.Context, narrative string) (*model.LLMSummary, error) {
	if !s.IsEnabled() {
		return nil, nil
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	resp, err := s.provider.Polish(ctx, PolishRequest{
		Narrative: narrative,
		Model:     s.config.Model,
		MaxTokens: s.config.MaxTokens,
	})
	if err != nil {
		return nil, err
	}

	summary := &model.LLMSummary{
		Enabled:   true,
		Provider:  s.provider.Name(),
		Model:     resp.Model,
		SummaryMD: resp.SummaryMD,
	}
	if resp.SummaryMD == "" {
		summary.Warnings = append(summary.Warnings, "provider returned an empty summary")
	}
	return summary, nil
}
