package llm

import (
	"context"
	"fmt"
	"strings"
)

// Provider defines the interface for LLM providers.
type Provider interface {
	// Name returns the provider name.
	Name() string

	// Polish rewrites a pipeline-generated narrative for readability.
	Polish(ctx context.Context, req PolishRequest) (*PolishResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible.
	IsAvailable(ctx context.Context) bool
}

// PolishRequest contains the input for narrative polishing.
type PolishRequest struct {
	// Narrative is the deterministic template text produced by the report
	// package. It already contains every figure the output may cite.
	Narrative string

	// Model is the specific model to use (provider-specific).
	Model string

	// MaxTokens limits the response length.
	MaxTokens int
}

// PolishResponse contains the polished narrative.
type PolishResponse struct {
	// SummaryMD is the rewritten narrative in Markdown.
	SummaryMD string

	// Model is the model that generated the response.
	Model string

	// TokensUsed tracks token consumption.
	TokensUsed int
}

// Config holds LLM provider configuration.
type Config struct {
	// Provider name: "openai" or "" (disabled).
	Provider string

	// Model name (provider-specific).
	Model string

	// APIKey for the provider.
	APIKey string

	// BaseURL for custom endpoints.
	BaseURL string

	// Timeout for API requests, in seconds.
	Timeout int

	// MaxTokens for response generation.
	MaxTokens int

	// RequestsPerMinute rate-limits API calls.
	RequestsPerMinute float64
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider:          "",
		Model:             "",
		Timeout:           30,
		MaxTokens:         600,
		RequestsPerMinute: 20,
	}
}

// NewProvider creates a provider from configuration. An empty provider name
// means the polish step is disabled and returns (nil, nil).
func NewProvider(config Config) (Provider, error) {
	switch strings.ToLower(config.Provider) {
	case "openai":
		return NewOpenAIProvider(config)
	case "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: openai)", config.Provider)
	}
}

// BuildPrompt constructs the polish prompt. The rules pin the model to the
// figures already present in the narrative so polishing can never change a
// computed number.
func BuildPrompt(narrative string) string {
	return fmt.Sprintf(`You are editing a disease-burden data summary for a public health report.

RULES:
1. Keep EVERY number, year, percentage and label exactly as written. Do not recompute, round differently, or invent figures.
2. Do not add claims that are not in the text.
3. Improve flow and readability only. Keep it under three short paragraphs.
4. Plain Markdown, no headings.

TEXT:
%s`, narrative)
}
