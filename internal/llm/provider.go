// Package llm provides the optional LLM polish stage that rewrites rendered
// Markdown for wording, and the providers that back it.
package llm

import (
	"context"
	"errors"

	"github.com/canton7/Dox2Word-sub000/internal/ir"
)

// ErrMissingAPIKey is returned by Validate when a hosted provider has no key.
var ErrMissingAPIKey = errors.New("API key is not set")

// Provider is the interface that all LLM providers must implement.
type Provider interface {
	// Name returns the provider identifier (e.g., "openai", "anthropic").
	Name() string

	// Format takes a compound and returns polished markdown.
	Format(ctx context.Context, doc *ir.Document, opts FormatOptions) (*FormatResult, error)

	// Validate checks if the provider is properly configured.
	Validate() error
}

// ProviderConfig carries the settings a provider is built from.
type ProviderConfig struct {
	APIKey   string
	Model    string
	Endpoint string // base URL override; required for ollama
}

// FormatOptions contains options for LLM formatting.
type FormatOptions struct {
	Language    string  `json:"language,omitempty"`    // output language (e.g., "en", "de")
	MaxTokens   int     `json:"max_tokens,omitempty"`  // maximum tokens for response
	Temperature float64 `json:"temperature,omitempty"` // creativity level (0.0 - 1.0)
	Prompt      string  `json:"prompt,omitempty"`      // custom system prompt
}

// FormatResult contains the result of LLM formatting.
type FormatResult struct {
	Markdown string     `json:"markdown"`
	Usage    TokenUsage `json:"usage"`
	Model    string     `json:"model"`
}

// TokenUsage contains token usage statistics.
type TokenUsage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
	TotalTokens  int `json:"total_tokens"`
}

// DefaultFormatOptions returns the default formatting options.
func DefaultFormatOptions() FormatOptions {
	return FormatOptions{
		Language:    "en",
		MaxTokens:   4096,
		Temperature: 0.3,
	}
}

func (o FormatOptions) maxTokens() int {
	if o.MaxTokens <= 0 {
		return DefaultFormatOptions().MaxTokens
	}
	return o.MaxTokens
}
