package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/canton7/Dox2Word-sub000/internal/config"
	"github.com/canton7/Dox2Word-sub000/internal/ir"
	"github.com/canton7/Dox2Word-sub000/internal/llm"
)

// llmSettings selects the provider for the polish stage.
type llmSettings struct {
	enabled  bool
	provider string
	model    string
}

// resolveLLM merges flags, DOX2MD_* environment variables and config.
// A model without a provider picks the provider that serves it.
func resolveLLM(enabled bool, provider, model string, cfg *config.Config) llmSettings {
	s := llmSettings{
		enabled:  enabled || config.GetEnvBool("DOX2MD_LLM"),
		provider: provider,
		model:    model,
	}
	if s.provider == "" {
		s.provider = os.Getenv("DOX2MD_PROVIDER")
	}
	if s.model == "" {
		s.model = os.Getenv("DOX2MD_MODEL")
	}
	if s.provider == "" {
		if s.model != "" {
			s.provider = detectProviderFromModel(s.model)
		} else {
			s.provider = cfg.DefaultProvider
		}
	}
	return s
}

// formatWithLLM sends the rendered compound through the configured provider.
func formatWithLLM(ctx context.Context, doc *ir.Document, cfg *config.Config, s llmSettings, log *slog.Logger) (string, error) {
	var pc llm.ProviderConfig
	opts := llm.FormatOptions{
		Language:    cfg.Format.Language,
		Temperature: cfg.Format.Temperature,
	}
	if p, ok := cfg.GetProvider(s.provider); ok {
		pc = llm.ProviderConfig{APIKey: p.APIKey, Model: p.Model, Endpoint: p.Endpoint}
		opts.MaxTokens = p.MaxTokens
	}
	if s.model != "" {
		pc.Model = s.model
	}
	if s.provider == "ollama" {
		pc.Endpoint = config.GetEnvOrDefault("OLLAMA_HOST", pc.Endpoint)
		if pc.Endpoint != "" && !strings.Contains(pc.Endpoint, "://") {
			pc.Endpoint = "http://" + pc.Endpoint
		}
	}

	provider, err := llm.New(s.provider, pc)
	if err != nil {
		return "", err
	}
	if err := provider.Validate(); err != nil {
		return "", err
	}

	res, err := provider.Format(ctx, doc, opts)
	if err != nil {
		return "", err
	}
	log.Info("formatted with LLM", "compound", doc.Metadata.ID, "provider", provider.Name(), "model", res.Model,
		"input_tokens", res.Usage.InputTokens, "output_tokens", res.Usage.OutputTokens)
	if res.Markdown == "" {
		return "", fmt.Errorf("%s returned an empty document", provider.Name())
	}
	return res.Markdown, nil
}
