package llm

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/canton7/Dox2Word-sub000/internal/ir"
)

// DefaultOllamaEndpoint is used when no endpoint is configured for ollama.
const DefaultOllamaEndpoint = "http://localhost:11434"

// OpenAIProvider formats through the chat completions API. Ollama serves
// the same API, so it is an OpenAIProvider with a local base URL.
type OpenAIProvider struct {
	name     string
	cfg      ProviderConfig
	needsKey bool
	client   *openai.Client
}

// NewOpenAI creates an OpenAI provider.
func NewOpenAI(cfg ProviderConfig) (Provider, error) {
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.Endpoint != "" {
		clientCfg.BaseURL = cfg.Endpoint
	}
	return &OpenAIProvider{
		name:     "openai",
		cfg:      cfg,
		needsKey: true,
		client:   openai.NewClientWithConfig(clientCfg),
	}, nil
}

// NewOllama creates a provider for a local Ollama server.
func NewOllama(cfg ProviderConfig) (Provider, error) {
	if cfg.Model == "" {
		cfg.Model = "llama3.2"
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultOllamaEndpoint
	}
	key := cfg.APIKey
	if key == "" {
		key = "ollama"
	}
	clientCfg := openai.DefaultConfig(key)
	clientCfg.BaseURL = strings.TrimRight(cfg.Endpoint, "/") + "/v1"
	return &OpenAIProvider{
		name:   "ollama",
		cfg:    cfg,
		client: openai.NewClientWithConfig(clientCfg),
	}, nil
}

func (p *OpenAIProvider) Name() string { return p.name }

func (p *OpenAIProvider) Validate() error {
	if p.needsKey && p.cfg.APIKey == "" {
		return fmt.Errorf("%s: %w (set OPENAI_API_KEY)", p.name, ErrMissingAPIKey)
	}
	return nil
}

func (p *OpenAIProvider) Format(ctx context.Context, doc *ir.Document, opts FormatOptions) (*FormatResult, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       p.cfg.Model,
		MaxTokens:   opts.maxTokens(),
		Temperature: float32(opts.Temperature),
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: SystemPrompt(opts)},
			{Role: openai.ChatMessageRoleUser, Content: UserPrompt(doc)},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%s request failed: %w", p.name, err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return nil, fmt.Errorf("%s returned no choices", p.name)
	}

	return &FormatResult{
		Markdown: cleanReply(resp.Choices[0].Message.Content),
		Model:    resp.Model,
		Usage: TokenUsage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
	}, nil
}
