package llm

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/abhisek/examlens/internal/store"
)

// client is one vendor SDK answering a single-turn Request.
type client interface {
	complete(ctx context.Context, model string, req Request) (completion, error)
}

// vendorProvider binds a client to a resolved model and checks every
// reply through finish.
type vendorProvider struct {
	client client
	model  string
}

func (p *vendorProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	if req.MaxTokens <= 0 {
		req.MaxTokens = defaultMaxTokens
	}
	c, err := p.client.complete(ctx, p.model, req)
	if err != nil {
		return nil, err
	}
	if c.model == "" {
		c.model = p.model
	}
	return finish(req, c)
}

func (p *vendorProvider) ModelID() string {
	return p.model
}

// NewProvider builds the configured vendor. Calls flow
// caller → retry → logging → vendor, so every attempt is one event.
// A nil eventRepo skips event recording.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo, logger *slog.Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	base, err := newVendor(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	logged := WithLogging(base, cfg.Provider, eventRepo, logger)
	return WithRetry(logged, cfg.Retry), nil
}

func newVendor(ctx context.Context, cfg Config) (*vendorProvider, error) {
	switch cfg.Provider {
	case ProviderAnthropic:
		return &vendorProvider{
			client: newAnthropicClient(cfg.Anthropic.APIKey),
			model:  resolveModel(cfg.Anthropic.Model, anthropicModels),
		}, nil
	case ProviderOpenAI:
		return &vendorProvider{
			client: newOpenAIClient(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL, true),
			model:  resolveModel(cfg.OpenAI.Model, openaiModels),
		}, nil
	case ProviderOpenRouter:
		base := cfg.OpenRouter.BaseURL
		if base == "" {
			base = openRouterBaseURL
		}
		return &vendorProvider{
			client: newOpenAIClient(cfg.OpenRouter.APIKey, base, false),
			model:  cfg.OpenRouter.Model,
		}, nil
	case ProviderGemini:
		c, err := newGeminiClient(ctx, cfg.Gemini.APIKey, "")
		if err != nil {
			return nil, err
		}
		return &vendorProvider{
			client: c,
			model:  resolveModel(cfg.Gemini.Model, geminiModels),
		}, nil
	}
	return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
}

// resolveModel maps an alias such as "claude-haiku" to a vendor model ID.
// Unknown names pass through so full IDs work too.
func resolveModel(name string, aliases map[string]string) string {
	if id, ok := aliases[name]; ok {
		return id
	}
	return name
}
