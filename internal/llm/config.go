package llm

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// EnvPrefix namespaces every LLM setting read from the environment.
const EnvPrefix = "EXAMLENS_"

// Provider names accepted by Config.Provider.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
)

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects which LLM provider to use.
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds a single plan request including retries.
	Timeout time.Duration
}

type AnthropicConfig struct {
	APIKey string
	Model  string
}

type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type OpenRouterConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns a Config with no provider selected.
func DefaultConfig() Config {
	return Config{
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.0-flash-exp"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 45 * time.Second,
	}
}

// LookupFunc resolves a variable name, reporting whether it was set.
type LookupFunc func(key string) (string, bool)

// ConfigFromEnv builds a Config from the process environment.
func ConfigFromEnv() Config {
	return ConfigFromLookup(os.LookupEnv)
}

// ConfigFromLookup builds a Config from EXAMLENS_ prefixed variables. When
// no provider is named it falls back to DiscoverConfig on the vendor keys.
func ConfigFromLookup(lookup LookupFunc) Config {
	cfg := DefaultConfig()
	get := func(name string) string {
		v, _ := lookup(EnvPrefix + name)
		return v
	}

	provider := get("LLM_PROVIDER")
	if provider == "" {
		if found, ok := discover(lookup); ok {
			cfg = found
		}
	} else {
		cfg.Provider = provider
	}

	setIf(&cfg.Anthropic.APIKey, get("ANTHROPIC_API_KEY"))
	setIf(&cfg.Anthropic.Model, get("ANTHROPIC_MODEL"))
	setIf(&cfg.OpenAI.APIKey, get("OPENAI_API_KEY"))
	setIf(&cfg.OpenAI.Model, get("OPENAI_MODEL"))
	setIf(&cfg.OpenAI.BaseURL, get("OPENAI_BASE_URL"))
	setIf(&cfg.Gemini.APIKey, get("GEMINI_API_KEY"))
	setIf(&cfg.Gemini.Model, get("GEMINI_MODEL"))
	setIf(&cfg.OpenRouter.APIKey, get("OPENROUTER_API_KEY"))
	setIf(&cfg.OpenRouter.Model, get("OPENROUTER_MODEL"))
	setIf(&cfg.OpenRouter.BaseURL, get("OPENROUTER_BASE_URL"))

	if t := get("LLM_TIMEOUT"); t != "" {
		if d, err := time.ParseDuration(t); err == nil {
			cfg.Timeout = d
		}
	}
	return cfg
}

func setIf(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// DiscoverConfig checks the standard vendor API key variables in priority order
// (Gemini, OpenAI, Anthropic, OpenRouter) and returns a Config for the
// first provider whose key is found.
func DiscoverConfig() (Config, bool) {
	return discover(os.LookupEnv)
}

func discover(lookup LookupFunc) (Config, bool) {
	cfg := DefaultConfig()
	key := func(name string) string {
		v, _ := lookup(name)
		return v
	}

	switch {
	case key("GEMINI_API_KEY") != "":
		cfg.Provider = ProviderGemini
		cfg.Gemini.APIKey = key("GEMINI_API_KEY")
	case key("OPENAI_API_KEY") != "":
		cfg.Provider = ProviderOpenAI
		cfg.OpenAI.APIKey = key("OPENAI_API_KEY")
	case key("ANTHROPIC_API_KEY") != "":
		cfg.Provider = ProviderAnthropic
		cfg.Anthropic.APIKey = key("ANTHROPIC_API_KEY")
	case key("OPENROUTER_API_KEY") != "":
		cfg.Provider = ProviderOpenRouter
		cfg.OpenRouter.APIKey = key("OPENROUTER_API_KEY")
	default:
		return Config{}, false
	}
	return cfg, true
}

// ErrNoProvider reports that no provider was selected or discovered.
var ErrNoProvider = errors.New("no LLM provider configured")

// Enabled reports whether a provider has been selected.
func (c Config) Enabled() bool {
	return c.Provider != ""
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	missing := func(name string) error {
		return fmt.Errorf("%s%s_API_KEY is required for the %s provider", EnvPrefix, strings.ToUpper(name), name)
	}
	switch c.Provider {
	case ProviderAnthropic:
		if c.Anthropic.APIKey == "" {
			return missing(c.Provider)
		}
	case ProviderOpenAI:
		if c.OpenAI.APIKey == "" {
			return missing(c.Provider)
		}
	case ProviderGemini:
		if c.Gemini.APIKey == "" {
			return missing(c.Provider)
		}
	case ProviderOpenRouter:
		if c.OpenRouter.APIKey == "" {
			return missing(c.Provider)
		}
	case "":
		return ErrNoProvider
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	return nil
}
