package llm

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookupFrom(env map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestConfigFromLookup_Explicit(t *testing.T) {
	cfg := ConfigFromLookup(lookupFrom(map[string]string{
		"EXAMLENS_LLM_PROVIDER":       "openrouter",
		"EXAMLENS_OPENROUTER_API_KEY": "sk-or",
		"EXAMLENS_OPENROUTER_MODEL":   "meta-llama/llama-3-8b",
		"EXAMLENS_LLM_TIMEOUT":        "5s",
		"GEMINI_API_KEY":              "ignored",
	}))

	assert.Equal(t, ProviderOpenRouter, cfg.Provider)
	assert.Equal(t, "sk-or", cfg.OpenRouter.APIKey)
	assert.Equal(t, "meta-llama/llama-3-8b", cfg.OpenRouter.Model)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Empty(t, cfg.Gemini.APIKey)
	require.NoError(t, cfg.Validate())
}

func TestConfigFromLookup_Discovers(t *testing.T) {
	cfg := ConfigFromLookup(lookupFrom(map[string]string{
		"OPENAI_API_KEY":        "sk-oa",
		"ANTHROPIC_API_KEY":     "sk-ant",
		"EXAMLENS_OPENAI_MODEL": "gpt-4.1-mini",
	}))

	assert.Equal(t, ProviderOpenAI, cfg.Provider)
	assert.Equal(t, "sk-oa", cfg.OpenAI.APIKey)
	assert.Equal(t, "gpt-4.1-mini", cfg.OpenAI.Model)
}

func TestConfigFromLookup_NothingConfigured(t *testing.T) {
	cfg := ConfigFromLookup(lookupFrom(nil))

	assert.False(t, cfg.Enabled())
	assert.ErrorIs(t, cfg.Validate(), ErrNoProvider)
	assert.Equal(t, "claude-haiku", cfg.Anthropic.Model)
}

func TestConfig_ValidateMessageNamesVariable(t *testing.T) {
	err := Config{Provider: ProviderGemini}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "EXAMLENS_GEMINI_API_KEY")
}

func TestLookupCost(t *testing.T) {
	c := LookupCost("claude-haiku")
	require.NotNil(t, c)
	assert.InDelta(t, 6.0, c.Cost(1_000_000, 1_000_000), 1e-9)

	require.NotNil(t, LookupCost("gemini-2.0-flash"))
	assert.Nil(t, LookupCost("no-such-model"))
}

func TestClassifyStatus(t *testing.T) {
	var rl *ErrRateLimit
	require.ErrorAs(t, classifyStatus(429, 3*time.Second, assert.AnError), &rl)
	assert.Equal(t, 3*time.Second, rl.RetryAfter)

	var unavailable *ErrProviderUnavailable
	assert.ErrorAs(t, classifyStatus(503, 0, assert.AnError), &unavailable)
	assert.ErrorIs(t, classifyStatus(400, 0, assert.AnError), assert.AnError)
}

func TestRetryAfter(t *testing.T) {
	resp := &http.Response{Header: http.Header{}}
	assert.Zero(t, retryAfter(nil))
	assert.Zero(t, retryAfter(resp))

	resp.Header.Set("Retry-After", "12")
	assert.Equal(t, 12*time.Second, retryAfter(resp))

	resp.Header.Set("Retry-After", "Wed, 21 Oct 2026 07:28:00 GMT")
	assert.Zero(t, retryAfter(resp))
}
