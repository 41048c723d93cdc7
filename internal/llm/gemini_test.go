package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestGeminiSchema_StudyPlanShape(t *testing.T) {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"headline": map[string]any{"type": "string", "description": "one sentence"},
			"focus_areas": map[string]any{
				"type":     "array",
				"minItems": 1,
				"maxItems": 5,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"area":   map[string]any{"type": "string"},
						"action": map[string]any{"type": "string"},
					},
					"required": []any{"area", "action"},
				},
			},
			"tone": map[string]any{"type": "string", "enum": []string{"calm", "urgent"}},
		},
		"required":             []any{"headline", "focus_areas"},
		"additionalProperties": false,
	}

	s := geminiSchema(def)

	assert.Equal(t, genai.TypeObject, s.Type)
	assert.Equal(t, []string{"headline", "focus_areas"}, s.Required)
	assert.Equal(t, "one sentence", s.Properties["headline"].Description)

	focus := s.Properties["focus_areas"]
	assert.Equal(t, genai.TypeArray, focus.Type)
	require.NotNil(t, focus.MinItems)
	require.NotNil(t, focus.MaxItems)
	assert.Equal(t, int64(1), *focus.MinItems)
	assert.Equal(t, int64(5), *focus.MaxItems)
	assert.Equal(t, genai.TypeObject, focus.Items.Type)
	assert.Equal(t, []string{"area", "action"}, focus.Items.Required)

	assert.Equal(t, []string{"calm", "urgent"}, s.Properties["tone"].Enum)
}

func TestGeminiSchema_JSONNumbersAndUnknownType(t *testing.T) {
	var def map[string]any
	require.NoError(t, json.Unmarshal([]byte(`{"type":"array","maxItems":3,"items":{"type":"null"}}`), &def))

	s := geminiSchema(def)
	require.NotNil(t, s.MaxItems)
	assert.Equal(t, int64(3), *s.MaxItems)
	assert.Equal(t, genai.TypeString, s.Items.Type)
}

func TestGemini_GenerateContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{{
				"content": map[string]any{
					"role":  "model",
					"parts": []map[string]any{{"text": `{"headline":"Drill Polity."}`}},
				},
				"finishReason": "STOP",
			}},
			"usageMetadata": map[string]any{
				"promptTokenCount":     12,
				"candidatesTokenCount": 8,
				"totalTokenCount":      20,
			},
			"modelVersion": "gemini-2.0-flash-001",
		})
	}))
	t.Cleanup(server.Close)

	c, err := newGeminiClient(context.Background(), "k", server.URL)
	require.NoError(t, err)
	p := &vendorProvider{client: c, model: "gemini-2.0-flash"}

	resp, err := p.Generate(context.Background(), Request{Prompt: "plan", Schema: headlineSchema})
	require.NoError(t, err)

	assert.JSONEq(t, `{"headline":"Drill Polity."}`, string(resp.Content))
	assert.Equal(t, Usage{InputTokens: 12, OutputTokens: 8, TotalTokens: 20}, resp.Usage)
	assert.Equal(t, "gemini-2.0-flash-001", resp.Model)
}
