package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// openRouterBaseURL is the OpenAI-compatible endpoint OpenRouter serves.
const openRouterBaseURL = "https://openrouter.ai/api/v1"

var openaiModels = map[string]string{
	"gpt-mini": "gpt-4o-mini",
	"gpt":      "gpt-4o",
}

// openaiClient talks to OpenAI or any compatible endpoint.
type openaiClient struct {
	sdk *openai.Client
	// strict sends the schema as a json_schema response format. Otherwise
	// the reply is forced to a JSON object and the schema rides in the
	// system prompt, which every OpenRouter model accepts.
	strict bool
}

func newOpenAIClient(apiKey, baseURL string, strict bool) *openaiClient {
	conf := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		conf.BaseURL = baseURL
	}
	return &openaiClient{sdk: openai.NewClientWithConfig(conf), strict: strict}
}

func (c *openaiClient) complete(ctx context.Context, model string, req Request) (completion, error) {
	chat := openai.ChatCompletionRequest{
		Model:               model,
		MaxCompletionTokens: req.MaxTokens,
		Temperature:         float32(req.Temperature),
	}

	system := req.System
	if req.Schema != nil {
		def, err := json.Marshal(req.Schema.Definition)
		if err != nil {
			return completion{}, fmt.Errorf("marshal schema %q: %w", req.Schema.Name, err)
		}
		if c.strict {
			chat.ResponseFormat = &openai.ChatCompletionResponseFormat{
				Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
				JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
					Name:        req.Schema.Name,
					Description: req.Schema.Description,
					Schema:      json.RawMessage(def),
					Strict:      true,
				},
			}
		} else {
			chat.ResponseFormat = &openai.ChatCompletionResponseFormat{
				Type: openai.ChatCompletionResponseFormatTypeJSONObject,
			}
			system = strings.TrimSpace(system + "\n\nReply with one JSON object matching this schema:\n" + string(def))
		}
	}

	if system != "" {
		chat.Messages = append(chat.Messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: system,
		})
	}
	chat.Messages = append(chat.Messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.Prompt,
	})

	resp, err := c.sdk.CreateChatCompletion(ctx, chat)
	if err != nil {
		return completion{}, openaiError(err)
	}
	if len(resp.Choices) == 0 {
		return completion{}, &ErrInvalidResponse{Err: errors.New("openai reply has no choices")}
	}

	choice := resp.Choices[0]
	return completion{
		text:  choice.Message.Content,
		model: resp.Model,
		usage: Usage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
		truncated: choice.FinishReason == openai.FinishReasonLength,
	}, nil
}

func openaiError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return classifyStatus(apiErr.HTTPStatusCode, 0, err)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return classifyStatus(reqErr.HTTPStatusCode, 0, err)
	}
	return &ErrProviderUnavailable{Err: err}
}
