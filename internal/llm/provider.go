// Package llm is the provider abstraction behind the optional study-plan
// coach. Providers return JSON validated against a caller-supplied schema.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
)

// Provider generates one structured reply per request.
type Provider interface {
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID is the configured model, before any vendor-side aliasing.
	ModelID() string
}

// PurposeStudyPlan labels coach requests in the event log.
const PurposeStudyPlan = "study-plan"

// defaultMaxTokens applies when a request leaves MaxTokens unset.
const defaultMaxTokens = 1024

// Request is a single-turn generation. The coach never holds a
// conversation, so there is one system prompt and one user prompt.
type Request struct {
	// Purpose is stored on the llm_request event.
	Purpose string

	System string
	Prompt string

	// Schema, when set, selects the vendor's structured output mode and
	// the reply is validated against it before it is returned.
	Schema *Schema

	MaxTokens   int
	Temperature float64
}

// Schema is a named JSON Schema document.
type Schema struct {
	// Name is kebab-case, e.g. "study-plan". Compiled schemas are cached
	// by name.
	Name        string
	Description string
	Definition  map[string]any
}

// Response is a checked reply.
type Response struct {
	// Content is schema-valid JSON when the request carried a Schema,
	// otherwise the trimmed reply text.
	Content json.RawMessage
	Usage   Usage
	Model   string
}

// Decode unmarshals Content into v.
func (r *Response) Decode(v any) error {
	if err := json.Unmarshal(r.Content, v); err != nil {
		return &ErrInvalidResponse{Content: r.Content, Err: fmt.Errorf("decode: %w", err)}
	}
	return nil
}

// Usage is token consumption for one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// completion is a vendor reply before finish has checked it.
type completion struct {
	text      string
	model     string
	usage     Usage
	truncated bool
}

// finish turns a vendor reply into a Response. A truncated reply is an
// ErrMaxTokensExceeded because a cut-off plan never decodes.
func finish(req Request, c completion) (*Response, error) {
	content := bytes.TrimSpace([]byte(c.text))
	if c.truncated {
		return nil, &ErrMaxTokensExceeded{Content: content}
	}
	if c.usage.TotalTokens == 0 {
		c.usage.TotalTokens = c.usage.InputTokens + c.usage.OutputTokens
	}

	if req.Schema != nil {
		content = unfence(content)
		if err := ValidateJSON(req.Schema, content); err != nil {
			return nil, err
		}
	}

	return &Response{Content: content, Usage: c.usage, Model: c.model}, nil
}

// unfence strips a markdown code fence some models wrap JSON in when
// they are only asked for JSON in the prompt.
func unfence(b []byte) []byte {
	if !bytes.HasPrefix(b, []byte("```")) {
		return b
	}
	nl := bytes.IndexByte(b, '\n')
	if nl < 0 {
		return b
	}
	body := bytes.TrimSpace(b[nl+1:])
	return bytes.TrimSpace(bytes.TrimSuffix(body, []byte("```")))
}
