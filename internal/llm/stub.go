package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
)

const stubModel = "stub"

// Reply is one scripted StubProvider answer. Value is marshalled to JSON
// unless Raw is set, in which case Raw is the reply text as-is.
type Reply struct {
	Value     any
	Raw       string
	Usage     Usage
	Truncated bool
	Err       error
}

// StubProvider answers from a script, for tests and offline runs. Replies
// go through the same checks as vendor replies, so a Value that breaks
// the request schema fails with ErrInvalidResponse.
type StubProvider struct {
	mu       sync.Mutex
	script   []Reply
	requests []Request
}

// NewStub returns a provider that plays script in order.
func NewStub(script ...Reply) *StubProvider {
	return &StubProvider{script: script}
}

func (s *StubProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.requests = append(s.requests, req)
	if len(s.script) == 0 {
		s.mu.Unlock()
		return nil, &ErrProviderUnavailable{Err: errors.New("stub script exhausted")}
	}
	r := s.script[0]
	s.script = s.script[1:]
	s.mu.Unlock()

	if r.Err != nil {
		return nil, r.Err
	}
	text := r.Raw
	if text == "" {
		b, err := json.Marshal(r.Value)
		if err != nil {
			return nil, fmt.Errorf("stub reply: %w", err)
		}
		text = string(b)
	}
	if req.MaxTokens <= 0 {
		req.MaxTokens = defaultMaxTokens
	}
	return finish(req, completion{text: text, model: stubModel, usage: r.Usage, truncated: r.Truncated})
}

func (s *StubProvider) ModelID() string {
	return stubModel
}

// Requests returns every request seen so far, oldest first.
func (s *StubProvider) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}
