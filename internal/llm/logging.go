package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/abhisek/examlens/internal/store"
)

// WithLogging records every call to p as an llm_request event and a debug
// log line. The repo may be nil; a failed event write never fails the call.
func WithLogging(p Provider, provider string, repo store.EventRepo, logger *slog.Logger) Provider {
	if logger == nil {
		logger = slog.Default()
	}
	return &eventLogger{inner: p, provider: provider, repo: repo, logger: logger}
}

type eventLogger struct {
	inner    Provider
	provider string
	repo     store.EventRepo
	logger   *slog.Logger
}

func (l *eventLogger) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := l.inner.Generate(ctx, req)

	purpose := req.Purpose
	if purpose == "" {
		purpose = "unlabelled"
	}
	ev := store.LLMRequestEventData{
		Provider:    l.provider,
		Model:       l.inner.ModelID(),
		Purpose:     purpose,
		LatencyMs:   time.Since(start).Milliseconds(),
		Success:     err == nil,
		RequestBody: transcript(req),
	}
	if resp != nil {
		ev.Model = resp.Model
		ev.InputTokens = resp.Usage.InputTokens
		ev.OutputTokens = resp.Usage.OutputTokens
		ev.ResponseBody = string(resp.Content)
	}
	if err != nil {
		ev.ErrorMessage = err.Error()
	}

	l.logger.DebugContext(ctx, "llm request",
		"provider", ev.Provider,
		"model", ev.Model,
		"purpose", purpose,
		"latency_ms", ev.LatencyMs,
		"ok", ev.Success)

	if l.repo != nil {
		if werr := l.repo.AppendLLMRequest(ctx, ev); werr != nil {
			l.logger.WarnContext(ctx, "failed to record llm request event", "error", werr)
		}
	}
	return resp, err
}

func (l *eventLogger) ModelID() string {
	return l.inner.ModelID()
}

// transcript is the request as `examlens llm view` shows it.
func transcript(req Request) string {
	var b strings.Builder
	if req.System != "" {
		fmt.Fprintf(&b, "[system]\n%s\n\n", req.System)
	}
	fmt.Fprintf(&b, "[user]\n%s\n", req.Prompt)
	if req.Schema != nil {
		if def, err := json.Marshal(req.Schema.Definition); err == nil {
			fmt.Fprintf(&b, "\n[schema: %s]\n%s\n", req.Schema.Name, def)
		}
	}
	return b.String()
}
