// Package coach turns a dashboard report into an LLM-written study plan.
// The deterministic verdict is passed through untouched.
package coach

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/examlens/internal/dashboard"
	"github.com/abhisek/examlens/internal/llm"
)

// ErrNoHistory is returned for new users; there is nothing to plan from.
var ErrNoHistory = errors.New("no attempts to plan from")

// FocusArea is one thing to work on and how.
type FocusArea struct {
	Area   string `json:"area"`
	Action string `json:"action"`
}

// Plan is a generated study plan.
type Plan struct {
	Verdict     dashboard.Verdict `json:"verdict"`
	Headline    string            `json:"headline"`
	FocusAreas  []FocusArea       `json:"focus_areas"`
	DailyDrill  []string          `json:"daily_drill"`
	Model       string            `json:"model"`
	GeneratedAt time.Time         `json:"generated_at"`
}

type planOutput struct {
	Headline   string      `json:"headline"`
	FocusAreas []FocusArea `json:"focus_areas"`
	DailyDrill []string    `json:"daily_drill"`
}

// Planner generates study plans.
type Planner struct {
	provider llm.Provider
	cfg      Config
	now      func() time.Time
}

// NewPlanner creates a planner backed by provider.
func NewPlanner(provider llm.Provider, cfg Config) *Planner {
	return &Planner{provider: provider, cfg: cfg, now: time.Now}
}

// Plan asks the provider for a study plan matching report.
func (p *Planner) Plan(ctx context.Context, report *dashboard.Report) (*Plan, error) {
	if report == nil || report.NewUser {
		return nil, ErrNoHistory
	}
	req := llm.Request{
		Purpose:     llm.PurposeStudyPlan,
		System:      planSystemPrompt,
		Prompt:      buildPlanUserMessage(report),
		Schema:      PlanSchema,
		MaxTokens:   p.cfg.MaxTokens,
		Temperature: p.cfg.Temperature,
	}

	resp, err := p.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("study plan: %w", err)
	}

	var out planOutput
	if err := resp.Decode(&out); err != nil {
		return nil, fmt.Errorf("parse study plan: %w", err)
	}

	focus := out.FocusAreas
	if p.cfg.MaxFocusAreas > 0 && len(focus) > p.cfg.MaxFocusAreas {
		focus = focus[:p.cfg.MaxFocusAreas]
	}

	model := resp.Model
	if model == "" {
		model = p.provider.ModelID()
	}

	return &Plan{
		Verdict:     report.Coach,
		Headline:    out.Headline,
		FocusAreas:  focus,
		DailyDrill:  out.DailyDrill,
		Model:       model,
		GeneratedAt: p.now(),
	}, nil
}
