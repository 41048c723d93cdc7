// Package report wires the analytics packages to a record source and
// produces the dashboard and session reports.
package report

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/abhisek/examlens/internal/attempt"
	"github.com/abhisek/examlens/internal/cutoff"
	"github.com/abhisek/examlens/internal/dashboard"
	"github.com/abhisek/examlens/internal/growth"
	"github.com/abhisek/examlens/internal/history"
	"github.com/abhisek/examlens/internal/session"
)

// Report status values.
const (
	StatusOK       = "ok"
	StatusNotFound = "not_found"
)

// Source is everything the engine reads. The attempt store implements it.
type Source interface {
	history.Source
	cutoff.Source
	// UserAttempts returns the user's attempts newest first, capped to
	// limit when limit is positive.
	UserAttempts(ctx context.Context, userID string, limit int) ([]attempt.Record, error)
}

// QuestionRef identifies a question of the session for rebuilding the
// exam screen.
type QuestionRef struct {
	ID       int64  `json:"id"`
	Text     string `json:"text"`
	Subject  string `json:"subject"`
	Pattern  string `json:"pattern"`
	Year     int    `json:"year,omitempty"`
	ExamName string `json:"exam_name"`
}

// SessionReport is the post-exam report. Only Status and SessionID are
// set when the session has no attempts. A found session always carries a
// history list, empty when the context is ambiguous.
type SessionReport struct {
	Status    string `json:"status"`
	SessionID string `json:"session_id"`
	*session.Stats
	Context   *history.Context `json:"context,omitempty"`
	Cutoff    *cutoff.Analysis `json:"cutoff_analysis,omitempty"`
	History   []history.Entry  `json:"history"`
	Growth    *growth.Report   `json:"growth_report,omitempty"`
	Questions []QuestionRef    `json:"questions,omitempty"`
}

// Found reports whether the session had any attempts.
func (r *SessionReport) Found() bool { return r.Status == StatusOK }

// Engine builds reports from a Source.
type Engine struct {
	src        Source
	selector   *history.Selector
	comparator *cutoff.Comparator
	loc        *time.Location
	logger     *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLocation sets the time zone used for calendar days and date labels.
func WithLocation(loc *time.Location) Option {
	return func(e *Engine) {
		if loc != nil {
			e.loc = loc
		}
	}
}

// WithLogger sets the engine's logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// New creates an Engine reading from src.
func New(src Source, opts ...Option) *Engine {
	e := &Engine{src: src, loc: time.UTC, logger: slog.Default()}
	for _, o := range opts {
		o(e)
	}
	e.selector = history.NewSelector(src, e.loc)
	e.comparator = cutoff.NewComparator(src)
	return e
}

// Dashboard builds the behaviour dashboard for userID. A user without
// attempts gets the new-user report.
func (e *Engine) Dashboard(ctx context.Context, userID string) (*dashboard.Report, error) {
	records, err := e.src.UserAttempts(ctx, userID, 0)
	if err != nil {
		return nil, fmt.Errorf("load attempts for %s: %w", userID, err)
	}
	r := dashboard.Build(records, dashboard.Options{Location: e.loc})
	e.logger.Debug("dashboard built", "user", userID, "attempts", len(records), "coach_rule", r.CoachRule)
	return r, nil
}

// Trend returns the per-day logic and precision trend for userID.
func (e *Engine) Trend(ctx context.Context, userID string) (dashboard.Trend, error) {
	records, err := e.src.UserAttempts(ctx, userID, 0)
	if err != nil {
		return dashboard.Trend{}, fmt.Errorf("load attempts for %s: %w", userID, err)
	}
	return dashboard.BuildTrend(records, e.loc, dashboard.TrendDays), nil
}

// Session builds the full report for one session. A session without
// attempts yields a not-found report, not an error.
func (e *Engine) Session(ctx context.Context, userID, sessionID string, o history.Override) (*SessionReport, error) {
	records, err := e.src.SessionAttempts(ctx, userID, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", sessionID, err)
	}
	if len(records) == 0 {
		return &SessionReport{Status: StatusNotFound, SessionID: sessionID}, nil
	}

	stats := session.Aggregate(records)
	detected := history.DetectContext(records)
	hctx := detected.Apply(o)

	analysis, err := e.comparator.Analyze(ctx, cutoff.Input{
		ExamName: hctx.ExamName,
		Year:     hctx.Year,
		YearPure: hctx.YearPure(sessionID),
		Score:    stats.ScoreCard.ActualScore,
	})
	if err != nil {
		return nil, err
	}

	entries, err := e.selector.Select(ctx, history.Query{UserID: userID, SessionID: sessionID, Context: hctx})
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []history.Entry{}
	}

	g := growth.NoHistory()
	if len(entries) > 0 {
		baseline := entries[0].SessionID
		prev, err := e.src.SessionAttempts(ctx, userID, baseline)
		if err != nil {
			return nil, fmt.Errorf("load baseline session %s: %w", baseline, err)
		}
		g = growth.Compare(baseline, stats.Outcomes, session.Aggregate(prev).Outcomes)
	}

	e.logger.Debug("session report built",
		"user", userID,
		"session", sessionID,
		"questions", stats.TotalQuestions,
		"context", hctx.TagPrefix(),
		"history", len(entries),
	)

	return &SessionReport{
		Status:    StatusOK,
		SessionID: sessionID,
		Stats:     stats,
		Context:   &hctx,
		Cutoff:    &analysis,
		History:   entries,
		Growth:    &g,
		Questions: questionRefs(records),
	}, nil
}

func questionRefs(records []attempt.Record) []QuestionRef {
	seen := make(map[int64]bool)
	refs := make([]QuestionRef, 0)
	for i := range records {
		r := &records[i]
		if seen[r.QuestionID] {
			continue
		}
		seen[r.QuestionID] = true
		refs = append(refs, QuestionRef{
			ID:       r.QuestionID,
			Text:     r.Question.Text,
			Subject:  r.Question.Subject,
			Pattern:  string(r.Question.Pattern),
			Year:     r.Question.Year,
			ExamName: r.Question.ExamName,
		})
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i].ID < refs[j].ID })
	return refs
}
