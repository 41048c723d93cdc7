package history

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/abhisek/examlens/internal/attempt"
	"github.com/abhisek/examlens/internal/session"
)

// MaxEntries caps the number of prior sessions returned.
const MaxEntries = 5

// DateLayout formats entry dates for display.
const DateLayout = "02 Jan, 15:04"

// Meta is the latest attempt time of one session.
type Meta struct {
	SessionID string
	LatestAt  time.Time
}

// Source is the read side the selector needs from the attempt store.
type Source interface {
	// ExamSessionIDs lists distinct session ids of the user's exam-mode
	// attempts on questions of examName.
	ExamSessionIDs(ctx context.Context, userID, examName string) ([]string, error)
	SessionMeta(ctx context.Context, userID string, sessionIDs []string) ([]Meta, error)
	SessionAttempts(ctx context.Context, userID, sessionID string) ([]attempt.Record, error)
}

// Entry is one prior session in the history list.
type Entry struct {
	session.Summary
	DateLabel string `json:"date_label"`
}

// Query selects history for the session SessionID of UserID.
type Query struct {
	UserID    string
	SessionID string
	Context   Context
}

// Selector picks comparable prior sessions.
type Selector struct {
	src Source
	loc *time.Location
}

// NewSelector creates a Selector. Dates are labelled in loc, or UTC when
// loc is nil.
func NewSelector(src Source, loc *time.Location) *Selector {
	if loc == nil {
		loc = time.UTC
	}
	return &Selector{src: src, loc: loc}
}

// Select returns up to MaxEntries prior sessions sharing q's context tag,
// newest first. An ambiguous context yields an empty list rather than
// untagged global history.
func (s *Selector) Select(ctx context.Context, q Query) ([]Entry, error) {
	entries := []Entry{}
	prefix := q.Context.TagPrefix()
	if prefix == "" {
		return entries, nil
	}

	ids, err := s.src.ExamSessionIDs(ctx, q.UserID, q.Context.ExamName)
	if err != nil {
		return nil, fmt.Errorf("list exam sessions: %w", err)
	}
	candidates := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == q.SessionID || !strings.HasPrefix(id, prefix) {
			continue
		}
		candidates = append(candidates, id)
	}
	if len(candidates) == 0 {
		return entries, nil
	}

	metas, err := s.src.SessionMeta(ctx, q.UserID, candidates)
	if err != nil {
		return nil, fmt.Errorf("load session meta: %w", err)
	}
	sort.Slice(metas, func(i, j int) bool {
		if !metas[i].LatestAt.Equal(metas[j].LatestAt) {
			return metas[i].LatestAt.After(metas[j].LatestAt)
		}
		return metas[i].SessionID > metas[j].SessionID
	})
	if len(metas) > MaxEntries {
		metas = metas[:MaxEntries]
	}

	for _, m := range metas {
		records, err := s.src.SessionAttempts(ctx, q.UserID, m.SessionID)
		if err != nil {
			return nil, fmt.Errorf("load session %s: %w", m.SessionID, err)
		}
		sum := session.Summarize(m.SessionID, records)
		entries = append(entries, Entry{
			Summary:   sum,
			DateLabel: sum.Date.In(s.loc).Format(DateLayout),
		})
	}
	return entries, nil
}
