package report

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/examlens/internal/attempt"
	"github.com/abhisek/examlens/internal/cutoff"
	"github.com/abhisek/examlens/internal/history"
)

type memSource struct {
	records []attempt.Record
	cutoffs []cutoff.Record
	err     error
}

func (m *memSource) UserAttempts(_ context.Context, userID string, limit int) ([]attempt.Record, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []attempt.Record
	for _, r := range m.records {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	attempt.SortNewestFirst(out)
	if limit > 0 {
		out = attempt.Window(out, limit)
	}
	return out, nil
}

func (m *memSource) SessionAttempts(_ context.Context, userID, sessionID string) ([]attempt.Record, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []attempt.Record
	for _, r := range m.records {
		if r.UserID == userID && r.SessionID == sessionID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memSource) ExamSessionIDs(_ context.Context, userID, examName string) ([]string, error) {
	seen := map[string]bool{}
	var out []string
	for _, r := range m.records {
		if r.UserID != userID || r.SessionID == "" || r.SourceMode != attempt.ModeExam || r.Question.ExamName != examName {
			continue
		}
		if !seen[r.SessionID] {
			seen[r.SessionID] = true
			out = append(out, r.SessionID)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (m *memSource) SessionMeta(_ context.Context, userID string, ids []string) ([]history.Meta, error) {
	latest := map[string]time.Time{}
	for _, r := range m.records {
		if r.UserID != userID {
			continue
		}
		if r.AttemptedAt.After(latest[r.SessionID]) {
			latest[r.SessionID] = r.AttemptedAt
		}
	}
	out := make([]history.Meta, 0, len(ids))
	for _, id := range ids {
		if ts, ok := latest[id]; ok {
			out = append(out, history.Meta{SessionID: id, LatestAt: ts})
		}
	}
	return out, nil
}

func (m *memSource) Cutoff(_ context.Context, exam string, year int) (*cutoff.Record, error) {
	for i := range m.cutoffs {
		if m.cutoffs[i].ExamName == exam && m.cutoffs[i].Year == year {
			return &m.cutoffs[i], nil
		}
	}
	return nil, nil
}

var t0 = time.Date(2024, 4, 1, 8, 0, 0, 0, time.UTC)

// sessionRecords builds one exam session of 2023 Polity questions, with
// outcome[i] true for a correct answer to question i+1.
func sessionRecords(sessionID string, start time.Time, firstID int64, outcome ...bool) []attempt.Record {
	out := make([]attempt.Record, 0, len(outcome))
	for i, correct := range outcome {
		out = append(out, attempt.Record{
			ID:            firstID + int64(i),
			UserID:        "asha",
			QuestionID:    int64(i + 1),
			Correct:       correct,
			TimeTakenSecs: 45,
			Confidence:    60,
			SourceMode:    attempt.ModeExam,
			SessionID:     sessionID,
			AttemptedAt:   start.Add(time.Duration(i) * time.Minute),
			Question: attempt.Question{
				Text:     "Q",
				Subject:  "Polity",
				Year:     2023,
				ExamName: "UPSC CSE",
			},
		})
	}
	return out
}

func fixture() *memSource {
	src := &memSource{
		cutoffs: []cutoff.Record{{ExamName: "UPSC CSE", Year: 2023, General: 3, Official: true}},
	}
	src.records = append(src.records, sessionRecords("year_2023_old", t0, 100, false, true, false)...)
	src.records = append(src.records, sessionRecords("year_2023_prev", t0.Add(24*time.Hour), 200, false, true, true)...)
	src.records = append(src.records, sessionRecords("year_2023_now", t0.Add(48*time.Hour), 300, true, false, true, true)...)
	// Same user, other context: never part of history.
	src.records = append(src.records, sessionRecords("subj_Economy_x", t0.Add(72*time.Hour), 400, true)...)
	return src
}

func TestSession_NotFound(t *testing.T) {
	e := New(fixture())
	r, err := e.Session(context.Background(), "asha", "missing", history.Override{})
	require.NoError(t, err)
	assert.False(t, r.Found())
	assert.Equal(t, StatusNotFound, r.Status)
	assert.Nil(t, r.Stats)

	b, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"not_found","session_id":"missing"}`, string(b))
}

func TestSession_FullReport(t *testing.T) {
	e := New(fixture())
	r, err := e.Session(context.Background(), "asha", "year_2023_now", history.Override{})
	require.NoError(t, err)
	require.True(t, r.Found())

	assert.Equal(t, 3, r.ScoreCard.Correct)
	assert.Equal(t, 1, r.ScoreCard.Wrong)
	assert.InDelta(t, 5.34, r.ScoreCard.ActualScore, 1e-9)

	require.NotNil(t, r.Context)
	assert.Equal(t, 2023, r.Context.Year)

	require.NotNil(t, r.Cutoff)
	assert.Equal(t, cutoff.StatusCleared, r.Cutoff.Status)
	assert.InDelta(t, 2.34, r.Cutoff.Gap, 1e-9)

	require.Len(t, r.History, 2)
	assert.Equal(t, "year_2023_prev", r.History[0].SessionID)
	assert.Equal(t, "year_2023_old", r.History[1].SessionID)

	// Baseline is year_2023_prev: q1 wrong->correct, q2 correct->wrong,
	// q3 correct->correct. q4 only exists now.
	require.NotNil(t, r.Growth)
	assert.True(t, r.Growth.HasHistory)
	assert.Equal(t, "year_2023_prev", r.Growth.Baseline)
	assert.Equal(t, 1, r.Growth.RetentionFix)
	assert.Equal(t, 1, r.Growth.FalsePositive)
	assert.Equal(t, 1, r.Growth.StableCorrect)
	assert.Equal(t, 0, r.Growth.PersistentError)

	assert.Len(t, r.Questions, 4)
}

func TestSession_UntaggedSessionIsNotYearPure(t *testing.T) {
	src := fixture()
	src.records = append(src.records, sessionRecords("adhoc", t0.Add(96*time.Hour), 500, true, true)...)

	r, err := New(src).Session(context.Background(), "asha", "adhoc", history.Override{})
	require.NoError(t, err)
	assert.Equal(t, cutoff.StatusNA, r.Cutoff.Status)
	// The year context still selects year-tagged history.
	assert.Len(t, r.History, 3)
}

func TestSession_AmbiguousContextHasNoHistory(t *testing.T) {
	src := fixture()
	mixed := sessionRecords("mixed_run", t0.Add(96*time.Hour), 600, true, false)
	mixed[1].Question.Year = 2019
	mixed[1].Question.Subject = "Economy"
	src.records = append(src.records, mixed...)

	e := New(src)
	r, err := e.Session(context.Background(), "asha", "mixed_run", history.Override{})
	require.NoError(t, err)
	assert.Empty(t, r.History)
	assert.False(t, r.Growth.HasHistory)
	assert.Nil(t, r.Growth.Counts)

	body, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"history":[]`)

	r, err = e.Session(context.Background(), "asha", "mixed_run", history.Override{Year: 2023})
	require.NoError(t, err)
	assert.Len(t, r.History, 3)
	assert.Equal(t, cutoff.StatusNA, r.Cutoff.Status, "an override never makes a session year-pure")
}

func TestSession_SourceErrorIsReturned(t *testing.T) {
	boom := errors.New("db closed")
	_, err := New(&memSource{err: boom}).Session(context.Background(), "asha", "x", history.Override{})
	assert.ErrorIs(t, err, boom)
}

func TestDashboard(t *testing.T) {
	e := New(fixture())

	r, err := e.Dashboard(context.Background(), "asha")
	require.NoError(t, err)
	assert.False(t, r.NewUser)
	assert.Equal(t, 11, r.Attempts)
	assert.Equal(t, 4, r.Streak)

	nu, err := e.Dashboard(context.Background(), "nobody")
	require.NoError(t, err)
	assert.True(t, nu.NewUser)
	assert.True(t, strings.HasPrefix(nu.Coach.Title, "Welcome"))
}

func TestTrend(t *testing.T) {
	tr, err := New(fixture()).Trend(context.Background(), "asha")
	require.NoError(t, err)
	assert.Len(t, tr.Dates, 4)
}
