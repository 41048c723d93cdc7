package store

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/examlens/internal/attempt"
	"github.com/abhisek/examlens/internal/cutoff"
	"github.com/abhisek/examlens/internal/taxonomy"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := Open("file:" + name + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil db")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so we skip journal_mode here.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, migrate(context.Background(), s.DB()))
}

func TestDefaultDBPath_EnvOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("EXAMLENS_DB", dir+"/sub/x.db")
	p, err := DefaultDBPath()
	require.NoError(t, err)
	assert.Equal(t, dir+"/sub/x.db", p)
	assert.DirExists(t, dir+"/sub")
}

func TestDefaultDBPath_XDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("EXAMLENS_DB", "")
	t.Setenv("XDG_DATA_HOME", dir)
	p, err := DefaultDBPath()
	require.NoError(t, err)
	assert.Equal(t, dir+"/examlens/examlens.db", p)
}

func seedQuestion(t *testing.T, s *Store, id int64, subject string, year int) {
	t.Helper()
	_, err := s.SaveQuestion(context.Background(), id, attempt.Question{
		Text:    "Question " + subject,
		Subject: subject,
		Pattern: taxonomy.PatternElimClassical,
		Year:    year,
	})
	require.NoError(t, err)
}

func TestSaveQuestion(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	id, err := s.SaveQuestion(ctx, 0, attempt.Question{Text: "auto"})
	require.NoError(t, err)
	assert.Positive(t, id)

	q, err := s.Question(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, attempt.DefaultExamName, q.ExamName)
	assert.Equal(t, taxonomy.DefaultPattern, q.Pattern)
	assert.Zero(t, q.Year)

	_, err = s.SaveQuestion(ctx, 42, attempt.Question{Text: "v1", Year: 2020})
	require.NoError(t, err)
	_, err = s.SaveQuestion(ctx, 42, attempt.Question{Text: "v2", Year: 2021, Subject: "Economy"})
	require.NoError(t, err)
	q, err = s.Question(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, "v2", q.Text)
	assert.Equal(t, 2021, q.Year)

	_, err = s.Question(ctx, 999)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestAppendAttempt_RequiresQuestion(t *testing.T) {
	s := openTestStore(t)
	_, err := s.AppendAttempt(context.Background(), attempt.Record{UserID: "u", QuestionID: 7})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAttemptRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	seedQuestion(t, s, 1, "Polity", 2023)

	opt := int64(3)
	at := time.Date(2024, 1, 2, 3, 4, 5, 600, time.UTC)
	id, err := s.AppendAttempt(ctx, attempt.Record{
		UserID:            "u",
		QuestionID:        1,
		SelectedOptionID:  &opt,
		Correct:           true,
		TimeTakenSecs:     33,
		Confidence:        75,
		EliminatedOptions: []int64{1, 2},
		SourceMode:        attempt.ModeExam,
		SessionID:         "year_2023_a",
		AttemptedAt:       at,
	})
	require.NoError(t, err)

	got, err := s.SessionAttempts(ctx, "u", "year_2023_a")
	require.NoError(t, err)
	require.Len(t, got, 1)
	r := got[0]
	assert.Equal(t, id, r.ID)
	assert.True(t, r.Correct)
	assert.Equal(t, 33, r.TimeTakenSecs)
	assert.Equal(t, 75, r.Confidence)
	require.NotNil(t, r.SelectedOptionID)
	assert.Equal(t, int64(3), *r.SelectedOptionID)
	assert.Equal(t, []int64{1, 2}, r.EliminatedOptions)
	assert.Equal(t, attempt.ModeExam, r.SourceMode)
	assert.True(t, at.Equal(r.AttemptedAt))
	assert.Equal(t, "Polity", r.Question.Subject)
	assert.Equal(t, 2023, r.Question.Year)
	assert.Equal(t, taxonomy.PatternElimClassical, r.Question.Pattern)

	none, err := s.SessionAttempts(ctx, "u", "")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestUserAttempts_NewestFirstWithLimit(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	seedQuestion(t, s, 1, "Polity", 2023)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		_, err := s.AppendAttempt(ctx, attempt.Record{
			UserID: "u", QuestionID: 1, TimeTakenSecs: i + 1,
			AttemptedAt: base.Add(time.Duration(i) * time.Hour),
		})
		require.NoError(t, err)
	}
	// Same timestamp as the newest: higher id sorts first.
	_, err := s.AppendAttempt(ctx, attempt.Record{UserID: "u", QuestionID: 1, TimeTakenSecs: 99, AttemptedAt: base.Add(4 * time.Hour)})
	require.NoError(t, err)
	_, err = s.AppendAttempt(ctx, attempt.Record{UserID: "other", QuestionID: 1})
	require.NoError(t, err)

	all, err := s.UserAttempts(ctx, "u", 0)
	require.NoError(t, err)
	require.Len(t, all, 6)
	assert.Equal(t, 99, all[0].TimeTakenSecs)
	assert.Equal(t, 5, all[1].TimeTakenSecs)
	assert.Equal(t, 1, all[5].TimeTakenSecs)

	capped, err := s.UserAttempts(ctx, "u", 2)
	require.NoError(t, err)
	assert.Len(t, capped, 2)
}

func TestExamSessionIDsAndMeta(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	seedQuestion(t, s, 1, "Polity", 2023)
	_, err := s.SaveQuestion(ctx, 2, attempt.Question{ExamName: "CAPF"})
	require.NoError(t, err)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	add := func(q int64, mode attempt.SourceMode, sid string, offset time.Duration) {
		_, err := s.AppendAttempt(ctx, attempt.Record{
			UserID: "u", QuestionID: q, SourceMode: mode, SessionID: sid, AttemptedAt: base.Add(offset),
		})
		require.NoError(t, err)
	}
	add(1, attempt.ModeExam, "year_2023_b", time.Hour)
	add(1, attempt.ModeExam, "year_2023_b", 3*time.Hour)
	add(1, attempt.ModeExam, "year_2023_a", 2*time.Hour)
	add(1, attempt.ModePractice, "practice_run", 0)
	add(1, attempt.ModeExam, "", 0)
	add(2, attempt.ModeExam, "capf_run", 0)

	ids, err := s.ExamSessionIDs(ctx, "u", attempt.DefaultExamName)
	require.NoError(t, err)
	assert.Equal(t, []string{"year_2023_a", "year_2023_b"}, ids)

	metas, err := s.SessionMeta(ctx, "u", []string{"year_2023_a", "year_2023_b", "ghost"})
	require.NoError(t, err)
	require.Len(t, metas, 2)
	latest := map[string]time.Time{}
	for _, m := range metas {
		latest[m.SessionID] = m.LatestAt
	}
	assert.True(t, latest["year_2023_b"].Equal(base.Add(3*time.Hour)))
	assert.True(t, latest["year_2023_a"].Equal(base.Add(2*time.Hour)))

	empty, err := s.SessionMeta(ctx, "u", nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestLibraryAndClear(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	seedQuestion(t, s, 1, "Polity", 2023)
	seedQuestion(t, s, 2, "Economy", 2023)
	seedQuestion(t, s, 3, "Economy", 2023)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	add := func(q int64, bookmarked bool, offset time.Duration) {
		_, err := s.AppendAttempt(ctx, attempt.Record{UserID: "u", QuestionID: q, Bookmarked: bookmarked, AttemptedAt: base.Add(offset)})
		require.NoError(t, err)
	}
	add(1, true, time.Hour)
	add(1, true, 2*time.Hour)
	add(2, true, 3*time.Hour)
	add(3, false, 4*time.Hour)

	lib, err := s.Library(ctx, "u", "")
	require.NoError(t, err)
	require.Len(t, lib, 2)
	assert.Equal(t, int64(2), lib[0].QuestionID)
	assert.Equal(t, int64(1), lib[1].QuestionID)
	assert.True(t, lib[1].AttemptedAt.Equal(base.Add(2*time.Hour)), "latest bookmarked attempt per question")

	econ, err := s.Library(ctx, "u", "Economy")
	require.NoError(t, err)
	require.Len(t, econ, 1)

	n, err := s.ClearFromLibrary(ctx, "u", 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	lib, err = s.Library(ctx, "u", "")
	require.NoError(t, err)
	require.Len(t, lib, 1)
	assert.Equal(t, int64(2), lib[0].QuestionID)

	// Cleared attempts keep their bookmark for reports.
	hist, err := s.UserAttempts(ctx, "u", 0)
	require.NoError(t, err)
	for _, r := range hist {
		if r.QuestionID == 1 {
			assert.True(t, r.Bookmarked)
			assert.True(t, r.ClearedFromLibrary)
		}
	}

	// Bookmarking again brings the question back.
	add(1, true, 5*time.Hour)
	lib, err = s.Library(ctx, "u", "")
	require.NoError(t, err)
	assert.Len(t, lib, 2)
}

func TestAppendAttempt_BookmarkResetsClearedFlag(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	seedQuestion(t, s, 1, "Polity", 2023)
	seedQuestion(t, s, 2, "Polity", 2023)

	_, err := s.AppendAttempt(ctx, attempt.Record{UserID: "u", QuestionID: 1, Bookmarked: true, ClearedFromLibrary: true})
	require.NoError(t, err)
	_, err = s.AppendAttempt(ctx, attempt.Record{UserID: "u", QuestionID: 2, ClearedFromLibrary: true})
	require.NoError(t, err)

	recs, err := s.UserAttempts(ctx, "u", 0)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	for _, r := range recs {
		switch r.QuestionID {
		case 1:
			assert.False(t, r.ClearedFromLibrary, "bookmarking puts the question back in the library")
		case 2:
			assert.True(t, r.ClearedFromLibrary, "unbookmarked attempts keep the flag as given")
		}
	}

	lib, err := s.Library(ctx, "u", "")
	require.NoError(t, err)
	require.Len(t, lib, 1)
	assert.Equal(t, int64(1), lib[0].QuestionID)
}

func TestCutoffUpsert(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	rec, err := s.Cutoff(ctx, "UPSC CSE", 2023)
	require.NoError(t, err)
	assert.Nil(t, rec)

	require.NoError(t, s.SaveCutoff(ctx, cutoff.Record{ExamName: "UPSC CSE", Year: 2023, General: 70, Official: false}))
	require.NoError(t, s.SaveCutoff(ctx, cutoff.Record{ExamName: "UPSC CSE", Year: 2023, General: 75.41, EWS: 68.02, Official: true}))

	rec, err = s.Cutoff(ctx, "UPSC CSE", 2023)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, 75.41, rec.General)
	assert.Equal(t, 68.02, rec.EWS)
	assert.True(t, rec.Official)
}

func TestLLMEvents(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	repo := s.EventRepo()

	for i := 0; i < 3; i++ {
		data := LLMRequestEventData{
			Provider:    "mock",
			Model:       "mock-model",
			Purpose:     "study-plan",
			InputTokens: 10 * (i + 1),
			Success:     true,
			RequestBody: "[user]\nhi",
		}
		if i == 1 {
			data.Success = false
			data.ErrorMessage = "rate limited"
		}
		require.NoError(t, repo.AppendLLMRequest(ctx, data))
	}

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Greater(t, events[0].Sequence, events[1].Sequence)
	assert.Equal(t, 30, events[0].InputTokens)
	assert.False(t, events[1].Success)
	assert.Equal(t, "rate limited", events[1].ErrorMessage)

	limited, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 1, Before: events[0].Sequence})
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, events[1].Sequence, limited[0].Sequence)

	byID, err := repo.QueryLLMEvents(ctx, QueryOpts{ID: events[2].ID})
	require.NoError(t, err)
	require.Len(t, byID, 1)
	assert.Equal(t, "[user]\nhi", byID[0].RequestBody)

	other, err := repo.QueryLLMEvents(ctx, QueryOpts{Purpose: "weekly-review"})
	require.NoError(t, err)
	assert.Empty(t, other)
}
