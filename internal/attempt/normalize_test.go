package attempt

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/examlens/internal/taxonomy"
)

func TestNormalize_Defaults(t *testing.T) {
	rec, err := Normalize(Raw{UserID: "u1", QuestionID: 7})
	require.NoError(t, err)

	assert.Equal(t, "u1", rec.UserID)
	assert.Equal(t, int64(7), rec.QuestionID)
	assert.Equal(t, DefaultConfidence, rec.Confidence)
	assert.Equal(t, 0, rec.TimeTakenSecs)
	assert.Equal(t, ModePractice, rec.SourceMode)
	assert.Nil(t, rec.SelectedOptionID)
	assert.Empty(t, rec.EliminatedOptions)
	assert.Equal(t, DefaultExamName, rec.Question.ExamName)
	assert.Equal(t, taxonomy.PatternOneLiner, rec.Question.Pattern)
}

func TestNormalize_StringCoercion(t *testing.T) {
	raw := Raw{
		UserID:            "u1",
		QuestionID:        "12",
		SelectedOptionID:  "40",
		IsCorrect:         "True",
		TimeTakenSeconds:  "33",
		ConfidenceScore:   "72.9",
		EliminatedOptions: "[1, 2]",
		SourceMode:        "EXAM",
		SessionID:         "year_2023_abc",
		AttemptedAt:       "2024-03-01T10:00:00Z",
		Question: &RawQuestion{
			Subject: "Polity",
			Pattern: "assertion_2",
			Year:    "2023",
		},
	}

	rec, err := Normalize(raw)
	require.NoError(t, err)

	assert.Equal(t, int64(12), rec.QuestionID)
	require.NotNil(t, rec.SelectedOptionID)
	assert.Equal(t, int64(40), *rec.SelectedOptionID)
	assert.True(t, rec.Correct)
	assert.Equal(t, 33, rec.TimeTakenSecs)
	assert.Equal(t, 72, rec.Confidence)
	assert.Equal(t, []int64{1, 2}, rec.EliminatedOptions)
	assert.Equal(t, ModeExam, rec.SourceMode)
	assert.Equal(t, "year_2023_abc", rec.SessionID)
	assert.Equal(t, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC), rec.AttemptedAt)
	assert.Equal(t, 2023, rec.Question.Year)
	assert.Equal(t, taxonomy.PatternAssertion2, rec.Question.Pattern)
}

func TestNormalize_MalformedFieldsDegrade(t *testing.T) {
	raw := Raw{
		UserID:            "u1",
		QuestionID:        json.Number("3"),
		ConfidenceScore:   "very sure",
		TimeTakenSeconds:  "-5",
		EliminatedOptions: "{not json",
		SourceMode:        "mock",
	}

	rec, err := Normalize(raw)
	require.NoError(t, err)

	assert.Equal(t, DefaultConfidence, rec.Confidence)
	assert.Equal(t, 0, rec.TimeTakenSecs)
	assert.Empty(t, rec.EliminatedOptions)
	assert.Equal(t, ModePractice, rec.SourceMode)
}

func TestNormalize_ConfidenceClamped(t *testing.T) {
	hi, err := Normalize(Raw{UserID: "u", QuestionID: 1, ConfidenceScore: 180})
	require.NoError(t, err)
	assert.Equal(t, 100, hi.Confidence)

	lo, err := Normalize(Raw{UserID: "u", QuestionID: 1, ConfidenceScore: -3})
	require.NoError(t, err)
	assert.Equal(t, 0, lo.Confidence)
}

func TestNormalize_SkippedIsNeverCorrect(t *testing.T) {
	rec, err := Normalize(Raw{UserID: "u", QuestionID: 1, IsCorrect: true, IsSkipped: "true"})
	require.NoError(t, err)
	assert.True(t, rec.Skipped)
	assert.False(t, rec.Correct)
	assert.False(t, rec.Wrong())
}

func TestNormalize_KeepsLibraryFlags(t *testing.T) {
	rec, err := Normalize(Raw{UserID: "u", QuestionID: 1, IsBookmarked: 1, IsClearedFromLibrary: "true"})
	require.NoError(t, err)
	assert.True(t, rec.Bookmarked)
	assert.True(t, rec.ClearedFromLibrary)
}

func TestNormalize_MissingIdentifiers(t *testing.T) {
	_, err := Normalize(Raw{QuestionID: 1})
	assert.ErrorIs(t, err, ErrMissingUser)

	_, err = Normalize(Raw{UserID: "u", QuestionID: "abc"})
	assert.ErrorIs(t, err, ErrMissingQuestion)
}

func TestNormalizeAll_DropsOnlyBadRecords(t *testing.T) {
	recs, errs := NormalizeAll([]Raw{
		{UserID: "u", QuestionID: 1},
		{UserID: "", QuestionID: 2},
		{UserID: "u", QuestionID: 3},
	})
	assert.Len(t, recs, 2)
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], ErrMissingUser)
}

func TestSortNewestFirst(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	recs := []Record{
		{ID: 1, AttemptedAt: base},
		{ID: 2, AttemptedAt: base.Add(time.Hour)},
		{ID: 3, AttemptedAt: base},
	}
	SortNewestFirst(recs)

	ids := []int64{recs[0].ID, recs[1].ID, recs[2].ID}
	assert.Equal(t, []int64{2, 3, 1}, ids)
}

func TestWindow(t *testing.T) {
	recs := make([]Record, 5)
	assert.Len(t, Window(recs, 3), 3)
	assert.Len(t, Window(recs, 10), 5)
}
