// Package attempt defines the validated answer-attempt record and the single
// normalization step that turns loosely typed input into it.
package attempt

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/abhisek/examlens/internal/taxonomy"
)

var (
	ErrMissingUser     = errors.New("attempt has no user_id")
	ErrMissingQuestion = errors.New("attempt has no question_id")
)

// Normalize validates raw and fills defaults for malformed fields. Only a
// missing user or question id is fatal for the record; every other bad
// field degrades to its default.
func Normalize(raw Raw) (Record, error) {
	userID := toString(raw.UserID)
	if userID == "" {
		return Record{}, ErrMissingUser
	}
	qid, ok := toInt64(raw.QuestionID)
	if !ok || qid <= 0 {
		return Record{}, ErrMissingQuestion
	}

	rec := Record{
		UserID:            userID,
		QuestionID:        qid,
		Correct:           toBool(raw.IsCorrect),
		Skipped:           toBool(raw.IsSkipped),
		Bookmarked:        toBool(raw.IsBookmarked),
		EliminatedOptions: toIDList(raw.EliminatedOptions),
		SourceMode:        normalizeMode(raw.SourceMode),
		SessionID:         toString(raw.SessionID),
		AttemptedAt:       toTime(raw.AttemptedAt),
		Confidence:        DefaultConfidence,
	}

	if id, ok := toInt64(raw.ID); ok {
		rec.ID = id
	}
	if opt, ok := toInt64(raw.SelectedOptionID); ok && opt > 0 {
		rec.SelectedOptionID = &opt
	}
	if secs, ok := toInt64(raw.TimeTakenSeconds); ok && secs > 0 {
		rec.TimeTakenSecs = int(secs)
	}
	if conf, ok := toInt64(raw.ConfidenceScore); ok {
		rec.Confidence = clamp(int(conf), 0, 100)
	}

	// A skipped question cannot be correct.
	if rec.Skipped {
		rec.Correct = false
	}
	rec.ClearedFromLibrary = toBool(raw.IsClearedFromLibrary)

	rec.Question = normalizeQuestion(raw.Question)
	return rec, nil
}

// NormalizeAll normalizes every raw attempt, dropping the ones that cannot
// contribute and reporting why.
func NormalizeAll(raws []Raw) ([]Record, []error) {
	out := make([]Record, 0, len(raws))
	var errs []error
	for i, raw := range raws {
		rec, err := Normalize(raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("attempt %d: %w", i, err))
			continue
		}
		out = append(out, rec)
	}
	return out, errs
}

func normalizeQuestion(q *RawQuestion) Question {
	if q == nil {
		return Question{ExamName: DefaultExamName, Pattern: taxonomy.DefaultPattern}
	}
	out := Question{
		Text:     toString(q.Text),
		Subject:  toString(q.Subject),
		Pattern:  taxonomy.ParsePattern(toString(q.Pattern)),
		ExamName: toString(q.ExamName),
		Tags:     toString(q.Tags),
	}
	if y, ok := toInt64(q.Year); ok && y > 0 {
		out.Year = int(y)
	}
	if out.ExamName == "" {
		out.ExamName = DefaultExamName
	}
	return out
}

func normalizeMode(v any) SourceMode {
	if SourceMode(strings.ToLower(toString(v))) == ModeExam {
		return ModeExam
	}
	return ModePractice
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// SortNewestFirst orders records by attempt time descending, breaking ties
// by record id descending.
func SortNewestFirst(records []Record) {
	sort.SliceStable(records, func(i, j int) bool {
		if !records[i].AttemptedAt.Equal(records[j].AttemptedAt) {
			return records[i].AttemptedAt.After(records[j].AttemptedAt)
		}
		return records[i].ID > records[j].ID
	})
}

// Window returns at most the first n records. Callers pass newest-first
// history to get the recent window.
func Window(records []Record, n int) []Record {
	if n < 0 || len(records) <= n {
		return records
	}
	return records[:n]
}
