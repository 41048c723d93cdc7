// Package session folds the attempts of one exam session into resolved
// per-question outcomes and derives the session report from them.
package session

import (
	"sort"

	"github.com/abhisek/examlens/internal/attempt"
)

// Resolve groups records by question. The attempt with the latest
// AttemptedAt decides the outcome; equal timestamps go to the higher record
// id, and records equal on both are ordered by content (see tieRank). Time accumulates across every attempt of the question. The result is
// ordered by question id and does not depend on input order.
func Resolve(records []attempt.Record) []Resolved {
	byQuestion := make(map[int64]*Resolved)
	for _, rec := range records {
		r, ok := byQuestion[rec.QuestionID]
		if !ok {
			byQuestion[rec.QuestionID] = &Resolved{Latest: rec, TotalTime: rec.TimeTakenSecs, Attempts: 1}
			continue
		}
		r.TotalTime += rec.TimeTakenSecs
		r.Attempts++
		if supersedes(rec, r.Latest) {
			r.Latest = rec
		}
	}

	out := make([]Resolved, 0, len(byQuestion))
	for _, r := range byQuestion {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Latest.QuestionID < out[j].Latest.QuestionID
	})
	return out
}

func supersedes(candidate, current attempt.Record) bool {
	if !candidate.AttemptedAt.Equal(current.AttemptedAt) {
		return candidate.AttemptedAt.After(current.AttemptedAt)
	}
	if candidate.ID != current.ID {
		return candidate.ID > current.ID
	}
	return compareRank(tieRank(candidate), tieRank(current)) > 0
}

// tieRank orders records that share timestamp and id: answered beats
// skipped, correct beats wrong, then selected option, time and confidence.
func tieRank(r attempt.Record) [5]int64 {
	var answered, correct, option int64
	if !r.Skipped {
		answered = 1
	}
	if r.Correct {
		correct = 1
	}
	if r.SelectedOptionID != nil {
		option = *r.SelectedOptionID
	}
	return [5]int64{answered, correct, option, int64(r.TimeTakenSecs), int64(r.Confidence)}
}

func compareRank(a, b [5]int64) int {
	for i := range a {
		switch {
		case a[i] > b[i]:
			return 1
		case a[i] < b[i]:
			return -1
		}
	}
	return 0
}
