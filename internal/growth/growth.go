// Package growth compares the per-question outcomes of two sessions.
package growth

import "github.com/abhisek/examlens/internal/session"

// Counts tallies how each shared question moved between sessions.
type Counts struct {
	RetentionFix    int `json:"retention_fix"`    // wrong -> correct
	FalsePositive   int `json:"false_positive"`   // correct -> wrong
	StableCorrect   int `json:"stable_correct"`   // correct -> correct
	PersistentError int `json:"persistent_error"` // wrong -> wrong
}

// Total is the number of questions present in both sessions.
func (c *Counts) Total() int {
	return c.RetentionFix + c.FalsePositive + c.StableCorrect + c.PersistentError
}

// Report is the growth section of a session report. Counts is nil when
// there is no prior session to compare with.
type Report struct {
	HasHistory bool   `json:"has_history"`
	Baseline   string `json:"baseline_session,omitempty"`
	*Counts
}

// NoHistory is the report for a session without a comparable predecessor.
func NoHistory() Report {
	return Report{}
}

// Compare classifies every question present in both outcome lists.
// Skipped questions count as not correct.
func Compare(baseline string, current, previous []session.Outcome) Report {
	prev := make(map[int64]bool, len(previous))
	for _, o := range previous {
		prev[o.QuestionID] = o.IsCorrect
	}

	var c Counts
	for _, o := range current {
		before, ok := prev[o.QuestionID]
		if !ok {
			continue
		}
		switch {
		case !before && o.IsCorrect:
			c.RetentionFix++
		case before && !o.IsCorrect:
			c.FalsePositive++
		case before:
			c.StableCorrect++
		default:
			c.PersistentError++
		}
	}
	return Report{HasHistory: true, Baseline: baseline, Counts: &c}
}
