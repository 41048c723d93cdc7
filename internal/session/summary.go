package session

import (
	"github.com/abhisek/examlens/internal/attempt"
	"github.com/abhisek/examlens/internal/metric"
)

// Summarize is the cheap aggregate for history rows. It counts raw rows
// without multi-attempt resolution, quadrants or heatmap.
func Summarize(sessionID string, records []attempt.Record) Summary {
	s := Summary{SessionID: sessionID, Total: len(records)}
	for i := range records {
		rec := &records[i]
		if rec.Correct {
			s.Correct++
		} else if !rec.Skipped {
			s.Wrong++
		}
		if rec.AttemptedAt.After(s.Date) {
			s.Date = rec.AttemptedAt
		}
	}
	s.Score = metric.Round(NetMarks(s.Correct, s.Wrong), 2)
	s.Accuracy = metric.Round(metric.Percent(s.Correct, s.Total), 1)
	return s
}
