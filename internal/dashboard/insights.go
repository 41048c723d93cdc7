package dashboard

import (
	"github.com/abhisek/examlens/internal/attempt"
	"github.com/abhisek/examlens/internal/metric"
)

// Insight thresholds.
const (
	GuessConfidence     = 50 // below: the answer was a guess
	DangerousConfidence = 70 // above: a wrong answer is a dangerous error
)

// Insights are the all-time habit counters shown under the coach card.
type Insights struct {
	WastedTimeMins    float64 `json:"wasted_time_mins"`
	GuessAccuracy     float64 `json:"guess_accuracy"`
	DangerousErrors   int     `json:"dangerous_errors"`
	UnnecessaryDoubts int     `json:"unnecessary_doubts"`
}

// BuildInsights computes habit counters over the full history.
func BuildInsights(records []attempt.Record) Insights {
	var (
		ins            Insights
		skippedSecs    int
		guesses        int
		correctGuesses int
	)
	for i := range records {
		r := &records[i]
		if r.Skipped {
			skippedSecs += r.TimeTakenSecs
		} else if r.Confidence < GuessConfidence {
			guesses++
			if r.Correct {
				correctGuesses++
			}
		}
		if r.Wrong() && r.Confidence > DangerousConfidence {
			ins.DangerousErrors++
		}
		if r.Bookmarked && r.Correct {
			ins.UnnecessaryDoubts++
		}
	}
	ins.WastedTimeMins = metric.Round(float64(skippedSecs)/60, 1)
	ins.GuessAccuracy = metric.Round(metric.Percent(correctGuesses, guesses), 1)
	return ins
}
