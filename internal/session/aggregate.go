package session

import "github.com/abhisek/examlens/internal/attempt"

// Aggregate builds the full session statistics from the raw attempts of one
// session. An empty input yields zeroed statistics; callers decide whether
// that means "not found".
func Aggregate(records []attempt.Record) *Stats {
	resolved := Resolve(records)

	outcomes := make([]Outcome, 0, len(resolved))
	for i := range resolved {
		r := &resolved[i]
		outcomes = append(outcomes, Outcome{
			QuestionID:       r.Latest.QuestionID,
			TotalTime:        r.TotalTime,
			IsCorrect:        r.Latest.Correct,
			IsSkipped:        r.Latest.Skipped,
			SelectedOptionID: r.Latest.SelectedOptionID,
		})
	}

	return &Stats{
		ScoreCard:        buildScoreCard(resolved),
		Quadrants:        buildQuadrants(resolved),
		ConfidenceMatrix: buildConfidenceMatrix(resolved),
		Heatmap:          buildHeatmap(resolved),
		Outcomes:         outcomes,
		TotalQuestions:   len(resolved),
	}
}
