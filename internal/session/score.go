package session

import "github.com/abhisek/examlens/internal/metric"

// Marking scheme.
const (
	MarksCorrect = 2.0
	MarksWrong   = 0.66
	// SillyPenalty is what a silly mistake cost: the lost +2 and the -0.66.
	SillyPenalty = 2.66
)

// Silly-mistake thresholds. A wrong answer is silly when it was rushed
// (total time below SillyTimeSecs) or given with confidence above
// SillyConfidence.
const (
	SillyTimeSecs   = 15
	SillyConfidence = 80
)

// NetMarks applies the marking scheme.
func NetMarks(correct, wrong int) float64 {
	return float64(correct)*MarksCorrect - float64(wrong)*MarksWrong
}

func isSilly(r *Resolved) bool {
	if !r.Latest.Wrong() {
		return false
	}
	return r.TotalTime < SillyTimeSecs || r.Latest.Confidence > SillyConfidence
}

func buildScoreCard(resolved []Resolved) ScoreCard {
	var sc ScoreCard
	for i := range resolved {
		r := &resolved[i]
		switch {
		case r.Latest.Correct:
			sc.Correct++
		case r.Latest.Skipped:
			sc.Skipped++
		default:
			sc.Wrong++
		}
		if isSilly(r) {
			sc.SillyMistakes++
		}
	}

	actual := NetMarks(sc.Correct, sc.Wrong)
	lost := float64(sc.SillyMistakes) * SillyPenalty

	sc.ActualScore = metric.Round(actual, 2)
	sc.LostMarks = metric.Round(lost, 2)
	sc.PotentialScore = metric.Round(actual+lost, 2)
	sc.Accuracy = metric.Round(metric.Percent(sc.Correct, len(resolved)), 1)
	return sc
}
