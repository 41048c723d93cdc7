package dashboard

import (
	"github.com/abhisek/examlens/internal/attempt"
	"github.com/abhisek/examlens/internal/metric"
)

// Behaviour thresholds on the recent window.
const (
	HighConfidence  = 80  // above: a wrong answer is an overconfident error
	LowConfidence   = 40  // below: a correct answer was an unearned doubt
	RushSecs        = 15  // under: an answer was rushed
	OverthinkSecs   = 120 // mean time on wrong answers above this is overthinking
	MaxSkipRate     = 35.0
	MinSampleEvents = 5
)

// Signals are the facts the coach rules read. Counts come from the recent
// window; Radar comes from the full history.
type Signals struct {
	Recent         int
	HighConfWrong  int
	LowConfCorrect int
	Skipped        int
	SkipRate       float64

	Rushed       int
	RushAccuracy float64

	WrongAnswers   int
	AvgWrongTime   float64
	Eliminations   int
	SniperAccuracy float64

	Radar Radar
}

// ComputeSignals derives coach signals from the recent window and the
// long-run radar.
func ComputeSignals(recent []attempt.Record, radar Radar) *Signals {
	s := &Signals{Recent: len(recent), Radar: radar}

	var rushedCorrect, wrongTime, elimCorrect int
	for i := range recent {
		r := &recent[i]
		if r.Skipped {
			s.Skipped++
		}
		if r.Wrong() && r.Confidence > HighConfidence {
			s.HighConfWrong++
		}
		if r.Correct && r.Confidence < LowConfidence {
			s.LowConfCorrect++
		}
		if !r.Skipped && r.TimeTakenSecs < RushSecs {
			s.Rushed++
			if r.Correct {
				rushedCorrect++
			}
		}
		if r.Wrong() {
			s.WrongAnswers++
			wrongTime += r.TimeTakenSecs
		}
		if r.UsedElimination() {
			s.Eliminations++
			if r.Correct {
				elimCorrect++
			}
		}
	}

	s.SkipRate = metric.Percent(s.Skipped, s.Recent)
	s.RushAccuracy = 100
	if s.Rushed > 0 {
		s.RushAccuracy = metric.Percent(rushedCorrect, s.Rushed)
	}
	if s.WrongAnswers > 0 {
		s.AvgWrongTime = float64(wrongTime) / float64(s.WrongAnswers)
	}
	s.SniperAccuracy = metric.Percent(elimCorrect, s.Eliminations)
	return s
}
