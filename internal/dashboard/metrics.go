package dashboard

import (
	"sort"
	"time"

	"github.com/abhisek/examlens/internal/attempt"
	"github.com/abhisek/examlens/internal/metric"
)

// Era gap labels.
const (
	EraBalanced = "Balanced"
	EraDinosaur = "Dinosaur"
	EraModern   = "Modern"
)

// NoSubject is reported when no attempted question carries a subject.
const NoSubject = "None"

// DeepMetrics are the behaviour metrics derived from the recent window,
// except the era gap which compares long-run radar axes.
type DeepMetrics struct {
	EraGap           string  `json:"era_gap"`
	SniperEfficiency float64 `json:"sniper_efficiency"`
	RushAccuracy     float64 `json:"rush_accuracy"`
}

// EraGap labels the precision/logic ratio. Modern papers lean on factual
// precision, older ones on elimination logic.
func EraGap(r Radar) string {
	if r.Logic == 0 {
		return EraBalanced
	}
	ratio := r.Precision / r.Logic
	switch {
	case ratio < 0.5:
		return EraDinosaur
	case ratio > 1.2:
		return EraModern
	}
	return EraBalanced
}

// Accuracy is the share of correct attempts as a percentage.
func Accuracy(records []attempt.Record) float64 {
	var correct int
	for i := range records {
		if records[i].Correct {
			correct++
		}
	}
	return metric.Percent(correct, len(records))
}

// Streak counts distinct calendar days in loc with at least one attempt.
func Streak(records []attempt.Record, loc *time.Location) int {
	days := make(map[string]struct{})
	for i := range records {
		days[records[i].AttemptedAt.In(loc).Format(time.DateOnly)] = struct{}{}
	}
	return len(days)
}

// WeakSubject returns the subject with the lowest accuracy over every
// attempt on it. Ties go to the alphabetically first subject. Attempts
// without a subject are ignored.
func WeakSubject(records []attempt.Record) string {
	tallies := make(map[string]*categoryTally)
	for i := range records {
		r := &records[i]
		if r.Question.Subject == "" {
			continue
		}
		t := tallies[r.Question.Subject]
		if t == nil {
			t = &categoryTally{}
			tallies[r.Question.Subject] = t
		}
		t.total++
		if r.Correct {
			t.correct++
		}
	}
	if len(tallies) == 0 {
		return NoSubject
	}

	subjects := make([]string, 0, len(tallies))
	for s := range tallies {
		subjects = append(subjects, s)
	}
	sort.Strings(subjects)

	weak := subjects[0]
	lowest := metric.Percent(tallies[weak].correct, tallies[weak].total)
	for _, s := range subjects[1:] {
		if acc := metric.Percent(tallies[s].correct, tallies[s].total); acc < lowest {
			weak, lowest = s, acc
		}
	}
	return weak
}
