// Package dashboard builds the rolling behaviour report for a learner:
// long-run accuracy and radar, recent-window deep metrics and the coach
// verdict.
package dashboard

import (
	"time"

	"github.com/abhisek/examlens/internal/attempt"
	"github.com/abhisek/examlens/internal/metric"
)

// RecentWindow is the number of newest attempts used for behaviour
// diagnosis.
const RecentWindow = 100

// WelcomeVerdict greets a learner without history.
var WelcomeVerdict = Verdict{
	Title:   "Welcome 👋",
	Message: "Start solving to unlock insights.",
}

// Options tune Build.
type Options struct {
	// Location decides calendar-day boundaries for the streak. Nil means
	// UTC.
	Location *time.Location
	// Window overrides RecentWindow when positive.
	Window int
	// Rules overrides DefaultRules when non-nil.
	Rules []Rule
}

// Report is the dashboard payload.
type Report struct {
	NewUser     bool        `json:"new_user"`
	Attempts    int         `json:"attempts"`
	Accuracy    float64     `json:"accuracy"`
	Streak      int         `json:"streak"`
	WeakSubject string      `json:"weak_subject"`
	Coach       Verdict     `json:"coach"`
	CoachRule   string      `json:"coach_rule,omitempty"`
	Radar       Radar       `json:"radar"`
	DeepMetrics DeepMetrics `json:"deep_metrics"`
	Insights    Insights    `json:"insights"`
}

// NewUserReport is the explicit report for a learner with no attempts.
func NewUserReport() *Report {
	return &Report{
		NewUser:     true,
		WeakSubject: NoSubject,
		Coach:       WelcomeVerdict,
		DeepMetrics: DeepMetrics{EraGap: "-"},
	}
}

// Build computes the dashboard from history ordered newest first.
func Build(history []attempt.Record, opts Options) *Report {
	if len(history) == 0 {
		return NewUserReport()
	}
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	window := opts.Window
	if window <= 0 {
		window = RecentWindow
	}
	rules := opts.Rules
	if rules == nil {
		rules = DefaultRules()
	}

	radar := BuildRadar(history)
	recent := attempt.Window(history, window)
	signals := ComputeSignals(recent, radar)
	verdict, rule := RunRules(rules, signals)

	return &Report{
		Attempts:    len(history),
		Accuracy:    metric.Round(Accuracy(history), 1),
		Streak:      Streak(history, loc),
		WeakSubject: WeakSubject(history),
		Coach:       verdict,
		CoachRule:   rule,
		Radar:       radar.Rounded(),
		DeepMetrics: DeepMetrics{
			EraGap:           EraGap(radar),
			SniperEfficiency: metric.Round(signals.SniperAccuracy, 1),
			RushAccuracy:     metric.Round(signals.RushAccuracy, 1),
		},
		Insights: BuildInsights(history),
	}
}
