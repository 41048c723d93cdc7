package dashboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/examlens/internal/attempt"
	"github.com/abhisek/examlens/internal/taxonomy"
)

var base = time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

type builder struct {
	recs []attempt.Record
	next int64
}

// add appends n attempts, each newer than the previous one, with the given
// shape applied.
func (b *builder) add(n int, shape func(*attempt.Record)) *builder {
	for i := 0; i < n; i++ {
		b.next++
		r := attempt.Record{
			ID:            b.next,
			UserID:        "u1",
			QuestionID:    b.next,
			TimeTakenSecs: 45,
			Confidence:    60,
			AttemptedAt:   base.Add(time.Duration(b.next) * time.Minute),
			Question:      attempt.Question{Subject: "Polity", Pattern: taxonomy.PatternOneLiner},
		}
		if shape != nil {
			shape(&r)
		}
		b.recs = append(b.recs, r)
	}
	return b
}

// history returns the records newest first.
func (b *builder) history() []attempt.Record {
	out := make([]attempt.Record, len(b.recs))
	copy(out, b.recs)
	attempt.SortNewestFirst(out)
	return out
}

func highConfWrong(r *attempt.Record) { r.Confidence = 90 }
func skip(r *attempt.Record) { r.Skipped = true }
func right(r *attempt.Record) { r.Correct = true }

func TestBuild_NewUser(t *testing.T) {
	r := Build(nil, Options{})
	assert.True(t, r.NewUser)
	assert.Equal(t, WelcomeVerdict, r.Coach)
	assert.Equal(t, "-", r.DeepMetrics.EraGap)
	assert.Equal(t, NoSubject, r.WeakSubject)
	assert.Zero(t, r.Accuracy)
	assert.Zero(t, r.Streak)
	assert.Zero(t, r.DeepMetrics.RushAccuracy)
	assert.Equal(t, Radar{}, r.Radar)
}

func TestBuild_OverconfidenceBeatsRiskAverse(t *testing.T) {
	h := (&builder{}).
		add(5, highConfWrong).
		add(5, skip).
		history()

	s := ComputeSignals(h, BuildRadar(h))
	require.Greater(t, s.HighConfWrong, 4)
	require.Greater(t, s.SkipRate, MaxSkipRate)

	r := Build(h, Options{})
	assert.Equal(t, "overconfidence", r.CoachRule)
	assert.Equal(t, "Reality Check 🛑", r.Coach.Title)
}

func TestBuild_OnlyRecentWindowDrivesCoach(t *testing.T) {
	// Old overconfident errors followed by a full window of calm answers.
	h := (&builder{}).
		add(10, highConfWrong).
		add(RecentWindow, right).
		history()

	r := Build(h, Options{})
	assert.Equal(t, DefaultVerdict, r.Coach)
	assert.Empty(t, r.CoachRule)
	// Accuracy still reflects the full history.
	assert.InDelta(t, 90.9, r.Accuracy, 1e-9)
}

func TestRunRules_EachRule(t *testing.T) {
	tests := []struct {
		name    string
		signals Signals
		rule    string
	}{
		{"overconfidence", Signals{HighConfWrong: 5}, "overconfidence"},
		{"overconfidence at threshold", Signals{HighConfWrong: 4}, ""},
		{"imposter", Signals{LowConfCorrect: 6}, "imposter"},
		{"risk averse", Signals{SkipRate: 35.1}, "risk-averse"},
		{"risk averse at threshold", Signals{SkipRate: 35}, ""},
		{"gamer", Signals{Radar: Radar{Logic: 81, Precision: 39}}, "gamer"},
		{"superficial reader", Signals{Radar: Radar{Precision: 71, Reasoning: 39}}, "superficial-reader"},
		{"speedster", Signals{Rushed: 6, RushAccuracy: 49}, "speedster"},
		{"speedster few rushes", Signals{Rushed: 5, RushAccuracy: 0}, ""},
		{"overthinker", Signals{AvgWrongTime: 121}, "overthinker"},
		{"final pick", Signals{Eliminations: 6, SniperAccuracy: 39}, "final-pick"},
		{"none", Signals{RushAccuracy: 100}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, name := RunRules(DefaultRules(), &tt.signals)
			assert.Equal(t, tt.rule, name)
			if tt.rule == "" {
				assert.Equal(t, DefaultVerdict, v)
			}
		})
	}
}

func TestRunRules_PriorityOrder(t *testing.T) {
	// Each suffix of DefaultRules must be led by its first rule.
	s := &Signals{
		HighConfWrong:  9,
		LowConfCorrect: 9,
		SkipRate:       90,
		Radar:          Radar{Logic: 90, Precision: 10, Reasoning: 10},
		Rushed:         9,
		RushAccuracy:   10,
		AvgWrongTime:   300,
		Eliminations:   9,
		SniperAccuracy: 10,
	}
	want := []string{"overconfidence", "imposter", "risk-averse", "gamer", "superficial-reader", "speedster", "overthinker", "final-pick"}
	rules := DefaultRules()
	for i, name := range want {
		if name == "superficial-reader" {
			// Gamer and superficial reader need opposite precision.
			s.Radar = Radar{Logic: 10, Precision: 90, Reasoning: 10}
		}
		_, got := RunRules(rules[i:], s)
		assert.Equal(t, name, got)
	}
}

func TestSpeedsterMessageCarriesRushAccuracy(t *testing.T) {
	v, ok := (&SpeedsterRule{}).Match(&Signals{Rushed: 8, RushAccuracy: 37.5})
	require.True(t, ok)
	assert.Contains(t, v.Message, "37% accuracy")
}

func TestComputeSignals_RushAccuracyDefaultsTo100(t *testing.T) {
	h := (&builder{}).add(3, nil).history()
	s := ComputeSignals(h, Radar{})
	assert.Zero(t, s.Rushed)
	assert.Equal(t, 100.0, s.RushAccuracy)

	r := Build(h, Options{})
	assert.Equal(t, 100.0, r.DeepMetrics.RushAccuracy)
}

func TestComputeSignals_Counts(t *testing.T) {
	h := (&builder{}).
		add(2, func(r *attempt.Record) { r.TimeTakenSecs = 5; r.Correct = true }).
		add(2, func(r *attempt.Record) { r.TimeTakenSecs = 5 }).
		add(1, func(r *attempt.Record) { r.TimeTakenSecs = 3; r.Skipped = true }).
		add(1, func(r *attempt.Record) { r.EliminatedOptions = []int64{1, 2}; r.Correct = true }).
		add(1, func(r *attempt.Record) { r.EliminatedOptions = []int64{3} }).
		history()

	s := ComputeSignals(h, Radar{})
	assert.Equal(t, 7, s.Recent)
	assert.Equal(t, 1, s.Skipped)
	assert.Equal(t, 4, s.Rushed, "skips are never rushed")
	assert.Equal(t, 50.0, s.RushAccuracy)
	assert.Equal(t, 3, s.WrongAnswers)
	assert.InDelta(t, (5+5+45)/3.0, s.AvgWrongTime, 1e-9)
	assert.Equal(t, 2, s.Eliminations)
	assert.Equal(t, 50.0, s.SniperAccuracy)
}

func TestEraGap(t *testing.T) {
	tests := []struct {
		radar Radar
		want  string
	}{
		{Radar{Logic: 0, Precision: 90}, EraBalanced},
		{Radar{Logic: 80, Precision: 30}, EraDinosaur},
		{Radar{Logic: 50, Precision: 61}, EraModern},
		{Radar{Logic: 50, Precision: 60}, EraBalanced},
		{Radar{Logic: 50, Precision: 25}, EraBalanced},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, EraGap(tt.radar), "%+v", tt.radar)
	}
}

func TestBuildRadar(t *testing.T) {
	withPattern := func(p taxonomy.Pattern, correct bool) func(*attempt.Record) {
		return func(r *attempt.Record) { r.Question.Pattern = p; r.Correct = correct }
	}
	h := (&builder{}).
		add(3, withPattern(taxonomy.PatternElimClassical, true)).
		add(1, withPattern(taxonomy.PatternElimHaphazard, false)).
		add(1, withPattern(taxonomy.PatternZeroGColumn3, true)).
		add(2, withPattern(taxonomy.PatternZeroGStatement, false)).
		history()

	r := BuildRadar(h)
	assert.Equal(t, 75.0, r.Logic)
	assert.InDelta(t, 33.333, r.Precision, 1e-3)
	assert.Zero(t, r.Reasoning, "no attempts yields 0")
	assert.Zero(t, r.Recall)
	assert.Equal(t, 33.3, r.Rounded().Precision)
	assert.Equal(t, r.Logic, r.Score(taxonomy.CategoryLogic))
}

func TestWeakSubject(t *testing.T) {
	subj := func(s string, correct bool) func(*attempt.Record) {
		return func(r *attempt.Record) { r.Question.Subject = s; r.Correct = correct }
	}
	h := (&builder{}).
		add(1, subj("Polity", true)).
		add(1, subj("Polity", false)).
		add(1, subj("Economy", true)).
		add(1, subj("Economy", false)).
		add(2, subj("History", true)).
		add(1, subj("", false)).
		history()

	assert.Equal(t, "Economy", WeakSubject(h), "ties resolve alphabetically")
	assert.Equal(t, NoSubject, WeakSubject(nil))
}

func TestStreak_UsesLocation(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	h := []attempt.Record{
		{AttemptedAt: time.Date(2024, 6, 10, 17, 0, 0, 0, time.UTC)}, // 22:30 IST, Jun 10
		{AttemptedAt: time.Date(2024, 6, 10, 19, 0, 0, 0, time.UTC)}, // 00:30 IST, Jun 11
		{AttemptedAt: time.Date(2024, 6, 10, 20, 0, 0, 0, time.UTC)},
	}
	assert.Equal(t, 1, Streak(h, time.UTC))
	assert.Equal(t, 2, Streak(h, ist))
}

func TestBuildInsights(t *testing.T) {
	h := (&builder{}).
		add(2, func(r *attempt.Record) { r.Skipped = true; r.TimeTakenSecs = 90 }).
		add(3, func(r *attempt.Record) { r.Confidence = 30; r.Correct = true }).
		add(1, func(r *attempt.Record) { r.Confidence = 30 }).
		add(2, func(r *attempt.Record) { r.Confidence = 75 }).
		add(1, func(r *attempt.Record) { r.Confidence = 75; r.Skipped = true }).
		add(1, func(r *attempt.Record) { r.Bookmarked = true; r.Correct = true }).
		history()

	ins := BuildInsights(h)
	assert.Equal(t, 3.8, ins.WastedTimeMins)
	assert.Equal(t, 75.0, ins.GuessAccuracy)
	assert.Equal(t, 2, ins.DangerousErrors)
	assert.Equal(t, 1, ins.UnnecessaryDoubts)
}

func TestBuildTrend(t *testing.T) {
	day := func(month time.Month, d int) time.Time { return time.Date(2024, month, d, 9, 0, 0, 0, time.UTC) }
	rec := func(ts time.Time, p taxonomy.Pattern, correct bool) attempt.Record {
		return attempt.Record{AttemptedAt: ts, Correct: correct, Question: attempt.Question{Pattern: p}}
	}

	var records []attempt.Record
	for d := 1; d <= 8; d++ {
		records = append(records, rec(day(time.March, d), taxonomy.PatternElimClassical, d%2 == 0))
	}
	records = append(records,
		rec(day(time.February, 28), taxonomy.PatternZeroGColumn2, true),
		rec(day(time.March, 8), taxonomy.PatternZeroGStatement, true),
		rec(day(time.March, 8), taxonomy.PatternZeroGStatement, false),
		rec(day(time.March, 9), taxonomy.PatternOneLiner, true),
	)

	tr := BuildTrend(records, time.UTC, TrendDays)
	require.Len(t, tr.Dates, 7)
	assert.Equal(t, []string{"03-Mar", "04-Mar", "05-Mar", "06-Mar", "07-Mar", "08-Mar", "09-Mar"}, tr.Dates)
	assert.Equal(t, []float64{0, 100, 0, 100, 0, 100, 0}, tr.Logic)
	assert.Equal(t, 50.0, tr.Precision[5])

	all := BuildTrend(records, time.UTC, 0)
	assert.Equal(t, "28-Feb", all.Dates[0])
	assert.Equal(t, "01-Mar", all.Dates[1])
}

func TestBuildTrend_Empty(t *testing.T) {
	tr := BuildTrend(nil, nil, TrendDays)
	assert.NotNil(t, tr.Dates)
	assert.Empty(t, tr.Dates)
}
