package dashboard

import "fmt"

// Verdict is the coach card shown on the dashboard.
type Verdict struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

// Rule is one coach diagnosis. Match returns the verdict and true when the
// rule applies to s.
type Rule interface {
	Name() string
	Match(s *Signals) (Verdict, bool)
}

// DefaultVerdict is used when no rule matches.
var DefaultVerdict = Verdict{
	Title:   "On Track 🎯",
	Message: "Your performance is balanced. Keep practicing consistently.",
}

// DefaultRules returns the coach rules in priority order. Mindset checks
// come first, then strategy, then time, then process. The order is part of
// the contract: only the first matching rule speaks.
func DefaultRules() []Rule {
	return []Rule{
		&OverconfidenceRule{},
		&ImposterRule{},
		&RiskAverseRule{},
		&GamerRule{},
		&SuperficialReaderRule{},
		&SpeedsterRule{},
		&OverthinkerRule{},
		&FinalPickRule{},
	}
}

// RunRules evaluates rules in order and returns the first match with the
// rule's name, or DefaultVerdict and "" when none apply.
func RunRules(rules []Rule, s *Signals) (Verdict, string) {
	for _, r := range rules {
		if v, ok := r.Match(s); ok {
			return v, r.Name()
		}
	}
	return DefaultVerdict, ""
}

// OverconfidenceRule fires on repeated wrong answers marked as sure.
type OverconfidenceRule struct{}

func (r *OverconfidenceRule) Name() string { return "overconfidence" }

func (r *OverconfidenceRule) Match(s *Signals) (Verdict, bool) {
	if s.HighConfWrong <= 4 {
		return Verdict{}, false
	}
	return Verdict{
		Title:   "Reality Check 🛑",
		Message: "You are marking answers as 'Sure' but getting them wrong. You have dangerous misconceptions. Stop guessing.",
	}, true
}

// ImposterRule fires on repeated correct answers marked as doubtful.
type ImposterRule struct{}

func (r *ImposterRule) Name() string { return "imposter" }

func (r *ImposterRule) Match(s *Signals) (Verdict, bool) {
	if s.LowConfCorrect <= MinSampleEvents {
		return Verdict{}, false
	}
	return Verdict{
		Title:   "The Imposter 🎭",
		Message: "Trust your gut! You marked 'Low Confidence' on many questions you actually got right.",
	}, true
}

// RiskAverseRule fires when too many recent questions were skipped.
type RiskAverseRule struct{}

func (r *RiskAverseRule) Name() string { return "risk-averse" }

func (r *RiskAverseRule) Match(s *Signals) (Verdict, bool) {
	if s.SkipRate <= MaxSkipRate {
		return Verdict{}, false
	}
	return Verdict{
		Title:   "Risk Averse 🛡️",
		Message: "You are skipping too much (>35%). In UPSC, you need calculated risks. Attempt 5 '50-50' questions today.",
	}, true
}

// GamerRule fires when elimination tactics carry weak factual recall.
type GamerRule struct{}

func (r *GamerRule) Name() string { return "gamer" }

func (r *GamerRule) Match(s *Signals) (Verdict, bool) {
	if s.Radar.Logic <= 80 || s.Radar.Precision >= 40 {
		return Verdict{}, false
	}
	return Verdict{
		Title:   "The Gamer 🎮",
		Message: "Tactical genius, but factually weak. You fail when Elimination tricks don't work (Zero-G). Read textbooks.",
	}, true
}

// SuperficialReaderRule fires when facts are strong but reasoning is weak.
type SuperficialReaderRule struct{}

func (r *SuperficialReaderRule) Name() string { return "superficial-reader" }

func (r *SuperficialReaderRule) Match(s *Signals) (Verdict, bool) {
	if s.Radar.Precision <= 70 || s.Radar.Reasoning >= 40 {
		return Verdict{}, false
	}
	return Verdict{
		Title:   "Superficial Reader 📖",
		Message: "You know facts but fail 'Assertion-Reasoning'. Ask 'Why?' not just 'What?' when reading.",
	}, true
}

// SpeedsterRule fires when rushed answers are mostly wrong.
type SpeedsterRule struct{}

func (r *SpeedsterRule) Name() string { return "speedster" }

func (r *SpeedsterRule) Match(s *Signals) (Verdict, bool) {
	if s.Rushed <= MinSampleEvents || s.RushAccuracy >= 50 {
		return Verdict{}, false
	}
	return Verdict{
		Title: "The Speedster ⚡",
		Message: fmt.Sprintf("Slow Down! You have %d%% accuracy when answering under 15s. You are losing easy marks.",
			int(s.RushAccuracy)),
	}, true
}

// OverthinkerRule fires when wrong answers take too long on average.
type OverthinkerRule struct{}

func (r *OverthinkerRule) Name() string { return "overthinker" }

func (r *OverthinkerRule) Match(s *Signals) (Verdict, bool) {
	if s.AvgWrongTime <= OverthinkSecs {
		return Verdict{}, false
	}
	return Verdict{
		Title:   "The Overthinker ⏳",
		Message: "Time Trap! You spend over 2 mins on wrong answers. If you don't know it in 60s, move on.",
	}, true
}

// FinalPickRule fires when elimination works but the final choice fails.
type FinalPickRule struct{}

func (r *FinalPickRule) Name() string { return "final-pick" }

func (r *FinalPickRule) Match(s *Signals) (Verdict, bool) {
	if s.Eliminations <= MinSampleEvents || s.SniperAccuracy >= 40 {
		return Verdict{}, false
	}
	return Verdict{
		Title:   "The 50-50 Loser 📉",
		Message: "The 'Final Mile' Problem: You successfully eliminate trash options, but choke on the final choice.",
	}, true
}
