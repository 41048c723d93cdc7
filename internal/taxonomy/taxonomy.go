// Package taxonomy holds the subject and question-pattern tables shared by
// the session aggregator, the dashboard radar and the importer. Category
// membership is defined exactly once here so the reports never disagree.
package taxonomy

import "strings"

// Official subjects, in the order used for common-subject detection.
const (
	SubjectHistory       = "History"
	SubjectPolity        = "Polity"
	SubjectGeography     = "Geography"
	SubjectEconomy       = "Economy"
	SubjectEnvironment   = "Environment"
	SubjectScienceTech   = "Science & Tech"
	SubjectIntlRelations = "International Relations"
	SubjectCurrent       = "Current Affairs"
	SubjectArtCulture    = "Art & Culture"
)

// OfficialSubjects is ordered; the first subject shared by every question
// of a session wins context detection.
var OfficialSubjects = []string{
	SubjectHistory,
	SubjectPolity,
	SubjectGeography,
	SubjectEconomy,
	SubjectEnvironment,
	SubjectScienceTech,
	SubjectIntlRelations,
	SubjectCurrent,
	SubjectArtCulture,
}

// IsOfficialSubject reports whether s is one of OfficialSubjects.
func IsOfficialSubject(s string) bool {
	for _, o := range OfficialSubjects {
		if o == s {
			return true
		}
	}
	return false
}

// Pattern is the structural archetype of a question.
type Pattern string

const (
	PatternElimClassical  Pattern = "elim_classical"
	PatternElimHaphazard  Pattern = "elim_haphazard"
	PatternZeroGStatement Pattern = "zero_g_statement"
	PatternZeroGColumn2   Pattern = "zero_g_column_2"
	PatternZeroGColumn3   Pattern = "zero_g_column_3"
	PatternFiftyFifty     Pattern = "fifty_fifty"
	PatternAssertion2     Pattern = "assertion_2"
	PatternAssertion3     Pattern = "assertion_3"
	PatternOneLiner       Pattern = "one_liner"
)

// DefaultPattern is assumed when a question carries no usable pattern.
const DefaultPattern = PatternOneLiner

// AllPatterns lists every known pattern.
var AllPatterns = []Pattern{
	PatternElimClassical,
	PatternElimHaphazard,
	PatternZeroGStatement,
	PatternZeroGColumn2,
	PatternZeroGColumn3,
	PatternFiftyFifty,
	PatternAssertion2,
	PatternAssertion3,
	PatternOneLiner,
}

// ParsePattern maps a stored pattern string to a Pattern. Unknown or empty
// values fall back to DefaultPattern.
func ParsePattern(s string) Pattern {
	p := Pattern(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AllPatterns {
		if p == known {
			return p
		}
	}
	return DefaultPattern
}

// Category is a radar axis grouping several patterns.
type Category string

const (
	CategoryLogic     Category = "logic"
	CategoryPrecision Category = "precision"
	CategoryReasoning Category = "reasoning"
	CategoryRecall    Category = "recall"
)

var categoryPatterns = map[Category][]Pattern{
	CategoryLogic:     {PatternElimClassical, PatternElimHaphazard},
	CategoryPrecision: {PatternZeroGStatement, PatternZeroGColumn2, PatternZeroGColumn3},
	CategoryReasoning: {PatternAssertion2, PatternAssertion3},
	CategoryRecall:    {PatternOneLiner, PatternFiftyFifty},
}

// Categories returns the radar axes in display order.
func Categories() []Category {
	return []Category{CategoryLogic, CategoryPrecision, CategoryReasoning, CategoryRecall}
}

// PatternsIn returns the patterns belonging to c.
func PatternsIn(c Category) []Pattern {
	ps := categoryPatterns[c]
	out := make([]Pattern, len(ps))
	copy(out, ps)
	return out
}

// CategoryOf returns the radar category of p.
func CategoryOf(p Pattern) (Category, bool) {
	for c, ps := range categoryPatterns {
		for _, member := range ps {
			if member == p {
				return c, true
			}
		}
	}
	return "", false
}
