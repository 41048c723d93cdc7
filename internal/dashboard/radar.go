package dashboard

import (
	"github.com/abhisek/examlens/internal/attempt"
	"github.com/abhisek/examlens/internal/metric"
	"github.com/abhisek/examlens/internal/taxonomy"
)

// Radar is accuracy per pattern category over the full history. A category
// with no attempts scores 0.
type Radar struct {
	Logic     float64 `json:"logic"`
	Precision float64 `json:"precision"`
	Reasoning float64 `json:"reasoning"`
	Recall    float64 `json:"recall"`
}

// Score returns the radar value for c.
func (r Radar) Score(c taxonomy.Category) float64 {
	switch c {
	case taxonomy.CategoryLogic:
		return r.Logic
	case taxonomy.CategoryPrecision:
		return r.Precision
	case taxonomy.CategoryReasoning:
		return r.Reasoning
	case taxonomy.CategoryRecall:
		return r.Recall
	}
	return 0
}

// Rounded returns r with every axis rounded to one decimal.
func (r Radar) Rounded() Radar {
	return Radar{
		Logic:     metric.Round(r.Logic, 1),
		Precision: metric.Round(r.Precision, 1),
		Reasoning: metric.Round(r.Reasoning, 1),
		Recall:    metric.Round(r.Recall, 1),
	}
}

type categoryTally struct {
	total   int
	correct int
}

// BuildRadar computes unrounded category accuracy over records.
func BuildRadar(records []attempt.Record) Radar {
	tallies := make(map[taxonomy.Category]*categoryTally)
	for i := range records {
		r := &records[i]
		cat, ok := taxonomy.CategoryOf(r.Question.Pattern)
		if !ok {
			continue
		}
		t := tallies[cat]
		if t == nil {
			t = &categoryTally{}
			tallies[cat] = t
		}
		t.total++
		if r.Correct {
			t.correct++
		}
	}

	score := func(c taxonomy.Category) float64 {
		t := tallies[c]
		if t == nil {
			return 0
		}
		return metric.Percent(t.correct, t.total)
	}
	return Radar{
		Logic:     score(taxonomy.CategoryLogic),
		Precision: score(taxonomy.CategoryPrecision),
		Reasoning: score(taxonomy.CategoryReasoning),
		Recall:    score(taxonomy.CategoryRecall),
	}
}
