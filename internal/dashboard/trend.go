package dashboard

import (
	"sort"
	"time"

	"github.com/abhisek/examlens/internal/attempt"
	"github.com/abhisek/examlens/internal/metric"
	"github.com/abhisek/examlens/internal/taxonomy"
)

// TrendDays is the number of active days the trend covers by default.
const TrendDays = 7

// TrendDateLayout labels trend days.
const TrendDateLayout = "02-Jan"

// Trend is per-day logic and precision accuracy, oldest day first. The
// three slices are parallel.
type Trend struct {
	Dates     []string  `json:"dates"`
	Logic     []float64 `json:"logic"`
	Precision []float64 `json:"precision"`
}

type trendDay struct {
	day       time.Time
	logic     categoryTally
	precision categoryTally
}

// BuildTrend groups records by calendar day in loc and keeps the last
// days days that had any activity.
func BuildTrend(records []attempt.Record, loc *time.Location, days int) Trend {
	if loc == nil {
		loc = time.UTC
	}
	byDay := make(map[string]*trendDay)
	for i := range records {
		r := &records[i]
		local := r.AttemptedAt.In(loc)
		key := local.Format(time.DateOnly)
		d := byDay[key]
		if d == nil {
			y, m, dd := local.Date()
			d = &trendDay{day: time.Date(y, m, dd, 0, 0, 0, 0, loc)}
			byDay[key] = d
		}

		cat, _ := taxonomy.CategoryOf(r.Question.Pattern)
		var t *categoryTally
		switch cat {
		case taxonomy.CategoryLogic:
			t = &d.logic
		case taxonomy.CategoryPrecision:
			t = &d.precision
		default:
			continue
		}
		t.total++
		if r.Correct {
			t.correct++
		}
	}

	ordered := make([]*trendDay, 0, len(byDay))
	for _, d := range byDay {
		ordered = append(ordered, d)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].day.Before(ordered[j].day) })
	if days > 0 && len(ordered) > days {
		ordered = ordered[len(ordered)-days:]
	}

	tr := Trend{
		Dates:     make([]string, 0, len(ordered)),
		Logic:     make([]float64, 0, len(ordered)),
		Precision: make([]float64, 0, len(ordered)),
	}
	for _, d := range ordered {
		tr.Dates = append(tr.Dates, d.day.Format(TrendDateLayout))
		tr.Logic = append(tr.Logic, metric.Round(metric.Percent(d.logic.correct, d.logic.total), 1))
		tr.Precision = append(tr.Precision, metric.Round(metric.Percent(d.precision.correct, d.precision.total), 1))
	}
	return tr
}
