// Package cutoff compares a session score against the official cutoff for
// the exam year the session covered.
package cutoff

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"github.com/abhisek/examlens/internal/metric"
)

// Analysis status values.
const (
	StatusNA      = "N/A"
	StatusCleared = "CLEARED"
	StatusFailed  = "FAILED"
)

const noDataMessage = "No official data."

// Record is the published cutoff for one exam year.
type Record struct {
	ExamName string
	Year     int
	General  float64
	EWS      float64
	OBC      float64
	SC       float64
	ST       float64
	Official bool
}

// Breakdown returns the per-category thresholds keyed by category label.
func (r *Record) Breakdown() map[string]float64 {
	return map[string]float64{
		"General": r.General,
		"EWS":     r.EWS,
		"OBC":     r.OBC,
		"SC":      r.SC,
		"ST":      r.ST,
	}
}

// Analysis is the cutoff verdict attached to a session report.
type Analysis struct {
	Status     string             `json:"status"`
	Gap        float64            `json:"gap"`
	Message    string             `json:"message"`
	Breakdown  map[string]float64 `json:"breakdown,omitempty"`
	IsOfficial *bool              `json:"is_official,omitempty"`
}

// NotApplicable is the verdict for sessions that cannot be compared.
func NotApplicable() Analysis {
	return Analysis{Status: StatusNA, Message: noDataMessage}
}

// Evaluate compares score against rec. Sessions that are not year-pure
// and missing records both yield N/A.
func Evaluate(rec *Record, yearPure bool, score float64) Analysis {
	if !yearPure || rec == nil {
		return NotApplicable()
	}

	gap := metric.Round(score-rec.General, 2)
	official := rec.Official
	a := Analysis{
		Gap:        gap,
		Breakdown:  rec.Breakdown(),
		IsOfficial: &official,
	}
	if gap >= 0 {
		a.Status = StatusCleared
		a.Message = fmt.Sprintf("Safe Zone! (+%s)", formatMarks(gap))
	} else {
		a.Status = StatusFailed
		a.Message = fmt.Sprintf("Missed by %s", formatMarks(math.Abs(gap)))
	}
	return a
}

func formatMarks(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Source looks up cutoff records. A missing record is (nil, nil).
type Source interface {
	Cutoff(ctx context.Context, examName string, year int) (*Record, error)
}

// Input describes the session being compared.
type Input struct {
	ExamName string
	Year     int
	YearPure bool
	Score    float64
}

// Comparator resolves cutoff records and evaluates sessions against them.
type Comparator struct {
	src Source
}

// NewComparator creates a Comparator backed by src.
func NewComparator(src Source) *Comparator {
	return &Comparator{src: src}
}

// Analyze looks up the cutoff for in and evaluates it. The store is not
// consulted for sessions that are not year-pure.
func (c *Comparator) Analyze(ctx context.Context, in Input) (Analysis, error) {
	if !in.YearPure {
		return NotApplicable(), nil
	}
	rec, err := c.src.Cutoff(ctx, in.ExamName, in.Year)
	if err != nil {
		return Analysis{}, fmt.Errorf("lookup cutoff %s %d: %w", in.ExamName, in.Year, err)
	}
	return Evaluate(rec, true, in.Score), nil
}
