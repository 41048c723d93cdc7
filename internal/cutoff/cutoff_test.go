package cutoff

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	rec   *Record
	err   error
	calls int
}

func (f *fakeSource) Cutoff(_ context.Context, _ string, _ int) (*Record, error) {
	f.calls++
	return f.rec, f.err
}

func sample() *Record {
	return &Record{ExamName: "UPSC CSE", Year: 2023, General: 75.41, EWS: 68.02, OBC: 74.75, SC: 59.25, ST: 47.82, Official: true}
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name     string
		rec      *Record
		yearPure bool
		score    float64
		status   string
		gap      float64
		message  string
	}{
		{"not year pure with record", sample(), false, 120, StatusNA, 0, "No official data."},
		{"no record", nil, true, 120, StatusNA, 0, "No official data."},
		{"cleared", sample(), true, 80.41, StatusCleared, 5, "Safe Zone! (+5)"},
		{"exactly at cutoff", sample(), true, 75.41, StatusCleared, 0, "Safe Zone! (+0)"},
		{"failed", sample(), true, 70.09, StatusFailed, -5.32, "Missed by 5.32"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Evaluate(tt.rec, tt.yearPure, tt.score)
			assert.Equal(t, tt.status, a.Status)
			assert.InDelta(t, tt.gap, a.Gap, 1e-9)
			assert.Equal(t, tt.message, a.Message)
		})
	}
}

func TestEvaluate_SurfacesBreakdown(t *testing.T) {
	a := Evaluate(sample(), true, 100)
	require.NotNil(t, a.IsOfficial)
	assert.True(t, *a.IsOfficial)
	assert.Equal(t, map[string]float64{
		"General": 75.41, "EWS": 68.02, "OBC": 74.75, "SC": 59.25, "ST": 47.82,
	}, a.Breakdown)

	na := Evaluate(sample(), false, 100)
	assert.Nil(t, na.Breakdown)
	assert.Nil(t, na.IsOfficial)
}

func TestComparator_SkipsLookupWhenNotYearPure(t *testing.T) {
	src := &fakeSource{rec: sample()}
	c := NewComparator(src)

	a, err := c.Analyze(context.Background(), Input{ExamName: "UPSC CSE", Year: 2023, Score: 200})
	require.NoError(t, err)
	assert.Equal(t, StatusNA, a.Status)
	assert.Zero(t, src.calls)
}

func TestComparator_Analyze(t *testing.T) {
	src := &fakeSource{rec: sample()}
	c := NewComparator(src)

	a, err := c.Analyze(context.Background(), Input{ExamName: "UPSC CSE", Year: 2023, YearPure: true, Score: 60})
	require.NoError(t, err)
	assert.Equal(t, StatusFailed, a.Status)
	assert.Equal(t, 1, src.calls)
}

func TestComparator_PropagatesLookupError(t *testing.T) {
	boom := errors.New("disk on fire")
	c := NewComparator(&fakeSource{err: boom})

	_, err := c.Analyze(context.Background(), Input{ExamName: "UPSC CSE", Year: 2023, YearPure: true})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}
