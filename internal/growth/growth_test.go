package growth

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/examlens/internal/session"
)

func out(id int64, correct bool) session.Outcome {
	return session.Outcome{QuestionID: id, IsCorrect: correct}
}

func TestCompare(t *testing.T) {
	previous := []session.Outcome{
		out(1, false), out(2, true), out(3, true), out(4, false),
		out(5, true), // only in previous
		{QuestionID: 6, IsSkipped: true},
	}
	current := []session.Outcome{
		out(1, true), out(2, false), out(3, true), out(4, false),
		out(7, true), // only in current
		out(6, true),
	}

	r := Compare("year_2023_prev", current, previous)
	require.True(t, r.HasHistory)
	require.NotNil(t, r.Counts)
	assert.Equal(t, "year_2023_prev", r.Baseline)
	assert.Equal(t, 2, r.RetentionFix)
	assert.Equal(t, 1, r.FalsePositive)
	assert.Equal(t, 1, r.StableCorrect)
	assert.Equal(t, 1, r.PersistentError)
}

func TestCompare_TotalsMatchOverlap(t *testing.T) {
	var prev, cur []session.Outcome
	for i := int64(1); i <= 20; i++ {
		prev = append(prev, out(i, i%2 == 0))
		if i > 5 {
			cur = append(cur, out(i, i%3 == 0))
		}
	}
	cur = append(cur, out(100, true))

	r := Compare("s", cur, prev)
	assert.Equal(t, 15, r.Total())
}

func TestNoHistory_JSON(t *testing.T) {
	b, err := json.Marshal(NoHistory())
	require.NoError(t, err)
	assert.JSONEq(t, `{"has_history":false}`, string(b))

	b, err = json.Marshal(Compare("s", []session.Outcome{out(1, true)}, []session.Outcome{out(1, false)}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"has_history":true,"baseline_session":"s","retention_fix":1,"false_positive":0,"stable_correct":0,"persistent_error":0}`, string(b))
}
