package session

import (
	"sort"

	"github.com/abhisek/examlens/internal/metric"
)

type subjectTally struct {
	attempted int
	correct   int
	wrong     int
	skipped   int
	totalTime int
	silly     int
}

// buildHeatmap returns one row per subject with at least one attempted
// question, weakest first. Subjects with only skips are left out.
func buildHeatmap(resolved []Resolved) []SubjectHeat {
	tallies := make(map[string]*subjectTally)
	for i := range resolved {
		r := &resolved[i]
		subj := r.Latest.Question.Subject
		t, ok := tallies[subj]
		if !ok {
			t = &subjectTally{}
			tallies[subj] = t
		}

		if r.Latest.Skipped {
			t.skipped++
			continue
		}
		t.attempted++
		t.totalTime += r.TotalTime
		if r.Latest.Correct {
			t.correct++
			continue
		}
		t.wrong++
		if r.TotalTime < SillyTimeSecs {
			t.silly++
		}
	}

	rows := make([]SubjectHeat, 0, len(tallies))
	for subj, t := range tallies {
		if t.attempted == 0 {
			continue
		}
		rows = append(rows, SubjectHeat{
			Subject:       subj,
			Accuracy:      metric.Round(metric.Percent(t.correct, t.attempted), 1),
			NetMarks:      metric.Round(NetMarks(t.correct, t.wrong), 2),
			LostMarks:     metric.Round(float64(t.wrong)*MarksWrong, 2),
			AvgTime:       metric.Round(float64(t.totalTime)/float64(t.attempted), 0),
			Correct:       t.correct,
			Wrong:         t.wrong,
			Skipped:       t.skipped,
			SillyMistakes: t.silly,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Accuracy != rows[j].Accuracy {
			return rows[i].Accuracy < rows[j].Accuracy
		}
		return rows[i].Subject < rows[j].Subject
	})
	return rows
}
