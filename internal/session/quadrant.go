package session

// Quadrant thresholds in seconds of total time on the question.
const (
	SniperMaxSecs = 40 // correct below this is sniper, otherwise optimal
	RushMaxSecs   = 20 // wrong below this is rush
	TrapMinSecs   = 60 // wrong above this is trap
)

// Quadrant names a time/correctness bucket.
type Quadrant string

const (
	QuadrantNone    Quadrant = ""
	QuadrantSniper  Quadrant = "sniper"
	QuadrantOptimal Quadrant = "optimal"
	QuadrantRush    Quadrant = "rush"
	QuadrantTrap    Quadrant = "trap"
)

// Classify places a resolved question into at most one quadrant. Skipped
// questions and wrong answers between RushMaxSecs and TrapMinSecs
// (inclusive) belong to none.
func Classify(r *Resolved) Quadrant {
	switch {
	case r.Latest.Correct && r.TotalTime < SniperMaxSecs:
		return QuadrantSniper
	case r.Latest.Correct:
		return QuadrantOptimal
	case r.Latest.Skipped:
		return QuadrantNone
	case r.TotalTime < RushMaxSecs:
		return QuadrantRush
	case r.TotalTime > TrapMinSecs:
		return QuadrantTrap
	}
	return QuadrantNone
}

func buildQuadrants(resolved []Resolved) Quadrants {
	q := Quadrants{
		Sniper:  []QuadrantItem{},
		Optimal: []QuadrantItem{},
		Rush:    []QuadrantItem{},
		Trap:    []QuadrantItem{},
	}
	for i := range resolved {
		r := &resolved[i]
		item := QuadrantItem{
			QuestionID: r.Latest.QuestionID,
			Text:       r.Latest.Question.Text,
			Time:       r.TotalTime,
			IsCorrect:  r.Latest.Correct,
		}
		switch Classify(r) {
		case QuadrantSniper:
			q.Sniper = append(q.Sniper, item)
		case QuadrantOptimal:
			q.Optimal = append(q.Optimal, item)
		case QuadrantRush:
			q.Rush = append(q.Rush, item)
		case QuadrantTrap:
			q.Trap = append(q.Trap, item)
		}
	}
	return q
}
