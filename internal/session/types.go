package session

import (
	"time"

	"github.com/abhisek/examlens/internal/attempt"
)

// Resolved is the authoritative outcome of one question within a session.
type Resolved struct {
	Latest    attempt.Record // attempt that decides the outcome
	TotalTime int            // seconds summed over every attempt
	Attempts  int
}

// QuestionID returns the resolved question's id.
func (r *Resolved) QuestionID() int64 { return r.Latest.QuestionID }

// ScoreCard is the reconstructed exam score.
type ScoreCard struct {
	ActualScore    float64 `json:"actual_score"`
	PotentialScore float64 `json:"potential_score"`
	LostMarks      float64 `json:"lost_marks"`
	Accuracy       float64 `json:"accuracy"`
	Correct        int     `json:"correct"`
	Wrong          int     `json:"wrong"`
	Skipped        int     `json:"skipped"`
	SillyMistakes  int     `json:"silly_mistakes"`
}

// QuadrantItem is one question placed in a time/correctness quadrant.
type QuadrantItem struct {
	QuestionID int64  `json:"question_id"`
	Text       string `json:"text"`
	Time       int    `json:"time"`
	IsCorrect  bool   `json:"is_correct"`
}

// Quadrants buckets resolved questions by speed and correctness.
type Quadrants struct {
	Sniper  []QuadrantItem `json:"sniper"`
	Optimal []QuadrantItem `json:"optimal"`
	Rush    []QuadrantItem `json:"rush"`
	Trap    []QuadrantItem `json:"trap"`
}

// Tally counts correct and wrong answers in one confidence bucket.
type Tally struct {
	Correct int `json:"correct"`
	Wrong   int `json:"wrong"`
}

// ConfidenceMatrix maps a snapped confidence bucket (0, 25, 50, 75, 100)
// to its tally.
type ConfidenceMatrix map[int]Tally

// SubjectHeat is one row of the subject heatmap.
type SubjectHeat struct {
	Subject       string  `json:"subject"`
	Accuracy      float64 `json:"accuracy"`
	NetMarks      float64 `json:"net_marks"`
	LostMarks     float64 `json:"lost_marks"`
	AvgTime       float64 `json:"avg_time"`
	Correct       int     `json:"correct"`
	Wrong         int     `json:"wrong"`
	Skipped       int     `json:"skipped"`
	SillyMistakes int     `json:"silly_mistakes"`
}

// Outcome is the flattened per-question result compared across sessions.
type Outcome struct {
	QuestionID       int64  `json:"question_id"`
	TotalTime        int    `json:"total_time"`
	IsCorrect        bool   `json:"is_correct"`
	IsSkipped        bool   `json:"is_skipped"`
	SelectedOptionID *int64 `json:"selected_option_id"`
}

// Stats is the full aggregate of one session.
type Stats struct {
	ScoreCard        ScoreCard        `json:"score_card"`
	Quadrants        Quadrants        `json:"quadrants"`
	ConfidenceMatrix ConfidenceMatrix `json:"confidence_matrix"`
	Heatmap          []SubjectHeat    `json:"heatmap"`
	Outcomes         []Outcome        `json:"full_logs"`
	TotalQuestions   int              `json:"total_qs"`
}

// Summary is the lightweight aggregate used for history rows.
type Summary struct {
	SessionID string    `json:"session_id"`
	Date      time.Time `json:"date"`
	Correct   int       `json:"correct"`
	Wrong     int       `json:"wrong"`
	Total     int       `json:"total"`
	Score     float64   `json:"score"`
	Accuracy  float64   `json:"accuracy"`
}
