package attempt

import (
	"time"

	"github.com/abhisek/examlens/internal/taxonomy"
)

// SourceMode tells whether an attempt happened inside a timed exam or in
// free practice.
type SourceMode string

const (
	ModeExam     SourceMode = "exam"
	ModePractice SourceMode = "practice"
)

// DefaultExamName is used when a question row carries no exam name.
const DefaultExamName = "UPSC CSE"

// DefaultConfidence is assumed when a confidence score is missing or
// cannot be parsed.
const DefaultConfidence = 100

// Question is the read-through question context carried on every record.
type Question struct {
	Text     string
	Subject  string
	Pattern  taxonomy.Pattern
	Year     int
	ExamName string
	Tags     string
}

// Record is one validated answer attempt. Records are produced only by
// Normalize; downstream code never re-validates them.
type Record struct {
	ID                 int64
	UserID             string
	QuestionID         int64
	SelectedOptionID   *int64
	Correct            bool
	Skipped            bool
	TimeTakenSecs      int
	Confidence         int
	Bookmarked         bool
	ClearedFromLibrary bool
	EliminatedOptions  []int64
	SourceMode         SourceMode
	SessionID          string // empty for free practice
	AttemptedAt        time.Time
	Question           Question
}

// Wrong reports whether the attempt was answered and incorrect.
func (r *Record) Wrong() bool {
	return !r.Correct && !r.Skipped
}

// UsedElimination reports whether the learner struck out any option.
func (r *Record) UsedElimination() bool {
	return len(r.EliminatedOptions) > 0
}

// Raw is an attempt as received from an untrusted boundary: JSON import,
// HTTP body or a database row. Every field may hold a string, a number,
// a boolean or be absent.
type Raw struct {
	ID                   any          `json:"id,omitempty"`
	UserID               any          `json:"user_id"`
	QuestionID           any          `json:"question_id"`
	SelectedOptionID     any          `json:"selected_option_id,omitempty"`
	IsCorrect            any          `json:"is_correct,omitempty"`
	IsSkipped            any          `json:"is_skipped,omitempty"`
	TimeTakenSeconds     any          `json:"time_taken_seconds,omitempty"`
	ConfidenceScore      any          `json:"confidence_score,omitempty"`
	IsBookmarked         any          `json:"is_bookmarked,omitempty"`
	IsClearedFromLibrary any          `json:"is_cleared_from_library,omitempty"`
	EliminatedOptions    any          `json:"eliminated_options,omitempty"`
	SourceMode           any          `json:"source_mode,omitempty"`
	SessionID            any          `json:"session_id,omitempty"`
	AttemptedAt          any          `json:"attempted_at,omitempty"`
	Question             *RawQuestion `json:"question,omitempty"`
}

// RawQuestion is the loosely typed question context of a Raw attempt.
type RawQuestion struct {
	Text     any `json:"text,omitempty"`
	Subject  any `json:"subject,omitempty"`
	Pattern  any `json:"pattern,omitempty"`
	Year     any `json:"year,omitempty"`
	ExamName any `json:"exam_name,omitempty"`
	Tags     any `json:"tags,omitempty"`
}
