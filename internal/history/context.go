package history

import (
	"strings"

	"github.com/abhisek/examlens/internal/attempt"
	"github.com/abhisek/examlens/internal/taxonomy"
)

// Context is the comparison context of a session: the exam it belongs to
// and the single year or subject all its questions share.
type Context struct {
	ExamName string `json:"exam_name"`
	Year     int    `json:"year,omitempty"`
	Subject  string `json:"subject,omitempty"`

	// CommonYear is set only when every question shares Year. An
	// overridden year leaves it false.
	CommonYear bool `json:"common_year"`
}

// Override supplies context the caller knows when auto-detection fails.
type Override struct {
	Year    int
	Subject string
}

// DetectContext derives the comparison context from a session's records.
// The exam name is taken from the question with the lowest id so the
// result does not depend on record order.
func DetectContext(records []attempt.Record) Context {
	var c Context
	if len(records) == 0 {
		return c
	}

	first := &records[0]
	years := make(map[int]struct{})
	for i := range records {
		r := &records[i]
		if r.QuestionID < first.QuestionID {
			first = r
		}
		years[r.Question.Year] = struct{}{}
	}
	c.ExamName = first.Question.ExamName

	if len(years) == 1 {
		for y := range years {
			if y > 0 {
				c.Year = y
				c.CommonYear = true
			}
		}
	}
	c.Subject = commonSubject(records)
	return c
}

// commonSubject returns the first official subject that every question
// carries as its primary subject or inside its tags.
func commonSubject(records []attempt.Record) string {
	for _, candidate := range taxonomy.OfficialSubjects {
		shared := true
		for i := range records {
			q := &records[i].Question
			if q.Subject != candidate && !strings.Contains(q.Tags, candidate) {
				shared = false
				break
			}
		}
		if shared {
			return candidate
		}
	}
	return ""
}

// Apply fills the parts of c that detection left empty from o. A detected
// field is never replaced, but an override year still fills Year when only
// a subject was detected, so TagPrefix then scopes history by that year.
func (c Context) Apply(o Override) Context {
	if c.Year == 0 && o.Year > 0 {
		c.Year = o.Year
	}
	if s := strings.TrimSpace(o.Subject); c.Subject == "" && s != "" {
		c.Subject = s
	}
	return c
}

// TagPrefix is the session id prefix prior sessions must carry to be
// comparable. Year wins over subject. An empty prefix means the context is
// ambiguous and no history applies.
func (c Context) TagPrefix() string {
	switch {
	case c.Year > 0:
		return YearPrefix(c.Year)
	case c.Subject != "":
		return SubjectPrefix(c.Subject)
	}
	return ""
}

// Ambiguous reports whether neither a year nor a subject is known.
func (c Context) Ambiguous() bool {
	return c.TagPrefix() == ""
}

// YearPure reports whether sessionID is a year-wise run whose questions
// all come from one year.
func (c Context) YearPure(sessionID string) bool {
	tag, ok := ParseTag(sessionID)
	return ok && tag.Kind == TagYear && c.CommonYear
}
