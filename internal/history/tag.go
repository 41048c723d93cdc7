// Package history selects the prior exam sessions a report compares
// against. Sessions are matched by the context tag encoded in their id so
// unrelated exams are never mixed.
package history

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// TagKind is the kind of context a session id is tagged with.
type TagKind string

const (
	TagYear    TagKind = "year"
	TagSubject TagKind = "subj"
)

// Tag is the parsed context prefix of a session id.
type Tag struct {
	Kind  TagKind
	Value string
}

// Prefix renders the tag as a session id prefix, including the trailing
// separator.
func (t Tag) Prefix() string {
	return string(t.Kind) + "_" + t.Value + "_"
}

// YearPrefix returns the session id prefix for a year-wise run.
func YearPrefix(year int) string {
	return Tag{Kind: TagYear, Value: strconv.Itoa(year)}.Prefix()
}

// SubjectPrefix returns the session id prefix for a subject-wise run. The
// subject is reduced to its letters and digits.
func SubjectPrefix(subject string) string {
	return Tag{Kind: TagSubject, Value: cleanSubject(subject)}.Prefix()
}

func cleanSubject(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ParseTag extracts the context tag from a session id such as
// "year_2023_8f1c" or "subj_Polity_8f1c".
func ParseTag(sessionID string) (Tag, bool) {
	parts := strings.SplitN(sessionID, "_", 3)
	if len(parts) < 3 || parts[1] == "" {
		return Tag{}, false
	}
	switch TagKind(parts[0]) {
	case TagYear:
		if _, err := strconv.Atoi(parts[1]); err != nil {
			return Tag{}, false
		}
		return Tag{Kind: TagYear, Value: parts[1]}, true
	case TagSubject:
		return Tag{Kind: TagSubject, Value: parts[1]}, true
	}
	return Tag{}, false
}

// NewSessionID returns a fresh session id carrying prefix, e.g. the result
// of YearPrefix. An empty prefix yields an untagged id.
func NewSessionID(prefix string) string {
	return fmt.Sprintf("%s%s", prefix, uuid.NewString())
}
