package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/examlens/internal/attempt"
	"github.com/abhisek/examlens/internal/history"
)

// The attempts table is an append-only log. The library flag is the only
// column updated after insert.

// attemptColumns are read by scanAttempt, in order. The "a" columns come
// from attempts, the "q" columns from the joined question.
var (
	attemptColumns = []string{
		"id", "user_id", "question_id", "selected_option_id", "is_correct",
		"is_skipped", "time_taken_seconds", "confidence_score", "is_bookmarked",
		"is_cleared_from_library", "eliminated_options", "source_mode", "session_id",
		"attempted_at",
	}
	questionColumns = []string{"text", "subject", "pattern", "year", "exam_name", "tags"}
)

// selectAttempts starts a SELECT of attempts joined to their questions.
// It returns the attempts and questions table handles for predicates.
func (s *Store) selectAttempts() (*entsql.Selector, *entsql.SelectTable, *entsql.SelectTable) {
	b := s.builder()
	a := b.Table(tableAttempts).As("a")
	q := b.Table(tableQuestions).As("q")

	cols := make([]string, 0, len(attemptColumns)+len(questionColumns))
	for _, c := range attemptColumns {
		cols = append(cols, a.C(c))
	}
	for _, c := range questionColumns {
		cols = append(cols, q.C(c))
	}
	sel := b.Select(cols...).
		From(a).
		Join(q).On(q.C("id"), a.C("question_id"))
	return sel, a, q
}

// AppendAttempt stores rec and returns its id. The question must already
// exist. A zero AttemptedAt is stamped with the current time, and a
// bookmarked attempt always puts the question back in the library.
func (s *Store) AppendAttempt(ctx context.Context, rec attempt.Record) (int64, error) {
	if _, err := s.Question(ctx, rec.QuestionID); err != nil {
		return 0, err
	}
	if rec.AttemptedAt.IsZero() {
		rec.AttemptedAt = time.Now().UTC()
	}
	if rec.Bookmarked {
		rec.ClearedFromLibrary = false
	}
	if rec.SourceMode == "" {
		rec.SourceMode = attempt.ModePractice
	}

	elim := rec.EliminatedOptions
	if elim == nil {
		elim = []int64{}
	}
	elimJSON, err := json.Marshal(elim)
	if err != nil {
		return 0, fmt.Errorf("encode eliminated options: %w", err)
	}

	seq, err := s.seq.Next(ctx)
	if err != nil {
		return 0, err
	}

	var selected any
	if rec.SelectedOptionID != nil {
		selected = *rec.SelectedOptionID
	}

	res, err := s.exec(ctx, s.builder().Insert(tableAttempts).
		Columns("sequence", "user_id", "question_id", "selected_option_id", "is_correct", "is_skipped",
			"time_taken_seconds", "confidence_score", "is_bookmarked", "is_cleared_from_library",
			"eliminated_options", "source_mode", "session_id", "attempted_at").
		Values(seq, rec.UserID, rec.QuestionID, selected,
			boolInt(rec.Correct), boolInt(rec.Skipped),
			rec.TimeTakenSecs, rec.Confidence,
			boolInt(rec.Bookmarked), boolInt(rec.ClearedFromLibrary),
			string(elimJSON), string(rec.SourceMode), rec.SessionID,
			rec.AttemptedAt.UTC().UnixNano()))
	if err != nil {
		return 0, fmt.Errorf("append attempt: %w", err)
	}
	return res.LastInsertId()
}

// SessionAttempts returns every attempt of userID in sessionID, oldest
// first. An empty session id matches nothing.
func (s *Store) SessionAttempts(ctx context.Context, userID, sessionID string) ([]attempt.Record, error) {
	if sessionID == "" {
		return nil, nil
	}
	sel, a, _ := s.selectAttempts()
	sel.Where(entsql.And(
		entsql.EQ(a.C("user_id"), userID),
		entsql.EQ(a.C("session_id"), sessionID),
	)).OrderBy(a.C("attempted_at"), a.C("id"))
	return s.queryAttempts(ctx, sel)
}

// UserAttempts returns the attempts of userID newest first, capped to
// limit when limit is positive.
func (s *Store) UserAttempts(ctx context.Context, userID string, limit int) ([]attempt.Record, error) {
	sel, a, _ := s.selectAttempts()
	sel.Where(entsql.EQ(a.C("user_id"), userID)).
		OrderBy(entsql.Desc(a.C("attempted_at")), entsql.Desc(a.C("id")))
	if limit > 0 {
		sel.Limit(limit)
	}
	return s.queryAttempts(ctx, sel)
}

// Library returns the latest bookmarked attempt of every question the
// user has not cleared from the library, newest first. A non-empty
// subject restricts the result.
func (s *Store) Library(ctx context.Context, userID, subject string) ([]attempt.Record, error) {
	b := s.builder()
	latest := b.Select(entsql.Max("id")).
		From(b.Table(tableAttempts)).
		Where(entsql.And(
			entsql.EQ("user_id", userID),
			entsql.EQ("is_bookmarked", 1),
			entsql.EQ("is_cleared_from_library", 0),
		)).
		GroupBy("question_id")

	sel, a, q := s.selectAttempts()
	sel.Where(entsql.In(a.C("id"), latest))
	if subject != "" {
		sel.Where(entsql.EQ(q.C("subject"), subject))
	}
	sel.OrderBy(entsql.Desc(a.C("attempted_at")), entsql.Desc(a.C("id")))
	return s.queryAttempts(ctx, sel)
}

// ClearFromLibrary hides questionID from the user's library while keeping
// the bookmark on every attempt for reports. It returns the number of
// attempts touched.
func (s *Store) ClearFromLibrary(ctx context.Context, userID string, questionID int64) (int64, error) {
	res, err := s.exec(ctx, s.builder().Update(tableAttempts).
		Set("is_cleared_from_library", 1).
		Where(entsql.And(
			entsql.EQ("user_id", userID),
			entsql.EQ("question_id", questionID),
		)))
	if err != nil {
		return 0, fmt.Errorf("clear question %d from library: %w", questionID, err)
	}
	return res.RowsAffected()
}

// ExamSessionIDs lists the distinct session ids of the user's exam-mode
// attempts on questions of examName.
func (s *Store) ExamSessionIDs(ctx context.Context, userID, examName string) ([]string, error) {
	b := s.builder()
	a := b.Table(tableAttempts).As("a")
	q := b.Table(tableQuestions).As("q")
	sel := b.Select(a.C("session_id")).Distinct().
		From(a).
		Join(q).On(q.C("id"), a.C("question_id")).
		Where(entsql.And(
			entsql.EQ(a.C("user_id"), userID),
			entsql.EQ(a.C("source_mode"), string(attempt.ModeExam)),
			entsql.NEQ(a.C("session_id"), ""),
			entsql.EQ(q.C("exam_name"), examName),
		)).
		OrderBy(a.C("session_id"))

	rows, err := s.query(ctx, sel)
	if err != nil {
		return nil, fmt.Errorf("list exam sessions: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan session id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// SessionMeta returns the latest attempt time of each listed session.
// Unknown ids are left out.
func (s *Store) SessionMeta(ctx context.Context, userID string, sessionIDs []string) ([]history.Meta, error) {
	if len(sessionIDs) == 0 {
		return nil, nil
	}
	ids := make([]any, len(sessionIDs))
	for i, id := range sessionIDs {
		ids[i] = id
	}

	b := s.builder()
	sel := b.Select("session_id", entsql.Max("attempted_at")).
		From(b.Table(tableAttempts)).
		Where(entsql.And(
			entsql.EQ("user_id", userID),
			entsql.In("session_id", ids...),
		)).
		GroupBy("session_id")

	rows, err := s.query(ctx, sel)
	if err != nil {
		return nil, fmt.Errorf("load session meta: %w", err)
	}
	defer rows.Close()

	var out []history.Meta
	for rows.Next() {
		var (
			m  history.Meta
			ts int64
		)
		if err := rows.Scan(&m.SessionID, &ts); err != nil {
			return nil, fmt.Errorf("scan session meta: %w", err)
		}
		m.LatestAt = time.Unix(0, ts).UTC()
		out = append(out, m)
	}
	return out, rows.Err()
}

// queryAttempts runs sel and passes every row through attempt.Normalize.
// Rows that cannot be normalized are dropped.
func (s *Store) queryAttempts(ctx context.Context, sel *entsql.Selector) ([]attempt.Record, error) {
	rows, err := s.query(ctx, sel)
	if err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}
	defer rows.Close()

	var raws []attempt.Raw
	for rows.Next() {
		raw, err := scanAttempt(rows)
		if err != nil {
			return nil, err
		}
		raws = append(raws, raw)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attempts: %w", err)
	}

	records, _ := attempt.NormalizeAll(raws)
	return records, nil
}

func scanAttempt(rows *entsql.Rows) (attempt.Raw, error) {
	var (
		id, questionID                 int64
		userID, elim, mode, sessionID  string
		selected, year                 sql.NullInt64
		correct, skipped, bookmarked   int64
		cleared, secs, conf, attempted int64
		text, subject, pattern         string
		examName, tags                 string
	)
	if err := rows.Scan(&id, &userID, &questionID, &selected, &correct,
		&skipped, &secs, &conf, &bookmarked,
		&cleared, &elim, &mode, &sessionID,
		&attempted, &text, &subject, &pattern, &year, &examName, &tags); err != nil {
		return attempt.Raw{}, fmt.Errorf("scan attempt: %w", err)
	}

	raw := attempt.Raw{
		ID:                   id,
		UserID:               userID,
		QuestionID:           questionID,
		IsCorrect:            correct,
		IsSkipped:            skipped,
		TimeTakenSeconds:     secs,
		ConfidenceScore:      conf,
		IsBookmarked:         bookmarked,
		IsClearedFromLibrary: cleared,
		EliminatedOptions:    elim,
		SourceMode:           mode,
		SessionID:            sessionID,
		AttemptedAt:          time.Unix(0, attempted).UTC(),
		Question: &attempt.RawQuestion{
			Text:     text,
			Subject:  subject,
			Pattern:  pattern,
			ExamName: examName,
			Tags:     tags,
		},
	}
	if selected.Valid {
		raw.SelectedOptionID = selected.Int64
	}
	if year.Valid {
		raw.Question.Year = year.Int64
	}
	return raw, nil
}
