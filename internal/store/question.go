package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/examlens/internal/attempt"
	"github.com/abhisek/examlens/internal/taxonomy"
)

// SaveQuestion inserts or replaces the question with id. A zero id lets
// the database assign one. It returns the stored id.
func (s *Store) SaveQuestion(ctx context.Context, id int64, q attempt.Question) (int64, error) {
	if q.ExamName == "" {
		q.ExamName = attempt.DefaultExamName
	}
	if q.Pattern == "" {
		q.Pattern = taxonomy.DefaultPattern
	}
	var year any
	if q.Year > 0 {
		year = q.Year
	}
	now := time.Now().UTC().UnixNano()

	if id == 0 {
		res, err := s.exec(ctx, s.builder().Insert(tableQuestions).
			Columns("text", "subject", "pattern", "year", "exam_name", "tags", "created_at").
			Values(q.Text, q.Subject, string(q.Pattern), year, q.ExamName, q.Tags, now))
		if err != nil {
			return 0, fmt.Errorf("insert question: %w", err)
		}
		return res.LastInsertId()
	}

	_, err := s.exec(ctx, s.builder().Insert(tableQuestions).
		Columns("id", "text", "subject", "pattern", "year", "exam_name", "tags", "created_at").
		Values(id, q.Text, q.Subject, string(q.Pattern), year, q.ExamName, q.Tags, now).
		OnConflict(
			entsql.ConflictColumns("id"),
			entsql.ResolveWith(func(u *entsql.UpdateSet) {
				for _, c := range []string{"text", "subject", "pattern", "year", "exam_name", "tags"} {
					u.SetExcluded(c)
				}
			}),
		))
	if err != nil {
		return 0, fmt.Errorf("save question %d: %w", id, err)
	}
	return id, nil
}

// Question returns the question with id, or ErrNotFound.
func (s *Store) Question(ctx context.Context, id int64) (attempt.Question, error) {
	b := s.builder()
	rows, err := s.query(ctx, b.Select(questionColumns...).
		From(b.Table(tableQuestions)).
		Where(entsql.EQ("id", id)))
	if err != nil {
		return attempt.Question{}, fmt.Errorf("load question %d: %w", id, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return attempt.Question{}, fmt.Errorf("load question %d: %w", id, err)
		}
		return attempt.Question{}, fmt.Errorf("question %d: %w", id, ErrNotFound)
	}

	var (
		q       attempt.Question
		pattern string
		year    sql.NullInt64
	)
	if err := rows.Scan(&q.Text, &q.Subject, &pattern, &year, &q.ExamName, &q.Tags); err != nil {
		return attempt.Question{}, fmt.Errorf("scan question %d: %w", id, err)
	}
	q.Pattern = taxonomy.ParsePattern(pattern)
	if year.Valid {
		q.Year = int(year.Int64)
	}
	return q, nil
}
