package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/examlens/internal/cutoff"
)

var cutoffValueColumns = []string{"general", "ews", "obc", "sc", "st", "is_official"}

// SaveCutoff inserts or replaces the cutoff for rec's exam and year.
func (s *Store) SaveCutoff(ctx context.Context, rec cutoff.Record) error {
	_, err := s.exec(ctx, s.builder().Insert(tableCutoffs).
		Columns(append([]string{"exam_name", "year"}, cutoffValueColumns...)...).
		Values(rec.ExamName, rec.Year, rec.General, rec.EWS, rec.OBC, rec.SC, rec.ST, boolInt(rec.Official)).
		OnConflict(
			entsql.ConflictColumns("exam_name", "year"),
			entsql.ResolveWith(func(u *entsql.UpdateSet) {
				for _, c := range cutoffValueColumns {
					u.SetExcluded(c)
				}
			}),
		))
	if err != nil {
		return fmt.Errorf("save cutoff %s %d: %w", rec.ExamName, rec.Year, err)
	}
	return nil
}

// Cutoff returns the cutoff for exam and year, or nil when none is stored.
func (s *Store) Cutoff(ctx context.Context, examName string, year int) (*cutoff.Record, error) {
	b := s.builder()
	rows, err := s.query(ctx, b.Select(cutoffValueColumns...).
		From(b.Table(tableCutoffs)).
		Where(entsql.And(
			entsql.EQ("exam_name", examName),
			entsql.EQ("year", year),
		)))
	if err != nil {
		return nil, fmt.Errorf("load cutoff %s %d: %w", examName, year, err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	rec := cutoff.Record{ExamName: examName, Year: year}
	var official int64
	if err := rows.Scan(&rec.General, &rec.EWS, &rec.OBC, &rec.SC, &rec.ST, &official); err != nil {
		return nil, fmt.Errorf("scan cutoff %s %d: %w", examName, year, err)
	}
	rec.Official = official == 1
	return &rec, nil
}
