package importer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/abhisek/examlens/internal/attempt"
	"github.com/abhisek/examlens/internal/cutoff"
	"github.com/abhisek/examlens/internal/history"
	"github.com/abhisek/examlens/internal/taxonomy"
)

// Writer is the subset of the store an import writes through.
type Writer interface {
	SaveQuestion(ctx context.Context, id int64, q attempt.Question) (int64, error)
	SaveCutoff(ctx context.Context, rec cutoff.Record) error
	AppendAttempt(ctx context.Context, rec attempt.Record) (int64, error)
}

// Result counts what an import wrote. Rejected holds one error per attempt
// that was skipped.
type Result struct {
	Questions int
	Cutoffs   int
	Sessions  []string
	Attempts  int
	Rejected  []error
}

// Importer writes decoded bundles.
type Importer struct {
	w      Writer
	logger *slog.Logger
}

// New returns an Importer writing to w.
func New(w Writer, logger *slog.Logger) *Importer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Importer{w: w, logger: logger}
}

// Import writes questions and cutoffs first so attempts can reference
// them. A catalogue write failure aborts the import; a bad attempt is
// recorded in Result.Rejected and skipped.
func (im *Importer) Import(ctx context.Context, b *Bundle) (*Result, error) {
	res := &Result{}
	for _, q := range b.Questions {
		if _, err := im.w.SaveQuestion(ctx, q.ID, q.record()); err != nil {
			return res, err
		}
		res.Questions++
	}
	for _, c := range b.Cutoffs {
		if err := im.w.SaveCutoff(ctx, c.record()); err != nil {
			return res, err
		}
		res.Cutoffs++
	}

	for i, s := range b.Sessions {
		id := history.NewSessionID(s.prefix())
		for j, raw := range s.Attempts {
			raw.SessionID = id
			if err := im.append(ctx, raw); err != nil {
				res.Rejected = append(res.Rejected, fmt.Errorf("session %d attempt %d: %w", i, j, err))
				continue
			}
			res.Attempts++
		}
		res.Sessions = append(res.Sessions, id)
	}
	for i, raw := range b.Attempts {
		if err := im.append(ctx, raw); err != nil {
			res.Rejected = append(res.Rejected, fmt.Errorf("attempt %d: %w", i, err))
			continue
		}
		res.Attempts++
	}

	im.logger.Info("import finished",
		slog.Int("questions", res.Questions),
		slog.Int("cutoffs", res.Cutoffs),
		slog.Int("sessions", len(res.Sessions)),
		slog.Int("attempts", res.Attempts),
		slog.Int("rejected", len(res.Rejected)))
	return res, nil
}

func (im *Importer) append(ctx context.Context, raw attempt.Raw) error {
	rec, err := attempt.Normalize(raw)
	if err != nil {
		return err
	}
	_, err = im.w.AppendAttempt(ctx, rec)
	return err
}

func (q Question) record() attempt.Question {
	return attempt.Question{
		Text:     q.Text,
		Subject:  q.Subject,
		Pattern:  taxonomy.ParsePattern(q.Pattern),
		Year:     q.Year,
		ExamName: q.ExamName,
		Tags:     q.Tags,
	}
}

func (c Cutoff) record() cutoff.Record {
	official := true
	if c.Official != nil {
		official = *c.Official
	}
	return cutoff.Record{
		ExamName: c.ExamName,
		Year:     c.Year,
		General:  c.General,
		EWS:      c.EWS,
		OBC:      c.OBC,
		SC:       c.SC,
		ST:       c.ST,
		Official: official,
	}
}

func (s Session) prefix() string {
	switch {
	case s.Year > 0:
		return history.YearPrefix(s.Year)
	case s.Subject != "":
		return history.SubjectPrefix(s.Subject)
	}
	return ""
}
