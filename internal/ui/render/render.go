// Package render formats reports as styled terminal text. The CLI prints
// these directly and the browser screens embed them.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/abhisek/examlens/internal/coach"
	"github.com/abhisek/examlens/internal/cutoff"
	"github.com/abhisek/examlens/internal/dashboard"
	"github.com/abhisek/examlens/internal/report"
	"github.com/abhisek/examlens/internal/session"
	"github.com/abhisek/examlens/internal/taxonomy"
	"github.com/abhisek/examlens/internal/ui/components"
	"github.com/abhisek/examlens/internal/ui/theme"
)

const barWidth = 20

func row(label, value string) string {
	return theme.Label.Render(label) + theme.Body.Render(value) + "\n"
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Dashboard renders the behavioural dashboard.
func Dashboard(r *dashboard.Report) string {
	var b strings.Builder

	b.WriteString(theme.Verdict.Render(
		theme.Title.Render(r.Coach.Title)+"\n"+theme.Body.Render(r.Coach.Message)) + "\n")

	if r.NewUser {
		return b.String()
	}

	b.WriteString(theme.Section.Render("Overview") + "\n")
	b.WriteString(row("Attempts", strconv.Itoa(r.Attempts)))
	b.WriteString(row("Accuracy", num(r.Accuracy)+"%"))
	b.WriteString(row("Streak", fmt.Sprintf("%d days", r.Streak)))
	b.WriteString(row("Weak subject", r.WeakSubject))

	b.WriteString(theme.Section.Render("Pattern radar") + "\n")
	for _, c := range taxonomy.Categories() {
		b.WriteString(theme.Label.Render(string(c)) + components.Bar(r.Radar.Score(c), barWidth) + "\n")
	}

	b.WriteString(theme.Section.Render("Deep metrics") + "\n")
	b.WriteString(row("Era gap", r.DeepMetrics.EraGap))
	b.WriteString(row("Sniper efficiency", num(r.DeepMetrics.SniperEfficiency)+"%"))
	b.WriteString(row("Rush accuracy", num(r.DeepMetrics.RushAccuracy)+"%"))

	b.WriteString(theme.Section.Render("Habits") + "\n")
	b.WriteString(row("Time lost on skips", num(r.Insights.WastedTimeMins)+" min"))
	b.WriteString(row("Guess accuracy", num(r.Insights.GuessAccuracy)+"%"))
	b.WriteString(row("Confident errors", strconv.Itoa(r.Insights.DangerousErrors)))
	b.WriteString(row("Needless doubts", strconv.Itoa(r.Insights.UnnecessaryDoubts)))

	return b.String()
}

// Trend renders per-day logic and precision accuracy, oldest first.
func Trend(t dashboard.Trend) string {
	if len(t.Dates) == 0 {
		return theme.Hint.Render("No activity yet.") + "\n"
	}
	var b strings.Builder
	b.WriteString(theme.Label.Render("Day") +
		theme.Label.Render("Logic") + theme.Body.Render("Precision") + "\n")
	for i, d := range t.Dates {
		b.WriteString(theme.Label.Render(d) +
			theme.Label.Render(num(t.Logic[i])+"%") +
			theme.Body.Render(num(t.Precision[i])+"%") + "\n")
	}
	return b.String()
}

// Session renders a post-exam report. A not-found report renders as a
// single line.
func Session(r *report.SessionReport) string {
	if !r.Found() {
		return theme.Bad.Render(fmt.Sprintf("Session %q not found.", r.SessionID)) + "\n"
	}

	var b strings.Builder
	sc := r.ScoreCard

	b.WriteString(theme.Title.Render("Session "+r.SessionID) + "\n")
	if r.Context != nil && r.Context.ExamName != "" {
		b.WriteString(theme.Hint.Render(contextLine(r)) + "\n")
	}

	b.WriteString(theme.Section.Render("Score") + "\n")
	b.WriteString(row("Score", num(sc.ActualScore)))
	b.WriteString(row("Potential", num(sc.PotentialScore)))
	b.WriteString(theme.Label.Render("Lost to silly errors") + theme.Bad.Render(num(sc.LostMarks)) + "\n")
	b.WriteString(row("Accuracy", num(sc.Accuracy)+"%"))
	b.WriteString(row("Correct / wrong / skip", fmt.Sprintf("%d / %d / %d", sc.Correct, sc.Wrong, sc.Skipped)))

	if r.Cutoff != nil {
		b.WriteString(theme.Section.Render("Cutoff") + "\n")
		msg := r.Cutoff.Message
		switch r.Cutoff.Status {
		case cutoff.StatusCleared:
			msg = theme.Good.Render(msg)
		case cutoff.StatusFailed:
			msg = theme.Bad.Render(msg)
		default:
			msg = theme.Hint.Render(msg)
		}
		b.WriteString(theme.Label.Render(r.Cutoff.Status) + msg + "\n")
	}

	b.WriteString(theme.Section.Render("Time quadrants") + "\n")
	q := r.Quadrants
	b.WriteString(row("Sniper (<40s, right)", strconv.Itoa(len(q.Sniper))))
	b.WriteString(row("Optimal (right)", strconv.Itoa(len(q.Optimal))))
	b.WriteString(row("Rush (<20s, wrong)", strconv.Itoa(len(q.Rush))))
	b.WriteString(row("Trap (>60s, wrong)", strconv.Itoa(len(q.Trap))))

	if len(r.Heatmap) > 0 {
		b.WriteString(theme.Section.Render("Subjects") + "\n")
		for _, h := range r.Heatmap {
			b.WriteString(theme.Label.Render(h.Subject) +
				components.Bar(h.Accuracy, barWidth) + "  " +
				theme.Signed(h.NetMarks).Render(fmt.Sprintf("%+.2f", h.NetMarks)) + "\n")
		}
	}

	b.WriteString(theme.Section.Render("Confidence") + "\n")
	b.WriteString(confidenceMatrix(r.ConfidenceMatrix))

	if len(r.History) > 0 {
		b.WriteString(theme.Section.Render("Previous attempts") + "\n")
		for _, e := range r.History {
			b.WriteString(row(e.DateLabel, fmt.Sprintf("%s  %d/%d  %s%%", num(e.Score), e.Correct, e.Total, num(e.Accuracy))))
		}
	}

	if r.Growth != nil && r.Growth.HasHistory {
		g := r.Growth.Counts
		b.WriteString(theme.Section.Render("Growth vs "+r.Growth.Baseline) + "\n")
		b.WriteString(theme.Label.Render("Fixed") + theme.Good.Render(strconv.Itoa(g.RetentionFix)) + "\n")
		b.WriteString(theme.Label.Render("Slipped") + theme.Bad.Render(strconv.Itoa(g.FalsePositive)) + "\n")
		b.WriteString(row("Still right", strconv.Itoa(g.StableCorrect)))
		b.WriteString(row("Still wrong", strconv.Itoa(g.PersistentError)))
	}

	return b.String()
}

func contextLine(r *report.SessionReport) string {
	parts := []string{r.Context.ExamName}
	if r.Context.Year > 0 {
		parts = append(parts, strconv.Itoa(r.Context.Year))
	}
	if r.Context.Subject != "" {
		parts = append(parts, r.Context.Subject)
	}
	return strings.Join(parts, " · ")
}

func confidenceMatrix(m session.ConfidenceMatrix) string {
	var b strings.Builder
	for _, bucket := range session.ConfidenceBuckets {
		t := m[bucket]
		b.WriteString(theme.Label.Render(fmt.Sprintf("%d%%", bucket)) +
			theme.Good.Render(fmt.Sprintf("%3d", t.Correct)) + " right  " +
			theme.Bad.Render(fmt.Sprintf("%3d", t.Wrong)) + " wrong\n")
	}
	return b.String()
}

// Plan renders a generated study plan.
func Plan(p *coach.Plan) string {
	var b strings.Builder
	b.WriteString(theme.Verdict.Render(theme.Title.Render(p.Verdict.Title)) + "\n\n")
	b.WriteString(theme.Body.Bold(true).Render(p.Headline) + "\n")

	b.WriteString(theme.Section.Render("Focus") + "\n")
	for i, f := range p.FocusAreas {
		b.WriteString(fmt.Sprintf("%d. %s  %s\n", i+1, theme.Warn.Render(f.Area), theme.Body.Render(f.Action)))
	}

	b.WriteString(theme.Section.Render("Daily drill") + "\n")
	for _, d := range p.DailyDrill {
		b.WriteString("• " + theme.Body.Render(d) + "\n")
	}
	b.WriteString("\n" + theme.Hint.Render("Generated by "+p.Model) + "\n")
	return b.String()
}
