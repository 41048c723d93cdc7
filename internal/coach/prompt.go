package coach

import (
	"fmt"
	"strings"

	"github.com/abhisek/examlens/internal/dashboard"
	"github.com/abhisek/examlens/internal/taxonomy"
)

const planSystemPrompt = `You are a strict but supportive coach for civil services preliminary exam aspirants. You turn practice metrics into a short, concrete study plan. Negative marking applies: +2 for a correct answer, -0.66 for a wrong one.`

func buildPlanUserMessage(r *dashboard.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Attempts analysed: %d\n", r.Attempts)
	fmt.Fprintf(&b, "Accuracy (recent): %.1f%%\n", r.Accuracy)
	fmt.Fprintf(&b, "Streak: %d days\n", r.Streak)
	fmt.Fprintf(&b, "Weakest subject: %s\n", r.WeakSubject)
	fmt.Fprintf(&b, "Coach verdict: %s - %s\n", r.Coach.Title, r.Coach.Message)

	b.WriteString("\nPattern accuracy:\n")
	for _, c := range taxonomy.Categories() {
		fmt.Fprintf(&b, "- %s: %.0f%%\n", c, r.Radar.Score(c))
	}

	fmt.Fprintf(&b, "\nEra gap: %s\n", r.DeepMetrics.EraGap)
	fmt.Fprintf(&b, "Sniper efficiency: %.1f%%\n", r.DeepMetrics.SniperEfficiency)
	fmt.Fprintf(&b, "Rush accuracy: %.1f%%\n", r.DeepMetrics.RushAccuracy)
	fmt.Fprintf(&b, "Time lost on skipped questions: %.1f min\n", r.Insights.WastedTimeMins)
	fmt.Fprintf(&b, "Guess accuracy (low confidence): %.1f%%\n", r.Insights.GuessAccuracy)
	fmt.Fprintf(&b, "Confident wrong answers: %d\n", r.Insights.DangerousErrors)

	b.WriteString(`
Instructions:
1. Keep the coach verdict as given. Do not contradict it.
2. Pick at most three focus areas, weakest first. Each needs one concrete action.
3. The daily drill must fit in 45 minutes.
4. Plain text only. No markdown.`)

	return b.String()
}
