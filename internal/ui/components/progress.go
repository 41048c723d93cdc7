package components

import (
	"fmt"
	"strings"

	"github.com/abhisek/examlens/internal/ui/theme"
)

// Bar renders a percentage (0-100) as a fixed-width block bar followed
// by the rounded value.
func Bar(percent float64, width int) string {
	if width < 4 {
		width = 4
	}
	filled := int(float64(width) * percent / 100)
	filled = min(max(filled, 0), width)

	return theme.BarFilled.Render(strings.Repeat("█", filled)) +
		theme.BarEmpty.Render(strings.Repeat("░", width-filled)) +
		theme.Hint.Render(fmt.Sprintf(" %3.0f%%", percent))
}
