package layout

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
	"github.com/stretchr/testify/assert"
)

func TestRenderHeader(t *testing.T) {
	h := RenderHeader("Dashboard", "aspirant-7", 4, 90)
	assert.Contains(t, h, "ExamLens")
	assert.Contains(t, h, "Dashboard")
	assert.Contains(t, h, "aspirant-7")
	assert.Contains(t, h, "🔥 4")
	assert.Equal(t, 3, lipgloss.Height(h))
}

func TestRenderFrame_FillsHeight(t *testing.T) {
	header := RenderHeader("Home", "u", 0, 80)
	footer := RenderFooter([]KeyHint{{Key: "Esc", Description: "Back"}}, 80)
	frame := RenderFrame(header, strings.Repeat("line\n", 100), footer, 80, 24)
	assert.Equal(t, 24, lipgloss.Height(frame))
}

func TestIsTooSmall(t *testing.T) {
	assert.True(t, IsTooSmall(MinWidth-1, MinHeight))
	assert.True(t, IsTooSmall(MinWidth, MinHeight-1))
	assert.False(t, IsTooSmall(MinWidth, MinHeight))
	assert.Contains(t, RenderMinSizeMessage(40, 10), "Terminal too small")
}
