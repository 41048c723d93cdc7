package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
)

// Pager scrolls pre-rendered content line by line.
type Pager struct {
	offset int
}

// Update moves the offset for up/down and page keys. height is the
// visible line count.
func (p Pager) Update(msg tea.Msg, content string, height int) Pager {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return p
	}
	maxOffset := max(strings.Count(content, "\n")+1-height, 0)

	switch kmsg.String() {
	case "up", "k":
		p.offset--
	case "down", "j":
		p.offset++
	case "pgup":
		p.offset -= height
	case "pgdown", "space":
		p.offset += height
	case "home", "g":
		p.offset = 0
	case "end", "G":
		p.offset = maxOffset
	}
	p.offset = min(max(p.offset, 0), maxOffset)
	return p
}

// View returns the visible window of content.
func (p Pager) View(content string, height int) string {
	lines := strings.Split(content, "\n")
	start := min(p.offset, len(lines))
	end := min(start+max(height, 0), len(lines))
	return strings.Join(lines[start:end], "\n")
}
