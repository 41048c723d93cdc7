// Package screen is the contract between the browser's router and its
// screens.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/examlens/internal/ui/layout"
)

// Screen is one level of the report browser.
type Screen interface {
	// Init starts the screen's first load when it is opened.
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	// View renders the body between header and footer.
	View(width, height int) string
	// Title is the screen's step in the header trail.
	Title() string
}

// KeyHintProvider replaces the footer's default key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Resumer is a screen that reloads when the screen above it closes.
type Resumer interface {
	Resume() tea.Cmd
}
