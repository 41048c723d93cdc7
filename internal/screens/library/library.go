// Package library lists bookmarked questions and lets the user clear them.
package library

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/examlens/internal/attempt"
	"github.com/abhisek/examlens/internal/screen"
	"github.com/abhisek/examlens/internal/ui/layout"
	"github.com/abhisek/examlens/internal/ui/theme"
)

// Source reads and edits the revision library.
type Source interface {
	Library(ctx context.Context, userID, subject string) ([]attempt.Record, error)
	ClearFromLibrary(ctx context.Context, userID string, questionID int64) (int64, error)
}

type loadedMsg struct {
	items []attempt.Record
	err   error
}

// LibraryScreen shows the revision library.
type LibraryScreen struct {
	src      Source
	user     string
	items    []attempt.Record
	selected int
	loaded   bool
	err      error
}

var _ screen.Screen = (*LibraryScreen)(nil)
var _ screen.KeyHintProvider = (*LibraryScreen)(nil)

// New creates a LibraryScreen for user.
func New(src Source, user string) *LibraryScreen {
	return &LibraryScreen{src: src, user: user}
}

func (l *LibraryScreen) Init() tea.Cmd {
	return l.reload(0)
}

// reload clears questionID first when it is non-zero.
func (l *LibraryScreen) reload(questionID int64) tea.Cmd {
	src, user := l.src, l.user
	return func() tea.Msg {
		ctx := context.Background()
		if questionID > 0 {
			if _, err := src.ClearFromLibrary(ctx, user, questionID); err != nil {
				return loadedMsg{err: err}
			}
		}
		items, err := src.Library(ctx, user, "")
		return loadedMsg{items: items, err: err}
	}
}

func (l *LibraryScreen) Title() string {
	return "Revision Library"
}

func (l *LibraryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "d", Description: "Mark revised"},
		{Key: "Esc", Description: "Back"},
	}
}

func (l *LibraryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		l.loaded = true
		l.err = msg.err
		l.items = msg.items
		l.selected = min(l.selected, max(len(l.items)-1, 0))
		return l, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			l.selected = max(l.selected-1, 0)
		case "down", "j":
			l.selected = min(l.selected+1, max(len(l.items)-1, 0))
		case "d":
			if len(l.items) > 0 {
				return l, l.reload(l.items[l.selected].QuestionID)
			}
		}
	}
	return l, nil
}

func (l *LibraryScreen) View(width, height int) string {
	switch {
	case !l.loaded:
		return theme.Hint.Render("Loading library…")
	case l.err != nil:
		return theme.Bad.Render("Could not load library: " + l.err.Error())
	case len(l.items) == 0:
		return theme.Hint.Render("Nothing bookmarked. Bookmark questions while solving to revise them here.")
	}

	// Keep the selection on screen.
	start := 0
	if height > 0 && l.selected >= height {
		start = l.selected - height + 1
	}
	end := min(len(l.items), start+max(height, 1))

	var b strings.Builder
	for i := start; i < end; i++ {
		it := l.items[i]
		text := it.Question.Text
		if limit := width - 30; limit > 10 && len([]rune(text)) > limit {
			text = string([]rune(text)[:limit-1]) + "…"
		}
		line := fmt.Sprintf("%-16s %s", it.Question.Subject, text)
		if i == l.selected {
			b.WriteString(theme.Selected.Render("▸ "+line) + "\n")
		} else {
			b.WriteString(theme.Unselected.Render("  "+line) + "\n")
		}
	}
	return b.String()
}
