// Package home is the browser's landing screen.
package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/examlens/internal/router"
	"github.com/abhisek/examlens/internal/screen"
	"github.com/abhisek/examlens/internal/screens/library"
	sessionscreen "github.com/abhisek/examlens/internal/screens/session"
	"github.com/abhisek/examlens/internal/screens/summary"
	"github.com/abhisek/examlens/internal/ui/components"
	"github.com/abhisek/examlens/internal/ui/theme"
)

// Source is everything the screens reachable from home read.
type Source interface {
	summary.Source
	sessionscreen.Source
	library.Source
}

// StatusMsg is what home shows next to its menu. The app also reads the
// streak from it for the header.
type StatusMsg struct {
	Streak    int
	Bookmarks int
	Err       error
}

const libraryItem = 2

// HomeScreen is the main menu.
type HomeScreen struct {
	menu   components.Menu
	src    Source
	user   string
	status StatusMsg
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.Resumer = (*HomeScreen)(nil)

// New creates a HomeScreen for user. Screens are built fresh on every
// visit so their data is reloaded.
func New(src Source, user string) *HomeScreen {
	items := []components.MenuItem{
		{Label: "Dashboard", Hint: "verdict, radar and habits", Action: func() tea.Cmd {
			return router.Open(summary.New(src, user))
		}},
		{Label: "Session report", Hint: "score, quadrants and cutoff", Action: func() tea.Cmd {
			return router.Open(sessionscreen.New(src, user))
		}},
		{Label: "Revision library", Hint: "bookmarked questions", Action: func() tea.Cmd {
			return router.Open(library.New(src, user))
		}},
		{Label: "Quit", Action: func() tea.Cmd { return tea.Quit }},
	}
	return &HomeScreen{menu: components.NewMenu(items), src: src, user: user}
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.loadStatus()
}

// Resume reloads the status; the library may have been cleared.
func (h *HomeScreen) Resume() tea.Cmd {
	return h.loadStatus()
}

func (h *HomeScreen) loadStatus() tea.Cmd {
	src, user := h.src, h.user
	return func() tea.Msg {
		ctx := context.Background()
		rep, err := src.Dashboard(ctx, user)
		if err != nil {
			return StatusMsg{Err: err}
		}
		items, err := src.Library(ctx, user, "")
		return StatusMsg{Streak: rep.Streak, Bookmarks: len(items), Err: err}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if st, ok := msg.(StatusMsg); ok {
		h.status = st
		if st.Err == nil {
			h.menu.Items[libraryItem].Hint = fmt.Sprintf("%d bookmarked", st.Bookmarks)
		}
		return h, nil
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString(RenderBanner(width) + "\n")
	b.WriteString(theme.Hint.Render("Practice analytics for "+h.user) + "\n\n")
	b.WriteString(h.menu.View())
	if h.status.Err != nil {
		b.WriteString("\n" + theme.Hint.Render("status unavailable: "+h.status.Err.Error()))
	}
	return theme.Card.Width(min(width, 80)).Render(b.String())
}

func (h *HomeScreen) Title() string {
	return "Home"
}
