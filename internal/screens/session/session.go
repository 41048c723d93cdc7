// Package session asks for a session id and shows its post-exam report.
package session

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/examlens/internal/history"
	"github.com/abhisek/examlens/internal/report"
	"github.com/abhisek/examlens/internal/screen"
	"github.com/abhisek/examlens/internal/ui/components"
	"github.com/abhisek/examlens/internal/ui/layout"
	"github.com/abhisek/examlens/internal/ui/render"
	"github.com/abhisek/examlens/internal/ui/theme"
)

// Source loads session reports.
type Source interface {
	Session(ctx context.Context, userID, sessionID string, o history.Override) (*report.SessionReport, error)
}

type loadedMsg struct {
	report *report.SessionReport
	err    error
}

// SessionScreen is a two-state screen: entering an id, then reading the
// report.
type SessionScreen struct {
	src     Source
	user    string
	input   components.TextInput
	loading bool
	content string
	pager   components.Pager
	height  int
}

var _ screen.Screen = (*SessionScreen)(nil)
var _ screen.KeyHintProvider = (*SessionScreen)(nil)

// New creates a SessionScreen for user.
func New(src Source, user string) *SessionScreen {
	return &SessionScreen{
		src:   src,
		user:  user,
		input: components.NewTextInput("year_2023_… or subj_Polity_…", 128),
	}
}

func (s *SessionScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *SessionScreen) Title() string {
	return "Session Report"
}

func (s *SessionScreen) KeyHints() []layout.KeyHint {
	if s.content != "" {
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Scroll"},
			{Key: "n", Description: "New lookup"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Open"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SessionScreen) load(id string) tea.Cmd {
	src, user := s.src, s.user
	return func() tea.Msg {
		rep, err := src.Session(context.Background(), user, id, history.Override{})
		return loadedMsg{report: rep, err: err}
	}
}

func (s *SessionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(loadedMsg); ok {
		s.loading = false
		switch {
		case msg.err != nil:
			s.input.SetError(msg.err.Error())
		case !msg.report.Found():
			s.input.SetError("session not found")
		default:
			s.content = render.Session(msg.report)
			s.pager = components.Pager{}
		}
		return s, nil
	}

	if s.content != "" {
		if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "n" {
			s.content = ""
			return s, s.input.Init()
		}
		s.pager = s.pager.Update(msg, s.content, s.height)
		return s, nil
	}

	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "enter" {
		id := s.input.Value()
		if id == "" || s.loading {
			return s, nil
		}
		s.loading = true
		return s, s.load(id)
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *SessionScreen) View(width, height int) string {
	s.height = height
	if s.content != "" {
		return s.pager.View(s.content, height)
	}
	view := theme.Title.Render("Open a session") + "\n\n" + s.input.View()
	if s.loading {
		view += "\n\n" + theme.Hint.Render("Loading…")
	}
	return view
}
