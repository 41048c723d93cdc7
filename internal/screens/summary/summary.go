// Package summary shows the behavioural dashboard and the weekly trend.
package summary

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/examlens/internal/dashboard"
	"github.com/abhisek/examlens/internal/screen"
	"github.com/abhisek/examlens/internal/ui/components"
	"github.com/abhisek/examlens/internal/ui/layout"
	"github.com/abhisek/examlens/internal/ui/render"
	"github.com/abhisek/examlens/internal/ui/theme"
)

// Source loads the dashboard data.
type Source interface {
	Dashboard(ctx context.Context, userID string) (*dashboard.Report, error)
	Trend(ctx context.Context, userID string) (dashboard.Trend, error)
}

type loadedMsg struct {
	report *dashboard.Report
	trend  dashboard.Trend
	err    error
}

// SummaryScreen displays the dashboard of one user.
type SummaryScreen struct {
	src     Source
	user    string
	content string
	err     error
	loaded  bool
	pager   components.Pager
	height  int
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a SummaryScreen for user.
func New(src Source, user string) *SummaryScreen {
	return &SummaryScreen{src: src, user: user}
}

func (s *SummaryScreen) Init() tea.Cmd {
	src, user := s.src, s.user
	return func() tea.Msg {
		ctx := context.Background()
		rep, err := src.Dashboard(ctx, user)
		if err != nil {
			return loadedMsg{err: err}
		}
		trend, err := src.Trend(ctx, user)
		return loadedMsg{report: rep, trend: trend, err: err}
	}
}

func (s *SummaryScreen) Title() string {
	return "Dashboard"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		s.loaded = true
		s.err = msg.err
		if msg.err == nil {
			var b strings.Builder
			b.WriteString(render.Dashboard(msg.report))
			if !msg.report.NewUser {
				b.WriteString(theme.Section.Render("Last 7 active days") + "\n")
				b.WriteString(render.Trend(msg.trend))
			}
			s.content = b.String()
		}
		return s, nil
	}
	s.pager = s.pager.Update(msg, s.content, s.height)
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	s.height = height
	switch {
	case !s.loaded:
		return theme.Hint.Render("Loading dashboard…")
	case s.err != nil:
		return theme.Bad.Render("Could not load dashboard: " + s.err.Error())
	}
	return s.pager.View(s.content, height)
}
