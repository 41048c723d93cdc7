// Package router is the browser's drill-down stack. Home sits at the
// bottom and every screen opened from it is one level deeper.
package router

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/examlens/internal/screen"
)

// OpenMsg opens Screen one level above the active screen.
type OpenMsg struct {
	Screen screen.Screen
}

// BackMsg closes the active screen. Home is never closed.
type BackMsg struct{}

// Open is the command form of OpenMsg.
func Open(s screen.Screen) tea.Cmd {
	return func() tea.Msg { return OpenMsg{Screen: s} }
}

// Back is the command form of BackMsg.
func Back() tea.Msg {
	return BackMsg{}
}

// Router holds the open screens, home first.
type Router struct {
	stack []screen.Screen
}

// New starts a stack at home.
func New(home screen.Screen) *Router {
	return &Router{stack: []screen.Screen{home}}
}

// Active is the screen receiving input.
func (r *Router) Active() screen.Screen {
	return r.stack[len(r.stack)-1]
}

// Depth counts the open screens, home included.
func (r *Router) Depth() int {
	return len(r.stack)
}

// Trail is the path of titles from home to the active screen, used as
// the header title.
func (r *Router) Trail() string {
	titles := make([]string, len(r.stack))
	for i, s := range r.stack {
		titles[i] = s.Title()
	}
	return strings.Join(titles, " › ")
}

// Update handles navigation and forwards everything else to the active
// screen. A screen revealed by Back is resumed when it implements
// screen.Resumer.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case OpenMsg:
		r.stack = append(r.stack, msg.Screen)
		return msg.Screen.Init()
	case BackMsg:
		if len(r.stack) == 1 {
			return nil
		}
		r.stack = r.stack[:len(r.stack)-1]
		if rs, ok := r.Active().(screen.Resumer); ok {
			return rs.Resume()
		}
		return nil
	}

	updated, cmd := r.Active().Update(msg)
	r.stack[len(r.stack)-1] = updated
	return cmd
}

// View renders the active screen.
func (r *Router) View(width, height int) string {
	return r.Active().View(width, height)
}
