package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// teaScheduler implements deck.Scheduler on top of Bubble Tea ticks so every
// deferred engine task runs inside Update, on the program's event loop.
type teaScheduler struct {
	pending []tea.Cmd
}

func (s *teaScheduler) AfterFunc(d time.Duration, f func()) {
	s.pending = append(s.pending, tea.Tick(d, func(time.Time) tea.Msg { return taskMsg{run: f} }))
}

// drain returns the ticks scheduled since the last call.
func (s *teaScheduler) drain() tea.Cmd {
	if len(s.pending) == 0 {
		return nil
	}
	cmds := s.pending
	s.pending = nil
	return tea.Batch(cmds...)
}
