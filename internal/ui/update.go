package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"deckctl/internal/deck"
	"deckctl/internal/system"
)

// Terminal cells are converted to approximate device pixels so the touch
// sensitivity threshold keeps its meaning for mouse drags.
const (
	cellPxW = 8
	cellPxH = 16
)

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	gen, cur := m.deck.Generation(), m.deck.Current()
	pending := m.deck.Builds().Pending(cur)

	var cmd tea.Cmd
	m, cmd = m.update(msg)

	// re-render when the engine changed what is on screen
	if m.deck.Generation() != gen || m.deck.Current() != cur || m.deck.Builds().Pending(m.deck.Current()) != pending {
		m.refreshContent()
	}
	return m, tea.Batch(cmd, m.sched.drain())
}

func (m model) update(msg tea.Msg) (model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.vp.Width = msg.Width
		m.vp.Height = maxInt(3, msg.Height-chromeHeight)
		m.prog.Width = maxInt(10, msg.Width-4)
		m.help.Width = msg.Width
		m.refreshContent()
		return m, nil
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) && (msg.String() == "ctrl+c" || !m.paletteOpen) {
			m.quitting = true
			m.closeWatch()
			return m, tea.Quit
		}
		if m.paletteOpen {
			return m.updatePalette(msg)
		}
		switch {
		case key.Matches(msg, m.keys.Goto):
			m.paletteOpen = true
			m.ti.SetValue("")
			m.sel = 0
			m.refreshMatches()
			cmd := m.ti.Focus()
			return m, cmd
		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
			return m, nil
		case key.Matches(msg, m.keys.First):
			m.deck.GoTo(0)
			return m, nil
		case key.Matches(msg, m.keys.Last):
			m.deck.GoTo(m.deck.Len() - 1)
			return m, nil
		case key.Matches(msg, m.keys.Reload):
			return m, reloadCmd(m.opts.Path)
		}
		if m.input.Key(deck.KeyEvent{Key: deck.KeyFromName(msg.String())}) {
			m.notice = ""
			return m, nil
		}
		// unbound keys scroll long slides
		var cmd tea.Cmd
		m.vp, cmd = m.vp.Update(msg)
		return m, cmd
	case taskMsg:
		msg.run()
		return m, nil
	case noticeMsg:
		m.notice = string(msg)
		return m, nil
	case watchStartedMsg:
		m.closeWatch()
		m.watchCh, m.stopWatch = msg.ch, msg.stop
		return m, watchSubscribeCmd(m.watchCh)
	case fileChangedMsg:
		return m, tea.Batch(reloadCmd(m.opts.Path), watchSubscribeCmd(m.watchCh))
	case reloadMsg:
		if msg.err != nil {
			m.notice = fmt.Sprintf("reload failed: %v", msg.err)
			system.Logger.Warn("reload failed", "err", msg.err)
			return m, nil
		}
		m.load(msg.doc)
		m.notice = "reloaded"
		return m, nil
	}
	return m, nil
}

func (m model) updatePalette(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.paletteOpen = false
		m.ti.Blur()
		return m, nil
	case "up":
		if m.sel > 0 {
			m.sel--
		}
		return m, nil
	case "down":
		if m.sel < len(m.matches)-1 {
			m.sel++
		}
		return m, nil
	case "enter":
		m.paletteOpen = false
		m.ti.Blur()
		if m.sel < len(m.matches) {
			m.deck.GoTo(m.matches[m.sel].Ordinal)
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	m.refreshMatches()
	return m, cmd
}

// handleMouse maps left-button drags onto the gesture recognizer and clicks
// on the prev/next areas onto dispatcher clicks. The wheel scrolls the slide.
func (m model) handleMouse(msg tea.MouseMsg) (model, tea.Cmd) {
	pt := []deck.Point{{X: float64(msg.X * cellPxW), Y: float64(msg.Y * cellPxH)}}
	switch {
	case msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown:
		var cmd tea.Cmd
		m.vp, cmd = m.vp.Update(msg)
		return m, cmd
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.dragging = true
		m.input.TouchStart(pt)
	case msg.Action == tea.MouseActionMotion && m.dragging:
		m.input.TouchMove(pt)
	case msg.Action == tea.MouseActionRelease && m.dragging:
		m.dragging = false
		if c := m.input.TouchEnd(); c != deck.CommandNone {
			return m, nil
		}
		switch {
		case zone.Get(zonePrev).InBounds(msg):
			m.input.Click(deck.TargetPrev)
		case zone.Get(zoneNext).InBounds(msg):
			m.input.Click(deck.TargetNext)
		}
	}
	return m, nil
}

// helper used locally for layout
func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
