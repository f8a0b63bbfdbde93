package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	appver "deckctl/internal/version"
)

// chromeHeight is the number of lines drawn around the slide viewport.
const chromeHeight = 7

func (m model) View() string {
	if m.quitting {
		return ""
	}
	b := &strings.Builder{}

	// title line
	title := "deckctl"
	if s := m.deck.CurrentSlide(); s != nil {
		title = s.Label
	}
	titleStyled := lipgloss.NewStyle().Bold(true).Foreground(Vitesse.Primary).Render("  " + title)
	right := ""
	if n := m.deck.Builds().Pending(m.deck.Current()); n > 0 {
		right = lipgloss.NewStyle().Foreground(Vitesse.Yellow).Render(fmt.Sprintf("%d to build  ", n))
	}
	gap := m.width - lipgloss.Width(titleStyled) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	b.WriteString(titleStyled + strings.Repeat(" ", gap) + right + "\n")
	b.WriteString(renderFilmstrip(m.width, m.deck) + "\n")

	// body: palette overlay or slide
	if m.paletteOpen {
		p := renderGotoPalette(m.width, m.ti.View(), m.matches, m.sel, m.deck.Current())
		b.WriteString(p)
		if pad := m.vp.Height - lipgloss.Height(p) + 1; pad > 0 {
			b.WriteString(strings.Repeat("\n", pad))
		}
	} else {
		b.WriteString(m.vp.View() + "\n")
	}

	cur, n := m.deck.Current(), m.deck.Len()
	b.WriteString(renderNavButtons(m.width, cur > 0, cur < n-1 || m.deck.Builds().HasPending(cur)) + "\n")
	b.WriteString("  " + m.prog.ViewAs(m.progressPercent()) + "\n")
	b.WriteString(m.renderStatusBarLine() + "\n")
	if m.showHelp {
		b.WriteString(m.help.FullHelpView(m.keys.FullHelp()))
	} else {
		b.WriteString(m.help.ShortHelpView(m.keys.ShortHelp()))
	}
	return zone.Scan(b.String())
}

func (m model) progressPercent() float64 {
	n := m.deck.Len()
	if n <= 1 {
		return 1
	}
	return float64(m.deck.Current()) / float64(n-1)
}

// renderStatusBarLine builds the status bar: position chip, notice or file
// name on the left; fragment, frame state and version on the right.
func (m model) renderStatusBarLine() string {
	left := []string{ChipKeyStyle().Render(m.positionLabel()), " "}
	switch {
	case m.notice != "":
		left = append(left, m.notice)
	case m.opts.Path != "":
		left = append(left, m.opts.Path)
	}
	right := []string{m.Fragment()}
	if m.deck.Frames().Loaded(m.deck.Current()) {
		right = append(right, ChipStyle(Vitesse.Cyan).Render("frames"))
	}
	right = append(right, ChipStyle(Vitesse.Blue).Render("v"+appver.AppVersion))
	return renderStatusBar(m.width, left, right)
}
