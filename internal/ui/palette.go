package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
	"github.com/sahilm/fuzzy"
)

// paletteMatch is one slide offered by the go-to palette.
type paletteMatch struct {
	Ordinal int
	Label   string
}

// refreshMatches filters slides by the palette input. A bare number selects
// that slide; anything else is fuzzy-matched against slide labels.
func (m *model) refreshMatches() {
	q := strings.TrimSpace(m.ti.Value())
	slides := m.deck.Registry().Slides()
	m.matches = m.matches[:0]
	if n, err := strconv.Atoi(q); err == nil && n >= 1 && n <= len(slides) {
		m.matches = append(m.matches, paletteMatch{Ordinal: n - 1, Label: slides[n-1].Label})
	}
	if q == "" {
		for _, s := range slides {
			m.matches = append(m.matches, paletteMatch{Ordinal: s.Ordinal, Label: s.Label})
		}
	} else {
		labels := make([]string, len(slides))
		for i, s := range slides {
			labels[i] = s.Label
		}
		for _, r := range fuzzy.Find(q, labels) {
			m.matches = append(m.matches, paletteMatch{Ordinal: r.Index, Label: r.Str})
		}
	}
	if m.sel >= len(m.matches) {
		m.sel = len(m.matches) - 1
	}
	if m.sel < 0 {
		m.sel = 0
	}
}

// renderGotoPalette draws the go-to overlay at the top of the screen.
func renderGotoPalette(width int, input string, matches []paletteMatch, sel, current int) string {
	inner := width - 2
	if inner < 20 {
		inner = 20
	}
	border := BorderStyle()
	hl := lipgloss.NewStyle().Bold(true).Foreground(Vitesse.Primary).Render
	dim := lipgloss.NewStyle().Foreground(Vitesse.Muted).Render

	row := func(b *strings.Builder, s string) {
		if xansi.StringWidth(s) > inner {
			s = xansi.Truncate(s, inner, "…")
		}
		b.WriteString(border.Render("│"))
		b.WriteString(lipgloss.NewStyle().Width(inner).Render(s))
		b.WriteString(border.Render("│") + "\n")
	}

	var b strings.Builder
	b.WriteString(border.Render("╭"+strings.Repeat("─", inner)+"╮") + "\n")
	row(&b, input)

	const maxItems = 10
	start := 0
	if sel >= maxItems {
		start = sel - maxItems + 1
	}
	end := start + maxItems
	if end > len(matches) {
		end = len(matches)
	}
	if len(matches) == 0 {
		row(&b, dim("  no matching slides"))
	}
	for i := start; i < end; i++ {
		mt := matches[i]
		mark := " "
		if mt.Ordinal == current {
			mark = "•"
		}
		line := fmt.Sprintf(" %s %3d  %s", mark, mt.Ordinal+1, mt.Label)
		if i == sel {
			line = hl(line)
		}
		row(&b, line)
	}
	b.WriteString(border.Render("╰"+strings.Repeat("─", inner)+"╯") + "\n")
	b.WriteString(dim("  ↑/↓ select · Enter go · Esc close") + "\n")
	return b.String()
}
