package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone"

	"deckctl/internal/deck"
)

// Zone IDs for the clickable prev/next areas.
const (
	zonePrev = "deck.prev"
	zoneNext = "deck.next"
)

// renderStatusBar draws a single-line status bar at the given width
// with left/right-aligned segments.
func renderStatusBar(width int, left, right []string) string {
	w := width
	if w <= 0 {
		w = 100
	}
	l := strings.Join(left, "")
	r := strings.Join(right, " ")
	lw := xansi.StringWidth(l)
	rw := xansi.StringWidth(r)
	if lw+rw+1 > w {
		maxL := w - rw - 1
		if maxL < 0 {
			maxL = 0
		}
		l = xansi.Truncate(l, maxL, "…")
		lw = xansi.StringWidth(l)
	}
	pad := w - lw - rw
	if pad < 0 {
		pad = 0
	}
	return StatusBarBase().Render(l + strings.Repeat(" ", pad) + r)
}

// renderFilmstrip draws one marker per slide, colored by relative class.
// Long decks show a window around the current slide.
func renderFilmstrip(width int, d *deck.Deck) string {
	n := d.Len()
	if n == 0 {
		return ""
	}
	maxMarks := (width - 4) / 2
	if maxMarks < 5 {
		maxMarks = 5
	}
	start, end := 0, n
	if n > maxMarks {
		start = d.Current() - maxMarks/2
		if start < 0 {
			start = 0
		}
		end = start + maxMarks
		if end > n {
			end = n
			start = end - maxMarks
		}
	}
	var b strings.Builder
	b.WriteString("  ")
	if start > 0 {
		b.WriteString(classStyle(deck.ClassNone).Render("‹ "))
	}
	for o := start; o < end; o++ {
		c := d.ClassOf(o)
		mark := "·"
		switch c {
		case deck.ClassCurrent:
			mark = "●"
		case deck.ClassPast, deck.ClassNext, deck.ClassFarPast, deck.ClassFarNext:
			mark = "○"
		}
		b.WriteString(classStyle(c).Render(mark))
		b.WriteString(" ")
	}
	if end < n {
		b.WriteString(classStyle(deck.ClassNone).Render("›"))
	}
	return b.String()
}

// renderNavButtons draws the clickable prev/next areas.
func renderNavButtons(width int, canPrev, canNext bool) string {
	prev, next := DisabledButton("‹ prev"), DisabledButton("next ›")
	if canPrev {
		prev = Button("‹ prev")
	}
	if canNext {
		next = Button("next ›")
	}
	gap := width - lipgloss.Width(prev) - lipgloss.Width(next) - 4
	if gap < 1 {
		gap = 1
	}
	return "  " + zone.Mark(zonePrev, prev) + strings.Repeat(" ", gap) + zone.Mark(zoneNext, next) + "  "
}
