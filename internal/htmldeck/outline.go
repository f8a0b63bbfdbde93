package htmldeck

import (
	"fmt"

	"deckctl/internal/deck"
)

// OutlineEntry summarizes one slide.
type OutlineEntry struct {
	Number     int      `json:"number"`
	Label      string   `json:"label"`
	HasHeading bool     `json:"hasHeading"`
	Builds     int      `json:"builds"`
	Frames     []string `json:"frames,omitempty"`
}

// Report is the result of checking a deck.
type Report struct {
	Path     string         `json:"path"`
	Slides   []OutlineEntry `json:"slides"`
	Errors   []string       `json:"errors,omitempty"`
	Warnings []string       `json:"warnings,omitempty"`
}

// Outline registers the slides of doc and summarizes them. It reads frame
// sources before any engine blanks them, so call it on a fresh document.
func Outline(doc *Document) []OutlineEntry {
	reg := deck.BuildRegistry(doc)
	out := make([]OutlineEntry, 0, reg.Len())
	for _, s := range reg.Slides() {
		_, hasHeading := doc.Heading(s.Element)
		e := OutlineEntry{
			Number:     s.Number(),
			Label:      s.Label,
			HasHeading: hasHeading,
			Builds:     len(doc.BuildItems(s.Element)),
		}
		for _, f := range s.Frames {
			e.Frames = append(e.Frames, f.Frame.Src())
		}
		out = append(out, e)
	}
	return out
}

// Check outlines doc and reports problems a presenter would hit.
func Check(doc *Document) Report {
	rep := Report{Path: doc.Path, Slides: Outline(doc)}
	if len(rep.Slides) == 0 {
		rep.Errors = append(rep.Errors, deck.ErrNoSlides.Error())
		return rep
	}
	for _, s := range rep.Slides {
		if !s.HasHeading {
			rep.Warnings = append(rep.Warnings, fmt.Sprintf("slide %d has no heading; labelled %q", s.Number, s.Label))
		}
		for _, src := range s.Frames {
			if src == "" || src == deck.DefaultBlankSrc {
				rep.Warnings = append(rep.Warnings, fmt.Sprintf("slide %d has a frame without a source", s.Number))
			}
		}
	}
	return rep
}
