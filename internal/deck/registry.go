package deck

import (
	"fmt"
	"strconv"
	"strings"
)

// Attribute names written by the registry.
const (
	AttrOrdinal   = "data-ordinal"
	AttrAriaLabel = "aria-label"
	AttrTabIndex  = "tabindex"
)

// Slide is one registered slide container.
type Slide struct {
	Ordinal int
	Label   string
	Element Element
	Builds  []*BuildItem
	Frames  []*FrameHandle
}

// Number returns the 1-based slide number shown to people.
func (s *Slide) Number() int { return s.Ordinal + 1 }

// Registry holds the slides of a document in presentation order.
type Registry struct {
	slides []*Slide
	index  map[Element]int
}

// BuildRegistry scans doc once and registers its slide containers. Each
// container is labelled, made programmatically focusable and tagged with its
// ordinal. A document without slides yields an empty registry.
//
// Label is the heading text, or "Slide k" without one. The aria-label always
// ends with "Slide k" so assistive technology announces the position.
func BuildRegistry(doc Document) *Registry {
	r := &Registry{index: map[Element]int{}}
	for i, el := range doc.Slides() {
		label, name := slideLabel(doc, el, i)
		s := &Slide{Ordinal: i, Element: el, Label: label}
		el.SetAttr(AttrAriaLabel, name)
		el.SetAttr(AttrTabIndex, "-1")
		el.SetAttr(AttrOrdinal, strconv.Itoa(i))
		r.index[el] = i
		for _, d := range doc.Descendants(el) {
			r.index[d] = i
		}
		for _, f := range doc.Frames(el) {
			s.Frames = append(s.Frames, &FrameHandle{Frame: f})
		}
		r.slides = append(r.slides, s)
	}
	return r
}

// slideLabel returns the display label and the accessible name of slide i.
func slideLabel(doc Document, el Element, i int) (label, name string) {
	pos := fmt.Sprintf("Slide %d", i+1)
	if h, ok := doc.Heading(el); ok {
		if h = strings.Join(strings.Fields(h), " "); h != "" {
			return h, h + " " + pos
		}
	}
	return pos, pos
}

// Len returns the number of slides.
func (r *Registry) Len() int { return len(r.slides) }

// Slide returns the slide at ordinal o, or nil when o is out of range.
func (r *Registry) Slide(o int) *Slide {
	if o < 0 || o >= len(r.slides) {
		return nil
	}
	return r.slides[o]
}

// Slides returns all slides in order.
func (r *Registry) Slides() []*Slide { return r.slides }

// OrdinalOf returns the ordinal of the slide containing el.
func (r *Registry) OrdinalOf(el Element) (int, bool) {
	if el == nil {
		return 0, false
	}
	o, ok := r.index[el]
	return o, ok
}
