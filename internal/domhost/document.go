//go:build js && wasm

// Package domhost runs a deck against the live browser DOM through
// syscall/js.
package domhost

import (
	"strings"
	"syscall/js"
	"time"

	"deckctl/internal/deck"
)

// idProp is the JS property holding an element's cache id.
const idProp = "__deckctlID"

// Document adapts the browser document to deck.Document. js.Value is not
// comparable, so every element is wrapped once and found again through
// idProp.
type Document struct {
	doc   js.Value
	elems []*Element
}

var _ deck.Document = (*Document)(nil)

// Element wraps a DOM element. It implements deck.Element and deck.Frame.
type Element struct {
	v js.Value
}

var (
	_ deck.Element = (*Element)(nil)
	_ deck.Frame   = (*Element)(nil)
)

// NewDocument wraps js document.
func NewDocument(doc js.Value) *Document { return &Document{doc: doc} }

// Value returns the underlying DOM node.
func (e *Element) Value() js.Value { return e.v }

// wrap returns the cached wrapper of v, creating it on first sight.
func (d *Document) wrap(v js.Value) *Element {
	if e := d.lookup(v); e != nil {
		return e
	}
	e := &Element{v: v}
	v.Set(idProp, len(d.elems))
	d.elems = append(d.elems, e)
	return e
}

// lookup returns the wrapper of v, or nil when v was never wrapped.
func (d *Document) lookup(v js.Value) *Element {
	if v.IsUndefined() || v.IsNull() {
		return nil
	}
	id := v.Get(idProp)
	if id.Type() != js.TypeNumber {
		return nil
	}
	if i := id.Int(); i >= 0 && i < len(d.elems) {
		return d.elems[i]
	}
	return nil
}

func (d *Document) all(root js.Value, selector string) []js.Value {
	list := root.Call("querySelectorAll", selector)
	n := list.Length()
	out := make([]js.Value, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, list.Index(i))
	}
	return out
}

func (d *Document) node(el deck.Element) js.Value {
	if e, ok := el.(*Element); ok && e != nil {
		return e.v
	}
	return js.Undefined()
}

// Slides implements deck.Document.
func (d *Document) Slides() []deck.Element {
	var out []deck.Element
	for _, v := range d.all(d.doc, "section.slides > article") {
		out = append(out, d.wrap(v))
	}
	return out
}

// Heading implements deck.Document.
func (d *Document) Heading(slide deck.Element) (string, bool) {
	h := d.node(slide).Call("querySelector", "h1, h2, h3, h4, h5, h6")
	if h.IsNull() {
		return "", false
	}
	t := strings.Join(strings.Fields(h.Get("textContent").String()), " ")
	return t, t != ""
}

// Descendants implements deck.Document.
func (d *Document) Descendants(slide deck.Element) []deck.Element {
	var out []deck.Element
	for _, v := range d.all(d.node(slide), "*") {
		out = append(out, d.wrap(v))
	}
	return out
}

// BuildItems implements deck.Document.
func (d *Document) BuildItems(slide deck.Element) []deck.Element {
	var out []deck.Element
	for _, v := range d.all(d.node(slide), ".build > *") {
		out = append(out, d.wrap(v))
	}
	return out
}

// Frames implements deck.Document.
func (d *Document) Frames(slide deck.Element) []deck.Frame {
	var out []deck.Frame
	for _, v := range d.all(d.node(slide), "iframe") {
		out = append(out, d.wrap(v))
	}
	return out
}

// Focus implements deck.Document. The browser fires focus listeners before
// focus() returns.
func (d *Document) Focus(el deck.Element) {
	if v := d.node(el); !v.IsUndefined() {
		v.Call("focus")
	}
}

// Attr implements deck.Element.
func (e *Element) Attr(name string) (string, bool) {
	if !e.v.Call("hasAttribute", name).Bool() {
		return "", false
	}
	return e.v.Call("getAttribute", name).String(), true
}

// SetAttr implements deck.Element.
func (e *Element) SetAttr(name, value string) { e.v.Call("setAttribute", name, value) }

// RemoveAttr implements deck.Element.
func (e *Element) RemoveAttr(name string) { e.v.Call("removeAttribute", name) }

// HasClass implements deck.Element.
func (e *Element) HasClass(name string) bool {
	return e.v.Get("classList").Call("contains", name).Bool()
}

// AddClass implements deck.Element.
func (e *Element) AddClass(name string) { e.v.Get("classList").Call("add", name) }

// RemoveClass implements deck.Element.
func (e *Element) RemoveClass(name string) { e.v.Get("classList").Call("remove", name) }

// Src implements deck.Frame.
func (e *Element) Src() string {
	s, _ := e.Attr("src")
	return s
}

// SetSrc implements deck.Frame.
func (e *Element) SetSrc(src string) { e.SetAttr("src", src) }

// Location adapts window.location.
type Location struct {
	v js.Value
}

// Hash implements deck.Location.
func (l Location) Hash() string { return l.v.Get("hash").String() }

// Replace implements deck.Location.
func (l Location) Replace(hash string) { l.v.Call("replace", hash) }

// Scheduler runs callbacks through window.setTimeout, which keeps them on
// the page's event loop.
type Scheduler struct {
	window js.Value
}

// AfterFunc implements deck.Scheduler.
func (s Scheduler) AfterFunc(d time.Duration, f func()) {
	var fn js.Func
	fn = js.FuncOf(func(this js.Value, args []js.Value) any {
		fn.Release()
		f()
		return nil
	})
	s.window.Call("setTimeout", fn, d.Milliseconds())
}
