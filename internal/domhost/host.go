//go:build js && wasm

package domhost

import (
	"fmt"
	"strings"
	"syscall/js"

	"deckctl/internal/deck"
	"deckctl/internal/system"
)

// Attributes naming window functions run on slide enter and leave.
const (
	AttrOnEnter = "data-onenter"
	AttrOnLeave = "data-onleave"
)

// Host owns the deck of the current page and its DOM listeners.
type Host struct {
	window js.Value
	doc    *Document
	deck   *deck.Deck
	input  *deck.Dispatcher
	funcs  []js.Func
}

// Start builds a deck over the page, installs listeners and applies the
// initial slide. The returned host lives as long as the page.
func Start(opts deck.Options) (*Host, error) {
	window := js.Global()
	document := window.Get("document")
	if document.IsUndefined() {
		return nil, fmt.Errorf("no document in global scope")
	}
	opts.FocusOnTransitionEnd = true

	h := &Host{window: window, doc: NewDocument(document)}
	h.deck = deck.New(h.doc, Location{v: window.Get("location")}, Scheduler{window: window}, opts)
	h.input = deck.NewDispatcher(h.deck)
	if h.deck.Len() == 0 {
		return h, deck.ErrNoSlides
	}

	h.bindHooks()
	h.deck.Observe(h.dispatchSlideEvent)
	h.listen()
	h.addNavButtons()

	h.deck.Start()
	document.Get("body").Get("classList").Call("add", "loaded")
	system.Logger.Info("deck ready", "slides", h.deck.Len(), "current", h.deck.Current()+1)
	return h, nil
}

// Deck returns the deck driven by h.
func (h *Host) Deck() *deck.Deck { return h.deck }

func (h *Host) on(target js.Value, event string, capture bool, fn func(ev js.Value)) {
	f := js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) > 0 {
			fn(args[0])
		}
		return nil
	})
	h.funcs = append(h.funcs, f)
	target.Call("addEventListener", event, f, capture)
}

func (h *Host) listen() {
	document := h.doc.doc
	h.on(document, "keydown", true, h.onKey)
	h.on(document, "touchstart", false, func(ev js.Value) { h.input.TouchStart(touches(ev)) })
	h.on(document, "touchmove", false, func(ev js.Value) { h.input.TouchMove(touches(ev)) })
	h.on(document, "touchend", false, func(ev js.Value) { h.input.TouchEnd() })
	h.on(document, "touchcancel", false, func(ev js.Value) { h.input.TouchCancel() })
	h.on(document, "focus", true, func(ev js.Value) {
		if el := h.doc.lookup(ev.Get("target")); el != nil {
			h.deck.HandleFocus(el)
		}
	})
	h.on(document, "transitionend", false, func(ev js.Value) {
		if el := h.doc.lookup(ev.Get("target")); el != nil {
			h.deck.TransitionEnded(el)
		}
	})
}

func (h *Host) onKey(ev js.Value) {
	if ev.Get("altKey").Bool() || ev.Get("ctrlKey").Bool() || ev.Get("metaKey").Bool() {
		return
	}
	k := deck.KeyFromName(ev.Get("key").String())
	if k == deck.KeyOther {
		k = deck.KeyFromCode(ev.Get("keyCode").Int())
	}
	target := ev.Get("target")
	if h.input.Key(deck.KeyEvent{Key: k, Editable: editable(target), Button: button(target)}) {
		ev.Call("preventDefault")
	}
}

// editable reports whether el handles navigation keys itself.
func editable(el js.Value) bool {
	if el.IsUndefined() || el.IsNull() {
		return false
	}
	if ce := el.Get("isContentEditable"); ce.Type() == js.TypeBoolean && ce.Bool() {
		return true
	}
	switch strings.ToUpper(el.Get("tagName").String()) {
	case "INPUT", "TEXTAREA", "SELECT":
		return true
	}
	return false
}

// button reports whether el is activated by Enter and Space.
func button(el js.Value) bool {
	if el.IsUndefined() || el.IsNull() || el.Get("tagName").IsUndefined() {
		return false
	}
	if strings.ToUpper(el.Get("tagName").String()) == "BUTTON" {
		return true
	}
	role := el.Call("getAttribute", "role")
	return !role.IsNull() && strings.EqualFold(role.String(), "button")
}

func touches(ev js.Value) []deck.Point {
	list := ev.Get("touches")
	n := list.Length()
	out := make([]deck.Point, 0, n)
	for i := 0; i < n; i++ {
		t := list.Index(i)
		out = append(out, deck.Point{X: t.Get("pageX").Float(), Y: t.Get("pageY").Float()})
	}
	return out
}

// addNavButtons inserts the prev/next click affordances.
func (h *Host) addNavButtons() {
	document := h.doc.doc
	nav := document.Call("createElement", "nav")
	nav.Get("classList").Call("add", "deck-nav")
	for _, b := range []struct {
		class, label, text string
		target             deck.Target
	}{
		{"prev", "Previous Slide", "‹", deck.TargetPrev},
		{"next", "Next Slide", "›", deck.TargetNext},
	} {
		btn := document.Call("createElement", "button")
		btn.Get("classList").Call("add", b.class)
		btn.Call("setAttribute", "aria-label", b.label)
		btn.Set("textContent", b.text)
		target := b.target
		h.on(btn, "click", false, func(ev js.Value) {
			ev.Call("preventDefault")
			h.input.Click(target)
		})
		nav.Call("appendChild", btn)
	}
	document.Get("body").Call("appendChild", nav)
}

// bindHooks registers enter/leave hooks named by data attributes.
func (h *Host) bindHooks() {
	for _, s := range h.deck.Registry().Slides() {
		if name, ok := s.Element.Attr(AttrOnEnter); ok && name != "" {
			h.deck.OnEnter(s.Ordinal, h.windowHook(name))
		}
		if name, ok := s.Element.Attr(AttrOnLeave); ok && name != "" {
			h.deck.OnLeave(s.Ordinal, h.windowHook(name))
		}
	}
}

// windowHook calls window[name] with the slide number. A JS exception
// surfaces as a panic from Invoke, which the deck reports as a hook error.
func (h *Host) windowHook(name string) deck.Handler {
	return func(ev deck.Event) error {
		fn := h.window.Get(name)
		if fn.Type() != js.TypeFunction {
			return fmt.Errorf("window.%s is not a function", name)
		}
		fn.Invoke(ev.Number())
		return nil
	}
}

// dispatchSlideEvent fires slideenter/slideleave DOM events on the slide.
func (h *Host) dispatchSlideEvent(ev deck.Event) error {
	if ev.Slide == nil {
		return nil
	}
	el, ok := ev.Slide.Element.(*Element)
	if !ok {
		return nil
	}
	detail := map[string]any{"slideNumber": ev.Number()}
	init := map[string]any{"bubbles": true, "detail": detail}
	custom := h.window.Get("CustomEvent").New(ev.Kind.String(), init)
	el.v.Call("dispatchEvent", custom)
	return nil
}
