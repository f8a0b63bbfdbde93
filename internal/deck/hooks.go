package deck

import (
	"fmt"

	"deckctl/internal/system"
)

// EventKind distinguishes enter and leave notifications.
type EventKind int

const (
	SlideEnter EventKind = iota
	SlideLeave
)

func (k EventKind) String() string {
	if k == SlideLeave {
		return "slideleave"
	}
	return "slideenter"
}

// Event is delivered to hooks when a slide becomes or stops being current.
type Event struct {
	Kind    EventKind
	Ordinal int
	Slide   *Slide
}

// Number returns the 1-based slide number.
func (e Event) Number() int { return e.Ordinal + 1 }

// Handler reacts to a slide event.
type Handler func(Event) error

// HookError wraps a failure raised by a hook.
type HookError struct {
	Event Event
	Err   error
}

func (e *HookError) Error() string {
	return fmt.Sprintf("%s hook for slide %d: %v", e.Event.Kind, e.Event.Number(), e.Err)
}

func (e *HookError) Unwrap() error { return e.Err }

type hooks struct {
	enter    map[int][]Handler
	leave    map[int][]Handler
	observer []Handler
	onError  func(error)
}

func newHooks(onError func(error)) *hooks {
	if onError == nil {
		onError = func(err error) {
			system.Logger.Error("slide hook failed", "err", err)
		}
	}
	return &hooks{enter: map[int][]Handler{}, leave: map[int][]Handler{}, onError: onError}
}

func (h *hooks) fire(ev Event) {
	set := h.enter
	if ev.Kind == SlideLeave {
		set = h.leave
	}
	for _, fn := range set[ev.Ordinal] {
		h.call(fn, ev)
	}
	for _, fn := range h.observer {
		h.call(fn, ev)
	}
}

// call runs one handler; failures and panics are reported and never stop
// the remaining handlers.
func (h *hooks) call(fn Handler, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			h.onError(&HookError{Event: ev, Err: fmt.Errorf("panic: %v", r)})
		}
	}()
	if err := fn(ev); err != nil {
		h.onError(&HookError{Event: ev, Err: err})
	}
}
