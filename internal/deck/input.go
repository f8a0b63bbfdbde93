package deck

import "strings"

// Key is a navigation-relevant key.
type Key int

const (
	KeyOther Key = iota
	KeyRight
	KeyEnter
	KeySpace
	KeyPageDown
	KeyDown
	KeyLeft
	KeyBackspace
	KeyPageUp
	KeyUp
)

// KeyFromCode maps a browser keyCode.
func KeyFromCode(code int) Key {
	switch code {
	case 39:
		return KeyRight
	case 13:
		return KeyEnter
	case 32:
		return KeySpace
	case 34:
		return KeyPageDown
	case 40:
		return KeyDown
	case 37:
		return KeyLeft
	case 8:
		return KeyBackspace
	case 33:
		return KeyPageUp
	case 38:
		return KeyUp
	}
	return KeyOther
}

// KeyFromName maps key names as reported by browsers (KeyboardEvent.key)
// and terminals.
func KeyFromName(name string) Key {
	switch strings.ToLower(name) {
	case "right", "arrowright":
		return KeyRight
	case "enter":
		return KeyEnter
	case " ", "space", "spacebar":
		return KeySpace
	case "pgdown", "pagedown":
		return KeyPageDown
	case "down", "arrowdown":
		return KeyDown
	case "left", "arrowleft":
		return KeyLeft
	case "backspace":
		return KeyBackspace
	case "pgup", "pageup":
		return KeyPageUp
	case "up", "arrowup":
		return KeyUp
	}
	return KeyOther
}

// Command returns the navigation command bound to k.
func (k Key) Command() Command {
	switch k {
	case KeyRight, KeyEnter, KeySpace, KeyPageDown, KeyDown:
		return CommandNext
	case KeyLeft, KeyBackspace, KeyPageUp, KeyUp:
		return CommandPrev
	}
	return CommandNone
}

// KeyEvent is a key press delivered by a host.
type KeyEvent struct {
	Key Key
	// Editable is set when focus is inside a control that uses the key
	// itself, such as a text field or contenteditable region.
	Editable bool
	// Button is set when focus is on a button, which Enter and Space
	// activate.
	Button bool
}

// Target is a click affordance.
type Target int

const (
	TargetPrev Target = iota + 1
	TargetNext
)

// Dispatcher routes host input to a deck.
type Dispatcher struct {
	deck    *Deck
	gesture Recognizer
}

// NewDispatcher returns a dispatcher driving d.
func NewDispatcher(d *Deck) *Dispatcher {
	return &Dispatcher{deck: d, gesture: Recognizer{Threshold: d.opts.TouchSensitivity}}
}

// Key handles a key press. It reports whether the key was consumed; hosts
// suppress the default action only then.
func (x *Dispatcher) Key(ev KeyEvent) bool {
	if ev.Editable {
		return false
	}
	if ev.Button && (ev.Key == KeyEnter || ev.Key == KeySpace) {
		return false
	}
	c := ev.Key.Command()
	if c == CommandNone {
		return false
	}
	x.deck.Do(c)
	return true
}

// Click handles a click on a prev/next affordance.
func (x *Dispatcher) Click(t Target) Step {
	switch t {
	case TargetPrev:
		return x.deck.Prev()
	case TargetNext:
		return x.deck.Next()
	}
	return StepNone
}

// TouchStart forwards a touch-start.
func (x *Dispatcher) TouchStart(touches []Point) { x.gesture.Start(touches) }

// TouchMove forwards a touch-move.
func (x *Dispatcher) TouchMove(touches []Point) { x.gesture.Move(touches) }

// TouchEnd finishes a gesture and runs the command it produced.
func (x *Dispatcher) TouchEnd() Command {
	c := x.gesture.End()
	x.deck.Do(c)
	return c
}

// TouchCancel drops the gesture in progress.
func (x *Dispatcher) TouchCancel() { x.gesture.Cancel() }

// Tracking reports whether a touch gesture is in progress.
func (x *Dispatcher) Tracking() bool { return x.gesture.Tracking() }
