// Package deck implements the slide navigation engine: relative transition
// classes, build reveals, frame lifecycle, gesture recognition and
// accessibility focus, over a host-provided Document.
//
// A Deck is driven from a single event loop and is not safe for concurrent
// use.
package deck

import (
	"errors"
	"time"

	"deckctl/internal/system"
)

// ErrNoSlides is reported by loaders when a document has no slide
// containers. A Deck built from such a document is inert.
var ErrNoSlides = errors.New("deck: no slides found")

// Defaults for Options.
const (
	DefaultTransitionDelay = 301 * time.Millisecond
	DefaultFrameWindow     = 2
	DefaultBlankSrc        = "about:blank"
)

// Options tunes engine timing and thresholds. Zero fields take defaults.
type Options struct {
	// TransitionDelay defers frame teardown until the slide animation is
	// over.
	TransitionDelay time.Duration
	// FocusSettleDelay defers dropping the temporary tabindex.
	FocusSettleDelay time.Duration
	// FrameWindow is the distance within which frames stay loaded.
	FrameWindow int
	// BlankSrc is the inert source given to unloaded frames.
	BlankSrc string
	// TouchSensitivity is the swipe threshold in device pixels.
	TouchSensitivity float64
	// FocusOnTransitionEnd delays the focus move until the host reports the
	// end of the slide animation through TransitionEnded.
	FocusOnTransitionEnd bool
	// OnHookError receives hook failures. Nil logs them.
	OnHookError func(error)
}

func (o Options) withDefaults() Options {
	if o.TransitionDelay <= 0 {
		o.TransitionDelay = DefaultTransitionDelay
	}
	if o.FocusSettleDelay <= 0 {
		o.FocusSettleDelay = DefaultFocusSettleDelay
	}
	if o.FrameWindow <= 0 {
		o.FrameWindow = DefaultFrameWindow
	}
	if o.BlankSrc == "" {
		o.BlankSrc = DefaultBlankSrc
	}
	if o.TouchSensitivity <= 0 {
		o.TouchSensitivity = DefaultTouchSensitivity
	}
	return o
}

// Step reports what a navigation command did.
type Step int

const (
	StepNone Step = iota
	StepBuild
	StepMove
)

func (s Step) String() string {
	switch s {
	case StepBuild:
		return "build"
	case StepMove:
		return "move"
	}
	return "none"
}

// Deck owns the navigation state of one document.
type Deck struct {
	doc    Document
	sched  Scheduler
	opts   Options
	reg    *Registry
	router *Router
	builds *Builds
	frames *Frames
	focus  *Focus
	hooks  *hooks

	current    int
	generation uint64
	started    bool
	// entered is the generation whose current slide last received focus.
	entered uint64
}

// New registers the slides of doc and resolves the initial ordinal from
// loc. Hooks may be registered before Start applies the initial state.
func New(doc Document, loc Location, sched Scheduler, opts Options) *Deck {
	opts = opts.withDefaults()
	reg := BuildRegistry(doc)
	d := &Deck{
		doc:    doc,
		sched:  sched,
		opts:   opts,
		reg:    reg,
		router: NewRouter(loc),
		builds: &Builds{reg: reg},
		frames: &Frames{reg: reg, window: opts.FrameWindow, blank: opts.BlankSrc},
		hooks:  newHooks(opts.OnHookError),
	}
	d.focus = &Focus{doc: doc, reg: reg, sched: sched, settle: opts.FocusSettleDelay, gen: d.Generation}
	d.current = d.router.ReadInitialOrdinal(reg.Len())
	return d
}

// Start applies the initial slide: classes, fragment, frames, build queues,
// focus and the first enter notification. It runs once.
func (d *Deck) Start() {
	if d.started {
		return
	}
	d.started = true
	if d.reg.Len() == 0 {
		system.Logger.Warn("deck has no slides; navigation disabled")
		return
	}
	d.frames.Capture()
	d.builds.setup(d.doc, d.current)
	d.apply()
	d.frames.EnableWindow(d.current)
	d.enter(d.current)
	d.hooks.fire(Event{Kind: SlideEnter, Ordinal: d.current, Slide: d.reg.Slide(d.current)})
}

// Options returns the effective options.
func (d *Deck) Options() Options { return d.opts }

// Registry returns the slide registry.
func (d *Deck) Registry() *Registry { return d.reg }

// Builds returns the build reveal queues.
func (d *Deck) Builds() *Builds { return d.builds }

// Frames returns the frame lifecycle manager.
func (d *Deck) Frames() *Frames { return d.frames }

// Len returns the number of slides.
func (d *Deck) Len() int { return d.reg.Len() }

// Current returns the current ordinal.
func (d *Deck) Current() int { return d.current }

// CurrentSlide returns the current slide, or nil for an empty deck.
func (d *Deck) CurrentSlide() *Slide { return d.reg.Slide(d.current) }

// Generation counts ordinal changes since New.
func (d *Deck) Generation() uint64 { return d.generation }

// ClassOf returns the relative class of slide o.
func (d *Deck) ClassOf(o int) RelativeClass { return ClassFor(o, d.current) }

// OnEnter registers h for slide o becoming current.
func (d *Deck) OnEnter(o int, h Handler) { d.hooks.enter[o] = append(d.hooks.enter[o], h) }

// OnLeave registers h for slide o ceasing to be current.
func (d *Deck) OnLeave(o int, h Handler) { d.hooks.leave[o] = append(d.hooks.leave[o], h) }

// Observe registers h for every enter and leave notification.
func (d *Deck) Observe(h Handler) { d.hooks.observer = append(d.hooks.observer, h) }

// Next reveals the next build item of the current slide, or moves forward
// when none is pending.
func (d *Deck) Next() Step {
	if !d.ready() {
		return StepNone
	}
	if d.builds.RevealNext(d.current) {
		return StepBuild
	}
	return d.move(d.current + 1)
}

// Prev moves back one slide. It never touches build items.
func (d *Deck) Prev() Step {
	if !d.ready() {
		return StepNone
	}
	return d.move(d.current - 1)
}

// GoTo moves straight to slide o.
func (d *Deck) GoTo(o int) Step {
	if !d.ready() {
		return StepNone
	}
	return d.move(o)
}

// Do runs a navigation command.
func (d *Deck) Do(c Command) Step {
	switch c {
	case CommandNext:
		return d.Next()
	case CommandPrev:
		return d.Prev()
	}
	return StepNone
}

func (d *Deck) ready() bool { return d.started && d.reg.Len() > 0 }

func (d *Deck) move(o int) Step {
	if o < 0 || o >= d.reg.Len() || o == d.current {
		return StepNone
	}
	prev := d.current
	d.current = o
	d.generation++

	d.apply()
	d.frames.EnableWindow(o)
	d.scheduleTeardown(prev)
	if d.opts.FocusOnTransitionEnd {
		d.scheduleFocusFallback(o)
	} else {
		d.enter(o)
	}

	d.hooks.fire(Event{Kind: SlideLeave, Ordinal: prev, Slide: d.reg.Slide(prev)})
	d.hooks.fire(Event{Kind: SlideEnter, Ordinal: o, Slide: d.reg.Slide(o)})
	return StepMove
}

// apply recomputes every slide's class and visibility and publishes the
// fragment.
func (d *Deck) apply() {
	for _, s := range d.reg.Slides() {
		applyClass(s.Element, ClassFor(s.Ordinal, d.current))
		if s.Ordinal != d.current {
			d.focus.Conceal(s.Ordinal)
		}
	}
	d.router.Publish(d.current)
}

// scheduleTeardown defers blanking the frames of slides that left the
// window when the deck moved away from prev.
func (d *Deck) scheduleTeardown(prev int) {
	w := d.opts.FrameWindow
	for o := prev - w; o <= prev+w; o++ {
		if d.reg.Slide(o) == nil || d.frames.InWindow(o, d.current) {
			continue
		}
		t := task{ordinal: o, generation: d.generation}
		d.sched.AfterFunc(d.opts.TransitionDelay, func() { d.teardown(t) })
	}
}

// scheduleFocusFallback enters slide o after TransitionDelay when no
// transition end was reported for it, as happens when the slide has no
// transition or motion is reduced.
func (d *Deck) scheduleFocusFallback(o int) {
	t := task{ordinal: o, generation: d.generation}
	d.sched.AfterFunc(d.opts.TransitionDelay, func() {
		if t.generation != d.generation || d.entered == t.generation {
			return
		}
		system.Logger.Debug("no transition end reported; entering slide", "slide", t.ordinal+1)
		d.enter(t.ordinal)
	})
}

// enter moves accessibility focus to slide o and records the generation.
func (d *Deck) enter(o int) {
	d.entered = d.generation
	d.focus.Enter(o)
}

func (d *Deck) teardown(t task) {
	if t.generation != d.generation && d.frames.InWindow(t.ordinal, d.current) {
		system.Logger.Debug("skipping stale frame teardown", "slide", t.ordinal+1)
		return
	}
	d.frames.Disable(t.ordinal)
}

// TransitionEnded is called by hosts when the slide animation of el has
// finished. With FocusOnTransitionEnd set, it moves focus to the current
// slide once per move; ends reported for other slides are ignored.
func (d *Deck) TransitionEnded(el Element) {
	if !d.ready() || !d.opts.FocusOnTransitionEnd || d.entered == d.generation {
		return
	}
	if o, ok := d.reg.OrdinalOf(el); ok && o == d.current && el == d.reg.Slide(o).Element {
		d.enter(o)
	}
}

// HandleFocus is called by hosts when focus lands on el. Focus reaching
// another slide's content makes that slide current; moves performed by the
// deck itself are ignored.
func (d *Deck) HandleFocus(el Element) Step {
	if !d.ready() || d.focus.Moving() {
		return StepNone
	}
	o, ok := d.reg.OrdinalOf(el)
	if !ok || o == d.current {
		return StepNone
	}
	system.Logger.Debug("focus moved to another slide", "from", d.current+1, "to", o+1)
	return d.move(o)
}
