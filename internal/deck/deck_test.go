package deck_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"deckctl/internal/deck"
	"deckctl/internal/htmldeck"
)

const sixSlides = `<!DOCTYPE html><html><body>
<section class="slides">
  <article><h1>Intro</h1><ul class="build"><li>one</li><li>two</li></ul></article>
  <article><h2>Two</h2><iframe src="https://a.example/"></iframe></article>
  <article><p>no heading</p><input id="field"></article>
  <article><h2>Four</h2><iframe src="https://b.example/"></iframe></article>
  <article><h2>Five</h2><ol class="build"><li>x</li></ol></article>
  <article><h2>Six</h2><iframe src="https://c.example/"></iframe></article>
</section>
</body></html>`

type fixture struct {
	doc   *htmldeck.Document
	loc   *deck.MemoryLocation
	sched *deck.ManualScheduler
	deck  *deck.Deck
}

func newFixture(t *testing.T, src, hash string, opts deck.Options) *fixture {
	t.Helper()
	doc, err := htmldeck.Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	f := &fixture{doc: doc, loc: deck.NewMemoryLocation(hash), sched: &deck.ManualScheduler{}}
	f.deck = deck.New(doc, f.loc, f.sched, opts)
	return f
}

func started(t *testing.T, hash string) *fixture {
	t.Helper()
	f := newFixture(t, sixSlides, hash, deck.Options{})
	f.deck.Start()
	return f
}

func (f *fixture) slide(o int) deck.Element { return f.deck.Registry().Slide(o).Element }

func (f *fixture) frameSrc(o int) string {
	return f.deck.Registry().Slide(o).Frames[0].Frame.Src()
}

// checkClasses verifies that exactly one slide is current and every slide
// carries the class matching its distance.
func checkClasses(t *testing.T, f *fixture) {
	t.Helper()
	cur := 0
	names := []string{"far-past", "past", "current", "next", "far-next"}
	for _, s := range f.deck.Registry().Slides() {
		want := deck.ClassFor(s.Ordinal, f.deck.Current()).String()
		for _, n := range names {
			has := s.Element.HasClass(n)
			if has && n != want {
				t.Fatalf("slide %d has stray class %q (current %d)", s.Number(), n, f.deck.Current())
			}
			if !has && n == want {
				t.Fatalf("slide %d missing class %q (current %d)", s.Number(), n, f.deck.Current())
			}
		}
		if s.Element.HasClass("current") {
			cur++
		}
	}
	if cur != 1 {
		t.Fatalf("expected exactly one current slide, got %d", cur)
	}
}

func TestStart_InitialState(t *testing.T) {
	f := started(t, "")
	if f.deck.Current() != 0 {
		t.Fatalf("current = %d, want 0", f.deck.Current())
	}
	if f.loc.Hash() != "#1" {
		t.Fatalf("hash = %q, want #1", f.loc.Hash())
	}
	checkClasses(t, f)

	labels := []string{"Intro", "Two", "Slide 3", "Four", "Five", "Six"}
	names := []string{"Intro Slide 1", "Two Slide 2", "Slide 3", "Four Slide 4", "Five Slide 5", "Six Slide 6"}
	for i, want := range labels {
		if got := f.deck.Registry().Slide(i).Label; got != want {
			t.Fatalf("slide %d label = %q, want %q", i+1, got, want)
		}
		got, _ := f.slide(i).Attr(deck.AttrAriaLabel)
		if got != names[i] {
			t.Fatalf("slide %d aria-label = %q, want %q", i+1, got, names[i])
		}
		if o, _ := f.slide(i).Attr(deck.AttrOrdinal); o != string(rune('0'+i)) {
			t.Fatalf("slide %d data-ordinal = %q", i+1, o)
		}
	}
	if !strings.Contains(f.doc.String(), `class="slides"`) {
		t.Fatalf("render lost the slides container")
	}
}

func TestStart_RunsOnce(t *testing.T) {
	f := started(t, "#3")
	n := f.loc.Replaced()
	f.deck.Start()
	if f.loc.Replaced() != n {
		t.Fatalf("second Start re-applied state")
	}
}

func TestStart_FromFragment(t *testing.T) {
	cases := map[string]int{"#4": 3, "#6": 5, "#99": 0, "#0": 0, "#x": 0, "": 0}
	for hash, want := range cases {
		f := started(t, hash)
		if f.deck.Current() != want {
			t.Fatalf("hash %q: current = %d, want %d", hash, f.deck.Current(), want)
		}
		if f.loc.Hash() != deck.FormatFragment(want) {
			t.Fatalf("hash %q: published %q", hash, f.loc.Hash())
		}
	}
}

func TestNavigation_ExactlyOneCurrent(t *testing.T) {
	f := started(t, "")
	steps := []func() deck.Step{
		f.deck.Next, f.deck.Next, f.deck.Next, f.deck.Next,
		f.deck.Prev, func() deck.Step { return f.deck.GoTo(5) },
		f.deck.Next, f.deck.Prev, f.deck.Prev,
		func() deck.Step { return f.deck.GoTo(0) }, f.deck.Prev,
	}
	for i, step := range steps {
		step()
		checkClasses(t, f)
		if f.loc.Hash() != deck.FormatFragment(f.deck.Current()) {
			t.Fatalf("step %d: hash %q does not match current %d", i, f.loc.Hash(), f.deck.Current())
		}
	}
}

func TestNext_RevealsBuildsBeforeMoving(t *testing.T) {
	f := started(t, "")
	items := f.deck.Registry().Slide(0).Builds
	if len(items) != 2 {
		t.Fatalf("expected 2 build items, got %d", len(items))
	}
	for _, it := range items {
		if !it.Element.HasClass(deck.ClassToBuild) {
			t.Fatalf("build item not hidden at start")
		}
	}
	// k build items take k+1 presses to leave the slide
	if s := f.deck.Next(); s != deck.StepBuild {
		t.Fatalf("first next = %v, want build", s)
	}
	if items[0].Element.HasClass(deck.ClassToBuild) || !items[1].Element.HasClass(deck.ClassToBuild) {
		t.Fatalf("items revealed out of order")
	}
	if s := f.deck.Next(); s != deck.StepBuild {
		t.Fatalf("second next = %v, want build", s)
	}
	if f.deck.Current() != 0 || f.deck.Builds().Pending(0) != 0 {
		t.Fatalf("unexpected state after builds: current %d pending %d", f.deck.Current(), f.deck.Builds().Pending(0))
	}
	if s := f.deck.Next(); s != deck.StepMove || f.deck.Current() != 1 {
		t.Fatalf("third next = %v current %d, want move to 1", s, f.deck.Current())
	}
}

func TestPrev_NeverTouchesBuilds(t *testing.T) {
	f := started(t, "#5")
	if f.deck.Builds().Pending(4) != 1 {
		t.Fatalf("slide 5 should have one pending item")
	}
	if s := f.deck.Prev(); s != deck.StepMove || f.deck.Current() != 3 {
		t.Fatalf("prev = %v current %d", s, f.deck.Current())
	}
	f.deck.Next()
	if f.deck.Builds().Pending(4) != 1 {
		t.Fatalf("prev/next changed pending builds")
	}
	// builds are not reset when a slide is entered again
	f.deck.Next()
	f.deck.Prev()
	f.deck.Next()
	if f.deck.Builds().Pending(4) != 0 {
		t.Fatalf("revealed item was hidden again")
	}
}

func TestBuilds_SlidesBeforeStartAreAuthored(t *testing.T) {
	f := started(t, "#2")
	if f.deck.Builds().HasPending(0) {
		t.Fatalf("slide before the initial one got a build queue")
	}
	for _, el := range f.doc.BuildItems(f.slide(0)) {
		if el.HasClass(deck.ClassToBuild) {
			t.Fatalf("slide 1 build item hidden")
		}
	}
	f.deck.Prev()
	if s := f.deck.Next(); s != deck.StepMove {
		t.Fatalf("next on slide 1 = %v, want move", s)
	}
}

func TestBoundaries(t *testing.T) {
	f := started(t, "#6")
	if s := f.deck.Next(); s != deck.StepNone || f.deck.Current() != 5 {
		t.Fatalf("next at end = %v", s)
	}
	if s := f.deck.GoTo(9); s != deck.StepNone {
		t.Fatalf("goto out of range = %v", s)
	}
	if s := f.deck.GoTo(5); s != deck.StepNone {
		t.Fatalf("goto current = %v", s)
	}
	gen := f.deck.Generation()
	f.deck.GoTo(0)
	if s := f.deck.Prev(); s != deck.StepNone || f.deck.Generation() != gen+1 {
		t.Fatalf("prev at start = %v generation %d", s, f.deck.Generation())
	}
}

func TestFrames_WindowAfterTimers(t *testing.T) {
	f := started(t, "")
	blank := deck.DefaultBlankSrc
	if f.frameSrc(1) != "https://a.example/" {
		t.Fatalf("slide 2 frame should load, got %q", f.frameSrc(1))
	}
	if f.frameSrc(3) != blank || f.frameSrc(5) != blank {
		t.Fatalf("distant frames should be blank: %q %q", f.frameSrc(3), f.frameSrc(5))
	}

	f.deck.GoTo(5)
	if f.frameSrc(3) != "https://b.example/" || f.frameSrc(5) != "https://c.example/" {
		t.Fatalf("window frames not enabled on move")
	}
	// slide 2 left the window; its frame goes after the transition
	if f.frameSrc(1) != "https://a.example/" {
		t.Fatalf("frame blanked before the transition finished")
	}
	f.sched.Advance(deck.DefaultTransitionDelay)
	if f.frameSrc(1) != blank {
		t.Fatalf("frame outside window still loaded: %q", f.frameSrc(1))
	}

	for o := range f.deck.Registry().Slides() {
		s := f.deck.Registry().Slide(o)
		if len(s.Frames) == 0 {
			continue
		}
		in := f.deck.Frames().InWindow(o, f.deck.Current())
		if f.deck.Frames().Loaded(o) != in {
			t.Fatalf("slide %d loaded=%v, in window=%v", o+1, f.deck.Frames().Loaded(o), in)
		}
	}
}

func TestFrames_StaleTeardownSkipped(t *testing.T) {
	f := started(t, "")
	f.deck.GoTo(4) // slide 2 leaves the window
	f.deck.GoTo(1) // and comes back before the timer fires
	f.sched.Flush()
	if f.frameSrc(1) != "https://a.example/" {
		t.Fatalf("stale teardown blanked the current slide's frame")
	}
	if f.frameSrc(5) != deck.DefaultBlankSrc {
		t.Fatalf("slide 6 frame should be blank again, got %q", f.frameSrc(5))
	}
}

func TestAccessibility_MoveTwoToThree(t *testing.T) {
	f := started(t, "#2")
	f.sched.Flush()
	f.deck.Next()

	cur := f.slide(2)
	if _, ok := cur.Attr(deck.AttrAriaHidden); ok {
		t.Fatalf("current slide is aria-hidden")
	}
	if _, ok := cur.Attr(deck.AttrInert); ok {
		t.Fatalf("current slide is inert")
	}
	if v, _ := cur.Attr(deck.AttrTabIndex); v != "-1" {
		t.Fatalf("current slide tabindex = %q, want -1", v)
	}
	if f.doc.ActiveElement() != cur {
		t.Fatalf("focus not moved to the current slide")
	}
	for o := range f.deck.Registry().Slides() {
		if o == 2 {
			continue
		}
		el := f.slide(o)
		if v, _ := el.Attr(deck.AttrAriaHidden); v != "true" {
			t.Fatalf("slide %d aria-hidden = %q", o+1, v)
		}
		if _, ok := el.Attr(deck.AttrInert); !ok {
			t.Fatalf("slide %d not inert", o+1)
		}
		if _, ok := el.Attr(deck.AttrTabIndex); ok {
			t.Fatalf("slide %d kept a tabindex", o+1)
		}
	}

	f.sched.Advance(deck.DefaultFocusSettleDelay)
	if _, ok := cur.Attr(deck.AttrTabIndex); ok {
		t.Fatalf("tabindex not removed after focus settled")
	}
}

func TestFocusSettle_StaleAfterMove(t *testing.T) {
	f := started(t, "")
	f.sched.Flush()
	f.deck.GoTo(1)
	f.deck.GoTo(2)
	f.sched.Advance(deck.DefaultFocusSettleDelay)
	if _, ok := f.slide(1).Attr(deck.AttrTabIndex); ok {
		t.Fatalf("left slide kept a tabindex")
	}
	if _, ok := f.slide(2).Attr(deck.AttrTabIndex); ok {
		t.Fatalf("current slide tabindex not settled")
	}
}

func TestZeroSlides_Inert(t *testing.T) {
	f := newFixture(t, `<html><body><p>nothing</p></body></html>`, "#3", deck.Options{})
	f.deck.Start()
	if f.deck.Len() != 0 || f.deck.CurrentSlide() != nil {
		t.Fatalf("expected empty deck")
	}
	for _, step := range []deck.Step{f.deck.Next(), f.deck.Prev(), f.deck.GoTo(0)} {
		if step != deck.StepNone {
			t.Fatalf("navigation on empty deck = %v", step)
		}
	}
	if f.loc.Replaced() != 0 || f.sched.Pending() != 0 {
		t.Fatalf("empty deck touched location or scheduled work")
	}
}

func TestNavigation_BeforeStartIgnored(t *testing.T) {
	f := newFixture(t, sixSlides, "", deck.Options{})
	if s := f.deck.Next(); s != deck.StepNone {
		t.Fatalf("next before start = %v", s)
	}
}

func TestHooks_Order(t *testing.T) {
	f := newFixture(t, sixSlides, "", deck.Options{})
	var got []string
	f.deck.Observe(func(ev deck.Event) error {
		got = append(got, ev.Kind.String()+":"+string(rune('0'+ev.Number())))
		return nil
	})
	f.deck.Start()
	f.deck.GoTo(3)
	f.deck.Prev()
	want := []string{"slideenter:1", "slideleave:1", "slideenter:4", "slideleave:4", "slideenter:3"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("events = %v, want %v", got, want)
	}
}

func TestHooks_ErrorsAndPanicsAreReported(t *testing.T) {
	var reported []error
	f := newFixture(t, sixSlides, "", deck.Options{OnHookError: func(err error) { reported = append(reported, err) }})
	boom := errors.New("boom")
	f.deck.OnEnter(1, func(deck.Event) error { return boom })
	f.deck.OnEnter(1, func(deck.Event) error { panic("kaboom") })
	entered := 0
	f.deck.OnEnter(1, func(deck.Event) error { entered++; return nil })
	f.deck.Start()

	if s := f.deck.GoTo(1); s != deck.StepMove {
		t.Fatalf("goto = %v", s)
	}
	if entered != 1 {
		t.Fatalf("later hook did not run")
	}
	if len(reported) != 2 {
		t.Fatalf("reported %d errors, want 2: %v", len(reported), reported)
	}
	if !errors.Is(reported[0], boom) {
		t.Fatalf("first error = %v", reported[0])
	}
	var he *deck.HookError
	if !errors.As(reported[1], &he) || he.Event.Number() != 2 || he.Event.Kind != deck.SlideEnter {
		t.Fatalf("second error = %#v", reported[1])
	}
	if !strings.Contains(he.Error(), "kaboom") {
		t.Fatalf("panic value lost: %v", he)
	}
	checkClasses(t, f)
}

func TestHandleFocus_NavigatesToFocusedSlide(t *testing.T) {
	f := started(t, "")
	var input deck.Element
	for _, el := range f.doc.Descendants(f.slide(2)) {
		if el.(*htmldeck.Element).Node().Data == "input" {
			input = el
		}
	}
	if input == nil {
		t.Fatalf("fixture input not found")
	}
	if s := f.deck.HandleFocus(input); s != deck.StepMove || f.deck.Current() != 2 {
		t.Fatalf("focus into slide 3 = %v current %d", s, f.deck.Current())
	}
	if s := f.deck.HandleFocus(f.slide(2)); s != deck.StepNone {
		t.Fatalf("focus on current slide = %v", s)
	}
}

// echoDocument reports focus moves back to the deck synchronously, the way
// browsers fire focus listeners.
type echoDocument struct {
	*htmldeck.Document
	deck  *deck.Deck
	steps []deck.Step
}

func (e *echoDocument) Focus(el deck.Element) {
	e.Document.Focus(el)
	if e.deck != nil {
		e.steps = append(e.steps, e.deck.HandleFocus(el))
	}
}

func TestHandleFocus_IgnoresDeckFocusMoves(t *testing.T) {
	doc, err := htmldeck.Parse(strings.NewReader(sixSlides))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	echo := &echoDocument{Document: doc}
	d := deck.New(echo, deck.NewMemoryLocation(""), &deck.ManualScheduler{}, deck.Options{})
	echo.deck = d
	d.Start()
	d.GoTo(3)
	if len(echo.steps) != 2 {
		t.Fatalf("expected 2 focus echoes, got %d", len(echo.steps))
	}
	for _, s := range echo.steps {
		if s != deck.StepNone {
			t.Fatalf("deck reacted to its own focus move: %v", s)
		}
	}
	if d.Current() != 3 {
		t.Fatalf("current = %d", d.Current())
	}
}

func TestFocusOnTransitionEnd(t *testing.T) {
	f := newFixture(t, sixSlides, "", deck.Options{FocusOnTransitionEnd: true})
	f.deck.Start()
	f.deck.GoTo(1)
	if f.doc.ActiveElement() == f.slide(1) {
		t.Fatalf("focus moved before the transition ended")
	}
	f.deck.TransitionEnded(f.slide(0))
	if f.doc.ActiveElement() == f.slide(1) {
		t.Fatalf("transition of another slide moved focus")
	}
	f.deck.TransitionEnded(f.slide(1))
	if f.doc.ActiveElement() != f.slide(1) {
		t.Fatalf("focus not moved after the transition ended")
	}
}

func TestFocusOnTransitionEnd_FallbackWithoutTransition(t *testing.T) {
	f := newFixture(t, sixSlides, "#3", deck.Options{FocusOnTransitionEnd: true})
	f.deck.Start()
	if s := f.deck.Next(); s != deck.StepMove || f.deck.Current() != 3 {
		t.Fatalf("next = %v current %d", s, f.deck.Current())
	}
	f.sched.Advance(deck.DefaultTransitionDelay - time.Millisecond)
	if _, hidden := f.slide(3).Attr(deck.AttrAriaHidden); !hidden || f.doc.ActiveElement() == f.slide(3) {
		t.Fatalf("slide entered before the transition delay elapsed")
	}
	f.sched.Advance(time.Millisecond)
	if _, hidden := f.slide(3).Attr(deck.AttrAriaHidden); hidden {
		t.Fatalf("slide 4 still aria-hidden without a transition end")
	}
	if _, inert := f.slide(3).Attr(deck.AttrInert); inert {
		t.Fatalf("slide 4 still inert without a transition end")
	}
	if f.doc.ActiveElement() != f.slide(3) {
		t.Fatalf("slide 4 not focused without a transition end")
	}
	f.sched.Flush()
	if _, ok := f.slide(3).Attr(deck.AttrTabIndex); ok {
		t.Fatalf("tabindex kept after focus settled")
	}
}

func TestFocusOnTransitionEnd_StaleEndAfterSecondMove(t *testing.T) {
	f := newFixture(t, sixSlides, "", deck.Options{FocusOnTransitionEnd: true})
	f.deck.Start()
	f.deck.GoTo(1)
	f.deck.GoTo(2)

	f.deck.TransitionEnded(f.slide(1))
	if f.doc.ActiveElement() == f.slide(1) {
		t.Fatalf("stale transition end focused the slide left behind")
	}
	if _, inert := f.slide(1).Attr(deck.AttrInert); !inert {
		t.Fatalf("slide left behind was exposed")
	}

	f.deck.TransitionEnded(f.slide(2))
	if f.doc.ActiveElement() != f.slide(2) {
		t.Fatalf("current slide not focused after its transition ended")
	}

	// the user moves focus away; pending fallbacks must not steal it back
	f.doc.Focus(f.slide(0))
	f.sched.Flush()
	if f.doc.ActiveElement() != f.slide(0) {
		t.Fatalf("fallback re-entered a slide that was already entered")
	}
	if f.deck.Current() != 2 {
		t.Fatalf("current = %d", f.deck.Current())
	}
}

func TestOptions_Defaults(t *testing.T) {
	f := newFixture(t, sixSlides, "", deck.Options{FrameWindow: -1})
	o := f.deck.Options()
	if o.TransitionDelay != deck.DefaultTransitionDelay || o.FrameWindow != deck.DefaultFrameWindow ||
		o.BlankSrc != deck.DefaultBlankSrc || o.TouchSensitivity != deck.DefaultTouchSensitivity ||
		o.FocusSettleDelay != deck.DefaultFocusSettleDelay {
		t.Fatalf("defaults not applied: %+v", o)
	}
}
