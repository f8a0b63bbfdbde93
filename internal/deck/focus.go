package deck

import "time"

// Attributes managed by the focus manager.
const (
	AttrAriaHidden = "aria-hidden"
	AttrInert      = "inert"
)

// DefaultFocusSettleDelay is how long a freshly focused slide keeps its
// explicit tabindex.
const DefaultFocusSettleDelay = 100 * time.Millisecond

// Focus keeps exactly one slide reachable by keyboard and assistive
// technology.
type Focus struct {
	doc    Document
	reg    *Registry
	sched  Scheduler
	settle time.Duration
	// gen reports the deck's navigation generation.
	gen func() uint64

	moving bool
}

// Conceal hides slide o from pointer, keyboard and assistive technology.
func (f *Focus) Conceal(o int) {
	s := f.reg.Slide(o)
	if s == nil {
		return
	}
	s.Element.SetAttr(AttrAriaHidden, "true")
	s.Element.SetAttr(AttrInert, "")
	s.Element.RemoveAttr(AttrTabIndex)
}

// Enter exposes slide o and moves focus to it. The explicit tabindex is
// dropped once focus has settled so the slide stays out of the tab order.
func (f *Focus) Enter(o int) {
	s := f.reg.Slide(o)
	if s == nil {
		return
	}
	el := s.Element
	el.RemoveAttr(AttrAriaHidden)
	el.RemoveAttr(AttrInert)
	el.SetAttr(AttrTabIndex, "-1")

	f.moving = true
	f.doc.Focus(el)
	f.moving = false

	t := task{ordinal: o, generation: f.gen()}
	f.sched.AfterFunc(f.settle, func() { f.settled(t) })
}

func (f *Focus) settled(t task) {
	if t.generation != f.gen() {
		return
	}
	if s := f.reg.Slide(t.ordinal); s != nil {
		s.Element.RemoveAttr(AttrTabIndex)
	}
}

// Moving reports whether the manager is performing a focus move, during
// which host focus notifications must be ignored.
func (f *Focus) Moving() bool { return f.moving }
