package deck

// RelativeClass classifies a slide by its distance from the current slide.
type RelativeClass int

const (
	ClassNone RelativeClass = iota
	ClassFarPast
	ClassPast
	ClassCurrent
	ClassNext
	ClassFarNext
)

// classNames lists every class the engine owns; ClassNone has no name.
var classNames = [...]string{
	ClassFarPast: "far-past",
	ClassPast:    "past",
	ClassCurrent: "current",
	ClassNext:    "next",
	ClassFarNext: "far-next",
}

func (c RelativeClass) String() string {
	if c <= ClassNone || int(c) >= len(classNames) {
		return ""
	}
	return classNames[c]
}

// ClassFor returns the relative class of slide o when current is on screen.
func ClassFor(o, current int) RelativeClass {
	switch o - current {
	case -2:
		return ClassFarPast
	case -1:
		return ClassPast
	case 0:
		return ClassCurrent
	case 1:
		return ClassNext
	case 2:
		return ClassFarNext
	}
	return ClassNone
}

// applyClass sets exactly one relative class on el, clearing the others.
func applyClass(el Element, c RelativeClass) {
	if name := c.String(); name != "" {
		el.AddClass(name)
	}
	for i := ClassFarPast; i <= ClassFarNext; i++ {
		if i != c {
			el.RemoveClass(i.String())
		}
	}
}

// distance returns |a-b|.
func distance(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}
