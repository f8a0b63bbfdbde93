package deck

// ClassToBuild marks a build item that has not been revealed yet.
const ClassToBuild = "to-build"

// BuildItem is one incrementally revealed element of a slide.
type BuildItem struct {
	Element  Element
	Revealed bool
}

// Builds holds the per-slide reveal queues.
type Builds struct {
	reg *Registry
}

// setup queues the build items of every slide from `from` onwards. Slides
// before it are left as authored: the viewer starts past them.
func (b *Builds) setup(doc Document, from int) {
	for _, s := range b.reg.Slides() {
		if s.Ordinal < from {
			continue
		}
		for _, el := range doc.BuildItems(s.Element) {
			el.AddClass(ClassToBuild)
			s.Builds = append(s.Builds, &BuildItem{Element: el})
		}
	}
}

// Pending returns how many items of slide o are still hidden.
func (b *Builds) Pending(o int) int {
	s := b.reg.Slide(o)
	if s == nil {
		return 0
	}
	n := 0
	for _, it := range s.Builds {
		if !it.Revealed {
			n++
		}
	}
	return n
}

// HasPending reports whether slide o has an item left to reveal.
func (b *Builds) HasPending(o int) bool { return b.head(o) != nil }

// RevealNext reveals the first hidden item of slide o. It reports false when
// nothing was left.
func (b *Builds) RevealNext(o int) bool {
	it := b.head(o)
	if it == nil {
		return false
	}
	it.Element.RemoveClass(ClassToBuild)
	it.Revealed = true
	return true
}

func (b *Builds) head(o int) *BuildItem {
	s := b.reg.Slide(o)
	if s == nil {
		return nil
	}
	for _, it := range s.Builds {
		if !it.Revealed {
			return it
		}
	}
	return nil
}
