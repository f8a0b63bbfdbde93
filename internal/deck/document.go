package deck

// Element is the engine's view of a document element. Implementations must
// be comparable (pointer types) because the registry indexes them.
type Element interface {
	Attr(name string) (string, bool)
	SetAttr(name, value string)
	RemoveAttr(name string)
	HasClass(name string) bool
	AddClass(name string)
	RemoveClass(name string)
}

// Frame is an embeddable frame. The engine only reads and writes its source.
type Frame interface {
	Src() string
	SetSrc(src string)
}

// Document is the host document a deck runs against.
type Document interface {
	// Slides returns the top-level slide containers in document order.
	Slides() []Element
	// Heading returns the text of the first heading inside slide.
	Heading(slide Element) (string, bool)
	// Descendants returns every element nested under slide.
	Descendants(slide Element) []Element
	// BuildItems returns the build-member elements of slide in order.
	BuildItems(slide Element) []Element
	// Frames returns the frames nested under slide.
	Frames(slide Element) []Frame
	// Focus moves keyboard focus to el. Hosts that emit focus notifications
	// synchronously do so before Focus returns.
	Focus(el Element)
}

// Location is the document location fragment.
type Location interface {
	Hash() string
	// Replace rewrites the fragment without adding a history entry.
	Replace(hash string)
}
