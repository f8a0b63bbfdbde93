package deck

// FrameHandle tracks one lifecycle-managed frame.
type FrameHandle struct {
	Frame    Frame
	Original string
	Loaded   bool
}

// Frames enables and blanks embedded frames by distance from the current
// slide.
type Frames struct {
	reg    *Registry
	window int
	blank  string
}

// Capture records every frame's source and blanks it.
func (f *Frames) Capture() {
	for _, s := range f.reg.Slides() {
		for _, h := range s.Frames {
			h.Original = h.Frame.Src()
			f.blankFrame(h)
		}
	}
}

// EnableWindow restores the frames of every slide within the window of o.
func (f *Frames) EnableWindow(o int) {
	for i := o - f.window; i <= o+f.window; i++ {
		f.enable(i)
	}
}

func (f *Frames) enable(o int) {
	s := f.reg.Slide(o)
	if s == nil {
		return
	}
	for _, h := range s.Frames {
		if h.Original == "" || (h.Loaded && h.Frame.Src() == h.Original) {
			continue
		}
		h.Frame.SetSrc(h.Original)
		h.Loaded = true
	}
}

// Disable blanks the frames of exactly slide o.
func (f *Frames) Disable(o int) {
	s := f.reg.Slide(o)
	if s == nil {
		return
	}
	for _, h := range s.Frames {
		f.blankFrame(h)
	}
}

func (f *Frames) blankFrame(h *FrameHandle) {
	h.Frame.SetSrc(f.blank)
	h.Loaded = false
}

// InWindow reports whether slide o keeps its frames while current is shown.
func (f *Frames) InWindow(o, current int) bool {
	return distance(o, current) <= f.window
}

// Loaded reports whether every frame of slide o is loaded. Slides without
// frames report false.
func (f *Frames) Loaded(o int) bool {
	s := f.reg.Slide(o)
	if s == nil || len(s.Frames) == 0 {
		return false
	}
	for _, h := range s.Frames {
		if !h.Loaded {
			return false
		}
	}
	return true
}
