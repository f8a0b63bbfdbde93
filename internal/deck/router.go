package deck

import (
	"strconv"
	"strings"
)

// Router keeps the current ordinal in the location fragment.
type Router struct {
	loc Location
}

// NewRouter returns a router over loc.
func NewRouter(loc Location) *Router { return &Router{loc: loc} }

// ReadInitialOrdinal returns the ordinal named by the fragment, or 0 when the
// fragment is missing, malformed or out of [0, n).
func (r *Router) ReadInitialOrdinal(n int) int {
	if r.loc == nil {
		return 0
	}
	o, ok := ParseFragment(r.loc.Hash())
	if !ok || o >= n {
		return 0
	}
	return o
}

// Publish rewrites the fragment to name ordinal o.
func (r *Router) Publish(o int) {
	if r.loc == nil {
		return
	}
	r.loc.Replace(FormatFragment(o))
}

// ParseFragment parses "#<n>" (1-based) into a 0-based ordinal.
func ParseFragment(hash string) (int, bool) {
	s := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(hash), "#"))
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, false
	}
	return n - 1, true
}

// FormatFragment returns the fragment naming ordinal o.
func FormatFragment(o int) string { return "#" + strconv.Itoa(o+1) }

// MemoryLocation is an in-process Location.
type MemoryLocation struct {
	hash     string
	replaced int
}

// NewMemoryLocation returns a location starting at hash.
func NewMemoryLocation(hash string) *MemoryLocation {
	return &MemoryLocation{hash: hash}
}

func (l *MemoryLocation) Hash() string { return l.hash }

func (l *MemoryLocation) Replace(hash string) {
	l.hash = hash
	l.replaced++
}

// Replaced reports how many times the fragment was rewritten.
func (l *MemoryLocation) Replaced() int { return l.replaced }
