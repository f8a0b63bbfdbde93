package app

import (
	"errors"
	"path/filepath"
	"testing"

	"deckctl/internal/deck"
	tu "deckctl/internal/testutil"
)

func TestSplitTarget(t *testing.T) {
	cases := []struct{ in, path, hash string }{
		{"deck.html", "deck.html", ""},
		{"deck.html#3", "deck.html", "#3"},
		{"dir/talk.md#12", "dir/talk.md", "#12"},
		{"a#b#4", "a#b", "#4"},
	}
	for _, c := range cases {
		p, h := SplitTarget(c.in)
		if p != c.path || h != c.hash {
			t.Fatalf("SplitTarget(%q) = %q, %q", c.in, p, h)
		}
	}
}

func TestPresent_NoSlides(t *testing.T) {
	p := tu.WriteFile(t, "empty.html", "<html><body><p>hi</p></body></html>")
	err := Present(p+"#2", PresentOptions{})
	if !errors.Is(err, deck.ErrNoSlides) {
		t.Fatalf("expected ErrNoSlides, got %v", err)
	}
}

func TestPresent_MissingFile(t *testing.T) {
	if err := Present(filepath.Join(t.TempDir(), "nope.html"), PresentOptions{}); err == nil {
		t.Fatalf("expected error")
	}
}
