package htmldeck

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// AppendHead parses fragment in the context of <head> and appends the
// resulting nodes to it.
func (d *Document) AppendHead(fragment string) error {
	return d.appendTo(atom.Head, fragment)
}

// AppendBody parses fragment in the context of <body> and appends the
// resulting nodes to it.
func (d *Document) AppendBody(fragment string) error {
	return d.appendTo(atom.Body, fragment)
}

// HasStylesheet reports whether the document links a stylesheet or carries
// an inline <style>.
func (d *Document) HasStylesheet() bool {
	return find(d.root, func(n *html.Node) bool {
		if n.DataAtom == atom.Style {
			return true
		}
		if n.DataAtom != atom.Link {
			return false
		}
		for _, a := range n.Attr {
			if a.Key == "rel" && strings.EqualFold(strings.TrimSpace(a.Val), "stylesheet") {
				return true
			}
		}
		return false
	}) != nil
}

func (d *Document) appendTo(a atom.Atom, fragment string) error {
	parent := find(d.root, func(n *html.Node) bool { return n.DataAtom == a })
	if parent == nil {
		return fmt.Errorf("document has no <%s>", a)
	}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), parent)
	if err != nil {
		return fmt.Errorf("parse fragment: %w", err)
	}
	for _, n := range nodes {
		parent.AppendChild(n)
	}
	return nil
}
