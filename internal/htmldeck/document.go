// Package htmldeck hosts a deck on an in-memory HTML tree. Slides are the
// <article> children of <section class="slides">; build items are the
// children of elements with class "build"; frames are <iframe> elements.
package htmldeck

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"deckctl/internal/deck"
)

// Document is a parsed HTML deck. It implements deck.Document.
type Document struct {
	Path string

	root   *html.Node
	elems  map[*html.Node]*Element
	active *Element
}

var _ deck.Document = (*Document)(nil)

// Element wraps one element node. It implements deck.Element and deck.Frame.
type Element struct {
	doc  *Document
	node *html.Node
}

var (
	_ deck.Element = (*Element)(nil)
	_ deck.Frame   = (*Element)(nil)
)

// Parse reads an HTML deck.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return &Document{root: root, elems: map[*html.Node]*Element{}}, nil
}

// Load reads a deck from path. Files ending in .md or .markdown are
// converted with FromMarkdown first.
func Load(path string) (*Document, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read deck: %w", err)
	}
	var doc *Document
	if IsMarkdown(path) {
		doc, err = FromMarkdown(b)
	} else {
		doc, err = Parse(bytes.NewReader(b))
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	doc.Path = path
	return doc, nil
}

// IsMarkdown reports whether path names a markdown deck.
func IsMarkdown(path string) bool {
	p := strings.ToLower(path)
	return strings.HasSuffix(p, ".md") || strings.HasSuffix(p, ".markdown")
}

// Render writes the document, including every change the engine made.
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

// String renders the document to a string.
func (d *Document) String() string {
	var b strings.Builder
	_ = d.Render(&b)
	return b.String()
}

// MarkLoaded adds the "loaded" class to <body> once setup is done.
func (d *Document) MarkLoaded() {
	if body := find(d.root, func(n *html.Node) bool { return n.DataAtom == atom.Body }); body != nil {
		d.wrap(body).AddClass("loaded")
	}
}

// ActiveElement returns the focused element, or nil.
func (d *Document) ActiveElement() *Element { return d.active }

func (d *Document) wrap(n *html.Node) *Element {
	if e, ok := d.elems[n]; ok {
		return e
	}
	e := &Element{doc: d, node: n}
	d.elems[n] = e
	return e
}

// Slides implements deck.Document.
func (d *Document) Slides() []deck.Element {
	var out []deck.Element
	walk(d.root, func(n *html.Node) bool {
		if n.DataAtom == atom.Section && hasClass(n, "slides") {
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.ElementNode && c.DataAtom == atom.Article {
					out = append(out, d.wrap(c))
				}
			}
			return false
		}
		return true
	})
	return out
}

// Heading implements deck.Document.
func (d *Document) Heading(slide deck.Element) (string, bool) {
	n := d.node(slide)
	if n == nil {
		return "", false
	}
	h := find(n, isHeading)
	if h == nil || h == n {
		return "", false
	}
	return textContent(h), true
}

// Descendants implements deck.Document.
func (d *Document) Descendants(slide deck.Element) []deck.Element {
	n := d.node(slide)
	if n == nil {
		return nil
	}
	var out []deck.Element
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, func(m *html.Node) bool {
			out = append(out, d.wrap(m))
			return true
		})
	}
	return out
}

// BuildItems implements deck.Document.
func (d *Document) BuildItems(slide deck.Element) []deck.Element {
	n := d.node(slide)
	if n == nil {
		return nil
	}
	var out []deck.Element
	walk(n, func(m *html.Node) bool {
		if m != n && hasClass(m.Parent, "build") {
			out = append(out, d.wrap(m))
		}
		return true
	})
	return out
}

// Frames implements deck.Document.
func (d *Document) Frames(slide deck.Element) []deck.Frame {
	n := d.node(slide)
	if n == nil {
		return nil
	}
	var out []deck.Frame
	walk(n, func(m *html.Node) bool {
		if m.DataAtom == atom.Iframe {
			out = append(out, d.wrap(m))
		}
		return true
	})
	return out
}

// Focus implements deck.Document.
func (d *Document) Focus(el deck.Element) {
	if e, ok := el.(*Element); ok && e.doc == d {
		d.active = e
	}
}

func (d *Document) node(el deck.Element) *html.Node {
	e, ok := el.(*Element)
	if !ok || e.doc != d {
		return nil
	}
	return e.node
}

// Node returns the underlying html node.
func (e *Element) Node() *html.Node { return e.node }

// Attr implements deck.Element.
func (e *Element) Attr(name string) (string, bool) {
	for _, a := range e.node.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr implements deck.Element.
func (e *Element) SetAttr(name, value string) {
	for i, a := range e.node.Attr {
		if a.Namespace == "" && a.Key == name {
			e.node.Attr[i].Val = value
			return
		}
	}
	e.node.Attr = append(e.node.Attr, html.Attribute{Key: name, Val: value})
}

// RemoveAttr implements deck.Element.
func (e *Element) RemoveAttr(name string) {
	attrs := e.node.Attr[:0]
	for _, a := range e.node.Attr {
		if a.Namespace == "" && a.Key == name {
			continue
		}
		attrs = append(attrs, a)
	}
	e.node.Attr = attrs
}

// HasClass implements deck.Element.
func (e *Element) HasClass(name string) bool { return hasClass(e.node, name) }

// AddClass implements deck.Element.
func (e *Element) AddClass(name string) {
	if name == "" || e.HasClass(name) {
		return
	}
	cls := classes(e.node)
	e.SetAttr("class", strings.Join(append(cls, name), " "))
}

// RemoveClass implements deck.Element.
func (e *Element) RemoveClass(name string) {
	if !e.HasClass(name) {
		return
	}
	var keep []string
	for _, c := range classes(e.node) {
		if c != name {
			keep = append(keep, c)
		}
	}
	if len(keep) == 0 {
		e.RemoveAttr("class")
		return
	}
	e.SetAttr("class", strings.Join(keep, " "))
}

// Src implements deck.Frame.
func (e *Element) Src() string {
	v, _ := e.Attr("src")
	return v
}

// SetSrc implements deck.Frame.
func (e *Element) SetSrc(src string) { e.SetAttr("src", src) }

// Text returns the element's text content.
func (e *Element) Text() string { return textContent(e.node) }

func classes(n *html.Node) []string {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == "class" {
			return strings.Fields(a.Val)
		}
	}
	return nil
}

func hasClass(n *html.Node, name string) bool {
	for _, c := range classes(n) {
		if c == name {
			return true
		}
	}
	return false
}

func isHeading(n *html.Node) bool {
	switch n.DataAtom {
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		return true
	}
	return false
}

// walk visits element nodes depth-first in document order, starting at n.
// Returning false from fn skips the node's children.
func walk(n *html.Node, fn func(*html.Node) bool) {
	if n.Type == html.ElementNode {
		if !fn(n) {
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

func find(n *html.Node, match func(*html.Node) bool) *html.Node {
	var out *html.Node
	walk(n, func(m *html.Node) bool {
		if out != nil {
			return false
		}
		if match(m) {
			out = m
			return false
		}
		return true
	})
	return out
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var rec func(*html.Node)
	rec = func(m *html.Node) {
		if m.Type == html.TextNode {
			b.WriteString(m.Data)
		}
		for c := m.FirstChild; c != nil; c = c.NextSibling {
			rec(c)
		}
	}
	rec(n)
	return b.String()
}
