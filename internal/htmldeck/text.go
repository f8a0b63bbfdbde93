package htmldeck

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"deckctl/internal/deck"
)

// Markdown renders the slide element el as markdown for terminal display.
// Unrevealed build items are omitted; frames show their current source.
func (d *Document) Markdown(el deck.Element) string {
	n := d.node(el)
	if n == nil {
		return ""
	}
	w := &mdWriter{}
	w.children(n, 0)
	return strings.TrimSpace(w.b.String()) + "\n"
}

type mdWriter struct {
	b strings.Builder
}

func (w *mdWriter) children(n *html.Node, depth int) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.block(c, depth)
	}
}

func (w *mdWriter) block(n *html.Node, depth int) {
	switch n.Type {
	case html.TextNode:
		if t := collapse(n.Data); strings.TrimSpace(t) != "" {
			w.b.WriteString(strings.TrimSpace(t))
			w.b.WriteString("\n\n")
		}
		return
	case html.ElementNode:
	default:
		return
	}
	if hasClass(n, deck.ClassToBuild) {
		return
	}
	switch n.DataAtom {
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		level := int(n.Data[1] - '0')
		w.b.WriteString(strings.Repeat("#", level) + " " + strings.TrimSpace(inline(n)) + "\n\n")
	case atom.P:
		if t := strings.TrimSpace(inline(n)); t != "" {
			w.b.WriteString(t + "\n\n")
		}
	case atom.Ul, atom.Ol:
		w.list(n, depth)
		if depth == 0 {
			w.b.WriteString("\n")
		}
	case atom.Pre:
		w.b.WriteString("```\n" + strings.TrimRight(textContent(n), "\n") + "\n```\n\n")
	case atom.Blockquote:
		sub := &mdWriter{}
		sub.children(n, depth)
		for _, ln := range strings.Split(strings.TrimSpace(sub.b.String()), "\n") {
			w.b.WriteString("> " + ln + "\n")
		}
		w.b.WriteString("\n")
	case atom.Iframe:
		w.b.WriteString(frameLine(n) + "\n\n")
	case atom.Script, atom.Style, atom.Button:
	default:
		w.children(n, depth)
	}
}

func (w *mdWriter) list(n *html.Node, depth int) {
	i := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || c.DataAtom != atom.Li || hasClass(c, deck.ClassToBuild) {
			continue
		}
		i++
		marker := "-"
		if n.DataAtom == atom.Ol {
			marker = strconv.Itoa(i) + "."
		}
		var text strings.Builder
		var nested []*html.Node
		for cc := c.FirstChild; cc != nil; cc = cc.NextSibling {
			if cc.Type == html.ElementNode && (cc.DataAtom == atom.Ul || cc.DataAtom == atom.Ol) {
				nested = append(nested, cc)
				continue
			}
			text.WriteString(inlineNode(cc))
		}
		w.b.WriteString(strings.Repeat("  ", depth) + marker + " " + strings.TrimSpace(collapse(text.String())) + "\n")
		for _, l := range nested {
			w.list(l, depth+1)
		}
	}
}

func inline(n *html.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(inlineNode(c))
	}
	return collapse(b.String())
}

func inlineNode(n *html.Node) string {
	switch n.Type {
	case html.TextNode:
		return n.Data
	case html.ElementNode:
	default:
		return ""
	}
	if hasClass(n, deck.ClassToBuild) {
		return ""
	}
	switch n.DataAtom {
	case atom.Strong, atom.B:
		return "**" + inline(n) + "**"
	case atom.Em, atom.I:
		return "*" + inline(n) + "*"
	case atom.Code:
		return "`" + textContent(n) + "`"
	case atom.Br:
		return "\n"
	case atom.A:
		href := ""
		for _, a := range n.Attr {
			if a.Key == "href" {
				href = a.Val
			}
		}
		if href == "" {
			return inline(n)
		}
		return "[" + inline(n) + "](" + href + ")"
	case atom.Iframe:
		return frameLine(n)
	case atom.Script, atom.Style:
		return ""
	}
	return inline(n)
}

func frameLine(n *html.Node) string {
	src := ""
	for _, a := range n.Attr {
		if a.Key == "src" {
			src = a.Val
		}
	}
	if src == "" || src == deck.DefaultBlankSrc {
		return "[frame: not loaded]"
	}
	return "[frame: " + src + "]"
}

// collapse folds runs of whitespace into single spaces.
func collapse(s string) string {
	var b strings.Builder
	space := false
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '\r', '\f':
			if !space {
				b.WriteByte(' ')
			}
			space = true
		default:
			b.WriteRune(r)
			space = false
		}
	}
	return b.String()
}
