package htmldeck

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	mdhtml "github.com/yuin/goldmark/renderer/html"
	"golang.org/x/net/html"
)

// BuildMarker is the comment that turns the element following it into a
// build container in markdown decks.
const BuildMarker = "build"

var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	goldmark.WithRendererOptions(mdhtml.WithUnsafe()),
)

// SplitSlides splits markdown source on lines consisting of "---", ignoring
// separators inside fenced code blocks. Empty slides are dropped.
func SplitSlides(src []byte) []string {
	var (
		out   []string
		cur   strings.Builder
		fence string
	)
	flush := func() {
		if s := strings.TrimSpace(cur.String()); s != "" {
			out = append(out, s)
		}
		cur.Reset()
	}
	sc := bufio.NewScanner(bytes.NewReader(src))
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		line := sc.Text()
		trim := strings.TrimSpace(line)
		switch {
		case fence != "" && strings.HasPrefix(trim, fence):
			fence = ""
		case fence == "" && (strings.HasPrefix(trim, "```") || strings.HasPrefix(trim, "~~~")):
			fence = trim[:3]
		case fence == "" && trim == "---":
			flush()
			continue
		}
		cur.WriteString(line)
		cur.WriteByte('\n')
	}
	flush()
	return out
}

// ConvertMarkdown renders a markdown deck to a standalone HTML deck.
func ConvertMarkdown(src []byte) ([]byte, error) {
	var b bytes.Buffer
	b.WriteString("<!DOCTYPE html>\n<html>\n<head><meta charset=\"utf-8\"><title>")
	b.WriteString(html.EscapeString(deckTitle(src)))
	b.WriteString("</title></head>\n<body>\n<section class=\"slides\">\n")
	for i, s := range SplitSlides(src) {
		b.WriteString("<article>\n")
		if err := md.Convert([]byte(s), &b); err != nil {
			return nil, fmt.Errorf("render slide %d: %w", i+1, err)
		}
		b.WriteString("</article>\n")
	}
	b.WriteString("</section>\n</body>\n</html>\n")
	return b.Bytes(), nil
}

// FromMarkdown builds a document from a markdown deck. A
// "<!-- build -->" comment marks the next element as a build container.
func FromMarkdown(src []byte) (*Document, error) {
	out, err := ConvertMarkdown(src)
	if err != nil {
		return nil, err
	}
	doc, err := Parse(bytes.NewReader(out))
	if err != nil {
		return nil, err
	}
	doc.applyBuildMarkers()
	return doc, nil
}

func (d *Document) applyBuildMarkers() {
	var comments []*html.Node
	var rec func(*html.Node)
	rec = func(n *html.Node) {
		if n.Type == html.CommentNode && strings.TrimSpace(n.Data) == BuildMarker {
			comments = append(comments, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			rec(c)
		}
	}
	rec(d.root)
	for _, c := range comments {
		for s := c.NextSibling; s != nil; s = s.NextSibling {
			if s.Type == html.ElementNode {
				d.wrap(s).AddClass("build")
				break
			}
		}
	}
}

func deckTitle(src []byte) string {
	sc := bufio.NewScanner(bytes.NewReader(src))
	for sc.Scan() {
		if t := strings.TrimSpace(sc.Text()); strings.HasPrefix(t, "#") {
			return strings.TrimSpace(strings.TrimLeft(t, "#"))
		}
	}
	return "Slides"
}
