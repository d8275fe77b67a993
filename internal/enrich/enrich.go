// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package enrich turns a topic's HTML summary into a tree of typed content
// blocks. Links to other topics in the library become cross-references.
package enrich

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/EshwaranandB/medkit.ai/pkg/types"
)

// Kind identifies a block.
type Kind string

const (
	KindParagraph   Kind = "paragraph"
	KindHeading     Kind = "heading"
	KindQuestion    Kind = "question"
	KindList        Kind = "list"
	KindTable       Kind = "table"
	KindDefinitions Kind = "definitions"
)

// Reference is a resolved link to another topic.
type Reference struct {
	TopicID  string         `json:"topic_id" yaml:"topic_id"`
	Title    string         `json:"title" yaml:"title"`
	Category types.Category `json:"category" yaml:"category"`
}

// Span is a run of inline text. A span is either plain, bold, an external
// link (Href), or a cross-reference (Ref).
type Span struct {
	Text string     `json:"text" yaml:"text"`
	Bold bool       `json:"bold,omitempty" yaml:"bold,omitempty"`
	Href string     `json:"href,omitempty" yaml:"href,omitempty"`
	Ref  *Reference `json:"ref,omitempty" yaml:"ref,omitempty"`
}

// Definition is one term of a definitions block.
type Definition struct {
	Term        string `json:"term" yaml:"term"`
	Description []Span `json:"description" yaml:"description"`
}

// Block is one top-level content element.
type Block struct {
	Kind        Kind         `json:"kind" yaml:"kind"`
	Spans       []Span       `json:"spans,omitempty" yaml:"spans,omitempty"`
	Level       int          `json:"level,omitempty" yaml:"level,omitempty"`
	Ordered     bool         `json:"ordered,omitempty" yaml:"ordered,omitempty"`
	Items       [][]Span     `json:"items,omitempty" yaml:"items,omitempty"`
	Header      [][]Span     `json:"header,omitempty" yaml:"header,omitempty"`
	Rows        [][][]Span   `json:"rows,omitempty" yaml:"rows,omitempty"`
	Definitions []Definition `json:"definitions,omitempty" yaml:"definitions,omitempty"`
}

// Lookup resolves topics in the library. *library.Index implements it.
type Lookup interface {
	ByLocator(locator string) (types.Topic, bool)
	ByTitle(title string) (types.Topic, bool)
	CategoryOf(id string) (types.Category, bool)
}

// internalLink matches links to a top-level topic page on MedlinePlus.
var internalLink = regexp.MustCompile(`(?i)^https://medlineplus\.gov/[a-z0-9]+\.html$`)

// Enricher converts summaries using a library for cross-references.
type Enricher struct {
	lookup Lookup
}

// New returns an Enricher. A nil lookup leaves every link external.
func New(lookup Lookup) *Enricher {
	return &Enricher{lookup: lookup}
}

// Blocks parses summary and returns its blocks. Malformed markup is
// repaired by the HTML parser; plain text becomes a single paragraph.
func (e *Enricher) Blocks(summary string) []Block {
	if strings.TrimSpace(summary) == "" {
		return nil
	}
	root := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	nodes, err := html.ParseFragment(strings.NewReader(summary), root)
	if err != nil {
		return []Block{{Kind: KindParagraph, Spans: []Span{{Text: collapse(summary)}}}}
	}

	var blocks []Block
	var loose []*html.Node
	flush := func() {
		if spans := e.spans(loose...); len(spans) > 0 {
			blocks = append(blocks, Block{Kind: KindParagraph, Spans: spans})
		}
		loose = nil
	}

	for _, n := range nodes {
		if n.Type != html.ElementNode || isInline(n) {
			loose = append(loose, n)
			continue
		}
		flush()
		if b, ok := e.block(n); ok {
			blocks = append(blocks, b)
		}
	}
	flush()
	return blocks
}

func (e *Enricher) block(n *html.Node) (Block, bool) {
	switch n.DataAtom {
	case atom.Table:
		return e.table(n), true
	case atom.Ul, atom.Ol:
		var items [][]Span
		for li := range n.ChildNodes() {
			if li.DataAtom == atom.Li {
				items = append(items, e.spans(li))
			}
		}
		return Block{Kind: KindList, Ordered: n.DataAtom == atom.Ol, Items: items}, len(items) > 0
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		spans := e.spans(n)
		return Block{Kind: KindHeading, Level: int(n.Data[1] - '0'), Spans: spans}, len(spans) > 0
	case atom.P:
		if defs := e.definitions(n); len(defs) > 1 {
			return Block{Kind: KindDefinitions, Definitions: defs}, true
		}
		if text := strings.TrimSpace(collapse(textOf(n))); strings.HasSuffix(text, "?") {
			return Block{Kind: KindQuestion, Spans: []Span{{Text: text}}}, true
		}
	}
	spans := e.spans(n)
	return Block{Kind: KindParagraph, Spans: spans}, len(spans) > 0
}

func (e *Enricher) table(n *html.Node) Block {
	b := Block{Kind: KindTable}
	var walk func(*html.Node, bool)
	walk = func(n *html.Node, inHead bool) {
		for c := range n.ChildNodes() {
			switch c.DataAtom {
			case atom.Thead:
				walk(c, true)
			case atom.Tbody, atom.Tfoot:
				walk(c, false)
			case atom.Tr:
				var cells [][]Span
				for cell := range c.ChildNodes() {
					if cell.DataAtom == atom.Td || cell.DataAtom == atom.Th {
						cells = append(cells, e.spans(cell))
					}
				}
				if inHead && b.Header == nil {
					b.Header = cells
				} else {
					b.Rows = append(b.Rows, cells)
				}
			}
		}
	}
	walk(n, false)
	return b
}

// definitions reads a paragraph of the form "<b>Term</b>: text <b>Term</b>
// text ...". Content before the first bold term is dropped.
func (e *Enricher) definitions(p *html.Node) []Definition {
	var defs []Definition
	var body []*html.Node
	term := ""
	flush := func() {
		if term != "" {
			spans := e.spans(body...)
			if len(spans) > 0 {
				spans[0].Text = strings.TrimLeft(spans[0].Text, ": ")
				if spans[0].Text == "" {
					spans = spans[1:]
				}
			}
			if len(spans) > 0 {
				defs = append(defs, Definition{Term: term, Description: spans})
			}
		}
		body = nil
	}

	bolds := 0
	for c := range p.ChildNodes() {
		if c.DataAtom == atom.B || c.DataAtom == atom.Strong {
			bolds++
			flush()
			term = strings.TrimSpace(collapse(textOf(c)))
			continue
		}
		body = append(body, c)
	}
	flush()
	if bolds < 2 {
		return nil
	}
	return defs
}

// spans flattens the inline content of nodes.
func (e *Enricher) spans(nodes ...*html.Node) []Span {
	var out []Span
	var walk func(*html.Node, bool)
	walk = func(n *html.Node, bold bool) {
		switch n.Type {
		case html.TextNode:
			out = appendText(out, Span{Text: collapse(n.Data), Bold: bold})
			return
		case html.ElementNode:
		default:
			return
		}

		switch n.DataAtom {
		case atom.A:
			out = append(out, e.link(n))
			return
		case atom.Br:
			out = appendText(out, Span{Text: " "})
			return
		case atom.B, atom.Strong:
			bold = true
		}
		for c := range n.ChildNodes() {
			walk(c, bold)
		}
	}
	for _, n := range nodes {
		walk(n, false)
	}
	return trimSpans(out)
}

func (e *Enricher) link(a *html.Node) Span {
	text := strings.TrimSpace(collapse(textOf(a)))
	href := attr(a, "href")
	span := Span{Text: text, Href: href}
	if e.lookup == nil || !internalLink.MatchString(href) {
		return span
	}

	t, ok := e.lookup.ByLocator(href)
	if !ok {
		t, ok = e.lookup.ByTitle(text)
	}
	if !ok {
		return span
	}
	c, _ := e.lookup.CategoryOf(t.ID)
	return Span{Text: t.Title, Ref: &Reference{TopicID: t.ID, Title: t.Title, Category: c}}
}

func appendText(out []Span, s Span) []Span {
	if s.Text == "" {
		return out
	}
	if n := len(out); n > 0 {
		last := &out[n-1]
		if last.Href == "" && last.Ref == nil && last.Bold == s.Bold {
			last.Text = collapse(last.Text + s.Text)
			return out
		}
	}
	return append(out, s)
}

func trimSpans(spans []Span) []Span {
	for len(spans) > 0 {
		spans[0].Text = strings.TrimLeft(spans[0].Text, " ")
		if spans[0].Text != "" {
			break
		}
		spans = spans[1:]
	}
	for len(spans) > 0 {
		last := len(spans) - 1
		spans[last].Text = strings.TrimRight(spans[last].Text, " ")
		if spans[last].Text != "" {
			break
		}
		spans = spans[:last]
	}
	return spans
}

func isInline(n *html.Node) bool {
	switch n.DataAtom {
	case atom.A, atom.B, atom.Strong, atom.I, atom.Em, atom.Span, atom.Br, atom.Sup, atom.Sub:
		return true
	}
	return false
}

func textOf(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for c := range n.Descendants() {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
	}
	return sb.String()
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// collapse replaces each run of whitespace with one space, keeping a
// single leading or trailing space when present.
func collapse(s string) string {
	if s == "" {
		return ""
	}
	inner := strings.Join(strings.Fields(s), " ")
	if inner == "" {
		return " "
	}
	if isSpace(s[0]) {
		inner = " " + inner
	}
	if isSpace(s[len(s)-1]) {
		inner += " "
	}
	return inner
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\n' || b == '\t' || b == '\r' || b == '\f'
}
