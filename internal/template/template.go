// Package template fills HTML document templates.
//
// A template is an ordinary HTML file. Placeholders are written escaped,
// as &lt;name&gt;, so they reach the text nodes as <name> and never clash
// with HTML elements. For placeholder scanning every block element is a
// paragraph, its text nodes are the segments, and inline elements are the
// containers that hold them.
package template

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/canton7/Dox2Word-sub000/internal/placeholder"
)

// ErrAnchorNotFound is returned by InsertAt when the anchor placeholder is
// absent from the template.
var ErrAnchorNotFound = errors.New("anchor placeholder not found")

// Document is a parsed HTML template.
type Document struct {
	root *html.Node
}

// Load reads and parses a template file.
func Load(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening template: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse parses a template from r.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing template: %w", err)
	}
	return &Document{root: root}, nil
}

// Render writes the document as HTML.
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

// String renders the document to a string.
func (d *Document) String() string {
	var sb strings.Builder
	if err := d.Render(&sb); err != nil {
		return ""
	}
	return sb.String()
}

// Fill substitutes placeholder values throughout the document.
func (d *Document) Fill(values map[string]string, logger *slog.Logger) placeholder.Result {
	return placeholder.Replace(d, values, logger)
}

// InsertAt removes the anchor placeholder and inserts nodes right after the
// block that held it. That block is dropped when nothing visible is left in
// it.
func (d *Document) InsertAt(anchor string, nodes []*html.Node, logger *slog.Logger) error {
	found, ok := placeholder.FindAndRemove(d, anchor, logger)
	if !ok {
		return fmt.Errorf("%w: <%s>", ErrAnchorNotFound, anchor)
	}
	block := found.(*Paragraph).Node

	parent := block.Parent
	next := block.NextSibling
	if parent == nil {
		return fmt.Errorf("anchor <%s> is not inside the document body", anchor)
	}
	for _, n := range nodes {
		parent.InsertBefore(n, next)
	}
	if isBlank(block) {
		parent.RemoveChild(block)
	}
	return nil
}

// Paragraphs implements placeholder.Tree. The list is rebuilt on every call
// so it reflects earlier edits.
func (d *Document) Paragraphs() []placeholder.Paragraph {
	var out []placeholder.Paragraph
	collectChildren(d.root, nil, &out)
	return out
}

// Paragraph is one block element.
type Paragraph struct {
	Node *html.Node
	segs []placeholder.Segment
}

// Segments implements placeholder.Paragraph.
func (p *Paragraph) Segments() []placeholder.Segment {
	out := make([]placeholder.Segment, len(p.segs))
	copy(out, p.segs)
	return out
}

// segment is a text node.
type segment struct {
	node  *html.Node
	block *html.Node
}

func (s *segment) Text() string        { return s.node.Data }
func (s *segment) SetText(text string) { s.node.Data = text }

// Remove detaches the text node and then any inline ancestors left empty,
// stopping at the owning block.
func (s *segment) Remove() {
	parent := s.node.Parent
	if parent == nil {
		return
	}
	parent.RemoveChild(s.node)
	for parent != s.block && parent.FirstChild == nil && parent.Parent != nil {
		gp := parent.Parent
		gp.RemoveChild(parent)
		parent = gp
	}
}

// collectChildren gathers the paragraphs below n. Text found along the way
// belongs to p, the nearest enclosing block.
func collectChildren(n *html.Node, p *Paragraph, out *[]placeholder.Paragraph) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			if p != nil {
				p.segs = append(p.segs, &segment{node: c, block: p.Node})
			}
		case html.ElementNode:
			if skipped(c) {
				continue
			}
			if isBlock(c) {
				inner := &Paragraph{Node: c}
				*out = append(*out, inner)
				collectChildren(c, inner, out)
				continue
			}
			collectChildren(c, p, out)
		}
	}
}

var blockElements = map[atom.Atom]bool{
	atom.Html: true, atom.Head: true, atom.Title: true, atom.Body: true,
	atom.P: true, atom.Div: true, atom.Pre: true, atom.Blockquote: true,
	atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Ul: true, atom.Ol: true, atom.Li: true, atom.Dl: true, atom.Dt: true, atom.Dd: true,
	atom.Table: true, atom.Caption: true, atom.Thead: true, atom.Tbody: true, atom.Tfoot: true,
	atom.Tr: true, atom.Td: true, atom.Th: true,
	atom.Section: true, atom.Article: true, atom.Header: true, atom.Footer: true,
	atom.Main: true, atom.Nav: true, atom.Aside: true, atom.Figure: true, atom.Figcaption: true,
}

func isBlock(n *html.Node) bool {
	return blockElements[n.DataAtom]
}

func skipped(n *html.Node) bool {
	switch n.DataAtom {
	case atom.Script, atom.Style, atom.Template, atom.Noscript:
		return true
	}
	return false
}

// isBlank reports whether n shows nothing: whitespace text only and no
// embedded content.
func isBlank(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			if strings.TrimSpace(c.Data) != "" {
				return false
			}
		case html.ElementNode:
			switch c.DataAtom {
			case atom.Img, atom.Hr, atom.Svg, atom.Iframe, atom.Object, atom.Embed, atom.Input, atom.Video:
				return false
			}
			if !isBlank(c) {
				return false
			}
		}
	}
	return true
}
