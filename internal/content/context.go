package content

import "github.com/canton7/Dox2Word-sub000/internal/ir"

// Context is the formatting state threaded through recursion. It is passed
// by value, so an override made for one subtree never leaks to siblings.
type Context struct {
	Style ir.TextStyle
	Align ir.Alignment

	// Kind and Title tag paragraphs opened inside an admonition or quote.
	Kind  ir.ParagraphKind
	Title string
}

// WithStyle returns a copy with the given flags OR-ed in.
func (c Context) WithStyle(s ir.TextStyle) Context {
	c.Style = c.Style.Merge(s)
	return c
}

// WithAlign returns a copy with the alignment overridden.
func (c Context) WithAlign(a ir.Alignment) Context {
	c.Align = a
	return c
}

// WithKind returns a copy whose new paragraphs are tagged kind.
func (c Context) WithKind(kind ir.ParagraphKind, title string) Context {
	c.Kind = kind
	c.Title = title
	return c
}

// block returns the context for nested block content such as list items
// and table cells: formatting carries over, paragraph tagging does not.
func (c Context) block() Context {
	c.Kind = ir.ParagraphNormal
	c.Title = ""
	return c
}
