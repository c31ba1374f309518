package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/canton7/Dox2Word-sub000/internal/ir"
)

// HTML writes a standalone HTML page for the document.
func HTML(w io.Writer, doc *ir.Document) error {
	title := DocumentTitle(doc)

	head := element(atom.Head)
	head.AppendChild(element(atom.Meta, "charset", "utf-8"))
	head.AppendChild(withText(element(atom.Title), title))

	body := element(atom.Body)
	for _, n := range HTMLNodes(doc) {
		body.AppendChild(n)
	}

	page := element(atom.Html)
	page.AppendChild(head)
	page.AppendChild(body)

	root := &html.Node{Type: html.DocumentNode}
	root.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})
	root.AppendChild(page)
	return html.Render(w, root)
}

// HTMLNodes renders the document body as detached nodes, ready to be
// inserted into another tree such as a filled template.
func HTMLNodes(doc *ir.Document) []*html.Node {
	var out []*html.Node

	h1 := withText(element(atom.H1), DocumentTitle(doc))
	if doc.Metadata.ID != "" {
		h1.Attr = append(h1.Attr, html.Attribute{Key: "id", Val: doc.Metadata.ID})
	}
	out = append(out, h1)
	if len(doc.Metadata.Brief) > 0 {
		p := element(atom.P, "class", "brief")
		appendInline(p, doc.Metadata.Brief)
		out = append(out, p)
	}
	out = append(out, HTMLBlocks(doc.Content, 1)...)

	for _, section := range doc.Sections {
		out = append(out, withText(element(atom.H2), SectionTitle(section)))
		out = append(out, HTMLBlocks(section.Description, 2)...)
		for _, m := range section.Members {
			out = append(out, htmlMember(m)...)
		}
	}
	return out
}

func htmlMember(m ir.Member) []*html.Node {
	h := withText(element(atom.H3, "id", m.ID), m.Name)
	out := []*html.Node{h}

	pre := element(atom.Pre, "class", "signature")
	pre.AppendChild(withText(element(atom.Code), Signature(m)))
	out = append(out, pre)
	out = append(out, HTMLBlocks(m.Brief, 3)...)
	out = append(out, HTMLBlocks(m.Detail, 3)...)

	out = append(out, htmlParams("Template Parameters", m.TParams)...)
	out = append(out, htmlParams("Parameters", m.Params)...)
	if len(m.Returns) > 0 {
		out = append(out, withText(element(atom.P, "class", "returns"), "Returns"))
		out = append(out, HTMLBlocks(m.Returns, 3)...)
	}
	out = append(out, htmlParams("Return Values", m.RetVals)...)
	out = append(out, htmlParams("Exceptions", m.Exceptions)...)

	if len(m.Enumerators) > 0 {
		table := element(atom.Table, "class", "enumerators")
		tr := element(atom.Tr)
		for _, h := range []string{"Enumerator", "Value", "Description"} {
			tr.AppendChild(withText(element(atom.Th), h))
		}
		table.AppendChild(tr)
		for _, e := range m.Enumerators {
			tr := element(atom.Tr)
			name := element(atom.Td, "id", e.ID)
			name.AppendChild(withText(element(atom.Code), e.Name))
			tr.AppendChild(name)
			value := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(e.Initializer), "="))
			tr.AppendChild(withText(element(atom.Td), value))
			desc := element(atom.Td)
			appendAll(desc, HTMLBlocks(e.Description, 3))
			tr.AppendChild(desc)
			table.AppendChild(tr)
		}
		out = append(out, table)
	}
	return out
}

func htmlParams(title string, params []ir.Param) []*html.Node {
	if len(params) == 0 {
		return nil
	}
	dl := element(atom.Dl, "class", "params")
	for _, p := range params {
		dt := element(atom.Dt)
		dt.AppendChild(withText(element(atom.Code), p.Name))
		if p.Direction != "" {
			dt.AppendChild(text(" [" + p.Direction + "]"))
		}
		dd := element(atom.Dd)
		appendAll(dd, HTMLBlocks(p.Description, 3))
		dl.AppendChild(dt)
		dl.AppendChild(dd)
	}
	return []*html.Node{withText(element(atom.P, "class", "params-title"), title), dl}
}

// HTMLBlocks renders a block sequence. level is the heading level of the
// enclosing section.
func HTMLBlocks(blocks []ir.Block, level int) []*html.Node {
	var out []*html.Node
	for _, block := range blocks {
		switch block.Type {
		case ir.BlockTypeParagraph:
			if block.Paragraph != nil {
				out = append(out, htmlParagraph(block.Paragraph)...)
			}
		case ir.BlockTypeList:
			if block.List != nil {
				out = append(out, htmlList(block.List))
			}
		case ir.BlockTypeDefinitionList:
			if block.Definitions != nil {
				out = append(out, htmlDefinitions(block.Definitions, level))
			}
		case ir.BlockTypeTable:
			if block.Table != nil {
				out = append(out, htmlTable(block.Table, level))
			}
		case ir.BlockTypeCode:
			if block.Code != nil {
				out = append(out, htmlCode(block.Code))
			}
		case ir.BlockTypeImage:
			if block.Image != nil {
				out = append(out, htmlImage(block.Image))
			}
		case ir.BlockTypeDiagram:
			if block.Diagram != nil {
				out = append(out, htmlDiagram(block.Diagram))
			}
		case ir.BlockTypeTitle:
			if block.Title != nil {
				out = append(out, htmlTitle(block.Title, level))
			}
		}
	}
	return out
}

func htmlParagraph(p *ir.Paragraph) []*html.Node {
	var node *html.Node
	switch p.Kind {
	case ir.ParagraphPreformatted:
		node = withText(element(atom.Pre), p.Text())
	case ir.ParagraphBlockQuote:
		inner := element(atom.P)
		appendInline(inner, p.Runs)
		node = element(atom.Blockquote)
		node.AppendChild(inner)
	case ir.ParagraphWarning, ir.ParagraphNote, ir.ParagraphTitled:
		title := p.Title
		if title == "" {
			title = strings.ToUpper(string(p.Kind[:1])) + string(p.Kind[1:])
		}
		node = element(atom.Div, "class", "admonition "+string(p.Kind))
		node.AppendChild(withText(element(atom.P, "class", "admonition-title"), title))
		inner := element(atom.P)
		appendInline(inner, p.Runs)
		node.AppendChild(inner)
	default:
		node = element(atom.P)
		appendInline(node, p.Runs)
	}

	if p.Alignment != ir.AlignDefault {
		node.Attr = append(node.Attr, html.Attribute{Key: "style", Val: "text-align: " + string(p.Alignment)})
	}

	out := []*html.Node{node}
	if node.FirstChild == nil {
		out = nil
	}
	if p.Ruled {
		out = append(out, element(atom.Hr))
	}
	return out
}

func htmlList(l *ir.ListBlock) *html.Node {
	tag := atom.Ul
	if l.Ordered {
		tag = atom.Ol
	}
	list := element(tag)

	var last *html.Node
	for _, item := range l.Items {
		// A sub-list belongs to the entry before it.
		if item.Type == ir.BlockTypeList && last != nil {
			last.AppendChild(htmlList(item.List))
			continue
		}
		li := element(atom.Li)
		if item.Type == ir.BlockTypeParagraph && item.Paragraph != nil && item.Paragraph.Kind == ir.ParagraphNormal {
			appendInline(li, item.Paragraph.Runs)
		} else {
			appendAll(li, HTMLBlocks([]ir.Block{item}, 0))
		}
		list.AppendChild(li)
		last = li
	}
	return list
}

func htmlDefinitions(d *ir.DefinitionList, level int) *html.Node {
	dl := element(atom.Dl)
	for _, e := range d.Entries {
		dt := element(atom.Dt)
		appendInline(dt, e.Term)
		dd := element(atom.Dd)
		appendAll(dd, HTMLBlocks(e.Description, level))
		dl.AppendChild(dt)
		dl.AppendChild(dd)
	}
	return dl
}

func htmlTable(t *ir.TableBlock, level int) *html.Node {
	table := element(atom.Table)
	if len(t.Caption) > 0 {
		caption := element(atom.Caption)
		appendInline(caption, t.Caption)
		table.AppendChild(caption)
	}

	for r, row := range t.Rows {
		tr := element(atom.Tr)
		for c, cell := range row {
			tag := atom.Td
			if (r == 0 && t.FirstRowHeader) || (c == 0 && t.FirstColumnHeader) {
				tag = atom.Th
			}
			td := element(tag)
			if cell.ColSpan > 1 {
				td.Attr = append(td.Attr, html.Attribute{Key: "colspan", Val: strconv.Itoa(cell.ColSpan)})
			}
			if cell.RowSpan > 1 {
				td.Attr = append(td.Attr, html.Attribute{Key: "rowspan", Val: strconv.Itoa(cell.RowSpan)})
			}
			if cell.Alignment != ir.AlignDefault {
				td.Attr = append(td.Attr, html.Attribute{Key: "style", Val: "text-align: " + string(cell.Alignment)})
			}
			// A single plain paragraph goes straight into the cell.
			if len(cell.Blocks) == 1 && cell.Blocks[0].Type == ir.BlockTypeParagraph &&
				cell.Blocks[0].Paragraph.Kind == ir.ParagraphNormal && !cell.Blocks[0].Paragraph.Ruled {
				appendInline(td, cell.Blocks[0].Paragraph.Runs)
			} else {
				appendAll(td, HTMLBlocks(cell.Blocks, level))
			}
			tr.AppendChild(td)
		}
		table.AppendChild(tr)
	}
	return table
}

func htmlCode(c *ir.CodeBlock) *html.Node {
	pre := element(atom.Pre)
	code := element(atom.Code)
	if c.Language != "" {
		code.Attr = append(code.Attr, html.Attribute{Key: "class", Val: "language-" + c.Language})
	}
	code.AppendChild(text(strings.Join(c.Lines, "\n")))
	pre.AppendChild(code)
	return pre
}

func htmlImage(img *ir.ImageBlock) *html.Node {
	alt := ir.PlainText(img.Caption)
	if alt == "" {
		alt = img.Name
	}
	tag := element(atom.Img, "src", img.Path, "alt", alt)
	if img.HasDimensions() {
		tag.Attr = append(tag.Attr,
			html.Attribute{Key: "width", Val: strconv.Itoa(img.Width)},
			html.Attribute{Key: "height", Val: strconv.Itoa(img.Height)})
	}
	if img.Inline {
		return tag
	}
	return figure(tag, img.Caption)
}

func htmlDiagram(d *ir.DiagramBlock) *html.Node {
	var body *html.Node
	switch {
	case d.RenderedPath != "":
		body = element(atom.Img, "src", d.RenderedPath, "alt", ir.PlainText(d.Caption))
	case d.Source != "" && d.Inline:
		body = withText(element(atom.Code, "class", "diagram diagram-"+string(d.Engine)), strings.Trim(d.Source, "\n"))
	case d.Source != "":
		body = withText(element(atom.Pre, "class", "diagram diagram-"+string(d.Engine)), strings.Trim(d.Source, "\n"))
	default:
		body = withText(element(atom.P, "class", "diagram diagram-"+string(d.Engine)), fmt.Sprintf("%s diagram: %s", d.Engine, d.File))
	}
	if d.Inline {
		return body
	}
	return figure(body, d.Caption)
}

func htmlTitle(t *ir.TitleBlock, level int) *html.Node {
	if t.Level == 0 {
		p := element(atom.P, "class", "caption")
		appendInline(p, t.Runs)
		return p
	}
	headings := []atom.Atom{atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6}
	depth := level + t.Level
	if depth > len(headings) {
		depth = len(headings)
	}
	h := element(headings[depth-1])
	appendInline(h, t.Runs)
	return h
}

func figure(content *html.Node, caption []ir.Run) *html.Node {
	fig := element(atom.Figure)
	fig.AppendChild(content)
	if len(caption) > 0 {
		fc := element(atom.Figcaption)
		appendInline(fc, caption)
		fig.AppendChild(fc)
	}
	return fig
}

// appendInline appends runs to parent, wrapping styled text in the matching
// inline elements.
func appendInline(parent *html.Node, runs []ir.Run) {
	for _, r := range mergeRuns(runs) {
		switch {
		case r.Break:
			parent.AppendChild(element(atom.Br))
			continue
		case r.Image != nil:
			parent.AppendChild(htmlImage(r.Image))
			continue
		case r.Diagram != nil:
			parent.AppendChild(htmlDiagram(r.Diagram))
			continue
		}
		node := text(r.Text)
		if r.Style.Code {
			node = wrap(atom.Code, node)
		}
		if r.Style.Italic {
			node = wrap(atom.Em, node)
		}
		if r.Style.Bold {
			node = wrap(atom.Strong, node)
		}
		if r.Link != nil {
			href := r.Link.URL
			if href == "" {
				href = anchorHref(r.Link.RefID)
			}
			node = wrap(atom.A, node, "href", href)
		}
		parent.AppendChild(node)
	}
}

// element creates an element; attrs are key/value pairs.
func element(a atom.Atom, attrs ...string) *html.Node {
	n := &html.Node{Type: html.ElementNode, Data: a.String(), DataAtom: a}
	for i := 0; i+1 < len(attrs); i += 2 {
		n.Attr = append(n.Attr, html.Attribute{Key: attrs[i], Val: attrs[i+1]})
	}
	return n
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func withText(n *html.Node, s string) *html.Node {
	n.AppendChild(text(s))
	return n
}

func wrap(a atom.Atom, child *html.Node, attrs ...string) *html.Node {
	n := element(a, attrs...)
	n.AppendChild(child)
	return n
}

func appendAll(parent *html.Node, nodes []*html.Node) {
	for _, n := range nodes {
		parent.AppendChild(n)
	}
}
