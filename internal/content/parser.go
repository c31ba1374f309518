// Package content turns Doxygen description markup into normalized IR blocks.
//
// Parse walks a node stream depth-first, keeping at most one "open" block at
// the end of the output. Inline content routes into the open text paragraph;
// any structurally distinct event seals it. Sealing trims trailing whitespace
// once and drops the block if nothing is left.
package content

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/canton7/Dox2Word-sub000/internal/doxml"
	"github.com/canton7/Dox2Word-sub000/internal/ir"
)

// Parse converts a node stream into an ordered block sequence, trimmed at
// both ends. Anomalies are logged and degraded; Parse never fails.
func Parse(nodes []*doxml.Node, ctx Context, opts Options) []ir.Block {
	return newBuilder(opts, 0).parse(nodes, ctx)
}

// ParseNode is Parse for a single root node such as a detaileddescription.
func ParseNode(n *doxml.Node, ctx Context, opts Options) []ir.Block {
	if n == nil {
		return nil
	}
	return Parse([]*doxml.Node{n}, ctx, opts)
}

// builder owns the in-progress block sequence. Nested content (list items,
// table cells, definitions) is parsed by a fresh child builder whose result
// is merged back by the caller.
type builder struct {
	opts  Options
	log   *slog.Logger
	depth int // list nesting depth

	blocks []ir.Block
	// unsealed is true while the last block in blocks is still open.
	unsealed bool
	// open is the last block when it is an unsealed text paragraph.
	open *ir.Paragraph
}

func newBuilder(opts Options, depth int) *builder {
	return &builder{
		opts:  opts,
		log:   opts.logger(),
		depth: depth,
	}
}

func (b *builder) child(depth int) *builder {
	return newBuilder(b.opts, depth)
}

func (b *builder) parse(nodes []*doxml.Node, ctx Context) []ir.Block {
	for _, n := range nodes {
		b.node(n, ctx)
	}
	b.seal()
	return trimLeading(b.blocks)
}

// seal closes the open block: trim it, and drop it if trimming emptied it.
func (b *builder) seal() {
	if !b.unsealed {
		return
	}
	b.unsealed = false
	b.open = nil

	last := b.blocks[len(b.blocks)-1]
	last.Trim()
	if last.IsEmpty() {
		b.blocks = b.blocks[:len(b.blocks)-1]
	}
}

// appendBlock seals the previous block and appends blk as the new open block.
func (b *builder) appendBlock(blk ir.Block) {
	b.seal()
	b.blocks = append(b.blocks, blk)
	b.unsealed = true
	if blk.Type == ir.BlockTypeParagraph {
		b.open = blk.Paragraph
	}
}

func (b *builder) openParagraph(ctx Context) *ir.Paragraph {
	p := ir.NewParagraph(ctx.Kind, ctx.Align)
	p.Title = ctx.Title
	b.appendBlock(ir.NewParagraphBlock(p))
	return p
}

// paragraph returns the paragraph inline content should route into,
// opening one when none is open or the open one belongs to another context.
func (b *builder) paragraph(ctx Context) *ir.Paragraph {
	if p := b.open; p != nil && p.Kind == ctx.Kind && p.Title == ctx.Title && p.Alignment == ctx.Align {
		return p
	}
	return b.openParagraph(ctx)
}

// separator seals the open block and leaves an empty paragraph open, so
// following inline content never lands in the block just closed.
func (b *builder) separator(ctx Context) {
	b.openParagraph(ctx.block())
}

func (b *builder) addRun(r ir.Run, ctx Context) {
	b.paragraph(ctx).AddRun(r)
}

func (b *builder) addText(text string, ctx Context) {
	p := b.paragraph(ctx)
	if last, ok := p.LastRun(); ok && last.Break && p.Alignment == ctx.Align {
		// Source lines following a manual break carry their indentation.
		text = strings.TrimLeft(text, " ")
	}
	if text == "" {
		return
	}
	p.AddRun(ir.NewRun(text, ctx.Style))
}

func (b *builder) children(n *doxml.Node, ctx Context) {
	for _, c := range n.Children {
		b.node(c, ctx)
	}
}

// node dispatches on the node kind. Every kind is handled here; the default
// arm flattens whatever a newer Doxygen might emit.
func (b *builder) node(n *doxml.Node, ctx Context) {
	switch n.Kind {
	case doxml.KindText:
		b.addText(n.Text, ctx)

	case doxml.KindDescription, doxml.KindInternal:
		for i, c := range n.Children {
			if i > 0 {
				b.seal()
			}
			b.node(c, ctx)
		}

	case doxml.KindPara:
		// An empty open paragraph (an admonition just opened) takes the
		// paragraph's content; anything else is finished.
		if b.open != nil && !b.open.IsEmpty() {
			b.seal()
		}
		b.children(n, ctx)

	case doxml.KindLineBreak:
		b.addRun(ir.LineBreak(), ctx)

	case doxml.KindSpace:
		b.addText(" ", ctx)

	case doxml.KindSimpleSect:
		b.simpleSect(n, ctx)

	case doxml.KindXRefSect:
		b.xrefSect(n, ctx)

	case doxml.KindItemizedList, doxml.KindOrderedList:
		b.list(n, ctx)

	case doxml.KindListItem:
		// A list item outside a list: keep its content.
		b.log.Warn("list item outside of a list")
		b.children(n, ctx.block())

	case doxml.KindBlockQuote:
		b.blockQuote(n, ctx)

	case doxml.KindBold:
		b.children(n, ctx.WithStyle(ir.TextStyle{Bold: true}))

	case doxml.KindEmphasis:
		b.children(n, ctx.WithStyle(ir.TextStyle{Italic: true}))

	case doxml.KindComputerOutput:
		b.children(n, ctx.WithStyle(ir.TextStyle{Code: true}))

	case doxml.KindCenter:
		b.children(n, ctx.WithAlign(ir.AlignCenter))

	case doxml.KindRef:
		b.ref(n, ctx)

	case doxml.KindULink:
		b.ulink(n, ctx)

	case doxml.KindImage:
		b.image(n, ctx)

	case doxml.KindDot, doxml.KindPlantUML, doxml.KindMsc,
		doxml.KindDotFile, doxml.KindMscFile, doxml.KindDiaFile:
		b.diagram(n, ctx)

	case doxml.KindProgramListing:
		b.seal()
		b.appendBlock(ir.NewCodeBlock(b.code(n)))

	case doxml.KindHRuler:
		b.hruler(ctx)

	case doxml.KindTable:
		b.table(n, ctx)

	case doxml.KindVariableList:
		b.definitionList(n, ctx)

	case doxml.KindPreformatted, doxml.KindVerbatim:
		b.preformatted(n, ctx)

	case doxml.KindSect:
		b.sect(n, ctx)

	case doxml.KindParameterList:
		// Consumed by the compound parser, which documents parameters
		// alongside the member signature.
		b.log.Debug("skipping parameter list", "kind", n.Attr("kind"))

	case doxml.KindAnchor:
		// Anchors carry an id only.

	case doxml.KindTitle, doxml.KindXRefTitle, doxml.KindCaption, doxml.KindTerm,
		doxml.KindRow, doxml.KindEntry, doxml.KindVarListEntry,
		doxml.KindCodeLine, doxml.KindHighlight, doxml.KindUnknown:
		b.flatten(n, ctx)

	default:
		b.flatten(n, ctx)
	}
}

// flatten degrades an unexpected node to its plain text.
func (b *builder) flatten(n *doxml.Node, ctx Context) {
	b.log.Warn("unsupported markup, using its text", "element", n.Name, "kind", n.Kind.String())
	if text := n.TextContent(); text != "" {
		b.addText(text, ctx)
	}
}

var simpleSectTitles = map[string]string{
	"see":       "See also",
	"since":     "Since",
	"author":    "Author",
	"authors":   "Authors",
	"version":   "Version",
	"date":      "Date",
	"pre":       "Precondition",
	"post":      "Postcondition",
	"copyright": "Copyright",
	"invariant": "Invariant",
	"remark":    "Remarks",
	"attention": "Attention",
	"important": "Important",
	"rcs":       "RCS",
}

func (b *builder) simpleSect(n *doxml.Node, ctx Context) {
	kind := n.Attr("kind")
	var inner Context
	switch kind {
	case "return":
		// Documented with the member signature by the compound parser.
		return
	case "warning":
		inner = ctx.WithKind(ir.ParagraphWarning, "")
	case "note":
		inner = ctx.WithKind(ir.ParagraphNote, "")
	case "par":
		inner = ctx.WithKind(ir.ParagraphTitled, strings.TrimSpace(n.ChildText("title")))
	default:
		title, ok := simpleSectTitles[kind]
		if !ok {
			b.log.Warn("unknown simplesect kind", "kind", kind)
			title = kind
		}
		inner = ctx.WithKind(ir.ParagraphTitled, title)
	}

	b.openParagraph(inner)
	for _, c := range n.Children {
		if c.Kind == doxml.KindTitle {
			continue
		}
		b.node(c, inner)
	}
	b.seal()
}

// sect emits a heading for a page section followed by its content.
func (b *builder) sect(n *doxml.Node, ctx Context) {
	level, err := strconv.Atoi(strings.TrimPrefix(n.Name, "sect"))
	if err != nil {
		level = 1
	}
	if title := n.Child("title"); title != nil {
		b.appendBlock(ir.NewTitleBlock(&ir.TitleBlock{
			Runs:  b.inlineRuns(title.Children, ctx.block()),
			Level: level,
		}))
	}
	for _, c := range n.Children {
		if c.Kind == doxml.KindTitle {
			continue
		}
		b.seal()
		b.node(c, ctx.block())
	}
	b.seal()
}

// xrefSect splices the description of a cross-reference section into the
// stream unless its category is suppressed. The category is the id prefix,
// e.g. "todo" in "todo_1todo000001".
func (b *builder) xrefSect(n *doxml.Node, ctx Context) {
	id := n.Attr("id")
	category, _, _ := strings.Cut(id, "_")
	if b.opts.suppressed(category) {
		b.log.Debug("suppressing xrefsect", "id", id, "category", category)
		return
	}
	for _, c := range n.Children {
		if c.Kind == doxml.KindXRefTitle {
			continue
		}
		b.node(c, ctx)
	}
}

func (b *builder) blockQuote(n *doxml.Node, ctx Context) {
	quoted := ctx.WithKind(ir.ParagraphBlockQuote, "")
	for _, c := range n.Children {
		b.seal()
		b.openParagraph(quoted)
		if c.Kind == doxml.KindPara {
			b.children(c, quoted)
		} else {
			b.node(c, quoted)
		}
	}
	b.separator(ctx)
}

func (b *builder) ref(n *doxml.Node, ctx Context) {
	refid := n.Attr("refid")
	text := n.TextContent()
	if refid == "" {
		b.log.Warn("reference without target", "text", text)
		b.addText(text, ctx)
		return
	}

	if n.Attr("kindref") != "member" {
		fileLike, known := b.opts.fileLike(refid)
		if !known {
			b.log.Warn("unresolved compound reference", "refid", refid)
		}
		if fileLike {
			b.addRun(ir.NewRun(text, ctx.Style.Merge(ir.TextStyle{Code: true})), ctx)
			return
		}
	}
	b.addRun(ir.NewLinkRun(text, ctx.Style, refid), ctx)
}

func (b *builder) ulink(n *doxml.Node, ctx Context) {
	url := n.Attr("url")
	text := n.TextContent()
	if url == "" {
		b.log.Warn("link without url", "text", text)
		b.addText(text, ctx)
		return
	}
	if text == "" {
		text = url
	}
	b.addRun(ir.NewURLRun(text, ctx.Style, url), ctx)
}

func (b *builder) image(n *doxml.Node, ctx Context) {
	if t := n.Attr("type"); t != "" && b.opts.ImageType != "" && t != b.opts.ImageType {
		return
	}
	name := n.Attr("name")
	if name == "" {
		b.log.Warn("image without name")
		return
	}

	img := ir.NewImage(b.opts.imagePath(name))
	img.Name = name
	img.Inline = n.Attr("inline") == "yes"
	if caption := strings.TrimSpace(n.TextContent()); caption != "" {
		img.Caption = []ir.Run{ir.NewRun(caption, ir.TextStyle{})}
	}

	if img.Inline {
		b.addRun(ir.NewImageRun(img), ctx)
		return
	}
	b.seal()
	b.appendBlock(ir.NewImageBlock(img))
	b.seal()
}

var diagramEngines = map[doxml.Kind]ir.DiagramEngine{
	doxml.KindDot:      ir.DiagramDot,
	doxml.KindDotFile:  ir.DiagramDot,
	doxml.KindPlantUML: ir.DiagramPlantUML,
	doxml.KindMsc:      ir.DiagramMsc,
	doxml.KindMscFile:  ir.DiagramMsc,
	doxml.KindDiaFile:  ir.DiagramDia,
}

func (b *builder) diagram(n *doxml.Node, ctx Context) {
	d := &ir.DiagramBlock{
		Engine: diagramEngines[n.Kind],
		Inline: n.Attr("inline") == "yes",
	}

	var caption string
	switch n.Kind {
	case doxml.KindDotFile, doxml.KindMscFile, doxml.KindDiaFile:
		d.File = n.Attr("name")
		caption = n.TextContent()
	default:
		d.Source = n.TextContent()
		caption = n.Attr("caption")
	}
	if caption = strings.TrimSpace(caption); caption != "" {
		d.Caption = []ir.Run{ir.NewRun(caption, ir.TextStyle{})}
	}
	if d.IsEmpty() {
		b.log.Warn("empty diagram", "element", n.Name)
		return
	}

	if d.Inline {
		b.addRun(ir.NewDiagramRun(d), ctx)
		return
	}
	b.seal()
	b.appendBlock(ir.NewDiagramBlock(d))
	b.seal()
}

// hruler rules the open text paragraph, or adds a ruled empty paragraph
// followed by a fresh one for the content after the rule.
func (b *builder) hruler(ctx Context) {
	if b.open != nil {
		b.open.Ruled = true
		return
	}
	p := b.openParagraph(ctx.block())
	p.Ruled = true
	b.openParagraph(ctx.block())
}

func (b *builder) preformatted(n *doxml.Node, ctx Context) {
	text := strings.TrimPrefix(n.TextContent(), "\n")
	b.seal()
	p := b.openParagraph(ctx.WithKind(ir.ParagraphPreformatted, ""))
	if text != "" {
		p.AddRun(ir.NewRun(text, ctx.Style.Merge(ir.TextStyle{Code: true})))
	}
}

// inlineRuns parses nodes and returns the runs of every resulting text
// paragraph, for places that only take inline content (captions, terms).
func (b *builder) inlineRuns(nodes []*doxml.Node, ctx Context) []ir.Run {
	var runs []ir.Run
	for _, blk := range b.child(b.depth).parse(nodes, ctx.block()) {
		if blk.Type != ir.BlockTypeParagraph {
			b.log.Warn("dropping block content in inline context", "type", string(blk.Type))
			continue
		}
		if len(runs) > 0 {
			runs = append(runs, ir.NewRun(" ", ir.TextStyle{}))
		}
		runs = append(runs, blk.Paragraph.Runs...)
	}
	return runs
}

// trimLeading drops leading whitespace from the first block, removing
// blocks that become empty.
func trimLeading(blocks []ir.Block) []ir.Block {
	for len(blocks) > 0 {
		first := blocks[0]
		switch first.Type {
		case ir.BlockTypeParagraph:
			if first.Paragraph.Kind != ir.ParagraphPreformatted {
				first.Paragraph.Runs = ir.TrimLeadingRuns(first.Paragraph.Runs)
			}
		case ir.BlockTypeTitle:
			first.Title.Runs = ir.TrimLeadingRuns(first.Title.Runs)
		}
		if !first.IsEmpty() {
			break
		}
		blocks = blocks[1:]
	}
	return blocks
}
