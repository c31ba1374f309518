package render

import (
	"fmt"
	"strings"

	"github.com/canton7/Dox2Word-sub000/internal/ir"
)

// Markdown renders a compound as a Markdown page.
func Markdown(doc *ir.Document) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# %s\n\n", DocumentTitle(doc)))
	if len(doc.Metadata.Brief) > 0 {
		sb.WriteString(markdownInline(doc.Metadata.Brief) + "\n\n")
	}
	writeMarkdownBlocks(&sb, doc.Content, 1)

	for _, section := range doc.Sections {
		sb.WriteString(fmt.Sprintf("## %s\n\n", SectionTitle(section)))
		writeMarkdownBlocks(&sb, section.Description, 2)
		for _, m := range section.Members {
			writeMarkdownMember(&sb, m)
		}
	}

	return strings.TrimRight(sb.String(), "\n") + "\n"
}

// MarkdownBlocks renders a block sequence on its own.
func MarkdownBlocks(blocks []ir.Block) string {
	var sb strings.Builder
	writeMarkdownBlocks(&sb, blocks, 0)
	return strings.TrimRight(sb.String(), "\n")
}

func writeMarkdownMember(sb *strings.Builder, m ir.Member) {
	sb.WriteString(fmt.Sprintf("### %s\n\n", m.Name))
	sb.WriteString(fmt.Sprintf("```\n%s\n```\n\n", Signature(m)))
	writeMarkdownBlocks(sb, m.Brief, 3)
	writeMarkdownBlocks(sb, m.Detail, 3)

	writeMarkdownParams(sb, "Template Parameters", m.TParams)
	writeMarkdownParams(sb, "Parameters", m.Params)
	if len(m.Returns) > 0 {
		sb.WriteString("**Returns**\n\n")
		writeMarkdownBlocks(sb, m.Returns, 3)
	}
	writeMarkdownParams(sb, "Return Values", m.RetVals)
	writeMarkdownParams(sb, "Exceptions", m.Exceptions)

	if len(m.Enumerators) > 0 {
		sb.WriteString("| Enumerator | Value | Description |\n| --- | --- | --- |\n")
		for _, e := range m.Enumerators {
			value := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(e.Initializer), "="))
			sb.WriteString(fmt.Sprintf("| `%s` | %s | %s |\n",
				e.Name, markdownCell(value), markdownCell(blocksText(e.Description))))
		}
		sb.WriteString("\n")
	}
}

func writeMarkdownParams(sb *strings.Builder, title string, params []ir.Param) {
	if len(params) == 0 {
		return
	}
	sb.WriteString(fmt.Sprintf("**%s**\n\n", title))
	for _, p := range params {
		sb.WriteString(fmt.Sprintf("- `%s`", p.Name))
		if p.Direction != "" {
			sb.WriteString(fmt.Sprintf(" [%s]", p.Direction))
		}
		if desc := blocksText(p.Description); desc != "" {
			sb.WriteString(": " + strings.ReplaceAll(desc, "\n", " "))
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
}

// writeMarkdownBlocks writes blocks separated by blank lines. level is the
// heading level of the enclosing section.
func writeMarkdownBlocks(sb *strings.Builder, blocks []ir.Block, level int) {
	for _, block := range blocks {
		switch block.Type {
		case ir.BlockTypeParagraph:
			if block.Paragraph != nil {
				writeMarkdownParagraph(sb, block.Paragraph)
			}
		case ir.BlockTypeList:
			if block.List != nil {
				writeMarkdownList(sb, block.List)
				sb.WriteString("\n")
			}
		case ir.BlockTypeDefinitionList:
			if block.Definitions != nil {
				writeMarkdownDefinitions(sb, block.Definitions)
			}
		case ir.BlockTypeTable:
			if block.Table != nil {
				writeMarkdownTable(sb, block.Table)
			}
		case ir.BlockTypeCode:
			if block.Code != nil {
				sb.WriteString(fmt.Sprintf("```%s\n%s\n```\n\n", block.Code.Language, strings.Join(block.Code.Lines, "\n")))
			}
		case ir.BlockTypeImage:
			if block.Image != nil {
				writeMarkdownImage(sb, block.Image)
			}
		case ir.BlockTypeDiagram:
			if block.Diagram != nil {
				writeMarkdownDiagram(sb, block.Diagram)
			}
		case ir.BlockTypeTitle:
			if block.Title != nil {
				writeMarkdownTitle(sb, block.Title, level)
			}
		}
	}
}

func writeMarkdownParagraph(sb *strings.Builder, p *ir.Paragraph) {
	text := markdownInline(p.Runs)

	switch p.Kind {
	case ir.ParagraphWarning:
		writeQuoted(sb, "**Warning:** "+text)
	case ir.ParagraphNote:
		writeQuoted(sb, "**Note:** "+text)
	case ir.ParagraphTitled:
		writeQuoted(sb, fmt.Sprintf("**%s**\n%s", p.Title, text))
	case ir.ParagraphBlockQuote:
		writeQuoted(sb, text)
	case ir.ParagraphPreformatted:
		sb.WriteString(fmt.Sprintf("```\n%s\n```\n\n", p.Text()))
	default:
		if text != "" {
			sb.WriteString(text + "\n\n")
		}
	}

	if p.Ruled {
		sb.WriteString("---\n\n")
	}
}

func writeQuoted(sb *strings.Builder, text string) {
	for _, line := range strings.Split(text, "\n") {
		sb.WriteString(strings.TrimRight("> "+line, " ") + "\n")
	}
	sb.WriteString("\n")
}

func writeMarkdownList(sb *strings.Builder, l *ir.ListBlock) {
	indent := strings.Repeat("    ", l.Depth)
	n := 0
	for _, item := range l.Items {
		if item.Type == ir.BlockTypeList && item.List != nil {
			writeMarkdownList(sb, item.List)
			continue
		}

		n++
		prefix := "- "
		if l.Ordered {
			prefix = fmt.Sprintf("%d. ", n)
		}

		var body strings.Builder
		writeMarkdownBlocks(&body, []ir.Block{item}, 0)
		lines := strings.Split(strings.TrimRight(body.String(), "\n"), "\n")
		sb.WriteString(indent + prefix + lines[0] + "\n")
		for _, line := range lines[1:] {
			if line == "" {
				sb.WriteString("\n")
				continue
			}
			sb.WriteString(indent + "    " + line + "\n")
		}
	}
}

func writeMarkdownDefinitions(sb *strings.Builder, d *ir.DefinitionList) {
	for _, e := range d.Entries {
		sb.WriteString(fmt.Sprintf("**%s**\n", markdownInline(e.Term)))
		desc := blocksText(e.Description)
		for _, line := range strings.Split(desc, "\n") {
			sb.WriteString(": " + line + "\n")
		}
		sb.WriteString("\n")
	}
}

func writeMarkdownTable(sb *strings.Builder, t *ir.TableBlock) {
	cols := t.Cols()
	if cols == 0 {
		return
	}

	rows := t.Rows
	if t.FirstRowHeader {
		writeMarkdownRow(sb, rows[0], cols, t.FirstColumnHeader)
		rows = rows[1:]
	} else {
		sb.WriteString("|" + strings.Repeat("  |", cols) + "\n")
	}
	sb.WriteString("|" + strings.Repeat(" --- |", cols) + "\n")
	for _, row := range rows {
		writeMarkdownRow(sb, row, cols, t.FirstColumnHeader)
	}
	if len(t.Caption) > 0 {
		sb.WriteString(fmt.Sprintf("\n*%s*\n", markdownInline(t.Caption)))
	}
	sb.WriteString("\n")
}

func writeMarkdownRow(sb *strings.Builder, row []ir.Cell, cols int, boldFirst bool) {
	sb.WriteString("|")
	written := 0
	for i, cell := range row {
		text := markdownCell(blocksMarkdown(cell.Blocks))
		if i == 0 && boldFirst && text != "" {
			text = "**" + text + "**"
		}
		sb.WriteString(fmt.Sprintf(" %s |", text))
		written++
		for span := 1; span < cell.ColSpan; span++ {
			sb.WriteString("  |")
			written++
		}
	}
	for ; written < cols; written++ {
		sb.WriteString("  |")
	}
	sb.WriteString("\n")
}

func writeMarkdownImage(sb *strings.Builder, img *ir.ImageBlock) {
	sb.WriteString(markdownImage(img))
	if img.Inline {
		sb.WriteString(" ")
		return
	}
	sb.WriteString("\n\n")
}

func markdownImage(img *ir.ImageBlock) string {
	alt := ir.PlainText(img.Caption)
	if alt == "" {
		alt = img.Name
	}
	return fmt.Sprintf("![%s](%s)", alt, img.Path)
}

// markdownInlineDiagram renders a diagram placed in the text flow.
func markdownInlineDiagram(d *ir.DiagramBlock) string {
	caption := ir.PlainText(d.Caption)
	switch {
	case d.RenderedPath != "":
		return fmt.Sprintf("![%s](%s)", caption, d.RenderedPath)
	case d.Source != "":
		return "`" + strings.Join(strings.Fields(d.Source), " ") + "`"
	default:
		return fmt.Sprintf("*%s diagram: %s*", d.Engine, d.File)
	}
}

func writeMarkdownDiagram(sb *strings.Builder, d *ir.DiagramBlock) {
	caption := ir.PlainText(d.Caption)
	switch {
	case d.RenderedPath != "":
		sb.WriteString(fmt.Sprintf("![%s](%s)\n\n", caption, d.RenderedPath))
	case d.Source != "":
		sb.WriteString(fmt.Sprintf("```%s\n%s\n```\n\n", d.Engine, strings.Trim(d.Source, "\n")))
		if caption != "" {
			sb.WriteString(fmt.Sprintf("*%s*\n\n", caption))
		}
	default:
		sb.WriteString(fmt.Sprintf("*%s diagram: %s*\n\n", d.Engine, d.File))
	}
}

func writeMarkdownTitle(sb *strings.Builder, t *ir.TitleBlock, level int) {
	text := markdownInline(t.Runs)
	if t.Level == 0 {
		sb.WriteString(fmt.Sprintf("*%s*\n\n", text))
		return
	}
	depth := level + t.Level
	if depth > 6 {
		depth = 6
	}
	sb.WriteString(fmt.Sprintf("%s %s\n\n", strings.Repeat("#", depth), text))
}

// markdownInline renders runs with emphasis markers. Whitespace at the edge
// of a styled run is moved outside the markers, where Markdown needs it.
func markdownInline(runs []ir.Run) string {
	var sb strings.Builder
	for _, r := range mergeRuns(runs) {
		switch {
		case r.Break:
			sb.WriteString("\\\n")
			continue
		case r.Image != nil:
			sb.WriteString(markdownImage(r.Image))
			continue
		case r.Diagram != nil:
			sb.WriteString(markdownInlineDiagram(r.Diagram))
			continue
		}
		core := strings.TrimSpace(r.Text)
		if core == "" {
			sb.WriteString(r.Text)
			continue
		}
		lead := r.Text[:strings.Index(r.Text, core)]
		trail := r.Text[len(lead)+len(core):]

		if r.Style.Code {
			core = "`" + core + "`"
		}
		if r.Style.Italic {
			core = "*" + core + "*"
		}
		if r.Style.Bold {
			core = "**" + core + "**"
		}
		if r.Link != nil {
			target := r.Link.URL
			if target == "" {
				target = anchorHref(r.Link.RefID)
			}
			core = fmt.Sprintf("[%s](%s)", core, target)
		}
		sb.WriteString(lead + core + trail)
	}
	return sb.String()
}

// blocksMarkdown renders blocks compactly for a single-line context.
func blocksMarkdown(blocks []ir.Block) string {
	parts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		if b.Type == ir.BlockTypeParagraph && b.Paragraph != nil {
			parts = append(parts, markdownInline(b.Paragraph.Runs))
			continue
		}
		parts = append(parts, MarkdownBlocks([]ir.Block{b}))
	}
	return strings.Join(parts, "\n")
}

// blocksText is blocksMarkdown for descriptions.
func blocksText(blocks []ir.Block) string {
	return strings.TrimSpace(blocksMarkdown(blocks))
}

func markdownCell(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	return strings.ReplaceAll(s, "\n", "<br>")
}
