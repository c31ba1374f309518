package render

import (
	"fmt"
	"strings"

	"github.com/canton7/Dox2Word-sub000/internal/ir"
)

// Text renders a plain-text summary of the document: metadata, content and
// one line per member.
func Text(doc *ir.Document) string {
	var result strings.Builder

	result.WriteString(fmt.Sprintf("Compound: %s\n", DocumentTitle(doc)))
	if doc.Metadata.Kind != "" {
		result.WriteString(fmt.Sprintf("Kind: %s\n", doc.Metadata.Kind))
	}
	if doc.Metadata.Location.File != "" {
		result.WriteString(fmt.Sprintf("Location: %s:%d\n", doc.Metadata.Location.File, doc.Metadata.Location.Line))
	}
	if len(doc.Metadata.Brief) > 0 {
		result.WriteString(fmt.Sprintf("Brief: %s\n", ir.PlainText(doc.Metadata.Brief)))
	}
	result.WriteString("\n---\n\n")

	writeTextBlocks(&result, doc.Content, "")

	for _, section := range doc.Sections {
		result.WriteString(fmt.Sprintf("[%s]\n", SectionTitle(section)))
		for _, m := range section.Members {
			result.WriteString("  " + Signature(m) + "\n")
		}
		result.WriteString("\n")
	}

	return result.String()
}

func writeTextBlocks(result *strings.Builder, blocks []ir.Block, indent string) {
	for _, block := range blocks {
		switch block.Type {
		case ir.BlockTypeParagraph:
			if block.Paragraph != nil {
				text := block.Paragraph.Text()
				if block.Paragraph.Kind != ir.ParagraphNormal {
					label := block.Paragraph.Title
					if label == "" {
						label = string(block.Paragraph.Kind)
					}
					text = fmt.Sprintf("[%s] %s", label, text)
				}
				result.WriteString(indent + text + "\n\n")
			}
		case ir.BlockTypeTitle:
			if block.Title != nil {
				result.WriteString(indent + strings.ToUpper(ir.PlainText(block.Title.Runs)) + "\n\n")
			}
		case ir.BlockTypeList:
			if block.List != nil {
				writeTextList(result, block.List, indent)
				result.WriteString("\n")
			}
		case ir.BlockTypeDefinitionList:
			if block.Definitions != nil {
				for _, e := range block.Definitions.Entries {
					result.WriteString(indent + ir.PlainText(e.Term) + "\n")
					writeTextBlocks(result, e.Description, indent+"    ")
				}
			}
		case ir.BlockTypeTable:
			if block.Table != nil {
				result.WriteString(formatTableAsText(block.Table, indent) + "\n")
			}
		case ir.BlockTypeCode:
			if block.Code != nil {
				for _, line := range block.Code.Lines {
					result.WriteString(indent + "    " + line + "\n")
				}
				result.WriteString("\n")
			}
		case ir.BlockTypeImage:
			if block.Image != nil {
				result.WriteString(fmt.Sprintf("%s[image: %s]\n\n", indent, block.Image.Path))
			}
		case ir.BlockTypeDiagram:
			if block.Diagram != nil {
				result.WriteString(fmt.Sprintf("%s[%s diagram]\n\n", indent, block.Diagram.Engine))
			}
		}
	}
}

func writeTextList(result *strings.Builder, list *ir.ListBlock, indent string) {
	n := 0
	for _, item := range list.Items {
		if item.Type == ir.BlockTypeList && item.List != nil {
			writeTextList(result, item.List, indent+"  ")
			continue
		}
		n++
		prefix := "- "
		if list.Ordered {
			prefix = fmt.Sprintf("%d. ", n)
		}
		var sub strings.Builder
		writeTextBlocks(&sub, []ir.Block{item}, "")
		result.WriteString(indent + prefix + strings.TrimSpace(sub.String()) + "\n")
	}
}

func formatTableAsText(table *ir.TableBlock, indent string) string {
	var result strings.Builder
	for i, row := range table.Rows {
		result.WriteString(indent)
		for j, cell := range row {
			if j > 0 {
				result.WriteString(" | ")
			}
			var sub strings.Builder
			writeTextBlocks(&sub, cell.Blocks, "")
			result.WriteString(strings.Join(strings.Fields(sub.String()), " "))
		}
		result.WriteString("\n")
		if i == 0 && table.FirstRowHeader {
			result.WriteString(indent)
			for j := range row {
				if j > 0 {
					result.WriteString(" | ")
				}
				result.WriteString("---")
			}
			result.WriteString("\n")
		}
	}
	return result.String()
}
