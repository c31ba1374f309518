package content

import (
	"path/filepath"
	"strings"

	"github.com/canton7/Dox2Word-sub000/internal/doxml"
	"github.com/canton7/Dox2Word-sub000/internal/ir"
)

// code builds a listing from codeline/highlight spans. Only trailing spaces
// are trimmed; indentation is content.
func (b *builder) code(n *doxml.Node) *ir.CodeBlock {
	code := &ir.CodeBlock{
		Lines:    make([]string, 0, len(n.Children)),
		Language: strings.TrimPrefix(filepath.Ext(n.Attr("filename")), "."),
	}
	for _, line := range n.Children {
		if line.Kind != doxml.KindCodeLine {
			b.log.Warn("unexpected element in program listing", "element", line.Name)
			continue
		}
		var sb strings.Builder
		for _, span := range line.Children {
			b.codeSpan(&sb, span)
		}
		code.Lines = append(code.Lines, strings.TrimRight(sb.String(), " "))
	}
	return code
}

func (b *builder) codeSpan(sb *strings.Builder, n *doxml.Node) {
	switch n.Kind {
	case doxml.KindHighlight:
		for _, c := range n.Children {
			b.codeSpan(sb, c)
		}
	case doxml.KindText:
		sb.WriteString(n.Text)
	case doxml.KindSpace:
		sb.WriteString(" ")
	case doxml.KindRef:
		sb.WriteString(n.TextContent())
	default:
		b.log.Warn("unsupported code span, using its text", "element", n.Name)
		sb.WriteString(n.TextContent())
	}
}
