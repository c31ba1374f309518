package content

import (
	"strconv"

	"github.com/canton7/Dox2Word-sub000/internal/doxml"
	"github.com/canton7/Dox2Word-sub000/internal/ir"
)

// table builds a table grid, parsing each cell independently.
//
// The renderer only knows header rows and header columns, not header cells,
// so the per-cell thead flags are folded into two table flags:
// the first row is a header only if every one of its cells says so, while
// the first column is a header unless one of its cells explicitly says it
// is not.
func (b *builder) table(n *doxml.Node, ctx Context) {
	t := ir.NewTable()
	rowHeader := true
	colHeader := true

	for _, c := range n.Children {
		switch c.Kind {
		case doxml.KindCaption:
			t.Caption = b.inlineRuns(c.Children, ctx)

		case doxml.KindRow:
			cells := make([]ir.Cell, 0, len(c.Children))
			for _, entry := range c.Children {
				if entry.Kind != doxml.KindEntry {
					b.log.Warn("unexpected element in table row", "element", entry.Name)
					continue
				}
				thead := entry.Attr("thead")
				if len(t.Rows) == 0 && thead != "yes" {
					rowHeader = false
				}
				if len(cells) == 0 && thead == "no" {
					colHeader = false
				}
				cells = append(cells, ir.Cell{
					Blocks:    b.child(b.depth).parse(entry.Children, ctx.block()),
					ColSpan:   spanAttr(entry, "colspan"),
					RowSpan:   spanAttr(entry, "rowspan"),
					Alignment: ir.ParseAlignment(entry.Attr("align")),
				})
			}
			if len(t.Rows) == 0 && len(cells) == 0 {
				rowHeader = false
			}
			t.AddRow(cells)

		default:
			b.log.Warn("unexpected element in table", "element", c.Name)
		}
	}

	t.FirstRowHeader = rowHeader && len(t.Rows) > 0
	t.FirstColumnHeader = colHeader
	b.appendBlock(ir.NewTableBlock(t))
}

func spanAttr(n *doxml.Node, name string) int {
	v := n.Attr(name)
	if v == "" {
		return 1
	}
	span, err := strconv.Atoi(v)
	if err != nil || span < 1 {
		return 1
	}
	return span
}
