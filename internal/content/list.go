package content

import (
	"github.com/canton7/Dox2Word-sub000/internal/doxml"
	"github.com/canton7/Dox2Word-sub000/internal/ir"
)

// list builds a bullet or numbered list. Each item is parsed on its own one
// level deeper. An item that is nothing but a list becomes that sub-list
// directly; otherwise each of its blocks is an entry of this list.
func (b *builder) list(n *doxml.Node, ctx Context) {
	list := ir.NewList(n.Kind == doxml.KindOrderedList, b.depth)
	for _, item := range n.Children {
		if item.Kind != doxml.KindListItem {
			b.log.Warn("unexpected element in list", "element", item.Name)
			continue
		}

		scratch := b.child(b.depth+1).parse(item.Children, ctx.block())
		if len(scratch) == 1 && scratch[0].Type == ir.BlockTypeList {
			list.AddItem(scratch[0])
			continue
		}
		for _, blk := range scratch {
			list.AddItem(blk)
		}
	}
	b.appendBlock(ir.NewListBlock(list))
}
