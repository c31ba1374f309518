package content

import (
	"github.com/canton7/Dox2Word-sub000/internal/doxml"
	"github.com/canton7/Dox2Word-sub000/internal/ir"
)

// definitionList pairs each varlistentry (the term) with the listitem that
// follows it (the description). A pair that is broken is skipped on its own
// and scanning resumes at the next element.
func (b *builder) definitionList(n *doxml.Node, ctx Context) {
	d := &ir.DefinitionList{}
	items := n.Children

	for i := 0; i < len(items); {
		term := items[i]
		if term.Kind != doxml.KindVarListEntry {
			b.log.Warn("expected definition term", "element", term.Name)
			i++
			continue
		}
		if i+1 >= len(items) || items[i+1].Kind != doxml.KindListItem {
			b.log.Warn("definition term without description", "term", term.TextContent())
			i++
			continue
		}

		termNodes := term.Children
		if t := term.Child("term"); t != nil {
			termNodes = t.Children
		}
		d.Entries = append(d.Entries, ir.DefinitionEntry{
			Term:        b.inlineRuns(termNodes, ctx),
			Description: b.child(b.depth).parse(items[i+1].Children, ctx.block()),
		})
		i += 2
	}

	b.appendBlock(ir.NewDefinitionListBlock(d))
}
