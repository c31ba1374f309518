package ir

// ListBlock represents a list (ordered or unordered) in the document.
// Items are blocks: flat content or a nested ListBlock for a sub-list.
type ListBlock struct {
	Ordered bool    `json:"ordered"`         // true = numbered list, false = bullet list
	Depth   int     `json:"depth,omitempty"` // nesting level (0 = top level)
	Items   []Block `json:"items"`
}

// NewList creates a new list block.
func NewList(ordered bool, depth int) *ListBlock {
	return &ListBlock{
		Ordered: ordered,
		Depth:   depth,
		Items:   make([]Block, 0),
	}
}

// AddItem adds an entry to the list.
func (l *ListBlock) AddItem(b Block) {
	l.Items = append(l.Items, b)
}

// IsEmpty returns true if the list has no items.
func (l *ListBlock) IsEmpty() bool {
	return len(l.Items) == 0
}

// DefinitionList is a sequence of term/description pairs.
type DefinitionList struct {
	Entries []DefinitionEntry `json:"entries"`
}

// DefinitionEntry is a single term with its description.
type DefinitionEntry struct {
	Term        []Run   `json:"term"`
	Description []Block `json:"description"`
}

// IsEmpty returns true if the definition list has no entries.
func (d *DefinitionList) IsEmpty() bool {
	return len(d.Entries) == 0
}
