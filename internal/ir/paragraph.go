package ir

// ParagraphKind is the semantic type of a text paragraph.
type ParagraphKind string

const (
	ParagraphNormal       ParagraphKind = ""
	ParagraphWarning      ParagraphKind = "warning"
	ParagraphNote         ParagraphKind = "note"
	ParagraphTitled       ParagraphKind = "titled" // generic admonition with a caller-supplied title
	ParagraphBlockQuote   ParagraphKind = "blockquote"
	ParagraphPreformatted ParagraphKind = "preformatted"
)

// Alignment is a paragraph or cell alignment. The zero value means
// "unspecified" and leaves the choice to the renderer.
type Alignment string

const (
	AlignDefault Alignment = ""
	AlignLeft    Alignment = "left"
	AlignCenter  Alignment = "center"
	AlignRight   Alignment = "right"
)

// ParseAlignment maps a Doxygen align attribute to an Alignment.
func ParseAlignment(s string) Alignment {
	switch s {
	case "left":
		return AlignLeft
	case "center":
		return AlignCenter
	case "right":
		return AlignRight
	default:
		return AlignDefault
	}
}

// Paragraph represents a text paragraph built from inline runs.
type Paragraph struct {
	Runs      []Run         `json:"runs"`
	Kind      ParagraphKind `json:"kind,omitempty"`
	Title     string        `json:"title,omitempty"` // admonition title for ParagraphTitled
	Alignment Alignment     `json:"alignment,omitempty"`
	Ruled     bool          `json:"ruled,omitempty"` // render a horizontal rule
}

// NewParagraph creates an empty paragraph of the given kind.
func NewParagraph(kind ParagraphKind, align Alignment) *Paragraph {
	return &Paragraph{
		Runs:      make([]Run, 0),
		Kind:      kind,
		Alignment: align,
	}
}

// AddRun adds an inline run to the paragraph.
func (p *Paragraph) AddRun(r Run) {
	p.Runs = append(p.Runs, r)
}

// LastRun returns the most recently added run, if any.
func (p *Paragraph) LastRun() (Run, bool) {
	if len(p.Runs) == 0 {
		return Run{}, false
	}
	return p.Runs[len(p.Runs)-1], true
}

// Text returns the plain text of the paragraph.
func (p *Paragraph) Text() string {
	return PlainText(p.Runs)
}

// Trim removes trailing whitespace.
func (p *Paragraph) Trim() {
	p.Runs = TrimRuns(p.Runs)
}

// IsEmpty returns true if the paragraph has no text and no rule.
func (p *Paragraph) IsEmpty() bool {
	return !p.Ruled && isEmptyRuns(p.Runs)
}

// TitleBlock is a caption or section heading paragraph. Level is 0 for
// captions and 1..4 for section headings.
type TitleBlock struct {
	Runs  []Run `json:"runs"`
	Level int   `json:"level,omitempty"`
}
