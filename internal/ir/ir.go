// Package ir defines the normalized document tree produced from Doxygen XML.
// IR is the output of the content builder and the input of every renderer.
package ir

// Document represents the intermediate representation of one documented compound.
type Document struct {
	Version  string          `json:"version"`
	Metadata Metadata        `json:"metadata"`
	Content  []Block         `json:"content"`
	Sections []MemberSection `json:"sections,omitempty"`
}

// Metadata contains compound metadata.
type Metadata struct {
	ID       string   `json:"id"`
	Kind     string   `json:"kind,omitempty"`     // class, struct, file, group, page, ...
	Name     string   `json:"name,omitempty"`     // fully qualified compound name
	Title    string   `json:"title,omitempty"`    // group and page title
	Language string   `json:"language,omitempty"` // programming language reported by Doxygen
	Brief    []Run    `json:"brief,omitempty"`
	Location Location `json:"location,omitempty"`
}

// Location points at the declaration of a compound or member.
type Location struct {
	File string `json:"file,omitempty"`
	Line int    `json:"line,omitempty"`
}

// BlockType represents the type of content block.
type BlockType string

const (
	BlockTypeParagraph      BlockType = "paragraph"
	BlockTypeList           BlockType = "list"
	BlockTypeDefinitionList BlockType = "definition_list"
	BlockTypeTable          BlockType = "table"
	BlockTypeCode           BlockType = "code"
	BlockTypeImage          BlockType = "image"
	BlockTypeDiagram        BlockType = "diagram"
	BlockTypeTitle          BlockType = "title"
)

// Block represents a content block in the document. Exactly one of the
// pointer fields is set, selected by Type.
type Block struct {
	Type        BlockType       `json:"type"`
	Paragraph   *Paragraph      `json:"paragraph,omitempty"`
	List        *ListBlock      `json:"list,omitempty"`
	Definitions *DefinitionList `json:"definitions,omitempty"`
	Table       *TableBlock     `json:"table,omitempty"`
	Code        *CodeBlock      `json:"code,omitempty"`
	Image       *ImageBlock     `json:"image,omitempty"`
	Diagram     *DiagramBlock   `json:"diagram,omitempty"`
	Title       *TitleBlock     `json:"title,omitempty"`
}

// NewParagraphBlock wraps p in a Block.
func NewParagraphBlock(p *Paragraph) Block {
	return Block{Type: BlockTypeParagraph, Paragraph: p}
}

// NewListBlock wraps l in a Block.
func NewListBlock(l *ListBlock) Block {
	return Block{Type: BlockTypeList, List: l}
}

// NewDefinitionListBlock wraps d in a Block.
func NewDefinitionListBlock(d *DefinitionList) Block {
	return Block{Type: BlockTypeDefinitionList, Definitions: d}
}

// NewTableBlock wraps t in a Block.
func NewTableBlock(t *TableBlock) Block {
	return Block{Type: BlockTypeTable, Table: t}
}

// NewCodeBlock wraps c in a Block.
func NewCodeBlock(c *CodeBlock) Block {
	return Block{Type: BlockTypeCode, Code: c}
}

// NewImageBlock wraps img in a Block.
func NewImageBlock(img *ImageBlock) Block {
	return Block{Type: BlockTypeImage, Image: img}
}

// NewDiagramBlock wraps d in a Block.
func NewDiagramBlock(d *DiagramBlock) Block {
	return Block{Type: BlockTypeDiagram, Diagram: d}
}

// NewTitleBlock wraps t in a Block.
func NewTitleBlock(t *TitleBlock) Block {
	return Block{Type: BlockTypeTitle, Title: t}
}

// IsEmpty reports whether the block carries no renderable content.
// A block with a nil variant pointer is empty.
func (b Block) IsEmpty() bool {
	switch b.Type {
	case BlockTypeParagraph:
		return b.Paragraph == nil || b.Paragraph.IsEmpty()
	case BlockTypeList:
		return b.List == nil || b.List.IsEmpty()
	case BlockTypeDefinitionList:
		return b.Definitions == nil || b.Definitions.IsEmpty()
	case BlockTypeTable:
		return b.Table == nil || b.Table.IsEmpty()
	case BlockTypeCode:
		return b.Code == nil || b.Code.IsEmpty()
	case BlockTypeImage:
		return b.Image == nil || b.Image.Path == ""
	case BlockTypeDiagram:
		return b.Diagram == nil || b.Diagram.IsEmpty()
	case BlockTypeTitle:
		return b.Title == nil || isEmptyRuns(b.Title.Runs)
	}
	return true
}

// Trim removes trailing whitespace from the block. Trimming an already
// trimmed block is a no-op.
func (b Block) Trim() {
	switch b.Type {
	case BlockTypeParagraph:
		if b.Paragraph != nil {
			b.Paragraph.Trim()
		}
	case BlockTypeCode:
		if b.Code != nil {
			b.Code.Trim()
		}
	case BlockTypeTitle:
		if b.Title != nil {
			b.Title.Runs = TrimRuns(b.Title.Runs)
		}
	}
}

// NewDocument creates a new IR document with the current version.
func NewDocument() *Document {
	return &Document{
		Version: "1.0",
		Content: make([]Block, 0),
	}
}

// Add appends blocks to the document content.
func (d *Document) Add(blocks ...Block) {
	d.Content = append(d.Content, blocks...)
}

// AddSection appends a member section.
func (d *Document) AddSection(s MemberSection) {
	d.Sections = append(d.Sections, s)
}
