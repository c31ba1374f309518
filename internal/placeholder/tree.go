// Package placeholder substitutes <name> markers in a paragraph/segment tree.
//
// Rendered documents split text unpredictably (one word may span several
// runs), so a marker may start in one segment and end in a later segment of
// the same paragraph. The scanner handles that split without first merging
// segments, so the formatting of untouched text survives.
package placeholder

// Tree is a document seen as an ordered list of paragraphs.
type Tree interface {
	Paragraphs() []Paragraph
}

// Paragraph is an ordered sequence of text segments. Markers never span
// paragraphs.
type Paragraph interface {
	Segments() []Segment
}

// Segment is a contiguous run of mutable text.
type Segment interface {
	Text() string
	SetText(text string)
	// Remove detaches the segment from its container, removing the container
	// as well when it is left without children.
	Remove()
}
