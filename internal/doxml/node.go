// Package doxml decodes Doxygen XML into a tree of typed markup nodes.
//
// Every element the content builder understands maps to one Kind; anything
// else decodes as KindUnknown with its element name kept in Node.Name, so
// callers can still look structural elements up by name.
package doxml

import "strings"

// Kind is the closed set of markup node kinds emitted by Doxygen.
type Kind int

const (
	KindUnknown Kind = iota
	KindText
	KindDescription // briefdescription, detaileddescription, xrefdescription, ...
	KindPara
	KindInternal
	KindLineBreak
	KindBold
	KindEmphasis
	KindComputerOutput
	KindCenter
	KindRef
	KindULink
	KindSimpleSect
	KindTitle
	KindXRefSect
	KindXRefTitle
	KindItemizedList
	KindOrderedList
	KindListItem
	KindBlockQuote
	KindImage
	KindDot
	KindDotFile
	KindPlantUML
	KindMsc
	KindMscFile
	KindDiaFile
	KindProgramListing
	KindCodeLine
	KindHighlight
	KindSpace
	KindHRuler
	KindTable
	KindRow
	KindEntry
	KindCaption
	KindVariableList
	KindVarListEntry
	KindTerm
	KindPreformatted
	KindVerbatim
	KindParameterList
	KindAnchor
	KindSect // sect1 .. sect4
)

var kindNames = map[Kind]string{
	KindUnknown:        "unknown",
	KindText:           "text",
	KindDescription:    "description",
	KindPara:           "para",
	KindInternal:       "internal",
	KindLineBreak:      "linebreak",
	KindBold:           "bold",
	KindEmphasis:       "emphasis",
	KindComputerOutput: "computeroutput",
	KindCenter:         "center",
	KindRef:            "ref",
	KindULink:          "ulink",
	KindSimpleSect:     "simplesect",
	KindTitle:          "title",
	KindXRefSect:       "xrefsect",
	KindXRefTitle:      "xreftitle",
	KindItemizedList:   "itemizedlist",
	KindOrderedList:    "orderedlist",
	KindListItem:       "listitem",
	KindBlockQuote:     "blockquote",
	KindImage:          "image",
	KindDot:            "dot",
	KindDotFile:        "dotfile",
	KindPlantUML:       "plantuml",
	KindMsc:            "msc",
	KindMscFile:        "mscfile",
	KindDiaFile:        "diafile",
	KindProgramListing: "programlisting",
	KindCodeLine:       "codeline",
	KindHighlight:      "highlight",
	KindSpace:          "sp",
	KindHRuler:         "hruler",
	KindTable:          "table",
	KindRow:            "row",
	KindEntry:          "entry",
	KindCaption:        "caption",
	KindVariableList:   "variablelist",
	KindVarListEntry:   "varlistentry",
	KindTerm:           "term",
	KindPreformatted:   "preformatted",
	KindVerbatim:       "verbatim",
	KindParameterList:  "parameterlist",
	KindAnchor:         "anchor",
	KindSect:           "sect",
}

// String returns the canonical element name of the kind.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// elementKinds maps Doxygen element names to kinds. Several description
// containers share KindDescription.
var elementKinds = map[string]Kind{
	"briefdescription":     KindDescription,
	"detaileddescription":  KindDescription,
	"inbodydescription":    KindDescription,
	"description":          KindDescription,
	"xrefdescription":      KindDescription,
	"parameterdescription": KindDescription,
	"para":                 KindPara,
	"internal":             KindInternal,
	"linebreak":            KindLineBreak,
	"bold":                 KindBold,
	"emphasis":             KindEmphasis,
	"computeroutput":       KindComputerOutput,
	"center":               KindCenter,
	"ref":                  KindRef,
	"ulink":                KindULink,
	"simplesect":           KindSimpleSect,
	"title":                KindTitle,
	"xrefsect":             KindXRefSect,
	"xreftitle":            KindXRefTitle,
	"itemizedlist":         KindItemizedList,
	"orderedlist":          KindOrderedList,
	"listitem":             KindListItem,
	"blockquote":           KindBlockQuote,
	"image":                KindImage,
	"dot":                  KindDot,
	"dotfile":              KindDotFile,
	"plantuml":             KindPlantUML,
	"msc":                  KindMsc,
	"mscfile":              KindMscFile,
	"diafile":              KindDiaFile,
	"programlisting":       KindProgramListing,
	"codeline":             KindCodeLine,
	"highlight":            KindHighlight,
	"sp":                   KindSpace,
	"hruler":               KindHRuler,
	"table":                KindTable,
	"row":                  KindRow,
	"entry":                KindEntry,
	"caption":              KindCaption,
	"variablelist":         KindVariableList,
	"varlistentry":         KindVarListEntry,
	"term":                 KindTerm,
	"preformatted":         KindPreformatted,
	"verbatim":             KindVerbatim,
	"parameterlist":        KindParameterList,
	"anchor":               KindAnchor,
	"sect1":                KindSect,
	"sect2":                KindSect,
	"sect3":                KindSect,
	"sect4":                KindSect,
}

// KindOf returns the kind for a Doxygen element name.
func KindOf(element string) Kind {
	if k, ok := elementKinds[element]; ok {
		return k
	}
	return KindUnknown
}

// blockOnly reports whether character data directly inside an element of
// this kind is layout whitespace rather than content.
func (k Kind) blockOnly() bool {
	switch k {
	case KindDescription, KindItemizedList, KindOrderedList, KindListItem,
		KindSimpleSect, KindXRefSect, KindBlockQuote, KindProgramListing,
		KindCodeLine, KindTable, KindRow, KindEntry, KindVariableList,
		KindVarListEntry, KindParameterList, KindInternal, KindSect:
		return true
	}
	return false
}

// Node is one unit of Doxygen markup.
type Node struct {
	Kind     Kind
	Name     string // element name; empty for text nodes
	Text     string // character data, KindText only
	Attrs    map[string]string
	Children []*Node
}

// NewText creates a text leaf.
func NewText(text string) *Node {
	return &Node{Kind: KindText, Text: text}
}

// NewElement creates an element node of the given name with children.
func NewElement(name string, attrs map[string]string, children ...*Node) *Node {
	return &Node{
		Kind:     KindOf(name),
		Name:     name,
		Attrs:    attrs,
		Children: children,
	}
}

// Attr returns the value of an attribute, or "" when absent.
func (n *Node) Attr(name string) string {
	if n == nil || n.Attrs == nil {
		return ""
	}
	return n.Attrs[name]
}

// Child returns the first direct child with the given element name.
func (n *Node) Child(name string) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// ChildrenNamed returns every direct child with the given element name.
func (n *Node) ChildrenNamed(name string) []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	for _, c := range n.Children {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// ChildText returns the text content of the first child with the given name.
func (n *Node) ChildText(name string) string {
	return n.Child(name).TextContent()
}

// TextContent flattens the node to its character data. Spaces (<sp/>) and
// line breaks contribute their whitespace.
func (n *Node) TextContent() string {
	if n == nil {
		return ""
	}
	var sb strings.Builder
	n.writeText(&sb)
	return sb.String()
}

func (n *Node) writeText(sb *strings.Builder) {
	switch n.Kind {
	case KindText:
		sb.WriteString(n.Text)
		return
	case KindSpace:
		sb.WriteString(" ")
		return
	case KindLineBreak:
		sb.WriteString("\n")
		return
	}
	for _, c := range n.Children {
		c.writeText(sb)
	}
}
