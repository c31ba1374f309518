// Package render turns IR documents into Markdown, HTML, JSON and plain text.
package render

import (
	"encoding/json"
	"strings"

	"github.com/canton7/Dox2Word-sub000/internal/ir"
)

// sectionTitles names Doxygen sectiondef kinds.
var sectionTitles = map[string]string{
	"public-type":             "Public Types",
	"public-func":             "Public Functions",
	"public-attrib":           "Public Attributes",
	"public-slot":             "Public Slots",
	"public-static-func":      "Static Public Functions",
	"public-static-attrib":    "Static Public Attributes",
	"protected-type":          "Protected Types",
	"protected-func":          "Protected Functions",
	"protected-attrib":        "Protected Attributes",
	"protected-static-func":   "Static Protected Functions",
	"protected-static-attrib": "Static Protected Attributes",
	"private-type":            "Private Types",
	"private-func":            "Private Functions",
	"private-attrib":          "Private Attributes",
	"private-static-func":     "Static Private Functions",
	"private-static-attrib":   "Static Private Attributes",
	"friend":                  "Friends",
	"related":                 "Related",
	"signal":                  "Signals",
	"event":                   "Events",
	"property":                "Properties",
	"define":                  "Macros",
	"typedef":                 "Typedefs",
	"enum":                    "Enumerations",
	"func":                    "Functions",
	"var":                     "Variables",
}

// SectionTitle returns the heading for a member section.
func SectionTitle(s ir.MemberSection) string {
	if s.Title != "" {
		return s.Title
	}
	if t, ok := sectionTitles[s.Kind]; ok {
		return t
	}
	return s.Kind
}

// DocumentTitle returns the heading for a compound.
func DocumentTitle(doc *ir.Document) string {
	switch {
	case doc.Metadata.Title != "":
		return doc.Metadata.Title
	case doc.Metadata.Kind != "" && doc.Metadata.Name != "":
		return doc.Metadata.Name + " " + doc.Metadata.Kind
	case doc.Metadata.Name != "":
		return doc.Metadata.Name
	}
	return doc.Metadata.ID
}

// Signature returns the declaration line of a member.
func Signature(m ir.Member) string {
	switch {
	case m.Definition != "":
		return strings.TrimSpace(m.Definition + m.Args)
	case m.Kind == "define":
		return "#define " + m.Name + m.Args
	}
	return m.Name + m.Args
}

// JSON serializes the document.
func JSON(doc *ir.Document, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(doc, "", "  ")
	}
	return json.Marshal(doc)
}

// mergeRuns joins adjacent runs that share style and link so inline markup
// is emitted once per span.
func mergeRuns(runs []ir.Run) []ir.Run {
	out := make([]ir.Run, 0, len(runs))
	for _, r := range runs {
		if n := len(out); n > 0 && !r.Break && !out[n-1].Break &&
			!r.IsObject() && !out[n-1].IsObject() &&
			out[n-1].Style == r.Style && sameLink(out[n-1].Link, r.Link) {
			out[n-1].Text += r.Text
			continue
		}
		out = append(out, r)
	}
	return out
}

func sameLink(a, b *ir.Link) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// anchorHref returns the fragment link for a Doxygen id.
func anchorHref(refID string) string {
	return "#" + refID
}
