package ir

import "strings"

// Run represents a styled inline element within a paragraph. A run with a
// non-nil Link is a hyperlink; a run with Break set is a manual line break.
// A run carrying an Image or Diagram is an inline object placed in the text
// flow; its Text is empty.
type Run struct {
	Text    string        `json:"text,omitempty"`
	Style   TextStyle     `json:"style,omitempty"`
	Link    *Link         `json:"link,omitempty"`
	Break   bool          `json:"break,omitempty"`
	Image   *ImageBlock   `json:"image,omitempty"`
	Diagram *DiagramBlock `json:"diagram,omitempty"`
}

// Link is the target of a hyperlink run. Exactly one of RefID and URL is set.
type Link struct {
	RefID string `json:"ref_id,omitempty"` // resolved Doxygen cross-reference id
	URL   string `json:"url,omitempty"`    // external target
}

// TextStyle contains character-level formatting flags.
type TextStyle struct {
	Bold   bool `json:"bold,omitempty"`
	Italic bool `json:"italic,omitempty"`
	Code   bool `json:"code,omitempty"` // monospace
}

// Merge returns the union of both styles' flags.
func (s TextStyle) Merge(o TextStyle) TextStyle {
	return TextStyle{
		Bold:   s.Bold || o.Bold,
		Italic: s.Italic || o.Italic,
		Code:   s.Code || o.Code,
	}
}

// NewRun creates a plain text run.
func NewRun(text string, style TextStyle) Run {
	return Run{Text: text, Style: style}
}

// NewLinkRun creates a run that links to a Doxygen id.
func NewLinkRun(text string, style TextStyle, refID string) Run {
	return Run{Text: text, Style: style, Link: &Link{RefID: refID}}
}

// NewURLRun creates a run that links to an external URL.
func NewURLRun(text string, style TextStyle, url string) Run {
	return Run{Text: text, Style: style, Link: &Link{URL: url}}
}

// NewImageRun creates an inline image run.
func NewImageRun(img *ImageBlock) Run {
	return Run{Image: img}
}

// NewDiagramRun creates an inline diagram run.
func NewDiagramRun(d *DiagramBlock) Run {
	return Run{Diagram: d}
}

// LineBreak creates a manual line break run.
func LineBreak() Run {
	return Run{Break: true}
}

// IsLink reports whether the run is a hyperlink.
func (r Run) IsLink() bool {
	return r.Link != nil
}

// IsObject reports whether the run is an inline image or diagram.
func (r Run) IsObject() bool {
	return r.Image != nil || r.Diagram != nil
}

// PlainText concatenates the text of runs, rendering breaks as newlines.
func PlainText(runs []Run) string {
	var sb strings.Builder
	for _, r := range runs {
		if r.Break {
			sb.WriteString("\n")
			continue
		}
		sb.WriteString(r.Text)
	}
	return sb.String()
}

// TrimRuns drops trailing whitespace: whitespace-only runs and breaks at the
// end are removed and the last remaining run is right-trimmed.
func TrimRuns(runs []Run) []Run {
	for len(runs) > 0 {
		last := &runs[len(runs)-1]
		if last.IsObject() {
			break
		}
		if last.Break {
			runs = runs[:len(runs)-1]
			continue
		}
		last.Text = strings.TrimRight(last.Text, " \t\r\n")
		if last.Text != "" {
			break
		}
		runs = runs[:len(runs)-1]
	}
	return runs
}

// TrimLeadingRuns drops leading whitespace, the mirror image of TrimRuns.
func TrimLeadingRuns(runs []Run) []Run {
	for len(runs) > 0 {
		first := &runs[0]
		if first.IsObject() {
			break
		}
		if first.Break {
			runs = runs[1:]
			continue
		}
		first.Text = strings.TrimLeft(first.Text, " \t\r\n")
		if first.Text != "" {
			break
		}
		runs = runs[1:]
	}
	return runs
}

func isEmptyRuns(runs []Run) bool {
	for _, r := range runs {
		if r.Break || r.Text != "" || r.IsObject() {
			return false
		}
	}
	return true
}
