package ir

import "strings"

// CodeBlock is a program listing as raw text lines.
type CodeBlock struct {
	Lines    []string `json:"lines"`
	Language string   `json:"language,omitempty"` // file extension hint, e.g. "cpp"
}

// Trim drops trailing blank lines. Leading indentation is never touched.
func (c *CodeBlock) Trim() {
	for len(c.Lines) > 0 && strings.TrimSpace(c.Lines[len(c.Lines)-1]) == "" {
		c.Lines = c.Lines[:len(c.Lines)-1]
	}
}

// IsEmpty returns true if the listing has no lines.
func (c *CodeBlock) IsEmpty() bool {
	return len(c.Lines) == 0
}
